// Package report renders human-readable dependency and dependant trees for
// cells. Trees are for introspection only; they consume the graph and the
// evaluated program but never influence compilation.
package report

import (
	"fmt"
	"io"
	"strconv"

	"sheetc/graph"
)

// Evaluator supplies computed cell values for node labels. A lookup error
// means the value is unavailable, not that the tree walk should stop.
type Evaluator interface {
	Value(name string) (any, error)
}

// Printer writes dependency trees for one compiled sheet.
type Printer struct {
	Graph *graph.Graph      // forward graph: edge A→B means A references B
	Exprs map[string]string // cell -> expression text
	Eval  Evaluator
	Color bool
	Out   io.Writer
}

// Dependencies prints the tree of cells that start references, directly or
// transitively. An empty start prints one tree per root of the forward
// graph (cells nothing references).
func (p *Printer) Dependencies(start string) {
	p.print(p.Graph, start)
}

// Dependants prints the tree of cells that reference start, walking the
// reversed graph. An empty start prints one tree per reversed-graph root
// (cells that reference nothing).
func (p *Printer) Dependants(start string) {
	p.print(p.Graph.Reverse(), start)
}

func (p *Printer) print(g *graph.Graph, start string) {
	if start != "" {
		p.tree(g, start)
		return
	}
	for _, root := range g.Roots() {
		p.tree(g, root)
	}
}

func (p *Printer) tree(g *graph.Graph, root string) {
	fmt.Fprintln(p.Out, p.label(root))
	p.branch(g, root, "", map[string]bool{root: true})
}

// branch renders the children of node. The path set holds every vertex on
// the active path; re-entering one means a residual cycle, so the branch is
// cut with a visible warning instead of recursing forever.
func (p *Printer) branch(g *graph.Graph, node, prefix string, path map[string]bool) {
	children := g.Out(node)
	for i, child := range children {
		connector, childPrefix := "├── ", prefix+"│   "
		if i == len(children)-1 {
			connector, childPrefix = "└── ", prefix+"    "
		}
		if path[child] {
			fmt.Fprintf(p.Out, "%s%s%s (circular reference, branch cut)\n", prefix, connector, p.paint(child))
			continue
		}
		fmt.Fprintf(p.Out, "%s%s%s\n", prefix, connector, p.label(child))
		path[child] = true
		p.branch(g, child, childPrefix, path)
		delete(path, child)
	}
}

// label renders "CELL (value)" for plain literals and
// "CELL (expr => value)" for everything else.
func (p *Printer) label(name string) string {
	value := "unavailable"
	if p.Eval != nil {
		if v, err := p.Eval.Value(name); err == nil {
			value = fmt.Sprintf("%v", v)
		}
	}
	expr := p.Exprs[name]
	if isNumeric(expr) {
		return fmt.Sprintf("%s (%s)", p.paint(name), value)
	}
	return fmt.Sprintf("%s (%s => %s)", p.paint(name), expr, value)
}

func (p *Printer) paint(name string) string {
	if !p.Color {
		return name
	}
	return "\033[35m" + name + "\033[0m"
}

func isNumeric(s string) bool {
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}
