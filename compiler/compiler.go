// Package compiler turns a sheet of cells into an executable declaration
// program. It extracts one expression per cell, builds the inter-cell
// dependency graph, breaks reference cycles, orders the declarations so
// every cell is defined after the cells it references, and assembles the
// final program text.
package compiler

import (
	"strconv"
	"strings"

	"sheetc/cell"
	"sheetc/graph"
	"sheetc/sheet"
	"sheetc/translate"
)

// formulaMarker prefixes formula cells in raw sheet content.
const formulaMarker = "="

// Result holds everything one compilation produces.
type Result struct {
	// Program is the assembled program text, one declaration per line in
	// dependency-respecting order.
	Program string
	// Order lists every cell exactly once, dependencies first wherever the
	// graph allows it.
	Order []string
	// Decls maps each cell to its full declaration line.
	Decls map[string]string
	// Exprs maps each cell to its translated expression text.
	Exprs map[string]string
	// Formulas maps formula cells to their original source text, marker
	// included, for introspection.
	Formulas map[string]string
	// FormulaCells lists the keys of Formulas in extraction order.
	FormulaCells []string
	// Graph is the dependency graph after cycle breaking. An edge A→B
	// records that A's expression references B.
	Graph *graph.Graph
	// Removed lists the edges deleted to break reference cycles.
	Removed [][2]string
}

// Compiler orchestrates the extract → break cycles → sequence → assemble
// pipeline. The pipeline is synchronous: each stage runs to completion
// before the next, and only the cycle breaker mutates the graph.
type Compiler struct{}

// Compile reads every cell from r and produces the declaration program.
func (c *Compiler) Compile(r sheet.Reader) (*Result, error) {
	cells, err := r.Cells()
	if err != nil {
		return nil, err
	}
	res := extract(cells)
	res.Removed = res.Graph.BreakCycles()
	res.Order = graph.Sequence(res.Graph)
	res.Program = assemble(res.Order, res.Decls)
	return res, nil
}

// extract classifies each cell and records expressions and dependencies.
// Numbers become literal declarations; text starting with the formula
// marker is translated, and its untranslated body is scanned for cell
// references; everything else is ignored. Afterwards every referenced but
// never defined cell gets a zero-literal declaration, so the sequencer
// always sees a closed vertex set.
func extract(cells []sheet.Cell) *Result {
	res := &Result{
		Decls:    make(map[string]string),
		Exprs:    make(map[string]string),
		Formulas: make(map[string]string),
		Graph:    graph.New(),
	}
	for _, sc := range cells {
		name := cell.ID{Col: sc.Col, Row: sc.Row}.Name()
		switch {
		case sc.Content.Kind == sheet.Number:
			res.bind(name, formatNumber(sc.Content.Number))
		case sc.Content.Kind == sheet.Text && strings.HasPrefix(sc.Content.Text, formulaMarker):
			res.Formulas[name] = sc.Content.Text
			res.FormulaCells = append(res.FormulaCells, name)
			body := strings.TrimPrefix(sc.Content.Text, formulaMarker)
			res.bind(name, translate.Formula(body))
			for _, ref := range cell.Refs(body) {
				res.Graph.AddEdge(name, ref)
			}
		}
	}
	for _, v := range res.Graph.Vertices() {
		if _, defined := res.Decls[v]; !defined {
			res.bind(v, "0")
		}
	}
	return res
}

// bind records a cell's expression and declaration and registers the vertex.
func (r *Result) bind(name, expr string) {
	r.Exprs[name] = expr
	r.Decls[name] = "declare " + name + " = " + expr + ";"
	r.Graph.AddVertex(name)
}

// assemble emits one declaration per cell in definition order, joined by
// newlines. Cells missing from the declaration map are skipped; the
// extractor's closure pass should make that impossible.
func assemble(order []string, decls map[string]string) string {
	lines := make([]string, 0, len(order))
	for _, name := range order {
		if d, ok := decls[name]; ok {
			lines = append(lines, d)
		}
	}
	return strings.Join(lines, "\n")
}

// formatNumber renders a literal with the fewest digits that round-trip.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
