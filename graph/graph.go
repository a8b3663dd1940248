// Package graph implements the cell dependency graph: an insertion-ordered
// adjacency structure, best-effort cycle breaking, and the topological
// sequencer that produces a definition order.
//
// An edge A→B records that A's expression references B. Vertices and
// adjacency lists iterate in insertion order, which keeps every downstream
// ordering — including the sequencer's cycle fallback — deterministic
// across runs.
package graph

// Graph is a directed graph over cell identifiers.
type Graph struct {
	verts  []string
	isVert map[string]bool
	succ   map[string][]string
	hasEdg map[string]map[string]bool
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{
		isVert: make(map[string]bool),
		succ:   make(map[string][]string),
		hasEdg: make(map[string]map[string]bool),
	}
}

// AddVertex registers v. Re-adding an existing vertex is a no-op, so the
// first insertion fixes its position in iteration order.
func (g *Graph) AddVertex(v string) {
	if g.isVert[v] {
		return
	}
	g.isVert[v] = true
	g.verts = append(g.verts, v)
}

// AddEdge records that from references to, registering both vertices.
// Duplicate edges collapse to one.
func (g *Graph) AddEdge(from, to string) {
	g.AddVertex(from)
	g.AddVertex(to)
	if g.hasEdg[from] == nil {
		g.hasEdg[from] = make(map[string]bool)
	}
	if g.hasEdg[from][to] {
		return
	}
	g.hasEdg[from][to] = true
	g.succ[from] = append(g.succ[from], to)
}

// RemoveEdge deletes the edge from→to if present. Vertices stay registered.
func (g *Graph) RemoveEdge(from, to string) {
	if !g.hasEdg[from][to] {
		return
	}
	delete(g.hasEdg[from], to)
	out := g.succ[from]
	for i, v := range out {
		if v == to {
			g.succ[from] = append(out[:i:i], out[i+1:]...)
			break
		}
	}
}

// HasEdge reports whether the edge from→to exists.
func (g *Graph) HasEdge(from, to string) bool {
	return g.hasEdg[from][to]
}

// Vertices returns all vertices in insertion order.
// The returned slice must not be mutated.
func (g *Graph) Vertices() []string { return g.verts }

// Out returns the vertices v references, in insertion order.
// The returned slice must not be mutated.
func (g *Graph) Out(v string) []string { return g.succ[v] }

// Len returns the vertex count.
func (g *Graph) Len() int { return len(g.verts) }

// Reverse returns a new graph with every edge direction flipped. Vertex
// insertion order is preserved.
func (g *Graph) Reverse() *Graph {
	r := New()
	for _, v := range g.verts {
		r.AddVertex(v)
	}
	for _, v := range g.verts {
		for _, to := range g.succ[v] {
			r.AddEdge(to, v)
		}
	}
	return r
}

// Roots returns the vertices with no incoming edge, in insertion order.
func (g *Graph) Roots() []string {
	hasIn := make(map[string]bool)
	for _, v := range g.verts {
		for _, to := range g.succ[v] {
			hasIn[to] = true
		}
	}
	var roots []string
	for _, v := range g.verts {
		if !hasIn[v] {
			roots = append(roots, v)
		}
	}
	return roots
}

// BreakCycles deletes a set of cycle-forming edges in place and returns
// them in discovery order.
//
// The traversal is a three-state depth-first search from every unvisited
// vertex. An edge into an in-progress vertex is scheduled for removal, and
// that discovery aborts the rest of the vertex's adjacency scan: the vertex
// stays in-progress and the tree edge above it is scheduled too. Deletions
// are applied only after all traversals finish.
//
// The guarantee is deliberately weak: at least one edge of every simple
// cycle this traversal order discovers is removed, but overlapping cycles
// sharing vertices can survive. Callers must treat subsequent topological
// sequencing as best-effort; Sequence terminates on residual cycles.
func (g *Graph) BreakCycles() [][2]string {
	const (
		white = iota // unvisited
		gray         // in progress
		black        // finished
	)
	state := make(map[string]int)
	var scheduled [][2]string

	var visit func(v string) bool
	visit = func(v string) bool {
		state[v] = gray
		for _, to := range g.succ[v] {
			switch state[to] {
			case white:
				if visit(to) {
					scheduled = append(scheduled, [2]string{v, to})
				}
			case gray:
				scheduled = append(scheduled, [2]string{v, to})
				return true
			}
		}
		state[v] = black
		return false
	}

	for _, v := range g.verts {
		if state[v] == white {
			visit(v)
		}
	}
	for _, e := range scheduled {
		g.RemoveEdge(e[0], e[1])
	}
	return scheduled
}

// Sequence returns every vertex exactly once, each placed after everything
// it references wherever the graph allows it.
//
// The primary pass is Kahn's algorithm with in-degree defined as a vertex's
// count of unresolved references, so vertices that reference nothing come
// out first. When the queue starves before all vertices are emitted (a
// residual cycle survived BreakCycles), the not-yet-emitted vertex with the
// smallest remaining in-degree is force-emitted, ties broken by insertion
// order, and its removal propagates normally. The fallback does not respect
// every edge on cyclic input; it guarantees termination and a total,
// deterministic order.
func Sequence(g *Graph) []string {
	indeg := make(map[string]int)
	dependents := make(map[string][]string)
	for _, v := range g.Vertices() {
		indeg[v] = len(g.Out(v))
		for _, to := range g.Out(v) {
			dependents[to] = append(dependents[to], v)
		}
	}

	var order []string
	emitted := make(map[string]bool)
	var queue []string
	for _, v := range g.Vertices() {
		if indeg[v] == 0 {
			queue = append(queue, v)
		}
	}
	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]
		order = append(order, v)
		emitted[v] = true
		for _, d := range dependents[v] {
			indeg[d]--
			if indeg[d] == 0 {
				queue = append(queue, d)
			}
		}
	}

	// Residual cycle: force-emit by smallest remaining in-degree,
	// propagating decrements as if the vertex had been processed normally.
	// Strict less keeps the first-seen minimum, so ties fall to insertion
	// order.
	for len(order) < g.Len() {
		best := ""
		for _, v := range g.Vertices() {
			if emitted[v] {
				continue
			}
			if best == "" || indeg[v] < indeg[best] {
				best = v
			}
		}
		order = append(order, best)
		emitted[best] = true
		for _, d := range dependents[best] {
			indeg[d]--
		}
	}
	return order
}
