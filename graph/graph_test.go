package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func indexOf(order []string) map[string]int {
	idx := make(map[string]int, len(order))
	for i, v := range order {
		idx[v] = i
	}
	return idx
}

// assertRespectsEdges checks the definition-order contract: for every
// retained edge A→B, B precedes A.
func assertRespectsEdges(t *testing.T, g *Graph, order []string) {
	t.Helper()
	idx := indexOf(order)
	for _, from := range g.Vertices() {
		for _, to := range g.Out(from) {
			assert.Less(t, idx[to], idx[from], "edge %s->%s not respected in %v", from, to, order)
		}
	}
}

func TestSequenceAcyclic(t *testing.T) {
	g := New()
	g.AddEdge("C1", "A1")
	g.AddEdge("C1", "B1")
	g.AddEdge("D1", "C1")
	g.AddVertex("E9")

	order := Sequence(g)
	require.Len(t, order, 5)
	assertRespectsEdges(t, g, order)

	seen := make(map[string]bool)
	for _, v := range order {
		assert.False(t, seen[v], "vertex %s emitted twice", v)
		seen[v] = true
	}
}

func TestSequenceDeterministic(t *testing.T) {
	build := func() *Graph {
		g := New()
		g.AddEdge("C1", "A1")
		g.AddEdge("C1", "B1")
		g.AddEdge("B2", "C1")
		g.AddVertex("Z9")
		return g
	}
	first := Sequence(build())
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, Sequence(build()))
	}
}

func TestBreakCyclesTwoCell(t *testing.T) {
	g := New()
	g.AddEdge("A1", "B1")
	g.AddEdge("B1", "A1")

	removed := g.BreakCycles()
	require.NotEmpty(t, removed, "a two-cell cycle must lose at least one edge")
	assert.False(t, g.HasEdge("A1", "B1") && g.HasEdge("B1", "A1"))

	order := Sequence(g)
	assert.ElementsMatch(t, []string{"A1", "B1"}, order)
}

func TestBreakCyclesSelfReference(t *testing.T) {
	g := New()
	g.AddEdge("A1", "A1")
	removed := g.BreakCycles()
	require.Len(t, removed, 1)
	assert.False(t, g.HasEdge("A1", "A1"))
	assert.Equal(t, []string{"A1"}, Sequence(g))
}

func TestBreakCyclesKeepsAcyclicEdges(t *testing.T) {
	g := New()
	g.AddEdge("C1", "A1")
	g.AddEdge("C1", "B1")
	g.AddEdge("D1", "C1")
	removed := g.BreakCycles()
	assert.Empty(t, removed)
	assert.True(t, g.HasEdge("C1", "A1"))
	assert.True(t, g.HasEdge("C1", "B1"))
	assert.True(t, g.HasEdge("D1", "C1"))
}

// The breaker stops scanning a vertex's adjacency at the first in-progress
// target and also schedules the tree edge above the discovery, so it can
// delete more than the minimal edge set. This is the documented contract,
// not a bug; the sequencer's fallback covers whatever survives.
func TestBreakCyclesWeakGuarantee(t *testing.T) {
	g := New()
	g.AddEdge("A1", "B1")
	g.AddEdge("B1", "A1")
	g.AddEdge("B1", "C1")
	g.AddEdge("C1", "B1")

	removed := g.BreakCycles()
	assert.NotEmpty(t, removed)

	// Whatever is left, the sequencer must terminate with a total order.
	order := Sequence(g)
	assert.ElementsMatch(t, []string{"A1", "B1", "C1"}, order)
}

// Sequence must terminate and emit every vertex exactly once even when the
// graph still contains a cycle.
func TestSequenceResidualCycleFallback(t *testing.T) {
	g := New()
	g.AddEdge("A1", "B1")
	g.AddEdge("B1", "A1")
	g.AddEdge("C1", "A1")

	order := Sequence(g)
	require.Len(t, order, 3)
	assert.ElementsMatch(t, []string{"A1", "B1", "C1"}, order)

	// Fallback bias: A1 and B1 tie on in-degree 1, so insertion order picks
	// A1 first; B1 then resolves to zero and C1 follows once A1 is emitted.
	assert.Equal(t, []string{"A1", "B1", "C1"}, order)
}

func TestReverseAndRoots(t *testing.T) {
	g := New()
	g.AddEdge("C1", "A1")
	g.AddEdge("C1", "B1")
	g.AddEdge("D1", "C1")

	assert.Equal(t, []string{"D1"}, g.Roots())

	r := g.Reverse()
	assert.True(t, r.HasEdge("A1", "C1"))
	assert.True(t, r.HasEdge("B1", "C1"))
	assert.True(t, r.HasEdge("C1", "D1"))
	assert.ElementsMatch(t, []string{"A1", "B1"}, r.Roots())
	assert.Equal(t, g.Len(), r.Len())
}

func TestRemoveEdge(t *testing.T) {
	g := New()
	g.AddEdge("A1", "B1")
	g.AddEdge("A1", "C1")
	g.RemoveEdge("A1", "B1")
	assert.False(t, g.HasEdge("A1", "B1"))
	assert.Equal(t, []string{"C1"}, g.Out("A1"))
	// Removing a missing edge is a no-op.
	g.RemoveEdge("A1", "B1")
	g.RemoveEdge("X1", "Y1")
	assert.Equal(t, 3, g.Len())
}

func TestDuplicateEdgesCollapse(t *testing.T) {
	g := New()
	g.AddEdge("A1", "B1")
	g.AddEdge("A1", "B1")
	assert.Equal(t, []string{"B1"}, g.Out("A1"))
}
