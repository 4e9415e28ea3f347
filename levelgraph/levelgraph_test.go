// Package levelgraph_test exercises level-by-level growth, cross-edge
// collection, the root path searches and the path blocking.
package levelgraph_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/oddcycle/core"
	"github.com/katalvlaran/oddcycle/levelgraph"
)

func adjacency(t *testing.T, nbin int, vals []float64, build func(*core.Store)) *core.Adjacency {
	t.Helper()

	s := core.NewStore(nbin)
	build(s)
	adj, err := core.NewAdjacency(s, vals, 1000, 0, core.DefaultTolerances())
	require.NoError(t, err)
	return adj
}

// triangle is the clique {0,1,2} over three variables at value 1/2.
func triangle(t *testing.T) *core.Adjacency {
	return adjacency(t, 3, []float64{0.5, 0.5, 0.5}, func(s *core.Store) {
		require.NoError(t, s.AddClique(0, 1, 2))
	})
}

// pentagon is the implication ring 0-1-2-3-4-0 at value 1/2.
func pentagon(t *testing.T) *core.Adjacency {
	return adjacency(t, 5, []float64{0.5, 0.5, 0.5, 0.5, 0.5}, func(s *core.Store) {
		require.NoError(t, s.AddImplication(0, 1))
		require.NoError(t, s.AddImplication(1, 2))
		require.NoError(t, s.AddImplication(2, 3))
		require.NoError(t, s.AddImplication(3, 4))
		require.NoError(t, s.AddImplication(4, 0))
	})
}

func newGraph(t *testing.T, adj *core.Adjacency, opts levelgraph.Options) *levelgraph.Graph {
	t.Helper()

	g, err := levelgraph.NewGraph(adj, nil, opts)
	require.NoError(t, err)
	return g
}

var wideOpts = levelgraph.Options{MaxLevelSize: 100, SortRootNeighbors: true}

// ------------------------------------------------------------------------
// 1. Construction and reset
// ------------------------------------------------------------------------

func TestNewGraph_Errors(t *testing.T) {
	_, err := levelgraph.NewGraph(nil, nil, wideOpts)
	assert.ErrorIs(t, err, levelgraph.ErrNilAdjacency)

	_, err = levelgraph.NewGraph(triangle(t), nil, levelgraph.Options{MaxLevelSize: 0})
	assert.ErrorIs(t, err, levelgraph.ErrInvalidCap)

	_, err = levelgraph.NewGraph(triangle(t), core.NewMemoryBudget(10), wideOpts)
	assert.ErrorIs(t, err, core.ErrBudgetExceeded)
}

func TestReset_Errors(t *testing.T) {
	g := newGraph(t, triangle(t), wideOpts)
	assert.ErrorIs(t, g.Reset(8), core.ErrLiteralRange)

	adj := adjacency(t, 3, []float64{0.5, 0.5, 1.0}, func(s *core.Store) {
		require.NoError(t, s.AddClique(0, 1, 2))
	})
	g = newGraph(t, adj, wideOpts)
	assert.ErrorIs(t, g.Reset(2), levelgraph.ErrRootNotFractional)
}

// ------------------------------------------------------------------------
// 2. Growth
// ------------------------------------------------------------------------

func TestGrowLevel_Triangle(t *testing.T) {
	g := newGraph(t, triangle(t), wideOpts)
	require.NoError(t, g.Reset(0))

	assert.Equal(t, core.Literal(0), g.Root())
	assert.Equal(t, 0, g.Level(0))
	assert.Equal(t, -1, g.Level(1))

	nnew, err := g.GrowLevel()
	require.NoError(t, err)
	assert.Equal(t, 2, nnew)
	assert.Equal(t, 1, g.Levels())
	assert.Equal(t, 1, g.Level(1))
	assert.Equal(t, 1, g.Level(2))
	assert.Equal(t, 3, g.NumNodes())
	assert.Empty(t, g.CrossEdges(0))

	// Level 1 holds both remaining clique members; its single
	// same-level arc is the cross edge closing the triangle.
	nnew, err = g.GrowLevel()
	require.NoError(t, err)
	assert.Equal(t, 0, nnew)
	assert.Equal(t, 2, g.Levels())
	assert.Equal(t, []levelgraph.CrossEdge{{Source: 1, Target: 2, Weight: 0}}, g.CrossEdges(1))
	assert.Equal(t, 5, g.NumEdges())
}

func TestGrowLevel_SelfArcs(t *testing.T) {
	opts := wideOpts
	opts.AddSelfArcs = true
	g := newGraph(t, triangle(t), opts)
	require.NoError(t, g.Reset(0))

	nnew, err := g.GrowLevel()
	require.NoError(t, err)
	assert.Equal(t, 3, nnew)
	// The negation of the root joins level 1 over the weight-0 arc.
	assert.Equal(t, 1, g.Level(3))
}

// A full level may admit one node past the cap, never two.
func TestGrowLevel_CapOverflow(t *testing.T) {
	adj := adjacency(t, 4, []float64{0.5, 0.5, 0.5, 0.5}, func(s *core.Store) {
		require.NoError(t, s.AddImplication(0, 1))
		require.NoError(t, s.AddImplication(0, 2))
		require.NoError(t, s.AddImplication(0, 3))
	})
	g := newGraph(t, adj, levelgraph.Options{MaxLevelSize: 1, SortRootNeighbors: true})
	require.NoError(t, g.Reset(0))

	nnew, err := g.GrowLevel()
	require.NoError(t, err)
	assert.Equal(t, 2, nnew)
	assert.True(t, g.Contains(1))
	assert.True(t, g.Contains(2))
	assert.False(t, g.Contains(3))
}

func TestGrowLevel_Pentagon(t *testing.T) {
	g := newGraph(t, pentagon(t), wideOpts)
	require.NoError(t, g.Reset(0))

	nnew, err := g.GrowLevel()
	require.NoError(t, err)
	assert.Equal(t, 2, nnew)
	assert.Equal(t, 1, g.Level(1))
	assert.Equal(t, 1, g.Level(4))

	nnew, err = g.GrowLevel()
	require.NoError(t, err)
	assert.Equal(t, 2, nnew)
	assert.Empty(t, g.CrossEdges(1), "1 and 4 are not adjacent")

	nnew, err = g.GrowLevel()
	require.NoError(t, err)
	assert.Equal(t, 0, nnew)
	assert.Equal(t, []levelgraph.CrossEdge{{Source: 2, Target: 3, Weight: 0}}, g.CrossEdges(2))
}

// ------------------------------------------------------------------------
// 3. Paths and blocking
// ------------------------------------------------------------------------

func growAll(t *testing.T, g *levelgraph.Graph) {
	t.Helper()
	for {
		nnew, err := g.GrowLevel()
		require.NoError(t, err)
		if nnew == 0 {
			return
		}
	}
}

func TestPaths_Pentagon(t *testing.T) {
	g := newGraph(t, pentagon(t), wideOpts)
	require.NoError(t, g.Reset(0))
	growAll(t, g)

	// Path from literal 2 descends 2 -> 1 -> 0.
	parent := g.ShortestPathToRoot(2)
	require.GreaterOrEqual(t, parent[0], int32(0))
	assert.Equal(t, int32(1), parent[0])
	assert.Equal(t, int32(2), parent[1])

	// Blocking that path leaves only the other side of the ring open.
	blocked := make([]bool, 10)
	g.BlockPath(parent, 2, blocked)
	assert.True(t, blocked[0])
	assert.True(t, blocked[1])
	assert.False(t, blocked[3])
	assert.False(t, blocked[4])

	// The root is always admissible: 3 -> 4 -> 0 survives the blocking.
	pred := g.UnblockedPathFromRoot(3, blocked)
	assert.Equal(t, int32(4), pred[3])
	assert.Equal(t, int32(0), pred[4])
}

func TestUnblockedPathFromRoot_NoPath(t *testing.T) {
	g := newGraph(t, pentagon(t), wideOpts)
	require.NoError(t, g.Reset(0))
	growAll(t, g)

	blocked := make([]bool, 10)
	blocked[1] = true
	blocked[4] = true

	pred := g.UnblockedPathFromRoot(3, blocked)
	for i := range pred {
		assert.Equal(t, int32(-1), pred[i])
	}
}

// ------------------------------------------------------------------------
// 4. Adjacency queries
// ------------------------------------------------------------------------

func TestIsNeighbor(t *testing.T) {
	g := newGraph(t, triangle(t), wideOpts)
	require.NoError(t, g.Reset(0))
	growAll(t, g)

	assert.False(t, g.IsNeighbor(0, 0))

	// Forward and backward arcs, both directions.
	assert.True(t, g.IsNeighbor(0, 1))
	assert.True(t, g.IsNeighbor(1, 0))

	// Same-level arc, stored once but visible from both ends.
	assert.True(t, g.IsNeighbor(1, 2))
	assert.True(t, g.IsNeighbor(2, 1))

	// Negations never entered the graph: the oracle answers.
	assert.False(t, g.IsNeighbor(0, 4))
	assert.False(t, g.IsNeighbor(3, 4))
}

func TestIsNeighbor_OracleFallbackBeforeGrowth(t *testing.T) {
	g := newGraph(t, triangle(t), wideOpts)
	require.NoError(t, g.Reset(0))

	// Only the root is placed; the pair is resolved from the oracle.
	assert.True(t, g.IsNeighbor(1, 2))
	assert.False(t, g.IsNeighbor(1, 4))
}
