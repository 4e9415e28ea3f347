// Package core_test exercises the literal model, the oracle store, the
// adjacency view and the memory budget.
package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/oddcycle/core"
)

// ------------------------------------------------------------------------
// 1. Literals and tolerances
// ------------------------------------------------------------------------

func TestLiteral_Arithmetic(t *testing.T) {
	const nbin = 4

	assert.Equal(t, core.Literal(5), core.Literal(1).Negation(nbin))
	assert.Equal(t, core.Literal(1), core.Literal(5).Negation(nbin))

	assert.False(t, core.Literal(3).Negated(nbin))
	assert.True(t, core.Literal(4).Negated(nbin))

	assert.Equal(t, 2, core.Literal(2).Var(nbin))
	assert.Equal(t, 2, core.Literal(6).Var(nbin))

	assert.True(t, core.Literal(0).Valid(nbin))
	assert.True(t, core.Literal(7).Valid(nbin))
	assert.False(t, core.Literal(8).Valid(nbin))
	assert.False(t, core.Literal(-1).Valid(nbin))
}

func TestTolerances_IntegralityAndCeil(t *testing.T) {
	tol := core.DefaultTolerances()

	assert.True(t, tol.IsIntegral(0.0))
	assert.True(t, tol.IsIntegral(1.0))
	assert.True(t, tol.IsIntegral(0.9999999))
	assert.True(t, tol.IsIntegral(2.0000001))
	assert.False(t, tol.IsIntegral(0.5))
	assert.False(t, tol.IsIntegral(0.001))

	assert.InDelta(t, 2.0, tol.Ceil(1.5), 1e-12)
	assert.InDelta(t, 2.0, tol.Ceil(2.0000005), 1e-12)
	assert.InDelta(t, 300.0, tol.Ceil(299.9999995), 1e-12)
}

func TestFractionality(t *testing.T) {
	assert.InDelta(t, 0.3, core.Fractionality(0.3), 1e-12)
	assert.InDelta(t, 0.2, core.Fractionality(0.8), 1e-12)
	assert.InDelta(t, 0.0, core.Fractionality(1.0), 1e-12)
}

// ------------------------------------------------------------------------
// 2. Store
// ------------------------------------------------------------------------

func TestStore_Implications(t *testing.T) {
	s := core.NewStore(3)

	require.NoError(t, s.AddImplication(0, 4))
	assert.Equal(t, []core.Literal{4}, s.Implications(0))
	assert.Equal(t, []core.Literal{0}, s.Implications(4))
	assert.Equal(t, 2, s.NumImplications())

	// A self-implication states that the literal is zero and counts once.
	require.NoError(t, s.AddImplication(1, 1))
	assert.Equal(t, []core.Literal{1}, s.Implications(1))
	assert.Equal(t, 3, s.NumImplications())

	err := s.AddImplication(0, 6)
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrLiteralRange)
}

func TestStore_Cliques(t *testing.T) {
	s := core.NewStore(4)

	require.NoError(t, s.AddClique(0, 1, 2))
	assert.Equal(t, 1, s.NumCliques())

	cl := s.Cliques(1)
	require.Len(t, cl, 1)
	assert.Equal(t, []core.Literal{0, 1, 2}, cl[0])
	assert.Empty(t, s.Cliques(3))

	assert.ErrorIs(t, s.AddClique(0, 9), core.ErrLiteralRange)
}

// ------------------------------------------------------------------------
// 3. Adjacency
// ------------------------------------------------------------------------

func TestAdjacency_Validation(t *testing.T) {
	_, err := core.NewAdjacency(nil, nil, 1000, 0, core.DefaultTolerances())
	assert.ErrorIs(t, err, core.ErrNilOracle)

	s := core.NewStore(3)
	_, err = core.NewAdjacency(s, []float64{0.5}, 1000, 0, core.DefaultTolerances())
	assert.ErrorIs(t, err, core.ErrSolutionSize)
}

func TestAdjacency_ValuesAndWeights(t *testing.T) {
	s := core.NewStore(2)
	require.NoError(t, s.AddImplication(0, 1))

	adj, err := core.NewAdjacency(s, []float64{0.4, 0.3}, 1000, 0, core.DefaultTolerances())
	require.NoError(t, err)

	assert.Equal(t, 2, adj.NumBinVars())
	assert.Equal(t, 4, adj.NumNodes())
	assert.InDelta(t, 0.4, adj.Value(0), 1e-12)
	assert.InDelta(t, 0.6, adj.Value(2), 1e-12)

	// w = ceil(1000 * (1 - 0.4 - 0.3)) = 300.
	assert.Equal(t, int64(300), adj.Weight(0, 1))
	// A literal and its negation always sum to one: weight zero.
	assert.Equal(t, int64(0), adj.Weight(0, 2))
}

func TestAdjacency_MinWeightFloor(t *testing.T) {
	s := core.NewStore(2)
	require.NoError(t, s.AddImplication(0, 1))

	adj, err := core.NewAdjacency(s, []float64{0.5, 0.5}, 1000, 50, core.DefaultTolerances())
	require.NoError(t, err)
	assert.Equal(t, int64(50), adj.Weight(0, 1))
}

func TestAdjacency_NeighborsSkipIntegralAndOwnVariable(t *testing.T) {
	s := core.NewStore(3)
	require.NoError(t, s.AddImplication(0, 1))
	require.NoError(t, s.AddImplication(0, 2))
	require.NoError(t, s.AddClique(0, 1, 2))

	// Variable 2 is integral and must never be visited.
	adj, err := core.NewAdjacency(s, []float64{0.5, 0.5, 1.0}, 1000, 0, core.DefaultTolerances())
	require.NoError(t, err)

	var seen []core.Literal
	adj.Neighbors(0, func(v core.Literal, w int64) bool {
		assert.Equal(t, int64(0), w)
		seen = append(seen, v)
		return true
	})

	// Implication target first, then the clique member; literal 2 is
	// filtered, the clique entry for variable 0 itself is skipped.
	assert.Equal(t, []core.Literal{1, 1}, seen)
}

func TestAdjacency_IsNeighbor(t *testing.T) {
	s := core.NewStore(3)
	require.NoError(t, s.AddImplication(0, 1))
	require.NoError(t, s.AddClique(1, 2))

	adj, err := core.NewAdjacency(s, []float64{0.5, 0.5, 0.5}, 1000, 0, core.DefaultTolerances())
	require.NoError(t, err)

	assert.True(t, adj.IsNeighbor(0, 1))
	assert.True(t, adj.IsNeighbor(1, 0))
	assert.True(t, adj.IsNeighbor(1, 2))
	assert.True(t, adj.IsNeighbor(2, 1))
	assert.False(t, adj.IsNeighbor(0, 2))
	assert.False(t, adj.IsNeighbor(0, 3), "a literal is never adjacent to its own variable")
}

// ------------------------------------------------------------------------
// 4. Budgets
// ------------------------------------------------------------------------

func TestMemoryBudget(t *testing.T) {
	b := core.NewMemoryBudget(100)

	assert.True(t, b.Allow(60))
	assert.False(t, b.Allow(50))
	assert.Equal(t, int64(40), b.Remaining())
	assert.True(t, b.Allow(40))
	assert.False(t, b.Allow(1))

	assert.True(t, core.UnlimitedBudget().Allow(1<<40))
}
