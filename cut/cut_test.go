// Package cut_test exercises cycle-to-inequality conversion, bound
// fixes, negated literals and the lifting heuristic.
package cut_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/oddcycle/core"
	"github.com/katalvlaran/oddcycle/cut"
	"github.com/katalvlaran/oddcycle/cycle"
)

var pol = cycle.Policy{Repair: true, AllowMultiplePerNode: true}

func adjacency(t *testing.T, nbin int, vals []float64, build func(*core.Store)) *core.Adjacency {
	t.Helper()

	s := core.NewStore(nbin)
	build(s)
	adj, err := core.NewAdjacency(s, vals, 1000, 0, core.DefaultTolerances())
	require.NoError(t, err)
	return adj
}

// chain closes a cycle over the given literal sequence.
func chain(t *testing.T, nbin int, lits ...core.Literal) *cycle.Chain {
	t.Helper()

	ch := cycle.NewChain(nbin, lits[0])
	for i := 0; i < len(lits)-1; i++ {
		require.True(t, ch.Extend(lits[i], lits[i+1], nil, pol))
	}
	require.True(t, ch.Extend(lits[len(lits)-1], lits[0], nil, pol))
	return ch
}

// ------------------------------------------------------------------------
// 1. Plain inequalities
// ------------------------------------------------------------------------

func TestAssemble_Triangle(t *testing.T) {
	adj := adjacency(t, 3, []float64{0.5, 0.5, 0.5}, func(s *core.Store) {
		require.NoError(t, s.AddClique(0, 1, 2))
	})
	asm, err := cut.NewAssembler(adj, nil, cut.Options{IncludeTriangles: true})
	require.NoError(t, err)

	kind, q, fix := asm.Assemble(chain(t, 3, 0, 1, 2))
	require.Equal(t, cut.KindInequality, kind)
	require.Nil(t, fix)

	assert.Equal(t, []int{0, 1, 2}, q.Vars)
	assert.Equal(t, []float64{1, 1, 1}, q.Coefs)
	assert.InDelta(t, 1.0, q.RHS, 1e-12)
	assert.Zero(t, q.NLifted)

	sol := []float64{0.5, 0.5, 0.5}
	assert.InDelta(t, 1.5, q.Activity(sol), 1e-12)
	assert.InDelta(t, 0.5, q.Violation(sol), 1e-12)
	assert.True(t, q.Violated(sol, core.DefaultTolerances()))
	assert.False(t, q.Violated([]float64{0.5, 0.5, 0}, core.DefaultTolerances()))
}

// A negated literal flips its coefficient and lowers the right hand
// side: x0 + x1 - x2 <= 0.
func TestAssemble_NegatedLiteral(t *testing.T) {
	const nbin = 4
	adj := adjacency(t, nbin, []float64{0.5, 0.5, 0.5, 0.5}, func(s *core.Store) {
		require.NoError(t, s.AddImplication(0, 1))
		require.NoError(t, s.AddImplication(1, 6))
		require.NoError(t, s.AddImplication(6, 0))
	})
	asm, err := cut.NewAssembler(adj, nil, cut.Options{IncludeTriangles: true})
	require.NoError(t, err)

	kind, q, _ := asm.Assemble(chain(t, nbin, 0, 1, 6))
	require.Equal(t, cut.KindInequality, kind)

	assert.Equal(t, []int{0, 1, 2}, q.Vars)
	assert.Equal(t, []float64{1, 1, -1}, q.Coefs)
	assert.InDelta(t, 0.0, q.RHS, 1e-12)
}

func TestAssemble_TrianglesDisabled(t *testing.T) {
	adj := adjacency(t, 3, []float64{0.5, 0.5, 0.5}, func(s *core.Store) {
		require.NoError(t, s.AddClique(0, 1, 2))
	})
	asm, err := cut.NewAssembler(adj, nil, cut.Options{})
	require.NoError(t, err)

	kind, q, fix := asm.Assemble(chain(t, 3, 0, 1, 2))
	assert.Equal(t, cut.KindNone, kind)
	assert.Nil(t, q)
	assert.Nil(t, fix)
}

func TestNewAssembler_NilAdjacency(t *testing.T) {
	_, err := cut.NewAssembler(nil, nil, cut.Options{})
	assert.ErrorIs(t, err, cut.ErrNilAdjacency)
}

// ------------------------------------------------------------------------
// 2. Bound fixes
// ------------------------------------------------------------------------

// A single-literal cycle states the literal is zero: a positive literal
// fixes its variable to 0, a negated one to 1.
func TestAssemble_SingleLiteralFix(t *testing.T) {
	adj := adjacency(t, 3, []float64{0.5, 0.5, 0.5}, func(s *core.Store) {
		require.NoError(t, s.AddImplication(0, 0))
	})
	asm, err := cut.NewAssembler(adj, nil, cut.Options{IncludeTriangles: true})
	require.NoError(t, err)

	ch := cycle.NewChain(3, 0)
	require.True(t, ch.Extend(0, 0, nil, pol))
	kind, _, fix := asm.Assemble(ch)
	require.Equal(t, cut.KindFix, kind)
	assert.Equal(t, &cut.Fix{Var: 0, Value: 0}, fix)

	ch = cycle.NewChain(3, 4)
	require.True(t, ch.Extend(4, 4, nil, pol))
	kind, _, fix = asm.Assemble(ch)
	require.Equal(t, cut.KindFix, kind)
	assert.Equal(t, &cut.Fix{Var: 1, Value: 1}, fix)
}

// ------------------------------------------------------------------------
// 3. Lifting
// ------------------------------------------------------------------------

// wheelAdjacency is the pentagon ring 0..4 plus a hub literal adjacent
// to every ring node.
func wheelAdjacency(t *testing.T, hubArcs ...core.Literal) *core.Adjacency {
	vals := []float64{0.5, 0.5, 0.5, 0.5, 0.5, 0.5}
	return adjacency(t, 6, vals, func(s *core.Store) {
		require.NoError(t, s.AddImplication(0, 1))
		require.NoError(t, s.AddImplication(1, 2))
		require.NoError(t, s.AddImplication(2, 3))
		require.NoError(t, s.AddImplication(3, 4))
		require.NoError(t, s.AddImplication(4, 0))
		for _, l := range hubArcs {
			require.NoError(t, s.AddImplication(5, l))
		}
	})
}

var liftOpts = cut.Options{Lift: true, IncludeTriangles: true, CalcLiftCoefPerStep: true}

// The hub of a 5-wheel is adjacent to the full ring and lifts with
// coefficient (5-1)/2 = 2.
func TestAssemble_LiftsWheelHub(t *testing.T) {
	asm, err := cut.NewAssembler(wheelAdjacency(t, 0, 1, 2, 3, 4), nil, liftOpts)
	require.NoError(t, err)

	kind, q, _ := asm.Assemble(chain(t, 6, 0, 1, 2, 3, 4))
	require.Equal(t, cut.KindInequality, kind)

	assert.Equal(t, []int{0, 1, 2, 3, 4, 5}, q.Vars)
	assert.Equal(t, []float64{1, 1, 1, 1, 1, 2}, q.Coefs)
	assert.InDelta(t, 2.0, q.RHS, 1e-12)
	assert.Equal(t, 1, q.NLifted)
}

// A hub covering only three consecutive ring nodes forms one chain with
// a single inner point: coefficient 1.
func TestAssemble_LiftsPartialChain(t *testing.T) {
	asm, err := cut.NewAssembler(wheelAdjacency(t, 0, 1, 2), nil, liftOpts)
	require.NoError(t, err)

	kind, q, _ := asm.Assemble(chain(t, 6, 0, 1, 2, 3, 4))
	require.Equal(t, cut.KindInequality, kind)

	assert.Equal(t, []float64{1, 1, 1, 1, 1, 1}, q.Coefs)
	assert.InDelta(t, 2.0, q.RHS, 1e-12)
	assert.Equal(t, 1, q.NLifted)
}

// A chain wrapping around position 0 is measured once, not twice.
func TestAssemble_LiftWrapsAroundCycleStart(t *testing.T) {
	asm, err := cut.NewAssembler(wheelAdjacency(t, 3, 4, 0, 1), nil, liftOpts)
	require.NoError(t, err)

	kind, q, _ := asm.Assemble(chain(t, 6, 0, 1, 2, 3, 4))
	require.Equal(t, cut.KindInequality, kind)
	assert.Equal(t, []float64{1, 1, 1, 1, 1, 1}, q.Coefs)
	assert.Equal(t, 1, q.NLifted)
}

// Without a hub no candidate survives: nothing is lifted.
func TestAssemble_NoLiftCandidates(t *testing.T) {
	asm, err := cut.NewAssembler(wheelAdjacency(t), nil, liftOpts)
	require.NoError(t, err)

	kind, q, _ := asm.Assemble(chain(t, 6, 0, 1, 2, 3, 4))
	require.Equal(t, cut.KindInequality, kind)
	assert.Equal(t, []int{0, 1, 2, 3, 4}, q.Vars)
	assert.Zero(t, q.NLifted)
}

// One-shot mode computes coefficients once and reevaluates only the
// chosen winner; the wheel hub still lifts with coefficient 2.
func TestAssemble_LiftOneShot(t *testing.T) {
	opts := liftOpts
	opts.CalcLiftCoefPerStep = false
	asm, err := cut.NewAssembler(wheelAdjacency(t, 0, 1, 2, 3, 4), nil, opts)
	require.NoError(t, err)

	kind, q, _ := asm.Assemble(chain(t, 6, 0, 1, 2, 3, 4))
	require.Equal(t, cut.KindInequality, kind)
	assert.Equal(t, []float64{1, 1, 1, 1, 1, 2}, q.Coefs)
	assert.Equal(t, 1, q.NLifted)
}
