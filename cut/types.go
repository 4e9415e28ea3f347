package cut

import (
	"errors"

	"github.com/katalvlaran/oddcycle/core"
)

// ErrNilAdjacency is returned when NewAssembler receives a nil adjacency.
var ErrNilAdjacency = errors.New("cut: adjacency is nil")

// Kind tells what Assemble produced from a cycle.
type Kind int

const (
	// KindNone means the cycle was suppressed (even length, or a
	// triangle with triangles disabled).
	KindNone Kind = iota

	// KindInequality means a cut row was produced.
	KindInequality

	// KindFix means the cycle degenerated to a single literal and a
	// variable bound fix was produced instead.
	KindFix
)

// Inequality is one odd-cycle cut, sum(Coefs[i]*x[Vars[i]]) <= RHS.
type Inequality struct {
	Vars    []int
	Coefs   []float64
	RHS     float64
	NLifted int
}

// Activity evaluates the left hand side on a per-variable solution.
func (q *Inequality) Activity(sol []float64) float64 {
	var act float64
	for i, v := range q.Vars {
		act += q.Coefs[i] * sol[v]
	}
	return act
}

// Violation returns activity minus right hand side.
func (q *Inequality) Violation(sol []float64) float64 {
	return q.Activity(sol) - q.RHS
}

// Violated reports whether the cut separates the solution by more than
// the feasibility tolerance. Not every odd cycle is violated, since
// the implication data may be incomplete.
func (q *Inequality) Violated(sol []float64, tol core.Tolerances) bool {
	return q.Violation(sol) > tol.Feas
}

// Fix is a variable bound implied by a single-literal cycle: the
// literal must be zero, so its variable is fixed to Value.
type Fix struct {
	Var   int
	Value float64
}

// NeighborFunc reports whether two literals are adjacent in the
// implication graph. Drivers plug in their own structure-backed test.
type NeighborFunc func(a, b core.Literal) bool

// Options configure cycle-to-cut conversion.
type Options struct {
	// Lift enables the chain-counting lifting heuristic.
	Lift bool

	// IncludeTriangles admits cycles of length three.
	IncludeTriangles bool

	// LPWeightedLiftCoef weights the choice of the next lifting
	// candidate by its LP value instead of the raw coefficient.
	LPWeightedLiftCoef bool

	// CalcLiftCoefPerStep recomputes every candidate coefficient after
	// each lifted node. When false, coefficients are computed once and
	// only the chosen candidate is reevaluated before acceptance.
	CalcLiftCoefPerStep bool
}
