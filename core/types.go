package core

import (
	"errors"
	"math"
)

// Sentinel errors shared by the graph builders and the separator.
var (
	// ErrNilOracle is returned when a nil Oracle is supplied.
	ErrNilOracle = errors.New("core: oracle is nil")

	// ErrSolutionSize is returned when the solution vector length does
	// not match the oracle's number of binary variables.
	ErrSolutionSize = errors.New("core: solution vector has wrong length")

	// ErrLiteralRange is returned when a literal index is outside [0, 2n).
	ErrLiteralRange = errors.New("core: literal index out of range")

	// ErrBudgetExceeded is returned when a dynamic array cannot grow
	// because the memory budget is exhausted. Callers abort the current
	// separation round but keep everything produced so far.
	ErrBudgetExceeded = errors.New("core: memory budget exceeded")
)

// Literal indexes a variable or its negation. For a problem with n
// binary variables, literals 0..n-1 are the variables themselves and
// literals n..2n-1 are their negations.
type Literal int

// Negation returns the opposite literal of l for a problem with nbin
// binary variables.
func (l Literal) Negation(nbin int) Literal {
	if int(l) < nbin {
		return l + Literal(nbin)
	}
	return l - Literal(nbin)
}

// Negated reports whether l stands for a negated variable.
func (l Literal) Negated(nbin int) bool { return int(l) >= nbin }

// Var returns the index of the underlying binary variable.
func (l Literal) Var(nbin int) int {
	if int(l) < nbin {
		return int(l)
	}
	return int(l) - nbin
}

// Valid reports whether l lies in [0, 2*nbin).
func (l Literal) Valid(nbin int) bool { return l >= 0 && int(l) < 2*nbin }

// Tolerances bundles the feasibility tolerance used for integrality
// tests and feasibility-aware rounding of scaled arc weights.
type Tolerances struct {
	// Feas is the absolute feasibility tolerance (default 1e-6).
	Feas float64
}

// DefaultTolerances returns the standard feasibility tolerance.
func DefaultTolerances() Tolerances { return Tolerances{Feas: 1e-6} }

// IsIntegral reports whether v is integral within the tolerance.
func (t Tolerances) IsIntegral(v float64) bool {
	f := v - math.Floor(v)
	return f <= t.Feas || f >= 1.0-t.Feas
}

// Ceil rounds v up, treating values within the tolerance below an
// integer as that integer.
func (t Tolerances) Ceil(v float64) float64 { return math.Ceil(v - t.Feas) }

// Fractionality returns min(v, 1-v), the distance of a [0,1] value to
// its nearest bound.
func Fractionality(v float64) float64 { return math.Min(v, 1.0-v) }

// Budget limits the bytes a separation round may allocate for its
// dynamic graph arrays. Allow is called before every array growth with
// the additional byte count; returning false aborts the round with
// ErrBudgetExceeded.
type Budget interface {
	Allow(bytes int) bool
}

// unlimited is the no-op budget.
type unlimited struct{}

func (unlimited) Allow(int) bool { return true }

// UnlimitedBudget returns a Budget that never refuses an allocation.
func UnlimitedBudget() Budget { return unlimited{} }

// MemoryBudget is a simple decrementing byte budget.
type MemoryBudget struct {
	remaining int64
}

// NewMemoryBudget returns a Budget allowing at most limit bytes of
// dynamic array growth in total.
func NewMemoryBudget(limit int64) *MemoryBudget {
	return &MemoryBudget{remaining: limit}
}

// Allow reserves bytes from the budget and reports whether they fit.
func (b *MemoryBudget) Allow(bytes int) bool {
	if int64(bytes) > b.remaining {
		return false
	}
	b.remaining -= int64(bytes)
	return true
}

// Remaining returns the unreserved part of the budget.
func (b *MemoryBudget) Remaining() int64 { return b.remaining }
