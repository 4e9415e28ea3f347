package sepa

import (
	"errors"

	"github.com/katalvlaran/oddcycle/core"
	"github.com/katalvlaran/oddcycle/cut"
)

// Sentinel errors of the separation driver.
var (
	// ErrOptionViolation is returned by New when an option carries an
	// out-of-range value.
	ErrOptionViolation = errors.New("sepa: option violation")

	// ErrNilConsumer is returned when a Problem has no cut consumer.
	ErrNilConsumer = errors.New("sepa: consumer is nil")
)

// Method selects the cycle search algorithm.
type Method int

const (
	// MethodBipartite is the classical search on the mirrored double
	// cover, one shortest path per start literal.
	MethodBipartite Method = iota

	// MethodLevelGraph is the level graph heuristic, closing cycles
	// over cross edges level by level.
	MethodLevelGraph
)

// SortMode orders the start literals of a separation round.
type SortMode int

const (
	// SortNone probes literals in index order and keeps a cursor
	// across rounds.
	SortNone SortMode = iota

	// SortMaxLPValue probes variables with large LP values first.
	SortMaxLPValue

	// SortMinLPValue probes variables with small LP values first.
	SortMinLPValue

	// SortMaxFractionality probes the most fractional variables first.
	SortMaxFractionality

	// SortMinFractionality probes the least fractional variables first.
	SortMinFractionality
)

// Outcome summarizes one separation round.
type Outcome int

const (
	// NotAttempted means a precondition failed and nothing was searched.
	NotAttempted Outcome = iota

	// NoCuts means the search ran but produced nothing.
	NoCuts

	// CutsFound means at least one cut was accepted by the consumer.
	CutsFound

	// BoundsTightened means a variable bound was fixed; it is kept
	// even when cuts were found as well, since the domain reduction
	// invalidates the current LP basis anyway.
	BoundsTightened
)

// String returns a short human-readable name of the outcome.
func (o Outcome) String() string {
	switch o {
	case NotAttempted:
		return "not attempted"
	case NoCuts:
		return "no cuts"
	case CutsFound:
		return "cuts found"
	case BoundsTightened:
		return "bounds tightened"
	}
	return "unknown"
}

// Consumer receives assembled, violated cuts. AddCut reports whether
// the cut was actually accepted, so the caller can keep its quota and
// coverage bookkeeping exact.
type Consumer interface {
	AddCut(q *cut.Inequality) (accepted bool, err error)
}

// Tightener applies variable bound fixes implied by degenerate cycles.
type Tightener interface {
	TightenUpper(variable int, bound float64) error
	TightenLower(variable int, bound float64) error
}

// Problem is one separation request.
type Problem struct {
	// Oracle provides the implication and clique structure.
	Oracle core.Oracle

	// Solution holds the LP value of every binary variable.
	Solution []float64

	// RootNode switches to the root-node round and cut limits.
	RootNode bool

	// Rounds counts separation rounds already run at this node.
	Rounds int

	// Consumer receives the cuts. Required.
	Consumer Consumer

	// Tightener receives bound fixes. Optional.
	Tightener Tightener

	// Budget caps graph memory. Optional; nil means unlimited. When
	// the budget runs out the round stops, keeping the cuts already
	// submitted.
	Budget core.Budget
}
