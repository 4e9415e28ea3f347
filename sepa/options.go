package sepa

import (
	"fmt"

	"github.com/katalvlaran/oddcycle/core"
)

// Options configures a Separator. Zero values are not meaningful;
// start from DefaultOptions (New does this for you).
type Options struct {
	// Method selects the search algorithm.
	Method Method

	// Scale converts fractional arc weights 1-x(u)-x(v) to integers.
	Scale int64

	// MinArcWeight floors every arc weight.
	MinArcWeight int64

	// Lift enables the chain-counting lifting heuristic.
	Lift bool

	// LPWeightedLiftCoef weights lifting candidates by their LP value.
	LPWeightedLiftCoef bool

	// CalcLiftCoefPerStep recomputes lifting coefficients after every
	// lifted node.
	CalcLiftCoefPerStep bool

	// Repair removes variable/negation pairs from damaged cycles
	// instead of discarding the cycle.
	Repair bool

	// AllowMultiplePerNode admits literals already covered by a cut of
	// this round into further cycles.
	AllowMultiplePerNode bool

	// SearchMultiplePerNode also starts searches at covered literals.
	SearchMultiplePerNode bool

	// AddSelfArcs links every literal to its negation with weight zero.
	AddSelfArcs bool

	// IncludeTriangles admits cycles of length three.
	IncludeTriangles bool

	// SortMode orders the start literals of a round.
	SortMode SortMode

	// SortRootNeighbors expands root neighbors by decreasing
	// fractionality in the level graph.
	SortRootNeighbors bool

	// MaxSepaCuts and MaxSepaCutsRoot cap accepted cuts per round.
	MaxSepaCuts     int
	MaxSepaCutsRoot int

	// MaxRounds and MaxRoundsRoot cap separation rounds per node.
	MaxRounds     int
	MaxRoundsRoot int

	// PercentTestVars and OffsetTestVars size the start window:
	// ceil(OffsetTestVars + 2n * PercentTestVars / 100) literals.
	PercentTestVars int
	OffsetTestVars  int

	// MaxLevels caps the depth of the level graph.
	MaxLevels int

	// MaxCutsPerRoot and MaxCutsPerLevel cap the level graph harvest.
	MaxCutsPerRoot  int
	MaxCutsPerLevel int

	// PercentLevelNodes and OffsetLevelNodes size a level:
	// ceil(OffsetLevelNodes + 2n * PercentLevelNodes / 100) nodes.
	PercentLevelNodes int
	OffsetLevelNodes  int

	// Tol holds the feasibility tolerance.
	Tol core.Tolerances
}

// DefaultOptions returns the standard configuration.
func DefaultOptions() Options {
	return Options{
		Method:                MethodBipartite,
		Scale:                 1000,
		MinArcWeight:          0,
		Lift:                  false,
		LPWeightedLiftCoef:    false,
		CalcLiftCoefPerStep:   true,
		Repair:                true,
		AllowMultiplePerNode:  true,
		SearchMultiplePerNode: false,
		AddSelfArcs:           true,
		IncludeTriangles:      true,
		SortMode:              SortMaxFractionality,
		SortRootNeighbors:     true,
		MaxSepaCuts:           5000,
		MaxSepaCutsRoot:       5000,
		MaxRounds:             10,
		MaxRoundsRoot:         10,
		PercentTestVars:       0,
		OffsetTestVars:        100,
		MaxLevels:             20,
		MaxCutsPerRoot:        1,
		MaxCutsPerLevel:       50,
		PercentLevelNodes:     100,
		OffsetLevelNodes:      10,
		Tol:                   core.DefaultTolerances(),
	}
}

// Option mutates an Options value.
type Option func(*Options)

// WithMethod selects the search algorithm.
func WithMethod(m Method) Option {
	return func(o *Options) { o.Method = m }
}

// WithScale sets the arc weight scaling factor.
func WithScale(s int64) Option {
	return func(o *Options) { o.Scale = s }
}

// WithMinArcWeight floors every arc weight.
func WithMinArcWeight(w int64) Option {
	return func(o *Options) { o.MinArcWeight = w }
}

// WithLifting toggles the lifting heuristic.
func WithLifting(enabled bool) Option {
	return func(o *Options) { o.Lift = enabled }
}

// WithLPWeightedLiftCoef toggles LP-weighted lifting candidate choice.
func WithLPWeightedLiftCoef(enabled bool) Option {
	return func(o *Options) { o.LPWeightedLiftCoef = enabled }
}

// WithLiftCoefPerStep toggles per-step recomputation of lifting
// coefficients.
func WithLiftCoefPerStep(enabled bool) Option {
	return func(o *Options) { o.CalcLiftCoefPerStep = enabled }
}

// WithRepair toggles cycle repairing.
func WithRepair(enabled bool) Option {
	return func(o *Options) { o.Repair = enabled }
}

// WithAllowMultiplePerNode toggles reuse of covered literals in cycles.
func WithAllowMultiplePerNode(enabled bool) Option {
	return func(o *Options) { o.AllowMultiplePerNode = enabled }
}

// WithSearchMultiplePerNode toggles starting searches at covered
// literals.
func WithSearchMultiplePerNode(enabled bool) Option {
	return func(o *Options) { o.SearchMultiplePerNode = enabled }
}

// WithSelfArcs toggles weight-zero arcs between a literal and its
// negation.
func WithSelfArcs(enabled bool) Option {
	return func(o *Options) { o.AddSelfArcs = enabled }
}

// WithTriangles toggles length-three cycles.
func WithTriangles(enabled bool) Option {
	return func(o *Options) { o.IncludeTriangles = enabled }
}

// WithSortMode orders the start literals.
func WithSortMode(m SortMode) Option {
	return func(o *Options) { o.SortMode = m }
}

// WithSortRootNeighbors toggles fractionality-sorted root expansion.
func WithSortRootNeighbors(enabled bool) Option {
	return func(o *Options) { o.SortRootNeighbors = enabled }
}

// WithCutLimits caps accepted cuts per round, at inner nodes and at
// the root node.
func WithCutLimits(perRound, perRoundRoot int) Option {
	return func(o *Options) {
		o.MaxSepaCuts = perRound
		o.MaxSepaCutsRoot = perRoundRoot
	}
}

// WithRoundLimits caps separation rounds per node, at inner nodes and
// at the root node.
func WithRoundLimits(rounds, roundsRoot int) Option {
	return func(o *Options) {
		o.MaxRounds = rounds
		o.MaxRoundsRoot = roundsRoot
	}
}

// WithTestVars sizes the start literal window.
func WithTestVars(percent, offset int) Option {
	return func(o *Options) {
		o.PercentTestVars = percent
		o.OffsetTestVars = offset
	}
}

// WithLevelLimits caps the level graph search.
func WithLevelLimits(maxLevels, maxCutsPerRoot, maxCutsPerLevel int) Option {
	return func(o *Options) {
		o.MaxLevels = maxLevels
		o.MaxCutsPerRoot = maxCutsPerRoot
		o.MaxCutsPerLevel = maxCutsPerLevel
	}
}

// WithLevelNodes sizes one level of the level graph.
func WithLevelNodes(percent, offset int) Option {
	return func(o *Options) {
		o.PercentLevelNodes = percent
		o.OffsetLevelNodes = offset
	}
}

// WithTolerances sets the numeric tolerances.
func WithTolerances(tol core.Tolerances) Option {
	return func(o *Options) { o.Tol = tol }
}

// validate checks all option values and reports the first violation.
func (o *Options) validate() error {
	switch {
	case o.Method != MethodBipartite && o.Method != MethodLevelGraph:
		return fmt.Errorf("%w: unknown method %d", ErrOptionViolation, o.Method)
	case o.Scale < 1:
		return fmt.Errorf("%w: scale %d < 1", ErrOptionViolation, o.Scale)
	case o.MinArcWeight < 0:
		return fmt.Errorf("%w: negative minimum arc weight %d", ErrOptionViolation, o.MinArcWeight)
	case o.SortMode < SortNone || o.SortMode > SortMinFractionality:
		return fmt.Errorf("%w: unknown sort mode %d", ErrOptionViolation, o.SortMode)
	case o.MaxSepaCuts < 0 || o.MaxSepaCutsRoot < 0:
		return fmt.Errorf("%w: negative cut limit", ErrOptionViolation)
	case o.MaxRounds < 0 || o.MaxRoundsRoot < 0:
		return fmt.Errorf("%w: negative round limit", ErrOptionViolation)
	case o.PercentTestVars < 0 || o.PercentTestVars > 100:
		return fmt.Errorf("%w: test vars percentage %d outside [0,100]", ErrOptionViolation, o.PercentTestVars)
	case o.OffsetTestVars < 0:
		return fmt.Errorf("%w: negative test vars offset %d", ErrOptionViolation, o.OffsetTestVars)
	case o.MaxLevels < 1:
		return fmt.Errorf("%w: level limit %d < 1", ErrOptionViolation, o.MaxLevels)
	case o.MaxCutsPerRoot < 1 || o.MaxCutsPerLevel < 1:
		return fmt.Errorf("%w: level graph cut limits must be positive", ErrOptionViolation)
	case o.PercentLevelNodes < 0 || o.PercentLevelNodes > 100:
		return fmt.Errorf("%w: level nodes percentage %d outside [0,100]", ErrOptionViolation, o.PercentLevelNodes)
	case o.OffsetLevelNodes < 0:
		return fmt.Errorf("%w: negative level nodes offset %d", ErrOptionViolation, o.OffsetLevelNodes)
	case o.Tol.Feas <= 0:
		return fmt.Errorf("%w: feasibility tolerance must be positive", ErrOptionViolation)
	}
	return nil
}
