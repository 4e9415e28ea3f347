package sepa

import (
	"context"
	"errors"
	"math"
	"sort"

	"github.com/katalvlaran/oddcycle/core"
	"github.com/katalvlaran/oddcycle/cut"
	"github.com/katalvlaran/oddcycle/cycle"
)

// Separator searches for violated odd-cycle inequalities. It keeps
// lifetime counters and, in unsorted mode, a start cursor across
// rounds. A Separator is not safe for concurrent use.
type Separator struct {
	opts Options

	ncuts    int // accepted cuts over the lifetime
	nlifted  int // accepted cuts carrying lifted variables
	lastRoot int // start cursor, unsorted mode only
}

// New builds a Separator from the default options and the given
// overrides.
func New(opts ...Option) (*Separator, error) {
	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}
	if err := o.validate(); err != nil {
		return nil, err
	}
	return &Separator{opts: o}, nil
}

// Options returns a copy of the effective configuration.
func (s *Separator) Options() Options { return s.opts }

// Cuts returns the number of cuts accepted over the Separator's
// lifetime.
func (s *Separator) Cuts() int { return s.ncuts }

// LiftedCuts returns how many of the accepted cuts carry lifted
// variables.
func (s *Separator) LiftedCuts() int { return s.nlifted }

// Separate runs one separation round on the given problem. Cuts are
// handed to prob.Consumer as they are found; the outcome summarizes
// the round. Running out of budget ends the round early but is not an
// error, the cuts submitted so far stay valid.
func (s *Separator) Separate(ctx context.Context, prob Problem) (Outcome, error) {
	if prob.Oracle == nil {
		return NotAttempted, core.ErrNilOracle
	}
	if prob.Consumer == nil {
		return NotAttempted, ErrNilConsumer
	}

	nbin := prob.Oracle.NumBinVars()
	if len(prob.Solution) != nbin {
		return NotAttempted, core.ErrSolutionSize
	}

	// 1) Round limit for this node.
	if prob.RootNode {
		if prob.Rounds >= s.opts.MaxRoundsRoot {
			return NotAttempted, nil
		}
	} else if prob.Rounds >= s.opts.MaxRounds {
		return NotAttempted, nil
	}

	// 2) Enough binary and fractional variables for a cycle.
	need := 3
	if !s.opts.IncludeTriangles {
		need = 5
	}
	if nbin < need {
		return NotAttempted, nil
	}
	nfrac := 0
	for _, v := range prob.Solution {
		if !s.opts.Tol.IsIntegral(v) {
			nfrac++
		}
	}
	if nfrac < need {
		return NotAttempted, nil
	}

	// 3) Enough implication structure, and not cliques alone.
	if prob.Oracle.NumImplications() < 1 ||
		prob.Oracle.NumImplications()+prob.Oracle.NumCliques() < 3 {
		return NotAttempted, nil
	}

	adj, err := core.NewAdjacency(prob.Oracle, prob.Solution, s.opts.Scale, s.opts.MinArcWeight, s.opts.Tol)
	if err != nil {
		return NotAttempted, err
	}

	quota := s.opts.MaxSepaCuts
	if prob.RootNode {
		quota = s.opts.MaxSepaCutsRoot
	}

	r := &round{
		sep:     s,
		prob:    prob,
		adj:     adj,
		nbin:    nbin,
		quota:   quota,
		covered: make([]bool, 2*nbin),
		outcome: NoCuts,
		pol: cycle.Policy{
			Repair:               s.opts.Repair,
			AllowMultiplePerNode: s.opts.AllowMultiplePerNode,
		},
	}

	switch s.opts.Method {
	case MethodBipartite:
		err = r.runBipartite(ctx)
	default:
		err = r.runLevelGraph(ctx)
	}
	if err != nil && errors.Is(err, core.ErrBudgetExceeded) {
		err = nil
	}
	return r.outcome, err
}

// round is the mutable state of a single Separate call.
type round struct {
	sep  *Separator
	prob Problem
	adj  *core.Adjacency
	nbin int

	quota   int
	added   int // cuts accepted this round
	covered []bool
	outcome Outcome
	pol     cycle.Policy
}

// maxStarts sizes the start literal window of the round.
func (r *round) maxStarts() int {
	o := r.sep.opts
	return int(math.Ceil(float64(o.OffsetTestVars) + float64(2*r.nbin)*float64(o.PercentTestVars)/100))
}

// startOrder lists all 2n literals in probing order: the variable
// permutation of the sort mode first as positive literals, then as
// negations.
func (r *round) startOrder() []core.Literal {
	n := r.nbin
	starts := make([]core.Literal, 2*n)
	mode := r.sep.opts.SortMode
	if mode == SortNone {
		for i := range starts {
			starts[i] = core.Literal(i)
		}
		return starts
	}

	key := make([]float64, n)
	for v := 0; v < n; v++ {
		switch mode {
		case SortMaxLPValue, SortMinLPValue:
			key[v] = r.prob.Solution[v]
		default:
			key[v] = core.Fractionality(r.prob.Solution[v])
		}
	}
	desc := mode == SortMaxLPValue || mode == SortMaxFractionality

	perm := make([]int, n)
	for v := range perm {
		perm[v] = v
	}
	sort.SliceStable(perm, func(i, j int) bool {
		if desc {
			return key[perm[i]] > key[perm[j]]
		}
		return key[perm[i]] < key[perm[j]]
	})

	for j, v := range perm {
		starts[j] = core.Literal(v)
		starts[n+j] = core.Literal(v + n)
	}
	return starts
}

// advanceCursor persists the loop position for the next round. Sorted
// orders are recomputed per solution, so only the unsorted order keeps
// a cursor.
func (r *round) advanceCursor(idx int) {
	if r.sep.opts.SortMode != SortNone {
		return
	}
	if idx >= 2*r.nbin {
		r.sep.lastRoot = 0
	} else {
		r.sep.lastRoot = idx
	}
}

// emit assembles the closed chain and routes the result: bound fixes
// go to the Tightener, violated inequalities to the Consumer. Accepted
// cuts mark their cycle literals as covered.
func (r *round) emit(asm *cut.Assembler, ch *cycle.Chain) (bool, error) {
	kind, ineq, fix := asm.Assemble(ch)
	switch kind {
	case cut.KindFix:
		if r.prob.Tightener == nil {
			return false, nil
		}
		var err error
		if fix.Value == 0 {
			err = r.prob.Tightener.TightenUpper(fix.Var, 0)
		} else {
			err = r.prob.Tightener.TightenLower(fix.Var, 1)
		}
		if err != nil {
			return false, err
		}
		r.outcome = BoundsTightened

	case cut.KindInequality:
		// Not every odd cycle is violated, the implication data is
		// incomplete.
		if !ineq.Violated(r.prob.Solution, r.sep.opts.Tol) {
			return false, nil
		}
		accepted, err := r.prob.Consumer.AddCut(ineq)
		if err != nil {
			return false, err
		}
		if !accepted {
			return false, nil
		}
		r.added++
		r.sep.ncuts++
		if ineq.NLifted > 0 {
			r.sep.nlifted++
		}
		for _, l := range ch.Slice() {
			r.covered[l] = true
		}
		if r.outcome != BoundsTightened {
			r.outcome = CutsFound
		}
		return true, nil
	}
	return false, nil
}

// stop polls the context inside the search loops.
func stop(ctx context.Context) error {
	if ctx == nil {
		return nil
	}
	return ctx.Err()
}
