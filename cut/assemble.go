package cut

import (
	"github.com/katalvlaran/oddcycle/core"
	"github.com/katalvlaran/oddcycle/cycle"
)

// Assembler converts closed chains into inequalities or bound fixes.
type Assembler struct {
	adj      *core.Adjacency
	neighbor NeighborFunc
	opts     Options
}

// NewAssembler returns an assembler over the given adjacency. A nil
// neighbor test falls back to the oracle adjacency.
func NewAssembler(adj *core.Adjacency, neighbor NeighborFunc, opts Options) (*Assembler, error) {
	if adj == nil {
		return nil, ErrNilAdjacency
	}
	if neighbor == nil {
		neighbor = adj.IsNeighbor
	}
	return &Assembler{adj: adj, neighbor: neighbor, opts: opts}, nil
}

// Assemble materializes the chain and produces either an inequality, a
// bound fix for a single-literal cycle, or nothing when the cycle is
// suppressed. The chain must be closed.
func (a *Assembler) Assemble(ch *cycle.Chain) (Kind, *Inequality, *Fix) {
	lits := ch.Slice()
	k := len(lits)
	nbin := a.adj.NumBinVars()

	if k == 0 || k%2 == 0 {
		return KindNone, nil, nil
	}

	// A one-literal cycle forces the literal to zero.
	if k < 3 {
		l := lits[0]
		f := &Fix{Var: l.Var(nbin)}
		if l.Negated(nbin) {
			f.Value = 1
		}
		return KindFix, nil, f
	}

	if k < 5 && !a.opts.IncludeTriangles {
		return KindNone, nil, nil
	}

	var lifted []core.Literal
	var liftcoef []int
	if a.opts.Lift {
		lf := &lifter{a: a, cycle: lits, n: 2 * nbin, myi: make([]bool, k)}
		lf.run()
		lifted, liftcoef = lf.lifted, lf.liftcoef
	}

	// Accumulate per variable: a negated literal flips the sign of its
	// coefficient and lowers the right hand side by the same amount.
	coef := make([]float64, nbin)
	rhs := float64(k-1) / 2
	add := func(l core.Literal, w float64) {
		if l.Negated(nbin) {
			coef[l.Var(nbin)] -= w
			rhs -= w
		} else {
			coef[l.Var(nbin)] += w
		}
	}
	for _, l := range lits {
		add(l, 1)
	}
	for i, l := range lifted {
		add(l, float64(liftcoef[i]))
	}

	q := &Inequality{RHS: rhs, NLifted: len(lifted)}
	for v := 0; v < nbin; v++ {
		if coef[v] != 0 {
			q.Vars = append(q.Vars, v)
			q.Coefs = append(q.Coefs, coef[v])
		}
	}
	return KindInequality, q, nil
}
