package sepa

import (
	"context"
	"math"

	"github.com/katalvlaran/oddcycle/core"
	"github.com/katalvlaran/oddcycle/cut"
	"github.com/katalvlaran/oddcycle/cycle"
	"github.com/katalvlaran/oddcycle/levelgraph"
)

// runLevelGraph is the heuristic method: every admissible start
// literal roots a level graph, and each cross edge of a freshly built
// level closes an odd cycle through two node-disjoint root paths.
func (r *round) runLevelGraph(ctx context.Context) error {
	o := r.sep.opts
	n2 := 2 * r.nbin

	maxLevelSize := int(math.Ceil(float64(o.OffsetLevelNodes) + float64(n2)*float64(o.PercentLevelNodes)/100))
	lg, err := levelgraph.NewGraph(r.adj, r.prob.Budget, levelgraph.Options{
		MaxLevelSize:      maxLevelSize,
		AddSelfArcs:       o.AddSelfArcs,
		SortRootNeighbors: o.SortRootNeighbors,
	})
	if err != nil {
		return err
	}

	asm, err := cut.NewAssembler(r.adj, lg.IsNeighbor, cut.Options{
		Lift:                o.Lift,
		IncludeTriangles:    o.IncludeTriangles,
		LPWeightedLiftCoef:  o.LPWeightedLiftCoef,
		CalcLiftCoefPerStep: o.CalcLiftCoefPerStep,
	})
	if err != nil {
		return err
	}

	blocked := make([]bool, n2)
	starts := r.startOrder()
	maxStarts := r.maxStarts()
	started := 0

	idx := r.sep.lastRoot
	for ; idx < n2 && started < maxStarts && r.added < r.quota; idx++ {
		if err := stop(ctx); err != nil {
			r.advanceCursor(idx)
			return err
		}

		l := starts[idx]
		if r.covered[l] && !o.SearchMultiplePerNode {
			continue
		}
		if !r.adj.Fractional(l) {
			continue
		}

		// The variable pair needs at least two arcs for any cycle, and
		// the root literal itself needs an arc to start from (two, if
		// self-arcs do not compensate for a missing second one).
		pi, pc := r.adj.Degree(l)
		ni, nc := r.adj.Degree(l.Negation(r.nbin))
		if pi+ni < 2 && pc+nc < 1 {
			continue
		}
		if pi < 1 && pc < 1 {
			continue
		}
		if !o.AddSelfArcs && pi < 2 && pc < 1 {
			continue
		}

		started++
		ncutsRoot := 0
		if err := lg.Reset(l); err != nil {
			r.advanceCursor(idx)
			return err
		}

		for {
			nnew, err := lg.GrowLevel()
			if err != nil {
				r.advanceCursor(idx)
				return err
			}

			// Cross edges of the processed level close cycles of
			// length 2k+1; level 1 yields triangles.
			k := lg.Levels() - 1
			if k > 0 && (o.IncludeTriangles || k > 1) {
				ncutsLevel := 0
				maxLevelCuts := o.MaxCutsPerLevel
				if c := o.MaxCutsPerRoot - ncutsRoot; c < maxLevelCuts {
					maxLevelCuts = c
				}
				if c := r.quota - r.added; c < maxLevelCuts {
					maxLevelCuts = c
				}

				for _, ce := range lg.CrossEdges(k) {
					if ncutsLevel >= maxLevelCuts {
						break
					}
					if err := stop(ctx); err != nil {
						r.advanceCursor(idx)
						return err
					}
					added, err := r.closeCrossEdge(asm, lg, ce, blocked)
					if err != nil {
						r.advanceCursor(idx)
						return err
					}
					if added {
						ncutsRoot++
						ncutsLevel++
					}
				}
			}

			if nnew == 0 || lg.Levels() >= o.MaxLevels ||
				ncutsRoot >= o.MaxCutsPerRoot || r.added >= r.quota {
				break
			}
		}
	}

	r.advanceCursor(idx)
	return nil
}

// closeCrossEdge tries to turn one cross edge into a cut: shortest
// path from the source to the root, a node-disjoint unblocked path
// from the target, and the cross edge itself close the cycle.
func (r *round) closeCrossEdge(asm *cut.Assembler, lg *levelgraph.Graph, ce levelgraph.CrossEdge, blocked []bool) (bool, error) {
	root := lg.Root()

	parent := lg.ShortestPathToRoot(ce.Source)
	if parent[root] < 0 {
		return false, nil
	}

	for i := range blocked {
		blocked[i] = false
	}
	lg.BlockPath(parent, ce.Source, blocked)
	if blocked[ce.Target] {
		return false, nil
	}

	pred := lg.UnblockedPathFromRoot(ce.Target, blocked)
	if pred[ce.Target] < 0 {
		return false, nil
	}

	// Walk target -> root -> source, then close over the cross edge.
	ch := cycle.NewChain(r.nbin, ce.Target)
	ok := true
	u := ce.Target
	for ok && u != root {
		p := core.Literal(pred[u])
		ok = ch.Extend(u, p, r.covered, r.pol)
		u = p
	}
	for ok && u != ce.Source {
		p := core.Literal(parent[u])
		ok = ch.Extend(u, p, r.covered, r.pol)
		u = p
	}
	if ok {
		ok = ch.Extend(ce.Source, ce.Target, r.covered, r.pol)
	}
	if !ok {
		return false, nil
	}
	return r.emit(asm, ch)
}
