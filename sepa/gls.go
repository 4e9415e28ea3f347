package sepa

import (
	"context"
	"errors"

	"github.com/katalvlaran/oddcycle/bipartite"
	"github.com/katalvlaran/oddcycle/core"
	"github.com/katalvlaran/oddcycle/cut"
	"github.com/katalvlaran/oddcycle/cycle"
)

// runBipartite is the classical method: for every start literal find a
// shortest path to its own copy in the mirrored double cover and
// project it back to an odd cycle.
func (r *round) runBipartite(ctx context.Context) error {
	o := r.sep.opts

	g, err := bipartite.Build(r.adj, r.prob.Budget, o.AddSelfArcs)
	if err != nil {
		if errors.Is(err, bipartite.ErrEmptyGraph) {
			return nil
		}
		return err
	}

	asm, err := cut.NewAssembler(r.adj, g.IsNeighbor, cut.Options{
		Lift:                o.Lift,
		IncludeTriangles:    o.IncludeTriangles,
		LPWeightedLiftCoef:  o.LPWeightedLiftCoef,
		CalcLiftCoefPerStep: o.CalcLiftCoefPerStep,
	})
	if err != nil {
		return err
	}

	n2 := 2 * r.nbin
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
		u := int(l)

		// A node with less than two arcs cannot lie on an odd cycle
		// (one arc only yields circuits visiting the neighbor twice).
		if g.OutDegree(u) < 2 {
			continue
		}
		if r.covered[l] && !o.SearchMultiplePerNode {
			continue
		}
		started++

		dist, pred := g.ShortestPath(u)
		end := u + n2
		if dist[end] == bipartite.Unreached {
			continue
		}

		// Project the path back to literals. The walk starts at the
		// copy of l and alternates partitions on every step.
		ch := cycle.NewChain(r.nbin, l)
		ok := true
		down := true
		for node := end; node != u && ok; down = !down {
			p := int(pred[node])
			var x, px core.Literal
			if down {
				x = core.Literal(node - n2)
				px = core.Literal(p)
			} else {
				x = core.Literal(node)
				px = core.Literal(p - n2)
			}
			ok = ch.Extend(x, px, r.covered, r.pol)
			node = p
		}
		if !ok {
			continue
		}

		if _, err := r.emit(asm, ch); err != nil {
			r.advanceCursor(idx)
			return err
		}
	}

	r.advanceCursor(idx)
	return nil
}
