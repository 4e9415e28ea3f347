package cut

import "github.com/katalvlaran/oddcycle/core"

// lifter runs the chain-counting heuristic after Alvarez-Valdes,
// Parreno and Tamarit for one cycle. Every candidate literal outside
// the cycle collects floor((k+1)/2) for each maximal chain of k cycle
// nodes it is fully adjacent to; chains already claimed by a lifted
// node not adjacent to the candidate are excluded. Lifting greedily by
// this coefficient keeps the inequality valid.
type lifter struct {
	a     *Assembler
	cycle []core.Literal
	n     int // 2*nbin literals

	// myi flags cycle positions that are inner points of a chain
	// adjacent to the current candidate. Scratch for getCoef.
	myi []bool

	lifted   []core.Literal
	liftcoef []int
}

func (lf *lifter) nb(a, b core.Literal) bool { return lf.a.neighbor(a, b) }

func (lf *lifter) run() {
	nbin := lf.a.adj.NumBinVars()

	cand := make([]bool, lf.n)
	for i := range cand {
		cand[i] = true
	}
	for _, l := range lf.cycle {
		cand[l] = false
		cand[l.Negation(nbin)] = false
	}

	coef := make([]int, lf.n)
	first := true
	for {
		// 1) Coefficients of the remaining candidates; hopeless ones
		//    are dropped for good.
		if lf.a.opts.CalcLiftCoefPerStep || first {
			for i := range cand {
				if !cand[i] {
					continue
				}
				coef[i] = lf.getCoef(core.Literal(i))
				if coef[i] < 1 {
					cand[i] = false
				}
			}
		}
		first = false

		// 2) Pick the best candidate, raw or LP-weighted.
		best := -1
		for i := range cand {
			if !cand[i] {
				continue
			}
			switch {
			case best < 0:
				best = i
			case lf.a.opts.LPWeightedLiftCoef:
				if float64(coef[i])*lf.a.adj.Value(core.Literal(i)) >
					float64(coef[best])*lf.a.adj.Value(core.Literal(best)) {
					best = i
				}
			default:
				if coef[i] > coef[best] {
					best = i
				}
			}
		}
		if best < 0 {
			return
		}

		// 3) Without per-step recomputation the stored coefficient is
		//    stale, so reevaluate the winner before accepting it.
		if !lf.a.opts.CalcLiftCoefPerStep {
			coef[best] = lf.getCoef(core.Literal(best))
		}
		cand[best] = false
		if coef[best] > 0 {
			b := core.Literal(best)
			cand[b.Negation(nbin)] = false
			lf.lifted = append(lf.lifted, b)
			lf.liftcoef = append(lf.liftcoef, coef[best])
		}
	}
}

// getCoef computes the lifting coefficient of candidate i against the
// current set of lifted nodes.
func (lf *lifter) getCoef(i core.Literal) int {
	k := len(lf.cycle)

	// 1) Mark inner points: cycle position j is an inner point when i
	//    is adjacent to j and both its cycle neighbors.
	for j := 1; j < k-1; j++ {
		lf.myi[j] = lf.nb(i, lf.cycle[j-1]) && lf.nb(i, lf.cycle[j]) && lf.nb(i, lf.cycle[j+1])
	}
	lf.myi[0] = lf.nb(i, lf.cycle[k-1]) && lf.nb(i, lf.cycle[0]) && lf.nb(i, lf.cycle[1])
	lf.myi[k-1] = lf.nb(i, lf.cycle[k-2]) && lf.nb(i, lf.cycle[k-1]) && lf.nb(i, lf.cycle[0])

	// 2) Unmark windows claimed by lifted nodes not adjacent to i.
	for j := 1; j < k-1; j++ {
		lf.block(j-1, j, j+1, i)
	}
	lf.block(k-2, k-1, 0, i)
	lf.block(k-1, 0, 1, i)

	// 3) Sum chain contributions. A chain through position 0 wraps
	//    around the cycle array and is measured first.
	coef := 0
	run := 0
	end := k
	if lf.myi[0] {
		run++
		end = k - 1
		for end > 0 && lf.myi[end] {
			run++
			end--
		}
		if end == 0 {
			return (k - 1) / 2
		}
		if !lf.myi[1] {
			coef = (run + 1) / 2
			run = 0
		}
	}

	j := 1
	for j < end {
		for j < end && !lf.myi[j] {
			j++
		}
		for j < end && lf.myi[j] {
			run++
			j++
		}
		if run > 0 {
			coef += (run + 1) / 2
			run = 0
		}
	}
	return coef
}

// block clears the 3-window a,b,c when all three positions are
// adjacent to an already lifted node that is not adjacent to i.
func (lf *lifter) block(a, b, c int, i core.Literal) {
	for k := 0; k < len(lf.lifted) && (lf.myi[a] || lf.myi[b] || lf.myi[c]); k++ {
		l := lf.lifted[k]
		if !lf.nb(i, l) && lf.nb(lf.cycle[a], l) && lf.nb(lf.cycle[b], l) && lf.nb(lf.cycle[c], l) {
			lf.myi[a] = false
			lf.myi[b] = false
			lf.myi[c] = false
		}
	}
}
