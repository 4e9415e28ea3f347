package core

// Adjacency adapts an Oracle to the fractional implication graph over
// literals. It precomputes the literal values of the current solution,
// filters neighbors whose variables sit at an integral value and turns
// LP values into the scaled integer arc weights
//
//	w(u,v) = max(ceil(scale * (1 - val(u) - val(v))), minWeight),
//
// so that short paths correspond to strongly violated cycles.
type Adjacency struct {
	oracle    Oracle
	nbin      int
	vals      []float64 // literal values, length 2n
	scale     int64
	minWeight int64
	tol       Tolerances
}

// NewAdjacency wraps oracle for the given variable solution. The
// solution holds one value per binary variable; literal values for the
// negations are derived as 1-v.
func NewAdjacency(oracle Oracle, solution []float64, scale, minWeight int64, tol Tolerances) (*Adjacency, error) {
	if oracle == nil {
		return nil, ErrNilOracle
	}
	nbin := oracle.NumBinVars()
	if len(solution) != nbin {
		return nil, ErrSolutionSize
	}
	vals := make([]float64, 2*nbin)
	for i := 0; i < nbin; i++ {
		vals[i] = solution[i]
		vals[i+nbin] = 1.0 - solution[i]
	}
	return &Adjacency{
		oracle:    oracle,
		nbin:      nbin,
		vals:      vals,
		scale:     scale,
		minWeight: minWeight,
		tol:       tol,
	}, nil
}

// NumBinVars returns the number of binary variables.
func (a *Adjacency) NumBinVars() int { return a.nbin }

// NumNodes returns the number of literal nodes, 2n.
func (a *Adjacency) NumNodes() int { return 2 * a.nbin }

// Value returns the solution value of literal l.
func (a *Adjacency) Value(l Literal) float64 { return a.vals[l] }

// Values returns the literal value vector of length 2n.
func (a *Adjacency) Values() []float64 { return a.vals }

// Fractional reports whether literal l has a fractional value.
func (a *Adjacency) Fractional(l Literal) bool {
	return !a.tol.IsIntegral(a.vals[l])
}

// Tolerances returns the numeric tolerances in use.
func (a *Adjacency) Tolerances() Tolerances { return a.tol }

// Weight returns the scaled arc weight between two literals.
func (a *Adjacency) Weight(u, v Literal) int64 {
	w := int64(a.tol.Ceil(float64(a.scale) * (1.0 - a.vals[u] - a.vals[v])))
	if w < a.minWeight {
		return a.minWeight
	}
	return w
}

// Degree returns the number of implications and cliques of literal l.
func (a *Adjacency) Degree(l Literal) (nimpls, ncliques int) {
	return len(a.oracle.Implications(l)), len(a.oracle.Cliques(l))
}

// Neighbors visits every fractional neighbor of u together with the
// arc weight, first along implications, then along cliques. Clique
// members on the same variable as u are skipped; implications may
// target u itself (stating u = 0). Returning false from visit stops
// the iteration early.
func (a *Adjacency) Neighbors(u Literal, visit func(v Literal, w int64) bool) {
	for _, v := range a.oracle.Implications(u) {
		if !a.Fractional(v) {
			continue
		}
		if !visit(v, a.Weight(u, v)) {
			return
		}
	}
	uvar := u.Var(a.nbin)
	for _, clique := range a.oracle.Cliques(u) {
		for _, v := range clique {
			if v.Var(a.nbin) == uvar {
				continue
			}
			if !a.Fractional(v) {
				continue
			}
			if !visit(v, a.Weight(u, v)) {
				return
			}
		}
	}
}

// IsNeighbor reports whether two literals are adjacent in the
// implication graph, ignoring fractionality. Literals on the same
// variable are never adjacent.
func (a *Adjacency) IsNeighbor(u, v Literal) bool {
	if u.Var(a.nbin) == v.Var(a.nbin) {
		return false
	}

	// Nodes without any implication data cannot be connected.
	ui, uc := a.Degree(u)
	vi, vc := a.Degree(v)
	if ui+uc == 0 || vi+vc == 0 {
		return false
	}
	if (vi == 0 && uc == 0) || (ui == 0 && vc == 0) {
		return false
	}

	// Scan the smaller of the two adjacency descriptions.
	if ui+2*uc > vi+2*vc {
		u, v = v, u
	}
	for _, m := range a.oracle.Implications(u) {
		if m == v {
			return true
		}
	}
	for _, clique := range a.oracle.Cliques(u) {
		for _, m := range clique {
			if m == v {
				return true
			}
		}
	}
	return false
}
