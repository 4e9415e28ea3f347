package core

import "fmt"

// Oracle is the host-facing view on the implication structure of a
// binary program. Implementations must be stable for the duration of a
// separation call.
//
// Implications(l) lists the literals m with l + m <= 1, i.e. l = 1
// forces m = 0. Cliques(l) lists the cliques containing l; all members
// of a clique are pairwise exclusive. Neither list needs to be
// transitively closed; the separator compensates for incomplete
// oracles with optional self-arcs between a literal and its negation.
type Oracle interface {
	// NumBinVars returns the number of binary variables n.
	NumBinVars() int

	// NumImplications returns the total number of stored implications.
	NumImplications() int

	// NumCliques returns the total number of stored cliques.
	NumCliques() int

	// Implications returns the literals implied to zero when l is one.
	Implications(l Literal) []Literal

	// Cliques returns the cliques l participates in, l included.
	Cliques(l Literal) [][]Literal
}

// Store is an in-memory Oracle. It records implications symmetrically:
// AddImplication(a, b) states a + b <= 1, so b appears in
// Implications(a) and a appears in Implications(b).
type Store struct {
	nbin    int
	impl    [][]Literal
	cliques [][]Literal
	byLit   [][]int
	nimpl   int
}

// NewStore returns an empty Store for nbin binary variables.
func NewStore(nbin int) *Store {
	return &Store{
		nbin:  nbin,
		impl:  make([][]Literal, 2*nbin),
		byLit: make([][]int, 2*nbin),
	}
}

// NumBinVars returns the number of binary variables.
func (s *Store) NumBinVars() int { return s.nbin }

// NumImplications returns the number of stored implication directions.
func (s *Store) NumImplications() int { return s.nimpl }

// NumCliques returns the number of stored cliques.
func (s *Store) NumCliques() int { return len(s.cliques) }

// AddImplication records a + b <= 1 for the two literals. The special
// case a == b states that the literal must be zero and is stored once.
func (s *Store) AddImplication(a, b Literal) error {
	if !a.Valid(s.nbin) {
		return fmt.Errorf("%w: %d", ErrLiteralRange, a)
	}
	if !b.Valid(s.nbin) {
		return fmt.Errorf("%w: %d", ErrLiteralRange, b)
	}
	s.impl[a] = append(s.impl[a], b)
	s.nimpl++
	if a != b {
		s.impl[b] = append(s.impl[b], a)
		s.nimpl++
	}
	return nil
}

// AddClique records a set of pairwise exclusive literals.
func (s *Store) AddClique(members ...Literal) error {
	for _, m := range members {
		if !m.Valid(s.nbin) {
			return fmt.Errorf("%w: %d", ErrLiteralRange, m)
		}
	}
	idx := len(s.cliques)
	clique := make([]Literal, len(members))
	copy(clique, members)
	s.cliques = append(s.cliques, clique)
	for _, m := range clique {
		s.byLit[m] = append(s.byLit[m], idx)
	}
	return nil
}

// Implications returns the literals forced to zero when l is one.
func (s *Store) Implications(l Literal) []Literal { return s.impl[l] }

// Cliques returns the cliques containing l.
func (s *Store) Cliques(l Literal) [][]Literal {
	ids := s.byLit[l]
	if len(ids) == 0 {
		return nil
	}
	out := make([][]Literal, len(ids))
	for i, id := range ids {
		out[i] = s.cliques[id]
	}
	return out
}
