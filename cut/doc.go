// Package cut turns repaired odd cycles into valid inequalities over
// the problem's binary variables.
//
// A cycle C of literals yields sum(C) <= (|C|-1)/2. A negated literal
// contributes its variable with coefficient -1 and lowers the right
// hand side by one. Degenerate cycles of a single literal force that
// literal to zero and are reported as a variable bound fix instead of
// a row.
//
// The optional lifting step raises coefficients of non-cycle literals
// with a chain-counting heuristic: a candidate adjacent to every node
// of a chain of k consecutive cycle nodes gains floor((k+1)/2) from
// that chain, and chains claimed by earlier lifted nodes not adjacent
// to the candidate are skipped. The result is always a valid, possibly
// stronger inequality.
package cut
