// Package core defines the literal model shared by every odd-cycle
// separation method in this module.
//
// A binary program with n binary variables induces 2n literals:
// literal i (i < n) stands for variable i taking value 1, literal i+n
// stands for variable i taking value 0. Implications and cliques over
// these literals form the fractional implication graph in which every
// odd cycle yields a valid inequality
//
//	sum of cycle literals <= (|C|-1)/2.
//
// The package provides:
//
//   - Literal and its negation/indexing arithmetic,
//   - Oracle, the host-facing view on implications and cliques,
//     together with Store, an in-memory implementation,
//   - Adjacency, the oracle adapter that filters integral literals and
//     converts LP values into the scaled integer arc weights used by
//     both search graphs,
//   - Tolerances for feasibility-aware rounding and integrality tests,
//   - Budget, a byte budget consulted whenever a search graph wants to
//     grow one of its dynamic arrays.
package core
