// Package bipartite implements the classical odd-cycle search of
// Groetschel, Lovasz and Schrijver on a mirrored double cover of the
// fractional implication graph.
//
// For a problem with n binary variables the cover has 4n nodes in four
// segments:
//
//	I   0..n-1    variables, first partition
//	II  n..2n-1   negations, first partition
//	III 2n..3n-1  variables, second partition
//	IV  3n..4n-1  negations, second partition
//
// Every implication arc u-v becomes an arc from
// u in the first partition to the copy of v in the second partition,
// plus the mirrored arc from the copy of u to v. A shortest path from
// a literal to its own copy alternates between the partitions, so its
// projection onto literals is a closed walk of odd length.
//
// The shortest-path search is a plain Dijkstra over the arc arrays
// with a lazy-decrease-key binary heap.
package bipartite
