// Package sepa drives odd-cycle separation over a binary program.
//
// Given the LP values of the binary variables and an implication
// oracle, a Separator searches the fractional implication graph for
// odd cycles whose inequality sum(C) <= (|C|-1)/2 is violated, repairs
// cycles containing a variable together with its negation, optionally
// lifts the inequalities and hands accepted cuts to a Consumer.
//
// Two search methods are available: the classical one of Groetschel,
// Lovasz and Schrijver runs shortest paths on a mirrored double cover
// (package bipartite); the heuristic of Hoffman and Padberg grows a
// level graph per root and closes cycles over its cross edges (package
// levelgraph). Both scan the same configurable window of start
// literals per round, and the unsorted order keeps a cursor across
// rounds so consecutive rounds probe different regions.
//
// A cycle degenerating to a single literal is reported as a variable
// bound fix through the optional Tightener instead of a cut.
package sepa
