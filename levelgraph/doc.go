// Package levelgraph implements the odd-cycle search heuristic of
// Hoffman and Padberg on a layered view of the fractional implication
// graph.
//
// A root literal forms level 0. Level k+1 collects the not yet placed
// neighbors of level k, up to a configurable per-level cap. While a
// level is materialized its arcs are classified as forward (to the
// next level), backward (to the previous level) or same-level; an arc
// between two nodes of the same level is a cross edge.
//
// A cross edge on level k closes two root paths into a cycle of length
// 2k+1, which is odd by construction. For each cross edge the search
// finds the shortest path from one endpoint to the root, blocks every
// neighbor of that path (the root's neighbors stay usable, the start
// node only blocks its previous level) and looks for a second,
// node-disjoint path from the other endpoint. The two paths plus the
// cross edge project to an odd cycle candidate.
//
// All adjacency is stored in flat arrays that grow by doubling under a
// byte budget, since the graph is rebuilt for every root.
package levelgraph
