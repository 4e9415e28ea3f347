package levelgraph

import (
	"math"

	"github.com/katalvlaran/oddcycle/core"
)

// unreached marks a node the path search did not relax.
const unreached = int64(math.MaxInt64)

// ShortestPathToRoot finds cheapest paths from start toward the root
// using only backward arcs, so every step descends one level. The
// returned parent array points from each reached node toward start;
// walking parent from the root therefore spells the path root..start.
// parent[root] is unset when the root was not reached.
func (g *Graph) ShortestPathToRoot(start core.Literal) []int32 {
	return g.pathToRoot(start, nil)
}

// UnblockedPathFromRoot repeats the search from start while skipping
// blocked literals (the root is always admissible), then reorients the
// result: the returned pred array points from each path node toward
// the root, so walking pred from start spells the path start..root.
// All entries are unset when no unblocked path exists.
func (g *Graph) UnblockedPathFromRoot(start core.Literal, blocked []bool) []int32 {
	parent := g.pathToRoot(start, blocked)

	pred := make([]int32, g.n)
	for i := range pred {
		pred[i] = unset
	}
	if parent[g.root] == unset {
		return pred
	}

	v := int32(g.root)
	path := []int32{v}
	for parent[v] != unset {
		path = append(path, parent[v])
		v = parent[v]
	}
	for i := len(path) - 1; i > 0; i-- {
		pred[path[i]] = path[i-1]
	}
	return pred
}

// pathToRoot is a FIFO label-correcting search over the backward arcs.
// Since every arc descends exactly one level each node is enqueued at
// most once.
func (g *Graph) pathToRoot(start core.Literal, blocked []bool) []int32 {
	dist := make([]int64, g.n)
	parent := make([]int32, g.n)
	for i := range dist {
		dist[i] = unreached
		parent[i] = unset
	}
	inQueue := make([]bool, g.n)

	queue := make([]int32, 1, g.n)
	queue[0] = int32(start)
	dist[start] = 0
	inQueue[start] = true

	for qi := 0; qi < len(queue); qi++ {
		u := queue[qi]
		if g.beginB[u] == unset {
			continue
		}
		for i := g.beginB[u]; g.targetB[i] != unset; i++ {
			v := g.targetB[i]
			if blocked != nil && blocked[v] && core.Literal(v) != g.root {
				continue
			}
			d := dist[u] + g.weightB[i]
			if d >= dist[v] {
				continue
			}
			dist[v] = d
			parent[v] = u
			if !inQueue[v] {
				inQueue[v] = true
				queue = append(queue, v)
			}
		}
	}
	return parent
}

// BlockPath marks the neighborhood of the root path described by
// parent (as returned by ShortestPathToRoot for start) in blocked.
// Every neighbor of an interior path node is blocked; the root keeps
// its full neighborhood, the start node blocks only its previous
// level. A second, blocked search from another literal then yields a
// path node-disjoint from this one.
func (g *Graph) BlockPath(parent []int32, start core.Literal, blocked []bool) {
	u := parent[g.root]
	for u != unset && core.Literal(u) != start {
		g.blockNeighbors(u, blocked)
		u = parent[u]
	}
	if g.beginB[start] != unset {
		for i := g.beginB[start]; g.targetB[i] != unset; i++ {
			blocked[g.targetB[i]] = true
		}
	}
}

func (g *Graph) blockNeighbors(u int32, blocked []bool) {
	if g.beginF[u] != unset {
		for i := g.beginF[u]; g.targetF[i] != unset; i++ {
			blocked[g.targetF[i]] = true
		}
	}
	if g.beginB[u] != unset {
		for i := g.beginB[u]; g.targetB[i] != unset; i++ {
			blocked[g.targetB[i]] = true
		}
	}
	k := g.level[u]
	for i := g.levelAdj[k]; i < g.levelAdj[k+1]; i++ {
		if g.sourceAdj[i] == u {
			blocked[g.targetAdj[i]] = true
		}
		if g.targetAdj[i] == u {
			blocked[g.sourceAdj[i]] = true
		}
	}
}

// IsNeighbor reports whether a and b are adjacent. Pairs resolvable
// from the level structure are answered from the stored arcs; anything
// else falls back to the oracle adjacency.
func (g *Graph) IsNeighbor(a, b core.Literal) bool {
	if a == b {
		return false
	}
	if !g.inGraph[a] || !g.inGraph[b] {
		return g.adj.IsNeighbor(a, b)
	}

	da, db := g.level[a], g.level[b]
	switch {
	case db == da+1 && g.beginF[a] != unset:
		return g.scanForward(a, b)
	case da == db+1 && g.beginF[b] != unset:
		return g.scanForward(b, a)
	case da == db && g.beginAdj[a] != unset && g.beginAdj[b] != unset:
		lo, hi := a, b
		if hi < lo {
			lo, hi = hi, lo
		}
		end := g.levelAdj[da+1]
		for i := g.beginAdj[lo]; i < end && g.sourceAdj[i] == int32(lo); i++ {
			if g.targetAdj[i] == int32(hi) {
				return true
			}
		}
		return false
	}
	return g.adj.IsNeighbor(a, b)
}

func (g *Graph) scanForward(u, v core.Literal) bool {
	for i := g.beginF[u]; g.targetF[i] != unset; i++ {
		if g.targetF[i] == int32(v) {
			return true
		}
	}
	return false
}
