package bipartite

import (
	"container/heap"

	"github.com/katalvlaran/oddcycle/core"
)

// bytesPerArc covers one head entry and one weight entry.
const bytesPerArc = 4 + 8

// Graph is the mirrored double cover, rebuilt once per separation
// round from the current fractional solution.
type Graph struct {
	nbin  int
	nodes int // 4n

	outbeg []int32
	outcnt []int32
	head   []int32
	weight []int64
	narcs  int

	minWeight int64
	maxWeight int64

	budget core.Budget
}

// Build constructs the double cover for the given adjacency. Arcs from
// the first partition are taken from the oracle; arcs from the second
// partition are created by mirroring. With selfArcs enabled every node
// with at least one arc also gets a weight-0 arc to the copy of its
// negation, compensating for incomplete implication data.
//
// Build returns ErrEmptyGraph when no literal has a fractional
// neighbor, and core.ErrBudgetExceeded when the budget refuses an
// array growth.
func Build(adj *core.Adjacency, budget core.Budget, selfArcs bool) (*Graph, error) {
	if adj == nil {
		return nil, ErrNilAdjacency
	}
	if budget == nil {
		budget = core.UnlimitedBudget()
	}

	nbin := adj.NumBinVars()
	g := &Graph{
		nbin:      nbin,
		nodes:     4 * nbin,
		outbeg:    make([]int32, 4*nbin),
		outcnt:    make([]int32, 4*nbin),
		minWeight: Unreached,
		maxWeight: 0,
		budget:    budget,
	}

	initial := 4 * g.nodes
	if initial < 16 {
		initial = 16
	}
	if !budget.Allow(initial * bytesPerArc) {
		return nil, core.ErrBudgetExceeded
	}
	g.head = make([]int32, initial)
	g.weight = make([]int64, initial)

	empty := true
	twoN := int32(2 * nbin)

	// 1) First partition: arcs I/II -> III/IV from the oracle.
	for u := 0; u < 2*nbin; u++ {
		g.outbeg[u] = int32(g.narcs)
		g.outcnt[u] = 0

		lit := core.Literal(u)
		if adj.Fractional(lit) {
			var growErr error
			adj.Neighbors(lit, func(v core.Literal, w int64) bool {
				if growErr = g.push(int32(v)+twoN, w, u); growErr != nil {
					return false
				}
				empty = false
				return true
			})
			if growErr != nil {
				return nil, growErr
			}
		}

		// 2) Self-arc to the copy of the negation (I->IV, II->III).
		if selfArcs && g.outcnt[u] > 0 {
			if err := g.push(int32(lit.Negation(nbin))+twoN, 0, u); err != nil {
				return nil, err
			}
		}
	}

	if empty {
		return nil, ErrEmptyGraph
	}

	// 3) Second partition: mirror every arc (III->I, IV->II).
	for u := 0; u < 2*nbin; u++ {
		m := 2*nbin + u
		g.outbeg[m] = int32(g.narcs)
		g.outcnt[m] = 0
		for j := g.outbeg[u]; j < g.outbeg[u]+g.outcnt[u]; j++ {
			if err := g.push(g.head[j]-twoN, g.weight[j], m); err != nil {
				return nil, err
			}
		}
	}

	return g, nil
}

// push appends an arc for node u, growing the arrays under the budget.
func (g *Graph) push(head int32, weight int64, u int) error {
	if g.narcs == len(g.head) {
		old := len(g.head)
		if !g.budget.Allow(old * bytesPerArc) {
			return core.ErrBudgetExceeded
		}
		g.head = append(g.head, make([]int32, old)...)
		g.weight = append(g.weight, make([]int64, old)...)
	}
	g.head[g.narcs] = head
	g.weight[g.narcs] = weight
	if weight < g.minWeight {
		g.minWeight = weight
	}
	if weight > g.maxWeight {
		g.maxWeight = weight
	}
	g.narcs++
	g.outcnt[u]++
	return nil
}

// NumNodes returns the node count of the cover, 4n.
func (g *Graph) NumNodes() int { return g.nodes }

// NumArcs returns the number of stored arcs.
func (g *Graph) NumArcs() int { return g.narcs }

// OutDegree returns the number of arcs leaving node u.
func (g *Graph) OutDegree(u int) int { return int(g.outcnt[u]) }

// MinWeight returns the smallest arc weight in the cover.
func (g *Graph) MinWeight() int64 { return g.minWeight }

// MaxWeight returns the largest arc weight in the cover.
func (g *Graph) MaxWeight() int64 { return g.maxWeight }

// Arcs returns the outgoing arcs of node u.
func (g *Graph) Arcs(u int) []Arc {
	out := make([]Arc, g.outcnt[u])
	for i := range out {
		j := g.outbeg[u] + int32(i)
		out[i] = Arc{Head: g.head[j], Weight: g.weight[j]}
	}
	return out
}

// IsNeighbor reports whether literals a and b are adjacent in the
// cover, i.e. a has an arc to the copy of b.
func (g *Graph) IsNeighbor(a, b core.Literal) bool {
	target := int32(b) + int32(2*g.nbin)
	for j := g.outbeg[a]; j < g.outbeg[a]+g.outcnt[a]; j++ {
		if g.head[j] == target {
			return true
		}
	}
	return false
}

// ShortestPath runs Dijkstra from start and returns the distance and
// predecessor arrays over all 4n nodes. Unreached nodes keep distance
// Unreached and predecessor -1.
func (g *Graph) ShortestPath(start int) ([]int64, []int32) {
	r := &runner{
		g:       g,
		dist:    make([]int64, g.nodes),
		pred:    make([]int32, g.nodes),
		visited: make([]bool, g.nodes),
		pq:      make(nodePQ, 0, g.nodes),
	}
	r.init(start)
	r.process()
	return r.dist, r.pred
}

// runner holds the mutable state of a single Dijkstra execution.
type runner struct {
	g       *Graph
	dist    []int64
	pred    []int32
	visited []bool
	pq      nodePQ
}

func (r *runner) init(start int) {
	for i := range r.dist {
		r.dist[i] = Unreached
		r.pred[i] = -1
	}
	r.dist[start] = 0
	heap.Init(&r.pq)
	heap.Push(&r.pq, &nodeItem{node: int32(start), dist: 0})
}

func (r *runner) process() {
	for r.pq.Len() > 0 {
		item := heap.Pop(&r.pq).(*nodeItem)
		u := item.node

		// Stale heap entry under lazy decrease-key.
		if r.visited[u] {
			continue
		}
		r.visited[u] = true

		r.relax(u)
	}
}

func (r *runner) relax(u int32) {
	g := r.g
	for j := g.outbeg[u]; j < g.outbeg[u]+g.outcnt[u]; j++ {
		v := g.head[j]
		d := r.dist[u] + g.weight[j]
		if d >= r.dist[v] {
			continue
		}
		r.dist[v] = d
		r.pred[v] = u
		heap.Push(&r.pq, &nodeItem{node: v, dist: d})
	}
}

// nodeItem is a heap entry ordering nodes by tentative distance.
type nodeItem struct {
	node int32
	dist int64
}

// nodePQ is a min-heap of *nodeItem using the lazy-decrease-key
// strategy: shorter rediscoveries push duplicates, stale entries are
// skipped when popped.
type nodePQ []*nodeItem

func (pq nodePQ) Len() int            { return len(pq) }
func (pq nodePQ) Less(i, j int) bool  { return pq[i].dist < pq[j].dist }
func (pq nodePQ) Swap(i, j int)       { pq[i], pq[j] = pq[j], pq[i] }
func (pq *nodePQ) Push(x interface{}) { *pq = append(*pq, x.(*nodeItem)) }
func (pq *nodePQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]
	return item
}
