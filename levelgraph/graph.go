package levelgraph

import (
	"sort"

	"github.com/katalvlaran/oddcycle/core"
)

// Byte sizes per slot of the growable arc arrays.
const (
	bytesPerList = 4 + 8     // target + weight
	bytesPerAdj  = 4 + 4 + 8 // source + target + weight
)

// Graph is the layered search structure. It is allocated once and
// reset for every root literal; all arc storage is flat and grows by
// doubling under the byte budget.
type Graph struct {
	adj    *core.Adjacency
	budget core.Budget
	opts   Options

	nbin int
	n    int // 2*nbin literals

	root    core.Literal
	nlevels int // fully processed levels
	nnodes  int
	nedges  int

	level   []int32
	inGraph []bool

	// Per processed node: first index into its forward, backward and
	// same-level arc regions. unset until the node's level is expanded.
	beginF   []int32
	beginB   []int32
	beginAdj []int32

	// Forward and backward lists, one unset terminator per node.
	targetF []int32
	weightF []int64
	lastF   int

	targetB []int32
	weightB []int64
	lastB   int

	// Same-level arcs, stored once per pair under the smaller literal.
	// The arcs of level k occupy [levelAdj[k], levelAdj[k+1]).
	sourceAdj []int32
	targetAdj []int32
	weightAdj []int64
	lastAdj   int
	levelAdj  []int32

	cur  []core.Literal
	next []core.Literal
}

// NewGraph allocates a level graph over the given adjacency. Reset
// must be called before the first GrowLevel.
func NewGraph(adj *core.Adjacency, budget core.Budget, opts Options) (*Graph, error) {
	if adj == nil {
		return nil, ErrNilAdjacency
	}
	if opts.MaxLevelSize <= 0 {
		return nil, ErrInvalidCap
	}
	if budget == nil {
		budget = core.UnlimitedBudget()
	}

	n := adj.NumNodes()
	initial := 4 * n
	if initial < 16 {
		initial = 16
	}
	if !budget.Allow(initial * (2*bytesPerList + bytesPerAdj)) {
		return nil, core.ErrBudgetExceeded
	}

	g := &Graph{
		adj:    adj,
		budget: budget,
		opts:   opts,
		nbin:   adj.NumBinVars(),
		n:      n,

		level:    make([]int32, n),
		inGraph:  make([]bool, n),
		beginF:   make([]int32, n),
		beginB:   make([]int32, n),
		beginAdj: make([]int32, n),

		targetF: make([]int32, initial),
		weightF: make([]int64, initial),
		targetB: make([]int32, initial),
		weightB: make([]int64, initial),

		sourceAdj: make([]int32, initial),
		targetAdj: make([]int32, initial),
		weightAdj: make([]int64, initial),
		levelAdj:  make([]int32, n+2),

		cur:  make([]core.Literal, 0, n),
		next: make([]core.Literal, 0, n),
	}
	return g, nil
}

// Reset clears the graph and seeds level 0 with the root literal.
func (g *Graph) Reset(root core.Literal) error {
	if !root.Valid(g.nbin) {
		return core.ErrLiteralRange
	}
	if !g.adj.Fractional(root) {
		return ErrRootNotFractional
	}

	for i := range g.level {
		g.level[i] = unset
		g.inGraph[i] = false
		g.beginF[i] = unset
		g.beginB[i] = unset
		g.beginAdj[i] = unset
	}
	g.lastF, g.lastB, g.lastAdj = 0, 0, 0
	g.levelAdj[0] = 0

	g.root = root
	g.nlevels = 0
	g.nnodes = 1
	g.nedges = 0
	g.inGraph[root] = true
	g.level[root] = 0
	g.cur = append(g.cur[:0], root)
	g.next = g.next[:0]
	return nil
}

// GrowLevel expands the newest level: it classifies the arcs of every
// node on it and admits unseen neighbors into the next level, up to
// the configured cap. It returns the size of the new level; a return
// of zero means the search is exhausted.
func (g *Graph) GrowLevel() (int, error) {
	k := g.nlevels
	g.next = g.next[:0]

	for _, u := range g.cur {
		g.beginF[u] = int32(g.lastF)
		g.beginB[u] = int32(g.lastB)
		g.beginAdj[u] = int32(g.lastAdj)

		// 1) Zero-weight arc to the own negation, if requested.
		if g.opts.AddSelfArcs {
			neg := u.Negation(g.nbin)
			g.admit(neg, k)
			if g.inGraph[neg] {
				if err := g.link(u, neg, 0, k); err != nil {
					return 0, err
				}
			}
		}

		// 2) Oracle neighbors.
		if k == 0 && g.opts.SortRootNeighbors {
			if err := g.expandSorted(u, k); err != nil {
				return 0, err
			}
		} else {
			var visitErr error
			g.adj.Neighbors(u, func(v core.Literal, w int64) bool {
				g.admit(v, k)
				if g.inGraph[v] {
					visitErr = g.link(u, v, w, k)
				}
				return visitErr == nil
			})
			if visitErr != nil {
				return 0, visitErr
			}
		}

		// 3) Seal the forward and backward lists of u.
		if err := g.appendF(unset, 0); err != nil {
			return 0, err
		}
		if err := g.appendB(unset, 0); err != nil {
			return 0, err
		}
	}

	g.levelAdj[k+1] = int32(g.lastAdj)
	g.nlevels++
	g.cur, g.next = g.next, g.cur
	return len(g.cur), nil
}

// expandSorted handles the root level with neighbors ordered by
// decreasing fractionality, so that an overflowing level 1 keeps the
// most promising literals.
func (g *Graph) expandSorted(u core.Literal, k int) error {
	seen := make([]bool, g.n)
	var list []core.Literal
	g.adj.Neighbors(u, func(v core.Literal, _ int64) bool {
		if !seen[v] {
			seen[v] = true
			list = append(list, v)
		}
		return true
	})

	sort.SliceStable(list, func(i, j int) bool {
		return core.Fractionality(g.adj.Value(list[i])) > core.Fractionality(g.adj.Value(list[j]))
	})

	for _, v := range list {
		g.admit(v, k)
		if g.inGraph[v] {
			if err := g.link(u, v, g.adj.Weight(u, v), k); err != nil {
				return err
			}
		}
	}
	return nil
}

// admit places v on level k+1 unless it is already part of the graph
// or the new level is full.
func (g *Graph) admit(v core.Literal, k int) {
	if g.inGraph[v] || len(g.next) > g.opts.MaxLevelSize {
		return
	}
	g.inGraph[v] = true
	g.level[v] = int32(k + 1)
	g.nnodes++
	g.next = append(g.next, v)
}

// link classifies the arc u-v relative to level k. Arcs to nodes more
// than one level away are dropped; same-level arcs are stored once,
// under the smaller literal.
func (g *Graph) link(u, v core.Literal, w int64, k int) error {
	switch int(g.level[v]) {
	case k + 1:
		g.nedges++
		return g.appendF(int32(v), w)
	case k - 1:
		g.nedges++
		return g.appendB(int32(v), w)
	case k:
		if u < v {
			g.nedges++
			return g.appendAdj(int32(u), int32(v), w)
		}
	}
	return nil
}

func (g *Graph) appendF(t int32, w int64) error {
	if g.lastF == len(g.targetF) {
		old := len(g.targetF)
		if !g.budget.Allow(old * bytesPerList) {
			return core.ErrBudgetExceeded
		}
		g.targetF = append(g.targetF, make([]int32, old)...)
		g.weightF = append(g.weightF, make([]int64, old)...)
	}
	g.targetF[g.lastF] = t
	g.weightF[g.lastF] = w
	g.lastF++
	return nil
}

func (g *Graph) appendB(t int32, w int64) error {
	if g.lastB == len(g.targetB) {
		old := len(g.targetB)
		if !g.budget.Allow(old * bytesPerList) {
			return core.ErrBudgetExceeded
		}
		g.targetB = append(g.targetB, make([]int32, old)...)
		g.weightB = append(g.weightB, make([]int64, old)...)
	}
	g.targetB[g.lastB] = t
	g.weightB[g.lastB] = w
	g.lastB++
	return nil
}

func (g *Graph) appendAdj(s, t int32, w int64) error {
	if g.lastAdj == len(g.sourceAdj) {
		old := len(g.sourceAdj)
		if !g.budget.Allow(old * bytesPerAdj) {
			return core.ErrBudgetExceeded
		}
		g.sourceAdj = append(g.sourceAdj, make([]int32, old)...)
		g.targetAdj = append(g.targetAdj, make([]int32, old)...)
		g.weightAdj = append(g.weightAdj, make([]int64, old)...)
	}
	g.sourceAdj[g.lastAdj] = s
	g.targetAdj[g.lastAdj] = t
	g.weightAdj[g.lastAdj] = w
	g.lastAdj++
	return nil
}

// Root returns the current root literal.
func (g *Graph) Root() core.Literal { return g.root }

// Levels returns the number of fully processed levels.
func (g *Graph) Levels() int { return g.nlevels }

// NumNodes returns the number of literals placed in the graph.
func (g *Graph) NumNodes() int { return g.nnodes }

// NumEdges returns the number of stored arcs.
func (g *Graph) NumEdges() int { return g.nedges }

// Contains reports whether l has been placed on some level.
func (g *Graph) Contains(l core.Literal) bool { return g.inGraph[l] }

// Level returns the level of l, or -1 when l is not in the graph.
func (g *Graph) Level(l core.Literal) int {
	if !g.inGraph[l] {
		return -1
	}
	return int(g.level[l])
}

// CrossEdges returns the same-level arcs of level k. Each one closes
// an odd cycle of length 2k+1 through the root.
func (g *Graph) CrossEdges(k int) []CrossEdge {
	if k < 0 || k >= g.nlevels {
		return nil
	}
	var out []CrossEdge
	for i := g.levelAdj[k]; i < g.levelAdj[k+1]; i++ {
		out = append(out, CrossEdge{
			Source: core.Literal(g.sourceAdj[i]),
			Target: core.Literal(g.targetAdj[i]),
			Weight: g.weightAdj[i],
		})
	}
	return out
}
