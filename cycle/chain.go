package cycle

import "github.com/katalvlaran/oddcycle/core"

const unset = int32(-1)

// Policy controls how Extend treats damaged or reused literals.
type Policy struct {
	// Repair enables removal of variable/negation pairs with relinking.
	Repair bool

	// AllowMultiplePerNode admits literals already covered by a cut
	// submitted earlier in the same round.
	AllowMultiplePerNode bool
}

// Chain is the predecessor-linked cycle under construction. Start is
// the first literal of the cycle; following Pred from Start eventually
// returns to Start once the chain has been closed.
type Chain struct {
	nbin  int
	start core.Literal
	pred  []int32
	in    []bool
	count int
}

// NewChain returns an empty chain over 2*nbin literals beginning at
// start.
func NewChain(nbin int, start core.Literal) *Chain {
	pred := make([]int32, 2*nbin)
	for i := range pred {
		pred[i] = unset
	}
	return &Chain{
		nbin:  nbin,
		start: start,
		pred:  pred,
		in:    make([]bool, 2*nbin),
	}
}

// Start returns the first literal of the chain.
func (c *Chain) Start() core.Literal { return c.start }

// Len returns the number of literals currently in the chain.
func (c *Chain) Len() int { return c.count }

// Contains reports whether l is part of the chain.
func (c *Chain) Contains(l core.Literal) bool { return c.in[l] }

// Pred returns the predecessor of l, if one has been linked.
func (c *Chain) Pred(l core.Literal) (core.Literal, bool) {
	if c.pred[l] == unset {
		return 0, false
	}
	return core.Literal(c.pred[l]), true
}

// Extend links x to its predecessor p and accepts x into the chain.
// covered flags literals already used by a cut this round (may be
// nil). It returns false when the chain cannot become a valid odd
// cycle:
//
//   - x is covered and multiple cuts per literal are not allowed,
//   - x is already in the chain (the walk closed a subcycle),
//   - the negation of x is in the chain and repairing is disabled,
//   - the negation of x is the start literal (no successor to relink).
//
// When the negation of x is an interior chain member and repairing is
// enabled, the pair is removed: an adjacent pair is simply unlinked,
// a separated pair is cut out with the enclosed segment reversed. In
// that case x itself is not added and the chain shrinks by one.
func (c *Chain) Extend(x, p core.Literal, covered []bool, pol Policy) bool {
	if covered != nil && covered[x] && !pol.AllowMultiplePerNode {
		return false
	}

	negx := x.Negation(c.nbin)

	if c.in[x] || (c.in[negx] && !pol.Repair) {
		return false
	}

	c.pred[x] = int32(p)

	if !c.in[negx] {
		c.in[x] = true
		c.count++
		return true
	}

	if negx == c.start {
		return false
	}

	// The chain runs start - ... - a - neg(x) - c1 - ... - cn - x - z.
	// Removing the pair leaves start - ... - a - cn - ... - c1 - z.
	if core.Literal(c.pred[negx]) == x {
		a := c.start
		for core.Literal(c.pred[a]) != negx {
			a = core.Literal(c.pred[a])
		}
		c.pred[a] = c.pred[x]
	} else {
		a := c.start
		for core.Literal(c.pred[a]) != negx {
			a = core.Literal(c.pred[a])
		}

		var segment []core.Literal
		for i := core.Literal(c.pred[negx]); i != x; i = core.Literal(c.pred[i]) {
			segment = append(segment, i)
		}

		z := c.pred[x]
		c.pred[a] = int32(segment[len(segment)-1])
		c.pred[segment[0]] = z
		for i := len(segment) - 1; i > 0; i-- {
			c.pred[segment[i]] = int32(segment[i-1])
		}
	}

	c.in[negx] = false
	c.count--
	return true
}

// Slice materializes the closed chain in cycle order, beginning at
// Start. It must only be called after the chain has been closed, i.e.
// following Pred from Start returns to Start.
func (c *Chain) Slice() []core.Literal {
	out := make([]core.Literal, 0, c.count)
	out = append(out, c.start)
	for l := core.Literal(c.pred[c.start]); l != c.start; l = core.Literal(c.pred[l]) {
		out = append(out, l)
	}
	return out
}
