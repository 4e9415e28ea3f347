package bipartite

import (
	"errors"
	"math"
)

// Sentinel errors of the double-cover builder.
var (
	// ErrNilAdjacency is returned when Build receives a nil adjacency.
	ErrNilAdjacency = errors.New("bipartite: adjacency is nil")

	// ErrEmptyGraph is returned when the fractional implication graph
	// contains no arc at all; there is nothing to separate.
	ErrEmptyGraph = errors.New("bipartite: implication graph is empty")
)

// Unreached marks a node the shortest-path search did not reach.
const Unreached = int64(math.MaxInt64)

// Arc is one outgoing arc of a cover node.
type Arc struct {
	Head   int32
	Weight int64
}
