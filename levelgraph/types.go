package levelgraph

import (
	"errors"

	"github.com/katalvlaran/oddcycle/core"
)

// Sentinel errors of the level graph.
var (
	// ErrNilAdjacency is returned when NewGraph receives a nil adjacency.
	ErrNilAdjacency = errors.New("levelgraph: adjacency is nil")

	// ErrInvalidCap is returned when the per-level node cap is not positive.
	ErrInvalidCap = errors.New("levelgraph: level size cap must be positive")

	// ErrRootNotFractional is returned by Reset when the requested root
	// literal has an integral value and therefore cannot seed a search.
	ErrRootNotFractional = errors.New("levelgraph: root literal is not fractional")
)

// unset terminates the flat forward/backward arc lists and marks
// absent predecessors.
const unset = int32(-1)

// Options configure the level graph construction.
type Options struct {
	// MaxLevelSize caps the number of nodes admitted into a level.
	// Because admission is checked before each insert, a level may end
	// up holding MaxLevelSize+1 nodes.
	MaxLevelSize int

	// AddSelfArcs links every literal to its own negation with weight
	// zero, compensating for implications missing from the oracle.
	AddSelfArcs bool

	// SortRootNeighbors expands the root's neighbors in decreasing
	// order of fractionality, so that when level 1 overflows the most
	// promising literals made it in.
	SortRootNeighbors bool
}

// CrossEdge is a same-level arc; together with the two root paths of
// its endpoints it closes an odd cycle.
type CrossEdge struct {
	Source core.Literal
	Target core.Literal
	Weight int64
}
