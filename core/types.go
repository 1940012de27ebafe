// SPDX-License-Identifier: MIT
//
// File: types.go
// Role: Time, Interval, Vertex, Edge, Graph, GraphOption, sentinel errors and NewGraph.
// Policy:
//   - Vertices and edges are never physically removed; deletion closes the interval.
//   - Every stored interval satisfies Start <= End.
// Concurrency:
//   - A single sync.RWMutex guards the arena, the id index and all adjacency.

package core

import (
	"errors"
	"math"
	"sync"

	"github.com/tidwall/btree"
)

// Sentinel errors for temporal graph operations.
var (
	// ErrDuplicateVertex indicates AddVertex was called for an id that is already stored.
	ErrDuplicateVertex = errors.New("core: duplicate vertex")

	// ErrUnknownVertex indicates an operation referenced a vertex that is not stored.
	ErrUnknownVertex = errors.New("core: unknown vertex")

	// ErrUnknownEdge indicates RemoveEdge referenced an edge that is not stored.
	ErrUnknownEdge = errors.New("core: unknown edge")

	// ErrBadInterval indicates an interval whose end would precede its start.
	ErrBadInterval = errors.New("core: interval end precedes start")
)

// Time is a discrete time step.
type Time int64

// Infinity is the open-ended sentinel: an interval ending at Infinity is valid
// until explicitly closed. It is also the "unreachable" arrival label.
const Infinity Time = math.MaxInt64

// VertexID identifies a vertex within a Graph.
type VertexID int64

// Interval is the half-open validity range [Start, End).
type Interval struct {
	Start Time
	End   Time
}

// Contains reports whether t lies in [Start, End).
func (iv Interval) Contains(t Time) bool { return iv.Start <= t && t < iv.End }

// Open reports whether the interval has not been closed yet.
func (iv Interval) Open() bool { return iv.End == Infinity }

// valid reports Start <= End.
func (iv Interval) valid() bool { return iv.Start <= iv.End }

// Vertex is a value snapshot of a stored vertex.
type Vertex struct {
	// ID is the unique identifier for this Vertex.
	ID VertexID

	// Interval is the validity range of the vertex.
	Interval
}

// Edge is a directed, time-bounded connection From→To.
//
// Edges live in the adjacency of their From vertex; at most one edge exists
// per ordered (From, To) pair and re-adding overwrites it.
type Edge struct {
	From VertexID
	To   VertexID

	Interval
}

// GraphOption configures behavior of a Graph before creation.
type GraphOption func(g *Graph)

// WithVertexOverwrite makes AddVertex on an existing id replace the vertex
// instead of failing with ErrDuplicateVertex. The replaced vertex keeps its
// arena slot but loses its outgoing adjacency. This matches batch replays
// that re-announce vertices.
func WithVertexOverwrite() GraphOption {
	return func(g *Graph) { g.overwrite = true }
}

// slot is one arena entry: the vertex record and its outgoing adjacency.
type slot struct {
	vertex Vertex
	out    map[VertexID]*Edge // destination id → edge
}

// Graph is the temporal graph store.
//
// Storage is arena-style: slots are appended and never freed, so a slot index
// stays valid for the whole run. index maps vertex ids to slots in ascending
// id order, which gives deterministic enumeration for Vertices and Range.
type Graph struct {
	mu sync.RWMutex // guards everything below

	overwrite bool // AddVertex replaces instead of failing

	slots     []slot
	index     btree.Map[VertexID, int]
	edgeCount int // stored edges, open or closed
}

// NewGraph creates an empty Graph.
// By default, re-adding an existing vertex is an error.
// Complexity: O(1)
func NewGraph(opts ...GraphOption) *Graph {
	g := &Graph{}
	for _, opt := range opts {
		opt(g)
	}

	return g
}

// lookup returns the slot for id. Callers hold g.mu.
func (g *Graph) lookup(id VertexID) (*slot, bool) {
	i, ok := g.index.Get(id)
	if !ok {
		return nil, false
	}

	return &g.slots[i], true
}
