// Package core provides the temporal graph store: vertices and directed edges
// that are valid only during half-open intervals [Start, End).
//
// The Graph is append-mostly and history-preserving:
//
//   - AddVertex / AddEdge insert records with an explicit interval; the
//     open-ended sentinel Infinity (token "inf") means "valid until closed".
//   - RemoveVertex / RemoveEdge never free storage; they close the interval
//     by setting End. Algorithms decide presence by interval checks.
//   - Vertices live in an arena (slice) indexed by a B-tree keyed on VertexID,
//     so enumeration is deterministic (ascending ID) and slots stay stable.
//   - Each vertex owns its outgoing adjacency: destination ID → Edge.
//
// Duplicate vertices:
//
//	By default AddVertex on an existing ID returns ErrDuplicateVertex.
//	WithVertexOverwrite() switches to replace semantics: the interval is reset
//	and the outgoing adjacency is dropped.
//
// Core Methods:
//
//	AddVertex(id, start, end) error     // O(log V)
//	AddEdge(from, to, start, end) error // O(log V)
//	RemoveVertex(id, t) error           // O(log V)
//	RemoveEdge(from, to, t) error       // O(log V)
//	Vertex(id) (Vertex, bool)           // O(log V)
//	Vertices() []Vertex                 // O(V), ascending ID
//	Edges(id) ([]Edge, error)           // O(d log d), ascending To
//	VertexCount(), EdgeCount() int      // O(1), closed records included
//	View(func(Snapshot) error) error    // read barrier for traversals
//
// Errors:
//
//	ErrDuplicateVertex - vertex ID already stored (strict policy).
//	ErrUnknownVertex   - referenced vertex is not stored.
//	ErrUnknownEdge     - referenced edge is not stored.
//	ErrBadInterval     - an interval would end before it starts.
//
// Concurrency:
//
//	All methods are safe for concurrent use. One sync.RWMutex guards the
//	store; View keeps it read-locked for a whole traversal so that mutation
//	and computation phases never interleave.
package core
