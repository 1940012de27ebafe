// SPDX-License-Identifier: MIT
//
// File: view.go
// Role: Read barrier for whole-graph algorithms.
// Concurrency:
//   - View holds the read lock for the duration of the callback; mutators block
//     until it returns, so a traversal sees one stable snapshot.

package core

// Snapshot is a read-only view of a Graph, valid only inside the View callback
// that produced it. It reads storage directly without copying adjacency.
type Snapshot struct {
	g *Graph
}

// View runs fn while holding the graph's read lock and returns fn's error.
// fn must not call mutating Graph methods (that would deadlock) nor retain
// the Snapshot after returning.
func (g *Graph) View(fn func(s Snapshot) error) error {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return fn(Snapshot{g: g})
}

// Len returns the number of stored vertices.
func (s Snapshot) Len() int { return len(s.g.slots) }

// Vertex returns the stored vertex id.
func (s Snapshot) Vertex(id VertexID) (Vertex, bool) {
	sl, ok := s.g.lookup(id)
	if !ok {
		return Vertex{}, false
	}

	return sl.vertex, true
}

// Range calls fn for every vertex in ascending ID order until fn returns false.
func (s Snapshot) Range(fn func(v Vertex) bool) {
	s.g.index.Scan(func(_ VertexID, i int) bool {
		return fn(s.g.slots[i].vertex)
	})
}

// Out calls fn for every outgoing edge of id until fn returns false.
// Iteration order is unspecified. It reports false if id is not stored.
func (s Snapshot) Out(id VertexID, fn func(e Edge) bool) bool {
	sl, ok := s.g.lookup(id)
	if !ok {
		return false
	}
	for _, e := range sl.out {
		if !fn(*e) {
			break
		}
	}

	return true
}
