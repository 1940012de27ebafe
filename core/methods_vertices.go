// SPDX-License-Identifier: MIT
//
// File: methods_vertices.go
// Role: Vertex lifecycle & queries.
//
// Determinism:
//   - Vertices() returns vertices sorted by ID ascending.
//
// Concurrency:
//   - Mutations under the write lock, queries under the read lock.

package core

import "fmt"

// AddVertex inserts vertex id valid over [start, end) with an empty adjacency.
//
// Implementation:
//   - Stage 1: Validate the interval (ErrBadInterval).
//   - Stage 2: Under the write lock, check presence in the index.
//   - Stage 3: Append a fresh arena slot, or reuse the existing one under the overwrite policy.
//
// Errors:
//   - ErrBadInterval: end < start.
//   - ErrDuplicateVertex: id already stored and the graph was not built WithVertexOverwrite().
//
// Complexity:
//   - Time O(log V), Space O(1) amortized.
//
// Notes:
//   - Under the overwrite policy the old outgoing edges are dropped from the edge count,
//     edges of other vertices pointing at id are left as they are.
func (g *Graph) AddVertex(id VertexID, start, end Time) error {
	iv := Interval{Start: start, End: end}
	if !iv.valid() {
		return fmt.Errorf("%w: vertex %d %s", ErrBadInterval, id, iv)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if s, exists := g.lookup(id); exists {
		if !g.overwrite {
			return fmt.Errorf("%w: %d", ErrDuplicateVertex, id)
		}
		g.edgeCount -= len(s.out)
		s.vertex.Interval = iv
		s.out = make(map[VertexID]*Edge)

		return nil
	}

	g.slots = append(g.slots, slot{
		vertex: Vertex{ID: id, Interval: iv},
		out:    make(map[VertexID]*Edge),
	})
	g.index.Set(id, len(g.slots)-1)

	return nil
}

// RemoveVertex closes the validity interval of vertex id at time t.
// The vertex and its adjacency stay stored; traversals exclude it by interval.
//
// Errors:
//   - ErrUnknownVertex: id is not stored.
//   - ErrBadInterval: t precedes the vertex start.
//
// Complexity: O(log V).
func (g *Graph) RemoveVertex(id VertexID, t Time) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	s, ok := g.lookup(id)
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownVertex, id)
	}
	if t < s.vertex.Start {
		return fmt.Errorf("%w: vertex %d closed at %s before start %s", ErrBadInterval, id, t, s.vertex.Start)
	}
	s.vertex.End = t

	return nil
}

// HasVertex reports whether id is stored, closed or not.
// Complexity: O(log V).
func (g *Graph) HasVertex(id VertexID) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	_, ok := g.index.Get(id)

	return ok
}

// Vertex returns a copy of the stored vertex id.
// Complexity: O(log V).
func (g *Graph) Vertex(id VertexID) (Vertex, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	s, ok := g.lookup(id)
	if !ok {
		return Vertex{}, false
	}

	return s.vertex, true
}

// Vertices returns copies of all stored vertices sorted by ID ascending.
// Complexity: O(V).
func (g *Graph) Vertices() []Vertex {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make([]Vertex, 0, len(g.slots))
	g.index.Scan(func(_ VertexID, i int) bool {
		out = append(out, g.slots[i].vertex)
		return true
	})

	return out
}

// VertexCount returns the number of stored vertices, closed ones included.
// Complexity: O(1).
func (g *Graph) VertexCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return len(g.slots)
}

// String renders the vertex as id[start,end).
func (v Vertex) String() string {
	return fmt.Sprintf("%d%s", v.ID, v.Interval)
}
