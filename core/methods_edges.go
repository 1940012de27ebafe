// SPDX-License-Identifier: MIT
//
// File: methods_edges.go
// Role: Edge lifecycle & queries: AddEdge/RemoveEdge/HasEdge/Edge/Edges/EdgeCount.
// Determinism:
//   - Edges() returns edges sorted by To ascending.
// Concurrency:
//   - Mutations under the write lock, queries under the read lock.

package core

import (
	"cmp"
	"fmt"
	"slices"
)

// AddEdge stores the edge from→to valid over [start, end).
//
// Steps:
//  1. Validate the interval.
//  2. Lock, resolve both endpoints (ErrUnknownVertex if either is missing).
//  3. Insert, or overwrite an existing from→to edge in place.
//
// Complexity: O(log V).
func (g *Graph) AddEdge(from, to VertexID, start, end Time) error {
	iv := Interval{Start: start, End: end}
	if !iv.valid() {
		return fmt.Errorf("%w: edge %d→%d %s", ErrBadInterval, from, to, iv)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	src, ok := g.lookup(from)
	if !ok {
		return fmt.Errorf("%w: %d (edge source)", ErrUnknownVertex, from)
	}
	if _, ok = g.index.Get(to); !ok {
		return fmt.Errorf("%w: %d (edge destination)", ErrUnknownVertex, to)
	}

	if e, exists := src.out[to]; exists {
		e.Interval = iv
		return nil
	}
	src.out[to] = &Edge{From: from, To: to, Interval: iv}
	g.edgeCount++

	return nil
}

// RemoveEdge closes the validity interval of from→to at time t.
//
// Errors:
//   - ErrUnknownEdge: no from→to edge is stored (including a missing from vertex).
//   - ErrBadInterval: t precedes the edge start.
//
// Complexity: O(log V).
func (g *Graph) RemoveEdge(from, to VertexID, t Time) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	e, ok := g.edge(from, to)
	if !ok {
		return fmt.Errorf("%w: %d→%d", ErrUnknownEdge, from, to)
	}
	if t < e.Start {
		return fmt.Errorf("%w: edge %d→%d closed at %s before start %s", ErrBadInterval, from, to, t, e.Start)
	}
	e.End = t

	return nil
}

// HasEdge reports whether from→to is stored, closed or not.
func (g *Graph) HasEdge(from, to VertexID) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	_, ok := g.edge(from, to)

	return ok
}

// Edge returns a copy of the stored edge from→to.
func (g *Graph) Edge(from, to VertexID) (Edge, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	e, ok := g.edge(from, to)
	if !ok {
		return Edge{}, false
	}

	return *e, true
}

// Edges returns copies of the outgoing edges of id, sorted by To ascending.
//
// Errors:
//   - ErrUnknownVertex: id is not stored.
//
// Complexity: O(d log d) for out-degree d.
func (g *Graph) Edges(id VertexID) ([]Edge, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	s, ok := g.lookup(id)
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownVertex, id)
	}
	out := make([]Edge, 0, len(s.out))
	for _, e := range s.out {
		out = append(out, *e)
	}
	slices.SortFunc(out, func(a, b Edge) int { return cmp.Compare(a.To, b.To) })

	return out, nil
}

// EdgeCount returns the number of stored edges, closed ones included.
// Complexity: O(1).
func (g *Graph) EdgeCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.edgeCount
}

// String renders the edge as from→to[start,end).
func (e Edge) String() string {
	return fmt.Sprintf("%d→%d%s", e.From, e.To, e.Interval)
}

// edge returns the stored edge pointer. Callers hold g.mu.
func (g *Graph) edge(from, to VertexID) (*Edge, bool) {
	s, ok := g.lookup(from)
	if !ok {
		return nil, false
	}
	e, ok := s.out[to]

	return e, ok
}
