// SPDX-License-Identifier: MIT
//
// File: types.go
// Role: Mutation record model, batch, statistics and error types.

package mutation

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/katalvlaran/tgraph/core"
)

// Sentinel errors for mutation parsing and application.
var (
	// ErrMalformedRecord indicates a record line that cannot be parsed.
	ErrMalformedRecord = errors.New("mutation: malformed record")

	// ErrUnknownType indicates a mutation type code outside 0..3.
	ErrUnknownType = errors.New("mutation: unknown mutation type")
)

// Type is the mutation type code carried in the second record field.
type Type int

// Type codes. Their numeric order is also the application order within a batch.
const (
	AddVertex Type = 0
	AddEdge   Type = 1
	DelEdge   Type = 2
	DelVertex Type = 3
)

// Valid reports whether t is one of the four known codes.
func (t Type) Valid() bool { return t >= AddVertex && t <= DelVertex }

// Arity is the number of operands one operation of this type consumes.
func (t Type) Arity() int {
	if t == AddEdge || t == DelEdge {
		return 2
	}

	return 1
}

// String implements fmt.Stringer.
func (t Type) String() string {
	switch t {
	case AddVertex:
		return "add-vertex"
	case AddEdge:
		return "add-edge"
	case DelEdge:
		return "del-edge"
	case DelVertex:
		return "del-vertex"
	}

	return "type(" + strconv.Itoa(int(t)) + ")"
}

// Record is one parsed input line: a step, a type and its operands.
// Edge types carry (source, destination) pairs; vertex types carry single ids.
type Record struct {
	Step     core.Time
	Type     Type
	Operands []core.VertexID
}

// Batch is every record read for one time step.
type Batch struct {
	Step    core.Time
	Records []Record
}

// Stats counts applied operations by type.
type Stats struct {
	AddVertex int
	AddEdge   int
	DelEdge   int
	DelVertex int
}

// Total returns the number of applied operations.
func (s Stats) Total() int { return s.AddVertex + s.AddEdge + s.DelEdge + s.DelVertex }

// ByType returns the counter for t.
func (s Stats) ByType(t Type) int {
	switch t {
	case AddVertex:
		return s.AddVertex
	case AddEdge:
		return s.AddEdge
	case DelEdge:
		return s.DelEdge
	case DelVertex:
		return s.DelVertex
	}

	return 0
}

func (s *Stats) inc(t Type) {
	switch t {
	case AddVertex:
		s.AddVertex++
	case AddEdge:
		s.AddEdge++
	case DelEdge:
		s.DelEdge++
	case DelVertex:
		s.DelVertex++
	}
}

// ParseError locates a malformed record within its input.
type ParseError struct {
	Source string // file path or other input name
	Line   int    // 1-based
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d: %v", e.Source, e.Line, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ApplyError reports the operation that failed while applying a batch.
// Err wraps the underlying core or mutation sentinel.
type ApplyError struct {
	Step   core.Time
	Type   Type
	Vertex core.VertexID // the vertex, or the edge source
	Peer   core.VertexID // the edge destination; unused for vertex types
	Err    error
}

func (e *ApplyError) Error() string {
	if e.Type.Arity() == 2 {
		return fmt.Sprintf("mutation: step %s %s %d→%d: %v", e.Step, e.Type, e.Vertex, e.Peer, e.Err)
	}

	return fmt.Sprintf("mutation: step %s %s %d: %v", e.Step, e.Type, e.Vertex, e.Err)
}

func (e *ApplyError) Unwrap() error { return e.Err }
