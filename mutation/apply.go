// SPDX-License-Identifier: MIT
//
// File: apply.go
// Role: Type-ordered application of one batch to the temporal graph.
// Determinism:
//   - Records are applied AddVertex → AddEdge → DelEdge → DelVertex whatever
//     their input order; within one type, input order is kept.

package mutation

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/katalvlaran/tgraph/core"
)

// Sort orders records in place into the four type groups, stable within a group.
func Sort(records []Record) {
	slices.SortStableFunc(records, func(a, b Record) int { return cmp.Compare(a.Type, b.Type) })
}

// Apply applies batch b to g.
//
// Implementation:
//   - Stage 1: Validate every record (type code, operand arity) before touching g.
//   - Stage 2: Sort a copy of the records into type order.
//   - Stage 3: Apply each operation. Additions open [rec.Step, Infinity),
//     deletions close at rec.Step.
//
// Errors:
//   - *ApplyError wrapping ErrUnknownType or ErrMalformedRecord from stage 1;
//     nothing has been applied in that case.
//   - *ApplyError wrapping a core sentinel (ErrUnknownVertex, ErrUnknownEdge,
//     ErrDuplicateVertex, ErrBadInterval) from stage 3. Operations before the
//     failing one stay applied; the batch is considered fatal.
//
// Complexity: O(n log n + n log V) for n operations.
func Apply(g *core.Graph, b Batch) (Stats, error) {
	var st Stats
	for _, rec := range b.Records {
		if err := validate(rec); err != nil {
			return st, err
		}
	}
	if len(b.Records) == 0 {
		return st, nil
	}

	records := slices.Clone(b.Records)
	Sort(records)

	for _, rec := range records {
		n := rec.Type.Arity()
		for i := 0; i+n <= len(rec.Operands); i += n {
			if err := applyOne(g, rec, rec.Operands[i:i+n]); err != nil {
				return st, err
			}
			st.inc(rec.Type)
		}
	}

	return st, nil
}

func validate(rec Record) error {
	if !rec.Type.Valid() {
		return &ApplyError{Step: rec.Step, Type: rec.Type, Err: fmt.Errorf("%w: %d", ErrUnknownType, int(rec.Type))}
	}
	if len(rec.Operands) == 0 {
		return &ApplyError{Step: rec.Step, Type: rec.Type, Err: fmt.Errorf("%w: no operands", ErrMalformedRecord)}
	}
	if len(rec.Operands)%rec.Type.Arity() != 0 {
		e := &ApplyError{Step: rec.Step, Type: rec.Type, Err: fmt.Errorf("%w: dangling operand", ErrMalformedRecord)}
		e.Vertex = rec.Operands[len(rec.Operands)-1]
		return e
	}

	return nil
}

func applyOne(g *core.Graph, rec Record, ops []core.VertexID) error {
	var err error
	switch rec.Type {
	case AddVertex:
		err = g.AddVertex(ops[0], rec.Step, core.Infinity)
	case AddEdge:
		err = g.AddEdge(ops[0], ops[1], rec.Step, core.Infinity)
	case DelEdge:
		err = g.RemoveEdge(ops[0], ops[1], rec.Step)
	case DelVertex:
		err = g.RemoveVertex(ops[0], rec.Step)
	}
	if err == nil {
		return nil
	}

	ae := &ApplyError{Step: rec.Step, Type: rec.Type, Vertex: ops[0], Err: err}
	if len(ops) == 2 {
		ae.Peer = ops[1]
	}

	return ae
}
