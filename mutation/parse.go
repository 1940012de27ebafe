// SPDX-License-Identifier: MIT

package mutation

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/katalvlaran/tgraph/core"
)

// maxLineBytes bounds one record line; vertex lists can be long.
const maxLineBytes = 16 << 20

// ParseLine parses "<step> <type> <operand>..." separated by spaces or tabs.
// The token "inf" is accepted in every numeric position and maps to core.Infinity.
//
// Errors:
//   - ErrMalformedRecord: fewer than two fields, a non-numeric field, or an odd
//     operand count for an edge type.
//   - ErrUnknownType: the type code is not 0..3.
func ParseLine(line string) (Record, error) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return Record{}, fmt.Errorf("%w: want at least 2 fields, got %d", ErrMalformedRecord, len(fields))
	}

	step, err := core.ParseTime(fields[0])
	if err != nil {
		return Record{}, fmt.Errorf("%w: step: %v", ErrMalformedRecord, err)
	}
	code, err := strconv.Atoi(fields[1])
	if err != nil {
		return Record{}, fmt.Errorf("%w: type %q", ErrMalformedRecord, fields[1])
	}
	typ := Type(code)
	if !typ.Valid() {
		return Record{}, fmt.Errorf("%w: %d", ErrUnknownType, code)
	}

	ops := fields[2:]
	if len(ops) == 0 {
		return Record{}, fmt.Errorf("%w: %s without operands", ErrMalformedRecord, typ)
	}
	if len(ops)%typ.Arity() != 0 {
		return Record{}, fmt.Errorf("%w: %s needs operand pairs, got %d operands", ErrMalformedRecord, typ, len(ops))
	}
	rec := Record{Step: step, Type: typ, Operands: make([]core.VertexID, len(ops))}
	for i, tok := range ops {
		v, err := core.ParseTime(tok)
		if err != nil {
			return Record{}, fmt.Errorf("%w: operand %d: %v", ErrMalformedRecord, i, err)
		}
		rec.Operands[i] = core.VertexID(v)
	}

	return rec, nil
}

// Parse reads one record per line from r. Blank lines are skipped.
// Malformed lines yield a *ParseError naming source and line; read failures
// are returned wrapped as they are.
func Parse(r io.Reader, source string) ([]Record, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	var out []Record
	line := 0
	for sc.Scan() {
		line++
		text := sc.Text()
		if strings.TrimSpace(text) == "" {
			continue
		}
		rec, err := ParseLine(text)
		if err != nil {
			return nil, &ParseError{Source: source, Line: line, Err: err}
		}
		out = append(out, rec)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("mutation: read %s: %w", source, err)
	}

	return out, nil
}
