// SPDX-License-Identifier: MIT
//
// File: api.go
// Role: Read-only facade: policy flag, catalog statistics and the textual dump.
// Policy:
//   - No algorithms or hidden state here.

package core

import (
	"slices"
	"strconv"
	"strings"
)

// Overwrites reports whether AddVertex replaces existing vertices.
func (g *Graph) Overwrites() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.overwrite
}

// GraphStats is a point-in-time summary of the store.
type GraphStats struct {
	Vertices     int // stored vertices
	Edges        int // stored edges
	OpenVertices int // vertices whose interval ends at Infinity
	OpenEdges    int // edges whose interval ends at Infinity
}

// Stats produces a consistent GraphStats snapshot.
//
// Complexity:
//   - Time O(V + E), Space O(1).
func (g *Graph) Stats() GraphStats {
	g.mu.RLock()
	defer g.mu.RUnlock()

	st := GraphStats{Vertices: len(g.slots), Edges: g.edgeCount}
	for i := range g.slots {
		if g.slots[i].vertex.Open() {
			st.OpenVertices++
		}
		for _, e := range g.slots[i].out {
			if e.Open() {
				st.OpenEdges++
			}
		}
	}

	return st
}

// String dumps the store one vertex per line, ascending by ID:
//
//	id<TAB>start<TAB>end[<TAB>dst<TAB>start<TAB>end]...
//
// Destinations are listed ascending. Open ends render as "inf".
func (g *Graph) String() string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	var sb strings.Builder
	dsts := make([]VertexID, 0)
	g.index.Scan(func(id VertexID, i int) bool {
		s := &g.slots[i]
		sb.WriteString(strconv.FormatInt(int64(id), 10))
		writeInterval(&sb, s.vertex.Interval)

		dsts = dsts[:0]
		for to := range s.out {
			dsts = append(dsts, to)
		}
		slices.Sort(dsts)
		for _, to := range dsts {
			sb.WriteByte('\t')
			sb.WriteString(strconv.FormatInt(int64(to), 10))
			writeInterval(&sb, s.out[to].Interval)
		}
		sb.WriteByte('\n')

		return true
	})

	return sb.String()
}

func writeInterval(sb *strings.Builder, iv Interval) {
	sb.WriteByte('\t')
	sb.WriteString(FormatTime(iv.Start))
	sb.WriteByte('\t')
	sb.WriteString(FormatTime(iv.End))
}
