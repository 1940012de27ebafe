package core_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tgraph/core"
)

func TestView_SnapshotReads(t *testing.T) {
	g := core.NewGraph()
	require.NoError(t, g.AddVertex(1, 0, core.Infinity))
	require.NoError(t, g.AddVertex(2, 1, core.Infinity))
	require.NoError(t, g.AddVertex(3, 1, core.Infinity))
	require.NoError(t, g.AddEdge(1, 2, 0, core.Infinity))
	require.NoError(t, g.AddEdge(1, 3, 1, 4))

	err := g.View(func(s core.Snapshot) error {
		require.Equal(t, 3, s.Len())

		v, ok := s.Vertex(2)
		require.True(t, ok)
		require.Equal(t, core.Time(1), v.Start)
		_, ok = s.Vertex(4)
		require.False(t, ok)

		out := map[core.VertexID]core.Interval{}
		require.True(t, s.Out(1, func(e core.Edge) bool {
			require.Equal(t, core.VertexID(1), e.From)
			out[e.To] = e.Interval
			return true
		}))
		require.Equal(t, map[core.VertexID]core.Interval{
			2: {Start: 0, End: core.Infinity},
			3: {Start: 1, End: 4},
		}, out)
		require.False(t, s.Out(4, func(core.Edge) bool { return true }))

		visited := 0
		s.Range(func(core.Vertex) bool {
			visited++
			return visited < 2
		})
		require.Equal(t, 2, visited, "Range stops when fn returns false")

		return nil
	})
	require.NoError(t, err)
}

func TestView_PropagatesError(t *testing.T) {
	g := core.NewGraph()
	boom := errors.New("boom")
	require.ErrorIs(t, g.View(func(core.Snapshot) error { return boom }), boom)
}
