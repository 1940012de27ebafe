// Package earliest_test contains unit tests for the earliest-arrival search.
// These tests validate the worked scenarios, interval boundaries, the horizon,
// budgets and the error contract.
package earliest_test

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tgraph/core"
	"github.com/katalvlaran/tgraph/earliest"
)

const inf = core.Infinity

// chain builds vertices {1,2,3} open from 0, 1→2 [0,inf) and 2→3 [1,3).
func chain(t *testing.T) *core.Graph {
	t.Helper()
	g := core.NewGraph()
	for _, id := range []core.VertexID{1, 2, 3} {
		require.NoError(t, g.AddVertex(id, 0, inf))
	}
	require.NoError(t, g.AddEdge(1, 2, 0, inf))
	require.NoError(t, g.AddEdge(2, 3, 1, 3))

	return g
}

// ------------------------------------------------------------------------
// 1. Validation
// ------------------------------------------------------------------------

func TestCompute_NoSource(t *testing.T) {
	_, err := earliest.Compute(core.NewGraph())
	require.ErrorIs(t, err, earliest.ErrNoSource)
}

func TestCompute_NilGraph(t *testing.T) {
	_, err := earliest.Compute(nil, earliest.Source(1))
	require.ErrorIs(t, err, earliest.ErrNilGraph)
}

func TestCompute_SourceNotFound(t *testing.T) {
	g := chain(t)
	before := g.String()

	_, err := earliest.Compute(g, earliest.Source(42))
	require.ErrorIs(t, err, earliest.ErrSourceNotFound)
	require.Equal(t, before, g.String(), "a skipped compute leaves the store untouched")
}

func TestCompute_BadOptionsPanic(t *testing.T) {
	var o earliest.Options
	require.PanicsWithValue(t, earliest.ErrBadHorizon.Error(), func() { earliest.WithHorizon(-1)(&o) })
	require.PanicsWithValue(t, earliest.ErrBadBudget.Error(), func() { earliest.WithMaxSettled(-1)(&o) })
	require.PanicsWithValue(t, earliest.ErrBadBudget.Error(), func() { earliest.WithTimeBudget(-1)(&o) })
}

// ------------------------------------------------------------------------
// 2. Worked scenarios
// ------------------------------------------------------------------------

func TestCompute_Chain(t *testing.T) {
	res, err := earliest.Compute(chain(t), earliest.Source(1), earliest.WithHorizon(5))
	require.NoError(t, err)

	require.Equal(t, map[core.VertexID]core.Time{1: 0, 2: 1, 3: 2}, res.Arrival)
	require.Equal(t, 3, res.Settled)
	require.Equal(t, core.Time(5), res.Horizon)
	require.Equal(t, 3, res.ReachedCount())
}

func TestCompute_ClosedEdgeLeavesUnreachable(t *testing.T) {
	g := chain(t)
	require.NoError(t, g.RemoveEdge(2, 3, 1))

	res, err := earliest.Compute(g, earliest.Source(1), earliest.WithHorizon(5))
	require.NoError(t, err)

	at, ok := res.Get(3)
	require.True(t, ok)
	require.Equal(t, inf, at)
	require.False(t, res.Reached(3))
	require.True(t, res.Reached(2))
}

func TestCompute_ZeroWidthWindowNeverPasses(t *testing.T) {
	g := core.NewGraph()
	require.NoError(t, g.AddVertex(1, 0, inf))
	require.NoError(t, g.AddVertex(2, 0, inf))
	require.NoError(t, g.AddVertex(3, 0, inf))
	require.NoError(t, g.AddEdge(1, 2, 0, inf))
	require.NoError(t, g.AddEdge(2, 3, 2, 3))

	res, err := earliest.Compute(g, earliest.Source(1))
	require.NoError(t, err)
	require.Equal(t, core.Time(1), res.Arrival[2])
	require.Equal(t, inf, res.Arrival[3], "r = max(1,2)+1 = 3 is not < end 3")

	// Even a source-adjacent edge with the same window is unusable.
	require.NoError(t, g.AddEdge(1, 3, 2, 3))
	res, err = earliest.Compute(g, earliest.Source(1))
	require.NoError(t, err)
	require.Equal(t, inf, res.Arrival[3])
}

func TestCompute_WaitsForEdgeStart(t *testing.T) {
	g := core.NewGraph()
	require.NoError(t, g.AddVertex(1, 0, inf))
	require.NoError(t, g.AddVertex(2, 0, inf))
	require.NoError(t, g.AddEdge(1, 2, 4, inf))

	res, err := earliest.Compute(g, earliest.Source(1))
	require.NoError(t, err)
	require.Equal(t, core.Time(5), res.Arrival[2])
}

func TestCompute_Horizon(t *testing.T) {
	g := chain(t)

	res, err := earliest.Compute(g, earliest.Source(1), earliest.WithHorizon(1))
	require.NoError(t, err)
	require.Equal(t, core.Time(1), res.Arrival[2], "horizon is inclusive")
	require.Equal(t, inf, res.Arrival[3])

	res, err = earliest.Compute(g, earliest.Source(1), earliest.WithHorizon(0))
	require.NoError(t, err)
	require.Equal(t, map[core.VertexID]core.Time{1: 0, 2: inf, 3: inf}, res.Arrival)
}

func TestCompute_PrefersEarlierPath(t *testing.T) {
	// 1→2 opens late, 1→3→2 is earlier.
	g := core.NewGraph()
	for _, id := range []core.VertexID{1, 2, 3} {
		require.NoError(t, g.AddVertex(id, 0, inf))
	}
	require.NoError(t, g.AddEdge(1, 2, 7, inf))
	require.NoError(t, g.AddEdge(1, 3, 0, inf))
	require.NoError(t, g.AddEdge(3, 2, 0, inf))

	res, err := earliest.Compute(g, earliest.Source(1))
	require.NoError(t, err)
	require.Equal(t, core.Time(2), res.Arrival[2])
}

// ------------------------------------------------------------------------
// 3. Vertex intervals
// ------------------------------------------------------------------------

func TestCompute_SourceIntervalIgnored(t *testing.T) {
	g := chain(t)
	require.NoError(t, g.RemoveVertex(1, 0))

	res, err := earliest.Compute(g, earliest.Source(1), earliest.WithHorizon(5))
	require.NoError(t, err)
	require.Equal(t, core.Time(0), res.Arrival[1])
	require.Equal(t, core.Time(1), res.Arrival[2])
}

func TestCompute_ClosedVertexExcludedFromItsEnd(t *testing.T) {
	// 1→2 [0,inf), 2→3 [0,inf), 4→3 [0,inf), 1→4 [3,inf)
	g := core.NewGraph()
	for _, id := range []core.VertexID{1, 2, 3, 4} {
		require.NoError(t, g.AddVertex(id, 0, inf))
	}
	require.NoError(t, g.AddEdge(1, 2, 0, inf))
	require.NoError(t, g.AddEdge(2, 3, 0, inf))
	require.NoError(t, g.AddEdge(4, 3, 0, inf))
	require.NoError(t, g.AddEdge(1, 4, 3, inf))

	// Vertex 2 closes at 1: reaching it at 1 is no longer allowed.
	require.NoError(t, g.RemoveVertex(2, 1))
	res, err := earliest.Compute(g, earliest.Source(1))
	require.NoError(t, err)
	require.Equal(t, inf, res.Arrival[2])
	require.Equal(t, core.Time(5), res.Arrival[3], "detour via 4")

	// Closing it at 2 keeps the arrival at 1.
	g2 := core.NewGraph()
	for _, id := range []core.VertexID{1, 2} {
		require.NoError(t, g2.AddVertex(id, 0, inf))
	}
	require.NoError(t, g2.AddEdge(1, 2, 0, inf))
	require.NoError(t, g2.RemoveVertex(2, 2))
	res, err = earliest.Compute(g2, earliest.Source(1))
	require.NoError(t, err)
	require.Equal(t, core.Time(1), res.Arrival[2])

	// Still stored: the soft delete only hides it.
	v, ok := g.Vertex(2)
	require.True(t, ok)
	require.Equal(t, core.Time(1), v.End)
}

func TestCompute_EdgeIntervalsOnly(t *testing.T) {
	g := chain(t)
	require.NoError(t, g.RemoveVertex(2, 1))

	res, err := earliest.Compute(g, earliest.Source(1), earliest.WithEdgeIntervalsOnly())
	require.NoError(t, err)
	require.Equal(t, core.Time(1), res.Arrival[2])
	require.Equal(t, core.Time(2), res.Arrival[3])
}

// ------------------------------------------------------------------------
// 4. Properties
// ------------------------------------------------------------------------

// TestCompute_MonotonicArrival checks on random graphs that every reached
// vertex other than the source has an in-edge that justifies its label and
// whose tail was reached strictly earlier.
func TestCompute_MonotonicArrival(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for round := 0; round < 20; round++ {
		g := core.NewGraph()
		const n = 40
		for id := core.VertexID(0); id < n; id++ {
			require.NoError(t, g.AddVertex(id, 0, inf))
		}
		type edge struct{ from, to core.VertexID }
		var edges []edge
		for i := 0; i < 160; i++ {
			from, to := core.VertexID(rng.Intn(n)), core.VertexID(rng.Intn(n))
			start := core.Time(rng.Intn(10))
			end := inf
			if rng.Intn(3) == 0 {
				end = start + core.Time(rng.Intn(5))
			}
			require.NoError(t, g.AddEdge(from, to, start, end))
			edges = append(edges, edge{from, to})
		}

		res, err := earliest.Compute(g, earliest.Source(0), earliest.WithHorizon(20))
		require.NoError(t, err)

		for _, a := range res.Ordered() {
			if a.ID == 0 || a.Time == inf {
				continue
			}
			require.LessOrEqual(t, a.Time, core.Time(20))
			justified := false
			for _, e := range edges {
				if e.to != a.ID {
					continue
				}
				tail := res.Arrival[e.from]
				if tail == inf {
					continue
				}
				stored, _ := g.Edge(e.from, e.to)
				r := max(tail, stored.Start) + 1
				if r < stored.End && r == a.Time {
					require.Less(t, tail, a.Time)
					justified = true
				}
			}
			require.True(t, justified, "round %d: vertex %d label %s has no witness edge", round, a.ID, a.Time)
		}
	}
}

func TestCompute_FullRecompute(t *testing.T) {
	g := chain(t)
	first, err := earliest.Compute(g, earliest.Source(1), earliest.WithHorizon(5))
	require.NoError(t, err)
	require.Equal(t, core.Time(2), first.Arrival[3])

	require.NoError(t, g.RemoveEdge(2, 3, 1))
	second, err := earliest.Compute(g, earliest.Source(1), earliest.WithHorizon(5))
	require.NoError(t, err)
	require.Equal(t, inf, second.Arrival[3], "labels from a previous call are not reused")
	require.Equal(t, core.Time(2), first.Arrival[3], "earlier results are independent")
}

func TestCompute_Ordered(t *testing.T) {
	res, err := earliest.Compute(chain(t), earliest.Source(1))
	require.NoError(t, err)
	require.Equal(t, []earliest.Arrival{{ID: 1, Time: 0}, {ID: 2, Time: 1}, {ID: 3, Time: 2}}, res.Ordered())
}

// ------------------------------------------------------------------------
// 5. Budgets and cancellation
// ------------------------------------------------------------------------

func TestCompute_MaxSettled(t *testing.T) {
	g := chain(t)

	_, err := earliest.Compute(g, earliest.Source(1), earliest.WithMaxSettled(2))
	require.ErrorIs(t, err, earliest.ErrBudgetExceeded)

	res, err := earliest.Compute(g, earliest.Source(1), earliest.WithMaxSettled(3))
	require.NoError(t, err)
	require.Equal(t, 3, res.Settled)
}

func TestCompute_Cancelled(t *testing.T) {
	g := core.NewGraph()
	const n = 5000
	for id := core.VertexID(0); id < n; id++ {
		require.NoError(t, g.AddVertex(id, 0, inf))
		if id > 0 {
			require.NoError(t, g.AddEdge(id-1, id, 0, inf))
		}
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := earliest.Compute(g, earliest.Source(0), earliest.WithContext(ctx))
	require.ErrorIs(t, err, context.Canceled)

	res, err := earliest.Compute(g, earliest.Source(0))
	require.NoError(t, err)
	require.Equal(t, core.Time(n-1), res.Arrival[n-1])
}
