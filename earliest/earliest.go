// Package earliest implements the earliest-arrival search on a temporal graph.
//
// It is a label-setting search in the manner of Dijkstra: labels are arrival
// times, and traversing edge e from a vertex reached at time a yields
//
//	r = max(a, e.Start) + 1
//
// which is accepted only if e.Start < r < e.End and r <= Horizon. Because r is
// strictly greater than a, labels grow along every path and each vertex is
// settled with its final label exactly once.
//
// Notes on implementation choices:
//
//   - Every call resets all labels; nothing is reused between calls.
//   - Labels live in a map owned by the call, never on the stored vertices.
//   - The search runs inside core.Graph.View so mutations cannot interleave.
//   - We use a “lazy” decrease-key strategy: duplicates are pushed and stale entries skipped.
//   - max(a, e.Start) >= Horizon is rejected before adding 1, so no overflow at Infinity.
package earliest

import (
	"container/heap"
	"context"
	"fmt"
	"time"

	"github.com/katalvlaran/tgraph/core"
)

// checkEvery is how many heap pops pass between context and clock checks.
const checkEvery = 1024

// Compute returns the earliest arrival time of every stored vertex from the
// source given by the Source option.
//
// Preconditions and validation (in order):
//  1. Source must be set (ErrNoSource).
//  2. g must be non-nil (ErrNilGraph).
//  3. g must contain Source (ErrSourceNotFound).
//
// Options customization:
//
//   - WithHorizon(T): reaching times above T are rejected.
//   - WithMaxSettled(n), WithTimeBudget(d): bound the work per call (ErrBudgetExceeded).
//   - WithEdgeIntervalsOnly(): ignore destination vertex intervals.
//   - WithContext(ctx): stop with ctx.Err() once cancelled.
//
// Complexity:
//
//   - Time:  O((V + E) log V)
//   - Space: O(V + E)
func Compute(g *core.Graph, opts ...Option) (Result, error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	if !cfg.hasSource {
		return Result{}, ErrNoSource
	}
	if g == nil {
		return Result{}, ErrNilGraph
	}
	if cfg.Context == nil {
		cfg.Context = context.Background()
	}

	var res Result
	err := g.View(func(s core.Snapshot) error {
		if _, ok := s.Vertex(cfg.Source); !ok {
			return fmt.Errorf("%w: %d", ErrSourceNotFound, cfg.Source)
		}

		r := &runner{
			s:       s,
			options: cfg,
			label:   make(map[core.VertexID]core.Time, s.Len()),
			visited: make(map[core.VertexID]struct{}, s.Len()),
			pq:      make(nodePQ, 0, s.Len()),
			started: time.Now(),
		}
		r.init()
		if err := r.process(); err != nil {
			return err
		}

		res = Result{
			Source:  cfg.Source,
			Horizon: cfg.Horizon,
			Arrival: r.label,
			Settled: len(r.visited),
		}

		return nil
	})
	if err != nil {
		return Result{}, err
	}

	return res, nil
}

// runner holds the mutable state for a single Compute execution.
type runner struct {
	s       core.Snapshot               // read view, valid for the whole run
	options Options                     // Source, Horizon, budgets
	label   map[core.VertexID]core.Time // best-known arrival per vertex
	visited map[core.VertexID]struct{}  // settled vertices
	pq      nodePQ                      // min-heap keyed by label
	started time.Time                   // for TimeBudget
}

// init sets every label to Infinity, the source label to 0 and seeds the heap.
// The source is reachable at 0 regardless of its own interval.
func (r *runner) init() {
	r.s.Range(func(v core.Vertex) bool {
		r.label[v.ID] = core.Infinity
		return true
	})
	r.label[r.options.Source] = 0

	heap.Init(&r.pq)
	heap.Push(&r.pq, &nodeItem{id: r.options.Source, at: 0})
}

// process pops the smallest label until the heap is empty, settling each
// vertex once and relaxing its outgoing edges.
func (r *runner) process() error {
	cfg := r.options
	pops := 0
	for r.pq.Len() > 0 {
		pops++
		if pops%checkEvery == 0 {
			if err := r.checkLimits(); err != nil {
				return err
			}
		}

		item := heap.Pop(&r.pq).(*nodeItem)
		if _, done := r.visited[item.id]; done {
			continue
		}
		if cfg.MaxSettled > 0 && len(r.visited) >= cfg.MaxSettled {
			return fmt.Errorf("%w: settled %d vertices", ErrBudgetExceeded, len(r.visited))
		}
		r.visited[item.id] = struct{}{}
		r.relax(item.id)
	}

	return nil
}

// checkLimits reports cancellation or an exhausted time budget.
func (r *runner) checkLimits() error {
	if err := r.options.Context.Err(); err != nil {
		return err
	}
	if r.options.TimeBudget > 0 && time.Since(r.started) > r.options.TimeBudget {
		return fmt.Errorf("%w: exceeded %s after settling %d vertices",
			ErrBudgetExceeded, r.options.TimeBudget, len(r.visited))
	}

	return nil
}

// relax examines each outgoing edge of u and improves the label of its
// destination when the edge is usable at the candidate reaching time.
//
// Assumes r.label[u] is final.
func (r *runner) relax(u core.VertexID) {
	horizon := r.options.Horizon
	a := r.label[u]
	r.s.Out(u, func(e core.Edge) bool {
		base := max(a, e.Start)
		// r = base+1 would exceed the horizon.
		if base >= horizon {
			return true
		}
		reach := base + 1
		if reach <= e.Start || reach >= e.End {
			return true
		}
		if !r.options.EdgeIntervalsOnly {
			dst, ok := r.s.Vertex(e.To)
			if !ok || !dst.Contains(reach) {
				return true
			}
		}
		if cur, ok := r.label[e.To]; ok && reach >= cur {
			return true
		}

		r.label[e.To] = reach
		heap.Push(&r.pq, &nodeItem{id: e.To, at: reach})

		return true
	})
}

// nodeItem is a heap entry: a vertex and the label it was pushed with.
type nodeItem struct {
	id core.VertexID
	at core.Time
}

// nodePQ is a min-heap of *nodeItem ordered by label ascending.
// Outdated entries stay in the heap and are skipped when popped.
type nodePQ []*nodeItem

// Len counts entries, outdated ones included.
func (pq nodePQ) Len() int { return len(pq) }

// Less orders by label, ties by vertex ID so pops are deterministic.
func (pq nodePQ) Less(i, j int) bool {
	if pq[i].at != pq[j].at {
		return pq[i].at < pq[j].at
	}

	return pq[i].id < pq[j].id
}

func (pq nodePQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

// Push appends a *nodeItem; callers go through heap.Push.
func (pq *nodePQ) Push(x any) { *pq = append(*pq, x.(*nodeItem)) }

// Pop drops the last entry after heap.Pop moved the minimum there,
// clearing the slot so the item can be collected.
func (pq *nodePQ) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*pq = old[:n-1]

	return item
}
