// Package earliest defines the configuration options, sentinel errors and
// result type for the earliest-arrival search on a temporal graph.
//
// Options:
//
//	– Source:            starting vertex ID (required, must be stored in the graph).
//	– Horizon:           inclusive upper bound T on reaching times. Default Infinity.
//	– MaxSettled:        optional budget on settled vertices. Default 0 (unbounded).
//	– TimeBudget:        optional wall-clock budget. Default 0 (unbounded).
//	– EdgeIntervalsOnly: skip the destination-vertex interval check.
//
// Errors (sentinel):
//
//	– ErrNoSource        if no Source option was given.
//	– ErrNilGraph        if the graph pointer is nil.
//	– ErrSourceNotFound  if the source vertex is not stored.
//	– ErrBudgetExceeded  if MaxSettled or TimeBudget ran out.
//	– ErrBadHorizon      if the horizon is negative.
//	– ErrBadBudget       if MaxSettled or TimeBudget is negative.
package earliest

import (
	"cmp"
	"context"
	"errors"
	"slices"
	"time"

	"github.com/katalvlaran/tgraph/core"
)

// Sentinel errors returned by Compute.
var (
	// ErrNoSource indicates that Compute was called without the Source option.
	ErrNoSource = errors.New("earliest: source vertex not set")

	// ErrNilGraph indicates that a nil *core.Graph was passed to Compute.
	ErrNilGraph = errors.New("earliest: graph is nil")

	// ErrSourceNotFound indicates that the source vertex is not stored in the graph.
	// Callers driving a step loop treat it as recoverable and skip the step.
	ErrSourceNotFound = errors.New("earliest: source vertex not found in graph")

	// ErrBudgetExceeded indicates the search was stopped by MaxSettled or TimeBudget.
	ErrBudgetExceeded = errors.New("earliest: search budget exceeded")

	// ErrBadHorizon indicates a negative horizon.
	ErrBadHorizon = errors.New("earliest: horizon must be non-negative")

	// ErrBadBudget indicates a negative settle or time budget.
	ErrBadBudget = errors.New("earliest: budget must be non-negative")
)

// Options configures one Compute call.
//
// Source            – starting vertex ID; its label is 0 whatever its own interval.
// Horizon           – reaching times greater than Horizon are rejected.
// MaxSettled        – stop with ErrBudgetExceeded after settling this many vertices (0 = no cap).
// TimeBudget        – stop with ErrBudgetExceeded once this much wall time elapsed (0 = no cap).
// EdgeIntervalsOnly – consult edge intervals only, ignoring destination vertex intervals.
// Context           – cancellation; checked periodically during the search.
type Options struct {
	Source            core.VertexID
	Horizon           core.Time
	MaxSettled        int
	TimeBudget        time.Duration
	EdgeIntervalsOnly bool
	Context           context.Context

	hasSource bool
}

// Option represents a functional option for configuring Compute.
type Option func(*Options)

// Source sets the starting vertex. It must be given.
func Source(id core.VertexID) Option {
	return func(o *Options) {
		o.Source = id
		o.hasSource = true
	}
}

// WithHorizon sets the inclusive bound T on reaching times.
// Negative values panic with ErrBadHorizon.
func WithHorizon(t core.Time) Option {
	return func(o *Options) {
		if t < 0 {
			panic(ErrBadHorizon.Error())
		}
		o.Horizon = t
	}
}

// WithMaxSettled caps the number of vertices the search may settle.
// Zero means unbounded; negative values panic with ErrBadBudget.
func WithMaxSettled(n int) Option {
	return func(o *Options) {
		if n < 0 {
			panic(ErrBadBudget.Error())
		}
		o.MaxSettled = n
	}
}

// WithTimeBudget caps the wall-clock duration of the search.
// Zero means unbounded; negative values panic with ErrBadBudget.
func WithTimeBudget(d time.Duration) Option {
	return func(o *Options) {
		if d < 0 {
			panic(ErrBadBudget.Error())
		}
		o.TimeBudget = d
	}
}

// WithEdgeIntervalsOnly disables the destination-vertex interval check, so a
// closed vertex stays reachable through edges that are still open.
func WithEdgeIntervalsOnly() Option {
	return func(o *Options) {
		o.EdgeIntervalsOnly = true
	}
}

// WithContext attaches a cancellation context to the search.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		o.Context = ctx
	}
}

// DefaultOptions returns Options with no source, an unbounded horizon and no budgets.
func DefaultOptions() Options {
	return Options{
		Horizon: core.Infinity,
		Context: context.Background(),
	}
}

// Arrival pairs a vertex with its arrival label.
type Arrival struct {
	ID   core.VertexID
	Time core.Time // core.Infinity when unreachable
}

// Result is the outcome of one Compute call. Arrival holds a label for every
// vertex stored at compute time; unreachable vertices carry core.Infinity.
type Result struct {
	Source  core.VertexID
	Horizon core.Time
	Arrival map[core.VertexID]core.Time
	Settled int // vertices whose label was finalized
}

// Get returns the arrival label of id and whether id was part of the snapshot.
func (r Result) Get(id core.VertexID) (core.Time, bool) {
	t, ok := r.Arrival[id]
	return t, ok
}

// Reached reports whether id has a finite arrival label.
func (r Result) Reached(id core.VertexID) bool {
	t, ok := r.Arrival[id]
	return ok && t != core.Infinity
}

// Ordered returns all labels sorted by vertex ID ascending.
func (r Result) Ordered() []Arrival {
	out := make([]Arrival, 0, len(r.Arrival))
	for id, t := range r.Arrival {
		out = append(out, Arrival{ID: id, Time: t})
	}
	slices.SortFunc(out, func(a, b Arrival) int { return cmp.Compare(a.ID, b.ID) })

	return out
}

// ReachedCount returns the number of vertices with a finite label.
func (r Result) ReachedCount() int {
	n := 0
	for _, t := range r.Arrival {
		if t != core.Infinity {
			n++
		}
	}

	return n
}
