// SPDX-License-Identifier: MIT
//
// File: runner.go
// Role: Step loop: read → apply → compute → write, with per-step statistics.
// Phases:
//   - Apply holds the graph's write lock; Compute runs under its read lock.
//     A step's compute therefore always sees every mutation of that step.

package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/katalvlaran/tgraph/core"
	"github.com/katalvlaran/tgraph/earliest"
	"github.com/katalvlaran/tgraph/metrics"
	"github.com/katalvlaran/tgraph/mutation"
	"github.com/katalvlaran/tgraph/output"
)

// StepReport summarises one completed step.
type StepReport struct {
	Step      core.Time
	Mutations mutation.Stats
	Graph     core.GraphStats

	// Skipped is set when the source vertex was absent and compute was not run.
	Skipped bool
	Result  earliest.Result

	// Written is the result file path, empty when the step was not written.
	Written string

	Apply   time.Duration
	Compute time.Duration
	Write   time.Duration
}

// Runner drives a graph through the configured step range.
type Runner struct {
	Config  Config
	Graph   *core.Graph
	Source  mutation.Source
	Writer  *output.CSVWriter // nil disables output
	Metrics *metrics.Metrics  // nil disables metrics
	Logger  *slog.Logger

	// OnStep, when set, receives the report of every completed step.
	OnStep func(StepReport)
}

// New validates cfg and wires a Runner reading shards from cfg.InputDir.
// The logger is tagged with a fresh run_id.
func New(cfg Config, log *slog.Logger) (*Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	log = log.With("run_id", newRunID())

	var gopts []core.GraphOption
	if cfg.VertexOverwrite {
		gopts = append(gopts, core.WithVertexOverwrite())
	}

	r := &Runner{
		Config: cfg,
		Graph:  core.NewGraph(gopts...),
		Source: &mutation.DirSource{
			Root:        cfg.InputDir,
			Pattern:     cfg.ShardPattern,
			Strict:      cfg.StrictShards,
			Concurrency: cfg.ReadConcurrency,
			Logger:      log,
		},
		Metrics: metrics.New(nil),
		Logger:  log,
	}
	if cfg.OutputDir != "" {
		r.Writer = &output.CSVWriter{Dir: cfg.OutputDir}
	}

	return r, nil
}

// Run processes steps StartStep..EndStep-1 in order. It stops at the first
// fatal error, returning it wrapped with the step, or when ctx is done.
func (r *Runner) Run(ctx context.Context) error {
	log := r.logger()
	if r.Graph == nil {
		r.Graph = core.NewGraph()
	}

	if r.Metrics != nil && r.Config.MetricsAddr != "" {
		srvCtx, cancel := context.WithCancel(ctx)
		defer cancel()
		go func() {
			if err := r.Metrics.Serve(srvCtx, r.Config.MetricsAddr, log); err != nil {
				log.Error("metrics server stopped", "err", err)
			}
		}()
	}

	log.Info("run started",
		"input", r.Config.InputDir,
		"start", r.Config.StartStep,
		"end", r.Config.EndStep,
		"source", r.Config.Source,
	)
	started := time.Now()
	for step := r.Config.StartStep; step < r.Config.EndStep; step++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		rep, err := r.Step(ctx, core.Time(step))
		if err != nil {
			return fmt.Errorf("pipeline: step %d: %w", step, err)
		}
		if r.OnStep != nil {
			r.OnStep(rep)
		}
	}
	log.Info("run finished", "steps", r.Config.EndStep-r.Config.StartStep, "elapsed", time.Since(started))

	return nil
}

// Step runs one iteration of the loop for step.
func (r *Runner) Step(ctx context.Context, step core.Time) (StepReport, error) {
	log := r.logger()
	rep := StepReport{Step: step}

	t0 := time.Now()
	b, err := r.Source.ReadStep(ctx, step)
	if err != nil {
		return rep, err
	}
	rep.Mutations, err = mutation.Apply(r.Graph, b)
	rep.Apply = time.Since(t0)
	r.recordMutations(rep.Mutations)
	if err != nil {
		return rep, err
	}

	t0 = time.Now()
	rep.Result, err = earliest.Compute(r.Graph, r.computeOptions(ctx, step)...)
	rep.Compute = time.Since(t0)
	switch {
	case errors.Is(err, earliest.ErrSourceNotFound):
		log.Warn("source vertex absent, skipping compute", "step", int64(step), "source", r.Config.Source)
		rep.Skipped = true
	case err != nil:
		return rep, err
	}

	if !rep.Skipped && r.Writer != nil && output.ShouldWrite(step, r.Config.WriteEvery) {
		t0 = time.Now()
		rep.Written, err = r.Writer.WriteStep(step, rep.Result)
		rep.Write = time.Since(t0)
		if err != nil {
			return rep, err
		}
	}

	rep.Graph = r.Graph.Stats()
	log.Info("step",
		"step", int64(step),
		"mutations", rep.Mutations.Total(),
		"vertices", rep.Graph.Vertices,
		"edges", rep.Graph.Edges,
		"reached", rep.Result.ReachedCount(),
		"apply", rep.Apply,
		"compute", rep.Compute,
		"write", rep.Write,
	)
	r.recordStep(rep)

	return rep, nil
}

func (r *Runner) computeOptions(ctx context.Context, step core.Time) []earliest.Option {
	opts := []earliest.Option{
		earliest.Source(core.VertexID(r.Config.Source)),
		earliest.WithHorizon(r.horizon(step)),
		earliest.WithMaxSettled(r.Config.MaxSettled),
		earliest.WithTimeBudget(r.Config.ComputeTimeout),
		earliest.WithContext(ctx),
	}
	if r.Config.EdgeIntervalsOnly {
		opts = append(opts, earliest.WithEdgeIntervalsOnly())
	}

	return opts
}

// horizon is step+HorizonOffset, saturating at core.Infinity.
func (r *Runner) horizon(step core.Time) core.Time {
	off := core.Time(r.Config.HorizonOffset)
	if off > core.Infinity-step {
		return core.Infinity
	}

	return step + off
}

func (r *Runner) recordMutations(st mutation.Stats) {
	if r.Metrics == nil {
		return
	}
	for t := mutation.AddVertex; t <= mutation.DelVertex; t++ {
		if n := st.ByType(t); n > 0 {
			r.Metrics.Mutations.WithLabelValues(t.String()).Add(float64(n))
		}
	}
}

func (r *Runner) recordStep(rep StepReport) {
	m := r.Metrics
	if m == nil {
		return
	}
	m.Step.Set(float64(rep.Step))
	m.Vertices.Set(float64(rep.Graph.Vertices))
	m.Edges.Set(float64(rep.Graph.Edges))
	m.ObservePhase(metrics.PhaseApply, rep.Apply)
	if rep.Skipped {
		m.SkippedSteps.Inc()
		m.Reached.Set(0)
		return
	}
	m.Reached.Set(float64(rep.Result.ReachedCount()))
	m.ObservePhase(metrics.PhaseCompute, rep.Compute)
	if rep.Written != "" {
		m.ObservePhase(metrics.PhaseWrite, rep.Write)
	}
}

func (r *Runner) logger() *slog.Logger {
	if r.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}

	return r.Logger
}
