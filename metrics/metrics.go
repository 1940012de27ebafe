// Package metrics exposes per-step statistics of a run as Prometheus collectors.
package metrics

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Phase labels for PhaseSeconds.
const (
	PhaseApply   = "apply"
	PhaseCompute = "compute"
	PhaseWrite   = "write"
)

// Metrics groups the collectors of one run. Collectors are registered on the
// registry passed to New, never on the global default registry.
type Metrics struct {
	registry *prometheus.Registry

	// Step is the last completed time step.
	Step prometheus.Gauge

	// Vertices and Edges count stored records, closed ones included.
	Vertices prometheus.Gauge
	Edges    prometheus.Gauge

	// Reached counts vertices with a finite arrival time at the last computed step.
	Reached prometheus.Gauge

	// PhaseSeconds measures each phase of a step.
	PhaseSeconds *prometheus.HistogramVec

	// Mutations counts applied operations, labeled by mutation type.
	Mutations *prometheus.CounterVec

	// SkippedSteps counts steps whose compute was skipped (source vertex absent).
	SkippedSteps prometheus.Counter
}

// New creates the collectors and registers them on reg.
// A nil reg gets a fresh registry.
func New(reg *prometheus.Registry) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		Step: f.NewGauge(prometheus.GaugeOpts{
			Name: "tgraph_step",
			Help: "Last completed time step",
		}),
		Vertices: f.NewGauge(prometheus.GaugeOpts{
			Name: "tgraph_vertices",
			Help: "Stored vertices, closed ones included",
		}),
		Edges: f.NewGauge(prometheus.GaugeOpts{
			Name: "tgraph_edges",
			Help: "Stored edges, closed ones included",
		}),
		Reached: f.NewGauge(prometheus.GaugeOpts{
			Name: "tgraph_reached_vertices",
			Help: "Vertices reachable from the source at the last computed step",
		}),
		PhaseSeconds: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "tgraph_phase_duration_seconds",
				Help:    "Duration of the apply, compute and write phases of a step",
				Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 30},
			},
			[]string{"phase"},
		),
		Mutations: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tgraph_mutations_applied_total",
				Help: "Applied mutation operations",
			},
			[]string{"type"},
		),
		SkippedSteps: f.NewCounter(prometheus.CounterOpts{
			Name: "tgraph_skipped_steps_total",
			Help: "Steps whose computation was skipped because the source vertex was absent",
		}),
	}
}

// Registry returns the registry the collectors live on.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// ObservePhase records the duration of one phase.
func (m *Metrics) ObservePhase(phase string, d time.Duration) {
	m.PhaseSeconds.WithLabelValues(phase).Observe(d.Seconds())
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Serve exposes /metrics on addr until ctx is done.
func (m *Metrics) Serve(ctx context.Context, addr string, log *slog.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info("serving metrics", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
