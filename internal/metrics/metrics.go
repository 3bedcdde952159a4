// Package metrics exports stopwatch activity as Prometheus metrics.
package metrics

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/wandb/lapwatch/internal/observability"
	"github.com/wandb/lapwatch/internal/stopwatch"
)

const (
	namespace  = "lapwatch"
	subsystem  = "stopwatch"
	labelState = "state"
)

// Collector records stopwatch events.
//
// Implements stopwatch.Observer.
type Collector struct {
	Registry *prometheus.Registry

	lapsRecorded prometheus.Counter
	resets       prometheus.Counter
	stateChanges *prometheus.CounterVec
	elapsed      prometheus.Gauge
	tickDelta    prometheus.Histogram
}

func NewCollector() *Collector {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Collector{
		Registry: reg,
		lapsRecorded: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "laps_recorded_total",
			Help:      "Number of laps recorded.",
		}),
		resets: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "resets_total",
			Help:      "Number of resets.",
		}),
		stateChanges: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "state_changes_total",
			Help:      "Number of transitions into each run state.",
		}, []string{labelState}),
		elapsed: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "elapsed_milliseconds",
			Help:      "Elapsed time of the stopwatch in milliseconds.",
		}),
		tickDelta: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "tick_delta_milliseconds",
			Help:      "Milliseconds credited per tick.",
			Buckets:   prometheus.ExponentialBucketsRange(1, 1000, 12),
		}),
	}
}

func (c *Collector) OnStateChange(state stopwatch.RunState) {
	c.stateChanges.WithLabelValues(state.String()).Inc()
}

func (c *Collector) OnAdvance(delta, elapsed int64) {
	c.tickDelta.Observe(float64(delta))
	c.elapsed.Set(float64(elapsed))
}

func (c *Collector) OnLap(stopwatch.Lap) {
	c.lapsRecorded.Inc()
}

func (c *Collector) OnReset() {
	c.resets.Inc()
	c.elapsed.Set(0)
}

// Serve exposes the registry on addr under /metrics until ctx is canceled.
func (c *Collector) Serve(ctx context.Context, addr string, logger *observability.CoreLogger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(c.Registry, promhttp.HandlerOpts{}))

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("metrics: serving", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("metrics: shutdown: %w", err)
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("metrics: serve %s: %w", addr, err)
	}
}
