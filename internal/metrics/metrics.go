// Package metrics provides Prometheus metrics for the roundup bot.
package metrics

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tessro/roundup/internal/command"
	"github.com/tessro/roundup/internal/logging"
	"github.com/tessro/roundup/internal/store"
)

var (
	// CommandsTotal counts dispatched commands by name and outcome.
	CommandsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "roundup_commands_total",
			Help: "Dispatched commands",
		},
		[]string{"command", "outcome"},
	)

	// CommandDuration records command handling time in seconds.
	CommandDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "roundup_command_duration_seconds",
			Help:    "Command handling duration",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"command"},
	)

	// ResponseIDs tracks the number of response IDs held in memory.
	ResponseIDs = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "roundup_response_ids",
			Help: "Response IDs currently stored",
		},
	)

	// StoreMutationsTotal counts store mutations by kind (submitted, cleared).
	StoreMutationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "roundup_store_mutations_total",
			Help: "Store mutations",
		},
		[]string{"kind"},
	)
)

func init() {
	prometheus.MustRegister(
		CommandsTotal,
		CommandDuration,
		ResponseIDs,
		StoreMutationsTotal,
	)
}

// ObserveCommand records one dispatched command.
// It has the shape of command.Observer.
func ObserveCommand(name string, outcome command.Outcome, elapsed time.Duration) {
	CommandsTotal.WithLabelValues(name, string(outcome)).Inc()
	CommandDuration.WithLabelValues(name).Observe(elapsed.Seconds())
}

// TrackStore keeps the store gauges current as s changes.
func TrackStore(s *store.Store) {
	ResponseIDs.Set(float64(s.Len()))
	s.OnEvent(func(ev store.Event) {
		StoreMutationsTotal.WithLabelValues(string(ev.Kind)).Inc()
		ResponseIDs.Set(float64(ev.IDs))
	})
}

// Handler returns the HTTP handler serving /metrics.
func Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}

// Serve exposes /metrics on addr until ctx is done.
func Serve(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		defer logging.LogPanic("metrics-server", nil)
		slog.Info("metrics server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
