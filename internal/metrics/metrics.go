// Package metrics exports the dashboard's per-tick values to Prometheus.
package metrics

import (
	"context"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rileyhilliard/netbwmon/internal/errors"
	"github.com/rileyhilliard/netbwmon/internal/logger"
	"github.com/rileyhilliard/netbwmon/internal/monitor"
)

const namespace = "netbwmon"

// Exporter holds the collectors on a private registry, so several exporters
// (tests, mostly) never collide on the global one.
type Exporter struct {
	registry *prometheus.Registry

	rate        *prometheus.GaugeVec
	windowMax   *prometheus.GaugeVec
	windowAvg   *prometheus.GaugeVec
	historySize *prometheus.GaugeVec
	rollbacks   *prometheus.CounterVec

	mu            sync.Mutex
	seenRollbacks map[string]uint64
}

// New creates an exporter with all collectors registered.
func New() *Exporter {
	directional := []string{"interface", "direction"}
	e := &Exporter{
		registry: prometheus.NewRegistry(),
		rate: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "rate_bytes_per_second",
			Help:      "Most recent transfer rate.",
		}, directional),
		windowMax: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "window_max_bytes_per_second",
			Help:      "Largest rate in the visible history window.",
		}, directional),
		windowAvg: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "window_avg_bytes_per_second",
			Help:      "Average rate over the visible history window.",
		}, directional),
		historySize: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "history_size",
			Help:      "Number of samples in each history window.",
		}, []string{"interface"}),
		rollbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "counter_rollbacks_total",
			Help:      "Samples discarded because a byte counter went backwards.",
		}, []string{"interface"}),
		seenRollbacks: make(map[string]uint64),
	}

	e.registry.MustRegister(e.rate, e.windowMax, e.windowAvg, e.historySize, e.rollbacks)
	return e
}

// Publish records one snapshot. Safe to call from the dashboard loop while
// the HTTP handler scrapes.
func (e *Exporter) Publish(s monitor.Snapshot) {
	name := s.Interface
	e.rate.WithLabelValues(name, "rx").Set(float64(s.RxRate))
	e.rate.WithLabelValues(name, "tx").Set(float64(s.TxRate))
	e.windowMax.WithLabelValues(name, "rx").Set(float64(s.RxMax))
	e.windowMax.WithLabelValues(name, "tx").Set(float64(s.TxMax))
	e.windowAvg.WithLabelValues(name, "rx").Set(float64(s.RxAvg))
	e.windowAvg.WithLabelValues(name, "tx").Set(float64(s.TxAvg))
	e.historySize.WithLabelValues(name).Set(float64(s.HistorySize))

	e.mu.Lock()
	defer e.mu.Unlock()
	if seen := e.seenRollbacks[name]; s.Rollbacks > seen {
		e.rollbacks.WithLabelValues(name).Add(float64(s.Rollbacks - seen))
		e.seenRollbacks[name] = s.Rollbacks
	}
}

// Handler serves the private registry in the Prometheus text format.
func (e *Exporter) Handler() http.Handler {
	return promhttp.HandlerFor(e.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry.
func (e *Exporter) Registry() *prometheus.Registry {
	return e.registry
}

// Server is a running /metrics endpoint.
type Server struct {
	srv *http.Server
	ln  net.Listener
	log logger.Logger
}

// Serve listens on addr and serves /metrics in the background until Close.
func Serve(addr string, e *Exporter, log logger.Logger) (*Server, error) {
	if log == nil {
		log = logger.Noop()
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to start the metrics listener on "+addr,
			"Pick a free address with --metrics-addr, e.g. 127.0.0.1:9273.")
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", e.Handler())

	s := &Server{
		srv: &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second},
		ln:  ln,
		log: log,
	}
	go func() {
		if err := s.srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			log.Warn("metrics server stopped: %v", err)
		}
	}()
	log.Info("serving metrics on http://%s/metrics", ln.Addr())
	return s, nil
}

// Addr returns the bound address, useful when addr ended in ":0".
func (s *Server) Addr() string {
	return s.ln.Addr().String()
}

// Close shuts the server down, waiting briefly for in-flight scrapes.
func (s *Server) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return s.srv.Shutdown(ctx)
}
