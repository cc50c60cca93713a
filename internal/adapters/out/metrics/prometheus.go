// Package metrics exposes engine counters to Prometheus.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"fulfillment/internal/core/domain/model/validation"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "fulfillment"

// Prometheus implements ports.Metrics on its own registry.
type Prometheus struct {
	registry *prometheus.Registry

	checksTotal         *prometheus.CounterVec
	checkDuration       *prometheus.HistogramVec
	reservationFailures *prometheus.CounterVec
	picksTotal          *prometheus.CounterVec
	ordersShipped       prometheus.Counter
	invariantViolations prometheus.Gauge

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// NewPrometheus registers the collectors on a private registry, so several
// instances can live in one process.
func NewPrometheus() *Prometheus {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	m := &Prometheus{
		registry: registry,
		checksTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "validation_checks_total",
			Help:      "Validation checks run, by check and verdict",
		}, []string{"check", "verdict"}),
		checkDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "validation_check_duration_seconds",
			Help:      "Duration of one validation check",
			Buckets:   []float64{.001, .005, .01, .05, .1, .25, .5, 1, 2, 5},
		}, []string{"check"}),
		reservationFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reservation_failures_total",
			Help:      "Stock reservations that did not commit, by reason",
		}, []string{"reason"}),
		picksTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pick_confirmations_total",
			Help:      "Pick confirmations, by scan result",
		}, []string{"result"}),
		ordersShipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_shipped_total",
			Help:      "Orders moved to Shipped",
		}),
		invariantViolations: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "inventory_invariant_violations",
			Help:      "Ledger rows breaking 0 <= allocated <= onHand at the last audit",
		}),
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"method", "path", "status"}),
		httpRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		}, []string{"method", "path"}),
	}

	registry.MustRegister(
		m.checksTotal,
		m.checkDuration,
		m.reservationFailures,
		m.picksTotal,
		m.ordersShipped,
		m.invariantViolations,
		m.httpRequestsTotal,
		m.httpRequestDuration,
	)
	return m
}

// CheckCompleted counts the verdict and observes the duration of one check.
func (m *Prometheus) CheckCompleted(check validation.CheckName, verdict validation.Verdict, took time.Duration) {
	m.checksTotal.WithLabelValues(string(check), verdict.String()).Inc()
	m.checkDuration.WithLabelValues(string(check)).Observe(took.Seconds())
}

// ReservationFailed counts a failed reservation by reason.
func (m *Prometheus) ReservationFailed(reason string) {
	m.reservationFailures.WithLabelValues(reason).Inc()
}

// PickConfirmed counts scans, labelled by whether the barcode matched.
func (m *Prometheus) PickConfirmed(matched bool) {
	result := "matched"
	if !matched {
		result = "mismatch"
	}
	m.picksTotal.WithLabelValues(result).Inc()
}

// OrderShipped counts finalized shipments.
func (m *Prometheus) OrderShipped() {
	m.ordersShipped.Inc()
}

// InvariantViolations sets the gauge to the violations found by the last audit.
func (m *Prometheus) InvariantViolations(count int) {
	m.invariantViolations.Set(float64(count))
}

// ObserveRequest records one HTTP request; path is the route template, not the raw URL.
func (m *Prometheus) ObserveRequest(method, path string, status int, took time.Duration) {
	m.httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(method, path).Observe(took.Seconds())
}

// Handler serves the registry in the Prometheus text format.
func (m *Prometheus) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
