package observability

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/signalsfoundry/orbital-catalog/refresh"
)

// RefreshCollector exposes Prometheus metrics for the periodic refresh loop.
type RefreshCollector struct {
	gatherer prometheus.Gatherer

	CyclesTotal     prometheus.Counter
	FailuresTotal   prometheus.Counter
	CycleDuration   prometheus.Histogram
	LastSuccessUnix prometheus.Gauge
}

// NewRefreshCollector registers refresh metrics against the provided registerer.
func NewRefreshCollector(reg prometheus.Registerer) (*RefreshCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	cycles, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "catalog_refresh_cycles_total",
		Help: "Cumulative number of catalog refresh cycles attempted.",
	}), "catalog_refresh_cycles_total")
	if err != nil {
		return nil, err
	}

	failures, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "catalog_refresh_failures_total",
		Help: "Cumulative number of catalog refresh cycles that ended in error.",
	}), "catalog_refresh_failures_total")
	if err != nil {
		return nil, err
	}

	duration, err := registerHistogram(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "catalog_refresh_duration_seconds",
		Help:    "Duration of catalog refresh cycles.",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
	}), "catalog_refresh_duration_seconds")
	if err != nil {
		return nil, err
	}

	lastSuccess, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "catalog_refresh_last_success_timestamp_seconds",
		Help: "Unix timestamp of the last successful catalog refresh.",
	}), "catalog_refresh_last_success_timestamp_seconds")
	if err != nil {
		return nil, err
	}

	return &RefreshCollector{
		gatherer:        gatherer,
		CyclesTotal:     cycles,
		FailuresTotal:   failures,
		CycleDuration:   duration,
		LastSuccessUnix: lastSuccess,
	}, nil
}

// Gatherer returns the Prometheus gatherer associated with the collector.
func (c *RefreshCollector) Gatherer() prometheus.Gatherer {
	if c == nil {
		return nil
	}
	return c.gatherer
}

// Listener returns a refresh listener that records each cycle outcome.
// Register it with Refresher.AddListener.
func (c *RefreshCollector) Listener() func(refresh.Result) {
	return func(res refresh.Result) {
		c.ObserveCycle(res)
	}
}

// ObserveCycle records one refresh cycle outcome, including its duration.
func (c *RefreshCollector) ObserveCycle(res refresh.Result) {
	if c == nil {
		return
	}
	if c.CyclesTotal != nil {
		c.CyclesTotal.Inc()
	}
	if c.CycleDuration != nil && res.Duration > 0 {
		c.CycleDuration.Observe(res.Duration.Seconds())
	}
	if res.Err != nil {
		if c.FailuresTotal != nil {
			c.FailuresTotal.Inc()
		}
		return
	}
	if c.LastSuccessUnix != nil && !res.At.IsZero() {
		c.LastSuccessUnix.Set(float64(res.At.Unix()))
	}
}
