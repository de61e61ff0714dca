package observability

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/signalsfoundry/orbital-catalog/tle"
)

// IngestCollector bundles Prometheus metrics for catalog ingestion and
// provides helpers to wire them into the ingest path and HTTP handlers.
type IngestCollector struct {
	gatherer prometheus.Gatherer

	RecordsIngested prometheus.Counter
	RecordsSkipped  *prometheus.CounterVec
	DuplicateIDs    prometheus.Counter
	LinesDropped    prometheus.Counter
	IngestDuration  prometheus.Histogram

	CatalogSatellites    prometheus.Gauge
	MultiEpochSatellites prometheus.Gauge
}

// NewIngestCollector registers ingest Prometheus metrics against the
// provided registerer, defaulting to the global Prometheus registry when
// nil. Registration is idempotent: an already-registered collector of the
// same shape is reused.
func NewIngestCollector(reg prometheus.Registerer) (*IngestCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	ingested, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "tle_records_ingested_total",
		Help: "Total number of TLE records accepted into catalogs.",
	}), "tle_records_ingested_total")
	if err != nil {
		return nil, err
	}

	skipped := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "tle_records_skipped_total",
		Help: "Total number of candidate TLE records discarded, labeled by reason.",
	}, []string{"reason"})
	skipped, err = registerCounterVec(reg, skipped, "tle_records_skipped_total")
	if err != nil {
		return nil, err
	}

	duplicates, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "tle_duplicate_ids_total",
		Help: "Total number of records that overwrote an earlier record with the same catalog number.",
	}), "tle_duplicate_ids_total")
	if err != nil {
		return nil, err
	}

	dropped, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "tle_lines_dropped_total",
		Help: "Total number of trailing catalog lines that could not form a complete record.",
	}), "tle_lines_dropped_total")
	if err != nil {
		return nil, err
	}

	duration, err := registerHistogram(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "tle_ingest_duration_seconds",
		Help:    "Catalog ingestion latency in seconds.",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
	}), "tle_ingest_duration_seconds")
	if err != nil {
		return nil, err
	}

	catalogSize, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "catalog_satellites",
		Help: "Number of satellites in the most recently ingested single-epoch catalog.",
	}), "catalog_satellites")
	if err != nil {
		return nil, err
	}

	multiEpochSize, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "catalog_multi_epoch_satellites",
		Help: "Number of distinct satellite names in the most recently ingested multi-epoch catalog.",
	}), "catalog_multi_epoch_satellites")
	if err != nil {
		return nil, err
	}

	return &IngestCollector{
		gatherer:             gatherer,
		RecordsIngested:      ingested,
		RecordsSkipped:       skipped,
		DuplicateIDs:         duplicates,
		LinesDropped:         dropped,
		IngestDuration:       duration,
		CatalogSatellites:    catalogSize,
		MultiEpochSatellites: multiEpochSize,
	}, nil
}

// Reporter returns a tle.Reporter that drives the skip, duplicate, and
// dropped-line counters. Pass it to the ingest call, usually fanned out
// together with a logging reporter.
func (c *IngestCollector) Reporter() tle.Reporter {
	return metricsReporter{c: c}
}

// ObserveIngest records the outcome of one single-epoch ingestion call.
func (c *IngestCollector) ObserveIngest(summary *tle.IngestSummary, seconds float64) {
	if c == nil || summary == nil {
		return
	}
	if c.RecordsIngested != nil {
		c.RecordsIngested.Add(float64(summary.Records))
	}
	if c.IngestDuration != nil {
		c.IngestDuration.Observe(seconds)
	}
	if c.CatalogSatellites != nil {
		c.CatalogSatellites.Set(float64(summary.Records))
	}
}

// ObserveMultiEpochIngest records the outcome of one multi-epoch ingestion
// call; names is the number of distinct satellite names.
func (c *IngestCollector) ObserveMultiEpochIngest(summary *tle.IngestSummary, names int, seconds float64) {
	if c == nil || summary == nil {
		return
	}
	if c.RecordsIngested != nil {
		c.RecordsIngested.Add(float64(summary.Records))
	}
	if c.IngestDuration != nil {
		c.IngestDuration.Observe(seconds)
	}
	if c.MultiEpochSatellites != nil {
		c.MultiEpochSatellites.Set(float64(names))
	}
}

// Handler exposes a ready-to-use /metrics handler.
func (c *IngestCollector) Handler() http.Handler {
	gatherer := c.gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

type metricsReporter struct {
	c *IngestCollector
}

func (r metricsReporter) SkippedRecord(name, reason string) {
	if r.c.RecordsSkipped != nil {
		r.c.RecordsSkipped.WithLabelValues(reason).Inc()
	}
}

func (r metricsReporter) DuplicateID(id, name string) {
	if r.c.DuplicateIDs != nil {
		r.c.DuplicateIDs.Inc()
	}
}

func (r metricsReporter) DroppedTrailing(lines int) {
	if r.c.LinesDropped != nil {
		r.c.LinesDropped.Add(float64(lines))
	}
}

func registerCounter(reg prometheus.Registerer, counter prometheus.Counter, name string) (prometheus.Counter, error) {
	if err := reg.Register(counter); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Counter); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return counter, nil
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerHistogram(reg prometheus.Registerer, hist prometheus.Histogram, name string) (prometheus.Histogram, error) {
	if err := reg.Register(hist); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Histogram); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return hist, nil
}

func registerGauge(reg prometheus.Registerer, gauge prometheus.Gauge, name string) (prometheus.Gauge, error) {
	if err := reg.Register(gauge); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Gauge); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return gauge, nil
}
