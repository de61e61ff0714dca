package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/signalsfoundry/orbital-catalog/internal/logging"
	"github.com/signalsfoundry/orbital-catalog/internal/observability"
	"github.com/signalsfoundry/orbital-catalog/internal/sources"
	"github.com/signalsfoundry/orbital-catalog/refresh"
	"github.com/signalsfoundry/orbital-catalog/store"
	"github.com/signalsfoundry/orbital-catalog/tle"
)

const (
	issName  = "ISS (ZARYA)"
	issLine1 = "1 25544U 98067A   25326.50000000  .00016717  00000-0  10270-3 0  9005"
	issLine2 = "2 25544  51.6400 208.5800 0002571  89.2100  53.4900 15.54225995123456"

	noaaName  = "NOAA 19"
	noaaLine1 = "1 33591U 09005A   25326.41234567  .00000123  00000-0  91234-4 0  9991"
	noaaLine2 = "2 33591  99.1234 310.5678 0013456  55.4321 304.7890 14.12745678901234"
)

func writeCatalogFile(t *testing.T, dir, name string, lines ...string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	content := ""
	for _, line := range lines {
		content += line + "\n"
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestIngestManifestMergesSingleEpochSources(t *testing.T) {
	dir := t.TempDir()
	first := writeCatalogFile(t, dir, "first.txt", issName, issLine1, issLine2)
	second := writeCatalogFile(t, dir, "second.txt", noaaName, noaaLine1, noaaLine2)

	reg := prometheus.NewRegistry()
	collector, err := observability.NewIngestCollector(reg)
	if err != nil {
		t.Fatalf("NewIngestCollector: %v", err)
	}

	st := store.NewStore()
	specs := []sources.Spec{
		{Name: "first", Path: first},
		{Name: "second", Path: second},
	}

	if err := ingestManifest(context.Background(), logging.Noop(), st, specs, tle.NopReporter{}, collector); err != nil {
		t.Fatalf("ingestManifest: %v", err)
	}

	if st.Len() != 2 {
		t.Fatalf("store.Len() = %d, want 2", st.Len())
	}
	if rec := st.Get("25544"); rec == nil || rec.Name != issName {
		t.Fatalf("store missing ISS record: %+v", rec)
	}
	if rec := st.Get("33591"); rec == nil || rec.Name != noaaName {
		t.Fatalf("store missing NOAA record: %+v", rec)
	}
	if got := testutil.ToFloat64(collector.RecordsIngested); got != 2 {
		t.Fatalf("tle_records_ingested_total = %v, want 2", got)
	}
}

func TestIngestManifestHandlesMultiEpochSource(t *testing.T) {
	dir := t.TempDir()
	multi := writeCatalogFile(t, dir, "history.txt",
		issName, issLine1, issLine2,
		issName, issLine1, issLine2,
	)

	reg := prometheus.NewRegistry()
	collector, err := observability.NewIngestCollector(reg)
	if err != nil {
		t.Fatalf("NewIngestCollector: %v", err)
	}

	st := store.NewStore()
	specs := []sources.Spec{{Name: "history", Path: multi, MultiEpoch: true}}

	if err := ingestManifest(context.Background(), logging.Noop(), st, specs, tle.NopReporter{}, collector); err != nil {
		t.Fatalf("ingestManifest: %v", err)
	}

	// Multi-epoch sources do not enter the single-epoch store.
	if st.Len() != 0 {
		t.Fatalf("store.Len() = %d, want 0", st.Len())
	}
	if got := testutil.ToFloat64(collector.MultiEpochSatellites); got != 1 {
		t.Fatalf("catalog_multi_epoch_satellites = %v, want 1", got)
	}
	if got := testutil.ToFloat64(collector.RecordsIngested); got != 2 {
		t.Fatalf("tle_records_ingested_total = %v, want 2", got)
	}
}

func TestIngestManifestPropagatesSourceError(t *testing.T) {
	reg := prometheus.NewRegistry()
	collector, err := observability.NewIngestCollector(reg)
	if err != nil {
		t.Fatalf("NewIngestCollector: %v", err)
	}

	st := store.NewStore()
	specs := []sources.Spec{{Name: "missing", Path: filepath.Join(t.TempDir(), "nope.txt")}}

	err = ingestManifest(context.Background(), logging.Noop(), st, specs, tle.NopReporter{}, collector)
	if err == nil {
		t.Fatal("expected error for missing source file")
	}
	var srcErr *tle.SourceError
	if !errors.As(err, &srcErr) {
		t.Fatalf("error = %v, want *tle.SourceError", err)
	}
}

func TestIngestManifestEmitsSpanPerSource(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	defer otel.SetTracerProvider(prev)

	dir := t.TempDir()
	active := writeCatalogFile(t, dir, "active.txt", issName, issLine1, issLine2)
	history := writeCatalogFile(t, dir, "history.txt", noaaName, noaaLine1, noaaLine2)

	reg := prometheus.NewRegistry()
	collector, err := observability.NewIngestCollector(reg)
	if err != nil {
		t.Fatalf("NewIngestCollector: %v", err)
	}

	specs := []sources.Spec{
		{Name: "active", Path: active},
		{Name: "history", Path: history, MultiEpoch: true},
	}
	if err := ingestManifest(context.Background(), logging.Noop(), store.NewStore(), specs, tle.NopReporter{}, collector); err != nil {
		t.Fatalf("ingestManifest: %v", err)
	}

	spans := recorder.Ended()
	if len(spans) != 2 {
		t.Fatalf("recorded %d spans, want 2", len(spans))
	}
	for _, span := range spans {
		if span.Name() != "catalog.ingest" {
			t.Fatalf("span name = %q, want catalog.ingest", span.Name())
		}
	}

	var sawMultiEpoch bool
	for _, attr := range spans[1].Attributes() {
		if string(attr.Key) == "catalog.multi_epoch" && attr.Value.AsBool() {
			sawMultiEpoch = true
		}
	}
	if !sawMultiEpoch {
		t.Fatalf("second span missing catalog.multi_epoch=true: %v", spans[1].Attributes())
	}
}

func TestLogRefreshReportsOutcome(t *testing.T) {
	log := logging.NewCapture()

	logRefresh(context.Background(), log, "cat.txt", refresh.Result{
		Summary: &tle.IngestSummary{Records: 4, Skipped: 1},
		At:      time.Now(),
	})
	logRefresh(context.Background(), log, "cat.txt", refresh.Result{
		Err: errors.New("boom"),
		At:  time.Now(),
	})

	entries := log.Entries()
	if len(entries) != 2 {
		t.Fatalf("len(entries) = %d, want 2", len(entries))
	}
	if entries[0].Level != "info" || entries[0].Msg != "catalog refreshed" {
		t.Fatalf("entries[0] = %+v", entries[0])
	}
	if entries[1].Level != "error" || entries[1].Msg != "catalog refresh failed" {
		t.Fatalf("entries[1] = %+v", entries[1])
	}
}
