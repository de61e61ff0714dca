package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/signalsfoundry/orbital-catalog/internal/logging"
	"github.com/signalsfoundry/orbital-catalog/internal/observability"
	"github.com/signalsfoundry/orbital-catalog/internal/report"
	"github.com/signalsfoundry/orbital-catalog/internal/sources"
	"github.com/signalsfoundry/orbital-catalog/refresh"
	"github.com/signalsfoundry/orbital-catalog/store"
	"github.com/signalsfoundry/orbital-catalog/tle"
)

// tracer resolves against the current global provider on every call, so
// spans land in whatever provider InitTracing installed.
func tracer() trace.Tracer {
	return otel.Tracer("github.com/signalsfoundry/orbital-catalog/cmd/catalogd")
}

func main() {
	sourcePath := flag.String("source", "", "Path to a TLE catalog file to serve")
	manifestPath := flag.String("sources", "", "Path to a JSON manifest listing catalog sources")
	multiEpoch := flag.Bool("multi-epoch", false, "Treat -source as a multi-epoch catalog of fixed 3-line records")
	refreshEvery := flag.Duration("refresh", 0, "Re-ingest -source on this interval (0 disables refresh)")
	metricsAddr := flag.String("metrics-addr", ":9090", "HTTP address for Prometheus /metrics")
	flag.Parse()

	log := logging.NewFromEnv()
	ctx := context.Background()

	if *sourcePath == "" && *manifestPath == "" {
		log.Error(ctx, "no catalog source configured; pass -source or -sources")
		os.Exit(2)
	}

	collector, err := observability.NewIngestCollector(nil)
	if err != nil {
		log.Error(ctx, "failed to initialise metrics collector", logging.String("error", err.Error()))
		os.Exit(1)
	}
	refreshCollector, err := observability.NewRefreshCollector(nil)
	if err != nil {
		log.Error(ctx, "failed to initialise refresh metrics", logging.String("error", err.Error()))
		os.Exit(1)
	}

	shutdownTracing, err := observability.InitTracing(ctx, observability.TracingConfigFromEnv(), log)
	if err != nil {
		log.Error(ctx, "failed to initialise tracing", logging.String("error", err.Error()))
		os.Exit(1)
	}
	defer observability.ShutdownWithTimeout(context.Background(), shutdownTracing, log)

	metricsSrv := serveMetrics(*metricsAddr, collector, log)

	reporter := report.Multi{
		report.NewLogReporter(log),
		collector.Reporter(),
	}

	st := store.NewStore()

	if *manifestPath != "" {
		specs, err := sources.LoadFile(*manifestPath)
		if err != nil {
			log.Error(ctx, "failed to read source manifest", logging.String("path", *manifestPath), logging.String("error", err.Error()))
			os.Exit(1)
		}
		if err := ingestManifest(ctx, log, st, specs, reporter, collector); err != nil {
			log.Error(ctx, "manifest ingest failed", logging.String("error", err.Error()))
			os.Exit(1)
		}
	}

	var refresherDone <-chan struct{}
	stopCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if *sourcePath != "" {
		if *multiEpoch {
			if err := ingestMultiEpoch(ctx, log, *sourcePath, reporter, collector); err != nil {
				os.Exit(1)
			}
		} else {
			refresher := refresh.NewRefresher(*sourcePath, *refreshEvery, st, reporter)
			refresher.AddListener(refreshCollector.Listener())
			refresher.AddListener(func(res refresh.Result) {
				logRefresh(ctx, log, *sourcePath, res)
				if res.Err == nil && res.Summary != nil {
					collector.ObserveIngest(res.Summary, res.Duration.Seconds())
				}
			})

			if *refreshEvery > 0 {
				refresherDone = refresher.Start(stopCtx)
			} else {
				if res := refresher.RunOnce(ctx); res.Err != nil {
					os.Exit(1)
				}
			}
		}
	}

	log.Info(ctx, "catalog daemon ready",
		logging.Int("satellites", st.Len()),
		logging.String("metrics_addr", *metricsAddr),
	)

	<-stopCtx.Done()

	log.Info(ctx, "shutting down catalog daemon")
	if refresherDone != nil {
		<-refresherDone
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if metricsSrv != nil {
		_ = metricsSrv.Shutdown(shutdownCtx)
	}
}

// ingestManifest loads every source named by the manifest. Single-epoch
// sources are merged into one catalog, later sources overriding earlier
// records with the same catalog number, and the result replaces the store
// contents in a single swap. Multi-epoch sources are ingested for their
// summaries and metrics only.
func ingestManifest(ctx context.Context, log logging.Logger, st *store.Store, specs []sources.Spec, rep tle.Reporter, collector *observability.IngestCollector) error {
	merged := tle.Catalog{}

	for _, spec := range specs {
		ingCtx, ingLog := logging.WithIngestLogger(ctx, log)
		ingCtx, span := tracer().Start(ingCtx, "catalog.ingest",
			trace.WithAttributes(
				attribute.String("catalog.source", spec.Name),
				attribute.Bool("catalog.multi_epoch", spec.MultiEpoch),
			),
		)

		if spec.MultiEpoch {
			start := time.Now()
			multi, summary, err := tle.LoadMultiEpochCatalog(spec.Path, rep)
			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, "multi-epoch source failed")
				span.End()
				ingLog.Error(ingCtx, "multi-epoch source failed",
					logging.String("source", spec.Name),
					logging.String("error", err.Error()),
				)
				return err
			}
			collector.ObserveMultiEpochIngest(summary, len(multi), time.Since(start).Seconds())
			span.SetAttributes(
				attribute.Int("catalog.records", summary.Records),
				attribute.Int("catalog.skipped", summary.Skipped),
			)
			span.End()
			ingLog.Info(ingCtx, "ingested multi-epoch source",
				logging.String("source", spec.Name),
				logging.Int("records", summary.Records),
				logging.Int("satellites", len(multi)),
				logging.Int("skipped", summary.Skipped),
			)
			continue
		}

		start := time.Now()
		catalog, summary, err := tle.LoadCatalog(spec.Path, rep)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "catalog source failed")
			span.End()
			ingLog.Error(ingCtx, "catalog source failed",
				logging.String("source", spec.Name),
				logging.String("error", err.Error()),
			)
			return err
		}
		collector.ObserveIngest(summary, time.Since(start).Seconds())
		span.SetAttributes(
			attribute.Int("catalog.records", summary.Records),
			attribute.Int("catalog.skipped", summary.Skipped),
		)
		span.End()
		ingLog.Info(ingCtx, "ingested catalog source",
			logging.String("source", spec.Name),
			logging.Int("records", summary.Records),
			logging.Int("skipped", summary.Skipped),
			logging.Int("duplicates", summary.Duplicates),
		)
		for id, entry := range catalog {
			merged[id] = entry
		}
	}

	if len(merged) == 0 {
		return nil
	}
	if _, err := st.ReplaceCatalog("manifest", merged); err != nil {
		return err
	}
	return nil
}

func ingestMultiEpoch(ctx context.Context, log logging.Logger, path string, rep tle.Reporter, collector *observability.IngestCollector) error {
	ingCtx, ingLog := logging.WithIngestLogger(ctx, log)
	ingCtx, span := tracer().Start(ingCtx, "catalog.ingest",
		trace.WithAttributes(
			attribute.String("catalog.source", path),
			attribute.Bool("catalog.multi_epoch", true),
		),
	)
	defer span.End()

	start := time.Now()
	multi, summary, err := tle.LoadMultiEpochCatalog(path, rep)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "multi-epoch ingest failed")
		ingLog.Error(ingCtx, "multi-epoch ingest failed",
			logging.String("path", path),
			logging.String("error", err.Error()),
		)
		return err
	}
	collector.ObserveMultiEpochIngest(summary, len(multi), time.Since(start).Seconds())
	span.SetAttributes(
		attribute.Int("catalog.records", summary.Records),
		attribute.Int("catalog.skipped", summary.Skipped),
	)
	ingLog.Info(ingCtx, "ingested multi-epoch catalog",
		logging.String("path", path),
		logging.Int("records", summary.Records),
		logging.Int("satellites", len(multi)),
		logging.Int("skipped", summary.Skipped),
	)
	return nil
}

func logRefresh(ctx context.Context, log logging.Logger, path string, res refresh.Result) {
	if res.Err != nil {
		log.Error(ctx, "catalog refresh failed",
			logging.String("path", path),
			logging.String("error", res.Err.Error()),
		)
		return
	}
	fields := []logging.Field{logging.String("path", path)}
	if res.Summary != nil {
		fields = append(fields,
			logging.Int("records", res.Summary.Records),
			logging.Int("skipped", res.Summary.Skipped),
			logging.Int("duplicates", res.Summary.Duplicates),
		)
	}
	log.Info(ctx, "catalog refreshed", fields...)
}

func serveMetrics(addr string, collector *observability.IngestCollector, log logging.Logger) *http.Server {
	if collector == nil {
		return nil
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", collector.Handler())

	srv := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Warn(context.Background(), "metrics server exited", logging.String("error", err.Error()))
		}
	}()

	log.Info(context.Background(), "serving Prometheus metrics", logging.String("addr", addr))
	return srv
}
