package refresh

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/signalsfoundry/orbital-catalog/store"
	"github.com/signalsfoundry/orbital-catalog/tle"
)

// tracer resolves against the current global provider on every call, so
// spans land in whatever provider InitTracing installed.
func tracer() trace.Tracer {
	return otel.Tracer("github.com/signalsfoundry/orbital-catalog/refresh")
}

// Result summarises one refresh cycle.
type Result struct {
	Summary  *tle.IngestSummary
	Err      error
	At       time.Time
	Duration time.Duration
}

// Refresher re-ingests a local catalog file on a fixed interval and pushes
// each successful ingest into a store. It exists for callers whose catalog
// file is rewritten in place by an external exporter; the module itself
// never fetches catalogs over the network.
type Refresher struct {
	mu sync.RWMutex

	Path     string
	Interval time.Duration

	store    *store.Store
	reporter tle.Reporter

	last      Result
	listeners []func(Result)
}

// NewRefresher constructs a refresher for the given catalog path. A nil
// reporter behaves like tle.NopReporter.
func NewRefresher(path string, interval time.Duration, st *store.Store, rep tle.Reporter) *Refresher {
	if rep == nil {
		rep = tle.NopReporter{}
	}
	return &Refresher{
		Path:     path,
		Interval: interval,
		store:    st,
		reporter: rep,
	}
}

// AddListener registers a callback invoked after every refresh cycle,
// successful or not. Listeners must be registered before Start.
func (r *Refresher) AddListener(fn func(Result)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listeners = append(r.listeners, fn)
}

// RunOnce performs a single ingest-and-replace cycle under a tracing span
// and returns its result.
func (r *Refresher) RunOnce(ctx context.Context) Result {
	ctx, span := tracer().Start(ctx, "catalog.refresh")
	defer span.End()
	span.SetAttributes(attribute.String("catalog.path", r.Path))

	start := time.Now()
	res := Result{At: start.UTC()}

	catalog, summary, err := tle.LoadCatalog(r.Path, r.reporter)
	res.Summary = summary
	if err != nil {
		res.Err = err
	} else if r.store != nil {
		_, res.Err = r.store.ReplaceCatalog(r.Path, catalog)
	}
	res.Duration = time.Since(start)

	if res.Err != nil {
		span.RecordError(res.Err)
		span.SetStatus(codes.Error, "refresh cycle failed")
	} else if summary != nil {
		span.SetAttributes(
			attribute.Int("catalog.records", summary.Records),
			attribute.Int("catalog.skipped", summary.Skipped),
		)
	}

	r.mu.Lock()
	r.last = res
	listeners := append([]func(Result){}, r.listeners...)
	r.mu.Unlock()

	for _, fn := range listeners {
		fn(res)
	}
	return res
}

// Last returns the result of the most recent cycle.
func (r *Refresher) Last() Result {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.last
}

// Start runs an immediate cycle, then one per interval, until ctx is
// cancelled. It returns a channel that is closed when the loop finishes. A
// failed cycle does not stop the loop; the previous catalog stays in the store.
func (r *Refresher) Start(ctx context.Context) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)

		r.RunOnce(ctx)

		ticker := time.NewTicker(r.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				r.RunOnce(ctx)
			}
		}
	}()
	return done
}
