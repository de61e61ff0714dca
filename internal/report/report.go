// Package report bridges the tle.Reporter interface onto the module's
// logging and metrics layers.
package report

import (
	"context"

	"github.com/signalsfoundry/orbital-catalog/internal/logging"
	"github.com/signalsfoundry/orbital-catalog/tle"
)

// LogReporter forwards ingestion diagnostics to a structured logger.
type LogReporter struct {
	log logging.Logger
}

// NewLogReporter wraps a logger; nil falls back to the noop logger.
func NewLogReporter(log logging.Logger) *LogReporter {
	if log == nil {
		log = logging.Noop()
	}
	return &LogReporter{log: log}
}

func (r *LogReporter) SkippedRecord(name, reason string) {
	r.log.Warn(context.Background(), "skipping TLE record",
		logging.String("name", name),
		logging.String("reason", reason),
	)
}

func (r *LogReporter) DuplicateID(id, name string) {
	r.log.Warn(context.Background(), "duplicate catalog number, keeping later record",
		logging.String("catalog_number", id),
		logging.String("overwritten_name", name),
	)
}

func (r *LogReporter) DroppedTrailing(lines int) {
	r.log.Warn(context.Background(), "dropped trailing catalog lines",
		logging.Int("lines", lines),
	)
}

// Multi fans every diagnostic out to several reporters, e.g. a log adapter
// plus a metrics adapter.
type Multi []tle.Reporter

func (m Multi) SkippedRecord(name, reason string) {
	for _, r := range m {
		r.SkippedRecord(name, reason)
	}
}

func (m Multi) DuplicateID(id, name string) {
	for _, r := range m {
		r.DuplicateID(id, name)
	}
}

func (m Multi) DroppedTrailing(lines int) {
	for _, r := range m {
		r.DroppedTrailing(lines)
	}
}
