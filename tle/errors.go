package tle

import (
	"errors"
	"fmt"
)

// ErrUnsupportedSource is wrapped by a SourceError when an ingestion call is
// handed a source value it does not know how to read.
var ErrUnsupportedSource = errors.New("unsupported source type")

// SourceError reports that an input source could not be read at all. It is
// the only error class that aborts a whole ingestion call; everything past
// the source level is recovered per record.
type SourceError struct {
	Op  string
	Err error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("tle: %s: %v", e.Op, e.Err)
}

func (e *SourceError) Unwrap() error { return e.Err }

// RecordError reports a failure scoped to one record. Ingestion itself
// recovers from these and routes them through the Reporter; consumers that
// decode stored records surface them as errors. Err optionally carries the
// underlying field-level cause.
type RecordError struct {
	Name   string
	Reason string
	Err    error
}

func (e *RecordError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("tle: record %q: %s: %v", e.Name, e.Reason, e.Err)
	}
	return fmt.Sprintf("tle: record %q: %s", e.Name, e.Reason)
}

func (e *RecordError) Unwrap() error { return e.Err }

// FieldError describes a fixed-column field that could not be decoded from
// an element line. The whole record is skipped; ingestion continues.
type FieldError struct {
	Line  int // 1 or 2
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("tle: line %d field %s: %v", e.Line, e.Field, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }
