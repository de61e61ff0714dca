package logging

import (
	"context"
	"sync"
)

// CapturedEntry is one log call retained by a Capture logger.
type CapturedEntry struct {
	Level  string
	Msg    string
	Fields []Field
}

type captureState struct {
	mu      sync.Mutex
	entries []CapturedEntry
}

// Capture is a Logger that retains every entry for inspection. It exists so
// tests can assert on what was logged without touching process-wide state.
// Loggers derived via With share the parent's entry list.
type Capture struct {
	state *captureState
	with  []Field
}

// NewCapture constructs an empty capturing logger.
func NewCapture() *Capture {
	return &Capture{state: &captureState{}}
}

// Entries returns a snapshot of everything logged so far, including entries
// logged through derived With loggers.
func (c *Capture) Entries() []CapturedEntry {
	c.state.mu.Lock()
	defer c.state.mu.Unlock()
	return append([]CapturedEntry{}, c.state.entries...)
}

func (c *Capture) With(fields ...Field) Logger {
	return &Capture{
		state: c.state,
		with:  append(append([]Field{}, c.with...), fields...),
	}
}

func (c *Capture) record(level, msg string, fields []Field) {
	all := append(append([]Field{}, c.with...), fields...)
	c.state.mu.Lock()
	defer c.state.mu.Unlock()
	c.state.entries = append(c.state.entries, CapturedEntry{Level: level, Msg: msg, Fields: all})
}

func (c *Capture) Debug(_ context.Context, msg string, fields ...Field) {
	c.record("debug", msg, fields)
}

func (c *Capture) Info(_ context.Context, msg string, fields ...Field) {
	c.record("info", msg, fields)
}

func (c *Capture) Warn(_ context.Context, msg string, fields ...Field) {
	c.record("warn", msg, fields)
}

func (c *Capture) Error(_ context.Context, msg string, fields ...Field) {
	c.record("error", msg, fields)
}
