package tle

// Skip reasons passed to Reporter.SkippedRecord. Kept to a fixed set so a
// metrics-backed reporter can use them as label values.
const (
	ReasonInvalidStructure   = "invalid_structure"
	ReasonBadField           = "bad_field"
	ReasonEmptyCatalogNumber = "empty_catalog_number"
)

// Reporter receives non-fatal diagnostics from an ingestion call. Ingestion
// never keeps process-wide logging state; callers inject whatever reporter
// they want (a logger adapter, a metrics adapter, or a capture for tests).
type Reporter interface {
	// SkippedRecord is called once per candidate group that was discarded,
	// with the group's name and one of the Reason* constants.
	SkippedRecord(name, reason string)
	// DuplicateID is called when a record overwrites an earlier record with
	// the same catalog number. The name is the overwritten record's name.
	DuplicateID(id, name string)
	// DroppedTrailing is called at most once per ingestion with the number
	// of trailing lines that could not form a complete group.
	DroppedTrailing(lines int)
}

// NopReporter discards all diagnostics. It is the default when a caller
// passes a nil Reporter.
type NopReporter struct{}

func (NopReporter) SkippedRecord(name, reason string) {}
func (NopReporter) DuplicateID(id, name string)       {}
func (NopReporter) DroppedTrailing(lines int)         {}

// SkipNote records one SkippedRecord call.
type SkipNote struct {
	Name   string
	Reason string
}

// DuplicateNote records one DuplicateID call.
type DuplicateNote struct {
	ID   string
	Name string
}

// CaptureReporter retains every diagnostic for later inspection. Intended
// for tests; it is not safe for concurrent use.
type CaptureReporter struct {
	Skipped      []SkipNote
	Duplicates   []DuplicateNote
	DroppedLines int
}

func (c *CaptureReporter) SkippedRecord(name, reason string) {
	c.Skipped = append(c.Skipped, SkipNote{Name: name, Reason: reason})
}

func (c *CaptureReporter) DuplicateID(id, name string) {
	c.Duplicates = append(c.Duplicates, DuplicateNote{ID: id, Name: name})
}

func (c *CaptureReporter) DroppedTrailing(lines int) {
	c.DroppedLines += lines
}
