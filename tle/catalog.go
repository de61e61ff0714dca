package tle

// Entry is one satellite's raw catalog record: its name (UnknownName for
// 2-line catalogs) and the two element lines exactly as ingested.
type Entry struct {
	Name  string
	Line1 string
	Line2 string
}

// Catalog maps the catalog number (e.g. "25544") to the satellite's record.
// A catalog is built in one ingestion call and never mutated afterwards.
type Catalog map[string]Entry

// IngestSummary reports what a single ingestion call did. Partial success is
// the default: malformed records are counted here and in the Reporter, never
// surfaced as an error.
type IngestSummary struct {
	// Records is the number of entries in the returned catalog. For
	// multi-epoch ingestion it is the total number of epoch entries.
	Records int
	// Skipped counts candidate groups discarded during validation or
	// field decoding.
	Skipped int
	// Duplicates counts records that overwrote an earlier record with the
	// same catalog number.
	Duplicates int
	// DroppedLines counts trailing lines that could not form a group.
	DroppedLines int
}

// LoadCatalog ingests a single-epoch catalog from src, which may be a
// filesystem path (string), a byte buffer ([]byte), or an io.Reader.
//
// Both 2-line and 3-line catalog layouts are accepted; the two are told
// apart per record by the grouping heuristic. Structurally invalid groups
// and records with undecodable fields are skipped with a Reporter
// diagnostic. Duplicate catalog numbers are last-write-wins, also reported,
// since a silent overwrite can hide duplicate-entry bugs in upstream feeds.
// Only source-level failures return an error.
//
// A nil Reporter is allowed and behaves like NopReporter.
func LoadCatalog(src any, rep Reporter) (Catalog, *IngestSummary, error) {
	if rep == nil {
		rep = NopReporter{}
	}

	lines, err := linesFromSource(src)
	if err != nil {
		return nil, nil, err
	}

	groups, dropped := groupRecords(lines)
	summary := &IngestSummary{DroppedLines: dropped}
	if dropped > 0 {
		rep.DroppedTrailing(dropped)
	}

	catalog := make(Catalog, len(groups))
	for _, g := range groups {
		if !ValidTLE(g.line1, g.line2) {
			rep.SkippedRecord(g.name, ReasonInvalidStructure)
			summary.Skipped++
			continue
		}

		// Full field decode as a second gate: the catalog stores the raw
		// lines, but a record whose fields cannot be decoded is useless to
		// every downstream consumer.
		if _, err := ParseElementSet(g.line1, g.line2); err != nil {
			rep.SkippedRecord(g.name, ReasonBadField)
			summary.Skipped++
			continue
		}

		id := catalogNumber(g.line1)
		if id == "" {
			rep.SkippedRecord(g.name, ReasonEmptyCatalogNumber)
			summary.Skipped++
			continue
		}

		if prev, ok := catalog[id]; ok {
			rep.DuplicateID(id, prev.Name)
			summary.Duplicates++
		}
		catalog[id] = Entry{Name: g.name, Line1: g.line1, Line2: g.line2}
	}

	summary.Records = len(catalog)
	return catalog, summary, nil
}
