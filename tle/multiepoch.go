package tle

import (
	"fmt"
	"regexp"
	"strconv"
)

// EpochEntry is one epoch of a satellite in a historical catalog. Label is a
// display string derived from the name and the decoded epoch; it is never
// parsed further.
type EpochEntry struct {
	Label string
	Line1 string
	Line2 string
}

// MultiEpochCatalog maps a satellite name to its epochs in input order. The
// order is chronological only if the input file is; no re-sorting happens.
type MultiEpochCatalog map[string][]EpochEntry

// epochPattern captures the YYDDD.DDDDDDDD epoch field of line 1, right
// after the line-number/catalog-number/designator prefix.
var epochPattern = regexp.MustCompile(`^1\s+\S+\s+\S+\s+(\d{5}\.\d+)`)

// LoadMultiEpochCatalog ingests a historical catalog in which every record
// is a 3-line group (name, line1, line2) and the same satellite may appear
// once per epoch. Unlike LoadCatalog it applies no 2-line/3-line heuristic:
// lines are consumed in fixed triples, and a trailing partial triple is
// dropped and counted through the Reporter.
//
// Records are grouped by exact string equality of the name line, not by
// catalog number, so renamed objects appear under each spelling.
func LoadMultiEpochCatalog(src any, rep Reporter) (MultiEpochCatalog, *IngestSummary, error) {
	if rep == nil {
		rep = NopReporter{}
	}

	lines, err := linesFromSource(src)
	if err != nil {
		return nil, nil, err
	}

	catalog := make(MultiEpochCatalog)
	summary := &IngestSummary{}

	i := 0
	for ; i+3 <= len(lines); i += 3 {
		name := lines[i]
		line1 := lines[i+1]
		line2 := lines[i+2]

		catalog[name] = append(catalog[name], EpochEntry{
			Label: epochLabel(name, line1),
			Line1: line1,
			Line2: line2,
		})
		summary.Records++
	}

	if dropped := len(lines) - i; dropped > 0 {
		summary.DroppedLines = dropped
		rep.DroppedTrailing(dropped)
	}

	return catalog, summary, nil
}

// epochLabel renders "{name} @ {year}:{day}" from the epoch field of line 1,
// expanding the two-digit year with the usual pivot. When the epoch cannot
// be matched the label degrades to "{name} @ unknown" instead of failing;
// the record itself is still kept.
func epochLabel(name, line1 string) string {
	m := epochPattern.FindStringSubmatch(line1)
	if m == nil {
		return name + " @ unknown"
	}
	raw := m[1]

	year, err := strconv.Atoi(raw[:2])
	if err != nil {
		return fmt.Sprintf("%s @ %s", name, raw)
	}
	if year < epochYearPivot {
		year += 2000
	} else {
		year += 1900
	}

	day, err := strconv.ParseFloat(raw[2:], 64)
	if err != nil {
		return fmt.Sprintf("%s @ %s", name, raw)
	}

	return fmt.Sprintf("%s @ %d:%.2f", name, year, day)
}
