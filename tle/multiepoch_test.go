package tle

import (
	"strings"
	"testing"
)

func TestLoadMultiEpochGroupsByName(t *testing.T) {
	catalog, summary, err := LoadMultiEpochCatalog("testdata/multi_epoch.txt", nil)
	if err != nil {
		t.Fatalf("LoadMultiEpochCatalog error: %v", err)
	}

	if len(catalog) != 2 {
		t.Fatalf("got %d names, want 2: %v", len(catalog), catalog)
	}
	if summary.Records != 3 {
		t.Fatalf("Records = %d, want 3", summary.Records)
	}

	epochs := catalog[issName]
	if len(epochs) != 2 {
		t.Fatalf("ISS has %d epochs, want 2", len(epochs))
	}
	// Input order must be preserved: day 326.5 before 327.5.
	if epochs[0].Label != "ISS (ZARYA) @ 2025:326.50" {
		t.Fatalf("first label = %q", epochs[0].Label)
	}
	if epochs[1].Label != "ISS (ZARYA) @ 2025:327.50" {
		t.Fatalf("second label = %q", epochs[1].Label)
	}
}

func TestLoadMultiEpochSameNameConsecutive(t *testing.T) {
	src := []byte(strings.Join([]string{
		issName, issLine1, issLine2,
		issName, issLine1, issLine2,
	}, "\n"))

	catalog, _, err := LoadMultiEpochCatalog(src, nil)
	if err != nil {
		t.Fatalf("LoadMultiEpochCatalog error: %v", err)
	}
	if len(catalog) != 1 {
		t.Fatalf("got %d names, want 1", len(catalog))
	}
	if len(catalog[issName]) != 2 {
		t.Fatalf("got %d epochs, want 2", len(catalog[issName]))
	}
}

func TestLoadMultiEpochTrailingLinesDropped(t *testing.T) {
	src := []byte(strings.Join([]string{
		issName, issLine1, issLine2,
		issName, issLine1,
	}, "\n"))

	rep := &CaptureReporter{}
	catalog, summary, err := LoadMultiEpochCatalog(src, rep)
	if err != nil {
		t.Fatalf("LoadMultiEpochCatalog error: %v", err)
	}
	if len(catalog[issName]) != 1 {
		t.Fatalf("got %d epochs, want 1", len(catalog[issName]))
	}
	if summary.DroppedLines != 2 || rep.DroppedLines != 2 {
		t.Fatalf("dropped = %d/%d, want 2", summary.DroppedLines, rep.DroppedLines)
	}
}

func TestEpochLabelDegradesToUnknown(t *testing.T) {
	got := epochLabel("SATX", "1 NOT A REAL ELEMENT LINE")
	if got != "SATX @ unknown" {
		t.Fatalf("label = %q, want SATX @ unknown", got)
	}
}

func TestEpochLabelPivot(t *testing.T) {
	line56 := issLine1[:18] + "56326.50000000" + issLine1[32:]
	line57 := issLine1[:18] + "57326.50000000" + issLine1[32:]

	if got := epochLabel("A", line56); got != "A @ 2056:326.50" {
		t.Fatalf("label(56) = %q", got)
	}
	if got := epochLabel("A", line57); got != "A @ 1957:326.50" {
		t.Fatalf("label(57) = %q", got)
	}
}
