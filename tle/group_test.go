package tle

import "testing"

const (
	issName  = "ISS (ZARYA)"
	issLine1 = "1 25544U 98067A   25326.50000000  .00016717  00000-0  10270-3 0  9005"
	issLine2 = "2 25544  51.6400 208.5800 0002571  89.2100  53.4900 15.54225995123456"
)

func TestGroupThreeLineFormat(t *testing.T) {
	groups, dropped := groupRecords([]string{issName, issLine1, issLine2})
	if dropped != 0 {
		t.Fatalf("dropped = %d, want 0", dropped)
	}
	if len(groups) != 1 {
		t.Fatalf("got %d groups, want 1", len(groups))
	}
	g := groups[0]
	if g.name != issName || g.line1 != issLine1 || g.line2 != issLine2 {
		t.Fatalf("group = %+v", g)
	}
}

func TestGroupTwoLineFormat(t *testing.T) {
	groups, dropped := groupRecords([]string{issLine1, issLine2})
	if dropped != 0 {
		t.Fatalf("dropped = %d, want 0", dropped)
	}
	if len(groups) != 1 {
		t.Fatalf("got %d groups, want 1", len(groups))
	}
	if groups[0].name != UnknownName {
		t.Fatalf("name = %q, want %q", groups[0].name, UnknownName)
	}
}

func TestGroupStripsNameMarker(t *testing.T) {
	groups, _ := groupRecords([]string{"0 " + issName, issLine1, issLine2})
	if len(groups) != 1 || groups[0].name != issName {
		t.Fatalf("groups = %+v, want name %q", groups, issName)
	}
}

func TestGroupTrailingSingleLineDropped(t *testing.T) {
	groups, dropped := groupRecords([]string{issName, issLine1, issLine2, "STRAGGLER"})
	if len(groups) != 1 {
		t.Fatalf("got %d groups, want 1", len(groups))
	}
	if dropped != 1 {
		t.Fatalf("dropped = %d, want 1", dropped)
	}
}

// With exactly two lines left, the scanner must fall back to the 2-line
// interpretation even when the first line is not an element line. The
// validator rejects the pair afterwards; the grouper's job is only to
// consume the lines deterministically.
func TestGroupTwoLinesForceTwoLineInterpretation(t *testing.T) {
	groups, dropped := groupRecords([]string{"NOT AN ELEMENT LINE", issLine2})
	if dropped != 0 {
		t.Fatalf("dropped = %d, want 0", dropped)
	}
	if len(groups) != 1 || groups[0].name != UnknownName {
		t.Fatalf("groups = %+v, want one Unknown group", groups)
	}
	if groups[0].line1 != "NOT AN ELEMENT LINE" {
		t.Fatalf("line1 = %q", groups[0].line1)
	}
}

func TestGroupSingleLineYieldsNothing(t *testing.T) {
	groups, dropped := groupRecords([]string{issLine1})
	if len(groups) != 0 {
		t.Fatalf("got %d groups, want 0", len(groups))
	}
	if dropped != 1 {
		t.Fatalf("dropped = %d, want 1", dropped)
	}
}

func TestGroupMixedFormats(t *testing.T) {
	lines := []string{
		issName, issLine1, issLine2, // 3-line record
		issLine1, issLine2, // 2-line record
	}
	groups, dropped := groupRecords(lines)
	if dropped != 0 {
		t.Fatalf("dropped = %d, want 0", dropped)
	}
	if len(groups) != 2 {
		t.Fatalf("got %d groups, want 2", len(groups))
	}
	if groups[0].name != issName || groups[1].name != UnknownName {
		t.Fatalf("names = %q, %q", groups[0].name, groups[1].name)
	}
}
