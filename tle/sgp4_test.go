package tle

import (
	"math"
	"testing"

	satellite "github.com/joshuaferrara/go-satellite"
)

// Cross-checks accepted records against an independent TLE decoder: a pair
// that passes our validation must also be consumable by go-satellite, and
// the orbit it propagates must sit where our derived semi-major axis says
// it should (loose tolerance, since SGP4 recovers a mean semi-major axis
// with J2 corrections that plain Kepler ignores).
func TestAcceptedRecordPropagates(t *testing.T) {
	if !ValidTLE(issLine1, issLine2) {
		t.Fatalf("sample pair failed validation")
	}
	set, err := ParseElementSet(issLine1, issLine2)
	if err != nil {
		t.Fatalf("ParseElementSet error: %v", err)
	}

	sat := satellite.TLEToSat(issLine1, issLine2, satellite.GravityWGS72)

	// Epoch of the sample record: day 326.5 of 2025 (2025-11-22 12:00 UTC).
	pos, _ := satellite.Propagate(sat, 2025, 11, 22, 12, 0, 0)
	r := math.Sqrt(pos.X*pos.X + pos.Y*pos.Y + pos.Z*pos.Z)

	if math.IsNaN(r) || math.IsInf(r, 0) {
		t.Fatalf("propagated radius is not finite: %v", r)
	}
	if r < 6600 || r > 6900 {
		t.Fatalf("propagated radius = %v km, want low Earth orbit", r)
	}

	a := set.SemiMajorAxisKm()
	if math.Abs(r-a) > 60 {
		t.Fatalf("radius %v km deviates from derived semi-major axis %v km", r, a)
	}
}
