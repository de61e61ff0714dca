package tle

import (
	"fmt"
	"strconv"
	"strings"
)

// epochYearPivot splits two-digit epoch years between centuries: values
// below it are 20xx, the rest 19xx. 57 matches the first catalogued object
// (Sputnik, 1957).
const epochYearPivot = 57

// Line1Fields holds every fixed-column field decoded from element line 1.
type Line1Fields struct {
	LineNumber     int
	CatalogNumber  string
	Classification byte
	IntlDesignator string
	// EpochYear is the raw two-digit year; see EpochYearFull.
	EpochYear int
	// EpochDay is the fractional day of year at which the elements apply.
	EpochDay      float64
	MeanMotionDot float64
	// MeanMotionDDot and BStar keep the format's packed exponential
	// notation as-is; decoding it is a propagation concern, not ours.
	MeanMotionDDot string
	BStar          string
	EphemerisType  int
	ElementNumber  int
	// Checksum is the decoded final digit. It is exposed as data and never
	// verified against a computed checksum.
	Checksum int
}

// EpochYearFull expands the two-digit epoch year to a full year using the
// pivot: 56 becomes 2056, 57 becomes 1957.
func (f Line1Fields) EpochYearFull() int {
	if f.EpochYear < epochYearPivot {
		return 2000 + f.EpochYear
	}
	return 1900 + f.EpochYear
}

// Line2Fields holds every fixed-column field decoded from element line 2.
// Angles stay in degrees exactly as the format gives them.
type Line2Fields struct {
	LineNumber    int
	CatalogNumber string
	Inclination   float64 // degrees
	RAAN          float64 // degrees
	Eccentricity  float64 // dimensionless, 0 <= e < 1 by construction
	ArgPerigee    float64 // degrees
	MeanAnomaly   float64 // degrees
	MeanMotion    float64 // revolutions per day
	RevNumber     int
	Checksum      int
}

// ElementSet is a fully decoded orbital element record.
type ElementSet struct {
	Line1 Line1Fields
	Line2 Line2Fields
}

// CatalogNumber returns the record's catalog number as decoded from line 1.
func (e ElementSet) CatalogNumber() string { return e.Line1.CatalogNumber }

// ParseLine1 decodes element line 1 by fixed character offsets. Lines
// shorter than 69 characters fail with a FieldError regardless of any
// earlier structural validation.
func ParseLine1(line string) (Line1Fields, error) {
	if len(line) < minLineLength {
		return Line1Fields{}, &FieldError{
			Line:  1,
			Field: "length",
			Err:   fmt.Errorf("line too short: %d < %d", len(line), minLineLength),
		}
	}

	var (
		f   Line1Fields
		err error
	)
	if f.LineNumber, err = intField(1, "line number", line[0:1]); err != nil {
		return Line1Fields{}, err
	}
	f.CatalogNumber = strings.TrimSpace(line[2:7])
	f.Classification = line[7]
	f.IntlDesignator = strings.TrimSpace(line[9:17])
	if f.EpochYear, err = intField(1, "epoch year", line[18:20]); err != nil {
		return Line1Fields{}, err
	}
	if f.EpochDay, err = floatField(1, "epoch day", line[20:32]); err != nil {
		return Line1Fields{}, err
	}
	if f.MeanMotionDot, err = floatField(1, "mean motion derivative", line[33:43]); err != nil {
		return Line1Fields{}, err
	}
	f.MeanMotionDDot = strings.TrimSpace(line[44:52])
	f.BStar = strings.TrimSpace(line[53:61])
	if f.EphemerisType, err = intField(1, "ephemeris type", line[62:63]); err != nil {
		return Line1Fields{}, err
	}
	if f.ElementNumber, err = intField(1, "element number", line[64:68]); err != nil {
		return Line1Fields{}, err
	}
	if f.Checksum, err = intField(1, "checksum", line[68:69]); err != nil {
		return Line1Fields{}, err
	}
	return f, nil
}

// ParseLine2 decodes element line 2 by fixed character offsets. The
// eccentricity columns hold only the fractional digits; the leading "0."
// is implicit in the format.
func ParseLine2(line string) (Line2Fields, error) {
	if len(line) < minLineLength {
		return Line2Fields{}, &FieldError{
			Line:  2,
			Field: "length",
			Err:   fmt.Errorf("line too short: %d < %d", len(line), minLineLength),
		}
	}

	var (
		f   Line2Fields
		err error
	)
	if f.LineNumber, err = intField(2, "line number", line[0:1]); err != nil {
		return Line2Fields{}, err
	}
	f.CatalogNumber = strings.TrimSpace(line[2:7])
	if f.Inclination, err = floatField(2, "inclination", line[8:16]); err != nil {
		return Line2Fields{}, err
	}
	if f.RAAN, err = floatField(2, "raan", line[17:25]); err != nil {
		return Line2Fields{}, err
	}
	if f.Eccentricity, err = floatField(2, "eccentricity", "0."+strings.TrimSpace(line[26:33])); err != nil {
		return Line2Fields{}, err
	}
	if f.ArgPerigee, err = floatField(2, "argument of perigee", line[34:42]); err != nil {
		return Line2Fields{}, err
	}
	if f.MeanAnomaly, err = floatField(2, "mean anomaly", line[43:51]); err != nil {
		return Line2Fields{}, err
	}
	if f.MeanMotion, err = floatField(2, "mean motion", line[52:63]); err != nil {
		return Line2Fields{}, err
	}
	if f.RevNumber, err = intField(2, "revolution number", line[63:68]); err != nil {
		return Line2Fields{}, err
	}
	if f.Checksum, err = intField(2, "checksum", line[68:69]); err != nil {
		return Line2Fields{}, err
	}
	return f, nil
}

// ParseElementSet decodes both element lines into one record.
func ParseElementSet(line1, line2 string) (ElementSet, error) {
	f1, err := ParseLine1(line1)
	if err != nil {
		return ElementSet{}, err
	}
	f2, err := ParseLine2(line2)
	if err != nil {
		return ElementSet{}, err
	}
	return ElementSet{Line1: f1, Line2: f2}, nil
}

func intField(lineNo int, name, raw string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, &FieldError{Line: lineNo, Field: name, Err: err}
	}
	return v, nil
}

func floatField(lineNo int, name, raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, &FieldError{Line: lineNo, Field: name, Err: err}
	}
	return v, nil
}
