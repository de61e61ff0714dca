package tle

import "strings"

// minLineLength is the shortest element line the fixed-column layout allows.
// Both lines of a well-formed record are exactly 69 characters, but padded
// exports are tolerated.
const minLineLength = 69

// ValidTLE reports whether line1/line2 form a structurally valid element
// pair: both lines at least 69 characters, line numbers '1' and '2', and
// matching catalog numbers in columns 3-7.
//
// The trailing checksum digit is decoded by the parser but never verified
// here; real-world catalogs contain records whose checksums do not add up,
// and rejecting them would lose otherwise usable data.
func ValidTLE(line1, line2 string) bool {
	if len(line1) < minLineLength || len(line2) < minLineLength {
		return false
	}
	if line1[0] != '1' || line2[0] != '2' {
		return false
	}
	return catalogNumber(line1) == catalogNumber(line2)
}

// catalogNumber returns the trimmed catalog number from columns 3-7 of an
// element line, or "" when the line is too short to carry one.
func catalogNumber(line string) string {
	if len(line) < 7 {
		return ""
	}
	return strings.TrimSpace(line[2:7])
}
