package tle

import "strings"

// UnknownName is assigned to records ingested from 2-line catalogs, which
// carry no name line.
const UnknownName = "Unknown"

// candidateGroup is one logical record cut out of the line stream: a name
// (or UnknownName) plus the two element lines. Validation happens later.
type candidateGroup struct {
	name  string
	line1 string
	line2 string
}

// groupRecords partitions lines into candidate groups and returns them
// together with the number of trailing lines that could not form a complete
// group.
//
// The TLE format has no record delimiter, so the split is heuristic: at each
// cursor position, if the current line does not start with "1 " and at least
// three lines remain, the current line is taken as a name line and the next
// two as the element pair. Otherwise the current and next line are taken as
// a nameless 2-line record. Fewer than three lines remaining always forces
// the 2-line interpretation, even when the first line does not look like an
// element line; the validator rejects such pairs afterwards.
func groupRecords(lines []string) ([]candidateGroup, int) {
	var groups []candidateGroup

	i := 0
	for i < len(lines)-1 {
		if i < len(lines)-2 && !strings.HasPrefix(lines[i], "1 ") {
			name := lines[i]
			// Some distributors mark the name line with a leading "0 ".
			if strings.HasPrefix(name, "0 ") {
				name = strings.TrimSpace(name[2:])
			}
			groups = append(groups, candidateGroup{
				name:  name,
				line1: lines[i+1],
				line2: lines[i+2],
			})
			i += 3
			continue
		}

		groups = append(groups, candidateGroup{
			name:  UnknownName,
			line1: lines[i],
			line2: lines[i+1],
		})
		i += 2
	}

	return groups, len(lines) - i
}
