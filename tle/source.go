package tle

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// linesFromSource reads a catalog source and returns its trimmed, non-empty
// lines. A source may be a filesystem path (string), an in-memory buffer
// ([]byte), or a stream (io.Reader). Anything else yields a SourceError
// wrapping ErrUnsupportedSource.
//
// Bytes are decoded as UTF-8 with invalid sequences replaced rather than
// rejected; real-world catalog exports occasionally carry stray bytes in
// name lines.
func linesFromSource(src any) ([]string, error) {
	switch s := src.(type) {
	case string:
		data, err := os.ReadFile(s)
		if err != nil {
			return nil, &SourceError{Op: fmt.Sprintf("read %q", s), Err: err}
		}
		return splitLines(data), nil
	case []byte:
		return splitLines(s), nil
	case io.Reader:
		data, err := io.ReadAll(s)
		if err != nil {
			return nil, &SourceError{Op: "read stream", Err: err}
		}
		return splitLines(data), nil
	default:
		return nil, &SourceError{
			Op:  fmt.Sprintf("open %T", src),
			Err: ErrUnsupportedSource,
		}
	}
}

// splitLines breaks raw catalog bytes into whitespace-trimmed lines,
// discarding blank ones. A blank line inside a would-be record therefore
// shifts record boundaries; callers are expected to supply clean exports.
func splitLines(data []byte) []string {
	text := strings.ToValidUTF8(string(data), "�")

	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
