package tle

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLinesFromBytes(t *testing.T) {
	lines, err := linesFromSource([]byte("line 1\nline 2\n\n  line 3  \n"))
	if err != nil {
		t.Fatalf("linesFromSource error: %v", err)
	}
	want := []string{"line 1", "line 2", "line 3"}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines, want %d: %v", len(lines), len(want), lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Fatalf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestLinesFromPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.txt")
	if err := os.WriteFile(path, []byte("a\r\n\r\nb\r\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	lines, err := linesFromSource(path)
	if err != nil {
		t.Fatalf("linesFromSource error: %v", err)
	}
	if len(lines) != 2 || lines[0] != "a" || lines[1] != "b" {
		t.Fatalf("lines = %v, want [a b]", lines)
	}
}

func TestLinesFromReader(t *testing.T) {
	lines, err := linesFromSource(strings.NewReader("x\ny\n"))
	if err != nil {
		t.Fatalf("linesFromSource error: %v", err)
	}
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
}

func TestLinesFromMissingPath(t *testing.T) {
	_, err := linesFromSource(filepath.Join(t.TempDir(), "absent.txt"))
	if err == nil {
		t.Fatalf("expected error for missing file")
	}
	var srcErr *SourceError
	if !errors.As(err, &srcErr) {
		t.Fatalf("error type = %T, want *SourceError", err)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("error %v does not wrap fs.ErrNotExist", err)
	}
}

func TestLinesFromUnsupportedSource(t *testing.T) {
	_, err := linesFromSource(42)
	if !errors.Is(err, ErrUnsupportedSource) {
		t.Fatalf("error = %v, want ErrUnsupportedSource", err)
	}
}

func TestLinesReplaceInvalidUTF8(t *testing.T) {
	lines, err := linesFromSource([]byte("SAT\xff-1\n"))
	if err != nil {
		t.Fatalf("linesFromSource error: %v", err)
	}
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(lines))
	}
	if !strings.Contains(lines[0], "�") {
		t.Fatalf("line %q should contain a replacement rune", lines[0])
	}
}
