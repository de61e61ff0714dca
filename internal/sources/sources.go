// Package sources reads catalog source manifests. A manifest is a JSON
// document listing the TLE files a deployment ingests, so operators can
// point catalogd at several catalogs without repeating flags.
package sources

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
)

// Spec describes one catalog source from a manifest.
type Spec struct {
	Name       string
	Path       string
	MultiEpoch bool
}

// internal JSON shapes; keep them unexported so we're free to evolve them.
type manifestJSON struct {
	Sources []sourceJSON `json:"sources"`
}

type sourceJSON struct {
	Name       string `json:"name"`
	Path       string `json:"path"`
	MultiEpoch bool   `json:"multi_epoch"`
}

// Load reads a JSON manifest from r and returns the listed sources.
//
// It fails only on JSON / structural errors: a missing path is structural,
// but whether the file exists is the ingester's problem, decided at load
// time like any other source error.
func Load(r io.Reader) ([]Spec, error) {
	var payload manifestJSON
	dec := json.NewDecoder(r)
	if err := dec.Decode(&payload); err != nil {
		return nil, fmt.Errorf("sources: decode failed: %w", err)
	}

	specs := make([]Spec, 0, len(payload.Sources))
	for i, src := range payload.Sources {
		if strings.TrimSpace(src.Path) == "" {
			return nil, fmt.Errorf("sources: entry %d has empty path", i)
		}
		name := src.Name
		if name == "" {
			name = src.Path
		}
		specs = append(specs, Spec{
			Name:       name,
			Path:       src.Path,
			MultiEpoch: src.MultiEpoch,
		})
	}
	return specs, nil
}

// LoadFile opens path and reads it as a manifest.
func LoadFile(path string) ([]Spec, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("sources: open manifest: %w", err)
	}
	defer f.Close()
	return Load(f)
}
