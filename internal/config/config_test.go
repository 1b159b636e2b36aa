// Copyright © 2024 the gograph-align authors
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultIsUsable(t *testing.T) {
	cfg := Default()
	if cfg.Seed.MinMEMLength <= 0 {
		t.Errorf("MinMEMLength = %d, want positive", cfg.Seed.MinMEMLength)
	}
	if cfg.MultiMap.MaxMultimaps <= 0 {
		t.Errorf("MaxMultimaps = %d, want positive", cfg.MultiMap.MaxMultimaps)
	}
	if cfg.MultiMap.MappingQualityMethod != MQApproximate {
		t.Errorf("MappingQualityMethod = %q, want %q", cfg.MultiMap.MappingQualityMethod, MQApproximate)
	}
	if cfg.Cluster.CoverageThreshold == nil || *cfg.Cluster.CoverageThreshold != 0 {
		t.Errorf("CoverageThreshold = %v, want pointer to 0", cfg.Cluster.CoverageThreshold)
	}
}

func TestLoadMergesOverDefault(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "cfg.toml")
	body := `
[seed]
min_mem_length = 25

[multimap]
max_multimaps = 3
`
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(p)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Seed.MinMEMLength != 25 {
		t.Errorf("MinMEMLength = %d, want 25", cfg.Seed.MinMEMLength)
	}
	if cfg.MultiMap.MaxMultimaps != 3 {
		t.Errorf("MaxMultimaps = %d, want 3", cfg.MultiMap.MaxMultimaps)
	}
	// untouched fields should retain their default values.
	if cfg.Scoring.Match != Default().Scoring.Match {
		t.Errorf("Match = %d, want default %d", cfg.Scoring.Match, Default().Scoring.Match)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Fatal("expected an error for a missing config file")
	}
}
