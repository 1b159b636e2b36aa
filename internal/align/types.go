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

// Package align turns clusters and extension sets into full Alignments:
// cluster-subgraph extraction and patching for the MEM path (spec.md §4.6),
// banded long-read alignment (spec.md §4.7), and the shared scoring policy
// (spec.md §4.8).
package align

import (
	"github.com/gograph-align/gograph-align/internal/config"
	"github.com/gograph-align/gograph-align/internal/dpaligner"
	"github.com/gograph-align/gograph-align/internal/oracle"
)

// Mapping is one contiguous run of edits against a single walk through the
// graph.
type Mapping struct {
	Path  []oracle.GraphPos
	Edits []dpaligner.Edit
}

// Alignment is a full read-to-graph alignment: an ordered list of mappings
// (normally one, more when patched or band-concatenated), a score, and the
// soft-clip lengths at either end.
type Alignment struct {
	Mappings   []Mapping
	Score      int
	Identity   float64
	LeftClip   int
	RightClip  int
	IsReverse  bool
	Unmapped   bool
	Diagnostic string
}

// dpOptions translates the positive-magnitude config.ScoringOptions into
// dpaligner's signed-penalty Options.
func dpOptions(s config.ScoringOptions) dpaligner.Options {
	return dpaligner.Options{
		Match:           s.Match,
		Mismatch:        -s.Mismatch,
		GapOpen:         -s.GapOpen,
		GapExtension:    -s.GapExtension,
		FullLengthBonus: s.FullLengthBonus,
	}
}
