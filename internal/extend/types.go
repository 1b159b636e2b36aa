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

// Package extend implements the minimizer-path extension pipeline (spec.md
// §4.5): gapless extension from seeds, sweep-line score estimation, and
// tail-forest DP alignment for the parts an extension does not cover.
package extend

import "github.com/gograph-align/gograph-align/internal/oracle"

// GaplessExtension is a maximal mismatch-limited walk anchoring a seed.
type GaplessExtension struct {
	ReadBegin, ReadEnd int // half-open read interval covered
	Path               []oracle.GraphPos
	Mismatches         []int // absolute read offsets that mismatch
	Score              int
}

// Full reports whether the extension covers the entire read.
func (e GaplessExtension) Full(readLen int) bool {
	return e.ReadBegin == 0 && e.ReadEnd == readLen
}

// Options parameterizes extension, mirroring config.ExtendOptions plus the
// scoring policy needed to score extensions and tails.
type Options struct {
	MaxExtensions              int
	MaxAlignments              int
	ExtensionSetScoreThreshold float64
	ExtensionScoreThreshold    float64
	TailLength                 int
	Match                      int
	Mismatch                   int
	GapOpen                    int
	GapExtension               int
}
