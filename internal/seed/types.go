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

// Package seed implements the two interchangeable seed-finding front ends
// (spec.md §4.1, §4.2): a SMEM finder with sub-MEM reseeding over an
// FM-index oracle, and a minimizer finder with hard/soft hit caps.
package seed

import "github.com/gograph-align/gograph-align/internal/oracle"

// Seed is a graph position tagged with the read offset and key that
// produced it (spec.md §3 "Seed").
type Seed struct {
	Pos           oracle.GraphPos
	ReadOffset    uint32
	SourceKey     uint32
	KeyIsReverse  bool
}

// MEM is a maximal exact match (spec.md §3 "MEM").
type MEM struct {
	Begin, End  int // read-offset cursor range [Begin, End)
	Range       oracle.FmRange
	MatchCount  uint64
	Nodes       []oracle.GraphPos // populated iff MatchCount <= hitMax
	Fragment    uint8
}

// Len is the read-space length of the match.
func (m MEM) Len() int { return m.End - m.Begin }

// SubMEM is a shorter internal match inside one or more parent MEMs
// (spec.md §3 "Sub-MEM"), modeled per spec.md §9's tagged-variant guidance
// as a MEM plus its parent indices rather than an untyped duck-typed list.
type SubMEM struct {
	MEM
	Parents []int // indices into the parent MEM slice
}
