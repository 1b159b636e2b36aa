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

package seed

import (
	"github.com/pkg/errors"

	"github.com/gograph-align/gograph-align/internal/oracle"
)

// MEMOptions parameterizes FindMEMs, mirroring config.SeedOptions.
type MEMOptions struct {
	MaxMEMLength    int // 0 = unbounded
	MinMEMLength    int
	ReseedLength    int
	MinSubMEMLength int
	FastReseed      bool
	HitMax          int
}

// MEMFinder runs backward-search SMEM finding against an FM-index oracle.
type MEMFinder struct {
	Index oracle.FMIndex
	Opt   MEMOptions
}

// NewMEMFinder constructs a MEMFinder. Index must be non-nil: a missing
// index is a configuration error surfaced at construction (spec.md §7).
func NewMEMFinder(index oracle.FMIndex, opt MEMOptions) (*MEMFinder, error) {
	if index == nil {
		return nil, errors.New("seed: MEM finder requires a non-nil FM-index")
	}
	return &MEMFinder{Index: index, Opt: opt}, nil
}

func isAmbiguous(b byte) bool {
	switch b {
	case 'A', 'C', 'G', 'T', 'a', 'c', 'g', 't':
		return false
	default:
		return true
	}
}

// FindMEMs implements spec.md §4.1's backward-search algorithm, returning
// MEMs sorted by Begin then End (the order they are naturally discovered,
// scanning the read right to left, is Begin-descending; the caller-visible
// contract requires ascending order, so we reverse before returning).
func (f *MEMFinder) FindMEMs(read []byte) ([]MEM, error) {
	if f.Index == nil {
		return nil, errors.New("seed: MEM finder requires a non-nil FM-index")
	}
	full := oracle.FmRange{Lo: 0, Hi: f.Index.Size()}
	if len(read) == 0 {
		return []MEM{{Begin: 0, End: 0, Range: full, MatchCount: f.Index.Count(full)}}, nil
	}

	var mems []MEM

	cursor := len(read) - 1
	end := len(read)
	rng := full

	emit := func(begin, end int, r oracle.FmRange) {
		if end-begin < f.Opt.MinMEMLength {
			return
		}
		mems = append(mems, MEM{Begin: begin, End: end, Range: r})
	}

	for cursor >= 0 {
		c := read[cursor]
		if isAmbiguous(c) {
			emit(cursor+1, end, rng)
			rng = full
			end = cursor
			cursor--
			continue
		}

		next := f.Index.LF(rng, c)
		curLen := end - cursor
		tooLong := f.Opt.MaxMEMLength > 0 && curLen > f.Opt.MaxMEMLength
		if next.Empty() || tooLong || curLen > int(f.Index.Order()) {
			// emit at [cursor+1, end) with the previous (successful) range.
			emitted := cursor+1 == end
			emit(cursor+1, end, rng)

			parentRange, lcp := f.Index.Parent(rng)
			end = cursor + 1 + lcp
			rng = parentRange

			if emitted {
				cursor--
			}
			continue
		}

		rng = next
		cursor--
	}
	emit(0, end, rng)

	// reverse into ascending Begin order.
	for i, j := 0, len(mems)-1; i < j; i, j = i+1, j-1 {
		mems[i], mems[j] = mems[j], mems[i]
	}

	for i := range mems {
		mems[i].MatchCount = f.Index.Count(mems[i].Range)
		if mems[i].MatchCount <= uint64(f.Opt.HitMax) {
			mems[i].Nodes = f.Index.Locate(mems[i].Range)
		}
	}

	return mems, nil
}
