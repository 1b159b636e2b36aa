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

import "github.com/gograph-align/gograph-align/internal/oracle"

// ReseedFast implements the "fast" sub-MEM reseeding pass of spec.md §4.1:
// within a parent MEM, slide a probe window across it, and wherever the
// probe's range count exceeds the parent's, binary-search the maximal
// right-extension still exceeding the parent's count. Per SPEC_FULL.md's
// Open Question decision 4, this counts-only fast path is the sole
// reseeder implemented; it can under-report hits a hypothetical exhaustive
// slow path (enumerating every parent first-hit walk) would find, and that
// is accepted as the fast_reseed=true semantics.
func (f *MEMFinder) ReseedFast(read []byte, parents []MEM, parentIdx int) []SubMEM {
	parent := parents[parentIdx]
	parentLen := parent.Len()
	if parentLen < f.Opt.ReseedLength {
		return nil
	}

	probeLen := f.Opt.MinSubMEMLength
	if half := parentLen / 2; half > probeLen {
		probeLen = half
	}
	if probeLen < 1 {
		probeLen = 1
	}

	var out []SubMEM
	for start := parent.Begin; start+probeLen <= parent.End; start++ {
		r := f.searchForward(read, start, start+probeLen)
		if r.Empty() {
			continue
		}
		count := f.Index.Count(r)
		if count <= parent.MatchCount {
			continue // lies entirely inside the parent
		}

		// binary-search the maximal right extension whose count still
		// exceeds the parent's count.
		lo, hi := start+probeLen, len(read)
		bestEnd, bestRange, bestCount := start+probeLen, r, count
		for lo <= hi {
			mid := (lo + hi) / 2
			if mid <= start {
				break
			}
			rr := f.searchForward(read, start, mid)
			cc := f.Index.Count(rr)
			if !rr.Empty() && cc > parent.MatchCount {
				bestEnd, bestRange, bestCount = mid, rr, cc
				lo = mid + 1
			} else {
				hi = mid - 1
			}
		}

		if bestEnd-start < f.Opt.MinSubMEMLength {
			continue
		}

		sub := SubMEM{
			MEM: MEM{
				Begin:      start,
				End:        bestEnd,
				Range:      bestRange,
				MatchCount: bestCount - parent.MatchCount,
			},
			Parents: []int{parentIdx},
		}
		if sub.MatchCount <= uint64(f.Opt.HitMax) {
			sub.Nodes = filterOutParentHits(f.Index.Locate(bestRange), parent.Nodes)
		}
		out = append(out, sub)
		start = bestEnd - 1 // don't re-probe inside what we just found
	}
	return out
}

// searchForward re-derives the FM-range for read[begin:end) via repeated
// LF steps, matching what FindMEMs would have found had it stopped there.
// This is the toy-oracle-appropriate way to probe an arbitrary substring
// without a forward-search primitive on the oracle interface.
func (f *MEMFinder) searchForward(read []byte, begin, end int) oracle.FmRange {
	r := oracle.FmRange{Lo: 0, Hi: f.Index.Size()}
	for i := end - 1; i >= begin; i-- {
		if isAmbiguous(read[i]) {
			return oracle.FmRange{}
		}
		r = f.Index.LF(r, read[i])
		if r.Empty() {
			return r
		}
	}
	return r
}

// filterOutParentHits removes positions the sub-MEM shares with the
// parent's first-hit walk, avoiding redundant hits (spec.md §4.1).
func filterOutParentHits(hits, parentHits []oracle.GraphPos) []oracle.GraphPos {
	if len(parentHits) == 0 {
		return hits
	}
	seen := make(map[oracle.GraphPos]bool, len(parentHits))
	for _, p := range parentHits {
		seen[p] = true
	}
	var out []oracle.GraphPos
	for _, h := range hits {
		if !seen[h] {
			out = append(out, h)
		}
	}
	return out
}
