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

package oracle

// FMIndex is the compressed self-index over the graph's k-mer language
// (GCSA2-style), treated as an oracle per SPEC_FULL.md §1/§7.
type FMIndex interface {
	// Find returns the range of the index matching kmer exactly, or an
	// empty range if kmer does not occur.
	Find(kmer []byte) FmRange

	// Count is the number of graph positions represented by range.
	Count(r FmRange) uint64

	// Locate enumerates the graph positions in range. Callers are expected
	// to gate this behind a hit-count cap; Locate itself does not cap.
	Locate(r FmRange) []GraphPos

	// LF performs one backward-search step: given the range matching some
	// suffix, return the range matching base+suffix.
	LF(r FmRange, base byte) FmRange

	// Parent returns the suffix-tree parent of range under the LCP array:
	// a (possibly) larger range and the length of the longest common
	// prefix shared by every suffix in it.
	Parent(r FmRange) (FmRange, int)

	// Order is the maximum supported match length (the index's k-mer
	// order); searches longer than this must back off via Parent.
	Order() uint32

	// Size is the total number of indexed positions.
	Size() uint64
}

// Minimizer is a single (key, offset, orientation) hit from the minimizer
// index's sketch of a query sequence. NoKey marks an invalid window (one
// containing an ambiguous base).
type Minimizer struct {
	Key       uint64
	Offset    uint32
	IsReverse bool
}

// NoKey denotes "no valid k-mer in this window".
const NoKey uint64 = ^uint64(0)

// MinimizerIndex is the alternate seed-finding oracle (SPEC_FULL.md §4.2,
// §6): a sketch-based index supporting minimizer computation over a query
// and exact lookup of a minimizer's occurrences in the graph.
type MinimizerIndex interface {
	// Minimizers computes every (k,w)-minimizer of seq, including NoKey
	// placeholders for windows with no valid k-mer.
	Minimizers(seq []byte) []Minimizer

	// Count is the number of graph occurrences of a minimizer key.
	Count(key uint64) uint64

	// Find enumerates the graph positions of a minimizer key.
	Find(key uint64) []GraphPos

	K() int
	W() int
}
