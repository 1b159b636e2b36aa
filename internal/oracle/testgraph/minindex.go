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

package testgraph

import (
	"bytes"

	"github.com/shenwei356/kmers"

	"github.com/gograph-align/gograph-align/internal/oracle"
)

// MinimizerIndex is a toy (k,w)-minimizer index built by sketching every
// node's forward sequence. It satisfies oracle.MinimizerIndex.
type MinimizerIndex struct {
	k, w int
	hits map[uint64][]oracle.GraphPos
}

// BuildMinimizerIndex sketches every node of g.
func BuildMinimizerIndex(g *Graph, k, w int) *MinimizerIndex {
	idx := &MinimizerIndex{k: k, w: w, hits: map[uint64][]oracle.GraphPos{}}
	for id, n := range g.nodes {
		for _, m := range idx.Minimizers(n.Seq) {
			if m.Key == oracle.NoKey {
				continue
			}
			pos := oracle.GraphPos{NodeID: id, IsReverse: m.IsReverse, Offset: m.Offset}
			idx.hits[m.Key] = append(idx.hits[m.Key], pos)
		}
	}
	return idx
}

// Minimizers implements oracle.MinimizerIndex: for every window of k+w-1
// bases, pick the lexicographically smallest of the k-mers it contains
// (comparing a k-mer against its reverse complement and keeping whichever
// orientation sorts first, i.e. a canonical minimizer).
func (idx *MinimizerIndex) Minimizers(seq []byte) []oracle.Minimizer {
	k, w := idx.k, idx.w
	if len(seq) < k {
		return nil
	}
	type kmerHit struct {
		code uint64
		rev  bool
		raw  []byte
	}
	kmerAt := func(off int) (kmerHit, bool) {
		sub := seq[off : off+k]
		if bytes.IndexByte(sub, 'N') >= 0 {
			return kmerHit{}, false
		}
		fwd, err := kmers.Encode(sub)
		if err != nil {
			return kmerHit{}, false
		}
		rc := revcomp(sub)
		rev, err := kmers.Encode(rc)
		if err != nil {
			return kmerHit{}, false
		}
		if rev < fwd {
			return kmerHit{code: rev, rev: true, raw: rc}, true
		}
		return kmerHit{code: fwd, rev: false, raw: sub}, true
	}

	numKmers := len(seq) - k + 1
	var out []oracle.Minimizer
	windowSpan := w // number of consecutive k-mers per window
	for winStart := 0; winStart+windowSpan <= numKmers || winStart == 0; winStart++ {
		end := winStart + windowSpan
		if end > numKmers {
			end = numKmers
		}
		if winStart >= numKmers {
			break
		}
		var best kmerHit
		bestOff := -1
		for off := winStart; off < end; off++ {
			h, ok := kmerAt(off)
			if !ok {
				continue
			}
			if bestOff == -1 || h.code < best.code {
				best, bestOff = h, off
			}
		}
		if bestOff == -1 {
			out = append(out, oracle.Minimizer{Key: oracle.NoKey})
		} else {
			out = append(out, oracle.Minimizer{Key: best.code, Offset: uint32(bestOff), IsReverse: best.rev})
		}
		if end >= numKmers {
			break
		}
	}
	return dedupMinimizers(out)
}

// dedupMinimizers collapses consecutive identical minimizers, which arise
// naturally when a window slides without its minimum changing.
func dedupMinimizers(in []oracle.Minimizer) []oracle.Minimizer {
	var out []oracle.Minimizer
	for i, m := range in {
		if i > 0 && m == in[i-1] {
			continue
		}
		out = append(out, m)
	}
	return out
}

// Count implements oracle.MinimizerIndex.
func (idx *MinimizerIndex) Count(key uint64) uint64 { return uint64(len(idx.hits[key])) }

// Find implements oracle.MinimizerIndex.
func (idx *MinimizerIndex) Find(key uint64) []oracle.GraphPos { return idx.hits[key] }

// K implements oracle.MinimizerIndex.
func (idx *MinimizerIndex) K() int { return idx.k }

// W implements oracle.MinimizerIndex.
func (idx *MinimizerIndex) W() int { return idx.w }
