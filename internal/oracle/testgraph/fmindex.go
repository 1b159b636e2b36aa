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
	"sort"

	"github.com/gograph-align/gograph-align/internal/oracle"
)

// row is one entry of the toy FM-index's sorted table: the forward-strand
// string spelled by walking up to `order` bases from Pos, and the position
// itself. Branching nodes contribute one row per distinct downstream walk.
type row struct {
	s   []byte
	pos oracle.GraphPos
}

// FMIndex is a brute-force stand-in for a GCSA2-style FM-index: rather than
// a BWT/LF-mapping over a compressed automaton, it holds every bounded-length
// forward walk in a sorted table and answers Find/LF/Parent by binary
// search. This is exponential in graph branching and is only ever built
// over the small fixtures used by tests and the "index" CLI subcommand.
type FMIndex struct {
	rows  []row
	order uint32
}

// BuildFMIndex enumerates every forward walk of at most `order` bases from
// every position in g (on both strands) and sorts them for prefix search.
func BuildFMIndex(g *Graph, order uint32) *FMIndex {
	idx := &FMIndex{order: order}
	for id, n := range g.nodes {
		nodeLen := uint32(len(n.Seq))
		for _, rev := range []bool{false, true} {
			for off := uint32(0); off < nodeLen; off++ {
				start := oracle.GraphPos{NodeID: id, IsReverse: rev, Offset: off}
				idx.walk(g, start, start, nil, order)
			}
		}
	}
	sort.Slice(idx.rows, func(i, j int) bool {
		return bytes.Compare(idx.rows[i].s, idx.rows[j].s) < 0
	})
	return idx
}

// walk extends the walk that began at origin, currently positioned at pos
// having already emitted acc, by up to remaining more bases, recording one
// table row per prefix length reached along the way.
func (idx *FMIndex) walk(g *Graph, origin, pos oracle.GraphPos, acc []byte, remaining uint32) {
	n := g.nodes[pos.NodeID]
	seq := n.Seq
	if pos.IsReverse {
		seq = revcomp(seq)
	}
	b := seq[pos.Offset]
	acc = append(append([]byte(nil), acc...), b)
	idx.rows = append(idx.rows, row{s: acc, pos: origin})

	if remaining <= 1 {
		return
	}
	if pos.Offset+1 < uint32(len(seq)) {
		idx.walk(g, origin, oracle.GraphPos{NodeID: pos.NodeID, IsReverse: pos.IsReverse, Offset: pos.Offset + 1}, acc, remaining-1)
		return
	}
	// step from the node's end so NextPositions crosses the outgoing edges.
	atEnd := oracle.GraphPos{NodeID: pos.NodeID, IsReverse: pos.IsReverse, Offset: uint32(len(seq))}
	nexts, err := g.NextPositions(atEnd, false)
	if err != nil {
		return
	}
	for _, np := range nexts {
		idx.walk(g, origin, np, acc, remaining-1)
	}
}

func revcomp(seq []byte) []byte {
	out := make([]byte, len(seq))
	for i, b := range seq {
		var c byte
		switch b {
		case 'A':
			c = 'T'
		case 'C':
			c = 'G'
		case 'G':
			c = 'C'
		case 'T':
			c = 'A'
		default:
			c = 'N'
		}
		out[len(seq)-1-i] = c
	}
	return out
}

// Find implements oracle.FMIndex.
func (idx *FMIndex) Find(kmer []byte) oracle.FmRange {
	lo := sort.Search(len(idx.rows), func(i int) bool { return bytes.Compare(idx.rows[i].s, kmer) >= 0 })
	hi := lo
	for hi < len(idx.rows) && bytes.HasPrefix(idx.rows[hi].s, kmer) {
		hi++
	}
	return oracle.FmRange{Lo: uint64(lo), Hi: uint64(hi)}
}

// Count implements oracle.FMIndex.
func (idx *FMIndex) Count(r oracle.FmRange) uint64 { return r.Count() }

// Locate implements oracle.FMIndex.
func (idx *FMIndex) Locate(r oracle.FmRange) []oracle.GraphPos {
	seen := map[oracle.GraphPos]bool{}
	var out []oracle.GraphPos
	for i := r.Lo; i < r.Hi && i < uint64(len(idx.rows)); i++ {
		p := idx.rows[i].pos
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	return out
}

// LF implements oracle.FMIndex by prepending base and re-searching. The
// current range's rows all share a common matched prefix of some length L;
// we recover that prefix from the range's first row and prepend base to
// it, then binary-search again. This is O(log n) like a real LF step would
// be, even though the index itself is a flat table rather than a BWT.
func (idx *FMIndex) LF(r oracle.FmRange, base byte) oracle.FmRange {
	if r.Empty() || r.Lo >= uint64(len(idx.rows)) {
		return oracle.FmRange{}
	}
	matchLen := idx.commonPrefixLen(r)
	prefix := idx.rows[r.Lo].s
	if int(matchLen) > len(prefix) {
		matchLen = uint32(len(prefix))
	}
	newKmer := append([]byte{base}, prefix[:matchLen]...)
	return idx.Find(newKmer)
}

// commonPrefixLen returns the length of the string every row in [Lo,Hi)
// currently agrees on, bounded above by the shortest row in the range.
func (idx *FMIndex) commonPrefixLen(r oracle.FmRange) uint32 {
	if r.Empty() {
		return 0
	}
	first := idx.rows[r.Lo].s
	n := len(first)
	for i := r.Lo + 1; i < r.Hi; i++ {
		s := idx.rows[i].s
		m := 0
		for m < n && m < len(s) && first[m] == s[m] {
			m++
		}
		if m < n {
			n = m
		}
	}
	return uint32(n)
}

// Parent implements oracle.FMIndex: widen the range to every row sharing
// the longest common prefix among the range's boundary rows, one base
// shorter than the exact match that produced r.
func (idx *FMIndex) Parent(r oracle.FmRange) (oracle.FmRange, int) {
	if r.Empty() || r.Lo >= uint64(len(idx.rows)) {
		return oracle.FmRange{}, 0
	}
	l := idx.commonPrefixLen(r)
	if l == 0 {
		return oracle.FmRange{Lo: 0, Hi: uint64(len(idx.rows))}, 0
	}
	parentLen := l - 1
	prefix := idx.rows[r.Lo].s[:parentLen]
	return idx.Find(prefix), int(parentLen)
}

// Order implements oracle.FMIndex.
func (idx *FMIndex) Order() uint32 { return idx.order }

// Size implements oracle.FMIndex.
func (idx *FMIndex) Size() uint64 { return uint64(len(idx.rows)) }
