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

// Package oracle defines the read-only external collaborators the mapping
// core is built against: the sequence graph and its FM-index. Both are
// treated as pure, non-blocking oracles (see SPEC_FULL.md §7); this package
// never mutates graph state.
package oracle

import "fmt"

// GraphPos is a position on a walk through the graph: a node, a strand, and
// an offset into that node's sequence on that strand.
type GraphPos struct {
	NodeID    uint64
	IsReverse bool
	Offset    uint32
}

// Reverse flips the strand of p given the node's length. Offset counts
// base boundaries from the start of the strand, so the same boundary seen
// from the other strand is nodeLen - Offset.
func (p GraphPos) Reverse(nodeLen uint32) GraphPos {
	return GraphPos{NodeID: p.NodeID, IsReverse: !p.IsReverse, Offset: nodeLen - p.Offset}
}

func (p GraphPos) String() string {
	strand := "+"
	if p.IsReverse {
		strand = "-"
	}
	return fmt.Sprintf("%d%s:%d", p.NodeID, strand, p.Offset)
}

// Side identifies one end of a node, used to describe edges the way a
// handle-graph would: (node, end) where end=false is the node's start.
type Side struct {
	NodeID uint64
	End    bool
}

// Edge connects two node sides.
type Edge struct {
	From Side
	To   Side
}

// FmRange is a half-open range of suffix-array rows in the FM-index,
// denoting the set of graph positions sharing a common suffix (a k-mer
// prefix, read backwards).
type FmRange struct {
	Lo, Hi uint64 // [Lo, Hi)
}

// Empty reports whether the range contains no rows.
func (r FmRange) Empty() bool { return r.Hi <= r.Lo }

// Count is the number of rows spanned by the range.
func (r FmRange) Count() uint64 {
	if r.Empty() {
		return 0
	}
	return r.Hi - r.Lo
}
