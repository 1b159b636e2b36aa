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

// Graph is the read-only sequence-variation-graph oracle (SPEC_FULL.md §7).
// Implementations must be safe for concurrent use by multiple mapper
// workers; none of these methods may block or allocate unboundedly.
type Graph interface {
	// NodeLength returns the length in bases of a node's sequence.
	NodeLength(id uint64) (uint32, error)

	// NodeSequence returns a node's forward-strand sequence.
	NodeSequence(id uint64) ([]byte, error)

	// EdgesOf returns every edge incident to the node, in either direction.
	EdgesOf(id uint64) ([]Edge, error)

	// NextPositions returns the positions immediately reachable by walking
	// one base (or, if walkWholeNode, to the far end of the current node)
	// forward from pos.
	NextPositions(pos GraphPos, walkWholeNode bool) ([]GraphPos, error)

	// ApproxPosition returns an approximate linear offset for pos along
	// some canonical reference path, for use as a sort/bucket key. It need
	// not be exact; -1 indicates "no approximate position available".
	ApproxPosition(pos GraphPos) int64

	// MinPathDistance estimates the shortest graph distance from a to b,
	// capped at maxDist. A returned distance of -1 means "no path found
	// within the cap".
	MinPathDistance(a, b GraphPos, maxDist int64) int64

	// PositionInPaths reports, for every reference path touching the node,
	// the path-relative offsets at (id, isReverse, offset).
	PositionInPaths(id uint64, isReverse bool, offset uint32) map[string][]int64

	// IDRange returns a sub-graph view spanning node IDs [lo, hi).
	IDRange(lo, hi uint64) (Graph, error)

	// ExpandContext grows a subgraph outward by depth (bases, or steps if
	// useSteps) from its current frontier, optionally restricted to nodes
	// visited by the named reference paths, returning a new Graph view.
	ExpandContext(depth int, useSteps bool, paths []string) (Graph, error)
}

// Bounded is implemented by subgraph views that know their own node-ID
// membership, used by BFS-based context extraction (SPEC_FULL.md §4.6).
type Bounded interface {
	HasNode(id uint64) bool
	NodeIDs() []uint64
}
