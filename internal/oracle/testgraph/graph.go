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

// Package testgraph is a minimal in-memory implementation of the graph, FM
// index, and minimizer index oracles (internal/oracle), used by the
// "index" CLI subcommand's toy fixture and by the mapper test suite. It is
// not a production GCSA2/FM-index: SPEC_FULL.md treats those as pluggable
// externals, and this package exists only to give the core something real
// to run against.
package testgraph

import (
	"github.com/pkg/errors"

	"github.com/gograph-align/gograph-align/internal/oracle"
)

// Node is one node of the toy graph.
type Node struct {
	ID  uint64
	Seq []byte
}

// Graph is a small directed sequence graph held entirely in memory.
type Graph struct {
	nodes    map[uint64]*Node
	outEdges map[oracle.Side][]oracle.Side
	inEdges  map[oracle.Side][]oracle.Side
	paths    map[string][]oracle.GraphPos // named haplotype walks, in path order
	members  map[uint64]bool              // nil means "whole graph"
}

// New builds an empty graph.
func New() *Graph {
	return &Graph{
		nodes:    map[uint64]*Node{},
		outEdges: map[oracle.Side][]oracle.Side{},
		inEdges:  map[oracle.Side][]oracle.Side{},
		paths:    map[string][]oracle.GraphPos{},
	}
}

// AddNode inserts a node with the given forward sequence.
func (g *Graph) AddNode(id uint64, seq []byte) {
	g.nodes[id] = &Node{ID: id, Seq: append([]byte(nil), seq...)}
}

// AddEdge connects the end of `from` to the start of `to` (both forward
// strand), the common case for a linear or lightly-branching reference.
func (g *Graph) AddEdge(from, to uint64) {
	fs := oracle.Side{NodeID: from, End: true}
	ts := oracle.Side{NodeID: to, End: false}
	g.outEdges[fs] = append(g.outEdges[fs], ts)
	g.inEdges[ts] = append(g.inEdges[ts], fs)
}

// AddPath records a named haplotype walk for ApproxPosition/PositionInPaths.
func (g *Graph) AddPath(name string, walk []oracle.GraphPos) {
	g.paths[name] = walk
}

func (g *Graph) node(id uint64) (*Node, error) {
	n, ok := g.nodes[id]
	if !ok || (g.members != nil && !g.members[id]) {
		return nil, errors.Errorf("testgraph: no such node %d", id)
	}
	return n, nil
}

// NodeLength implements oracle.Graph.
func (g *Graph) NodeLength(id uint64) (uint32, error) {
	n, err := g.node(id)
	if err != nil {
		return 0, err
	}
	return uint32(len(n.Seq)), nil
}

// NodeSequence implements oracle.Graph. The returned slice is the node's
// forward-strand sequence regardless of orientation; callers reverse
// complement it themselves when walking the reverse strand.
func (g *Graph) NodeSequence(id uint64) ([]byte, error) {
	n, err := g.node(id)
	if err != nil {
		return nil, err
	}
	return n.Seq, nil
}

// EdgesOf implements oracle.Graph.
func (g *Graph) EdgesOf(id uint64) ([]oracle.Edge, error) {
	if _, err := g.node(id); err != nil {
		return nil, err
	}
	var edges []oracle.Edge
	for _, end := range []bool{false, true} {
		side := oracle.Side{NodeID: id, End: end}
		for _, to := range g.outEdges[side] {
			edges = append(edges, oracle.Edge{From: side, To: to})
		}
		for _, from := range g.inEdges[side] {
			edges = append(edges, oracle.Edge{From: from, To: side})
		}
	}
	return edges, nil
}

// NextPositions implements oracle.Graph.
func (g *Graph) NextPositions(pos oracle.GraphPos, walkWholeNode bool) ([]oracle.GraphPos, error) {
	n, err := g.node(pos.NodeID)
	if err != nil {
		return nil, err
	}
	nodeLen := uint32(len(n.Seq))
	if pos.Offset < nodeLen {
		if walkWholeNode {
			return []oracle.GraphPos{{NodeID: pos.NodeID, IsReverse: pos.IsReverse, Offset: nodeLen}}, nil
		}
		return []oracle.GraphPos{{NodeID: pos.NodeID, IsReverse: pos.IsReverse, Offset: pos.Offset + 1}}, nil
	}

	// at the end of the node: cross an edge. Forward strand consults
	// outEdges from the node's End side; reverse strand consults inEdges
	// from the node's Start side, since crossing "backwards" over a
	// recorded forward edge is how the reverse strand walks off a node.
	var out []oracle.GraphPos
	if !pos.IsReverse {
		side := oracle.Side{NodeID: pos.NodeID, End: true}
		for _, to := range g.outEdges[side] {
			out = append(out, oracle.GraphPos{NodeID: to.NodeID, IsReverse: to.End, Offset: 0})
		}
	} else {
		side := oracle.Side{NodeID: pos.NodeID, End: false}
		for _, from := range g.inEdges[side] {
			out = append(out, oracle.GraphPos{NodeID: from.NodeID, IsReverse: !from.End, Offset: 0})
		}
	}
	return out, nil
}

// ApproxPosition implements oracle.Graph using the first path that visits
// the node, if any.
func (g *Graph) ApproxPosition(pos oracle.GraphPos) int64 {
	var acc int64
	for _, walk := range g.paths {
		acc = 0
		for _, p := range walk {
			if p.NodeID == pos.NodeID {
				return acc + int64(pos.Offset)
			}
			n := g.nodes[p.NodeID]
			acc += int64(len(n.Seq))
		}
	}
	return -1
}

// MinPathDistance implements oracle.Graph via bounded BFS over node
// adjacency, using node lengths as edge weights.
func (g *Graph) MinPathDistance(a, b oracle.GraphPos, maxDist int64) int64 {
	if a.NodeID == b.NodeID && a.IsReverse == b.IsReverse {
		d := int64(b.Offset) - int64(a.Offset)
		if d < 0 {
			d = -d
		}
		if d <= maxDist {
			return d
		}
	}
	type item struct {
		pos  oracle.GraphPos
		dist int64
	}
	visited := map[oracle.GraphPos]bool{a: true}
	queue := []item{{a, 0}}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur.dist > maxDist {
			continue
		}
		if cur.pos.NodeID == b.NodeID && cur.pos.IsReverse == b.IsReverse {
			if d := cur.dist + absDiff(cur.pos.Offset, b.Offset); d <= maxDist {
				return d
			}
			continue
		}
		nodeLen := mustLen(g, cur.pos.NodeID)
		nexts, err := g.NextPositions(oracle.GraphPos{NodeID: cur.pos.NodeID, IsReverse: cur.pos.IsReverse, Offset: nodeLen}, false)
		if err != nil {
			continue
		}
		for _, np := range nexts {
			if visited[np] {
				continue
			}
			visited[np] = true
			queue = append(queue, item{np, cur.dist + int64(nodeLen) - int64(cur.pos.Offset)})
		}
	}
	return -1
}

func mustLen(g *Graph, id uint64) uint32 {
	n := g.nodes[id]
	if n == nil {
		return 0
	}
	return uint32(len(n.Seq))
}

func absDiff(a, b uint32) int64 {
	if a > b {
		return int64(a - b)
	}
	return int64(b - a)
}

// PositionInPaths implements oracle.Graph.
func (g *Graph) PositionInPaths(id uint64, isReverse bool, offset uint32) map[string][]int64 {
	out := map[string][]int64{}
	for name, walk := range g.paths {
		var acc int64
		for _, p := range walk {
			if p.NodeID == id && p.IsReverse == isReverse {
				out[name] = append(out[name], acc+int64(offset))
			}
			acc += int64(mustLen(g, p.NodeID))
		}
	}
	return out
}

// IDRange implements oracle.Graph.
func (g *Graph) IDRange(lo, hi uint64) (oracle.Graph, error) {
	members := map[uint64]bool{}
	for id := range g.nodes {
		if id >= lo && id < hi {
			members[id] = true
		}
	}
	view := *g
	view.members = members
	return &view, nil
}

// ExpandContext implements oracle.Graph by BFS-growing the current
// membership set outward by depth edge hops. useSteps is ignored: each unit
// of depth is one hop, whatever the lengths of the nodes crossed.
func (g *Graph) ExpandContext(depth int, useSteps bool, paths []string) (oracle.Graph, error) {
	frontier := g.NodeIDs()
	visited := map[uint64]bool{}
	for _, id := range frontier {
		visited[id] = true
	}
	remaining := depth
	queue := append([]uint64(nil), frontier...)
	for remaining > 0 && len(queue) > 0 {
		var next []uint64
		for _, id := range queue {
			for _, end := range []bool{false, true} {
				side := oracle.Side{NodeID: id, End: end}
				for _, to := range g.outEdges[side] {
					if !visited[to.NodeID] {
						visited[to.NodeID] = true
						next = append(next, to.NodeID)
					}
				}
				for _, from := range g.inEdges[side] {
					if !visited[from.NodeID] {
						visited[from.NodeID] = true
						next = append(next, from.NodeID)
					}
				}
			}
		}
		queue = next
		remaining-- // bases-vs-steps distinction is immaterial for the toy fixture: one hop per unit
		_ = useSteps
	}
	view := *g
	view.members = visited
	return &view, nil
}

// HasNode implements oracle.Bounded.
func (g *Graph) HasNode(id uint64) bool {
	if g.members == nil {
		_, ok := g.nodes[id]
		return ok
	}
	return g.members[id]
}

// NodeIDs implements oracle.Bounded.
func (g *Graph) NodeIDs() []uint64 {
	var ids []uint64
	if g.members == nil {
		for id := range g.nodes {
			ids = append(ids, id)
		}
		return ids
	}
	for id := range g.members {
		ids = append(ids, id)
	}
	return ids
}
