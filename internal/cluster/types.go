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

package cluster

import "github.com/gograph-align/gograph-align/internal/seed"

// vertex is one (MEM, single graph position) pairing in the chaining DAG
// (spec.md §4.3).
type vertex struct {
	mem        seed.MEM
	pos        int // index of this vertex's graph position within Chainer.pos
	approxPos  int64
	fragment   uint8
	isReverse  bool
	dropped    bool
	excluded   bool
}

func (v *vertex) begin() int { return v.mem.Begin }
func (v *vertex) end() int   { return v.mem.End }

// cand is one scored successor candidate considered by buildEdges before
// the max_connections cutoff.
type cand struct {
	idx int
	w   float64
}

// Chain is one traced path through the DAG: an ordered run of MEMs that
// project collinearly onto a shared region of the graph.
type Chain struct {
	MEMs     []seed.MEM
	Score    float64
	Coverage int // number of distinct read bases covered
}

// ChainingOptions mirrors config.ClusterOptions, grounded in the teacher's
// ChainingOptions (lexicmap/cmd/lib-chaining.go).
type ChainingOptions struct {
	BandWidth       int64
	MaxConnections  int
	PositionDepth   int
	ReadLength      int
	GapOpen         float64
	GapExtension    float64
	DropChain       float64
	MinClusterLength int
	Match           float64
	FragmentMean    float64 // 0 == no fragment model yet
	FragmentSigma   float64
	FragmentMax     float64
}
