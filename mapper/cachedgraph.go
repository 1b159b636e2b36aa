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

package mapper

import (
	"github.com/gograph-align/gograph-align/internal/cache"
	"github.com/gograph-align/gograph-align/internal/oracle"
)

// cachedGraph wraps a Graph oracle with a worker-exclusive LRU in front of
// NodeSequence and NodeLength, the two calls the chaining, extension and
// alignment stages issue most repeatedly against the same handful of
// nodes within a single read's cluster subgraphs (SPEC_FULL.md §6). Each
// worker owns its cache, so no locking is needed here.
type cachedGraph struct {
	oracle.Graph
	seq *cache.LRU
	len *cache.LRU
}

func newCachedGraph(g oracle.Graph, w *worker) oracle.Graph {
	return &cachedGraph{Graph: g, seq: w.seqCache, len: w.posCache}
}

func (c *cachedGraph) NodeSequence(id uint64) ([]byte, error) {
	if v, ok := c.seq.Get(id); ok {
		return v.([]byte), nil
	}
	s, err := c.Graph.NodeSequence(id)
	if err != nil {
		return nil, err
	}
	c.seq.Put(id, s)
	return s, nil
}

func (c *cachedGraph) NodeLength(id uint64) (uint32, error) {
	if v, ok := c.len.Get(id); ok {
		return v.(uint32), nil
	}
	n, err := c.Graph.NodeLength(id)
	if err != nil {
		return 0, err
	}
	c.len.Put(id, n)
	return n, nil
}

// IDRange and ExpandContext return subgraph views built from the
// underlying oracle; wrapping them here would multiply cache instances
// for no benefit, since a fresh per-read subgraph is cold anyway.
