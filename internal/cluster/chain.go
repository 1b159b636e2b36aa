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

import (
	"math"
	"sort"

	"github.com/gograph-align/gograph-align/internal/oracle"
	"github.com/gograph-align/gograph-align/internal/seed"
)

// Chainer builds the MEM chaining DAG (spec.md §4.3) and traces ranked
// clusters out of it. It reuses backing slices across calls the way the
// teacher's Chainer reuses its triangular score matrix.
type Chainer struct {
	Graph oracle.Graph
	Opt   ChainingOptions

	verts []vertex
	edges [][]int // verts[i] -> indices of verts within band, mem-forward
	pos   []oracle.GraphPos
}

// NewChainer constructs a Chainer bound to a graph oracle.
func NewChainer(g oracle.Graph, opt ChainingOptions) *Chainer {
	return &Chainer{Graph: g, Opt: opt}
}

// buildVertices implements spec.md §4.3 step 1-2: emit one vertex per
// (MEM, graph position), bucket by approximate position, and merge
// redundant vertices.
func (c *Chainer) buildVertices(mems []seed.MEM) {
	c.verts = c.verts[:0]
	c.pos = c.pos[:0]

	for _, m := range mems {
		nodes := m.Nodes
		depth := len(nodes)
		if c.Opt.PositionDepth > 0 && depth > c.Opt.PositionDepth {
			// Sort by nothing extra available here (match count is
			// per-MEM, not per-position); truncate to the configured
			// depth, keeping the first PositionDepth positions.
			depth = c.Opt.PositionDepth
		}
		for i := 0; i < depth; i++ {
			p := nodes[i]
			c.verts = append(c.verts, vertex{
				mem:       m,
				pos:       len(c.pos),
				approxPos: c.Graph.ApproxPosition(p),
				fragment:  m.Fragment,
				isReverse: p.IsReverse,
			})
			c.pos = append(c.pos, p)
		}
	}

	sortVertsByPos(c.verts)

	band := c.Opt.BandWidth
	for i := range c.verts {
		v1 := &c.verts[i]
		if v1.dropped {
			continue
		}
		for j := i + 1; j < len(c.verts); j++ {
			v2 := &c.verts[j]
			if v2.approxPos-v1.approxPos > band {
				break
			}
			if v2.dropped {
				continue
			}
			if memsOverlap(v1.mem, v2.mem) &&
				absInt64(v2.approxPos-v1.approxPos) == int64(absInt(v2.begin()-v1.begin())) {
				v1.mem.End = v2.end()
				v2.dropped = true
			}
		}
	}
}

func memsOverlap(a, b seed.MEM) bool {
	return a.Begin < b.End && b.Begin < a.End
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func absInt64(x int64) int64 {
	if x < 0 {
		return -x
	}
	return x
}

// buildEdges implements spec.md §4.3 step 3: connect each vertex to
// compatible successors within band_width, capped at max_connections,
// keeping the highest-weight candidates.
func (c *Chainer) buildEdges() {
	n := len(c.verts)
	if cap(c.edges) < n {
		c.edges = make([][]int, n)
	} else {
		c.edges = c.edges[:n]
	}
	band := c.Opt.BandWidth
	maxConn := c.Opt.MaxConnections
	if maxConn <= 0 {
		maxConn = n
	}

	for i := range c.verts {
		c.edges[i] = c.edges[i][:0]
		if c.verts[i].dropped {
			continue
		}
		var cands []cand
		for j := i + 1; j < n; j++ {
			if c.verts[j].approxPos-c.verts[i].approxPos > band {
				break
			}
			if c.verts[j].dropped {
				continue
			}
			if c.verts[j].begin() < c.verts[i].begin() {
				continue // MEM precedes i in the read: not a forward edge
			}
			w := transitionWeight(&c.verts[i], &c.verts[j], c.pos[c.verts[i].pos], c.pos[c.verts[j].pos], c.Graph, c.Opt)
			if math.IsInf(w, -1) {
				continue
			}
			cands = append(cands, cand{j, w})
		}
		sortCandsByWeight(cands)
		if len(cands) > maxConn {
			cands = cands[:maxConn]
		}
		for _, cd := range cands {
			c.edges[i] = append(c.edges[i], cd.idx)
		}
	}
}

// Chains runs vertex/edge construction, DP scoring, traceback into up to
// kAlt clusters, and pruning (spec.md §4.3). paired marks whether
// cross-fragment transitions should be severed between traces.
func (c *Chainer) Chains(mems []seed.MEM, kAlt int, paired bool) []Chain {
	c.buildVertices(mems)
	c.buildEdges()

	n := len(c.verts)
	if n == 0 {
		return nil
	}

	score := make([]float64, n)
	back := make([]int, n)
	excludedEdge := make(map[[2]int]bool)
	excludedVert := make([]bool, n)

	var chains []Chain

	for iter := 0; iter < kAlt; iter++ {
		for i := range score {
			score[i] = math.Inf(-1)
			back[i] = -1
		}
		for i := range c.verts {
			if c.verts[i].dropped || excludedVert[i] {
				continue
			}
			score[i] = vertexWeight(c.verts[i].mem.Len())
		}
		// forward DP: edges only point from lower index to higher index
		// (approxPos, then begin ascending), giving a valid topological
		// order per spec.md §4.3.
		for i := range c.verts {
			if c.verts[i].dropped || excludedVert[i] || math.IsInf(score[i], -1) {
				continue
			}
			for _, j := range c.edges[i] {
				if c.verts[j].dropped || excludedVert[j] || excludedEdge[[2]int{i, j}] {
					continue
				}
				w := transitionWeight(&c.verts[i], &c.verts[j], c.pos[c.verts[i].pos], c.pos[c.verts[j].pos], c.Graph, c.Opt)
				cand := vertexWeight(c.verts[j].mem.Len()) + math.Max(0, score[i]+w)
				if cand > score[j] {
					score[j] = cand
					back[j] = i
				}
			}
		}

		best, bestScore := -1, 0.0
		for i, s := range score {
			if !excludedVert[i] && s > bestScore {
				bestScore = s
				best = i
			}
		}
		if best < 0 || bestScore <= 0 {
			break
		}

		var walk []int
		for v := best; v != -1; v = back[v] {
			walk = append(walk, v)
			if back[v] != -1 {
				excludedEdge[[2]int{back[v], v}] = true
			}
			excludedVert[v] = true
		}
		for i, j := 0, len(walk)-1; i < j; i, j = i+1, j-1 {
			walk[i], walk[j] = walk[j], walk[i]
		}

		var mems []seed.MEM
		for _, v := range walk {
			mems = append(mems, c.verts[v].mem)
		}
		chains = append(chains, Chain{MEMs: mems, Score: bestScore, Coverage: coverage(mems)})

		if paired {
			// sever cross-fragment transitions of this chain so later
			// traces cannot reuse the same pairing.
			for i := 0; i+1 < len(walk); i++ {
				a, b := walk[i], walk[i+1]
				if c.verts[a].fragment != c.verts[b].fragment {
					excludedEdge[[2]int{a, b}] = true
				}
			}
		}
	}

	return prune(chains, c.Opt)
}

func coverage(mems []seed.MEM) int {
	if len(mems) == 0 {
		return 0
	}
	type iv struct{ lo, hi int }
	ivs := make([]iv, len(mems))
	for i, m := range mems {
		ivs[i] = iv{m.Begin, m.End}
	}
	sort.Slice(ivs, func(i, j int) bool { return ivs[i].lo < ivs[j].lo })
	total, curLo, curHi := 0, ivs[0].lo, ivs[0].lo
	for _, v := range ivs {
		if v.lo > curHi {
			total += curHi - curLo
			curLo, curHi = v.lo, v.hi
		} else if v.hi > curHi {
			curHi = v.hi
		}
	}
	total += curHi - curLo
	return total
}

// prune implements spec.md §4.3's cluster-pruning rules.
func prune(chains []Chain, opt ChainingOptions) []Chain {
	if len(chains) == 0 {
		return chains
	}
	sortChainsByScore(chains)

	keep := make([]bool, len(chains))
	for i := range keep {
		keep[i] = true
	}
	for i := range chains {
		if !keep[i] {
			continue
		}
		for j := range chains {
			if i == j || !keep[j] {
				continue
			}
			if chains[j].Coverage <= chains[i].Coverage {
				continue // j is not longer than i
			}
			overlap := readOverlap(chains[i].MEMs, chains[j].MEMs)
			if overlap == 0 {
				continue
			}
			ratio := float64(overlap) / float64(chains[j].Coverage)
			if ratio < opt.DropChain {
				keep[i] = false
			}
		}
	}

	var out []Chain
	for i, c := range chains {
		if keep[i] {
			out = append(out, c)
		}
	}

	if opt.MinClusterLength > 0 {
		survivors := 0
		for _, c := range out {
			if c.Coverage >= opt.MinClusterLength {
				survivors++
			}
		}
		if survivors >= 2 {
			var filtered []Chain
			for _, c := range out {
				if c.Coverage >= opt.MinClusterLength {
					filtered = append(filtered, c)
				}
			}
			out = filtered
		}
	}
	return out
}

func readOverlap(a, b []seed.MEM) int {
	overlap := 0
	for _, x := range a {
		for _, y := range b {
			lo, hi := max(x.Begin, y.Begin), min(x.End, y.End)
			if hi > lo {
				overlap += hi - lo
			}
		}
	}
	return overlap
}
