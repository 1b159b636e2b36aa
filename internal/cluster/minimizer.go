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
	"sort"

	"github.com/rdleal/intervalst/interval"

	"github.com/gograph-align/gograph-align/internal/oracle"
	"github.com/gograph-align/gograph-align/internal/seed"
)

// SeedCluster is one partition produced by ClusterSeeds: a set of seed
// indices that are mutually reachable within distance_limit, scored by the
// summed score of their originating minimizers (spec.md §4.4).
type SeedCluster struct {
	SeedIdxs []int
	Score    float64
	Coverage float64 // fraction of read bases covered by any hit's k-mer window
}

// MinClusterOptions parameterizes ClusterSeeds.
type MinClusterOptions struct {
	DistanceLimit int64
	K             int
	ReadLength    int
}

type unionFind struct{ parent []int }

func newUnionFind(n int) *unionFind {
	p := make([]int, n)
	for i := range p {
		p[i] = i
	}
	return &unionFind{parent: p}
}

func (u *unionFind) find(x int) int {
	for u.parent[x] != x {
		u.parent[x] = u.parent[u.parent[x]]
		x = u.parent[x]
	}
	return x
}

func (u *unionFind) union(a, b int) {
	ra, rb := u.find(a), u.find(b)
	if ra != rb {
		u.parent[ra] = rb
	}
}

// ClusterSeeds implements spec.md §4.4: an external-oracle-backed clusterer
// partitioning seeds so any two seeds transitively reachable through a
// chain of distance_limit-bounded steps land in the same cluster.
// seedScores must be parallel to seeds, giving each seed's originating
// minimizer's score (spec.md §4.2 step 2).
func ClusterSeeds(g oracle.Graph, seeds []seed.Seed, seedScores []float64, opt MinClusterOptions) []SeedCluster {
	n := len(seeds)
	if n == 0 {
		return nil
	}

	approx := make([]int64, n)
	for i, s := range seeds {
		approx[i] = g.ApproxPosition(s.Pos)
	}
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool { return approx[order[a]] < approx[order[b]] })

	cmpFn := func(x, y int64) int {
		switch {
		case x < y:
			return -1
		case x > y:
			return 1
		default:
			return 0
		}
	}
	tree := interval.NewSearchTree[int, int64](cmpFn)
	uf := newUnionFind(n)

	limit := opt.DistanceLimit
	if limit < 0 {
		limit = 0
	}
	for _, i := range order {
		p := approx[i]
		// AnyIntersection only needs to find one already-inserted window
		// touching p: single-linkage clustering unions transitively, so a
		// single witness per new point is sufficient to merge its group
		// with every window it would otherwise (indirectly) reach.
		if other, ok := tree.AnyIntersection(p, p+1); ok {
			uf.union(i, other)
		}
		tree.Insert(p-limit, p+limit+1, i)
	}

	groups := map[int][]int{}
	for i := 0; i < n; i++ {
		root := uf.find(i)
		groups[root] = append(groups[root], i)
	}

	clusters := make([]SeedCluster, 0, len(groups))
	for _, idxs := range groups {
		sort.Ints(idxs)
		var score float64
		seen := map[float64]bool{} // dedup identical originating-minimizer scores counted once per distinct source key
		var covered []struct{ lo, hi int }
		for _, idx := range idxs {
			key := float64(seeds[idx].SourceKey)
			if !seen[key] {
				seen[key] = true
				score += seedScores[idx]
			}
			lo := int(seeds[idx].ReadOffset)
			hi := lo + opt.K
			covered = append(covered, struct{ lo, hi int }{lo, hi})
		}
		clusters = append(clusters, SeedCluster{
			SeedIdxs: idxs,
			Score:    score,
			Coverage: coverageFraction(covered, opt.ReadLength),
		})
	}
	return clusters
}

func coverageFraction(ivs []struct{ lo, hi int }, readLen int) float64 {
	if readLen <= 0 || len(ivs) == 0 {
		return 0
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
	return float64(total) / float64(readLen)
}

// SelectClusters ranks clusters by score and applies the generic
// process_until_threshold protocol (spec.md §4.11) to pick the top set.
func SelectClusters(clusters []SeedCluster, minDiff float64, minCount, maxResults int) (accepted, overCap, belowThreshold []SeedCluster) {
	scores := make([]float64, len(clusters))
	for i, c := range clusters {
		scores[i] = c.Score
	}
	ProcessUntilThreshold(scores, minDiff, minCount, maxResults,
		func(i int) { accepted = append(accepted, clusters[i]) },
		func(i int) { overCap = append(overCap, clusters[i]) },
		func(i int) { belowThreshold = append(belowThreshold, clusters[i]) },
	)
	return
}
