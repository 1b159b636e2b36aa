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

import "github.com/twotwotwo/sorts"

// vertsByPos sorts vertices by approximate position, then by read begin
// (buildVertices, spec.md §4.3 step 1), the same key lexicmap/cmd/util.go's
// getFlagSortedStringSlice's sort.Slice callers use before switching to
// sortutil for anything bigger than a handful of items.
type vertsByPos []vertex

func (s vertsByPos) Len() int      { return len(s) }
func (s vertsByPos) Swap(i, j int) { s[i], s[j] = s[j], s[i] }
func (s vertsByPos) Less(i, j int) bool {
	if s[i].approxPos != s[j].approxPos {
		return s[i].approxPos < s[j].approxPos
	}
	return s[i].begin() < s[j].begin()
}

// candsByWeight sorts buildEdges' successor candidates by descending
// transition weight before the max_connections cutoff.
type candsByWeight []cand

func (s candsByWeight) Len() int           { return len(s) }
func (s candsByWeight) Swap(i, j int)      { s[i], s[j] = s[j], s[i] }
func (s candsByWeight) Less(i, j int) bool { return s[i].w > s[j].w }

// chainsByScore sorts traced chains by descending DP score before pruning.
type chainsByScore []Chain

func (s chainsByScore) Len() int           { return len(s) }
func (s chainsByScore) Swap(i, j int)      { s[i], s[j] = s[j], s[i] }
func (s chainsByScore) Less(i, j int) bool { return s[i].Score > s[j].Score }

func sortVertsByPos(v []vertex)   { sorts.Quicksort(vertsByPos(v)) }
func sortCandsByWeight(c []cand)  { sorts.Quicksort(candsByWeight(c)) }
func sortChainsByScore(c []Chain) { sorts.Quicksort(chainsByScore(c)) }

// orderByScoreDesc sorts a slice of indices into scores by descending score,
// the top-K ranking step every ProcessUntilThreshold call starts from.
type orderByScoreDesc struct {
	order  []int
	scores []float64
}

func (s orderByScoreDesc) Len() int      { return len(s.order) }
func (s orderByScoreDesc) Swap(i, j int) { s.order[i], s.order[j] = s.order[j], s.order[i] }
func (s orderByScoreDesc) Less(i, j int) bool {
	return s.scores[s.order[i]] > s.scores[s.order[j]]
}

func sortOrderByScoreDesc(order []int, scores []float64) {
	sorts.Quicksort(orderByScoreDesc{order: order, scores: scores})
}
