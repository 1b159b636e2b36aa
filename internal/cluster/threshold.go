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

// Package cluster implements collinearity chaining over seeds (spec.md
// §4.3, §4.4) and the generic top-K selection protocol shared by every
// ranking stage in the pipeline (spec.md §4.11).
package cluster

// ProcessUntilThreshold implements spec.md §4.11: iterate n items in
// score-descending order, accepting while score(i) >= max-minDiff and the
// accepted count is below maxCount, otherwise dispatching to onOverCap
// (still above the absolute floor but the cap was hit) or onBelowThreshold.
// minCount forces acceptance of the top minCount items even if they fall
// below threshold, still bounded by maxCount. scores must already
// correspond 1:1 with indices [0, n); items are visited via the returned
// index, not moved, so callers needn't allocate a parallel sorted slice of
// their payload type.
func ProcessUntilThreshold(scores []float64, minDiff float64, minCount, maxCount int,
	onAccept func(i int), onOverCap func(i int), onBelowThreshold func(i int)) {

	n := len(scores)
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sortOrderByScoreDesc(order, scores)

	if n == 0 {
		return
	}
	maxScore := scores[order[0]]
	accepted := 0
	for rank, i := range order {
		aboveThreshold := scores[i] >= maxScore-minDiff
		forced := rank < minCount
		switch {
		case (aboveThreshold || forced) && accepted < maxCount:
			accepted++
			if onAccept != nil {
				onAccept(i)
			}
		case aboveThreshold:
			if onOverCap != nil {
				onOverCap(i)
			}
		default:
			if onBelowThreshold != nil {
				onBelowThreshold(i)
			}
		}
	}
}
