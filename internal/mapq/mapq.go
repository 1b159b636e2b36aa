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

// Package mapq estimates mapping quality from a ranked set of candidate
// alignment scores (spec.md §4.9).
package mapq

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Approximate implements spec.md §4.9's default estimator: the probability
// that the best-scoring candidate is correct is derived from a numerically
// stable log-sum-exp of the score differences against the top score, then
// converted to a Phred-like quality and clamped to [0, maxMQ]. A lone
// candidate (nothing to compare against) gets maxMQ.
func Approximate(scores []float64, maxMQ int) int {
	if len(scores) == 0 {
		return 0
	}
	if len(scores) == 1 {
		return maxMQ
	}

	s0 := scores[0]
	diffs := make([]float64, len(scores))
	for i, s := range scores {
		diffs[i] = s - s0
	}
	lse := floats.LogSumExp(diffs) // >= 0, since diffs[0] == 0
	p := math.Exp(-lse)            // = 1 / sum(exp(diffs)); probability mass on the best candidate

	if p >= 1 {
		return maxMQ
	}
	if p <= 0 {
		return 0
	}
	mq := -10 * math.Log10(1-p)
	mq = math.Round(mq)
	if mq < 0 {
		mq = 0
	}
	if mq > float64(maxMQ) {
		mq = float64(maxMQ)
	}
	return int(mq)
}

// DowngradeBySubOverlap implements spec.md §4.9's overlap penalty: every
// rank>0 alignment whose read coverage overlaps the best alignment by at
// least mqOverlap erodes confidence in the winner, since it signals the
// aligner could not distinguish between them over most of the read.
func DowngradeBySubOverlap(mq, overlapCount int) int {
	mq -= 3 * overlapCount
	if mq < 0 {
		mq = 0
	}
	return mq
}

// ApplyClusterCap implements spec.md §4.9's "cluster-mapping-quality
// factor when enabled": caps the final MAPQ at the configured ceiling
// derived from cluster-stage ambiguity.
func ApplyClusterCap(mq int, clusterCap float64, enabled bool) int {
	if !enabled {
		return mq
	}
	if float64(mq) > clusterCap {
		return int(clusterCap)
	}
	return mq
}

// Paired implements spec.md §4.9's "paired MAPQ combines per-mate scores
// additively", clamped at maxMQ.
func Paired(mate1, mate2, maxMQ int) int {
	sum := mate1 + mate2
	if sum > maxMQ {
		return maxMQ
	}
	return sum
}

// SubOverlapCount reports how many of the trailing candidates in
// coverageOverlap (each candidate's read-coverage overlap fraction with
// the best alignment) meet or exceed mqOverlap.
func SubOverlapCount(coverageOverlap []float64, mqOverlap float64) int {
	n := 0
	for _, f := range coverageOverlap {
		if f >= mqOverlap {
			n++
		}
	}
	return n
}
