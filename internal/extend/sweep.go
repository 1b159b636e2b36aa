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

package extend

import "github.com/gograph-align/gograph-align/internal/cluster"

// ExtensionSet is one candidate group of extensions covering a cluster,
// together with its sweep-line score estimate.
type ExtensionSet struct {
	Extensions []GaplessExtension
	Estimate   int
}

// EstimateScore implements spec.md §4.5 step 2: a sweep-line pass over the
// extensions' read intervals and mismatch positions. A read position
// covered by at least one extension scores as a mismatch only when every
// extension covering it disagrees there (a "universal" mismatch);
// otherwise it scores as a match, since some extension threads through it
// cleanly. Positions no extension covers contribute nothing. This is the
// flattened, position-indexed form of the sweep: instead of only visiting
// interval-boundary and mismatch events, it walks every covered read
// position once, which is equivalent for the modest read lengths this
// core targets and easier to verify against by hand.
func EstimateScore(exts []GaplessExtension, readLen int, opt Options) int {
	if readLen <= 0 {
		return 0
	}
	covered := make([]int, readLen)
	anyMatch := make([]bool, readLen)

	for _, e := range exts {
		mm := make(map[int]bool, len(e.Mismatches))
		for _, m := range e.Mismatches {
			mm[m] = true
		}
		for p := e.ReadBegin; p < e.ReadEnd && p < readLen; p++ {
			if p < 0 {
				continue
			}
			covered[p]++
			if !mm[p] {
				anyMatch[p] = true
			}
		}
	}

	match, mismatch := opt.Match, opt.Mismatch
	if match == 0 {
		match = 1
	}
	if mismatch == 0 {
		mismatch = 4
	}

	score := 0
	for p := 0; p < readLen; p++ {
		if covered[p] == 0 {
			continue
		}
		if anyMatch[p] {
			score += match
		} else {
			score -= mismatch
		}
	}
	return score
}

// SelectExtensionSets ranks candidate extension sets by their sweep-line
// estimate and applies process_until_threshold (spec.md §4.5 step 3,
// §4.11) with a floor of 2 forced acceptances.
func SelectExtensionSets(sets []ExtensionSet, opt Options) (accepted []ExtensionSet) {
	scores := make([]float64, len(sets))
	for i, s := range sets {
		scores[i] = float64(s.Estimate)
	}
	cluster.ProcessUntilThreshold(scores, opt.ExtensionSetScoreThreshold, 2, opt.MaxAlignments,
		func(i int) { accepted = append(accepted, sets[i]) },
		nil, nil,
	)
	return accepted
}
