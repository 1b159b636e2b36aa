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

import "testing"

func TestEstimateScorePerfectCoverage(t *testing.T) {
	exts := []GaplessExtension{{ReadBegin: 0, ReadEnd: 10}}
	opt := Options{Match: 1, Mismatch: 4}
	got := EstimateScore(exts, 10, opt)
	if got != 10 {
		t.Errorf("EstimateScore = %d, want 10 for a fully-matched, fully-covered read", got)
	}
}

func TestEstimateScoreUniversalMismatchPenalized(t *testing.T) {
	exts := []GaplessExtension{
		{ReadBegin: 0, ReadEnd: 5, Mismatches: []int{2}},
		{ReadBegin: 0, ReadEnd: 5, Mismatches: []int{2}},
	}
	opt := Options{Match: 1, Mismatch: 4}
	got := EstimateScore(exts, 5, opt)
	// positions 0,1,3,4 match (+1 each), position 2 mismatches in every
	// covering extension (-4).
	want := 4*1 - 4
	if got != want {
		t.Errorf("EstimateScore = %d, want %d", got, want)
	}
}

func TestEstimateScoreNonUniversalMismatchNotPenalized(t *testing.T) {
	exts := []GaplessExtension{
		{ReadBegin: 0, ReadEnd: 5, Mismatches: []int{2}},
		{ReadBegin: 0, ReadEnd: 5}, // covers position 2 cleanly
	}
	got := EstimateScore(exts, 5, Options{Match: 1, Mismatch: 4})
	if got != 5 {
		t.Errorf("EstimateScore = %d, want 5: position 2 should count as a match since one extension threads through cleanly", got)
	}
}

func TestSelectExtensionSetsAppliesThreshold(t *testing.T) {
	sets := []ExtensionSet{
		{Estimate: 100}, {Estimate: 90}, {Estimate: 1},
	}
	accepted := SelectExtensionSets(sets, Options{ExtensionSetScoreThreshold: 5, MaxAlignments: 10})
	if len(accepted) != 2 {
		t.Fatalf("accepted = %v, want 2 sets: the top one plus the runner-up kept by the minimum count of 2", accepted)
	}
}
