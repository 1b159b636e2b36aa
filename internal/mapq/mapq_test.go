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

package mapq

import "testing"

func TestApproximateSingleCandidateGetsMax(t *testing.T) {
	if got := Approximate([]float64{50}, 60); got != 60 {
		t.Errorf("Approximate = %d, want 60 for a lone candidate", got)
	}
}

func TestApproximateEmptyIsZero(t *testing.T) {
	if got := Approximate(nil, 60); got != 0 {
		t.Errorf("Approximate = %d, want 0 for no candidates", got)
	}
}

func TestApproximateTiedCandidatesLowQuality(t *testing.T) {
	got := Approximate([]float64{50, 50}, 60)
	if got > 5 {
		t.Errorf("Approximate = %d, want a low MAPQ for two exactly-tied candidates", got)
	}
}

func TestApproximateDominantCandidateHighQuality(t *testing.T) {
	got := Approximate([]float64{100, 1}, 60)
	if got < 50 {
		t.Errorf("Approximate = %d, want a high MAPQ when the best score dominates", got)
	}
}

func TestApproximateMonotonicInScoreGap(t *testing.T) {
	small := Approximate([]float64{50, 48}, 60)
	large := Approximate([]float64{50, 10}, 60)
	if large < small {
		t.Errorf("Approximate(gap=40)=%d should be >= Approximate(gap=2)=%d", large, small)
	}
}

func TestDowngradeBySubOverlap(t *testing.T) {
	if got := DowngradeBySubOverlap(60, 2); got != 54 {
		t.Errorf("DowngradeBySubOverlap = %d, want 54", got)
	}
	if got := DowngradeBySubOverlap(5, 5); got != 0 {
		t.Errorf("DowngradeBySubOverlap = %d, want clamped to 0", got)
	}
}

func TestApplyClusterCap(t *testing.T) {
	if got := ApplyClusterCap(60, 30, true); got != 30 {
		t.Errorf("ApplyClusterCap = %d, want 30", got)
	}
	if got := ApplyClusterCap(60, 30, false); got != 60 {
		t.Errorf("ApplyClusterCap = %d, want 60 when disabled", got)
	}
}

func TestPairedSumsAndClamps(t *testing.T) {
	if got := Paired(30, 40, 60); got != 60 {
		t.Errorf("Paired = %d, want clamped to 60", got)
	}
	if got := Paired(10, 20, 60); got != 30 {
		t.Errorf("Paired = %d, want 30", got)
	}
}

func TestSubOverlapCount(t *testing.T) {
	got := SubOverlapCount([]float64{0.9, 0.5, 0.85}, 0.8)
	if got != 2 {
		t.Errorf("SubOverlapCount = %d, want 2", got)
	}
}
