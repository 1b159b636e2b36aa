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

package align

import "testing"

func TestComputeBandsShortReadIsSingleBand(t *testing.T) {
	bands := ComputeBands(100, 256)
	if len(bands) != 1 || bands[0].Begin != 0 || bands[0].End != 100 {
		t.Fatalf("bands = %+v, want a single [0,100) band", bands)
	}
}

func TestComputeBandsLongReadSplits(t *testing.T) {
	bands := ComputeBands(2000, 256)
	if len(bands) < 2 {
		t.Fatalf("expected multiple bands for a 2000bp read with band_width 256, got %+v", bands)
	}
	if bands[0].Begin != 0 {
		t.Errorf("first band should start at 0, got %d", bands[0].Begin)
	}
	if bands[len(bands)-1].End != 2000 {
		t.Errorf("last band should end at readLen 2000, got %d", bands[len(bands)-1].End)
	}
	for i := 1; i < len(bands); i++ {
		if bands[i].Begin < bands[i-1].End {
			t.Errorf("bands %d and %d overlap after trimming: %+v, %+v", i-1, i, bands[i-1], bands[i])
		}
	}
}

func TestConcatenateBandsSumsScoresAndClips(t *testing.T) {
	a1 := &Alignment{Score: 10, LeftClip: 3, RightClip: 0, Mappings: []Mapping{{}}}
	a2 := &Alignment{Score: 20, LeftClip: 0, RightClip: 5, Mappings: []Mapping{{}}}
	out := ConcatenateBands([]*Alignment{a1, a2})
	if out.Score != 30 {
		t.Errorf("Score = %d, want 30", out.Score)
	}
	if out.LeftClip != 3 || out.RightClip != 5 {
		t.Errorf("LeftClip/RightClip = %d/%d, want 3/5", out.LeftClip, out.RightClip)
	}
	if len(out.Mappings) != 2 {
		t.Errorf("expected mappings from both bands concatenated, got %d", len(out.Mappings))
	}
}

func TestConcatenateBandsEmpty(t *testing.T) {
	if out := ConcatenateBands(nil); out != nil {
		t.Fatalf("expected nil for an empty band list, got %+v", out)
	}
}

func TestConcatenateBandsAllNilIsNil(t *testing.T) {
	if out := ConcatenateBands([]*Alignment{nil, nil}); out != nil {
		t.Fatalf("expected nil when every band failed to align, got %+v", out)
	}
}

func TestConcatenateBandsSkipsUnmappedOuterBands(t *testing.T) {
	a2 := &Alignment{Score: 20, LeftClip: 0, RightClip: 5, Mappings: []Mapping{{}}}
	out := ConcatenateBands([]*Alignment{nil, a2, nil})
	if out == nil {
		t.Fatal("expected a non-nil merge with one mapped band")
	}
	if out.LeftClip != 0 || out.RightClip != 5 {
		t.Errorf("LeftClip/RightClip = %d/%d, want 0/5 (from the only mapped band)", out.LeftClip, out.RightClip)
	}
	if out.Score != 20 {
		t.Errorf("Score = %d, want 20", out.Score)
	}
}
