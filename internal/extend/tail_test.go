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

import (
	"testing"

	"github.com/gograph-align/gograph-align/internal/dpaligner"
	"github.com/gograph-align/gograph-align/internal/oracle"
	"github.com/gograph-align/gograph-align/internal/oracle/testgraph"
)

func TestLongestDetectableGap(t *testing.T) {
	opt := Options{Match: 1, GapOpen: 6, GapExtension: 1}
	got := LongestDetectableGap(20, opt)
	want := (20 - 6) / 1
	if got != want {
		t.Errorf("LongestDetectableGap = %d, want %d", got, want)
	}
	if g := LongestDetectableGap(20, Options{}); g != 0 {
		t.Errorf("LongestDetectableGap with zero GapExtension = %d, want 0", g)
	}
}

func TestAlignTailRightExtendsExactly(t *testing.T) {
	g := testgraph.New()
	g.AddNode(1, []byte("ACGT"))
	g.AddNode(2, []byte("TTTT"))
	g.AddEdge(1, 2)

	aligner := dpaligner.NewAligner(dpaligner.Options{Match: 1, Mismatch: -4, GapOpen: -6, GapExtension: -1})
	opt := Options{Match: 1, GapOpen: 6, GapExtension: 1}

	boundary := oracle.GraphPos{NodeID: 1, Offset: 4} // past the end of node 1
	ta := AlignTail(aligner, g, boundary, []byte("TTTT"), false, opt)
	if ta == nil {
		t.Fatal("expected a tail alignment for an exact-match right tail")
	}
	if ta.Result.Score <= 0 {
		t.Errorf("expected a positive score for an exact match tail, got %d", ta.Result.Score)
	}
	dpaligner.RecycleResult(ta.Result)
}

func TestAlignTailEmptySeqReturnsNil(t *testing.T) {
	g := testgraph.New()
	g.AddNode(1, []byte("ACGT"))
	aligner := dpaligner.NewAligner(dpaligner.Options{Match: 1, Mismatch: -4, GapOpen: -6, GapExtension: -1})
	if ta := AlignTail(aligner, g, oracle.GraphPos{NodeID: 1, Offset: 4}, nil, false, Options{}); ta != nil {
		t.Fatalf("expected nil tail alignment for an empty tail sequence, got %+v", ta)
	}
}
