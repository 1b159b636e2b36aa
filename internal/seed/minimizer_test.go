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

package seed

import (
	"testing"

	"github.com/gograph-align/gograph-align/internal/oracle/testgraph"
)

func TestFindSeedsAcceptsWithinHitCap(t *testing.T) {
	g := testgraph.New()
	g.AddNode(1, []byte("ACGTACGTACGTACGTACGTACGTACGT"))
	idx := testgraph.BuildMinimizerIndex(g, 8, 4)

	f := NewMinimizerFinder(idx, MinimizerOptions{HitCap: 1000, HardHitCap: 2000, ScoreFraction: 0.9})
	mins, seeds, sources, selections := f.FindSeeds([]byte("ACGTACGTACGTACGTACGTACGTACGT"))

	if len(mins) == 0 {
		t.Fatal("expected at least one minimizer window")
	}
	if len(seeds) == 0 {
		t.Fatal("expected minimizer occurrences to produce seeds")
	}
	if len(sources) != len(seeds) {
		t.Fatalf("sources length %d != seeds length %d", len(sources), len(seeds))
	}
	for _, src := range sources {
		if src < 0 || src >= len(mins) {
			t.Fatalf("source index %d out of range of mins (len %d)", src, len(mins))
		}
	}
	anyAccepted := false
	for _, sel := range selections {
		if sel.Accepted {
			anyAccepted = true
		}
	}
	if !anyAccepted {
		t.Fatal("expected at least one accepted minimizer selection")
	}
}

func TestFindSeedsRejectsAboveHardCap(t *testing.T) {
	g := testgraph.New()
	// A highly repetitive sequence makes every minimizer's hit count large.
	g.AddNode(1, []byte("AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA"))
	idx := testgraph.BuildMinimizerIndex(g, 8, 4)

	f := NewMinimizerFinder(idx, MinimizerOptions{HitCap: 0, HardHitCap: 0, ScoreFraction: 0.9})
	_, _, _, selections := f.FindSeeds([]byte("AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA"))

	for _, sel := range selections {
		if sel.Accepted {
			t.Fatalf("expected no minimizer to be accepted with zero hit caps, got %+v", sel)
		}
	}
}
