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

package pair

import (
	"testing"

	"github.com/gograph-align/gograph-align/internal/align"
	"github.com/gograph-align/gograph-align/internal/config"
	"github.com/gograph-align/gograph-align/internal/dpaligner"
	"github.com/gograph-align/gograph-align/internal/oracle"
	"github.com/gograph-align/gograph-align/internal/oracle/testgraph"
)

func alignmentAt(offset uint32, score int, reverse bool) *align.Alignment {
	return &align.Alignment{
		Score:     score,
		IsReverse: reverse,
		Mappings: []align.Mapping{
			{Path: []oracle.GraphPos{{NodeID: 1, Offset: offset}}},
		},
	}
}

func TestConsistentWithinFragmentMaxNoModel(t *testing.T) {
	g := testgraph.New()
	g.AddNode(1, make([]byte, 500))

	a1 := alignmentAt(0, 10, false)
	a2 := alignmentAt(300, 10, true)

	if !Consistent(g, a1, a2, Snapshot{}, 400) {
		t.Error("expected mates 300bp apart to be consistent under a 400bp fragment_max with no model yet")
	}
}

func TestConsistentRejectsTooFarApart(t *testing.T) {
	g := testgraph.New()
	g.AddNode(1, make([]byte, 500))

	a1 := alignmentAt(0, 10, false)
	a2 := alignmentAt(450, 10, true)

	if Consistent(g, a1, a2, Snapshot{}, 400) {
		t.Error("expected mates 450bp apart to be inconsistent under a 400bp fragment_max")
	}
}

func TestConsistentRejectsOrientationMismatch(t *testing.T) {
	g := testgraph.New()
	g.AddNode(1, make([]byte, 500))

	a1 := alignmentAt(0, 10, false)
	a2 := alignmentAt(200, 10, false) // same orientation, model expects FR (different)

	model := Snapshot{Ready: true, Mean: 300, Stdev: 20, SameOrientation: false}
	if Consistent(g, a1, a2, model, 400) {
		t.Error("expected an orientation mismatch against a converged model to reject the pair")
	}
}

func TestConsistentRejectsUnmapped(t *testing.T) {
	g := testgraph.New()
	g.AddNode(1, make([]byte, 500))
	a1 := alignmentAt(0, 10, false)
	if Consistent(g, a1, nil, Snapshot{}, 400) {
		t.Error("expected a nil mate to never be consistent")
	}
}

func TestCombinatorialPrefersConsistentPairing(t *testing.T) {
	g := testgraph.New()
	g.AddNode(1, make([]byte, 500))

	anchor := alignmentAt(0, 20, false)
	near := alignmentAt(300, 20, true) // opposite orientation, 300bp away: matches the model
	far := alignmentAt(0, 20, true)    // same node/offset as the anchor: dist 0, always inconsistent

	model := Snapshot{Ready: true, Mean: 300, Stdev: 20, SizeCap: 380, SameOrientation: false}
	opt := config.PairingOptions{FragmentMax: 400}
	results := Combinatorial(g, []*align.Alignment{anchor}, []*align.Alignment{near, far}, opt, model, 10)
	if len(results) == 0 {
		t.Fatal("expected at least one pairing result")
	}
	if !results[0].Consistent {
		t.Errorf("expected the top-scoring pairing to be the consistent one, got %+v", results[0])
	}
	if results[0].A2 != near {
		t.Errorf("expected the near, orientation-matching mate to win, got A2=%+v", results[0].A2)
	}
}

func TestCombinatorialHandlesUnmappedMate(t *testing.T) {
	g := testgraph.New()
	g.AddNode(1, make([]byte, 100))
	anchor := alignmentAt(0, 15, false)

	opt := config.PairingOptions{FragmentMax: 400}
	results := Combinatorial(g, []*align.Alignment{anchor}, nil, opt, Snapshot{}, 10)
	if len(results) != 1 {
		t.Fatalf("expected a single sentinel pairing against an unmapped mate, got %d", len(results))
	}
	if results[0].A2 != nil {
		t.Errorf("expected A2 to be nil for the unmapped-sentinel pairing")
	}
	if results[0].Score != 15 {
		t.Errorf("Score = %d, want 15 (anchor score plus zero for the unmapped mate)", results[0].Score)
	}
}

func TestCombinatorialRespectsMaxResults(t *testing.T) {
	g := testgraph.New()
	g.AddNode(1, make([]byte, 1000))

	var mate1, mate2 []*align.Alignment
	for i := 0; i < 5; i++ {
		mate1 = append(mate1, alignmentAt(uint32(i*10), 10, false))
		mate2 = append(mate2, alignmentAt(uint32(i*10+300), 10, true))
	}
	opt := config.PairingOptions{FragmentMax: 400}
	results := Combinatorial(g, mate1, mate2, opt, Snapshot{}, 3)
	if len(results) > 3 {
		t.Errorf("len(results) = %d, want at most 3 (maxResults)", len(results))
	}
}

func TestRescueUnmappedAnchorReturnsNil(t *testing.T) {
	g := testgraph.New()
	g.AddNode(1, []byte("ACGTACGTACGT"))
	aligner := dpaligner.NewAligner(dpaligner.DefaultOptions)

	rescued, err := Rescue(g, aligner, &align.Alignment{Unmapped: true}, []byte("ACGT"), Snapshot{}, config.PairingOptions{FragmentMax: 400}, memOptsForRescue())
	if err != nil {
		t.Fatal(err)
	}
	if rescued != nil {
		t.Errorf("expected Rescue to return nil for an anchor with no mapped position, got %+v", rescued)
	}
}

func TestRescueAlignsNearAnchor(t *testing.T) {
	g := testgraph.New()
	g.AddNode(1, []byte("ACGTACGTACGTACGTACGT"))
	aligner := dpaligner.NewAligner(dpaligner.DefaultOptions)

	anchor := alignmentAt(0, 20, false)
	rescued, err := Rescue(g, aligner, anchor, []byte("ACGTACGTACGT"), Snapshot{}, config.PairingOptions{FragmentMax: 40}, memOptsForRescue())
	if err != nil {
		t.Fatal(err)
	}
	if rescued == nil {
		t.Fatal("expected a rescue alignment against a subgraph anchored on the same node")
	}
	if rescued.Score <= 0 {
		t.Errorf("expected a positive rescue alignment score, got %d", rescued.Score)
	}
}

func memOptsForRescue() align.MEMOptions {
	return align.MEMOptions{
		Expansion:             1.5,
		SoftclipThreshold:     20,
		MaxSoftclipIterations: 2,
		ContextDepth:          20,
		Scoring:               config.ScoringOptions{Match: 1, Mismatch: 4, GapOpen: 6, GapExtension: 1, FullLengthBonus: 5},
	}
}
