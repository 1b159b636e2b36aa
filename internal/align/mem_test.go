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

import (
	"testing"

	"github.com/gograph-align/gograph-align/internal/config"
	"github.com/gograph-align/gograph-align/internal/dpaligner"
	"github.com/gograph-align/gograph-align/internal/oracle"
	"github.com/gograph-align/gograph-align/internal/oracle/testgraph"
	"github.com/gograph-align/gograph-align/internal/seed"
)

func memOpts() MEMOptions {
	return MEMOptions{
		Expansion:             1.5,
		SoftclipThreshold:     20,
		MaxSoftclipIterations: 2,
		ContextDepth:          20,
		BandWidth:             0,
		Scoring:               config.ScoringOptions{Match: 1, Mismatch: 4, GapOpen: 6, GapExtension: 1, FullLengthBonus: 5},
	}
}

func TestExtractClusterSubgraphIncludesAnchor(t *testing.T) {
	g := testgraph.New()
	g.AddNode(1, []byte("ACGTACGTACGT"))
	g.AddNode(2, []byte("TTTTGGGGCCCC"))
	g.AddEdge(1, 2)

	mems := []seed.MEM{
		{Begin: 0, End: 6, Nodes: []oracle.GraphPos{{NodeID: 1, Offset: 0}}},
	}
	sub, err := ExtractClusterSubgraph(g, mems, 12, memOpts())
	if err != nil {
		t.Fatal(err)
	}
	b, ok := sub.(oracle.Bounded)
	if !ok {
		t.Fatal("expected the returned subgraph to implement oracle.Bounded")
	}
	if !b.HasNode(1) {
		t.Error("expected the seeding node 1 to be included in the subgraph")
	}
}

func TestExtractClusterSubgraphRejectsEmptyMEMs(t *testing.T) {
	g := testgraph.New()
	g.AddNode(1, []byte("ACGT"))
	if _, err := ExtractClusterSubgraph(g, nil, 4, memOpts()); err == nil {
		t.Fatal("expected an error extracting a subgraph from zero MEMs")
	}
}

func TestAlignClusterExactMatch(t *testing.T) {
	g := testgraph.New()
	g.AddNode(1, []byte("ACGTACGTACGT"))
	read := []byte("ACGTACGTACGT")

	mems := []seed.MEM{
		{Begin: 0, End: 12, MatchCount: 1, Nodes: []oracle.GraphPos{{NodeID: 1, Offset: 0}}},
	}
	aligner := dpaligner.NewAligner(dpOptions(memOpts().Scoring))

	a, err := AlignCluster(g, aligner, read, mems, memOpts())
	if err != nil {
		t.Fatal(err)
	}
	if a.LeftClip != 0 || a.RightClip != 0 {
		t.Errorf("expected an unclipped exact alignment, got LeftClip=%d RightClip=%d", a.LeftClip, a.RightClip)
	}
	if a.Identity != 1.0 {
		t.Errorf("Identity = %v, want 1.0 for an exact match", a.Identity)
	}
}

func TestAlignSubgraphReverseStrand(t *testing.T) {
	g := testgraph.New()
	g.AddNode(1, []byte("ACGT"))
	aligner := dpaligner.NewAligner(dpOptions(memOpts().Scoring))

	a, err := AlignSubgraph(g, aligner, []byte("ACGT"), true, memOpts())
	if err != nil {
		t.Fatal(err)
	}
	if a.Score <= 0 {
		t.Errorf("expected a positive score for an exact-match subgraph alignment, got %d", a.Score)
	}
}
