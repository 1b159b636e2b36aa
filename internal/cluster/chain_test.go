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

package cluster

import (
	"testing"

	"github.com/gograph-align/gograph-align/internal/oracle"
	"github.com/gograph-align/gograph-align/internal/oracle/testgraph"
	"github.com/gograph-align/gograph-align/internal/seed"
)

func buildChainGraph() *testgraph.Graph {
	g := testgraph.New()
	g.AddNode(1, []byte("ACGTACGTACGTACGTACGTACGTACGTACGTACGTACGT")) // 40bp
	return g
}

func TestChainsPicksCollinearMEMs(t *testing.T) {
	g := buildChainGraph()
	opt := ChainingOptions{
		BandWidth:      1000,
		MaxConnections: 30,
		ReadLength:     30,
		GapOpen:        2,
		GapExtension:   0.5,
		DropChain:      0.2,
		Match:          1,
	}
	c := NewChainer(g, opt)

	mems := []seed.MEM{
		{Begin: 0, End: 10, MatchCount: 1, Nodes: []oracle.GraphPos{{NodeID: 1, Offset: 0}}},
		{Begin: 10, End: 20, MatchCount: 1, Nodes: []oracle.GraphPos{{NodeID: 1, Offset: 10}}},
		{Begin: 20, End: 30, MatchCount: 1, Nodes: []oracle.GraphPos{{NodeID: 1, Offset: 20}}},
	}

	chains := c.Chains(mems, 4, false)
	if len(chains) == 0 {
		t.Fatal("expected at least one chain")
	}
	best := chains[0]
	if best.Coverage < 20 {
		t.Errorf("best chain coverage = %d, want close to full 30bp read coverage", best.Coverage)
	}
	if len(best.MEMs) < 2 {
		t.Errorf("expected the chainer to link multiple collinear MEMs, got %d", len(best.MEMs))
	}
}

func TestChainsEmptyInput(t *testing.T) {
	g := buildChainGraph()
	c := NewChainer(g, ChainingOptions{BandWidth: 100, ReadLength: 10})
	if chains := c.Chains(nil, 4, false); chains != nil {
		t.Fatalf("expected no chains for empty MEM input, got %v", chains)
	}
}

func TestPruneDropsMostlyOverlappingShorterChains(t *testing.T) {
	chains := []Chain{
		{MEMs: []seed.MEM{{Begin: 0, End: 5}}, Score: 5, Coverage: 5},
		{MEMs: []seed.MEM{{Begin: 0, End: 20}}, Score: 20, Coverage: 20},
	}
	out := prune(chains, ChainingOptions{DropChain: 0.5})
	if len(out) != 1 || out[0].Coverage != 20 {
		t.Fatalf("expected the fully-overlapped short chain dropped, got %+v", out)
	}
}
