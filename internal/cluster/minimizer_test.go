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

func TestClusterSeedsSingleLinkage(t *testing.T) {
	g := testgraph.New()
	g.AddNode(1, []byte("ACGTACGTACGTACGTACGTACGTACGTACGT"))
	g.AddPath("p", []oracle.GraphPos{{NodeID: 1}})

	seeds := []seed.Seed{
		{Pos: oracle.GraphPos{NodeID: 1, Offset: 0}, ReadOffset: 0, SourceKey: 1},
		{Pos: oracle.GraphPos{NodeID: 1, Offset: 5}, ReadOffset: 5, SourceKey: 2},
		{Pos: oracle.GraphPos{NodeID: 1, Offset: 30}, ReadOffset: 30, SourceKey: 3},
	}
	scores := []float64{1, 1, 1}

	clusters := ClusterSeeds(g, seeds, scores, MinClusterOptions{DistanceLimit: 10, K: 8, ReadLength: 40})
	if len(clusters) != 2 {
		t.Fatalf("expected 2 clusters (0,5 close; 30 far), got %d: %+v", len(clusters), clusters)
	}
}

func TestClusterSeedsEmpty(t *testing.T) {
	g := testgraph.New()
	g.AddNode(1, []byte("ACGT"))
	if c := ClusterSeeds(g, nil, nil, MinClusterOptions{}); c != nil {
		t.Fatalf("expected no clusters for empty seed input, got %v", c)
	}
}

func TestSelectClustersTopK(t *testing.T) {
	clusters := []SeedCluster{
		{Score: 10}, {Score: 8}, {Score: 1},
	}
	accepted, _, below := SelectClusters(clusters, 5, 1, 2)
	if len(accepted) != 2 {
		t.Fatalf("accepted = %v, want 2", accepted)
	}
	if len(below) != 1 {
		t.Fatalf("below = %v, want 1", below)
	}
}
