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
	"sort"

	"github.com/gograph-align/gograph-align/internal/align"
	"github.com/gograph-align/gograph-align/internal/config"
	"github.com/gograph-align/gograph-align/internal/dpaligner"
	"github.com/gograph-align/gograph-align/internal/oracle"
)

// PairResult is one candidate pairing of a mate-1 and mate-2 alignment.
// Either alignment may be nil (unmapped-sentinel pairing).
type PairResult struct {
	A1, A2     *align.Alignment
	Score      int
	Consistent bool
}

func alignmentPos(a *align.Alignment) (oracle.GraphPos, bool) {
	if a == nil || len(a.Mappings) == 0 || len(a.Mappings[0].Path) == 0 {
		return oracle.GraphPos{}, false
	}
	return a.Mappings[0].Path[0], true
}

// Consistent reports whether a pair is consistent: (a) the graph distance
// (MinPathDistance) from a1's first position to a2's first position lies in
// [1, mean+stdev) when the model is ready, or in [1, fragmentMax) otherwise;
// and (b) when the model is ready, the pair's orientation matches its
// SameOrientation flag. The alignments' positions along reference paths are
// not consulted.
func Consistent(g oracle.Graph, a1, a2 *align.Alignment, model Snapshot, fragmentMax float64) bool {
	p1, ok1 := alignmentPos(a1)
	p2, ok2 := alignmentPos(a2)
	if !ok1 || !ok2 {
		return false
	}

	hi := fragmentMax
	if model.Ready {
		hi = model.Mean + model.Stdev
	}
	dist := g.MinPathDistance(p1, p2, int64(hi)+1)
	if dist < 1 || float64(dist) >= hi {
		return false
	}

	if model.Ready && (a1.IsReverse == a2.IsReverse) != model.SameOrientation {
		return false
	}
	return true
}

// Combinatorial implements spec.md §4.10's combinatorial strategy: cross
// every mate-1 candidate with every mate-2 candidate (including
// unmapped-sentinel pairings), score additively with a consistency bonus,
// dedupe by mate start positions, and keep the top maxResults
// (max_multimaps + extra_multimaps).
func Combinatorial(g oracle.Graph, mate1, mate2 []*align.Alignment, opt config.PairingOptions, model Snapshot, maxResults int) []PairResult {
	if len(mate1) == 0 {
		mate1 = []*align.Alignment{nil}
	}
	if len(mate2) == 0 {
		mate2 = []*align.Alignment{nil}
	}

	var results []PairResult
	for _, a1 := range mate1 {
		for _, a2 := range mate2 {
			score := scoreOf(a1) + scoreOf(a2)
			consistent := Consistent(g, a1, a2, model, opt.FragmentMax)
			if consistent {
				score += consistencyBonus(g, a1, a2, model)
			}
			results = append(results, PairResult{A1: a1, A2: a2, Score: score, Consistent: consistent})
		}
	}

	sort.Slice(results, func(i, j int) bool { return results[i].Score > results[j].Score })
	results = dedupeByStart(results)

	if maxResults > 0 && len(results) > maxResults {
		results = results[:maxResults]
	}
	return results
}

func scoreOf(a *align.Alignment) int {
	if a == nil {
		return 0
	}
	return a.Score
}

func consistencyBonus(g oracle.Graph, a1, a2 *align.Alignment, model Snapshot) int {
	if !model.Ready {
		return 0
	}
	p1, ok1 := alignmentPos(a1)
	p2, ok2 := alignmentPos(a2)
	if !ok1 || !ok2 {
		return 0
	}
	dist := g.MinPathDistance(p1, p2, int64(model.SizeCap)+1)
	if dist < 0 {
		return 0
	}
	ratio := pdfRatioNormal(float64(dist), model.Mean, model.Stdev)
	return int(ratio * 10)
}

func dedupeByStart(results []PairResult) []PairResult {
	seen := map[[2]oracle.GraphPos]bool{}
	var out []PairResult
	for _, r := range results {
		p1, _ := alignmentPos(r.A1)
		p2, _ := alignmentPos(r.A2)
		key := [2]oracle.GraphPos{p1, p2}
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, r)
	}
	return out
}

// Rescue aligns a mate near an anchor alignment: it grows a subgraph around
// the anchor's first node by fragment stdev·6 + read length (fragment_max +
// read length while the model is not ready), picks the rescue read's strand
// from the anchor's strand and the model's orientation flag, and aligns. The
// partner's position is not predicted from the model's mean, and the result
// is returned whatever its score; it is not compared with any prior
// alignment.
func Rescue(g oracle.Graph, aligner *dpaligner.Aligner, anchor *align.Alignment, mateRead []byte, model Snapshot, opt config.PairingOptions, memOpt align.MEMOptions) (*align.Alignment, error) {
	p, ok := alignmentPos(anchor)
	if !ok {
		return nil, nil
	}

	depth := int(model.Stdev*6) + len(mateRead)
	if !model.Ready {
		depth = int(opt.FragmentMax) + len(mateRead)
	}

	sub, err := g.IDRange(p.NodeID, p.NodeID+1)
	if err != nil {
		return nil, err
	}
	sub, err = sub.ExpandContext(depth, false, nil)
	if err != nil {
		return nil, err
	}

	reverse := anchor.IsReverse
	if model.Ready {
		reverse = anchor.IsReverse == model.SameOrientation
	}

	rescued, err := align.AlignSubgraph(sub, aligner, mateRead, reverse, memOpt)
	if err != nil {
		return nil, err
	}
	return rescued, nil
}
