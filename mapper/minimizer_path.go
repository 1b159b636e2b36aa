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

package mapper

import (
	"github.com/gograph-align/gograph-align/internal/align"
	"github.com/gograph-align/gograph-align/internal/cluster"
	"github.com/gograph-align/gograph-align/internal/dpaligner"
	"github.com/gograph-align/gograph-align/internal/extend"
	"github.com/gograph-align/gograph-align/internal/oracle"
)

// mapViaMinimizers implements the minimizer-seed alternate front end
// (spec.md §4.2/§4.4/§4.5): find minimizer seeds, single-linkage cluster
// them by graph distance, gaplessly extend every seed in the best
// clusters, and patch each extension's uncovered flanks with tail-forest
// DP alignment. This runs whenever a minimizer index oracle is available,
// alongside the MEM front end, since spec.md §4.2 treats them as
// complementary rather than exclusive seed sources.
func (m *Mapper) mapViaMinimizers(w *worker, cg oracle.Graph, seq []byte) []*align.Alignment {
	if w.minFinder == nil {
		return nil
	}

	_, seeds, sources, selections := w.minFinder.FindSeeds(seq)
	if len(seeds) == 0 {
		return nil
	}

	scoreByMinIdx := make(map[int]float64, len(selections))
	for _, sel := range selections {
		if sel.Accepted {
			scoreByMinIdx[sel.MinimizerIndex] = sel.Score
		}
	}
	seedScores := make([]float64, len(seeds))
	for i, src := range sources {
		seedScores[i] = scoreByMinIdx[src]
	}

	clusterOpt := cluster.MinClusterOptions{
		DistanceLimit: m.Cfg.Cluster.DistanceLimit,
		K:             w.minFinder.Index.K(),
		ReadLength:    len(seq),
	}
	seedClusters := cluster.ClusterSeeds(cg, seeds, seedScores, clusterOpt)
	if len(seedClusters) == 0 {
		return nil
	}
	accepted, _, _ := cluster.SelectClusters(seedClusters, 1, 1, m.Cfg.MultiMap.MaxAttempts)

	eopt := extend.Options{
		MaxExtensions:              m.Cfg.Extend.MaxExtensions,
		MaxAlignments:              m.Cfg.Extend.MaxAlignments,
		ExtensionSetScoreThreshold: m.Cfg.Extend.ExtensionSetScoreThreshold,
		ExtensionScoreThreshold:    m.Cfg.Extend.ExtensionScoreThreshold,
		TailLength:                 m.Cfg.Extend.TailLength,
		Match:                      m.Cfg.Scoring.Match,
		Mismatch:                   m.Cfg.Scoring.Mismatch,
		GapOpen:                    m.Cfg.Scoring.GapOpen,
		GapExtension:               m.Cfg.Scoring.GapExtension,
	}
	maxMismatches := len(seq)/10 + 1

	var sets []extend.ExtensionSet
	for _, sc := range accepted {
		var exts []extend.GaplessExtension
		for _, si := range sc.SeedIdxs {
			s := seeds[si]
			exts = append(exts, extend.Extend(cg, seq, s.Pos, int(s.ReadOffset), maxMismatches))
		}
		if len(exts) == 0 {
			continue
		}
		sets = append(sets, extend.ExtensionSet{
			Extensions: exts,
			Estimate:   extend.EstimateScore(exts, len(seq), eopt),
		})
	}
	if len(sets) == 0 {
		return nil
	}
	sets = extend.SelectExtensionSets(sets, eopt)

	var alignments []*align.Alignment
	for _, set := range sets {
		a := m.patchExtensionSet(w, cg, seq, set, eopt)
		if a != nil {
			alignments = append(alignments, a)
		}
	}
	return alignments
}

// patchExtensionSet implements spec.md §4.5 step 4: pick the extension
// covering the most of the read as the anchor, then pad each uncovered
// flank with the best tail-forest alignment.
func (m *Mapper) patchExtensionSet(w *worker, g oracle.Graph, seq []byte, set extend.ExtensionSet, opt extend.Options) *align.Alignment {
	if len(set.Extensions) == 0 {
		return nil
	}
	anchor := set.Extensions[0]
	for _, e := range set.Extensions[1:] {
		if e.ReadEnd-e.ReadBegin > anchor.ReadEnd-anchor.ReadBegin {
			anchor = e
		}
	}
	if len(anchor.Path) == 0 {
		return nil
	}

	path := append([]oracle.GraphPos(nil), anchor.Path...)
	edits := gaplessEdits(anchor)
	score := anchor.Score
	leftClip, rightClip := anchor.ReadBegin, len(seq)-anchor.ReadEnd

	if anchor.ReadBegin > 0 {
		if ta := extend.AlignTail(w.aligner, g, path[0], seq[:anchor.ReadBegin], true, opt); ta != nil {
			leftPath := append([]oracle.GraphPos(nil), ta.Path.Nodes...)
			for i, j := 0, len(leftPath)-1; i < j; i, j = i+1, j-1 {
				leftPath[i], leftPath[j] = leftPath[j], leftPath[i]
			}
			path = append(leftPath, path...)
			edits = append(append([]dpaligner.Edit(nil), ta.Result.Edits...), edits...)
			score += ta.Result.Score
			leftClip = 0
			dpaligner.RecycleResult(ta.Result)
		}
	}
	if rightClip > 0 {
		if ta := extend.AlignTail(w.aligner, g, path[len(path)-1], seq[anchor.ReadEnd:], false, opt); ta != nil {
			path = append(path, ta.Path.Nodes...)
			edits = append(edits, ta.Result.Edits...)
			score += ta.Result.Score
			rightClip = 0
			dpaligner.RecycleResult(ta.Result)
		}
	}

	a := &align.Alignment{
		Mappings:  []align.Mapping{{Path: path, Edits: edits}},
		Score:     score,
		IsReverse: len(anchor.Path) > 0 && anchor.Path[0].IsReverse,
		LeftClip:  leftClip,
		RightClip: rightClip,
	}
	a.Score = align.ScoreAlignment(a, g, m.Cfg.Scoring, len(seq))
	a.Identity = align.Identity(a)
	return a
}

// gaplessEdits turns a mismatch-position list into a run-length edit list:
// a Match edit interrupted by a single-base Mismatch edit at each recorded
// offset. GaplessExtension.Mismatches holds absolute read offsets, so they
// are rebased against ReadBegin before walking the [0, n) run.
func gaplessEdits(e extend.GaplessExtension) []dpaligner.Edit {
	n := e.ReadEnd - e.ReadBegin
	if n <= 0 {
		return nil
	}
	mm := make(map[int]bool, len(e.Mismatches))
	for _, off := range e.Mismatches {
		mm[off-e.ReadBegin] = true
	}

	var edits []dpaligner.Edit
	runStart := 0
	for i := 0; i <= n; i++ {
		if i < n && !mm[i] {
			continue
		}
		if i > runStart {
			edits = append(edits, dpaligner.Edit{FromLen: i - runStart, ToLen: i - runStart})
		}
		if i < n {
			edits = append(edits, dpaligner.Edit{FromLen: 1, ToLen: 1, Replacement: []byte{'N'}})
		}
		runStart = i + 1
	}
	return edits
}
