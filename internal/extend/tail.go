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
	"github.com/gograph-align/gograph-align/internal/dpaligner"
	"github.com/gograph-align/gograph-align/internal/oracle"
)

// maxTailPaths bounds the tail forest's branching so a highly connected
// region of the graph cannot blow up DFS into an exponential walk.
const maxTailPaths = 32

// LongestDetectableGap implements SPEC_FULL.md's supplemented formula
// (read from original_source, ported from the C++ gap-detection budget):
// the longest indel a tail alignment could still plausibly discover, given
// how much score a perfect match over the tail would earn.
func LongestDetectableGap(tailLen int, opt Options) int {
	if opt.GapExtension <= 0 {
		return 0
	}
	match := opt.Match
	if match == 0 {
		match = 1
	}
	budget := tailLen * match
	gap := (budget - opt.GapOpen) / opt.GapExtension
	if gap < 0 {
		gap = 0
	}
	return gap
}

// TailPath is one root-to-frontier walk collected by the tail forest DFS,
// with its concatenated forward-strand sequence.
type TailPath struct {
	Nodes []oracle.GraphPos
	Seq   []byte
}

// collectTailForest DFS-walks haplotype paths out of boundary to a target
// length of maxLen bases (spec.md §4.5 step 4), returning at most
// maxTailPaths distinct walks.
func collectTailForest(g oracle.Graph, boundary oracle.GraphPos, maxLen int) []TailPath {
	var out []TailPath
	var dfs func(pos oracle.GraphPos, nodes []oracle.GraphPos, seq []byte)
	dfs = func(pos oracle.GraphPos, nodes []oracle.GraphPos, seq []byte) {
		if len(out) >= maxTailPaths {
			return
		}
		if len(seq) >= maxLen {
			out = append(out, TailPath{Nodes: append([]oracle.GraphPos{}, nodes...), Seq: append([]byte{}, seq...)})
			return
		}
		nexts, err := g.NextPositions(pos, true)
		if err != nil || len(nexts) == 0 {
			out = append(out, TailPath{Nodes: append([]oracle.GraphPos{}, nodes...), Seq: append([]byte{}, seq...)})
			return
		}
		for _, next := range nexts {
			nseq, err := g.NodeSequence(next.NodeID)
			if err != nil {
				continue
			}
			base := nseq
			if next.IsReverse {
				base = revcomp(nseq)
			}
			dfs(next, append(nodes, next), append(seq, base...))
			if len(out) >= maxTailPaths {
				return
			}
		}
	}
	dfs(boundary, nil, nil)
	return out
}

func revcomp(seq []byte) []byte {
	out := make([]byte, len(seq))
	for i, b := range seq {
		c, ok := complement[b]
		if !ok {
			c = b
		}
		out[len(seq)-1-i] = c
	}
	return out
}

func reverseBytes(b []byte) []byte {
	out := make([]byte, len(b))
	for i, c := range b {
		out[len(b)-1-i] = c
	}
	return out
}

// TailAlignment is the best-scoring tail path found for one side (left or
// right) of an extension boundary.
type TailAlignment struct {
	Result *dpaligner.Result
	Path   TailPath
}

// AlignTail implements spec.md §4.5 step 4's per-side DP: for a right tail,
// align tailSeq (the read suffix past the extension) pinned-left against
// each forest path's forward sequence; for a left tail, reverse-complement
// both the missing sequence and the walk so the aligner can still pin
// left, matching the spec's "reverse-complement when pinning right" rule.
func AlignTail(aligner *dpaligner.Aligner, g oracle.Graph, boundary oracle.GraphPos, tailSeq []byte, isLeft bool, opt Options) *TailAlignment {
	if len(tailSeq) == 0 {
		return nil
	}
	maxLen := len(tailSeq) + LongestDetectableGap(len(tailSeq), opt)

	var forest []TailPath
	query := tailSeq
	if isLeft {
		revLen, err := g.NodeLength(boundary.NodeID)
		if err != nil {
			return nil
		}
		forest = collectTailForest(g, boundary.Reverse(revLen), maxLen)
		query = reverseBytes(complementSeq(tailSeq))
	} else {
		forest = collectTailForest(g, boundary, maxLen)
	}

	var best *TailAlignment
	for _, path := range forest {
		res := aligner.AlignPinnedLeft(query, path.Seq)
		if best == nil || res.Score > best.Result.Score {
			if best != nil {
				dpaligner.RecycleResult(best.Result)
			}
			best = &TailAlignment{Result: res, Path: path}
		} else {
			dpaligner.RecycleResult(res)
		}
	}
	return best
}

func complementSeq(seq []byte) []byte {
	out := make([]byte, len(seq))
	for i, b := range seq {
		c, ok := complement[b]
		if !ok {
			c = b
		}
		out[i] = c
	}
	return out
}
