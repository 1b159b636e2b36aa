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
	"sort"

	"github.com/pkg/errors"

	"github.com/gograph-align/gograph-align/internal/config"
	"github.com/gograph-align/gograph-align/internal/dpaligner"
	"github.com/gograph-align/gograph-align/internal/oracle"
	"github.com/gograph-align/gograph-align/internal/seed"
)

// MEMOptions parameterizes MEM-path cluster alignment and patching.
type MEMOptions struct {
	Expansion             float64
	SoftclipThreshold     int
	MaxSoftclipIterations int
	ContextDepth          int
	BandWidth             int
	Scoring               config.ScoringOptions
}

// linearize concatenates a bounded subgraph's node sequences in ID order
// into one consensus reference string, recording the graph position each
// output byte corresponds to. This is the toy-graph-appropriate stand-in
// for a true POA-style multi-sequence graph aligner (SPEC_FULL.md §4.6):
// production implementations align directly against the graph topology,
// but a linear DP kernel needs a linearized coordinate space to run
// against, so node sequences are laid end to end in ID order.
func linearize(g oracle.Graph) ([]byte, []oracle.GraphPos, error) {
	b, ok := g.(oracle.Bounded)
	if !ok {
		return nil, nil, errors.New("align: subgraph view does not implement oracle.Bounded")
	}
	ids := append([]uint64(nil), b.NodeIDs()...)
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var seq []byte
	var path []oracle.GraphPos
	for _, id := range ids {
		s, err := g.NodeSequence(id)
		if err != nil {
			return nil, nil, err
		}
		for off := range s {
			path = append(path, oracle.GraphPos{NodeID: id, Offset: uint32(off)})
		}
		seq = append(seq, s...)
	}
	return seq, path, nil
}

// ExtractClusterSubgraph seeds a subgraph at the node of the first MEM's
// first hit and grows it with a single oracle.Graph.ExpandContext call. The
// depth is expansion·mems[0].Begin plus, for each MEM, expansion·max(mem_len,
// next.begin - this.begin), the last MEM using read_len - begin instead. The
// other MEMs' hit positions are not used as separate starting points, and
// the expansion is not split into a backward and a forward direction.
func ExtractClusterSubgraph(g oracle.Graph, mems []seed.MEM, readLen int, opt MEMOptions) (oracle.Graph, error) {
	if len(mems) == 0 || len(mems[0].Nodes) == 0 {
		return nil, errors.New("align: cluster has no anchored MEM positions")
	}
	first := mems[0].Nodes[0]
	sub, err := g.IDRange(first.NodeID, first.NodeID+1)
	if err != nil {
		return nil, errors.Wrap(err, "align: seeding cluster subgraph")
	}

	depth := int(opt.Expansion * float64(mems[0].Begin))
	for i, m := range mems {
		span := m.Len()
		if i+1 < len(mems) {
			if d := mems[i+1].Begin - m.Begin; d > span {
				span = d
			}
		} else {
			span = readLen - m.Begin
		}
		depth += int(opt.Expansion * float64(span))
	}
	if depth < 1 {
		depth = 1
	}
	return sub.ExpandContext(depth, false, nil)
}

// AlignCluster implements spec.md §4.6 steps 2-3 (direction polling and
// soft-clip widening) for the MEM front-end, producing a full Alignment.
func AlignCluster(g oracle.Graph, aligner *dpaligner.Aligner, read []byte, mems []seed.MEM, opt MEMOptions) (*Alignment, error) {
	fwdHits, revHits := 0, 0
	for _, m := range mems {
		for _, p := range m.Nodes {
			if p.IsReverse {
				revHits++
			} else {
				fwdHits++
			}
		}
	}

	sub, err := ExtractClusterSubgraph(g, mems, len(read), opt)
	if err != nil {
		return nil, err
	}

	var best *Alignment
	iterations := 0
	for {
		var candidate *Alignment
		if fwdHits > 0 {
			if a, err := alignLinearized(sub, aligner, read, false, opt); err == nil {
				candidate = betterOf(candidate, a)
			}
		}
		if revHits > 0 {
			if a, err := alignLinearized(sub, aligner, read, true, opt); err == nil {
				candidate = betterOf(candidate, a)
			}
		}
		if candidate == nil {
			return nil, errors.New("align: no direction produced an alignment")
		}

		improved := best == nil || candidate.Score > best.Score
		best = betterOf(best, candidate)

		clipped := best.LeftClip >= opt.SoftclipThreshold || best.RightClip >= opt.SoftclipThreshold
		iterations++
		if !clipped || !improved || iterations >= opt.MaxSoftclipIterations {
			break
		}
		widen := opt.ContextDepth
		sub, err = sub.ExpandContext(widen, false, nil)
		if err != nil {
			break
		}
	}

	best.Score = ScoreAlignment(best, g, opt.Scoring, len(read))
	best.Identity = Identity(best)
	return best, nil
}

func betterOf(a, b *Alignment) *Alignment {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	if b.Score > a.Score {
		return b
	}
	return a
}

// AlignSubgraph aligns read against an already-extracted subgraph and
// scores the result, for callers (mate rescue, band alignment) that build
// their own subgraph view rather than deriving one from a MEM chain.
func AlignSubgraph(g oracle.Graph, aligner *dpaligner.Aligner, read []byte, reverse bool, opt MEMOptions) (*Alignment, error) {
	a, err := alignLinearized(g, aligner, read, reverse, opt)
	if err != nil {
		return nil, err
	}
	a.Score = ScoreAlignment(a, g, opt.Scoring, len(read))
	a.Identity = Identity(a)
	return a, nil
}

func alignLinearized(g oracle.Graph, aligner *dpaligner.Aligner, read []byte, reverse bool, opt MEMOptions) (*Alignment, error) {
	refSeq, path, err := linearize(g)
	if err != nil {
		return nil, err
	}
	if len(refSeq) == 0 {
		return nil, errors.New("align: empty subgraph reference")
	}

	query := read
	if reverse {
		query = revcompBytes(read)
	}

	band := opt.BandWidth
	res := aligner.AlignBandedGlobal(refSeq, query, band)
	defer dpaligner.RecycleResult(res)

	mapPath := pathSlice(path, res.AStart, res.AEnd)
	a := &Alignment{
		Mappings:  []Mapping{{Path: mapPath, Edits: append([]dpaligner.Edit(nil), res.Edits...)}},
		Score:     res.Score,
		IsReverse: reverse,
		LeftClip:  res.BStart,
		RightClip: len(query) - res.BEnd,
	}
	return a, nil
}

func pathSlice(path []oracle.GraphPos, from, to int) []oracle.GraphPos {
	if from < 0 {
		from = 0
	}
	if to > len(path) {
		to = len(path)
	}
	if from >= to {
		return nil
	}
	return append([]oracle.GraphPos(nil), path[from:to]...)
}

var revcompComplement = map[byte]byte{
	'A': 'T', 'C': 'G', 'G': 'C', 'T': 'A',
	'a': 't', 'c': 'g', 'g': 'c', 't': 'a',
}

func revcompBytes(seq []byte) []byte {
	out := make([]byte, len(seq))
	for i, b := range seq {
		c, ok := revcompComplement[b]
		if !ok {
			c = b
		}
		out[len(seq)-1-i] = c
	}
	return out
}
