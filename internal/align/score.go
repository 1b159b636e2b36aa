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
	"github.com/gograph-align/gograph-align/internal/config"
	"github.com/gograph-align/gograph-align/internal/oracle"
)

// ScoreAlignment implements spec.md §4.8's score_alignment(A): walk the
// edits of every mapping in order, charge affine gap costs for indels
// (except leading/trailing insertions, which are soft clips already
// accounted for by LeftClip/RightClip), charge an inter-mapping gap
// estimate between adjacent mappings, clamp at zero, and add the
// full-length bonus once per unclipped end (so an end-to-end alignment
// earns it twice).
func ScoreAlignment(a *Alignment, g oracle.Graph, s config.ScoringOptions, readLen int) int {
	opt := dpOptions(s)
	score := 0

	for mi, m := range a.Mappings {
		for ei, e := range m.Edits {
			leading := mi == 0 && ei == 0
			trailing := mi == len(a.Mappings)-1 && ei == len(m.Edits)-1
			switch {
			case e.FromLen > 0 && e.ToLen > 0 && e.Replacement == nil:
				score += opt.Match * e.FromLen
			case e.FromLen > 0 && e.ToLen > 0 && e.Replacement != nil:
				score += opt.Mismatch * e.FromLen
			case e.FromLen == 0 && e.ToLen > 0:
				if leading || trailing {
					continue // soft clip, not a scored insertion
				}
				score += opt.GapOpen + e.ToLen*opt.GapExtension
			case e.ToLen == 0 && e.FromLen > 0:
				score += opt.GapOpen + e.FromLen*opt.GapExtension
			}
		}

		if mi+1 < len(a.Mappings) {
			end := lastPos(m)
			start := firstPos(a.Mappings[mi+1])
			dist := g.MinPathDistance(end, start, int64(readLen)*4+1)
			if dist > 0 {
				score += opt.GapOpen + int(dist)*opt.GapExtension
			}
		}
	}

	if score < 0 {
		score = 0
	}
	if score > 0 {
		if a.LeftClip == 0 {
			score += opt.FullLengthBonus
		}
		if a.RightClip == 0 {
			score += opt.FullLengthBonus
		}
	}
	return score
}

func firstPos(m Mapping) oracle.GraphPos {
	if len(m.Path) == 0 {
		return oracle.GraphPos{}
	}
	return m.Path[0]
}

func lastPos(m Mapping) oracle.GraphPos {
	if len(m.Path) == 0 {
		return oracle.GraphPos{}
	}
	return m.Path[len(m.Path)-1]
}

// Identity is the fraction of the aligned region (excluding clips) that is
// an exact match.
func Identity(a *Alignment) float64 {
	var matched, total int
	for _, m := range a.Mappings {
		for _, e := range m.Edits {
			l := e.FromLen
			if e.ToLen > l {
				l = e.ToLen
			}
			total += l
			if e.FromLen > 0 && e.ToLen > 0 && e.Replacement == nil {
				matched += e.FromLen
			}
		}
	}
	if total == 0 {
		return 0
	}
	return float64(matched) / float64(total)
}
