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
	"math"

	"github.com/twotwotwo/sorts"
	"github.com/zeebo/wyhash"

	"github.com/gograph-align/gograph-align/internal/oracle"
)

// MinimizerOptions parameterizes FindSeeds, mirroring config.SeedOptions.
type MinimizerOptions struct {
	HitCap             int
	HardHitCap         int
	ScoreFraction      float64
}

// MinimizerFinder runs the minimizer-based front end (spec.md §4.2) against
// a minimizer-index oracle.
type MinimizerFinder struct {
	Index oracle.MinimizerIndex
	Opt   MinimizerOptions
}

// NewMinimizerFinder constructs a MinimizerFinder.
func NewMinimizerFinder(index oracle.MinimizerIndex, opt MinimizerOptions) *MinimizerFinder {
	return &MinimizerFinder{Index: index, Opt: opt}
}

// SeedSelection records the accept/reject decision for one minimizer, kept
// for the diagnostic channel SPEC_FULL.md §10 calls for.
type SeedSelection struct {
	MinimizerIndex int
	Key            uint64
	Hits           uint64
	Score          float64
	Accepted       bool
	Reason         string
}

// scoreOf implements spec.md §4.2 step 2's scoring function.
func scoreOf(hits uint64, hardCap int) float64 {
	if hits == 0 || hits > uint64(hardCap) {
		return 1.0
	}
	return 1 + math.Log(float64(hardCap)) - math.Log(float64(hits))
}

// hashKey gives every unique minimizer key a fast, well-distributed sort
// tiebreaker so that minimizers of equal score are processed in a stable,
// pseudo-random rather than key-magnitude order (avoiding a systematic
// bias toward numerically small k-mer encodings).
func hashKey(key uint64) uint64 {
	var b [8]byte
	for i := 0; i < 8; i++ {
		b[i] = byte(key >> (8 * i))
	}
	return wyhash.Hash(b[:], 0)
}

// uniq tallies one distinct minimizer key's occurrence indices, hit count,
// and score before the hit-cap/hard-cap/score-fraction selection rule runs.
type uniq struct {
	idxs  []int
	hits  uint64
	score float64
}

// keysByScoreDesc sorts unique minimizer keys by descending score, breaking
// ties with hashKey so equal-score minimizers still get a deterministic,
// non-magnitude-biased processing order.
type keysByScoreDesc struct {
	keys []uint64
	byKey map[uint64]*uniq
}

func (s keysByScoreDesc) Len() int      { return len(s.keys) }
func (s keysByScoreDesc) Swap(i, j int) { s.keys[i], s.keys[j] = s.keys[j], s.keys[i] }
func (s keysByScoreDesc) Less(i, j int) bool {
	si, sj := s.byKey[s.keys[i]].score, s.byKey[s.keys[j]].score
	if si != sj {
		return si > sj
	}
	return hashKey(s.keys[i]) < hashKey(s.keys[j])
}

// FindSeeds implements spec.md §4.2: compute minimizers, score and select
// them by the hit-cap/hard-cap/score-fraction rule, then materialize seeds
// from the accepted minimizers' occurrences.
func (f *MinimizerFinder) FindSeeds(read []byte) ([]oracle.Minimizer, []Seed, []int, []SeedSelection) {
	mins := f.Index.Minimizers(read)

	byKey := map[uint64]*uniq{}
	var order []uint64
	for i, m := range mins {
		if m.Key == oracle.NoKey {
			continue
		}
		u, ok := byKey[m.Key]
		if !ok {
			hits := f.Index.Count(m.Key)
			u = &uniq{hits: hits, score: scoreOf(hits, f.Opt.HardHitCap)}
			byKey[m.Key] = u
			order = append(order, m.Key)
		}
		u.idxs = append(u.idxs, i)
	}

	var total float64
	for _, k := range order {
		total += byKey[k].score
	}
	target := total * f.Opt.ScoreFraction

	sorts.Quicksort(keysByScoreDesc{keys: order, byKey: byKey})

	var seeds []Seed
	var sources []int
	var selections []SeedSelection
	var accumulated float64

	for _, key := range order {
		u := byKey[key]
		accept := false
		reason := ""
		switch {
		case u.hits == 0:
			reason = "no hits"
		case u.hits <= uint64(f.Opt.HitCap):
			accept = true
			reason = "within hit_cap"
		case u.hits <= uint64(f.Opt.HardHitCap) && accumulated+u.score <= target:
			accept = true
			reason = "within hard_hit_cap and score budget"
		default:
			reason = "exceeds hit caps / score budget"
		}

		for _, idx := range u.idxs {
			selections = append(selections, SeedSelection{
				MinimizerIndex: idx, Key: key, Hits: u.hits, Score: u.score,
				Accepted: accept, Reason: reason,
			})
		}

		if !accept {
			continue
		}
		accumulated += u.score

		hits := f.Index.Find(key)
		for _, minIdx := range u.idxs {
			m := mins[minIdx]
			for _, pos := range hits {
				// hits are already reported on the strand the minimizer
				// matched (see MinimizerIndex.Find contract).
				seeds = append(seeds, Seed{
					Pos:          pos,
					ReadOffset:   m.Offset,
					SourceKey:    uint32(key),
					KeyIsReverse: m.IsReverse,
				})
				sources = append(sources, minIdx)
			}
		}
	}

	return mins, seeds, sources, selections
}
