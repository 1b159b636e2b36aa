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

// Package dpaligner is the pluggable DP aligner capability set described in
// spec.md §9 ("deep inheritance of aligners"): {score_exact_match,
// score_mismatch, gap_params, align_banded_global, align_pinned_left,
// align_local}. SPEC_FULL.md treats a production DP kernel (e.g. a WFA
// implementation) as an external library call; this package is the minimal
// Gotoh affine-gap kernel the rest of the core is built and tested against,
// grounded on the teacher's Needleman-Wunsch aligner
// (lexicmap/index/align/nw.go) generalized from linear to affine gap
// costs and given banded/pinned/local variants.
package dpaligner

import "sync"

// Pointer records which of the three Gotoh matrices (and which move) a
// cell's optimum came from.
type Pointer uint8

const (
	None Pointer = iota
	Match
	Mismatch
	GapInA       // a gap in sequence A (consumes b, i.e. an insertion relative to A)
	GapInB       // a gap in sequence B (consumes a, i.e. a deletion relative to A)
	GapInAOpen   // Iy cell opened from M (traceback returns to the M matrix)
	GapInAExtend // Iy cell extended from Iy (traceback stays in the Iy matrix)
	GapInBOpen   // Ix cell opened from M
	GapInBExtend // Ix cell extended from Ix
)

// Options is the scoring policy (spec.md §4.8): affine gap costs plus a
// full-length bonus that callers add once for each end of an alignment
// that is not clipped.
type Options struct {
	Match           int
	Mismatch        int
	GapOpen         int
	GapExtension    int
	FullLengthBonus int
}

// DefaultOptions mirrors config.Default's ScoringOptions.
var DefaultOptions = Options{
	Match:           1,
	Mismatch:        -4,
	GapOpen:         -6,
	GapExtension:    -1,
	FullLengthBonus: 5,
}

// Edit is one contiguous edit operation, matching spec.md's Edit type.
type Edit struct {
	FromLen     int // bases consumed from the reference/graph side
	ToLen       int // bases consumed from the read side
	Replacement []byte
}

// Result is the outcome of a DP alignment: a CIGAR-like edit list from a
// (the reference/graph string) to b (the read string), plus the score.
type Result struct {
	Score   int
	Edits   []Edit
	AEnd    int // exclusive end offset reached in a (for pinned/local)
	BEnd    int // exclusive end offset reached in b
	AStart  int
	BStart  int
}

// Aligner implements Global (banded), PinnedLeft, and Local alignment,
// reusing its score/pointer buffers across calls the way the teacher's
// Aligner reuses alg.scores/alg.pointers.
type Aligner struct {
	Options Options

	m, ix, iy       []int
	pm, pix, piy    []Pointer
}

var poolResult = &sync.Pool{New: func() interface{} { return &Result{} }}

// NewAligner constructs an Aligner with the given scoring policy.
func NewAligner(opt Options) *Aligner {
	return &Aligner{Options: opt}
}

// RecycleResult returns r to the pool. Callers that keep a Result beyond
// the current read must not call this.
func RecycleResult(r *Result) {
	r.Score = 0
	r.Edits = r.Edits[:0]
	poolResult.Put(r)
}

func (alg *Aligner) ensure(n int) {
	if cap(alg.m) < n {
		grow := n - cap(alg.m)
		alg.m = append(alg.m, make([]int, grow)...)
		alg.ix = append(alg.ix, make([]int, grow)...)
		alg.iy = append(alg.iy, make([]int, grow)...)
		alg.pm = append(alg.pm, make([]Pointer, grow)...)
		alg.pix = append(alg.pix, make([]Pointer, grow)...)
		alg.piy = append(alg.piy, make([]Pointer, grow)...)
	}
	alg.m = alg.m[:n]
	alg.ix = alg.ix[:n]
	alg.iy = alg.iy[:n]
	alg.pm = alg.pm[:n]
	alg.pix = alg.pix[:n]
	alg.piy = alg.piy[:n]
}

const negInf = -1 << 30

func idx(i, j, w int) int { return i*w + j }

// mode selects the boundary conditions and traceback stop rule shared by
// the three public entry points.
type mode int

const (
	modeGlobal mode = iota
	modePinnedLeft
	modeLocal
)

// AlignBandedGlobal performs global alignment of a against b, restricting
// the DP to a band of the given half-width around the main diagonal (band
// <= 0 means unbounded). Both ends of both sequences must align.
func (alg *Aligner) AlignBandedGlobal(a, b []byte, band int) *Result {
	return alg.run(a, b, band, modeGlobal)
}

// AlignPinnedLeft aligns a against b such that the alignment must begin at
// (0,0) but may end anywhere along the last row or column reached with
// maximum score (a "semi-global"/glocal alignment), used for tail
// extension where the graph side may run out before the read does or vice
// versa. Callers wanting a right-pinned alignment reverse both sequences
// first (spec.md §4.5).
func (alg *Aligner) AlignPinnedLeft(a, b []byte) *Result {
	return alg.run(a, b, 0, modePinnedLeft)
}

// AlignLocal performs Smith-Waterman local alignment, returning the
// highest-scoring substring pair.
func (alg *Aligner) AlignLocal(a, b []byte) *Result {
	return alg.run(a, b, 0, modeLocal)
}

func (alg *Aligner) run(a, b []byte, band int, md mode) *Result {
	h := len(a) + 1
	w := len(b) + 1
	alg.ensure(h * w)

	match := alg.Options.Match
	mismatch := alg.Options.Mismatch
	gapOpen := alg.Options.GapOpen
	gapExt := alg.Options.GapExtension

	inBand := func(i, j int) bool {
		if band <= 0 {
			return true
		}
		d := i - j
		if d < 0 {
			d = -d
		}
		return d <= band
	}

	m, ix, iy := alg.m, alg.ix, alg.iy
	pm, pix, piy := alg.pm, alg.pix, alg.piy

	for i := 0; i < h; i++ {
		for j := 0; j < w; j++ {
			k := idx(i, j, w)
			if !inBand(i, j) {
				m[k], ix[k], iy[k] = negInf, negInf, negInf
				continue
			}
			switch {
			case i == 0 && j == 0:
				m[k] = 0
				ix[k], iy[k] = negInf, negInf
				pm[k] = None
			case i == 0:
				iy[k] = gapOpen + gapExt*j
				ix[k] = negInf
				if md == modeLocal {
					m[k] = 0
				} else if md == modePinnedLeft {
					m[k] = negInf
				} else {
					m[k] = iy[k]
				}
				piy[k] = GapInAOpen
			case j == 0:
				ix[k] = gapOpen + gapExt*i
				iy[k] = negInf
				if md == modeLocal {
					m[k] = 0
				} else if md == modePinnedLeft {
					m[k] = negInf
				} else {
					m[k] = ix[k]
				}
				pix[k] = GapInBOpen
			default:
				diagScore := mismatch
				pd := Mismatch
				if a[i-1] == b[j-1] {
					diagScore = match
					pd = Match
				}
				prevDiag := m[idx(i-1, j-1, w)]
				bestDiag := prevDiag
				if md != modeLocal || bestDiag > negInf {
					bestDiag += diagScore
				}

				// Ix: gap in B, consumes a[i-1] (vertical move).
				openX := m[idx(i-1, j, w)] + gapOpen + gapExt
				extX := ix[idx(i-1, j, w)] + gapExt
				if openX >= extX {
					ix[k], pix[k] = openX, GapInBOpen
				} else {
					ix[k], pix[k] = extX, GapInBExtend
				}

				// Iy: gap in A, consumes b[j-1] (horizontal move).
				openY := m[idx(i, j-1, w)] + gapOpen + gapExt
				extY := iy[idx(i, j-1, w)] + gapExt
				if openY >= extY {
					iy[k], piy[k] = openY, GapInAOpen
				} else {
					iy[k], piy[k] = extY, GapInAExtend
				}

				best, bp := bestDiag, pd
				if ix[k] > best {
					best, bp = ix[k], GapInB
				}
				if iy[k] > best {
					best, bp = iy[k], GapInA
				}
				if md == modeLocal && best < 0 {
					best, bp = 0, None
				}
				m[k], pm[k] = best, bp
			}
		}
	}

	alg.m, alg.ix, alg.iy = m, ix, iy
	alg.pm, alg.pix, alg.piy = pm, pix, piy

	ei, ej, score := alg.chooseEnd(a, b, h, w, md)
	return alg.traceback(a, b, w, ei, ej, score, md)
}

// chooseEnd picks the traceback start cell per mode: bottom-right for
// global, the best-scoring cell in the last row/column for pinned-left,
// the single best cell anywhere for local.
func (alg *Aligner) chooseEnd(a, b []byte, h, w int, md mode) (int, int, int) {
	switch md {
	case modeGlobal:
		i, j := h-1, w-1
		return i, j, alg.m[idx(i, j, w)]
	case modeLocal:
		best, bi, bj := 0, 0, 0
		for i := 0; i < h; i++ {
			for j := 0; j < w; j++ {
				if v := alg.m[idx(i, j, w)]; v > best {
					best, bi, bj = v, i, j
				}
			}
		}
		return bi, bj, best
	default: // modePinnedLeft
		best, bi, bj := negInf, h-1, w-1
		for j := 0; j < w; j++ {
			if v := alg.m[idx(h-1, j, w)]; v > best {
				best, bi, bj = v, h-1, j
			}
		}
		for i := 0; i < h; i++ {
			if v := alg.m[idx(i, w-1, w)]; v > best {
				best, bi, bj = v, i, w-1
			}
		}
		return bi, bj, best
	}
}

func (alg *Aligner) traceback(a, b []byte, w, i, j, score int, md mode) *Result {
	r := poolResult.Get().(*Result)
	r.Score = score
	r.Edits = r.Edits[:0]
	r.AEnd, r.BEnd = i, j

	inM := true // false while walking the Ix (GapInB) or Iy (GapInA) matrix

	pushEdit := func(fromLen, toLen int, repl []byte) {
		r.Edits = append(r.Edits, Edit{FromLen: fromLen, ToLen: toLen, Replacement: repl})
	}

	var walkingIx bool // which non-M matrix we're currently in, once inM is false

	for i > 0 || j > 0 {
		if md == modeLocal && inM && alg.m[idx(i, j, w)] == 0 {
			break
		}
		if inM {
			switch alg.pm[idx(i, j, w)] {
			case Match:
				pushEdit(1, 1, nil)
				i--
				j--
			case Mismatch:
				pushEdit(1, 1, []byte{b[j-1]})
				i--
				j--
			case GapInB:
				inM, walkingIx = false, true
			case GapInA:
				inM, walkingIx = false, false
			case None:
				i, j = 0, 0
			}
			continue
		}
		if walkingIx {
			pushEdit(1, 0, nil)
			p := alg.pix[idx(i, j, w)]
			i--
			if p == GapInBOpen {
				inM = true
			}
			continue
		}
		pushEdit(0, 1, []byte{b[j-1]})
		p := alg.piy[idx(i, j, w)]
		j--
		if p == GapInAOpen {
			inM = true
		}
	}
	r.AStart, r.BStart = i, j

	// reverse edits and merge adjacent same-kind ops into single edits with
	// concatenated replacements, matching spec.md's Edit granularity.
	for l, rr := 0, len(r.Edits)-1; l < rr; l, rr = l+1, rr-1 {
		r.Edits[l], r.Edits[rr] = r.Edits[rr], r.Edits[l]
	}
	r.Edits = mergeEdits(r.Edits)
	return r
}

func mergeEdits(edits []Edit) []Edit {
	var out []Edit
	for _, e := range edits {
		if len(out) > 0 {
			last := &out[len(out)-1]
			sameShape := (last.FromLen > 0) == (e.FromLen > 0) && (last.ToLen > 0) == (e.ToLen > 0)
			if sameShape && last.FromLen > 0 && last.ToLen > 0 && last.Replacement == nil && e.Replacement == nil {
				last.FromLen += e.FromLen
				last.ToLen += e.ToLen
				continue
			}
			if sameShape && last.FromLen == 1 && last.ToLen == 1 && last.Replacement != nil && e.Replacement != nil {
				last.FromLen += e.FromLen
				last.ToLen += e.ToLen
				last.Replacement = append(last.Replacement, e.Replacement...)
				continue
			}
			if sameShape && last.FromLen == 0 && e.FromLen == 0 {
				last.ToLen += e.ToLen
				last.Replacement = append(last.Replacement, e.Replacement...)
				continue
			}
			if sameShape && last.ToLen == 0 && e.ToLen == 0 {
				last.FromLen += e.FromLen
				continue
			}
		}
		ne := Edit{FromLen: e.FromLen, ToLen: e.ToLen}
		if e.Replacement != nil {
			ne.Replacement = append([]byte(nil), e.Replacement...)
		}
		out = append(out, ne)
	}
	return out
}
