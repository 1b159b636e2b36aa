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
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/gograph-align/gograph-align/internal/oracle"
)

// vertexWeight is the chaining heuristic's own notion of a seed's intrinsic
// value, grounded in the teacher's seedWeight (lexicmap/cmd/lib-chaining.go):
// quadratic in match length, favoring long unambiguous anchors over strings
// of short ones.
func vertexWeight(l int) float64 {
	f := float64(l)
	return 0.1 * f * f
}

// pdfRatio scores an observed fragment distance against a Normal(mean,
// sigma) model as a likelihood ratio against the mode (spec.md §4.3:
// "pdf(dist)/pdf(mean)").
func pdfRatio(dist, mean, sigma float64) float64 {
	if sigma <= 0 {
		sigma = 1
	}
	d := distuv.Normal{Mu: mean, Sigma: sigma}
	denom := d.Prob(mean)
	if denom == 0 {
		return 0
	}
	return d.Prob(dist) / denom
}

// transitionWeight implements spec.md §4.3's transition_weight(a, b).
func transitionWeight(a, b *vertex, aPos, bPos oracle.GraphPos, g oracle.Graph, opt ChainingOptions) float64 {
	negInf := math.Inf(-1)

	if a.fragment != b.fragment {
		// cross-fragment (paired) transition: constrained by the fragment
		// model.
		cap64 := int64(opt.FragmentMax)
		if cap64 <= 0 {
			cap64 = int64(opt.ReadLength) * 4
		}
		d := g.MinPathDistance(aPos, bPos, cap64)
		if d < 0 || float64(d) > opt.FragmentMax {
			return negInf
		}
		if opt.FragmentMean <= 0 {
			dd := float64(d)
			if dd < 1 {
				dd = 1
			}
			return 1.0 / dd
		}
		return pdfRatio(float64(d), opt.FragmentMean, opt.FragmentSigma)
	}

	// same fragment.
	if b.begin() < a.begin() {
		return negInf // b precedes a in fragment order
	}
	if a.isReverse != b.isReverse {
		return negInf // orientation mismatch
	}

	approxDist := b.approxPos - a.approxPos
	if approxDist < 0 {
		approxDist = -approxDist
	}
	if opt.ReadLength > 0 && approxDist > int64(opt.ReadLength) {
		return negInf
	}

	dist := g.MinPathDistance(aPos, bPos, int64(opt.BandWidth)*4+approxDist+1)
	if dist < 0 {
		dist = approxDist
	}

	overlap := 0
	if lo, hi := max(a.begin(), b.begin()), min(a.end(), b.end()); hi > lo {
		overlap = hi - lo
	}
	uniqueCov := (b.end() - b.begin()) - overlap
	if uniqueCov < 0 {
		uniqueCov = 0
	}

	denom := float64(a.mem.MatchCount + b.mem.MatchCount)
	if denom <= 0 {
		denom = 2
	}
	reward := float64(uniqueCov) * opt.Match * (2.0 / denom)

	jump := math.Abs(float64(b.begin()-a.begin()) - float64(dist))
	if jump > 0 {
		reward -= opt.GapOpen + jump*opt.GapExtension
	}
	return reward
}
