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

import "gonum.org/v1/gonum/stat/distuv"

// pdfRatioNormal scores an observed fragment distance against the model's
// Normal(mean, stdev) as a likelihood ratio against the mode, the same
// shape as the cluster package's cross-fragment transition weight.
func pdfRatioNormal(dist, mean, sigma float64) float64 {
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
