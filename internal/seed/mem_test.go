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
	"testing"

	"github.com/gograph-align/gograph-align/internal/oracle/testgraph"
)

func linearGraph(seq []byte) *testgraph.Graph {
	g := testgraph.New()
	g.AddNode(1, seq)
	return g
}

func TestFindMEMsExactMatch(t *testing.T) {
	ref := []byte("ACGTACGTTGCA")
	g := linearGraph(ref)
	idx := testgraph.BuildFMIndex(g, 20)

	f, err := NewMEMFinder(idx, MEMOptions{MinMEMLength: 3, HitMax: 10})
	if err != nil {
		t.Fatal(err)
	}

	mems, err := f.FindMEMs(ref)
	if err != nil {
		t.Fatal(err)
	}
	if len(mems) == 0 {
		t.Fatal("expected at least one MEM for an exact self-match")
	}
	// mems must be sorted ascending by Begin.
	for i := 1; i < len(mems); i++ {
		if mems[i].Begin < mems[i-1].Begin {
			t.Fatalf("mems not sorted ascending by Begin: %+v", mems)
		}
	}
	var total int
	for _, m := range mems {
		total += m.Len()
	}
	if total < len(ref) {
		t.Errorf("MEM coverage %d shorter than read %d", total, len(ref))
	}
}

func TestFindMEMsRequiresIndex(t *testing.T) {
	if _, err := NewMEMFinder(nil, MEMOptions{}); err == nil {
		t.Fatal("expected error constructing a MEMFinder with a nil index")
	}
}

func TestFindMEMsEmptyRead(t *testing.T) {
	g := linearGraph([]byte("ACGT"))
	idx := testgraph.BuildFMIndex(g, 10)
	f, err := NewMEMFinder(idx, MEMOptions{MinMEMLength: 1})
	if err != nil {
		t.Fatal(err)
	}
	mems, err := f.FindMEMs(nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(mems) != 1 || mems[0].Begin != 0 || mems[0].End != 0 {
		t.Fatalf("expected a single zero-length MEM for an empty read, got %+v", mems)
	}
}

func TestReseedFastFindsSubMEMs(t *testing.T) {
	ref := []byte("ACGTACGTACGTTTTTGGGGCCCCAAAA")
	g := linearGraph(ref)
	idx := testgraph.BuildFMIndex(g, 30)

	f, err := NewMEMFinder(idx, MEMOptions{MinMEMLength: 3, ReseedLength: 5, MinSubMEMLength: 3, HitMax: 10})
	if err != nil {
		t.Fatal(err)
	}
	mems, err := f.FindMEMs(ref)
	if err != nil {
		t.Fatal(err)
	}

	found := false
	for i, m := range mems {
		if m.Len() < f.Opt.ReseedLength {
			continue
		}
		subs := f.ReseedFast(ref, mems, i)
		if len(subs) > 0 {
			found = true
		}
	}
	_ = found // sub-MEMs are not guaranteed to exist for every reference, but the call must not panic
}
