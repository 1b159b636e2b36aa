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
	"testing"

	"github.com/gograph-align/gograph-align/internal/oracle"
	"github.com/gograph-align/gograph-align/internal/oracle/testgraph"
)

func TestExtendPerfectMatch(t *testing.T) {
	g := testgraph.New()
	g.AddNode(1, []byte("ACGTACGTACGT"))
	read := []byte("ACGTACGTACGT")

	e := Extend(g, read, oracle.GraphPos{NodeID: 1, Offset: 0}, 0, 2)
	if !e.Full(len(read)) {
		t.Fatalf("expected a full-length extension, got [%d,%d) of %d", e.ReadBegin, e.ReadEnd, len(read))
	}
	if len(e.Mismatches) != 0 {
		t.Errorf("expected no mismatches on an exact match, got %v", e.Mismatches)
	}
}

func TestExtendStopsAtMismatchBudget(t *testing.T) {
	g := testgraph.New()
	g.AddNode(1, []byte("AAAAAAAAAA"))
	read := []byte("AAAATAAAAA") // one mismatch at offset 4

	e := Extend(g, read, oracle.GraphPos{NodeID: 1, Offset: 0}, 0, 0)
	if e.ReadEnd > 4 {
		t.Fatalf("expected the walk to stop before the mismatch at offset 4 with a zero mismatch budget, got ReadEnd=%d", e.ReadEnd)
	}

	e2 := Extend(g, read, oracle.GraphPos{NodeID: 1, Offset: 0}, 0, 1)
	if !e2.Full(len(read)) {
		t.Fatalf("expected a full walk tolerating one mismatch, got [%d,%d)", e2.ReadBegin, e2.ReadEnd)
	}
	if len(e2.Mismatches) != 1 || e2.Mismatches[0] != 4 {
		t.Fatalf("expected a single mismatch recorded at absolute offset 4, got %v", e2.Mismatches)
	}
}

func TestExtendFromMiddleAnchor(t *testing.T) {
	g := testgraph.New()
	g.AddNode(1, []byte("ACGTACGTACGT"))
	read := []byte("ACGTACGTACGT")

	e := Extend(g, read, oracle.GraphPos{NodeID: 1, Offset: 6}, 6, 0)
	if !e.Full(len(read)) {
		t.Fatalf("expected walking both directions from the middle to cover the whole read, got [%d,%d)", e.ReadBegin, e.ReadEnd)
	}
}
