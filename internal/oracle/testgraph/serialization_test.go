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

package testgraph

import (
	"bytes"
	"testing"

	"github.com/gograph-align/gograph-align/internal/oracle"
)

func TestSerializationRoundTrip(t *testing.T) {
	g := New()
	g.AddNode(1, []byte("ACGTACGTACGT"))
	g.AddNode(2, []byte("TTTTGGGGCCCC"))
	g.AddEdge(1, 2)
	g.AddPath("ref", []oracle.GraphPos{{NodeID: 1}, {NodeID: 2}})

	var buf bytes.Buffer
	if _, err := g.Write(&buf); err != nil {
		t.Fatal(err)
	}

	got, err := Read(&buf)
	if err != nil {
		t.Fatal(err)
	}

	seq1, err := got.NodeSequence(1)
	if err != nil || string(seq1) != "ACGTACGTACGT" {
		t.Errorf("NodeSequence(1) = %q, %v; want ACGTACGTACGT", seq1, err)
	}
	seq2, err := got.NodeSequence(2)
	if err != nil || string(seq2) != "TTTTGGGGCCCC" {
		t.Errorf("NodeSequence(2) = %q, %v; want TTTTGGGGCCCC", seq2, err)
	}

	edges, err := got.EdgesOf(1)
	if err != nil || len(edges) == 0 {
		t.Fatalf("EdgesOf(1) = %+v, %v; want at least the edge to node 2", edges, err)
	}

	pos := got.ApproxPosition(oracle.GraphPos{NodeID: 2, Offset: 3})
	if pos != int64(len("ACGTACGTACGT")+3) {
		t.Errorf("ApproxPosition = %d, want %d", pos, len("ACGTACGTACGT")+3)
	}
}

func TestReadRejectsBadMagic(t *testing.T) {
	buf := bytes.NewBufferString("not a graph file at all, just junk bytes")
	if _, err := Read(buf); err != ErrInvalidFileFormat {
		t.Errorf("Read = %v, want ErrInvalidFileFormat", err)
	}
}
