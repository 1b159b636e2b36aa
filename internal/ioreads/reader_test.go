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

package ioreads

import (
	"io"
	"os"
	"path/filepath"
	"testing"
)

func writeTemp(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestReaderSingleEnd(t *testing.T) {
	dir := t.TempDir()
	f1 := writeTemp(t, dir, "a.fasta", ">r1\nACGT\n>r2\nTTTT\n")
	f2 := writeTemp(t, dir, "b.fasta", ">r3\nGGGG\n")

	r := NewReader([]string{f1, f2})
	defer r.Close()

	var names []string
	for {
		read, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatal(err)
		}
		names = append(names, string(read.Name))
	}

	want := []string{"r1", "r2", "r3"}
	if len(names) != len(want) {
		t.Fatalf("got %v names, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("name[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestPairedReaderLockstep(t *testing.T) {
	dir := t.TempDir()
	f1 := writeTemp(t, dir, "r1.fastq", "@p1\nACGT\n+\nIIII\n")
	f2 := writeTemp(t, dir, "r2.fastq", "@p1\nTTTT\n+\nIIII\n")

	p := NewPairedReader([]string{f1}, []string{f2})
	defer p.Close()

	a, b, err := p.Next()
	if err != nil {
		t.Fatal(err)
	}
	if string(a.Seq) != "ACGT" || string(b.Seq) != "TTTT" {
		t.Fatalf("unexpected mate sequences: %q %q", a.Seq, b.Seq)
	}
	if len(a.Qual) != 4 {
		t.Fatalf("expected FASTQ qualities to be captured, got %d bytes", len(a.Qual))
	}

	if _, _, err := p.Next(); err != io.EOF {
		t.Fatalf("expected io.EOF at end of paired stream, got %v", err)
	}
}

func TestPairedReaderDesyncError(t *testing.T) {
	dir := t.TempDir()
	f1 := writeTemp(t, dir, "r1.fasta", ">p1\nACGT\n>p2\nAAAA\n")
	f2 := writeTemp(t, dir, "r2.fasta", ">p1\nTTTT\n")

	p := NewPairedReader([]string{f1}, []string{f2})
	defer p.Close()

	if _, _, err := p.Next(); err != nil {
		t.Fatal(err)
	}
	if _, _, err := p.Next(); err == nil || err == io.EOF {
		t.Fatalf("expected desync error on unequal mate counts, got %v", err)
	}
}
