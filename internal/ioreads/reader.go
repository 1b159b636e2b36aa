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

// Package ioreads implements read ingestion for the mapper: single-end and
// paired-end FASTA/FASTQ streaming, and compressed output writing.
package ioreads

import (
	"io"

	"github.com/pkg/errors"
	"github.com/shenwei356/bio/seqio/fastx"
)

// Read is one query sequence pulled off the input stream. Qual is nil for
// FASTA input.
type Read struct {
	Name []byte
	Seq  []byte
	Qual []byte
}

func fromRecord(r *fastx.Record) Read {
	read := Read{
		Name: append([]byte(nil), r.Name...),
		Seq:  append([]byte(nil), r.Seq.Seq...),
	}
	if len(r.Seq.Qual) > 0 {
		read.Qual = append([]byte(nil), r.Seq.Qual...)
	}
	return read
}

// Reader streams single-end reads from one or more FASTA/FASTQ files,
// transparently decompressing ".gz" input via shenwei356/xopen (invoked
// internally by fastx.NewReader), matching the file-loop shape of
// lexicmap/cmd/map.go's query reader.
type Reader struct {
	files []string
	idx   int
	cur   *fastx.Reader
}

// NewReader constructs a Reader over the given files, read in order.
func NewReader(files []string) *Reader {
	return &Reader{files: files}
}

// Next returns the next read, or io.EOF once every file is exhausted.
func (r *Reader) Next() (Read, error) {
	for {
		if r.cur == nil {
			if r.idx >= len(r.files) {
				return Read{}, io.EOF
			}
			fr, err := fastx.NewReader(nil, r.files[r.idx], "")
			if err != nil {
				return Read{}, errors.Wrapf(err, "ioreads: opening %s", r.files[r.idx])
			}
			r.idx++
			r.cur = fr
		}

		record, err := r.cur.Read()
		if err != nil {
			r.cur.Close()
			r.cur = nil
			if err == io.EOF {
				continue
			}
			return Read{}, errors.Wrap(err, "ioreads: reading record")
		}
		return fromRecord(record), nil
	}
}

// Close releases the currently open underlying file, if any.
func (r *Reader) Close() error {
	if r.cur != nil {
		r.cur.Close()
		r.cur = nil
	}
	return nil
}

// PairedReader streams paired-end reads in lockstep from two file lists,
// erroring if the mates desynchronize (unequal read counts).
type PairedReader struct {
	r1, r2 *Reader
}

// NewPairedReader constructs a PairedReader over two same-length file lists.
func NewPairedReader(files1, files2 []string) *PairedReader {
	return &PairedReader{r1: NewReader(files1), r2: NewReader(files2)}
}

// Next returns the next mate pair, or io.EOF once both streams are
// exhausted. It is an error for one mate stream to end before the other.
func (p *PairedReader) Next() (Read, Read, error) {
	a, errA := p.r1.Next()
	b, errB := p.r2.Next()
	switch {
	case errA == io.EOF && errB == io.EOF:
		return Read{}, Read{}, io.EOF
	case errA == io.EOF || errB == io.EOF:
		return Read{}, Read{}, errors.New("ioreads: paired input files have differing read counts")
	case errA != nil:
		return Read{}, Read{}, errA
	case errB != nil:
		return Read{}, Read{}, errB
	}
	return a, b, nil
}

// Close releases both underlying mate readers.
func (p *PairedReader) Close() error {
	p.r1.Close()
	p.r2.Close()
	return nil
}
