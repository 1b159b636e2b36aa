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
	"github.com/pkg/errors"

	"github.com/gograph-align/gograph-align/internal/oracle"
)

var complement = map[byte]byte{
	'A': 'T', 'C': 'G', 'G': 'C', 'T': 'A',
	'a': 't', 'c': 'g', 'g': 'c', 't': 'a',
}

func baseEq(a, b byte) bool {
	return upper(a) == upper(b)
}

func upper(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - 32
	}
	return b
}

// nodeBaseAt reads the single base at pos, respecting strand.
func nodeBaseAt(g oracle.Graph, pos oracle.GraphPos) (byte, error) {
	seq, err := g.NodeSequence(pos.NodeID)
	if err != nil {
		return 0, err
	}
	if pos.IsReverse {
		idx := uint32(len(seq)) - 1 - pos.Offset
		b := seq[idx]
		if c, ok := complement[b]; ok {
			return c, nil
		}
		return b, nil
	}
	if int(pos.Offset) >= len(seq) {
		return 0, errors.Errorf("extend: offset %d out of range for node %d (len %d)", pos.Offset, pos.NodeID, len(seq))
	}
	return seq[pos.Offset], nil
}

// Extend runs a mismatch-limited gapless walk in both directions from a
// seed anchor (spec.md §4.5 step 1): a walk that would exceed maxMismatches
// stops one base short instead of including the offending base, and
// mismatches left at either end are trimmed off, so ends never lie on a
// mismatch.
func Extend(g oracle.Graph, read []byte, anchor oracle.GraphPos, readOffset, maxMismatches int) GaplessExtension {
	fwdPath, fwdMM, end := walkForward(g, read, anchor, readOffset, maxMismatches)
	bwdPath, bwdMM, begin := walkBackward(g, read, anchor, readOffset, maxMismatches-len(fwdMM))

	path := make([]oracle.GraphPos, 0, len(bwdPath)+1+len(fwdPath))
	path = append(path, bwdPath...)
	path = append(path, anchor)
	path = append(path, fwdPath...)

	mm := make([]int, 0, len(bwdMM)+len(fwdMM))
	mm = append(mm, bwdMM...)
	mm = append(mm, fwdMM...)

	for len(mm) > 0 && end-1 > readOffset && mm[len(mm)-1] == end-1 {
		mm = mm[:len(mm)-1]
		path = path[:len(path)-1]
		end--
	}
	for len(mm) > 0 && begin < readOffset && mm[0] == begin {
		mm = mm[1:]
		path = path[1:]
		begin++
	}

	e := GaplessExtension{ReadBegin: begin, ReadEnd: end, Path: path, Mismatches: mm}
	e.Score = scoreExtension(e, Options{})
	return e
}

func scoreExtension(e GaplessExtension, opt Options) int {
	match, mismatch := opt.Match, opt.Mismatch
	if match == 0 {
		match = 1
	}
	if mismatch == 0 {
		mismatch = 4
	}
	length := e.ReadEnd - e.ReadBegin
	return length*match - len(e.Mismatches)*(match+mismatch)
}

// walkForward extends rightward from (anchor, readOffset) inclusive of the
// anchor position itself, one base at a time, using NextPositions.
func walkForward(g oracle.Graph, read []byte, anchor oracle.GraphPos, readOffset, maxMM int) (path []oracle.GraphPos, mismatches []int, end int) {
	cur := anchor
	idx := readOffset + 1
	for idx < len(read) {
		nexts, err := g.NextPositions(cur, false)
		if err != nil || len(nexts) == 0 {
			break
		}
		next := nexts[0]
		base, err := nodeBaseAt(g, next)
		if err != nil {
			break
		}
		isMM := !baseEq(base, read[idx])
		if isMM && len(mismatches) >= maxMM {
			break
		}
		path = append(path, next)
		if isMM {
			mismatches = append(mismatches, idx)
		}
		cur = next
		idx++
	}
	return path, mismatches, idx
}

// walkBackward extends leftward from (anchor, readOffset) exclusive of the
// anchor, by flipping strand (the oracle only exposes a forward walker).
func walkBackward(g oracle.Graph, read []byte, anchor oracle.GraphPos, readOffset, maxMM int) (path []oracle.GraphPos, mismatches []int, begin int) {
	cur := anchor
	idx := readOffset - 1
	var rev []oracle.GraphPos
	var revMM []int
	for idx >= 0 {
		curLen, err := g.NodeLength(cur.NodeID)
		if err != nil {
			break
		}
		nexts, err := g.NextPositions(cur.Reverse(curLen), false)
		if err != nil || len(nexts) == 0 {
			break
		}
		nextRev := nexts[0]
		nextLen, err := g.NodeLength(nextRev.NodeID)
		if err != nil {
			break
		}
		next := nextRev.Reverse(nextLen)
		base, err := nodeBaseAt(g, next)
		if err != nil {
			break
		}
		isMM := !baseEq(base, read[idx])
		if isMM && len(revMM) >= maxMM {
			break
		}
		rev = append(rev, next)
		if isMM {
			revMM = append(revMM, idx)
		}
		cur = next
		idx--
	}
	for i := len(rev) - 1; i >= 0; i-- {
		path = append(path, rev[i])
	}
	for i := len(revMM) - 1; i >= 0; i-- {
		mismatches = append(mismatches, revMM[i])
	}
	return path, mismatches, idx + 1
}
