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

// Package pair implements paired-end resolution (spec.md §4.10): the
// shared fragment-length model, three pairing strategies, mate rescue,
// consistency checks, and the imperfect-pair retry queue (spec.md §5).
package pair

import (
	"sync"

	"gonum.org/v1/gonum/stat"
)

// Snapshot is an immutable copy of the fragment model's current estimate,
// taken once at the start of a pair's processing to avoid torn reads
// (spec.md §5: "Reads that occur during paired mapping snapshot once at
// the start of a pair").
type Snapshot struct {
	Ready           bool
	Mean            float64
	Stdev           float64
	SizeCap         float64
	SameOrientation bool
	SameDirection   bool
}

// Model is the shared, mutex-guarded fragment-length learner. Writers
// (fragment observations) never block readers beyond the short critical
// section needed to copy the cached snapshot (spec.md §5's invariant).
type Model struct {
	mu sync.Mutex

	cacheSize int
	interval  int

	lengths      []float64
	orientations []bool // true == same orientation
	directions   []bool // true == forward-reverse (FR) fragment direction

	observed int
	snap     Snapshot
}

// NewModel constructs a Model with the configured rolling-window size and
// recompute interval (spec.md §4.10's "every 10 observations").
func NewModel(cacheSize, interval int) *Model {
	if cacheSize <= 0 {
		cacheSize = 1000
	}
	if interval <= 0 {
		interval = 10
	}
	return &Model{cacheSize: cacheSize, interval: interval}
}

// Observe pushes one observed pair (length, orientation, direction) into
// the rolling deques, matching spec.md §4.10's fragment-learning rule.
// mapper.MapPair invokes this for consistent pairs whose two alignments both
// have identity at or above perfect_pair_identity_threshold; it checks no
// score cap.
func (m *Model) Observe(length float64, sameOrientation, forwardReverse bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.lengths = pushCapped(m.lengths, length, m.cacheSize)
	m.orientations = pushCappedBool(m.orientations, sameOrientation, m.cacheSize)
	m.directions = pushCappedBool(m.directions, forwardReverse, m.cacheSize)
	m.observed++

	if m.observed%m.interval != 0 {
		return
	}
	mean, stdev := stat.MeanStdDev(m.lengths, nil)
	m.snap = Snapshot{
		Ready:           true,
		Mean:            mean,
		Stdev:           stdev,
		SizeCap:         mean + 4*stdev,
		SameOrientation: majority(m.orientations),
		SameDirection:   majority(m.directions),
	}
}

// Snapshot copies the current estimate under a short critical section.
func (m *Model) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snap
}

func pushCapped(s []float64, v float64, cap_ int) []float64 {
	s = append(s, v)
	if len(s) > cap_ {
		s = s[len(s)-cap_:]
	}
	return s
}

func pushCappedBool(s []bool, v bool, cap_ int) []bool {
	s = append(s, v)
	if len(s) > cap_ {
		s = s[len(s)-cap_:]
	}
	return s
}

func majority(bs []bool) bool {
	t := 0
	for _, b := range bs {
		if b {
			t++
		}
	}
	return t*2 >= len(bs)
}

// RetryItem is one pair deferred because the fragment model was not yet
// populated when it was processed.
type RetryItem struct {
	ReadName string
	Payload  interface{}
}

// RetryQueue is the mutex-protected "imperfect pair retry queue"
// (spec.md §5).
type RetryQueue struct {
	mu    sync.Mutex
	items []RetryItem
}

// Push enqueues a deferred pair.
func (q *RetryQueue) Push(item RetryItem) {
	q.mu.Lock()
	q.items = append(q.items, item)
	q.mu.Unlock()
}

// Drain empties the queue and returns everything queued, for a reprocess
// pass once the fragment model has converged.
func (q *RetryQueue) Drain() []RetryItem {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := q.items
	q.items = nil
	return out
}
