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

import "testing"

func TestModelNotReadyBeforeInterval(t *testing.T) {
	m := NewModel(1000, 10)
	for i := 0; i < 9; i++ {
		m.Observe(300, true, true)
	}
	if got := m.Snapshot(); got.Ready {
		t.Errorf("Snapshot().Ready = true after 9 of 10 observations, want false")
	}
}

func TestModelReadyAfterInterval(t *testing.T) {
	m := NewModel(1000, 10)
	for i := 0; i < 10; i++ {
		m.Observe(300, true, true)
	}
	snap := m.Snapshot()
	if !snap.Ready {
		t.Fatal("Snapshot().Ready = false after 10 observations, want true")
	}
	if snap.Mean != 300 {
		t.Errorf("Mean = %v, want 300 for a constant-length sample", snap.Mean)
	}
	if snap.Stdev != 0 {
		t.Errorf("Stdev = %v, want 0 for a constant-length sample", snap.Stdev)
	}
	if !snap.SameOrientation || !snap.SameDirection {
		t.Errorf("expected the unanimous orientation/direction observations to be reflected in the snapshot")
	}
}

func TestModelRollingWindowCapsHistory(t *testing.T) {
	m := NewModel(5, 5)
	for i := 0; i < 5; i++ {
		m.Observe(100, true, true)
	}
	for i := 0; i < 5; i++ {
		m.Observe(500, false, false)
	}
	snap := m.Snapshot()
	if !snap.Ready {
		t.Fatal("expected Ready after 10 observations with interval 5")
	}
	if snap.Mean != 500 {
		t.Errorf("Mean = %v, want 500 once the 100-length observations have rolled out of a cache of size 5", snap.Mean)
	}
	if snap.SameOrientation || snap.SameDirection {
		t.Errorf("expected the most recent (false,false) observations to dominate the rolled window")
	}
}

func TestRetryQueuePushDrain(t *testing.T) {
	var q RetryQueue
	q.Push(RetryItem{ReadName: "r1"})
	q.Push(RetryItem{ReadName: "r2"})

	drained := q.Drain()
	if len(drained) != 2 || drained[0].ReadName != "r1" || drained[1].ReadName != "r2" {
		t.Fatalf("Drain() = %+v, want [r1 r2]", drained)
	}
	if again := q.Drain(); len(again) != 0 {
		t.Errorf("expected the queue to be empty after Drain, got %+v", again)
	}
}
