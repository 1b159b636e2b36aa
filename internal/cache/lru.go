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

// Package cache implements the per-worker LRU caches described in
// SPEC_FULL.md §6. The mapper uses two per worker, in front of the graph
// oracle's node-sequence and node-length lookups; each is exclusive to one
// mapper worker and needs no locking.
//
// No third-party LRU package appears anywhere in the retrieved corpus, so
// this is built directly on container/list, the standard idiom for an
// intrusive doubly-linked LRU (see DESIGN.md for the justification).
package cache

import "container/list"

// LRU is a fixed-capacity, not-safe-for-concurrent-use least-recently-used
// cache keyed by uint64 (the mapper keys both of its caches by node ID).
type LRU struct {
	capacity int
	items    map[uint64]*list.Element
	order    *list.List // front = most recently used
}

type entry struct {
	key   uint64
	value interface{}
}

// New creates an LRU with the given capacity. Capacity <= 0 disables
// eviction, so the cache then grows without bound.
func New(capacity int) *LRU {
	return &LRU{
		capacity: capacity,
		items:    make(map[uint64]*list.Element, capacity),
		order:    list.New(),
	}
}

// Get returns the cached value for key, promoting it to most-recently-used.
func (c *LRU) Get(key uint64) (interface{}, bool) {
	el, ok := c.items[key]
	if !ok {
		return nil, false
	}
	c.order.MoveToFront(el)
	return el.Value.(*entry).value, true
}

// Put inserts or updates key's value, evicting the least-recently-used
// entry if capacity is exceeded.
func (c *LRU) Put(key uint64, value interface{}) {
	if el, ok := c.items[key]; ok {
		el.Value.(*entry).value = value
		c.order.MoveToFront(el)
		return
	}
	el := c.order.PushFront(&entry{key: key, value: value})
	c.items[key] = el
	if c.capacity > 0 {
		for c.order.Len() > c.capacity {
			back := c.order.Back()
			if back == nil {
				break
			}
			c.order.Remove(back)
			delete(c.items, back.Value.(*entry).key)
		}
	}
}

// Len is the number of entries currently cached.
func (c *LRU) Len() int { return c.order.Len() }
