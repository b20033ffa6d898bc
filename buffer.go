// Copyright 2026 Patrick J. Scruggs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package logcore

import "sync"

// defaultBufferLimit is the retained-entry cap applied when the
// configuration does not specify one. Retention is always bounded; the
// buffer exists to hold the most recent window, not the full history.
const defaultBufferLimit = 1000

// memoryBuffer is an ordered, bounded collection of entries. Append evicts
// the oldest entry once the limit is reached, so after any sequence of
// appends the buffer holds exactly the most recent min(appends, limit)
// entries in insertion order. All methods are safe for concurrent use;
// append+evict is atomic with respect to snapshots.
type memoryBuffer struct {
	mu      sync.Mutex
	entries []Entry
	limit   int
	enabled bool
}

// newMemoryBuffer returns a buffer holding at most limit entries. A limit
// of zero or below selects defaultBufferLimit. When enabled is false the
// buffer is a no-op: appends are discarded and snapshots are empty.
func newMemoryBuffer(limit int, enabled bool) *memoryBuffer {
	if limit <= 0 {
		limit = defaultBufferLimit
	}
	return &memoryBuffer{limit: limit, enabled: enabled}
}

// append stores e, evicting the oldest entry when the buffer is full.
func (b *memoryBuffer) append(e Entry) {
	if !b.enabled {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.entries) >= b.limit {
		drop := len(b.entries) - b.limit + 1
		b.entries = append(b.entries[drop:], e)
		return
	}
	b.entries = append(b.entries, e)
}

// snapshot returns a defensive copy of the buffered entries in insertion
// order. Each entry's context map is cloned so callers cannot reach the
// buffer's state through the returned slice.
func (b *memoryBuffer) snapshot() []Entry {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]Entry, len(b.entries))
	for i, e := range b.entries {
		out[i] = e.clone()
	}
	return out
}

// clear discards all buffered entries.
func (b *memoryBuffer) clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.entries = nil
}

// size reports the current number of buffered entries.
func (b *memoryBuffer) size() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.entries)
}
