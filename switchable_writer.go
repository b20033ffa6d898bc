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

import (
	"io"
	"sync"
)

// switchableWriter is an io.Writer whose underlying writer can be swapped
// atomically. The file sink writes through one so that ReopenLogFile can
// redirect output to a freshly opened file (after an external rotation
// renames the old one) without rebuilding the sink. The mutex also makes
// each Write call a whole-record critical section, which is what keeps
// concurrent records from interleaving in the file.
type switchableWriter struct {
	mu sync.Mutex
	w  io.Writer
}

// newSwitchableWriter wraps initial, defaulting to io.Discard when nil so
// Write never dereferences a nil writer.
func newSwitchableWriter(initial io.Writer) *switchableWriter {
	if initial == nil {
		initial = io.Discard
	}
	return &switchableWriter{w: initial}
}

// Write directs p to the current underlying writer.
func (sw *switchableWriter) Write(p []byte) (int, error) {
	sw.mu.Lock()
	defer sw.mu.Unlock()
	return sw.w.Write(p)
}

// set atomically replaces the underlying writer. The previous writer is not
// closed; its lifecycle belongs to the caller. A nil writer redirects
// subsequent writes to io.Discard.
func (sw *switchableWriter) set(w io.Writer) {
	sw.mu.Lock()
	defer sw.mu.Unlock()
	if w == nil {
		w = io.Discard
	}
	sw.w = w
}
