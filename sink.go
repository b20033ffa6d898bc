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
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
)

// defaultSinkQueueSize is the pending-record capacity of the sink queue.
const defaultSinkQueueSize = 1024

// FailureHandler receives persistence errors that the logging path
// swallowed. It is a non-fatal side channel: by the time it runs, the
// logging call that triggered the write has already returned its entry to
// the caller. Handlers must be safe for concurrent use.
type FailureHandler func(err error)

// stderrFailureHandler is the default side channel, matching the library's
// diagnostic prefix convention.
func stderrFailureHandler(err error) {
	fmt.Fprintf(os.Stderr, "[logcore] WARNING: %v\n", err)
}

// fileSink serializes entries to an append-only newline-delimited JSON file.
// Records are queued and drained by a single worker goroutine, so each
// record is fully appended before the next begins and no logging call waits
// on file I/O. Every failure — directory creation, open, write, overflow —
// is absorbed and reported through the failure handler; nothing propagates
// to the logging caller.
type fileSink struct {
	path       string
	createDirs bool
	onFailure  FailureHandler

	writer     *switchableWriter
	userWriter io.Writer // non-nil when the caller supplied the destination

	fileMu sync.Mutex
	file   *os.File

	queue      chan sinkMessage
	workerDone chan struct{}
	closed     atomic.Bool
	closeOnce  sync.Once
	closeErr   error
}

// sinkMessage is either an entry to persist or a flush sentinel.
type sinkMessage struct {
	entry Entry
	flush chan struct{}
}

// newFileSink builds a sink writing to path, or to w when w is non-nil (the
// caller then owns w's rotation and lifecycle, as with a lumberjack writer).
// The file itself is opened lazily on the first write so that constructing a
// logger with an unwritable path stays failure-free.
func newFileSink(path string, createDirs bool, w io.Writer, queueSize int, onFailure FailureHandler) *fileSink {
	if onFailure == nil {
		onFailure = stderrFailureHandler
	}
	if queueSize <= 0 {
		queueSize = defaultSinkQueueSize
	}

	s := &fileSink{
		path:       path,
		createDirs: createDirs,
		onFailure:  onFailure,
		userWriter: w,
		writer:     newSwitchableWriter(w),
		queue:      make(chan sinkMessage, queueSize),
		workerDone: make(chan struct{}),
	}

	go s.run()
	return s
}

// run drains the queue until close releases it, then signals completion.
func (s *fileSink) run() {
	defer close(s.workerDone)
	for msg := range s.queue {
		if msg.flush != nil {
			close(msg.flush)
			continue
		}
		s.writeEntry(msg.entry)
	}
}

// enqueue schedules e for persistence. When the sink is closed or the queue
// is full the record is dropped for this call — there is no retry — and the
// drop is reported through the failure handler.
func (s *fileSink) enqueue(e Entry) {
	if s.closed.Load() {
		s.onFailure(fmt.Errorf("logcore: sink closed, dropped %q record", e.Operation))
		return
	}
	if !s.trySend(sinkMessage{entry: e}) {
		s.onFailure(fmt.Errorf("logcore: sink queue full, dropped %q record", e.Operation))
	}
}

// trySend performs a non-blocking send. The recover absorbs the race where
// close wins between the closed check and the send.
func (s *fileSink) trySend(msg sinkMessage) (sent bool) {
	defer func() {
		if recover() != nil {
			sent = false
		}
	}()
	select {
	case s.queue <- msg:
		return true
	default:
		return false
	}
}

// flush blocks until every record queued before it has been written (or
// dropped by a failed write). It returns nil when the sink is closed.
func (s *fileSink) flush() error {
	if s.closed.Load() {
		return nil
	}
	done := make(chan struct{})
	if !s.sendBlocking(sinkMessage{flush: done}) {
		return nil
	}
	<-done
	return nil
}

// sendBlocking queues msg, waiting for space; it reports false when the
// queue was closed underneath it.
func (s *fileSink) sendBlocking(msg sinkMessage) (sent bool) {
	defer func() {
		if recover() != nil {
			sent = false
		}
	}()
	s.queue <- msg
	return true
}

// writeEntry appends one serialized record. All errors are swallowed into
// the failure handler.
func (s *fileSink) writeEntry(e Entry) {
	if err := s.ensureOpen(); err != nil {
		s.onFailure(err)
		return
	}
	if err := encodeJSON(s.writer, e); err != nil {
		s.onFailure(fmt.Errorf("logcore: write to %s failed: %w", s.describeTarget(), err))
	}
}

// ensureOpen opens the log file on first use, creating parent directories
// when permitted. A sink built around a user-supplied writer never opens
// anything.
func (s *fileSink) ensureOpen() error {
	if s.userWriter != nil {
		return nil
	}

	s.fileMu.Lock()
	defer s.fileMu.Unlock()
	if s.file != nil {
		return nil
	}

	f, err := s.openLocked()
	if err != nil {
		return err
	}
	s.file = f
	s.writer.set(f)
	return nil
}

// openLocked creates the parent directory when configured and opens the
// file for appending. Callers hold fileMu.
func (s *fileSink) openLocked() (*os.File, error) {
	dir := filepath.Dir(s.path)
	if s.createDirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("logcore: create log directory %q: %w", dir, err)
		}
	}
	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("logcore: open log file %q: %w", s.path, err)
	}
	return f, nil
}

// reopen closes the current file and opens a fresh handle on the same path,
// for cooperation with external rotation tools that rename the active file.
// It is a no-op for user-supplied writers, which manage their own rotation.
func (s *fileSink) reopen() error {
	if s.userWriter != nil || s.path == "" {
		return nil
	}

	s.fileMu.Lock()
	defer s.fileMu.Unlock()

	if s.file != nil {
		if err := s.file.Close(); err != nil {
			s.onFailure(fmt.Errorf("logcore: close log file during reopen: %w", err))
		}
		s.file = nil
		s.writer.set(nil)
	}

	f, err := s.openLocked()
	if err != nil {
		return err
	}
	s.file = f
	s.writer.set(f)
	return nil
}

// close drains the queue, then releases the file handle or closes a
// closable user writer (standard streams excepted). Safe to call more than
// once; later calls return the first result.
func (s *fileSink) close() error {
	s.closeOnce.Do(func() {
		s.closed.Store(true)
		close(s.queue)
		<-s.workerDone

		s.fileMu.Lock()
		defer s.fileMu.Unlock()
		if s.file != nil {
			s.closeErr = s.file.Close()
			s.file = nil
			s.writer.set(nil)
			return
		}
		if c, ok := s.userWriter.(io.Closer); ok &&
			s.userWriter != os.Stdout && s.userWriter != os.Stderr {
			s.closeErr = c.Close()
		}
	})
	return s.closeErr
}

// describeTarget names the destination for diagnostics.
func (s *fileSink) describeTarget() string {
	if s.userWriter != nil {
		return fmt.Sprintf("writer %T", s.userWriter)
	}
	return fmt.Sprintf("file %q", s.path)
}
