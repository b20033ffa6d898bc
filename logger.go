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
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"
)

// Logger composes the entry builder, the bounded in-memory buffer, and the
// fail-soft file sink behind the per-level logging API. It owns the
// concurrency discipline: buffer mutations are serialized against
// snapshots, and file records are written whole by a single worker, so
// interleaved calls from many goroutines produce a consistent buffer and a
// consistent file.
//
// Every logging method returns the entry it built, and none of them can
// fail or panic: malformed context degrades to placeholders, persistence
// errors are swallowed into the failure side channel, and contradictory
// configuration resolves to safe defaults. Logging is never the reason a
// caller fails.
//
// A Logger is created once per logical component or session and lives for
// the duration of the using process. Call Close during shutdown to drain
// pending file writes; loggers without a sink do not require it.
type Logger struct {
	cfg           Config
	correlationID string
	levelVar      *slog.LevelVar
	buffer        *memoryBuffer
	sink          *fileSink
	clock         func() time.Time
	onFailure     FailureHandler

	closeOnce sync.Once
	closeErr  error
}

// New builds a Logger from a resolved Config, with opts overriding
// individual fields. Construction always succeeds: a sink pointed at an
// unwritable path defers its failure to the first write, where it is
// swallowed and reported through the failure handler.
func New(cfg Config, opts ...Option) *Logger {
	cfg, extras := mergeOptions(cfg, opts)

	onFailure := extras.failureHandler
	if onFailure == nil {
		onFailure = stderrFailureHandler
	}

	clock := extras.clock
	if clock == nil {
		clock = time.Now
	}

	levelVar := new(slog.LevelVar)
	if cfg.MinLevel != nil {
		levelVar.Set(cfg.MinLevel.Level())
	} else {
		levelVar.Set(LevelDebug.Level())
	}

	l := &Logger{
		cfg:           cfg,
		correlationID: resolveCorrelationID(cfg.CorrelationID),
		levelVar:      levelVar,
		buffer:        newMemoryBuffer(cfg.MaxMemoryLogs, cfg.KeepLogsInMemory),
		clock:         clock,
		onFailure:     onFailure,
	}

	sinkWriter := extras.sinkWriter
	if cfg.LogFile != "" && sinkWriter != nil {
		onFailure(fmt.Errorf("logcore: both LogFile %q and a sink writer configured; using the file path", cfg.LogFile))
		sinkWriter = nil
	}

	if cfg.AutoSave && (cfg.LogFile != "" || sinkWriter != nil) {
		queueSize := 0
		if extras.sinkQueueSize != nil {
			queueSize = *extras.sinkQueueSize
		}
		l.sink = newFileSink(cfg.LogFile, cfg.CreateDirs, sinkWriter, queueSize, onFailure)
	}

	return l
}

// Debug logs at DEBUG severity and returns the built entry.
func (l *Logger) Debug(ctx context.Context, operation, message string, opts ...EntryOption) Entry {
	return l.log(ctx, LevelDebug, operation, message, opts)
}

// Info logs at INFO severity and returns the built entry.
func (l *Logger) Info(ctx context.Context, operation, message string, opts ...EntryOption) Entry {
	return l.log(ctx, LevelInfo, operation, message, opts)
}

// Warning logs at WARNING severity and returns the built entry.
func (l *Logger) Warning(ctx context.Context, operation, message string, opts ...EntryOption) Entry {
	return l.log(ctx, LevelWarning, operation, message, opts)
}

// Error logs at ERROR severity and returns the built entry.
func (l *Logger) Error(ctx context.Context, operation, message string, opts ...EntryOption) Entry {
	return l.log(ctx, LevelError, operation, message, opts)
}

// Critical logs at CRITICAL severity and returns the built entry.
func (l *Logger) Critical(ctx context.Context, operation, message string, opts ...EntryOption) Entry {
	return l.log(ctx, LevelCritical, operation, message, opts)
}

// LogException logs an exceptional value at ERROR severity. It accepts any
// value — a Go error, a string, a number, a composite value, or nil — and
// always produces a usable entry: the message carries a kind label and
// description, the stack trace is populated when one is available, and the
// context gains "error_type" and "original_error" keys. It never fails,
// whatever the shape of errVal.
func (l *Logger) LogException(ctx context.Context, operation string, errVal any, opts ...EntryOption) Entry {
	e := l.buildExceptionEntry(ctx, operation, errVal, opts)
	l.record(e)
	return e.clone()
}

// log builds, records, and returns one entry.
func (l *Logger) log(ctx context.Context, level Level, operation, message string, opts []EntryOption) Entry {
	e := l.buildEntry(ctx, level, operation, message, opts)
	l.record(e)
	return e.clone()
}

// record routes a fully built entry to the buffer and the sink. Entries
// below the severity floor are skipped here but were still returned to the
// caller by the public method.
func (l *Logger) record(e Entry) {
	if e.Level.Level() < l.levelVar.Level() {
		return
	}
	l.buffer.append(e.clone())
	if l.sink != nil {
		l.sink.enqueue(e)
	}
}

// Logs returns a defensive copy of the buffered entries in insertion order.
// It is empty when memory retention is disabled.
func (l *Logger) Logs() []Entry {
	return l.buffer.snapshot()
}

// ExportForAI serializes the current buffer as a JSON array for automated
// review. When operationFilter is non-empty, only entries whose operation
// contains it as a substring are included, in buffer order. An empty buffer
// (or an all-excluding filter) yields "[]".
func (l *Logger) ExportForAI(operationFilter string) ([]byte, error) {
	entries := l.buffer.snapshot()

	filtered := entries
	if operationFilter != "" {
		filtered = make([]Entry, 0, len(entries))
		for _, e := range entries {
			if strings.Contains(e.Operation, operationFilter) {
				filtered = append(filtered, e)
			}
		}
	}
	if filtered == nil {
		filtered = []Entry{}
	}
	return json.Marshal(filtered)
}

// ClearLogs discards all buffered entries. The log file is untouched.
func (l *Logger) ClearLogs() {
	l.buffer.clear()
}

// CorrelationID returns the id bound to this logger. Two independently
// constructed loggers without explicit ids receive distinct generated ids.
func (l *Logger) CorrelationID() string {
	return l.correlationID
}

// SetMinLevel changes the severity floor for retention and persistence.
func (l *Logger) SetMinLevel(level Level) {
	l.levelVar.Set(level.Level())
}

// MinLevel returns the current severity floor.
func (l *Logger) MinLevel() Level {
	return levelFromSlog(l.levelVar.Level())
}

// Flush blocks until every record dispatched to the sink before the call
// has been written or dropped. It is a no-op for loggers without a sink.
func (l *Logger) Flush() error {
	if l.sink == nil {
		return nil
	}
	return l.sink.flush()
}

// ReopenLogFile closes and reopens the log file on its configured path, for
// integration with external rotation tools that rename the active file and
// signal the application. It is a no-op when the logger persists through a
// caller-supplied writer or has no sink at all.
func (l *Logger) ReopenLogFile() error {
	if l.sink == nil {
		return nil
	}
	return l.sink.reopen()
}

// Close drains pending file writes and releases the sink's resources. It is
// idempotent; later calls return the first result. The buffer remains
// readable after Close, but new entries are no longer persisted.
func (l *Logger) Close() error {
	l.closeOnce.Do(func() {
		if l.sink != nil {
			l.closeErr = l.sink.close()
		}
	})
	return l.closeErr
}

// MaxFileSizeMB exposes the advisory size budget carried in the
// configuration. The core does not enforce it.
func (l *Logger) MaxFileSizeMB() float64 {
	return l.cfg.MaxFileSizeMB
}
