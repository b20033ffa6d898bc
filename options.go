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
	"time"
)

// Option configures a Logger during construction via New. Options are
// applied after the Config and override its fields, so the same resolved
// Config can be reused with per-logger adjustments.
type Option func(*options)

// options holds the construction-time settings. Fields are pointers where
// the zero value is meaningful, to distinguish "explicitly set to zero"
// from "unset".
type options struct {
	logFile        *string
	autoSave       *bool
	keepInMemory   *bool
	maxMemoryLogs  *int
	createDirs     *bool
	correlationID  *string
	maxFileSizeMB  *float64
	minLevel       *Level
	sinkWriter     io.Writer
	sinkQueueSize  *int
	failureHandler FailureHandler
	clock          func() time.Time
}

// WithLogFile sets the persistence path, overriding Config.LogFile.
func WithLogFile(path string) Option {
	return func(o *options) { o.logFile = &path }
}

// WithAutoSave toggles dispatching entries to the file sink.
func WithAutoSave(enabled bool) Option {
	return func(o *options) { o.autoSave = &enabled }
}

// WithMemoryRetention toggles the in-memory buffer.
func WithMemoryRetention(enabled bool) Option {
	return func(o *options) { o.keepInMemory = &enabled }
}

// WithMaxMemoryLogs bounds the in-memory buffer. Values of zero or below
// select the default bound.
func WithMaxMemoryLogs(n int) Option {
	return func(o *options) { o.maxMemoryLogs = &n }
}

// WithCreateDirs permits the sink to create missing parent directories.
func WithCreateDirs(enabled bool) Option {
	return func(o *options) { o.createDirs = &enabled }
}

// WithCorrelationID binds an explicit correlation id to the logger. An
// empty string counts as unset and a fresh id is generated.
func WithCorrelationID(id string) Option {
	return func(o *options) { o.correlationID = &id }
}

// WithMaxFileSizeMB records the advisory file-size budget. The core never
// enforces it; see Config.MaxFileSizeMB.
func WithMaxFileSizeMB(mb float64) Option {
	return func(o *options) { o.maxFileSizeMB = &mb }
}

// WithMinLevel sets the initial severity floor for retention and
// persistence. The floor can be changed later with Logger.SetMinLevel.
func WithMinLevel(level Level) Option {
	return func(o *options) { o.minLevel = &level }
}

// WithSinkWriter directs persisted records to w instead of a file opened by
// the logger. The caller owns w's lifecycle and any rotation policy (a
// lumberjack writer slots in here). When both a log file path and a sink
// writer are configured, the path wins and the conflict is reported through
// the failure handler.
func WithSinkWriter(w io.Writer) Option {
	return func(o *options) { o.sinkWriter = w }
}

// WithSinkQueueSize adjusts the pending-record capacity of the sink queue.
// Records beyond the capacity are dropped for that call, never retried.
func WithSinkQueueSize(n int) Option {
	return func(o *options) { o.sinkQueueSize = &n }
}

// WithFailureHandler installs the non-fatal side channel for swallowed
// persistence errors. The default writes a "[logcore]" diagnostic line to
// standard error. Passing nil keeps the default.
func WithFailureHandler(fn FailureHandler) Option {
	return func(o *options) { o.failureHandler = fn }
}

// WithClock replaces the timestamp source. It exists for tests; production
// loggers use time.Now.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.clock = now }
}

// mergeOptions folds opts into cfg and returns the construction extras that
// live outside Config.
func mergeOptions(cfg Config, opts []Option) (Config, *options) {
	state := &options{}
	for _, opt := range opts {
		if opt != nil {
			opt(state)
		}
	}

	if state.logFile != nil {
		cfg.LogFile = *state.logFile
	}
	if state.autoSave != nil {
		cfg.AutoSave = *state.autoSave
	}
	if state.keepInMemory != nil {
		cfg.KeepLogsInMemory = *state.keepInMemory
	}
	if state.maxMemoryLogs != nil {
		cfg.MaxMemoryLogs = *state.maxMemoryLogs
	}
	if state.createDirs != nil {
		cfg.CreateDirs = *state.createDirs
	}
	if state.correlationID != nil {
		cfg.CorrelationID = *state.correlationID
	}
	if state.maxFileSizeMB != nil {
		cfg.MaxFileSizeMB = *state.maxFileSizeMB
	}
	if state.minLevel != nil {
		cfg.MinLevel = state.minLevel
	}
	return cfg, state
}
