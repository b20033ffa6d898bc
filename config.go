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

// Config is the fully resolved configuration a Logger is built from. The
// core never reads environment variables or flags itself; an external
// resolver (for example logcoreenv.Load) produces one immutable Config at
// construction time.
//
// Contradictory or out-of-range values never fail construction: the logger
// clamps them to safe defaults, because configuration mistakes must not
// turn logging into a source of caller failures.
type Config struct {
	// LogFile is the path entries are persisted to. Empty disables file
	// persistence regardless of AutoSave.
	LogFile string

	// AutoSave controls whether each entry is dispatched to the file sink.
	AutoSave bool

	// KeepLogsInMemory controls in-memory retention. When false, Logs and
	// ExportForAI always observe an empty buffer.
	KeepLogsInMemory bool

	// MaxMemoryLogs bounds the in-memory buffer. Zero or negative selects
	// the default (1000). The oldest entry is evicted once the bound is
	// reached.
	MaxMemoryLogs int

	// CreateDirs permits the sink to create missing parent directories of
	// LogFile recursively before the first write.
	CreateDirs bool

	// CorrelationID, when non-empty, is bound verbatim to every entry this
	// logger produces. Empty (or whitespace-only) means "generate one".
	CorrelationID string

	// MaxFileSizeMB is advisory metadata carried through for operators and
	// external rotation policies. The core does not enforce it: file growth
	// is unbounded here, and rotation is a policy layered on top (see
	// Logger.ReopenLogFile and WithSinkWriter).
	MaxFileSizeMB float64

	// MinLevel is the initial severity floor for retention and persistence.
	// Entries below it are still built and returned to the caller. It is a
	// pointer because Level's zero value is INFO, not "unset": nil means
	// LevelDebug (retain everything).
	MinLevel *Level
}

// DefaultConfig returns the configuration used when callers have nothing to
// resolve: memory retention on with the default bound, no file persistence.
func DefaultConfig() Config {
	return Config{
		AutoSave:         true,
		KeepLogsInMemory: true,
		MaxMemoryLogs:    defaultBufferLimit,
		CreateDirs:       true,
	}
}
