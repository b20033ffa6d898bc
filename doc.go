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

// Package logcore is a structured logging core that produces
// machine-analyzable log entries for automated (AI) reviewers as well as
// humans. Every call builds an immutable [Entry] enriched with a UTC
// timestamp, a correlation id, an execution-environment snapshot, and
// best-effort caller source metadata. Entries are retained in a bounded
// in-memory buffer and, when configured, appended fail-soft to a
// newline-delimited JSON file.
//
// The central contract is that logging never becomes the cause of a caller's
// failure: non-serializable context values degrade to placeholders, exotic
// values passed to [Logger.LogException] are rendered deterministically, and
// persistence failures are swallowed and reported only through an optional
// side channel. A logging call always returns the entry it built.
//
// The primary entry point is [New], which composes a logger from a resolved
// [Config]:
//
//	logger := logcore.New(logcore.Config{
//	    LogFile:          "logs/app.jsonl",
//	    AutoSave:         true,
//	    KeepLogsInMemory: true,
//	    CreateDirs:       true,
//	})
//	defer logger.Close() // drains pending file writes
//
//	logger.Info(ctx, "user_login", "user authenticated",
//	    logcore.WithField("user_id", "u123"),
//	    logcore.WithAITodo("verify login rate limiting covers this path"),
//	)
//
// Buffered entries can be exported for automated review with
// [Logger.ExportForAI], which returns a JSON array optionally filtered by an
// operation-name substring.
//
// Loggers are safe for concurrent use: buffer mutations are serialized
// against snapshots, and file records never interleave because a single
// worker drains the sink queue. When a per-call context carries a valid
// OpenTelemetry span, its trace and span ids are folded into the entry
// context for correlation.
//
// Configuration resolution (environment variables, flags) is deliberately
// external to this package; see
// [github.com/pjscruggs/logcore/logcoreenv] for an environment-variable
// resolver that produces a ready-to-use [Config].
//
// The engine also doubles as a log/slog backend via [Logger.Handler], so
// code written against slog can feed the same buffer and file sink.
package logcore
