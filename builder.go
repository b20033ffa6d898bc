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
	"strings"
)

// EntryOption customizes a single logging call: extra context, annotations,
// or a per-call correlation override.
type EntryOption func(*entryOptions)

type entryOptions struct {
	context       map[string]any
	humanNote     string
	aiTodo        string
	correlationID string
}

// WithContext merges m into the entry's context. Later options win on key
// conflicts. The map is sanitized during entry construction; the caller's
// map is never mutated or retained.
func WithContext(m map[string]any) EntryOption {
	return func(o *entryOptions) {
		if len(m) == 0 {
			return
		}
		if o.context == nil {
			o.context = make(map[string]any, len(m))
		}
		for k, v := range m {
			o.context[k] = v
		}
	}
}

// WithField adds a single key/value pair to the entry's context.
func WithField(key string, value any) EntryOption {
	return func(o *entryOptions) {
		if o.context == nil {
			o.context = make(map[string]any, 1)
		}
		o.context[key] = value
	}
}

// WithHumanNote attaches a free-text annotation for human reviewers.
func WithHumanNote(note string) EntryOption {
	return func(o *entryOptions) { o.humanNote = note }
}

// WithAITodo attaches a free-text annotation for automated reviewers.
func WithAITodo(todo string) EntryOption {
	return func(o *entryOptions) { o.aiTodo = todo }
}

// WithCorrelationOverride replaces the logger's correlation id for this one
// entry. An empty string is treated as "no override" and the logger's bound
// id is used.
func WithCorrelationOverride(id string) EntryOption {
	return func(o *entryOptions) { o.correlationID = id }
}

// buildEntry assembles a fully populated Entry. It never fails: context
// sanitization degrades rather than errors, source resolution is
// best-effort, and the environment snapshot is cached. The entry is
// complete before anything else can observe it.
func (l *Logger) buildEntry(ctx context.Context, level Level, operation, message string, opts []EntryOption) Entry {
	eo := entryOptions{}
	for _, opt := range opts {
		if opt != nil {
			opt(&eo)
		}
	}

	correlation := l.correlationID
	if strings.TrimSpace(eo.correlationID) != "" {
		correlation = eo.correlationID
	}

	entryCtx := sanitizeContext(eo.context)
	if traceID, spanID, ok := traceIdentifiers(ctx); ok {
		if entryCtx == nil {
			entryCtx = make(map[string]any, 2)
		}
		entryCtx[traceIDContextKey] = traceID
		entryCtx[spanIDContextKey] = spanID
	}

	return Entry{
		Timestamp:     l.clock().UTC(),
		Level:         level,
		Operation:     operation,
		Message:       message,
		Context:       entryCtx,
		CorrelationID: correlation,
		HumanNote:     eo.humanNote,
		AITodo:        eo.aiTodo,
		Environment:   SnapshotEnvironment(),
		Source:        callerSource(),
	}
}

// buildExceptionEntry assembles the ERROR entry for LogException, folding
// the exception rendering into the context alongside any caller-supplied
// keys.
func (l *Logger) buildExceptionEntry(ctx context.Context, operation string, errVal any, opts []EntryOption) Entry {
	detail := describeException(errVal)

	e := l.buildEntry(ctx, LevelError, operation, detail.message, opts)
	e.StackTrace = detail.stack

	if e.Context == nil {
		e.Context = make(map[string]any, 2)
	}
	e.Context[errorTypeContextKey] = detail.errorType
	e.Context[originalErrorContextKey] = detail.original
	return e
}
