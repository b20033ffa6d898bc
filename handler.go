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
	"log/slog"
)

// operationAttrKey is the slog attribute lifted into Entry.Operation when
// present; records without it fall back to defaultSlogOperation.
const (
	operationAttrKey     = "operation"
	defaultSlogOperation = "slog"
)

// Handler returns a slog.Handler that routes records through this logger's
// engine, so code written against log/slog feeds the same buffer and file
// sink. slog levels are clamped onto the five core levels; attribute groups
// become nested context maps; a string attribute named "operation" becomes
// the entry's operation.
func (l *Logger) Handler() slog.Handler {
	return &engineHandler{logger: l}
}

// engineHandler adapts the logging engine to the slog.Handler contract.
// WithAttrs and WithGroup accumulate state immutably, as slog requires.
type engineHandler struct {
	logger *Logger
	attrs  []slog.Attr
	groups []string
}

// Enabled reports whether records at level pass the logger's severity floor.
func (h *engineHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.logger.levelVar.Level()
}

// Handle converts rec into an Entry and records it. It always returns nil:
// the engine's never-fail contract extends to the slog surface.
func (h *engineHandler) Handle(ctx context.Context, rec slog.Record) error {
	fields := make(map[string]any, rec.NumAttrs()+len(h.attrs))
	for _, a := range h.attrs {
		addAttr(fields, a)
	}

	recFields := fields
	if len(h.groups) > 0 {
		recFields = nestedGroup(fields, h.groups)
	}
	rec.Attrs(func(a slog.Attr) bool {
		addAttr(recFields, a)
		return true
	})

	operation := defaultSlogOperation
	if op, ok := recFields[operationAttrKey].(string); ok && op != "" {
		operation = op
		delete(recFields, operationAttrKey)
	}

	e := h.logger.buildEntry(ctx, levelFromSlog(rec.Level), operation, rec.Message, nil)
	if len(fields) > 0 {
		if e.Context == nil {
			e.Context = make(map[string]any, len(fields))
		}
		for k, v := range sanitizeContext(fields) {
			e.Context[k] = v
		}
	}
	if !rec.Time.IsZero() {
		e.Timestamp = rec.Time.UTC()
	}

	h.logger.record(e)
	return nil
}

// WithAttrs returns a handler whose future records carry attrs, scoped to
// the currently open groups.
func (h *engineHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	scoped := attrs
	for i := len(h.groups) - 1; i >= 0; i-- {
		scoped = []slog.Attr{slog.Attr{Key: h.groups[i], Value: slog.GroupValue(scoped...)}}
	}
	next := h.clone()
	next.attrs = append(next.attrs, scoped...)
	return next
}

// WithGroup returns a handler that nests subsequent attributes under name.
func (h *engineHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := h.clone()
	next.groups = append(next.groups, name)
	return next
}

func (h *engineHandler) clone() *engineHandler {
	return &engineHandler{
		logger: h.logger,
		attrs:  append([]slog.Attr(nil), h.attrs...),
		groups: append([]string(nil), h.groups...),
	}
}

// addAttr folds one slog attribute into fields, expanding groups into
// nested maps and resolving LogValuers.
func addAttr(fields map[string]any, a slog.Attr) {
	v := a.Value.Resolve()
	if v.Kind() == slog.KindGroup {
		members := v.Group()
		if len(members) == 0 {
			return
		}
		target := fields
		if a.Key != "" {
			nested, ok := fields[a.Key].(map[string]any)
			if !ok {
				nested = make(map[string]any, len(members))
				fields[a.Key] = nested
			}
			target = nested
		}
		for _, m := range members {
			addAttr(target, m)
		}
		return
	}
	if a.Key == "" {
		return
	}
	fields[a.Key] = v.Any()
}

// nestedGroup walks (creating as needed) the map chain for the open groups
// and returns the innermost map.
func nestedGroup(fields map[string]any, groups []string) map[string]any {
	current := fields
	for _, g := range groups {
		nested, ok := current[g].(map[string]any)
		if !ok {
			nested = make(map[string]any)
			current[g] = nested
		}
		current = nested
	}
	return current
}
