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
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
)

// Context keys injected by the builder when the per-call context carries a
// valid OpenTelemetry span.
const (
	traceIDContextKey = "trace_id"
	spanIDContextKey  = "span_id"
)

// newCorrelationID generates a collision-resistant identifier for a logger
// instance. It prefers a random UUID and degrades to a timestamp-derived id
// if the platform's entropy source fails, because logger construction must
// not fail.
func newCorrelationID() string {
	id, err := uuid.NewRandom()
	if err != nil {
		return "corr-" + strconv.FormatInt(time.Now().UnixNano(), 36)
	}
	return id.String()
}

// resolveCorrelationID picks the logger-wide correlation id at construction.
// An explicit non-empty configured id is echoed verbatim; empty or
// whitespace-only values count as unset and yield a generated id.
func resolveCorrelationID(configured string) string {
	if trimmed := strings.TrimSpace(configured); trimmed != "" {
		return configured
	}
	return newCorrelationID()
}

// traceIdentifiers extracts the raw hex trace and span ids from ctx. It is
// intentionally lightweight: it creates no spans, parses no headers, and
// never mutates the context. ok is false when ctx carries no valid span.
func traceIdentifiers(ctx context.Context) (traceID, spanID string, ok bool) {
	if ctx == nil {
		return "", "", false
	}
	sc := trace.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		return "", "", false
	}
	return sc.TraceID().String(), sc.SpanID().String(), true
}
