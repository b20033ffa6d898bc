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

import "time"

// Entry is one structured log record. Entries are fully populated before
// they reach the buffer or the file sink, and the logger only ever hands out
// copies, so callers can treat every Entry they receive as immutable.
//
// The JSON field names below are the persisted wire format: one Entry per
// line in the log file, and one Entry per element in the AI export array.
type Entry struct {
	// Timestamp is the UTC instant the entry was built. It serializes in
	// RFC 3339 form with the explicit "Z" marker.
	Timestamp time.Time `json:"timestamp"`

	// Level is the entry severity.
	Level Level `json:"level"`

	// Operation is the caller-supplied short identifier of the logical
	// action being logged, e.g. "fetch_user".
	Operation string `json:"operation"`

	// Message is the human-readable text of the entry.
	Message string `json:"message"`

	// Context carries arbitrary caller-supplied key/value detail. It is
	// always JSON-serializable after construction: values that cannot be
	// represented (functions, channels, cycles) were replaced with
	// placeholder strings by the builder.
	Context map[string]any `json:"context,omitempty"`

	// CorrelationID groups every entry emitted by one logical session. It
	// is stable for the lifetime of a Logger unless overridden per call.
	CorrelationID string `json:"correlation_id"`

	// HumanNote is an optional free-text annotation addressed to human
	// reviewers.
	HumanNote string `json:"human_note,omitempty"`

	// AITodo is an optional free-text annotation addressed to automated
	// reviewers.
	AITodo string `json:"ai_todo,omitempty"`

	// StackTrace is populated only by exception logging.
	StackTrace string `json:"stack_trace,omitempty"`

	// Environment is a snapshot of the execution environment.
	Environment EnvironmentInfo `json:"environment"`

	// Source is best-effort caller-location metadata. It may be zero when
	// the caller could not be resolved; it is never required to be exact.
	Source SourceLocation `json:"source"`
}

// EnvironmentInfo describes the process environment an entry was produced
// in. It is captured once per process and stamped onto every entry.
type EnvironmentInfo struct {
	// OS is the operating system target, e.g. "linux".
	OS string `json:"os"`

	// Platform names the managed platform when one is detected (e.g.
	// "cloud_run", "kubernetes") and otherwise repeats the OS.
	Platform string `json:"platform"`

	// Architecture is the processor architecture, e.g. "amd64".
	Architecture string `json:"architecture"`

	// RuntimeVersion identifies the Go runtime, e.g. "go1.25.0".
	RuntimeVersion string `json:"runtime_version"`

	// Labels carries platform-specific detail (service names, pod names)
	// when a managed platform was detected.
	Labels map[string]string `json:"labels,omitempty"`
}

// SourceLocation identifies the code location of a logging call.
type SourceLocation struct {
	Function string `json:"function,omitempty"`
	File     string `json:"file,omitempty"`
	Line     int    `json:"line,omitempty"`
}

// clone returns a copy of the entry with its own top-level context map, so
// buffered entries and entries returned to callers cannot alias each other's
// mutations.
func (e Entry) clone() Entry {
	if e.Context == nil {
		return e
	}
	ctx := make(map[string]any, len(e.Context))
	for k, v := range e.Context {
		ctx[k] = v
	}
	e.Context = ctx
	return e
}
