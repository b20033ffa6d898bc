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
	"errors"
	"runtime"
	"strconv"
	"strings"
	"sync"
)

// maxStackFrames caps the number of frames captured for stack traces.
const maxStackFrames = 64

var stackPCPool = sync.Pool{
	New: func() any {
		buf := make([]uintptr, maxStackFrames)
		return &buf
	},
}

// stackTracer is the interface errors can implement to carry their own stack
// as program counters. Compatible with github.com/pkg/errors.
type stackTracer interface {
	StackTrace() []uintptr
}

// stackFromError returns the formatted stack captured by the error itself
// (or an error it wraps), or "" when none is available.
func stackFromError(err error) string {
	var st stackTracer
	if !errors.As(err, &st) {
		return ""
	}
	pcs := st.StackTrace()
	if len(pcs) == 0 {
		return ""
	}
	if len(pcs) > maxStackFrames {
		pcs = pcs[:maxStackFrames]
	}
	return formatStackPCs(pcs)
}

// captureStackTrace captures the current goroutine stack with internal
// frames trimmed, formatted the way runtime.Stack would print it.
func captureStackTrace() string {
	bufPtr := stackPCPool.Get().(*[]uintptr)
	defer stackPCPool.Put(bufPtr)

	pcs := (*bufPtr)[:cap(*bufPtr)]
	n := runtime.Callers(0, pcs)
	if n == 0 {
		return ""
	}
	trimmed := trimInternalFrames(pcs[:n])
	if len(trimmed) == 0 {
		trimmed = pcs[:n]
	}
	return formatStackPCs(trimmed)
}

// callerSource resolves the first stack frame outside this package and the
// runtime machinery. Resolution is best-effort: a zero SourceLocation is
// returned when no suitable frame exists.
func callerSource() SourceLocation {
	bufPtr := stackPCPool.Get().(*[]uintptr)
	defer stackPCPool.Put(bufPtr)

	pcs := (*bufPtr)[:cap(*bufPtr)]
	n := runtime.Callers(2, pcs)
	if n == 0 {
		return SourceLocation{}
	}

	frames := runtime.CallersFrames(pcs[:n])
	for {
		frame, more := frames.Next()
		if frame.Function != "" && !isInternalFrame(frame.Function) {
			return SourceLocation{
				Function: frame.Function,
				File:     frame.File,
				Line:     frame.Line,
			}
		}
		if !more {
			return SourceLocation{}
		}
	}
}

// trimInternalFrames drops leading frames that belong to logcore, slog, or
// the runtime so traces start at the caller's code.
func trimInternalFrames(pcs []uintptr) []uintptr {
	frames := runtime.CallersFrames(pcs)
	skip := 0
	for {
		frame, more := frames.Next()
		if !isInternalFrame(frame.Function) {
			break
		}
		skip++
		if !more {
			return nil
		}
	}
	return pcs[skip:]
}

// isInternalFrame reports whether a function belongs to logcore or runtime
// internals and should be hidden from user-facing traces.
func isInternalFrame(funcName string) bool {
	if funcName == "" {
		return false
	}
	if strings.HasPrefix(funcName, "runtime.") {
		return true
	}
	return strings.HasPrefix(funcName, "github.com/pjscruggs/logcore/") ||
		strings.HasPrefix(funcName, "github.com/pjscruggs/logcore.") ||
		strings.HasPrefix(funcName, "log/slog.")
}

// formatStackPCs renders program counters as a Go-standard stack trace
// string, prefixed with the current goroutine header.
func formatStackPCs(pcs []uintptr) string {
	if len(pcs) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.Grow(len(pcs) * 64)
	if header := goroutineHeader(); header != "" {
		sb.WriteString(header)
		sb.WriteByte('\n')
	}

	frames := runtime.CallersFrames(pcs)
	count := 0
	for {
		frame, more := frames.Next()
		if frame.PC == 0 {
			break
		}
		if frame.Function == "" || frame.Function == "runtime.goexit" {
			if !more {
				break
			}
			continue
		}

		sb.WriteString(frame.Function)
		sb.WriteString("\n\t")
		sb.WriteString(frame.File)
		sb.WriteByte(':')
		sb.WriteString(strconv.Itoa(frame.Line))
		sb.WriteByte('\n')

		count++
		if !more || count >= maxStackFrames {
			break
		}
	}
	return sb.String()
}

// goroutineHeader returns the header line runtime.Stack emits for the
// current goroutine, e.g. "goroutine 12 [running]:".
func goroutineHeader() string {
	var buf [128]byte
	n := runtime.Stack(buf[:], false)
	if n <= 0 {
		return ""
	}
	header := string(buf[:n])
	if idx := strings.IndexByte(header, '\n'); idx >= 0 {
		header = header[:idx]
	}
	return strings.TrimSpace(header)
}
