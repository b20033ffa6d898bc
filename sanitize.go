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
	"encoding/json"
	"fmt"
	"reflect"
	"time"
)

// maxSanitizeDepth bounds the recursion of the sanitizer independently of
// cycle detection, so pathological non-cyclic nesting still terminates.
const maxSanitizeDepth = 32

const (
	omittedCycle = "<omitted: cyclic reference>"
	omittedDepth = "<omitted: max depth exceeded>"
)

// sanitizeContext returns a freshly built map whose values are guaranteed to
// be JSON-serializable. The input is never mutated. A nil or empty input
// yields nil so empty contexts stay off the wire.
func sanitizeContext(in map[string]any) map[string]any {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]any, len(in))
	seen := map[uintptr]bool{}
	for k, v := range in {
		out[k] = sanitizeValue(v, seen, 0)
	}
	return out
}

// sanitizeValue renders v into a JSON-representable value. Cyclic references
// are detected with a visited set over pointer identities rather than by
// recursion limits alone, so self-referential structures terminate with a
// placeholder instead of looping.
func sanitizeValue(v any, seen map[uintptr]bool, depth int) any {
	if v == nil {
		return nil
	}
	if depth > maxSanitizeDepth {
		return omittedDepth
	}

	switch t := v.(type) {
	case string, bool,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64,
		json.Number, time.Time, time.Duration:
		return t
	case error:
		if isTypedNil(t) {
			return "<nil>"
		}
		return t.Error()
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return unserializablePlaceholder(v)

	case reflect.Pointer:
		if rv.IsNil() {
			return nil
		}
		addr := rv.Pointer()
		if seen[addr] {
			return omittedCycle
		}
		seen[addr] = true
		defer delete(seen, addr)
		return sanitizeValue(rv.Elem().Interface(), seen, depth+1)

	case reflect.Map:
		if rv.IsNil() {
			return nil
		}
		addr := rv.Pointer()
		if seen[addr] {
			return omittedCycle
		}
		seen[addr] = true
		defer delete(seen, addr)

		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			key := fmt.Sprint(iter.Key().Interface())
			out[key] = sanitizeValue(iter.Value().Interface(), seen, depth+1)
		}
		return out

	case reflect.Slice:
		if rv.IsNil() {
			return nil
		}
		addr := rv.Pointer()
		if seen[addr] {
			return omittedCycle
		}
		seen[addr] = true
		defer delete(seen, addr)
		return sanitizeSequence(rv, seen, depth)

	case reflect.Array:
		return sanitizeSequence(rv, seen, depth)

	default:
		// Structs and anything else: accept as-is when encoding/json can
		// handle the value, otherwise degrade to a placeholder. Pointer
		// cycles inside the struct were already caught above.
		if _, err := json.Marshal(v); err != nil {
			return unserializablePlaceholder(v)
		}
		return v
	}
}

// sanitizeSequence walks a slice or array value element by element.
func sanitizeSequence(rv reflect.Value, seen map[uintptr]bool, depth int) []any {
	out := make([]any, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		out[i] = sanitizeValue(rv.Index(i).Interface(), seen, depth+1)
	}
	return out
}

// unserializablePlaceholder describes the omission, keeping the dynamic type
// visible to reviewers reading the persisted record.
func unserializablePlaceholder(v any) string {
	return fmt.Sprintf("<omitted: unserializable %T>", v)
}

// isTypedNil reports whether v is a non-nil interface wrapping a nil
// pointer, map, slice, func, or channel. Such values compare unequal to nil
// yet panic when a pointer-receiver method like Error is invoked on them.
func isTypedNil(v any) bool {
	if v == nil {
		return false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice,
		reflect.Func, reflect.Chan, reflect.Interface, reflect.UnsafePointer:
		return rv.IsNil()
	}
	return false
}
