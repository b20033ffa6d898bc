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
	"fmt"
	"reflect"
	"unicode"
)

// Context keys injected by exception logging.
const (
	errorTypeContextKey     = "error_type"
	originalErrorContextKey = "original_error"
)

// exceptionDetail is the deterministic rendering of an arbitrary value
// passed to LogException. Building one never fails, whatever the input
// shape: the conversion is a closed dispatch over error values, primitives,
// composite values, and nothing at all.
type exceptionDetail struct {
	message   string
	stack     string
	errorType string
	original  any
}

// describeException classifies errVal and renders it. The message always
// has the form "<KindLabel>: <description>".
func describeException(errVal any) exceptionDetail {
	// A typed nil (e.g. a nil *T boxed in the error interface) would panic
	// inside Error(), so it lands in the no-value arm with its type kept.
	if errVal == nil || isTypedNil(errVal) {
		errorType := "nil"
		if errVal != nil {
			errorType = fmt.Sprintf("%T", errVal)
		}
		return exceptionDetail{
			message:   "UnknownError: (no error value)",
			stack:     captureStackTrace(),
			errorType: errorType,
			original:  "<nil>",
		}
	}

	if err, ok := errVal.(error); ok {
		return describeErrorValue(err)
	}

	kind := reflect.ValueOf(errVal).Kind()
	switch kind {
	case reflect.String:
		return primitiveDetail("StringError", errVal)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return primitiveDetail("NumberError", errVal)
	case reflect.Bool:
		return primitiveDetail("BoolError", errVal)
	default:
		return objectDetail(errVal)
	}
}

// describeErrorValue renders a proper Go error, preferring a stack the
// error itself carries over a fresh capture at the logging call.
func describeErrorValue(err error) exceptionDetail {
	stack := stackFromError(err)
	if stack == "" {
		stack = captureStackTrace()
	}

	msg := err.Error()
	if msg == "" {
		msg = "(empty error message)"
	}

	return exceptionDetail{
		message:   errorKindLabel(err) + ": " + msg,
		stack:     stack,
		errorType: fmt.Sprintf("%T", err),
		original:  err.Error(),
	}
}

// primitiveDetail renders string, numeric, and boolean values thrown as
// errors.
func primitiveDetail(label string, v any) exceptionDetail {
	return exceptionDetail{
		message:   fmt.Sprintf("%s: %v", label, v),
		stack:     captureStackTrace(),
		errorType: fmt.Sprintf("%T", v),
		original:  v,
	}
}

// objectDetail renders composite values (maps, structs, slices, whatever
// else), degrading unserializable content through the sanitizer.
func objectDetail(v any) exceptionDetail {
	return exceptionDetail{
		message:   fmt.Sprintf("ObjectError: %v", v),
		stack:     captureStackTrace(),
		errorType: fmt.Sprintf("%T", v),
		original:  sanitizeValue(v, map[uintptr]bool{}, 0),
	}
}

// errorKindLabel derives a readable label from an error's concrete type,
// e.g. *fs.PathError -> "PathError". Errors made by errors.New and
// fmt.Errorf report their unexported concrete types, which would leak
// implementation noise into messages, so those collapse to "Error".
func errorKindLabel(err error) string {
	t := reflect.TypeOf(err)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil {
		return "Error"
	}
	name := t.Name()
	if name == "" {
		return "Error"
	}
	first := rune(name[0])
	if !unicode.IsUpper(first) {
		return "Error"
	}
	return name
}
