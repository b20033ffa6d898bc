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
	"testing"
)

func TestHandlerRoutesSlogRecords(t *testing.T) {
	logger := New(Config{KeepLogsInMemory: true, MaxMemoryLogs: 10})
	sl := slog.New(logger.Handler())

	sl.Info("profile loaded", "operation", "fetch_user", "user_id", 7)

	logs := logger.Logs()
	if len(logs) != 1 {
		t.Fatalf("buffered %d entries, want 1", len(logs))
	}
	e := logs[0]
	if e.Level != LevelInfo || e.Message != "profile loaded" {
		t.Errorf("entry = %+v", e)
	}
	if e.Operation != "fetch_user" {
		t.Errorf("operation = %q, want fetch_user", e.Operation)
	}
	if got, ok := e.Context["user_id"].(int64); !ok || got != 7 {
		t.Errorf("user_id = %v (%T)", e.Context["user_id"], e.Context["user_id"])
	}
	if _, ok := e.Context[operationAttrKey]; ok {
		t.Error("operation attribute leaked into context")
	}
	if e.CorrelationID != logger.CorrelationID() {
		t.Errorf("correlation id = %q", e.CorrelationID)
	}
}

func TestHandlerDefaultOperation(t *testing.T) {
	logger := New(Config{KeepLogsInMemory: true})
	sl := slog.New(logger.Handler())

	sl.Warn("no operation attribute")

	logs := logger.Logs()
	if len(logs) != 1 || logs[0].Operation != defaultSlogOperation {
		t.Errorf("operation = %q, want %q", logs[0].Operation, defaultSlogOperation)
	}
}

func TestHandlerWithAttrsAndGroups(t *testing.T) {
	logger := New(Config{KeepLogsInMemory: true})
	sl := slog.New(logger.Handler()).With("app", "demo").WithGroup("req")

	sl.Warn("slow request", "id", int64(42))

	logs := logger.Logs()
	if len(logs) != 1 {
		t.Fatalf("buffered %d entries, want 1", len(logs))
	}
	ctx := logs[0].Context
	if ctx["app"] != "demo" {
		t.Errorf("app = %v", ctx["app"])
	}
	req, ok := ctx["req"].(map[string]any)
	if !ok {
		t.Fatalf("req group = %T, want map", ctx["req"])
	}
	if got, ok := req["id"].(int64); !ok || got != 42 {
		t.Errorf("req.id = %v", req["id"])
	}
}

func TestHandlerLevelMapping(t *testing.T) {
	logger := New(Config{KeepLogsInMemory: true, MaxMemoryLogs: 10})
	sl := slog.New(logger.Handler())
	ctx := context.Background()

	sl.Debug("d")
	sl.Info("i")
	sl.Warn("w")
	sl.Error("e")
	sl.Log(ctx, slog.Level(12), "c")

	logs := logger.Logs()
	if len(logs) != 5 {
		t.Fatalf("buffered %d entries, want 5", len(logs))
	}
	want := []Level{LevelDebug, LevelInfo, LevelWarning, LevelError, LevelCritical}
	for i, lvl := range want {
		if logs[i].Level != lvl {
			t.Errorf("logs[%d].Level = %s, want %s", i, logs[i].Level, lvl)
		}
	}
}

func TestHandlerHonorsSeverityFloor(t *testing.T) {
	logger := New(Config{KeepLogsInMemory: true, MaxMemoryLogs: 10})
	logger.SetMinLevel(LevelWarning)
	sl := slog.New(logger.Handler())

	sl.Info("filtered out")
	sl.Error("kept")

	logs := logger.Logs()
	if len(logs) != 1 || logs[0].Message != "kept" {
		t.Errorf("floor not honored: %v", logs)
	}
}

func TestHandlerNeverReturnsError(t *testing.T) {
	logger := New(Config{KeepLogsInMemory: true})
	h := logger.Handler()

	rec := slog.Record{Level: slog.LevelInfo, Message: "bare record"}
	if err := h.Handle(context.Background(), rec); err != nil {
		t.Errorf("Handle: %v", err)
	}

	logs := logger.Logs()
	if len(logs) != 1 {
		t.Fatalf("buffered %d entries, want 1", len(logs))
	}
	if logs[0].Timestamp.IsZero() {
		t.Error("zero record time not replaced with the clock")
	}
}
