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
	"encoding/json"
	"fmt"
	"runtime"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestAllLevelsRetainedInCallOrder(t *testing.T) {
	logger := New(Config{KeepLogsInMemory: true, MaxMemoryLogs: 10})
	ctx := context.Background()

	logger.Debug(ctx, "op", "d")
	logger.Info(ctx, "op", "i")
	logger.Warning(ctx, "op", "w")
	logger.Error(ctx, "op", "e")
	logger.Critical(ctx, "op", "c")

	logs := logger.Logs()
	if len(logs) != 5 {
		t.Fatalf("retained %d entries, want 5", len(logs))
	}
	want := []Level{LevelDebug, LevelInfo, LevelWarning, LevelError, LevelCritical}
	for i, lvl := range want {
		if logs[i].Level != lvl {
			t.Errorf("logs[%d].Level = %s, want %s", i, logs[i].Level, lvl)
		}
	}
}

func TestExportForAIFiltersByOperation(t *testing.T) {
	logger := New(Config{KeepLogsInMemory: true, MaxMemoryLogs: 10})
	ctx := context.Background()

	logger.Info(ctx, "fetch_user", "first")
	logger.Info(ctx, "save_data", "second")
	logger.Info(ctx, "fetch_user", "third")

	data, err := logger.ExportForAI("fetch_user")
	if err != nil {
		t.Fatalf("ExportForAI: %v", err)
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		t.Fatalf("export is not a JSON array: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("exported %d entries, want 2", len(entries))
	}
	if entries[0].Message != "first" || entries[1].Message != "third" {
		t.Errorf("filtered order wrong: %q, %q", entries[0].Message, entries[1].Message)
	}
	for _, e := range entries {
		if e.Operation != "fetch_user" {
			t.Errorf("leaked operation %q", e.Operation)
		}
	}
}

func TestExportForAISubstringMatch(t *testing.T) {
	logger := New(Config{KeepLogsInMemory: true, MaxMemoryLogs: 10})
	ctx := context.Background()

	logger.Info(ctx, "fetch_user", "a")
	logger.Info(ctx, "fetch_orders", "b")
	logger.Info(ctx, "save_data", "c")

	data, err := logger.ExportForAI("fetch")
	if err != nil {
		t.Fatalf("ExportForAI: %v", err)
	}
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Errorf("substring filter matched %d entries, want 2", len(entries))
	}
}

func TestExportForAIEmptyBuffer(t *testing.T) {
	logger := New(Config{KeepLogsInMemory: true})

	data, err := logger.ExportForAI("")
	if err != nil {
		t.Fatalf("ExportForAI: %v", err)
	}
	if string(data) != "[]" {
		t.Errorf("empty export = %s, want []", data)
	}

	logger.Info(context.Background(), "op", "m")
	data, err = logger.ExportForAI("no_such_operation")
	if err != nil {
		t.Fatalf("ExportForAI: %v", err)
	}
	if string(data) != "[]" {
		t.Errorf("all-excluding export = %s, want []", data)
	}
}

func TestConcurrentLoggingIntegrity(t *testing.T) {
	const workers = 5
	const perWorker = 10

	logger := New(Config{KeepLogsInMemory: true, MaxMemoryLogs: 100})
	ctx := context.Background()

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		w := w
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				logger.Info(ctx, "work", fmt.Sprintf("worker %d call %d", w, i),
					WithField("worker_id", w))
			}
		}()
	}
	wg.Wait()

	logs := logger.Logs()
	if len(logs) != workers*perWorker {
		t.Fatalf("retained %d entries, want %d", len(logs), workers*perWorker)
	}

	seen := map[int]int{}
	for _, e := range logs {
		id, ok := e.Context["worker_id"].(int)
		if !ok {
			t.Fatalf("worker_id missing or wrong type in %v", e.Context)
		}
		seen[id]++
	}
	for w := 0; w < workers; w++ {
		if seen[w] != perWorker {
			t.Errorf("worker %d has %d entries, want %d", w, seen[w], perWorker)
		}
	}
}

func TestSetMinLevelFiltersRetention(t *testing.T) {
	logger := New(Config{KeepLogsInMemory: true, MaxMemoryLogs: 10})
	ctx := context.Background()

	logger.SetMinLevel(LevelWarning)
	if logger.MinLevel() != LevelWarning {
		t.Errorf("MinLevel() = %s, want WARNING", logger.MinLevel())
	}

	e := logger.Debug(ctx, "op", "below floor")
	if e.Message != "below floor" {
		t.Errorf("filtered call did not return its entry")
	}
	logger.Info(ctx, "op", "also below")
	logger.Warning(ctx, "op", "at floor")
	logger.Critical(ctx, "op", "above floor")

	logs := logger.Logs()
	if len(logs) != 2 {
		t.Fatalf("retained %d entries, want 2", len(logs))
	}
	if logs[0].Message != "at floor" || logs[1].Message != "above floor" {
		t.Errorf("wrong entries retained: %v", logs)
	}
}

func TestMinLevelFromConfig(t *testing.T) {
	min := LevelError
	logger := New(Config{KeepLogsInMemory: true, MinLevel: &min})
	ctx := context.Background()

	logger.Warning(ctx, "op", "dropped")
	logger.Error(ctx, "op", "kept")

	if logs := logger.Logs(); len(logs) != 1 || logs[0].Message != "kept" {
		t.Errorf("config floor not applied: %v", logs)
	}
}

func TestWithClockControlsTimestamps(t *testing.T) {
	fixed := time.Date(2026, 8, 26, 9, 30, 0, 123456789, time.FixedZone("CEST", 2*3600))
	logger := New(Config{KeepLogsInMemory: true},
		WithClock(func() time.Time { return fixed }))

	e := logger.Info(context.Background(), "op", "m")

	if !e.Timestamp.Equal(fixed) {
		t.Errorf("timestamp = %v, want %v", e.Timestamp, fixed)
	}
	if e.Timestamp.Location() != time.UTC {
		t.Errorf("timestamp location = %v, want UTC", e.Timestamp.Location())
	}

	data, err := json.Marshal(e)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(data), `"timestamp":"2026-08-26T07:30:00.123456789Z"`) {
		t.Errorf("timestamp wire format wrong: %s", data)
	}
}

func TestEntryCarriesEnvironmentAndSource(t *testing.T) {
	logger := New(Config{KeepLogsInMemory: true})

	e := logger.Info(context.Background(), "op", "m")

	if e.Environment.OS != runtime.GOOS {
		t.Errorf("environment OS = %q, want %q", e.Environment.OS, runtime.GOOS)
	}
	if e.Environment.Architecture != runtime.GOARCH {
		t.Errorf("environment arch = %q, want %q", e.Environment.Architecture, runtime.GOARCH)
	}
	if e.Environment.RuntimeVersion == "" {
		t.Error("runtime version empty")
	}
	if e.Source.Function == "" || e.Source.File == "" || e.Source.Line == 0 {
		t.Errorf("source not resolved: %+v", e.Source)
	}
}

func TestAnnotationsOnEntries(t *testing.T) {
	logger := New(Config{KeepLogsInMemory: true})

	e := logger.Warning(context.Background(), "cache_read", "stale value served",
		WithHumanNote("expected during the migration window"),
		WithAITodo("verify the cache warmer ran after the deploy"),
	)

	if e.HumanNote == "" || e.AITodo == "" {
		t.Errorf("annotations missing: %+v", e)
	}

	data, err := json.Marshal(e)
	if err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{`"human_note"`, `"ai_todo"`} {
		if !strings.Contains(string(data), key) {
			t.Errorf("wire record missing %s: %s", key, data)
		}
	}

	// Absent annotations stay off the wire.
	plain := logger.Info(context.Background(), "op", "m")
	data, err = json.Marshal(plain)
	if err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{`"human_note"`, `"ai_todo"`, `"stack_trace"`} {
		if strings.Contains(string(data), key) {
			t.Errorf("empty field %s serialized: %s", key, data)
		}
	}
}

func TestCloseWithoutSinkIsNoop(t *testing.T) {
	logger := New(Config{KeepLogsInMemory: true})
	if err := logger.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
	if err := logger.Flush(); err != nil {
		t.Errorf("Flush: %v", err)
	}
	if err := logger.ReopenLogFile(); err != nil {
		t.Errorf("ReopenLogFile: %v", err)
	}
}

func TestMaxFileSizeAdvisoryOnly(t *testing.T) {
	logger := New(Config{KeepLogsInMemory: true, MaxMemoryLogs: 10}, WithMaxFileSizeMB(0.001))
	ctx := context.Background()

	long := strings.Repeat("x", 4096)
	for i := 0; i < 10; i++ {
		logger.Info(ctx, "op", long)
	}

	if logger.MaxFileSizeMB() != 0.001 {
		t.Errorf("MaxFileSizeMB = %v", logger.MaxFileSizeMB())
	}
	if len(logger.Logs()) != 10 {
		t.Errorf("advisory budget affected retention: %d entries", len(logger.Logs()))
	}
}
