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

package logcoreenv

import (
	"errors"
	"strings"
	"testing"

	"github.com/pjscruggs/logcore"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.LogFile != "" {
		t.Errorf("LogFile = %q, want empty", cfg.LogFile)
	}
	if !cfg.AutoSave || !cfg.KeepLogsInMemory || !cfg.CreateDirs {
		t.Errorf("boolean defaults wrong: %+v", cfg)
	}
	if cfg.MaxMemoryLogs != 1000 {
		t.Errorf("MaxMemoryLogs = %d, want 1000", cfg.MaxMemoryLogs)
	}
	if cfg.MinLevel == nil || *cfg.MinLevel != logcore.LevelDebug {
		t.Errorf("MinLevel = %v, want DEBUG", cfg.MinLevel)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("LOGCORE_FILE", "/var/log/app/core.jsonl")
	t.Setenv("LOGCORE_AUTO_SAVE", "false")
	t.Setenv("LOGCORE_MEMORY", "false")
	t.Setenv("LOGCORE_MAX_MEMORY_LOGS", "250")
	t.Setenv("LOGCORE_CREATE_DIRS", "false")
	t.Setenv("LOGCORE_CORRELATION_ID", "sess-7")
	t.Setenv("LOGCORE_MAX_FILE_SIZE_MB", "12.5")
	t.Setenv("LOGCORE_MIN_LEVEL", "warning")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.LogFile != "/var/log/app/core.jsonl" {
		t.Errorf("LogFile = %q", cfg.LogFile)
	}
	if cfg.AutoSave || cfg.KeepLogsInMemory || cfg.CreateDirs {
		t.Errorf("boolean overrides ignored: %+v", cfg)
	}
	if cfg.MaxMemoryLogs != 250 {
		t.Errorf("MaxMemoryLogs = %d, want 250", cfg.MaxMemoryLogs)
	}
	if cfg.CorrelationID != "sess-7" {
		t.Errorf("CorrelationID = %q", cfg.CorrelationID)
	}
	if cfg.MaxFileSizeMB != 12.5 {
		t.Errorf("MaxFileSizeMB = %v", cfg.MaxFileSizeMB)
	}
	if cfg.MinLevel == nil || *cfg.MinLevel != logcore.LevelWarning {
		t.Errorf("MinLevel = %v, want WARNING", cfg.MinLevel)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"unknown level", "LOGCORE_MIN_LEVEL", "verbose"},
		{"negative buffer", "LOGCORE_MAX_MEMORY_LOGS", "-5"},
		{"negative size", "LOGCORE_MAX_FILE_SIZE_MB", "-1"},
		{"non-boolean", "LOGCORE_AUTO_SAVE", "maybe"},
		{"non-numeric", "LOGCORE_MAX_MEMORY_LOGS", "many"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(tc.key, tc.value)

			_, err := Load()
			if err == nil {
				t.Fatalf("Load accepted %s=%q", tc.key, tc.value)
			}
			if !errors.Is(err, ErrEnvVariablesNotValid) {
				t.Errorf("error not wrapped: %v", err)
			}
		})
	}
}

func TestLoadCollectsAllProblems(t *testing.T) {
	t.Setenv("LOGCORE_MAX_MEMORY_LOGS", "-5")
	t.Setenv("LOGCORE_MIN_LEVEL", "verbose")

	_, err := Load()
	if err == nil {
		t.Fatal("Load accepted two invalid values")
	}
	msg := err.Error()
	for _, want := range []string{"LOGCORE_MAX_MEMORY_LOGS", "LOGCORE_MIN_LEVEL"} {
		if !strings.Contains(msg, want) {
			t.Errorf("error %q does not name %s", msg, want)
		}
	}
}
