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
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"

	"github.com/pjscruggs/logcore"
)

// ErrEnvVariablesNotValid wraps all resolution failures so callers can
// branch on the class of error without string matching.
var ErrEnvVariablesNotValid = errors.New("environment variables not valid")

// envConfig mirrors the recognized variables with their defaults.
type envConfig struct {
	File          string  `env:"LOGCORE_FILE"`
	AutoSave      bool    `env:"LOGCORE_AUTO_SAVE" envDefault:"true"`
	Memory        bool    `env:"LOGCORE_MEMORY" envDefault:"true"`
	MaxMemoryLogs int     `env:"LOGCORE_MAX_MEMORY_LOGS" envDefault:"1000"`
	CreateDirs    bool    `env:"LOGCORE_CREATE_DIRS" envDefault:"true"`
	CorrelationID string  `env:"LOGCORE_CORRELATION_ID"`
	MaxFileSizeMB float64 `env:"LOGCORE_MAX_FILE_SIZE_MB"`
	MinLevel      string  `env:"LOGCORE_MIN_LEVEL" envDefault:"DEBUG"`
}

// Load resolves a logcore.Config from the process environment.
func Load() (logcore.Config, error) {
	var vars envConfig
	if err := env.Parse(&vars); err != nil {
		return logcore.Config{}, fmt.Errorf("%w: %s", ErrEnvVariablesNotValid, err.Error())
	}
	return buildConfig(vars)
}

// buildConfig validates the parsed variables and maps them onto the core's
// Config shape.
func buildConfig(vars envConfig) (logcore.Config, error) {
	problems := make([]string, 0)

	if vars.MaxMemoryLogs < 0 {
		problems = append(problems, "LOGCORE_MAX_MEMORY_LOGS must not be negative")
	}
	if vars.MaxFileSizeMB < 0 {
		problems = append(problems, "LOGCORE_MAX_FILE_SIZE_MB must not be negative")
	}

	minLevel, err := logcore.ParseLevel(vars.MinLevel)
	if err != nil {
		problems = append(problems, fmt.Sprintf("LOGCORE_MIN_LEVEL: unknown level %q", vars.MinLevel))
	}

	if len(problems) > 0 {
		return logcore.Config{}, fmt.Errorf("%w: %s", ErrEnvVariablesNotValid, strings.Join(problems, ", "))
	}

	return logcore.Config{
		LogFile:          vars.File,
		AutoSave:         vars.AutoSave,
		KeepLogsInMemory: vars.Memory,
		MaxMemoryLogs:    vars.MaxMemoryLogs,
		CreateDirs:       vars.CreateDirs,
		CorrelationID:    vars.CorrelationID,
		MaxFileSizeMB:    vars.MaxFileSizeMB,
		MinLevel:         &minLevel,
	}, nil
}
