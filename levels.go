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
	"log/slog"
	"strconv"
	"strings"
)

// Level represents the severity of a log entry. It extends slog.Level with
// a CRITICAL step above ERROR and keeps the underlying integer representation
// compatible with slog.Level, so a Level can be used anywhere slog expects a
// Leveler.
type Level slog.Level

// Severity constants, mapped onto slog.Level integer values. The spacing
// follows slog's convention of four units between adjacent named levels.
const (
	// LevelDebug is the lowest severity retained by the core.
	LevelDebug Level = Level(slog.LevelDebug) // -4

	// LevelInfo is the default severity for routine operational entries.
	LevelInfo Level = Level(slog.LevelInfo) // 0

	// LevelWarning marks conditions worth reviewing but not yet failures.
	// Serialized as "WARNING" (not slog's "WARN") to keep the persisted
	// record self-describing for non-Go consumers.
	LevelWarning Level = Level(slog.LevelWarn) // 4

	// LevelError marks failures of the logged operation.
	LevelError Level = Level(slog.LevelError) // 8

	// LevelCritical marks failures that likely compromise the whole process.
	LevelCritical Level = 12
)

// levelNames holds the canonical wire names in ascending severity order.
var levelNames = []struct {
	level Level
	name  string
}{
	{LevelDebug, "DEBUG"},
	{LevelInfo, "INFO"},
	{LevelWarning, "WARNING"},
	{LevelError, "ERROR"},
	{LevelCritical, "CRITICAL"},
}

// String returns the canonical upper-case name of the level ("DEBUG",
// "INFO", "WARNING", "ERROR", "CRITICAL"). Values between defined constants
// are rendered as the nearest lower named level plus an offset, e.g.
// "INFO+2"; values below DEBUG fall back to slog's representation.
func (l Level) String() string {
	for _, ln := range levelNames {
		if l == ln.level {
			return ln.name
		}
	}

	if l < LevelDebug {
		return slog.Level(l).String()
	}

	base := levelNames[0]
	for _, ln := range levelNames {
		if l < ln.level {
			break
		}
		base = ln
	}
	return fmt.Sprintf("%s+%d", base.name, int(l-base.level))
}

// Level returns the underlying slog.Level, satisfying slog.Leveler.
func (l Level) Level() slog.Level { return slog.Level(l) }

// MarshalJSON serializes the level as its canonical name so persisted
// records and AI exports stay readable without this package's constants.
func (l Level) MarshalJSON() ([]byte, error) {
	return strconv.AppendQuote(nil, l.String()), nil
}

// UnmarshalJSON accepts either a canonical name or a bare slog integer,
// letting consumers of the persisted format round-trip entries.
func (l *Level) UnmarshalJSON(data []byte) error {
	if name, err := strconv.Unquote(string(data)); err == nil {
		parsed, perr := ParseLevel(name)
		if perr != nil {
			return perr
		}
		*l = parsed
		return nil
	}
	n, err := strconv.Atoi(string(data))
	if err != nil {
		return fmt.Errorf("logcore: invalid level %q", string(data))
	}
	*l = Level(n)
	return nil
}

// ParseLevel converts a textual level name into a Level. Matching is
// case-insensitive and tolerates slog's "WARN" alias for WARNING. An
// unrecognized name returns an error so configuration resolvers can report
// it; the core itself never calls ParseLevel on a hot path.
func ParseLevel(s string) (Level, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return LevelDebug, nil
	case "INFO":
		return LevelInfo, nil
	case "WARNING", "WARN":
		return LevelWarning, nil
	case "ERROR":
		return LevelError, nil
	case "CRITICAL":
		return LevelCritical, nil
	}
	return LevelInfo, fmt.Errorf("logcore: unknown level %q", s)
}

// levelFromSlog clamps an arbitrary slog.Level onto the five core levels.
// Intermediate slog values map to the nearest named level at or below them,
// and anything under DEBUG is treated as DEBUG.
func levelFromSlog(l slog.Level) Level {
	switch {
	case l >= slog.Level(LevelCritical):
		return LevelCritical
	case l >= slog.LevelError:
		return LevelError
	case l >= slog.LevelWarn:
		return LevelWarning
	case l >= slog.LevelInfo:
		return LevelInfo
	default:
		return LevelDebug
	}
}
