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

// Package logcoreenv resolves a [logcore.Config] from environment
// variables. It is the external configuration collaborator the core expects:
// resolution happens once, the result is immutable, and the core never
// re-reads live environment state afterwards.
//
// Recognized variables:
//
//	LOGCORE_FILE              persistence path (empty disables the sink)
//	LOGCORE_AUTO_SAVE         dispatch entries to the sink (default true)
//	LOGCORE_MEMORY            keep entries in memory (default true)
//	LOGCORE_MAX_MEMORY_LOGS   buffer bound (default 1000)
//	LOGCORE_CREATE_DIRS       create missing parent directories (default true)
//	LOGCORE_CORRELATION_ID    explicit correlation id (default generated)
//	LOGCORE_MAX_FILE_SIZE_MB  advisory size budget (not enforced by the core)
//	LOGCORE_MIN_LEVEL         severity floor (default DEBUG)
//
// Unlike the core, the resolver does report errors: a malformed variable is
// the operator's mistake and surfaces to the resolver's caller. Absent
// variables fall back to safe defaults.
package logcoreenv
