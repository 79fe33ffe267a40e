// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

// Package log defines the optional logging collaborator spec §6 names (a
// sink accepting level/category/message events) and a logrus-backed default
// implementation, matching the logging library the teacher uses throughout
// (e.g. pkg/util/perfstats.go).
package log

// Level is the closed set of severities a Sink event can carry.
type Level uint8

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "unknown"
	}
}

// Sink is the logging collaborator the core consumes (spec §6). Logging is
// optional: when a caller does not configure one, the core proceeds
// silently rather than writing to a default destination.
type Sink interface {
	Log(level Level, category, message string)
}
