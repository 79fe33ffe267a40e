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

// Package diag owns the Diagnostic Model: the Issue and Result types every
// other component of the analyzer produces, plus the ordering rule that
// aggregation applies before handing a Result back to the caller.
//
// Every string field of an Issue is a Go string, which is always a freshly
// allocated, independently owned value (Go strings are immutable and never
// alias caller-supplied mutable buffers once constructed from a []byte
// conversion). This satisfies spec §4.6/§9's "every string field is owned by
// the issue" rule structurally, without a manual release step; FreeResult in
// package analyzer exists only as a documented no-op for callers who expect
// that symbol.
package diag

// Severity ranks how serious a diagnostic is.
type Severity uint8

const (
	// SeverityInfo is purely informational (e.g. "no tests in this file").
	SeverityInfo Severity = iota
	// SeverityWarning flags a likely but not certain defect.
	SeverityWarning
	// SeverityError flags a defect the caller should treat as build-breaking.
	SeverityError
)

// String renders a Severity the way formatters display it.
func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	default:
		return "unknown"
	}
}

// rank orders severities for sorting: errors first, then warnings, then info.
func (s Severity) rank() int {
	switch s {
	case SeverityError:
		return 0
	case SeverityWarning:
		return 1
	case SeverityInfo:
		return 2
	default:
		return 3
	}
}

// Kind is the closed set of diagnostic kinds the analyzer can emit.
type Kind uint8

const (
	MissingScopedRelease Kind = iota
	AllocatorMismatch
	DisallowedAllocator
	ArenaInLibrary
	OwnershipTransferHint
	InvalidTestNaming
	MissingTestCategory
	TestOutsideAllowedCategories
	MissingTestsInFile
	ParseFailure
	ConfigurationError
	PatternValidationWarning
)

var kindNames = map[Kind]string{
	MissingScopedRelease:         "missing_scoped_release",
	AllocatorMismatch:            "allocator_mismatch",
	DisallowedAllocator:          "disallowed_allocator",
	ArenaInLibrary:               "arena_in_library",
	OwnershipTransferHint:        "ownership_transfer_hint",
	InvalidTestNaming:            "invalid_test_naming",
	MissingTestCategory:          "missing_test_category",
	TestOutsideAllowedCategories: "test_outside_allowed_categories",
	MissingTestsInFile:           "missing_tests_in_file",
	ParseFailure:                 "parse_failure",
	ConfigurationError:           "configuration_error",
	PatternValidationWarning:     "pattern_validation_warning",
}

// String renders a Kind using its wire name (snake_case, matching spec §3).
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}

	return "unknown"
}

// rank gives kinds a stable secondary sort order so that, for two issues at
// the same file/line/column, ordering is still deterministic.
func (k Kind) rank() int {
	return int(k)
}

// Issue is a single diagnostic finding. All string fields are owned,
// independently-allocated Go strings (see package doc).
type Issue struct {
	FilePath   string
	Line       int
	Column     int
	Severity   Severity
	Kind       Kind
	Message    string
	Suggestion string // empty string means "no suggestion", per spec's optional field
}

// HasSuggestion reports whether this issue carries a suggested fix.
func (i Issue) HasSuggestion() bool {
	return i.Suggestion != ""
}
