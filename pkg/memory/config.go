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

// Package memory implements the Memory Analyzer: a rule engine that walks a
// built scope.Tree, detects allocation sites, classifies each against the
// allocator allowlist, resolves ownership-transfer, and reports missing
// scoped releases.
package memory

import (
	"github.com/openzig/ziglint/pkg/diag"
	"github.com/openzig/ziglint/pkg/pattern"
)

// Config parameterises the Memory Analyzer per spec §4.4.
type Config struct {
	CheckScopedRelease      bool
	CheckArenaUsage         bool
	CheckAllocatorAllowlist bool

	// AllowedAllocators is the set of classified allocator names permitted
	// when CheckAllocatorAllowlist is on. Include pattern.ParameterAllocatorName
	// to allow-by-default any parameter-origin allocator.
	AllowedAllocators map[string]bool

	// OwnershipMatcher classifies a function's name or return-type text
	// against the active ownership patterns. Nil disables rule (1) of the
	// ownership-transfer classification but leaves the syntactic return/
	// field-store rules active.
	OwnershipMatcher *pattern.OwnershipMatcher

	// IsLibraryFile is caller-supplied (never inferred) per spec §4.4's
	// arena-in-library rule.
	IsLibraryFile bool

	// EmitOwnershipTransferHints controls whether a resolved transfer emits
	// an informational ownership_transfer_hint. Off by default: spec's
	// scenario 2 expects zero such hints "unless explicitly requested".
	EmitOwnershipTransferHints bool

	// MissingReleaseSeverity is the severity assigned to missing_scoped_release
	// issues; spec §8 scenario 1 allows either warning or error by
	// configuration default.
	MissingReleaseSeverity diag.Severity
}

// DefaultConfig returns the Memory Analyzer's default rule configuration.
func DefaultConfig() Config {
	return Config{
		CheckScopedRelease:      true,
		CheckArenaUsage:         true,
		CheckAllocatorAllowlist: false,
		AllowedAllocators:       map[string]bool{},
		MissingReleaseSeverity:  diag.SeverityWarning,
	}
}
