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

// Package pattern implements the Pattern Matcher: substring/regex matching
// of identifiers and expressions against a named, ordered pattern set, with
// the validation rules spec §4.2 requires (duplicate names, empty fields,
// length-1 warnings, regex compile failures, user/default name conflicts).
package pattern

// Allocator identifies a named allocator by matching against the text of an
// allocator expression (e.g. "std.heap.page_allocator", "gpa.allocator()").
type Allocator struct {
	Name          string
	PatternText   string
	IsRegex       bool
	CaseSensitive bool
}

// OwnershipMatchKind selects what part of a function an Ownership pattern is
// matched against.
type OwnershipMatchKind uint8

const (
	// MatchFunctionName matches against the enclosing function's name.
	MatchFunctionName OwnershipMatchKind = iota
	// MatchReturnType matches against the enclosing function's return-type text.
	MatchReturnType
)

// Ownership identifies a factory-style function by its name or return type,
// exempting the allocations it returns from the missing-scoped-release rule.
type Ownership struct {
	Name          string
	PatternText   string
	IsRegex       bool
	CaseSensitive bool
	MatchKind     OwnershipMatchKind
}
