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
package pattern

// ParameterAllocatorName is the reserved classified-allocator name assigned
// to a variable whose AllocatorOrigin is Parameter. It has no entry in the
// default pattern list (a parameter is recognized structurally by the Scope
// Tracker, not by matching its expression text) but is exposed here so
// configuration's "allowed by default" rule (spec §4.4 / §9 open question)
// has a stable name to reference.
const ParameterAllocatorName = "parameter"

// DefaultAllocatorPatterns returns the built-in allocator classification
// patterns. Order matters: the first match wins, so a more specific pattern
// is listed before any shorter pattern it contains, per spec §4.2's
// conflict-ordering contract (none of the patterns below is currently a
// substring of another).
func DefaultAllocatorPatterns() []Allocator {
	return []Allocator{
		{Name: "testing_allocator", PatternText: "testing.allocator", CaseSensitive: true},
		{Name: "gpa", PatternText: "GeneralPurposeAllocator", CaseSensitive: true},
		{Name: "arena_allocator", PatternText: "ArenaAllocator", CaseSensitive: true},
		{Name: "fixed_buffer_allocator", PatternText: "FixedBufferAllocator", CaseSensitive: true},
		{Name: "page_allocator", PatternText: "page_allocator", CaseSensitive: true},
		{Name: "c_allocator", PatternText: "c_allocator", CaseSensitive: true},
		{Name: "wasm_allocator", PatternText: "wasm_allocator", CaseSensitive: true},
	}
}

// DefaultOwnershipPatterns returns the built-in ownership-transfer patterns:
// common factory-style function-name substrings (matched case-insensitively
// anywhere in the name), and explicit owned
// return-type markers.
func DefaultOwnershipPatterns() []Ownership {
	return []Ownership{
		{Name: "factory_create", PatternText: "create", MatchKind: MatchFunctionName, CaseSensitive: false},
		{Name: "factory_make", PatternText: "make", MatchKind: MatchFunctionName, CaseSensitive: false},
		{Name: "factory_init", PatternText: "init", MatchKind: MatchFunctionName, CaseSensitive: false},
		{Name: "factory_new", PatternText: "new", MatchKind: MatchFunctionName, CaseSensitive: false},
		{Name: "factory_build", PatternText: "build", MatchKind: MatchFunctionName, CaseSensitive: false},
		{Name: "factory_get", PatternText: "get", MatchKind: MatchFunctionName, CaseSensitive: false},
		{Name: "owned_slice_return", PatternText: "[]u8", MatchKind: MatchReturnType, CaseSensitive: true},
		{Name: "owned_return", PatternText: "Owned", MatchKind: MatchReturnType, CaseSensitive: true},
	}
}
