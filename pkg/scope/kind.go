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

// Package scope implements the Scope Tracker: a single forward scan of a
// Source Context that builds a read-only tree of lexical scopes, stored as
// a flat arena of records indexed by a dense Id (per spec §9's explicit
// design note), together with the Variable Records declared in each scope.
package scope

// Kind is the closed set of lexical scope kinds spec §3 defines.
type Kind uint8

const (
	File Kind = iota
	Function
	Test
	Block
	If
	Else
	While
	For
	SwitchCase
	Struct
	Enum
	Union
	ErrorSet
)

var kindNames = [...]string{
	File: "file", Function: "function", Test: "test", Block: "block",
	If: "if", Else: "else", While: "while", For: "for", SwitchCase: "switch_case",
	Struct: "struct", Enum: "enum", Union: "union", ErrorSet: "error_set",
}

// String renders a Kind by its spec name.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}

	return "unknown"
}

// IsType reports whether this scope kind introduces a struct/enum/union/
// error-set type (as opposed to executable code).
func (k Kind) IsType() bool {
	return k == Struct || k == Enum || k == Union || k == ErrorSet
}
