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
package memory

import (
	"regexp"

	"github.com/openzig/ziglint/pkg/pattern"
	"github.com/openzig/ziglint/pkg/scope"
	"github.com/openzig/ziglint/pkg/source"
)

// transferKind names which ownership-transfer rule matched, purely for the
// optional ownership_transfer_hint message text.
type transferKind string

const (
	transferNone         transferKind = ""
	transferFunctionName transferKind = "enclosing function name matches an ownership pattern"
	transferReturnType   transferKind = "enclosing function's return type matches an ownership pattern"
	transferReturned     transferKind = "variable is returned"
	transferAggregate    transferKind = "variable is stored into a returned aggregate"
)

// enclosingFunction walks up from id to the nearest ancestor scope of kind
// Function (or the root, if none exists — a file-level declaration).
func enclosingFunction(tree *scope.Tree, id scope.Id) scope.Id {
	for {
		s := tree.Scope(id)
		if s.Kind() == scope.Function {
			return id
		}

		parent, ok := s.Parent().Get()
		if !ok {
			return id
		}

		id = parent
	}
}

// classifyOwnershipTransfer applies spec §4.4's four ownership-transfer
// rules against the function enclosing declScope, in order, returning the
// first one that matches.
func classifyOwnershipTransfer(
	ctx *source.Context,
	tree *scope.Tree,
	declScope scope.Id,
	name string,
	matcher *pattern.OwnershipMatcher,
) (bool, transferKind) {
	fnID := enclosingFunction(tree, declScope)
	fn := tree.Scope(fnID)

	if fnName, ok := fn.Name().Get(); ok {
		if _, matched := matcher.ClassifyFunctionName(fnName); matched {
			return true, transferFunctionName
		}
	}

	if retType, ok := fn.ReturnTypeText().Get(); ok {
		if _, matched := matcher.ClassifyReturnType(retType); matched {
			return true, transferReturnType
		}
	}

	start, end := fn.Span()
	text := maskedText(ctx, start, end)

	if returnsIdent(text, name) {
		return true, transferReturned
	}

	if container, ok := findAggregateFieldStore(text, name); ok && returnsIdent(text, container) {
		return true, transferAggregate
	}

	return false, transferNone
}

// returnsIdent reports whether any return statement in text mentions name.
func returnsIdent(text []byte, name string) bool {
	for _, sp := range findStatements(text, "return") {
		if mentionsIdent(text[sp.start:sp.end], name) {
			return true
		}
	}

	return false
}

// findAggregateFieldStore looks for either of the two field-store shapes
// spec §4.4 names: a direct field assignment "container.field = name", or an
// array-element aggregate literal "container[i] = Agg{ .field = name }". It
// returns the container identifier so the caller can check whether that
// container is itself later returned.
func findAggregateFieldStore(text []byte, name string) (string, bool) {
	needle := regexp.QuoteMeta(name)

	fieldStoreRe := regexp.MustCompile(`([A-Za-z_]\w*)\.[A-Za-z_]\w*\s*=\s*` + needle + `\b`)
	if m := fieldStoreRe.FindSubmatch(text); m != nil {
		return string(m[1]), true
	}

	arrayAggRe := regexp.MustCompile(`([A-Za-z_]\w*)\s*\[[^\]]*\]\s*=\s*[A-Za-z_]\w*\s*\{[^}]*\b` + needle + `\b[^}]*\}`)
	if m := arrayAggRe.FindSubmatch(text); m != nil {
		return string(m[1]), true
	}

	return "", false
}
