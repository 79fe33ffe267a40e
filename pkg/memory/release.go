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

	"github.com/openzig/ziglint/pkg/scope"
	"github.com/openzig/ziglint/pkg/source"
)

// hasScopedRelease reports whether name is released within scopeID, either
// by an unconditional "defer"-like statement mentioning it, or by an
// "errdefer"-like statement mentioning it paired with an unconditional
// "name.free(" or "name.deinit(" call elsewhere in the same scope (spec
// §4.4's rule (a)/(b)). Other release call shapes outside defer/errdefer
// are not recognized.
func hasScopedRelease(ctx *source.Context, tree *scope.Tree, scopeID scope.Id, name string) bool {
	start, end := tree.Scope(scopeID).Span()
	text := maskedText(ctx, start, end)

	deferSpans := findStatements(text, "defer")
	for _, sp := range deferSpans {
		if mentionsIdent(text[sp.start:sp.end], name) {
			return true
		}
	}

	errdeferSpans := findStatements(text, "errdefer")

	hasErrdefer := false

	for _, sp := range errdeferSpans {
		if mentionsIdent(text[sp.start:sp.end], name) {
			hasErrdefer = true
			break
		}
	}

	if !hasErrdefer {
		return false
	}

	remaining := append([]byte(nil), text...)
	blank(remaining, deferSpans)
	blank(remaining, errdeferSpans)

	releaseRe := regexp.MustCompile(regexp.QuoteMeta(name) + `\.(free|deinit)\(`)

	return releaseRe.Match(remaining)
}

// arenaExempt reports whether an arena-derived allocation is exempt from the
// missing-release rule because its backing arena is itself scoped-released
// in an ancestor scope.
func arenaExempt(ctx *source.Context, tree *scope.Tree, origin scope.AllocatorOrigin) bool {
	if origin.Kind != scope.OriginArena {
		return false
	}

	return hasScopedRelease(ctx, tree, origin.ArenaScope, origin.ArenaVariable)
}

// releaseCallRe matches an explicit "<allocator>.free(<name>" or
// "<allocator>.destroy(<name>" release-call shape, capturing both the
// allocator identifier and the name it releases. Unlike hasScopedRelease's
// broad "does this statement mention the name at all" test, this requires
// the allocator performing the release to be syntactically identifiable,
// which is exactly what the allocator-mismatch rule below needs in order to
// compare it against the allocator used at the allocation site.
var releaseCallRe = regexp.MustCompile(`([A-Za-z_]\w*)\.(?:free|destroy)\(\s*([A-Za-z_]\w*)`)

// releaseAllocator scans every defer/errdefer statement in scopeID for an
// explicit "<allocator>.free(name)"-shaped release call of name and returns
// the allocator identifier used, per spec §1/§3's allocator-mismatch defect
// category. Returns false if no such call-shaped release of name could be
// identified (e.g. a release written as "name.free()" names no allocator to
// compare, so it cannot mismatch).
func releaseAllocator(ctx *source.Context, tree *scope.Tree, scopeID scope.Id, name string) (string, bool) {
	start, end := tree.Scope(scopeID).Span()
	text := maskedText(ctx, start, end)

	spans := append(findStatements(text, "defer"), findStatements(text, "errdefer")...)

	for _, sp := range spans {
		stmt := text[sp.start:sp.end]

		for _, m := range releaseCallRe.FindAllSubmatch(stmt, -1) {
			allocator, released := string(m[1]), string(m[2])
			if released == name && allocator != name {
				return allocator, true
			}
		}
	}

	return "", false
}
