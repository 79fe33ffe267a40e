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

// Package discover is the file-discovery collaborator spec §6 names: given
// a set of roots and include/exclude glob patterns, it walks the
// filesystem and returns the matching file paths. It is deliberately
// outside the analysis core (pkg/analyzer takes bytes, never a filesystem)
// the same way the teacher's compiler core never reads a directory itself.
package discover

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// Options configures a discovery walk.
type Options struct {
	// Include lists doublestar glob patterns ("**/*.zig", "src/*.zig", "?.zig")
	// a file's path (relative to its root) must match at least one of. A
	// nil/empty Include matches every file.
	Include []string
	// Exclude lists patterns that veto an otherwise-included match.
	Exclude []string
}

// Files walks roots (files or directories) and returns every regular file
// path matching opts, sorted for deterministic output. A root that is
// itself a file is included directly, subject to the same include/exclude
// rules as any file found by walking a directory root.
func Files(roots []string, opts Options) ([]string, error) {
	var matches []string

	for _, root := range roots {
		info, err := os.Stat(root)
		if err != nil {
			return nil, err
		}

		if !info.IsDir() {
			if matchesOpts(filepath.Base(root), opts) {
				matches = append(matches, root)
			}

			continue
		}

		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if d.IsDir() {
				return nil
			}

			rel, relErr := filepath.Rel(root, path)
			if relErr != nil {
				rel = path
			}

			if matchesOpts(filepath.ToSlash(rel), opts) {
				matches = append(matches, path)
			}

			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	sort.Strings(matches)

	return matches, nil
}

func matchesOpts(relPath string, opts Options) bool {
	if len(opts.Include) > 0 && !matchesAny(opts.Include, relPath) {
		return false
	}

	if matchesAny(opts.Exclude, relPath) {
		return false
	}

	return true
}

func matchesAny(patterns []string, path string) bool {
	for _, p := range patterns {
		if ok, err := doublestar.Match(p, path); err == nil && ok {
			return true
		}
	}

	return false
}
