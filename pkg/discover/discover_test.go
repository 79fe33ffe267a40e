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
package discover_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/openzig/ziglint/pkg/discover"
)

func writeFile(t *testing.T, path string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}

	if err := os.WriteFile(path, []byte("pub fn f() void {}\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
}

func TestFilesMatchesRecursiveGlob(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "src", "a.zig"))
	writeFile(t, filepath.Join(root, "src", "nested", "b.zig"))
	writeFile(t, filepath.Join(root, "README.md"))

	got, err := discover.Files([]string{root}, discover.Options{Include: []string{"**/*.zig"}})
	if err != nil {
		t.Fatalf("Files: %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("expected 2 matches, got %d: %v", len(got), got)
	}
}

func TestFilesHonorsExclude(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.zig"))
	writeFile(t, filepath.Join(root, "a_test.zig"))

	got, err := discover.Files([]string{root}, discover.Options{
		Include: []string{"*.zig"},
		Exclude: []string{"*_test.zig"},
	})
	if err != nil {
		t.Fatalf("Files: %v", err)
	}

	if len(got) != 1 {
		t.Fatalf("expected 1 match after exclude, got %d: %v", len(got), got)
	}
}

func TestFilesAcceptsFileRoot(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "a.zig")
	writeFile(t, path)

	got, err := discover.Files([]string{path}, discover.Options{})
	if err != nil {
		t.Fatalf("Files: %v", err)
	}

	if len(got) != 1 || got[0] != path {
		t.Fatalf("expected [%s], got %v", path, got)
	}
}
