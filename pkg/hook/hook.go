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

// Package hook generates the text of a git pre-commit hook that runs the
// ziglint binary against staged files, named in spec §1 as surrounding
// plumbing outside the analysis core.
package hook

import (
	"fmt"
	"strings"
	"text/template"
)

const scriptTemplate = `#!/bin/sh
# Generated by {{.BinaryName}} hook install. Do not edit by hand; rerun
# "{{.BinaryName}} hook install" to regenerate.
set -e

files=$(git diff --cached --name-only --diff-filter=ACM -- '*.zig')
if [ -z "$files" ]; then
  exit 0
fi

{{.BinaryName}} {{.Args}} $files
`

// Options configures the generated script.
type Options struct {
	// BinaryName is the command invoked for each commit (e.g. "ziglint").
	BinaryName string
	// ExtraArgs are passed through to the binary verbatim (e.g. "--format
	// ci-annotations"); joined with spaces.
	ExtraArgs []string
}

// Generate renders the pre-commit hook script for opts.
func Generate(opts Options) (string, error) {
	if opts.BinaryName == "" {
		return "", fmt.Errorf("hook: BinaryName must not be empty")
	}

	tmpl, err := template.New("pre-commit").Parse(scriptTemplate)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	err = tmpl.Execute(&sb, struct {
		BinaryName string
		Args       string
	}{
		BinaryName: opts.BinaryName,
		Args:       strings.Join(opts.ExtraArgs, " "),
	})
	if err != nil {
		return "", err
	}

	return sb.String(), nil
}
