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

// Package format renders a diag.Result through the output sinks spec §6/§8
// name: plain text, JSON, and CI workflow-command annotations, plus an
// LSP-diagnostic adapter. None of this is part of the analysis core; it is
// the surrounding collaborator layer the teacher always ships next to its
// compiler core (see pkg/util/termio in the teacher repo).
package format

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/term"

	"github.com/openzig/ziglint/pkg/diag"
)

// Text writes result to w as human-readable lines, one issue per line,
// ordered the way Result.Sort already leaves them. When w is a terminal
// (per golang.org/x/term), severities are colorized; width-limited
// environments have long messages left untruncated since a wrapped,
// multi-line diagnostic is still more useful than a silently-cut one.
func Text(w io.Writer, result diag.Result) error {
	colorize := isTerminal(w)

	for _, iss := range result.Issues {
		line := fmt.Sprintf("%s:%d:%d: %s: %s [%s]",
			iss.FilePath, iss.Line, iss.Column, iss.Severity, iss.Message, iss.Kind)

		if iss.HasSuggestion() {
			line += fmt.Sprintf(" (suggestion: %s)", iss.Suggestion)
		}

		if colorize {
			line = colorFor(iss.Severity) + line + resetColor
		}

		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}

	summary := fmt.Sprintf("%d issue(s) across %d file(s) in %s",
		len(result.Issues), result.FilesAnalyzed, result.AnalysisTime)
	_, err := fmt.Fprintln(w, summary)

	return err
}

const resetColor = "\x1b[0m"

func colorFor(sev diag.Severity) string {
	switch sev {
	case diag.SeverityError:
		return "\x1b[31m"
	case diag.SeverityWarning:
		return "\x1b[33m"
	default:
		return "\x1b[36m"
	}
}

type fdWriter interface {
	Fd() uintptr
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(fdWriter)
	if !ok {
		return false
	}

	return term.IsTerminal(int(f.Fd()))
}

// CIAnnotations writes result as GitHub Actions workflow-command
// annotations (spec §8): "::error file=...,line=...,col=...::message". Per
// spec §8's escaping invariant, '%', '\r', and '\n' within the message are
// percent-escaped so a multi-line message cannot break the single-line
// command syntax.
func CIAnnotations(w io.Writer, result diag.Result) error {
	for _, iss := range result.Issues {
		cmd := "notice"

		switch iss.Severity {
		case diag.SeverityError:
			cmd = "error"
		case diag.SeverityWarning:
			cmd = "warning"
		}

		line := fmt.Sprintf("::%s file=%s,line=%d,col=%d::%s",
			cmd, iss.FilePath, iss.Line, iss.Column, ciEscape(iss.Message))

		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}

	return nil
}

func ciEscape(s string) string {
	s = strings.ReplaceAll(s, "%", "%25")
	s = strings.ReplaceAll(s, "\r", "%0D")
	s = strings.ReplaceAll(s, "\n", "%0A")

	return s
}
