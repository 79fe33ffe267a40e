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
package format

import (
	"go.lsp.dev/protocol"
	"go.lsp.dev/uri"

	"github.com/openzig/ziglint/pkg/diag"
)

// ToLSPDiagnostics groups result's issues by file and converts each into a
// protocol.Diagnostic, returning a map keyed by the file's LSP URI. Line and
// column are converted from the Diagnostic Model's 1-based positions to
// LSP's 0-based ones.
func ToLSPDiagnostics(result diag.Result) map[uri.URI][]protocol.Diagnostic {
	out := make(map[uri.URI][]protocol.Diagnostic)

	for _, iss := range result.Issues {
		u := uri.File(iss.FilePath)

		pos := protocol.Position{
			Line:      lspLine(iss.Line),
			Character: lspColumn(iss.Column),
		}

		source := "ziglint"
		kind := iss.Kind.String()

		out[u] = append(out[u], protocol.Diagnostic{
			Range:    protocol.Range{Start: pos, End: pos},
			Severity: lspSeverity(iss.Severity),
			Code:     kind,
			Source:   source,
			Message:  iss.Message,
		})
	}

	return out
}

func lspLine(line int) uint32 {
	if line <= 0 {
		return 0
	}

	return uint32(line - 1)
}

func lspColumn(column int) uint32 {
	if column <= 0 {
		return 0
	}

	return uint32(column - 1)
}

func lspSeverity(sev diag.Severity) protocol.DiagnosticSeverity {
	switch sev {
	case diag.SeverityError:
		return protocol.DiagnosticSeverityError
	case diag.SeverityWarning:
		return protocol.DiagnosticSeverityWarning
	default:
		return protocol.DiagnosticSeverityInformation
	}
}
