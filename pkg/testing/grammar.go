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
package testing

import (
	"regexp"
	"strings"
)

var namingShapeRe = regexp.MustCompile(`^\s*([^:]+?)\s*:\s*([^:]+?)\s*:\s*(.+?)\s*$`)

// parsedName is the result of matching a test name string against the
// "<category>: <subject>: <description>" grammar spec §4.5 defines.
type parsedName struct {
	// hasColon is true if the name contains at least one ':' (so a missing
	// category can be distinguished from an unparseable shape).
	hasColon bool
	// wellFormed is true if the full three-part grammar matched.
	wellFormed bool
	category   string
}

func parseName(name string) parsedName {
	if m := namingShapeRe.FindStringSubmatch(name); m != nil {
		return parsedName{hasColon: true, wellFormed: true, category: m[1]}
	}

	return parsedName{hasColon: strings.Contains(name, ":")}
}
