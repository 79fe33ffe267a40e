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
package config

import (
	"bytes"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Load decodes a YAML configuration document into a Raw, starting from
// Default() so any field the document omits keeps its built-in default.
// Unknown keys are a hard error (yaml.v3's KnownFields(true)), matching
// spec §4.7's "unknown options are rejected" rule — this is a collaborator
// concern (file-based config), not something the pure core API performs.
func Load(contents []byte) (Raw, error) {
	raw := Default()

	dec := yaml.NewDecoder(bytes.NewReader(contents))
	dec.KnownFields(true)

	if err := dec.Decode(&raw); err != nil && err != io.EOF {
		return Raw{}, fmt.Errorf("parsing configuration: %w", err)
	}

	return raw, nil
}
