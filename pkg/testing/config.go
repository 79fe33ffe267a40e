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

// Package testing implements the Testing Analyzer: discovery of test
// declarations in a built scope.Tree, the category-naming grammar check,
// and the missing-tests-in-file check.
package testing

// Config parameterises the Testing Analyzer per spec §4.5.
type Config struct {
	AllowedCategories map[string]bool

	// CheckMissingTestsInFile enables the informational
	// missing_tests_in_file diagnostic.
	CheckMissingTestsInFile bool
}

// DefaultConfig returns the Testing Analyzer's default configuration.
func DefaultConfig() Config {
	return Config{
		AllowedCategories: map[string]bool{
			"unit": true, "integration": true, "regression": true, "e2e": true,
		},
		CheckMissingTestsInFile: true,
	}
}
