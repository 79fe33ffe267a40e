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
package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/openzig/ziglint/pkg/analyzer"
	"github.com/openzig/ziglint/pkg/config"
	"github.com/openzig/ziglint/pkg/diag"
	"github.com/openzig/ziglint/pkg/discover"
	"github.com/openzig/ziglint/pkg/format"
	ziglog "github.com/openzig/ziglint/pkg/log"
)

var checkCmd = &cobra.Command{
	Use:   "check [paths...]",
	Short: "Analyze the given files (or directories) and report issues.",
	Run:   runCheck,
}

func init() {
	checkCmd.Flags().StringArray("include", nil, "glob pattern a file must match (repeatable; defaults to all files)")
	checkCmd.Flags().StringArray("exclude", nil, "glob pattern that excludes an otherwise-matched file (repeatable)")
	checkCmd.Flags().String("format", "text", "output format: text, json, or ci-annotations")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) {
	if len(args) == 0 {
		args = []string{"."}
	}

	raw := loadConfig(cmd)

	logger := logrus.New()
	if GetFlag(cmd, "verbose") {
		logger.SetLevel(logrus.DebugLevel)
	}

	a, err := analyzer.New(raw, analyzer.WithSink(ziglog.NewLogrusSink(logger)))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	paths, err := discover.Files(args, discover.Options{
		Include: append(raw.Patterns.Include, GetStringArray(cmd, "include")...),
		Exclude: append(raw.Patterns.Exclude, GetStringArray(cmd, "exclude")...),
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	var result diag.Result

	for _, path := range paths {
		fileResult, err := a.AnalyzeFile(path)
		if err != nil {
			result.FailedFiles = append(result.FailedFiles, diag.FailedFile{Path: path, Reason: err.Error()})

			if !raw.Options.ContinueOnError {
				break
			}

			continue
		}

		result.Merge(fileResult)
	}

	result.Sort()

	if err := render(cmd, os.Stdout, result); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	os.Exit(exitCode(raw, result))
}

func render(cmd *cobra.Command, w *os.File, result diag.Result) error {
	switch GetString(cmd, "format") {
	case "json":
		return format.JSON(w, result)
	case "ci-annotations":
		return format.CIAnnotations(w, result)
	default:
		return format.Text(w, result)
	}
}

func loadConfig(cmd *cobra.Command) config.Raw {
	path := GetString(cmd, "config")
	if path == "" {
		return config.Default()
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	raw, err := config.Load(contents)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	return raw
}

func exitCode(raw config.Raw, result diag.Result) int {
	for _, iss := range result.Issues {
		if iss.Severity == diag.SeverityError {
			return 1
		}

		if iss.Severity == diag.SeverityWarning && raw.Options.FailOnWarnings {
			return 1
		}
	}

	if len(result.FailedFiles) > 0 {
		return 1
	}

	return 0
}
