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
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/openzig/ziglint/pkg/hook"
)

var hookCmd = &cobra.Command{
	Use:   "hook",
	Short: "Manage the ziglint git pre-commit hook.",
}

var hookInstallCmd = &cobra.Command{
	Use:   "install",
	Short: "Write a pre-commit hook that runs ziglint against staged files.",
	Run:   runHookInstall,
}

func init() {
	hookInstallCmd.Flags().String("git-dir", ".git", "path to the repository's .git directory")
	hookCmd.AddCommand(hookInstallCmd)
	rootCmd.AddCommand(hookCmd)
}

func runHookInstall(cmd *cobra.Command, args []string) {
	script, err := hook.Generate(hook.Options{BinaryName: "ziglint", ExtraArgs: []string{"check"}})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	hooksDir := filepath.Join(GetString(cmd, "git-dir"), "hooks")
	if err := os.MkdirAll(hooksDir, 0o755); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	path := filepath.Join(hooksDir, "pre-commit")
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	fmt.Printf("installed pre-commit hook at %s\n", path)
}
