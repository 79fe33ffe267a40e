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

// Package analyzer is the top-level entry point spec §6 names: it wires the
// Source Context, Scope Tracker, Memory Analyzer, Testing Analyzer, and
// Diagnostic Model together behind the four analyze_* calls.
package analyzer

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/openzig/ziglint/pkg/config"
	"github.com/openzig/ziglint/pkg/diag"
	"github.com/openzig/ziglint/pkg/log"
	"github.com/openzig/ziglint/pkg/memory"
	"github.com/openzig/ziglint/pkg/scope"
	"github.com/openzig/ziglint/pkg/source"
	ztesting "github.com/openzig/ziglint/pkg/testing"
)

// Analyzer is one immutable, validated analysis configuration. Per spec §5
// it is thread-compatible but not thread-safe: one goroutine may use a given
// instance at a time, but distinct instances may run concurrently.
type Analyzer struct {
	cfg  *config.Config
	sink log.Sink
}

// Option configures an Analyzer at construction.
type Option func(*Analyzer)

// WithSink attaches an optional logging collaborator (spec §6). Without
// one, the Analyzer proceeds silently.
func WithSink(sink log.Sink) Option {
	return func(a *Analyzer) { a.sink = sink }
}

// New validates raw and constructs an Analyzer. A validation failure is
// surfaced as a configuration_error per spec §4.7/§7 — no issues are ever
// emitted for a construction that itself failed.
func New(raw config.Raw, opts ...Option) (*Analyzer, error) {
	cfg, err := config.Build(raw)
	if err != nil {
		return nil, fmt.Errorf("configuration_error: %w", err)
	}

	a := &Analyzer{cfg: cfg}
	for _, opt := range opts {
		opt(a)
	}

	return a, nil
}

// FileIOErrorKind distinguishes the structured file-read failures spec §7
// requires analyze_file to report.
type FileIOErrorKind uint8

const (
	FileIONotFound FileIOErrorKind = iota
	FileIOPermissionDenied
	FileIOOther
)

// FileIOError is the structured error analyze_file returns on a read
// failure.
type FileIOError struct {
	Path string
	Kind FileIOErrorKind
	Err  error
}

func (e *FileIOError) Error() string {
	return fmt.Sprintf("reading %s: %v", e.Path, e.Err)
}

func (e *FileIOError) Unwrap() error { return e.Err }

func classifyFileError(path string, err error) *FileIOError {
	kind := FileIOOther

	switch {
	case os.IsNotExist(err):
		kind = FileIONotFound
	case os.IsPermission(err):
		kind = FileIOPermissionDenied
	}

	return &FileIOError{Path: path, Kind: kind, Err: err}
}

// AnalyzeSource is the pure core call: no I/O, deterministic given (bytes,
// pathLabel, Analyzer configuration).
func (a *Analyzer) AnalyzeSource(src []byte, pathLabel string) diag.Result {
	started := time.Now()

	tree, ctx, parseIssues := a.buildTree(src, pathLabel)

	var issues []diag.Issue
	issues = append(issues, parseIssues...)
	issues = append(issues, memory.Analyze(ctx, tree, a.cfg.Memory)...)
	issues = append(issues, ztesting.Analyze(ctx, tree, a.cfg.Testing)...)

	result := diag.Result{
		Issues:        issues,
		FilesAnalyzed: 1,
		AnalysisTime:  time.Since(started),
		RunID:         newRunID(),
		Categories:    diag.CategoryBreakdown(ztesting.CategoryBreakdown(tree)),
	}

	result.Sort()
	a.applyMaxIssues(&result)
	a.logResult(pathLabel, result)

	return result
}

// AnalyzeFile performs one filesystem read, then delegates to AnalyzeSource.
// A read failure is returned as a FileIOError and no Result is produced,
// per spec §7.
func (a *Analyzer) AnalyzeFile(path string) (diag.Result, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return diag.Result{}, classifyFileError(path, err)
	}

	return a.AnalyzeSource(contents, path), nil
}

// AnalyzeMemory runs only the Memory Analyzer over src.
func (a *Analyzer) AnalyzeMemory(src []byte, pathLabel string) diag.Result {
	started := time.Now()

	tree, ctx, parseIssues := a.buildTree(src, pathLabel)

	result := diag.Result{
		Issues:        append(parseIssues, memory.Analyze(ctx, tree, a.cfg.Memory)...),
		FilesAnalyzed: 1,
		AnalysisTime:  time.Since(started),
		RunID:         newRunID(),
	}

	result.Sort()
	a.applyMaxIssues(&result)

	return result
}

// AnalyzeTests runs only the Testing Analyzer over src.
func (a *Analyzer) AnalyzeTests(src []byte, pathLabel string) diag.Result {
	started := time.Now()

	tree, ctx, parseIssues := a.buildTree(src, pathLabel)

	result := diag.Result{
		Issues:        append(parseIssues, ztesting.Analyze(ctx, tree, a.cfg.Testing)...),
		FilesAnalyzed: 1,
		AnalysisTime:  time.Since(started),
		RunID:         newRunID(),
		Categories:    diag.CategoryBreakdown(ztesting.CategoryBreakdown(tree)),
	}

	result.Sort()
	a.applyMaxIssues(&result)

	return result
}

// FreeResult is a documented no-op. Go's garbage collector owns every
// string in a Result; this symbol exists only for callers used to porting
// from the original explicit-release contract (see pkg/diag's package doc).
func FreeResult(diag.Result) {}

// GetCategoryBreakdown is the package-level form of spec §6's
// get_category_breakdown(result) call.
func GetCategoryBreakdown(result diag.Result) diag.CategoryBreakdown {
	return result.GetCategoryBreakdown()
}

func (a *Analyzer) buildTree(src []byte, pathLabel string) (*scope.Tree, *source.Context, []diag.Issue) {
	file := source.NewFile(pathLabel, src)
	ctx := source.NewContext(file)

	allocMatcher, err := a.cfg.AllocatorMatcher()
	if err != nil {
		// The allocator matcher was already validated successfully at
		// config.Build time; a failure here would indicate a bug in that
		// invariant, not a per-call condition. Fall back to an empty
		// matcher rather than panicking mid-analysis.
		allocMatcher = nil
	}

	tree, parseIssues := scope.Build(ctx, scope.Config{
		AllocatorMatcher:              allocMatcher,
		MaxDepth:                      a.cfg.ScopeMaxDepth,
		ParameterAllocatorTypeNeedles: a.cfg.ScopeParameterAllocatorTypeNeedles,
	})

	if a.sink != nil {
		for _, iss := range parseIssues {
			a.sink.Log(log.LevelWarn, "scope", iss.Message)
		}
	}

	for _, w := range a.cfg.Warnings {
		parseIssues = append(parseIssues, diag.Issue{
			FilePath: pathLabel, Line: 1, Column: 1,
			Severity: diag.SeverityWarning, Kind: diag.PatternValidationWarning, Message: w.Message,
		})
	}

	return tree, ctx, parseIssues
}

func (a *Analyzer) applyMaxIssues(result *diag.Result) {
	if a.cfg.Options.MaxIssues > 0 && len(result.Issues) > a.cfg.Options.MaxIssues {
		result.Issues = result.Issues[:a.cfg.Options.MaxIssues]
	}
}

func (a *Analyzer) logResult(pathLabel string, result diag.Result) {
	if a.sink == nil {
		return
	}

	a.sink.Log(log.LevelDebug, "analyzer", fmt.Sprintf("%s: %d issue(s) in %s", pathLabel, len(result.Issues), result.AnalysisTime))
}

func newRunID() string {
	return uuid.NewString()
}
