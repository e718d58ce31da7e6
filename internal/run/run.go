// Copyright 2025-2026 Oliver Eikemeier. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

// Package run drives the extractguard pipeline over an analysis pass.
package run

import (
	"context"
	"errors"
	"fmt"
	"go/ast"
	"runtime/trace"
	"slices"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/edge"
	"golang.org/x/tools/go/ast/inspector"

	"fillmore-labs.com/extractguard/internal/astutil"
	"fillmore-labs.com/extractguard/internal/candidate"
	"fillmore-labs.com/extractguard/internal/config"
	"fillmore-labs.com/extractguard/internal/report"
	"fillmore-labs.com/extractguard/internal/scope"
	"fillmore-labs.com/extractguard/safety"
)

// ErrResultMissing is returned when a required analyzer result is missing.
// This typically indicates a configuration error where the analyzer's
// Requires field is not properly set.
var ErrResultMissing = errors.New("analyzer result missing")

// Run executes the extractguard pipeline on a package.
func (r *Options) Run(p *analysis.Pass) (any, error) {
	// Retrieves the [inspector.Inspector] from the pass results.
	in, ok := p.ResultOf[inspect.Analyzer].(*inspector.Inspector)
	if !ok {
		return nil, fmt.Errorf("extractguard: %s %w", inspect.Analyzer.Name, ErrResultMissing)
	}

	ctx := context.Background()

	ctx, task := trace.NewTask(ctx, "ExtractGuard")
	defer task.End()

	trace.Log(ctx, "package", p.Pkg.Path())

	stage := candidate.Stage{
		Info:         p.TypesInfo,
		Scopes:       scope.NewIndex(p.TypesInfo),
		Safety:       safety.NewWithInspector(in, p.Files, p.TypesInfo, r.Safety),
		Conservative: r.Behavior.Enabled(config.Conservative),
	}

	// Loop over all files
	for f := range in.Root().Children() {
		file := f.Node().(*ast.File)

		currentFile := astutil.NewCurrentFile(p.Fset, file)
		if !currentFile.Valid() {
			astutil.InternalError(p, file, "File %s without valid info", file.Name.Name)

			continue
		}

		// Skip generated files
		if currentFile.Generated() && !r.Behavior.Enabled(config.IncludeGenerated) {
			continue
		}

		// Skip files with nolint comment
		if file.Doc != nil && astutil.CommentHasNoLint(file.Doc.List[len(file.Doc.List)-1]) {
			continue
		}

		// Loop over all function and method declarations in this file
		for c := range f.Preorder((*ast.FuncDecl)(nil)) {
			fun := c.Node().(*ast.FuncDecl)

			if fun.Body == nil {
				continue
			}

			// Skip functions with nolint comment
			if fun.Doc != nil && astutil.CommentHasNoLint(fun.Doc.List[len(fun.Doc.List)-1]) {
				continue
			}

			body := c.ChildAt(edge.FuncDecl_Body, -1)

			// Stage 1: Collect single-use variables
			candidates := r.collect(p, currentFile, body)
			if len(candidates) == 0 {
				continue
			}

			// Stage 2: Check shadowing, side effects and conflicts
			stage.Evaluate(ctx, body, candidates)

			// Stage 3: Generate diagnostics with suggested fixes
			report.Candidates(ctx, p, currentFile, in, candidates, r.Behavior)
		}
	}

	return nil, nil
}

// collect returns the candidates of body with initializers of acceptable size.
func (r *Options) collect(p *analysis.Pass, currentFile astutil.CurrentFile, body inspector.Cursor) []candidate.Candidate {
	candidates := candidate.Collect(p.TypesInfo, body)

	if r.MaxLines >= 0 {
		candidates = slices.DeleteFunc(candidates, func(c candidate.Candidate) bool {
			return currentFile.Lines(c.Init) > r.MaxLines
		})
	}

	return candidates
}
