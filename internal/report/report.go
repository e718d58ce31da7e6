// Copyright 2026 Oliver Eikemeier. All Rights Reserved.
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

// Package report turns evaluated inline candidates into diagnostics.
package report

import (
	"context"
	"fmt"
	"go/ast"
	"runtime/trace"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/ast/edge"
	"golang.org/x/tools/go/ast/inspector"

	"fillmore-labs.com/extractguard/internal/astutil"
	"fillmore-labs.com/extractguard/internal/candidate"
	"fillmore-labs.com/extractguard/internal/config"
	"fillmore-labs.com/extractguard/internal/scope"
)

// Candidates emits diagnostics for the evaluated candidates of one function.
//
// Inlinable candidates are always reported. Blocked candidates are reported
// only with [config.ReportBlocked] and never carry a suggested fix.
func Candidates(ctx context.Context, p *analysis.Pass, currentFile astutil.CurrentFile, in *inspector.Inspector, candidates []candidate.Candidate, behavior config.Config) {
	if len(candidates) == 0 {
		return
	}

	defer trace.StartRegion(ctx, "Report").End()

	blocked := behavior.Enabled(config.ReportBlocked)
	fixes := behavior.Enabled(config.SuggestFixes) && !currentFile.Generated()

	var edited []analysis.TextEdit // edits of earlier fixes

	for _, c := range candidates {
		inlinable := c.Status.Inlinable()
		if !inlinable && !blocked {
			continue
		}

		decl, use := c.Decl.Cursor(in), c.Use.Cursor(in)
		if currentFile.NoLintComment(decl.Node().Pos()) {
			continue
		}

		diagnostic := analysis.Diagnostic{
			Pos:     decl.Node().Pos(),
			End:     decl.Node().End(),
			Message: createMessage(c),
			Related: []analysis.RelatedInformation{useInfo(use)},
		}

		if inlinable && fixes {
			// Chained candidates produce overlapping edits, only the first one gets a fix
			if edits := createEdits(p, currentFile, decl, use, c.Init); len(edits) > 0 && !overlaps(edited, edits) {
				diagnostic.SuggestedFixes = []analysis.SuggestedFix{{Message: diagnostic.Message, TextEdits: edits}}
				edited = append(edited, edits...)
			}
		}

		p.Report(diagnostic)
	}
}

// createMessage constructs the diagnostic message.
func createMessage(c candidate.Candidate) string {
	if c.Status.Inlinable() {
		return fmt.Sprintf("Variable '%s' is used once and can be inlined (eg:%s)", c.Var.Name(), c.Status)
	}

	return fmt.Sprintf("Variable '%s' is used once but can't be inlined (eg:%s)", c.Var.Name(), c.Status)
}

// useInfo points to the single use of a candidate.
func useInfo(use inspector.Cursor) analysis.RelatedInformation {
	node := use.Node()

	var where ast.Node
	for c := range use.Enclosing(
		(*ast.BlockStmt)(nil),
		(*ast.CaseClause)(nil),
		(*ast.CommClause)(nil),
		(*ast.IfStmt)(nil),
		(*ast.ForStmt)(nil),
		(*ast.RangeStmt)(nil),
		(*ast.SwitchStmt)(nil),
		(*ast.TypeSwitchStmt)(nil),
	) {
		where = c.Node()

		switch kind, _ := c.ParentEdge(); kind {
		case edge.FuncDecl_Body, edge.FuncLit_Body:
			where = c.Parent().Node()
		}

		break
	}

	return analysis.RelatedInformation{
		Pos:     node.Pos(),
		End:     node.End(),
		Message: fmt.Sprintf("Used once in this %s scope", scope.Name(where)),
	}
}

// overlaps reports whether any edit of b overlaps an edit of a.
func overlaps(a, b []analysis.TextEdit) bool {
	for _, x := range a {
		for _, y := range b {
			if x.Pos <= y.End && y.Pos <= x.End {
				return true
			}
		}
	}

	return false
}
