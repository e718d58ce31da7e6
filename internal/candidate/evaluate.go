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

package candidate

import (
	"context"
	"go/ast"
	"go/token"
	"go/types"
	"runtime/trace"

	"golang.org/x/tools/go/ast/edge"
	"golang.org/x/tools/go/ast/inspector"

	"fillmore-labs.com/extractguard/internal/astutil"
	"fillmore-labs.com/extractguard/internal/callee"
	"fillmore-labs.com/extractguard/internal/scope"
	"fillmore-labs.com/extractguard/safety"
)

// Stage evaluates inline candidates of one package.
type Stage struct {
	Info   *types.Info
	Scopes scope.Index
	Safety *safety.Analyzer

	// Conservative blocks inlining across statements that are not inert.
	Conservative bool
}

// Evaluate sets the status of all candidates declared in body.
func (s Stage) Evaluate(ctx context.Context, body inspector.Cursor, candidates []Candidate) {
	defer trace.StartRegion(ctx, "Evaluate").End()

	in := body.Inspector()

	for i := range candidates {
		candidates[i].Status = s.status(ctx, in, body, candidates[i])
	}
}

func (s Stage) status(ctx context.Context, in *inspector.Inspector, body inspector.Cursor, c Candidate) InlineStatus {
	decl, use := c.Decl.Cursor(in), c.Use.Cursor(in)
	start, end := decl.Node().End(), use.Node().Pos()

	if Shadowed(s.Info, s.Scopes, c.Init, c.Var, end) {
		return InlineBlockedShadowed
	}

	fn := enclosingFunc(decl)

	effect := s.Safety.HasSideEffect(ctx, c.Init, fn)

	if repeated(decl, use) && (effect || allocates(s.Info, c.Init)) {
		return InlineBlockedLoop
	}

	if effect {
		return InlineBlockedSideEffect
	}

	if s.Conservative && !IntervalInert(s.Info, body, start, anchor(decl, use)) {
		return InlineBlockedStatements
	}

	if s.Safety.HasConflict(ctx, c.Init, start, end, use.Node(), fn) {
		return InlineBlockedConflict
	}

	return InlineAllowed
}

// repeated reports whether use is evaluated repeatedly by a loop not containing decl.
func repeated(decl, use inspector.Cursor) bool {
	pos := decl.Node().Pos()

	for c := range use.Enclosing((*ast.ForStmt)(nil), (*ast.RangeStmt)(nil), (*ast.FuncLit)(nil), (*ast.FuncDecl)(nil)) {
		var parts []ast.Node

		switch n := c.Node().(type) {
		case *ast.ForStmt:
			parts = []ast.Node{n.Cond, n.Post, n.Body}

		case *ast.RangeStmt:
			parts = []ast.Node{n.Body}

		default:
			return false
		}

		if astutil.SpanOf(c.Node()).Contains(pos) {
			return false
		}

		for _, part := range parts {
			if part != nil && astutil.SpanOf(part).Contains(use.Node().Pos()) {
				return true
			}
		}
	}

	return false
}

// allocates reports whether evaluating init creates a new reference.
func allocates(info *types.Info, init ast.Expr) bool {
	found := false

	ast.Inspect(init, func(n ast.Node) bool {
		if found {
			return false
		}

		switch n := n.(type) {
		case *ast.FuncLit:
			found = true

		case *ast.UnaryExpr:
			if n.Op == token.AND {
				found = true
			}

		case *ast.CompositeLit:
			if t := info.TypeOf(n); t != nil {
				switch t.Underlying().(type) {
				case *types.Slice, *types.Map:
					found = true
				}
			}

		case *ast.CallExpr:
			switch callee.BuiltinName(info, n) {
			case "make", "new":
				found = true
			}
		}

		return !found
	})

	return found
}

// anchor returns the start of the statement containing use in the statement list of decl.
func anchor(decl, use inspector.Cursor) token.Pos {
	list := decl.Parent()

	for c := range use.Enclosing() {
		if c.Parent() != list {
			continue
		}

		switch kind, _ := c.ParentEdge(); kind {
		case edge.BlockStmt_List, edge.CaseClause_Body, edge.CommClause_Body:
			return c.Node().Pos()
		}
	}

	return use.Node().Pos()
}
