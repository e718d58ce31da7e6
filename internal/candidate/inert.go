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
	"go/ast"
	"go/token"
	"go/types"

	"golang.org/x/tools/go/ast/inspector"
)

// IntervalInert checks whether the statements in [start, end) are inert.
//
// Declarations of new variables with constant initializers, type and constant
// declarations are inert. Any other statement, including control flow, might
// interact with an inlined initializer.
func IntervalInert(info *types.Info, parent inspector.Cursor, start, end token.Pos) bool {
	for s := range parent.Preorder(
		// keep-sorted start
		(*ast.AssignStmt)(nil),
		(*ast.BranchStmt)(nil),
		(*ast.CaseClause)(nil),
		(*ast.CommClause)(nil),
		(*ast.DeferStmt)(nil),
		(*ast.ExprStmt)(nil),
		(*ast.ForStmt)(nil),
		(*ast.GenDecl)(nil),
		(*ast.GoStmt)(nil),
		(*ast.IfStmt)(nil),
		(*ast.IncDecStmt)(nil),
		(*ast.LabeledStmt)(nil),
		(*ast.RangeStmt)(nil),
		(*ast.ReturnStmt)(nil),
		(*ast.SelectStmt)(nil),
		(*ast.SendStmt)(nil),
		(*ast.SwitchStmt)(nil),
		(*ast.TypeSwitchStmt)(nil),
		// keep-sorted end
	) {
		n := s.Node()

		if n.Pos() >= end {
			break
		}

		if n.End() <= start {
			continue
		}

		switch stmt := n.(type) {
		case *ast.AssignStmt:
			if inertShortDecl(info, stmt) {
				continue
			}

		case *ast.GenDecl:
			if inertVarDecl(info, stmt) {
				continue
			}
		}

		return false
	}

	return true
}

// inertShortDecl reports whether stmt only declares new variables with constant values.
func inertShortDecl(info *types.Info, stmt *ast.AssignStmt) bool {
	if stmt.Tok != token.DEFINE {
		return false
	}

	for _, id := range stmt.Lhs {
		id, ok := id.(*ast.Ident)
		if !ok {
			return false
		}

		if id.Name == "_" {
			continue
		}

		// A nil definition is a reassignment
		if obj, ok := info.Defs[id]; !ok || obj == nil {
			return false
		}
	}

	for _, expr := range stmt.Rhs {
		if !inertExpr(info, expr) {
			return false
		}
	}

	return true
}

// inertVarDecl reports whether a declaration has no initializers with effects.
func inertVarDecl(info *types.Info, stmt *ast.GenDecl) bool {
	if stmt.Tok != token.VAR {
		return true
	}

	for _, spec := range stmt.Specs {
		if spec, ok := spec.(*ast.ValueSpec); ok {
			for _, expr := range spec.Values {
				if !inertExpr(info, expr) {
					return false
				}
			}
		}
	}

	return true
}

// inertExpr reports whether expr is a constant or an allocation with constant arguments.
func inertExpr(info *types.Info, expr ast.Expr) bool {
	if tv, ok := info.Types[expr]; ok && tv.Value != nil {
		return true
	}

	call, ok := ast.Unparen(expr).(*ast.CallExpr)
	if !ok || !allocation(info, call.Fun) {
		return false
	}

	for _, arg := range call.Args {
		if tv, ok := info.Types[arg]; !ok || !tv.IsType() && tv.Value == nil {
			return false
		}
	}

	return true
}

// allocation checks if fun is the built-in `new` or `make` function.
func allocation(info *types.Info, fun ast.Expr) bool {
	id, ok := ast.Unparen(fun).(*ast.Ident)
	if !ok || id.Name != "new" && id.Name != "make" {
		return false
	}

	_, ok = info.Uses[id].(*types.Builtin)

	return ok
}
