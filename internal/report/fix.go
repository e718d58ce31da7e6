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

package report

import (
	"bytes"
	"go/ast"
	"go/printer"
	"go/token"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/ast/edge"
	"golang.org/x/tools/go/ast/inspector"

	"fillmore-labs.com/extractguard/internal/astutil"
)

var rawcfg = &printer.Config{Mode: printer.RawFormat}

// createEdits creates a suggested fix replacing the use by the initializer and removing the declaration.
func createEdits(p *analysis.Pass, currentFile astutil.CurrentFile, decl, use inspector.Cursor, init ast.Expr) []analysis.TextEdit {
	var buf bytes.Buffer

	parens := NeedParens(use, init)
	if parens {
		buf.WriteByte('(') // ignore error
	}

	if err := rawcfg.Fprint(&buf, p.Fset, init); err != nil {
		astutil.InternalError(p, init, "Can't render initializer: %s", err)

		return nil
	}

	if parens {
		buf.WriteByte(')') // ignore error
	}

	pos, end := statementBounds(currentFile, decl)
	ident := use.Node()

	return []analysis.TextEdit{
		{Pos: pos, End: end},                                       // Remove the declaration
		{Pos: ident.Pos(), End: ident.End(), NewText: buf.Bytes()}, // Replace the use
	}
}

// statementBounds returns the start and end positions of a declaration, including comments.
//
// For var declarations, this includes doc comments before the declaration. A comment
// following the declaration on the same line is included, as are the complete lines
// when nothing else is on them.
func statementBounds(currentFile astutil.CurrentFile, decl inspector.Cursor) (pos, end token.Pos) {
	stmt := decl.Node()
	pos, end = stmt.Pos(), stmt.End()

	if declStmt, ok := stmt.(*ast.DeclStmt); ok {
		if g, ok := declStmt.Decl.(*ast.GenDecl); ok {
			if doc := g.Doc; doc != nil && doc.Pos() < pos {
				pos = doc.Pos()
			}

			if vspec, ok := g.Specs[len(g.Specs)-1].(*ast.ValueSpec); ok {
				if comment := vspec.Comment; comment != nil && end < comment.End() {
					end = comment.End()
				}
			}
		}
	}

	if !currentFile.Valid() {
		return pos, end
	}

	if comment := currentFile.TrailingComment(end); comment != nil {
		end = comment.End()
	}

	prev := opening(decl.Parent().Node())
	if c, ok := decl.PrevSibling(); ok {
		prev = c.Node().End()
	}

	next, ok := decl.NextSibling()
	if !ok || !prev.IsValid() || currentFile.SameLine(prev, pos) || currentFile.SameLine(end, next.Node().Pos()) {
		return pos, end
	}

	return currentFile.LineStart(pos), currentFile.NextLineStart(end)
}

// opening returns the end of the token opening a statement list.
func opening(n ast.Node) token.Pos {
	switch n := n.(type) {
	case *ast.BlockStmt:
		return n.Lbrace + 1

	case *ast.CaseClause:
		return n.Colon + 1

	case *ast.CommClause:
		return n.Colon + 1

	default:
		return token.NoPos
	}
}

// NeedParens reports whether init must be parenthesized when it replaces the identifier at use.
func NeedParens(use inspector.Cursor, init ast.Expr) bool {
	switch init.(type) {
	case *ast.Ident, *ast.BasicLit, *ast.CallExpr, *ast.SelectorExpr, *ast.IndexExpr, *ast.IndexListExpr,
		*ast.SliceExpr, *ast.TypeAssertExpr, *ast.ParenExpr, *ast.FuncLit:
		return false

	case *ast.CompositeLit:
		// A composite literal in a statement header would be parsed as the block
		return inHeader(use)
	}

	switch kind, _ := use.ParentEdge(); kind {
	case edge.CallExpr_Args, edge.AssignStmt_Rhs, edge.ReturnStmt_Results, edge.ValueSpec_Values,
		edge.CompositeLit_Elts, edge.KeyValueExpr_Value, edge.IndexExpr_Index, edge.SendStmt_Value,
		edge.ExprStmt_X, edge.ParenExpr_X:
		return false

	default:
		return true
	}
}

// inHeader reports whether c is at the top level of an if, for, switch or range header.
func inHeader(c inspector.Cursor) bool {
	for ; ; c = c.Parent() {
		switch kind, _ := c.ParentEdge(); kind {
		case edge.IfStmt_Init, edge.IfStmt_Cond,
			edge.ForStmt_Init, edge.ForStmt_Cond, edge.ForStmt_Post,
			edge.SwitchStmt_Init, edge.SwitchStmt_Tag,
			edge.TypeSwitchStmt_Init, edge.TypeSwitchStmt_Assign,
			edge.RangeStmt_X:
			return true

		case edge.ParenExpr_X, edge.CallExpr_Args, edge.IndexExpr_Index, edge.IndexListExpr_Indices,
			edge.SliceExpr_Low, edge.SliceExpr_High, edge.SliceExpr_Max, edge.CompositeLit_Elts,
			edge.FuncLit_Body, edge.BlockStmt_List, edge.CaseClause_Body, edge.CommClause_Body,
			edge.Invalid:
			return false
		}
	}
}
