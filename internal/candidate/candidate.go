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

// Package candidate finds local variables whose initializer can replace their single use.
package candidate

import (
	"go/ast"
	"go/token"
	"go/types"
	"slices"

	"golang.org/x/tools/go/ast/edge"
	"golang.org/x/tools/go/ast/inspector"

	"fillmore-labs.com/extractguard/internal/astutil"
)

// Candidate is a variable declared with an initializer and used exactly once.
type Candidate struct {
	// Decl is the declaring *[ast.AssignStmt] or *[ast.DeclStmt].
	Decl astutil.NodeIndex

	// Var is the declared variable.
	Var *types.Var

	// Init is the initializer expression.
	Init ast.Expr

	// Use is the single use of Var.
	Use astutil.NodeIndex

	// Status is the evaluated inline status.
	Status InlineStatus
}

// tracked is a declaration under observation while collecting.
type tracked struct {
	decl    inspector.Cursor
	init    ast.Expr
	fn      ast.Node // innermost function declaration or literal
	uses    []inspector.Cursor
	blocked bool // assigned or address taken
}

// Collect returns the inline candidates of a function body, in source order.
func Collect(info *types.Info, body inspector.Cursor) []Candidate {
	vars := make(map[*types.Var]*tracked)

	var order []*types.Var

	for c := range body.Preorder((*ast.AssignStmt)(nil), (*ast.DeclStmt)(nil)) {
		if !statement(c) {
			continue
		}

		if v, init, ok := declared(info, c.Node()); ok {
			vars[v] = &tracked{decl: c, init: init, fn: enclosingFunc(c)}
			order = append(order, v)
		}
	}

	if len(vars) == 0 {
		return nil
	}

	for c := range body.Preorder((*ast.Ident)(nil)) {
		v, ok := info.Uses[c.Node().(*ast.Ident)].(*types.Var)
		if !ok {
			continue
		}

		t, ok := vars[v]
		if !ok || t.blocked {
			continue
		}

		if enclosingFunc(c) != t.fn || modified(info, c) {
			t.blocked = true

			continue
		}

		t.uses = append(t.uses, c)
	}

	candidates := make([]Candidate, 0, len(order))

	for _, v := range order {
		t := vars[v]
		if t.blocked || len(t.uses) != 1 {
			continue
		}

		candidates = append(candidates, Candidate{
			Decl: astutil.NodeIndexOf(t.decl),
			Var:  v,
			Init: t.init,
			Use:  astutil.NodeIndexOf(t.uses[0]),
		})
	}

	return slices.Clip(candidates)
}

// statement reports whether c is a statement of a block or clause body.
func statement(c inspector.Cursor) bool {
	switch kind, _ := c.ParentEdge(); kind {
	case edge.BlockStmt_List, edge.CaseClause_Body, edge.CommClause_Body:
		return true

	default:
		return false
	}
}

// declared returns the variable and initializer of a single variable declaration.
func declared(info *types.Info, n ast.Node) (*types.Var, ast.Expr, bool) {
	var (
		id   *ast.Ident
		typ  ast.Expr
		init ast.Expr
	)

	switch n := n.(type) {
	case *ast.AssignStmt:
		if n.Tok != token.DEFINE || len(n.Lhs) != 1 || len(n.Rhs) != 1 {
			return nil, nil, false
		}

		id, _ = n.Lhs[0].(*ast.Ident)
		init = n.Rhs[0]

	case *ast.DeclStmt:
		gen, ok := n.Decl.(*ast.GenDecl)
		if !ok || gen.Tok != token.VAR || len(gen.Specs) != 1 {
			return nil, nil, false
		}

		spec, ok := gen.Specs[0].(*ast.ValueSpec)
		if !ok || len(spec.Names) != 1 || len(spec.Values) != 1 {
			return nil, nil, false
		}

		id, typ, init = spec.Names[0], spec.Type, spec.Values[0]
	}

	if id == nil || id.Name == "_" {
		return nil, nil, false
	}

	v, ok := info.Defs[id].(*types.Var)
	if !ok {
		return nil, nil, false
	}

	tv, ok := info.Types[init]
	if !ok || tv.Value != nil || tv.IsNil() || !tv.IsValue() {
		return nil, nil, false // constants change type when inlined
	}

	if typ != nil && !types.Identical(tv.Type, v.Type()) {
		return nil, nil, false // implicit conversion
	}

	return v, init, true
}

// modified reports whether the identifier at c is written or has its address taken.
func modified(info *types.Info, c inspector.Cursor) bool {
	for {
		switch kind, _ := c.ParentEdge(); kind {
		case edge.AssignStmt_Lhs, edge.IncDecStmt_X, edge.RangeStmt_Key, edge.RangeStmt_Value:
			return true

		case edge.UnaryExpr_X:
			return c.Parent().Node().(*ast.UnaryExpr).Op == token.AND

		case edge.ParenExpr_X:
			c = c.Parent()

		case edge.SelectorExpr_X:
			switch operandUse(info, c.Parent().Node().(*ast.SelectorExpr)) {
			case fieldOperand:
				c = c.Parent()

			case receiverOperand:
				return true

			default:
				return false
			}

		case edge.IndexExpr_X:
			if !array(info.TypeOf(c.Node().(ast.Expr))) {
				return false
			}

			c = c.Parent()

		case edge.SliceExpr_X:
			return array(info.TypeOf(c.Node().(ast.Expr)))

		default:
			return false
		}
	}
}

type operand uint8

const (
	valueOperand    operand = iota
	fieldOperand            // struct value containing the selected field
	receiverOperand         // implicitly addressed receiver of a pointer method
)

// operandUse classifies how the operand of sel is used.
func operandUse(info *types.Info, sel *ast.SelectorExpr) operand {
	selection, ok := info.Selections[sel]
	if !ok || selection.Indirect() {
		return valueOperand
	}

	switch selection.Kind() {
	case types.FieldVal:
		return fieldOperand

	case types.MethodVal:
		sig, ok := selection.Obj().Type().(*types.Signature)
		if !ok || sig.Recv() == nil {
			return valueOperand
		}

		if _, ptr := sig.Recv().Type().Underlying().(*types.Pointer); !ptr {
			return valueOperand
		}

		if _, ptr := info.TypeOf(sel.X).Underlying().(*types.Pointer); ptr {
			return valueOperand
		}

		return receiverOperand

	default:
		return valueOperand
	}
}

func array(t types.Type) bool {
	if t == nil {
		return false
	}

	_, ok := t.Underlying().(*types.Array)

	return ok
}

// enclosingFunc returns the innermost function declaration or literal containing c.
func enclosingFunc(c inspector.Cursor) ast.Node {
	for f := range c.Enclosing((*ast.FuncDecl)(nil), (*ast.FuncLit)(nil)) {
		return f.Node()
	}

	return nil
}
