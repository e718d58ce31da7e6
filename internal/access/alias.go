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


package access

import (
	"go/ast"
	"go/token"
	"go/types"

	"fillmore-labs.com/extractguard/internal/astutil"
	"fillmore-labs.com/extractguard/internal/symref"
)

// Aliases are local variables that may be accessed other than by their name.
type Aliases map[*types.Var]struct{}

// Has reports whether v is aliased.
func (a Aliases) Has(v *types.Var) bool {
	_, ok := a[v]

	return ok
}

// AliasesOf returns the local variables of fn whose address is taken, explicitly,
// by slicing an array or as receiver of a pointer method, and those a function
// literal of fn writes that are declared outside of it.
func AliasesOf(info *types.Info, fn ast.Node) Aliases {
	a := make(Aliases)
	if fn == nil {
		return a
	}

	ast.Inspect(fn, func(n ast.Node) bool {
		switch n := n.(type) {
		case *ast.UnaryExpr:
			if n.Op == token.AND {
				a.add(info, n.X)
			}

		case *ast.SliceExpr:
			if isArray(info.TypeOf(n.X)) {
				a.add(info, n.X)
			}

		case *ast.SelectorExpr:
			if addressedReceiver(info, n) {
				a.add(info, n.X)
			}

		case *ast.FuncLit:
			a.captured(info, n)
		}

		return true
	})

	return a
}

// captured adds the variables declared outside lit that lit writes.
func (a Aliases) captured(info *types.Info, lit *ast.FuncLit) {
	span := astutil.SpanOf(lit)

	write := func(e ast.Expr) {
		if v := rootLocal(info, e); v != nil && !span.Contains(v.Pos()) {
			a[v] = struct{}{}
		}
	}

	ast.Inspect(lit.Body, func(n ast.Node) bool {
		switch n := n.(type) {
		case *ast.AssignStmt:
			for _, lhs := range n.Lhs {
				write(lhs)
			}

		case *ast.IncDecStmt:
			write(n.X)

		case *ast.RangeStmt:
			if n.Tok == token.ASSIGN {
				write(n.Key)
				write(n.Value)
			}
		}

		return true
	})
}

func (a Aliases) add(info *types.Info, e ast.Expr) {
	if v := rootLocal(info, e); v != nil {
		a[v] = struct{}{}
	}
}

// rootLocal returns the local variable containing the location e denotes, or nil
// when e is reached through a reference.
func rootLocal(info *types.Info, e ast.Expr) *types.Var {
	for e != nil {
		switch x := ast.Unparen(e).(type) {
		case *ast.Ident:
			if v, ok := info.ObjectOf(x).(*types.Var); ok && symref.IsLocal(v) {
				return v
			}

			return nil

		case *ast.SelectorExpr:
			selection, ok := info.Selections[x]
			if !ok || selection.Kind() != types.FieldVal || selection.Indirect() {
				return nil
			}

			e = x.X

		case *ast.IndexExpr:
			if !isArray(info.TypeOf(x.X)) {
				return nil
			}

			e = x.X

		default:
			return nil
		}
	}

	return nil
}

// addressedReceiver reports whether sel selects a pointer method on an addressable value.
func addressedReceiver(info *types.Info, sel *ast.SelectorExpr) bool {
	selection, ok := info.Selections[sel]
	if !ok || selection.Kind() != types.MethodVal || selection.Indirect() {
		return false
	}

	sig, ok := selection.Obj().Type().(*types.Signature)
	if !ok || sig.Recv() == nil {
		return false
	}

	if _, ptr := sig.Recv().Type().Underlying().(*types.Pointer); !ptr {
		return false
	}

	t := info.TypeOf(sel.X)
	if t == nil {
		return false
	}

	_, ptr := t.Underlying().(*types.Pointer)

	return !ptr
}

func isArray(t types.Type) bool {
	if t == nil {
		return false
	}

	_, ok := t.Underlying().(*types.Array)

	return ok
}
