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

// Package sideeffect decides whether evaluating an expression has an observable effect.
package sideeffect

import (
	"context"
	"go/ast"
	"go/token"
	"go/types"

	"fillmore-labs.com/extractguard/internal/access"
	"fillmore-labs.com/extractguard/internal/astutil"
	"fillmore-labs.com/extractguard/internal/callee"
	"fillmore-labs.com/extractguard/internal/funcname"
	"fillmore-labs.com/extractguard/internal/symref"
)

// Classifier detects side effects of expressions from one package.
type Classifier struct {
	Info     *types.Info
	Resolver callee.Resolver
	Impure   funcname.Set
	Pure     funcname.Patterns // packages without side effects
	Depth    int               // levels of callee bodies analyzed
}

// HasSideEffect reports whether evaluating node may have an effect beyond its result.
// current is the function containing node, calls to it are not analyzed.
func (c Classifier) HasSideEffect(ctx context.Context, node ast.Node, current *types.Func) bool {
	v := visitor{
		Classifier: c,
		ctx:        ctx,
		current:    current,
		depth:      c.Depth,
	}

	return v.check(node)
}

type visitor struct {
	Classifier
	ctx     context.Context
	current *types.Func
	depth   int
	body    bool // analyzing a callee body: local assignments are invisible
	found   bool
}

func (v *visitor) check(node ast.Node) bool {
	if node == nil {
		return false
	}

	ast.Inspect(node, v.visit)

	return v.found
}

func (v *visitor) visit(n ast.Node) bool {
	if v.found {
		return false
	}

	switch n := n.(type) {
	case *ast.AssignStmt:
		v.found = !v.body && v.assignment(n)

	case *ast.IncDecStmt:
		v.found = !v.body

	case *ast.RangeStmt:
		v.found = v.rangeEffect(n)

	case *ast.SendStmt, *ast.GoStmt, *ast.SelectStmt:
		v.found = true

	case *ast.UnaryExpr:
		v.found = n.Op == token.ARROW

	case *ast.FuncLit: // a function value is not evaluated
		return false

	case *ast.CallExpr:
		v.found = v.call(n)
	}

	return !v.found
}

// assignment detects self-modifying assignments and writes to non-local locations.
func (v *visitor) assignment(n *ast.AssignStmt) bool {
	switch n.Tok {
	case token.ASSIGN, token.DEFINE:

	default: // op-assign reads its target
		return true
	}

	for i, lhs := range n.Lhs {
		if isBlank(lhs) {
			continue
		}

		if id, ok := lhs.(*ast.Ident); ok && n.Tok == token.DEFINE {
			if _, defined := v.Info.Defs[id]; defined {
				continue
			}
		}

		rhs := n.Rhs[0]
		if len(n.Rhs) == len(n.Lhs) {
			rhs = n.Rhs[i]
		}

		l, r := v.strip(lhs), v.strip(rhs)
		if types.ExprString(l) == types.ExprString(r) {
			continue // x = x stores what is already there
		}

		if access.StorageOf(v.Info, lhs) != access.Local {
			return true
		}

		ref := symref.Of(v.Info, lhs, 0)
		if ref == symref.None {
			return true
		}

		reads := v.collector().Reads(v.ctx, r, 0)
		if reads.Refs.Intersects(symref.Set{ref: {}}) {
			return true
		}
	}

	return false
}

func (v *visitor) rangeEffect(n *ast.RangeStmt) bool {
	t := v.Info.TypeOf(n.X)
	if t == nil {
		return true
	}

	if _, ok := t.Underlying().(*types.Chan); ok {
		return true
	}

	if n.Tok != token.ASSIGN || v.body {
		return false
	}

	for _, e := range [...]ast.Expr{n.Key, n.Value} {
		if e != nil && !isBlank(e) && access.StorageOf(v.Info, e) != access.Local {
			return true
		}
	}

	return false
}

func (v *visitor) call(call *ast.CallExpr) bool {
	switch callee.KindOf(v.Info, call) {
	case callee.Conversion:
		return false

	case callee.Builtin:
		return impureBuiltin(callee.BuiltinName(v.Info, call))

	case callee.Literal:
		lit := ast.Unparen(call.Fun).(*ast.FuncLit)

		return v.literal(lit)

	case callee.Static:
		return v.static(callee.Func(v.Info, call))

	default:
		return true
	}
}

func (v *visitor) static(fun *types.Func) bool {
	if impure, known := v.Impure.Known(fun); known {
		return impure
	}

	if v.Pure.Match(fun) {
		return false
	}

	if same(fun, v.current) {
		return false
	}

	if v.depth <= 0 || v.ctx.Err() != nil {
		return true // not proven pure
	}

	decl, outcome := v.Resolver.Body(v.ctx, fun)
	if outcome != callee.Found {
		return true
	}

	if impl, ok := v.Info.Defs[decl.Name].(*types.Func); ok {
		fun = impl
	}

	writes := access.Collector{Info: v.Info, Current: fun, Mode: symref.ExcludeLocals}.DirectWrites(v.ctx, decl.Body)
	if writes.Escapes {
		return true
	}

	nested := visitor{
		Classifier: v.Classifier,
		ctx:        v.ctx,
		current:    fun,
		depth:      v.depth - 1,
		body:       true,
	}

	return nested.check(decl.Body)
}

// literal analyzes the body of an immediately called function literal.
func (v *visitor) literal(lit *ast.FuncLit) bool {
	if v.capturedWrite(lit) {
		return true
	}

	nested := *v
	nested.body = true
	nested.found = false

	return nested.check(lit.Body)
}

// capturedWrite reports whether the literal assigns a location declared outside of it.
func (v *visitor) capturedWrite(lit *ast.FuncLit) bool {
	span := astutil.SpanOf(lit)

	escapes := func(e ast.Expr) bool {
		if e == nil || isBlank(e) {
			return false
		}

		if access.StorageOf(v.Info, e) != access.Local {
			return true
		}

		root := rootVar(v.Info, e)

		return root == nil || !span.Contains(root.Pos())
	}

	found := false
	ast.Inspect(lit.Body, func(n ast.Node) bool {
		if found {
			return false
		}

		switch n := n.(type) {
		case *ast.AssignStmt:
			for _, lhs := range n.Lhs {
				if id, ok := lhs.(*ast.Ident); ok && n.Tok == token.DEFINE {
					if _, defined := v.Info.Defs[id]; defined {
						continue
					}
				}

				if escapes(lhs) {
					found = true
				}
			}

		case *ast.IncDecStmt:
			found = escapes(n.X)

		case *ast.RangeStmt:
			if n.Tok == token.ASSIGN {
				found = escapes(n.Key) || escapes(n.Value)
			}

		case *ast.UnaryExpr:
			found = n.Op == token.AND && escapes(n.X)
		}

		return !found
	})

	return found
}

// strip removes parentheses and conversions.
func (v *visitor) strip(e ast.Expr) ast.Expr {
	for {
		e = ast.Unparen(e)

		call, ok := e.(*ast.CallExpr)
		if !ok || len(call.Args) != 1 || callee.KindOf(v.Info, call) != callee.Conversion {
			return e
		}

		e = call.Args[0]
	}
}

func (v *visitor) collector() access.Collector {
	return access.Collector{Info: v.Info, Resolver: v.Resolver, Current: v.current}
}

// rootVar returns the variable an assignable expression is part of, or nil.
func rootVar(info *types.Info, e ast.Expr) *types.Var {
	for {
		switch x := ast.Unparen(e).(type) {
		case *ast.Ident:
			v, _ := info.ObjectOf(x).(*types.Var)

			return v

		case *ast.SelectorExpr:
			if _, ok := info.Selections[x]; !ok {
				v, _ := info.ObjectOf(x.Sel).(*types.Var)

				return v
			}

			e = x.X

		case *ast.IndexExpr:
			e = x.X

		default:
			return nil
		}
	}
}

func impureBuiltin(name string) bool {
	switch name {
	case "clear", "close", "copy", "delete", "panic", "print", "println", "recover":
		return true

	default:
		return false
	}
}

func isBlank(e ast.Expr) bool {
	id, ok := ast.Unparen(e).(*ast.Ident)

	return ok && id.Name == "_"
}

func same(a, b *types.Func) bool {
	return a != nil && b != nil && a.Origin() == b.Origin()
}
