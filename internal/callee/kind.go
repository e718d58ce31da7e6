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

package callee

import (
	"go/ast"
	"go/types"

	"golang.org/x/tools/go/types/typeutil"
)

// Kind classifies a call expression.
type Kind uint8

const (
	// Static is a call of a declared function or method, including interface methods.
	Static Kind = iota

	// Builtin is a call of a predeclared function.
	Builtin

	// Conversion is a type conversion.
	Conversion

	// Literal is an immediately invoked function literal.
	Literal

	// Dynamic is a call of a function value.
	Dynamic
)

// KindOf classifies call. Without type information every call is [Dynamic].
func KindOf(info *types.Info, call *ast.CallExpr) Kind {
	if !typed(info) {
		return Dynamic
	}

	fun := ast.Unparen(call.Fun)

	if tv, ok := info.Types[fun]; ok && tv.IsType() {
		return Conversion
	}

	if _, ok := fun.(*ast.FuncLit); ok {
		return Literal
	}

	switch calleeOf(info, call).(type) {
	case *types.Func:
		return Static

	case *types.Builtin:
		return Builtin

	default:
		return Dynamic
	}
}

// BuiltinName returns the name of the called builtin, or "".
func BuiltinName(info *types.Info, call *ast.CallExpr) string {
	if b, ok := calleeOf(info, call).(*types.Builtin); ok {
		return b.Name()
	}

	return ""
}

// calleeOf is [typeutil.Callee], returning nil when info lacks the maps it needs.
func calleeOf(info *types.Info, call *ast.CallExpr) types.Object {
	if !typed(info) {
		return nil
	}

	return typeutil.Callee(info, call)
}

func typed(info *types.Info) bool {
	return info != nil && info.Types != nil && info.Uses != nil
}

// Declared returns the function declared by a function declaration, or nil for function literals.
func Declared(info *types.Info, fn ast.Node) *types.Func {
	decl, ok := fn.(*ast.FuncDecl)
	if !ok {
		return nil
	}

	fun, _ := info.Defs[decl.Name].(*types.Func)

	return fun
}
