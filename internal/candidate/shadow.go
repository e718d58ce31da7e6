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

	"fillmore-labs.com/extractguard/internal/astutil"
	"fillmore-labs.com/extractguard/internal/scope"
)

// Shadowed reports whether an identifier used in init denotes a different
// object at pos. v is the variable initialized by init, its declaration is
// gone after inlining.
func Shadowed(info *types.Info, scopes scope.Index, init ast.Expr, v *types.Var, pos token.Pos) bool {
	declScope := v.Parent()
	if declScope == nil {
		return true
	}

	span := astutil.SpanOf(init)
	checked := make(map[types.Object]struct{})
	selected := make(map[*ast.Ident]struct{})

	for n := range ast.Preorder(init) {
		if sel, ok := n.(*ast.SelectorExpr); ok {
			selected[sel.Sel] = struct{}{} // resolved through the operand

			continue
		}

		id, ok := n.(*ast.Ident)
		if !ok || id.Name == "_" {
			continue
		}

		if _, ok := selected[id]; ok {
			continue
		}

		use, ok := info.Uses[id]
		if !ok || use.Parent() == nil { // fields, methods
			continue
		}

		if span.Contains(use.Pos()) { // declared in a function literal of init
			continue
		}

		if _, ok := checked[use]; ok {
			continue
		}

		checked[use] = struct{}{}

		at := scopes.Resolve(declScope, id.Name, pos)
		if at == v {
			_, at = declScope.Parent().LookupParent(id.Name, pos)
		}

		if at != use {
			return true
		}
	}

	return false
}
