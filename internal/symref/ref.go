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

package symref

import (
	"go/ast"
	"go/types"
	"strconv"
	"strings"
)

// Ref is the canonical key of a storage location.
//
// A field reference consists of the member key, optionally followed by the
// qualifier key, so that x.f and y.f are distinct. A field reference without
// a qualifier stands for the field of any value.
type Ref string

// None is the absent key of a reference that can't be resolved.
const None Ref = ""

const (
	qualifierSep = "\x00"
	callPrefix   = "call:"
)

// Mode controls which references [Of] resolves.
type Mode uint8

const (
	// ExcludeLocals drops local variables, which are invisible outside their function.
	ExcludeLocals Mode = 1 << iota

	// Calls keeps field references qualified by a call result. Without it, a field
	// of a call result has no reference.
	Calls
)

// Has reports whether all flags are set.
func (m Mode) Has(flags Mode) bool { return m&flags == flags }

// Member returns the reference without its qualifier.
func (r Ref) Member() Ref {
	if i := strings.Index(string(r), qualifierSep); i >= 0 {
		return r[:i]
	}

	return r
}

// Qualified reports whether the reference carries a qualifier.
func (r Ref) Qualified() bool {
	return strings.Contains(string(r), qualifierSep)
}

// Call reports whether the reference is a call result stand-in.
func (r Ref) Call() bool {
	return strings.HasPrefix(string(r), callPrefix)
}

// ThroughCall returns the reference qualified by the call site it was found behind.
func (r Ref) ThroughCall(site string) Ref {
	return Ref(callPrefix + site + "/" + string(r))
}

// Of returns the reference for a variable, qualified or field access, or call expression.
func Of(info *types.Info, expr ast.Expr, mode Mode) Ref {
	if info == nil {
		return None
	}

	switch e := ast.Unparen(expr).(type) {
	case *ast.Ident:
		return ofIdent(info, e, mode)

	case *ast.SelectorExpr:
		return ofSelector(info, e, mode)

	case *ast.CallExpr:
		return CallRef(e)

	case *ast.StarExpr: // (*p).f is the same location as p.f
		return Of(info, e.X, mode)

	default:
		return None
	}
}

// CallRef returns the stand-in reference for the value returned by a call.
func CallRef(call *ast.CallExpr) Ref {
	return Ref(callPrefix + types.ExprString(call))
}

func ofIdent(info *types.Info, id *ast.Ident, mode Mode) Ref {
	if id.Name == "_" {
		return None
	}

	obj := info.Uses[id]
	if obj == nil {
		obj = info.Defs[id]
	}

	v, ok := obj.(*types.Var)
	if !ok {
		return None
	}

	if mode.Has(ExcludeLocals) && IsLocal(v) {
		return None
	}

	return varKey(v)
}

func ofSelector(info *types.Info, sel *ast.SelectorExpr, mode Mode) Ref {
	selection, ok := info.Selections[sel]
	if !ok { // qualified identifier
		return ofIdent(info, sel.Sel, mode)
	}

	if selection.Kind() != types.FieldVal {
		return None // method value or expression
	}

	field, ok := selection.Obj().(*types.Var)
	if !ok {
		return None
	}

	member := varKey(field)

	var qualifier Ref
	switch x := ast.Unparen(sel.X).(type) {
	case *ast.CallExpr:
		if !mode.Has(Calls) {
			return None
		}

		qualifier = CallRef(x)

	default:
		qualifier = Of(info, x, mode)
	}

	if qualifier == None {
		return member
	}

	return member + qualifierSep + qualifier
}

// IsLocal reports whether v is a variable local to a function.
func IsLocal(v *types.Var) bool {
	if v.IsField() {
		return false
	}

	pkg, parent := v.Pkg(), v.Parent()
	if pkg == nil || parent == nil {
		return false
	}

	return parent != pkg.Scope()
}

// IsGlobal reports whether v is a package-level variable.
func IsGlobal(v *types.Var) bool {
	pkg := v.Pkg()

	return !v.IsField() && pkg != nil && v.Parent() == pkg.Scope()
}

func varKey(v *types.Var) Ref {
	var b strings.Builder

	if pkg := v.Pkg(); pkg != nil {
		b.WriteString(pkg.Path()) // ignore error
		b.WriteByte('.')          // ignore error
	}

	b.WriteString(v.Name()) // ignore error

	if !IsGlobal(v) {
		// Locals and fields with the same name are distinguished by their declaration
		b.WriteByte('#')                          // ignore error
		b.WriteString(strconv.Itoa(int(v.Pos()))) // ignore error
	}

	return Ref(b.String())
}
