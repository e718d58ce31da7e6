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
	"errors"
	"fmt"
	"go/ast"
	"go/types"
	"slices"
)

// Finder locates the source declaration of a called function.
//
// Implementations may be slow and may fail; a failed lookup degrades the
// analysis conservatively and is never surfaced to the caller.
type Finder interface {
	Find(fun *types.Func) (*ast.FuncDecl, error)
}

// ErrNotFound is returned when no in-source declaration exists.
var ErrNotFound = errors.New("callee declaration not found")

// Policy selects the body analyzed for an abstract callee.
type Policy uint8

const (
	// Representative analyzes the first in-source implementation, in declaration order.
	// This is unsound when implementations behave differently.
	Representative Policy = iota

	// StaticOnly never analyzes interface method calls.
	StaticOnly
)

// Index maps functions of one package to their declarations.
type Index struct {
	decls  map[*types.Func]*ast.FuncDecl
	named  []*types.Named // package-level named types, in declaration order
	policy Policy
}

// NewIndex creates an [Index] of all function declarations in files.
func NewIndex(info *types.Info, files []*ast.File, policy Policy) *Index {
	x := &Index{
		decls:  make(map[*types.Func]*ast.FuncDecl),
		policy: policy,
	}

	for _, f := range files {
		for _, decl := range f.Decls {
			switch decl := decl.(type) {
			case *ast.FuncDecl:
				if fun, ok := info.Defs[decl.Name].(*types.Func); ok {
					x.decls[fun] = decl
				}

			case *ast.GenDecl:
				x.addTypes(info, decl)
			}
		}
	}

	slices.SortFunc(x.named, func(a, b *types.Named) int { return int(a.Obj().Pos() - b.Obj().Pos()) })

	return x
}

func (x *Index) addTypes(info *types.Info, decl *ast.GenDecl) {
	for _, spec := range decl.Specs {
		spec, ok := spec.(*ast.TypeSpec)
		if !ok || spec.Assign.IsValid() {
			continue
		}

		obj, ok := info.Defs[spec.Name].(*types.TypeName)
		if !ok {
			continue
		}

		if named, ok := obj.Type().(*types.Named); ok && !types.IsInterface(named) {
			x.named = append(x.named, named)
		}
	}
}

// Len returns the number of indexed declarations.
func (x *Index) Len() int { return len(x.decls) }

// Find implements [Finder].
func (x *Index) Find(fun *types.Func) (*ast.FuncDecl, error) {
	fun = fun.Origin()

	if decl, ok := x.decls[fun]; ok {
		if decl.Body == nil {
			return nil, fmt.Errorf("%s: %w (no body)", fun.FullName(), ErrNotFound)
		}

		return decl, nil
	}

	iface := interfaceOf(fun)
	if iface == nil || x.policy == StaticOnly {
		return nil, fmt.Errorf("%s: %w", fun.FullName(), ErrNotFound)
	}

	return x.findImplementation(fun, iface)
}

// findImplementation returns the first in-source implementation of an interface method.
func (x *Index) findImplementation(fun *types.Func, iface *types.Interface) (*ast.FuncDecl, error) {
	for _, named := range x.named {
		if named.TypeParams().Len() > 0 {
			continue
		}

		var recv types.Type = named
		if !types.Implements(recv, iface) {
			recv = types.NewPointer(named)
			if !types.Implements(recv, iface) {
				continue
			}
		}

		obj, _, _ := types.LookupFieldOrMethod(recv, false, fun.Pkg(), fun.Name())

		impl, ok := obj.(*types.Func)
		if !ok {
			continue
		}

		if decl, ok := x.decls[impl.Origin()]; ok && decl.Body != nil {
			return decl, nil
		}
	}

	return nil, fmt.Errorf("%s: %w (no implementation)", fun.FullName(), ErrNotFound)
}

// interfaceOf returns the interface fun is declared on, or nil.
func interfaceOf(fun *types.Func) *types.Interface {
	sig, ok := fun.Type().(*types.Signature)
	if !ok || sig.Recv() == nil {
		return nil
	}

	iface, _ := sig.Recv().Type().Underlying().(*types.Interface)

	return iface
}
