// Copyright 2025-2026 Oliver Eikemeier. All Rights Reserved.
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

// Package testsource parses and type checks Go source for tests of the analysis packages.
package testsource

import (
	"go/ast"
	"go/importer"
	"go/parser"
	"go/token"
	"go/types"
	"testing"

	"golang.org/x/tools/go/ast/edge"
	"golang.org/x/tools/go/ast/inspector"
)

const testpkg = "test"

// Fragment is a statement list wrapped in the function "func _()" of package "test".
type Fragment struct {
	Fset *token.FileSet
	File *ast.File
	Func *ast.FuncDecl
	Body inspector.Cursor // at the Body field of Func
}

// Parse parses a statement list without type checking it, so the fragment may
// refer to undeclared names. Use [Fragment.Check] for type information.
func Parse(tb testing.TB, src string) Fragment {
	tb.Helper()

	fset := token.NewFileSet()
	wrapped := "package " + testpkg + "\n\nfunc _() {\n" + src + "\n}\n"

	f, err := parser.ParseFile(fset, "test.go", wrapped, parser.SkipObjectResolution)
	if err != nil {
		tb.Fatalf("Failed to parse source %q: %v", src, err)
	}

	for c := range inspector.New([]*ast.File{f}).Root().Preorder((*ast.FuncDecl)(nil)) {
		return Fragment{
			Fset: fset,
			File: f,
			Func: c.Node().(*ast.FuncDecl),
			Body: c.ChildAt(edge.FuncDecl_Body, -1),
		}
	}

	tb.Fatal("Can't find function")

	return Fragment{}
}

// Check type checks the fragment.
func (f Fragment) Check(tb testing.TB) *types.Info {
	tb.Helper()

	_, info := Check(tb, f.Fset, f.File)

	return info
}

// Check type checks a file of package "test", importing from the installed standard library.
func Check(tb testing.TB, fset *token.FileSet, f *ast.File) (*types.Package, *types.Info) {
	tb.Helper()

	info := &types.Info{
		Types:      make(map[ast.Expr]types.TypeAndValue),
		Defs:       make(map[*ast.Ident]types.Object),
		Uses:       make(map[*ast.Ident]types.Object),
		Scopes:     make(map[ast.Node]*types.Scope),
		Selections: make(map[*ast.SelectorExpr]*types.Selection),
		Instances:  make(map[*ast.Ident]types.Instance),
	}

	conf := types.Config{Importer: importer.Default()}

	pkg, err := conf.Check(testpkg, fset, []*ast.File{f}, info)
	if err != nil {
		tb.Fatalf("Failed to type check source: %v", err)
	}

	return pkg, info
}
