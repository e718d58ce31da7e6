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

package testsource

import (
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"strings"
	"testing"

	"golang.org/x/tools/go/ast/inspector"
)

// Source is a parsed and type-checked test file.
type Source struct {
	Fset *token.FileSet
	File *ast.File
	Pkg  *types.Package
	Info *types.Info
	Root inspector.Cursor

	text string
}

// Load parses and type checks a complete source file of package "test".
func Load(tb testing.TB, src string) *Source {
	tb.Helper()

	fset := token.NewFileSet()

	f, err := parser.ParseFile(fset, "test.go", src, parser.SkipObjectResolution|parser.ParseComments)
	if err != nil {
		tb.Fatalf("Failed to parse source: %v", err)
	}

	pkg, info := Check(tb, fset, f)

	return &Source{
		Fset: fset,
		File: f,
		Pkg:  pkg,
		Info: info,
		Root: inspector.New([]*ast.File{f}).Root(),
		text: src,
	}
}

// Func returns the cursor of the named function declaration.
func (s *Source) Func(tb testing.TB, name string) inspector.Cursor {
	tb.Helper()

	for c := range s.Root.Preorder((*ast.FuncDecl)(nil)) {
		if c.Node().(*ast.FuncDecl).Name.Name == name {
			return c
		}
	}

	tb.Fatalf("Can't find function %q", name)

	return inspector.Cursor{}
}

// Object returns the object declared by the first definition of name.
func (s *Source) Object(tb testing.TB, name string) types.Object {
	tb.Helper()

	for c := range s.Root.Preorder((*ast.Ident)(nil)) {
		id := c.Node().(*ast.Ident)
		if obj := s.Info.Defs[id]; obj != nil && id.Name == name {
			return obj
		}
	}

	tb.Fatalf("Can't find definition of %q", name)

	return nil
}

// Pos returns the position of the n-th occurrence (counting from 1) of needle.
func (s *Source) Pos(tb testing.TB, needle string, n int) token.Pos {
	tb.Helper()

	offset := -1
	for range n {
		i := strings.Index(s.text[offset+1:], needle)
		if i < 0 {
			tb.Fatalf("Can't find occurrence %d of %q", n, needle)
		}

		offset += i + 1
	}

	return s.Fset.File(s.File.Pos()).Pos(offset)
}

// After returns the position of the first occurrence of needle at or after from.
func (s *Source) After(tb testing.TB, from token.Pos, needle string) token.Pos {
	tb.Helper()

	file := s.Fset.File(s.File.Pos())

	offset := file.Offset(from)

	i := strings.Index(s.text[offset:], needle)
	if i < 0 {
		tb.Fatalf("Can't find %q after offset %d", needle, offset)
	}

	return file.Pos(offset + i)
}

// FindPos returns the position of the first occurrence of needle in the body of fn.
func (s *Source) FindPos(tb testing.TB, fn inspector.Cursor, needle string) token.Pos {
	tb.Helper()

	decl, ok := fn.Node().(*ast.FuncDecl)
	if !ok || decl.Body == nil {
		tb.Fatalf("%s is not a function declaration with body", fn)
	}

	return s.After(tb, decl.Body.Lbrace, needle)
}

// Find returns the outermost syntax tree node spanning the first occurrence
// of needle in the body of fn. A positive width restricts the span to the
// first width bytes of needle.
func (s *Source) Find(tb testing.TB, fn inspector.Cursor, needle string, width int) ast.Node {
	tb.Helper()

	if width <= 0 || width > len(needle) {
		width = len(needle)
	}

	pos := s.FindPos(tb, fn, needle)

	return s.NodeAt(tb, pos, pos+token.Pos(width))
}

// Node returns the outermost syntax tree node spanning exactly the n-th occurrence of needle.
func (s *Source) Node(tb testing.TB, needle string, n int) ast.Node {
	tb.Helper()

	pos := s.Pos(tb, needle, n)

	return s.NodeAt(tb, pos, pos+token.Pos(len(needle)))
}

// NodeAt returns the outermost syntax tree node spanning exactly [pos, end).
func (s *Source) NodeAt(tb testing.TB, pos, end token.Pos) ast.Node {
	tb.Helper()

	c, ok := s.Root.FindByPos(pos, end)
	if !ok {
		tb.Fatalf("No node at offset %d", s.Fset.File(pos).Offset(pos))
	}

	var found ast.Node

	for c := range c.Enclosing() {
		node := c.Node()
		if node.Pos() != pos || node.End() != end {
			break
		}

		found = node
	}

	if found == nil {
		tb.Fatalf("No node spans offset %d to %d", s.Fset.File(pos).Offset(pos), s.Fset.File(pos).Offset(end))
	}

	return found
}

// Expr is like [Source.Node] for expressions.
func (s *Source) Expr(tb testing.TB, needle string, n int) ast.Expr {
	tb.Helper()

	node := s.Node(tb, needle, n)

	expr, ok := node.(ast.Expr)
	if !ok {
		// ExprStmt and its expression share a span
		stmt, ok := node.(*ast.ExprStmt)
		if !ok {
			tb.Fatalf("%q is a %T, not an expression", needle, node)
		}

		expr = stmt.X
	}

	return expr
}
