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

// Package path computes the syntax tree nodes executed between two source positions.
package path

import (
	"go/ast"
	"go/token"

	"golang.org/x/tools/go/ast/edge"
	"golang.org/x/tools/go/ast/inspector"

	"fillmore-labs.com/extractguard/internal/astutil"
)

// Reacher answers control-flow reachability queries between source positions.
type Reacher interface {
	// Reachable reports whether to can be executed after from. ok is false when
	// a position is not covered.
	Reachable(from, to token.Pos) (reachable, ok bool)
}

// List is a list of syntax tree nodes in source order.
type List []ast.Node

// Build returns the nodes of the function fn executed between start and end.
//
// When the range lies in a loop, end is extended to the end of the loop. An
// arm of an if statement whose sibling arm contains ref only contributes the
// statements that can still reach ref, as determined by reach.
func Build(fn inspector.Cursor, start, end token.Pos, ref ast.Node, reach Reacher) List {
	body, ok := bodyOf(fn)
	if !ok {
		return nil
	}

	b := builder{
		start: start,
		end:   ExtendLoops(body, start, end),
		ref:   ref,
		reach: reach,
		seen:  make(map[astutil.Span]struct{}),
	}

	body.Inspect(nil, b.visit)

	return b.list
}

func bodyOf(fn inspector.Cursor) (inspector.Cursor, bool) {
	switch n := fn.Node().(type) {
	case *ast.FuncDecl:
		if n.Body != nil {
			return fn.ChildAt(edge.FuncDecl_Body, -1), true
		}

	case *ast.FuncLit:
		return fn.ChildAt(edge.FuncLit_Body, -1), true
	}

	return inspector.Cursor{}, false
}

// ExtendLoops returns end, moved to the end of every loop in body whose
// block overlaps [start, end). Loops outside the function literal
// enclosing a position are not considered.
func ExtendLoops(body inspector.Cursor, start, end token.Pos) token.Pos {
	extended := end

	for _, pos := range [...]token.Pos{start, end} {
		leaf, ok := body.FindByPos(pos, pos)
		if !ok {
			continue
		}

	enclosing:
		for c := range leaf.Enclosing() {
			var block *ast.BlockStmt

			switch n := c.Node().(type) {
			case *ast.ForStmt:
				block = n.Body

			case *ast.RangeStmt:
				block = n.Body

			case *ast.FuncLit, *ast.FuncDecl:
				break enclosing

			default:
				continue
			}

			if span := astutil.SpanOf(block); span.Overlaps(start, end) || span.Contains(start) {
				extended = max(extended, c.Node().End())
			}
		}
	}

	return extended
}

type state uint8

const (
	beforeRange state = iota
	inRange
	afterRange
)

type builder struct {
	start, end token.Pos
	ref        ast.Node
	reach      Reacher

	state state
	seen  map[astutil.Span]struct{}
	list  List
}

func (b *builder) visit(c inspector.Cursor) bool {
	if b.state == afterRange {
		return false
	}

	n := c.Node()
	span := astutil.SpanOf(n)

	switch {
	case span.End <= b.start:
		return false

	case span.Pos > b.end:
		b.state = afterRange

		return false

	case !span.Within(b.start, b.end):
		return true // straddles a boundary, look at the parts
	}

	b.state = inRange

	if atomic(n) {
		return false
	}

	if b.exclusiveArm(c) {
		b.armPath(n)

		return false
	}

	b.add(n)

	return false
}

// exclusiveArm reports whether c is an arm of an if statement and ref is in the other arm.
func (b *builder) exclusiveArm(c inspector.Cursor) bool {
	if b.ref == nil {
		return false
	}

	kind, _ := c.ParentEdge()

	var other ast.Node

	switch kind {
	case edge.IfStmt_Body:
		other = c.Parent().Node().(*ast.IfStmt).Else

	case edge.IfStmt_Else:
		other = c.Parent().Node().(*ast.IfStmt).Body

	default:
		return false
	}

	return other != nil && astutil.SpanOf(other).Contains(b.ref.Pos())
}

// armPath adds the statements of an arm that can reach ref through a loop.
func (b *builder) armPath(arm ast.Node) {
	var list []ast.Stmt

	switch arm := arm.(type) {
	case *ast.BlockStmt:
		list = arm.List

	case *ast.IfStmt: // else if
		list = []ast.Stmt{arm}
	}

	for _, stmt := range list {
		if atomic(stmt) || !b.reaches(stmt) {
			continue
		}

		b.add(stmt)
	}
}

func (b *builder) reaches(stmt ast.Stmt) bool {
	if b.reach == nil {
		return true
	}

	reachable, ok := b.reach.Reachable(anchor(stmt), b.ref.Pos())

	return reachable || !ok
}

func (b *builder) add(n ast.Node) {
	span := astutil.SpanOf(n)
	if _, ok := b.seen[span]; ok {
		return
	}

	b.seen[span] = struct{}{}
	b.list = append(b.list, n)
}

// atomic reports whether n can't have an effect.
func atomic(n ast.Node) bool {
	switch n.(type) {
	case *ast.BasicLit, *ast.EmptyStmt,
		*ast.ArrayType, *ast.ChanType, *ast.FuncType, *ast.InterfaceType, *ast.MapType, *ast.StructType,
		*ast.Ellipsis, *ast.BadExpr, *ast.BadStmt:
		return true

	default:
		return false
	}
}

// anchor returns a position of stmt that lies in a basic block of the control-flow graph.
func anchor(stmt ast.Stmt) token.Pos {
	switch s := stmt.(type) {
	case *ast.IfStmt:
		if s.Init != nil {
			return s.Init.Pos()
		}

		return s.Cond.Pos()

	case *ast.ForStmt:
		switch {
		case s.Init != nil:
			return s.Init.Pos()

		case s.Cond != nil:
			return s.Cond.Pos()

		default:
			return s.Body.Lbrace + 1
		}

	case *ast.RangeStmt:
		return s.X.Pos()

	case *ast.SwitchStmt:
		switch {
		case s.Init != nil:
			return s.Init.Pos()

		case s.Tag != nil:
			return s.Tag.Pos()
		}

	case *ast.TypeSwitchStmt:
		if s.Init != nil {
			return s.Init.Pos()
		}

		return s.Assign.Pos()

	case *ast.LabeledStmt:
		return anchor(s.Stmt)

	case *ast.BlockStmt:
		if len(s.List) > 0 {
			return anchor(s.List[0])
		}
	}

	return stmt.Pos()
}
