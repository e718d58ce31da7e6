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

// Package safety decides whether an expression of a type-checked package can
// be moved or duplicated without changing the behavior of the program.
//
// Both verdicts are conservative: when the analysis cannot prove safety, it
// reports a conflict or a side effect.
package safety

import (
	"context"
	"go/ast"
	"go/token"
	"go/types"
	"log/slog"

	"golang.org/x/tools/go/ast/inspector"

	"fillmore-labs.com/extractguard/internal/callee"
	"fillmore-labs.com/extractguard/internal/conflict"
	"fillmore-labs.com/extractguard/internal/funcname"
	"fillmore-labs.com/extractguard/internal/sideeffect"
)

// DefaultDepth is the default number of callee levels analyzed.
const DefaultDepth = 1

// Analyzer answers extraction safety queries for one package.
// It is safe for concurrent use.
type Analyzer struct {
	info       *types.Info
	root       inspector.Cursor
	checker    conflict.Checker
	classifier sideeffect.Classifier
	logger     *slog.Logger
}

// New creates an [Analyzer] for the files of a package and their type information.
func New(files []*ast.File, info *types.Info, opts ...Option) *Analyzer {
	return newAnalyzer(inspector.New(files).Root(), files, info, makeOptions(opts))
}

// NewWithInspector is like [New], reusing an existing inspector of files.
func NewWithInspector(in *inspector.Inspector, files []*ast.File, info *types.Info, opts ...Option) *Analyzer {
	return newAnalyzer(in.Root(), files, info, makeOptions(opts))
}

func makeOptions(opts []Option) options {
	o := options{
		maxCalleeSize: callee.DefaultMaxSize,
		depth:         DefaultDepth,
		workers:       conflict.DefaultWorkers,
		impure:        funcname.DefaultImpure(),
	}
	Options(opts).apply(&o)

	return o
}

func newAnalyzer(root inspector.Cursor, files []*ast.File, info *types.Info, o options) *Analyzer {
	resolver := callee.Resolver{
		Finder:  callee.NewIndex(info, files, callee.Representative),
		MaxSize: o.maxCalleeSize,
		Logger:  o.logger,
	}

	return &Analyzer{
		info: info,
		root: root,
		checker: conflict.Checker{
			Info:     info,
			Resolver: resolver,
			Depth:    o.depth,
			Workers:  o.workers,
			Pure:     o.pureFunc,
			Logger:   o.logger,
		},
		classifier: sideeffect.Classifier{
			Info:     info,
			Resolver: resolver,
			Impure:   o.impure,
			Pure:     o.pure,
			Depth:    o.depth,
		},
		logger: o.logger,
	}
}

// HasConflict reports whether code executed between start and end may write
// a location read by sel, so that evaluating sel at start could produce a
// different value than evaluating it at ref.
//
// fn is the *[ast.FuncDecl] or *[ast.FuncLit] enclosing the range. The
// result is true when fn is not part of the analyzed files or ctx is canceled.
func (a *Analyzer) HasConflict(ctx context.Context, sel ast.Expr, start, end token.Pos, ref ast.Node, fn ast.Node) bool {
	c, ok := a.function(fn)
	if !ok {
		a.debug(ctx, "enclosing function not found", fn)

		return true
	}

	return a.checker.HasConflict(ctx, sel, start, end, ref, c)
}

// HasSideEffect reports whether evaluating node may have an effect beyond
// producing its value. fn is the function enclosing node, or nil.
func (a *Analyzer) HasSideEffect(ctx context.Context, node ast.Node, fn ast.Node) bool {
	return a.classifier.HasSideEffect(ctx, node, callee.Declared(a.info, fn))
}

func (a *Analyzer) function(fn ast.Node) (inspector.Cursor, bool) {
	switch fn.(type) {
	case *ast.FuncDecl, *ast.FuncLit:
		return a.root.FindNode(fn)

	default:
		return inspector.Cursor{}, false
	}
}

func (a *Analyzer) debug(ctx context.Context, msg string, fn ast.Node) {
	if a.logger == nil {
		return
	}

	a.logger.LogAttrs(ctx, slog.LevelDebug, msg, slog.String("func", funcLabel(fn)))
}

func funcLabel(n ast.Node) string {
	switch n := n.(type) {
	case nil:
		return "<nil>"

	case *ast.FuncDecl:
		return n.Name.Name

	default:
		return "func literal"
	}
}
