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

// Package conflict decides whether an expression can be evaluated at an earlier position.
package conflict

import (
	"context"
	"go/ast"
	"go/token"
	"go/types"
	"log/slog"
	"runtime/trace"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/tools/go/ast/inspector"

	"fillmore-labs.com/extractguard/internal/access"
	"fillmore-labs.com/extractguard/internal/callee"
	"fillmore-labs.com/extractguard/internal/path"
	"fillmore-labs.com/extractguard/internal/reachability"
)

// DefaultWorkers is the default number of concurrent path node checks.
const DefaultWorkers = 4

const pollInterval = time.Millisecond

// Checker searches for writes to the dependencies of an expression.
type Checker struct {
	Info     *types.Info
	Resolver callee.Resolver
	Depth    int // levels of callee bodies analyzed
	Workers  int // concurrent checks besides the caller, negative for no limit
	Pure     func(fun *types.Func) bool
	Logger   *slog.Logger
}

// HasConflict reports whether code executed between start and end may write
// a location sel reads. fn is the cursor of the function declaration or
// literal containing the range, ref the node sel is referenced from.
//
// A canceled context yields a conflict.
func (c Checker) HasConflict(ctx context.Context, sel ast.Expr, start, end token.Pos, ref ast.Node, fn inspector.Cursor) bool {
	if start == end {
		return false
	}

	defer trace.StartRegion(ctx, "HasConflict").End()

	collector := access.Collector{
		Info:     c.Info,
		Resolver: c.Resolver,
		Current:  callee.Declared(c.Info, fn.Node()),
		Pure:     c.Pure,
		Aliases:  access.AliasesOf(c.Info, outermost(fn).Node()),
	}

	deps := collector.Reads(ctx, sel, c.Depth)

	reach := reachability.ForFunc(ctx, c.Info, fn.Node())
	nodes := path.Build(fn, start, end, ref, reach)

	conflict := c.search(ctx, nodes, func(ctx context.Context, n ast.Node) bool {
		return access.Conflict(collector.Writes(ctx, n, c.Depth), deps)
	})

	if c.Logger != nil {
		c.Logger.LogAttrs(ctx, slog.LevelDebug, "conflict check",
			slog.String("selection", types.ExprString(sel)),
			slog.Int("dependencies", deps.Refs.Len()),
			slog.Int("aliases", len(collector.Aliases)),
			slog.Int("nodes", len(nodes)),
			slog.Bool("conflict", conflict))
	}

	return conflict
}

// outermost returns the outermost function declaration or literal enclosing fn.
// Its literals may write the locals fn captures.
func outermost(fn inspector.Cursor) inspector.Cursor {
	outer := fn
	for c := range fn.Enclosing((*ast.FuncDecl)(nil), (*ast.FuncLit)(nil)) {
		outer = c
	}

	return outer
}

// search runs check on all nodes and reports whether any returned true.
//
// Checks run on at most Workers goroutines; when all are busy, the caller
// runs the check itself. The first conflict abandons the remaining checks.
func (c Checker) search(ctx context.Context, nodes path.List, check func(context.Context, ast.Node) bool) bool {
	if len(nodes) == 0 {
		return false
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		g       errgroup.Group
		found   atomic.Bool
		pending atomic.Int64
	)

	g.SetLimit(c.Workers)

	run := func(n ast.Node) {
		if found.Load() || ctx.Err() != nil {
			return
		}

		if check(ctx, n) {
			found.Store(true)
			cancel()
		}
	}

	for _, n := range nodes {
		if found.Load() || ctx.Err() != nil {
			break
		}

		pending.Add(1)

		if !g.TryGo(func() error {
			defer pending.Add(-1)
			run(n)

			return nil
		}) {
			pending.Add(-1)
			run(n)
		}
	}

	for pending.Load() > 0 && !found.Load() && ctx.Err() == nil {
		time.Sleep(pollInterval)
	}

	return found.Load() || ctx.Err() != nil
}
