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

// Package reachability answers control-flow reachability queries between source positions of a function.
package reachability

import (
	"context"
	"go/ast"
	"go/token"
	"go/types"
	"runtime/trace"
	"slices"

	"golang.org/x/tools/go/cfg"

	"fillmore-labs.com/extractguard/internal/callee"
	"fillmore-labs.com/extractguard/internal/funcname"
)

// Graph determines reachability in a control-flow graph.
type Graph struct {
	// build constructs the control-flow graph on the first query
	build func() *cfg.CFG

	blocks []*cfg.Block

	// spans of the block nodes, sorted by start position
	spans []span

	// reusable BFS state
	seen  []bool
	queue []int32
}

type span struct {
	pos, end token.Pos
	block    int32
}

// NewGraph analyzes the control flow of a function body.
// Calls that can't return end their block.
func NewGraph(ctx context.Context, info *types.Info, body *ast.BlockStmt) *Graph {
	if body == nil {
		return nil
	}

	build := func() *cfg.CFG {
		defer trace.StartRegion(ctx, "ControlFlow").End()

		return cfg.New(body, func(call *ast.CallExpr) bool { return mayReturn(info, call) })
	}

	return &Graph{build: build}
}

// ForFunc analyzes the control flow of a function declaration or literal.
// It returns nil for other nodes.
func ForFunc(ctx context.Context, info *types.Info, fn ast.Node) *Graph {
	switch fn := fn.(type) {
	case *ast.FuncDecl:
		return NewGraph(ctx, info, fn.Body)

	case *ast.FuncLit:
		return NewGraph(ctx, info, fn.Body)

	default:
		return nil
	}
}

// mayReturn reports whether call can return to its caller.
func mayReturn(info *types.Info, call *ast.CallExpr) bool {
	switch callee.KindOf(info, call) {
	case callee.Builtin:
		return callee.BuiltinName(info, call) != "panic"

	case callee.Static:
		return !funcname.NoReturn(callee.Func(info, call))

	default:
		return true
	}
}

// Reachable determines whether the position to can be executed after the position from.
// ok is false when one of the positions lies outside the nodes of the graph.
func (g *Graph) Reachable(from, to token.Pos) (reachable, ok bool) {
	if g == nil {
		return true, false
	}

	if g.blocks == nil {
		g.init()
	}

	source, ok := g.blockOf(from)
	if !ok {
		return true, false
	}

	target, ok := g.blockOf(to)
	if !ok {
		return true, false
	}

	// Are we at a later position in the same block?
	if source == target && to >= from {
		return true, true
	}

	return g.search(source, target), true
}

func (g *Graph) init() {
	g.blocks = g.build().Blocks

	for _, b := range g.blocks {
		for _, n := range b.Nodes {
			g.spans = append(g.spans, span{pos: n.Pos(), end: n.End(), block: b.Index})
		}
	}

	slices.SortFunc(g.spans, func(a, b span) int {
		if a.pos != b.pos {
			return int(a.pos - b.pos)
		}

		return int(b.end - a.end) // enclosing first
	})

	g.seen = make([]bool, len(g.blocks))
	g.queue = make([]int32, len(g.blocks))
}

// blockOf returns the block of the innermost node containing pos.
func (g *Graph) blockOf(pos token.Pos) (int32, bool) {
	i, _ := slices.BinarySearchFunc(g.spans, pos, func(s span, p token.Pos) int {
		if s.pos <= p {
			return -1
		}

		return 1
	})

	// the closest start before pos that contains it is the innermost node
	for i--; i >= 0; i-- {
		if s := g.spans[i]; pos < s.end {
			return s.block, true
		}
	}

	return 0, false
}

// search performs a breadth-first search from the successors of source.
func (g *Graph) search(source, target int32) bool {
	clear(g.seen)

	tail := g.enqueueSuccessors(source, 0)

	for head := 0; head < tail; head++ {
		curr := g.queue[head]

		if curr == target {
			return true
		}

		tail = g.enqueueSuccessors(curr, tail)
	}

	return false
}

// enqueueSuccessors adds unseen successors of block b to the queue.
func (g *Graph) enqueueSuccessors(b int32, tail int) int {
	for _, succ := range g.blocks[b].Succs {
		if g.seen[succ.Index] {
			continue
		}
		g.seen[succ.Index] = true

		g.queue[tail] = succ.Index
		tail++
	}

	return tail
}
