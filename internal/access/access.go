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

// Package access computes the sets of storage locations read or written by a syntax tree.
package access

import (
	"context"
	"go/ast"
	"go/token"
	"go/types"

	"fillmore-labs.com/extractguard/internal/callee"
	"fillmore-labs.com/extractguard/internal/symref"
)

// Result is the outcome of a read or write set query.
type Result struct {
	// Refs are the named locations.
	Refs symref.Set

	// Escapes is set when memory outside the function's own variables is accessed.
	Escapes bool

	// Unknown is set when memory is accessed that Refs can't name,
	// through pointers, slices or maps or by calls that could not be analyzed.
	Unknown bool
}

// Conflict reports whether writes may change a location observed by reads.
func Conflict(writes, reads Result) bool {
	if writes.Refs.Intersects(reads.Refs) {
		return true
	}

	return writes.Unknown && reads.Escapes || reads.Unknown && writes.Escapes
}

// Collector computes read and write sets of syntax trees from one package.
type Collector struct {
	Info     *types.Info
	Resolver callee.Resolver
	Current  *types.Func // function containing the analyzed nodes, never expanded
	Mode     symref.Mode

	// Pure reports functions known to write nothing, optional.
	Pure func(fun *types.Func) bool

	// Aliases are locals of Current reachable through references, see [AliasesOf].
	// Reading them counts as escaping.
	Aliases Aliases
}

// Reads returns the locations node reads.
//
// Calls are expanded into their callee bodies up to depth levels, where only
// locations visible to the caller are kept. While expanding, fields of call
// results are named by the call.
func (c Collector) Reads(ctx context.Context, node ast.Node, depth int) Result {
	w := c.walker(ctx, depth)
	w.reads(node)

	return w.result
}

// Writes returns the locations node writes.
//
// Calls are expanded as in [Collector.Reads].
func (c Collector) Writes(ctx context.Context, node ast.Node, depth int) Result {
	w := c.walker(ctx, depth)
	w.writes(node)

	return w.result
}

// DirectWrites returns the locations written by the statements of node, ignoring calls.
func (c Collector) DirectWrites(ctx context.Context, node ast.Node) Result {
	w := c.walker(ctx, 0)
	w.shallow = true
	w.writes(node)

	return w.result
}

type walker struct {
	Collector
	ctx     context.Context
	depth   int
	shallow bool // ignore calls
	result  Result
}

func (c Collector) walker(ctx context.Context, depth int) *walker {
	c.Mode &^= symref.Calls
	if depth > 0 {
		c.Mode |= symref.Calls
	}

	return &walker{
		Collector: c,
		ctx:       ctx,
		depth:     depth,
		result:    Result{Refs: make(symref.Set)},
	}
}

func (w *walker) reads(node ast.Node) {
	if node == nil {
		return
	}

	ast.Inspect(node, w.visitRead)
}

func (w *walker) writes(node ast.Node) {
	if node == nil {
		return
	}

	ast.Inspect(node, w.visitWrite)
}

func (w *walker) visitRead(n ast.Node) bool {
	switch n := n.(type) {
	case *ast.Ident:
		w.readIdent(n)

	case *ast.SelectorExpr:
		w.readSelector(n)

		return false

	case *ast.IndexExpr:
		if indirect(w.Info.TypeOf(n.X)) {
			w.result.Escapes, w.result.Unknown = true, true
		}

	case *ast.StarExpr:
		if tv, ok := w.Info.Types[n]; ok && tv.IsValue() {
			w.result.Escapes, w.result.Unknown = true, true
		}

	case *ast.CallExpr:
		w.readCall(n)
	}

	return true
}

func (w *walker) readIdent(id *ast.Ident) {
	v, ok := w.Info.Uses[id].(*types.Var)
	if !ok || v.IsField() { // composite literal keys
		return
	}

	w.result.Refs.Add(symref.Of(w.Info, id, w.Mode))

	if symref.IsGlobal(v) || w.Aliases.Has(v) {
		w.result.Escapes = true
	}
}

func (w *walker) readSelector(sel *ast.SelectorExpr) {
	selection, ok := w.Info.Selections[sel]
	if !ok { // qualified identifier
		w.readIdent(sel.Sel)

		return
	}

	if selection.Kind() == types.FieldVal {
		w.result.Refs.Add(symref.Of(w.Info, sel, w.Mode))
		w.result.Escapes = true

		if selection.Indirect() {
			w.result.Unknown = true
		}
	}

	ast.Inspect(sel.X, w.visitRead)
}

func (w *walker) readCall(call *ast.CallExpr) {
	if w.shallow {
		return
	}

	switch callee.KindOf(w.Info, call) {
	case callee.Static:
		w.expand(call, callee.Func(w.Info, call), (*walker).reads)

	case callee.Dynamic:
		w.opaque()

	default: // arguments and literal bodies are visited in place
	}
}

func (w *walker) visitWrite(n ast.Node) bool {
	switch n := n.(type) {
	case *ast.AssignStmt:
		for _, lhs := range n.Lhs {
			if id, ok := lhs.(*ast.Ident); ok && n.Tok == token.DEFINE {
				if _, defined := w.Info.Defs[id]; defined {
					continue
				}
			}

			w.target(lhs)
		}

	case *ast.IncDecStmt:
		w.target(n.X)

	case *ast.RangeStmt:
		if n.Tok == token.ASSIGN {
			w.target(n.Key)
			w.target(n.Value)
		}

	case *ast.UnaryExpr:
		if n.Op == token.AND {
			w.target(n.X)
		}

	case *ast.CallExpr:
		w.writeCall(n)
	}

	return true
}

func (w *walker) writeCall(call *ast.CallExpr) {
	if w.shallow {
		return
	}

	switch callee.KindOf(w.Info, call) {
	case callee.Static:
		fun := callee.Func(w.Info, call)
		w.receiver(call, fun)
		w.expand(call, fun, (*walker).writes)

	case callee.Builtin:
		switch callee.BuiltinName(w.Info, call) {
		case "append", "clear", "copy", "delete":
			if len(call.Args) == 0 {
				break
			}

			dst := call.Args[0]
			w.target(dst)

			if indirect(w.Info.TypeOf(dst)) {
				w.result.Escapes, w.result.Unknown = true, true
			}
		}

	case callee.Dynamic:
		w.opaque()

	default:
	}
}

// receiver records the implicit address operation of a pointer method called on a value.
func (w *walker) receiver(call *ast.CallExpr, fun *types.Func) {
	sel, ok := ast.Unparen(call.Fun).(*ast.SelectorExpr)
	if !ok {
		return
	}

	if selection, ok := w.Info.Selections[sel]; !ok || selection.Kind() != types.MethodVal {
		return
	}

	sig, ok := fun.Type().(*types.Signature)
	if !ok || sig.Recv() == nil {
		return
	}

	if _, ptrRecv := sig.Recv().Type().(*types.Pointer); !ptrRecv {
		return
	}

	t := w.Info.TypeOf(sel.X)
	if t == nil {
		return
	}

	if _, ptrOperand := t.Underlying().(*types.Pointer); ptrOperand {
		return
	}

	w.target(sel.X)
}

// target records the write of expr.
func (w *walker) target(expr ast.Expr) {
	if expr == nil {
		return
	}

	if id, ok := ast.Unparen(expr).(*ast.Ident); ok && id.Name == "_" {
		return
	}

	named := &walker{
		Collector: w.Collector,
		ctx:       w.ctx,
		shallow:   true,
		result:    Result{Refs: w.result.Refs},
	}
	named.reads(expr)

	switch StorageOf(w.Info, expr) {
	case Local:
		return

	case Shared:
		w.result.Escapes = true

	case Unnamed:
		w.result.Escapes, w.result.Unknown = true, true
	}
}

// Storage classifies the memory an assignable expression denotes.
type Storage uint8

const (
	// Local is a variable of the current function or an array element or field of one.
	Local Storage = iota

	// Shared is a package variable or a struct field.
	Shared

	// Unnamed is memory reached through a pointer, slice or map.
	Unnamed
)

// StorageOf classifies the memory expr denotes.
func StorageOf(info *types.Info, expr ast.Expr) Storage {
	switch e := ast.Unparen(expr).(type) {
	case *ast.Ident:
		if v, ok := info.ObjectOf(e).(*types.Var); ok && symref.IsLocal(v) {
			return Local
		}

		return Shared

	case *ast.SelectorExpr:
		selection, ok := info.Selections[e]
		if !ok {
			return Shared
		}

		if selection.Indirect() {
			return Unnamed
		}

		return max(StorageOf(info, e.X), Shared)

	case *ast.IndexExpr:
		if indirect(info.TypeOf(e.X)) {
			return Unnamed
		}

		return StorageOf(info, e.X)

	default:
		return Unnamed
	}
}

// expand merges the sets of the callee body into the result.
func (w *walker) expand(call *ast.CallExpr, fun *types.Func, collect func(*walker, ast.Node)) {
	if fun == nil || same(fun, w.Current) {
		return
	}

	if w.Pure != nil && w.Pure(fun) {
		return
	}

	if w.depth <= 0 || w.ctx.Err() != nil {
		w.opaque()

		return
	}

	decl, outcome := w.Resolver.Body(w.ctx, fun)
	if outcome != callee.Found {
		w.opaque()

		return
	}

	if impl, ok := w.Info.Defs[decl.Name].(*types.Func); ok {
		fun = impl
	}

	c := w.Collector
	c.Current = fun
	c.Mode |= symref.ExcludeLocals
	c.Aliases = nil

	nested := c.walker(w.ctx, w.depth-1)
	collect(nested, decl.Body)

	w.fold(types.ExprString(call.Fun), nested.result)
}

// fold adds the callee result, each reference both plain and qualified by the call site.
func (w *walker) fold(site string, r Result) {
	for ref := range r.Refs {
		w.result.Refs.Add(ref)
		w.result.Refs.Add(ref.ThroughCall(site))
	}

	w.result.Escapes = w.result.Escapes || r.Escapes
	w.result.Unknown = w.result.Unknown || r.Unknown
}

func (w *walker) opaque() {
	w.result.Escapes, w.result.Unknown = true, true
}

func same(a, b *types.Func) bool {
	return a != nil && b != nil && a.Origin() == b.Origin()
}

// indirect reports whether elements of t are reached through a reference.
func indirect(t types.Type) bool {
	if t == nil {
		return true
	}

	switch t.Underlying().(type) {
	case *types.Slice, *types.Map, *types.Pointer, *types.Interface:
		return true

	default:
		return false
	}
}
