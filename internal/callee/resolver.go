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
	"context"
	"go/ast"
	"go/types"
	"log/slog"
)

// DefaultMaxSize is the default maximum size of an analyzed callee body, in bytes.
const DefaultMaxSize = 4096

// Outcome describes the result of a callee body lookup.
type Outcome uint8

//go:generate go tool stringer -type Outcome -linecomment
const (
	// Found indicates the body is available for analysis.
	Found Outcome = iota // found

	// NoCallee indicates the call has no static callee (function value, closure variable).
	NoCallee // dynamic

	// Unavailable indicates the declaration is outside the analyzed source.
	Unavailable // unavailable

	// Oversized indicates the body exceeds the size threshold.
	Oversized // oversized
)

// Resolver finds analyzable callee bodies.
type Resolver struct {
	Finder  Finder
	MaxSize int
	Logger  *slog.Logger
}

// Func returns the function called by call, or nil for dynamic calls, builtins and conversions.
func Func(info *types.Info, call *ast.CallExpr) *types.Func {
	fun, _ := calleeOf(info, call).(*types.Func)

	return fun
}

// Body returns the declaration of fun when it can be analyzed.
func (r Resolver) Body(ctx context.Context, fun *types.Func) (*ast.FuncDecl, Outcome) {
	if fun == nil {
		return nil, NoCallee
	}

	if r.Finder == nil {
		return nil, Unavailable
	}

	decl, err := r.Finder.Find(fun)
	if err != nil {
		if r.Logger != nil {
			r.Logger.LogAttrs(ctx, slog.LevelDebug, "callee lookup failed",
				slog.String("func", fun.FullName()), slog.Any("error", err))
		}

		return nil, Unavailable
	}

	if !Fits(decl, r.MaxSize) {
		return nil, Oversized
	}

	return decl, Found
}

// Fits reports whether the body of decl is smaller than maxSize bytes.
// A negative maxSize disables the check.
func Fits(decl *ast.FuncDecl, maxSize int) bool {
	if decl.Body == nil {
		return false
	}

	if maxSize < 0 {
		return true
	}

	return int(decl.Body.End()-decl.Body.Pos()) < maxSize
}
