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

// Package scope maps lexical scopes to syntax and resolves names at source positions.
package scope

import (
	"go/ast"
	"go/token"
	"go/types"
)

// Index maps scopes to the syntax tree nodes that introduce them.
type Index map[*types.Scope]ast.Node

// NewIndex creates an [Index] from the type checker's scope map.
func NewIndex(info *types.Info) Index {
	s := make(Index, len(info.Scopes))
	for node, scope := range info.Scopes {
		s[scope] = node
	}

	return s
}

// Innermost finds the innermost scope containing pos, with special handling
// for case and select clause expressions.
//
// An expression between "case" and ":" is evaluated before the clause body
// is entered, so it belongs to the enclosing scope.
func (s Index) Innermost(outer *types.Scope, pos token.Pos) *types.Scope {
	scope := outer.Innermost(pos)
	switch scope {
	case outer, nil:
		return scope
	}

	switch n := s[scope].(type) {
	case *ast.CaseClause:
		if pos < n.Colon {
			scope = scope.Parent()
		}

	case *ast.CommClause:
		if pos < n.Colon {
			scope = scope.Parent()
		}
	}

	return scope
}

// Resolve returns the object name denotes at pos, searching outward from the
// innermost scope below outer.
func (s Index) Resolve(outer *types.Scope, name string, pos token.Pos) types.Object {
	scope := s.Innermost(outer, pos)
	if scope == nil {
		scope = outer
	}

	_, obj := scope.LookupParent(name, pos)

	return obj
}
