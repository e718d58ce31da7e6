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

package symref_test

import (
	"go/ast"
	"go/token"
	"go/types"
	"testing"

	. "fillmore-labs.com/extractguard/internal/symref"
	"fillmore-labs.com/extractguard/internal/testsource"
)

const src = `package test

var g int

type pt struct{ x, y int }

func mk() pt { return pt{} }

func f(p pt, q *pt) {
	a := p.x
	b := q.x
	c := mk().x
	d := (*q).x
	_, _, _, _ = a, b, c, d
	_ = g
}
`

func TestOf(t *testing.T) {
	t.Parallel()

	s := testsource.Load(t, src)

	px := Of(s.Info, s.Expr(t, "p.x", 1), 0)
	qx := Of(s.Info, s.Expr(t, "q.x", 1), 0)
	starQX := Of(s.Info, s.Expr(t, "(*q).x", 1), 0)
	global := Of(s.Info, globalIdent(t, s), 0)

	if !px.Qualified() || !qx.Qualified() {
		t.Errorf("Expected qualified field references, got %q and %q", px, qx)
	}

	if px == qx {
		t.Errorf("Expected p.x and q.x to differ, both are %q", px)
	}

	if px.Member() != qx.Member() {
		t.Errorf("Expected p.x and q.x to share the member, got %q and %q", px.Member(), qx.Member())
	}

	if starQX != qx {
		t.Errorf("Expected (*q).x to equal q.x, got %q and %q", starQX, qx)
	}

	if global != "test.g" {
		t.Errorf("Got global reference %q, want %q", global, "test.g")
	}

	call := s.Expr(t, "mk().x", 1)
	if got := Of(s.Info, call, 0); got != None {
		t.Errorf("Got %q for a call qualified field without Calls, want none", got)
	}

	if got := Of(s.Info, call, Calls); !got.Qualified() {
		t.Errorf("Got %q for a call qualified field, want a qualified reference", got)
	}

	if got := Of(s.Info, s.Expr(t, "mk()", 2), 0); !got.Call() {
		t.Errorf("Got %q for a call, want a call reference", got)
	}
}

func globalIdent(t *testing.T, s *testsource.Source) ast.Expr {
	t.Helper()

	pos := s.Pos(t, "_ = g", 1) + token.Pos(len("_ = "))

	return s.NodeAt(t, pos, pos+1).(*ast.Ident)
}

func TestOfExcludeLocals(t *testing.T) {
	t.Parallel()

	s := testsource.Load(t, src)

	if got := Of(s.Info, s.Expr(t, "p.x", 1).(*ast.SelectorExpr).X, ExcludeLocals); got != None {
		t.Errorf("Got %q for a parameter, want none", got)
	}

	if got := Of(s.Info, s.Expr(t, "p.x", 1), ExcludeLocals); got.Qualified() {
		t.Errorf("Got %q, want the field without a local qualifier", got)
	}

	if got := Of(s.Info, globalIdent(t, s), ExcludeLocals); got == None {
		t.Error("Expected a reference to a package variable")
	}
}

func TestLocality(t *testing.T) {
	t.Parallel()

	s := testsource.Load(t, src)

	tests := [...]struct {
		name          string
		local, global bool
	}{
		{"g", false, true},
		{"p", true, false},
		{"a", true, false},
		{"x", false, false},
	}

	for _, tt := range tests {
		v, ok := s.Object(t, tt.name).(*types.Var)
		if !ok {
			t.Fatalf("%s is not a variable", tt.name)
		}

		if got := IsLocal(v); got != tt.local {
			t.Errorf("IsLocal(%s) = %t, want %t", tt.name, got, tt.local)
		}

		if got := IsGlobal(v); got != tt.global {
			t.Errorf("IsGlobal(%s) = %t, want %t", tt.name, got, tt.global)
		}
	}
}

func TestThroughCall(t *testing.T) {
	t.Parallel()

	r := Ref("test.g").ThroughCall("bump")

	if r != "call:bump/test.g" || !r.Call() {
		t.Errorf("Got %q, want call reference %q", r, "call:bump/test.g")
	}
}

func TestSetIntersects(t *testing.T) {
	t.Parallel()

	s := testsource.Load(t, src)

	px := Of(s.Info, s.Expr(t, "p.x", 1), 0)
	qx := Of(s.Info, s.Expr(t, "q.x", 1), 0)

	tests := [...]struct {
		name string
		a, b []Ref
		want bool
	}{
		{"equal", []Ref{"test.g"}, []Ref{"test.g"}, true},
		{"disjoint", []Ref{"test.g"}, []Ref{px}, false},
		{"distinct qualifiers", []Ref{px}, []Ref{qx}, false},
		{"unqualified member", []Ref{px.Member()}, []Ref{qx}, true},
		{"unqualified member reversed", []Ref{qx}, []Ref{"test.g", px.Member()}, true},
		{"empty", nil, []Ref{px}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			a, b := make(Set), make(Set)
			for _, r := range tt.a {
				a.Add(r)
			}

			for _, r := range tt.b {
				b.Add(r)
			}

			if got := a.Intersects(b); got != tt.want {
				t.Errorf("Intersects(%q, %q) = %t, want %t", a.Sorted(), b.Sorted(), got, tt.want)
			}
		})
	}
}

func TestSetAddNone(t *testing.T) {
	t.Parallel()

	s := make(Set)
	s.Add(None)
	s.AddAll(Set{"a": {}, "b": {}})

	if s.Len() != 2 || s.Has(None) {
		t.Errorf("Got %q, want [a b]", s.Sorted())
	}
}
