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

package access_test

import (
	"go/ast"
	"go/types"
	"strings"
	"testing"

	. "fillmore-labs.com/extractguard/internal/access"
	"fillmore-labs.com/extractguard/internal/callee"
	"fillmore-labs.com/extractguard/internal/symref"
	"fillmore-labs.com/extractguard/internal/testsource"
)

const src = `package test

var g int

var hook func()

type box struct{ n int }

func (b *box) inc() { b.n++ }

func bump() { g++ }

func read() int { return g }

func mk() box { return box{} }

func f(b box, p *box, s []int, m map[int]int) {
	x := 1
	x = g
	b.inc()
	bump()
	hook()
	s[0] = x
	p.n = 3
	_ = read()
	clear(m)
	_ = mk().n
}
`

type fixture struct {
	s         *testsource.Source
	collector Collector
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	s := testsource.Load(t, src)
	fn := s.Func(t, "f")

	return fixture{
		s: s,
		collector: Collector{
			Info: s.Info,
			Resolver: callee.Resolver{
				Finder:  callee.NewIndex(s.Info, []*ast.File{s.File}, callee.Representative),
				MaxSize: callee.DefaultMaxSize,
			},
			Current: callee.Declared(s.Info, fn.Node()),
		},
	}
}

func (f fixture) stmt(t *testing.T, needle string) ast.Node {
	t.Helper()

	return f.s.Find(t, f.s.Func(t, "f"), needle, 0)
}

func TestWrites(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	tests := [...]struct {
		name             string
		stmt             string
		depth            int
		escapes, unknown bool
	}{
		{"local", "x = g", 1, false, false},
		{"pointer method", "b.inc()", 1, true, true},
		{"callee writes global", "bump()", 1, true, false},
		{"callee too deep", "bump()", 0, true, true},
		{"dynamic call", "hook()", 1, true, true},
		{"slice element", "s[0] = x", 1, true, true},
		{"pointer field", "p.n = 3", 1, true, true},
		{"reading callee", "_ = read()", 1, false, false},
		{"clear map", "clear(m)", 1, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := f.collector.Writes(t.Context(), f.stmt(t, tt.stmt), tt.depth)

			if got.Escapes != tt.escapes || got.Unknown != tt.unknown {
				t.Errorf("Got escapes=%t unknown=%t, want %t, %t (refs %q)",
					got.Escapes, got.Unknown, tt.escapes, tt.unknown, got.Refs.Sorted())
			}
		})
	}
}

func TestWritesRefs(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := t.Context()

	x := symref.Of(f.s.Info, f.s.Find(t, f.s.Func(t, "f"), "x = g", 1).(ast.Expr), 0)

	if got := f.collector.Writes(ctx, f.stmt(t, "x = g"), 1); !got.Refs.Has(x) || got.Refs.Len() != 1 {
		t.Errorf("Got writes %q, want only %q", got.Refs.Sorted(), x)
	}

	got := f.collector.Writes(ctx, f.stmt(t, "bump()"), 1)
	if !got.Refs.Has("test.g") || !got.Refs.Has(symref.Ref("test.g").ThroughCall("bump")) {
		t.Errorf("Got writes %q, want test.g plain and through the call", got.Refs.Sorted())
	}

	if got := f.collector.Writes(ctx, f.stmt(t, "clear(m)"), 1); got.Refs.Len() != 1 {
		t.Errorf("Got writes %q, want the cleared map", got.Refs.Sorted())
	}
}

func TestReads(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := t.Context()

	reads := f.collector.Reads(ctx, f.stmt(t, "x = g"), 1)
	if !reads.Refs.Has("test.g") || !reads.Escapes || reads.Unknown {
		t.Errorf("Got reads %q escapes=%t unknown=%t, want test.g escaping", reads.Refs.Sorted(), reads.Escapes, reads.Unknown)
	}

	if got := f.collector.Reads(ctx, f.stmt(t, "_ = read()"), 1); !got.Refs.Has("test.g") {
		t.Errorf("Got reads %q, want test.g from the callee", got.Refs.Sorted())
	}

	if got := f.collector.Reads(ctx, f.stmt(t, "hook()"), 1); !got.Unknown {
		t.Error("Expected a dynamic call to read unknown memory")
	}
}

func TestConflict(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := t.Context()

	global := f.collector.Reads(ctx, f.s.Find(t, f.s.Func(t, "f"), "g\n", 1), 1)
	local := f.collector.Reads(ctx, f.s.Find(t, f.s.Func(t, "f"), "x\n", 1), 1)

	tests := [...]struct {
		name   string
		writes string
		reads  Result
		want   bool
	}{
		{"callee writes read global", "bump()", global, true},
		{"callee leaves local", "bump()", local, false},
		{"opaque call and global", "hook()", global, true},
		{"opaque call and local", "hook()", local, false},
		{"local write of local", "x = g", local, true},
		{"local write of global", "x = g", global, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			writes := f.collector.Writes(ctx, f.stmt(t, tt.writes), 1)
			if got := Conflict(writes, tt.reads); got != tt.want {
				t.Errorf("Conflict(%q, %q) = %t, want %t", writes.Refs.Sorted(), tt.reads.Refs.Sorted(), got, tt.want)
			}
		})
	}
}

func TestPure(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.collector.Pure = func(fun *types.Func) bool { return fun.Name() == "bump" }

	if got := f.collector.Writes(t.Context(), f.stmt(t, "bump()"), 0); got.Escapes || got.Unknown || got.Refs.Len() > 0 {
		t.Errorf("Got writes %q escapes=%t unknown=%t for a pure callee", got.Refs.Sorted(), got.Escapes, got.Unknown)
	}
}

func TestDirectWrites(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	if got := f.collector.DirectWrites(t.Context(), f.stmt(t, "bump()")); got.Escapes || got.Refs.Len() > 0 {
		t.Errorf("Got direct writes %q of a call", got.Refs.Sorted())
	}

	if got := f.collector.DirectWrites(t.Context(), f.stmt(t, "p.n = 3")); !got.Unknown {
		t.Error("Expected a write through a pointer")
	}
}

func TestStorageOf(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	fn := f.s.Func(t, "f")

	tests := [...]struct {
		needle string
		width  int
		want   Storage
	}{
		{"x = g", 1, Local},
		{"g\n", 1, Shared},
		{"s[0]", 0, Unnamed},
		{"p.n", 0, Unnamed},
		{"b.inc", 1, Local},
	}

	for _, tt := range tests {
		expr, ok := f.s.Find(t, fn, tt.needle, tt.width).(ast.Expr)
		if !ok {
			t.Fatalf("%q is not an expression", tt.needle)
		}

		if got := StorageOf(f.s.Info, expr); got != tt.want {
			t.Errorf("StorageOf(%s) = %d, want %d", types.ExprString(expr), got, tt.want)
		}
	}
}

func TestCallQualified(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := t.Context()

	stmt := f.stmt(t, "_ = mk().n")
	call := symref.CallRef(f.s.Find(t, f.s.Func(t, "f"), "mk()", 0).(*ast.CallExpr))

	qualified := func(r Result) bool {
		for _, ref := range r.Refs.Sorted() {
			if ref.Qualified() && strings.HasSuffix(string(ref), string(call)) {
				return true
			}
		}

		return false
	}

	if got := f.collector.Reads(ctx, stmt, 1); !qualified(got) {
		t.Errorf("Got reads %q, want the field qualified by %q", got.Refs.Sorted(), call)
	}

	if got := f.collector.Reads(ctx, stmt, 0); qualified(got) || !got.Escapes {
		t.Errorf("Got reads %q escapes=%t without expansion, want no call qualified field", got.Refs.Sorted(), got.Escapes)
	}
}

const aliasSrc = `package test

type box struct{ n int }

func (b *box) inc() { b.n++ }

func aliases(arr [2]int, ptr *box) {
	addr, captured, plain, method, field := 1, 2, 3, box{}, box{}
	_ = &addr
	func() { captured++ }()
	method.inc()
	_ = arr[:]
	_ = &field.n
	ptr.inc()
	_ = plain
	inner := 0
	func() { inner := 1; inner++ }()
	_ = inner
}
`

func TestAliasesOf(t *testing.T) {
	t.Parallel()

	s := testsource.Load(t, aliasSrc)
	fn := s.Func(t, "aliases")
	aliases := AliasesOf(s.Info, fn.Node())

	tests := [...]struct {
		name string
		want bool
	}{
		{"addr", true},
		{"captured", true},
		{"method", true},
		{"arr", true},
		{"field", true},
		{"plain", false},
		{"ptr", false},
		{"inner", false},
	}

	for _, tt := range tests {
		v, ok := s.Object(t, tt.name).(*types.Var)
		if !ok {
			t.Fatalf("%s is not a variable", tt.name)
		}

		if got := aliases.Has(v); got != tt.want {
			t.Errorf("Aliased(%s) = %t, want %t", tt.name, got, tt.want)
		}
	}

	c := Collector{Info: s.Info, Aliases: aliases}

	if got := c.Reads(t.Context(), s.Find(t, fn, "addr\n", 4), 0); !got.Escapes {
		t.Error("Expected a read of an aliased local to escape")
	}

	if got := c.Reads(t.Context(), s.Find(t, fn, "plain\n", 5), 0); got.Escapes {
		t.Error("Expected a read of a plain local to stay local")
	}
}
