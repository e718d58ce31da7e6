// Copyright 2025 Oliver Eikemeier. All Rights Reserved.
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

package funcname_test

import (
	"errors"
	"go/token"
	"go/types"
	"slices"
	"testing"

	. "fillmore-labs.com/extractguard/internal/funcname"
)

func TestFuncNameOf(t *testing.T) {
	t.Parallel()

	pkg := types.NewPackage("example.com/testpkg", "testpkg")

	typeName := types.NewTypeName(token.NoPos, pkg, "MyType", nil)
	emptystruct := types.NewStruct(nil, nil)
	named := types.NewNamed(typeName, emptystruct, nil)
	aliasName := types.NewTypeName(token.NoPos, pkg, "MyAlias", nil)
	alias := types.NewAlias(aliasName, types.NewPointer(named))

	tests := [...]struct {
		name         string
		fun          *types.Func
		wantFuncName string
	}{
		{
			name: "simple function call",
			fun: func() *types.Func {
				sig := types.NewSignatureType(nil, nil, nil, nil, nil, false)

				return types.NewFunc(token.NoPos, pkg, "myFunc", sig)
			}(),
			wantFuncName: "example.com/testpkg.myFunc",
		},
		{
			name: "simple value method call",
			fun: func() *types.Func {
				recv := types.NewParam(token.NoPos, pkg, "", named)
				sig := types.NewSignatureType(recv, nil, nil, nil, nil, false)

				return types.NewFunc(token.NoPos, pkg, "myFunc", sig)
			}(),
			wantFuncName: "(example.com/testpkg.MyType).myFunc",
		},
		{
			name: "simple pointer method call",
			fun: func() *types.Func {
				recv := types.NewParam(token.NoPos, pkg, "", types.NewPointer(named))
				sig := types.NewSignatureType(recv, nil, nil, nil, nil, false)

				return types.NewFunc(token.NoPos, pkg, "myFunc", sig)
			}(),
			wantFuncName: "(example.com/testpkg.MyType).myFunc",
		},
		{
			name: "alias pointer method call",
			fun: func() *types.Func {
				recv := types.NewParam(token.NoPos, pkg, "", alias)
				sig := types.NewSignatureType(recv, nil, nil, nil, nil, false)

				return types.NewFunc(token.NoPos, pkg, "myFunc", sig)
			}(),
			wantFuncName: "(example.com/testpkg.MyType).myFunc",
		},
		{
			name: "interface method call",
			fun: func() *types.Func {
				sig := types.NewSignatureType(nil, nil, nil, nil, nil, false)
				iface := types.NewInterfaceType([]*types.Func{
					types.NewFunc(token.NoPos, pkg, "myFunc", sig),
				}, nil).Complete()

				return iface.Method(0)
			}(),
			wantFuncName: "(interface).myFunc",
		},
		{
			name: "function without package",
			fun: func() *types.Func {
				sig := types.NewSignatureType(nil, nil, nil, nil, nil, false)

				return types.NewFunc(token.NoPos, nil, "myFunc", sig)
			}(),
			wantFuncName: "myFunc",
		},
		{
			name: "method on type without package",
			fun: func() *types.Func {
				return types.Universe.Lookup("error").Type().Underlying().(*types.Interface).Method(0)
			}(),
			wantFuncName: "(error).Error",
		},
		{
			name: "invalid method call",
			fun: func() *types.Func {
				recv := types.NewParam(token.NoPos, pkg, "", emptystruct)
				sig := types.NewSignatureType(recv, nil, nil, nil, nil, false)

				return types.NewFunc(token.NoPos, pkg, "myFunc", sig)
			}(),
			wantFuncName: "(<invalid>).myFunc",
		},
		{
			name: "invalid pointer method call",
			fun: func() *types.Func {
				recv := types.NewParam(token.NoPos, pkg, "", types.NewPointer(emptystruct))
				sig := types.NewSignatureType(recv, nil, nil, nil, nil, false)

				return types.NewFunc(token.NoPos, pkg, "myFunc", sig)
			}(),
			wantFuncName: "(<invalid>).myFunc",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if name := FuncNameOf(tt.fun); name.String() != tt.wantFuncName {
				t.Errorf("FuncNameOf() = %q, want %q", name, tt.wantFuncName)
			}
		})
	}
}

func TestParse(t *testing.T) {
	t.Parallel()

	tests := [...]struct {
		name    string
		input   string
		want    FuncName
		wantErr bool
	}{
		{"function", "time.Now", FuncName{Path: "time", Name: "Now"}, false},
		{"nested path", "math/rand/v2.IntN", FuncName{Path: "math/rand/v2", Name: "IntN"}, false},
		{"value method", "(os.File).Write", FuncName{Path: "os", Receiver: "File", Name: "Write"}, false},
		{"pointer method", "(*bufio.Writer).Flush", FuncName{Path: "bufio", Receiver: "Writer", Name: "Flush"}, false},
		{"universe method", "(error).Error", FuncName{Receiver: "error", Name: "Error"}, false},
		{"spaces", "  fmt.Println ", FuncName{Path: "fmt", Name: "Println"}, false},
		{"no package", "Now", FuncName{}, true},
		{"trailing dot", "time.", FuncName{}, true},
		{"unclosed receiver", "(os.File.Write", FuncName{}, true},
		{"empty method", "(os.File).", FuncName{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Parse(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse(%q) error = %v, wantErr %t", tt.input, err, tt.wantErr)
			}

			if err != nil {
				if !errors.Is(err, ErrInvalidName) {
					t.Errorf("Parse(%q) error = %v, want %v", tt.input, err, ErrInvalidName)
				}

				return
			}

			if got != tt.want {
				t.Errorf("Parse(%q) = %#v, want %#v", tt.input, got, tt.want)
			}

			if round, err := Parse(got.String()); err != nil || round != got {
				t.Errorf("Parse(%q) = %#v, %v, want %#v", got.String(), round, err, got)
			}
		})
	}
}

func TestSet(t *testing.T) {
	t.Parallel()

	pkg := types.NewPackage("time", "time")
	sig := types.NewSignatureType(nil, nil, nil, nil, nil, false)
	now := types.NewFunc(token.NoPos, pkg, "Now", sig)
	unix := types.NewFunc(token.NoPos, pkg, "Unix", sig)

	s := DefaultImpure()
	if !s.Impure(now) {
		t.Errorf("Expected %s to be impure", now.FullName())
	}

	if s.Impure(unix) {
		t.Errorf("Expected %s to be pure", unix.FullName())
	}

	if err := s.Add("time.Unix"); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	if !s.Impure(unix) {
		t.Errorf("Expected %s to be impure after Add", unix.FullName())
	}

	if DefaultImpure().Impure(unix) {
		t.Error("Add modified the default set")
	}

	if err := s.Add("Unix"); !errors.Is(err, ErrInvalidName) {
		t.Errorf("Add(%q) error = %v, want %v", "Unix", err, ErrInvalidName)
	}

	names := s.Names()
	if !slices.IsSorted(names) || !slices.Contains(names, "time.Unix") {
		t.Errorf("Got names %v, expected sorted list containing %q", names, "time.Unix")
	}
}

func TestNoReturn(t *testing.T) {
	t.Parallel()

	sig := types.NewSignatureType(nil, nil, nil, nil, nil, false)
	ospkg := types.NewPackage("os", "os")
	testpkg := types.NewPackage("testing", "testing")

	common := types.NewNamed(types.NewTypeName(token.NoPos, testpkg, "common", nil), types.NewStruct(nil, nil), nil)
	recv := types.NewParam(token.NoPos, testpkg, "c", types.NewPointer(common))
	method := types.NewSignatureType(recv, nil, nil, nil, nil, false)

	tests := [...]struct {
		name string
		fun  *types.Func
		want bool
	}{
		{"exit", types.NewFunc(token.NoPos, ospkg, "Exit", sig), true},
		{"getenv", types.NewFunc(token.NoPos, ospkg, "Getenv", sig), false},
		{"fatal", types.NewFunc(token.NoPos, testpkg, "Fatal", method), true},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		if got := NoReturn(tt.fun); got != tt.want {
			t.Errorf("NoReturn(%s) = %t, want %t", tt.name, got, tt.want)
		}
	}
}
