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

package funcname

import (
	"errors"
	"fmt"
	"go/types"
	"strings"
)

// FuncName is the fully qualified name of a function or method.
type FuncName struct {
	Path     string // Package path, empty for universe methods
	Receiver string // Receiver type name, empty for functions
	Name     string // Function or method name
}

const (
	invalidReceiver   = "<invalid>"
	interfaceReceiver = "interface"
)

// String returns the name in the form "path.Name" or "(path.Receiver).Name".
func (f FuncName) String() string {
	var b strings.Builder

	switch {
	case f.Receiver == invalidReceiver, f.Receiver == interfaceReceiver:
		b.WriteByte('(')          // ignore error
		b.WriteString(f.Receiver) // ignore error
		b.WriteString(").")       // ignore error

	case f.Receiver != "":
		b.WriteByte('(') // ignore error

		if f.Path != "" {
			b.WriteString(f.Path) // ignore error
			b.WriteByte('.')      // ignore error
		}

		b.WriteString(f.Receiver) // ignore error
		b.WriteString(").")       // ignore error

	case f.Path != "":
		b.WriteString(f.Path) // ignore error
		b.WriteByte('.')      // ignore error
	}

	b.WriteString(f.Name) // ignore error

	return b.String()
}

// FuncNameOf returns the [FuncName] of a function or method.
func FuncNameOf(fun *types.Func) FuncName {
	fun = fun.Origin()

	var path string
	if pkg := fun.Pkg(); pkg != nil {
		path = pkg.Path()
	}

	sig, ok := fun.Type().(*types.Signature)
	if !ok || sig.Recv() == nil {
		return FuncName{Path: path, Name: fun.Name()}
	}

	recv := sig.Recv().Type()
	if ptr, ok := types.Unalias(recv).(*types.Pointer); ok {
		recv = ptr.Elem()
	}

	switch t := types.Unalias(recv).(type) {
	case *types.Named:
		obj := t.Obj()

		path = ""
		if pkg := obj.Pkg(); pkg != nil {
			path = pkg.Path()
		}

		return FuncName{Path: path, Receiver: obj.Name(), Name: fun.Name()}

	case *types.Interface:
		return FuncName{Receiver: interfaceReceiver, Name: fun.Name()}

	default:
		return FuncName{Receiver: invalidReceiver, Name: fun.Name()}
	}
}

// ErrInvalidName is returned when a function name can't be parsed.
var ErrInvalidName = errors.New("invalid function name")

// Parse parses a function name in the form "path.Name", "(path.Receiver).Name" or "(*path.Receiver).Name".
func Parse(s string) (FuncName, error) {
	s = strings.TrimSpace(s)

	if rest, ok := strings.CutPrefix(s, "("); ok {
		recv, name, ok := strings.Cut(rest, ").")
		if !ok || name == "" || strings.ContainsAny(name, ".()") {
			return FuncName{}, fmt.Errorf("%w: %q", ErrInvalidName, s)
		}

		recv = strings.TrimPrefix(recv, "*")

		i := strings.LastIndexByte(recv, '.')
		if i < 0 {
			return FuncName{Receiver: recv, Name: name}, nil
		}

		if i == 0 || i == len(recv)-1 {
			return FuncName{}, fmt.Errorf("%w: %q", ErrInvalidName, s)
		}

		return FuncName{Path: recv[:i], Receiver: recv[i+1:], Name: name}, nil
	}

	i := strings.LastIndexByte(s, '.')
	if i <= 0 || i == len(s)-1 || strings.ContainsAny(s, "()") {
		return FuncName{}, fmt.Errorf("%w: %q", ErrInvalidName, s)
	}

	return FuncName{Path: s[:i], Name: s[i+1:]}, nil
}
