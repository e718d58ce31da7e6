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
	"go/types"
	"maps"
	"slices"
)

// Set maps fully qualified function names to whether they are impure.
//
// An entry with a false value marks a function known to be pure.
type Set map[FuncName]bool

// Impure reports whether fun is listed as impure.
func (s Set) Impure(fun *types.Func) bool {
	return s[FuncNameOf(fun)]
}

// Known reports whether fun is listed, and whether it is impure.
func (s Set) Known(fun *types.Func) (impure, known bool) {
	impure, known = s[FuncNameOf(fun)]

	return impure, known
}

// Add marks the named functions as impure.
func (s Set) Add(names ...string) error {
	return s.set(true, names)
}

// AddPure marks the named functions as pure.
func (s Set) AddPure(names ...string) error {
	return s.set(false, names)
}

func (s Set) set(impure bool, names []string) error {
	for _, name := range names {
		f, err := Parse(name)
		if err != nil {
			return err
		}

		s[f] = impure
	}

	return nil
}

// Clone returns an independent copy of the set.
func (s Set) Clone() Set {
	return maps.Clone(s)
}

// Names returns the impure function names, sorted.
func (s Set) Names() []string {
	names := make([]string, 0, len(s))

	for f, impure := range s {
		if impure {
			names = append(names, f.String())
		}
	}

	slices.Sort(names)

	return names
}

// DefaultImpure returns a fresh set of operations that have observable effects
// regardless of their apparent purity, together with a few common functions
// known to be pure.
func DefaultImpure() Set {
	return maps.Clone(_defaultImpure)
}

var _defaultImpure = Set{
	// Clocks
	{Path: "time", Name: "Now"}:   true,
	{Path: "time", Name: "Since"}: true,
	{Path: "time", Name: "Until"}: true,
	{Path: "time", Name: "Sleep"}: true,
	{Path: "time", Name: "After"}: true,
	{Path: "time", Name: "Tick"}:  true,

	// Console and stream output
	{Path: "fmt", Name: "Print"}:    true,
	{Path: "fmt", Name: "Printf"}:   true,
	{Path: "fmt", Name: "Println"}:  true,
	{Path: "fmt", Name: "Fprint"}:   true,
	{Path: "fmt", Name: "Fprintf"}:  true,
	{Path: "fmt", Name: "Fprintln"}: true,
	{Path: "fmt", Name: "Scan"}:     true,
	{Path: "fmt", Name: "Scanf"}:    true,
	{Path: "fmt", Name: "Scanln"}:   true,

	{Path: "io", Name: "WriteString"}: true,
	{Path: "io", Name: "Copy"}:        true,
	{Path: "io", Name: "ReadAll"}:     true,

	{Path: "os", Receiver: "File", Name: "Write"}:       true,
	{Path: "os", Receiver: "File", Name: "WriteString"}: true,
	{Path: "os", Receiver: "File", Name: "Read"}:        true,

	{Path: "bufio", Receiver: "Writer", Name: "Write"}:       true,
	{Path: "bufio", Receiver: "Writer", Name: "WriteString"}: true,
	{Path: "bufio", Receiver: "Writer", Name: "Flush"}:       true,

	{Path: "log", Name: "Print"}:   true,
	{Path: "log", Name: "Printf"}:  true,
	{Path: "log", Name: "Println"}: true,

	{Path: "log/slog", Name: "Info"}:  true,
	{Path: "log/slog", Name: "Warn"}:  true,
	{Path: "log/slog", Name: "Error"}: true,
	{Path: "log/slog", Name: "Debug"}: true,

	// Process environment
	{Path: "os", Name: "Getenv"}:    true,
	{Path: "os", Name: "Setenv"}:    true,
	{Path: "os", Name: "LookupEnv"}: true,
	{Path: "os", Name: "Getwd"}:     true,
	{Path: "os", Name: "Chdir"}:     true,

	{Path: "runtime", Name: "GC"}: true,

	// Randomness
	{Path: "math/rand", Name: "Int"}:     true,
	{Path: "math/rand", Name: "Intn"}:    true,
	{Path: "math/rand", Name: "Float64"}: true,
	{Path: "math/rand", Name: "Shuffle"}: true,

	{Path: "math/rand/v2", Name: "Int"}:  true,
	{Path: "math/rand/v2", Name: "IntN"}: true,
	{Path: "math/rand/v2", Name: "N"}:    true,

	{Path: "crypto/rand", Name: "Read"}: true,
	{Path: "crypto/rand", Name: "Text"}: true,

	// Synchronization
	{Path: "sync", Receiver: "Mutex", Name: "Lock"}:      true,
	{Path: "sync", Receiver: "Mutex", Name: "Unlock"}:    true,
	{Path: "sync", Receiver: "RWMutex", Name: "Lock"}:    true,
	{Path: "sync", Receiver: "RWMutex", Name: "Unlock"}:  true,
	{Path: "sync", Receiver: "RWMutex", Name: "RLock"}:   true,
	{Path: "sync", Receiver: "RWMutex", Name: "RUnlock"}: true,
	{Path: "sync", Receiver: "WaitGroup", Name: "Add"}:   true,
	{Path: "sync", Receiver: "WaitGroup", Name: "Done"}:  true,
	{Path: "sync", Receiver: "WaitGroup", Name: "Wait"}:  true,
	{Path: "sync", Receiver: "Once", Name: "Do"}:         true,

	// Pure
	{Path: "strings", Name: "Contains"}:   false,
	{Path: "strings", Name: "EqualFold"}:  false,
	{Path: "strings", Name: "HasPrefix"}:  false,
	{Path: "strings", Name: "HasSuffix"}:  false,
	{Path: "strings", Name: "Index"}:      false,
	{Path: "strings", Name: "Join"}:       false,
	{Path: "strings", Name: "Repeat"}:     false,
	{Path: "strings", Name: "ReplaceAll"}: false,
	{Path: "strings", Name: "ToLower"}:    false,
	{Path: "strings", Name: "ToUpper"}:    false,
	{Path: "strings", Name: "TrimSpace"}:  false,

	{Path: "strconv", Name: "Itoa"}:       false,
	{Path: "strconv", Name: "FormatInt"}:  false,
	{Path: "strconv", Name: "FormatBool"}: false,
	{Path: "strconv", Name: "Quote"}:      false,

	{Path: "math", Name: "Abs"}:   false,
	{Path: "math", Name: "Ceil"}:  false,
	{Path: "math", Name: "Floor"}: false,
	{Path: "math", Name: "Sqrt"}:  false,

	{Path: "unicode/utf8", Name: "RuneLen"}:           false,
	{Path: "unicode/utf8", Name: "RuneCountInString"}: false,
}
