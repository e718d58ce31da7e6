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

// Package analyzer implements the extractguard static analysis pass.
//
// # Overview
//
// ExtractGuard detects Go variables that are declared with an initializer and
// used exactly once, where the initializer can be moved to the use without
// changing the behavior of the program.
//
// # Example
//
// Before:
//
//	func describe(p *Person) string {
//	    name := p.Name
//	    log.Print("describing person")
//	    return "Name: " + name
//	}
//
// After applying extractguard's suggested fix:
//
//	func describe(p *Person) string {
//	    log.Print("describing person")
//	    return "Name: " + p.Name
//	}
//
// # Checks
//
// A variable is reported when:
//
//   - the initializer has no side effects,
//   - no code executed between declaration and use writes a location the initializer reads,
//   - all identifiers of the initializer resolve to the same objects at the use,
//   - the use is not repeated in a loop the declaration is outside of, unless the initializer is pure and does not allocate.
//
// Calls are analyzed interprocedurally up to a configurable depth. Calls that
// can't be analyzed are assumed to have side effects and to write any
// location reachable through a pointer. With the default -depth=1, a callee
// calling anything not known to be pure counts as having side effects;
// declare side effect free packages with -pure-pkg to avoid this.
//
// Locals whose address is taken, or which a function literal assigns, are
// treated like memory reachable through a pointer.
//
// With -mode=conservative, only inert statements (declarations of
// constants and pure expressions) may separate declaration and use.
//
// # Diagnostics
//
// Diagnostics end with a short status code:
//
//   - inl: the variable can be inlined
//   - eff: the initializer has side effects
//   - cfl: code between declaration and use may modify what the initializer reads
//   - shw: an identifier of the initializer is shadowed at the use
//   - lop: the use is repeated in a loop and the initializer allocates or has side effects
//   - xst: statements between declaration and use are not inert (conservative mode)
//
// Only inl is reported by default, the others with -blocked.
//
// # Configuration
//
// Functions with side effects beyond the built-in list are added with
// -impure=time.Now,(*bytes.Buffer).Reset, packages without side effects with
// -pure-pkg=math/**. Settings can be read from a TOML file with -config:
//
//	mode = "conservative"
//	blocked = true
//	depth = 2
//	impure = ["(*example.com/cache.Store).Get"]
//	pure-packages = ["math/**", "unicode/*"]
//
// Flags following -config override the file.
package analyzer
