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

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/mod/module"
)

// ErrInvalidPattern is returned when a package pattern can't be parsed.
var ErrInvalidPattern = errors.New("invalid package pattern")

// Patterns are import path globs like "math/**" or "example.com/*/log",
// matched with [doublestar.Match]. A trailing "/**" includes the package
// itself, so "math/**" matches "math" as well as "math/bits".
type Patterns []string

// Add appends valid patterns. The literal directory prefix of a pattern must be a valid import path.
func (p *Patterns) Add(patterns ...string) error {
	for _, pattern := range patterns {
		if pattern == "" || !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("%w: %q", ErrInvalidPattern, pattern)
		}

		if base, _ := doublestar.SplitPattern(pattern); base != "." && base != "/" {
			if err := module.CheckImportPath(base); err != nil {
				return fmt.Errorf("%w: %w", ErrInvalidPattern, err)
			}
		}

		*p = append(*p, pattern)
	}

	return nil
}

// Match reports whether fun is declared in a package matching one of the patterns.
func (p Patterns) Match(fun *types.Func) bool {
	if len(p) == 0 || fun == nil {
		return false
	}

	pkg := fun.Pkg()
	if pkg == nil {
		return false
	}

	path := pkg.Path()

	for _, pattern := range p {
		if ok, err := doublestar.Match(pattern, path); ok && err == nil {
			return true
		}
	}

	return false
}
