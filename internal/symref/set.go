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

package symref

import (
	"maps"
	"slices"
)

// Set is a set of references, built per query.
type Set map[Ref]struct{}

// Add inserts r unless it is [None].
func (s Set) Add(r Ref) {
	if r == None {
		return
	}

	s[r] = struct{}{}
}

// AddAll inserts all references of o.
func (s Set) AddAll(o Set) {
	maps.Copy(s, o)
}

// Has reports whether r is in the set.
func (s Set) Has(r Ref) bool {
	_, ok := s[r]
	return ok
}

// Len returns the number of references.
func (s Set) Len() int { return len(s) }

// Sorted returns the references in lexical order.
func (s Set) Sorted() []Ref {
	return slices.Sorted(maps.Keys(s))
}

// Intersects reports whether both sets may refer to a common location.
//
// Beyond equal keys, an unqualified field reference matches every
// qualified reference of the same field.
func (s Set) Intersects(o Set) bool {
	if len(o) < len(s) {
		s, o = o, s
	}

	for r := range s {
		if o.Has(r) {
			return true
		}
	}

	return s.fieldMatch(o) || o.fieldMatch(s)
}

// fieldMatch reports whether an unqualified field of s matches a qualified field of o.
func (s Set) fieldMatch(o Set) bool {
	var members Set

	for r := range o {
		if !r.Qualified() {
			continue
		}

		if members == nil {
			members = make(Set)
		}

		members.Add(r.Member())
	}

	if members == nil {
		return false
	}

	for r := range s {
		if !r.Qualified() && members.Has(r) {
			return true
		}
	}

	return false
}
