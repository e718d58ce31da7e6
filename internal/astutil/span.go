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

package astutil

import (
	"go/ast"
	"go/token"
)

// Span is the source range of a syntax tree node.
// It is used as a deduplication key for visited nodes.
type Span struct {
	Pos, End token.Pos
}

// SpanOf returns the [Span] of the node.
func SpanOf(n ast.Node) Span {
	return Span{Pos: n.Pos(), End: n.End()}
}

// Contains reports whether pos lies within the span.
func (s Span) Contains(pos token.Pos) bool {
	return s.Pos <= pos && pos < s.End
}

// Within reports whether the span lies completely within [start, end].
func (s Span) Within(start, end token.Pos) bool {
	return start <= s.Pos && s.End <= end
}

// Overlaps reports whether the span overlaps [start, end).
func (s Span) Overlaps(start, end token.Pos) bool {
	return s.Pos < end && start < s.End
}

// Len returns the number of bytes the span covers.
func (s Span) Len() int {
	return int(s.End - s.Pos)
}
