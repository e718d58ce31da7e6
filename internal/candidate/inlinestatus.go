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

package candidate

// InlineStatus indicates whether a variable can be inlined and why.
type InlineStatus uint8

//go:generate go tool stringer -type InlineStatus -linecomment
const (
	// InlineAllowed indicates the initializer can replace the single use.
	InlineAllowed InlineStatus = iota // inl

	// InlineBlockedSideEffect indicates evaluating the initializer has a side effect.
	// Inlining would move the effect to the use site.
	InlineBlockedSideEffect // eff

	// InlineBlockedConflict indicates code between declaration and use writes
	// a location the initializer reads.
	InlineBlockedConflict // cfl

	// InlineBlockedShadowed indicates an identifier of the initializer refers
	// to a different object at the use site.
	InlineBlockedShadowed // shw

	// InlineBlockedLoop indicates the use is repeated in a loop the declaration is not part of,
	// and the initializer is not safe to re-evaluate.
	InlineBlockedLoop // lop

	// InlineBlockedStatements indicates the inline is blocked because of intervening statements.
	// This only applies in conservative mode, where any potential side effect blocks an inline.
	InlineBlockedStatements // xst
)

// Inlinable indicates the variable could be inlined.
func (i InlineStatus) Inlinable() bool { return i == InlineAllowed }
