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

// Package config holds the behavioral settings of the analyzer.
package config

import (
	"strings"
)

// Config holds behavioral flags of the analyzer.
type Config uint8

const (
	// IncludeGenerated specifies whether to include analysis of generated files.
	IncludeGenerated Config = 1 << iota

	// Conservative blocks inlining across statements that are not inert.
	Conservative

	// ReportBlocked reports candidates that can't be inlined, without suggested fixes.
	ReportBlocked

	// SuggestFixes attaches suggested fixes to inlinable candidates.
	SuggestFixes
)

var names = [...]string{"generated", "conservative", "blocked", "fixes"}

// DefaultBehavior returns the default behavioral flags.
func DefaultBehavior() Config {
	return SuggestFixes
}

// Set enables or disables flag.
func (c *Config) Set(flag Config, value bool) {
	if value {
		*c |= flag
	} else {
		*c &^= flag
	}
}

// Enabled reports whether all bits of flag are set.
func (c Config) Enabled(flag Config) bool {
	return c&flag == flag
}

// String returns the names of the enabled flags, separated by "|".
func (c Config) String() string {
	var b strings.Builder

	for i, name := range names {
		if c&(1<<i) == 0 {
			continue
		}

		if b.Len() > 0 {
			b.WriteByte('|') // ignore error
		}

		b.WriteString(name) // ignore error
	}

	if b.Len() == 0 {
		return "none"
	}

	return b.String()
}
