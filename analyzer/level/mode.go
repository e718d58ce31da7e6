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

// Package level defines analysis levels configurable as text.
package level

import (
	"fmt"
	"strings"
)

// Mode specifies the inline analysis level.
type Mode uint8

const (
	// ModeFull reports all variables that can be inlined without changing behavior.
	ModeFull Mode = iota

	// ModeConservative additionally requires the statements between declaration and use to be inert.
	ModeConservative

	// ModeOff disables the analysis.
	ModeOff
)

// MarshalText implements [encoding.TextMarshaler].
func (o Mode) MarshalText() ([]byte, error) {
	switch o {
	case ModeFull:
		return []byte("full"), nil

	case ModeConservative:
		return []byte("conservative"), nil

	case ModeOff:
		return []byte("off"), nil

	default:
		return nil, fmt.Errorf("unknown mode %d", o)
	}
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (o *Mode) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "", "true", "on", "full":
		*o = ModeFull

	case "conservative":
		*o = ModeConservative

	case "off", "false":
		*o = ModeOff

	default:
		return fmt.Errorf("unknown mode %q", string(text))
	}

	return nil
}
