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

package analyzer

import (
	"strconv"
	"strings"

	"fillmore-labs.com/extractguard/internal/config"
)

// behaviorValue is a boolean [flag.Value] controlling a single flag of the analyzer behavior.
type behaviorValue struct {
	behavior *config.Config
	flag     config.Config
}

// newBoolValue binds flag of behavior to a [flag.Value].
func newBoolValue(behavior *config.Config, flag config.Config) behaviorValue {
	return behaviorValue{behavior: behavior, flag: flag}
}

// Set implements [flag.Value].
func (f behaviorValue) Set(s string) error {
	b, err := parseBool(s)
	if err != nil {
		return err
	}

	f.behavior.Set(f.flag, b)

	return nil
}

// String implements [flag.Value].
func (f behaviorValue) String() string {
	return strconv.FormatBool(f.Get().(bool))
}

// Get implements [flag.Getter].
func (f behaviorValue) Get() any {
	return f.behavior != nil && f.behavior.Enabled(f.flag)
}

// IsBoolFlag marks a flag that needs no argument.
func (behaviorValue) IsBoolFlag() bool { return true }

// parseBool is [strconv.ParseBool] also accepting on and off.
func parseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "on", "yes":
		return true, nil

	case "off", "no":
		return false, nil

	default:
		return strconv.ParseBool(s)
	}
}
