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

package config

import (
	"bytes"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"fillmore-labs.com/extractguard/analyzer/level"
)

// File is the content of a TOML settings file.
//
//	mode = "conservative"
//	depth = 2
//	impure = ["(*example.com/cache.Store).Get"]
//	pure-packages = ["math/**"]
type File struct {
	Mode          *level.Mode `toml:"mode"`
	Generated     *bool       `toml:"generated"`
	Blocked       *bool       `toml:"blocked"`
	MaxLines      *int        `toml:"max-lines"`
	MaxCalleeSize *int        `toml:"max-callee-size"`
	Depth         *int        `toml:"depth"`
	Workers       *int        `toml:"workers"`
	Impure        []string    `toml:"impure"`
	PurePackages  []string    `toml:"pure-packages"`
}

// ReadFile reads and decodes the named settings file. Unknown keys are an error.
func ReadFile(name string) (File, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return File{}, err
	}

	return Decode(data)
}

// Decode decodes TOML settings.
func Decode(data []byte) (File, error) {
	var f File

	dec := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields()
	if err := dec.Decode(&f); err != nil {
		return File{}, fmt.Errorf("can't decode settings: %w", err)
	}

	return f, nil
}
