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

package gclplugin

import (
	"fillmore-labs.com/extractguard/analyzer"
	"fillmore-labs.com/extractguard/analyzer/level"
	"fillmore-labs.com/extractguard/internal/funcname"
)

// Settings represents the configuration options for an instance of the [Plugin].
type Settings struct {
	// Mode sets the analysis level: full, conservative or off.
	Mode *level.Mode `json:"mode,omitzero"`
	// Blocked reports single-use variables that can't be inlined.
	Blocked *bool `json:"blocked,omitzero"`
	// MaxLines sets the maximum initializer size for inlining.
	MaxLines *int `json:"max-lines,omitzero"`
	// MaxCalleeSize sets the maximum size of an analyzed callee body in bytes.
	MaxCalleeSize *int `json:"max-callee-size,omitzero"`
	// Depth sets the number of analyzed callee levels.
	Depth *int `json:"depth,omitzero"`
	// Workers limits concurrent conflict checks.
	Workers *int `json:"workers,omitzero"`
	// Impure lists additional functions with side effects.
	Impure []string `json:"impure,omitzero"`
	// PurePackages lists import path patterns of packages without side effects.
	PurePackages []string `json:"pure-packages,omitzero"`
}

// Options converts [Settings] into a list of [analyzer.Option] for the extractguard analyzer.
// It processes settings and applies them only when explicitly set (non-nil).
func (s Settings) Options() []analyzer.Option {
	var opts []analyzer.Option

	opts = appendOption(opts, s.Mode, analyzer.WithMode)
	opts = appendOption(opts, s.Blocked, analyzer.WithBlocked)
	opts = appendOption(opts, s.MaxLines, analyzer.WithMaxLines)
	opts = appendOption(opts, s.MaxCalleeSize, analyzer.WithMaxCalleeSize)
	opts = appendOption(opts, s.Depth, analyzer.WithDepth)
	opts = appendOption(opts, s.Workers, analyzer.WithWorkers)

	if len(s.Impure) > 0 {
		opts = append(opts, analyzer.WithImpureFunc(s.Impure...))
	}

	if len(s.PurePackages) > 0 {
		opts = append(opts, analyzer.WithPurePackages(s.PurePackages...))
	}

	return opts
}

// Validate checks the function names and package patterns.
func (s Settings) Validate() error {
	for _, name := range s.Impure {
		if _, err := funcname.Parse(name); err != nil {
			return err
		}
	}

	var patterns funcname.Patterns

	return patterns.Add(s.PurePackages...)
}

// appendOption appends a non-nil setting to an [analyzer.Option] list.
func appendOption[T any](opts []analyzer.Option, value *T, constructor func(T) analyzer.Option) []analyzer.Option {
	if value == nil {
		return opts
	}

	return append(opts, constructor(*value))
}
