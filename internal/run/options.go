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

package run

import (
	"fillmore-labs.com/extractguard/internal/config"
	"fillmore-labs.com/extractguard/safety"
)

// Options represent configuration options for the extractguard analyzer.
type Options struct {
	// Behavior holds behavioral options.
	Behavior config.Config

	// MaxLines specifies the maximum number of lines an initializer can span to be considered for inlining.
	// A negative value disables the limit.
	MaxLines int

	// Safety configures the conflict and side effect checks.
	Safety safety.Options
}

// DefaultOptions returns the default [Options].
func DefaultOptions() *Options {
	return &Options{
		Behavior: config.DefaultBehavior(),
		MaxLines: -1,
	}
}
