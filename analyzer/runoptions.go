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
	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"

	"fillmore-labs.com/extractguard/analyzer/level"
	"fillmore-labs.com/extractguard/internal/callee"
	"fillmore-labs.com/extractguard/internal/config"
	"fillmore-labs.com/extractguard/internal/conflict"
	"fillmore-labs.com/extractguard/internal/funcname"
	"fillmore-labs.com/extractguard/internal/run"
	"fillmore-labs.com/extractguard/safety"
)

// runOptions represent configuration options for the extractguard analyzer.
type runOptions struct {
	// behavior holds behavioral options.
	behavior config.Config

	// mode is the analysis level.
	mode level.Mode

	// maxLines specifies the maximum number of lines an initializer can span to be considered for inlining.
	maxLines int

	// maxCalleeSize is the maximum size of an analyzed callee body in bytes.
	maxCalleeSize int

	// depth is the number of callee levels analyzed.
	depth int

	// workers limits concurrent conflict checks.
	workers int

	// impure lists additional functions with side effects.
	impure []string

	// purePackages are import path patterns of packages without side effects.
	purePackages funcname.Patterns
}

// makeRunOptions returns a [runOptions] struct with overriding [Options] applied.
func makeRunOptions(opts Options) *runOptions {
	r := defaultRunOptions()
	opts.apply(r)

	return r
}

// defaultRunOptions initializes and returns a new runOptions instance with default values.
func defaultRunOptions() *runOptions {
	return &runOptions{
		behavior:      config.DefaultBehavior(),
		mode:          level.ModeFull,
		maxLines:      -1,
		maxCalleeSize: callee.DefaultMaxSize,
		depth:         safety.DefaultDepth,
		workers:       conflict.DefaultWorkers,
	}
}

// analyzer returns an extractguard *[analysis.Analyzer] instance.
func (r *runOptions) analyzer() *analysis.Analyzer {
	a := &analysis.Analyzer{
		Name:     name,
		Doc:      doc,
		URL:      url,
		Run:      r.run,
		Requires: []*analysis.Analyzer{inspect.Analyzer},
	}

	return a
}

// run executes the extractguard analyzer's pipeline.
func (r *runOptions) run(p *analysis.Pass) (any, error) {
	if r.mode == level.ModeOff {
		return nil, nil
	}

	return r.options().Run(p)
}

// options converts the current settings, which may have been changed by flags after [New].
func (r *runOptions) options() *run.Options {
	behavior := r.behavior
	behavior.Set(config.Conservative, r.mode == level.ModeConservative)

	return &run.Options{
		Behavior: behavior,
		MaxLines: r.maxLines,
		Safety: safety.Options{
			safety.WithMaxCalleeSize(r.maxCalleeSize),
			safety.WithDepth(r.depth),
			safety.WithWorkers(r.workers),
			safety.WithImpureFunc(r.impure...),
			safety.WithPurePackages(r.purePackages...),
		},
	}
}
