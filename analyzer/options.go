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
	"log/slog"

	"fillmore-labs.com/extractguard/analyzer/level"
	"fillmore-labs.com/extractguard/internal/config"
)

// Option configures specific behavior of a [New] extractguard analyzer.
type Option interface {
	apply(r *runOptions)
	LogAttr() slog.Attr
}

// Options is a list of [Option] values that itself satisfies the [Option] interface.
type Options []Option

// LogValue implements [slog.LogValuer].
func (o Options) LogValue() slog.Value {
	as := make([]slog.Attr, 0, len(o))
	as = appendOptions(as, o)

	return slog.GroupValue(as...)
}

func appendOptions(as []slog.Attr, o Options) []slog.Attr {
	for _, opt := range o {
		switch opt := opt.(type) {
		case nil:
			as = append(as, slog.String("nil", "<nil>"))

		case Options:
			as = appendOptions(as, opt)

		default:
			as = append(as, opt.LogAttr())
		}
	}

	return as
}

func (o Options) apply(r *runOptions) {
	for _, opt := range o {
		if opt == nil {
			continue
		}

		opt.apply(r)
	}
}

// LogAttr is for logging with [slog.Logger.LogAttrs].
func (o Options) LogAttr() slog.Attr {
	return slog.Any("options", o)
}

// WithGenerated is an [Option] to configure diagnostics in generated files.
func WithGenerated(generated bool) Option { return generatedOption{generated: generated} }

type generatedOption struct{ generated bool }

func (o generatedOption) apply(r *runOptions) {
	r.behavior.Set(config.IncludeGenerated, o.generated)
}

func (o generatedOption) LogAttr() slog.Attr {
	return slog.Bool("generated", o.generated)
}

// WithMode is an [Option] to configure the analysis level.
func WithMode(mode level.Mode) Option { return modeOption{mode: mode} }

type modeOption struct{ mode level.Mode }

func (o modeOption) apply(r *runOptions) {
	r.mode = o.mode
}

func (o modeOption) LogAttr() slog.Attr {
	return slog.Any("mode", o.mode)
}

// WithConservative is an [Option] to only permit inlining across inert statements.
func WithConservative(conservative bool) Option {
	if conservative {
		return modeOption{mode: level.ModeConservative}
	}

	return modeOption{mode: level.ModeFull}
}

// WithBlocked is an [Option] to also report single-use variables that can't be inlined.
func WithBlocked(blocked bool) Option { return blockedOption{blocked: blocked} }

type blockedOption struct{ blocked bool }

func (o blockedOption) apply(r *runOptions) {
	r.behavior.Set(config.ReportBlocked, o.blocked)
}

func (o blockedOption) LogAttr() slog.Attr {
	return slog.Bool("blocked", o.blocked)
}

// WithSuggestFixes is an [Option] to configure suggested fixes for inlinable variables.
func WithSuggestFixes(fixes bool) Option { return fixesOption{fixes: fixes} }

type fixesOption struct{ fixes bool }

func (o fixesOption) apply(r *runOptions) {
	r.behavior.Set(config.SuggestFixes, o.fixes)
}

func (o fixesOption) LogAttr() slog.Attr {
	return slog.Bool("suggest-fixes", o.fixes)
}

// WithMaxLines is an [Option] to configure the maximum initializer size for inlining.
func WithMaxLines(maxLines int) Option { return maxLinesOption{maxLines: maxLines} }

type maxLinesOption struct{ maxLines int }

func (o maxLinesOption) apply(r *runOptions) {
	r.maxLines = o.maxLines
}

func (o maxLinesOption) LogAttr() slog.Attr {
	return slog.Int("max-lines", o.maxLines)
}

// WithMaxCalleeSize is an [Option] to configure the maximum size of an analyzed callee body in bytes.
func WithMaxCalleeSize(size int) Option { return maxCalleeSizeOption{size: size} }

type maxCalleeSizeOption struct{ size int }

func (o maxCalleeSizeOption) apply(r *runOptions) {
	r.maxCalleeSize = o.size
}

func (o maxCalleeSizeOption) LogAttr() slog.Attr {
	return slog.Int("max-callee-size", o.size)
}

// WithDepth is an [Option] to configure how many levels of callee bodies are analyzed.
func WithDepth(depth int) Option { return depthOption{depth: depth} }

type depthOption struct{ depth int }

func (o depthOption) apply(r *runOptions) {
	r.depth = o.depth
}

func (o depthOption) LogAttr() slog.Attr {
	return slog.Int("depth", o.depth)
}

// WithWorkers is an [Option] to configure the number of concurrent conflict checks.
func WithWorkers(workers int) Option { return workersOption{workers: workers} }

type workersOption struct{ workers int }

func (o workersOption) apply(r *runOptions) {
	r.workers = o.workers
}

func (o workersOption) LogAttr() slog.Attr {
	return slog.Int("workers", o.workers)
}

// WithImpureFunc is an [Option] to declare additional functions with side effects,
// named like "time.Now" or "(*bytes.Buffer).Reset".
func WithImpureFunc(names ...string) Option { return impureOption{names: names} }

type impureOption struct{ names []string }

func (o impureOption) apply(r *runOptions) {
	r.impure = append(r.impure, o.names...)
}

func (o impureOption) LogAttr() slog.Attr {
	return slog.Any("impure", o.names)
}

// WithPurePackages is an [Option] declaring all functions of packages matching
// the import path patterns, like "math/**", free of side effects. Invalid patterns are ignored.
func WithPurePackages(patterns ...string) Option { return purePackagesOption{patterns: patterns} }

type purePackagesOption struct{ patterns []string }

func (o purePackagesOption) apply(r *runOptions) {
	for _, pattern := range o.patterns {
		_ = r.purePackages.Add(pattern)
	}
}

func (o purePackagesOption) LogAttr() slog.Attr {
	return slog.Any("pure-packages", o.patterns)
}
