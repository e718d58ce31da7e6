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

package safety

import (
	"go/types"
	"log/slog"

	"fillmore-labs.com/extractguard/internal/funcname"
)

// Option configures an [Analyzer] created by [New].
type Option interface {
	apply(o *options)
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

func (o Options) apply(opts *options) {
	for _, opt := range o {
		if opt == nil {
			continue
		}

		opt.apply(opts)
	}
}

// LogAttr is for logging with [slog.Logger.LogAttrs].
func (o Options) LogAttr() slog.Attr {
	return slog.Any("options", o)
}

type options struct {
	maxCalleeSize int
	depth         int
	workers       int
	impure        funcname.Set
	pure          funcname.Patterns
	logger        *slog.Logger
}

// pureFunc reports whether fun is known to be free of side effects.
func (o options) pureFunc(fun *types.Func) bool {
	if impure, known := o.impure.Known(fun); known {
		return !impure
	}

	return o.pure.Match(fun)
}

// WithMaxCalleeSize is an [Option] to configure the maximum size of an analyzed callee body in bytes.
// A negative size analyzes bodies of any size.
func WithMaxCalleeSize(size int) Option { return maxCalleeSizeOption{size: size} }

type maxCalleeSizeOption struct{ size int }

func (o maxCalleeSizeOption) apply(opts *options) {
	opts.maxCalleeSize = o.size
}

func (o maxCalleeSizeOption) LogAttr() slog.Attr {
	return slog.Int("max-callee-size", o.size)
}

// WithDepth is an [Option] to configure how many levels of callee bodies are analyzed.
func WithDepth(depth int) Option { return depthOption{depth: depth} }

type depthOption struct{ depth int }

func (o depthOption) apply(opts *options) {
	opts.depth = max(o.depth, 0)
}

func (o depthOption) LogAttr() slog.Attr {
	return slog.Int("depth", o.depth)
}

// WithWorkers is an [Option] to configure the number of concurrent checks.
// Zero runs all checks in the calling goroutine, a negative value removes the limit.
func WithWorkers(workers int) Option { return workersOption{workers: workers} }

type workersOption struct{ workers int }

func (o workersOption) apply(opts *options) {
	opts.workers = o.workers
}

func (o workersOption) LogAttr() slog.Attr {
	return slog.Int("workers", o.workers)
}

// WithImpure is an [Option] replacing the set of functions with known purity.
func WithImpure(impure funcname.Set) Option { return impureOption{impure: impure} }

type impureOption struct{ impure funcname.Set }

func (o impureOption) apply(opts *options) {
	opts.impure = o.impure.Clone()
}

func (o impureOption) LogAttr() slog.Attr {
	return slog.Any("impure", o.impure.Names())
}

// WithImpureFunc is an [Option] adding functions with side effects, named like
// "time.Now" or "(*bytes.Buffer).Reset". Invalid names are ignored.
func WithImpureFunc(names ...string) Option { return impureFuncOption{names: names} }

type impureFuncOption struct{ names []string }

func (o impureFuncOption) apply(opts *options) {
	if opts.impure == nil {
		opts.impure = make(funcname.Set, len(o.names))
	}

	for _, name := range o.names {
		_ = opts.impure.Add(name) // ignore invalid names
	}
}

func (o impureFuncOption) LogAttr() slog.Attr {
	return slog.Any("impure-func", o.names)
}

// WithPurePackages is an [Option] declaring all functions of packages matching
// the import path patterns, like "math/**", free of side effects.
// Invalid patterns are ignored.
func WithPurePackages(patterns ...string) Option { return purePackagesOption{patterns: patterns} }

type purePackagesOption struct{ patterns []string }

func (o purePackagesOption) apply(opts *options) {
	for _, pattern := range o.patterns {
		_ = opts.pure.Add(pattern) // ignore invalid patterns
	}
}

func (o purePackagesOption) LogAttr() slog.Attr {
	return slog.Any("pure-packages", o.patterns)
}

// WithLogger is an [Option] to configure debug logging.
func WithLogger(logger *slog.Logger) Option { return loggerOption{logger: logger} }

type loggerOption struct{ logger *slog.Logger }

func (o loggerOption) apply(opts *options) {
	opts.logger = o.logger
}

func (o loggerOption) LogAttr() slog.Attr {
	return slog.Bool("logger", o.logger != nil)
}
