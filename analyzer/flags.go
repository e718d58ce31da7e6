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
	"flag"
	"fmt"
	"strings"

	"fillmore-labs.com/extractguard/internal/config"
	"fillmore-labs.com/extractguard/internal/funcname"
)

// registerFlags binds the [runOptions] values to command line flag values.
// A nil flag set value defaults to the program's command line.
func registerFlags(r *runOptions, flags *flag.FlagSet) {
	if flags == nil {
		flags = flag.CommandLine
	}

	flags.Var(newBoolValue(&r.behavior, config.IncludeGenerated), "generated", "check generated files")
	flags.Var(newBoolValue(&r.behavior, config.ReportBlocked), "blocked", "also report single-use variables that can't be inlined")
	flags.TextVar(&r.mode, "mode", r.mode, "analysis `level`: full, conservative or off")
	flags.IntVar(&r.maxLines, "max-lines", r.maxLines, "maximum number of lines of an inlined initializer, -1 for no limit")
	flags.IntVar(&r.maxCalleeSize, "max-callee-size", r.maxCalleeSize, "maximum `bytes` of an analyzed callee body, -1 for no limit")
	flags.IntVar(&r.depth, "depth", r.depth, "number of callee levels to analyze")
	flags.IntVar(&r.workers, "workers", r.workers, "concurrent conflict checks, 0 to check sequentially and -1 for no limit")
	flags.Func("impure", "comma separated `functions` with side effects, like time.Now or (*bytes.Buffer).Reset", func(s string) error {
		return r.addImpure(split(s)...)
	})
	flags.Func("pure-pkg", "comma separated import path `patterns` of packages without side effects, like math/**", func(s string) error {
		return r.addPurePackages(split(s)...)
	})
	flags.Func("config", "read settings from a TOML `file`", r.readConfig)
}

func split(s string) []string {
	var fields []string

	for field := range strings.SplitSeq(s, ",") {
		if field = strings.TrimSpace(field); field != "" {
			fields = append(fields, field)
		}
	}

	return fields
}

// addImpure validates and adds function names.
func (r *runOptions) addImpure(names ...string) error {
	for _, name := range names {
		if _, err := funcname.Parse(name); err != nil {
			return fmt.Errorf("invalid function name %q: %w", name, err)
		}

		r.impure = append(r.impure, name)
	}

	return nil
}

// addPurePackages validates and adds import path patterns.
func (r *runOptions) addPurePackages(patterns ...string) error {
	return r.purePackages.Add(patterns...)
}

// readConfig applies the settings of a TOML file. Flags given later override them.
func (r *runOptions) readConfig(name string) error {
	f, err := config.ReadFile(name)
	if err != nil {
		return err
	}

	if f.Mode != nil {
		r.mode = *f.Mode
	}

	if f.Generated != nil {
		r.behavior.Set(config.IncludeGenerated, *f.Generated)
	}

	if f.Blocked != nil {
		r.behavior.Set(config.ReportBlocked, *f.Blocked)
	}

	setInt(&r.maxLines, f.MaxLines)
	setInt(&r.maxCalleeSize, f.MaxCalleeSize)
	setInt(&r.depth, f.Depth)
	setInt(&r.workers, f.Workers)

	if err := r.addImpure(f.Impure...); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}

	if err := r.addPurePackages(f.PurePackages...); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}

	return nil
}

func setInt(dst, value *int) {
	if value != nil {
		*dst = *value
	}
}
