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

package funcname

import "go/types"

// NoReturn reports whether a call of fun never returns to its caller,
// like [os.Exit] or [log.Fatal].
func NoReturn(fun *types.Func) bool {
	if fun == nil {
		return false
	}

	_, ok := _noReturn[FuncNameOf(fun)]

	return ok
}

var _noReturn = map[FuncName]struct{}{
	{Path: "log", Name: "Fatal"}:   {},
	{Path: "log", Name: "Fatalf"}:  {},
	{Path: "log", Name: "Fatalln"}: {},
	{Path: "log", Name: "Panic"}:   {},
	{Path: "log", Name: "Panicf"}:  {},
	{Path: "log", Name: "Panicln"}: {},

	{Path: "log", Receiver: "Logger", Name: "Fatal"}:   {},
	{Path: "log", Receiver: "Logger", Name: "Fatalf"}:  {},
	{Path: "log", Receiver: "Logger", Name: "Fatalln"}: {},
	{Path: "log", Receiver: "Logger", Name: "Panic"}:   {},
	{Path: "log", Receiver: "Logger", Name: "Panicf"}:  {},
	{Path: "log", Receiver: "Logger", Name: "Panicln"}: {},

	{Path: "os", Name: "Exit"}:        {},
	{Path: "syscall", Name: "Exit"}:   {},
	{Path: "runtime", Name: "Goexit"}: {},

	// *testing.T and *testing.B promote these from testing.common
	{Path: "testing", Receiver: "common", Name: "Fatal"}:   {},
	{Path: "testing", Receiver: "common", Name: "Fatalf"}:  {},
	{Path: "testing", Receiver: "common", Name: "FailNow"}: {},
	{Path: "testing", Receiver: "common", Name: "Skip"}:    {},
	{Path: "testing", Receiver: "common", Name: "Skipf"}:   {},
	{Path: "testing", Receiver: "common", Name: "SkipNow"}: {},

	{Path: "testing", Receiver: "TB", Name: "Fatal"}:   {},
	{Path: "testing", Receiver: "TB", Name: "Fatalf"}:  {},
	{Path: "testing", Receiver: "TB", Name: "FailNow"}: {},
	{Path: "testing", Receiver: "TB", Name: "Skip"}:    {},
	{Path: "testing", Receiver: "TB", Name: "Skipf"}:   {},
	{Path: "testing", Receiver: "TB", Name: "SkipNow"}: {},

	{Path: "github.com/sirupsen/logrus", Receiver: "Entry", Name: "Panic"}:   {},
	{Path: "github.com/sirupsen/logrus", Receiver: "Entry", Name: "Panicf"}:  {},
	{Path: "github.com/sirupsen/logrus", Receiver: "Logger", Name: "Exit"}:   {},
	{Path: "github.com/sirupsen/logrus", Receiver: "Logger", Name: "Panic"}:  {},
	{Path: "github.com/sirupsen/logrus", Receiver: "Logger", Name: "Panicf"}: {},

	{Path: "go.uber.org/zap", Receiver: "Logger", Name: "Fatal"}:         {},
	{Path: "go.uber.org/zap", Receiver: "Logger", Name: "Panic"}:         {},
	{Path: "go.uber.org/zap", Receiver: "SugaredLogger", Name: "Fatal"}:  {},
	{Path: "go.uber.org/zap", Receiver: "SugaredLogger", Name: "Fatalf"}: {},
	{Path: "go.uber.org/zap", Receiver: "SugaredLogger", Name: "Fatalw"}: {},
	{Path: "go.uber.org/zap", Receiver: "SugaredLogger", Name: "Panic"}:  {},
	{Path: "go.uber.org/zap", Receiver: "SugaredLogger", Name: "Panicf"}: {},
	{Path: "go.uber.org/zap", Receiver: "SugaredLogger", Name: "Panicw"}: {},

	{Path: "k8s.io/klog/v2", Name: "Exit"}:   {},
	{Path: "k8s.io/klog/v2", Name: "Exitf"}:  {},
	{Path: "k8s.io/klog/v2", Name: "Fatal"}:  {},
	{Path: "k8s.io/klog/v2", Name: "Fatalf"}: {},
}
