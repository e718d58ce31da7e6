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

package flow

import "os"

func straight() {
	from := 1
	to := from
	_ = to // want "is reachable"
}

func before(to int) {
	_ = to // want "unreachable"
	from := 1
	_ = from
}

func loop(n int) {
	to := 0
	for range n {
		_ = to // want "is reachable"
		from := 1
		_ = from
	}
}

func branch(c bool, to int) {
	if c {
		from := 1
		_ = from
	} else {
		_ = to // want "unreachable"
	}
}

func returned(c bool) {
	var to int
	if c {
		from := 1
		_ = from
		return
	}
	_ = to // want "unreachable"
}

func exited(to int) {
	from := 1
	_ = from
	os.Exit(1)
	_ = to // want "unreachable"
}

func panicked(to int) {
	from := 1
	_ = from
	panic(from)
	_ = to // want "unreachable"
}

func backward(to int) {
l:
	_ = to // want "is reachable"
	from := 1
	_ = from
	if from > 0 {
		goto l
	}
}

func fallen(n, to int) {
	switch n {
	case 1:
		from := 1
		_ = from
		fallthrough
	case 2:
		_ = to // want "is reachable"
	}
}

func cases(n, to int) {
	switch n {
	case 1:
		from := 1
		_ = from
	case 2:
		_ = to // want "unreachable"
	}
}

func selected(ch chan int, to int) {
	for {
		select {
		case from := <-ch:
			_ = from
		default:
			_ = to // want "is reachable"
		}
	}
}

func forever(to int) {
	for {
		from := 1
		_ = from
	}
	_ = to // want "unreachable"
}
