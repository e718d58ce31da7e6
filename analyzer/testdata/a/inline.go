package a

import (
	"strconv"
	"strings"
	"time"
)

func sum(xs []int) int {
	n := len(xs) // want "Variable 'n' is used once and can be inlined \\(eg:inl\\)"
	total := 0
	for _, x := range xs {
		total += x
	}

	return total / n
}

func upper(s string) string {
	var u = strings.ToUpper(s) // want "Variable 'u' is used once and can be inlined \\(eg:inl\\)"
	return u
}

func area(w, h int) int {
	a := w * h // want "Variable 'a' is used once and can be inlined \\(eg:inl\\)"
	return 2 * a
}

func sign(v int) string {
	switch {
	case v < 0:
		s := strconv.Itoa(-v) // want "Variable 's' is used once and can be inlined \\(eg:inl\\)"
		return "-" + s

	default:
		return strconv.Itoa(v)
	}
}

func timing() time.Duration {
	start := time.Now()
	work()

	return time.Since(start)
}

func work() {}

func quiet(s string) string {
	t := strings.TrimSpace(s) //nolint:extractguard
	return t
}

func twice(s string) (string, string) {
	t := strings.TrimSpace(s)
	return t, t
}

func aliased() int {
	x := 1
	p := &x
	v := x
	*p = 5

	return v + *p
}

func captured() int {
	x := 1
	inc := func() { x++ }
	v := x
	inc()
	inc()

	return v
}
