package blocked

import "time"

var counter int

func next() int {
	counter++
	return counter
}

func effect() time.Duration {
	start := time.Now() // want "Variable 'start' is used once but can't be inlined \\(eg:eff\\)"
	work()

	return time.Since(start)
}

func work() {}

func conflict() int {
	c := counter // want "Variable 'c' is used once but can't be inlined \\(eg:cfl\\)"
	next()

	return c
}

func shadowed(s []string) int {
	n := len(s) // want "Variable 'n' is used once but can't be inlined \\(eg:shw\\)"
	{
		s := "shadow"
		_ = s

		return n
	}
}

func loop(xs []int) [][]int {
	buf := make([]int, 0, len(xs)) // want "Variable 'buf' is used once but can't be inlined \\(eg:lop\\)"
	var out [][]int
	for range xs {
		out = append(out, buf)
	}

	return out
}

func allowed(a, b int) int {
	m := a + b // want "Variable 'm' is used once and can be inlined \\(eg:inl\\)"
	if a < 0 {
		return 0
	}

	return m * 2
}

func closure(xs []int) func() int {
	n := len(xs)

	return func() int { return n }
}
