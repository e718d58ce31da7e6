package conservative

import "strings"

func statements(s string) (string, int) {
	u := strings.ToUpper(s) // want "Variable 'u' is used once but can't be inlined \\(eg:xst\\)"
	n := 0
	for range s {
		n++
	}

	return u, n
}

func inert(s string) string {
	u := strings.ToUpper(s) // want "Variable 'u' is used once and can be inlined \\(eg:inl\\)"
	const suffix = "!"

	return u + suffix
}
