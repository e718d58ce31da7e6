package off

import "strings"

func upper(s string) string {
	u := strings.ToUpper(s)
	return u
}
