// Code generated by hand. DO NOT EDIT.

package a

import "strings"

func generated(s string) string {
	l := strings.ToLower(s)
	return l
}
