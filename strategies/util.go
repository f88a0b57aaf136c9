package strategies

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

func changeFirst(s string, f func(rune) rune) string {
	c, n := utf8.DecodeRuneInString(s)
	if c == utf8.RuneError { // empty or invalid
		return s
	}
	return string(f(c)) + s[n:]
}

func lowerFirst(s string) string {
	return changeFirst(strings.TrimLeft(s, "_"), unicode.ToLower)
}

func upperFirst(s string) string {
	return changeFirst(strings.TrimLeft(s, "_"), unicode.ToUpper)
}

func sortNames(names []string) {
	sort.Strings(names)
}

func joinNames(names []string) string {
	return strings.Join(names, ", ")
}
