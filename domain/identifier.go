package domain

import (
	"strings"
	"unicode/utf8"
)

// DeriveIdentifier builds the login handle from the lowercase initials of
// each whitespace separated token of owner: "Jonas Schmedtmann" -> "js".
func DeriveIdentifier(owner string) string {
	var b strings.Builder
	for _, token := range strings.Fields(strings.ToLower(owner)) {
		r, _ := utf8.DecodeRuneInString(token)
		b.WriteRune(r)
	}
	return b.String()
}
