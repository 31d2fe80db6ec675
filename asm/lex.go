package asm

import "strings"

func isIdentStart(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isIdentChar(b byte) bool {
	return isIdentStart(b) || (b >= '0' && b <= '9')
}

// scanIdent takes the leading run of identifier characters off s,
// returning the identifier and what's left.
func scanIdent(s string) (ident, rest string) {
	i := 0
	for i < len(s) && isIdentChar(s[i]) {
		i++
	}
	return s[:i], s[i:]
}

// stripComment drops everything from the first unquoted ';' onward,
// and trims trailing whitespace left behind.
func stripComment(s string) string {
	inQuote := false
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '"':
			inQuote = !inQuote
		case ';':
			if !inQuote {
				return strings.TrimRight(s[:i], " \t\r")
			}
		}
	}
	return strings.TrimRight(s, " \t\r")
}

// leadingWS reports how many space/tab characters open the line; a
// symbol definition starts at column 0 (n == 0), everything else that
// isn't blank or a comment is indented.
func leadingWS(s string) int {
	n := 0
	for n < len(s) && (s[n] == ' ' || s[n] == '\t') {
		n++
	}
	return n
}
