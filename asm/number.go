package asm

import "strconv"

// parseNumber reads one of the three literal forms a source line can
// use for EXPR: %binary, $hex, or plain decimal. It returns ok=false
// for anything else, which callers take as "this token is a symbol
// name instead".
func parseNumber(tok string) (uint32, bool) {
	if tok == "" {
		return 0, false
	}
	switch tok[0] {
	case '%':
		if len(tok) == 1 {
			return 0, false
		}
		v, err := strconv.ParseUint(tok[1:], 2, 32)
		if err != nil {
			return 0, false
		}
		return uint32(v), true
	case '$':
		if len(tok) == 1 {
			return 0, false
		}
		v, err := strconv.ParseUint(tok[1:], 16, 32)
		if err != nil {
			return 0, false
		}
		return uint32(v), true
	default:
		v, err := strconv.ParseUint(tok, 10, 32)
		if err != nil {
			return 0, false
		}
		return uint32(v), true
	}
}
