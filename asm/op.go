package asm

import "github.com/duo8vm/duo8/isa"

// byteSelect records a `<`/`>` prefix on a symbol operand: which half
// of its resolved 16-bit value to keep once the symbol is known.
type byteSelect uint8

const (
	selectNone byteSelect = iota
	selectHigh            // <NAME
	selectLow             // >NAME
)

// op is one entry in the program vector built by the first pass and
// patched (if unresolved) by the second. It plays the role the
// compiler's intermediate instruction record does: born with either a
// concrete argument or a symbol name to look up later, never both.
type op struct {
	code     uint8
	argument uint16
	mode     uint8
	argID    string
	sel      byteSelect

	line int // source line, for error messages
}

// width reports how many operand bytes this record's mode emits,
// independent of whether it has resolved yet.
func (o op) width() int {
	switch o.mode {
	case isa.MODE_NONE:
		return 0
	case isa.MODE_VAL, isa.MODE_UNRESOLVED_VAL:
		return 1
	case isa.MODE_ADD, isa.MODE_REL_ADD, isa.MODE_UNRESOLVED_ADD:
		return 2
	}
	return 0
}

func (o op) unresolved() bool {
	return o.mode == isa.MODE_UNRESOLVED_VAL || o.mode == isa.MODE_UNRESOLVED_ADD
}
