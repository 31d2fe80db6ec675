// Package disasm turns a duo8 ROM image back into its textual mnemonic
// form, one instruction per line.
package disasm

import (
	"fmt"
	"strings"

	"github.com/duo8vm/duo8/isa"
)

// Disassemble walks rom byte-for-byte and formats each recognized
// instruction: three-space indent, uppercase mnemonic, a space, then
// the operand. VAL-mode operands are prefixed "#0x"; ADD-mode
// operands are printed as bare concatenated hex; the two relative
// LDA variants append ",x"/",y". Bytes that don't land on a known
// opcode are skipped, matching the reference decompiler's bounds
// check rather than erroring.
func Disassemble(rom []byte) string {
	var out strings.Builder
	for i := 0; i < len(rom); {
		op := rom[i]
		rec, ok := isa.Lookup(op)
		if !ok {
			i++
			continue
		}

		out.WriteString("   ")
		out.WriteString(rec.Name)
		out.WriteByte(' ')

		if rec.Mode == isa.MODE_VAL {
			out.WriteString("#0x")
		}
		for a := uint8(0); a < rec.Bytes && i+int(a)+1 < len(rom); a++ {
			fmt.Fprintf(&out, "%02x", rom[i+int(a)+1])
		}

		switch op {
		case isa.OP_LDA_REL_X:
			out.WriteString(",x")
		case isa.OP_LDA_REL_Y:
			out.WriteString(",y")
		}

		out.WriteByte('\n')
		i += 1 + int(rec.Bytes)
	}
	return out.String()
}
