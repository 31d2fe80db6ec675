// Package isa describes the duo8 instruction set: the opcode byte
// values, their addressing modes, operand widths and cycle costs. It
// has no notion of assembling or executing anything; asm and machine
// both build on this table.
package isa

import "fmt"

// Addressing modes. A mnemonic like LDA exists under several opcode
// bytes, one per mode; the assembler picks the byte from the operand
// syntax, the Opcode record only ever carries the resolved mode.
const (
	MODE_NONE = iota // no operand
	MODE_VAL         // 8-bit immediate value
	MODE_ADD         // 16-bit immediate address
	MODE_REL_ADD     // 16-bit address, relative to X or Y

	// Pre-resolution modes. The first pass emits these when an
	// operand names a symbol that hasn't been defined yet; the
	// second pass rewrites them to MODE_VAL, or to the opcode's own
	// address mode (MODE_ADD or MODE_REL_ADD), once every symbol is
	// known.
	MODE_UNRESOLVED_VAL
	MODE_UNRESOLVED_ADD
)

var modeNames = map[uint8]string{
	MODE_NONE:    "NONE",
	MODE_VAL:     "VAL",
	MODE_ADD:     "ADD",
	MODE_REL_ADD: "REL_ADD",
}

// Instruction mnemonics, grouped as in the original instruction table.
const (
	NOP = iota
	ADX
	ADY
	SUX
	SUY
	LDA
	STA
	ADD
	SUB
	INA
	INX
	INY
	DEA
	DEX
	DEY
	PUA
	PPA
	CMP
	BIE
	BIN
	BIP
	JMP
	CAL
	RET
	XOR
	INT
	LDX
	LDY
	TXA
	TYA
	AND
	INV
	SAL
	SAR
	ROR
	ROL
	TAX
	TAY
	TXY
	TYX
	CMX
	CMY
	BNE
	AOR
)

// Opcode bytes. LDA has four: one per addressing mode the assembler
// can rewrite it to.
const (
	OP_NOP uint8 = 0x00

	OP_ADX     uint8 = 0x01
	OP_ADY     uint8 = 0x02
	OP_SUX     uint8 = 0x03
	OP_SUY     uint8 = 0x04
	OP_LDA_VAL uint8 = 0x05
	OP_STA     uint8 = 0x06
	OP_ADD     uint8 = 0x07
	OP_SUB     uint8 = 0x08

	OP_INA uint8 = 0x09
	OP_INX uint8 = 0x0A
	OP_INY uint8 = 0x0B
	OP_DEA uint8 = 0x0C
	OP_DEX uint8 = 0x0D
	OP_DEY uint8 = 0x0E
	OP_PUA uint8 = 0x0F
	OP_PPA uint8 = 0x10

	OP_CMP uint8 = 0x11
	OP_BIE uint8 = 0x12
	OP_BIN uint8 = 0x13
	OP_BIP uint8 = 0x14
	OP_JMP uint8 = 0x15
	OP_CAL uint8 = 0x16
	OP_RET uint8 = 0x17
	OP_XOR uint8 = 0x18

	OP_INT         uint8 = 0x19
	OP_LDA_ADD     uint8 = 0x1A
	OP_LDX         uint8 = 0x1B
	OP_LDY         uint8 = 0x1C
	OP_LDA_REL_X   uint8 = 0x1D
	OP_LDA_REL_Y   uint8 = 0x1E
	OP_TXA         uint8 = 0x1F
	OP_TYA         uint8 = 0x20

	OP_AND uint8 = 0x21
	OP_INV uint8 = 0x22
	OP_SAL uint8 = 0x23
	OP_SAR uint8 = 0x24
	OP_ROR uint8 = 0x25
	OP_ROL uint8 = 0x26
	OP_TAX uint8 = 0x27
	OP_TAY uint8 = 0x28

	OP_TXY uint8 = 0x29
	OP_TYX uint8 = 0x2A
	OP_CMX uint8 = 0x2B
	OP_CMY uint8 = 0x2C
	OP_BNE uint8 = 0x2D
	OP_AOR uint8 = 0x2E
)

// Opcode describes one opcode byte: its mnemonic, addressing mode,
// the number of operand bytes that follow it in a ROM image, and the
// number of machine cycles it costs to execute.
type Opcode struct {
	Inst   uint8
	Name   string
	Mode   uint8
	Bytes  uint8 // operand bytes only; does not include the opcode byte itself
	Cycles uint8
}

func (o Opcode) String() string {
	return fmt.Sprintf("{%s, %s}", o.Name, modeNames[o.Mode])
}

// Table maps every defined opcode byte to its Opcode record.
//
// SAL and SAR are MODE_NONE but still consume one operand byte: that
// mismatch is inherited as-is rather than normalized away, since
// nothing in the instruction set actually reads the value SAL/SAR
// leave in that byte as an addressing operand.
var Table = map[uint8]Opcode{
	OP_NOP: {NOP, "NOP", MODE_NONE, 0, 2},

	OP_ADX:     {ADX, "ADX", MODE_NONE, 0, 3},
	OP_ADY:     {ADY, "ADY", MODE_NONE, 0, 3},
	OP_SUX:     {SUX, "SUX", MODE_NONE, 0, 3},
	OP_SUY:     {SUY, "SUY", MODE_NONE, 0, 3},
	OP_LDA_VAL: {LDA, "LDA", MODE_VAL, 1, 3},
	OP_STA:     {STA, "STA", MODE_ADD, 2, 3},
	OP_ADD:     {ADD, "ADD", MODE_VAL, 1, 4},
	OP_SUB:     {SUB, "SUB", MODE_VAL, 1, 4},

	OP_INA: {INA, "INA", MODE_NONE, 0, 2},
	OP_INX: {INX, "INX", MODE_NONE, 0, 2},
	OP_INY: {INY, "INY", MODE_NONE, 0, 2},
	OP_DEA: {DEA, "DEA", MODE_NONE, 0, 2},
	OP_DEX: {DEX, "DEX", MODE_NONE, 0, 2},
	OP_DEY: {DEY, "DEY", MODE_NONE, 0, 2},
	OP_PUA: {PUA, "PUA", MODE_NONE, 0, 3},
	OP_PPA: {PPA, "PPA", MODE_NONE, 0, 3},

	OP_CMP: {CMP, "CMP", MODE_VAL, 1, 4},
	OP_BIE: {BIE, "BIE", MODE_ADD, 2, 2},
	OP_BIN: {BIN, "BIN", MODE_ADD, 2, 2},
	OP_BIP: {BIP, "BIP", MODE_ADD, 2, 2},
	OP_JMP: {JMP, "JMP", MODE_ADD, 2, 2},
	OP_CAL: {CAL, "CAL", MODE_ADD, 2, 3},
	OP_RET: {RET, "RET", MODE_NONE, 0, 3},
	OP_XOR: {XOR, "XOR", MODE_VAL, 1, 3},

	OP_INT:       {INT, "INT", MODE_VAL, 1, 2},
	OP_LDA_ADD:   {LDA, "LDA", MODE_ADD, 2, 3},
	OP_LDX:       {LDX, "LDX", MODE_VAL, 1, 3},
	OP_LDY:       {LDY, "LDY", MODE_VAL, 1, 3},
	OP_LDA_REL_X: {LDA, "LDA", MODE_REL_ADD, 2, 4},
	OP_LDA_REL_Y: {LDA, "LDA", MODE_REL_ADD, 2, 4},
	OP_TXA:       {TXA, "TXA", MODE_NONE, 0, 2},
	OP_TYA:       {TYA, "TYA", MODE_NONE, 0, 2},

	OP_AND: {AND, "AND", MODE_VAL, 1, 3},
	OP_INV: {INV, "INV", MODE_NONE, 0, 3},
	OP_SAL: {SAL, "SAL", MODE_NONE, 1, 3},
	OP_SAR: {SAR, "SAR", MODE_NONE, 1, 3},
	OP_ROR: {ROR, "ROR", MODE_NONE, 0, 3},
	OP_ROL: {ROL, "ROL", MODE_NONE, 0, 3},
	OP_TAX: {TAX, "TAX", MODE_NONE, 0, 2},
	OP_TAY: {TAY, "TAY", MODE_NONE, 0, 2},

	OP_TXY: {TXY, "TXY", MODE_NONE, 0, 2},
	OP_TYX: {TYX, "TYX", MODE_NONE, 0, 2},
	OP_CMX: {CMX, "CMX", MODE_VAL, 1, 4},
	OP_CMY: {CMY, "CMY", MODE_VAL, 1, 4},
	OP_BNE: {BNE, "BNE", MODE_ADD, 2, 2},
	OP_AOR: {AOR, "AOR", MODE_VAL, 1, 3},
}

// ByName indexes every opcode byte that implements a given mnemonic.
// LDA has four entries; everything else has exactly one.
var ByName = func() map[string][]uint8 {
	m := make(map[string][]uint8)
	for op, rec := range Table {
		m[rec.Name] = append(m[rec.Name], op)
	}
	return m
}()

// Lookup returns the Opcode record for a raw opcode byte.
func Lookup(op uint8) (Opcode, bool) {
	rec, ok := Table[op]
	return rec, ok
}
