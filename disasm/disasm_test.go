package disasm

import "testing"

func TestDisassemble(t *testing.T) {
	cases := []struct {
		name string
		rom  []byte
		want string
	}{
		{"immediate value", []byte{0x05, 0x05}, "   LDA #0x05\n"},
		{"immediate address", []byte{0x1A, 0x12, 0x34}, "   LDA 1234\n"},
		{"relative x", []byte{0x1D, 0x00, 0x03}, "   LDA 0003,x\n"},
		{"relative y", []byte{0x1E, 0x00, 0x03}, "   LDA 0003,y\n"},
		{"no operand", []byte{0x00}, "   NOP \n"},
		{"two instructions", []byte{0x00, 0x17}, "   NOP \n   RET \n"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := Disassemble(c.rom)
			if got != c.want {
				t.Errorf("got %q, want %q", got, c.want)
			}
		})
	}
}

func TestDisassembleSkipsUnknownOpcode(t *testing.T) {
	got := Disassemble([]byte{0xFF, 0x00})
	want := "   NOP \n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
