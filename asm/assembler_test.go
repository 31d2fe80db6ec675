package asm

import (
	"bytes"
	"errors"
	"testing"
)

func assembleBytes(t *testing.T, src string) []byte {
	t.Helper()
	out, err := Assemble(src)
	if err != nil {
		t.Fatalf("Assemble(%q): unexpected error: %v", src, err)
	}
	return out
}

func TestScenarios(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want []byte
	}{
		{"immediate value", "\tLDA #$05\n", []byte{0x05, 0x05}},
		{"immediate address", "\tLDA $1234\n", []byte{0x1A, 0x12, 0x34}},
		{"constant immediate", "CONST = $42\n\tLDA #CONST\n", []byte{0x05, 0x42}},
		{"org then label", "\t.org $7FFF\nSTART:\n\tJMP START\n", []byte{0x15, 0x7F, 0xFF}},
		{"forward reference relative", "\tLDA label,x\nlabel:\n\tNOP\n", []byte{0x1D, 0x00, 0x03, 0x00}},
		{"high byte of label", "\t.org $1234\n\tLDA #<label\nlabel:\n", []byte{0x05, 0x12}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := assembleBytes(t, c.src)
			if !bytes.Equal(got, c.want) {
				t.Errorf("got % X, want % X", got, c.want)
			}
		})
	}
}

func TestUnknownOpcode(t *testing.T) {
	_, err := Assemble("\tFOO #1\n")
	var aerr *Error
	if !errors.As(err, &aerr) || aerr.Kind != UnknownOpcodeError {
		t.Fatalf("got %v, want UnknownOpcodeError", err)
	}
}

func TestUnresolvedSymbol(t *testing.T) {
	_, err := Assemble("\tJMP nowhere\n")
	var aerr *Error
	if !errors.As(err, &aerr) || aerr.Kind != UnresolvedSymbolError {
		t.Fatalf("got %v, want UnresolvedSymbolError", err)
	}
}

func TestRedefinition(t *testing.T) {
	_, err := Assemble("FOO = $1\nFOO:\n")
	var aerr *Error
	if !errors.As(err, &aerr) || aerr.Kind != RedefinitionError {
		t.Fatalf("got %v, want RedefinitionError", err)
	}
}

func TestImmediateTooLarge(t *testing.T) {
	_, err := Assemble("BIG = $1234\n\tLDA #BIG\n")
	var aerr *Error
	if !errors.As(err, &aerr) || aerr.Kind != ImmediateTooLargeError {
		t.Fatalf("got %v, want ImmediateTooLargeError", err)
	}
}

func TestMissingArgument(t *testing.T) {
	_, err := Assemble("\tADD\n")
	var aerr *Error
	if !errors.As(err, &aerr) || aerr.Kind != MissingArgumentError {
		t.Fatalf("got %v, want MissingArgumentError", err)
	}
}

func TestNotImplementedDirective(t *testing.T) {
	_, err := Assemble("\t.db 1,2,3\n")
	var aerr *Error
	if !errors.As(err, &aerr) || aerr.Kind != NotImplementedError {
		t.Fatalf("got %v, want NotImplementedError", err)
	}
}

func TestIncbinMissingFile(t *testing.T) {
	_, err := Assemble("\t.incbin \"/nonexistent/path/does/not/exist.bin\"\n")
	var aerr *Error
	if !errors.As(err, &aerr) || aerr.Kind != IncludeError {
		t.Fatalf("got %v, want IncludeError", err)
	}
}

func TestNoOperandOpcode(t *testing.T) {
	got := assembleBytes(t, "\tNOP\n\tRET\n")
	want := []byte{0x00, 0x17}
	if !bytes.Equal(got, want) {
		t.Errorf("got % X, want % X", got, want)
	}
}

func TestBinaryLiteral(t *testing.T) {
	got := assembleBytes(t, "\tLDA #%00000101\n")
	want := []byte{0x05, 0x05}
	if !bytes.Equal(got, want) {
		t.Errorf("got % X, want % X", got, want)
	}
}

func TestCommentsAndBlankLines(t *testing.T) {
	got := assembleBytes(t, "; a comment\n\n\tNOP ; trailing comment\n\n")
	want := []byte{0x00}
	if !bytes.Equal(got, want) {
		t.Errorf("got % X, want % X", got, want)
	}
}
