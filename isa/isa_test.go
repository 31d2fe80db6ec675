package isa

import "testing"

func TestTableSize(t *testing.T) {
	if got, want := len(Table), 47; got != want {
		t.Errorf("len(Table) = %d, want %d", got, want)
	}
}

func TestLDAVariants(t *testing.T) {
	for _, op := range []uint8{OP_LDA_VAL, OP_LDA_ADD, OP_LDA_REL_X, OP_LDA_REL_Y} {
		rec, ok := Lookup(op)
		if !ok {
			t.Fatalf("Lookup(0x%02x) not found", op)
		}
		if rec.Name != "LDA" {
			t.Errorf("Lookup(0x%02x).Name = %q, want LDA", op, rec.Name)
		}
	}

	names := ByName["LDA"]
	if len(names) != 4 {
		t.Errorf("ByName[LDA] has %d entries, want 4", len(names))
	}
}

func TestModesAndBytes(t *testing.T) {
	tests := []struct {
		op    uint8
		mode  uint8
		bytes uint8
	}{
		{OP_NOP, MODE_NONE, 0},
		{OP_LDA_VAL, MODE_VAL, 1},
		{OP_STA, MODE_ADD, 2},
		{OP_LDA_REL_X, MODE_REL_ADD, 2},
		{OP_CAL, MODE_ADD, 2},
		{OP_RET, MODE_NONE, 0},
		{OP_SAL, MODE_NONE, 1},
		{OP_AOR, MODE_VAL, 1},
	}

	for _, tt := range tests {
		rec, ok := Lookup(tt.op)
		if !ok {
			t.Fatalf("Lookup(0x%02x) not found", tt.op)
		}
		if rec.Mode != tt.mode {
			t.Errorf("0x%02x: Mode = %d, want %d", tt.op, rec.Mode, tt.mode)
		}
		if rec.Bytes != tt.bytes {
			t.Errorf("0x%02x: Bytes = %d, want %d", tt.op, rec.Bytes, tt.bytes)
		}
	}
}

func TestUnknownOpcode(t *testing.T) {
	if _, ok := Lookup(0xFF); ok {
		t.Errorf("Lookup(0xFF) unexpectedly found an entry")
	}
}
