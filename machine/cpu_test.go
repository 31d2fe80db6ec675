package machine

import (
	"testing"

	"github.com/duo8vm/duo8/isa"
)

func newTestBus() *Bus {
	return New(&nullDisplay{})
}

type nullDisplay struct{}

func (nullDisplay) Present(pixels []uint32)          {}
func (nullDisplay) PollInput() (byte0, byte1 uint8) { return 0, 0 }

func TestLoadImmediateAndTerminate(t *testing.T) {
	b := newTestBus()
	b.LoadROM([]byte{0x05, 0x05, 0x19, 0x01})

	for b.Step() {
	}

	if b.cpu.a != 5 {
		t.Errorf("A = %d, want 5", b.cpu.a)
	}
	if !b.cpu.terminated() {
		t.Error("expected TERMINATE flag set")
	}
}

func TestAddOverflowWrapsAndSetsFlags(t *testing.T) {
	b := newTestBus()
	b.LoadROM([]byte{0x05, 0xFF, 0x07, 0x01})

	b.Step() // LDA #$FF
	b.Step() // ADD #1

	if b.cpu.a != 0 {
		t.Errorf("A = %d, want 0", b.cpu.a)
	}
	if b.cpu.flags&FLAG_ZERO == 0 {
		t.Error("expected ZERO flag set")
	}
	if b.cpu.flags&FLAG_OVERFLOW == 0 {
		t.Error("expected OVERFLOW flag set")
	}
}

// TestCallReturnRoundTrips places CAL $8002 at the reset vector so
// that it both jumps to, and pushes a return address of, 0x8002 (the
// byte after the CAL); the RET sitting right there must land back on
// the same address.
func TestCallReturnRoundTrips(t *testing.T) {
	b := newTestBus()
	b.LoadROM([]byte{isa.OP_CAL, 0x80, 0x02, isa.OP_RET})
	b.cpu.pc = ROM_START

	b.Step() // CAL
	if b.cpu.pc != 0x8002 {
		t.Fatalf("after CAL, PC = 0x%04x, want 0x8002", b.cpu.pc)
	}
	b.Step() // RET
	if b.cpu.pc != 0x8002 {
		t.Fatalf("after RET, PC = 0x%04x, want 0x8002", b.cpu.pc)
	}
}

func TestLDARelativeX(t *testing.T) {
	b := newTestBus()
	b.cpu.x = 2
	b.ram[0x0012] = 0x99
	b.LoadROM([]byte{isa.OP_LDA_REL_X, 0x00, 0x10})
	b.cpu.pc = ROM_START

	b.Step()
	if b.cpu.a != 0x99 {
		t.Errorf("A = 0x%02x, want 0x99", b.cpu.a)
	}
}

func TestShiftConsumesOperandByte(t *testing.T) {
	b := newTestBus()
	b.cpu.a = 0x01
	b.LoadROM([]byte{isa.OP_SAL, 3})
	b.cpu.pc = ROM_START

	b.Step()
	if b.cpu.a != 0x08 {
		t.Errorf("A = 0x%02x, want 0x08 (1 << 3)", b.cpu.a)
	}
}

func TestStackPushPopRoundTrips(t *testing.T) {
	b := newTestBus()
	b.cpu.a = 0x77
	b.cpu.sp = 0x10

	b.cpu.PUA(0)
	b.cpu.a = 0
	b.cpu.PPA(0)

	if b.cpu.a != 0x77 {
		t.Errorf("A = 0x%02x, want 0x77", b.cpu.a)
	}
	if b.cpu.sp != 0x10 {
		t.Errorf("SP = 0x%02x, want 0x10 (balanced push/pop)", b.cpu.sp)
	}
}
