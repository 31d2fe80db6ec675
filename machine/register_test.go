package machine

import "testing"

func TestLatchedRegWritesHighThenLow(t *testing.T) {
	r := newLatchedReg()
	r.Write(0x12)
	r.Write(0x34)
	if r.Get() != 0x1234 {
		t.Errorf("Get() = 0x%04x, want 0x1234", r.Get())
	}
}

func TestLatchedRegTogglesAcrossPairs(t *testing.T) {
	r := newLatchedReg()
	r.Write(0xAA)
	r.Write(0xBB)
	r.Write(0xCC)
	r.Write(0xDD)
	if r.Get() != 0xCCDD {
		t.Errorf("Get() = 0x%04x, want 0xCCDD", r.Get())
	}
}

func TestLatchedRegInc(t *testing.T) {
	r := newLatchedReg()
	r.Write(0x00)
	r.Write(0xFF)
	r.Inc()
	if r.Get() != 0x0100 {
		t.Errorf("Get() = 0x%04x, want 0x0100", r.Get())
	}
}
