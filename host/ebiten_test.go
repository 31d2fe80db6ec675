package host

import (
	"testing"

	"github.com/duo8vm/duo8/machine"
)

var _ machine.Display = (*Ebiten)(nil)

// keymap assigns each controller bit to exactly one key, with no byte
// index or bit position reused across entries in the same shadow byte.
func TestKeymapHasNoDuplicateBits(t *testing.T) {
	seen := map[[2]uint8]bool{}
	for _, k := range keymap {
		slot := [2]uint8{uint8(k.byteIndex), k.bit}
		if seen[slot] {
			t.Errorf("duplicate keymap entry for byte %d bit %d", k.byteIndex, k.bit)
		}
		seen[slot] = true
	}
}

func TestPresentStoresPixelsForDraw(t *testing.T) {
	e := &Ebiten{}
	frame := make([]uint32, machine.SCR_WIDTH*machine.SCR_HEIGHT)
	e.Present(frame)
	if e.pixels == nil {
		t.Fatal("Present did not retain the frame")
	}
}
