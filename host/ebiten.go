// Package host adapts machine.Bus to a real window. The core never
// imports ebiten directly; Ebiten is the adapter on that boundary,
// and cmd/emu only hands it to ebiten.RunGame.
package host

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/duo8vm/duo8/machine"
)

// key maps a CONTROLLER0/1 bit to the key that sets it, per the
// fixed keyboard layout: arrows for the D-pad, V/C/F/D for A/B/X/Y,
// E/R for select/start, S/W/G/T for L1/L2/R1/R2.
type key struct {
	ebitenKey ebiten.Key
	byteIndex int // 0 or 1, which CONTROLLER0 shadow byte
	bit       uint8
}

var keymap = []key{
	{ebiten.KeyDown, 0, 0},
	{ebiten.KeyRight, 0, 1},
	{ebiten.KeyLeft, 0, 2},
	{ebiten.KeyUp, 0, 3},
	{ebiten.KeyD, 0, 4}, // Y
	{ebiten.KeyF, 0, 5}, // X
	{ebiten.KeyC, 0, 6}, // B
	{ebiten.KeyV, 0, 7}, // A

	{ebiten.KeyR, 1, 0}, // start
	{ebiten.KeyE, 1, 1}, // select
	{ebiten.KeyG, 1, 2}, // R1
	{ebiten.KeyT, 1, 3}, // R2
	{ebiten.KeyS, 1, 4}, // L1
	{ebiten.KeyW, 1, 5}, // L2
}

// Ebiten drives a real window for a machine.Bus. It implements both
// machine.Display (called from the emulation goroutine) and
// ebiten.Game (called from ebiten's own goroutine); Draw only ever
// reads the last frame Present wrote, so the two don't need to
// coordinate beyond that.
type Ebiten struct {
	pixels []uint32
	img    *ebiten.Image
}

// NewEbiten opens a window sized to the duo8 screen resolution, scaled
// up for visibility.
func NewEbiten() *Ebiten {
	ebiten.SetWindowSize(machine.SCR_WIDTH*2, machine.SCR_HEIGHT*2)
	ebiten.SetWindowTitle("duo8")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	return &Ebiten{
		img: ebiten.NewImage(machine.SCR_WIDTH, machine.SCR_HEIGHT),
	}
}

// Present implements machine.Display.
func (e *Ebiten) Present(pixels []uint32) {
	e.pixels = pixels
}

// PollInput implements machine.Display.
func (e *Ebiten) PollInput() (byte0, byte1 uint8) {
	for _, k := range keymap {
		if !ebiten.IsKeyPressed(k.ebitenKey) {
			continue
		}
		if k.byteIndex == 0 {
			byte0 |= 1 << k.bit
		} else {
			byte1 |= 1 << k.bit
		}
	}
	return byte0, byte1
}

// Layout implements ebiten.Game. Returning the fixed resolution
// forces ebiten to scale the display rather than resize the
// framebuffer when the window changes.
func (e *Ebiten) Layout(outsideWidth, outsideHeight int) (int, int) {
	return machine.SCR_WIDTH, machine.SCR_HEIGHT
}

// Draw implements ebiten.Game.
func (e *Ebiten) Draw(screen *ebiten.Image) {
	if e.pixels == nil {
		return
	}
	for y := 0; y < machine.SCR_HEIGHT; y++ {
		for x := 0; x < machine.SCR_WIDTH; x++ {
			p := e.pixels[y*machine.SCR_WIDTH+x]
			screen.Set(x, y, color.RGBA{
				R: uint8(p >> 24),
				G: uint8(p >> 16),
				B: uint8(p >> 8),
				A: uint8(p),
			})
		}
	}
}

// Update implements ebiten.Game. The emulation runs on its own
// goroutine (see cmd/emu), so Update has nothing to do but is
// required by the interface.
func (e *Ebiten) Update() error {
	return nil
}
