package machine

import "fmt"

// Screen geometry and sprite table shape.
const (
	SCR_WIDTH  = 256
	SCR_HEIGHT = 240

	NUM_SPRITES    = 64
	SPRITE_WIDTH   = 8
	SPRITE_HEIGHT  = 8
	ticksPerFrame  = SCR_WIDTH*SCR_HEIGHT + (SCR_WIDTH*SCR_HEIGHT)/3
)

// vgaPalette is the fixed 64-color RGBA8888 palette every color index
// byte in the background/sprite palettes resolves through.
var vgaPalette = [64]uint32{
	0x464646ff, 0x00065aff, 0x000678ff, 0x020673ff,
	0x35034cff, 0x57000eff, 0x5a0000ff, 0x410000ff,
	0x120200ff, 0x001400ff, 0x001e00ff, 0x001e00ff,
	0x001521ff, 0x000000ff, 0x000000ff, 0x000000ff,
	0x9d9d9dff, 0x004ab9ff, 0x0530e1ff, 0x5718daff,
	0x9f07a7ff, 0xcc0255ff, 0xcf0b00ff, 0xa42300ff,
	0x5c3f00ff, 0x0b5800ff, 0x006600ff, 0x006713ff,
	0x005e6eff, 0x000000ff, 0x000000ff, 0x000000ff,
	0xfeffffff, 0x1f9effff, 0x5376ffff, 0x9865ffff,
	0xfc67ffff, 0xff6cb3ff, 0xff7466ff, 0xff8014ff,
	0xc49a00ff, 0x71b300ff, 0x28c421ff, 0x00c874ff,
	0x00bfd0ff, 0x2b2b2bff, 0x000000ff, 0x000000ff,
	0xfeffffff, 0x9ed5ffff, 0xafc0ffff, 0xd0b8ffff,
	0xfebfffff, 0xffc0e0ff, 0xffc3bdff, 0xffca9cff,
	0xe7d58bff, 0xc5df8eff, 0xa6e6a3ff, 0x94e8c5ff,
	0x92e4ebff, 0xa7a7a7ff, 0x000000ff, 0x000000ff,
}

// defaultBGByIndex maps the low 3 bits of GPU_CTRL to a palette index
// for the default (tile-0) background color.
var defaultBGByIndex = [8]uint8{13, 46, 21, 41, 33, 47, 53, 34}

// GPU is the tick-driven pixel compositor. Every call to tick
// advances exactly one pixel clock; a full frame is ticksPerFrame
// ticks, the final quarter of which (SCR_WIDTH*SCR_HEIGHT/3 ticks
// after the visible ones) is vblank.
type GPU struct {
	bus *Bus

	sdata   uint16 // sprite table base address, derived from ctrl
	vblank  bool
	ticks   uint64
	ctrl    uint8
	defBG   uint8

	paletteIndex *latchedReg
	sprtexP      *latchedReg
	bkgtexP      *latchedReg

	fb [SCR_WIDTH * SCR_HEIGHT]uint32
}

func newGPU(b *Bus) *GPU {
	return &GPU{
		bus:          b,
		sdata:        0x0300,
		defBG:        0x3F,
		paletteIndex: newLatchedReg(),
		sprtexP:      newLatchedReg(),
		bkgtexP:      newLatchedReg(),
	}
}

func (g *GPU) String() string {
	return fmt.Sprintf("ctrl: 0x%02x  sdata: 0x%04x  defaultBG: %d  vblank: %v  tick: %d",
		g.ctrl, g.sdata, g.defBG, g.vblank, g.ticks)
}

func (g *GPU) vblankByte() uint8 {
	if g.vblank {
		return 1
	}
	return 0
}

func (g *GPU) writeCtrl(val uint8) {
	g.ctrl = val
	g.defBG = defaultBGByIndex[val&0x7]
	g.sdata = (uint16(val) << 3) & 0x0700
}

// bit returns bit (7 - index%8) of array[index/8], matching the
// reference's MSB-first bit numbering within a byte.
func bit(array []uint8, index uint32) uint8 {
	b := array[index/8]
	shift := 7 - (index % 8)
	return (b >> shift) & 1
}

// triplet reads 3 consecutive bits starting at a bit offset and packs
// them MSB-first into a value in [0,7], used to index the 3-bit
// background palette map.
func triplet(array []uint8, bitIndex uint32) uint8 {
	return bit(array, bitIndex)<<2 | bit(array, bitIndex+1)<<1 | bit(array, bitIndex+2)
}

// tick advances one pixel clock: during the drawing three-quarters of
// the frame it composites and emits exactly one pixel; during the
// final quarter (vblank) it does nothing but count ticks. At the last
// pixel of a frame it hands the framebuffer to the Display and folds
// the polled controller state back into the CONTROLLER0/1 shadow bytes.
func (g *GPU) tick() {
	g.ticks = (g.ticks + 1) % ticksPerFrame
	g.vblank = g.ticks >= SCR_WIDTH*SCR_HEIGHT

	if g.vblank {
		return
	}

	x := uint8(g.ticks % SCR_WIDTH)
	y := uint8(g.ticks / SCR_WIDTH)

	g.renderPixel(x, y)

	if x == SCR_WIDTH-1 && y == SCR_HEIGHT-1 {
		g.present()
	}
}

func (g *GPU) renderPixel(x, y uint8) {
	b := g.bus

	scrolledX := x - b.ram[SCROLL_X]
	scrolledY := y - b.ram[SCROLL_Y]

	bgX := scrolledX / 8
	bgY := scrolledY / 8
	xOff := scrolledX - bgX*8
	yOff := scrolledY - bgY*8

	tileIndex := b.ram[BKG_TEX_MAP+uint16(bgX)+uint16(bgY)*32]
	palSel := triplet(b.ram[BKG_PAL_MAP:], uint32(bgX+bgY*32)*3) * 4

	var colorIdx uint8
	if tileIndex != 0 {
		texOff := uint16(g.bkgtexP.Get()) + uint16(tileIndex)*16
		colorIdx = b.ram[BKG_PALETTE+uint16(palSel)+
			uint16((b.ram[texOff+uint16(yOff)+0]>>(7-xOff))&1)+
			uint16((b.ram[texOff+uint16(yOff)+8]>>(7-xOff))&1)*2]
	} else {
		colorIdx = g.defBG
	}
	g.putPixel(x, y, colorIdx)

	for i := uint16(0); i < NUM_SPRITES; i++ {
		base := (g.sdata + i*4) % RAM_SIZE
		spX := b.ram[base+0]
		spY := b.ram[base+1]
		spCtrl := b.ram[base+2]
		spTex := b.ram[base+3]

		if spCtrl&1 == 0 {
			continue
		}
		if x < spX || x >= spX+SPRITE_WIDTH || y < spY || y >= spY+SPRITE_HEIGHT {
			continue
		}

		sx, sy := x-spX, y-spY
		if spCtrl&2 != 0 {
			sx = SPRITE_WIDTH - sx - 1
		}
		if spCtrl&4 != 0 {
			sy = SPRITE_HEIGHT - sy - 1
		}

		texOff := uint16(g.sprtexP.Get()) + uint16(spTex)*16
		pc := ((b.ram[texOff+uint16(sy)+0] >> (7 - sx)) & 1) +
			((b.ram[texOff+uint16(sy)+8]>>(7-sx))&1)*2
		if pc == 0 {
			continue
		}
		g.putPixel(x, y, b.ram[SPR_PALETTE+uint16(pc)+uint16((spCtrl>>3)&0x7)*4])
	}
}

func (g *GPU) putPixel(x, y, paletteIdx uint8) {
	g.fb[uint16(y)*SCR_WIDTH+uint16(x)] = vgaPalette[paletteIdx]
}

func (g *GPU) present() {
	if g.bus.display == nil {
		return
	}
	g.bus.display.Present(g.fb[:])

	b0, b1 := g.bus.display.PollInput()
	g.bus.ram[CONTROLLER0] = b0
	g.bus.ram[CONTROLLER0+1] = b1
}
