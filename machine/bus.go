// Package machine implements the duo8 memory bus, CPU core and PPU:
// the running half of the toolchain, as opposed to asm's assembler.
package machine

import (
	"context"
	"fmt"
	"math"
	"os"
	"os/signal"
	"syscall"
)

// Address map. See the GPU register layout comments in ppu.go for the
// bit-level meaning of GPU_CTRL and friends.
const (
	RAM_START = 0x0000
	RAM_SIZE  = 0x0800 // plain RAM below this address

	STACK_START = 0x0900 // 0x0100 bytes, grows downward
	GPU_CTRL    = 0x0901
	GPU_VBLANK  = 0x0902
	CONTROLLER0 = 0x0903 // 2 bytes: %abxyulrd, %00l2l1r2r1selectstart
	CONTROLLER1 = 0x0905 // 2 bytes, same layout; not driven by any Display today
	PALETTE_ST  = 0x0907
	PALETTE_DT  = 0x0908
	SPRTEX_P    = 0x0909 // 2 bytes
	BKGTEX_P    = 0x090B // 2 bytes

	BKG_PAL_MAP = 0x2E98 // 0x168 bytes
	BKG_TEX_MAP = 0x3000 // 0x3C0 bytes; also covers BKG_PALETTE and SPR_PALETTE below
	BKG_PALETTE = 0x33C0 // 0x20 bytes
	SPR_PALETTE = 0x33E0 // 0x20 bytes
	SCROLL_X    = 0x3400
	SCROLL_Y    = 0x3401

	ROM_START     = 0x7FFF
	ROM_PAGE_SIZE = 0x8000
)

// Bus owns the full 64K address space and dispatches every access to
// plain RAM, the GPU's memory-mapped registers, or the paged
// cartridge window.
type Bus struct {
	ram [0x10000]uint8

	cartPage   uint8
	cartBuffer []uint8

	cpu *CPU
	gpu *GPU

	display Display
}

// New wires a Bus to a Display. The returned Bus has no program
// loaded; call LoadROM before Run.
func New(d Display) *Bus {
	b := &Bus{display: d}
	b.cpu = newCPU(b)
	b.gpu = newGPU(b)
	return b
}

// Read dispatches a single memory-mapped read.
func (b *Bus) Read(addr uint16) uint8 {
	return b.access(false, addr, 0)
}

// Write dispatches a single memory-mapped write.
func (b *Bus) Write(addr uint16, val uint8) {
	b.access(true, addr, val)
}

// access implements the full address decode. It intentionally
// mirrors the reference decoder's control flow, anomalies included:
// PALETTE_ST and PALETTE_DT treat every access as a write (their
// comments call this "reads turn to writes"), and GPU_VBLANK /
// CONTROLLER0-1 always return their current value regardless of
// mode ("writes turn to reads"). These are not bugs to paper over;
// nothing in the ISA relies on the unused direction working
// differently, and preserving them keeps the bus byte-for-byte
// compatible with hand-assembled ROMs that poke these ports
// directly.
func (b *Bus) access(write bool, addr uint16, val uint8) uint8 {
	switch {
	case addr < RAM_SIZE,
		addr >= BKG_PAL_MAP && addr < BKG_TEX_MAP,
		addr >= BKG_TEX_MAP && addr < SCROLL_X,
		addr >= SCROLL_X && addr <= SCROLL_Y:
		if write {
			b.ram[addr] = val
			return 0
		}
		return b.ram[addr]

	case addr == GPU_CTRL:
		if write {
			b.gpu.writeCtrl(val)
			return 0
		}
		return b.gpu.ctrl

	case addr == GPU_VBLANK:
		return b.gpu.vblankByte()

	case addr >= CONTROLLER0 && addr <= CONTROLLER1+1:
		return b.ram[addr]

	case addr >= ROM_START:
		if b.cartPage == 0 {
			return b.ram[addr]
		}
		off := int(addr) + ROM_PAGE_SIZE*(int(b.cartPage)-1)
		if off < 0 || off >= len(b.cartBuffer) {
			return 0
		}
		return b.cartBuffer[off]

	case addr == PALETTE_ST:
		b.gpu.paletteIndex.Write(val)
		return 0

	case addr == PALETTE_DT:
		idx := b.gpu.paletteIndex.Get()
		b.gpu.paletteIndex.Inc()
		b.access(true, idx, val)
		return 0

	case addr == SPRTEX_P:
		b.gpu.sprtexP.Write(val)
		return 0

	case addr == BKGTEX_P:
		b.gpu.bkgtexP.Write(val)
		return 0

	// The rest of the stack page (everything in STACK_START's 256
	// bytes not claimed by one of the named registers above) backs
	// push/pop as plain storage.
	case addr >= STACK_START && addr <= STACK_START+0xFF:
		if write {
			b.ram[addr] = val
			return 0
		}
		return b.ram[addr]
	}

	return 0
}

// SetCartPage selects which 0x8000-byte window of the cartridge
// buffer is visible at ROM_START when paging is active (cartPage !=
// 0): address A reads buffer offset A + 0x8000*(page-1). Page 0 means "read the image that was loaded directly into
// RAM", matching LoadROM's behavior for cartridges that fit in a
// single page.
func (b *Bus) SetCartPage(page uint8) {
	b.cartPage = page
}

func (b *Bus) CartPage() uint8 {
	return b.cartPage
}

// Step executes exactly one CPU instruction and ticks the GPU the
// corresponding number of pixel-clocks (three GPU ticks per CPU
// cycle). It returns false once the CPU has executed a terminating
// INT.
func (b *Bus) Step() bool {
	cycles := b.cpu.step()
	for i := uint8(0); i < cycles; i++ {
		b.gpu.tick()
		b.gpu.tick()
		b.gpu.tick()
	}
	return !b.cpu.terminated()
}

// Run executes instructions until the CPU halts or ctx is canceled.
func (b *Bus) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
			if !b.Step() {
				return
			}
		}
	}
}

func readAddress(prompt string) uint16 {
	var a uint16
	fmt.Printf(prompt)
	fmt.Scanf("%04x\n", &a)
	return a
}

func readPage(prompt string) uint8 {
	var p uint8
	fmt.Printf(prompt)
	fmt.Scanf("%d\n", &p)
	return p
}

// BIOS is an interactive breakpoint/step/memory-dump debugger over
// the running machine, entered via cmd/emu's -bios flag. Its (G)age
// command switches the visible cartridge page through SetCartPage.
func (b *Bus) BIOS(ctx context.Context) {
	sigQuit := make(chan os.Signal, 1)
	signal.Notify(sigQuit, syscall.SIGINT, syscall.SIGTERM)

	breaks := make(map[uint16]struct{})

	for {
		fmt.Printf("%s\n\n", b.cpu)
		fmt.Println("(B)reak - add breakpoint")
		fmt.Println("(C)lear - clear breakpoints")
		fmt.Println("(R)un - run to completion")
		fmt.Println("(S)tep - step the cpu one instruction")
		fmt.Println("R(e)set - hit the reset button")
		fmt.Println("(M)emory - select a memory range to display")
		fmt.Println("S(t)ack - show last 3 items on the stack")
		fmt.Println("(P)C - set program counter")
		fmt.Println("PP(U) - show GPU status")
		fmt.Printf("(G)age - switch cartridge page (current: %d)\n", b.CartPage())
		fmt.Println("(Q)uit - shutdown the machine")
		fmt.Printf("Choice: ")

		var in rune
		fmt.Scanf("%c\n", &in)

		switch in {
		case 'b', 'B':
			breaks[readAddress("Breakpoint (eg: ff15): ")] = struct{}{}
		case 'c', 'C':
			breaks = make(map[uint16]struct{})
		case 'p', 'P':
			b.cpu.pc = readAddress("Set PC to what address (eg: 7fff): ")
		case 'g', 'G':
			b.SetCartPage(readPage("Switch to cartridge page (eg: 1): "))
		case 'q', 'Q':
			return
		case 'r', 'R':
			cctx, cancel := context.WithCancel(ctx)
			go func(ctx context.Context) {
				for {
					select {
					case <-sigQuit:
						cancel()
					case <-ctx.Done():
						return
					}
				}
			}(cctx)

			for {
				select {
				case <-cctx.Done():
					cancel()
					return
				default:
					if !b.Step() {
						cancel()
						return
					}
					if _, ok := breaks[b.cpu.pc]; ok {
						fmt.Printf("Hit breakpoint at 0x%04x\n", b.cpu.pc)
						cancel()
						return
					}
				}
			}
		case 's', 'S':
			b.Step()
		case 't', 'T':
			fmt.Println()
			i := 0
			for {
				m := b.cpu.stackAddr() + uint16(i)
				fmt.Printf("0x%04x: 0x%02x ", m, b.Read(m))
				if m == 0x09ff || i == 2 {
					break
				}
				i += 1
			}
			fmt.Printf("\n\n")
		case 'e', 'E':
			b.cpu.reset()
		case 'u', 'U':
			fmt.Printf("%s\n\n", b.gpu)
		case 'm', 'M':
			fmt.Println()
			low := readAddress("Low address (eg f00d): ")
			high := readAddress("High address (eg beef): ")
			fmt.Println()

			x := 1
			i := low
			for {
				fmt.Printf("0x%04x: 0x%02x ", i, b.Read(i))
				if x%5 == 0 {
					fmt.Println()
				}
				if i == high || i == math.MaxUint16 {
					break
				}
				x += 1
				i += 1
			}
			fmt.Printf("\n\n")
		}
	}
}
