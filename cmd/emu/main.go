// Command emu runs a duo8 ROM against the CPU/PPU emulator, displaying
// output in a window unless -bios drops into the text debug console.
package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/duo8vm/duo8/host"
	"github.com/duo8vm/duo8/machine"
)

var bios = flag.Bool("bios", false, "Drop into the interactive debug console instead of opening a window.")

func main() {
	log.SetFlags(0)
	flag.Parse()

	if flag.NArg() < 1 {
		log.Fatal("usage: emu [-bios] romfile")
	}
	romFile := flag.Arg(0)

	var display machine.Display
	var win *host.Ebiten
	if *bios {
		display = &host.Headless{}
	} else {
		win = host.NewEbiten()
		display = win
	}

	bus := machine.New(display)
	if err := machine.LoadROMFile(bus, romFile); err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if *bios {
		bus.BIOS(ctx)
		return
	}

	go bus.Run(ctx)

	if err := ebiten.RunGame(win); err != nil {
		log.Fatal(err)
	}
}
