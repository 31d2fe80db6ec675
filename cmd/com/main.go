// Command com is the duo8 assembler: it compiles source text to a ROM
// image, or decompiles a ROM image back to mnemonic text.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/duo8vm/duo8/asm"
	"github.com/duo8vm/duo8/disasm"
)

var (
	compileSrc   = flag.String("c", "", "Source file to compile.")
	decompileSrc = flag.String("d", "", "ROM file to disassemble.")
	output       = flag.String("o", "", "Output file path.")
)

func main() {
	log.SetFlags(0)
	flag.Parse()

	switch {
	case *compileSrc != "":
		out := *output
		if out == "" {
			out = "out.bin"
		}
		if err := compile(*compileSrc, out); err != nil {
			log.Fatal(err)
		}
	case *decompileSrc != "":
		out := *output
		if out == "" {
			out = "out.asm"
		}
		if err := decompile(*decompileSrc, out); err != nil {
			log.Fatal(err)
		}
	default:
		log.Fatal("usage: com [-c source | -d rom] [-o output]")
	}
}

func compile(srcPath, outPath string) error {
	src, err := os.ReadFile(srcPath)
	if err != nil {
		return err
	}
	rom, err := asm.Assemble(string(src))
	if err != nil {
		return err
	}
	return os.WriteFile(outPath, rom, 0644)
}

func decompile(romPath, outPath string) error {
	rom, err := os.ReadFile(romPath)
	if err != nil {
		return err
	}
	text := disasm.Disassemble(rom)
	return os.WriteFile(outPath, []byte(text), 0644)
}
