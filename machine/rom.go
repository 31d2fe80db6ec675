package machine

import (
	"fmt"
	"os"
)

// LoadROM loads a flat program image into the cartridge address
// space. Images up to one page (ROM_PAGE_SIZE bytes) are written
// directly into RAM at ROM_START so cartPage 0 can serve them with a
// plain RAM read; anything larger has its first page copied the same
// way and the remainder stashed in the cart buffer for SetCartPage to
// window into.
func (b *Bus) LoadROM(data []byte) {
	if len(data) > ROM_PAGE_SIZE {
		for i := 0; i < ROM_PAGE_SIZE; i++ {
			b.ram[ROM_START+i] = data[i]
		}
		b.cartBuffer = make([]uint8, len(data)-ROM_PAGE_SIZE)
		copy(b.cartBuffer, data[ROM_PAGE_SIZE:])
		return
	}

	for i, v := range data {
		b.ram[ROM_START+i] = v
	}
}

// LoadROMFile reads path and loads it via LoadROM.
func LoadROMFile(b *Bus, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("couldn't read ROM file %q: %w", path, err)
	}
	b.LoadROM(data)
	return nil
}
