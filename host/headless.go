package host

// Headless is a machine.Display that counts frames, keeps only the
// last one it was handed, and reports no input. It runs the machine with no display backend at all, for the
// -bios debug REPL and for tests.
type Headless struct {
	Frames int
	Last   []uint32
}

func (h *Headless) Present(pixels []uint32) {
	h.Frames++
	h.Last = pixels
}

func (h *Headless) PollInput() (byte0, byte1 uint8) {
	return 0, 0
}
