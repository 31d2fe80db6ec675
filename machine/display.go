package machine

// Display is the thin boundary between the machine and whatever puts
// pixels on a screen and reads a keypad. The core never imports a
// windowing library directly; host.Ebiten and host.Headless are its
// only two implementations.
type Display interface {
	// Present is called once per frame with a SCR_WIDTH*SCR_HEIGHT
	// slice of packed RGBA8888 pixels, in row-major order.
	Present(pixels []uint32)

	// PollInput returns the current state of controller 0 as the
	// two shadow bytes described in the CONTROLLER0 bit layout:
	// byte0 bit0..7 = down,right,left,up,y,x,b,a
	// byte1 bit0..5 = start,select,r1,r2,l1,l2
	PollInput() (byte0, byte1 uint8)
}
