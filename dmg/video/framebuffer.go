package video

// GBColor is one of the four monochrome DMG shades, pre-packed as opaque
// RGBA so a FrameBuffer can be handed straight to anything that wants a
// byte-per-channel image (the terminal backend, PNG snapshotting in tests).
type GBColor uint32

const (
	BlackColor     GBColor = 0x000000FF
	DarkGreyColor  GBColor = 0x4C4C4CFF
	LightGreyColor GBColor = 0x989898FF
	WhiteColor     GBColor = 0xFFFFFFFF
)

// ByteToColor maps a 2-bit palette output (as produced by BGP/OBP0/OBP1) to
// its displayable shade.
func ByteToColor(value byte) GBColor {
	switch value {
	case 0:
		return BlackColor
	case 1:
		return DarkGreyColor
	case 2:
		return LightGreyColor
	case 3:
		return WhiteColor
	default:
		return BlackColor
	}
}

// shadeRank orders a color darkest-first (0) to lightest-last (3); it's the
// index a renderer uses when it wants "how dark" rather than the raw RGBA
// value, e.g. to pick a glyph out of a darkest-first character ramp.
func (c GBColor) shadeRank() int {
	switch c {
	case BlackColor:
		return 0
	case DarkGreyColor:
		return 1
	case LightGreyColor:
		return 2
	default:
		return 3
	}
}

const (
	FramebufferWidth  = 160
	FramebufferHeight = 144
	FramebufferSize   = FramebufferWidth * FramebufferHeight
)

// FrameBuffer is one rendered 160x144 DMG frame: a flat grid of shades the
// GPU fills in scanline by scanline and a backend reads back once a frame's
// worth of cycles has run.
type FrameBuffer struct {
	pixels [FramebufferSize]GBColor
}

// NewFrameBuffer creates an all-black FrameBuffer.
func NewFrameBuffer() *FrameBuffer {
	fb := &FrameBuffer{}
	fb.Reset()
	return fb
}

func (fb *FrameBuffer) index(x, y uint) uint { return y*FramebufferWidth + x }

// At returns the shade at (x, y).
func (fb *FrameBuffer) At(x, y uint) GBColor {
	return fb.pixels[fb.index(x, y)]
}

// Set writes the shade at (x, y).
func (fb *FrameBuffer) Set(x, y uint, color GBColor) {
	fb.pixels[fb.index(x, y)] = color
}

// ShadeRank returns (x, y)'s darkness rank (0 darkest .. 3 lightest),
// handy for mapping straight into a darkest-first glyph/color ramp.
func (fb *FrameBuffer) ShadeRank(x, y uint) int {
	return fb.At(x, y).shadeRank()
}

// Pixels exposes the backing grid in row-major order, e.g. for blitting or
// for hashing/snapshotting a whole frame in tests.
func (fb *FrameBuffer) Pixels() []GBColor {
	return fb.pixels[:]
}

// Reset clears the frame to black.
func (fb *FrameBuffer) Reset() {
	for i := range fb.pixels {
		fb.pixels[i] = BlackColor
	}
}

// Grayscale renders the frame as one palette-index byte (0-3, black to
// white) per pixel - a compact, RGBA-encoding-independent representation
// used to hash and compare frames in the golden-frame regression tests.
func (fb *FrameBuffer) Grayscale() []byte {
	out := make([]byte, len(fb.pixels))
	for i, c := range fb.pixels {
		out[i] = byte(c.shadeRank())
	}
	return out
}
