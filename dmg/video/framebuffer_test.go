package video

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewFrameBufferIsBlack(t *testing.T) {
	fb := NewFrameBuffer()
	assert.Equal(t, BlackColor, fb.At(0, 0))
	assert.Equal(t, BlackColor, fb.At(FramebufferWidth-1, FramebufferHeight-1))
}

func TestSetAndAtRoundTrip(t *testing.T) {
	fb := NewFrameBuffer()
	fb.Set(10, 20, WhiteColor)
	assert.Equal(t, WhiteColor, fb.At(10, 20))
	// neighboring pixels are unaffected
	assert.Equal(t, BlackColor, fb.At(9, 20))
	assert.Equal(t, BlackColor, fb.At(10, 19))
}

func TestResetClearsToBlack(t *testing.T) {
	fb := NewFrameBuffer()
	fb.Set(5, 5, LightGreyColor)
	fb.Reset()
	assert.Equal(t, BlackColor, fb.At(5, 5))
}

func TestShadeRankOrdersDarkestFirst(t *testing.T) {
	assert.Equal(t, 0, BlackColor.shadeRank())
	assert.Equal(t, 1, DarkGreyColor.shadeRank())
	assert.Equal(t, 2, LightGreyColor.shadeRank())
	assert.Equal(t, 3, WhiteColor.shadeRank())
}

func TestFrameBufferShadeRankMatchesSetColor(t *testing.T) {
	fb := NewFrameBuffer()
	fb.Set(0, 0, DarkGreyColor)
	assert.Equal(t, 1, fb.ShadeRank(0, 0))
}

func TestByteToColorCoversAllPaletteIndices(t *testing.T) {
	assert.Equal(t, BlackColor, ByteToColor(0))
	assert.Equal(t, DarkGreyColor, ByteToColor(1))
	assert.Equal(t, LightGreyColor, ByteToColor(2))
	assert.Equal(t, WhiteColor, ByteToColor(3))
}

func TestGrayscaleMatchesShadeRank(t *testing.T) {
	fb := NewFrameBuffer()
	fb.Set(0, 0, WhiteColor)
	gray := fb.Grayscale()
	assert.Equal(t, byte(3), gray[0])
}

func TestPixelsExposesRowMajorOrder(t *testing.T) {
	fb := NewFrameBuffer()
	fb.Set(1, 0, WhiteColor)
	pixels := fb.Pixels()
	assert.Equal(t, WhiteColor, pixels[1])
	assert.Len(t, pixels, FramebufferSize)
}
