// Package blargg runs the classic Blargg cpu_instrs test ROMs against the
// core and compares the resulting framebuffer to a golden hash. The ROMs
// themselves aren't checked in; tests skip when they're not present locally.
package blargg

import (
	"crypto/md5"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"dmgcore/dmg"
	"dmgcore/dmg/video"
)

const (
	blackPixel     = 0x000000FF
	darkGrayPixel  = 0x4C4C4CFF
	lightGrayPixel = 0x989898FF
	whitePixel     = 0xFFFFFFFF
)

type blarggTestCase struct {
	romFile   string
	maxFrames int
	name      string
}

func blarggTests() []blarggTestCase {
	baseDir := "../../test-roms"
	return []blarggTestCase{
		{filepath.Join(baseDir, "01-special.gb"), 500, "01-special"},
		{filepath.Join(baseDir, "02-interrupts.gb"), 500, "02-interrupts"},
		{filepath.Join(baseDir, "03-op sp,hl.gb"), 500, "03-op sp,hl"},
		{filepath.Join(baseDir, "04-op r,imm.gb"), 500, "04-op r,imm"},
		{filepath.Join(baseDir, "05-op rp.gb"), 500, "05-op rp"},
		{filepath.Join(baseDir, "06-ld r,r.gb"), 500, "06-ld r,r"},
		{filepath.Join(baseDir, "07-jr,jp,call,ret,rst.gb"), 500, "07-jr,jp,call,ret,rst"},
		{filepath.Join(baseDir, "08-misc instrs.gb"), 500, "08-misc instrs"},
		{filepath.Join(baseDir, "09-op r,r.gb"), 1000, "09-op r,r"},
		{filepath.Join(baseDir, "10-bit ops.gb"), 1000, "10-bit ops"},
		{filepath.Join(baseDir, "11-op a,(hl).gb"), 1500, "11-op a,(hl)"},
	}
}

func runBlarggTest(t *testing.T, tc blarggTestCase) {
	if _, err := os.Stat(tc.romFile); os.IsNotExist(err) {
		t.Skipf("ROM file not found: %s", tc.romFile)
	}

	system, err := dmg.NewWithFile(tc.romFile, nil)
	if err != nil {
		t.Fatalf("failed to create system: %v", err)
	}

	var fb *video.FrameBuffer
	for i := 0; i < tc.maxFrames; i++ {
		fb = system.RunFrame()
	}

	if err := os.MkdirAll(filepath.Join("testdata", "snapshots"), 0755); err != nil {
		t.Fatalf("failed to create testdata dir: %v", err)
	}

	binaryData := fb.Grayscale()
	hash := fmt.Sprintf("%x", md5.Sum(binaryData))

	goldenPath := filepath.Join("testdata", tc.name+".bin")
	snapshotPath := filepath.Join("testdata", "snapshots", tc.name+".png")

	if os.Getenv("BLARGG_GENERATE_GOLDEN") == "true" {
		if err := os.WriteFile(goldenPath, binaryData, 0644); err != nil {
			t.Fatalf("failed to write golden file: %v", err)
		}
		if err := savePNG(fb, snapshotPath); err != nil {
			t.Fatalf("failed to write snapshot: %v", err)
		}
		t.Logf("generated golden data for %s, hash %s", tc.name, hash)
		return
	}

	expected, err := os.ReadFile(goldenPath)
	if err != nil {
		t.Fatalf("golden file not found: %s (set BLARGG_GENERATE_GOLDEN=true to create it)", goldenPath)
	}
	expectedHash := fmt.Sprintf("%x", md5.Sum(expected))

	if hash != expectedHash {
		actualPath := filepath.Join("testdata", tc.name+"_actual.bin")
		actualPNG := filepath.Join("testdata", "snapshots", tc.name+"_actual.png")
		os.WriteFile(actualPath, binaryData, 0644)
		savePNG(fb, actualPNG)
		t.Errorf("frame mismatch for %s: expected %s, got %s (actual saved to %s)", tc.name, expectedHash, hash, actualPath)
	}
}

func savePNG(fb *video.FrameBuffer, filename string) error {
	img := image.NewGray(image.Rect(0, 0, video.FramebufferWidth, video.FramebufferHeight))

	data := fb.Pixels()
	for y := 0; y < video.FramebufferHeight; y++ {
		for x := 0; x < video.FramebufferWidth; x++ {
			var gray uint8
			switch data[y*video.FramebufferWidth+x] {
			case blackPixel:
				gray = 0
			case darkGrayPixel:
				gray = 85
			case lightGrayPixel:
				gray = 170
			case whitePixel:
				gray = 255
			}
			img.SetGray(x, y, color.Gray{Y: gray})
		}
	}

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()
	return png.Encode(file, img)
}

func TestBlarggSuite(t *testing.T) {
	for _, tc := range blarggTests() {
		t.Run(tc.name, func(t *testing.T) {
			runBlarggTest(t, tc)
		})
	}
}
