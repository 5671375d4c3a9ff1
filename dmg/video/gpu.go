package video

import (
	"dmgcore/dmg/addr"
	"dmgcore/dmg/bit"
	"dmgcore/dmg/memory"
)

// Mode represents the PPU's current rendering stage. Values match STAT
// register bits 1-0.
type Mode int

const (
	HBlank Mode = 0
	VBlank Mode = 1
	OAMScan Mode = 2
	VRAMScan Mode = 3
)

const (
	oamScanCycles  = 80
	vramScanCycles = 172
	hblankCycles   = 204
	scanlineCycles = oamScanCycles + vramScanCycles + hblankCycles // 456
	visibleLines   = 144
	totalLines     = 154

	maxSpritesPerLine = 10
)

// sprite mirrors one 4-byte OAM entry.
type sprite struct {
	y, x, tile, attr byte
}

// GPU drives the LCD mode state machine and renders background, window and
// sprite pixels into a FrameBuffer. Registers live in the bus's memory
// array; the GPU reaches them through the same *memory.MMU the CPU uses.
type GPU struct {
	mem *memory.MMU
	fb  *FrameBuffer

	mode   Mode
	line   int
	cycles int

	windowLine int // internal window-line counter, only advances on window-visible rows
}

// NewGpu creates a GPU bound to the given bus.
func NewGpu(mem *memory.MMU) *GPU {
	return &GPU{
		mem:  mem,
		fb:   NewFrameBuffer(),
		mode: OAMScan,
	}
}

func (g *GPU) GetFrameBuffer() *FrameBuffer {
	return g.fb
}

func (g *GPU) reg(a uint16) byte         { return g.mem.Read(a) }
func (g *GPU) setReg(a uint16, v byte)   { g.mem.Write(a, v) }

func (g *GPU) lcdEnabled() bool { return bit.IsSet(7, g.reg(addr.LCDC)) }

// Tick advances the PPU by the given number of CPU cycles, driving the mode
// state machine and rendering completed scanlines.
func (g *GPU) Tick(cycles int) {
	if !g.lcdEnabled() {
		return
	}

	g.cycles += cycles

	for {
		budget := g.modeBudget()
		if g.cycles < budget {
			return
		}
		g.cycles -= budget
		g.advanceMode()
	}
}

func (g *GPU) modeBudget() int {
	switch g.mode {
	case OAMScan:
		return oamScanCycles
	case VRAMScan:
		return vramScanCycles
	case HBlank:
		return hblankCycles
	default: // VBlank, one line at a time
		return scanlineCycles
	}
}

func (g *GPU) advanceMode() {
	switch g.mode {
	case OAMScan:
		g.setMode(VRAMScan)
	case VRAMScan:
		g.renderScanline()
		g.setMode(HBlank)
	case HBlank:
		g.setLine(g.line + 1)
		if g.line == visibleLines {
			g.setMode(VBlank)
			g.mem.RequestInterrupt(addr.VBlankInterrupt)
			g.windowLine = 0
		} else {
			g.setMode(OAMScan)
		}
	case VBlank:
		g.setLine(g.line + 1)
		if g.line >= totalLines {
			g.setLine(0)
			g.setMode(OAMScan)
		}
	}
}

func (g *GPU) setMode(m Mode) {
	g.mode = m
	stat := g.reg(addr.STAT)
	stat = (stat &^ 0x03) | byte(m)
	g.setReg(addr.STAT, stat)

	var statBit uint8
	switch m {
	case HBlank:
		statBit = 3
	case VBlank:
		statBit = 4
	case OAMScan:
		statBit = 5
	default:
		return
	}
	if bit.IsSet(statBit, stat) {
		g.mem.RequestInterrupt(addr.LCDSTATInterrupt)
	}
}

func (g *GPU) setLine(line int) {
	g.line = line
	g.setReg(addr.LY, byte(line))

	stat := g.reg(addr.STAT)
	lyc := g.reg(addr.LYC)
	coincidence := byte(line) == lyc
	if coincidence {
		stat = bit.Set(2, stat)
	} else {
		stat = bit.Reset(2, stat)
	}
	g.setReg(addr.STAT, stat)

	if coincidence && bit.IsSet(6, stat) {
		g.mem.RequestInterrupt(addr.LCDSTATInterrupt)
	}
}

// renderScanline computes one row of the framebuffer (background, window,
// sprites) for the line about to enter HBlank.
func (g *GPU) renderScanline() {
	if g.line >= visibleLines {
		return
	}

	lcdc := g.reg(addr.LCDC)
	bgEnabled := bit.IsSet(0, lcdc)
	windowEnabled := bit.IsSet(5, lcdc) && bit.IsSet(0, lcdc)
	spritesEnabled := bit.IsSet(1, lcdc)

	bgPalette := g.reg(addr.BGP)
	y := uint(g.line)

	colorIndex := make([]byte, FramebufferWidth)

	for x := uint(0); x < FramebufferWidth; x++ {
		var idx byte
		if windowEnabled && g.pixelInWindow(x) {
			idx = g.windowPixel(x, lcdc)
		} else if bgEnabled {
			idx = g.backgroundPixel(x, lcdc)
		}
		colorIndex[x] = idx
		g.fb.Set(x, y, paletteColor(bgPalette, idx))
	}

	if windowEnabled && g.windowLineVisible() {
		g.windowLine++
	}

	if spritesEnabled {
		g.renderSprites(colorIndex, lcdc)
	}
}

func (g *GPU) windowLineVisible() bool {
	wy := g.reg(addr.WY)
	return uint(g.line) >= uint(wy)
}

func (g *GPU) pixelInWindow(x uint) bool {
	if !g.windowLineVisible() {
		return false
	}
	wx := int(g.reg(addr.WX)) - 7
	return int(x) >= wx
}

func (g *GPU) backgroundPixel(x uint, lcdc byte) byte {
	scx, scy := g.reg(addr.SCX), g.reg(addr.SCY)
	bgX := (x + uint(scx)) % 256
	bgY := (uint(g.line) + uint(scy)) % 256
	return g.tilePixel(bgX, bgY, tileMapAddress(lcdc, 3), lcdc)
}

func (g *GPU) windowPixel(x uint, lcdc byte) byte {
	wx := int(g.reg(addr.WX)) - 7
	winX := uint(int(x) - wx)
	winY := uint(g.windowLine)
	return g.tilePixel(winX, winY, tileMapAddress(lcdc, 6), lcdc)
}

func tileMapAddress(lcdc byte, selectBit uint8) uint16 {
	if bit.IsSet(selectBit, lcdc) {
		return addr.TileMap1
	}
	return addr.TileMap0
}

// tilePixel looks up the 2bpp color index for the pixel at (px, py) within
// a 256x256 tile-map space.
func (g *GPU) tilePixel(px, py uint, mapBase uint16, lcdc byte) byte {
	tileCol, tileRow := px/8, py/8
	mapAddr := mapBase + uint16(tileRow*32+tileCol)
	tileNum := g.reg(mapAddr)

	var tileAddr uint16
	if bit.IsSet(4, lcdc) {
		tileAddr = addr.TileData0 + uint16(tileNum)*16
	} else {
		tileAddr = uint16(int32(addr.TileData2) + int32(int8(tileNum))*16)
	}

	lineInTile := py % 8
	lo := g.reg(tileAddr + uint16(lineInTile*2))
	hi := g.reg(tileAddr + uint16(lineInTile*2) + 1)

	bitIndex := 7 - (px % 8)
	loBit := bit.GetBitValue(uint8(bitIndex), lo)
	hiBit := bit.GetBitValue(uint8(bitIndex), hi)
	return (hiBit << 1) | loBit
}

// renderSprites composites up to 10 OAM-selected sprites onto the scanline
// already holding background color indices in bgIndex.
func (g *GPU) renderSprites(bgIndex []byte, lcdc byte) {
	tall := bit.IsSet(2, lcdc)
	height := 8
	if tall {
		height = 16
	}

	selected := g.selectSprites(height)

	for x := uint(0); x < FramebufferWidth; x++ {
		for _, s := range selected {
			spriteX := int(s.x) - 8
			if int(x) < spriteX || int(x) >= spriteX+8 {
				continue
			}

			col := int(x) - spriteX
			if bit.IsSet(5, s.attr) {
				col = 7 - col
			}

			spriteY := int(g.line) - (int(s.y) - 16)
			if bit.IsSet(6, s.attr) {
				spriteY = height - 1 - spriteY
			}

			tile := s.tile
			if tall {
				tile &^= 0x01
				if spriteY >= 8 {
					tile |= 0x01
					spriteY -= 8
				}
			}

			tileAddr := addr.TileData0 + uint16(tile)*16
			lo := g.reg(tileAddr + uint16(spriteY)*2)
			hi := g.reg(tileAddr + uint16(spriteY)*2 + 1)

			bitIndex := uint8(7 - col)
			idx := (bit.GetBitValue(bitIndex, hi) << 1) | bit.GetBitValue(bitIndex, lo)
			if idx == 0 {
				continue // transparent
			}

			behindBG := bit.IsSet(7, s.attr) && bgIndex[x] != 0
			if behindBG {
				continue
			}

			palAddr := addr.OBP0
			if bit.IsSet(4, s.attr) {
				palAddr = addr.OBP1
			}
			g.fb.Set(x, uint(g.line), paletteColor(g.reg(palAddr), idx))
			break // first matching sprite (OAM order) wins
		}
	}
}

// selectSprites scans OAM for up to maxSpritesPerLine sprites intersecting
// the current scanline, in OAM order (lowest address wins priority ties).
func (g *GPU) selectSprites(height int) []sprite {
	var out []sprite
	for i := uint16(0); i < 40 && len(out) < maxSpritesPerLine; i++ {
		base := addr.OAMStart + i*4
		y := g.reg(base)
		top := int(y) - 16
		if int(g.line) < top || int(g.line) >= top+height {
			continue
		}
		out = append(out, sprite{
			y:    y,
			x:    g.reg(base + 1),
			tile: g.reg(base + 2),
			attr: g.reg(base + 3),
		})
	}
	return out
}

func paletteColor(palette, index byte) GBColor {
	shade := (palette >> (index * 2)) & 0x03
	return ByteToColor(shade)
}
