package memory

const (
	titleAddress          = 0x134
	titleLength           = 16
	cartridgeTypeAddress  = 0x147
	headerChecksumAddress = 0x14D
)

// Cartridge is a ROM-only (MBC0) Game Boy cartridge: up to 32KiB of ROM
// mapped directly at 0x0000-0x7FFF, with a fixed 8KiB of external RAM at
// 0xA000-0xBFFF. Bank switching is out of scope.
type Cartridge struct {
	rom []byte
	ram []byte

	title          string
	cartType       byte
	headerChecksum byte
}

// NewCartridge creates an empty 32KiB cartridge, useful for tests that don't
// need real ROM contents.
func NewCartridge() *Cartridge {
	return &Cartridge{
		rom: make([]byte, 0x8000),
		ram: make([]byte, 0x2000),
	}
}

// NewCartridgeWithData loads ROM bytes into a cartridge. The slice is copied
// into a 32KiB-minimum buffer; short images (e.g. synthetic test ROMs) are
// zero-padded.
func NewCartridgeWithData(data []byte) *Cartridge {
	size := len(data)
	if size < 0x8000 {
		size = 0x8000
	}

	c := &Cartridge{
		rom: make([]byte, size),
		ram: make([]byte, 0x2000),
	}
	copy(c.rom, data)

	if len(data) > titleAddress {
		end := titleAddress + titleLength
		if end > len(data) {
			end = len(data)
		}
		c.title = cleanGameboyTitle(data[titleAddress:end])
	}
	if len(data) > cartridgeTypeAddress {
		c.cartType = data[cartridgeTypeAddress]
	}
	if len(data) > headerChecksumAddress {
		c.headerChecksum = data[headerChecksumAddress]
	}

	return c
}

// Title returns the cleaned-up ASCII title from the cartridge header.
func (c *Cartridge) Title() string {
	if c.title == "" {
		return "(Untitled)"
	}
	return c.title
}

// Type returns the raw cartridge type byte (0x00 for ROM-only).
func (c *Cartridge) Type() byte {
	return c.cartType
}

// HeaderChecksum returns the header checksum byte read from the ROM.
func (c *Cartridge) HeaderChecksum() byte {
	return c.headerChecksum
}

// Read reads a byte from ROM space (0x0000-0x7FFF).
func (c *Cartridge) Read(addr uint16) byte {
	if int(addr) >= len(c.rom) {
		return 0xFF
	}
	return c.rom[addr]
}

// WriteROM accepts writes to ROM space. MBC0 cartridges have no registers to
// latch, so these are silently discarded.
func (c *Cartridge) WriteROM(addr uint16, value byte) {}

// ReadRAM reads from the cartridge's external RAM window (0xA000-0xBFFF).
func (c *Cartridge) ReadRAM(addr uint16) byte {
	offset := addr - 0xA000
	if int(offset) >= len(c.ram) {
		return 0xFF
	}
	return c.ram[offset]
}

// WriteRAM writes to the cartridge's external RAM window.
func (c *Cartridge) WriteRAM(addr uint16, value byte) {
	offset := addr - 0xA000
	if int(offset) >= len(c.ram) {
		return
	}
	c.ram[offset] = value
}
