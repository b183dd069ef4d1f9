package nes

// PPUBus is the 14bit address space seen by the PPU.
type PPUBus struct {
	vram      *RAM // 2KB on the console, 4KB when the cartridge provides four-screen RAM
	cartridge *Cartridge
	// PPU has an internal RAM for palette data.
	paletteRAM [32]byte
}

// NewPPUBus creates a new Bus for PPU
func NewPPUBus(vram *RAM, cartridge *Cartridge) *PPUBus {
	return &PPUBus{vram: vram, cartridge: cartridge}
}

// mirrorAddress folds a nametable address ($2000-$3EFF) onto an offset in the 4KB nametable RAM.
// Reference: https://www.nesdev.org/wiki/Mirroring
func (b *PPUBus) mirrorAddress(address uint16) uint16 {
	address = (address - 0x2000) % 0x1000
	table := address / 0x0400
	offset := address % 0x0400
	mode := MirrorHorizontal
	if b.cartridge != nil {
		mode = b.cartridge.getTableMirrorMode()
	}
	switch mode {
	case MirrorHorizontal:
		return (table/2)*0x0400 + offset
	case MirrorVertical:
		return (table%2)*0x0400 + offset
	case MirrorSingleLow:
		return offset
	case MirrorSingleHigh:
		return 0x0400 + offset
	}
	return address
}

// paletteIndex folds a palette address onto the 32 byte palette RAM.
// $3F10/$3F14/$3F18/$3F1C are mirrors of $3F00/$3F04/$3F08/$3F0C.
func paletteIndex(address uint16) uint16 {
	i := address & 0x1F
	if i >= 0x10 && i%4 == 0 {
		i -= 0x10
	}
	return i
}

func (b *PPUBus) readPalette(address uint16) byte {
	return b.paletteRAM[paletteIndex(address)] & 0x3F
}

func (b *PPUBus) writePalette(address uint16, data byte) {
	b.paletteRAM[paletteIndex(address)] = data & 0x3F
}

// read reads data.
// Address        Size	  Description
// -------------------------------------
// $0000-$0FFF	  $1000	  Pattern table 0
// $1000-$1FFF	  $1000	  Pattern table 1
// $2000-$23FF	  $0400	  Nametable 0
// $2400-$27FF	  $0400	  Nametable 1
// $2800-$2BFF	  $0400	  Nametable 2
// $2C00-$2FFF	  $0400	  Nametable 3
// $3000-$3EFF	  $0F00	  Mirrors of $2000-$2EFF
// $3F00-$3F1F	  $0020	  Palette RAM indexes
// $3F20-$3FFF	  $00E0	  Mirrors of $3F00-$3F1F
// Reference: https://www.nesdev.org/wiki/PPU_memory_map
func (b *PPUBus) read(address uint16) byte {
	address &= 0x3FFF
	switch {
	case address < 0x2000:
		if b.cartridge == nil {
			return 0
		}
		return b.cartridge.readCHR(address)
	case address < 0x3F00:
		return b.vram.read(b.mirrorAddress(address))
	default:
		return b.readPalette(address)
	}
}

// write writes data.
// Reference: https://www.nesdev.org/wiki/PPU_memory_map
func (b *PPUBus) write(address uint16, data byte) {
	address &= 0x3FFF
	switch {
	case address < 0x2000:
		if b.cartridge != nil {
			b.cartridge.writeCHR(address, data)
		}
	case address < 0x3F00:
		b.vram.write(b.mirrorAddress(address), data)
	default:
		b.writePalette(address, data)
	}
}
