package nes

import "fmt"

// MirrorMode describes how the four logical nametables are folded onto nametable RAM.
// Reference: https://www.nesdev.org/wiki/Mirroring
type MirrorMode int

const (
	MirrorHorizontal MirrorMode = iota
	MirrorVertical
	MirrorSingleLow
	MirrorSingleHigh
	MirrorFourScreen
)

func (m MirrorMode) String() string {
	switch m {
	case MirrorHorizontal:
		return "horizontal"
	case MirrorVertical:
		return "vertical"
	case MirrorSingleLow:
		return "single-screen (low)"
	case MirrorSingleHigh:
		return "single-screen (high)"
	case MirrorFourScreen:
		return "four-screen"
	}
	return fmt.Sprintf("MirrorMode(%d)", int(m))
}

// Mapper virtualizes the banking hardware on a cartridge.
// ReadPRG/WritePRG see CPU addresses 0x4020-0xFFFF, ReadCHR/WriteCHR see PPU addresses 0x0000-0x1FFF.
// Reads from windows a mapper doesn't drive return 0xFF (open bus), writes to ROM are discarded.
type Mapper interface {
	ReadPRG(address uint16) byte
	WritePRG(address uint16, data byte)
	ReadCHR(address uint16) byte
	WriteCHR(address uint16, data byte)
	Mirroring() MirrorMode
}

// IRQSource is implemented by mappers which drive the CPU /IRQ line.
type IRQSource interface {
	IRQ() bool
}

// ScanlineCounter is implemented by mappers which count PPU scanlines (e.g. MMC3).
// Scanline is called once per rendered scanline while rendering is enabled.
type ScanlineCounter interface {
	Scanline()
}

// NewMapper creates a mapper for the mapper number found in the iNES header.
func NewMapper(number byte, prgROM, chrROM []byte, mirroring MirrorMode) (Mapper, error) {
	switch number {
	case 0:
		return newMapper0(prgROM, chrROM, mirroring), nil
	case 2:
		return newMapper2(prgROM, chrROM, mirroring), nil
	}
	return nil, fmt.Errorf("%w: %d", ErrUnsupportedMapper, number)
}

// chrMemory returns the CHR ROM, or 8KB of CHR RAM when the cartridge has no CHR ROM.
func chrMemory(chrROM []byte) ([]byte, bool) {
	if len(chrROM) == 0 {
		return make([]byte, chrROMSizeUnit), true
	}
	return chrROM, false
}
