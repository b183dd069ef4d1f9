package nes

import (
	"errors"
	"fmt"

	"github.com/golang/glog"
)

const (
	chrROMSizeUnit      int  = 0x2000 // 8 KB
	prgROMSizeUnit      int  = 0x4000 // 16 KB
	trainerSizeBytes    int  = 512
	inesHeaderSizeBytes int  = 16 // The valid INES header has 16 bytes
	msDOSEOF            byte = 0x1A
)

var (
	// ErrInvalidHeader is returned for images shorter than the header or with a bad magic number.
	ErrInvalidHeader = errors.New("not a valid iNES image")
	// ErrTruncated is returned when the header declares more PRG/CHR data than the image holds.
	ErrTruncated = errors.New("iNES image is truncated")
	// ErrUnsupportedMapper is returned for mapper numbers without an implementation.
	ErrUnsupportedMapper = errors.New("unsupported mapper")
)

// Cartridge is a parsed iNES image with its mapper.
// https://www.nesdev.org/wiki/INES
type Cartridge struct {
	mapper    Mapper
	mapperID  byte
	prgBanks  int
	chrBanks  int
	mirroring MirrorMode
	battery   bool
	trainer   []byte
	flags6    byte // https://www.nesdev.org/wiki/INES#Flags_6
	flags7    byte // https://www.nesdev.org/wiki/INES#Flags_7
}

// isValid checks whether the data starts with a valid iNES header.
func isValid(data []byte) bool {
	return len(data) >= inesHeaderSizeBytes &&
		data[0] == byte('N') &&
		data[1] == byte('E') &&
		data[2] == byte('S') &&
		data[3] == msDOSEOF
}

// mapperNumber combines the nibbles of flags 6 and 7.
// Some dumps carry garbage ("DiskDude!") in bytes 7-15, for those only the lower nibble is used.
func mapperNumber(header []byte) byte {
	lower := header[6] >> 4
	isNES2 := header[7]&0x0C == 0x08
	if !isNES2 && (header[12] != 0 || header[13] != 0 || header[14] != 0 || header[15] != 0) {
		return lower
	}
	return header[7]&0xF0 | lower
}

// NewCartridge parses an iNES image and creates a cartridge with its mapper.
func NewCartridge(data []byte) (*Cartridge, error) {
	if !isValid(data) {
		return nil, ErrInvalidHeader
	}
	c := &Cartridge{
		prgBanks: int(data[4]),
		chrBanks: int(data[5]),
		flags6:   data[6],
		flags7:   data[7],
		battery:  data[6]&0x02 != 0,
	}
	c.mapperID = mapperNumber(data)
	switch {
	case c.flags6&0x08 != 0:
		c.mirroring = MirrorFourScreen
	case c.flags6&0x01 != 0:
		c.mirroring = MirrorVertical
	default:
		c.mirroring = MirrorHorizontal
	}
	offset := inesHeaderSizeBytes
	if c.flags6&0x04 != 0 {
		if len(data) < offset+trainerSizeBytes {
			return nil, fmt.Errorf("%w: trainer needs %d bytes, image has %d", ErrTruncated, trainerSizeBytes, len(data)-offset)
		}
		c.trainer = data[offset : offset+trainerSizeBytes]
		offset += trainerSizeBytes
	}
	if c.prgBanks == 0 {
		return nil, fmt.Errorf("%w: no PRG ROM banks", ErrInvalidHeader)
	}
	prgSize := c.prgBanks * prgROMSizeUnit
	chrSize := c.chrBanks * chrROMSizeUnit
	if len(data) < offset+prgSize+chrSize {
		return nil, fmt.Errorf("%w: header declares %d PRG and %d CHR bytes, image has %d",
			ErrTruncated, prgSize, chrSize, len(data)-offset)
	}
	// Copies, so the cartridge never aliases the caller's buffer.
	prgROM := append([]byte(nil), data[offset:offset+prgSize]...)
	chrROM := append([]byte(nil), data[offset+prgSize:offset+prgSize+chrSize]...)
	mapper, err := NewMapper(c.mapperID, prgROM, chrROM, c.mirroring)
	if err != nil {
		return nil, err
	}
	c.mapper = mapper
	glog.Infof("Cartridge: mapper=%d, PRG=%dx16KB, CHR=%dx8KB, mirroring=%s, battery=%t, trainer=%t",
		c.mapperID, c.prgBanks, c.chrBanks, c.mirroring, c.battery, c.trainer != nil)
	return c, nil
}

// MapperID returns the iNES mapper number.
func (c *Cartridge) MapperID() byte {
	return c.mapperID
}

func (c *Cartridge) readPRG(address uint16) byte {
	return c.mapper.ReadPRG(address)
}

func (c *Cartridge) writePRG(address uint16, data byte) {
	c.mapper.WritePRG(address, data)
}

func (c *Cartridge) readCHR(address uint16) byte {
	return c.mapper.ReadCHR(address)
}

func (c *Cartridge) writeCHR(address uint16, data byte) {
	c.mapper.WriteCHR(address, data)
}

// getTableMirrorMode returns the current nametable mirroring, mappers may switch it at runtime.
func (c *Cartridge) getTableMirrorMode() MirrorMode {
	return c.mapper.Mirroring()
}

// irq reports whether the mapper asserts /IRQ.
func (c *Cartridge) irq() bool {
	if s, ok := c.mapper.(IRQSource); ok {
		return s.IRQ()
	}
	return false
}

// scanline clocks a mapper scanline counter, if any.
func (c *Cartridge) scanline() {
	if s, ok := c.mapper.(ScanlineCounter); ok {
		s.Scanline()
	}
}
