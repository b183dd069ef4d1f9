package nes

import (
	"image"
	"image/color"
)

// NES PPU generates 256x240 pixels.
const (
	width  = 256
	height = 240

	cyclesPerScanline  = 341
	scanlinesPerFrame  = 262
	vblankScanline     = 241
	preRenderScanline  = 261
	mapperScanlineTick = 260
)

// PPUCTRL ($2000) and PPUMASK ($2001) bits.
const (
	ctrlIncrement32      byte = 1 << 2
	ctrlSpriteTable      byte = 1 << 3
	ctrlBackgroundTable  byte = 1 << 4
	ctrlSpriteSize16     byte = 1 << 5
	ctrlNMIEnable        byte = 1 << 7
	maskGreyscale        byte = 1 << 0
	maskShowLeftBG       byte = 1 << 1
	maskShowLeftSprites  byte = 1 << 2
	maskShowBackground   byte = 1 << 3
	maskShowSprites      byte = 1 << 4
	statusSpriteOverflow byte = 1 << 5
	statusSpriteZeroHit  byte = 1 << 6
	statusVBlank         byte = 1 << 7
)

// PPU stands for Picture Processing Unit, renders 256px x 240px image for a screen.
// PPU is 3x faster than CPU and rendering 1 frame requires 341x262=89342 cycles (Each cycles writes a dot).
//
// This PPU implementation includes PPU regsters as well.
// References:
//   https://www.nesdev.org/wiki/PPU
//   https://www.nesdev.org/wiki/PPU_rendering
//   https://pgate1.at-ninja.jp/NES_on_FPGA/nes_ppu.htm (In Japanese)
type PPU struct {
	bus *PPUBus

	frame *image.RGBA

	// Registers for PPU.
	// Reference:
	//   https://www.nesdev.org/wiki/PPU_registers
	//   https://www.nesdev.org/wiki/PPU_scrolling
	ctrl byte // PPUCTRL $2000
	mask byte // PPUMASK $2001
	// PPUSTATUS $2002
	vblank         bool
	spriteZeroHit  bool
	spriteOverflow bool
	// OAMADDR $2003
	oamAddress byte
	oamData    [256]byte
	// Current VRAM address (15bit)
	v uint16
	// Temporary VRAM address (15bit)
	t uint16
	// Fine X scroll (3bit)
	x byte
	// w indicates whether the current access is the first or the second write, for $2005/$2006
	w bool
	// buffer for PPUDATA $2007
	buffer byte

	// cycle, scanline indicates which pixel is processing.
	cycle    int
	scanline int
	oddFrame bool
	frames   uint64
	// frameReady is raised at the start of VBlank and consumed by frameComplete.
	frameReady bool

	// Background fetch latches and shift data, 4 bits per pixel.
	nameTableByte      byte
	attributeTableByte byte
	lowTileByte        byte
	highTileByte       byte
	tileData           uint64

	// Sprites on the current scanline.
	spriteCount      int
	spritePatterns   [8]uint32
	spritePositions  [8]byte
	spritePriorities [8]byte
	spriteIndexes    [8]byte
}

// NewPPU creates a PPU.
func NewPPU(bus *PPUBus) *PPU {
	p := &PPU{
		bus:   bus,
		frame: image.NewRGBA(image.Rect(0, 0, width, height)),
	}
	p.Reset()
	p.clearFrame()
	return p
}

// Reset puts the PPU at the top left of a frame with rendering disabled.
func (p *PPU) Reset() {
	p.cycle = 0
	p.scanline = 0
	p.oddFrame = false
	p.frameReady = false
	p.ctrl = 0
	p.mask = 0
	p.vblank = false
	p.spriteZeroHit = false
	p.spriteOverflow = false
	p.w = false
	p.buffer = 0
	p.oamAddress = 0
	p.spriteCount = 0
	p.tileData = 0
}

// clearFrame paints the whole frame black.
func (p *PPU) clearFrame() {
	black := color.RGBA{0, 0, 0, 255}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			p.frame.SetRGBA(x, y, black)
		}
	}
}

func (p *PPU) renderingEnabled() bool {
	return p.mask&(maskShowBackground|maskShowSprites) != 0
}

// nmiLine returns the level of the /NMI output, false means asserted (low).
func (p *PPU) nmiLine() bool {
	return !(p.vblank && p.ctrl&ctrlNMIEnable != 0)
}

// frameComplete reports whether a frame finished since the last call.
func (p *PPU) frameComplete() bool {
	if p.frameReady {
		p.frameReady = false
		return true
	}
	return false
}

// writePPUCTRL writes PPUCTRL ($2000).
func (p *PPU) writePPUCTRL(data byte) {
	p.ctrl = data
	// t: ...GH.. ........ <- d: ......GH
	p.t = (p.t & 0xF3FF) | (uint16(data)&0x03)<<10
}

// writePPUMASK writes PPUMASK ($2001).
func (p *PPU) writePPUMASK(data byte) {
	p.mask = data
}

// readPPUSTATUS reads PPUSTATUS ($2002), reading clears VBlank and the write latch.
func (p *PPU) readPPUSTATUS() byte {
	data := p.buffer & 0x1F
	if p.spriteOverflow {
		data |= statusSpriteOverflow
	}
	if p.spriteZeroHit {
		data |= statusSpriteZeroHit
	}
	if p.vblank {
		data |= statusVBlank
	}
	p.vblank = false
	p.w = false
	return data
}

// writeOAMADDR writes OAMADDR ($2003).
func (p *PPU) writeOAMADDR(data byte) {
	p.oamAddress = data
}

// readOAMDATA reads OAMDATA ($2004).
func (p *PPU) readOAMDATA() byte {
	return p.oamData[p.oamAddress]
}

// writeOAMDATA writes OAMDATA ($2004).
func (p *PPU) writeOAMDATA(data byte) {
	p.oamData[p.oamAddress] = data
	p.oamAddress++
}

// writePPUSCROLL writes PPUSCROLL ($2005).
func (p *PPU) writePPUSCROLL(data byte) {
	if !p.w {
		// t: ....... ...ABCDE <- d: ABCDE...
		// x:              FGH <- d: .....FGH
		p.t = (p.t & 0xFFE0) | uint16(data)>>3
		p.x = data & 0x07
		p.w = true
	} else {
		// t: FGH..AB CDE..... <- d: ABCDEFGH
		p.t = (p.t & 0x8FFF) | (uint16(data)&0x07)<<12
		p.t = (p.t & 0xFC1F) | (uint16(data)&0xF8)<<2
		p.w = false
	}
}

// writePPUADDR writes PPUADDR ($2006).
func (p *PPU) writePPUADDR(data byte) {
	if !p.w { // high
		p.t = (p.t & 0x80FF) | (uint16(data)&0x3F)<<8
		p.w = true
	} else { // low
		p.t = (p.t & 0xFF00) | uint16(data)
		p.v = p.t
		p.w = false
	}
}

func (p *PPU) incrementAddress() {
	if p.ctrl&ctrlIncrement32 != 0 {
		p.v += 32
	} else {
		p.v++
	}
	p.v &= 0x7FFF
}

// readPPUDATA reads PPUDATA ($2007).
func (p *PPU) readPPUDATA() byte {
	address := p.v & 0x3FFF
	var data byte
	if address < 0x3F00 {
		// Here buffers if the address is not paletteRAM.
		data = p.buffer
		p.buffer = p.bus.read(address)
	} else {
		// Palette reads are immediate, the buffer gets the nametable byte "under" the palette.
		data = p.bus.read(address)
		p.buffer = p.bus.read(address - 0x1000)
	}
	p.incrementAddress()
	return data
}

// writePPUDATA writes PPUDATA ($2007).
func (p *PPU) writePPUDATA(data byte) {
	p.bus.write(p.v&0x3FFF, data)
	p.incrementAddress()
}

// vramAddress returns the current VRAM address, for debugging.
func (p *PPU) vramAddress() uint16 {
	return p.v & 0x3FFF
}

// Step emulates a cycle of PPU and each cycles renders a pixel for NTSC,
// so PPU renders a pixel (left to right, top to bottom) respectively.
// PPU renders 256x240 pixels but it actually processes 341x262 area.
// Reference:
//   https://www.nesdev.org/wiki/PPU_rendering
//   https://www.nesdev.org/wiki/File:Ntsc_timing.png
func (p *PPU) Step() {
	rendering := p.renderingEnabled()
	visibleLine := p.scanline < height
	preLine := p.scanline == preRenderScanline
	renderLine := visibleLine || preLine
	visibleCycle := 1 <= p.cycle && p.cycle <= width
	preFetchCycle := 321 <= p.cycle && p.cycle <= 336
	fetchCycle := visibleCycle || preFetchCycle

	if visibleLine && visibleCycle {
		if rendering {
			p.renderPixel()
		} else {
			p.renderBackdrop()
		}
	}

	if rendering {
		if renderLine && fetchCycle {
			p.tileData <<= 4
			switch p.cycle % 8 {
			case 1:
				p.fetchNameTableByte()
			case 3:
				p.fetchAttributeTableByte()
			case 5:
				p.fetchLowTileByte()
			case 7:
				p.fetchHighTileByte()
			case 0:
				p.storeTileData()
			}
		}
		if preLine && 280 <= p.cycle && p.cycle <= 304 {
			p.copyY()
		}
		if renderLine {
			if fetchCycle && p.cycle%8 == 0 {
				p.incrementX()
			}
			if p.cycle == 256 {
				p.incrementY()
			}
			if p.cycle == 257 {
				p.copyX()
			}
			if p.cycle == mapperScanlineTick && p.bus.cartridge != nil {
				p.bus.cartridge.scanline()
			}
		}
		if p.cycle == 257 {
			if visibleLine {
				p.evaluateSprites()
			} else {
				p.spriteCount = 0
			}
		}
	}

	if p.scanline == vblankScanline && p.cycle == 1 {
		p.vblank = true
		p.frameReady = true
	}
	if preLine && p.cycle == 1 {
		p.vblank = false
		p.spriteZeroHit = false
		p.spriteOverflow = false
	}

	p.tick(rendering)
}

// tick advances the dot counters.
func (p *PPU) tick(rendering bool) {
	// Odd frames are one dot shorter when rendering is enabled.
	if rendering && p.oddFrame && p.scanline == preRenderScanline && p.cycle == 339 {
		p.cycle = 0
		p.scanline = 0
		p.oddFrame = !p.oddFrame
		p.frames++
		return
	}
	p.cycle++
	if p.cycle == cyclesPerScanline { // rendered a line
		p.cycle = 0
		p.scanline++
		if p.scanline == scanlinesPerFrame { // rendered a frame
			p.scanline = 0
			p.oddFrame = !p.oddFrame
			p.frames++
		}
	}
}

// renderBackdrop outputs the backdrop color, used while rendering is disabled.
func (p *PPU) renderBackdrop() {
	index := byte(0)
	// When v points at the palette, the PPU outputs that color instead of the backdrop.
	if p.v&0x3F00 == 0x3F00 {
		index = byte(p.v & 0x1F)
	}
	p.setPixel(p.cycle-1, p.scanline, index)
}

func (p *PPU) renderPixel() {
	x := p.cycle - 1
	y := p.scanline
	background := p.backgroundPixel()
	i, sprite := p.spritePixel()
	if x < 8 && p.mask&maskShowLeftBG == 0 {
		background = 0
	}
	if x < 8 && p.mask&maskShowLeftSprites == 0 {
		sprite = 0
	}
	b := background%4 != 0
	s := sprite%4 != 0
	var index byte
	switch {
	case !b && !s:
		index = 0
	case !b && s:
		index = sprite | 0x10
	case b && !s:
		index = background
	default:
		if p.spriteIndexes[i] == 0 && x < 255 {
			p.spriteZeroHit = true
		}
		if p.spritePriorities[i] == 0 {
			index = sprite | 0x10
		} else {
			index = background
		}
	}
	p.setPixel(x, y, index)
}

// setPixel looks up a palette entry and writes its color to the frame.
func (p *PPU) setPixel(x, y int, index byte) {
	c := p.bus.readPalette(0x3F00 + uint16(index))
	if p.mask&maskGreyscale != 0 {
		c &= 0x30
	}
	p.frame.SetRGBA(x, y, colors[c])
}

func (p *PPU) backgroundPixel() byte {
	if p.mask&maskShowBackground == 0 {
		return 0
	}
	data := uint32(p.tileData>>32) >> ((7 - p.x) * 4)
	return byte(data & 0x0F)
}

// spritePixel returns the index of the first opaque sprite at the current dot and its color.
func (p *PPU) spritePixel() (byte, byte) {
	if p.mask&maskShowSprites == 0 {
		return 0, 0
	}
	for i := 0; i < p.spriteCount; i++ {
		offset := p.cycle - 1 - int(p.spritePositions[i])
		if offset < 0 || offset > 7 {
			continue
		}
		offset = 7 - offset
		c := byte((p.spritePatterns[i] >> byte(offset*4)) & 0x0F)
		if c%4 == 0 {
			continue
		}
		return byte(i), c
	}
	return 0, 0
}

// evaluateSprites finds the sprites on the next scanline.
// Reference: https://www.nesdev.org/wiki/PPU_sprite_evaluation
func (p *PPU) evaluateSprites() {
	h := 8
	if p.ctrl&ctrlSpriteSize16 != 0 {
		h = 16
	}
	count := 0
	for i := 0; i < 64; i++ {
		y := p.oamData[i*4+0]
		a := p.oamData[i*4+2]
		x := p.oamData[i*4+3]
		row := p.scanline - int(y)
		if row < 0 || row >= h {
			continue
		}
		if count < 8 {
			p.spritePatterns[count] = p.fetchSpritePattern(i, row)
			p.spritePositions[count] = x
			p.spritePriorities[count] = (a >> 5) & 1
			p.spriteIndexes[count] = byte(i)
		}
		count++
	}
	if count > 8 {
		count = 8
		p.spriteOverflow = true
	}
	p.spriteCount = count
}

// fetchSpritePattern returns 8 pixels of a sprite row, 4 bits per pixel.
func (p *PPU) fetchSpritePattern(i, row int) uint32 {
	tile := p.oamData[i*4+1]
	attributes := p.oamData[i*4+2]
	var address uint16
	if p.ctrl&ctrlSpriteSize16 == 0 {
		if attributes&0x80 != 0 {
			row = 7 - row
		}
		var table uint16
		if p.ctrl&ctrlSpriteTable != 0 {
			table = 0x1000
		}
		address = table + uint16(tile)*16 + uint16(row)
	} else {
		if attributes&0x80 != 0 {
			row = 15 - row
		}
		table := uint16(tile&1) * 0x1000
		tile &= 0xFE
		if row > 7 {
			tile++
			row -= 8
		}
		address = table + uint16(tile)*16 + uint16(row)
	}
	low := p.bus.read(address)
	high := p.bus.read(address + 8)
	palette := (attributes & 3) << 2
	var data uint32
	for i := 0; i < 8; i++ {
		var p1, p2 byte
		if attributes&0x40 != 0 {
			p1 = low & 1
			p2 = (high & 1) << 1
			low >>= 1
			high >>= 1
		} else {
			p1 = (low & 0x80) >> 7
			p2 = (high & 0x80) >> 6
			low <<= 1
			high <<= 1
		}
		data <<= 4
		data |= uint32(palette | p1 | p2)
	}
	return data
}

func (p *PPU) fetchNameTableByte() {
	p.nameTableByte = p.bus.read(0x2000 | (p.v & 0x0FFF))
}

func (p *PPU) fetchAttributeTableByte() {
	v := p.v
	address := 0x23C0 | (v & 0x0C00) | ((v >> 4) & 0x38) | ((v >> 2) & 0x07)
	shift := ((v >> 4) & 4) | (v & 2)
	p.attributeTableByte = ((p.bus.read(address) >> shift) & 3) << 2
}

func (p *PPU) backgroundTable() uint16 {
	if p.ctrl&ctrlBackgroundTable != 0 {
		return 0x1000
	}
	return 0
}

func (p *PPU) fetchLowTileByte() {
	fineY := (p.v >> 12) & 7
	p.lowTileByte = p.bus.read(p.backgroundTable() + uint16(p.nameTableByte)*16 + fineY)
}

func (p *PPU) fetchHighTileByte() {
	fineY := (p.v >> 12) & 7
	p.highTileByte = p.bus.read(p.backgroundTable() + uint16(p.nameTableByte)*16 + fineY + 8)
}

func (p *PPU) storeTileData() {
	var data uint32
	for i := 0; i < 8; i++ {
		p1 := (p.lowTileByte & 0x80) >> 7
		p2 := (p.highTileByte & 0x80) >> 6
		p.lowTileByte <<= 1
		p.highTileByte <<= 1
		data <<= 4
		data |= uint32(p.attributeTableByte | p1 | p2)
	}
	p.tileData |= uint64(data)
}

// copyX copies the horizontal position from t to v.
// v: ....A.. ...BCDEF <- t: ....A.. ...BCDEF
func (p *PPU) copyX() {
	p.v = (p.v & 0xFBE0) | (p.t & 0x041F)
}

// copyY copies the vertical position from t to v.
// v: GHIA.BC DEF..... <- t: GHIA.BC DEF.....
func (p *PPU) copyY() {
	p.v = (p.v & 0x841F) | (p.t & 0x7BE0)
}

// incrementX increments coarse X, switching the horizontal nametable on overflow.
func (p *PPU) incrementX() {
	if p.v&0x001F == 31 {
		p.v &= 0xFFE0
		p.v ^= 0x0400
	} else {
		p.v++
	}
}

// incrementY increments fine Y, overflowing into coarse Y and the vertical nametable.
func (p *PPU) incrementY() {
	if p.v&0x7000 != 0x7000 {
		p.v += 0x1000
		return
	}
	p.v &= 0x8FFF
	y := (p.v & 0x03E0) >> 5
	switch y {
	case 29:
		y = 0
		p.v ^= 0x0800
	case 31:
		y = 0
	default:
		y++
	}
	p.v = (p.v & 0xFC1F) | (y << 5)
}
