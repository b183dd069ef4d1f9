package nes

import "github.com/golang/glog"

const (
	oamDMACycles   = 513
	ppuCyclesRatio = 3 // PPU's clock is 3x faster than CPU's
)

// Bus is the CPU address space, it owns every device and drives the clocks.
type Bus struct {
	cpu         *CPU
	wram        *RAM
	ppu         *PPU
	apu         *APU
	cartridge   *Cartridge
	controllers [2]*Controller

	// nmiLine is the /NMI level seen on the previous clock, true is high (deasserted).
	nmiLine bool
	// dmaStall is the number of cycles the CPU is halted by OAM DMA.
	dmaStall int
}

// NewBus creates a new Bus for CPU.
// CPU memory map
// 0x0000 - 0x07FF	WRAM
// 0x0800 - 0x1FFF	WRAM Mirror
// 0x2000 - 0x2007	PPU Registers
// 0x2008 - 0x3FFF	PPU Registers Mirror
// 0x4000 - 0x401F	I/O Port
// 0x4020 - 0x5FFF	Extended RAM
// 0x6000 - 0x7FFF	Battery Backup RAM
// 0x8000 - 0xBFFF	ProgramROM Low
// 0xC000 - 0xFFFF	ProgramROM High
func NewBus(cpu *CPU, wram *RAM, ppu *PPU, apu *APU, cartridge *Cartridge, controllers [2]*Controller) *Bus {
	return &Bus{
		cpu:         cpu,
		wram:        wram,
		ppu:         ppu,
		apu:         apu,
		cartridge:   cartridge,
		controllers: controllers,
		nmiLine:     true,
	}
}

// reset resets the CPU through the bus and forgets any pending edge or DMA.
func (b *Bus) reset() {
	b.nmiLine = true
	b.dmaStall = 0
	b.cpu.Reset(b)
}

func (b *Bus) readPPURegister(address uint16) byte {
	switch address {
	case 0x2002:
		return b.ppu.readPPUSTATUS()
	case 0x2004:
		return b.ppu.readOAMDATA()
	case 0x2007:
		return b.ppu.readPPUDATA()
	}
	// Write only registers.
	return 0
}

// writeToPPURegisters writes data to PPU registers.
func (b *Bus) writeToPPURegisters(address uint16, data byte) {
	switch address {
	case 0x2000:
		b.ppu.writePPUCTRL(data)
	case 0x2001:
		b.ppu.writePPUMASK(data)
	case 0x2003:
		b.ppu.writeOAMADDR(data)
	case 0x2004:
		b.ppu.writeOAMDATA(data)
	case 0x2005:
		b.ppu.writePPUSCROLL(data)
	case 0x2006:
		b.ppu.writePPUADDR(data)
	case 0x2007:
		b.ppu.writePPUDATA(data)
	default:
		glog.V(2).Infof("Ignored write to PPUSTATUS: data=0x%02x", data)
	}
}

// Read reads a byte.
func (b *Bus) Read(address uint16) byte {
	switch {
	case address < 0x2000:
		return b.wram.read(address % 0x0800)
	case address < 0x4000:
		return b.readPPURegister(0x2000 + address%8)
	case address == 0x4015:
		return b.apu.readStatus()
	case address == 0x4016: // 1P
		return b.controllers[0].read() | 0x40
	case address == 0x4017: // 2P
		return b.controllers[1].read() | 0x40
	case address < 0x4020:
		// Write only APU registers and the disabled test mode registers.
		return 0
	}
	if b.cartridge == nil {
		return 0xFF
	}
	return b.cartridge.readPRG(address)
}

// Write writes a byte.
func (b *Bus) Write(address uint16, data byte) {
	switch {
	case address < 0x2000:
		b.wram.write(address%0x0800, data)
	case address < 0x4000:
		b.writeToPPURegisters(0x2000+address%8, data)
	case address == 0x4014:
		b.writeOAMDMA(data)
	case address == 0x4016:
		b.controllers[0].write(data)
		b.controllers[1].write(data)
	case address < 0x4018:
		b.apu.writeRegister(address, data)
	case address < 0x4020:
		glog.V(2).Infof("Ignored write to test mode register: address=0x%04x, data=0x%02x", address, data)
	case b.cartridge != nil:
		b.cartridge.writePRG(address, data)
	}
}

// peek reads a byte without side effects on I/O registers, for inspection.
func (b *Bus) peek(address uint16) byte {
	if 0x2000 <= address && address < 0x4020 {
		return 0
	}
	return b.Read(address)
}

// writeOAMDMA copies the page (data << 8) to OAM, the CPU is halted while copying.
// Reference: https://www.nesdev.org/wiki/PPU_registers#OAMDMA
func (b *Bus) writeOAMDMA(data byte) {
	page := uint16(data) << 8
	for i := uint16(0); i < 256; i++ {
		b.ppu.writeOAMDATA(b.Read(page | i))
	}
	b.dmaStall += oamDMACycles
}

// Clock runs one CPU instruction (or an NMI sequence) and the PPU/APU for the same period,
// it returns the consumed CPU cycles.
func (b *Bus) Clock() (int, error) {
	line := b.ppu.nmiLine()
	edge := b.nmiLine && !line
	b.nmiLine = line

	var cycles int
	if edge {
		cycles = b.cpu.NMI(b)
	} else {
		b.cpu.SetIRQ(b.cartridge != nil && b.cartridge.irq())
		c, err := b.cpu.Step(b)
		if err != nil {
			return 0, err
		}
		cycles = c
	}
	if b.dmaStall > 0 {
		stall := b.dmaStall
		// One more alignment cycle when DMA starts on an odd CPU cycle.
		if b.cpu.cycles%2 == 1 {
			stall++
		}
		b.dmaStall = 0
		b.cpu.cycles += uint64(stall)
		cycles += stall
	}
	for i := 0; i < cycles*ppuCyclesRatio; i++ {
		b.ppu.Step()
	}
	for i := 0; i < cycles; i++ {
		b.apu.Step()
	}
	return cycles, nil
}
