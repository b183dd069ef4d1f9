package nes

import "testing"

// flatMemory is 64KB of RAM, used to run the CPU without devices.
type flatMemory [0x10000]byte

func (m *flatMemory) Read(address uint16) byte {
	return m[address]
}

func (m *flatMemory) Write(address uint16, data byte) {
	m[address] = data
}

// newTestCPU places program at 0x8000 and resets the CPU to it.
func newTestCPU(program ...byte) (*CPU, *flatMemory) {
	mem := &flatMemory{}
	copy(mem[0x8000:], program)
	mem[resetVector] = 0x00
	mem[resetVector+1] = 0x80
	cpu := NewCPU()
	cpu.Reset(mem)
	return cpu, mem
}

func mustStep(t *testing.T, cpu *CPU, mem Memory) int {
	t.Helper()
	cycles, err := cpu.Step(mem)
	if err != nil {
		t.Fatalf("Step: %v", err)
	}
	return cycles
}

// newTestImage builds an iNES image with program at the start of PRG ($8000),
// all vectors point at $8000 until changed by setVector.
func newTestImage(mapper byte, prgBanks, chrBanks int, program []byte) []byte {
	header := []byte{'N', 'E', 'S', msDOSEOF, byte(prgBanks), byte(chrBanks), mapper << 4, mapper & 0xF0,
		0, 0, 0, 0, 0, 0, 0, 0}
	prg := make([]byte, prgBanks*prgROMSizeUnit)
	copy(prg, program)
	chr := make([]byte, chrBanks*chrROMSizeUnit)
	image := append(append(header, prg...), chr...)
	for _, v := range []uint16{nmiVector, resetVector, irqVector} {
		setVector(image, v, 0x8000)
	}
	return image
}

// setVector writes an interrupt vector in the last PRG bank, mapped at $C000-$FFFF.
func setVector(image []byte, vector, target uint16) {
	prgSize := int(image[4]) * prgROMSizeUnit
	i := inesHeaderSizeBytes + prgSize - prgROMSizeUnit + int(vector-0xC000)
	image[i] = byte(target)
	image[i+1] = byte(target >> 8)
}

// newTestConsole loads program into a fresh console.
func newTestConsole(t *testing.T, program ...byte) *Console {
	t.Helper()
	c := NewConsole(DefaultConfig())
	if err := c.LoadROM(newTestImage(0, 1, 1, program)); err != nil {
		t.Fatalf("LoadROM: %v", err)
	}
	return c
}
