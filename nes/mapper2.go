package nes

import "github.com/golang/glog"

// Mapper2: https://www.nesdev.org/wiki/UxROM
type mapper2 struct {
	banks       int
	currentBank int
	prgROM      []byte
	chr         []byte
	chrRAM      bool
	mirroring   MirrorMode
}

func newMapper2(prgROM, chrROM []byte, mirroring MirrorMode) *mapper2 {
	chr, isRAM := chrMemory(chrROM)
	return &mapper2{
		banks:     len(prgROM) / prgROMSizeUnit,
		prgROM:    prgROM,
		chr:       chr,
		chrRAM:    isRAM,
		mirroring: mirroring,
	}
}

func (m *mapper2) ReadPRG(address uint16) byte {
	// CPU $8000-$BFFF: 16 KB switchable PRG ROM bank
	// CPU $C000-$FFFF: 16 KB PRG ROM bank, fixed to the last bank
	switch {
	case 0xC000 <= address:
		i := (m.banks-1)*prgROMSizeUnit + int(address-0xC000)
		return m.prgROM[i]
	case 0x8000 <= address:
		i := m.currentBank*prgROMSizeUnit + int(address-0x8000)
		return m.prgROM[i]
	}
	return 0xFF
}

func (m *mapper2) WritePRG(address uint16, data byte) {
	if 0x8000 <= address {
		m.currentBank = int(data) % m.banks
		return
	}
	glog.V(2).Infof("Ignored cartridge write: address=0x%04x, data=0x%02x", address, data)
}

func (m *mapper2) ReadCHR(address uint16) byte {
	return m.chr[address&0x1FFF]
}

func (m *mapper2) WriteCHR(address uint16, data byte) {
	if m.chrRAM {
		m.chr[address&0x1FFF] = data
	}
}

func (m *mapper2) Mirroring() MirrorMode {
	return m.mirroring
}
