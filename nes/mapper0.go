package nes

import "github.com/golang/glog"

// Mapper0: https://www.nesdev.org/wiki/NROM
type mapper0 struct {
	prgROM    []byte
	prgRAM    [0x2000]byte
	chr       []byte
	chrRAM    bool
	mirroring MirrorMode
}

func newMapper0(prgROM, chrROM []byte, mirroring MirrorMode) *mapper0 {
	chr, isRAM := chrMemory(chrROM)
	return &mapper0{prgROM: prgROM, chr: chr, chrRAM: isRAM, mirroring: mirroring}
}

func (m *mapper0) ReadPRG(address uint16) byte {
	switch {
	case 0x8000 <= address:
		// CPU $C000-$FFFF: Last 16 KB of ROM (NROM-256) or mirror of $8000-$BFFF (NROM-128).
		return m.prgROM[int(address-0x8000)%len(m.prgROM)]
	case 0x6000 <= address:
		// CPU $6000-$7FFF: Family Basic only: PRG RAM.
		return m.prgRAM[address-0x6000]
	}
	return 0xFF
}

func (m *mapper0) WritePRG(address uint16, data byte) {
	switch {
	case 0x8000 <= address:
		glog.V(1).Infof("Ignored write to PRG ROM: address=0x%04x, data=0x%02x", address, data)
	case 0x6000 <= address:
		m.prgRAM[address-0x6000] = data
	}
}

func (m *mapper0) ReadCHR(address uint16) byte {
	return m.chr[address&0x1FFF]
}

func (m *mapper0) WriteCHR(address uint16, data byte) {
	if !m.chrRAM {
		glog.V(1).Infof("Ignored write to CHR ROM: address=0x%04x, data=0x%02x", address, data)
		return
	}
	m.chr[address&0x1FFF] = data
}

func (m *mapper0) Mirroring() MirrorMode {
	return m.mirroring
}
