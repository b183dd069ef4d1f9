package nes

import "testing"

func TestWRAMMirrors(t *testing.T) {
	c := newTestConsole(t)
	for address := uint16(0); address < 0x2000; address++ {
		data := byte(address>>3) ^ byte(address)
		c.bus.Write(address, data)
		for _, mirror := range []uint16{0x0000, 0x0800, 0x1000, 0x1800} {
			a := mirror + address%0x0800
			if got := c.bus.Read(a); got != data {
				t.Fatalf("write 0x%04x, read 0x%04x: got=0x%02x, want=0x%02x", address, a, got, data)
			}
		}
	}
	c.bus.Write(0x1FFF, 0x66)
	if got := c.bus.Read(0x07FF); got != 0x66 {
		t.Fatalf("0x07ff: got=0x%02x, want=0x66", got)
	}
}

func TestPPURegisterMirrors(t *testing.T) {
	c := newTestConsole(t)
	c.bus.Write(0x2006, 0x3F) // PPUADDR
	c.bus.Write(0x200E, 0x00) // PPUADDR mirror
	c.bus.Write(0x3FF7, 0x2A) // PPUDATA mirror
	if got := c.ppu.bus.read(0x3F00); got != 0x2A {
		t.Fatalf("palette: got=0x%02x, want=0x2a", got)
	}
	c.ppu.vblank = true
	if got := c.bus.Read(0x3FFA); got&statusVBlank == 0 { // PPUSTATUS mirror
		t.Fatalf("PPUSTATUS: got=0x%02x, want VBlank set", got)
	}
	if c.ppu.vblank {
		t.Fatalf("reading PPUSTATUS through a mirror must clear VBlank")
	}
}

func TestOpenBus(t *testing.T) {
	c := NewConsole(DefaultConfig())
	if got := c.bus.Read(0x8000); got != 0xFF {
		t.Fatalf("no cartridge: got=0x%02x, want=0xff", got)
	}
	c = newTestConsole(t)
	tests := []struct {
		address uint16
		want    byte
	}{
		{0x4000, 0x00},
		{0x4018, 0x00},
		{0x401F, 0x00},
		{0x4020, 0xFF},
		{0x5000, 0xFF},
	}
	for _, tt := range tests {
		if got := c.bus.Read(tt.address); got != tt.want {
			t.Fatalf("0x%04x: got=0x%02x, want=0x%02x", tt.address, got, tt.want)
		}
	}
}

func TestPRGRAM(t *testing.T) {
	c := newTestConsole(t)
	c.bus.Write(0x6000, 0x12)
	if got := c.bus.Read(0x6000); got != 0x12 {
		t.Fatalf("got=0x%02x, want=0x12", got)
	}
	// ROM is read only.
	c.bus.Write(0x8000, 0x12)
	if got := c.bus.Read(0x8000); got != 0x00 {
		t.Fatalf("ROM: got=0x%02x, want=0x00", got)
	}
}

func TestControllerPorts(t *testing.T) {
	c := newTestConsole(t)
	c.SetButtons(0, [8]bool{true, false, false, true, false, false, false, true}) // A, Start, Right
	c.SetButtons(1, [8]bool{false, true})                                          // B
	c.bus.Write(0x4016, 1)
	c.bus.Write(0x4016, 0)
	want1 := []byte{1, 0, 0, 1, 0, 0, 0, 1, 1, 1}
	for i, w := range want1 {
		if got := c.bus.Read(0x4016); got != w|0x40 {
			t.Fatalf("1P read %d: got=0x%02x, want=0x%02x", i, got, w|0x40)
		}
	}
	want2 := []byte{0, 1, 0, 0, 0, 0, 0, 0, 1}
	for i, w := range want2 {
		if got := c.bus.Read(0x4017); got != w|0x40 {
			t.Fatalf("2P read %d: got=0x%02x, want=0x%02x", i, got, w|0x40)
		}
	}
}

func TestPPUClockRatio(t *testing.T) {
	c := newTestConsole(t, 0xA9, 0x00, 0xEA) // LDA #$00; NOP
	for i := 0; i < 2; i++ {
		before := c.ppu.scanline*cyclesPerScanline + c.ppu.cycle
		cycles, err := c.bus.Clock()
		if err != nil {
			t.Fatalf("Clock: %v", err)
		}
		after := c.ppu.scanline*cyclesPerScanline + c.ppu.cycle
		if got := after - before; got != 3*cycles {
			t.Fatalf("PPU dots: got=%d, want=%d", got, 3*cycles)
		}
	}
}

func TestOAMDMA(t *testing.T) {
	c := newTestConsole(t,
		0xA9, 0x02, // LDA #$02
		0x8D, 0x14, 0x40, // STA $4014
		0x04, 0x00, // NOP $00
		0x8D, 0x14, 0x40, // STA $4014
	)
	for i := 0; i < 256; i++ {
		c.bus.Write(0x0200+uint16(i), byte(i))
	}
	// The reset sequence leaves the cycle counter at 7, the first DMA starts on an odd cycle.
	for i, want := range []int{2, 4 + 514, 3, 4 + 513} {
		got, err := c.bus.Clock()
		if err != nil {
			t.Fatalf("Clock: %v", err)
		}
		if got != want {
			t.Fatalf("instruction %d cycles: got=%d, want=%d", i, got, want)
		}
	}
	if got := c.CPUState().Cycles; got != 7+2+518+3+517 {
		t.Fatalf("total cycles: got=%d, want=%d", got, 7+2+518+3+517)
	}
	for i := 0; i < 256; i++ {
		if c.ppu.oamData[i] != byte(i) {
			t.Fatalf("OAM[%d]: got=0x%02x, want=0x%02x", i, c.ppu.oamData[i], i)
		}
	}
}

func TestNMIIsEdgeTriggered(t *testing.T) {
	image := newTestImage(0, 1, 1, []byte{
		0xA9, 0x80, // LDA #$80
		0x8D, 0x00, 0x20, // STA $2000
		0x4C, 0x05, 0x80, // JMP $8005
		0xEA, 0xEA, // padding
		0xE8, // $800A: INX
		0x40, // RTI
	})
	setVector(image, nmiVector, 0x800A)
	c := NewConsole(DefaultConfig())
	if err := c.LoadROM(image); err != nil {
		t.Fatalf("LoadROM: %v", err)
	}
	for i := 0; i < 3; i++ {
		if _, err := c.RunFrame(); err != nil {
			t.Fatalf("RunFrame: %v", err)
		}
	}
	// VBlank stays set until the pre-render line, a level triggered NMI would run many times.
	// The NMI of a frame is taken on the first clock after RunFrame returns.
	if got := c.CPUState().X; got != 2 {
		t.Fatalf("NMI count: got=%d, want=2", got)
	}
}
