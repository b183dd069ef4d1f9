package nes

import (
	"errors"
	"testing"
)

func TestCPUReset(t *testing.T) {
	cpu, _ := newTestCPU()
	got := cpu.State()
	if got.PC != 0x8000 {
		t.Fatalf("PC: got=0x%04x, want=0x8000", got.PC)
	}
	if got.S != 0xFD {
		t.Fatalf("S: got=0x%02x, want=0xfd", got.S)
	}
	if got.P != 0x24 {
		t.Fatalf("P: got=0x%02x, want=0x24", got.P)
	}
	if got.Cycles != 7 {
		t.Fatalf("Cycles: got=%d, want=7", got.Cycles)
	}
}

func TestLDAFlags(t *testing.T) {
	tests := []struct {
		value byte
		z, n  bool
	}{
		{0x00, true, false},
		{0x01, false, false},
		{0x80, false, true},
	}
	for _, tt := range tests {
		cpu, _ := newTestCPU(0xA9, tt.value) // LDA #value
		cycles := mustStep(t, cpu, cpu.bus)
		if cycles != 2 {
			t.Fatalf("LDA #$%02x cycles: got=%d, want=2", tt.value, cycles)
		}
		if cpu.a != tt.value || cpu.p.z != tt.z || cpu.p.n != tt.n {
			t.Fatalf("LDA #$%02x: got a=0x%02x z=%t n=%t, want a=0x%02x z=%t n=%t",
				tt.value, cpu.a, cpu.p.z, cpu.p.n, tt.value, tt.z, tt.n)
		}
		if cpu.pc != 0x8002 {
			t.Fatalf("PC: got=0x%04x, want=0x8002", cpu.pc)
		}
	}
}

func TestADC(t *testing.T) {
	tests := []struct {
		a, m    byte
		carry   bool
		want    byte
		c, v, z bool
	}{
		{0x50, 0x10, false, 0x60, false, false, false},
		{0x50, 0x50, false, 0xA0, false, true, false},
		{0xD0, 0x90, false, 0x60, true, true, false},
		{0xFF, 0x01, false, 0x00, true, false, true},
		{0x00, 0x00, true, 0x01, false, false, false},
	}
	for _, tt := range tests {
		cpu, _ := newTestCPU(0x69, tt.m) // ADC #m
		cpu.a = tt.a
		cpu.p.c = tt.carry
		mustStep(t, cpu, cpu.bus)
		if cpu.a != tt.want || cpu.p.c != tt.c || cpu.p.v != tt.v || cpu.p.z != tt.z {
			t.Fatalf("0x%02x+0x%02x+%t: got a=0x%02x c=%t v=%t z=%t, want a=0x%02x c=%t v=%t z=%t",
				tt.a, tt.m, tt.carry, cpu.a, cpu.p.c, cpu.p.v, cpu.p.z, tt.want, tt.c, tt.v, tt.z)
		}
	}
}

func TestSBC(t *testing.T) {
	cpu, _ := newTestCPU(0xE9, 0x01) // SBC #$01
	cpu.a = 0x00
	cpu.p.c = true
	mustStep(t, cpu, cpu.bus)
	if cpu.a != 0xFF || cpu.p.c || !cpu.p.n {
		t.Fatalf("0x00-0x01: got a=0x%02x c=%t n=%t, want a=0xff c=false n=true", cpu.a, cpu.p.c, cpu.p.n)
	}
}

func TestJMPIndirectPageWrap(t *testing.T) {
	cpu, mem := newTestCPU(0x6C, 0xFF, 0x02) // JMP ($02FF)
	mem[0x02FF] = 0x00
	mem[0x0200] = 0x80
	mem[0x0300] = 0xFF
	cycles := mustStep(t, cpu, mem)
	if cpu.pc != 0x8000 {
		t.Fatalf("PC: got=0x%04x, want=0x8000", cpu.pc)
	}
	if cycles != 5 {
		t.Fatalf("cycles: got=%d, want=5", cycles)
	}
}

func TestZeroPageWrap(t *testing.T) {
	cpu, mem := newTestCPU(
		0xB5, 0xFF, // LDA $FF,X
		0xB1, 0xFF, // LDA ($FF),Y
	)
	mem[0x0000] = 0x42
	cpu.x = 0x01
	mustStep(t, cpu, mem)
	if cpu.a != 0x42 {
		t.Fatalf("LDA $FF,X: got=0x%02x, want=0x42", cpu.a)
	}
	// The pointer is read from $FF and $00.
	mem[0x00FF] = 0x34
	mem[0x0000] = 0x12
	mem[0x0100] = 0x56
	mem[0x1234] = 0x99
	cpu.y = 0
	mustStep(t, cpu, mem)
	if cpu.a != 0x99 {
		t.Fatalf("LDA ($FF),Y: got=0x%02x, want=0x99", cpu.a)
	}
}

func TestPageCrossCycles(t *testing.T) {
	cpu, mem := newTestCPU(
		0xBD, 0xFF, 0x01, // LDA $01FF,X
		0xBD, 0x00, 0x01, // LDA $0100,X
		0x9D, 0xFF, 0x01, // STA $01FF,X
	)
	cpu.x = 1
	if got := mustStep(t, cpu, mem); got != 5 {
		t.Fatalf("LDA abs,X crossing: got=%d, want=5", got)
	}
	if got := mustStep(t, cpu, mem); got != 4 {
		t.Fatalf("LDA abs,X: got=%d, want=4", got)
	}
	if got := mustStep(t, cpu, mem); got != 5 {
		t.Fatalf("STA abs,X: got=%d, want=5", got)
	}
}

func TestBranchCycles(t *testing.T) {
	// not taken
	cpu, mem := newTestCPU(0xD0, 0x10) // BNE +16
	cpu.p.z = true
	if got := mustStep(t, cpu, mem); got != 2 {
		t.Fatalf("not taken: got=%d, want=2", got)
	}
	// taken, same page
	cpu, mem = newTestCPU(0xD0, 0x10)
	cpu.p.z = false
	if got := mustStep(t, cpu, mem); got != 3 {
		t.Fatalf("taken: got=%d, want=3", got)
	}
	if cpu.pc != 0x8012 {
		t.Fatalf("PC: got=0x%04x, want=0x8012", cpu.pc)
	}
	// taken, backwards across a page
	cpu, mem = newTestCPU(0xD0, 0xFC) // BNE -4
	cpu.p.z = false
	if got := mustStep(t, cpu, mem); got != 4 {
		t.Fatalf("taken across a page: got=%d, want=4", got)
	}
	if cpu.pc != 0x7FFE {
		t.Fatalf("PC: got=0x%04x, want=0x7ffe", cpu.pc)
	}
}

func TestBRKAndRTI(t *testing.T) {
	cpu, mem := newTestCPU(0x00) // BRK
	mem[irqVector] = 0x00
	mem[irqVector+1] = 0x90
	mem[0x9000] = 0x40 // RTI
	cpu.p.c = true
	if got := mustStep(t, cpu, mem); got != 7 {
		t.Fatalf("BRK cycles: got=%d, want=7", got)
	}
	if cpu.pc != 0x9000 {
		t.Fatalf("PC: got=0x%04x, want=0x9000", cpu.pc)
	}
	if got := mem[0x01FB]; got != 0x35 {
		t.Fatalf("pushed P: got=0x%02x, want=0x35", got)
	}
	if got := uint16(mem[0x01FD])<<8 | uint16(mem[0x01FC]); got != 0x8002 {
		t.Fatalf("pushed PC: got=0x%04x, want=0x8002", got)
	}
	if !cpu.p.i {
		t.Fatalf("I flag: got=false, want=true")
	}
	mustStep(t, cpu, mem)
	if cpu.pc != 0x8002 {
		t.Fatalf("PC after RTI: got=0x%04x, want=0x8002", cpu.pc)
	}
	if got := cpu.p.encode(); got != 0x25 {
		t.Fatalf("P after RTI: got=0x%02x, want=0x25", got)
	}
	if cpu.s != 0xFD {
		t.Fatalf("S after RTI: got=0x%02x, want=0xfd", cpu.s)
	}
}

func TestPHPAndPLP(t *testing.T) {
	cpu, mem := newTestCPU(
		0x08, // PHP
		0xA9, 0xFF, // LDA #$FF
		0x48, // PHA
		0x28, // PLP
	)
	mustStep(t, cpu, mem)
	if got := mem[0x01FD]; got != 0x34 {
		t.Fatalf("PHP pushed: got=0x%02x, want=0x34", got)
	}
	mustStep(t, cpu, mem)
	mustStep(t, cpu, mem)
	if got := mustStep(t, cpu, mem); got != 4 {
		t.Fatalf("PLP cycles: got=%d, want=4", got)
	}
	if got := cpu.p.encode(); got != 0xEF {
		t.Fatalf("P after PLP: got=0x%02x, want=0xef", got)
	}
}

func TestJSRAndRTS(t *testing.T) {
	cpu, mem := newTestCPU(0x20, 0x00, 0x90) // JSR $9000
	mem[0x9000] = 0x60                        // RTS
	if got := mustStep(t, cpu, mem); got != 6 {
		t.Fatalf("JSR cycles: got=%d, want=6", got)
	}
	if got := uint16(mem[0x01FD])<<8 | uint16(mem[0x01FC]); got != 0x8002 {
		t.Fatalf("pushed: got=0x%04x, want=0x8002", got)
	}
	mustStep(t, cpu, mem)
	if cpu.pc != 0x8003 {
		t.Fatalf("PC after RTS: got=0x%04x, want=0x8003", cpu.pc)
	}
}

func TestShiftAccumulator(t *testing.T) {
	cpu, mem := newTestCPU(0x0A, 0x6A) // ASL A; ROR A
	cpu.a = 0x81
	mustStep(t, cpu, mem)
	if cpu.a != 0x02 || !cpu.p.c {
		t.Fatalf("ASL A: got a=0x%02x c=%t, want a=0x02 c=true", cpu.a, cpu.p.c)
	}
	mustStep(t, cpu, mem)
	if cpu.a != 0x81 || cpu.p.c {
		t.Fatalf("ROR A: got a=0x%02x c=%t, want a=0x81 c=false", cpu.a, cpu.p.c)
	}
}

func TestUnofficialOpcodes(t *testing.T) {
	cpu, mem := newTestCPU(
		0xA7, 0x10, // LAX $10
		0x87, 0x11, // SAX $11
		0xC7, 0x12, // DCP $12
		0x80, 0x00, // NOP #imm
		0xE7, 0x13, // ISC $13
	)
	mem[0x10] = 0xF0
	mem[0x12] = 0x01
	mem[0x13] = 0x0F
	mustStep(t, cpu, mem)
	if cpu.a != 0xF0 || cpu.x != 0xF0 {
		t.Fatalf("LAX: got a=0x%02x x=0x%02x, want 0xf0", cpu.a, cpu.x)
	}
	cpu.x = 0x3C
	mustStep(t, cpu, mem)
	if mem[0x11] != 0x30 {
		t.Fatalf("SAX: got=0x%02x, want=0x30", mem[0x11])
	}
	if got := mustStep(t, cpu, mem); got != 5 {
		t.Fatalf("DCP cycles: got=%d, want=5", got)
	}
	if mem[0x12] != 0x00 || !cpu.p.c {
		t.Fatalf("DCP: got m=0x%02x c=%t, want m=0x00 c=true", mem[0x12], cpu.p.c)
	}
	mustStep(t, cpu, mem)
	if cpu.pc != 0x8008 {
		t.Fatalf("PC: got=0x%04x, want=0x8008", cpu.pc)
	}
	// 0xf0 - 0x10 with carry set
	if got := mustStep(t, cpu, mem); got != 5 {
		t.Fatalf("ISC cycles: got=%d, want=5", got)
	}
	if mem[0x13] != 0x10 || cpu.a != 0xE0 || !cpu.p.c {
		t.Fatalf("ISC: got m=0x%02x a=0x%02x c=%t, want m=0x10 a=0xe0 c=true", mem[0x13], cpu.a, cpu.p.c)
	}
}

func TestIllegalOpcode(t *testing.T) {
	cpu, mem := newTestCPU(0x02) // JAM
	before := cpu.State()
	cycles, err := cpu.Step(mem)
	if !errors.Is(err, ErrIllegalOpcode) {
		t.Fatalf("err: got=%v, want=%v", err, ErrIllegalOpcode)
	}
	var opErr *OpcodeError
	if !errors.As(err, &opErr) {
		t.Fatalf("err: got=%T, want=*OpcodeError", err)
	}
	if opErr.Opcode != 0x02 || opErr.PC != 0x8000 {
		t.Fatalf("OpcodeError: got=%+v, want opcode=0x02 pc=0x8000", opErr)
	}
	if cycles != 0 {
		t.Fatalf("cycles: got=%d, want=0", cycles)
	}
	if after := cpu.State(); after != before {
		t.Fatalf("state: got=%v, want=%v", after, before)
	}
}

func TestInterrupts(t *testing.T) {
	cpu, mem := newTestCPU(0xEA, 0xEA) // NOP; NOP
	mem[nmiVector] = 0x00
	mem[nmiVector+1] = 0xA0
	mem[irqVector] = 0x00
	mem[irqVector+1] = 0xB0
	mem[0xA000] = 0x40 // RTI

	// I is set after reset, IRQ is ignored.
	cpu.SetIRQ(true)
	mustStep(t, cpu, mem)
	if cpu.pc != 0x8001 {
		t.Fatalf("PC with IRQ masked: got=0x%04x, want=0x8001", cpu.pc)
	}
	cpu.SetIRQ(false)

	if got := cpu.NMI(mem); got != 7 {
		t.Fatalf("NMI cycles: got=%d, want=7", got)
	}
	if cpu.pc != 0xA000 {
		t.Fatalf("PC after NMI: got=0x%04x, want=0xa000", cpu.pc)
	}
	if got := mem[0x01FB]; got&flagB != 0 || got&flagU == 0 {
		t.Fatalf("pushed P: got=0x%02x, want B clear and U set", got)
	}
	mustStep(t, cpu, mem) // RTI
	if cpu.pc != 0x8001 {
		t.Fatalf("PC after RTI: got=0x%04x, want=0x8001", cpu.pc)
	}

	cpu.p.i = false
	cpu.SetIRQ(true)
	if got := mustStep(t, cpu, mem); got != 7 {
		t.Fatalf("IRQ cycles: got=%d, want=7", got)
	}
	if cpu.pc != 0xB000 {
		t.Fatalf("PC after IRQ: got=0x%04x, want=0xb000", cpu.pc)
	}
}

func TestTriggerNMI(t *testing.T) {
	cpu, mem := newTestCPU(0xEA) // NOP
	mem[nmiVector] = 0x00
	mem[nmiVector+1] = 0xA0
	cpu.TriggerNMI()
	if got := mustStep(t, cpu, mem); got != 7 {
		t.Fatalf("cycles: got=%d, want=7", got)
	}
	if cpu.pc != 0xA000 {
		t.Fatalf("PC: got=0x%04x, want=0xa000", cpu.pc)
	}
	// The latch is consumed.
	mem[0xA000] = 0xEA
	mustStep(t, cpu, mem)
	if cpu.pc != 0xA001 {
		t.Fatalf("PC: got=0x%04x, want=0xa001", cpu.pc)
	}
}
