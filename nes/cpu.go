package nes

import (
	"errors"
	"fmt"
)

// CPU emulates NES CPU - is custom 6502 made by RICOH.
// References:
//   https://en.wikipedia.org/wiki/MOS_Technology_6502
//   http://www.6502.org/tutorials/6502opcodes.html
//   https://www.nesdev.org/wiki/CPU_unofficial_opcodes
//   http://hp.vector.co.jp/authors/VA042397/nes/6502.html (In Japanese)

const CPUFrequency = 1789773

const (
	nmiVector   uint16 = 0xFFFA
	resetVector uint16 = 0xFFFC
	irqVector   uint16 = 0xFFFE

	interruptCycles = 7
)

// ErrIllegalOpcode is matched by every *OpcodeError.
var ErrIllegalOpcode = errors.New("illegal opcode")

// OpcodeError is returned by Step for opcodes without defined semantics,
// including the JAM opcodes which lock up a real 6502.
type OpcodeError struct {
	Opcode   byte
	PC       uint16
	Mnemonic string
}

func (e *OpcodeError) Error() string {
	if e.Mnemonic != "" {
		return fmt.Sprintf("CPU executed %s: opcode=0x%02x, PC=0x%04x", e.Mnemonic, e.Opcode, e.PC)
	}
	return fmt.Sprintf("Tried to execute unimplemented instruction: opcode=0x%02x, PC=0x%04x", e.Opcode, e.PC)
}

func (e *OpcodeError) Unwrap() error {
	return ErrIllegalOpcode
}

// Memory is the CPU's only access to the rest of the system.
type Memory interface {
	Read(address uint16) byte
	Write(address uint16, data byte)
}

type addressingMode int

const (
	implied addressingMode = iota
	accumulator
	immediate
	zeropage
	zeropageX
	zeropageY
	relative
	absolute
	absoluteX
	absoluteY
	indirect
	indirectX
	indirectY
)

// Processor status bits.
const (
	flagC byte = 1 << 0
	flagZ byte = 1 << 1
	flagI byte = 1 << 2
	flagD byte = 1 << 3
	flagB byte = 1 << 4
	flagU byte = 1 << 5
	flagV byte = 1 << 6
	flagN byte = 1 << 7
)

type status struct {
	c bool // carry
	z bool // zero
	i bool // IRQ
	d bool // decimal - unused on NES
	b bool // break
	r bool // reserved - unused
	v bool // overflow
	n bool // negative
}

// encode encodes the status to a byte.
func (s *status) encode() byte {
	var res byte
	if s.c {
		res |= flagC
	}
	if s.z {
		res |= flagZ
	}
	if s.i {
		res |= flagI
	}
	if s.d {
		res |= flagD
	}
	if s.b {
		res |= flagB
	}
	if s.r {
		res |= flagU
	}
	if s.v {
		res |= flagV
	}
	if s.n {
		res |= flagN
	}
	return res
}

// decodeFrom decodes a byte to the status.
func (s *status) decodeFrom(data byte) {
	s.c = data&flagC != 0
	s.z = data&flagZ != 0
	s.i = data&flagI != 0
	s.d = data&flagD != 0
	s.b = data&flagB != 0
	s.r = data&flagU != 0
	s.v = data&flagV != 0
	s.n = data&flagN != 0
}

// Registers is a snapshot of the CPU registers.
type Registers struct {
	A  byte
	X  byte
	Y  byte
	S  byte
	PC uint16
	P  byte
}

// CPUState is the inspectable state of the CPU.
type CPUState struct {
	Registers
	Cycles uint64
}

func (s CPUState) String() string {
	return fmt.Sprintf("PC=0x%04x, A=0x%02x, X=0x%02x, Y=0x%02x, S=0x%02x, P=0x%02x, CYC=%d",
		s.PC, s.A, s.X, s.Y, s.S, s.P, s.Cycles)
}

type CPU struct {
	p            *status // Processor status flag bits
	a            byte    // Accumulator register
	x            byte    // Index register
	y            byte    // Index register
	pc           uint16  // Program counter
	s            byte    // Stack pointer
	cycles       uint64  // Total executed cycles
	bus          Memory
	instructions [256]instruction
	nmiTriggered bool
	irqLine      bool

	// Per-instruction scratch state.
	pageCrossed bool
	extraCycles int

	// For debug.
	lastPC      uint16
	lastOpcode  byte
	lastOperand uint16
}

type instruction struct {
	mnemonic  string
	mode      addressingMode
	execute   func(addressingMode, uint16)
	size      uint16
	cycles    int
	pageCycle bool // +1 cycle when the effective address crosses a page
}

// NewCPU creates a new NES CPU in its power-on state.
func NewCPU() *CPU {
	c := &CPU{
		p: &status{},
		s: 0xFD,
	}
	c.p.decodeFrom(flagI | flagU)
	c.instructions = c.createInstructions()
	return c
}

// Reset does Reset.
func (c *CPU) Reset(mem Memory) {
	c.bus = mem
	c.pc = c.read16(resetVector)
	c.s = 0xFD
	c.p.decodeFrom(flagI | flagU)
	c.nmiTriggered = false
	c.cycles += interruptCycles
}

// State returns a snapshot of the registers and the cycle counter.
func (c *CPU) State() CPUState {
	return CPUState{
		Registers: Registers{A: c.a, X: c.x, Y: c.y, S: c.s, PC: c.pc, P: c.p.encode()},
		Cycles:    c.cycles,
	}
}

// TriggerNMI latches a non-maskable interrupt, serviced by the next Step.
func (c *CPU) TriggerNMI() {
	c.nmiTriggered = true
}

// SetIRQ sets the level of the /IRQ line, true means asserted.
func (c *CPU) SetIRQ(asserted bool) {
	c.irqLine = asserted
}

// lastExecution describes the last executed instruction, for debug.
func (c *CPU) lastExecution() string {
	inst := c.instructions[c.lastOpcode]
	return fmt.Sprintf("PC=0x%04x, opcode=0x%02x, mnemonic=%s, operand=0x%04x",
		c.lastPC, c.lastOpcode, inst.mnemonic, c.lastOperand)
}

func (c *CPU) read(address uint16) byte {
	return c.bus.Read(address)
}

// read16 reads 2 bytes.
func (c *CPU) read16(address uint16) uint16 {
	l := c.read(address)
	h := c.read(address + 1)
	return uint16(h)<<8 | uint16(l)
}

// read16Wrap reads 2 bytes without carrying into the high byte of the address,
// it's the JMP ($xxFF) bug of 6502.
func (c *CPU) read16Wrap(address uint16) uint16 {
	l := c.read(address)
	h := c.read(address&0xFF00 | uint16(byte(address)+1))
	return uint16(h)<<8 | uint16(l)
}

// read16ZeroPage reads a pointer from the zero page, wrapping at $FF.
func (c *CPU) read16ZeroPage(address byte) uint16 {
	l := c.read(uint16(address))
	h := c.read(uint16(address + 1))
	return uint16(h)<<8 | uint16(l)
}

func (c *CPU) write(address uint16, data byte) {
	c.bus.Write(address, data)
}

// setN sets whether the x is negative or positive.
func (c *CPU) setN(x byte) {
	c.p.n = x&0x80 != 0
}

// setZ sets whether the x is 0 or not.
func (c *CPU) setZ(x byte) {
	c.p.z = x == 0
}

func (c *CPU) setZN(x byte) {
	c.setZ(x)
	c.setN(x)
}

// push pushes data to stack.
// "With the 6502, the stack is always on page one ($100-$1FF) and works top down."
func (c *CPU) push(x byte) {
	c.write(0x100|uint16(c.s), x)
	c.s--
}

// pop pops data from stack.
// "With the 6502, the stack is always on page one ($100-$1FF) and works top down."
func (c *CPU) pop() byte {
	c.s++
	return c.read(0x100 | uint16(c.s))
}

func (c *CPU) push16(x uint16) {
	c.push(byte(x >> 8))
	c.push(byte(x))
}

func (c *CPU) pop16() uint16 {
	l := c.pop()
	h := c.pop()
	return uint16(h)<<8 | uint16(l)
}

// pagesDiffer reports whether two addresses are on different pages.
func pagesDiffer(a, b uint16) bool {
	return a&0xFF00 != b&0xFF00
}

// interrupt pushes PC and status (B clear, U set), then jumps through the vector.
func (c *CPU) interrupt(vector uint16) int {
	c.push16(c.pc)
	c.push(c.p.encode()&^flagB | flagU)
	c.p.i = true
	c.pc = c.read16(vector)
	c.cycles += interruptCycles
	return interruptCycles
}

// NMI runs the non-maskable interrupt sequence immediately, this is called by the bus on a /NMI edge.
func (c *CPU) NMI(mem Memory) int {
	c.bus = mem
	return c.interrupt(nmiVector)
}

// operand computes the effective address of the current instruction, PC points at the operand bytes.
func (c *CPU) operand(mode addressingMode) (uint16, bool) {
	switch mode {
	case immediate:
		return c.pc, false
	case zeropage:
		return uint16(c.read(c.pc)), false
	case zeropageX:
		// If the address exceeds 0xFF (page crossed), back to 0x00
		return uint16(c.read(c.pc) + c.x), false
	case zeropageY:
		return uint16(c.read(c.pc) + c.y), false
	case relative:
		// Relative will look up a signed value, relative to the next instruction.
		offset := c.read(c.pc)
		next := c.pc + 1
		return next + uint16(int8(offset)), false
	case absolute:
		return c.read16(c.pc), false
	case absoluteX:
		base := c.read16(c.pc)
		address := base + uint16(c.x)
		return address, pagesDiffer(base, address)
	case absoluteY:
		base := c.read16(c.pc)
		address := base + uint16(c.y)
		return address, pagesDiffer(base, address)
	case indirect:
		return c.read16Wrap(c.read16(c.pc)), false
	case indirectX:
		return c.read16ZeroPage(c.read(c.pc) + c.x), false
	case indirectY:
		base := c.read16ZeroPage(c.read(c.pc))
		address := base + uint16(c.y)
		return address, pagesDiffer(base, address)
	}
	// implied, accumulator
	return 0, false
}

// Step performs the instruction cycle - fetch, decode, execute, and returns the consumed cycles.
// A pending NMI, or an IRQ while the I flag is clear, is serviced instead of an instruction.
func (c *CPU) Step(mem Memory) (int, error) {
	c.bus = mem
	// Non-maskable interrupt.
	if c.nmiTriggered {
		c.nmiTriggered = false
		return c.interrupt(nmiVector), nil
	}
	if c.irqLine && !c.p.i {
		return c.interrupt(irqVector), nil
	}
	pc := c.pc
	opcode := c.read(pc)
	inst := c.instructions[opcode]
	if inst.execute == nil {
		return 0, &OpcodeError{Opcode: opcode, PC: pc, Mnemonic: inst.mnemonic}
	}
	c.pc++
	operand, crossed := c.operand(inst.mode)
	c.pc = pc + inst.size
	c.pageCrossed = crossed
	c.extraCycles = 0
	c.lastPC, c.lastOpcode, c.lastOperand = pc, opcode, operand
	inst.execute(inst.mode, operand)
	cycles := inst.cycles + c.extraCycles
	if crossed && inst.pageCycle {
		cycles++
	}
	c.cycles += uint64(cycles)
	return cycles, nil
}
