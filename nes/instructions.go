package nes

// createInstructions builds the decode table, indexed by opcode.
// Unofficial opcodes follow https://www.nesdev.org/wiki/CPU_unofficial_opcodes,
// JAM opcodes have no execute function and stop the CPU with an *OpcodeError.
func (c *CPU) createInstructions() [256]instruction {
	return [256]instruction{
		{"BRK", implied, c.brk, 2, 7, false},     // 0x00
		{"ORA", indirectX, c.ora, 2, 6, false},   // 0x01
		{"JAM", implied, nil, 1, 2, false},       // 0x02
		{"SLO", indirectX, c.slo, 2, 8, false},   // 0x03
		{"NOP", zeropage, c.nop, 2, 3, false},    // 0x04
		{"ORA", zeropage, c.ora, 2, 3, false},    // 0x05
		{"ASL", zeropage, c.asl, 2, 5, false},    // 0x06
		{"SLO", zeropage, c.slo, 2, 5, false},    // 0x07
		{"PHP", implied, c.php, 1, 3, false},     // 0x08
		{"ORA", immediate, c.ora, 2, 2, false},   // 0x09
		{"ASL", accumulator, c.asl, 1, 2, false}, // 0x0A
		{"ANC", immediate, c.anc, 2, 2, false},   // 0x0B
		{"NOP", absolute, c.nop, 3, 4, false},    // 0x0C
		{"ORA", absolute, c.ora, 3, 4, false},    // 0x0D
		{"ASL", absolute, c.asl, 3, 6, false},    // 0x0E
		{"SLO", absolute, c.slo, 3, 6, false},    // 0x0F
		{"BPL", relative, c.bpl, 2, 2, false},    // 0x10
		{"ORA", indirectY, c.ora, 2, 5, true},    // 0x11
		{"JAM", implied, nil, 1, 2, false},       // 0x12
		{"SLO", indirectY, c.slo, 2, 8, false},   // 0x13
		{"NOP", zeropageX, c.nop, 2, 4, false},   // 0x14
		{"ORA", zeropageX, c.ora, 2, 4, false},   // 0x15
		{"ASL", zeropageX, c.asl, 2, 6, false},   // 0x16
		{"SLO", zeropageX, c.slo, 2, 6, false},   // 0x17
		{"CLC", implied, c.clc, 1, 2, false},     // 0x18
		{"ORA", absoluteY, c.ora, 3, 4, true},    // 0x19
		{"NOP", implied, c.nop, 1, 2, false},     // 0x1A
		{"SLO", absoluteY, c.slo, 3, 7, false},   // 0x1B
		{"NOP", absoluteX, c.nop, 3, 4, true},    // 0x1C
		{"ORA", absoluteX, c.ora, 3, 4, true},    // 0x1D
		{"ASL", absoluteX, c.asl, 3, 7, false},   // 0x1E
		{"SLO", absoluteX, c.slo, 3, 7, false},   // 0x1F
		{"JSR", absolute, c.jsr, 3, 6, false},    // 0x20
		{"AND", indirectX, c.and, 2, 6, false},   // 0x21
		{"JAM", implied, nil, 1, 2, false},       // 0x22
		{"RLA", indirectX, c.rla, 2, 8, false},   // 0x23
		{"BIT", zeropage, c.bit, 2, 3, false},    // 0x24
		{"AND", zeropage, c.and, 2, 3, false},    // 0x25
		{"ROL", zeropage, c.rol, 2, 5, false},    // 0x26
		{"RLA", zeropage, c.rla, 2, 5, false},    // 0x27
		{"PLP", implied, c.plp, 1, 4, false},     // 0x28
		{"AND", immediate, c.and, 2, 2, false},   // 0x29
		{"ROL", accumulator, c.rol, 1, 2, false}, // 0x2A
		{"ANC", immediate, c.anc, 2, 2, false},   // 0x2B
		{"BIT", absolute, c.bit, 3, 4, false},    // 0x2C
		{"AND", absolute, c.and, 3, 4, false},    // 0x2D
		{"ROL", absolute, c.rol, 3, 6, false},    // 0x2E
		{"RLA", absolute, c.rla, 3, 6, false},    // 0x2F
		{"BMI", relative, c.bmi, 2, 2, false},    // 0x30
		{"AND", indirectY, c.and, 2, 5, true},    // 0x31
		{"JAM", implied, nil, 1, 2, false},       // 0x32
		{"RLA", indirectY, c.rla, 2, 8, false},   // 0x33
		{"NOP", zeropageX, c.nop, 2, 4, false},   // 0x34
		{"AND", zeropageX, c.and, 2, 4, false},   // 0x35
		{"ROL", zeropageX, c.rol, 2, 6, false},   // 0x36
		{"RLA", zeropageX, c.rla, 2, 6, false},   // 0x37
		{"SEC", implied, c.sec, 1, 2, false},     // 0x38
		{"AND", absoluteY, c.and, 3, 4, true},    // 0x39
		{"NOP", implied, c.nop, 1, 2, false},     // 0x3A
		{"RLA", absoluteY, c.rla, 3, 7, false},   // 0x3B
		{"NOP", absoluteX, c.nop, 3, 4, true},    // 0x3C
		{"AND", absoluteX, c.and, 3, 4, true},    // 0x3D
		{"ROL", absoluteX, c.rol, 3, 7, false},   // 0x3E
		{"RLA", absoluteX, c.rla, 3, 7, false},   // 0x3F
		{"RTI", implied, c.rti, 1, 6, false},     // 0x40
		{"EOR", indirectX, c.eor, 2, 6, false},   // 0x41
		{"JAM", implied, nil, 1, 2, false},       // 0x42
		{"SRE", indirectX, c.sre, 2, 8, false},   // 0x43
		{"NOP", zeropage, c.nop, 2, 3, false},    // 0x44
		{"EOR", zeropage, c.eor, 2, 3, false},    // 0x45
		{"LSR", zeropage, c.lsr, 2, 5, false},    // 0x46
		{"SRE", zeropage, c.sre, 2, 5, false},    // 0x47
		{"PHA", implied, c.pha, 1, 3, false},     // 0x48
		{"EOR", immediate, c.eor, 2, 2, false},   // 0x49
		{"LSR", accumulator, c.lsr, 1, 2, false}, // 0x4A
		{"ALR", immediate, c.alr, 2, 2, false},   // 0x4B
		{"JMP", absolute, c.jmp, 3, 3, false},    // 0x4C
		{"EOR", absolute, c.eor, 3, 4, false},    // 0x4D
		{"LSR", absolute, c.lsr, 3, 6, false},    // 0x4E
		{"SRE", absolute, c.sre, 3, 6, false},    // 0x4F
		{"BVC", relative, c.bvc, 2, 2, false},    // 0x50
		{"EOR", indirectY, c.eor, 2, 5, true},    // 0x51
		{"JAM", implied, nil, 1, 2, false},       // 0x52
		{"SRE", indirectY, c.sre, 2, 8, false},   // 0x53
		{"NOP", zeropageX, c.nop, 2, 4, false},   // 0x54
		{"EOR", zeropageX, c.eor, 2, 4, false},   // 0x55
		{"LSR", zeropageX, c.lsr, 2, 6, false},   // 0x56
		{"SRE", zeropageX, c.sre, 2, 6, false},   // 0x57
		{"CLI", implied, c.cli, 1, 2, false},     // 0x58
		{"EOR", absoluteY, c.eor, 3, 4, true},    // 0x59
		{"NOP", implied, c.nop, 1, 2, false},     // 0x5A
		{"SRE", absoluteY, c.sre, 3, 7, false},   // 0x5B
		{"NOP", absoluteX, c.nop, 3, 4, true},    // 0x5C
		{"EOR", absoluteX, c.eor, 3, 4, true},    // 0x5D
		{"LSR", absoluteX, c.lsr, 3, 7, false},   // 0x5E
		{"SRE", absoluteX, c.sre, 3, 7, false},   // 0x5F
		{"RTS", implied, c.rts, 1, 6, false},     // 0x60
		{"ADC", indirectX, c.adc, 2, 6, false},   // 0x61
		{"JAM", implied, nil, 1, 2, false},       // 0x62
		{"RRA", indirectX, c.rra, 2, 8, false},   // 0x63
		{"NOP", zeropage, c.nop, 2, 3, false},    // 0x64
		{"ADC", zeropage, c.adc, 2, 3, false},    // 0x65
		{"ROR", zeropage, c.ror, 2, 5, false},    // 0x66
		{"RRA", zeropage, c.rra, 2, 5, false},    // 0x67
		{"PLA", implied, c.pla, 1, 4, false},     // 0x68
		{"ADC", immediate, c.adc, 2, 2, false},   // 0x69
		{"ROR", accumulator, c.ror, 1, 2, false}, // 0x6A
		{"ARR", immediate, c.arr, 2, 2, false},   // 0x6B
		{"JMP", indirect, c.jmp, 3, 5, false},    // 0x6C
		{"ADC", absolute, c.adc, 3, 4, false},    // 0x6D
		{"ROR", absolute, c.ror, 3, 6, false},    // 0x6E
		{"RRA", absolute, c.rra, 3, 6, false},    // 0x6F
		{"BVS", relative, c.bvs, 2, 2, false},    // 0x70
		{"ADC", indirectY, c.adc, 2, 5, true},    // 0x71
		{"JAM", implied, nil, 1, 2, false},       // 0x72
		{"RRA", indirectY, c.rra, 2, 8, false},   // 0x73
		{"NOP", zeropageX, c.nop, 2, 4, false},   // 0x74
		{"ADC", zeropageX, c.adc, 2, 4, false},   // 0x75
		{"ROR", zeropageX, c.ror, 2, 6, false},   // 0x76
		{"RRA", zeropageX, c.rra, 2, 6, false},   // 0x77
		{"SEI", implied, c.sei, 1, 2, false},     // 0x78
		{"ADC", absoluteY, c.adc, 3, 4, true},    // 0x79
		{"NOP", implied, c.nop, 1, 2, false},     // 0x7A
		{"RRA", absoluteY, c.rra, 3, 7, false},   // 0x7B
		{"NOP", absoluteX, c.nop, 3, 4, true},    // 0x7C
		{"ADC", absoluteX, c.adc, 3, 4, true},    // 0x7D
		{"ROR", absoluteX, c.ror, 3, 7, false},   // 0x7E
		{"RRA", absoluteX, c.rra, 3, 7, false},   // 0x7F
		{"NOP", immediate, c.nop, 2, 2, false},   // 0x80
		{"STA", indirectX, c.sta, 2, 6, false},   // 0x81
		{"NOP", immediate, c.nop, 2, 2, false},   // 0x82
		{"SAX", indirectX, c.sax, 2, 6, false},   // 0x83
		{"STY", zeropage, c.sty, 2, 3, false},    // 0x84
		{"STA", zeropage, c.sta, 2, 3, false},    // 0x85
		{"STX", zeropage, c.stx, 2, 3, false},    // 0x86
		{"SAX", zeropage, c.sax, 2, 3, false},    // 0x87
		{"DEY", implied, c.dey, 1, 2, false},     // 0x88
		{"NOP", immediate, c.nop, 2, 2, false},   // 0x89
		{"TXA", implied, c.txa, 1, 2, false},     // 0x8A
		{"XAA", immediate, c.xaa, 2, 2, false},   // 0x8B
		{"STY", absolute, c.sty, 3, 4, false},    // 0x8C
		{"STA", absolute, c.sta, 3, 4, false},    // 0x8D
		{"STX", absolute, c.stx, 3, 4, false},    // 0x8E
		{"SAX", absolute, c.sax, 3, 4, false},    // 0x8F
		{"BCC", relative, c.bcc, 2, 2, false},    // 0x90
		{"STA", indirectY, c.sta, 2, 6, false},   // 0x91
		{"JAM", implied, nil, 1, 2, false},       // 0x92
		{"AHX", indirectY, c.ahx, 2, 6, false},   // 0x93
		{"STY", zeropageX, c.sty, 2, 4, false},   // 0x94
		{"STA", zeropageX, c.sta, 2, 4, false},   // 0x95
		{"STX", zeropageY, c.stx, 2, 4, false},   // 0x96
		{"SAX", zeropageY, c.sax, 2, 4, false},   // 0x97
		{"TYA", implied, c.tya, 1, 2, false},     // 0x98
		{"STA", absoluteY, c.sta, 3, 5, false},   // 0x99
		{"TXS", implied, c.txs, 1, 2, false},     // 0x9A
		{"TAS", absoluteY, c.tas, 3, 5, false},   // 0x9B
		{"SHY", absoluteX, c.shy, 3, 5, false},   // 0x9C
		{"STA", absoluteX, c.sta, 3, 5, false},   // 0x9D
		{"SHX", absoluteY, c.shx, 3, 5, false},   // 0x9E
		{"AHX", absoluteY, c.ahx, 3, 5, false},   // 0x9F
		{"LDY", immediate, c.ldy, 2, 2, false},   // 0xA0
		{"LDA", indirectX, c.lda, 2, 6, false},   // 0xA1
		{"LDX", immediate, c.ldx, 2, 2, false},   // 0xA2
		{"LAX", indirectX, c.lax, 2, 6, false},   // 0xA3
		{"LDY", zeropage, c.ldy, 2, 3, false},    // 0xA4
		{"LDA", zeropage, c.lda, 2, 3, false},    // 0xA5
		{"LDX", zeropage, c.ldx, 2, 3, false},    // 0xA6
		{"LAX", zeropage, c.lax, 2, 3, false},    // 0xA7
		{"TAY", implied, c.tay, 1, 2, false},     // 0xA8
		{"LDA", immediate, c.lda, 2, 2, false},   // 0xA9
		{"TAX", implied, c.tax, 1, 2, false},     // 0xAA
		{"LXA", immediate, c.lxa, 2, 2, false},   // 0xAB
		{"LDY", absolute, c.ldy, 3, 4, false},    // 0xAC
		{"LDA", absolute, c.lda, 3, 4, false},    // 0xAD
		{"LDX", absolute, c.ldx, 3, 4, false},    // 0xAE
		{"LAX", absolute, c.lax, 3, 4, false},    // 0xAF
		{"BCS", relative, c.bcs, 2, 2, false},    // 0xB0
		{"LDA", indirectY, c.lda, 2, 5, true},    // 0xB1
		{"JAM", implied, nil, 1, 2, false},       // 0xB2
		{"LAX", indirectY, c.lax, 2, 5, true},    // 0xB3
		{"LDY", zeropageX, c.ldy, 2, 4, false},   // 0xB4
		{"LDA", zeropageX, c.lda, 2, 4, false},   // 0xB5
		{"LDX", zeropageY, c.ldx, 2, 4, false},   // 0xB6
		{"LAX", zeropageY, c.lax, 2, 4, false},   // 0xB7
		{"CLV", implied, c.clv, 1, 2, false},     // 0xB8
		{"LDA", absoluteY, c.lda, 3, 4, true},    // 0xB9
		{"TSX", implied, c.tsx, 1, 2, false},     // 0xBA
		{"LAS", absoluteY, c.las, 3, 4, true},    // 0xBB
		{"LDY", absoluteX, c.ldy, 3, 4, true},    // 0xBC
		{"LDA", absoluteX, c.lda, 3, 4, true},    // 0xBD
		{"LDX", absoluteY, c.ldx, 3, 4, true},    // 0xBE
		{"LAX", absoluteY, c.lax, 3, 4, true},    // 0xBF
		{"CPY", immediate, c.cpy, 2, 2, false},   // 0xC0
		{"CMP", indirectX, c.cmp, 2, 6, false},   // 0xC1
		{"NOP", immediate, c.nop, 2, 2, false},   // 0xC2
		{"DCP", indirectX, c.dcp, 2, 8, false},   // 0xC3
		{"CPY", zeropage, c.cpy, 2, 3, false},    // 0xC4
		{"CMP", zeropage, c.cmp, 2, 3, false},    // 0xC5
		{"DEC", zeropage, c.dec, 2, 5, false},    // 0xC6
		{"DCP", zeropage, c.dcp, 2, 5, false},    // 0xC7
		{"INY", implied, c.iny, 1, 2, false},     // 0xC8
		{"CMP", immediate, c.cmp, 2, 2, false},   // 0xC9
		{"DEX", implied, c.dex, 1, 2, false},     // 0xCA
		{"AXS", immediate, c.axs, 2, 2, false},   // 0xCB
		{"CPY", absolute, c.cpy, 3, 4, false},    // 0xCC
		{"CMP", absolute, c.cmp, 3, 4, false},    // 0xCD
		{"DEC", absolute, c.dec, 3, 6, false},    // 0xCE
		{"DCP", absolute, c.dcp, 3, 6, false},    // 0xCF
		{"BNE", relative, c.bne, 2, 2, false},    // 0xD0
		{"CMP", indirectY, c.cmp, 2, 5, true},    // 0xD1
		{"JAM", implied, nil, 1, 2, false},       // 0xD2
		{"DCP", indirectY, c.dcp, 2, 8, false},   // 0xD3
		{"NOP", zeropageX, c.nop, 2, 4, false},   // 0xD4
		{"CMP", zeropageX, c.cmp, 2, 4, false},   // 0xD5
		{"DEC", zeropageX, c.dec, 2, 6, false},   // 0xD6
		{"DCP", zeropageX, c.dcp, 2, 6, false},   // 0xD7
		{"CLD", implied, c.cld, 1, 2, false},     // 0xD8
		{"CMP", absoluteY, c.cmp, 3, 4, true},    // 0xD9
		{"NOP", implied, c.nop, 1, 2, false},     // 0xDA
		{"DCP", absoluteY, c.dcp, 3, 7, false},   // 0xDB
		{"NOP", absoluteX, c.nop, 3, 4, true},    // 0xDC
		{"CMP", absoluteX, c.cmp, 3, 4, true},    // 0xDD
		{"DEC", absoluteX, c.dec, 3, 7, false},   // 0xDE
		{"DCP", absoluteX, c.dcp, 3, 7, false},   // 0xDF
		{"CPX", immediate, c.cpx, 2, 2, false},   // 0xE0
		{"SBC", indirectX, c.sbc, 2, 6, false},   // 0xE1
		{"NOP", immediate, c.nop, 2, 2, false},   // 0xE2
		{"ISC", indirectX, c.isc, 2, 8, false},   // 0xE3
		{"CPX", zeropage, c.cpx, 2, 3, false},    // 0xE4
		{"SBC", zeropage, c.sbc, 2, 3, false},    // 0xE5
		{"INC", zeropage, c.inc, 2, 5, false},    // 0xE6
		{"ISC", zeropage, c.isc, 2, 5, false},    // 0xE7
		{"INX", implied, c.inx, 1, 2, false},     // 0xE8
		{"SBC", immediate, c.sbc, 2, 2, false},   // 0xE9
		{"NOP", implied, c.nop, 1, 2, false},     // 0xEA
		{"SBC", immediate, c.sbc, 2, 2, false},   // 0xEB
		{"CPX", absolute, c.cpx, 3, 4, false},    // 0xEC
		{"SBC", absolute, c.sbc, 3, 4, false},    // 0xED
		{"INC", absolute, c.inc, 3, 6, false},    // 0xEE
		{"ISC", absolute, c.isc, 3, 6, false},    // 0xEF
		{"BEQ", relative, c.beq, 2, 2, false},    // 0xF0
		{"SBC", indirectY, c.sbc, 2, 5, true},    // 0xF1
		{"JAM", implied, nil, 1, 2, false},       // 0xF2
		{"ISC", indirectY, c.isc, 2, 8, false},   // 0xF3
		{"NOP", zeropageX, c.nop, 2, 4, false},   // 0xF4
		{"SBC", zeropageX, c.sbc, 2, 4, false},   // 0xF5
		{"INC", zeropageX, c.inc, 2, 6, false},   // 0xF6
		{"ISC", zeropageX, c.isc, 2, 6, false},   // 0xF7
		{"SED", implied, c.sed, 1, 2, false},     // 0xF8
		{"SBC", absoluteY, c.sbc, 3, 4, true},    // 0xF9
		{"NOP", implied, c.nop, 1, 2, false},     // 0xFA
		{"ISC", absoluteY, c.isc, 3, 7, false},   // 0xFB
		{"NOP", absoluteX, c.nop, 3, 4, true},    // 0xFC
		{"SBC", absoluteX, c.sbc, 3, 4, true},    // 0xFD
		{"INC", absoluteX, c.inc, 3, 7, false},   // 0xFE
		{"ISC", absoluteX, c.isc, 3, 7, false},   // 0xFF
	}
}

// load reads the operand of read instructions, accumulator mode works on A.
func (c *CPU) load(mode addressingMode, operand uint16) byte {
	if mode == accumulator {
		return c.a
	}
	return c.read(operand)
}

// store writes the result of read-modify-write instructions.
func (c *CPU) store(mode addressingMode, operand uint16, x byte) {
	if mode == accumulator {
		c.a = x
		return
	}
	c.write(operand, x)
}

// branch jumps to the target, taken branches cost 1 more cycle and 2 more across pages.
func (c *CPU) branch(taken bool, target uint16) {
	if !taken {
		return
	}
	c.extraCycles++
	if pagesDiffer(c.pc, target) {
		c.extraCycles++
	}
	c.pc = target
}

// addWithCarry is shared by ADC, SBC and their unofficial combinations.
// The 2A03 has no decimal mode, so D is ignored.
func (c *CPU) addWithCarry(data byte) {
	a := c.a
	var carry uint16
	if c.p.c {
		carry = 1
	}
	res := uint16(a) + uint16(data) + carry
	c.a = byte(res)
	c.p.c = res > 0xFF
	// checks whether the value overflown by xor.
	c.p.v = (a^data)&0x80 == 0 && (a^c.a)&0x80 != 0
	c.setZN(c.a)
}

func (c *CPU) compare(x, data byte) {
	c.p.c = x >= data
	c.setZN(x - data)
}

func (c *CPU) shiftLeft(x byte) byte {
	c.p.c = x&0x80 != 0
	x <<= 1
	c.setZN(x)
	return x
}

func (c *CPU) shiftRight(x byte) byte {
	c.p.c = x&0x01 != 0
	x >>= 1
	c.setZN(x)
	return x
}

func (c *CPU) rotateLeft(x byte) byte {
	var carry byte
	if c.p.c {
		carry = 1
	}
	c.p.c = x&0x80 != 0
	x = x<<1 | carry
	c.setZN(x)
	return x
}

func (c *CPU) rotateRight(x byte) byte {
	var carry byte
	if c.p.c {
		carry = 0x80
	}
	c.p.c = x&0x01 != 0
	x = x>>1 | carry
	c.setZN(x)
	return x
}

// ADC - Add with Carry.
func (c *CPU) adc(mode addressingMode, operand uint16) {
	c.addWithCarry(c.read(operand))
}

// AND - And.
func (c *CPU) and(mode addressingMode, operand uint16) {
	c.a &= c.read(operand)
	c.setZN(c.a)
}

// ASL - Arithmetic Shift Left.
func (c *CPU) asl(mode addressingMode, operand uint16) {
	c.store(mode, operand, c.shiftLeft(c.load(mode, operand)))
}

// BCC - Branch on Carry Clear.
func (c *CPU) bcc(mode addressingMode, operand uint16) {
	c.branch(!c.p.c, operand)
}

// BCS - Branch on Carry Set.
func (c *CPU) bcs(mode addressingMode, operand uint16) {
	c.branch(c.p.c, operand)
}

// BEQ - Branch on Equal.
func (c *CPU) beq(mode addressingMode, operand uint16) {
	c.branch(c.p.z, operand)
}

// BIT - test BITS.
func (c *CPU) bit(mode addressingMode, operand uint16) {
	x := c.read(operand)
	c.setN(x)
	c.setZ(c.a & x)
	c.p.v = x&0x40 != 0
}

// BMI - Branch on Minus.
func (c *CPU) bmi(mode addressingMode, operand uint16) {
	c.branch(c.p.n, operand)
}

// BNE - Branch on Not Equal.
func (c *CPU) bne(mode addressingMode, operand uint16) {
	c.branch(!c.p.z, operand)
}

// BPL - Branch on Plus.
func (c *CPU) bpl(mode addressingMode, operand uint16) {
	c.branch(!c.p.n, operand)
}

// BRK - Break Interrupt.
// PC already skipped the padding byte, so the return address is BRK+2.
func (c *CPU) brk(mode addressingMode, operand uint16) {
	c.push16(c.pc)
	c.push(c.p.encode() | flagB | flagU)
	c.p.i = true
	c.pc = c.read16(irqVector)
}

// BVC - Branch on Overflow Clear.
func (c *CPU) bvc(mode addressingMode, operand uint16) {
	c.branch(!c.p.v, operand)
}

// BVS - Branch on Overflow Set.
func (c *CPU) bvs(mode addressingMode, operand uint16) {
	c.branch(c.p.v, operand)
}

// CLC - Clear Carry.
func (c *CPU) clc(mode addressingMode, operand uint16) {
	c.p.c = false
}

// CLD - Clear Decimal.
func (c *CPU) cld(mode addressingMode, operand uint16) {
	c.p.d = false
}

// CLI - Clear Interrupt.
func (c *CPU) cli(mode addressingMode, operand uint16) {
	c.p.i = false
}

// CLV - Clear Overflow.
func (c *CPU) clv(mode addressingMode, operand uint16) {
	c.p.v = false
}

// CMP - Compare Accumulator.
func (c *CPU) cmp(mode addressingMode, operand uint16) {
	c.compare(c.a, c.read(operand))
}

// CPX - Compare X register.
func (c *CPU) cpx(mode addressingMode, operand uint16) {
	c.compare(c.x, c.read(operand))
}

// CPY - Compare Y register.
func (c *CPU) cpy(mode addressingMode, operand uint16) {
	c.compare(c.y, c.read(operand))
}

// DEC - Decrement Memory.
func (c *CPU) dec(mode addressingMode, operand uint16) {
	x := c.read(operand) - 1
	c.write(operand, x)
	c.setZN(x)
}

// DEX - Decrement X Register.
func (c *CPU) dex(mode addressingMode, operand uint16) {
	c.x--
	c.setZN(c.x)
}

// DEY - Decrement Y Register.
func (c *CPU) dey(mode addressingMode, operand uint16) {
	c.y--
	c.setZN(c.y)
}

// EOR - Exclusive OR.
func (c *CPU) eor(mode addressingMode, operand uint16) {
	c.a ^= c.read(operand)
	c.setZN(c.a)
}

// INC - Increment Memory.
func (c *CPU) inc(mode addressingMode, operand uint16) {
	x := c.read(operand) + 1
	c.write(operand, x)
	c.setZN(x)
}

// INX - Increment X Register.
func (c *CPU) inx(mode addressingMode, operand uint16) {
	c.x++
	c.setZN(c.x)
}

// INY - Increment Y Register.
func (c *CPU) iny(mode addressingMode, operand uint16) {
	c.y++
	c.setZN(c.y)
}

// JMP - Jump.
func (c *CPU) jmp(mode addressingMode, operand uint16) {
	c.pc = operand
}

// JSR - Jump to Subroutine.
// The pushed address is the last byte of the JSR instruction.
func (c *CPU) jsr(mode addressingMode, operand uint16) {
	c.push16(c.pc - 1)
	c.pc = operand
}

// LDA - Load Accumulator.
func (c *CPU) lda(mode addressingMode, operand uint16) {
	c.a = c.read(operand)
	c.setZN(c.a)
}

// LDX - Load X Register.
func (c *CPU) ldx(mode addressingMode, operand uint16) {
	c.x = c.read(operand)
	c.setZN(c.x)
}

// LDY - Load Y Register.
func (c *CPU) ldy(mode addressingMode, operand uint16) {
	c.y = c.read(operand)
	c.setZN(c.y)
}

// LSR - Logical Shift Right.
func (c *CPU) lsr(mode addressingMode, operand uint16) {
	c.store(mode, operand, c.shiftRight(c.load(mode, operand)))
}

// NOP - No Operation.
// Unofficial NOPs with an operand still perform the read.
func (c *CPU) nop(mode addressingMode, operand uint16) {
	if mode != implied && mode != immediate {
		c.read(operand)
	}
}

// ORA - Logical Inclusive OR.
func (c *CPU) ora(mode addressingMode, operand uint16) {
	c.a |= c.read(operand)
	c.setZN(c.a)
}

// PHA - Push Accumulator.
func (c *CPU) pha(mode addressingMode, operand uint16) {
	c.push(c.a)
}

// PHP - Push Processor Status, B and the reserved bit are set on the stack.
func (c *CPU) php(mode addressingMode, operand uint16) {
	c.push(c.p.encode() | flagB | flagU)
}

// PLA - Pull Accumulator.
func (c *CPU) pla(mode addressingMode, operand uint16) {
	c.a = c.pop()
	c.setZN(c.a)
}

// PLP - Pull Processor Status.
func (c *CPU) plp(mode addressingMode, operand uint16) {
	c.p.decodeFrom(c.pop()&^flagB | flagU)
}

// ROL - Rotate Left.
func (c *CPU) rol(mode addressingMode, operand uint16) {
	c.store(mode, operand, c.rotateLeft(c.load(mode, operand)))
}

// ROR - Rotate Right.
func (c *CPU) ror(mode addressingMode, operand uint16) {
	c.store(mode, operand, c.rotateRight(c.load(mode, operand)))
}

// RTI - Return from Interrupt.
func (c *CPU) rti(mode addressingMode, operand uint16) {
	c.p.decodeFrom(c.pop()&^flagB | flagU)
	c.pc = c.pop16()
}

// RTS - Return from Subroutine.
func (c *CPU) rts(mode addressingMode, operand uint16) {
	c.pc = c.pop16() + 1
}

// SBC - Subtract with Carry.
func (c *CPU) sbc(mode addressingMode, operand uint16) {
	c.addWithCarry(^c.read(operand))
}

// SEC - Set Carry Flag.
func (c *CPU) sec(mode addressingMode, operand uint16) {
	c.p.c = true
}

// SED - Set Decimal Flag.
func (c *CPU) sed(mode addressingMode, operand uint16) {
	c.p.d = true
}

// SEI - Set Interrupt Disable.
func (c *CPU) sei(mode addressingMode, operand uint16) {
	c.p.i = true
}

// STA - Store A Register.
func (c *CPU) sta(mode addressingMode, operand uint16) {
	c.write(operand, c.a)
}

// STX - Store X Register.
func (c *CPU) stx(mode addressingMode, operand uint16) {
	c.write(operand, c.x)
}

// STY - Store Y Register.
func (c *CPU) sty(mode addressingMode, operand uint16) {
	c.write(operand, c.y)
}

// TAX - Transfer A to X.
func (c *CPU) tax(mode addressingMode, operand uint16) {
	c.x = c.a
	c.setZN(c.x)
}

// TAY - Transfer A to Y.
func (c *CPU) tay(mode addressingMode, operand uint16) {
	c.y = c.a
	c.setZN(c.y)
}

// TSX - Transfer S to X.
func (c *CPU) tsx(mode addressingMode, operand uint16) {
	c.x = c.s
	c.setZN(c.x)
}

// TXA - Transfer X to A.
func (c *CPU) txa(mode addressingMode, operand uint16) {
	c.a = c.x
	c.setZN(c.a)
}

// TXS - Transfer X to S.
func (c *CPU) txs(mode addressingMode, operand uint16) {
	c.s = c.x
}

// TYA - Transfer Y to A.
func (c *CPU) tya(mode addressingMode, operand uint16) {
	c.a = c.y
	c.setZN(c.a)
}

// Unofficial opcodes.

// ALR - AND then LSR A.
func (c *CPU) alr(mode addressingMode, operand uint16) {
	c.a = c.shiftRight(c.a & c.read(operand))
}

// ANC - AND, then copy N to C.
func (c *CPU) anc(mode addressingMode, operand uint16) {
	c.a &= c.read(operand)
	c.setZN(c.a)
	c.p.c = c.p.n
}

// ARR - AND then ROR A, C is bit 6 and V is bit 6 xor bit 5 of the result.
func (c *CPU) arr(mode addressingMode, operand uint16) {
	x := c.a & c.read(operand)
	var carry byte
	if c.p.c {
		carry = 0x80
	}
	c.a = x>>1 | carry
	c.setZN(c.a)
	c.p.c = c.a&0x40 != 0
	c.p.v = (c.a>>6)&1 != (c.a>>5)&1
}

// AXS - X = (A AND X) - operand, without borrow. Also known as SBX.
func (c *CPU) axs(mode addressingMode, operand uint16) {
	data := c.read(operand)
	x := c.a & c.x
	c.p.c = x >= data
	c.x = x - data
	c.setZN(c.x)
}

// DCP - DEC then CMP.
func (c *CPU) dcp(mode addressingMode, operand uint16) {
	x := c.read(operand) - 1
	c.write(operand, x)
	c.compare(c.a, x)
}

// ISC - INC then SBC. Also known as ISB.
func (c *CPU) isc(mode addressingMode, operand uint16) {
	x := c.read(operand) + 1
	c.write(operand, x)
	c.addWithCarry(^x)
}

// LAS - A, X and S = memory AND S.
func (c *CPU) las(mode addressingMode, operand uint16) {
	x := c.read(operand) & c.s
	c.a, c.x, c.s = x, x, x
	c.setZN(x)
}

// LAX - LDA then TAX.
func (c *CPU) lax(mode addressingMode, operand uint16) {
	c.a = c.read(operand)
	c.x = c.a
	c.setZN(c.a)
}

// LXA - A and X = (A OR magic) AND operand, using the common magic constant $EE.
func (c *CPU) lxa(mode addressingMode, operand uint16) {
	c.a = (c.a | 0xEE) & c.read(operand)
	c.x = c.a
	c.setZN(c.a)
}

// RLA - ROL then AND.
func (c *CPU) rla(mode addressingMode, operand uint16) {
	x := c.rotateLeft(c.read(operand))
	c.write(operand, x)
	c.a &= x
	c.setZN(c.a)
}

// RRA - ROR then ADC.
func (c *CPU) rra(mode addressingMode, operand uint16) {
	x := c.rotateRight(c.read(operand))
	c.write(operand, x)
	c.addWithCarry(x)
}

// SAX - Store A AND X.
func (c *CPU) sax(mode addressingMode, operand uint16) {
	c.write(operand, c.a&c.x)
}

// SLO - ASL then ORA.
func (c *CPU) slo(mode addressingMode, operand uint16) {
	x := c.shiftLeft(c.read(operand))
	c.write(operand, x)
	c.a |= x
	c.setZN(c.a)
}

// SRE - LSR then EOR.
func (c *CPU) sre(mode addressingMode, operand uint16) {
	x := c.shiftRight(c.read(operand))
	c.write(operand, x)
	c.a ^= x
	c.setZN(c.a)
}

// XAA - A = (A OR magic) AND X AND operand, using the common magic constant $EE. Also known as ANE.
func (c *CPU) xaa(mode addressingMode, operand uint16) {
	c.a = (c.a | 0xEE) & c.x & c.read(operand)
	c.setZN(c.a)
}

// storeHigh implements the SHA/SHX/SHY/TAS family: the value is ANDed with the high byte
// of the base address plus one, and on a page cross that value replaces the high byte of the address.
func (c *CPU) storeHigh(operand uint16, index byte, x byte) {
	base := operand - uint16(index)
	x &= byte(base>>8) + 1
	if c.pageCrossed {
		operand = uint16(x)<<8 | operand&0x00FF
	}
	c.write(operand, x)
}

// AHX - Store A AND X AND (high byte + 1). Also known as SHA.
func (c *CPU) ahx(mode addressingMode, operand uint16) {
	c.storeHigh(operand, c.y, c.a&c.x)
}

// SHX - Store X AND (high byte + 1).
func (c *CPU) shx(mode addressingMode, operand uint16) {
	c.storeHigh(operand, c.y, c.x)
}

// SHY - Store Y AND (high byte + 1).
func (c *CPU) shy(mode addressingMode, operand uint16) {
	c.storeHigh(operand, c.x, c.y)
}

// TAS - S = A AND X, then store S AND (high byte + 1).
func (c *CPU) tas(mode addressingMode, operand uint16) {
	c.s = c.a & c.x
	c.storeHigh(operand, c.y, c.s)
}
