package nes

import "github.com/golang/glog"

const SampleRate = 44100

// APU only accepts register writes and emits a silent sample stream, sound synthesis isn't implemented.
// Reference: https://www.nesdev.org/wiki/APU_registers
type APU struct {
	registers [0x18]byte
	out       chan float32
	// clock counts CPU cycles, scaled by SampleRate, until the next sample.
	clock int
}

func NewAPU() *APU {
	return &APU{}
}

// Step runs a CPU cycle.
func (a *APU) Step() {
	a.clock += SampleRate
	if a.clock < CPUFrequency {
		return
	}
	a.clock -= CPUFrequency
	if a.out == nil {
		return
	}
	select {
	case a.out <- a.sample():
	default:
	}
}

func (a *APU) sample() float32 {
	return 0
}

func (a *APU) SetAudioOut(c chan float32) {
	a.out = c
}

// readStatus reads $4015, no channel is ever active.
func (a *APU) readStatus() byte {
	return 0
}

// writeRegister writes $4000-$4013, $4015 and $4017.
func (a *APU) writeRegister(address uint16, data byte) {
	glog.V(2).Infof("APU write: address=0x%04x, data=0x%02x", address, data)
	a.registers[address-0x4000] = data
}
