package nes

import (
	"errors"
	"fmt"

	"github.com/golang/glog"
)

// DefaultCycleLimit is a bit more than 3 frames worth of CPU cycles.
const DefaultCycleLimit = 100000

var (
	// ErrCycleLimit is returned by RunFrame when no frame completes within Config.CycleLimit cycles.
	ErrCycleLimit = errors.New("cycle limit exceeded")
	// ErrNoCartridge is returned when the console is run without a loaded ROM.
	ErrNoCartridge = errors.New("no cartridge")
)

type Config struct {
	// CycleLimit is the CPU cycle ceiling of a single RunFrame, 0 disables the ceiling.
	CycleLimit int
}

func DefaultConfig() Config {
	return Config{CycleLimit: DefaultCycleLimit}
}

// Frame is the last rendered picture, Pix holds Width*Height RGBA pixels row by row.
type Frame struct {
	Width  int
	Height int
	Pix    []byte
}

// Console wires the NES devices, a Console is not safe for concurrent use.
type Console struct {
	config      Config
	cpu         *CPU
	ppu         *PPU
	apu         *APU
	bus         *Bus
	cartridge   *Cartridge
	controllers [2]*Controller
	frames      uint64
}

// NewConsole creates a console with no cartridge inserted.
func NewConsole(config Config) *Console {
	c := &Console{
		config:      config,
		apu:         NewAPU(),
		controllers: [2]*Controller{NewController(), NewController()},
	}
	c.connect(nil)
	return c
}

// connect builds fresh CPU, PPU and buses around cartridge.
func (c *Console) connect(cartridge *Cartridge) {
	c.cartridge = cartridge
	c.cpu = NewCPU()
	c.ppu = NewPPU(NewPPUBus(NewRAM(0x1000), cartridge))
	c.bus = NewBus(c.cpu, NewRAM(0x0800), c.ppu, c.apu, cartridge, c.controllers)
	c.frames = 0
}

// LoadROM parses an iNES image and resets the console with it,
// on failure the previously loaded cartridge stays in place.
func (c *Console) LoadROM(buf []byte) error {
	cartridge, err := NewCartridge(buf)
	if err != nil {
		return fmt.Errorf("failed to load ROM: %w", err)
	}
	c.connect(cartridge)
	c.bus.reset()
	return nil
}

// Reset resets the console as the reset button does, memory survives.
func (c *Console) Reset() error {
	if c.cartridge == nil {
		return ErrNoCartridge
	}
	c.ppu.Reset()
	c.bus.reset()
	return nil
}

// step runs a single bus clock and counts completed frames.
func (c *Console) step() (int, bool, error) {
	cycles, err := c.bus.Clock()
	if err != nil {
		return cycles, false, err
	}
	if c.ppu.frameComplete() {
		c.frames++
		return cycles, true, nil
	}
	return cycles, false, nil
}

// RunFrame runs the console until the PPU completes a frame, and returns the consumed CPU cycles.
func (c *Console) RunFrame() (int, error) {
	if c.cartridge == nil {
		return 0, ErrNoCartridge
	}
	total := 0
	for {
		cycles, done, err := c.step()
		total += cycles
		if err != nil {
			glog.Errorf("CPU stopped: %v, %s", err, c.cpu.lastExecution())
			return total, err
		}
		if done {
			return total, nil
		}
		if c.config.CycleLimit > 0 && total >= c.config.CycleLimit {
			glog.Warningf("No frame after %d cycles, PC=0x%04x", total, c.cpu.pc)
			return total, fmt.Errorf("%w: %d cycles", ErrCycleLimit, total)
		}
	}
}

// CPUState returns a snapshot of the CPU.
func (c *Console) CPUState() CPUState {
	return c.cpu.State()
}

// Frames returns how many frames completed since the ROM was loaded.
func (c *Console) Frames() uint64 {
	return c.frames
}

// Frame returns the frame buffer, Pix is shared with the PPU and changes on the next RunFrame.
func (c *Console) Frame() Frame {
	return Frame{
		Width:  width,
		Height: height,
		Pix:    c.ppu.frame.Pix,
	}
}

// SetButtons sets the pressed buttons of the player's controller, player is 0 or 1.
func (c *Console) SetButtons(player int, buttons [8]bool) {
	if player < 0 || player >= len(c.controllers) {
		glog.Warningf("Unknown player: %d", player)
		return
	}
	c.controllers[player].Set(buttons)
}

// Peek reads the CPU address space without side effects, I/O registers read as 0.
func (c *Console) Peek(address uint16) byte {
	return c.bus.peek(address)
}

// SetAudioOut sets the channel receiving audio samples at SampleRate, samples are dropped when it is full.
func (c *Console) SetAudioOut(out chan float32) {
	c.apu.SetAudioOut(out)
}
