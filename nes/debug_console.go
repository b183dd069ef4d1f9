package nes

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/bradleyjkemp/memviz"
)

// ErrQuit is returned by Exec for the quit command.
var ErrQuit = errors.New("quit")

// DebugConsole a NES console for debugging, you can execute some commands through a reader.
// commands:
//   s [N|Nf|Nd]:
//     execute N step(s), N frames with 'f', N steps with debug messages with 'd'.
//   p [cpu|ppu|cartridge|controller|wram|vram|stack]:
//     print.
//   m 0xADDR [N]:
//     dump N bytes of the CPU address space.
//   br 0xADDR:
//     set a break point.
//   viz FILE [cpu|ppu|cartridge]:
//     write a graphviz dot of the device's memory layout.
//   r:
//     reset.
//   q:
//     quit.
type DebugConsole struct {
	*Console
	out         io.Writer
	cycles      uint64
	breakpoints []uint16
}

func NewDebugConsole(console *Console, out io.Writer) *DebugConsole {
	return &DebugConsole{Console: console, out: out}
}

// Run reads commands from in until quit or EOF.
func (c *DebugConsole) Run(in io.Reader) error {
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprintf(c.out, "Debugger mode, 'q' to quit \n>> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		err := c.Exec(scanner.Text())
		if errors.Is(err, ErrQuit) {
			fmt.Fprintln(c.out, "Quitting.")
			return nil
		}
		if err != nil {
			fmt.Fprintf(c.out, "Error: %v\n", err)
		}
	}
}

// Exec executes a command line.
func (c *DebugConsole) Exec(line string) error {
	args := strings.Fields(line)
	if len(args) == 0 {
		return nil
	}
	switch args[0] {
	case "p", "print":
		c.printCommand(args)
	case "s", "step":
		cycles, err := c.stepCommand(args)
		c.basePrint() // Print data before it die.
		if err != nil {
			return err
		}
		fmt.Fprintf(c.out, "Executed %d CPU cycles, %d PPU cycles.\n", cycles, 3*cycles)
	case "m", "mem":
		return c.memCommand(args)
	case "br", "breakpoint":
		return c.breakPointCommand(args)
	case "viz", "memviz":
		return c.vizCommand(args)
	case "r", "reset":
		c.cycles = 0
		return c.Reset()
	case "q", "quit":
		return ErrQuit
	default:
		return fmt.Errorf("unknown command %q", line)
	}
	return nil
}

func (c *DebugConsole) step() (int, error) {
	if c.cartridge == nil {
		return 0, ErrNoCartridge
	}
	cycles, _, err := c.Console.step()
	c.cycles += uint64(cycles)
	return cycles, err
}

func (c *DebugConsole) printstack() {
	for i := 0; i < 256; i++ {
		idx := uint16(0x100 | i)
		fmt.Fprintf(c.out, "0x%04x: 0x%02x, ", idx, c.Peek(idx))
		if i%16 == 15 {
			fmt.Fprintln(c.out)
		}
	}
}

func (c *DebugConsole) basePrint() {
	fmt.Fprintln(c.out, "--------------------------------------------------")
	fmt.Fprintf(c.out, "Executed cycles: %d\n", c.cycles)
	fmt.Fprintf(c.out, "Rendered frame: %d\n", c.frames)
	fmt.Fprintln(c.out, "Last: "+c.cpu.lastExecution())
	fmt.Fprintf(c.out, "CPU: %s\n", c.CPUState())
	fmt.Fprintf(c.out, "PPU: cycle=%d, scanline=%d, p.v=0x%04x\n",
		c.ppu.cycle, c.ppu.scanline, c.ppu.v)
}

func (c *DebugConsole) printCommand(args []string) {
	if len(args) < 2 {
		c.basePrint()
		return
	}
	switch args[1] {
	case "c", "cpu":
		fmt.Fprintf(c.out, "%+v\n", c.CPUState())
	case "p", "ppu":
		fmt.Fprintf(c.out, "ctrl=0x%02x, mask=0x%02x, vblank=%t, v=0x%04x, t=0x%04x, x=%d, w=%t, cycle=%d, scanline=%d\n",
			c.ppu.ctrl, c.ppu.mask, c.ppu.vblank, c.ppu.v, c.ppu.t, c.ppu.x, c.ppu.w, c.ppu.cycle, c.ppu.scanline)
	case "ca", "cartridge":
		if c.cartridge == nil {
			fmt.Fprintln(c.out, "No cartridge.")
			return
		}
		fmt.Fprintf(c.out, "mapper=%d, prg=%d, chr=%d, mirroring=%s, battery=%t\n",
			c.cartridge.mapperID, c.cartridge.prgBanks, c.cartridge.chrBanks, c.cartridge.mirroring, c.cartridge.battery)
	case "ct", "controller":
		fmt.Fprintf(c.out, "1P=%+v, 2P=%+v\n", *c.controllers[0], *c.controllers[1])
	case "wr", "wram":
		fmt.Fprintf(c.out, "%+v\n", c.bus.wram.data)
	case "vr", "vram":
		fmt.Fprintf(c.out, "%+v\n", c.ppu.bus.vram.data)
	case "st", "stack":
		c.printstack()
	}
}

func (c *DebugConsole) checkBreak() bool {
	for _, br := range c.breakpoints {
		if br == c.cpu.pc {
			fmt.Fprintf(c.out, "Break at: 0x%04x\n", br)
			return true
		}
	}
	return false
}

var stepArg = regexp.MustCompile("^([0-9]+)([fd]?)$")

func (c *DebugConsole) stepCommand(args []string) (int, error) {
	if len(args) < 2 {
		return c.step()
	}
	m := stepArg.FindStringSubmatch(args[1])
	if m == nil {
		return 0, fmt.Errorf("invalid step count %q", args[1])
	}
	num, _ := strconv.Atoi(m[1])
	cycles := 0
	switch m[2] {
	case "f":
		// frames
		target := c.frames + uint64(num)
		for c.frames < target {
			v, err := c.step()
			cycles += v
			if err != nil {
				return cycles, err
			}
			if c.checkBreak() {
				return cycles, nil
			}
		}
	case "d":
		// debug -> steps with debug messages.
		for i := 0; i < num; i++ {
			v, err := c.step()
			c.basePrint()
			cycles += v
			if err != nil {
				return cycles, err
			}
			if c.checkBreak() {
				return cycles, nil
			}
		}
	default: // no unit -> step
		for i := 0; i < num; i++ {
			v, err := c.step()
			cycles += v
			if err != nil {
				return cycles, err
			}
			if c.checkBreak() {
				return cycles, nil
			}
		}
	}
	return cycles, nil
}

func parseAddress(s string) (uint16, error) {
	v, err := strconv.ParseUint(strings.TrimPrefix(s, "0x"), 16, 16)
	if err != nil {
		return 0, fmt.Errorf("invalid address %q: %w", s, err)
	}
	return uint16(v), nil
}

func (c *DebugConsole) breakPointCommand(args []string) error {
	if len(args) < 2 {
		return errors.New("usage: br 0xADDR")
	}
	address, err := parseAddress(args[1])
	if err != nil {
		return err
	}
	c.breakpoints = append(c.breakpoints, address)
	return nil
}

func (c *DebugConsole) memCommand(args []string) error {
	if len(args) < 2 {
		return errors.New("usage: m 0xADDR [N]")
	}
	address, err := parseAddress(args[1])
	if err != nil {
		return err
	}
	n := 16
	if len(args) > 2 {
		if n, err = strconv.Atoi(args[2]); err != nil {
			return fmt.Errorf("invalid length %q: %w", args[2], err)
		}
	}
	for i := 0; i < n; i++ {
		a := address + uint16(i)
		if i%16 == 0 {
			if i > 0 {
				fmt.Fprintln(c.out)
			}
			fmt.Fprintf(c.out, "0x%04x:", a)
		}
		fmt.Fprintf(c.out, " %02x", c.Peek(a))
	}
	fmt.Fprintln(c.out)
	return nil
}

// vizCommand writes the structure of a device as a graphviz dot file.
func (c *DebugConsole) vizCommand(args []string) error {
	if len(args) < 2 {
		return errors.New("usage: viz FILE [cpu|ppu|cartridge]")
	}
	state := c.CPUState()
	var target interface{} = &state
	if len(args) > 2 {
		switch args[2] {
		case "cpu":
		case "ppu":
			target = c.ppu.bus
		case "cartridge":
			if c.cartridge == nil {
				return ErrNoCartridge
			}
			target = c.cartridge
		default:
			return fmt.Errorf("unknown device %q", args[2])
		}
	}
	f, err := os.Create(args[1])
	if err != nil {
		return err
	}
	defer f.Close()
	memviz.Map(f, target)
	fmt.Fprintf(c.out, "Wrote %s\n", args[1])
	return nil
}
