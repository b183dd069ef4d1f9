// Package emulator serializes access to a nes.Console, so a UI loop, an audio
// callback and a debugger can share one console.
package emulator

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/golang/glog"

	"github.com/kunihiko-t/tauri-nes-sub000/nes"
)

type Emulator struct {
	mu      sync.Mutex
	console *nes.Console
	romPath string
}

func New(config nes.Config) *Emulator {
	return &Emulator{console: nes.NewConsole(config)}
}

// LoadROM reads an iNES file and inserts it, the previous ROM keeps running on failure.
func (e *Emulator) LoadROM(path string) error {
	buf, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.console.LoadROM(buf); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	e.romPath = path
	glog.Infof("Loaded %s", path)
	return nil
}

// ROMPath returns the path of the running ROM, empty if none.
func (e *Emulator) ROMPath() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.romPath
}

func (e *Emulator) RunFrame() (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.console.RunFrame()
}

func (e *Emulator) Reset() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.console.Reset()
}

func (e *Emulator) CPUState() nes.CPUState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.console.CPUState()
}

// Frame returns a copy of the last frame.
func (e *Emulator) Frame() nes.Frame {
	e.mu.Lock()
	defer e.mu.Unlock()
	f := e.console.Frame()
	f.Pix = append([]byte(nil), f.Pix...)
	return f
}

// ForwardInput sets the buttons of a player, 0 or 1.
func (e *Emulator) ForwardInput(player int, buttons [8]bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.console.SetButtons(player, buttons)
}

func (e *Emulator) Peek(address uint16) byte {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.console.Peek(address)
}

// SetAudioOut sets the channel receiving samples at nes.SampleRate.
func (e *Emulator) SetAudioOut(out chan float32) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.console.SetAudioOut(out)
}

// Debug runs the interactive debugger until quit or EOF, the console is held for the whole session.
func (e *Emulator) Debug(in io.Reader, out io.Writer) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return nes.NewDebugConsole(e.console, out).Run(in)
}
