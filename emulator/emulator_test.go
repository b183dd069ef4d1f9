package emulator

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/kunihiko-t/tauri-nes-sub000/nes"
)

// writeROM writes an NROM image running program from $8000.
func writeROM(t *testing.T, program ...byte) string {
	t.Helper()
	image := make([]byte, 16+0x4000+0x2000)
	copy(image, []byte{'N', 'E', 'S', 0x1A, 1, 1})
	copy(image[16:], program)
	// reset and NMI vectors
	image[16+0x3FFA], image[16+0x3FFB] = 0x00, 0x80
	image[16+0x3FFC], image[16+0x3FFD] = 0x00, 0x80
	path := filepath.Join(t.TempDir(), "test.nes")
	if err := os.WriteFile(path, image, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoadROM(t *testing.T) {
	e := New(nes.DefaultConfig())
	if _, err := e.RunFrame(); !errors.Is(err, nes.ErrNoCartridge) {
		t.Fatalf("RunFrame: got=%v, want=%v", err, nes.ErrNoCartridge)
	}
	if err := e.LoadROM(filepath.Join(t.TempDir(), "missing.nes")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("LoadROM: got=%v, want=%v", err, os.ErrNotExist)
	}
	path := writeROM(t,
		0xA9, 0x42, // LDA #$42
		0x85, 0x00, // STA $00
		0x4C, 0x04, 0x80, // JMP $8004
	)
	if err := e.LoadROM(path); err != nil {
		t.Fatalf("LoadROM: %v", err)
	}
	if e.ROMPath() != path {
		t.Fatalf("ROMPath: got=%q, want=%q", e.ROMPath(), path)
	}
	if _, err := e.RunFrame(); err != nil {
		t.Fatalf("RunFrame: %v", err)
	}
	if got := e.CPUState().A; got != 0x42 {
		t.Fatalf("A: got=0x%02x, want=0x42", got)
	}
	if got := e.Peek(0x0000); got != 0x42 {
		t.Fatalf("0x0000: got=0x%02x, want=0x42", got)
	}
	if err := e.Reset(); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if got := e.CPUState().PC; got != 0x8000 {
		t.Fatalf("PC: got=0x%04x, want=0x8000", got)
	}
}

func TestFrameIsACopy(t *testing.T) {
	e := New(nes.DefaultConfig())
	if err := e.LoadROM(writeROM(t, 0x4C, 0x00, 0x80)); err != nil {
		t.Fatalf("LoadROM: %v", err)
	}
	if _, err := e.RunFrame(); err != nil {
		t.Fatalf("RunFrame: %v", err)
	}
	f := e.Frame()
	f.Pix[0] = ^f.Pix[0]
	if g := e.Frame(); g.Pix[0] == f.Pix[0] {
		t.Fatalf("Frame shares the frame buffer")
	}
}

func TestConcurrentAccess(t *testing.T) {
	e := New(nes.DefaultConfig())
	if err := e.LoadROM(writeROM(t, 0xE8, 0x4C, 0x00, 0x80)); err != nil {
		t.Fatalf("LoadROM: %v", err)
	}
	e.SetAudioOut(make(chan float32, 16))
	var wg sync.WaitGroup
	errs := make(chan error, 10)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 5; j++ {
				if _, err := e.RunFrame(); err != nil {
					errs <- err
				}
			}
		}()
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		for j := 0; j < 100; j++ {
			e.ForwardInput(j%2, [8]bool{j%3 == 0})
			_ = e.CPUState()
			_ = e.Frame()
		}
	}()
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("RunFrame: %v", err)
	}
}

func TestDebug(t *testing.T) {
	e := New(nes.DefaultConfig())
	if err := e.LoadROM(writeROM(t, 0xE8, 0x4C, 0x00, 0x80)); err != nil {
		t.Fatalf("LoadROM: %v", err)
	}
	out := &bytes.Buffer{}
	if err := e.Debug(strings.NewReader("s 2\nq\n"), out); err != nil {
		t.Fatalf("Debug: %v", err)
	}
	if got := e.CPUState().X; got != 1 {
		t.Fatalf("X: got=%d, want=1", got)
	}
	if !strings.Contains(out.String(), "Quitting.") {
		t.Fatalf("output: %q", out.String())
	}
}
