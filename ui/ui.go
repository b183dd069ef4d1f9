package ui

import (
	"fmt"
	"time"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/golang/glog"

	"github.com/kunihiko-t/tauri-nes-sub000/emulator"
)

// frameRate is the NTSC frame rate, CPUFrequency / (341*262/3).
const frameRate = 60.0988

type Options struct {
	Width  int
	Height int
	// Audio plays the APU stream through the default output device.
	Audio bool
	// AudioTap receives a copy of every played sample when Audio is set, e.g. a WAV recorder.
	AudioTap chan<- float32
}

func mainLoop(window *glfw.Window, emu *emulator.Emulator, screen *screen) error {
	ticker := time.NewTicker(time.Duration(float64(time.Second) / frameRate))
	defer ticker.Stop()
	for !window.ShouldClose() {
		<-ticker.C
		emu.ForwardInput(0, getKeys(window))
		emu.ForwardInput(1, getKeys2(window))
		if window.GetKey(glfw.KeyR) == glfw.Press && window.GetKey(glfw.KeyLeftControl) == glfw.Press {
			if err := emu.Reset(); err != nil {
				return err
			}
		}
		if _, err := emu.RunFrame(); err != nil {
			return fmt.Errorf("%w (%s)", err, emu.CPUState())
		}
		screen.update(emu.Frame())
		w, h := window.GetFramebufferSize()
		screen.draw(w, h)
		window.SwapBuffers()
		glfw.PollEvents()
	}
	return nil
}

// Start opens a window and runs the emulator until the window is closed, it must be called on the main thread.
func Start(emu *emulator.Emulator, opts Options) error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("failed to initialize glfw: %w", err)
	}
	defer glfw.Terminate()
	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	window, err := glfw.CreateWindow(opts.Width, opts.Height, "NES", nil, nil)
	if err != nil {
		return fmt.Errorf("failed to create a window: %w", err)
	}
	window.MakeContextCurrent()
	glfw.SwapInterval(1)
	if err := gl.Init(); err != nil {
		return fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	glog.Infof("OpenGL version: %s", gl.GoStr(gl.GetString(gl.VERSION)))
	screen, err := newScreen()
	if err != nil {
		return err
	}
	defer screen.delete()

	if opts.Audio {
		a := newAudio(opts.AudioTap)
		if err := a.start(); err != nil {
			return err
		}
		defer a.terminate()
		emu.SetAudioOut(a.channel)
	}
	return mainLoop(window, emu, screen)
}
