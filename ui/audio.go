package ui

import (
	"fmt"

	"github.com/gordonklaus/portaudio"

	"github.com/kunihiko-t/tauri-nes-sub000/nes"
)

type audio struct {
	stream  *portaudio.Stream
	channel chan float32
	tap     chan<- float32
}

func newAudio(tap chan<- float32) *audio {
	return &audio{
		channel: make(chan float32, nes.SampleRate),
		tap:     tap,
	}
}

func (a *audio) start() error {
	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize portaudio: %w", err)
	}
	// Mono samples are played on both channels.
	cb := func(out []float32) {
		for i := 0; i+1 < len(out); i += 2 {
			var x float32
			select {
			case x = <-a.channel:
				if a.tap != nil {
					select {
					case a.tap <- x:
					default:
					}
				}
			default:
			}
			out[i] = x * 0.05
			out[i+1] = x * 0.05
		}
	}
	stream, err := portaudio.OpenDefaultStream(0, 2, nes.SampleRate, 0, cb)
	if err != nil {
		portaudio.Terminate()
		return fmt.Errorf("failed to open the audio stream: %w", err)
	}
	a.stream = stream
	if err := stream.Start(); err != nil {
		return fmt.Errorf("failed to start the audio stream: %w", err)
	}
	return nil
}

func (a *audio) terminate() {
	a.stream.Close()
	portaudio.Terminate()
}
