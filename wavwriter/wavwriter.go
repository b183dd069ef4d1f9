// Package wavwriter records the audio stream to a WAV file. The samples are
// buffered in memory and written to disk by Close, so it's mainly for testing.
package wavwriter

import (
	"fmt"
	"os"
	"sync"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/golang/glog"
)

const bitDepth = 16

// WavWriter buffers mono float samples in [-1, 1].
type WavWriter struct {
	filename   string
	sampleRate int

	mu     sync.Mutex
	buffer []int
}

func New(filename string, sampleRate int) *WavWriter {
	return &WavWriter{
		filename:   filename,
		sampleRate: sampleRate,
	}
}

// Write appends samples, values out of [-1, 1] are clipped.
func (w *WavWriter) Write(samples ...float32) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, s := range samples {
		if s > 1 {
			s = 1
		} else if s < -1 {
			s = -1
		}
		w.buffer = append(w.buffer, int(s*32767))
	}
}

// Record writes samples from in until it's closed.
func (w *WavWriter) Record(in <-chan float32) {
	for s := range in {
		w.Write(s)
	}
}

// Len returns the number of buffered samples.
func (w *WavWriter) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.buffer)
}

// Close writes the buffered samples to the file.
func (w *WavWriter) Close() (rerr error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	f, err := os.Create(w.filename)
	if err != nil {
		return fmt.Errorf("wavwriter: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil && rerr == nil {
			rerr = fmt.Errorf("wavwriter: %w", err)
		}
	}()
	enc := wav.NewEncoder(f, w.sampleRate, bitDepth, 1, 1)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: w.sampleRate},
		Data:           w.buffer,
		SourceBitDepth: bitDepth,
	}
	glog.Infof("Writing %d samples to %s", len(w.buffer), w.filename)
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("wavwriter: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("wavwriter: %w", err)
	}
	return nil
}
