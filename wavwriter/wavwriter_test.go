package wavwriter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/wav"
)

func TestWavWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.wav")
	w := New(path, 44100)
	in := make(chan float32, 4)
	in <- 0
	in <- 0.5
	in <- 2 // clipped
	close(in)
	w.Record(in)
	w.Write(-1)
	if w.Len() != 4 {
		t.Fatalf("Len: got=%d, want=4", w.Len())
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer f.Close()
	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		t.Fatalf("%s is not a valid wav file", path)
	}
	if dec.SampleRate != 44100 || dec.NumChans != 1 || dec.BitDepth != 16 {
		t.Fatalf("format: got rate=%d chans=%d depth=%d", dec.SampleRate, dec.NumChans, dec.BitDepth)
	}
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		t.Fatalf("FullPCMBuffer: %v", err)
	}
	want := []int{0, 16383, 32767, -32767}
	if len(buf.Data) != len(want) {
		t.Fatalf("samples: got=%v, want=%v", buf.Data, want)
	}
	for i := range want {
		if buf.Data[i] != want[i] {
			t.Fatalf("sample %d: got=%d, want=%d", i, buf.Data[i], want[i])
		}
	}
}

func TestCloseFails(t *testing.T) {
	w := New(filepath.Join(t.TempDir(), "missing", "out.wav"), 44100)
	if err := w.Close(); err == nil {
		t.Fatalf("Close: got=nil, want an error")
	}
}
