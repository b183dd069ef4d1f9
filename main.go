package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"os"
	"runtime"
	"runtime/pprof"
	"sync"

	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
	"github.com/golang/glog"

	"github.com/kunihiko-t/tauri-nes-sub000/emulator"
	"github.com/kunihiko-t/tauri-nes-sub000/nes"
	"github.com/kunihiko-t/tauri-nes-sub000/ui"
	"github.com/kunihiko-t/tauri-nes-sub000/wavwriter"
)

const statsAddress = "localhost:12600"

var (
	path       = flag.String("path", "./rom/sample1.nes", "path to NES ROM file")
	width      = flag.Int("width", 256*4, "widow width")
	height     = flag.Int("height", 240*4, "widow height")
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")
	debug      = flag.Bool("debug", false, "run as debug mode")
	headless   = flag.Int("headless", 0, "run N frames without a window and exit")
	screenshot = flag.String("screenshot", "", "write the last frame as PNG, with -headless")
	cycleLimit = flag.Int("cycle-limit", nes.DefaultCycleLimit, "CPU cycle ceiling of a frame, 0 disables it")
	wavPath    = flag.String("wav", "", "record audio to a WAV file")
	audio      = flag.Bool("audio", true, "play audio")
	stats      = flag.Bool("statsview", false, "serve runtime statistics at "+statsAddress+"/debug/statsview")
)

func init() {
	runtime.LockOSThread()
}

// recorder drains an audio channel into a WAV file.
type recorder struct {
	writer  *wavwriter.WavWriter
	channel chan float32
	wg      sync.WaitGroup
}

func newRecorder(filename string) *recorder {
	r := &recorder{
		writer:  wavwriter.New(filename, nes.SampleRate),
		channel: make(chan float32, nes.SampleRate),
	}
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		r.writer.Record(r.channel)
	}()
	return r
}

// close must be called once nothing sends to the channel.
func (r *recorder) close() error {
	close(r.channel)
	r.wg.Wait()
	return r.writer.Close()
}

func saveFrame(filename string, f nes.Frame) error {
	img := &image.RGBA{Pix: f.Pix, Stride: f.Width * 4, Rect: image.Rect(0, 0, f.Width, f.Height)}
	out, err := os.Create(filename)
	if err != nil {
		return err
	}
	if err := png.Encode(out, img); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func runHeadless(emu *emulator.Emulator, frames int) error {
	for i := 0; i < frames; i++ {
		if _, err := emu.RunFrame(); err != nil {
			return fmt.Errorf("frame %d: %w (%s)", i, err, emu.CPUState())
		}
	}
	glog.Infof("Ran %d frames: %s", frames, emu.CPUState())
	if *screenshot != "" {
		return saveFrame(*screenshot, emu.Frame())
	}
	return nil
}

func run() error {
	if *stats {
		go func() {
			viewer.SetConfiguration(viewer.WithAddr(statsAddress))
			statsview.New().Start()
		}()
		glog.Infof("Stats server available at %s/debug/statsview", statsAddress)
	}
	emu := emulator.New(nes.Config{CycleLimit: *cycleLimit})
	if err := emu.LoadROM(*path); err != nil {
		return err
	}
	var rec *recorder
	if *wavPath != "" {
		rec = newRecorder(*wavPath)
		defer func() {
			if err := rec.close(); err != nil {
				glog.Errorln(err)
			}
		}()
	}
	switch {
	case *debug:
		return emu.Debug(os.Stdin, os.Stdout)
	case *headless > 0:
		if rec != nil {
			emu.SetAudioOut(rec.channel)
		}
		return runHeadless(emu, *headless)
	}
	opts := ui.Options{Width: *width, Height: *height, Audio: *audio}
	if rec != nil {
		if *audio {
			opts.AudioTap = rec.channel
		} else {
			emu.SetAudioOut(rec.channel)
		}
	}
	return ui.Start(emu, opts)
}

func main() {
	flag.Parse()
	defer glog.Flush()
	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			glog.Fatal("Failed to create CPU profile: ", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			glog.Fatal("Failed to start CPU profile: ", err)
		}
		defer pprof.StopCPUProfile()
	}
	if err := run(); err != nil {
		glog.Errorln(err)
		glog.Flush()
		os.Exit(1)
	}
}
