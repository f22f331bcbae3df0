// Command noisegen plays the stochastic stereo noise generator through the
// default audio output and prints running signal statistics.
//
// Usage:
//
//	noisegen [flags]
//
// Examples:
//
//	noisegen
//	noisegen -rate 44100 -duration 30s
//	noisegen -seed 42 -freq 80 -drift 1.5
package main

import (
	"encoding/binary"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"text/tabwriter"
	"time"

	"github.com/ebitengine/oto/v3"

	"github.com/cwbudde/algo-noise/engine"
	"github.com/cwbudde/algo-noise/stats"
)

func main() {
	var (
		rate     = flag.Int("rate", 48000, "sample rate in Hz")
		duration = flag.Duration("duration", 10*time.Second, "playback duration")
		block    = flag.Int("block", 128, "render block size in samples")
		mirror   = flag.Int("mirror", 256, "mirror block size in samples")
		seed     = flag.Int64("seed", 0, "random seed (0 seeds from the clock)")
		freq     = flag.Float64("freq", 100, "base oscillator frequency in Hz")
		drift    = flag.Float64("drift", 3, "parameter drift rate per second")
		quiet    = flag.Bool("quiet", false, "suppress periodic statistics")
	)
	flag.Parse()

	if err := run(*rate, *duration, *block, *mirror, *seed, *freq, *drift, *quiet); err != nil {
		log.Fatal(err)
	}
}

func run(rate int, duration time.Duration, block, mirror int, seed int64, freq, drift float64, quiet bool) error {
	if block <= 0 {
		return fmt.Errorf("block size must be > 0: %d", block)
	}
	render, err := engine.NewRenderEndpoint(rate)
	if err != nil {
		return err
	}
	control, err := engine.NewControlEndpoint(render, mirror)
	if err != nil {
		return err
	}

	payload := engine.DefaultPayload()
	payload.BaseFrequency = freq
	payload.DriftRate = drift
	payload.Seed = seed
	raw, err := payload.Encode()
	if err != nil {
		return err
	}

	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   rate,
		ChannelCount: 2,
		Format:       oto.FormatFloat32LE,
	})
	if err != nil {
		return fmt.Errorf("open audio context: %w", err)
	}
	<-ready

	src := newStreamSource(render, block)
	player := ctx.NewPlayer(src)
	player.Play()
	defer player.Close()

	go control.Run()
	defer control.Close()

	// The player is already pulling, so the render context services this
	// delivery between audio reads.
	if err := boot(render, raw); err != nil {
		return err
	}

	deadline := time.After(duration)
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	left := make([]float32, mirror)
	right := make([]float32, mirror)
	for {
		select {
		case <-ticker.C:
			if quiet {
				continue
			}
			control.Snapshot(left, right)
			printStats(left, right)
		case <-deadline:
			return nil
		}
	}
}

func boot(render *engine.RenderEndpoint, raw []byte) error {
	ch := engine.NewBootstrapChannel(render)
	if err := ch.Deliver(raw); err != nil {
		return fmt.Errorf("bootstrap: %w", err)
	}
	return nil
}

func printStats(left, right []float32) {
	l := stats.FromFloat32(left)
	r := stats.FromFloat32(right)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "L\tRMS %6.2f dB\tpeak %6.2f dB\n", stats.AmpToDB(stats.RMS(l)), stats.AmpToDB(stats.Peak(l)))
	fmt.Fprintf(w, "R\tRMS %6.2f dB\tpeak %6.2f dB\tL/R corr %+.3f\n",
		stats.AmpToDB(stats.RMS(r)), stats.AmpToDB(stats.Peak(r)), stats.Correlation(l, r))
	w.Flush()
}

// streamSource adapts the render endpoint to oto's io.Reader pull model:
// interleaved float32 LE stereo frames, one render block at a time.
type streamSource struct {
	render *engine.RenderEndpoint
	left   []float32
	right  []float32
	buf    []byte
	stash  []byte
}

func newStreamSource(render *engine.RenderEndpoint, block int) *streamSource {
	return &streamSource{
		render: render,
		left:   make([]float32, block),
		right:  make([]float32, block),
		buf:    make([]byte, block*8),
	}
}

func (s *streamSource) Read(p []byte) (int, error) {
	n := 0
	for n < len(p) {
		if len(s.stash) == 0 {
			s.render.RenderBlock(s.left, s.right)
			for i := range s.left {
				binary.LittleEndian.PutUint32(s.buf[8*i:], math.Float32bits(s.left[i]))
				binary.LittleEndian.PutUint32(s.buf[8*i+4:], math.Float32bits(s.right[i]))
			}
			s.stash = s.buf
		}
		c := copy(p[n:], s.stash)
		s.stash = s.stash[c:]
		n += c
	}
	return n, nil
}
