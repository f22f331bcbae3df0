package webscope

import (
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"
)

const (
	analyzerFFTSize   = 2048
	analyzerSmoothing = 0.8
	analyzerMinDB     = -130.0
)

// analyzer computes a smoothed magnitude spectrum of the rendered stream for
// the demo's spectrum trace. It consumes the mono mix sample by sample and
// recomputes the dB curve every half frame.
type analyzer struct {
	sampleRate float64

	plan       *algofft.Plan[complex128]
	window     []float64
	windowGain float64

	ring   []float64
	write  int
	filled int
	toHop  int
	hop    int

	frame  []float64
	input  []complex128
	output []complex128
	re     []float64
	im     []float64
	mag    []float64

	db    []float64
	ready bool
}

func newAnalyzer(sampleRate float64) (*analyzer, error) {
	plan, err := algofft.NewPlan64(analyzerFFTSize)
	if err != nil {
		return nil, fmt.Errorf("analyzer fft plan: %w", err)
	}

	win := hannWindow(analyzerFFTSize)
	sum := 0.0
	for _, w := range win {
		sum += w
	}

	a := &analyzer{
		sampleRate: sampleRate,
		plan:       plan,
		window:     win,
		windowGain: sum / analyzerFFTSize,
		ring:       make([]float64, analyzerFFTSize),
		hop:        analyzerFFTSize / 2,
		frame:      make([]float64, analyzerFFTSize),
		input:      make([]complex128, analyzerFFTSize),
		output:     make([]complex128, analyzerFFTSize),
		re:         make([]float64, analyzerFFTSize),
		im:         make([]float64, analyzerFFTSize),
		mag:        make([]float64, analyzerFFTSize),
		db:         make([]float64, analyzerFFTSize/2+1),
	}
	for i := range a.db {
		a.db[i] = analyzerMinDB
	}
	return a, nil
}

func (a *analyzer) push(x float64) {
	a.ring[a.write] = x
	a.write++
	if a.write >= len(a.ring) {
		a.write = 0
	}
	if a.filled < len(a.ring) {
		a.filled++
	}

	a.toHop++
	if a.filled < len(a.ring) || a.toHop < a.hop {
		return
	}
	a.toHop = 0
	a.updateFrame()
}

func (a *analyzer) updateFrame() {
	const eps = 1e-12

	read := a.write
	for i := range a.frame {
		a.frame[i] = a.ring[read]
		read++
		if read >= len(a.ring) {
			read = 0
		}
	}
	vecmath.MulBlockInPlace(a.frame, a.window)

	for i, s := range a.frame {
		a.input[i] = complex(s, 0)
	}
	if err := a.plan.Forward(a.output, a.input); err != nil {
		return
	}

	for i, c := range a.output {
		a.re[i] = real(c)
		a.im[i] = imag(c)
	}
	vecmath.Magnitude(a.mag, a.re, a.im)

	norm := analyzerFFTSize * math.Max(a.windowGain, eps)
	last := len(a.db) - 1
	for k := 0; k <= last; k++ {
		mag := a.mag[k] / norm
		if k > 0 && k < last {
			mag *= 2
		}

		valDB := 20 * math.Log10(math.Max(eps, mag))
		if valDB < analyzerMinDB {
			valDB = analyzerMinDB
		}

		if !a.ready {
			a.db[k] = valDB
			continue
		}
		a.db[k] = analyzerSmoothing*a.db[k] + (1-analyzerSmoothing)*valDB
	}
	a.ready = true
}

// curveDB samples the smoothed spectrum at freqs (Hz) with linear
// interpolation between bins.
func (a *analyzer) curveDB(freqs []float64) []float64 {
	out := make([]float64, len(freqs))
	if !a.ready {
		for i := range out {
			out[i] = analyzerMinDB
		}
		return out
	}

	nyquist := a.sampleRate * 0.5
	binHz := a.sampleRate / analyzerFFTSize
	lastBin := len(a.db) - 1

	for i, f := range freqs {
		f = math.Min(math.Max(f, 0), nyquist)
		bin := f / binHz
		if bin <= 0 {
			out[i] = a.db[0]
			continue
		}
		if bin >= float64(lastBin) {
			out[i] = a.db[lastBin]
			continue
		}
		base := int(bin)
		frac := bin - float64(base)
		out[i] = a.db[base] + frac*(a.db[base+1]-a.db[base])
	}
	return out
}

func hannWindow(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(n))
	}
	return out
}
