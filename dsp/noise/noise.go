package noise

import (
	"fmt"
	"math"
	"math/cmplx"
	"math/rand"
)

const (
	// previewCycles is the number of full waveform cycles rendered by Preview
	// regardless of the destination length.
	previewCycles = 4

	channels = 2
)

// params holds one channel's drift state: a chain of Hermitian matrices and
// the unitary mixing matrix they evolve.
type params struct {
	herm [chainLen]cmat
	unit cmat
}

func newParams(rng *rand.Rand) params {
	var p params
	for i := range p.herm {
		p.herm[i] = fixHermitian(matRandom(rng))
	}
	p.unit = fixUnitary(matRandom(rng))
	return p
}

// evolve advances the chain by dt: each Hermitian matrix precesses under the
// commutator with its predecessor, and the last one drives the unitary.
func (p *params) evolve(dt float64) {
	idt := complex(0, dt)
	for i := 1; i < chainLen; i++ {
		p.herm[i] = matAddScaled(p.herm[i], commutator(p.herm[i-1], p.herm[i]), idt)
	}
	p.unit = matAddScaled(p.unit, matMul(p.herm[chainLen-1], p.unit), idt)
}

// normalize re-projects the drifted matrices back onto their manifolds.
func (p *params) normalize() {
	for i := range p.herm {
		p.herm[i] = fixHermitian(p.herm[i])
	}
	p.unit = fixUnitary(p.unit)
}

// mutate re-randomizes the head of the chain for extra long-term variation.
func (p *params) mutate(rng *rand.Rand) {
	p.herm[0] = fixHermitian(matRandom(rng))
}

// oscBank is a bank of unit phasors stepped at harmonically related rates.
// drift is the parameter-time advance per rendered sample; a bank with zero
// drift renders without touching the params (Preview).
type oscBank struct {
	step  [BankSize]complex128
	phase [BankSize]complex128
	drift float64
}

func newOscBank(mult *[BankSize]float64, phaseStep, drift float64) oscBank {
	b := oscBank{drift: drift}
	for i := range b.step {
		b.step[i] = cmplx.Exp(complex(0, mult[i]*phaseStep))
		b.phase[i] = 1
	}
	return b
}

var invSqrtBank = 1 / math.Sqrt(BankSize)

// evolveChunk bounds the samples integrated per parameter step so large
// fills do not take a single oversized evolve step.
const evolveChunk = 128

// render writes len(dst) samples mixed through the first column of p.unit.
func (b *oscBank) render(dst []float32, p *params) {
	for len(dst) > 0 {
		n := len(dst)
		if n > evolveChunk {
			n = evolveChunk
		}
		b.renderChunk(dst[:n], p)
		dst = dst[n:]
	}
}

func (b *oscBank) renderChunk(dst []float32, p *params) {
	if b.drift != 0 {
		p.evolve(float64(len(dst)) * b.drift)
	}
	for i := range dst {
		var sum complex128
		for k := 0; k < BankSize; k++ {
			b.phase[k] *= b.step[k]
			sum += b.phase[k] * p.unit[k][0]
		}
		v := real(sum) * invSqrtBank
		if v > 1 {
			v = 1
		} else if v < -1 {
			v = -1
		}
		dst[i] = float32(v)
	}
}

// renormalize pulls the phasors back onto the unit circle, undoing the slow
// magnitude creep of repeated complex multiplication.
func (b *oscBank) renormalize() {
	for k := range b.phase {
		if a := cmplx.Abs(b.phase[k]); a != 0 {
			b.phase[k] /= complex(a, 0)
		}
	}
}

// Generator produces a continuous stereo noise stream. The two channels hold
// independent parameter sets and oscillator banks, so their outputs are
// statistically independent. Generators are not safe for concurrent use; all
// calls must come from the context that owns the instance.
type Generator struct {
	sampleRate int
	mult       [BankSize]float64

	rng  *rand.Rand
	par  [channels]params
	bank [channels]oscBank

	samplesUntilFix int
}

// New returns a Generator for the given sample rate.
func New(sampleRate int, opts ...Option) (*Generator, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("noise sample rate must be > 0: %d", sampleRate)
	}
	cfg := applyOptions(opts...)

	g := &Generator{
		sampleRate:      sampleRate,
		mult:            cfg.mult,
		rng:             rand.New(rand.NewSource(cfg.seed)),
		samplesUntilFix: sampleRate,
	}
	phaseStep := cfg.baseFreq / float64(sampleRate) * 2 * math.Pi
	drift := cfg.drift / float64(sampleRate)
	for c := 0; c < channels; c++ {
		g.par[c] = newParams(g.rng)
		g.bank[c] = newOscBank(&cfg.mult, phaseStep, drift)
	}
	return g, nil
}

// SampleRate returns the rate the generator was created for.
func (g *Generator) SampleRate() int {
	return g.sampleRate
}

// Fill writes len(left) fresh samples per channel, each in [-1, 1], and
// advances the stream. Both slices must have equal length; a mismatch is a
// programming error and panics. Fill does not allocate.
func (g *Generator) Fill(left, right []float32) {
	if len(left) != len(right) {
		panic(fmt.Sprintf("noise: channel length mismatch: %d != %d", len(left), len(right)))
	}
	g.bank[0].render(left, &g.par[0])
	g.bank[1].render(right, &g.par[1])

	g.samplesUntilFix -= len(left)
	if g.samplesUntilFix > 0 {
		return
	}
	// Roughly once per second of audio: re-project the matrices, pull the
	// phasors back to unit modulus, and re-randomize the chain heads.
	for c := 0; c < channels; c++ {
		g.par[c].normalize()
		g.bank[c].renormalize()
		g.par[c].mutate(g.rng)
	}
	g.samplesUntilFix = g.sampleRate
}

// Preview renders a fixed four-cycle snapshot of each channel's current
// mixing column into buffers of any (equal) length. It does not advance the
// stream: a Fill after a Preview produces the same samples it would have
// produced without it. Preview does not allocate.
func (g *Generator) Preview(left, right []float32) {
	if len(left) != len(right) {
		panic(fmt.Sprintf("noise: channel length mismatch: %d != %d", len(left), len(right)))
	}
	if len(left) == 0 {
		return
	}
	phaseStep := previewCycles * 2 * math.Pi / float64(len(left))
	bank := newOscBank(&g.mult, phaseStep, 0)
	bank.render(left, &g.par[0])
	bank = newOscBank(&g.mult, phaseStep, 0)
	bank.render(right, &g.par[1])
}
