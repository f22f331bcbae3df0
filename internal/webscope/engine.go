// Package webscope drives the browser demo: it wires the render and control
// endpoints together, feeds a spectrum analyzer from the rendered stream and
// exposes the waveform snapshot the page draws from.
package webscope

import (
	"fmt"

	"github.com/cwbudde/algo-noise/engine"
)

// DisplayBlock is the number of mirrored samples per channel kept for the
// waveform trace.
const DisplayBlock = 256

// Engine owns one render/control endpoint pair for the web demo. Render is
// called from the audio worklet pump; Waveform and SpectrumCurveDB are called
// from the page's frame loop.
type Engine struct {
	render   *engine.RenderEndpoint
	control  *engine.ControlEndpoint
	spectrum *analyzer
}

// NewEngine creates the demo engine and starts its bootstrap and mirror
// traffic. Audio output stays silent until the first Render calls service
// the bootstrap delivery.
func NewEngine(sampleRate float64) (*Engine, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("sample rate must be > 0: %f", sampleRate)
	}

	render, err := engine.NewRenderEndpoint(int(sampleRate))
	if err != nil {
		return nil, err
	}
	control, err := engine.NewControlEndpoint(render, DisplayBlock)
	if err != nil {
		return nil, err
	}
	spectrum, err := newAnalyzer(sampleRate)
	if err != nil {
		return nil, err
	}

	raw, err := engine.DefaultPayload().Encode()
	if err != nil {
		return nil, err
	}
	// Validate eagerly so delivery below cannot fail on a fresh endpoint.
	if _, err := engine.LoadModule(raw); err != nil {
		return nil, err
	}

	boot := engine.NewBootstrapChannel(render)
	go func() { _ = boot.Deliver(raw) }()
	go control.Run()

	return &Engine{
		render:   render,
		control:  control,
		spectrum: spectrum,
	}, nil
}

// Render fills one stereo block for the audio worklet and feeds the spectrum
// analyzer with the mono mix. Before bootstrap completes the buffers are left
// silent.
func (e *Engine) Render(left, right []float32) {
	e.render.RenderBlock(left, right)
	for i := range left {
		e.spectrum.push(float64(left[i]+right[i]) * 0.5)
	}
}

// Waveform copies the most recent mirrored display samples into left and
// right.
func (e *Engine) Waveform(left, right []float32) {
	e.control.Snapshot(left, right)
}

// SpectrumCurveDB returns the smoothed spectrum in dBFS sampled at freqs.
func (e *Engine) SpectrumCurveDB(freqs []float64) []float64 {
	return e.spectrum.curveDB(freqs)
}

// Close stops the mirror exchange loop. The render path stays usable.
func (e *Engine) Close() {
	e.control.Close()
}
