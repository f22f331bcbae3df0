package engine

import (
	"fmt"

	"github.com/cwbudde/algo-noise/dsp/noise"
)

const inboxDepth = 4

// renderMessage is the sealed set of messages the render context consumes.
type renderMessage interface {
	renderMessage()
}

type bootstrapMessage struct {
	payload []byte
	ack     chan<- error // buffered, never blocks the sender
}

type mirrorMessage struct {
	left, right []float32
	reply       chan<- MirrorReply // buffered, never blocks the sender
}

func (bootstrapMessage) renderMessage() {}
func (mirrorMessage) renderMessage()    {}

// MirrorReply returns ownership of a mirror request's buffers to the control
// side. Filled reports whether the render side wrote fresh samples; before
// bootstrap the buffers come back untouched.
type MirrorReply struct {
	Left, Right []float32
	Filled      bool
}

// RenderEndpoint owns the synthesis handle and runs on the real-time render
// context. RenderBlock and everything it dispatches execute only there; the
// inbox producer side (ControlEndpoint, BootstrapChannel) is the single
// crossing point from other contexts.
type RenderEndpoint struct {
	sampleRate int
	inbox      chan renderMessage

	// Render-context state. Uninitialized until a bootstrap message lands.
	module Module
	handle noise.Handle
	ready  bool
}

// NewRenderEndpoint returns an Uninitialized endpoint for the given rate.
func NewRenderEndpoint(sampleRate int) (*RenderEndpoint, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("render sample rate must be > 0: %d", sampleRate)
	}
	return &RenderEndpoint{
		sampleRate: sampleRate,
		inbox:      make(chan renderMessage, inboxDepth),
	}, nil
}

// SampleRate returns the rate the endpoint renders at.
func (e *RenderEndpoint) SampleRate() int {
	return e.sampleRate
}

// Ready reports whether bootstrap has completed. Render context only.
func (e *RenderEndpoint) Ready() bool {
	return e.ready
}

// RenderBlock services pending control traffic, then fills one audio block.
// While Uninitialized the output is left untouched, which the audio host
// treats as silence. RenderBlock never blocks and never allocates.
func (e *RenderEndpoint) RenderBlock(left, right []float32) {
	e.drainInbox()
	if !e.ready {
		return
	}
	// The handle was created by this endpoint and fills are serialized on
	// this context, so the error path is unreachable here.
	_ = e.module.Fill(e.handle, left, right)
}

// drainInbox dispatches every message already queued, without waiting.
func (e *RenderEndpoint) drainInbox() {
	for {
		select {
		case msg := <-e.inbox:
			switch m := msg.(type) {
			case bootstrapMessage:
				e.handleBootstrap(m)
			case mirrorMessage:
				e.handleMirror(m)
			}
		default:
			return
		}
	}
}

func (e *RenderEndpoint) handleBootstrap(m bootstrapMessage) {
	if e.ready {
		m.ack <- ErrAlreadyBootstrapped
		return
	}
	mod, err := LoadModule(m.payload)
	if err != nil {
		m.ack <- err
		return
	}
	h, err := mod.Create(e.sampleRate)
	if err != nil {
		m.ack <- fmt.Errorf("bootstrap create: %w", err)
		return
	}
	e.module = mod
	e.handle = h
	e.ready = true
	m.ack <- nil
}

func (e *RenderEndpoint) handleMirror(m mirrorMessage) {
	filled := false
	if e.ready {
		filled = e.module.Preview(e.handle, m.left, m.right) == nil
	}
	m.reply <- MirrorReply{Left: m.left, Right: m.right, Filled: filled}
}
