package noise

import (
	"errors"
	"sync/atomic"
)

// Handle is an opaque, process-unique reference to a registered Generator.
// The zero Handle is never valid.
type Handle uint32

const arenaSize = 64

// Arena of live generators. Slots are written once on Create and only read
// afterwards, so lookups on the real-time path are lock-free.
var (
	arena     [arenaSize]atomic.Pointer[Generator]
	arenaNext atomic.Uint32
)

var (
	// ErrUnknownHandle reports a handle that does not address a live generator.
	ErrUnknownHandle = errors.New("noise: unknown handle")
	// ErrArenaFull reports that no generator slots remain in this process.
	ErrArenaFull = errors.New("noise: handle arena full")
)

// Create builds a Generator and registers it in the arena, returning its
// handle. Generators live for the remainder of the process; there is no
// teardown protocol.
func Create(sampleRate int, opts ...Option) (Handle, error) {
	g, err := New(sampleRate, opts...)
	if err != nil {
		return 0, err
	}
	return Register(g)
}

// Register places an existing Generator in the arena.
func Register(g *Generator) (Handle, error) {
	slot := arenaNext.Add(1)
	if slot > arenaSize {
		return 0, ErrArenaFull
	}
	arena[slot-1].Store(g)
	return Handle(slot), nil
}

// Resolve returns the generator addressed by h, or nil if h is not live.
func Resolve(h Handle) *Generator {
	if h == 0 || h > arenaSize {
		return nil
	}
	return arena[h-1].Load()
}

// Fill is the handle-addressed form of Generator.Fill.
func Fill(h Handle, left, right []float32) error {
	g := Resolve(h)
	if g == nil {
		return ErrUnknownHandle
	}
	g.Fill(left, right)
	return nil
}

// Preview is the handle-addressed form of Generator.Preview.
func Preview(h Handle, left, right []float32) error {
	g := Resolve(h)
	if g == nil {
		return ErrUnknownHandle
	}
	g.Preview(left, right)
	return nil
}
