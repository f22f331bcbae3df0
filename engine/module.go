package engine

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/cwbudde/algo-noise/dsp/noise"
)

// Module is the initialization contract of a loaded synthesis module:
// create a generator for a sample rate, then fill or preview through the
// returned opaque handle.
type Module interface {
	Create(sampleRate int) (noise.Handle, error)
	Fill(h noise.Handle, left, right []float32) error
	Preview(h noise.Handle, left, right []float32) error
}

// Payload describes the generator parameters carried by a bootstrap payload.
type Payload struct {
	BaseFrequency float64
	DriftRate     float64
	// Seed selects a deterministic random seed; zero seeds from the clock.
	Seed        int64
	Multipliers []float64
}

// DefaultPayload returns the standard voicing.
func DefaultPayload() Payload {
	return Payload{
		BaseFrequency: noise.DefaultBaseFrequency,
		DriftRate:     noise.DefaultDriftRate,
		Multipliers:   noise.DefaultMultipliers(),
	}
}

// Payload wire format, big-endian:
//
//	0   magic "NMOD"
//	4   uint16 version
//	6   uint16 multiplier count
//	8   float64 base frequency (Hz)
//	16  float64 drift rate (1/s)
//	24  int64 seed
//	32  count * float64 multipliers
const (
	payloadMagic   = "NMOD"
	payloadVersion = 1
	payloadHeader  = 32
)

// Encode serializes the payload for delivery over a BootstrapChannel.
func (p Payload) Encode() ([]byte, error) {
	if p.BaseFrequency <= 0 {
		return nil, fmt.Errorf("encode payload: base frequency must be > 0: %f", p.BaseFrequency)
	}
	if p.DriftRate < 0 {
		return nil, fmt.Errorf("encode payload: drift rate must be >= 0: %f", p.DriftRate)
	}
	if len(p.Multipliers) != noise.BankSize {
		return nil, ErrBadMultiplierCount
	}

	raw := make([]byte, payloadHeader+8*len(p.Multipliers))
	copy(raw, payloadMagic)
	binary.BigEndian.PutUint16(raw[4:], payloadVersion)
	binary.BigEndian.PutUint16(raw[6:], uint16(len(p.Multipliers)))
	binary.BigEndian.PutUint64(raw[8:], math.Float64bits(p.BaseFrequency))
	binary.BigEndian.PutUint64(raw[16:], math.Float64bits(p.DriftRate))
	binary.BigEndian.PutUint64(raw[24:], uint64(p.Seed))
	for i, m := range p.Multipliers {
		binary.BigEndian.PutUint64(raw[payloadHeader+8*i:], math.Float64bits(m))
	}
	return raw, nil
}

// LoadModule validates a bootstrap payload and returns the module it
// describes. The returned module instantiates generators in the package
// noise handle arena.
func LoadModule(raw []byte) (Module, error) {
	p, err := decodePayload(raw)
	if err != nil {
		return nil, err
	}
	return &noiseModule{payload: p}, nil
}

func decodePayload(raw []byte) (Payload, error) {
	var p Payload
	if len(raw) < payloadHeader {
		return p, ErrPayloadTooShort
	}
	if string(raw[:4]) != payloadMagic {
		return p, ErrBadMagic
	}
	if v := binary.BigEndian.Uint16(raw[4:]); v != payloadVersion {
		return p, fmt.Errorf("%w: %d", ErrUnsupportedVersion, v)
	}
	count := int(binary.BigEndian.Uint16(raw[6:]))
	if count != noise.BankSize {
		return p, fmt.Errorf("%w: %d", ErrBadMultiplierCount, count)
	}
	if len(raw) < payloadHeader+8*count {
		return p, ErrPayloadTooShort
	}

	p.BaseFrequency = math.Float64frombits(binary.BigEndian.Uint64(raw[8:]))
	p.DriftRate = math.Float64frombits(binary.BigEndian.Uint64(raw[16:]))
	p.Seed = int64(binary.BigEndian.Uint64(raw[24:]))
	p.Multipliers = make([]float64, count)
	for i := range p.Multipliers {
		p.Multipliers[i] = math.Float64frombits(binary.BigEndian.Uint64(raw[payloadHeader+8*i:]))
	}

	if p.BaseFrequency <= 0 || math.IsNaN(p.BaseFrequency) || math.IsInf(p.BaseFrequency, 0) {
		return p, fmt.Errorf("decode payload: base frequency must be > 0: %f", p.BaseFrequency)
	}
	if p.DriftRate < 0 || math.IsNaN(p.DriftRate) || math.IsInf(p.DriftRate, 0) {
		return p, fmt.Errorf("decode payload: drift rate must be >= 0: %f", p.DriftRate)
	}
	for _, m := range p.Multipliers {
		if m <= 0 || math.IsNaN(m) || math.IsInf(m, 0) {
			return p, fmt.Errorf("decode payload: multiplier must be > 0: %f", m)
		}
	}
	return p, nil
}

// noiseModule binds a decoded payload to the noise package.
type noiseModule struct {
	payload Payload
}

func (m *noiseModule) Create(sampleRate int) (noise.Handle, error) {
	opts := []noise.Option{
		noise.WithBaseFrequency(m.payload.BaseFrequency),
		noise.WithDriftRate(m.payload.DriftRate),
		noise.WithMultipliers(m.payload.Multipliers),
	}
	if m.payload.Seed != 0 {
		opts = append(opts, noise.WithSeed(m.payload.Seed))
	}
	return noise.Create(sampleRate, opts...)
}

func (m *noiseModule) Fill(h noise.Handle, left, right []float32) error {
	return noise.Fill(h, left, right)
}

func (m *noiseModule) Preview(h noise.Handle, left, right []float32) error {
	return noise.Preview(h, left, right)
}
