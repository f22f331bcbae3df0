package noise

import "time"

// Default generator parameters, matching the classic voicing: a 100 Hz base
// oscillator with six partials drifting at 3 parameter-units per second.
const (
	DefaultBaseFrequency = 100.0
	DefaultDriftRate     = 3.0
)

var defaultMultipliers = [BankSize]float64{1, 1.25, 1.5, 2, 2.5, 3, 4}

// DefaultMultipliers returns a copy of the default oscillator frequency
// multipliers.
func DefaultMultipliers() []float64 {
	out := make([]float64, BankSize)
	copy(out, defaultMultipliers[:])
	return out
}

type config struct {
	seed     int64
	baseFreq float64
	drift    float64
	mult     [BankSize]float64
}

// Option configures a Generator.
type Option func(*config)

// WithSeed sets a deterministic random seed. Without it the generator seeds
// itself from the wall clock.
func WithSeed(seed int64) Option {
	return func(cfg *config) {
		cfg.seed = seed
	}
}

// WithBaseFrequency sets the base oscillator frequency in Hz.
// Non-positive values are ignored.
func WithBaseFrequency(freqHz float64) Option {
	return func(cfg *config) {
		if freqHz > 0 {
			cfg.baseFreq = freqHz
		}
	}
}

// WithDriftRate sets the parameter drift rate in units per second.
// Negative values are ignored.
func WithDriftRate(rate float64) Option {
	return func(cfg *config) {
		if rate >= 0 {
			cfg.drift = rate
		}
	}
}

// WithMultipliers sets the oscillator frequency multipliers. The slice must
// hold exactly BankSize positive values; anything else is ignored.
func WithMultipliers(mult []float64) Option {
	return func(cfg *config) {
		if len(mult) != BankSize {
			return
		}
		for _, m := range mult {
			if m <= 0 {
				return
			}
		}
		copy(cfg.mult[:], mult)
	}
}

func applyOptions(opts ...Option) config {
	cfg := config{
		seed:     time.Now().UnixNano(),
		baseFreq: DefaultBaseFrequency,
		drift:    DefaultDriftRate,
		mult:     defaultMultipliers,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
