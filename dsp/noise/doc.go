// Package noise implements a stateful stereo noise generator built from a
// bank of harmonically related complex oscillators mixed through a slowly
// drifting unitary matrix. The drift is driven by commutator dynamics over a
// chain of random Hermitian matrices, which gives the output its band-limited,
// non-repeating character.
//
// The hot path (Fill, Preview) is allocation-free and suitable for real-time
// audio callbacks. Generators can be used directly or registered in the
// package handle arena so that callers behind an opaque module boundary can
// address them by integer handle.
package noise
