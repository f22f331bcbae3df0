package engine

import "errors"

var (
	// ErrAlreadyBootstrapped reports a second bootstrap delivery to an
	// endpoint that is already Ready. The endpoint keeps its current state.
	ErrAlreadyBootstrapped = errors.New("engine: endpoint already bootstrapped")

	// ErrBadMagic reports a module payload that does not start with the
	// expected magic bytes.
	ErrBadMagic = errors.New("engine: payload magic mismatch")

	// ErrPayloadTooShort reports a truncated module payload.
	ErrPayloadTooShort = errors.New("engine: payload truncated")

	// ErrUnsupportedVersion reports a payload with an unknown format version.
	ErrUnsupportedVersion = errors.New("engine: unsupported payload version")

	// ErrBadMultiplierCount reports a payload whose multiplier table does not
	// match the generator bank size.
	ErrBadMultiplierCount = errors.New("engine: bad multiplier count")
)
