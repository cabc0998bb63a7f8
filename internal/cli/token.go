package cli

import "github.com/google/uuid"

// RunTokenGenerator generates unique tokens stamped on conversion runs so
// their output can be correlated in logs and pipelines.
// Implemented by UUIDv7Generator (production) and FixedGenerator (tests).
type RunTokenGenerator interface {
	Generate() string
}

// UUIDv7Generator generates time-sortable UUIDv7 run tokens.
type UUIDv7Generator struct{}

// Generate creates a new UUIDv7 and returns it as a hyphenated string.
// Panics if UUID generation fails (should never happen in practice).
func (UUIDv7Generator) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}

// FixedGenerator returns one predetermined token, for deterministic tests.
type FixedGenerator struct {
	Token string
}

// Generate returns the predetermined token.
func (g FixedGenerator) Generate() string {
	return g.Token
}
