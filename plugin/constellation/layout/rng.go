package layout

import "math/rand"

// NewRand returns a production jitter source.
func NewRand() Rand {
	return rand.New(rand.NewSource(rand.Int63()))
}

// NewSeededRand returns a deterministic jitter source for tests and for
// callers that want reproducible layouts.
func NewSeededRand(seed int64) Rand {
	return rand.New(rand.NewSource(seed))
}
