package core

import "math/rand/v2"

// BitSource supplies the random draws used to build rule tables and seed
// spaces. Tests substitute fixed sequences.
type BitSource interface {
	Bool() bool
	Byte() uint8
}

// RNG is a thin convenience wrapper around math/rand/v2 for deterministic seeding.
type RNG struct {
	r *rand.Rand
}

// NewRNG creates a deterministic RNG using the provided seed.
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(uint64(seed), 0))}
}

// Bool returns a random boolean value.
func (r *RNG) Bool() bool {
	return r.r.IntN(2) == 1
}

// Byte returns a uniformly distributed byte.
func (r *RNG) Byte() uint8 {
	return uint8(r.r.Uint32())
}

// FillBinary fills the buffer with 0/1 values drawn from src.
func FillBinary(src BitSource, buf []uint8) {
	for i := range buf {
		if src.Bool() {
			buf[i] = 1
			continue
		}
		buf[i] = 0
	}
}
