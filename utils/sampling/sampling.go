// Package sampling implements deterministic sampling of random parameters.
package sampling

import (
	"encoding/binary"
	"fmt"
)

// Source draws uniform values from a PRNG.
type Source struct {
	prng PRNG
	buff [8]byte
}

// NewSource returns a Source reading from prng.
func NewSource(prng PRNG) *Source {
	return &Source{prng: prng}
}

// NewSourceFromKey returns a Source backed by a KeyedPRNG seeded with key.
func NewSourceFromKey(key []byte) (*Source, error) {
	prng, err := NewKeyedPRNG(key)
	if err != nil {
		return nil, fmt.Errorf("cannot NewSourceFromKey: %w", err)
	}
	return NewSource(prng), nil
}

// Uint64 returns a random value between 0 and 0xFFFFFFFFFFFFFFFF.
func (s *Source) Uint64() uint64 {
	if _, err := s.prng.Read(s.buff[:]); err != nil {
		// a blake2b XOF of unknown length cannot run dry
		panic(fmt.Errorf("cannot Uint64: %w", err))
	}
	return binary.LittleEndian.Uint64(s.buff[:])
}

// Float64 returns a random float between min and max.
func (s *Source) Float64(min, max float64) float64 {
	f := float64(s.Uint64()>>11) / (1 << 53)
	return min + f*(max-min)
}

// Complex128 returns a random complex with the real and imaginary part between min and max.
func (s *Source) Complex128(min, max float64) complex128 {
	return complex(s.Float64(min, max), s.Float64(min, max))
}

// Intn returns a random int in [0, n-1].
func (s *Source) Intn(n int) int {
	if n <= 0 {
		panic(fmt.Errorf("cannot Intn: n=%d must be positive", n))
	}
	return int(s.Uint64() % uint64(n))
}

// Dyadic returns a random multiple of 2^-bits between min and max, which
// is exactly representable in binary.
func (s *Source) Dyadic(min, max float64, bits int) float64 {
	scale := float64(uint64(1) << bits)
	return float64(int64(s.Float64(min, max)*scale)) / scale
}
