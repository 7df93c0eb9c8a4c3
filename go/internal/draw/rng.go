package draw

import (
	"math/rand/v2"
	"unicode/utf16"
)

// Source yields floats in [0, 1). Seeded and unseeded draws share this interface.
type Source interface {
	Float64() float64
}

// Mulberry32 is a small deterministic generator. Output is identical on every
// platform for the same seed string.
type Mulberry32 struct {
	state uint32
}

// NewSeeded hashes seed into a 32-bit state.
func NewSeeded(seed string) *Mulberry32 {
	state := HashSeed(seed)
	if state == 0 {
		state = 1
	}
	return &Mulberry32{state: state}
}

// Float64 advances the generator.
func (m *Mulberry32) Float64() float64 {
	m.state += 0x6d2b79f5
	t := m.state
	t = (t ^ (t >> 15)) * (t | 1)
	t ^= t + (t^(t>>7))*(t|61)
	return float64(t^(t>>14)) / 4294967296
}

// HashSeed is 32-bit FNV-1a over the UTF-16 code units of seed.
func HashSeed(seed string) uint32 {
	h := uint32(2166136261)
	for _, unit := range utf16.Encode([]rune(seed)) {
		h ^= uint32(unit)
		h *= 16777619
	}
	return h
}

type randomSource struct{}

func (randomSource) Float64() float64 { return rand.Float64() }

// NewRandomSource returns a non-deterministic source.
func NewRandomSource() Source { return randomSource{} }

// SourceFor returns a seeded source when seed is set, otherwise a random one.
func SourceFor(seed string) Source {
	if seed == "" {
		return NewRandomSource()
	}
	return NewSeeded(seed)
}

// Index maps the next value of src onto [0, n).
func Index(src Source, n int) int {
	if n <= 1 {
		return 0
	}
	i := int(src.Float64() * float64(n))
	if i >= n {
		i = n - 1
	}
	return i
}
