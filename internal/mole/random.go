package mole

import (
	"fmt"
	"math/rand"
)

// RandomSource produces uniform values in [0, 1).
type RandomSource interface {
	Draw() float64
}

// SeededSource is a deterministic RandomSource backed by math/rand.
// Two sources with the same seed produce the same sequence.
type SeededSource struct {
	rng *rand.Rand
}

// NewSeededSource creates a source seeded with seed.
func NewSeededSource(seed int64) *SeededSource {
	return &SeededSource{rng: rand.New(rand.NewSource(seed))}
}

// Draw returns the next value in [0, 1).
func (s *SeededSource) Draw() float64 {
	return s.rng.Float64()
}

// SequenceSource replays a fixed list of values, wrapping around at the end.
// It is meant for tests that need to assert exact positions.
type SequenceSource struct {
	values []float64
	next   int
}

// NewSequenceSource creates a source cycling through values.
// Panics if values is empty or any value falls outside [0, 1).
func NewSequenceSource(values ...float64) *SequenceSource {
	if len(values) == 0 {
		panic("mole: sequence source needs at least one value")
	}
	for _, v := range values {
		if v < 0 || v >= 1 {
			panic(fmt.Sprintf("mole: sequence value %g outside [0, 1)", v))
		}
	}
	return &SequenceSource{values: append([]float64(nil), values...)}
}

// Draw returns the next value in the sequence.
func (s *SequenceSource) Draw() float64 {
	v := s.values[s.next]
	s.next = (s.next + 1) % len(s.values)
	return v
}
