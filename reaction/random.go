package reaction

import "math/rand/v2"

// RandomSource picks an index in [0, n) without bias.
type RandomSource interface {
	IntN(n int) int
}

type globalSource struct{}

func (globalSource) IntN(n int) int { return rand.IntN(n) }

// NewRandomSource returns the process-wide pseudo-random source.
// No reproducibility is promised.
func NewRandomSource() RandomSource {
	return globalSource{}
}
