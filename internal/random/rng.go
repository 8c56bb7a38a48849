// Package random provides the deterministic randomness used for round
// selection: a string-seeded generator and a weighted sampler. Every client
// that derives the same seed string observes the same draw sequence.
package random

// Generator is a Mulberry32 pseudo-random generator seeded from a string.
// It holds 32 bits of integer state, so its output is identical on every
// platform regardless of floating-point mode.
type Generator struct {
	state uint32
}

// New creates a generator whose sequence is a pure function of seed.
// Two generators built from equal seeds yield element-wise identical streams.
func New(seed string) *Generator {
	return &Generator{state: hashSeed(seed)}
}

// hashSeed mixes the seed bytes into a 32-bit state (xmur3-style avalanche).
func hashSeed(seed string) uint32 {
	h := uint32(1779033703) ^ uint32(len(seed))
	for i := 0; i < len(seed); i++ {
		h = (h ^ uint32(seed[i])) * 3432918353
		h = h<<13 | h>>19
	}
	h = (h ^ h>>16) * 2246822507
	h = (h ^ h>>13) * 3266489909
	return h ^ h>>16
}

// Next returns the next value in [0, 1). The sequence is infinite and
// restartable: rebuilding the generator from the same seed replays it.
func (g *Generator) Next() float64 {
	g.state += 0x6D2B79F5
	t := g.state
	t = (t ^ t>>15) * (t | 1)
	t ^= t + (t^t>>7)*(t|61)
	return float64(t^t>>14) / 4294967296.0
}

// IntN returns an integer in [min, max) drawn from the stream.
func (g *Generator) IntN(min, max int) int {
	return min + int(g.Next()*float64(max-min))
}
