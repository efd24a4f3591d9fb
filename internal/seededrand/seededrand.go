package seededrand

import "math/rand/v2"

// Generator produces a deterministic sequence of floats in [0, 1).
// It is not safe for concurrent use; each sorter owns one.
type Generator struct {
	salt uint64
	src  *rand.PCG
	rnd  *rand.Rand
}

// New returns a generator seeded with 0. The salt is mixed into every seed so
// that separate installations can shuffle differently while each stays
// reproducible.
func New(salt uint64) *Generator {
	src := rand.NewPCG(0, salt)
	return &Generator{
		salt: salt,
		src:  src,
		rnd:  rand.New(src),
	}
}

// SetSeed resets the sequence. Subsequent Next calls replay the same values
// for the same n.
func (g *Generator) SetSeed(n int) {
	g.src.Seed(uint64(n), g.salt)
}

// Next returns the next value in [0, 1).
func (g *Generator) Next() float64 {
	return g.rnd.Float64()
}
