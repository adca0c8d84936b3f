package engine

import "math/rand/v2"

// jitterSource draws the adapter_jitter value on a '.' pattern byte.
// §5 requires a non-blocking source — no reads from a kernel RNG on
// the hot path — so this wraps a pre-seeded counter-based generator
// (PCG) rather than a blocking system source.
type jitterSource struct {
	rng *rand.Rand
}

// newJitterSource seeds a PCG generator once, when NewEngine builds
// the engine, from two caller-supplied 64-bit seeds; Init does not
// reseed it. Reusing the same seeds reproduces the same jitter
// sequence, so a test can replay a run deterministically.
func newJitterSource(seed1, seed2 uint64) *jitterSource {
	return &jitterSource{rng: rand.New(rand.NewPCG(seed1, seed2))}
}

// draw returns a value uniformly distributed on [0, randMax). Called
// only at a trial boundary, once for each '.' byte consumed there,
// never inside the per-sample arithmetic.
func (j *jitterSource) draw(randMax int) int {
	if randMax <= 0 {
		return 0
	}
	return j.rng.IntN(randMax)
}
