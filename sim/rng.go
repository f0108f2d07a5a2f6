package sim

import "math/rand"

// OutcomeSource is the run's single pseudorandom generator. Each run owns
// exactly one instance, constructed from the seed, and consults it at
// exactly two decision points: the end of a cultivation attempt and the end
// of a growing step. The draw order therefore follows the fixed per-tick
// patch processing order, which makes runs with equal seed and config
// bit-for-bit reproducible.
//
// Thread-safety: NOT thread-safe. Must be owned by a single run.
type OutcomeSource struct {
	rng *rand.Rand
}

// NewOutcomeSource creates an OutcomeSource from a seed. Never global state:
// independent runs own independent sources, so parameter sweeps can execute
// runs in parallel without locking.
func NewOutcomeSource(seed int64) *OutcomeSource {
	return &OutcomeSource{rng: rand.New(rand.NewSource(seed))}
}

// Bernoulli draws a success with probability p.
func (o *OutcomeSource) Bernoulli(p float64) bool {
	return o.rng.Float64() < p
}
