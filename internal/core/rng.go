package core

// Rand is a deterministic pseudo-random number generator shared by the level
// generator, pickup rolls and the AI controller. Uses a simple LCG so that a
// fixed seed reproduces an entire session bit-for-bit.
type Rand struct {
	state uint64
}

// NewRand creates a new RNG with the given seed.
func NewRand(seed int64) *Rand {
	s := uint64(seed) //#nosec G115 -- intentional conversion for RNG seeding
	if s == 0 {
		s = 1
	}
	return &Rand{state: s}
}

// Next generates the next random uint64.
func (r *Rand) Next() uint64 {
	r.state = r.state*6364136223846793005 + 1442695040888963407
	return r.state
}

// Intn returns a random int in [0, n).
func (r *Rand) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.Next() % uint64(n)) //#nosec G115 -- n is always positive
}

// Float64 returns a random float64 in [0, 1).
func (r *Rand) Float64() float64 {
	return float64(r.Next()>>11) / float64(1<<53)
}

// Range returns a random float64 in [lo, hi).
func (r *Rand) Range(lo, hi float64) float64 {
	return lo + r.Float64()*(hi-lo)
}

// Chance returns true with probability p in [0, 1].
func (r *Rand) Chance(p float64) bool {
	return r.Float64() < p
}

// State exposes the raw generator state for snapshots.
func (r *Rand) State() uint64 {
	return r.state
}

// SetState restores the raw generator state from a snapshot.
func (r *Rand) SetState(s uint64) {
	if s == 0 {
		s = 1
	}
	r.state = s
}
