package jobsec

// LCG constants. The arithmetic is on uint32 and wraps on overflow; the
// output sequence depends on that wrap.
const (
	randMultiplier = 1103515245
	randIncrement  = 12345
)

// Rand is a minimal linear congruential generator.
//
// It produces the same sequence as the classic portable rand() example:
// for a given seed the sequence of [Rand.Next] values never changes, which is
// what makes mutation reproducible. It is not safe for concurrent use.
type Rand struct {
	state uint32
}

// NewRand returns a generator seeded with seed.
func NewRand(seed uint32) *Rand {
	return &Rand{state: seed}
}

// Seed resets the generator state.
func (r *Rand) Seed(seed uint32) {
	r.state = seed
}

// Next advances the generator and returns a value in [0, 32768).
func (r *Rand) Next() uint32 {
	r.state = r.state*randMultiplier + randIncrement

	return (r.state / 65536) % 32768
}

// Intn returns Next() mod n. n must be > 0.
func (r *Rand) Intn(n int) int {
	return int(r.Next() % uint32(n))
}
