package clusterplay

import "math/rand/v2"

// Source is a reproducible random generator seeded from an integer. Each engine
// owns its Source; nothing reads global randomness.
type Source struct {
	r *rand.Rand
}

func NewSource(seed int64) *Source {
	return &Source{r: rand.New(rand.NewPCG(uint64(seed), 0x9e3779b97f4a7c15))}
}

// Intn returns a uniform integer in [0, n). n must be positive.
func (s *Source) Intn(n int) int {
	return s.r.IntN(n)
}

func (s *Source) Float64() float64 {
	return s.r.Float64()
}
