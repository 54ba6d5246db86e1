package generation

import (
	"math/rand"
	"sync"
)

// Rand is the randomness the engine consumes. Tests inject a scripted
// implementation for deterministic progress sequences.
type Rand interface {
	// Float64 returns a value in [0.0, 1.0)
	Float64() float64
	// Intn returns a value in [0, n)
	Intn(n int) int
}

// lockedRand wraps math/rand with a mutex so the ticker goroutine and
// concurrent creators can share one source
type lockedRand struct {
	mu  sync.Mutex
	src *rand.Rand
}

// NewRand returns a mutex-guarded randomness source with the given seed
func NewRand(seed int64) Rand {
	return &lockedRand{src: rand.New(rand.NewSource(seed))}
}

func (r *lockedRand) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.src.Float64()
}

func (r *lockedRand) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.src.Intn(n)
}
