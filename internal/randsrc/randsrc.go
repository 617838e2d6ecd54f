// Package randsrc isolates the pseudo-random draws used by synthetic findings
// and synthetic test reports so callers can pin them in tests.
package randsrc

import (
	"math/rand"
	"sync"
	"time"
)

// Source is the randomness the core consumes.
type Source interface {
	// Intn returns a value in [0, n). n must be positive.
	Intn(n int) int
	// Float64 returns a value in [0.0, 1.0).
	Float64() float64
}

type seeded struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSeeded returns a deterministic Source. It is safe for concurrent use.
func NewSeeded(seed int64) Source {
	return &seeded{rng: rand.New(rand.NewSource(seed))}
}

// NewTimeSeeded returns a Source seeded from the wall clock.
func NewTimeSeeded() Source {
	return NewSeeded(time.Now().UnixNano())
}

func (s *seeded) Intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Intn(n)
}

func (s *seeded) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Float64()
}

// Fixed always returns the same draws. Intn clamps Int into [0, n).
type Fixed struct {
	Int   int
	Float float64
}

func (f Fixed) Intn(n int) int {
	if f.Int < 0 {
		return 0
	}
	if f.Int >= n {
		return n - 1
	}
	return f.Int
}

func (f Fixed) Float64() float64 {
	return f.Float
}

// FromSeed returns a seeded source when seed is set and a time-seeded one otherwise.
func FromSeed(seed *int64) Source {
	if seed == nil {
		return NewTimeSeeded()
	}
	return NewSeeded(*seed)
}
