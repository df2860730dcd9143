package utils

import (
	"math/rand"
	"sync"
	"time"
)

// lockedSource guards a rand source so one generator can be drawn from by
// multiple goroutines
type lockedSource struct {
	mu  sync.Mutex
	src rand.Source64
}

func (s *lockedSource) Int63() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.src.Int63()
}

func (s *lockedSource) Uint64() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.src.Uint64()
}

func (s *lockedSource) Seed(seed int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.src.Seed(seed)
}

// NewRand returns a time-seeded rand.Rand that is safe for concurrent use.
// Plain rand.Rand values are not; components reachable from both the
// scheduler and HTTP handlers must use this.
func NewRand() *rand.Rand {
	return rand.New(&lockedSource{src: rand.NewSource(time.Now().UnixNano()).(rand.Source64)})
}
