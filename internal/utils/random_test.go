package utils

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewRandConcurrentUse(t *testing.T) {
	rng := NewRand()

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 1000; i++ {
				v := rng.Intn(100)
				if v < 0 || v >= 100 {
					t.Errorf("Intn(100) returned %d", v)
				}
				rng.Float64()
			}
		}()
	}
	wg.Wait()
}

func TestNewRandProducesDistinctValues(t *testing.T) {
	rng := NewRand()
	seen := make(map[int]bool)
	for i := 0; i < 50; i++ {
		seen[rng.Intn(1 << 30)] = true
	}
	assert.Greater(t, len(seen), 45)
}
