package devserver

import (
	"math/rand"
	"sync"
	"time"
)

// Selector picks variants at random following their distribution.
type Selector struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewSelector returns a selector drawing from src. A nil src is seeded
// from the clock.
func NewSelector(src rand.Source) *Selector {
	if src == nil {
		src = rand.NewSource(time.Now().UnixNano())
	}
	return &Selector{rnd: rand.New(src)} //nolint:gosec
}

// Select draws a percentage in [0, 100) and returns the first variant
// whose cumulative distribution reaches it. The last variant is returned
// when rounding leaves the draw uncovered. variants must not be empty.
func (s *Selector) Select(variants []Variant) Variant {
	s.mu.Lock()
	r := s.rnd.Float64() * 100
	s.mu.Unlock()

	return pick(variants, r)
}

func pick(variants []Variant, r float64) Variant {
	var cumulative float64
	for _, v := range variants {
		cumulative += v.Distribution
		if r <= cumulative {
			return v
		}
	}

	return variants[len(variants)-1]
}
