// Package shuffle produces random permutations of small collections, such as
// the answer choices of a question.
package shuffle

import (
	"math/rand"
	"sync"
	"time"
)

// Source yields uniformly distributed integers in [0, n).
type Source interface {
	Intn(n int) int
}

// Shuffle returns a uniformly random permutation of items using Fisher-Yates.
// The input slice is never modified; empty and single-element inputs come
// back as copies.
func Shuffle[T any](src Source, items []T) []T {
	out := make([]T, len(items))
	copy(out, items)
	for i := len(out) - 1; i > 0; i-- {
		j := src.Intn(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// LockedSource is a Source safe for concurrent use.
type LockedSource struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewSource seeds a LockedSource. A zero seed uses the current time.
func NewSource(seed int64) *LockedSource {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &LockedSource{rnd: rand.New(rand.NewSource(seed))}
}

func (s *LockedSource) Intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rnd.Intn(n)
}
