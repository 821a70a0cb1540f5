// Package selector picks one entry out of n candidates.
package selector

import (
	"math/rand/v2"
	"sync"
)

// Func returns an index in [0, n). Callers never pass n <= 0.
type Func func(n int) int

// Random returns a selector backed by a PCG source. A zero seed draws a
// fresh seed from the runtime.
func Random(seed uint64) Func {
	var src rand.Source
	if seed == 0 {
		src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	} else {
		src = rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)
	}
	rng := rand.New(src)
	var mu sync.Mutex
	return func(n int) int {
		mu.Lock()
		defer mu.Unlock()
		return rng.IntN(n)
	}
}

// Fixed always returns i, wrapped into range.
func Fixed(i int) Func {
	return func(n int) int {
		if i < 0 {
			return 0
		}
		return i % n
	}
}

// First always returns 0.
func First() Func { return Fixed(0) }

// Pick returns one element of items, or the zero value when items is empty.
func Pick[T any](pick Func, items []T) T {
	var zero T
	if len(items) == 0 {
		return zero
	}
	if pick == nil {
		return items[0]
	}
	return items[pick(len(items))]
}
