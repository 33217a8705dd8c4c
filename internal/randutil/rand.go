// Package randutil centralises how simulation rand sources are seeded so
// that equity runs are reproducible when a caller pins a seed.
package randutil

import (
	rand "math/rand/v2"
	"time"
)

// New returns a *rand.Rand for the given seed. A zero seed means "no
// preference" and produces a time-seeded source; any other value yields a
// reproducible sequence.
func New(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	u := uint64(seed)
	return rand.New(rand.NewPCG(splitmix(u), splitmix(u+0x9e3779b97f4a7c15)))
}

// splitmix spreads seed bits so adjacent seeds produce unrelated streams.
func splitmix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
