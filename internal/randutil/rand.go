package randutil

import (
	rand "math/rand/v2"
	"time"
)

const (
	goldenRatio64 = 0x9e3779b97f4a7c15
)

// New returns a *rand.Rand seeded deterministically from the provided int64.
// The helper centralises how we derive the two 64-bit seeds required by rand/v2
// so that all call sites get reproducible sequences.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// Stream returns the RNG for one of several parallel workers sharing a seed.
// Streams for different indices are independent; the same (seed, index) pair
// always yields the same sequence.
func Stream(seed int64, index int) *rand.Rand {
	u := mix(uint64(seed)) + uint64(index+1)*goldenRatio64
	return rand.New(rand.NewPCG(mix(u), mix(u^goldenRatio64)))
}

// SeedOrNow returns seed unless it is zero, in which case a time-based seed
// is used.
func SeedOrNow(seed int64) int64 {
	if seed != 0 {
		return seed
	}
	return time.Now().UnixNano()
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
