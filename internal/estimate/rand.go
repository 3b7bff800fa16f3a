package estimate

import (
	"encoding/binary"
	"hash/fnv"
	"math/rand/v2"
)

// Rand is the entropy source consumed by every estimator. *rand.Rand from
// math/rand/v2 satisfies it.
type Rand interface {
	IntN(n int) int
}

// NewRand returns a PCG generator seeded from seed. Two generators built
// from the same seed yield the same sequence.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// RandomSeed returns a seed drawn from the runtime's auto-seeded source.
func RandomSeed() uint64 {
	return rand.Uint64()
}

// SeedFor derives a stable seed from a descriptor so that re-submitting
// the same project yields the same metrics.
func SeedFor(d Descriptor) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(d.Kind))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(d.Platform))
	_, _ = h.Write([]byte{0})
	if d.SizeBytes != nil {
		var buf [8]byte
		binary.LittleEndian.PutUint64(buf[:], uint64(*d.SizeBytes))
		_, _ = h.Write(buf[:])
	}
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(d.Source))
	return h.Sum64()
}

// between returns an integer in [lo, hi).
func between(r Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + r.IntN(hi-lo)
}

// jitter returns a signed adjustment in [-10, 10).
func jitter(r Rand) int {
	return between(r, -10, 10)
}
