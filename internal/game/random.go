package game

import (
	"fmt"
	"hash/fnv"
	"math/rand/v2"
)

func seededSource(seed int64) *rand.PCG {
	// Non-cryptographic PRNG is intentional for deterministic simulation behavior.
	// #nosec G404
	return rand.NewPCG(seedWord(seed, "a"), seedWord(seed, "b"))
}

func seedWord(seed int64, salt string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(fmt.Sprintf("%d:%s", seed, salt)))
	return h.Sum64()
}

// randInt is inclusive on both ends.
func randInt(rng *rand.Rand, low, high int) int {
	if high <= low {
		return low
	}
	return low + rng.IntN(high-low+1)
}

func randUniform(rng *rand.Rand, low, high float64) float64 {
	return low + rng.Float64()*(high-low)
}
