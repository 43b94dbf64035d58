// Package entropy provides the simulation's randomness source.
//
// A run is reproducible given its seed: the only consumer of randomness is
// the market's equal-price offer tie-break. Seed zero requests a fresh seed
// drawn from crypto/rand.
package entropy

import (
	crand "crypto/rand"
	"encoding/binary"
	"log/slog"
	"math/rand"
)

// NewSource returns a seeded *rand.Rand together with the seed actually
// used. If seed is zero a real random seed is drawn and logged, so the run
// can still be reproduced afterwards.
func NewSource(seed int64) (*rand.Rand, int64) {
	if seed == 0 {
		seed = randomSeed()
		slog.Info("drew random seed", "seed", seed)
	}
	return rand.New(rand.NewSource(seed)), seed
}

func randomSeed() int64 {
	var buf [8]byte
	if _, err := crand.Read(buf[:]); err != nil {
		// crypto/rand failing is unrecoverable misconfiguration.
		panic("entropy: reading crypto/rand: " + err.Error())
	}
	seed := int64(binary.LittleEndian.Uint64(buf[:]) >> 1)
	if seed == 0 {
		seed = 1
	}
	return seed
}
