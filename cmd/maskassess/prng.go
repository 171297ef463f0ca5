//go:build !masking_hardened

package main

import (
	"github.com/tuneinsight/lattigo-masking/utils/sampling"
)

// newPRNG returns the randomness source of the assessment: the system CSPRNG,
// or a keyed PRNG derived from seed if seed is not empty.
func newPRNG(seed string) (sampling.PRNG, error) {
	if seed == "" {
		return sampling.NewPRNG()
	}
	return sampling.NewKeyedPRNG(sampling.DeriveKey("maskassess seed", []byte(seed)))
}
