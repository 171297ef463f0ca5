//go:build masking_hardened

package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/tuneinsight/lattigo-masking/utils/sampling"
)

func newPRNG(seed string) (sampling.PRNG, error) {
	if seed != "" {
		return nil, errors.New("maskassess: Seed is not supported by hardened builds")
	}
	return sampling.NewPRNG()
}

func debugCommands(configFile *string) []*cobra.Command {
	return nil
}
