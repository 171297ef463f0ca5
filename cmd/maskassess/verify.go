//go:build !masking_hardened

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tuneinsight/lattigo-masking/masking"
	"github.com/tuneinsight/lattigo-masking/utils/sampling"
)

func debugCommands(configFile *string) []*cobra.Command {
	return []*cobra.Command{newVerifyCommand(configFile)}
}

func newVerifyCommand(configFile *string) *cobra.Command {

	var rounds, refreshes int

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check that masking, refreshing and share-wise evaluation preserve the secret",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {

			cfg, err := loadConfig(*configFile)
			if err != nil {
				return fmt.Errorf("failed to load config file: %w", err)
			}

			params, err := masking.NewParametersFromLiteral(cfg.Parameters.Literal())
			if err != nil {
				return err
			}

			prng, err := newPRNG(cfg.Assessment.Seed)
			if err != nil {
				return err
			}

			if err = verify(params, prng, rounds, refreshes); err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "q=%d N=%d d=%d: %d rounds verified\n", params.Q(), params.N(), params.Order(), rounds)
			return err
		},
	}

	cmd.Flags().IntVarP(&rounds, "rounds", "r", 64, "number of random polynomials")
	cmd.Flags().IntVar(&refreshes, "refreshes", 8, "number of refreshes per polynomial")

	return cmd
}

// verify masks random polynomials and checks that unmasking recovers them
// after masking, after each refresh and after share-wise additions.
func verify(params masking.Parameters, prng sampling.PRNG, rounds, refreshes int) error {

	masker := masking.NewMasker(params, prng)
	eval := masking.NewEvaluator(params)
	ringQ := params.RingQ()

	sum := masker.AllocateMasked()
	want := ringQ.NewPoly()
	have := ringQ.NewPoly()

	for i := 0; i < rounds; i++ {

		plain, err := masker.Sampler().ReadNew(params.N())
		if err != nil {
			return err
		}

		mp, err := masker.MaskNew(plain)
		if err != nil {
			return err
		}

		if masker.Unmask(mp, have); !have.Equal(plain) {
			return fmt.Errorf("verify: round %d: unmasking does not recover the secret", i)
		}

		for k := 0; k < refreshes; k++ {
			if err = masker.Refresh(mp); err != nil {
				return err
			}
			if masker.Unmask(mp, have); !have.Equal(plain) {
				return fmt.Errorf("verify: round %d: refresh %d changed the secret", i, k)
			}
		}

		eval.Add(sum, mp, sum)
		ringQ.Add(want, plain, want)

		if masker.Unmask(sum, have); !have.Equal(want) {
			return fmt.Errorf("verify: round %d: share-wise addition does not add the secrets", i)
		}

		mp.Wipe()
	}

	return nil
}
