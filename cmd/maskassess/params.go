package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/tuneinsight/lattigo-masking/masking"
	"github.com/tuneinsight/lattigo-masking/masking/leakage"
)

func newParamsCommand(configFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "params",
		Short: "Print the effective parameters and sampler constants",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {

			cfg, err := loadConfig(*configFile)
			if err != nil {
				return err
			}

			params, err := masking.NewParametersFromLiteral(cfg.Parameters.Literal())
			if err != nil {
				return err
			}

			return printParameters(cmd.OutOrStdout(), params)
		},
	}
}

func printParameters(w io.Writer, params masking.Parameters) (err error) {

	q := params.Q()

	_, err = fmt.Fprintf(w, `q                   %d
N                   %d
order               %d
shares              %d
refresh randomness  %d residues per coefficient
rejection bound     %d
rejection rate      %.10f
expected draws      %.10f words per pair
tail draws          %d words (2^-%d)
`,
		q, params.N(), params.Order(), params.Shares(), params.RefreshRandomness(),
		params.RejectionBound(), leakage.RejectionRate(q), leakage.ExpectedDraws(q),
		leakage.TailDraws(q, leakage.DefaultSecurityBits), leakage.DefaultSecurityBits)

	return
}
