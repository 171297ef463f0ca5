// Command maskassess assesses the arithmetic masking of a parameter set:
// it runs the statistical tests of the leakage package and reports on the
// residue sampler.
package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/tuneinsight/lattigo-masking/cmd/maskassess/config"
)

func newRootCommand() *cobra.Command {

	var configFile string

	cmd := &cobra.Command{
		Use:   "maskassess",
		Short: "Arithmetic masking assessment tool",
		Long: `Assesses the arithmetic masking of polynomials modulo q.

The assess subcommand masks fixed secrets and tests that every subset of at
most d shares is uniform and independent of the secret, that the residue
sampler is unbiased and that its rejection rate matches theory.`,
		Example: `  # Assess the default Kyber order 1 masking
  maskassess assess

  # Assess a configured parameter set
  maskassess assess -c maskassess.toml

  # Print the effective parameters and sampler constants
  maskassess params -c maskassess.toml`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "configuration file")

	cmd.AddCommand(newAssessCommand(&configFile), newParamsCommand(&configFile))
	cmd.AddCommand(debugCommands(&configFile)...)

	return cmd
}

// loadConfig loads the configuration file f, or the default configuration
// if f is empty.
func loadConfig(f string) (*config.Config, error) {
	if f == "" {
		cfg := new(config.Config)
		return cfg, cfg.FixupAndValidate()
	}
	return config.LoadFile(f)
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
