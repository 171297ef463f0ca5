package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/tuneinsight/lattigo-masking/cmd/maskassess/config"
	"github.com/tuneinsight/lattigo-masking/log"
	"github.com/tuneinsight/lattigo-masking/masking"
	"github.com/tuneinsight/lattigo-masking/masking/leakage"
)

const (
	reportFile     = "report.json"
	histogramsFile = "histograms.html"
)

func newAssessCommand(configFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "assess",
		Short: "Run the statistical assessment of the masking",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {

			cfg, err := loadConfig(*configFile)
			if err != nil {
				return fmt.Errorf("failed to load config file: %w", err)
			}

			report, err := assess(cfg)
			if err != nil {
				return err
			}

			if failed := report.Failed(); len(failed) != 0 {
				return fmt.Errorf("maskassess: %d of %d tests failed", len(failed), len(report.Results))
			}

			return nil
		},
	}
}

func assess(cfg *config.Config) (report *leakage.Report, err error) {

	backend, err := log.New(cfg.Logging.File, cfg.Logging.Level, cfg.Logging.Disable)
	if err != nil {
		return nil, err
	}
	defer backend.Close()

	logger := backend.GetLogger("maskassess")

	params, err := masking.NewParametersFromLiteral(cfg.Parameters.Literal())
	if err != nil {
		return nil, err
	}

	prng, err := newPRNG(cfg.Assessment.Seed)
	if err != nil {
		return nil, err
	}

	a, err := leakage.NewAssessor(params, prng, cfg.Assessment.Settings())
	if err != nil {
		return nil, err
	}

	s := a.Settings()
	logger.Noticef("Assessing q=%d N=%d d=%d: %d trials, alpha=%g, subsets of at most %d shares.",
		params.Q(), params.N(), params.Order(), s.Trials, s.Alpha, s.MaxSubset)

	start := time.Now()
	if report, err = a.Run(); err != nil {
		logger.Errorf("Assessment aborted: %v", err)
		return nil, err
	}
	logger.Noticef("Ran %d tests in %v.", len(report.Results), time.Since(start))

	for _, res := range report.Results {
		if res.Pass {
			logger.Debugf("PASS %s: statistic=%.4f p=%.3g", res.Name, res.Statistic, res.PValue)
		} else {
			logger.Errorf("FAIL %s: statistic=%.4f p=%.3g", res.Name, res.Statistic, res.PValue)
		}
	}

	sum := report.Sampler
	logger.Infof("Sampler: bound=%d draws=%d rejections=%d, rejection rate %.6g (expected %.6g), tail bound %d draws.",
		sum.Bound, sum.Draws, sum.Rejections, sum.ObservedRejectionRate, sum.RejectionRate, sum.TailDraws)

	if err = writeReport(cfg.Assessment.ReportDir, report); err != nil {
		logger.Errorf("Failed to write the report: %v", err)
		return nil, err
	}

	if report.Pass() {
		logger.Noticef("All tests passed, report written to %s.", cfg.Assessment.ReportDir)
	} else {
		logger.Warningf("%d tests failed, report written to %s.", len(report.Failed()), cfg.Assessment.ReportDir)
	}

	return report, nil
}

func writeReport(dir string, report *leakage.Report) (err error) {

	if err = os.MkdirAll(dir, 0o755); err != nil {
		return
	}

	if err = writeFile(filepath.Join(dir, reportFile), report.WriteJSON); err != nil {
		return
	}

	return writeFile(filepath.Join(dir, histogramsFile), func(w io.Writer) error {
		return renderHistograms(report, w)
	})
}

func writeFile(path string, write func(io.Writer) error) (err error) {

	f, err := os.Create(path)
	if err != nil {
		return
	}

	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	return write(f)
}
