// Package config provides the maskassess configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/tuneinsight/lattigo-masking/log"
	"github.com/tuneinsight/lattigo-masking/masking"
	"github.com/tuneinsight/lattigo-masking/masking/leakage"
)

const (
	defaultLogLevel  = "NOTICE"
	defaultReportDir = "maskassess-report"
)

var presets = map[string]masking.ParametersLiteral{
	"KYBERORDER1": masking.KyberOrder1,
	"KYBERORDER2": masking.KyberOrder2,
	"KYBERORDER3": masking.KyberOrder3,
}

// Parameters is the masking parameters configuration.
type Parameters struct {
	// Preset selects a predefined parameter set (KyberOrder1, KyberOrder2,
	// KyberOrder3). It is mutually exclusive with Q, N and Order.
	Preset string

	// Q is the coefficient modulus.
	Q uint64

	// N is the number of coefficients per polynomial.
	N int

	// Order is the masking order.
	Order int
}

// Literal returns the ParametersLiteral selected by the configuration.
func (p *Parameters) Literal() masking.ParametersLiteral {
	if pl, ok := presets[strings.ToUpper(p.Preset)]; ok {
		return pl
	}
	return masking.ParametersLiteral{Q: p.Q, N: p.N, Order: p.Order}
}

func (p *Parameters) validate() error {
	if p.Preset != "" {
		if _, ok := presets[strings.ToUpper(p.Preset)]; !ok {
			return fmt.Errorf("config: Parameters: unknown Preset '%v'", p.Preset)
		}
		if p.Q != 0 || p.N != 0 || p.Order != 0 {
			return errors.New("config: Parameters: Preset and explicit Q, N, Order are mutually exclusive")
		}
	}
	if _, err := masking.NewParametersFromLiteral(p.Literal()); err != nil {
		return fmt.Errorf("config: Parameters: %w", err)
	}
	return nil
}

// Assessment is the leakage assessment configuration. Zero values select
// the defaults of the leakage package.
type Assessment struct {
	// Trials is the number of masked coefficients per population.
	Trials int

	// Alpha is the significance level of every test.
	Alpha float64

	// Bins is the number of histogram bins.
	Bins int

	// MaxSubset is the largest size of the jointly tested share subsets.
	MaxSubset int

	// Refreshes is the number of refreshes of the refreshed population.
	Refreshes int

	// FixedA and FixedB are the two secrets of the fixed-vs-fixed tests.
	FixedA uint64
	FixedB uint64

	// Seed makes the assessment reproducible by drawing all randomness from
	// a keyed PRNG derived from it. It is rejected by hardened builds.
	Seed string

	// ReportDir is the directory the report and the histograms are written to.
	ReportDir string
}

// Settings returns the leakage.Settings of the assessment.
func (a *Assessment) Settings() leakage.Settings {
	return leakage.Settings{
		Trials:    a.Trials,
		Alpha:     a.Alpha,
		Bins:      a.Bins,
		MaxSubset: a.MaxSubset,
		Refreshes: a.Refreshes,
		FixedA:    a.FixedA,
		FixedB:    a.FixedB,
	}
}

func (a *Assessment) applyDefaults() {
	if a.ReportDir == "" {
		a.ReportDir = defaultReportDir
	}
}

// Logging is the logging configuration.
type Logging struct {
	// Disable disables logging entirely.
	Disable bool

	// File specifies the log file, if omitted stdout will be used.
	File string

	// Level specifies the log level.
	Level string
}

func (lCfg *Logging) validate() error {
	if _, err := log.LevelFromString(lCfg.Level); err != nil {
		return fmt.Errorf("config: Logging: Level '%v' is invalid", lCfg.Level)
	}
	return nil
}

func (lCfg *Logging) applyDefaults() {
	if lCfg.Level == "" {
		lCfg.Level = defaultLogLevel
	}
}

// Config is the top level maskassess configuration.
type Config struct {
	Parameters *Parameters
	Assessment *Assessment
	Logging    *Logging
}

// FixupAndValidate applies defaults to config entries and validates the
// supplied configuration.
func (c *Config) FixupAndValidate() error {

	if c.Parameters == nil {
		c.Parameters = &Parameters{Preset: "KyberOrder1"}
	}
	if err := c.Parameters.validate(); err != nil {
		return err
	}

	if c.Assessment == nil {
		c.Assessment = &Assessment{}
	}
	c.Assessment.applyDefaults()

	if c.Logging == nil {
		c.Logging = &Logging{}
	}
	c.Logging.applyDefaults()

	return c.Logging.validate()
}

// Load parses and validates the provided buffer b as a config file body and
// returns the Config.
func Load(b []byte) (*Config, error) {
	cfg := new(Config)
	md, err := toml.Decode(string(b), cfg)
	if err != nil {
		return nil, err
	}
	if undecoded := md.Undecoded(); len(undecoded) != 0 {
		return nil, fmt.Errorf("config: Undecoded keys in config file: %v", undecoded)
	}
	if err := cfg.FixupAndValidate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile loads, parses and validates the provided file and returns the
// Config.
func LoadFile(f string) (*Config, error) {
	b, err := os.ReadFile(f)
	if err != nil {
		return nil, err
	}
	return Load(b)
}
