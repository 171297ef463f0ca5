package leakage

import (
	"encoding/json"
	"io"
	"math"

	"github.com/tuneinsight/lattigo-masking/masking"
)

// Result is the outcome of a single statistical test.
type Result struct {
	Name      string
	Statistic float64
	DoF       float64 `json:",omitempty"`
	PValue    float64
	Pass      bool
}

// Histogram is a binned distribution of residues.
type Histogram struct {
	Name   string
	Lower  []uint64 // smallest residue of each bin
	Counts []uint64
	Mean   float64
	StdDev float64
}

// SamplerSummary gathers the constants and counters of the residue sampler.
type SamplerSummary struct {
	Bound                 uint64
	Draws                 uint64
	Rejections            uint64
	RejectionRate         float64
	ObservedRejectionRate float64
	ExpectedDraws         float64
	TailDraws             int
}

// Report is the outcome of an assessment.
type Report struct {
	Parameters masking.ParametersLiteral
	Settings   Settings
	Results    []Result
	Sampler    SamplerSummary
	Histograms []Histogram
}

func (r *Report) add(name string, stat, dof, pValue float64) {

	// Infinite statistics have no JSON representation.
	if math.IsInf(stat, 0) {
		stat = math.Copysign(math.MaxFloat64, stat)
	}

	r.Results = append(r.Results, Result{
		Name:      name,
		Statistic: stat,
		DoF:       dof,
		PValue:    pValue,
		Pass:      pValue >= r.Settings.Alpha,
	})
}

func (r *Report) addHistogram(name string, b Binning, values []uint64) {

	lower := make([]uint64, b.Bins())
	for k := range lower {
		lower[k] = b.Lower(k)
	}

	mean, stdDev := Summary(values)

	r.Histograms = append(r.Histograms, Histogram{
		Name:   name,
		Lower:  lower,
		Counts: b.Histogram(values),
		Mean:   mean,
		StdDev: stdDev,
	})
}

// Pass returns true if every test passed.
func (r *Report) Pass() bool {
	return len(r.Failed()) == 0
}

// Failed returns the tests that did not pass.
func (r *Report) Failed() (failed []Result) {
	for _, res := range r.Results {
		if !res.Pass {
			failed = append(failed, res)
		}
	}
	return
}

// Result returns the result of the test of the given name.
func (r *Report) Result(name string) (res Result, ok bool) {
	for _, res = range r.Results {
		if res.Name == name {
			return res, true
		}
	}
	return Result{}, false
}

// WriteJSON writes an indented JSON representation of the report on w.
func (r *Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
