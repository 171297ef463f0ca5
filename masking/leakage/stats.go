package leakage

import (
	"fmt"
	"math"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/distuv"
)

// Binning maps residues of [0, q-1] to bins of (nearly) equal width:
// x falls in bin floor(x * bins / q).
type Binning struct {
	q    uint64
	bins int
}

// NewBinning returns a Binning of [0, q-1] with min(bins, q) bins.
func NewBinning(q uint64, bins int) Binning {
	if uint64(bins) > q {
		bins = int(q)
	}
	return Binning{q: q, bins: bins}
}

// Bins returns the number of bins.
func (b Binning) Bins() int {
	return b.bins
}

// Bin returns the bin of x.
func (b Binning) Bin(x uint64) int {
	return int(x * uint64(b.bins) / b.q)
}

// Lower returns the smallest residue falling in bin k.
func (b Binning) Lower(k int) uint64 {
	return (uint64(k)*b.q + uint64(b.bins) - 1) / uint64(b.bins)
}

// Probabilities returns, for each bin, the probability that a uniform
// residue of [0, q-1] falls in it.
func (b Binning) Probabilities() (probs []float64) {
	probs = make([]float64, b.bins)
	for k := range probs {
		probs[k] = float64(b.Lower(k+1)-b.Lower(k)) / float64(b.q)
	}
	return
}

// Histogram returns the binned counts of values.
func (b Binning) Histogram(values []uint64) (counts []uint64) {
	counts = make([]uint64, b.bins)
	for _, x := range values {
		counts[b.Bin(x)]++
	}
	return
}

// ChiSquare is Pearson's goodness-of-fit test of the observed counts
// against the given cell probabilities. It returns the statistic, its
// degrees of freedom and the p-value.
func ChiSquare(observed []uint64, probs []float64) (stat, dof, pValue float64, err error) {

	if len(observed) != len(probs) {
		return 0, 0, 0, fmt.Errorf("leakage: %d observed cells but %d probabilities", len(observed), len(probs))
	}

	var n float64
	for _, o := range observed {
		n += float64(o)
	}

	if n == 0 || len(observed) < 2 {
		return 0, 0, 1, nil
	}

	for k, o := range observed {
		e := n * probs[k]
		if e == 0 {
			if o != 0 {
				return math.Inf(1), float64(len(observed) - 1), 0, nil
			}
			continue
		}
		d := float64(o) - e
		stat += d * d / e
	}

	dof = float64(len(observed) - 1)

	return stat, dof, distuv.ChiSquared{K: dof}.Survival(stat), nil
}

// ChiSquareHomogeneity tests whether two histograms over the same cells
// are samples of the same distribution.
func ChiSquareHomogeneity(a, b []uint64) (stat, dof, pValue float64, err error) {

	if len(a) != len(b) {
		return 0, 0, 0, fmt.Errorf("leakage: histograms of %d and %d cells", len(a), len(b))
	}

	var na, nb float64
	for k := range a {
		na += float64(a[k])
		nb += float64(b[k])
	}

	if na == 0 || nb == 0 {
		return 0, 0, 1, nil
	}

	ka, kb := math.Sqrt(nb/na), math.Sqrt(na/nb)

	var cells int
	for k := range a {
		if a[k]+b[k] == 0 {
			continue
		}
		d := float64(a[k])*ka - float64(b[k])*kb
		stat += d * d / float64(a[k]+b[k])
		cells++
	}

	if cells < 2 {
		return 0, 0, 1, nil
	}

	dof = float64(cells - 1)

	return stat, dof, distuv.ChiSquared{K: dof}.Survival(stat), nil
}

// WelchT is Welch's two-sample t-test, the statistic of the TVLA
// fixed-vs-fixed methodology. It returns the t statistic, the
// Welch-Satterthwaite degrees of freedom and the two-sided p-value.
func WelchT(a, b []float64) (t, dof, pValue float64, err error) {

	if len(a) < 2 || len(b) < 2 {
		return 0, 0, 0, fmt.Errorf("leakage: Welch's t-test requires at least two samples per population")
	}

	var ma, mb, va, vb float64

	if ma, err = stats.Mean(a); err != nil {
		return
	}
	if mb, err = stats.Mean(b); err != nil {
		return
	}
	if va, err = stats.SampleVariance(a); err != nil {
		return
	}
	if vb, err = stats.SampleVariance(b); err != nil {
		return
	}

	na, nb := float64(len(a)), float64(len(b))
	sa, sb := va/na, vb/nb
	se := math.Sqrt(sa + sb)

	if se == 0 {
		if ma == mb {
			return 0, na + nb - 2, 1, nil
		}
		return math.Copysign(math.Inf(1), ma-mb), na + nb - 2, 0, nil
	}

	t = (ma - mb) / se
	dof = (sa + sb) * (sa + sb) / (sa*sa/(na-1) + sb*sb/(nb-1))
	pValue = 2 * distuv.StudentsT{Mu: 0, Sigma: 1, Nu: dof}.Survival(math.Abs(t))

	return
}

// BinomialZ tests whether k successes out of n trials are consistent
// with a success probability p, using the normal approximation.
// It returns the z-score and the two-sided p-value.
func BinomialZ(k, n uint64, p float64) (z, pValue float64) {

	mean := float64(n) * p
	sd := math.Sqrt(float64(n) * p * (1 - p))

	if sd == 0 {
		if float64(k) == mean {
			return 0, 1
		}
		return math.Inf(1), 0
	}

	z = (float64(k) - mean) / sd

	return z, 2 * distuv.UnitNormal.Survival(math.Abs(z))
}

// Summary returns the mean and the standard deviation of values.
func Summary(values []uint64) (mean, stdDev float64) {

	if len(values) == 0 {
		return
	}

	data := make(stats.Float64Data, len(values))
	for i, v := range values {
		data[i] = float64(v)
	}

	mean, _ = data.Mean()
	stdDev, _ = data.StandardDeviation()

	return
}
