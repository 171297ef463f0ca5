// Package leakage implements the statistical assessment of the masking:
// uniformity of the shares, absence of first and second order difference
// between the shares of two fixed secrets (fixed-vs-fixed TVLA), and
// bias-freedom of the residue sampler.
//
// The tests operate on the shares themselves, i.e. on a perfect leakage
// model where the adversary observes the exact values of up to d shares.
package leakage

import (
	"fmt"
	"math/bits"

	"github.com/tuneinsight/lattigo-masking/masking"
	"github.com/tuneinsight/lattigo-masking/ring"
	"github.com/tuneinsight/lattigo-masking/utils/sampling"
)

const (
	// DefaultTrials is the default number of masked coefficients per population.
	DefaultTrials = 1 << 16
	// DefaultAlpha is the default significance level of every test.
	DefaultAlpha = 1e-5
	// DefaultBins is the default number of histogram bins.
	DefaultBins = 32
	// DefaultMaxSubset is the default largest size of the tested share subsets.
	DefaultMaxSubset = 3
	// DefaultRefreshes is the default number of refreshes applied to the
	// refreshed population.
	DefaultRefreshes = 4
	// DefaultSecurityBits is the default security level of the sampler tail bound.
	DefaultSecurityBits = 128

	minTrials = 1024
	jointBins = 8
)

// Settings parameterizes an Assessor. Zero values select the defaults.
type Settings struct {
	// Trials is the number of masked coefficients per population.
	Trials int
	// Alpha is the significance level: a test fails if its p-value is below Alpha.
	Alpha float64
	// Bins is the number of bins of the univariate histograms.
	Bins int
	// MaxSubset is the largest size of the share subsets jointly tested; it is
	// capped at the masking order.
	MaxSubset int
	// Refreshes is the number of refreshes applied to the refreshed population.
	Refreshes int
	// FixedA and FixedB are the two secret values of the fixed-vs-fixed tests.
	FixedA, FixedB uint64
}

func (s *Settings) fixup(q uint64, order int) error {

	if s.Trials == 0 {
		s.Trials = DefaultTrials
	}
	if s.Trials < minTrials {
		return fmt.Errorf("leakage: Trials must be at least %d but is %d", minTrials, s.Trials)
	}

	if s.Alpha == 0 {
		s.Alpha = DefaultAlpha
	}
	if s.Alpha < 0 || s.Alpha >= 1 {
		return fmt.Errorf("leakage: Alpha must be in (0, 1) but is %v", s.Alpha)
	}

	if s.Bins == 0 {
		s.Bins = DefaultBins
	}
	if s.Bins < 2 {
		return fmt.Errorf("leakage: Bins must be at least 2 but is %d", s.Bins)
	}

	if s.MaxSubset == 0 {
		s.MaxSubset = DefaultMaxSubset
	}
	if s.MaxSubset < 0 {
		return fmt.Errorf("leakage: MaxSubset must be non-negative but is %d", s.MaxSubset)
	}
	s.MaxSubset = min(s.MaxSubset, order)

	if s.Refreshes == 0 {
		s.Refreshes = DefaultRefreshes
	}

	if s.FixedA == 0 && s.FixedB == 0 {
		s.FixedB = q / 2
	}
	if s.FixedA >= q || s.FixedB >= q {
		return fmt.Errorf("leakage: fixed values must be smaller than q=%d", q)
	}
	if s.FixedA == s.FixedB {
		return fmt.Errorf("leakage: fixed values must be distinct")
	}

	return nil
}

// Assessor runs the statistical tests of the masking of a parameter set.
// It is not safe for concurrent use.
type Assessor struct {
	params   masking.Parameters
	masker   *masking.Masker
	sampler  *ring.ResidueSampler
	settings Settings
	binning  Binning
}

// NewAssessor creates an Assessor of the masking defined by params, drawing
// its randomness from prng. Masked polynomials of degree zero are assessed
// coefficient by coefficient, since every coefficient is masked independently.
func NewAssessor(params masking.Parameters, prng sampling.PRNG, settings Settings) (a *Assessor, err error) {

	pl := params.ParametersLiteral()

	if pl.N == 0 {
		pl.N = 1
		if params, err = masking.NewParametersFromLiteral(pl); err != nil {
			return nil, err
		}
	}

	if err = settings.fixup(pl.Q, pl.Order); err != nil {
		return nil, err
	}

	return &Assessor{
		params:   params,
		masker:   masking.NewMasker(params, prng),
		sampler:  ring.NewResidueSampler(prng, params.RingQ()),
		settings: settings,
		binning:  NewBinning(pl.Q, settings.Bins),
	}, nil
}

// Settings returns the effective settings of the Assessor.
func (a *Assessor) Settings() Settings {
	return a.settings
}

// Run runs all the tests and returns their report.
func (a *Assessor) Run() (r *Report, err error) {

	s := a.settings

	r = &Report{
		Parameters: a.params.ParametersLiteral(),
		Settings:   s,
	}

	var sharesA, sharesB, sharesR [][]uint64

	if sharesA, err = a.collect(s.FixedA, 0); err != nil {
		return nil, err
	}
	if sharesB, err = a.collect(s.FixedB, 0); err != nil {
		return nil, err
	}
	if sharesR, err = a.collect(s.FixedA, s.Refreshes); err != nil {
		return nil, err
	}

	for _, subset := range a.subsets() {
		if err = a.testSubset(r, subset, sharesA, sharesB, sharesR); err != nil {
			return nil, err
		}
	}

	for j := range sharesA {
		r.addHistogram(fmt.Sprintf("share %d (secret %d)", j, s.FixedA), a.binning, sharesA[j])
	}

	if err = a.testSampler(r); err != nil {
		return nil, err
	}

	return r, nil
}

// collect masks Trials coefficients equal to v and returns their shares,
// indexed by share then by trial. Each masking is refreshed the given number
// of times before its shares are recorded.
func (a *Assessor) collect(v uint64, refreshes int) (shares [][]uint64, err error) {

	trials := a.settings.Trials
	N := a.params.N()

	shares = make([][]uint64, a.params.Shares())
	for j := range shares {
		shares[j] = make([]uint64, 0, trials)
	}

	plain := a.params.RingQ().NewPoly()
	for i := range plain.Coeffs {
		plain.Coeffs[i] = v
	}

	mp := a.masker.AllocateMasked()
	defer mp.Wipe()

	for n := 0; n < trials; {

		if err = a.masker.Mask(plain, mp); err != nil {
			return nil, err
		}

		for k := 0; k < refreshes; k++ {
			if err = a.masker.Refresh(mp); err != nil {
				return nil, err
			}
		}

		for i := 0; i < N && n < trials; i, n = i+1, n+1 {
			for j, c := range mp.Coeffs[i] {
				shares[j] = append(shares[j], c)
			}
		}
	}

	return
}

// subsets returns the bitmasks of the share subsets of size 1 to MaxSubset.
func (a *Assessor) subsets() (masks []uint64) {

	shares := a.params.Shares()

	var choose func(start, k int, mask uint64)
	choose = func(start, k int, mask uint64) {
		if k == 0 {
			masks = append(masks, mask)
			return
		}
		for j := start; j <= shares-k; j++ {
			choose(j+1, k-1, mask|1<<j)
		}
	}

	for k := 1; k <= a.settings.MaxSubset; k++ {
		choose(0, k, 0)
	}

	return
}

func subsetName(mask uint64) string {
	var name []byte
	for j := 0; mask != 0; j, mask = j+1, mask>>1 {
		if mask&1 == 1 {
			if len(name) > 0 {
				name = append(name, ',')
			}
			name = fmt.Appendf(name, "%d", j)
		}
	}
	return "{" + string(name) + "}"
}

// subsetSums returns, for each trial, the sum modulo q of the shares of the subset.
func (a *Assessor) subsetSums(shares [][]uint64, mask uint64) (sums []uint64) {

	ringQ := a.params.RingQ()

	sums = make([]uint64, len(shares[0]))

	for j := range shares {
		if mask>>j&1 == 1 {
			for n, c := range shares[j] {
				sums[n] = ring.ModAdd(sums[n], c, ringQ.Modulus)
			}
		}
	}

	return
}

func (a *Assessor) testSubset(r *Report, mask uint64, sharesA, sharesB, sharesR [][]uint64) (err error) {

	name := subsetName(mask)
	probs := a.binning.Probabilities()

	xa := a.subsetSums(sharesA, mask)
	xb := a.subsetSums(sharesB, mask)
	xr := a.subsetSums(sharesR, mask)

	ha, hb, hr := a.binning.Histogram(xa), a.binning.Histogram(xb), a.binning.Histogram(xr)

	var stat, dof, p float64

	if stat, dof, p, err = ChiSquare(ha, probs); err != nil {
		return
	}
	r.add("uniformity/fresh/"+name, stat, dof, p)

	if stat, dof, p, err = ChiSquare(hr, probs); err != nil {
		return
	}
	r.add("uniformity/refreshed/"+name, stat, dof, p)

	if stat, dof, p, err = ChiSquareHomogeneity(ha, hb); err != nil {
		return
	}
	r.add("fixed-vs-fixed/chi2/"+name, stat, dof, p)

	if stat, dof, p, err = WelchT(toFloat(xa), toFloat(xb)); err != nil {
		return
	}
	r.add("fixed-vs-fixed/t/"+name, stat, dof, p)

	if bits.OnesCount64(mask) != 2 {
		return
	}

	// Pairs of shares: joint distribution and second order moment.
	i := bits.TrailingZeros64(mask)
	j := 63 - bits.LeadingZeros64(mask)

	joint := NewBinning(a.params.Q(), jointBins)

	if stat, dof, p, err = ChiSquare(jointHistogram(joint, sharesA[i], sharesA[j]), jointProbabilities(joint)); err != nil {
		return
	}
	r.add("joint/"+name, stat, dof, p)

	center := float64(a.params.Q()-1) / 2
	if stat, dof, p, err = WelchT(centeredProduct(sharesA[i], sharesA[j], center), centeredProduct(sharesB[i], sharesB[j], center)); err != nil {
		return
	}
	r.add("fixed-vs-fixed/t2/"+name, stat, dof, p)

	return
}

// testSampler tests the outputs of the residue sampler: both residues of a pair
// are uniform and independent, and the rejection rate matches its theoretical value.
func (a *Assessor) testSampler(r *Report) (err error) {

	trials := a.settings.Trials
	q := a.params.Q()

	s := a.sampler
	s.ResetCounters()

	first, second := make([]uint64, trials), make([]uint64, trials)

	for n := range first {
		if first[n], second[n], err = s.SamplePair(); err != nil {
			return
		}
	}

	probs := a.binning.Probabilities()

	var stat, dof, p float64

	if stat, dof, p, err = ChiSquare(a.binning.Histogram(first), probs); err != nil {
		return
	}
	r.add("sampler/uniformity/first", stat, dof, p)

	if stat, dof, p, err = ChiSquare(a.binning.Histogram(second), probs); err != nil {
		return
	}
	r.add("sampler/uniformity/second", stat, dof, p)

	joint := NewBinning(q, jointBins)
	if stat, dof, p, err = ChiSquare(jointHistogram(joint, first, second), jointProbabilities(joint)); err != nil {
		return
	}
	r.add("sampler/independence", stat, dof, p)

	rate := RejectionRate(q)
	z, pz := BinomialZ(s.Rejections(), s.Draws(), rate)
	r.add("sampler/rejection-rate", z, 0, pz)

	r.Sampler = SamplerSummary{
		Bound:                 s.Bound(),
		Draws:                 s.Draws(),
		Rejections:            s.Rejections(),
		RejectionRate:         rate,
		ObservedRejectionRate: float64(s.Rejections()) / float64(s.Draws()),
		ExpectedDraws:         ExpectedDraws(q),
		TailDraws:             TailDraws(q, DefaultSecurityBits),
	}

	r.addHistogram("sampler first output", a.binning, first)
	r.addHistogram("sampler second output", a.binning, second)

	return
}

func jointHistogram(b Binning, x, y []uint64) (counts []uint64) {
	counts = make([]uint64, b.Bins()*b.Bins())
	for n := range x {
		counts[b.Bin(x[n])*b.Bins()+b.Bin(y[n])]++
	}
	return
}

func jointProbabilities(b Binning) (probs []float64) {
	p := b.Probabilities()
	probs = make([]float64, len(p)*len(p))
	for i := range p {
		for j := range p {
			probs[i*len(p)+j] = p[i] * p[j]
		}
	}
	return
}

func centeredProduct(x, y []uint64, center float64) (z []float64) {
	z = make([]float64, len(x))
	for n := range x {
		z[n] = (float64(x[n]) - center) * (float64(y[n]) - center)
	}
	return
}

func toFloat(x []uint64) (y []float64) {
	y = make([]float64, len(x))
	for n := range x {
		y[n] = float64(x[n])
	}
	return
}
