package masking

import (
	"fmt"

	"github.com/tuneinsight/lattigo-masking/ring"
	"github.com/tuneinsight/lattigo-masking/utils"
	"github.com/tuneinsight/lattigo-masking/utils/sampling"
)

// Masker is a struct storing the parameters and the residue sampler used to
// mask plain polynomials and to refresh masked polynomials.
//
// All operations run in time independent of the masked values: the number of
// sampler calls and the sequence of arithmetic operations only depend on N and d.
// A Masker is not safe for concurrent use, since its operations consume the
// entropy source sequentially; use WithPRNG to obtain independent instances.
type Masker struct {
	params  Parameters
	sampler *ring.ResidueSampler

	// rnd is the scratch buffer receiving the fresh residues of one
	// coefficient. It is erased at the end of every operation.
	rnd []uint64
}

// NewMasker creates a new Masker drawing its randomness from prng.
// In builds carrying the side-channel security claim, prng must be a
// cryptographically secure source.
func NewMasker(params Parameters, prng sampling.PRNG) *Masker {
	return &Masker{
		params:  params,
		sampler: ring.NewResidueSampler(prng, params.RingQ()),
		rnd:     make([]uint64, params.RefreshRandomness()),
	}
}

// WithPRNG returns a new Masker with the same parameters reading from prng.
// The returned Masker can be used concurrently to the receiver.
func (m *Masker) WithPRNG(prng sampling.PRNG) *Masker {
	return &Masker{
		params:  m.params,
		sampler: m.sampler.WithPRNG(prng),
		rnd:     make([]uint64, len(m.rnd)),
	}
}

// Parameters returns the parameters of the Masker.
func (m *Masker) Parameters() Parameters {
	return m.params
}

// Sampler returns the residue sampler of the Masker.
func (m *Masker) Sampler() *ring.ResidueSampler {
	return m.sampler
}

// AllocateMasked allocates a new MaskedPoly of the Masker's dimension and order.
// All its shares are zero, which is a valid masking of the zero polynomial.
func (m *Masker) AllocateMasked() *MaskedPoly {
	return newMaskedPoly(m.params.N(), m.params.order)
}

// MaskNew splits plain into a newly allocated MaskedPoly. See Mask.
func (m *Masker) MaskNew(plain ring.Poly) (out *MaskedPoly, err error) {
	out = m.AllocateMasked()
	if err = m.Mask(plain, out); err != nil {
		return nil, err
	}
	return
}

// Mask splits plain into out. For every coefficient, d fresh uniform residues
// are drawn and assigned to the shares 1..d, and share 0 is set to
// plain[i] - (share 1 + ... + share d) mod q.
//
// If the entropy source fails, out is wiped and the returned error wraps
// sampling.ErrEntropyUnavailable; the calling operation must then abort.
func (m *Masker) Mask(plain ring.Poly, out *MaskedPoly) (err error) {

	m.checkPlain(plain)
	m.checkMasked(out)

	defer utils.Zero(m.rnd)

	d := m.params.order
	q := m.params.Q()
	u := m.params.RingQ().BRedConstant

	rnd := m.rnd[:d]

	for i, s := range out.Coeffs {

		if err = m.sampler.Read(rnd); err != nil {
			out.Wipe()
			return fmt.Errorf("masking: mask: %w", err)
		}

		acc := ring.BRed(plain.Coeffs[i], q, u)

		for j := 1; j <= d; j++ {
			s[j] = rnd[j-1]
			acc = ring.ModSub(acc, rnd[j-1], q)
		}

		s[0] = acc
	}

	return
}

// RefreshNew returns a refreshed copy of in. See Refresh.
func (m *Masker) RefreshNew(in *MaskedPoly) (out *MaskedPoly, err error) {
	out = in.CopyNew()
	if err = m.Refresh(out); err != nil {
		return nil, err
	}
	return
}

// Refresh re-randomizes the shares of mp in place without changing the masked
// value. It implements the ISW-based refresh of Barthe et al. ("Strong
// Non-Interference and Type-Directed Higher-Order Masking", CCS 2016): for each
// coefficient and each pair of shares i < j, a fresh residue r is added to
// share i and subtracted from share j. This uses d(d+1)/2 residues per
// coefficient and is strongly non-interfering, so that the old and the new
// shares cannot be combined to lower the effective masking order.
// Order 0 is a no-op.
//
// If the entropy source fails, mp is wiped, since it may have been partially
// refreshed, and the returned error wraps sampling.ErrEntropyUnavailable.
func (m *Masker) Refresh(mp *MaskedPoly) (err error) {

	m.checkMasked(mp)

	defer utils.Zero(m.rnd)

	d := m.params.order
	q := m.params.Q()

	rnd := m.rnd[:m.params.RefreshRandomness()]

	for _, s := range mp.Coeffs {

		if err = m.sampler.Read(rnd); err != nil {
			mp.Wipe()
			return fmt.Errorf("masking: refresh: %w", err)
		}

		var k int
		for i := 0; i < d; i++ {
			for j := i + 1; j <= d; j++ {
				s[i] = ring.ModAdd(s[i], rnd[k], q)
				s[j] = ring.ModSub(s[j], rnd[k], q)
				k++
			}
		}
	}

	return
}

func (m *Masker) checkPlain(plain ring.Poly) {
	if plain.N() != m.params.N() {
		panic(fmt.Errorf("invalid plain polynomial: N=%d but parameters have N=%d", plain.N(), m.params.N()))
	}
}

func (m *Masker) checkMasked(mp *MaskedPoly) {
	if mp.N() != m.params.N() || mp.order != m.params.order {
		panic(fmt.Errorf("invalid masked polynomial: (N=%d, d=%d) but parameters have (N=%d, d=%d)", mp.N(), mp.order, m.params.N(), m.params.order))
	}
}
