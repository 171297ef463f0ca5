//go:build !masking_hardened

package masking

import (
	"github.com/tuneinsight/lattigo-masking/ring"
	"github.com/tuneinsight/lattigo-masking/utils"
)

// Recombination defeats the masking when applied to live secrets. It is only
// compiled in builds without the masking_hardened tag, for correctness
// verification and deliberately unprotected debug configurations.

// Value returns the sum of the shares modulo q.
func (s MaskedScalar) Value(params Parameters) uint64 {
	return params.RingQ().Reduce(utils.Sum(s))
}

// UnmaskNew recombines mp into a newly allocated plain polynomial. See Unmask.
func (m *Masker) UnmaskNew(mp *MaskedPoly) (plain ring.Poly) {
	plain = m.params.RingQ().NewPoly()
	m.Unmask(mp, plain)
	return
}

// Unmask writes on plain the sum modulo q of the shares of every coefficient of mp.
func (m *Masker) Unmask(mp *MaskedPoly, plain ring.Poly) {

	m.checkMasked(mp)
	m.checkPlain(plain)

	for i, s := range mp.Coeffs {
		plain.Coeffs[i] = s.Value(m.params)
	}
}
