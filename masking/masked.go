package masking

import (
	"fmt"

	"github.com/tuneinsight/lattigo-masking/ring"
	"github.com/tuneinsight/lattigo-masking/utils"
)

// MaskedScalar is an ordered tuple of d+1 shares, each in [0, q-1], whose
// sum modulo q is the masked value. Any d or fewer shares are uniform and
// independent of the masked value.
type MaskedScalar []uint64

// Order returns the masking order d of the scalar.
func (s MaskedScalar) Order() int {
	return len(s) - 1
}

// Wipe overwrites all shares with zero.
func (s MaskedScalar) Wipe() {
	utils.Zero(s)
}

// MaskedPoly is the masked analogue of a ring.Poly: a sequence of N MaskedScalars.
// The N*(d+1) shares are stored coefficient-major in a single buffer, Coeffs[i]
// being a re-slice of Buff holding the shares of the i-th coefficient.
//
// A MaskedPoly is owned by a single operation at a time and must be wiped
// once it is no longer needed.
type MaskedPoly struct {
	Coeffs []MaskedScalar
	Buff   []uint64
	order  int
}

func newMaskedPoly(N, order int) (m *MaskedPoly) {

	shares := order + 1

	m = &MaskedPoly{
		Coeffs: make([]MaskedScalar, N),
		Buff:   make([]uint64, N*shares),
		order:  order,
	}

	for i := range m.Coeffs {
		m.Coeffs[i] = m.Buff[i*shares : (i+1)*shares : (i+1)*shares]
	}

	return
}

// N returns the number of coefficients.
func (m *MaskedPoly) N() int {
	return len(m.Coeffs)
}

// Order returns the masking order d.
func (m *MaskedPoly) Order() int {
	return m.order
}

// Share copies the j-th share of every coefficient on dst.
// A single share is uniform and carries no information on the masked value.
func (m *MaskedPoly) Share(j int, dst ring.Poly) {

	if j < 0 || j > m.order {
		panic(fmt.Errorf("invalid share index: must be in [0, %d] but is %d", m.order, j))
	}

	for i, s := range m.Coeffs {
		dst.Coeffs[i] = s[j]
	}
}

// CopyNew returns a deep copy of the target MaskedPoly.
// The copy shares its randomness with the receiver: refresh one of them
// before both are used in observable computations.
func (m *MaskedPoly) CopyNew() (cpy *MaskedPoly) {
	cpy = newMaskedPoly(m.N(), m.order)
	copy(cpy.Buff, m.Buff)
	return
}

// Copy copies the shares of other on the receiver.
func (m *MaskedPoly) Copy(other *MaskedPoly) {
	checkShape(m, other)
	if m != other {
		copy(m.Buff, other.Buff)
	}
}

// Wipe overwrites all shares with zero. The wiped polynomial is a valid
// masking of the zero polynomial.
func (m *MaskedPoly) Wipe() {
	utils.Zero(m.Buff)
}

// Equal returns true if both polynomials have the same shares.
// This is not a comparison of the masked values and it is not constant time.
func (m *MaskedPoly) Equal(other *MaskedPoly) bool {

	if m == other {
		return true
	}

	if m == nil || other == nil || m.order != other.order || len(m.Buff) != len(other.Buff) {
		return false
	}

	for i := range m.Buff {
		if m.Buff[i] != other.Buff[i] {
			return false
		}
	}

	return true
}

// checkShape panics if the operands do not have the same dimension and
// masking order. A mismatch is a configuration defect.
func checkShape(ops ...*MaskedPoly) {
	for _, op := range ops[1:] {
		if op.N() != ops[0].N() || op.order != ops[0].order {
			panic(fmt.Errorf("masked polynomial shape mismatch: (N=%d, d=%d) != (N=%d, d=%d)", op.N(), op.order, ops[0].N(), ops[0].order))
		}
	}
}
