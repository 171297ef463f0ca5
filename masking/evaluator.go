package masking

import (
	"fmt"

	"github.com/tuneinsight/lattigo-masking/ring"
)

// Evaluator implements the linear operations on masked polynomials.
// Linear operations act share-wise and preserve the sharing invariant
// without fresh randomness. Operands may alias the output.
//
// Non-linear operations (products of two masked values, compression) need
// dedicated gadgets with fresh randomness and are not provided here.
type Evaluator struct {
	params Parameters
}

// NewEvaluator creates a new Evaluator.
func NewEvaluator(params Parameters) *Evaluator {
	return &Evaluator{params: params}
}

// Add evaluates out = a + b.
func (eval *Evaluator) Add(a, b, out *MaskedPoly) {
	checkShape(a, b, out)
	q := eval.params.Q()
	for i := range out.Buff {
		out.Buff[i] = ring.ModAdd(a.Buff[i], b.Buff[i], q)
	}
}

// Sub evaluates out = a - b.
func (eval *Evaluator) Sub(a, b, out *MaskedPoly) {
	checkShape(a, b, out)
	q := eval.params.Q()
	for i := range out.Buff {
		out.Buff[i] = ring.ModSub(a.Buff[i], b.Buff[i], q)
	}
}

// Neg evaluates out = -a.
func (eval *Evaluator) Neg(a, out *MaskedPoly) {
	checkShape(a, out)
	q := eval.params.Q()
	for i := range out.Buff {
		out.Buff[i] = ring.ModNeg(a.Buff[i], q)
	}
}

// AddPlain evaluates out = a + p, where p is a public plain polynomial.
// p is added to share 0 only.
func (eval *Evaluator) AddPlain(a *MaskedPoly, p ring.Poly, out *MaskedPoly) {
	checkShape(a, out)

	if p.N() != a.N() {
		panic(fmt.Errorf("invalid plain polynomial: N=%d but masked polynomial has N=%d", p.N(), a.N()))
	}

	q := eval.params.Q()

	if a != out {
		copy(out.Buff, a.Buff)
	}

	for i, s := range out.Coeffs {
		s[0] = ring.ModAdd(s[0], p.Coeffs[i], q)
	}
}

// MulScalar evaluates out = c * a, where c is a public constant.
func (eval *Evaluator) MulScalar(a *MaskedPoly, c uint64, out *MaskedPoly) {
	checkShape(a, out)
	ringQ := eval.params.RingQ()
	q, u := ringQ.Modulus, ringQ.BRedConstant
	c = ring.BRed(c, q, u)
	for i := range out.Buff {
		out.Buff[i] = ring.BRedMul(a.Buff[i], c, q, u)
	}
}
