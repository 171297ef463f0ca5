// Package ring implements constant-time arithmetic modulo a small prime q,
// plain polynomials over Z_q and the bias-free sampling of residues.
package ring

import (
	"fmt"
	"math"
)

// Ring is a structure that keeps all the variables required to operate on
// plain polynomials of N coefficients modulo Modulus.
type Ring struct {
	n int

	// Modulus is the prime-like modulus q.
	Modulus uint64

	// BRedConstant is floor(2^64 / Modulus).
	BRedConstant uint64
}

// NewRing creates a new Ring with N coefficients modulo q.
// Since two residues are extracted from a single 32 bit word by the
// residue sampler, q^2 must not exceed 2^32.
func NewRing(N int, q uint64) (r *Ring, err error) {

	if N < 0 {
		return nil, fmt.Errorf("invalid ring degree: must be non-negative but is %d", N)
	}

	if q < 2 {
		return nil, fmt.Errorf("invalid modulus: must be at least 2 but is %d", q)
	}

	if q > math.MaxUint16+1 {
		return nil, fmt.Errorf("invalid modulus: q^2 must be at most 2^32 but q=%d", q)
	}

	return &Ring{
		n:            N,
		Modulus:      q,
		BRedConstant: BRedParams(q),
	}, nil
}

// N returns the number of coefficients of the polynomials of the ring.
func (r *Ring) N() int {
	return r.n
}

// NewPoly creates a new polynomial with all coefficients set to 0.
func (r *Ring) NewPoly() Poly {
	return NewPoly(r.n)
}

// Reduce returns x mod q.
func (r *Ring) Reduce(x uint64) uint64 {
	return BRed(x, r.Modulus, r.BRedConstant)
}

// Add evaluates p3 = p1 + p2 coefficient-wise modulo q.
func (r *Ring) Add(p1, p2, p3 Poly) {
	q := r.Modulus
	for i := 0; i < r.n; i++ {
		p3.Coeffs[i] = ModAdd(p1.Coeffs[i], p2.Coeffs[i], q)
	}
}

// Sub evaluates p3 = p1 - p2 coefficient-wise modulo q.
func (r *Ring) Sub(p1, p2, p3 Poly) {
	q := r.Modulus
	for i := 0; i < r.n; i++ {
		p3.Coeffs[i] = ModSub(p1.Coeffs[i], p2.Coeffs[i], q)
	}
}

// Neg evaluates p2 = -p1 coefficient-wise modulo q.
func (r *Ring) Neg(p1, p2 Poly) {
	q := r.Modulus
	for i := 0; i < r.n; i++ {
		p2.Coeffs[i] = ModNeg(p1.Coeffs[i], q)
	}
}

// MulScalar evaluates p2 = p1 * scalar coefficient-wise modulo q.
func (r *Ring) MulScalar(p1 Poly, scalar uint64, p2 Poly) {
	q, u := r.Modulus, r.BRedConstant
	scalar = BRed(scalar, q, u)
	for i := 0; i < r.n; i++ {
		p2.Coeffs[i] = BRedMul(p1.Coeffs[i], scalar, q, u)
	}
}
