package ring

import (
	"math/bits"
)

// All reductions below are branch-free: their running time and memory
// accesses do not depend on the value of their operands, so they can be
// applied to shares and to the randomness that generates them.

//==========================
//=== BARRETT REDUCTION  ===
//==========================

// BRedParams computes the constant floor(2^64 / q) required for the
// Barrett reduction with a radix of 2^64. Requires q > 1.
func BRedParams(q uint64) (u uint64) {
	u, _ = bits.Div64(1, 0, q)
	return
}

// BRedDivMod returns (x / q, x mod q) for any 64 bit integer x,
// where u = BRedParams(q).
func BRedDivMod(x, q, u uint64) (quo, rem uint64) {
	quo, _ = bits.Mul64(x, u)
	rem = x - quo*q
	// rem is in [0, 2q-1], fix quo and rem without branching.
	mask := CMask(rem, q)
	quo += 1 &^ mask
	rem -= q &^ mask
	return
}

// BRed returns x mod q for any 64 bit integer x, where u = BRedParams(q).
func BRed(x, q, u uint64) (r uint64) {
	_, r = BRedDivMod(x, q, u)
	return
}

// BRedMul returns x*y mod q, where u = BRedParams(q).
// Assumes x*y < 2^64.
func BRedMul(x, y, q, u uint64) uint64 {
	return BRed(x*y, q, u)
}

//===============================
//=== CONDITIONAL REDUCTION  ===
//===============================

// CMask returns 0xFFFFFFFFFFFFFFFF if a < q and 0 otherwise.
// Assumes a, q < 2^63.
func CMask(a, q uint64) uint64 {
	return -((a - q) >> 63)
}

// CRed reduce returns a mod q where a is between 0 and 2*q-1.
func CRed(a, q uint64) uint64 {
	return a - (q &^ CMask(a, q))
}

// ModAdd returns a+b mod q, for a, b in [0, q-1].
func ModAdd(a, b, q uint64) uint64 {
	return CRed(a+b, q)
}

// ModSub returns a-b mod q, for a, b in [0, q-1].
func ModSub(a, b, q uint64) uint64 {
	return CRed(a+q-b, q)
}

// ModNeg returns -a mod q, for a in [0, q-1].
func ModNeg(a, q uint64) uint64 {
	return CRed(q-a, q)
}
