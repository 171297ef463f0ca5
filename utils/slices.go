package utils

import (
	"golang.org/x/exp/constraints"
)

// Zero overwrites every element of s with zero.
// Used to erase buffers that held shares or randomness before they are released.
func Zero[T constraints.Integer](s []T) {
	for i := range s {
		s[i] = 0
	}
}

// Sum returns the sum of the elements of s, without modular reduction.
func Sum[T constraints.Integer | constraints.Float](s []T) (acc T) {
	for _, v := range s {
		acc += v
	}
	return
}

// Binomial returns n choose k, and 0 if k > n.
func Binomial(n, k int) (r int) {
	if k < 0 || k > n {
		return 0
	}
	r = 1
	for i := 1; i <= k; i++ {
		r = r * (n - k + i) / i
	}
	return
}
