package leakage

import (
	"math"
	"math/big"

	"github.com/ALTree/bigfloat"

	"github.com/tuneinsight/lattigo-masking/ring"
)

// precision of the tail bound computations.
const precision = 256

// RejectionRate returns the probability 1 - floor(2^32/q^2)*q^2/2^32 that
// a raw word is rejected by the residue sampler.
func RejectionRate(q uint64) float64 {
	r, _ := rejectionRate(q).Float64()
	return r
}

func rejectionRate(q uint64) *big.Float {
	num := new(big.Float).SetPrec(precision).SetUint64(1<<32 - ring.RejectionBound(q))
	return num.Quo(num, new(big.Float).SetPrec(precision).SetUint64(1<<32))
}

// TailDraws returns the smallest number of raw words k such that the
// probability that SamplePair still loops after k draws, p^k where p is
// the rejection rate, is at most 2^-secBits.
func TailDraws(q uint64, secBits int) int {

	p := rejectionRate(q)

	if p.Sign() == 0 || secBits <= 0 {
		return 1
	}

	// k >= secBits / -log2(p)
	log2 := bigfloat.Log(new(big.Float).SetPrec(precision).SetInt64(2))
	log2p := bigfloat.Log(p)
	log2p.Quo(log2p, log2)
	log2p.Neg(log2p)

	k := new(big.Float).SetPrec(precision).SetInt64(int64(secBits))
	k.Quo(k, log2p)

	f, _ := k.Float64()

	return int(math.Ceil(f))
}

// ExpectedDraws returns the expected number of raw words consumed by one
// call to SamplePair, 2^32/M.
func ExpectedDraws(q uint64) float64 {
	return float64(uint64(1)<<32) / float64(ring.RejectionBound(q))
}
