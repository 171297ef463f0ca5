//go:build !masking_hardened

package ring

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tuneinsight/lattigo-masking/utils/sampling"
)

func testString(opname string, r *Ring) string {
	return fmt.Sprintf("%s/N=%d/q=%d", opname, r.N(), r.Modulus)
}

type testParams struct {
	ringQ   *Ring
	prng    sampling.PRNG
	sampler *ResidueSampler
}

func genTestParams(defaultParams ringParameters) (tc *testParams, err error) {

	tc = new(testParams)

	if tc.ringQ, err = NewRing(defaultParams.n, defaultParams.q); err != nil {
		return nil, err
	}
	if tc.prng, err = sampling.NewKeyedPRNG([]byte{'r', 'i', 'n', 'g'}); err != nil {
		return nil, err
	}
	tc.sampler = NewResidueSampler(tc.prng, tc.ringQ)
	return
}

// wordsReader serves the given 32 bit words little-endian, then io.EOF.
func wordsReader(words ...uint32) *bytes.Reader {
	buf := make([]byte, 4*len(words))
	for i, w := range words {
		binary.LittleEndian.PutUint32(buf[4*i:], w)
	}
	return bytes.NewReader(buf)
}

func TestRing(t *testing.T) {

	var err error

	testNewRing(t)

	for _, defaultParam := range testParameters {

		var tc *testParams
		if tc, err = genTestParams(defaultParam); err != nil {
			t.Fatal(err)
		}

		testModularReduction(tc, t)
		testOperations(tc, t)
		testDrawRawWord(tc, t)
		testSamplePair(tc, t)
		testSamplerRead(tc, t)
		testRejectionRate(tc, t)
	}
}

func testNewRing(t *testing.T) {
	t.Run("NewRing", func(t *testing.T) {
		r, err := NewRing(-1, 3329)
		require.Nil(t, r)
		require.Error(t, err)

		r, err = NewRing(256, 1)
		require.Nil(t, r)
		require.Error(t, err)

		r, err = NewRing(256, 1<<16+1)
		require.Nil(t, r)
		require.Error(t, err)

		r, err = NewRing(0, 3329)
		require.NoError(t, err)
		require.Equal(t, 0, r.N())

		r, err = NewRing(256, 1<<16)
		require.NoError(t, err)
		require.Equal(t, uint64(1<<32), RejectionBound(r.Modulus))
	})
}

func testModularReduction(tc *testParams, t *testing.T) {

	t.Run(testString("ModularReduction/BRedDivMod", tc.ringQ), func(t *testing.T) {

		q, u := tc.ringQ.Modulus, tc.ringQ.BRedConstant

		for x := uint64(0); x < 1<<18; x++ {
			quo, rem := BRedDivMod(x, q, u)
			require.Equal(t, x/q, quo)
			require.Equal(t, x%q, rem)
		}

		for _, x := range []uint64{1<<32 - 1, 1<<63 - 1, 1 << 63, 0xffffffffffffffff} {
			quo, rem := BRedDivMod(x, q, u)
			require.Equal(t, x/q, quo, x)
			require.Equal(t, x%q, rem, x)
		}

		buf := make([]byte, 8)
		for i := 0; i < 1<<14; i++ {
			_, err := tc.prng.Read(buf)
			require.NoError(t, err)
			x := binary.LittleEndian.Uint64(buf)
			require.Equal(t, x%q, BRed(x, q, u), x)
		}
	})

	t.Run(testString("ModularReduction/ModAddSubNeg", tc.ringQ), func(t *testing.T) {

		q := tc.ringQ.Modulus

		for _, a := range []uint64{0, 1, q / 2, q - 2, q - 1} {
			for _, b := range []uint64{0, 1, q / 2, q - 2, q - 1} {
				require.Equal(t, (a+b)%q, ModAdd(a, b, q))
				require.Equal(t, (a+q-b)%q, ModSub(a, b, q))
			}
			require.Equal(t, (q-a)%q, ModNeg(a, q))
			require.Equal(t, a, CRed(a+q, q))
		}
	})
}

func testOperations(tc *testParams, t *testing.T) {

	t.Run(testString("Operations", tc.ringQ), func(t *testing.T) {

		ringQ := tc.ringQ
		N := ringQ.N()
		bigQ := new(big.Int).SetUint64(ringQ.Modulus)

		p1, err := tc.sampler.ReadNew(N)
		require.NoError(t, err)
		p2, err := tc.sampler.ReadNew(N)
		require.NoError(t, err)

		add, sub, neg, mul := ringQ.NewPoly(), ringQ.NewPoly(), ringQ.NewPoly(), ringQ.NewPoly()

		scalar := uint64(0xdeadbeef)

		ringQ.Add(p1, p2, add)
		ringQ.Sub(p1, p2, sub)
		ringQ.Neg(p1, neg)
		ringQ.MulScalar(p1, scalar, mul)

		a, b, want := new(big.Int), new(big.Int), new(big.Int)
		bigScalar := new(big.Int).SetUint64(scalar)

		for i := 0; i < N; i++ {
			a.SetUint64(p1.Coeffs[i])
			b.SetUint64(p2.Coeffs[i])

			require.Equal(t, want.Mod(want.Add(a, b), bigQ).Uint64(), add.Coeffs[i])
			require.Equal(t, want.Mod(want.Sub(a, b), bigQ).Uint64(), sub.Coeffs[i])
			require.Equal(t, want.Mod(want.Neg(a), bigQ).Uint64(), neg.Coeffs[i])
			require.Equal(t, want.Mod(want.Mul(a, bigScalar), bigQ).Uint64(), mul.Coeffs[i])
		}

		ringQ.Add(add, neg, add)
		require.True(t, add.Equal(p2))

		cpy := p1.CopyNew()
		require.True(t, cpy.Equal(p1))
		cpy.Zero()
		require.True(t, cpy.Equal(ringQ.NewPoly()))
	})
}

func testDrawRawWord(tc *testParams, t *testing.T) {

	t.Run(testString("ResidueSampler/DrawRawWord", tc.ringQ), func(t *testing.T) {

		s := NewResidueSampler(bytes.NewReader([]byte{0x01, 0x02, 0x03, 0x04, 0xff}), tc.ringQ)

		w, err := s.DrawRawWord()
		require.NoError(t, err)
		require.Equal(t, uint32(0x04030201), w)

		// Only one byte left: the draw must fail instead of returning a short word.
		_, err = s.DrawRawWord()
		require.True(t, errors.Is(err, sampling.ErrEntropyUnavailable))

		require.Equal(t, uint64(2), s.Draws())
	})

	t.Run(testString("ResidueSampler/EntropyUnavailable", tc.ringQ), func(t *testing.T) {

		s := NewResidueSampler(sampling.NewPollingSource(deadDevice{}, 4), tc.ringQ)

		_, _, err := s.SamplePair()
		require.True(t, errors.Is(err, sampling.ErrEntropyUnavailable))

		require.True(t, errors.Is(s.Read(make([]uint64, 3)), sampling.ErrEntropyUnavailable))
	})
}

type deadDevice struct{}

func (deadDevice) DataReady() bool  { return false }
func (deadDevice) ReadWord() uint32 { return 0 }

func testSamplePair(tc *testParams, t *testing.T) {

	t.Run(testString("ResidueSampler/SamplePair", tc.ringQ), func(t *testing.T) {

		q := tc.ringQ.Modulus
		M := RejectionBound(q)

		require.Zero(t, M%(q*q))
		require.True(t, (1<<32)-M < q*q)

		// The bound itself and the largest 32 bit word are rejected.
		words := []uint32{uint32(M), 0xffffffff, uint32(M - 1), 5, uint32(q*q + 3*q + 7)}

		s := NewResidueSampler(wordsReader(words...), tc.ringQ)
		require.Equal(t, M, s.Bound())

		a, b, err := s.SamplePair()
		require.NoError(t, err)
		require.Equal(t, q-1, a)
		require.Equal(t, q-1, b)
		require.Equal(t, uint64(3), s.Draws())
		require.Equal(t, uint64(2), s.Rejections())

		a, b, err = s.SamplePair()
		require.NoError(t, err)
		require.Equal(t, uint64(5), a)
		require.Equal(t, uint64(0), b)

		a, b, err = s.SamplePair()
		require.NoError(t, err)
		require.Equal(t, uint64(7), a)
		require.Equal(t, uint64(3), b)

		s.ResetCounters()
		require.Zero(t, s.Draws())
		require.Zero(t, s.Rejections())
	})
}

func testSamplerRead(tc *testParams, t *testing.T) {

	t.Run(testString("ResidueSampler/Read", tc.ringQ), func(t *testing.T) {

		q := tc.ringQ.Modulus

		for _, n := range []int{0, 1, 2, 3, 8, 9} {

			s := tc.sampler.WithPRNG(tc.prng)

			dst := make([]uint64, n)
			require.NoError(t, s.Read(dst))

			for _, c := range dst {
				require.Less(t, c, q)
			}

			// ceil(n/2) accepted pairs
			require.Equal(t, uint64((n+1)/2), s.Draws()-s.Rejections())
		}
	})
}

func testRejectionRate(tc *testParams, t *testing.T) {

	t.Run(testString("ResidueSampler/RejectionRate", tc.ringQ), func(t *testing.T) {

		q := tc.ringQ.Modulus
		s := tc.sampler.WithPRNG(tc.prng)

		pairs := 1 << 17

		counts := make([]int, q)

		for i := 0; i < pairs; i++ {
			a, b, err := s.SamplePair()
			require.NoError(t, err)
			require.Less(t, a, q)
			require.Less(t, b, q)
			counts[a]++
			counts[b]++
		}

		// Every residue is hit with overwhelming probability.
		for c := range counts {
			require.NotZero(t, counts[c], c)
		}

		// Observed rejection rate within 6 standard deviations of
		// p = 1 - M/2^32.
		p := 1 - float64(s.Bound())/float64(uint64(1)<<32)
		n := float64(s.Draws())
		obs := float64(s.Rejections())
		sd := 6 * math.Sqrt(n*p*(1-p))
		require.InDelta(t, n*p, obs, sd+1)
	})
}
