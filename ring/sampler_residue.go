package ring

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/tuneinsight/lattigo-masking/utils/sampling"
)

// ResidueSampler wraps a sampling.PRNG and samples exactly uniform residues
// in [0, q-1], two at a time, by rejection sampling on 32 bit words.
//
// A word r is accepted only if r < M, where M = floor(2^32/q^2) * q^2 is the
// largest multiple of q^2 not exceeding 2^32. The accepted domain being an exact
// multiple of q^2, the two residues (r mod q^2) mod q and (r mod q^2) / q
// are uniform and independent, without modulo bias. There is no cap on the
// number of rejections: the loop ends with probability 1.
//
// A ResidueSampler is not safe for concurrent use.
type ResidueSampler struct {
	prng sampling.PRNG

	q, u   uint64 // q, floor(2^64/q)
	qq, uq uint64 // q^2, floor(2^64/q^2)
	bound  uint64 // M

	word [4]byte

	draws      uint64
	rejections uint64
}

// NewResidueSampler creates a new ResidueSampler from a PRNG and ring definition.
func NewResidueSampler(prng sampling.PRNG, baseRing *Ring) (s *ResidueSampler) {
	q := baseRing.Modulus
	qq := q * q
	return &ResidueSampler{
		prng:  prng,
		q:     q,
		u:     baseRing.BRedConstant,
		qq:    qq,
		uq:    BRedParams(qq),
		bound: RejectionBound(q),
	}
}

// RejectionBound returns M = floor(2^32/q^2) * q^2, the exclusive upper bound
// of the 32 bit words accepted by the ResidueSampler.
func RejectionBound(q uint64) uint64 {
	qq := q * q
	return ((1 << 32) / qq) * qq
}

// WithPRNG returns a new ResidueSampler for the same ring reading from prng.
// The returned sampler can be used concurrently to the receiver.
func (s *ResidueSampler) WithPRNG(prng sampling.PRNG) *ResidueSampler {
	return &ResidueSampler{
		prng:  prng,
		q:     s.q,
		u:     s.u,
		qq:    s.qq,
		uq:    s.uq,
		bound: s.bound,
	}
}

// Bound returns the rejection bound M.
func (s *ResidueSampler) Bound() uint64 {
	return s.bound
}

// Draws returns the number of raw words drawn since the creation of the
// sampler or the last call to ResetCounters.
func (s *ResidueSampler) Draws() uint64 {
	return s.draws
}

// Rejections returns the number of raw words rejected since the creation of
// the sampler or the last call to ResetCounters.
func (s *ResidueSampler) Rejections() uint64 {
	return s.rejections
}

// ResetCounters sets the draw and rejection counters to zero.
func (s *ResidueSampler) ResetCounters() {
	s.draws, s.rejections = 0, 0
}

// DrawRawWord reads exactly 4 bytes from the PRNG and assembles them
// little-endian into a 32 bit word. It blocks until the PRNG delivers.
// Any failure of the PRNG is reported as sampling.ErrEntropyUnavailable.
func (s *ResidueSampler) DrawRawWord() (w uint32, err error) {

	s.draws++

	if _, err = io.ReadFull(s.prng, s.word[:]); err != nil {
		s.word = [4]byte{}
		if errors.Is(err, sampling.ErrEntropyUnavailable) {
			return 0, fmt.Errorf("ring: draw raw word: %w", err)
		}
		return 0, fmt.Errorf("ring: draw raw word: %w: %w", sampling.ErrEntropyUnavailable, err)
	}

	w = binary.LittleEndian.Uint32(s.word[:])
	s.word = [4]byte{}

	return
}

// SamplePair returns two independent residues uniform in [0, q-1].
func (s *ResidueSampler) SamplePair() (a, b uint64, err error) {

	var w uint32

	for {

		if w, err = s.DrawRawWord(); err != nil {
			return 0, 0, err
		}

		// Rejected words are discarded and carry no information on the output.
		if uint64(w) < s.bound {
			break
		}

		s.rejections++
	}

	r := BRed(uint64(w), s.qq, s.uq)
	b, a = BRedDivMod(r, s.q, s.u)

	return
}

// Read fills dst with independent residues uniform in [0, q-1].
// It performs ceil(len(dst)/2) calls to SamplePair, the second output
// of the last call being discarded when len(dst) is odd.
// The number of calls only depends on len(dst).
func (s *ResidueSampler) Read(dst []uint64) (err error) {

	n := len(dst)

	var a, b uint64
	for i := 0; i+1 < n; i += 2 {
		if a, b, err = s.SamplePair(); err != nil {
			return
		}
		dst[i], dst[i+1] = a, b
	}

	if n&1 == 1 {
		if a, _, err = s.SamplePair(); err != nil {
			return
		}
		dst[n-1] = a
	}

	return
}

// ReadPoly fills pol with uniform coefficients in [0, q-1].
func (s *ResidueSampler) ReadPoly(pol Poly) error {
	return s.Read(pol.Coeffs)
}

// ReadNew generates a new polynomial with uniform coefficients in [0, q-1].
func (s *ResidueSampler) ReadNew(N int) (pol Poly, err error) {
	pol = NewPoly(N)
	err = s.ReadPoly(pol)
	return
}
