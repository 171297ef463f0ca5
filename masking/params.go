package masking

import (
	"encoding/json"
	"fmt"

	"github.com/google/go-cmp/cmp"

	"github.com/tuneinsight/lattigo-masking/ring"
	"github.com/tuneinsight/lattigo-masking/utils"
)

// MaxOrder is the largest supported masking order.
const MaxOrder = 31

// ParametersLiteral is a literal representation of masking parameters.
// It has public fields and is used to express unchecked user-defined
// parameters literally into Go programs or configuration files.
// The NewParametersFromLiteral function is used to generate the actual
// checked parameters from the literal representation.
//
//   - Q: the modulus of the coefficients (e.g. 3329 for Kyber).
//   - N: the number of coefficients of a polynomial (e.g. 256).
//   - Order: the masking order d; each value is split into d+1 shares.
type ParametersLiteral struct {
	Q     uint64
	N     int
	Order int
}

// Parameters represents a parameter set for the masking of polynomials.
// It holds the configuration constants q, N and d, which are fixed for the
// lifetime of every masked object created from it. Parameters is immutable.
type Parameters struct {
	ringQ *ring.Ring
	order int
}

var (
	// KyberOrder1 masks Kyber/ML-KEM polynomials with two shares per coefficient.
	KyberOrder1 = ParametersLiteral{Q: 3329, N: 256, Order: 1}

	// KyberOrder2 masks Kyber/ML-KEM polynomials with three shares per coefficient.
	KyberOrder2 = ParametersLiteral{Q: 3329, N: 256, Order: 2}

	// KyberOrder3 masks Kyber/ML-KEM polynomials with four shares per coefficient.
	KyberOrder3 = ParametersLiteral{Q: 3329, N: 256, Order: 3}
)

// NewParametersFromLiteral instantiates a set of masking Parameters from a
// ParametersLiteral specification. Invalid combinations are configuration
// defects and are reported here, once, rather than by the masking operations.
func NewParametersFromLiteral(pl ParametersLiteral) (params Parameters, err error) {

	if pl.Order < 0 || pl.Order > MaxOrder {
		return Parameters{}, fmt.Errorf("invalid masking order: must be in [0, %d] but is %d", MaxOrder, pl.Order)
	}

	var ringQ *ring.Ring
	if ringQ, err = ring.NewRing(pl.N, pl.Q); err != nil {
		return Parameters{}, fmt.Errorf("invalid parameters: %w", err)
	}

	return Parameters{ringQ: ringQ, order: pl.Order}, nil
}

// ParametersLiteral returns the ParametersLiteral of the target Parameters.
func (p Parameters) ParametersLiteral() ParametersLiteral {
	return ParametersLiteral{
		Q:     p.Q(),
		N:     p.N(),
		Order: p.order,
	}
}

// RingQ returns a pointer to the ring of the plain polynomials.
func (p Parameters) RingQ() *ring.Ring {
	return p.ringQ
}

// Q returns the modulus.
func (p Parameters) Q() uint64 {
	return p.ringQ.Modulus
}

// N returns the number of coefficients of the polynomials.
func (p Parameters) N() int {
	return p.ringQ.N()
}

// Order returns the masking order d.
func (p Parameters) Order() int {
	return p.order
}

// Shares returns the number of shares d+1 of each masked value.
func (p Parameters) Shares() int {
	return p.order + 1
}

// RefreshRandomness returns the number of residues drawn per coefficient
// by a mask refresh, that is d(d+1)/2.
func (p Parameters) RefreshRandomness() int {
	return utils.Binomial(p.order+1, 2)
}

// RejectionBound returns M = floor(2^32/q^2) * q^2, the exclusive upper bound
// of the words accepted by the residue sampler.
func (p Parameters) RejectionBound() uint64 {
	return ring.RejectionBound(p.Q())
}

// Equal checks two Parameter structs for equality.
func (p Parameters) Equal(other *Parameters) bool {
	return cmp.Equal(p.ParametersLiteral(), other.ParametersLiteral())
}

// MarshalJSON returns a JSON representation of this parameter set. See Marshal from the [encoding/json] package.
func (p Parameters) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.ParametersLiteral())
}

// UnmarshalJSON reads a JSON representation of a parameter set into the receiver Parameter. See Unmarshal from the [encoding/json] package.
func (p *Parameters) UnmarshalJSON(data []byte) (err error) {
	var params ParametersLiteral
	if err = json.Unmarshal(data, &params); err != nil {
		return err
	}
	*p, err = NewParametersFromLiteral(params)
	return
}
