//go:build !masking_hardened

package ring

// ringParameters is a struct storing test parameters for the package ring.
type ringParameters struct {
	n int
	q uint64
}

// testParameters are the moduli of the lattice schemes whose coefficients
// are masked: Kyber/ML-KEM (3329), Kyber round 1 (7681) and NewHope/Falcon (12289).
var testParameters = []ringParameters{
	{256, 3329},
	{256, 7681},
	{1024, 12289},
}
