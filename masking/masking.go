// Package masking implements additive arithmetic masking of polynomial
// coefficients modulo q, to protect lattice-based schemes against power and
// electromagnetic side-channel analysis.
//
// A secret polynomial is converted once into a [MaskedPoly] by [Masker.Mask]:
// every coefficient becomes d+1 uniformly random shares summing to it modulo q.
// From then on only masked polynomials are processed, by linear operations
// ([Evaluator]) and by masked kernels that preserve the sharing, and shares are
// re-randomized with [Masker.Refresh] between observable uses. Masked
// polynomials are erased with [MaskedPoly.Wipe] as soon as they are no longer needed.
//
// [Masker.Unmask] recombines a masked polynomial. It is a debugging facility
// and is removed by the masking_hardened build tag.
package masking
