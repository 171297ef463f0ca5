/*
Package lattigo is the masking companion of Tune Insight's lattice cryptography library.
It provides a pure Go implementation of additive arithmetic masking for polynomial coefficients
of lattice-based schemes (Kyber/ML-KEM, Dilithium/ML-DSA), so that secret-dependent coefficients
are only ever processed as randomized shares and never as plain values.

The module is organized as follows:
  - utils/sampling: entropy sources (crypto/rand, register-polled devices, keyed test PRNGs).
  - ring: constant-time arithmetic modulo q, plain polynomials and the bias-free residue sampler.
  - masking: masked scalars and polynomials, the masking converter and the mask refresh.
  - masking/leakage: statistical assessment of the sharing (uniformity, fixed-vs-fixed, sampler bias).
  - cmd/maskassess: command line front-end of the assessment.

Builds that carry the side-channel security claim must use the masking_hardened build tag,
which removes recombination and deterministic entropy sources from the binary.
*/
package lattigo
