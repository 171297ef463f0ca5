// Package sampling implements entropy sources for the sampling of secure residues.
//
// Every source satisfies [PRNG], a blocking io.Reader. Production code uses
// [ThreadSafePRNG] (operating system CSPRNG) or a [PollingSource] wrapping a
// hardware random number generator. Deterministic sources ([KeyedPRNG]) only
// exist in builds without the masking_hardened tag.
package sampling
