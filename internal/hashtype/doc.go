// Package hashtype identifies the digest algorithms hashripper can target.
//
// Two entry points are provided:
//   - Detect classifies a hex digest by its length and returns every
//     algorithm whose output has that size.
//   - Parse resolves a user supplied algorithm name such as "sha3-256",
//     "SHA3_256" or "sha3256" into a HashType.
//
// Both functions are pure and safe for concurrent use.
package hashtype
