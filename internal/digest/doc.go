// Package digest computes and compares the digests hashripper can crack.
//
// A Target holds the user supplied hex digest and its decoded bytes. A
// Matcher is a stateless predicate bound to one Target and one algorithm;
// NewMatcher resolves the algorithm once so the scan loop calls a single
// function without re-dispatching per candidate. Matchers are safe for
// concurrent use.
//
// Comparison is always on raw digest bytes, never on hex text. NTLM hashes
// the UTF-16LE encoding of the candidate. The MD6 family has no
// implementation: its matcher never matches and Sum returns ErrUnsupported.
package digest
