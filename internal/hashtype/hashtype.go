package hashtype

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
)

// ErrUnknownAlgorithm is returned by Parse when a name does not match any
// supported algorithm. It is distinct from the Unknown hash type, which is a
// detection outcome rather than a user error.
var ErrUnknownAlgorithm = errors.New("unknown algorithm")

// HashType is a digest algorithm.
type HashType int

// Supported hash types in declaration order. Detect returns candidates in
// this order, and orchestration tries them in the same order.
const (
	Unknown HashType = iota
	MD5
	SHA1
	SHA256
	SHA512
	SHA3_256
	SHA3_512
	NTLM
	Whirlpool
	MD6_256
	MD6_512
)

var names = map[HashType]string{
	Unknown:   "Unknown",
	MD5:       "MD5",
	SHA1:      "SHA1",
	SHA256:    "SHA256",
	SHA512:    "SHA512",
	SHA3_256:  "SHA3-256",
	SHA3_512:  "SHA3-512",
	NTLM:      "NTLM",
	Whirlpool: "Whirlpool",
	MD6_256:   "MD6-256",
	MD6_512:   "MD6-512",
}

// aliases maps a normalized name (case folded, separators removed) to its
// hash type. "md6" and "sha3" on their own select the 256-bit variants.
var aliases = map[string]HashType{
	"md5":       MD5,
	"sha1":      SHA1,
	"sha256":    SHA256,
	"sha512":    SHA512,
	"sha3":      SHA3_256,
	"sha3256":   SHA3_256,
	"sha3512":   SHA3_512,
	"ntlm":      NTLM,
	"whirlpool": Whirlpool,
	"md6":       MD6_256,
	"md6256":    MD6_256,
	"md6512":    MD6_512,
}

// All returns every concrete hash type (everything except Unknown) in
// declaration order.
func All() []HashType {
	return []HashType{MD5, SHA1, SHA256, SHA512, SHA3_256, SHA3_512, NTLM, Whirlpool, MD6_256, MD6_512}
}

// String returns the canonical display name, e.g. "SHA3-256".
func (t HashType) String() string {
	if name, ok := names[t]; ok {
		return name
	}
	return fmt.Sprintf("HashType(%d)", int(t))
}

// DigestSize returns the digest length in bytes, or 0 for Unknown.
func (t HashType) DigestSize() int {
	switch t {
	case MD5, NTLM:
		return 16
	case SHA1:
		return 20
	case SHA256, SHA3_256, MD6_256:
		return 32
	case SHA512, SHA3_512, Whirlpool, MD6_512:
		return 64
	default:
		return 0
	}
}

// Supported reports whether a digest implementation exists for t.
// The MD6 family is recognized but never matches.
func (t HashType) Supported() bool {
	switch t {
	case MD5, SHA1, SHA256, SHA512, SHA3_256, SHA3_512, NTLM, Whirlpool:
		return true
	default:
		return false
	}
}

// MarshalJSON encodes the hash type as its display name.
func (t HashType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON accepts any spelling Parse accepts, plus "Unknown".
func (t *HashType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if strings.EqualFold(s, names[Unknown]) {
		*t = Unknown
		return nil
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Parse resolves a user supplied algorithm name. Matching is case
// insensitive and ignores '-', '_' and spaces, so "sha3-256", "SHA3_256" and
// "sha3256" are equivalent. Unrecognized names return ErrUnknownAlgorithm.
func Parse(name string) (HashType, error) {
	key := normalize(name)
	if t, ok := aliases[key]; ok {
		return t, nil
	}
	return Unknown, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
}

// MustParse is like Parse but panics on error. Intended for tests and
// package level tables.
func MustParse(name string) HashType {
	t, err := Parse(name)
	if err != nil {
		panic(err)
	}
	return t
}

// ParseList parses a list of names, failing on the first unknown one.
func ParseList(list []string) ([]HashType, error) {
	types := make([]HashType, 0, len(list))
	for _, name := range list {
		t, err := Parse(name)
		if err != nil {
			return nil, err
		}
		types = append(types, t)
	}
	return types, nil
}

func normalize(name string) string {
	folded := cases.Fold().String(strings.TrimSpace(name))
	return strings.Map(func(r rune) rune {
		switch r {
		case '-', '_', ' ':
			return -1
		}
		return r
	}, folded)
}
