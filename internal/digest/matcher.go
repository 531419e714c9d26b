package digest

import (
	"bytes"
	"crypto/md5"  //nolint:gosec
	"crypto/sha1" //nolint:gosec
	"crypto/sha256"
	"crypto/sha512"

	"golang.org/x/crypto/sha3"

	"github.com/nao1215/hashripper/internal/hashtype"
)

// Matcher reports whether a candidate produces the bound target digest.
type Matcher func(candidate []byte) bool

// never is the matcher for targets or algorithms that cannot match.
func never([]byte) bool { return false }

// NewMatcher returns the matcher for ht bound to target.
//
// When the target did not decode as hex, or its length differs from the
// algorithm's digest size, the returned matcher always reports false.
// MD6-256, MD6-512 and Unknown also always report false.
func NewMatcher(ht hashtype.HashType, target Target) Matcher {
	want, ok := target.Bytes()
	if !ok || !ht.Supported() || len(want) != ht.DigestSize() {
		return never
	}

	switch ht {
	case hashtype.MD5:
		return func(c []byte) bool {
			sum := md5.Sum(c) //nolint:gosec
			return bytes.Equal(sum[:], want)
		}
	case hashtype.SHA1:
		return func(c []byte) bool {
			sum := sha1.Sum(c) //nolint:gosec
			return bytes.Equal(sum[:], want)
		}
	case hashtype.SHA256:
		return func(c []byte) bool {
			sum := sha256.Sum256(c)
			return bytes.Equal(sum[:], want)
		}
	case hashtype.SHA512:
		return func(c []byte) bool {
			sum := sha512.Sum512(c)
			return bytes.Equal(sum[:], want)
		}
	case hashtype.SHA3_256:
		return func(c []byte) bool {
			sum := sha3.Sum256(c)
			return bytes.Equal(sum[:], want)
		}
	case hashtype.SHA3_512:
		return func(c []byte) bool {
			sum := sha3.Sum512(c)
			return bytes.Equal(sum[:], want)
		}
	case hashtype.NTLM:
		return func(c []byte) bool {
			sum := ntlmSum(c)
			return bytes.Equal(sum[:], want)
		}
	case hashtype.Whirlpool:
		return func(c []byte) bool {
			sum := whirlpoolSum(c)
			return bytes.Equal(sum[:], want)
		}
	default:
		return never
	}
}

// Match is a convenience for one-off checks outside a scan.
func Match(ht hashtype.HashType, target Target, candidate string) bool {
	return NewMatcher(ht, target)([]byte(candidate))
}
