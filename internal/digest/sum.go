package digest

import (
	"crypto/md5"  //nolint:gosec // MD5 is a crack target, not used for security
	"crypto/sha1" //nolint:gosec // SHA1 is a crack target, not used for security
	"crypto/sha256"
	"crypto/sha512"
	"errors"
	"fmt"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/jzelinskie/whirlpool"
	"golang.org/x/crypto/md4" //nolint:staticcheck // NTLM is defined on MD4
	"golang.org/x/crypto/sha3"

	"github.com/nao1215/hashripper/internal/hashtype"
)

// ErrUnsupported is returned by Sum for recognized algorithms that have no
// implementation (the MD6 family) and for Unknown.
var ErrUnsupported = errors.New("unsupported algorithm")

// Sum computes the digest of data under ht.
func Sum(ht hashtype.HashType, data []byte) ([]byte, error) {
	switch ht {
	case hashtype.MD5:
		sum := md5.Sum(data) //nolint:gosec
		return sum[:], nil
	case hashtype.SHA1:
		sum := sha1.Sum(data) //nolint:gosec
		return sum[:], nil
	case hashtype.SHA256:
		sum := sha256.Sum256(data)
		return sum[:], nil
	case hashtype.SHA512:
		sum := sha512.Sum512(data)
		return sum[:], nil
	case hashtype.SHA3_256:
		sum := sha3.Sum256(data)
		return sum[:], nil
	case hashtype.SHA3_512:
		sum := sha3.Sum512(data)
		return sum[:], nil
	case hashtype.NTLM:
		sum := ntlmSum(data)
		return sum[:], nil
	case hashtype.Whirlpool:
		sum := whirlpoolSum(data)
		return sum[:], nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, ht)
	}
}

// ntlmSum returns MD4 over the UTF-16LE encoding of candidate. Invalid
// UTF-8 sequences encode as U+FFFD.
func ntlmSum(candidate []byte) [md4.Size]byte {
	var stack [256]byte
	buf := stack[:0]
	for i := 0; i < len(candidate); {
		r, size := utf8.DecodeRune(candidate[i:])
		i += size
		if r >= 0x10000 {
			hi, lo := utf16.EncodeRune(r)
			buf = append(buf, byte(hi), byte(hi>>8), byte(lo), byte(lo>>8))
			continue
		}
		buf = append(buf, byte(r), byte(r>>8))
	}

	h := md4.New()
	h.Write(buf) //nolint:errcheck // hash.Hash never returns an error
	var sum [md4.Size]byte
	h.Sum(sum[:0])
	return sum
}

func whirlpoolSum(candidate []byte) [64]byte {
	h := whirlpool.New()
	h.Write(candidate) //nolint:errcheck // hash.Hash never returns an error
	var sum [64]byte
	h.Sum(sum[:0])
	return sum
}
