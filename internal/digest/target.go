package digest

import (
	"encoding/hex"
	"strings"
)

// Target is the digest being cracked.
type Target struct {
	// Hex is the digest exactly as supplied by the user.
	Hex string

	raw     []byte
	decoded bool
}

// NewTarget decodes hash as case-insensitive hex. Decoding failures are not
// errors: the returned Target simply cannot be matched by any byte
// comparing algorithm.
func NewTarget(hash string) Target {
	t := Target{Hex: hash}
	raw, err := hex.DecodeString(strings.ToLower(strings.TrimSpace(hash)))
	if err == nil && len(raw) > 0 {
		t.raw = raw
		t.decoded = true
	}
	return t
}

// Bytes returns the decoded digest and whether decoding succeeded.
// The returned slice must not be modified.
func (t Target) Bytes() ([]byte, bool) {
	return t.raw, t.decoded
}

// Decoded reports whether the hex string decoded successfully.
func (t Target) Decoded() bool {
	return t.decoded
}

// Len returns the decoded digest length in bytes, or 0.
func (t Target) Len() int {
	return len(t.raw)
}

// String returns the lowercase hex form when decoded, else the raw input.
func (t Target) String() string {
	if !t.decoded {
		return t.Hex
	}
	return hex.EncodeToString(t.raw)
}
