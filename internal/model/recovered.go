package model

import (
	"time"

	"github.com/nao1215/hashripper/internal/hashtype"
)

// Recovered is a hash whose plaintext is known.
type Recovered struct {
	Hash      string            `json:"hash"`
	Algorithm hashtype.HashType `json:"algorithm"`
	Plaintext string            `json:"plaintext"`
	Wordlist  string            `json:"wordlist,omitempty"`
	CrackedAt time.Time         `json:"cracked_at"`
}

// RecoveredFrom builds a Recovered entry from a cracked report. It returns
// false when the report holds no plaintext.
func RecoveredFrom(r *CrackReport) (Recovered, bool) {
	if !r.Cracked() {
		return Recovered{}, false
	}
	return Recovered{
		Hash:      r.Hash,
		Algorithm: r.Algorithm,
		Plaintext: r.Plaintext,
		Wordlist:  r.Wordlist,
		CrackedAt: time.Now(),
	}, true
}
