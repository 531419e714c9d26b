package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Status is the outcome of cracking one hash.
type Status int

const (
	// StatusPending means no attempt has completed yet.
	StatusPending Status = iota

	// StatusCracked means a plaintext was recovered.
	StatusCracked

	// StatusNotFound means every wordlist was scanned exhaustively under
	// every candidate algorithm without a match.
	StatusNotFound

	// StatusFailed means no match was found and at least one wordlist
	// could not be scanned, so the search was not exhaustive.
	StatusFailed

	// StatusCancelled means the run was interrupted before it finished.
	StatusCancelled
)

// String returns a human-readable representation of the status.
func (s Status) String() string {
	switch s {
	case StatusPending:
		return "PENDING"
	case StatusCracked:
		return "CRACKED"
	case StatusNotFound:
		return "NOT FOUND"
	case StatusFailed:
		return "FAILED"
	case StatusCancelled:
		return "CANCELLED"
	default:
		return "UNKNOWN"
	}
}

// MarshalJSON encodes the status as its string form.
func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON decodes a status written by MarshalJSON.
func (s *Status) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	for _, candidate := range []Status{StatusPending, StatusCracked, StatusNotFound, StatusFailed, StatusCancelled} {
		if strings.EqualFold(candidate.String(), str) {
			*s = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown status %q", str)
}
