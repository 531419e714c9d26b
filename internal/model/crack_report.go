package model

import (
	"time"

	"github.com/nao1215/hashripper/internal/hashtype"
)

// CrackReport is the result of cracking one hash across a set of wordlists
// and candidate algorithms.
type CrackReport struct {
	// Hash is the target digest as supplied by the user.
	Hash string `json:"hash"`

	// Algorithms are the candidate algorithms in the order they are tried.
	Algorithms []hashtype.HashType `json:"algorithms"`

	// Detected is true when Algorithms came from length based detection
	// rather than an explicit user choice.
	Detected bool `json:"detected"`

	// Wordlists are the wordlist names in the order they are tried.
	Wordlists []string `json:"wordlists,omitempty"`

	// Status is the overall outcome.
	Status Status `json:"status"`

	// Algorithm is the algorithm that produced a match.
	Algorithm hashtype.HashType `json:"algorithm,omitempty"`

	// Plaintext is the recovered plaintext.
	Plaintext string `json:"plaintext,omitempty"`

	// Wordlist is the wordlist that contained the plaintext.
	Wordlist string `json:"wordlist,omitempty"`

	// FromPotfile is true when the result was served from the potfile
	// without scanning.
	FromPotfile bool `json:"from_potfile"`

	// Attempts records every (wordlist, algorithm) scan in order.
	Attempts []Attempt `json:"attempts,omitempty"`

	// DateStarted is when the run began.
	DateStarted time.Time `json:"date_started"`

	// Elapsed is the total wall time of the run.
	Elapsed time.Duration `json:"elapsed"`

	// Error is the run-level error, if any. Not serialized.
	Error error `json:"-"`

	// ErrorMessage is the string form of Error for serialization.
	ErrorMessage string `json:"error,omitempty"`
}

// Attempt is a single scan of one wordlist under one algorithm.
type Attempt struct {
	Wordlist   string            `json:"wordlist"`
	Algorithm  hashtype.HashType `json:"algorithm"`
	Candidates int               `json:"candidates"`
	Found      bool              `json:"found"`
	Elapsed    time.Duration     `json:"elapsed"`
	Error      string            `json:"error,omitempty"`
}

// NewCrackReport creates a pending report for hash.
func NewCrackReport(hash string) *CrackReport {
	return &CrackReport{
		Hash:        hash,
		Status:      StatusPending,
		DateStarted: time.Now(),
	}
}

// Cracked reports whether a plaintext was recovered.
func (r *CrackReport) Cracked() bool {
	return r.Status == StatusCracked
}

// AddAttempt appends a scan record.
func (r *CrackReport) AddAttempt(a Attempt) {
	r.Attempts = append(r.Attempts, a)
}

// MarkCracked records a recovered plaintext.
func (r *CrackReport) MarkCracked(algorithm hashtype.HashType, plaintext, wordlist string) {
	r.Status = StatusCracked
	r.Algorithm = algorithm
	r.Plaintext = plaintext
	r.Wordlist = wordlist
}

// SetError records a run-level error.
func (r *CrackReport) SetError(err error) {
	r.Error = err
	if err != nil {
		r.ErrorMessage = err.Error()
	}
}

// CandidatesTried returns the number of candidates checked across all
// successful attempts.
func (r *CrackReport) CandidatesTried() int {
	total := 0
	for _, a := range r.Attempts {
		if a.Error == "" {
			total += a.Candidates
		}
	}
	return total
}

// FailedAttempts returns the attempts that ended in an error.
func (r *CrackReport) FailedAttempts() []Attempt {
	var failed []Attempt
	for _, a := range r.Attempts {
		if a.Error != "" {
			failed = append(failed, a)
		}
	}
	return failed
}
