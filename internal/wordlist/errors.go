package wordlist

import "errors"

var (
	// ErrUnreadable is returned when a candidate source cannot be opened or
	// read. It is never reported as "no match".
	ErrUnreadable = errors.New("wordlist unreadable")

	// ErrNotFound is returned by Resolve when neither the given path nor its
	// fallback inside the wordlist directory exists.
	ErrNotFound = errors.New("wordlist not found")

	// ErrNoWordlistDir is returned by Discover when the wordlist directory
	// does not exist.
	ErrNoWordlistDir = errors.New("wordlist directory not found")

	// ErrNoWordlists is returned by Discover when the directory holds no
	// *.txt files.
	ErrNoWordlists = errors.New("no .txt wordlists found")
)
