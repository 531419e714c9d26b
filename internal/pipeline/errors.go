package pipeline

import "errors"

var (
	// ErrUndetectedAlgorithm is returned when a report carries no usable
	// candidate algorithm.
	ErrUndetectedAlgorithm = errors.New("could not determine hash algorithm")

	// ErrNoSources is returned when a crack step has no wordlists to scan.
	ErrNoSources = errors.New("no wordlists to scan")

	// ErrAllSourcesFailed is returned when every wordlist failed to load.
	ErrAllSourcesFailed = errors.New("every wordlist failed to load")
)
