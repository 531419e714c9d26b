package config

import "errors"

// Configuration validation errors returned by Config.Validate.
var (
	// ErrNoTarget is returned when neither a hash nor --list is given.
	ErrNoTarget = errors.New("no target specified: provide a hash or use --list")

	// ErrConflictingTargets is returned when both a hash and --list are given.
	ErrConflictingTargets = errors.New("conflicting targets: a hash and --list cannot be used together")

	// ErrInvalidChunkSize is returned when the chunk size is not positive.
	ErrInvalidChunkSize = errors.New("invalid chunk size: must be positive")

	// ErrInvalidWorkers is returned when the worker count is not positive.
	ErrInvalidWorkers = errors.New("invalid worker count: must be positive")

	// ErrInvalidBufferSize is returned when the read buffer size is not positive.
	ErrInvalidBufferSize = errors.New("invalid read buffer size: must be positive")

	// ErrInvalidBatchSize is returned when the batch size is not positive.
	ErrInvalidBatchSize = errors.New("invalid batch size: must be positive")

	// ErrConflictingReportFormats is returned when both --json and --markdown
	// are specified.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")

	// ErrConflictingVerbosity is returned when both --quiet and --verbose
	// are specified.
	ErrConflictingVerbosity = errors.New("conflicting verbosity: --quiet and --verbose cannot be used together")
)
