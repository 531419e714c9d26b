package config

import (
	"path/filepath"
	"runtime"

	"github.com/adrg/xdg"
	"github.com/nao1215/hashripper/internal/hashtype"
)

// Default configuration values.
const (
	// DefaultChunkSize is the number of candidates a worker claims at once.
	DefaultChunkSize = 2000

	// DefaultReadBufferSize is the buffered reader size used for wordlists.
	DefaultReadBufferSize = 1 << 20

	// DefaultWordlistDir is searched when no wordlist is given explicitly.
	DefaultWordlistDir = "wordlist"

	// DefaultBatchSize is the number of hashes cracked concurrently with
	// --list. Every crack already uses all workers, so one at a time is
	// usually fastest.
	DefaultBatchSize = 1

	// AppName is the application name used for XDG directory paths.
	AppName = "hashripper"
)

// Config holds all configuration options for a crack run. It is populated
// from CLI flags and the optional config file and passed down explicitly.
type Config struct {
	// Hash is the single target digest. Mutually exclusive with HashListFile.
	Hash string

	// HashListFile is a file with one target digest per line.
	HashListFile string

	// Algorithm forces a single algorithm. Unknown means detect from the
	// hash length.
	Algorithm hashtype.HashType

	// PreferredAlgorithms reorders detected candidates. Only used when
	// Algorithm is Unknown.
	PreferredAlgorithms []hashtype.HashType

	// Wordlists are explicit wordlist paths, tried in order. When empty
	// every .txt file in WordlistDir is used.
	Wordlists []string

	// WordlistDir is the directory searched for wordlists.
	WordlistDir string

	// ChunkSize is the engine chunk size.
	ChunkSize int

	// Workers is the engine worker count.
	Workers int

	// ReadBufferSize is the buffered reader size for wordlist files.
	ReadBufferSize int

	// BatchSize is the number of hashes cracked concurrently with --list.
	BatchSize int

	// Verbose enables debug logging and per-attempt report lines.
	Verbose bool

	// Quiet suppresses the banner and progress lines.
	Quiet bool

	// JSONReport enables JSON report output. Mutually exclusive with
	// MarkdownReport.
	JSONReport bool

	// MarkdownReport enables Markdown report output. Mutually exclusive
	// with JSONReport.
	MarkdownReport bool

	// ReportFile is the output file path for the report. Empty means stdout.
	ReportFile string

	// UsePotfile enables the potfile lookup and record steps.
	UsePotfile bool

	// DBDir is the directory holding the potfile database.
	DBDir string

	// ConfigFilePath is the path to the configuration file. Empty means
	// search the current and home directories.
	ConfigFilePath string

	// File is the loaded configuration file, if any.
	File *File
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		WordlistDir:    DefaultWordlistDir,
		ChunkSize:      DefaultChunkSize,
		Workers:        runtime.NumCPU(),
		ReadBufferSize: DefaultReadBufferSize,
		BatchSize:      DefaultBatchSize,
		UsePotfile:     true,
		DBDir:          XDGDataDir(),
	}
}

// XDGDataDir returns the XDG data directory for hashripper.
// On Linux: ~/.local/share/hashripper
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for hashripper.
// On Linux: ~/.config/hashripper
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid and returns the first
// problem found.
func (c *Config) Validate() error {
	if c.Hash == "" && c.HashListFile == "" {
		return ErrNoTarget
	}
	if c.Hash != "" && c.HashListFile != "" {
		return ErrConflictingTargets
	}
	if c.ChunkSize <= 0 {
		return ErrInvalidChunkSize
	}
	if c.Workers <= 0 {
		return ErrInvalidWorkers
	}
	if c.ReadBufferSize <= 0 {
		return ErrInvalidBufferSize
	}
	if c.BatchSize <= 0 {
		return ErrInvalidBatchSize
	}
	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}
	if c.Quiet && c.Verbose {
		return ErrConflictingVerbosity
	}
	return nil
}

// Algorithms returns the candidate algorithms for hash: the forced
// algorithm alone, or the detected candidates reordered by preference.
// The second result reports whether detection was used.
func (c *Config) Algorithms(hash string) ([]hashtype.HashType, bool) {
	if c.Algorithm != hashtype.Unknown {
		return []hashtype.HashType{c.Algorithm}, false
	}
	return hashtype.Prioritize(hashtype.Detect(hash), c.PreferredAlgorithms), true
}
