package config

import (
	"fmt"

	"github.com/nao1215/hashripper/internal/hashtype"
)

// File represents the structure of the .hashripper configuration file.
// Zero values leave the corresponding Config field untouched.
type File struct {
	// WordlistDir overrides the default wordlist directory.
	WordlistDir string `yaml:"wordlistDir,omitempty"`

	// Wordlists is an explicit ordered list of wordlist paths.
	Wordlists []string `yaml:"wordlists,omitempty"`

	// ChunkSize overrides the engine chunk size.
	ChunkSize int `yaml:"chunkSize,omitempty"`

	// Workers overrides the engine worker count.
	Workers int `yaml:"workers,omitempty"`

	// Algorithms lists algorithm names to try first when detection returns
	// more than one candidate, e.g. [ntlm] to try NTLM before MD5.
	Algorithms []string `yaml:"algorithms,omitempty"`
}

// Apply copies the file settings into c. Settings for which explicit
// reports true were given on the command line and are left alone.
func (f *File) Apply(c *Config, explicit func(setting string) bool) error {
	if explicit == nil {
		explicit = func(string) bool { return false }
	}

	if f.WordlistDir != "" && !explicit("wordlist-dir") {
		c.WordlistDir = f.WordlistDir
	}
	if len(f.Wordlists) > 0 && !explicit("wordlist") {
		c.Wordlists = append([]string(nil), f.Wordlists...)
	}
	if f.ChunkSize != 0 && !explicit("chunk-size") {
		c.ChunkSize = f.ChunkSize
	}
	if f.Workers != 0 && !explicit("workers") {
		c.Workers = f.Workers
	}
	if len(f.Algorithms) > 0 {
		preferred, err := hashtype.ParseList(f.Algorithms)
		if err != nil {
			return fmt.Errorf("invalid algorithms in config file: %w", err)
		}
		c.PreferredAlgorithms = preferred
	}

	c.File = f
	return nil
}
