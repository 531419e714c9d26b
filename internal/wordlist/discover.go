package wordlist

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Well known file names inside the wordlist directory.
const (
	BundledWordlist = "wordlist.txt"
	RockyouWordlist = "rockyou.txt"
	RockyouArchive  = "rockyou.zip"
)

// Discovery is the result of scanning a wordlist directory.
type Discovery struct {
	// Paths are the wordlists in the order they should be tried.
	Paths []string

	// RockyouArchived is true when rockyou.zip exists but rockyou.txt does
	// not, meaning the user probably forgot to extract it.
	RockyouArchived bool
}

// Discover lists every *.txt file in dir ordered wordlist.txt, rockyou.txt,
// then the remaining files alphabetically. Names compare case-insensitively.
func Discover(dir string) (*Discovery, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNoWordlistDir, dir)
		}
		return nil, fmt.Errorf("failed to read wordlist directory %s: %w", dir, err)
	}

	d := &Discovery{}
	var hasRockyouTxt, hasRockyouZip bool
	for _, e := range entries {
		name := strings.ToLower(e.Name())
		switch name {
		case RockyouWordlist:
			hasRockyouTxt = true
		case RockyouArchive:
			hasRockyouZip = true
		}
		if e.IsDir() || filepath.Ext(name) != ".txt" {
			continue
		}
		d.Paths = append(d.Paths, filepath.Join(dir, e.Name()))
	}
	d.RockyouArchived = hasRockyouZip && !hasRockyouTxt

	if len(d.Paths) == 0 {
		return d, fmt.Errorf("%w in %s", ErrNoWordlists, dir)
	}

	sort.SliceStable(d.Paths, func(i, j int) bool {
		a := strings.ToLower(filepath.Base(d.Paths[i]))
		b := strings.ToLower(filepath.Base(d.Paths[j]))
		if ra, rb := rank(a), rank(b); ra != rb {
			return ra < rb
		}
		return a < b
	})
	return d, nil
}

func rank(name string) int {
	switch name {
	case BundledWordlist:
		return 0
	case RockyouWordlist:
		return 1
	default:
		return 2
	}
}

// Resolve locates an explicitly requested wordlist. The path is used as-is
// when it exists; otherwise it is looked up inside dir and fallback is set.
func Resolve(path, dir string) (resolved string, fallback bool, err error) {
	if _, err := os.Stat(path); err == nil {
		return path, false, nil
	}

	if dir != "" {
		candidate := filepath.Join(dir, path)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		}
		return "", false, fmt.Errorf("%w: %q (also tried %s)", ErrNotFound, path, candidate)
	}
	return "", false, fmt.Errorf("%w: %q", ErrNotFound, path)
}
