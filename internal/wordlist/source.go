package wordlist

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// DefaultBufferSize is the read buffer used by FileSource. Large reads keep
// the syscall count low on multi-hundred-megabyte lists.
const DefaultBufferSize = 1024 * 1024

// Source is an ordered sequence of candidates.
type Source interface {
	// Name identifies the source in logs and reports.
	Name() string

	// Load reads every candidate. Each call returns a fresh slice owned by
	// the caller. Errors wrap ErrUnreadable.
	Load() ([][]byte, error)
}

// FileSource reads candidates from a file.
type FileSource struct {
	path       string
	bufferSize int
}

// FileOption configures a FileSource.
type FileOption func(*FileSource)

// WithBufferSize sets the read buffer size. Non-positive values are ignored.
func WithBufferSize(n int) FileOption {
	return func(s *FileSource) {
		if n > 0 {
			s.bufferSize = n
		}
	}
}

// NewFileSource returns a Source backed by the file at path. The file is
// not opened until Load.
func NewFileSource(path string, opts ...FileOption) *FileSource {
	s := &FileSource{
		path:       path,
		bufferSize: DefaultBufferSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the file path.
func (s *FileSource) Name() string {
	return s.path
}

// Path returns the file path.
func (s *FileSource) Path() string {
	return s.path
}

// Load reads the whole file and splits it into candidates.
func (s *FileSource) Load() ([][]byte, error) {
	f, err := os.Open(filepath.Clean(s.path))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnreadable, err)
	}
	defer f.Close()

	var buf bytes.Buffer
	if info, err := f.Stat(); err == nil && info.Size() > 0 {
		buf.Grow(int(info.Size()))
	}
	if _, err := buf.ReadFrom(bufio.NewReaderSize(f, s.bufferSize)); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrUnreadable, s.path, err)
	}
	return SplitLines(Decode(buf.Bytes())), nil
}

// ReaderSource reads candidates from an io.Reader. It can be loaded once;
// later calls return an empty sequence because the reader is drained.
type ReaderSource struct {
	name string
	r    io.Reader
}

// NewReaderSource returns a Source that reads from r.
func NewReaderSource(name string, r io.Reader) *ReaderSource {
	return &ReaderSource{name: name, r: r}
}

// Name returns the name given to NewReaderSource.
func (s *ReaderSource) Name() string {
	return s.name
}

// Load drains the reader and splits it into candidates.
func (s *ReaderSource) Load() ([][]byte, error) {
	raw, err := io.ReadAll(s.r)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrUnreadable, s.name, err)
	}
	return SplitLines(Decode(raw)), nil
}

// Memory is an in-memory Source.
type Memory struct {
	name  string
	lines [][]byte
}

// NewMemory returns a Source over the given words. Words are used as-is;
// they are not split on newlines.
func NewMemory(name string, words ...string) *Memory {
	lines := make([][]byte, len(words))
	for i, w := range words {
		lines[i] = []byte(w)
	}
	return &Memory{name: name, lines: lines}
}

// Preload reads src once and returns a Memory holding its candidates, so
// several scans can share a single read.
func Preload(src Source) (*Memory, error) {
	if m, ok := src.(*Memory); ok {
		return m, nil
	}
	lines, err := src.Load()
	if err != nil {
		return nil, err
	}
	return &Memory{name: src.Name(), lines: lines}, nil
}

// Name returns the name given to NewMemory or the preloaded source.
func (m *Memory) Name() string {
	return m.name
}

// Load returns the candidates. The backing bytes are shared and must be
// treated as read-only.
func (m *Memory) Load() ([][]byte, error) {
	return m.lines[:len(m.lines):len(m.lines)], nil
}

// Len returns the number of candidates.
func (m *Memory) Len() int {
	return len(m.lines)
}

// Decode returns raw unchanged when it is valid UTF-8, otherwise a copy in
// which every invalid byte is replaced with U+FFFD.
func Decode(raw []byte) []byte {
	if utf8.Valid(raw) {
		return raw
	}
	decoded, _, err := transform.Bytes(unicode.UTF8.NewDecoder(), raw)
	if err != nil {
		return bytes.ToValidUTF8(raw, []byte(string(utf8.RuneError)))
	}
	return decoded
}

// SplitLines splits data into lines without copying. Lines end at '\n' and
// a trailing '\r' is removed. A final newline does not produce an empty
// trailing candidate; empty lines elsewhere are kept.
func SplitLines(data []byte) [][]byte {
	if len(data) == 0 {
		return [][]byte{}
	}

	lines := make([][]byte, 0, bytes.Count(data, []byte{'\n'})+1)
	for len(data) > 0 {
		i := bytes.IndexByte(data, '\n')
		var line []byte
		if i < 0 {
			line, data = data, nil
		} else {
			line, data = data[:i], data[i+1:]
		}
		if n := len(line); n > 0 && line[n-1] == '\r' {
			line = line[:n-1]
		}
		lines = append(lines, line[:len(line):len(line)])
	}
	return lines
}
