package engine

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/nao1215/hashripper/internal/digest"
	"github.com/nao1215/hashripper/internal/hashtype"
	"github.com/nao1215/hashripper/internal/wordlist"
)

// DefaultChunkSize is the number of candidates a worker claims at a time.
const DefaultChunkSize = 2000

// Result is the outcome of one scan.
type Result struct {
	// Plaintext is the recovered candidate. Valid only when Found is true.
	Plaintext string

	// Found reports whether a candidate matched.
	Found bool

	// Candidates is the number of candidates in the source.
	Candidates int

	// Elapsed is the wall time of the scan, excluding the source read.
	Elapsed time.Duration
}

// Engine runs scans. It holds no per-scan state and is safe for concurrent
// use.
type Engine struct {
	workers   int
	chunkSize int
	logger    *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithWorkers sets the worker pool size. Non-positive values are ignored.
func WithWorkers(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.workers = n
		}
	}
}

// WithChunkSize sets the number of candidates per chunk. Non-positive
// values are ignored.
func WithChunkSize(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.chunkSize = n
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// New returns an Engine using one worker per CPU by default.
func New(opts ...Option) *Engine {
	e := &Engine{
		workers:   runtime.NumCPU(),
		chunkSize: DefaultChunkSize,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = slog.Default()
	}
	return e
}

// Workers returns the worker pool size.
func (e *Engine) Workers() int {
	return e.workers
}

// ChunkSize returns the chunk size.
func (e *Engine) ChunkSize() int {
	return e.chunkSize
}

// CrackHash decodes hash and scans src for a preimage under ht.
func (e *Engine) CrackHash(ctx context.Context, hash string, src wordlist.Source, ht hashtype.HashType) (Result, error) {
	return e.Crack(ctx, digest.NewTarget(hash), src, ht)
}

// Crack scans src for a candidate whose ht digest equals target.
//
// It returns an error when the source cannot be read or ctx is cancelled
// before the scan completes. A nil error with Found false means every
// candidate was checked.
func (e *Engine) Crack(ctx context.Context, target digest.Target, src wordlist.Source, ht hashtype.HashType) (Result, error) {
	match := digest.NewMatcher(ht, target)

	candidates, err := src.Load()
	if err != nil {
		return Result{}, fmt.Errorf("failed to load %s: %w", src.Name(), err)
	}

	e.logger.Debug("scan started",
		"source", src.Name(),
		"algorithm", ht.String(),
		"candidates", len(candidates),
		"workers", e.workers,
		"chunkSize", e.chunkSize,
	)

	start := time.Now()
	word, found, err := e.scan(ctx, candidates, match)
	result := Result{
		Candidates: len(candidates),
		Elapsed:    time.Since(start),
	}
	if err != nil {
		return result, err
	}
	if found {
		result.Found = true
		result.Plaintext = string(word)
	}

	e.logger.Debug("scan finished",
		"source", src.Name(),
		"algorithm", ht.String(),
		"found", result.Found,
		"elapsed", result.Elapsed,
	)
	return result, nil
}

// scan runs the worker pool over candidates.
func (e *Engine) scan(ctx context.Context, candidates [][]byte, match digest.Matcher) ([]byte, bool, error) {
	chunks := (len(candidates) + e.chunkSize - 1) / e.chunkSize
	if chunks == 0 {
		return nil, false, ctx.Err()
	}

	var (
		next   atomic.Int64
		stop   atomic.Bool
		winner atomic.Pointer[[]byte]
	)

	workers := min(e.workers, chunks)
	g, gctx := errgroup.WithContext(ctx)
	for range workers {
		g.Go(func() error {
			for !stop.Load() {
				if err := gctx.Err(); err != nil {
					return err
				}

				i := int(next.Add(1) - 1)
				if i >= chunks {
					return nil
				}

				lo := i * e.chunkSize
				hi := min(lo+e.chunkSize, len(candidates))
				for _, c := range candidates[lo:hi] {
					if match(c) {
						if winner.CompareAndSwap(nil, &c) {
							stop.Store(true)
						}
						return nil
					}
				}
			}
			return nil
		})
	}

	err := g.Wait()
	if p := winner.Load(); p != nil {
		return *p, true, nil
	}
	if err != nil {
		return nil, false, err
	}
	return nil, false, ctx.Err()
}
