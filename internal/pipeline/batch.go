package pipeline

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/nao1215/hashripper/internal/hashtype"
	"github.com/nao1215/hashripper/internal/model"
	"golang.org/x/sync/errgroup"
)

// DefaultBatchConcurrency is the number of hashes cracked at once when
// WithConcurrency is not given. Each job already fans out over every CPU.
const DefaultBatchConcurrency = 1

// Job is one hash to crack in a batch.
type Job struct {
	// Hash is the target digest.
	Hash string

	// Algorithms are the candidate algorithms, in order.
	Algorithms []hashtype.HashType

	// Detected marks Algorithms as coming from length detection.
	Detected bool
}

// NewJob builds a job for hash. When forced is not Unknown it is used as
// the only algorithm; otherwise the algorithms are detected from the hash.
func NewJob(hash string, forced hashtype.HashType) Job {
	if forced != hashtype.Unknown {
		return Job{Hash: hash, Algorithms: []hashtype.HashType{forced}}
	}
	return Job{Hash: hash, Algorithms: hashtype.Detect(hash), Detected: true}
}

// Report creates a pending report for the job.
func (j Job) Report() *model.CrackReport {
	r := model.NewCrackReport(j.Hash)
	r.Algorithms = j.Algorithms
	r.Detected = j.Detected
	return r
}

// BatchProcessor cracks many hashes concurrently.
type BatchProcessor struct {
	// pipelineFactory creates a fresh pipeline for each job.
	pipelineFactory func() *Pipeline

	// concurrency is the maximum number of concurrent jobs.
	concurrency int

	// logger is used for batch-level logging.
	logger *slog.Logger

	// results stores completed reports, guarded by mu.
	results []*model.CrackReport
	mu      sync.Mutex
}

// BatchOption configures a BatchProcessor.
type BatchOption func(*BatchProcessor)

// WithBatchLogger sets a custom logger for batch processing.
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(b *BatchProcessor) {
		b.logger = logger
	}
}

// WithConcurrency sets the maximum number of concurrent jobs.
// Non-positive values are ignored.
func WithConcurrency(n int) BatchOption {
	return func(b *BatchProcessor) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// NewBatchProcessor creates a new BatchProcessor. pipelineFactory is called
// once per job.
func NewBatchProcessor(pipelineFactory func() *Pipeline, opts ...BatchOption) *BatchProcessor {
	bp := &BatchProcessor{
		pipelineFactory: pipelineFactory,
		concurrency:     DefaultBatchConcurrency,
		results:         make([]*model.CrackReport, 0),
	}

	for _, opt := range opts {
		opt(bp)
	}

	if bp.logger == nil {
		bp.logger = slog.Default()
	}

	return bp
}

// ProcessBatch cracks every job and returns the reports in job order.
//
// A failing job does not stop the others; its error is kept in its report.
// The returned error is only non-nil when ctx is cancelled, in which case
// jobs that never started have a nil report.
func (bp *BatchProcessor) ProcessBatch(ctx context.Context, jobs []Job) ([]*model.CrackReport, error) {
	bp.logger.Info("starting batch processing",
		"total_hashes", len(jobs),
		"concurrency", bp.concurrency,
	)

	startTime := time.Now()

	bp.results = make([]*model.CrackReport, len(jobs))

	err := bp.run(ctx, jobs, func(report *model.CrackReport, i int) {
		bp.mu.Lock()
		bp.results[i] = report
		bp.mu.Unlock()
	})

	bp.logger.Info("batch processing complete",
		"total_hashes", len(jobs),
		"elapsed", time.Since(startTime),
	)

	return bp.results, err
}

// ProcessBatchWithCallback cracks every job and calls callback as each one
// finishes. callback runs on the job's goroutine and must be safe for
// concurrent use when concurrency is above one.
func (bp *BatchProcessor) ProcessBatchWithCallback(
	ctx context.Context,
	jobs []Job,
	callback func(report *model.CrackReport, index int),
) error {
	bp.logger.Info("starting batch processing with callback",
		"total_hashes", len(jobs),
		"concurrency", bp.concurrency,
	)
	return bp.run(ctx, jobs, callback)
}

func (bp *BatchProcessor) run(ctx context.Context, jobs []Job, done func(*model.CrackReport, int)) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(bp.concurrency)

	for i, job := range jobs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			bp.logger.Debug("cracking hash",
				"hash", job.Hash,
				"index", i+1,
				"total", len(jobs),
			)

			report := job.Report()
			if err := bp.pipelineFactory().Execute(gctx, report); err != nil {
				bp.logger.Warn("crack failed",
					"hash", job.Hash,
					"error", err,
				)
			}

			done(report, i)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}
