package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/nao1215/hashripper/internal/digest"
	"github.com/nao1215/hashripper/internal/engine"
	"github.com/nao1215/hashripper/internal/hashtype"
	"github.com/nao1215/hashripper/internal/model"
	"github.com/nao1215/hashripper/internal/wordlist"
)

// Potfile stores recovered plaintexts across runs.
type Potfile interface {
	// Lookup returns the recovered entry for hash under any of algorithms,
	// or nil when none is stored.
	Lookup(ctx context.Context, hash string, algorithms []hashtype.HashType) (*model.Recovered, error)

	// Save stores a recovered entry.
	Save(ctx context.Context, rec model.Recovered) error
}

// LookupStep serves a hash from the potfile when it was cracked before.
type LookupStep struct {
	potfile Potfile
	logger  *slog.Logger
}

// LookupStepOption configures a LookupStep.
type LookupStepOption func(*LookupStep)

// WithLookupLogger sets a custom logger for the lookup step.
func WithLookupLogger(logger *slog.Logger) LookupStepOption {
	return func(s *LookupStep) {
		s.logger = logger
	}
}

// NewLookupStep creates a potfile lookup step.
func NewLookupStep(potfile Potfile, opts ...LookupStepOption) *LookupStep {
	s := &LookupStep{
		potfile: potfile,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the step name.
func (s *LookupStep) Name() string {
	return "potfile_lookup"
}

// Do marks report cracked when the potfile already knows the plaintext.
// Potfile errors are logged and otherwise ignored.
func (s *LookupStep) Do(ctx context.Context, report *model.CrackReport) error {
	if s.potfile == nil || report.Cracked() {
		return nil
	}

	rec, err := s.potfile.Lookup(ctx, report.Hash, report.Algorithms)
	if err != nil {
		s.logger.Warn("potfile lookup failed", "hash", report.Hash, "error", err)
		return nil
	}
	if rec == nil {
		return nil
	}

	report.MarkCracked(rec.Algorithm, rec.Plaintext, rec.Wordlist)
	report.FromPotfile = true
	s.logger.Debug("served from potfile", "hash", report.Hash, "algorithm", rec.Algorithm.String())
	return nil
}

// CrackStep scans every wordlist under every candidate algorithm and stops
// at the first match.
type CrackStep struct {
	engine    *engine.Engine
	sources   []wordlist.Source
	onAttempt func(model.Attempt)
	logger    *slog.Logger
}

// CrackStepOption configures a CrackStep.
type CrackStepOption func(*CrackStep)

// WithCrackLogger sets a custom logger for the crack step.
func WithCrackLogger(logger *slog.Logger) CrackStepOption {
	return func(s *CrackStep) {
		s.logger = logger
	}
}

// WithAttemptCallback registers fn to be called after every
// (wordlist, algorithm) attempt, in order.
func WithAttemptCallback(fn func(model.Attempt)) CrackStepOption {
	return func(s *CrackStep) {
		s.onAttempt = fn
	}
}

// NewCrackStep creates a crack step over sources. Sources are tried in the
// given order.
func NewCrackStep(eng *engine.Engine, sources []wordlist.Source, opts ...CrackStepOption) *CrackStep {
	s := &CrackStep{
		engine:  eng,
		sources: sources,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the step name.
func (s *CrackStep) Name() string {
	return "crack"
}

// Do executes the crack step.
//
// Each wordlist is read once and shared by all algorithms. A wordlist that
// cannot be read is recorded against every algorithm and skipped. When all
// wordlists fail the step returns an error wrapping ErrAllSourcesFailed and
// each read error; when only some fail and nothing is found the report ends
// in StatusFailed with the joined errors attached but the step succeeds.
func (s *CrackStep) Do(ctx context.Context, report *model.CrackReport) error {
	if report.Cracked() {
		return nil
	}
	if len(report.Algorithms) == 0 || hashtype.IsUnknown(report.Algorithms) {
		return fmt.Errorf("%w: %s", ErrUndetectedAlgorithm, report.Hash)
	}
	if len(s.sources) == 0 {
		return ErrNoSources
	}

	report.Wordlists = make([]string, len(s.sources))
	for i, src := range s.sources {
		report.Wordlists[i] = src.Name()
	}

	target := digest.NewTarget(report.Hash)
	var loadErrs []error

	for _, src := range s.sources {
		if err := ctx.Err(); err != nil {
			return err
		}

		mem, err := wordlist.Preload(src)
		if err != nil {
			s.logger.Warn("wordlist unreadable", "wordlist", src.Name(), "error", err)
			loadErrs = append(loadErrs, err)
			for _, ht := range report.Algorithms {
				s.record(report, model.Attempt{
					Wordlist:  src.Name(),
					Algorithm: ht,
					Error:     err.Error(),
				})
			}
			continue
		}

		for _, ht := range report.Algorithms {
			res, err := s.engine.Crack(ctx, target, mem, ht)
			if err != nil {
				if ctxErr := ctx.Err(); ctxErr != nil {
					return ctxErr
				}
				s.record(report, model.Attempt{
					Wordlist:  src.Name(),
					Algorithm: ht,
					Error:     err.Error(),
				})
				loadErrs = append(loadErrs, err)
				continue
			}

			s.record(report, model.Attempt{
				Wordlist:   src.Name(),
				Algorithm:  ht,
				Candidates: res.Candidates,
				Found:      res.Found,
				Elapsed:    res.Elapsed,
			})
			if res.Found {
				report.MarkCracked(ht, res.Plaintext, src.Name())
				return nil
			}
		}
	}

	if len(loadErrs) == 0 {
		report.Status = model.StatusNotFound
		return nil
	}

	report.Status = model.StatusFailed
	joined := errors.Join(loadErrs...)
	if !anyScanned(report) {
		return fmt.Errorf("%w: %w", ErrAllSourcesFailed, joined)
	}
	report.SetError(joined)
	return nil
}

func (s *CrackStep) record(report *model.CrackReport, a model.Attempt) {
	report.AddAttempt(a)
	if s.onAttempt != nil {
		s.onAttempt(a)
	}
}

// anyScanned reports whether at least one attempt completed a scan.
func anyScanned(report *model.CrackReport) bool {
	for _, a := range report.Attempts {
		if a.Error == "" {
			return true
		}
	}
	return false
}

// RecordStep saves a freshly cracked plaintext to the potfile.
type RecordStep struct {
	potfile Potfile
	logger  *slog.Logger
}

// RecordStepOption configures a RecordStep.
type RecordStepOption func(*RecordStep)

// WithRecordLogger sets a custom logger for the record step.
func WithRecordLogger(logger *slog.Logger) RecordStepOption {
	return func(s *RecordStep) {
		s.logger = logger
	}
}

// NewRecordStep creates a potfile record step.
func NewRecordStep(potfile Potfile, opts ...RecordStepOption) *RecordStep {
	s := &RecordStep{
		potfile: potfile,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the step name.
func (s *RecordStep) Name() string {
	return "potfile_record"
}

// Do saves the plaintext. Results served from the potfile are not written
// back. Save errors are logged and otherwise ignored.
func (s *RecordStep) Do(ctx context.Context, report *model.CrackReport) error {
	if s.potfile == nil || report.FromPotfile {
		return nil
	}
	rec, ok := model.RecoveredFrom(report)
	if !ok {
		return nil
	}
	if err := s.potfile.Save(ctx, rec); err != nil {
		s.logger.Warn("potfile save failed", "hash", report.Hash, "error", err)
	}
	return nil
}

// DefaultPipelineOption configures DefaultPipeline.
type DefaultPipelineOption func(*defaultPipelineConfig)

type defaultPipelineConfig struct {
	potfile   Potfile
	onAttempt func(model.Attempt)
}

// WithPipelinePotfile enables potfile lookup and recording.
func WithPipelinePotfile(p Potfile) DefaultPipelineOption {
	return func(c *defaultPipelineConfig) {
		c.potfile = p
	}
}

// WithPipelineAttemptCallback forwards to WithAttemptCallback.
func WithPipelineAttemptCallback(fn func(model.Attempt)) DefaultPipelineOption {
	return func(c *defaultPipelineConfig) {
		c.onAttempt = fn
	}
}

// DefaultPipeline builds the standard lookup, crack and record pipeline.
// The lookup and record steps are only added when a potfile is configured.
func DefaultPipeline(eng *engine.Engine, sources []wordlist.Source, pipelineOpts []Option, opts ...DefaultPipelineOption) *Pipeline {
	cfg := &defaultPipelineConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	p := New(pipelineOpts...)

	if cfg.potfile != nil {
		p.AddStep(NewLookupStep(cfg.potfile, WithLookupLogger(p.logger)))
	}
	p.AddStep(NewCrackStep(eng, sources,
		WithCrackLogger(p.logger),
		WithAttemptCallback(cfg.onAttempt),
	))
	if cfg.potfile != nil {
		p.AddStep(NewRecordStep(cfg.potfile, WithRecordLogger(p.logger)))
	}

	return p
}
