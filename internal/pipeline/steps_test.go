package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/nao1215/hashripper/internal/engine"
	"github.com/nao1215/hashripper/internal/hashtype"
	"github.com/nao1215/hashripper/internal/model"
	"github.com/nao1215/hashripper/internal/wordlist"
)

const (
	md5Abc       = "900150983cd24fb0d6963f7d28e17f72"
	ntlmPassword = "8846f7eaee8fb117ad06bdd830b7586c"
)

// brokenSource fails every Load.
type brokenSource struct{ name string }

func (s brokenSource) Name() string { return s.name }

func (s brokenSource) Load() ([][]byte, error) {
	return nil, fmt.Errorf("%w: %s: permission denied", wordlist.ErrUnreadable, s.name)
}

// memPotfile is an in-memory Potfile.
type memPotfile struct {
	mu        sync.Mutex
	entries   map[string]model.Recovered
	saves     int
	lookupErr error
}

func newMemPotfile() *memPotfile {
	return &memPotfile{entries: make(map[string]model.Recovered)}
}

func (p *memPotfile) Lookup(_ context.Context, hash string, algorithms []hashtype.HashType) (*model.Recovered, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.lookupErr != nil {
		return nil, p.lookupErr
	}
	for _, ht := range algorithms {
		if rec, ok := p.entries[hash+"/"+ht.String()]; ok {
			return &rec, nil
		}
	}
	return nil, nil
}

func (p *memPotfile) Save(_ context.Context, rec model.Recovered) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.entries[rec.Hash+"/"+rec.Algorithm.String()] = rec
	p.saves++
	return nil
}

func newTestEngine() *engine.Engine {
	return engine.New(engine.WithWorkers(4), engine.WithChunkSize(2))
}

func detectedReport(hash string) *model.CrackReport {
	return NewJob(hash, hashtype.Unknown).Report()
}

func TestCrackStepDo(t *testing.T) {
	t.Parallel()

	t.Run("wordlists are the outer loop and algorithms the inner one", func(t *testing.T) {
		t.Parallel()

		sources := []wordlist.Source{
			wordlist.NewMemory("first", "alpha", "beta"),
			wordlist.NewMemory("second", "gamma", "password"),
		}
		var seen []model.Attempt
		step := NewCrackStep(newTestEngine(), sources, WithAttemptCallback(func(a model.Attempt) {
			seen = append(seen, a)
		}))

		report := detectedReport(ntlmPassword)
		if err := step.Do(context.Background(), report); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !report.Cracked() {
			t.Fatalf("expected report to be cracked, status %s", report.Status)
		}
		if report.Plaintext != "password" || report.Algorithm != hashtype.NTLM || report.Wordlist != "second" {
			t.Errorf("unexpected result: %q %s %q", report.Plaintext, report.Algorithm, report.Wordlist)
		}

		want := []struct {
			wordlist string
			algo     hashtype.HashType
		}{
			{"first", hashtype.MD5},
			{"first", hashtype.NTLM},
			{"second", hashtype.MD5},
			{"second", hashtype.NTLM},
		}
		if len(report.Attempts) != len(want) {
			t.Fatalf("expected %d attempts, got %d", len(want), len(report.Attempts))
		}
		for i, w := range want {
			a := report.Attempts[i]
			if a.Wordlist != w.wordlist || a.Algorithm != w.algo {
				t.Errorf("attempt %d: got (%s, %s), want (%s, %s)", i, a.Wordlist, a.Algorithm, w.wordlist, w.algo)
			}
		}
		if len(seen) != len(want) {
			t.Errorf("expected callback for every attempt, got %d", len(seen))
		}
		if !report.Attempts[3].Found {
			t.Error("expected last attempt to be marked found")
		}
	})

	t.Run("stops at the first matching wordlist", func(t *testing.T) {
		t.Parallel()

		sources := []wordlist.Source{
			wordlist.NewMemory("first", "abc"),
			brokenSource{name: "never-read"},
		}
		step := NewCrackStep(newTestEngine(), sources)

		report := detectedReport(md5Abc)
		if err := step.Do(context.Background(), report); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if report.Plaintext != "abc" || report.Algorithm != hashtype.MD5 {
			t.Errorf("unexpected result: %q %s", report.Plaintext, report.Algorithm)
		}
		if len(report.Attempts) != 1 {
			t.Errorf("expected 1 attempt, got %d", len(report.Attempts))
		}
	})

	t.Run("exhausted wordlists end not found", func(t *testing.T) {
		t.Parallel()

		step := NewCrackStep(newTestEngine(), []wordlist.Source{
			wordlist.NewMemory("words", "one", "two", "three"),
		})

		report := detectedReport(md5Abc)
		if err := step.Do(context.Background(), report); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if report.Status != model.StatusNotFound {
			t.Errorf("expected NOT FOUND, got %s", report.Status)
		}
		if report.CandidatesTried() != 6 {
			t.Errorf("expected 6 candidates tried, got %d", report.CandidatesTried())
		}
	})

	t.Run("an unreadable wordlist is skipped", func(t *testing.T) {
		t.Parallel()

		step := NewCrackStep(newTestEngine(), []wordlist.Source{
			brokenSource{name: "broken"},
			wordlist.NewMemory("words", "abc"),
		})

		report := detectedReport(md5Abc)
		if err := step.Do(context.Background(), report); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !report.Cracked() {
			t.Fatalf("expected cracked, got %s", report.Status)
		}
		if got := len(report.FailedAttempts()); got != 2 {
			t.Errorf("expected 2 failed attempts for the broken wordlist, got %d", got)
		}
	})

	t.Run("partial failure without a match is reported as failed", func(t *testing.T) {
		t.Parallel()

		step := NewCrackStep(newTestEngine(), []wordlist.Source{
			wordlist.NewMemory("words", "nope"),
			brokenSource{name: "broken"},
		})

		report := detectedReport(md5Abc)
		if err := step.Do(context.Background(), report); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if report.Status != model.StatusFailed {
			t.Errorf("expected FAILED, got %s", report.Status)
		}
		if !errors.Is(report.Error, wordlist.ErrUnreadable) {
			t.Errorf("expected report error to wrap ErrUnreadable, got %v", report.Error)
		}
	})

	t.Run("every wordlist unreadable is an error", func(t *testing.T) {
		t.Parallel()

		step := NewCrackStep(newTestEngine(), []wordlist.Source{
			brokenSource{name: "a"},
			brokenSource{name: "b"},
		})

		report := detectedReport(md5Abc)
		err := step.Do(context.Background(), report)

		if !errors.Is(err, ErrAllSourcesFailed) {
			t.Errorf("expected ErrAllSourcesFailed, got %v", err)
		}
		if !errors.Is(err, wordlist.ErrUnreadable) {
			t.Errorf("expected error to wrap ErrUnreadable, got %v", err)
		}
		if report.Status != model.StatusFailed {
			t.Errorf("expected FAILED, got %s", report.Status)
		}
	})

	t.Run("undetected algorithm is rejected", func(t *testing.T) {
		t.Parallel()

		step := NewCrackStep(newTestEngine(), []wordlist.Source{wordlist.NewMemory("w", "abc")})
		err := step.Do(context.Background(), detectedReport("xyz"))

		if !errors.Is(err, ErrUndetectedAlgorithm) {
			t.Errorf("expected ErrUndetectedAlgorithm, got %v", err)
		}
	})

	t.Run("no sources is rejected", func(t *testing.T) {
		t.Parallel()

		step := NewCrackStep(newTestEngine(), nil)
		err := step.Do(context.Background(), detectedReport(md5Abc))

		if !errors.Is(err, ErrNoSources) {
			t.Errorf("expected ErrNoSources, got %v", err)
		}
	})

	t.Run("cancelled context is returned", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		step := NewCrackStep(newTestEngine(), []wordlist.Source{wordlist.NewMemory("w", "abc")})
		err := step.Do(ctx, detectedReport(md5Abc))

		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	})

	t.Run("already cracked report is left alone", func(t *testing.T) {
		t.Parallel()

		report := detectedReport(md5Abc)
		report.MarkCracked(hashtype.MD5, "abc", "potfile")

		step := NewCrackStep(newTestEngine(), nil)
		if err := step.Do(context.Background(), report); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(report.Attempts) != 0 {
			t.Error("expected no attempts")
		}
	})
}

func TestLookupStepDo(t *testing.T) {
	t.Parallel()

	t.Run("marks report cracked from potfile", func(t *testing.T) {
		t.Parallel()

		pot := newMemPotfile()
		_ = pot.Save(context.Background(), model.Recovered{Hash: md5Abc, Algorithm: hashtype.MD5, Plaintext: "abc"})

		report := detectedReport(md5Abc)
		if err := NewLookupStep(pot).Do(context.Background(), report); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !report.Cracked() || !report.FromPotfile || report.Plaintext != "abc" {
			t.Errorf("expected potfile hit, got %+v", report)
		}
	})

	t.Run("miss leaves report pending", func(t *testing.T) {
		t.Parallel()

		report := detectedReport(md5Abc)
		if err := NewLookupStep(newMemPotfile()).Do(context.Background(), report); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if report.Status != model.StatusPending {
			t.Errorf("expected PENDING, got %s", report.Status)
		}
	})

	t.Run("lookup errors are not fatal", func(t *testing.T) {
		t.Parallel()

		pot := newMemPotfile()
		pot.lookupErr = errors.New("database is locked")

		if err := NewLookupStep(pot).Do(context.Background(), detectedReport(md5Abc)); err != nil {
			t.Errorf("expected nil error, got %v", err)
		}
	})
}

func TestRecordStepDo(t *testing.T) {
	t.Parallel()

	t.Run("saves cracked report", func(t *testing.T) {
		t.Parallel()

		pot := newMemPotfile()
		report := detectedReport(md5Abc)
		report.MarkCracked(hashtype.MD5, "abc", "words")

		if err := NewRecordStep(pot).Do(context.Background(), report); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if pot.saves != 1 {
			t.Errorf("expected 1 save, got %d", pot.saves)
		}
	})

	t.Run("skips uncracked and potfile results", func(t *testing.T) {
		t.Parallel()

		pot := newMemPotfile()
		fromPot := detectedReport(md5Abc)
		fromPot.MarkCracked(hashtype.MD5, "abc", "")
		fromPot.FromPotfile = true

		for _, r := range []*model.CrackReport{detectedReport(md5Abc), fromPot} {
			if err := NewRecordStep(pot).Do(context.Background(), r); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		}
		if pot.saves != 0 {
			t.Errorf("expected no saves, got %d", pot.saves)
		}
	})
}

func TestDefaultPipeline(t *testing.T) {
	t.Parallel()

	t.Run("without potfile only cracks", func(t *testing.T) {
		t.Parallel()

		p := DefaultPipeline(newTestEngine(), nil, nil)
		names := p.StepNames()
		if len(names) != 1 || names[0] != "crack" {
			t.Errorf("unexpected steps: %v", names)
		}
	})

	t.Run("second run is served from the potfile", func(t *testing.T) {
		t.Parallel()

		pot := newMemPotfile()
		sources := []wordlist.Source{wordlist.NewMemory("words", "x", "abc")}

		p := DefaultPipeline(newTestEngine(), sources, nil, WithPipelinePotfile(pot))
		if got := p.StepNames(); len(got) != 3 {
			t.Fatalf("expected 3 steps, got %v", got)
		}

		first := detectedReport(md5Abc)
		if err := p.Execute(context.Background(), first); err != nil {
			t.Fatalf("first run: %v", err)
		}
		if !first.Cracked() || first.FromPotfile {
			t.Fatalf("expected a fresh crack, got %+v", first)
		}

		second := detectedReport(md5Abc)
		if err := p.Execute(context.Background(), second); err != nil {
			t.Fatalf("second run: %v", err)
		}
		if !second.FromPotfile || second.Plaintext != "abc" {
			t.Errorf("expected potfile hit, got %+v", second)
		}
		if len(second.Attempts) != 0 {
			t.Errorf("expected no scans on potfile hit, got %d", len(second.Attempts))
		}
		if pot.saves != 1 {
			t.Errorf("expected exactly 1 save, got %d", pot.saves)
		}
	})
}
