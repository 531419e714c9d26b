package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"syscall"

	"github.com/nao1215/hashripper/internal/config"
	"github.com/nao1215/hashripper/internal/engine"
	"github.com/nao1215/hashripper/internal/hashtype"
	"github.com/nao1215/hashripper/internal/log"
	"github.com/nao1215/hashripper/internal/model"
	"github.com/nao1215/hashripper/internal/pipeline"
	"github.com/nao1215/hashripper/internal/potfile"
	"github.com/nao1215/hashripper/internal/report"
	"github.com/nao1215/hashripper/internal/wordlist"
	"github.com/spf13/cobra"
)

// errHashGivenTwice is returned when a hash is passed both positionally and
// with --hash.
var errHashGivenTwice = errors.New("hash given both as argument and with --hash")

// NewCrackCmd creates the crack command.
func NewCrackCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "crack [hash]",
		Short: "Recover the plaintext of a hash from wordlists",
		Long: `Crack hashes every candidate of one or more wordlists and compares the
result with the target hash.

The algorithm is detected from the hash length unless -f/--format is given.
A 32 character hash is tried as MD5 first and then as NTLM.

Without -w every .txt file in the wordlist directory is used, starting with
wordlist.txt and rockyou.txt. A -w path that does not exist is also looked up
inside the wordlist directory.

Examples:
  # Crack an MD5 hash with the default wordlists
  hashripper crack 0df70868a807d1cc89c11a41eb5b876f

  # Force the algorithm and use a specific wordlist
  hashripper crack -f sha1 -w rockyou.txt 03e2ad3de8d21b93a4a35517d5666ed143bf63fc

  # Crack every hash in a file, two at a time, and write a Markdown report
  hashripper crack --list hashes.txt --batch 2 --markdown -o report.md

  # Skip the potfile and write JSON
  hashripper crack --no-potfile --json 617B17D38947695A7BE15B61395F447B

Configuration file (.hashripper) example:
  wordlistDir: /usr/share/wordlists
  chunkSize: 4000
  algorithms:
    - ntlm`,
		Args: cobra.MaximumNArgs(1),
		RunE: runCrackCmd,
	}

	// Target flags
	cmd.Flags().StringP("hash", "H", "",
		"Hash to crack (alternative to the positional argument)")
	cmd.Flags().StringP("list", "l", "",
		"File with one hash per line")
	cmd.Flags().StringP("format", "f", "",
		"Hash algorithm (auto-detected if omitted)")

	// Wordlist flags
	cmd.Flags().StringArrayP("wordlist", "w", nil,
		"Wordlist file, may be repeated (default: every .txt in the wordlist directory)")
	cmd.Flags().StringP("wordlist-dir", "d", config.DefaultWordlistDir,
		"Directory searched for wordlists")
	cmd.Flags().Int("buffer-size", config.DefaultReadBufferSize,
		"Read buffer size in bytes for wordlist files")

	// Engine flags
	cmd.Flags().IntP("workers", "t", runtime.NumCPU(),
		"Number of worker goroutines per scan")
	cmd.Flags().Int("chunk-size", config.DefaultChunkSize,
		"Number of candidates a worker claims at once")
	cmd.Flags().IntP("batch", "b", config.DefaultBatchSize,
		"Number of hashes cracked concurrently with --list")

	// Potfile flags
	cmd.Flags().Bool("no-potfile", false,
		"Neither consult nor update the potfile")
	cmd.Flags().String("db-dir", "",
		"Directory holding the potfile (default: XDG data directory)")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .hashripper in current or home directory)")

	// Report flags
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")

	return cmd
}

// runCrackCmd executes the crack command.
func runCrackCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cmd.ErrOrStderr(), cfg.Verbose)
	slog.SetDefault(logger)

	printBanner(cmd.ErrOrStderr(), cfg.Quiet)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			logger.Info("received shutdown signal, cancelling...")
			cancel()
		case <-ctx.Done():
		}
	}()

	return runCrack(ctx, cmd, cfg, logger)
}

// getPersistentBool reads a persistent root flag from the command or its root.
func getPersistentBool(cmd *cobra.Command, name string) bool {
	v, err := cmd.Flags().GetBool(name)
	if err != nil {
		v, err = cmd.Root().PersistentFlags().GetBool(name)
		if err != nil {
			return false
		}
	}
	return v
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	return getPersistentBool(cmd, "verbose")
}

// getQuietFlag retrieves the quiet flag from the command or its parent.
func getQuietFlag(cmd *cobra.Command) bool {
	return getPersistentBool(cmd, "quiet")
}

// buildConfig creates a Config from cobra command flags and the optional
// configuration file. Flags given explicitly win over the file.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()

	var err error

	cfg.Hash, err = cmd.Flags().GetString("hash")
	if err != nil {
		return nil, err
	}
	if len(args) == 1 {
		if cfg.Hash != "" {
			return nil, errHashGivenTwice
		}
		cfg.Hash = args[0]
	}
	cfg.Hash = strings.TrimSpace(cfg.Hash)

	cfg.HashListFile, err = cmd.Flags().GetString("list")
	if err != nil {
		return nil, err
	}

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return nil, err
	}
	if format != "" {
		cfg.Algorithm, err = hashtype.Parse(format)
		if err != nil {
			return nil, fmt.Errorf("%w (run with --help to see supported formats)", err)
		}
	}

	cfg.Wordlists, err = cmd.Flags().GetStringArray("wordlist")
	if err != nil {
		return nil, err
	}

	cfg.WordlistDir, err = cmd.Flags().GetString("wordlist-dir")
	if err != nil {
		return nil, err
	}

	cfg.ReadBufferSize, err = cmd.Flags().GetInt("buffer-size")
	if err != nil {
		return nil, err
	}

	cfg.Workers, err = cmd.Flags().GetInt("workers")
	if err != nil {
		return nil, err
	}

	cfg.ChunkSize, err = cmd.Flags().GetInt("chunk-size")
	if err != nil {
		return nil, err
	}

	cfg.BatchSize, err = cmd.Flags().GetInt("batch")
	if err != nil {
		return nil, err
	}

	noPotfile, err := cmd.Flags().GetBool("no-potfile")
	if err != nil {
		return nil, err
	}
	cfg.UsePotfile = !noPotfile

	dbDir, err := cmd.Flags().GetString("db-dir")
	if err != nil {
		return nil, err
	}
	if dbDir != "" {
		cfg.DBDir = dbDir
	}

	cfg.JSONReport, err = cmd.Flags().GetBool("json")
	if err != nil {
		return nil, err
	}

	cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown")
	if err != nil {
		return nil, err
	}

	cfg.ReportFile, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}

	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// If user explicitly specified a config file path, error if not found.
	// If no path specified, silently continue without one.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)

	if configPath != "" {
		file, err := config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		if err := file.Apply(cfg, cmd.Flags().Changed); err != nil {
			return nil, fmt.Errorf("config file %s: %w", configPath, err)
		}
	} else if explicitConfigPath {
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	}

	cfg.Verbose = getVerboseFlag(cmd)
	cfg.Quiet = getQuietFlag(cmd)

	return cfg, nil
}

// setupLogger creates a structured logger that masks recovered plaintexts.
func setupLogger(w io.Writer, verbose bool) *slog.Logger {
	return log.NewSecureLogger(w, verbose)
}

// runCrack resolves wordlists, opens the potfile and cracks either the
// single hash or every hash in the list file.
func runCrack(ctx context.Context, cmd *cobra.Command, cfg *config.Config, logger *slog.Logger) error {
	stderr := cmd.ErrOrStderr()

	var jobs []pipeline.Job
	if cfg.HashListFile != "" {
		hashes, err := readHashList(cfg.HashListFile)
		if err != nil {
			return err
		}
		for _, h := range hashes {
			jobs = append(jobs, newJob(cfg, h))
		}
	} else {
		job := newJob(cfg, cfg.Hash)
		if hashtype.IsUnknown(job.Algorithms) {
			return fmt.Errorf("%w: could not detect hash type, specify one with -f/--format",
				pipeline.ErrUndetectedAlgorithm)
		}
		jobs = append(jobs, job)
	}

	paths, err := resolveWordlists(cfg, stderr)
	if err != nil {
		return err
	}

	sources := make([]wordlist.Source, len(paths))
	for i, p := range paths {
		sources[i] = wordlist.NewFileSource(p, wordlist.WithBufferSize(cfg.ReadBufferSize))
	}

	eng := engine.New(
		engine.WithWorkers(cfg.Workers),
		engine.WithChunkSize(cfg.ChunkSize),
		engine.WithLogger(logger),
	)

	var pot *potfile.Potfile
	if cfg.UsePotfile {
		pot, err = potfile.Open(cfg.DBDir, potfile.DefaultOptions())
		if err != nil {
			logger.Warn("potfile unavailable, continuing without it", "dir", cfg.DBDir, "error", err)
		} else {
			defer pot.Close()
			logger.Debug("potfile opened", "path", pot.Path())
		}
	}

	if cfg.HashListFile != "" {
		return runBatchCrack(ctx, cmd, cfg, eng, sources, pot, jobs, logger)
	}
	return runSingleCrack(ctx, cmd, cfg, eng, sources, pot, jobs[0], logger)
}

// newJob builds a job using the configured algorithm or preference order.
func newJob(cfg *config.Config, hash string) pipeline.Job {
	algorithms, detected := cfg.Algorithms(hash)
	return pipeline.Job{
		Hash:       hash,
		Algorithms: algorithms,
		Detected:   detected,
	}
}

// newPipeline assembles the crack pipeline for one hash.
func newPipeline(eng *engine.Engine, sources []wordlist.Source, pot *potfile.Potfile, logger *slog.Logger, onAttempt func(model.Attempt)) *pipeline.Pipeline {
	opts := []pipeline.DefaultPipelineOption{
		pipeline.WithPipelineAttemptCallback(onAttempt),
	}
	if pot != nil {
		opts = append(opts, pipeline.WithPipelinePotfile(pot))
	}
	return pipeline.DefaultPipeline(eng, sources, []pipeline.Option{pipeline.WithLogger(logger)}, opts...)
}

// runSingleCrack cracks one hash and writes its report.
func runSingleCrack(
	ctx context.Context,
	cmd *cobra.Command,
	cfg *config.Config,
	eng *engine.Engine,
	sources []wordlist.Source,
	pot *potfile.Potfile,
	job pipeline.Job,
	logger *slog.Logger,
) error {
	stderr := cmd.ErrOrStderr()

	var onAttempt func(model.Attempt)
	if !cfg.Quiet {
		fmt.Fprintf(stderr, "[*] Cracking %s as %s...\n", job.Hash, joinAlgorithms(job.Algorithms))
		onAttempt = func(a model.Attempt) {
			printAttempt(stderr, a)
		}
	}

	crackReport := job.Report()
	execErr := newPipeline(eng, sources, pot, logger, onAttempt).Execute(ctx, crackReport)
	if execErr != nil {
		logger.Error("crack failed", "hash", job.Hash, "error", execErr)
	}

	if err := outputReport(cmd, cfg, func(w report.Writer) error {
		_, err := w.Write(crackReport)
		return err
	}); err != nil {
		logger.Error("report failed", "hash", job.Hash, "error", err)
	}

	saveCrackReport(ctx, pot, crackReport, logger)

	return execErr
}

// runBatchCrack cracks every job with a BatchProcessor and writes a batch
// report once all of them finished.
func runBatchCrack(
	ctx context.Context,
	cmd *cobra.Command,
	cfg *config.Config,
	eng *engine.Engine,
	sources []wordlist.Source,
	pot *potfile.Potfile,
	jobs []pipeline.Job,
	logger *slog.Logger,
) error {
	stderr := cmd.ErrOrStderr()

	if !cfg.Quiet {
		fmt.Fprintf(stderr, "[*] Cracking %d hashes (concurrency: %d)...\n", len(jobs), cfg.BatchSize)
	}

	// Every job scans the same wordlists, so read them once up front.
	shared := preloadSources(sources, logger)

	bp := pipeline.NewBatchProcessor(
		func() *pipeline.Pipeline {
			return newPipeline(eng, shared, pot, logger, nil)
		},
		pipeline.WithConcurrency(cfg.BatchSize),
		pipeline.WithBatchLogger(logger),
	)

	var mu sync.Mutex
	reports := make([]*model.CrackReport, len(jobs))
	err := bp.ProcessBatchWithCallback(ctx, jobs, func(r *model.CrackReport, index int) {
		mu.Lock()
		defer mu.Unlock()

		reports[index] = r
		if !cfg.Quiet {
			fmt.Fprintf(stderr, "[%d/%d] %s  %s\n", index+1, len(jobs), r.Hash, r.Status)
		}
		saveCrackReport(ctx, pot, r, logger)
	})

	if outErr := outputReport(cmd, cfg, func(w report.Writer) error {
		_, err := w.WriteBatch(reports)
		return err
	}); outErr != nil {
		logger.Error("report failed", "error", outErr)
	}

	return err
}

// preloadSources reads every source into memory. A source that fails to
// load is kept as-is so each job records the failure in its report.
func preloadSources(sources []wordlist.Source, logger *slog.Logger) []wordlist.Source {
	out := make([]wordlist.Source, len(sources))
	for i, src := range sources {
		mem, err := wordlist.Preload(src)
		if err != nil {
			logger.Warn("wordlist unreadable", "wordlist", src.Name(), "error", err)
			out[i] = src
			continue
		}
		out[i] = mem
	}
	return out
}

// resolveWordlists returns the wordlist paths to scan, printing the same
// notices a user would want to see when a path had to be guessed.
func resolveWordlists(cfg *config.Config, stderr io.Writer) ([]string, error) {
	if len(cfg.Wordlists) > 0 {
		paths := make([]string, 0, len(cfg.Wordlists))
		for _, w := range cfg.Wordlists {
			resolved, fallback, err := wordlist.Resolve(w, cfg.WordlistDir)
			if err != nil {
				return nil, err
			}
			if fallback && !cfg.Quiet {
				fmt.Fprintf(stderr, "[!] '%s' not found directly, using %s instead.\n", w, resolved)
			}
			paths = append(paths, resolved)
		}
		return paths, nil
	}

	d, err := wordlist.Discover(cfg.WordlistDir)
	if d != nil && d.RockyouArchived && !cfg.Quiet {
		fmt.Fprintf(stderr, "[!] %s detected but %s is missing.\n", wordlist.RockyouArchive, wordlist.RockyouWordlist)
		fmt.Fprintf(stderr, "[!] Tip: cd %s && unzip %s  to unlock it.\n", cfg.WordlistDir, wordlist.RockyouArchive)
	}
	if err != nil {
		if errors.Is(err, wordlist.ErrNoWordlistDir) {
			return nil, fmt.Errorf("%w (use -w to specify a wordlist)", err)
		}
		return nil, err
	}
	return d.Paths, nil
}

// readHashList reads one hash per line. Blank lines and lines starting with
// '#' are skipped.
func readHashList(path string) ([]string, error) {
	f, err := os.Open(path) //nolint:gosec // User-provided hash list path is intentional
	if err != nil {
		return nil, fmt.Errorf("failed to open hash list: %w", err)
	}
	defer f.Close()

	var hashes []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		hashes = append(hashes, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read hash list: %w", err)
	}
	if len(hashes) == 0 {
		return nil, fmt.Errorf("hash list %s is empty", path)
	}
	return hashes, nil
}

// printAttempt prints a progress line for a finished attempt.
func printAttempt(w io.Writer, a model.Attempt) {
	switch {
	case a.Error != "":
		fmt.Fprintf(w, "[!] %s (%s): %s\n", filepath.Base(a.Wordlist), a.Algorithm, a.Error)
	case a.Found:
		fmt.Fprintf(w, "[+] %s (%s): match after %d candidates\n", filepath.Base(a.Wordlist), a.Algorithm, a.Candidates)
	default:
		fmt.Fprintf(w, "[~] %s (%s): %d candidates, no match\n", filepath.Base(a.Wordlist), a.Algorithm, a.Candidates)
	}
}

func joinAlgorithms(types []hashtype.HashType) string {
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = t.String()
	}
	return strings.Join(names, ", ")
}

// newReportWriter returns the writer for the configured report format.
func newReportWriter(cfg *config.Config, output io.Writer) report.Writer {
	switch {
	case cfg.JSONReport:
		return report.NewJSONWriter(output, report.WithPrettyPrint(), report.WithVersion(getVersion()))
	case cfg.MarkdownReport:
		return report.NewMarkdownWriter(output)
	default:
		return report.NewSimpleWriter(output, report.WithVerbose(cfg.Verbose))
	}
}

// outputReport opens the report destination and hands the matching writer
// to write.
func outputReport(cmd *cobra.Command, cfg *config.Config, write func(report.Writer) error) error {
	output := cmd.OutOrStdout()
	if cfg.ReportFile != "" {
		dir := filepath.Dir(cfg.ReportFile)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}

		// Reports contain recovered plaintexts, so only the owner may read them.
		f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		output = f
	}

	return write(newReportWriter(cfg, output))
}

// saveCrackReport stores the report in the potfile history. If pot is nil,
// this function is a no-op.
func saveCrackReport(ctx context.Context, pot *potfile.Potfile, r *model.CrackReport, logger *slog.Logger) {
	if pot == nil || r == nil {
		return
	}
	// A cancelled run still deserves a history row.
	if err := pot.SaveReport(context.WithoutCancel(ctx), r); err != nil {
		logger.Error("failed to save crack report", "hash", r.Hash, "error", err)
		return
	}
	logger.Debug("crack report saved to potfile", "hash", r.Hash)
}
