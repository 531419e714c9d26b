package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/nao1215/hashripper/internal/hashtype"
	"github.com/nao1215/hashripper/internal/model"
)

// SimpleWriter outputs human-readable text reports using the familiar
// "[*]", "[+]", "[-]" line prefixes.
type SimpleWriter struct {
	baseWriter

	// verbose lists every (wordlist, algorithm) attempt.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithVerbose enables verbose output with one line per attempt.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs a single report.
func (w *SimpleWriter) Write(report *model.CrackReport) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, report)
	if w.verbose {
		w.writeAttempts(&sb, report)
	}
	w.writeOutcome(&sb, report)
	w.writeFooter(&sb, report)

	return io.WriteString(w.output, sb.String())
}

// WriteBatch outputs one line per report followed by totals.
func (w *SimpleWriter) WriteBatch(reports []*model.CrackReport) (int, error) {
	var sb strings.Builder

	for _, r := range reports {
		if r == nil {
			continue
		}
		switch r.Status {
		case model.StatusCracked:
			fmt.Fprintf(&sb, "[+] %s  %-9s  %s\n", r.Hash, r.Algorithm, r.Plaintext)
		case model.StatusNotFound:
			fmt.Fprintf(&sb, "[-] %s  not found\n", r.Hash)
		default:
			fmt.Fprintf(&sb, "[!] %s  %s", r.Hash, strings.ToLower(r.Status.String()))
			if r.ErrorMessage != "" {
				fmt.Fprintf(&sb, ": %s", r.ErrorMessage)
			}
			sb.WriteString("\n")
		}
	}

	s := Summarize(reports)
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "[*] Cracked   : %d/%d\n", s.Cracked, s.Total)
	if s.NotFound > 0 {
		fmt.Fprintf(&sb, "[*] Not found : %d\n", s.NotFound)
	}
	if s.Failed > 0 {
		fmt.Fprintf(&sb, "[*] Failed    : %d\n", s.Failed)
	}
	if s.Cancelled+s.Skipped > 0 {
		fmt.Fprintf(&sb, "[*] Cancelled : %d\n", s.Cancelled+s.Skipped)
	}

	return io.WriteString(w.output, sb.String())
}

func (w *SimpleWriter) writeHeader(sb *strings.Builder, report *model.CrackReport) {
	fmt.Fprintf(sb, "[*] Hash   : %s\n", report.Hash)
	format := algorithmList(report.Algorithms)
	if report.Detected {
		format += " (detected)"
	}
	fmt.Fprintf(sb, "[*] Format : %s\n", format)
	if len(report.Wordlists) > 0 {
		fmt.Fprintf(sb, "[*] Wordlists: %s\n", strings.Join(report.Wordlists, ", "))
	}
	sb.WriteString("\n")
}

func (w *SimpleWriter) writeAttempts(sb *strings.Builder, report *model.CrackReport) {
	if len(report.Attempts) == 0 {
		return
	}
	for _, a := range report.Attempts {
		if a.Error != "" {
			fmt.Fprintf(sb, "[~] %s / %s: %s\n", a.Wordlist, a.Algorithm, a.Error)
			continue
		}
		fmt.Fprintf(sb, "[~] %s / %s: %d candidates in %s", a.Wordlist, a.Algorithm, a.Candidates, roundDuration(a.Elapsed))
		if a.Found {
			sb.WriteString(" (match)")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
}

func (w *SimpleWriter) writeOutcome(sb *strings.Builder, report *model.CrackReport) {
	switch report.Status {
	case model.StatusCracked:
		sb.WriteString("[+] Hash cracked!\n")
		fmt.Fprintf(sb, "[+] Algorithm : %s\n", report.Algorithm)
		fmt.Fprintf(sb, "[+] Password  : %s\n", report.Plaintext)
		if report.FromPotfile {
			sb.WriteString("[+] Source    : potfile\n")
		} else {
			fmt.Fprintf(sb, "[+] Wordlist  : %s\n", report.Wordlist)
		}
	case model.StatusNotFound:
		sb.WriteString("[-] Password not found in any wordlist.\n")
	case model.StatusFailed:
		sb.WriteString("[-] Password not found, but the search was incomplete.\n")
		for _, a := range report.FailedAttempts() {
			fmt.Fprintf(sb, "[-] %s / %s: %s\n", a.Wordlist, a.Algorithm, a.Error)
		}
		if len(report.FailedAttempts()) == 0 && report.ErrorMessage != "" {
			fmt.Fprintf(sb, "[-] %s\n", report.ErrorMessage)
		}
	case model.StatusCancelled:
		sb.WriteString("[!] Cancelled before the search finished.\n")
	default:
		fmt.Fprintf(sb, "[?] %s\n", report.Status)
	}
}

func (w *SimpleWriter) writeFooter(sb *strings.Builder, report *model.CrackReport) {
	sb.WriteString("\n")
	if tried := report.CandidatesTried(); tried > 0 {
		fmt.Fprintf(sb, "[*] Candidates tried: %d\n", tried)
	}
	fmt.Fprintf(sb, "[*] Time elapsed: %s\n", roundDuration(report.Elapsed))
}

// algorithmList joins algorithm names with commas.
func algorithmList(types []hashtype.HashType) string {
	if len(types) == 0 {
		return "-"
	}
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = t.String()
	}
	return strings.Join(names, ", ")
}

// roundDuration rounds d to a precision that reads well on a terminal.
func roundDuration(d time.Duration) time.Duration {
	switch {
	case d >= time.Second:
		return d.Round(10 * time.Millisecond)
	case d >= time.Millisecond:
		return d.Round(10 * time.Microsecond)
	default:
		return d
	}
}
