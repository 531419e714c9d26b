package report

import (
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/hashripper/internal/model"
	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"
)

// MarkdownWriter outputs reports in Markdown format using GitHub-flavored
// alerts for the outcome.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs a single report in Markdown format.
func (w *MarkdownWriter) Write(report *model.CrackReport) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Hashripper Report")
	md.PlainText("")

	w.writeOverview(md, report)
	w.writeOutcome(md, report)
	w.writeAttempts(md, report)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// WriteBatch outputs a batch summary with a pie chart of outcomes and a
// table of every hash.
func (w *MarkdownWriter) WriteBatch(reports []*model.CrackReport) (int, error) {
	md := markdown.NewMarkdown(w.output)
	s := Summarize(reports)

	md.H1("Hashripper Batch Report")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Outcome", "Count"},
		Rows: [][]string{
			{"✅ Cracked", strconv.Itoa(s.Cracked)},
			{"❌ Not found", strconv.Itoa(s.NotFound)},
			{"⚠️ Failed", strconv.Itoa(s.Failed)},
			{"⏹️ Cancelled", strconv.Itoa(s.Cancelled + s.Skipped)},
			{"**Total**", "**" + strconv.Itoa(s.Total) + "**"},
		},
	})
	md.PlainText("")

	if s.Total > 0 {
		w.writePieChart(md, s)
	}

	switch {
	case s.Total > 0 && s.Cracked == s.Total:
		md.Tip("Every hash was cracked.")
	case s.Failed > 0:
		md.Warningf("%d hash(es) could not be searched completely. Check the wordlists.", s.Failed)
	case s.Cracked == 0:
		md.Note("No hash was cracked.")
	default:
		md.Importantf("%d of %d hash(es) cracked.", s.Cracked, s.Total)
	}
	md.PlainText("")

	md.H2("Results")
	md.PlainText("")

	rows := make([][]string, 0, len(reports))
	for _, r := range reports {
		if r == nil {
			continue
		}
		rows = append(rows, []string{
			"`" + r.Hash + "`",
			r.Status.String(),
			orDash(algorithmOrEmpty(r)),
			orDash(codeOrEmpty(r.Plaintext)),
			orDash(r.Wordlist),
		})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Hash", "Status", "Algorithm", "Plaintext", "Wordlist"},
		Rows:   rows,
	})
	md.PlainText("")

	w.writeFooter(md)

	return len(md.String()), md.Build()
}

func (w *MarkdownWriter) writeOverview(md *markdown.Markdown, report *model.CrackReport) {
	format := algorithmList(report.Algorithms)
	if report.Detected {
		format += " (detected)"
	}

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Hash", "`" + report.Hash + "`"},
			{"Format", format},
			{"Wordlists", orDash(strings.Join(report.Wordlists, ", "))},
			{"Started", report.DateStarted.Format("2006-01-02 15:04:05 MST")},
			{"Elapsed", roundDuration(report.Elapsed).String()},
			{"Candidates Tried", strconv.Itoa(report.CandidatesTried())},
			{"Status", report.Status.String()},
		},
	})
	md.PlainText("")
}

func (w *MarkdownWriter) writeOutcome(md *markdown.Markdown, report *model.CrackReport) {
	switch report.Status {
	case model.StatusCracked:
		source := report.Wordlist
		if report.FromPotfile {
			source = "the potfile"
		}
		md.Tip("Cracked as " + report.Algorithm.String() + ": `" + report.Plaintext + "` (from " + source + ")")
	case model.StatusNotFound:
		md.Note("Password not found in any wordlist.")
	case model.StatusFailed:
		md.Warningf("Password not found, and %d attempt(s) failed. The search was incomplete.",
			len(report.FailedAttempts()))
	case model.StatusCancelled:
		md.Cautionf("Cancelled after %s.", roundDuration(report.Elapsed))
	default:
		md.Importantf("Status: %s", report.Status)
	}
	md.PlainText("")
}

func (w *MarkdownWriter) writeAttempts(md *markdown.Markdown, report *model.CrackReport) {
	if len(report.Attempts) == 0 {
		return
	}

	md.H2("Attempts")
	md.PlainText("")

	rows := make([][]string, len(report.Attempts))
	for i, a := range report.Attempts {
		result := "no match"
		switch {
		case a.Error != "":
			result = "error"
		case a.Found:
			result = "**match**"
		}
		rows[i] = []string{
			a.Wordlist,
			a.Algorithm.String(),
			strconv.Itoa(a.Candidates),
			roundDuration(a.Elapsed).String(),
			result,
		}
	}

	md.Table(markdown.TableSet{
		Header: []string{"Wordlist", "Algorithm", "Candidates", "Elapsed", "Result"},
		Rows:   rows,
	})
	md.PlainText("")

	for _, a := range report.FailedAttempts() {
		md.Details(a.Wordlist+" / "+a.Algorithm.String(), a.Error)
	}
}

// writePieChart writes a mermaid pie chart of batch outcomes.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, s Summary) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Batch Outcomes"),
		piechart.WithShowData(true),
	)

	if s.Cracked > 0 {
		chart.LabelAndIntValue("Cracked", uint64(s.Cracked))
	}
	if s.NotFound > 0 {
		chart.LabelAndIntValue("Not found", uint64(s.NotFound))
	}
	if s.Failed > 0 {
		chart.LabelAndIntValue("Failed", uint64(s.Failed))
	}
	if n := s.Cancelled + s.Skipped; n > 0 {
		chart.LabelAndIntValue("Cancelled", uint64(n))
	}

	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Report generated by [hashripper](https://github.com/nao1215/hashripper)*")
}

func algorithmOrEmpty(r *model.CrackReport) string {
	if !r.Cracked() {
		return ""
	}
	return r.Algorithm.String()
}

func codeOrEmpty(s string) string {
	if s == "" {
		return ""
	}
	return "`" + s + "`"
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
