package report

import (
	"io"

	"github.com/nao1215/hashripper/internal/model"
)

// Writer defines the interface for report output.
type Writer interface {
	// Write outputs a single crack report.
	// Returns the number of bytes written and any error encountered.
	Write(report *model.CrackReport) (int, error)

	// WriteBatch outputs the reports of a batch run, in order. Nil
	// entries belong to jobs that never ran and are skipped.
	WriteBatch(reports []*model.CrackReport) (int, error)
}

// MultiWriter writes to multiple Writers in turn.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write outputs the report to all configured Writers.
// Stops on first error encountered.
func (m *MultiWriter) Write(report *model.CrackReport) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.Write(report)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// WriteBatch outputs the batch to all configured Writers.
func (m *MultiWriter) WriteBatch(reports []*model.CrackReport) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.WriteBatch(reports)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}

// Summary counts batch outcomes by status.
type Summary struct {
	Total     int `json:"total"`
	Cracked   int `json:"cracked"`
	NotFound  int `json:"not_found"`
	Failed    int `json:"failed"`
	Cancelled int `json:"cancelled"`
	Skipped   int `json:"skipped"`
}

// Summarize counts reports by status. Nil and pending reports are counted
// as skipped.
func Summarize(reports []*model.CrackReport) Summary {
	s := Summary{Total: len(reports)}
	for _, r := range reports {
		if r == nil {
			s.Skipped++
			continue
		}
		switch r.Status {
		case model.StatusCracked:
			s.Cracked++
		case model.StatusNotFound:
			s.NotFound++
		case model.StatusFailed:
			s.Failed++
		case model.StatusCancelled:
			s.Cancelled++
		default:
			s.Skipped++
		}
	}
	return s
}
