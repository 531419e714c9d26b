package report

import (
	"encoding/json"
	"io"

	"github.com/nao1215/hashripper/internal/model"
)

// JSONWriter outputs reports in JSON format.
type JSONWriter struct {
	baseWriter

	// indent enables pretty-printed JSON output.
	indent bool

	// indentPrefix is the prefix for each line in indented output.
	indentPrefix string

	// indentString is the indentation string (typically "  " or "\t").
	indentString string

	// version is written alongside every report.
	version string
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithIndent enables pretty-printed JSON output.
func WithIndent(prefix, indent string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
		w.indentPrefix = prefix
		w.indentString = indent
	}
}

// WithPrettyPrint is WithIndent("", "  ").
func WithPrettyPrint() JSONWriterOption {
	return WithIndent("", "  ")
}

// WithVersion sets the tool version recorded in the output.
func WithVersion(version string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.version = version
	}
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// JSONReport wraps a single report with tool metadata.
type JSONReport struct {
	// Version is the hashripper version that produced the report.
	Version string `json:"version,omitempty"`

	// Report is the crack report.
	Report *model.CrackReport `json:"report"`

	// CandidatesTried is the number of candidates hashed across all
	// successful attempts.
	CandidatesTried int `json:"candidates_tried"`
}

// JSONBatch wraps the reports of a batch run.
type JSONBatch struct {
	Version string               `json:"version,omitempty"`
	Summary Summary              `json:"summary"`
	Reports []*model.CrackReport `json:"reports"`
}

// Write outputs one report wrapped in JSONReport.
func (w *JSONWriter) Write(report *model.CrackReport) (int, error) {
	return w.writeJSON(&JSONReport{
		Version:         w.version,
		Report:          report,
		CandidatesTried: report.CandidatesTried(),
	})
}

// WriteBatch outputs a JSONBatch. Nil reports are dropped from the list but
// still counted in the summary.
func (w *JSONWriter) WriteBatch(reports []*model.CrackReport) (int, error) {
	kept := make([]*model.CrackReport, 0, len(reports))
	for _, r := range reports {
		if r != nil {
			kept = append(kept, r)
		}
	}
	return w.writeJSON(&JSONBatch{
		Version: w.version,
		Summary: Summarize(reports),
		Reports: kept,
	})
}

// writeJSON marshals v and writes it with a trailing newline.
func (w *JSONWriter) writeJSON(v any) (int, error) {
	var (
		data []byte
		err  error
	)

	if w.indent {
		data, err = json.MarshalIndent(v, w.indentPrefix, w.indentString)
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return 0, err
	}

	data = append(data, '\n')

	return w.output.Write(data)
}
