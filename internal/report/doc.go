// Package report renders crack reports.
//
// Writers for each output format:
//   - SimpleWriter: human-readable text for the terminal
//   - JSONWriter: structured JSON for scripting
//   - MarkdownWriter: Markdown for sharing results
//
// Every writer handles a single report and a batch of reports. Writers
// implement the Writer interface, so they can be swapped or combined with
// MultiWriter.
package report
