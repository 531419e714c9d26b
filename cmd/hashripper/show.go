package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/nao1215/hashripper/internal/config"
	"github.com/nao1215/hashripper/internal/potfile"
	"github.com/spf13/cobra"
)

// defaultReportLimit is the number of runs listed by show --reports.
const defaultReportLimit = 20

// NewShowCmd creates the show command.
// This command displays recovered plaintexts and crack history stored in the potfile.
func NewShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show [hash]",
		Short: "Show recovered plaintexts and crack history",
		Long: `Show displays what the potfile knows.

Without arguments every recovered hash is listed. With a hash, its plaintext
(if known) and the history of crack runs for it are shown.

Examples:
  # List every recovered hash
  hashripper show

  # Show the plaintext and run history of one hash
  hashripper show 0df70868a807d1cc89c11a41eb5b876f

  # List the most recent crack runs
  hashripper show --reports --limit 5

  # Print a stored run as Markdown
  hashripper show --id 3 --markdown

  # Remove a hash from the potfile
  hashripper show --forget 0df70868a807d1cc89c11a41eb5b876f`,
		Args: cobra.MaximumNArgs(1),
		RunE: runShowCmd,
	}

	cmd.Flags().BoolP("reports", "r", false,
		"List recent crack runs")
	cmd.Flags().IntP("limit", "n", defaultReportLimit,
		"Maximum number of runs listed with --reports (0 for all)")
	cmd.Flags().Int64P("id", "i", 0,
		"Print the stored report with this ID (use --reports to see IDs)")
	cmd.Flags().String("forget", "",
		"Delete the stored plaintext of a hash")

	cmd.Flags().BoolP("json", "j", false,
		"Output in JSON format")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output a stored report in Markdown format (with --id)")
	cmd.Flags().String("db-dir", "",
		"Directory holding the potfile (default: XDG data directory)")

	return cmd
}

// runShowCmd executes the show command.
func runShowCmd(cmd *cobra.Command, args []string) error {
	dbDir, err := cmd.Flags().GetString("db-dir")
	if err != nil {
		return err
	}
	if dbDir == "" {
		dbDir = config.XDGDataDir()
	}

	jsonOutput, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}
	markdownOutput, err := cmd.Flags().GetBool("markdown")
	if err != nil {
		return err
	}
	if jsonOutput && markdownOutput {
		return config.ErrConflictingReportFormats
	}

	out := cmd.OutOrStdout()

	pot, err := potfile.Open(dbDir, potfile.Options{CreateIfNotExists: false, EnableWAL: true})
	if errors.Is(err, potfile.ErrNotFound) {
		fmt.Fprintf(out, "No potfile found in %s\n", dbDir)
		fmt.Fprintln(out, "\nUse 'hashripper crack <hash>' to crack a hash first.")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to open potfile: %w", err)
	}
	defer pot.Close()

	ctx := context.Background()

	forget, err := cmd.Flags().GetString("forget")
	if err != nil {
		return err
	}
	if forget != "" {
		n, err := pot.Forget(ctx, forget)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Removed %d stored plaintext(s) for %s\n", n, forget)
		return nil
	}

	id, err := cmd.Flags().GetInt64("id")
	if err != nil {
		return err
	}
	if id != 0 {
		return showStoredReport(ctx, out, pot, id, jsonOutput, markdownOutput)
	}

	listReports, err := cmd.Flags().GetBool("reports")
	if err != nil {
		return err
	}
	if listReports {
		limit, err := cmd.Flags().GetInt("limit")
		if err != nil {
			return err
		}
		return listCrackReports(ctx, out, pot, limit, jsonOutput)
	}

	if len(args) == 1 {
		return showHash(ctx, out, pot, strings.TrimSpace(args[0]), jsonOutput)
	}

	return listRecovered(ctx, out, pot, jsonOutput)
}

// listRecovered lists every recovered plaintext.
func listRecovered(ctx context.Context, out io.Writer, pot *potfile.Potfile, jsonOutput bool) error {
	recovered, err := pot.ListRecovered(ctx)
	if err != nil {
		return err
	}

	if jsonOutput {
		return writeIndentedJSON(out, recovered)
	}

	if len(recovered) == 0 {
		fmt.Fprintln(out, "No recovered plaintexts in the potfile.")
		return nil
	}

	fmt.Fprintf(out, "Recovered plaintexts (%d):\n\n", len(recovered))
	for _, rec := range recovered {
		fmt.Fprintf(out, "  %s  %-9s  %s\n", rec.Hash, rec.Algorithm, rec.Plaintext)
	}
	return nil
}

// showHash prints the plaintext and run history of a single hash.
func showHash(ctx context.Context, out io.Writer, pot *potfile.Potfile, hash string, jsonOutput bool) error {
	rec, err := pot.Lookup(ctx, hash, nil)
	if err != nil {
		return err
	}
	history, err := pot.GetHistory(ctx, hash)
	if err != nil {
		return err
	}

	if jsonOutput {
		return writeIndentedJSON(out, map[string]any{
			"recovered": rec,
			"history":   history,
		})
	}

	if rec != nil {
		fmt.Fprintf(out, "[+] %s  %s  %s\n", rec.Hash, rec.Algorithm, rec.Plaintext)
	} else {
		fmt.Fprintf(out, "[-] %s  not recovered\n", hash)
	}

	if len(history) == 0 {
		fmt.Fprintln(out, "\nNo crack runs recorded for this hash.")
		return nil
	}

	fmt.Fprintf(out, "\nCrack history (%d runs):\n\n", len(history))
	fmt.Fprintf(out, "  %-20s  %-10s  %-10s  %s\n", "Date", "Status", "Elapsed", "Candidates")
	fmt.Fprintln(out, "  "+strings.Repeat("-", 56))
	for _, r := range history {
		fmt.Fprintf(out, "  %-20s  %-10s  %-10s  %d\n",
			r.DateStarted.Format("2006-01-02 15:04:05"),
			r.Status,
			r.Elapsed.Round(time.Millisecond),
			r.CandidatesTried(),
		)
	}
	return nil
}

// listCrackReports lists the most recent crack runs.
func listCrackReports(ctx context.Context, out io.Writer, pot *potfile.Potfile, limit int, jsonOutput bool) error {
	reports, err := pot.ListReports(ctx, limit)
	if err != nil {
		return err
	}

	if jsonOutput {
		return writeIndentedJSON(out, reports)
	}

	if len(reports) == 0 {
		fmt.Fprintln(out, "No crack runs recorded.")
		return nil
	}

	fmt.Fprintf(out, "Recent crack runs (%d):\n\n", len(reports))
	fmt.Fprintf(out, "  %-6s  %-20s  %-10s  %s\n", "ID", "Date", "Status", "Hash")
	fmt.Fprintln(out, "  "+strings.Repeat("-", 70))
	for _, meta := range reports {
		fmt.Fprintf(out, "  %-6d  %-20s  %-10s  %s\n",
			meta.ID,
			meta.Timestamp.Format("2006-01-02 15:04:05"),
			meta.Status,
			meta.Hash,
		)
	}
	fmt.Fprintln(out, "\nUse 'hashripper show --id <ID>' to print a stored report.")
	return nil
}

// showStoredReport re-renders a stored report with the regular writers.
func showStoredReport(ctx context.Context, out io.Writer, pot *potfile.Potfile, id int64, jsonOutput, markdownOutput bool) error {
	r, err := pot.GetReportByID(ctx, id)
	if err != nil {
		return err
	}
	if r == nil {
		return fmt.Errorf("no stored report with ID %d", id)
	}

	cfg := config.NewConfig()
	cfg.JSONReport = jsonOutput
	cfg.MarkdownReport = markdownOutput
	_, err = newReportWriter(cfg, out).Write(r)
	return err
}

func writeIndentedJSON(out io.Writer, v any) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
