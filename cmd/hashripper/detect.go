package main

import (
	"fmt"
	"strings"

	"github.com/nao1215/hashripper/internal/hashtype"
	"github.com/nao1215/hashripper/internal/pipeline"
	"github.com/spf13/cobra"
)

// detectResult is the JSON form of the detect command output.
type detectResult struct {
	Hash       string              `json:"hash"`
	Candidates []hashtype.HashType `json:"candidates"`
}

// NewDetectCmd creates the detect command.
func NewDetectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "detect <hash>",
		Short: "Show which algorithms could have produced a hash",
		Long: `Detect lists the algorithms whose digest length matches the hash, in the
order crack would try them. Nothing is cracked.

Examples:
  hashripper detect 0df70868a807d1cc89c11a41eb5b876f
  hashripper detect --json 03e2ad3de8d21b93a4a35517d5666ed143bf63fc`,
		Args: cobra.ExactArgs(1),
		RunE: runDetectCmd,
	}

	cmd.Flags().BoolP("json", "j", false, "Output the result in JSON format")

	return cmd
}

// runDetectCmd executes the detect command.
func runDetectCmd(cmd *cobra.Command, args []string) error {
	jsonOutput, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}

	hash := strings.TrimSpace(args[0])
	candidates := hashtype.Detect(hash)
	if hashtype.IsUnknown(candidates) {
		return fmt.Errorf("%w: %q is not a hex digest of a supported length",
			pipeline.ErrUndetectedAlgorithm, hash)
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		return writeIndentedJSON(out, detectResult{Hash: hash, Candidates: candidates})
	}

	fmt.Fprintf(out, "[*] Hash   : %s\n", hash)
	fmt.Fprintf(out, "[*] Length : %d bits\n", len(hash)*4)
	fmt.Fprintln(out, "[*] Possible formats:")
	for _, t := range candidates {
		note := ""
		if !t.Supported() {
			note = "  (recognized, never matches)"
		}
		fmt.Fprintf(out, "    - %s%s\n", t, note)
	}
	return nil
}
