package main

import (
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/nao1215/hashripper/internal/digest"
	"github.com/nao1215/hashripper/internal/hashtype"
	"github.com/spf13/cobra"
)

// NewHashCmd creates the hash command.
func NewHashCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hash <word>",
		Short: "Compute the digest of a word",
		Long: `Hash prints the digest of a word under every supported algorithm, or only
under the one selected with -f/--format. It is handy for building test hashes.

Examples:
  hashripper hash password
  hashripper hash -f ntlm password`,
		Args: cobra.ExactArgs(1),
		RunE: runHashCmd,
	}

	cmd.Flags().StringP("format", "f", "", "Hash algorithm (default: all)")

	return cmd
}

// runHashCmd executes the hash command.
func runHashCmd(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}

	word := []byte(args[0])
	out := cmd.OutOrStdout()

	if format != "" {
		ht, err := hashtype.Parse(format)
		if err != nil {
			return fmt.Errorf("%w (run with --help to see supported formats)", err)
		}
		sum, err := digest.Sum(ht, word)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, hex.EncodeToString(sum))
		return nil
	}

	for _, ht := range hashtype.All() {
		sum, err := digest.Sum(ht, word)
		switch {
		case errors.Is(err, digest.ErrUnsupported):
			fmt.Fprintf(out, "%-10s unsupported\n", ht)
		case err != nil:
			return fmt.Errorf("%s: %w", ht, err)
		default:
			fmt.Fprintf(out, "%-10s %s\n", ht, hex.EncodeToString(sum))
		}
	}
	return nil
}
