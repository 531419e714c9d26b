package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for hashripper.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hashripper",
		Short: "Dictionary-based hash cracker",
		Long: `hashripper recovers the plaintext of an unsalted hash by hashing every
candidate of a wordlist and comparing the result with the target.

Supported formats: md5, sha1, sha256, sha512, sha3-256, sha3-512, ntlm,
whirlpool. md6-256 and md6-512 are recognized but never match.

When no format is given it is detected from the hash length. Cracked
hashes are remembered in a potfile so a second run answers instantly.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().BoolP("quiet", "q", false, "Suppress the banner and progress output")

	cmd.AddCommand(NewCrackCmd())
	cmd.AddCommand(NewDetectCmd())
	cmd.AddCommand(NewHashCmd())
	cmd.AddCommand(NewShowCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
