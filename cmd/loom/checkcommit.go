package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/loomhq/loom/internal/commitcheck"
	"github.com/loomhq/loom/internal/config"
)

var checkCommitCmd = &cobra.Command{
	Use:   "check-commit <message-file>",
	Short: "Validate a commit message header",
	Long: `Validate the header line of a commit message file against the
<type>(<scope>): <subject> grammar.

This is what the commit-msg hook installed by 'loom init' runs. The
commit type vocabulary can be overridden with commit.types in the
project config.`,
	Args: cobra.ExactArgs(1),
	RunE: runCheckCommit,
}

func runCheckCommit(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	validator := commitcheck.New(cfg.Commit.Types...)
	if err := validator.ValidateFile(args[0]); err != nil {
		fmt.Fprintf(os.Stderr, "commit rejected: %v\n", err)
		os.Exit(1)
	}
	return nil
}
