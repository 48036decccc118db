package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/loomhq/loom/internal/changeset"
	"github.com/loomhq/loom/internal/git"
	"github.com/loomhq/loom/internal/state"
)

var syncBead string

var syncCmd = &cobra.Command{
	Use:   "sync [description-file]",
	Short: "Sync changeset facts from a bead description",
	Long: `Extract changeset facts from a bead description and reconcile them
into the session record.

Descriptions are free text; loom scans them for the fact lines agents
append (changeset.work_branch, changeset.root_branch, pr_url, pr_state).
The description is read from the given file, or stdin when omitted.

Examples:
  bd show at-7f2k --raw | loom sync --bead at-7f2k
  loom sync --bead at-7f2k description.txt`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSync,
}

func init() {
	syncCmd.Flags().StringVar(&syncBead, "bead", "", "Bead id whose session to update (required)")
	syncCmd.MarkFlagRequired("bead")
}

func runSync(cmd *cobra.Command, args []string) error {
	green := color.New(color.FgGreen).SprintFunc()

	var text []byte
	var err error
	if len(args) > 0 {
		text, err = os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read description: %w", err)
		}
	} else {
		text, err = io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("read description from stdin: %w", err)
		}
	}

	fields := changeset.ExtractAll(string(text))

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}
	repoRoot, err := git.NewRunner(cwd).RepoRoot()
	if err != nil {
		return err
	}
	db, err := state.OpenProject(repoRoot)
	if err != nil {
		return err
	}
	defer db.Close()

	session, err := db.GetSessionByBead(syncBead)
	if err != nil {
		return err
	}
	if session == nil {
		return fmt.Errorf("no session for bead %q; run 'loom start' first", syncBead)
	}

	if err := db.ApplyChangesetFields(session.ID, fields); err != nil {
		return err
	}

	fmt.Printf("%s synced session %s from bead %s\n", green("✓"), session.ID, syncBead)
	printField := func(name, value string) {
		if value == "" {
			fmt.Printf("  %-13s (absent)\n", name+":")
			return
		}
		fmt.Printf("  %-13s %s\n", name+":", value)
	}
	printField("work_branch", fields.WorkBranch)
	printField("root_branch", fields.RootBranch)
	printField("pr_url", fields.PRURL)
	printField("pr_state", fields.ReviewState)
	return nil
}
