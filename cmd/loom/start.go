package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/loomhq/loom/internal/branchname"
	"github.com/loomhq/loom/internal/config"
	"github.com/loomhq/loom/internal/git"
	"github.com/loomhq/loom/internal/state"
	"github.com/loomhq/loom/internal/worktree"
)

var (
	startBead  string
	startTitle string
	startRoot  string
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start a workstream session",
	Long: `Start a new workstream session for a bead.

Generates a branch name from the bead title (the bead id is always kept
as the branch suffix), creates an isolated worktree on that branch, and
records the session.

Examples:
  loom start --bead at-7f2k --title "Fix the sync command"
  loom start --bead at-7f2k --title "Fix sync" --root release/v2`,
	RunE: runStart,
}

func init() {
	startCmd.Flags().StringVar(&startBead, "bead", "", "Bead id for this workstream (required)")
	startCmd.Flags().StringVar(&startTitle, "title", "", "Bead title, used to generate the branch name (required)")
	startCmd.Flags().StringVar(&startRoot, "root", "", "Root branch the work will merge back into (default: current branch)")
	startCmd.MarkFlagRequired("bead")
	startCmd.MarkFlagRequired("title")
}

func runStart(cmd *cobra.Command, args []string) error {
	green := color.New(color.FgGreen).SprintFunc()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}
	runner := git.NewRunner(cwd)

	root := startRoot
	if root == "" {
		root, err = runner.CurrentBranch()
		if err != nil {
			return err
		}
	}

	branch, err := branchname.Suggest(startTitle, cfg.Branch.Prefix, startBead, cfg.Branch.MaxLen)
	if err != nil {
		return fmt.Errorf("generate branch name: %w", err)
	}

	exists, err := runner.BranchExists(branch)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("branch %q already exists; is bead %s already in progress?", branch, startBead)
	}

	manager, err := worktree.NewManager(cfg.Worktrees.BaseDir, runner)
	if err != nil {
		return err
	}
	wt, err := manager.Create(branch)
	if err != nil {
		return err
	}

	repoRoot, err := runner.RepoRoot()
	if err != nil {
		return err
	}
	db, err := state.OpenProject(repoRoot)
	if err != nil {
		return err
	}
	defer db.Close()

	session := &state.Session{
		ID:         uuid.New().String()[:8],
		BeadID:     startBead,
		Title:      startTitle,
		Branch:     branch,
		RootBranch: root,
		Worktree:   wt.Path,
		Status:     state.SessionActive,
	}
	if err := db.CreateSession(session); err != nil {
		return err
	}

	fmt.Printf("%s session %s started\n", green("✓"), session.ID)
	fmt.Printf("  bead:     %s\n", session.BeadID)
	fmt.Printf("  branch:   %s\n", session.Branch)
	fmt.Printf("  worktree: %s\n", session.Worktree)
	fmt.Printf("\nLaunch the agent with:\n  cd %s && codex\n", wt.Path)
	return nil
}
