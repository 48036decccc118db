package main

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/spf13/cobra"
)

// CheckCodexCLI verifies that the 'codex' CLI is available in PATH.
// Returns an error with installation instructions if not found.
func CheckCodexCLI() error {
	_, err := exec.LookPath("codex")
	if err != nil {
		return fmt.Errorf("codex CLI not found in PATH\n\n" +
			"loom drives codex agent sessions and needs the codex CLI.\n\n" +
			"Install it with:\n" +
			"  npm install -g @openai/codex")
	}
	return nil
}

var rootCmd = &cobra.Command{
	Use:   "loom",
	Short: "Workstream orchestrator for coding agents",
	Long: `loom drives beads, git worktrees, and codex agent sessions.

Each workstream session pins one bead to one branch in one worktree,
worked by a codex agent. loom tracks the session state, keeps changeset
facts in sync with the bead description, and relays messages between
planner and worker agents.

Core capabilities:
- Generates traceable branch names from bead titles
- Isolates each session in its own git worktree
- Recovers codex session ids from captured terminal output
- Syncs changeset facts embedded in bead descriptions
- Combines role-scoped policy documents into one file`,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(resumeCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(policyCmd)
	rootCmd.AddCommand(msgCmd)
	rootCmd.AddCommand(checkCommitCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(versionCmd)
}
