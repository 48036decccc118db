package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/loomhq/loom/internal/git"
	"github.com/loomhq/loom/internal/state"
)

var statusAll bool

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show workstream sessions",
	RunE:  runStatus,
}

func init() {
	statusCmd.Flags().BoolVar(&statusAll, "all", false, "Include completed and abandoned sessions")
}

func runStatus(cmd *cobra.Command, args []string) error {
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

	var filter *state.SessionStatus
	if !statusAll {
		active := state.SessionActive
		filter = &active
	}
	sessions, err := db.ListSessions(filter)
	if err != nil {
		return err
	}
	if len(sessions) == 0 {
		fmt.Println("No sessions. Run 'loom start' to begin a workstream.")
		return nil
	}

	bold := color.New(color.Bold).SprintFunc()
	statusColor := map[state.SessionStatus]*color.Color{
		state.SessionActive:    color.New(color.FgGreen),
		state.SessionPaused:    color.New(color.FgYellow),
		state.SessionCompleted: color.New(color.FgHiBlack),
		state.SessionAbandoned: color.New(color.FgRed),
	}

	for _, s := range sessions {
		c, ok := statusColor[s.Status]
		if !ok {
			c = color.New()
		}
		fmt.Printf("%s  %s  %s  %s\n", s.ID, bold(s.BeadID), c.Sprint(s.Status), s.Branch)
		if s.CodexSession != "" {
			fmt.Printf("      codex session: %s\n", s.CodexSession)
		}
		if s.PRURL != "" {
			fmt.Printf("      pr: %s (%s)\n", s.PRURL, s.ReviewState)
		}
	}
	return nil
}
