package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/loomhq/loom/internal/config"
	"github.com/loomhq/loom/internal/git"
	"github.com/loomhq/loom/internal/state"
	"github.com/loomhq/loom/internal/tui"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch workstream sessions in a live view",
	RunE:  runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

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

	model := tui.NewWatchModel(db, cfg.TUI.RefreshRate)
	program := tea.NewProgram(model)
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run watch view: %w", err)
	}
	return nil
}
