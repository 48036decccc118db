package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/loomhq/loom/internal/config"
	"github.com/loomhq/loom/internal/git"
)

var (
	initForce          bool
	initNoHook         bool
	initSkipCodexCheck bool
)

// commitMsgHook is the scaffolded commit-msg hook. It delegates to loom so
// the commit type vocabulary stays in one place.
const commitMsgHook = `#!/bin/sh
# Installed by loom init. Validates the commit header.
exec loom check-commit "$1"
`

// defaultPolicy seeds the shared policy document.
const defaultPolicy = `# Workstream Policy

Shared policy for planner and worker agents.

- Keep commits small and focused.
- Record changeset facts in the bead description.
- Ask before force-pushing.
`

var initCmd = &cobra.Command{
	Use:   "init [directory]",
	Short: "Initialize a loom project",
	Long: `Initialize a directory for use with loom.

This command sets up everything needed to run loom:
  - Verifies prerequisites (git, codex CLI)
  - Creates the .loom directory structure
  - Writes a default config and policy document
  - Installs the commit-msg hook

The directory argument is optional and defaults to the current directory.

Examples:
  loom init              # Initialize current directory
  loom init ./myproject  # Initialize specific directory
  loom init --force      # Reinitialize even if already set up
  loom init --no-hook    # Skip commit-msg hook installation`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "Reinitialize even if already set up")
	initCmd.Flags().BoolVar(&initNoHook, "no-hook", false, "Skip commit-msg hook installation")
	initCmd.Flags().BoolVar(&initSkipCodexCheck, "skip-codex-check", false, "Skip codex CLI availability check")
}

func runInit(cmd *cobra.Command, args []string) error {
	green := color.New(color.FgGreen).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()

	targetDir := "."
	if len(args) > 0 {
		targetDir = args[0]
	}
	absPath, err := filepath.Abs(targetDir)
	if err != nil {
		return fmt.Errorf("resolving absolute path: %w", err)
	}

	fmt.Printf("Initializing loom in %s...\n\n", absPath)

	loomDir := filepath.Join(absPath, ".loom")
	if _, err := os.Stat(loomDir); err == nil && !initForce {
		fmt.Println("Directory already initialized. Use --force to reinitialize.")
		return nil
	}

	if !initSkipCodexCheck {
		if err := CheckCodexCLI(); err != nil {
			fmt.Printf("%s %v\n\n", yellow("warning:"), err)
		}
	}

	for _, dir := range []string{loomDir, filepath.Join(loomDir, "mail")} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}
	fmt.Printf("%s created .loom directory\n", green("✓"))

	if err := writeDefaultConfig(filepath.Join(loomDir, "config.yaml")); err != nil {
		return err
	}
	fmt.Printf("%s wrote .loom/config.yaml\n", green("✓"))

	policyPath := filepath.Join(loomDir, "policy.md")
	if _, err := os.Stat(policyPath); os.IsNotExist(err) || initForce {
		if err := os.WriteFile(policyPath, []byte(defaultPolicy), 0644); err != nil {
			return fmt.Errorf("writing policy document: %w", err)
		}
		fmt.Printf("%s wrote .loom/policy.md\n", green("✓"))
	}

	if !initNoHook {
		if err := installCommitHook(absPath); err != nil {
			fmt.Printf("%s commit-msg hook not installed: %v\n", yellow("warning:"), err)
		} else {
			fmt.Printf("%s installed commit-msg hook\n", green("✓"))
		}
	}

	fmt.Printf("\nDone. Run %s to begin a workstream.\n", green("loom start"))
	return nil
}

// writeDefaultConfig serializes the default config to path.
func writeDefaultConfig(path string) error {
	cfg := config.Default()
	out := map[string]any{
		"branch": map[string]any{
			"prefix":  cfg.Branch.Prefix,
			"max_len": cfg.Branch.MaxLen,
		},
		"policy": map[string]any{
			"file": cfg.Policy.File,
		},
		"mailbox": map[string]any{
			"dir": cfg.Mailbox.Dir,
		},
	}
	data, err := yaml.Marshal(out)
	if err != nil {
		return fmt.Errorf("marshaling default config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// installCommitHook writes the commit-msg hook into the repo's hooks dir.
func installCommitHook(repoPath string) error {
	runner := git.NewRunner(repoPath)
	root, err := runner.RepoRoot()
	if err != nil {
		return fmt.Errorf("not a git repository: %w", err)
	}
	hookPath := filepath.Join(root, ".git", "hooks", "commit-msg")
	if err := os.WriteFile(hookPath, []byte(commitMsgHook), 0755); err != nil {
		return fmt.Errorf("writing hook: %w", err)
	}
	return nil
}
