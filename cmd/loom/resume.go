package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	execrunner "github.com/loomhq/loom/internal/exec"
	"github.com/loomhq/loom/internal/git"
	"github.com/loomhq/loom/internal/state"
	"github.com/loomhq/loom/internal/termscan"
)

var (
	resumeLog  string
	resumeExec bool
)

var resumeCmd = &cobra.Command{
	Use:   "resume <session-id>",
	Short: "Recover and replay a codex session",
	Long: `Recover the codex session id for a workstream session and print the
command that reattaches to it.

The codex CLI prints a resume hint into its terminal output. Capture that
output (for example with 'script' or a tmux pipe) and point --log at the
capture; with no --log the capture is read from stdin. The recovered id is
stored on the session so later resumes skip the scan.

Examples:
  loom resume s-1a2b --log /tmp/codex.out
  tmux capture-pane -p | loom resume s-1a2b
  loom resume s-1a2b --exec   # reattach immediately using the stored id`,
	Args: cobra.ExactArgs(1),
	RunE: runResume,
}

func init() {
	resumeCmd.Flags().StringVar(&resumeLog, "log", "", "Path to captured terminal output")
	resumeCmd.Flags().BoolVar(&resumeExec, "exec", false, "Run the resume command instead of printing it")
}

func runResume(cmd *cobra.Command, args []string) error {
	green := color.New(color.FgGreen).SprintFunc()

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

	session, err := db.GetSession(args[0])
	if err != nil {
		return err
	}
	if session == nil {
		return fmt.Errorf("no session %q", args[0])
	}

	resumeCommand := ""
	if session.CodexSession != "" {
		resumeCommand = "codex resume " + session.CodexSession
	} else {
		var input io.Reader = os.Stdin
		if resumeLog != "" {
			f, err := os.Open(resumeLog)
			if err != nil {
				return fmt.Errorf("open capture: %w", err)
			}
			defer f.Close()
			input = f
		}

		id, command, err := scanForResume(input)
		if err != nil {
			return err
		}
		if id == "" {
			return fmt.Errorf("no resume line found in the captured output")
		}
		if err := db.SetCodexSession(session.ID, id); err != nil {
			return err
		}
		fmt.Printf("%s recovered codex session %s\n", green("✓"), id)

		resumeCommand = command
		if resumeCommand == "" {
			resumeCommand = "codex resume " + id
		}
	}

	if resumeExec {
		parts := strings.Fields(resumeCommand)
		runner := execrunner.NewRunner()
		return runner.RunInteractive(cmd.Context(), session.Worktree, parts[0], parts[1:]...)
	}

	fmt.Printf("Resume with:\n  cd %s && %s\n", session.Worktree, resumeCommand)
	return nil
}

// scanForResume scans captured terminal output line by line. The last match
// wins: codex reprints the resume hint as the session progresses and the
// most recent hint is the authoritative one.
func scanForResume(r io.Reader) (sessionID, command string, err error) {
	scanner := termscan.NewScanner()

	lines := bufio.NewScanner(r)
	lines.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for lines.Scan() {
		if id, cmd := scanner.ParseLine(lines.Text()); id != "" {
			sessionID, command = id, cmd
		}
	}
	if err := lines.Err(); err != nil {
		return "", "", fmt.Errorf("read capture: %w", err)
	}
	return sessionID, command, nil
}
