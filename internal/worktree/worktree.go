// Package worktree manages the git worktrees that isolate loom sessions.
// Each session gets its own worktree under a shared base directory, on a
// branch generated from the session's bead title.
package worktree

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/loomhq/loom/internal/git"
)

// Worktree represents a git worktree managed by loom.
type Worktree struct {
	Path      string    // Absolute path to the worktree directory
	Branch    string    // Name of the branch checked out in this worktree
	CreatedAt time.Time // When the worktree was created
}

// Provider defines the interface for worktree management.
// This interface allows mocking worktree operations in tests.
type Provider interface {
	// Create creates a new worktree on a new branch.
	Create(branch string) (*Worktree, error)
	// Remove removes a worktree at the given path.
	Remove(path string, force bool) error
	// List returns all worktrees known to the repository.
	List() ([]*Worktree, error)
	// Prune removes references to worktrees that no longer exist on disk.
	Prune() error
	// BaseDir returns the base directory where worktrees are created.
	BaseDir() string
}

// Verify Manager implements Provider at compile time.
var _ Provider = (*Manager)(nil)

// Manager handles git worktree operations for session isolation.
type Manager struct {
	baseDir string // Base directory for worktrees (e.g., ~/.cache/loom/worktrees)
	git     git.Runner
	mu      sync.Mutex
}

// NewManager creates a new Manager. baseDir is where worktrees will be
// created (defaults to ~/.cache/loom/worktrees) and runner executes git in
// the main repository.
func NewManager(baseDir string, runner git.Runner) (*Manager, error) {
	if baseDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home directory: %w", err)
		}
		baseDir = filepath.Join(home, ".cache", "loom", "worktrees")
	}

	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("create worktree base directory: %w", err)
	}

	return &Manager{
		baseDir: baseDir,
		git:     runner,
	}, nil
}

// Create creates a new worktree checked out on a new branch with the given
// name. The worktree directory is named after the branch with path
// separators flattened, so "loom/fix-sync" lives under "loom-fix-sync".
func (m *Manager) Create(branch string) (*Worktree, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if branch == "" {
		return nil, fmt.Errorf("create worktree: branch name is empty")
	}

	dirName := strings.ReplaceAll(branch, "/", "-")
	path := filepath.Join(m.baseDir, dirName)

	if err := m.git.WorktreeAddNewBranch(path, branch); err != nil {
		return nil, fmt.Errorf("create worktree: %w", err)
	}

	return &Worktree{
		Path:      path,
		Branch:    branch,
		CreatedAt: time.Now(),
	}, nil
}

// Remove removes a worktree at the given path.
// If force is true, removes the worktree even if there are uncommitted changes.
func (m *Manager) Remove(path string, force bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.git.WorktreeRemove(path, force); err != nil {
		return fmt.Errorf("remove worktree: %w", err)
	}
	return nil
}

// List returns all worktrees known to the repository.
func (m *Manager) List() ([]*Worktree, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	output, err := m.git.WorktreeListPorcelain()
	if err != nil {
		return nil, fmt.Errorf("list worktrees: %w", err)
	}
	return parseWorktreeList(output)
}

// Prune removes references to worktrees that no longer exist on disk.
func (m *Manager) Prune() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.git.WorktreePrune(); err != nil {
		return fmt.Errorf("prune worktrees: %w", err)
	}
	return nil
}

// BaseDir returns the base directory where worktrees are created.
func (m *Manager) BaseDir() string {
	return m.baseDir
}

// Managed reports whether the worktree lives under this manager's base
// directory, i.e. was created by loom rather than by hand.
func (m *Manager) Managed(wt *Worktree) bool {
	return strings.HasPrefix(wt.Path, m.baseDir+string(filepath.Separator))
}

// parseWorktreeList parses the output of 'git worktree list --porcelain'.
func parseWorktreeList(output string) ([]*Worktree, error) {
	var worktrees []*Worktree
	var current *Worktree

	scanner := bufio.NewScanner(strings.NewReader(output))
	for scanner.Scan() {
		line := scanner.Text()

		if line == "" {
			if current != nil {
				worktrees = append(worktrees, current)
				current = nil
			}
			continue
		}

		if strings.HasPrefix(line, "worktree ") {
			current = &Worktree{
				Path: strings.TrimPrefix(line, "worktree "),
			}
		} else if strings.HasPrefix(line, "branch ") && current != nil {
			// Format: branch refs/heads/<name>
			branchRef := strings.TrimPrefix(line, "branch ")
			current.Branch = strings.TrimPrefix(branchRef, "refs/heads/")
		}
	}

	// The last entry when output doesn't end with a blank line.
	if current != nil {
		worktrees = append(worktrees, current)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("parse worktree list: %w", err)
	}
	return worktrees, nil
}
