// Package git provides an interface for git operations.
package git

// BranchOperations defines the interface for git branch operations.
type BranchOperations interface {
	// CurrentBranch returns the name of the current branch.
	CurrentBranch() (string, error)
	// CreateBranch creates a new branch with the given name.
	CreateBranch(name string) error
	// BranchExists returns true if the branch exists.
	BranchExists(name string) (bool, error)
	// DeleteBranch deletes the specified branch (force delete).
	DeleteBranch(name string) error
}

// CommitOperations defines the interface for git commit operations.
type CommitOperations interface {
	// Status returns the output of git status --porcelain.
	Status() (string, error)
	// HasChanges returns true if there are uncommitted changes.
	HasChanges() (bool, error)
	// Add stages the specified files for commit.
	Add(paths ...string) error
	// Commit creates a new commit with the given message.
	Commit(message string) error
}

// WorktreeOperations defines the interface for git worktree operations.
type WorktreeOperations interface {
	// WorktreeAddNewBranch creates a worktree at path on a new branch.
	WorktreeAddNewBranch(path, branch string) error
	// WorktreeRemove removes the worktree at path.
	WorktreeRemove(path string, force bool) error
	// WorktreeListPorcelain returns the raw output of
	// 'git worktree list --porcelain'.
	WorktreeListPorcelain() (string, error)
	// WorktreePrune removes references to worktrees that no longer exist.
	WorktreePrune() error
}

// RepoOperations defines the interface for repository-level queries.
type RepoOperations interface {
	// RepoRoot returns the absolute path of the repository root.
	RepoRoot() (string, error)
}

// Runner combines all git operation interfaces.
// This abstraction allows mocking git operations in tests.
type Runner interface {
	BranchOperations
	CommitOperations
	WorktreeOperations
	RepoOperations
	// Run executes an arbitrary git command with the given arguments.
	Run(args ...string) (string, error)
}
