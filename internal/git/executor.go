package git

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Executor defines the interface for git command execution
type Executor interface {
	// DiffCached returns the diff of staged changes
	DiffCached(ctx context.Context) (string, error)

	// Diff returns the diff of unstaged changes to tracked files
	Diff(ctx context.Context) (string, error)

	// Changes returns the staged diff, or the unstaged diff when nothing is staged
	Changes(ctx context.Context) (string, error)

	// DiffBranches returns the diff between two branches
	DiffBranches(ctx context.Context, base, head string) (string, error)

	// LogRange returns one-line commit summaries reachable from head but not base
	LogRange(ctx context.Context, base, head string) (string, error)

	// Commit executes a git commit with the given message
	Commit(ctx context.Context, message string) error

	// CurrentBranch returns the current branch name
	CurrentBranch(ctx context.Context) (string, error)
}

// DefaultExecutor is the default implementation of Executor
type DefaultExecutor struct {
	workDir string
}

// NewExecutor creates a new DefaultExecutor
func NewExecutor(workDir string) *DefaultExecutor {
	return &DefaultExecutor{workDir: workDir}
}

// runGit runs a git command and returns the output
func (e *DefaultExecutor) runGit(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = e.workDir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("git %s failed: %w\n%s", strings.Join(args, " "), err, stderr.String())
	}

	return strings.TrimSpace(stdout.String()), nil
}

// DiffCached returns the diff of staged changes
func (e *DefaultExecutor) DiffCached(ctx context.Context) (string, error) {
	return e.runGit(ctx, "diff", "--cached")
}

// Diff returns the diff of unstaged changes
func (e *DefaultExecutor) Diff(ctx context.Context) (string, error) {
	return e.runGit(ctx, "diff")
}

// Changes picks the diff to describe: staged changes win, then unstaged
// modifications of tracked files. A clean tree yields an empty diff.
func (e *DefaultExecutor) Changes(ctx context.Context) (string, error) {
	state, err := Inspect(e.workDir)
	if err != nil {
		return "", err
	}

	switch {
	case state.Staged:
		return e.DiffCached(ctx)
	case state.Dirty:
		return e.Diff(ctx)
	default:
		return "", nil
	}
}

// DiffBranches returns the diff between two branches
func (e *DefaultExecutor) DiffBranches(ctx context.Context, base, head string) (string, error) {
	return e.runGit(ctx, "diff", fmt.Sprintf("%s..%s", base, head))
}

// LogRange returns the commits in head that are not in base
func (e *DefaultExecutor) LogRange(ctx context.Context, base, head string) (string, error) {
	return e.runGit(ctx, "log", "--oneline", "--no-decorate", fmt.Sprintf("%s..%s", base, head))
}

// Commit executes a git commit with the given message
func (e *DefaultExecutor) Commit(ctx context.Context, message string) error {
	_, err := e.runGit(ctx, "commit", "-m", message)
	return err
}

// CurrentBranch returns the current branch name
func (e *DefaultExecutor) CurrentBranch(ctx context.Context) (string, error) {
	return e.runGit(ctx, "rev-parse", "--abbrev-ref", "HEAD")
}
