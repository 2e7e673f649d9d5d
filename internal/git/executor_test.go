package git

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestRepo creates a temporary git repository for testing
func setupTestRepo(t *testing.T) string {
	t.Helper()

	tmpDir := t.TempDir()

	runIn(t, tmpDir, "init")
	runIn(t, tmpDir, "config", "user.email", "test@example.com")
	runIn(t, tmpDir, "config", "user.name", "Test User")
	runIn(t, tmpDir, "config", "commit.gpgsign", "false")

	return tmpDir
}

// runIn runs a git command in dir and fails the test on error
func runIn(t *testing.T, dir string, args ...string) string {
	t.Helper()

	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, "git %s: %s", strings.Join(args, " "), out)
	return strings.TrimSpace(string(out))
}

// writeFile creates or overwrites a file in the repository
func writeFile(t *testing.T, repoDir, filename, content string) {
	t.Helper()

	err := os.WriteFile(filepath.Join(repoDir, filename), []byte(content), 0644)
	require.NoError(t, err)
}

// createAndStageFile creates a file and stages it
func createAndStageFile(t *testing.T, repoDir, filename, content string) {
	t.Helper()

	writeFile(t, repoDir, filename, content)
	runIn(t, repoDir, "add", filename)
}

// commitFile commits staged changes
func commitFile(t *testing.T, repoDir, message string) {
	t.Helper()

	runIn(t, repoDir, "commit", "-m", message)
}

func lastCommitMessage(t *testing.T, repoDir string) string {
	t.Helper()

	return runIn(t, repoDir, "log", "-1", "--format=%B")
}

func TestNewExecutor(t *testing.T) {
	executor := NewExecutor("/tmp/test")
	assert.NotNil(t, executor)
}

func TestExecutor_DiffCached(t *testing.T) {
	repoDir := setupTestRepo(t)
	executor := NewExecutor(repoDir)
	ctx := context.Background()

	t.Run("empty staging area", func(t *testing.T) {
		diff, err := executor.DiffCached(ctx)
		require.NoError(t, err)
		assert.Empty(t, diff)
	})

	t.Run("with staged changes", func(t *testing.T) {
		createAndStageFile(t, repoDir, "test.txt", "hello world")

		diff, err := executor.DiffCached(ctx)
		require.NoError(t, err)
		assert.Contains(t, diff, "test.txt")
		assert.Contains(t, diff, "hello world")
	})
}

func TestExecutor_Diff(t *testing.T) {
	repoDir := setupTestRepo(t)
	executor := NewExecutor(repoDir)
	ctx := context.Background()

	createAndStageFile(t, repoDir, "tracked.txt", "v1\n")
	commitFile(t, repoDir, "chore: init")

	writeFile(t, repoDir, "tracked.txt", "v2\n")

	diff, err := executor.Diff(ctx)
	require.NoError(t, err)
	assert.Contains(t, diff, "-v1")
	assert.Contains(t, diff, "+v2")
}

func TestExecutor_Changes(t *testing.T) {
	ctx := context.Background()

	t.Run("clean tree", func(t *testing.T) {
		repoDir := setupTestRepo(t)
		createAndStageFile(t, repoDir, "a.txt", "a\n")
		commitFile(t, repoDir, "chore: init")

		diff, err := NewExecutor(repoDir).Changes(ctx)
		require.NoError(t, err)
		assert.Empty(t, diff)
	})

	t.Run("untracked files only", func(t *testing.T) {
		repoDir := setupTestRepo(t)
		createAndStageFile(t, repoDir, "a.txt", "a\n")
		commitFile(t, repoDir, "chore: init")
		writeFile(t, repoDir, "new.txt", "new\n")

		diff, err := NewExecutor(repoDir).Changes(ctx)
		require.NoError(t, err)
		assert.Empty(t, diff)
	})

	t.Run("staged changes preferred", func(t *testing.T) {
		repoDir := setupTestRepo(t)
		createAndStageFile(t, repoDir, "a.txt", "a\n")
		createAndStageFile(t, repoDir, "b.txt", "b\n")
		commitFile(t, repoDir, "chore: init")

		createAndStageFile(t, repoDir, "a.txt", "staged\n")
		writeFile(t, repoDir, "b.txt", "unstaged\n")

		diff, err := NewExecutor(repoDir).Changes(ctx)
		require.NoError(t, err)
		assert.Contains(t, diff, "+staged")
		assert.NotContains(t, diff, "+unstaged")
	})

	t.Run("unstaged changes when nothing staged", func(t *testing.T) {
		repoDir := setupTestRepo(t)
		createAndStageFile(t, repoDir, "a.txt", "a\n")
		commitFile(t, repoDir, "chore: init")
		writeFile(t, repoDir, "a.txt", "changed\n")

		diff, err := NewExecutor(repoDir).Changes(ctx)
		require.NoError(t, err)
		assert.Contains(t, diff, "+changed")
	})

	t.Run("staged in repo without commits", func(t *testing.T) {
		repoDir := setupTestRepo(t)
		createAndStageFile(t, repoDir, "first.txt", "first\n")

		diff, err := NewExecutor(repoDir).Changes(ctx)
		require.NoError(t, err)
		assert.Contains(t, diff, "first.txt")
	})
}

func TestInspect(t *testing.T) {
	repoDir := setupTestRepo(t)
	createAndStageFile(t, repoDir, "a.txt", "a\n")
	commitFile(t, repoDir, "chore: init")

	state, err := Inspect(repoDir)
	require.NoError(t, err)
	assert.Equal(t, WorktreeState{}, state)

	writeFile(t, repoDir, "a.txt", "b\n")
	state, err = Inspect(repoDir)
	require.NoError(t, err)
	assert.Equal(t, WorktreeState{Dirty: true}, state)

	runIn(t, repoDir, "add", "a.txt")
	state, err = Inspect(repoDir)
	require.NoError(t, err)
	assert.Equal(t, WorktreeState{Staged: true}, state)
}

func TestInspect_Subdirectory(t *testing.T) {
	repoDir := setupTestRepo(t)
	require.NoError(t, os.MkdirAll(filepath.Join(repoDir, "pkg", "sub"), 0755))
	createAndStageFile(t, repoDir, "pkg/sub/x.go", "package sub\n")

	state, err := Inspect(filepath.Join(repoDir, "pkg", "sub"))
	require.NoError(t, err)
	assert.True(t, state.Staged)
}

func TestExecutor_Commit(t *testing.T) {
	repoDir := setupTestRepo(t)
	executor := NewExecutor(repoDir)
	ctx := context.Background()

	t.Run("commit staged changes", func(t *testing.T) {
		createAndStageFile(t, repoDir, "commit-test.txt", "test content")

		err := executor.Commit(ctx, "test: commit message")
		require.NoError(t, err)
		assert.Contains(t, lastCommitMessage(t, repoDir), "commit message")
	})

	t.Run("commit with body", func(t *testing.T) {
		createAndStageFile(t, repoDir, "commit-body.txt", "body test")

		message := "feat: add feature\n\nThis is the body of the commit.\nIt explains what and why."
		err := executor.Commit(ctx, message)
		require.NoError(t, err)

		got := lastCommitMessage(t, repoDir)
		assert.Contains(t, got, "add feature")
		assert.Contains(t, got, "explains what and why")
	})

	t.Run("commit with empty staging area fails", func(t *testing.T) {
		err := executor.Commit(ctx, "empty commit")
		assert.Error(t, err)
	})
}

func TestExecutor_CurrentBranch(t *testing.T) {
	repoDir := setupTestRepo(t)
	executor := NewExecutor(repoDir)
	ctx := context.Background()

	createAndStageFile(t, repoDir, "init.txt", "init")
	commitFile(t, repoDir, "initial commit")
	runIn(t, repoDir, "checkout", "-b", "topic")

	branch, err := executor.CurrentBranch(ctx)
	require.NoError(t, err)
	assert.Equal(t, "topic", branch)
}

func TestExecutor_DiffBranchesAndLogRange(t *testing.T) {
	repoDir := setupTestRepo(t)
	executor := NewExecutor(repoDir)
	ctx := context.Background()

	createAndStageFile(t, repoDir, "main.txt", "main content")
	commitFile(t, repoDir, "initial commit")

	mainBranch, err := executor.CurrentBranch(ctx)
	require.NoError(t, err)

	runIn(t, repoDir, "checkout", "-b", "feature")
	createAndStageFile(t, repoDir, "feature.txt", "feature content")
	commitFile(t, repoDir, "feat: add feature")

	diff, err := executor.DiffBranches(ctx, mainBranch, "feature")
	require.NoError(t, err)
	assert.Contains(t, diff, "feature.txt")
	assert.NotContains(t, diff, "main.txt")

	log, err := executor.LogRange(ctx, mainBranch, "feature")
	require.NoError(t, err)
	assert.Contains(t, log, "feat: add feature")
	assert.NotContains(t, log, "initial commit")
}

func TestExecutor_NotAGitRepo(t *testing.T) {
	tmpDir := t.TempDir()
	executor := NewExecutor(tmpDir)
	ctx := context.Background()

	_, err := executor.Changes(ctx)
	assert.Error(t, err)

	_, err = executor.CurrentBranch(ctx)
	assert.Error(t, err)
}
