package git

import (
	"fmt"

	gogit "github.com/go-git/go-git/v5"
)

// WorktreeState summarizes which kind of changes a repository holds
type WorktreeState struct {
	Staged bool // index differs from HEAD
	Dirty  bool // tracked files modified in the worktree
}

// Inspect opens the repository containing dir and reports its worktree state.
// Untracked files count as neither staged nor dirty.
func Inspect(dir string) (WorktreeState, error) {
	repo, err := gogit.PlainOpenWithOptions(dir, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return WorktreeState{}, fmt.Errorf("failed to open repository: %w", err)
	}

	wt, err := repo.Worktree()
	if err != nil {
		return WorktreeState{}, fmt.Errorf("failed to get worktree: %w", err)
	}

	status, err := wt.Status()
	if err != nil {
		return WorktreeState{}, fmt.Errorf("failed to get status: %w", err)
	}

	var state WorktreeState
	for _, fs := range status {
		if fs.Staging == gogit.Untracked && fs.Worktree == gogit.Untracked {
			continue
		}
		if fs.Staging != gogit.Unmodified {
			state.Staged = true
		}
		if fs.Worktree != gogit.Unmodified {
			state.Dirty = true
		}
	}

	return state, nil
}
