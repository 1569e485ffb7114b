package git

import (
	"fmt"
	"strings"
)

// GetCurrentBranch gets the current branch name.
// It is empty on a detached HEAD.
func (g *realGit) GetCurrentBranch(repoPath string) (string, error) {
	output, err := run(repoPath, "branch", "--show-current")
	if err != nil {
		return "", fmt.Errorf("git branch --show-current failed: %w", err)
	}
	return strings.TrimSpace(output), nil
}
