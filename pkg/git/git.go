// Package git wraps the few git commands the glint builtin needs.
package git

//go:generate go run go.uber.org/mock/mockgen@v0.5.2 -source=git.go -destination=mocks/git.gen.go -package=mocks

// Git interface provides Git command execution capabilities.
type Git interface {
	// Root returns the top level directory of the repository holding workDir.
	Root(workDir string) (string, error)

	// StagedFiles lists the absolute paths of the files staged for commit.
	StagedFiles(workDir string) ([]string, error)

	// GetCurrentBranch gets the current branch name.
	GetCurrentBranch(repoPath string) (string, error)
}

type realGit struct {
	// No fields needed for basic Git operations
}

// NewGit creates a new Git instance.
func NewGit() Git {
	return &realGit{}
}
