package git

import (
	"fmt"
	"path/filepath"
	"strings"
)

// StagedFiles lists the absolute paths of the files staged for commit.
// Deleted files are left out.
func (g *realGit) StagedFiles(workDir string) ([]string, error) {
	root, err := g.Root(workDir)
	if err != nil {
		return nil, err
	}

	output, err := run(root, "diff", "--name-only", "--cached", "--diff-filter=ACMR")
	if err != nil {
		return nil, fmt.Errorf("git diff --cached failed: %w", err)
	}

	var files []string
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		files = append(files, filepath.Join(root, filepath.FromSlash(line)))
	}
	return files, nil
}
