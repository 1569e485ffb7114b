package git

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Root returns the top level directory of the repository holding workDir.
func (g *realGit) Root(workDir string) (string, error) {
	output, err := run(workDir, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrNotRepository, workDir, err)
	}
	return filepath.Clean(strings.TrimSpace(output)), nil
}
