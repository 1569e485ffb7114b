package manifest

import (
	"fmt"
	"path/filepath"

	"github.com/siujs/cli/pkg/fs"
)

// Dirs returns the sorted directories of the workspace.
func Dirs(fsys fs.FS, root, workspace string) ([]string, error) {
	pkgsRoot := filepath.Join(root, workspace)
	exists, err := fsys.Exists(pkgsRoot)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrWorkspaceMissing, pkgsRoot)
	}
	return fsys.ListDirs(pkgsRoot)
}

// Discover returns the sorted workspace directories holding a package.json.
func Discover(fsys fs.FS, root, workspace string) ([]string, error) {
	dirs, err := Dirs(fsys, root, workspace)
	if err != nil {
		return nil, err
	}

	pkgs := make([]string, 0, len(dirs))
	for _, dir := range dirs {
		exists, err := fsys.Exists(filepath.Join(root, workspace, dir, FileName))
		if err != nil {
			return nil, err
		}
		if exists {
			pkgs = append(pkgs, dir)
		}
	}
	return pkgs, nil
}

// Metas reads every discovered package, keyed by directory name.
func Metas(fsys fs.FS, reader Reader, root, workspace string) (map[string]*Package, error) {
	dirs, err := Discover(fsys, root, workspace)
	if err != nil {
		return nil, err
	}

	metas := make(map[string]*Package, len(dirs))
	for _, dir := range dirs {
		pkg, err := reader.Read(dir, workspace)
		if err != nil {
			return nil, err
		}
		metas[dir] = pkg
	}
	return metas, nil
}

// FilterMissing returns the requested package names that have no workspace directory.
func FilterMissing(fsys fs.FS, root, workspace string, names []string) ([]string, error) {
	missing := make([]string, 0)
	for _, name := range names {
		exists, err := fsys.Exists(filepath.Join(root, workspace, DirName(name)))
		if err != nil {
			return nil, err
		}
		if !exists {
			missing = append(missing, name)
		}
	}
	return missing, nil
}
