package manifest

import (
	"fmt"
	"path/filepath"

	"github.com/siujs/cli/pkg/fs"
	"github.com/tidwall/gjson"
)

//go:generate go run go.uber.org/mock/mockgen@v0.5.2 -source=reader.go -destination=mocks/reader.gen.go -package=mocks

// Reader loads package descriptors.
type Reader interface {
	// Read loads the package called name from the given workspace.
	// A missing manifest yields a descriptor whose Meta only holds the name.
	Read(name, workspace string) (*Package, error)
}

type realReader struct {
	fs   fs.FS
	root string
}

// NewReader creates a Reader resolving workspaces relative to root.
func NewReader(fs fs.FS, root string) Reader {
	return &realReader{fs: fs, root: root}
}

// Read loads the package called name from the given workspace.
func (r *realReader) Read(name, workspace string) (*Package, error) {
	manifestPath := filepath.Join(r.root, workspace, DirName(name), FileName)

	exists, err := r.fs.Exists(manifestPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrManifestRead, manifestPath, err)
	}
	if !exists {
		return NewPackage(r.root, workspace, name, nil), nil
	}

	data, err := r.fs.ReadFile(manifestPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrManifestRead, manifestPath, err)
	}
	meta, err := parseMeta(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrManifestParse, manifestPath, err)
	}
	return NewPackage(r.root, workspace, name, meta), nil
}

func parseMeta(data []byte) (map[string]any, error) {
	if !gjson.ValidBytes(data) {
		return nil, ErrInvalidJSON
	}
	meta, ok := gjson.ParseBytes(data).Value().(map[string]any)
	if !ok {
		return nil, ErrNotAnObject
	}
	return meta, nil
}
