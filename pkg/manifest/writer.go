package manifest

import (
	"fmt"
	"sort"
	"strings"

	"github.com/siujs/cli/pkg/fs"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

//go:generate go run go.uber.org/mock/mockgen@v0.5.2 -source=writer.go -destination=mocks/writer.gen.go -package=mocks

// Dependency sections of a manifest.
const (
	SectionDependencies    = "dependencies"
	SectionDevDependencies = "devDependencies"
)

// Field is one top level manifest entry.
type Field struct {
	Key   string
	Value any
}

// Writer persists manifest changes.
type Writer interface {
	// Create writes a new manifest holding fields in the given order.
	Create(pkg *Package, fields []Field) error

	// Patch sets top level fields of an existing manifest, keeping the others.
	Patch(pkg *Package, values map[string]any) error

	// SetDependency adds or updates a dependency in section.
	SetDependency(pkg *Package, section, name, version string) error

	// RemoveDependency removes a dependency from every section.
	RemoveDependency(pkg *Package, name string) error
}

type realWriter struct {
	fs fs.FS
}

// NewWriter creates a Writer.
func NewWriter(fs fs.FS) Writer {
	return &realWriter{fs: fs}
}

// Create writes a new manifest holding fields in the given order.
func (w *realWriter) Create(pkg *Package, fields []Field) error {
	doc := []byte("{}")
	var err error
	for _, f := range fields {
		if doc, err = sjson.SetBytes(doc, escapeKey(f.Key), f.Value); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrManifestWrite, f.Key, err)
		}
	}
	return w.write(pkg, doc)
}

// Patch sets top level fields of an existing manifest, keeping the others.
func (w *realWriter) Patch(pkg *Package, values map[string]any) error {
	doc, err := w.read(pkg)
	if err != nil {
		return err
	}

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if doc, err = sjson.SetBytes(doc, escapeKey(k), values[k]); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrManifestWrite, k, err)
		}
	}
	return w.write(pkg, doc)
}

// SetDependency adds or updates a dependency in section.
func (w *realWriter) SetDependency(pkg *Package, section, name, version string) error {
	doc, err := w.read(pkg)
	if err != nil {
		return err
	}

	deps := sectionOf(doc, section)
	deps[name] = version
	if doc, err = sjson.SetBytes(doc, section, deps); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrManifestWrite, section, err)
	}
	return w.write(pkg, doc)
}

// RemoveDependency removes a dependency from every section.
func (w *realWriter) RemoveDependency(pkg *Package, name string) error {
	doc, err := w.read(pkg)
	if err != nil {
		return err
	}

	for _, section := range []string{SectionDependencies, SectionDevDependencies} {
		if !gjson.GetBytes(doc, section).Exists() {
			continue
		}
		deps := sectionOf(doc, section)
		if _, ok := deps[name]; !ok {
			continue
		}
		delete(deps, name)
		if doc, err = sjson.SetBytes(doc, section, deps); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrManifestWrite, section, err)
		}
	}
	return w.write(pkg, doc)
}

func (w *realWriter) read(pkg *Package) ([]byte, error) {
	exists, err := w.fs.Exists(pkg.ManifestPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrManifestRead, pkg.ManifestPath, err)
	}
	if !exists {
		return []byte("{}"), nil
	}
	data, err := w.fs.ReadFile(pkg.ManifestPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrManifestRead, pkg.ManifestPath, err)
	}
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: %s: %w", ErrManifestParse, pkg.ManifestPath, ErrInvalidJSON)
	}
	return data, nil
}

func (w *realWriter) write(pkg *Package, doc []byte) error {
	pretty := gjson.GetBytes(doc, "@pretty").Raw
	if err := w.fs.WriteFileAtomic(pkg.ManifestPath, []byte(pretty), 0644); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrManifestWrite, pkg.ManifestPath, err)
	}
	return nil
}

func sectionOf(doc []byte, section string) map[string]any {
	deps, ok := gjson.GetBytes(doc, section).Value().(map[string]any)
	if !ok {
		deps = make(map[string]any)
	}
	return deps
}

var keyEscaper = strings.NewReplacer(".", `\.`, "*", `\*`, "?", `\?`)

func escapeKey(key string) string {
	return keyEscaper.Replace(key)
}
