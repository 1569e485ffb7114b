// Package pkgorder decides in which order workspace packages are visited.
package pkgorder

import (
	"slices"
	"sort"

	"github.com/siujs/cli/internal/naming"
	"github.com/siujs/cli/pkg/fs"
	"github.com/siujs/cli/pkg/manifest"
)

//go:generate go run go.uber.org/mock/mockgen@v0.5.2 -source=pkgorder.go -destination=mocks/pkgorder.gen.go -package=mocks

// Ordering modes.
const (
	ModeAuto     = "auto"
	ModePriority = "priority"
)

// Order is either a mode or an explicit list of package directories.
type Order struct {
	Mode string
	List []string
}

// Explicit reports whether the order is a verbatim list.
func (o Order) Explicit() bool {
	return len(o.List) > 0
}

// Node is a package as seen by the priority ordering.
type Node struct {
	Dir          string
	Name         string
	Dependencies []string
}

// Resolver returns the ordered directories of the workspace packages.
type Resolver interface {
	// Sort orders the packages by order and keeps only those named in the
	// comma separated filter, when it is not empty.
	Sort(order Order, filter string) ([]string, error)
}

// NewResolverParams contains parameters for creating a new Resolver.
type NewResolverParams struct {
	FS        fs.FS
	Reader    manifest.Reader
	Root      string
	Workspace string
}

type realResolver struct {
	fs        fs.FS
	reader    manifest.Reader
	root      string
	workspace string
}

// NewResolver creates a new Resolver.
func NewResolver(params NewResolverParams) Resolver {
	return &realResolver{
		fs:        params.FS,
		reader:    params.Reader,
		root:      params.Root,
		workspace: params.Workspace,
	}
}

func (r *realResolver) Sort(order Order, filter string) ([]string, error) {
	var (
		dirs []string
		err  error
	)

	switch {
	case order.Explicit():
		dirs = slices.Clone(order.List)
	case order.Mode == ModeAuto:
		dirs, err = manifest.Dirs(r.fs, r.root, r.workspace)
	case order.Mode == ModePriority || order.Mode == "":
		dirs, err = r.priority()
	default:
		return nil, ErrUnknownMode
	}
	if err != nil {
		return nil, err
	}

	return Filter(dirs, filter), nil
}

func (r *realResolver) priority() ([]string, error) {
	metas, err := manifest.Metas(r.fs, r.reader, r.root, r.workspace)
	if err != nil {
		return nil, err
	}

	nodes := make([]Node, 0, len(metas))
	for dir, pkg := range metas {
		nodes = append(nodes, Node{Dir: dir, Name: pkg.Name, Dependencies: pkg.Dependencies()})
	}
	return PriorityOrder(nodes), nil
}

// PriorityOrder ranks packages by how many siblings list them in their
// dependencies, highest first. Ties are ordered by directory name.
// Only direct listings are counted.
func PriorityOrder(nodes []Node) []string {
	fanIn := make(map[string]int, len(nodes))
	for _, n := range nodes {
		fanIn[n.Name] = 0
	}
	for _, n := range nodes {
		for _, dep := range n.Dependencies {
			if _, sibling := fanIn[dep]; sibling && dep != n.Name {
				fanIn[dep]++
			}
		}
	}

	sorted := slices.Clone(nodes)
	sort.SliceStable(sorted, func(i, j int) bool {
		ci, cj := fanIn[sorted[i].Name], fanIn[sorted[j].Name]
		if ci != cj {
			return ci > cj
		}
		return sorted[i].Dir < sorted[j].Dir
	})

	dirs := make([]string, len(sorted))
	for i, n := range sorted {
		dirs[i] = n.Dir
	}
	return dirs
}

// Filter keeps the directories named in the comma separated filter.
// Names may carry a scope, which is stripped.
func Filter(dirs []string, filter string) []string {
	names := naming.SplitList(filter)
	if len(names) == 0 {
		return dirs
	}

	wanted := make(map[string]bool, len(names))
	for _, name := range names {
		wanted[manifest.DirName(name)] = true
	}

	out := make([]string, 0, len(names))
	for _, dir := range dirs {
		if wanted[dir] {
			out = append(out, dir)
		}
	}
	return out
}
