package manifest

import (
	"fmt"
	"sync"
)

// Cache keeps the descriptors of the packages touched during a run, keyed by directory name.
type Cache struct {
	mu       sync.RWMutex
	reader   Reader
	packages map[string]*Package
}

// NewCache creates a Cache loading missing entries through reader.
func NewCache(reader Reader) *Cache {
	return &Cache{
		reader:   reader,
		packages: make(map[string]*Package),
	}
}

// Load returns the cached descriptor of name, reading it from workspace on first use.
func (c *Cache) Load(name, workspace string) (*Package, error) {
	if pkg, ok := c.Get(name); ok {
		return pkg, nil
	}

	pkg, err := c.reader.Read(name, workspace)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if cached, ok := c.packages[DirName(name)]; ok {
		return cached.Clone(), nil
	}
	c.packages[pkg.DirName] = pkg
	return pkg.Clone(), nil
}

// Get returns a copy of the cached descriptor of name.
func (c *Cache) Get(name string) (*Package, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	pkg, ok := c.packages[DirName(name)]
	if !ok {
		return nil, false
	}
	return pkg.Clone(), true
}

// Put stores pkg, replacing any cached descriptor of the same directory.
func (c *Cache) Put(pkg *Package) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.packages[pkg.DirName] = pkg.Clone()
}

// Patch shallow merges meta into the cached descriptor of name and returns the result.
func (c *Cache) Patch(name string, meta map[string]any) (*Package, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	pkg, ok := c.packages[DirName(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPackageNotCached, name)
	}
	for k, v := range meta {
		pkg.Meta[k] = v
	}
	if newName, ok := meta["name"].(string); ok && newName != "" {
		pkg.Name = newName
	}
	return pkg.Clone(), nil
}

// Reset drops every cached descriptor.
func (c *Cache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.packages = make(map[string]*Package)
}
