package driver

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// LockFileName sits next to package.yml.
const LockFileName = "package.lock"

// Lockfile pins resolved dependency sources so repeat fetches are
// reproducible.
type Lockfile struct {
	Version  int         `yaml:"version"`
	Packages []LockedDep `yaml:"packages"`
}

// LockedDep records where a dependency came from and the exact commit it
// resolved to.
type LockedDep struct {
	Name   string `yaml:"name"`
	Git    string `yaml:"git,omitempty"`
	Commit string `yaml:"commit,omitempty"`
	Path   string `yaml:"path,omitempty"`
}

const lockfileVersion = 1

// LoadLockfile reads package.lock; a missing file yields an empty lockfile.
func LoadLockfile(path string) (*Lockfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Lockfile{Version: lockfileVersion}, nil
		}
		return nil, fmt.Errorf("lockfile: read %s: %w", path, err)
	}
	var lock Lockfile
	if err := yaml.Unmarshal(data, &lock); err != nil {
		return nil, fmt.Errorf("lockfile: parse %s: %w", path, err)
	}
	if lock.Version == 0 {
		lock.Version = lockfileVersion
	}
	return &lock, nil
}

// Save writes the lockfile with packages in name order.
func (l *Lockfile) Save(path string) error {
	l.Version = lockfileVersion
	sort.Slice(l.Packages, func(a, b int) bool {
		return l.Packages[a].Name < l.Packages[b].Name
	})
	data, err := yaml.Marshal(l)
	if err != nil {
		return fmt.Errorf("lockfile: encode: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("lockfile: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("lockfile: write %s: %w", path, err)
	}
	return nil
}

// Pin inserts or replaces the entry for name.
func (l *Lockfile) Pin(dep LockedDep) {
	for i := range l.Packages {
		if l.Packages[i].Name == dep.Name {
			l.Packages[i] = dep
			return
		}
	}
	l.Packages = append(l.Packages, dep)
}

// Lookup returns the pinned entry for name.
func (l *Lockfile) Lookup(name string) (LockedDep, bool) {
	for _, dep := range l.Packages {
		if dep.Name == name {
			return dep, true
		}
	}
	return LockedDep{}, false
}
