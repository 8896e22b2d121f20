// Package workspace looks for Biome project configuration under a root.
package workspace

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ConfigNames are the file names that mark a Biome project.
var ConfigNames = []string{"biome.json", "biome.jsonc"}

// errFound stops the walk at the first match.
var errFound = errors.New("found")

// Finder walks a directory tree for Biome configuration files.
type Finder struct{}

// NewFinder creates a Finder.
func NewFinder() *Finder {
	return &Finder{}
}

// FindConfig returns the first configuration file under root in lexical walk
// order. node_modules and dot-directories are not descended into. A missing
// root is reported as not found.
func (f *Finder) FindConfig(root string) (string, bool, error) {
	var match string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			// Unreadable subtrees are skipped.
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if path != root && skipDir(d.Name()) {
				return fs.SkipDir
			}
			return nil
		}
		if isConfigName(d.Name()) {
			match = path
			return errFound
		}
		return nil
	})
	switch {
	case errors.Is(err, errFound):
		return match, true, nil
	case errors.Is(err, os.ErrNotExist):
		return "", false, nil
	case err != nil:
		return "", false, err
	}
	return "", false, nil
}

func skipDir(name string) bool {
	return name == "node_modules" || strings.HasPrefix(name, ".")
}

func isConfigName(name string) bool {
	for _, n := range ConfigNames {
		if name == n {
			return true
		}
	}
	return false
}
