package locator

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"biomelink/internal/domain"
)

const binaryName = "biome"

// TargetLookup returns the prebuilt distribution for a platform.
type TargetLookup func(domain.PlatformKey) (domain.PlatformTarget, bool)

// Locator finds the Biome executable for a project.
type Locator struct {
	lookup TargetLookup
}

// New creates a Locator that resolves platform packages through lookup.
func New(lookup TargetLookup) *Locator {
	return &Locator{lookup: lookup}
}

// Locate resolves the executable, checking the override, then the project's
// node_modules install. Absence is reported with found == false.
//
// When the node_modules wrapper exists, the platform package's binary path is
// returned without checking that the binary itself is present: a successful
// npm install of the wrapper implies the optional platform dependency.
func (l *Locator) Locate(override, root string, key domain.PlatformKey) (string, bool, error) {
	if strings.ContainsRune(override, 0) {
		return "", false, fmt.Errorf("%w: override path contains NUL byte", domain.ErrInvalidInput)
	}
	if override != "" && isFile(override) {
		return override, true, nil
	}

	if root == "" {
		return "", false, fmt.Errorf("%w: project root is empty", domain.ErrInvalidInput)
	}
	if strings.ContainsRune(root, 0) {
		return "", false, fmt.Errorf("%w: project root contains NUL byte", domain.ErrInvalidInput)
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", false, fmt.Errorf("%w: project root: %v", domain.ErrInvalidInput, err)
	}

	modules := filepath.Join(absRoot, "node_modules")
	if !hasWrapper(modules, key) {
		return "", false, nil
	}

	target, ok := l.lookup(key)
	if !ok {
		return "", false, nil
	}
	return filepath.Join(modules, filepath.FromSlash(target.Package), key.ExecutableName(binaryName)), true, nil
}

// hasWrapper reports whether npm installed the biome launcher under node_modules/.bin.
func hasWrapper(modules string, key domain.PlatformKey) bool {
	names := []string{binaryName}
	if key.OS == domain.OSWindows {
		names = append(names, binaryName+".cmd")
	}
	for _, name := range names {
		if isFile(filepath.Join(modules, ".bin", name)) {
			return true
		}
	}
	return false
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
