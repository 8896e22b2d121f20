package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"biomelink/internal/domain"
)

// targets maps every supported platform to its prebuilt Biome distribution.
// It is never modified after package initialization.
var targets = map[domain.PlatformKey]domain.PlatformTarget{
	{OS: domain.OSWindows, Arch: domain.ArchX64}:   {Triplet: "x86_64-pc-windows-msvc", Package: "@biomejs/cli-win32-x64"},
	{OS: domain.OSWindows, Arch: domain.ArchARM64}: {Triplet: "aarch64-pc-windows-msvc", Package: "@biomejs/cli-win32-arm64"},
	{OS: domain.OSMacOS, Arch: domain.ArchX64}:     {Triplet: "x86_64-apple-darwin", Package: "@biomejs/cli-darwin-x64"},
	{OS: domain.OSMacOS, Arch: domain.ArchARM64}:   {Triplet: "aarch64-apple-darwin", Package: "@biomejs/cli-darwin-arm64"},
	{OS: domain.OSLinux, Arch: domain.ArchX64}:     {Triplet: "x86_64-unknown-linux-gnu", Package: "@biomejs/cli-linux-x64"},
	{OS: domain.OSLinux, Arch: domain.ArchARM64}:   {Triplet: "aarch64-unknown-linux-gnu", Package: "@biomejs/cli-linux-arm64"},
}

// Lookup returns the distribution for key.
func Lookup(key domain.PlatformKey) (domain.PlatformTarget, bool) {
	t, ok := targets[key]
	return t, ok
}

// Keys returns every supported platform key in a stable order.
func Keys() []domain.PlatformKey {
	keys := make([]domain.PlatformKey, 0, len(targets))
	for k := range targets {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })
	return keys
}

// Detect returns the key for the running process.
func Detect() domain.PlatformKey {
	return KeyFor(runtime.GOOS, runtime.GOARCH)
}

// KeyFor maps Go's GOOS/GOARCH names onto a PlatformKey. Values outside the
// supported set are passed through unchanged so that Lookup reports them as
// unsupported instead of guessing.
func KeyFor(goos, goarch string) domain.PlatformKey {
	var key domain.PlatformKey
	switch goos {
	case "darwin":
		key.OS = domain.OSMacOS
	case "windows":
		key.OS = domain.OSWindows
	case "linux":
		key.OS = domain.OSLinux
	default:
		key.OS = domain.OS(goos)
	}
	switch goarch {
	case "amd64":
		key.Arch = domain.ArchX64
	case "arm64":
		key.Arch = domain.ArchARM64
	default:
		key.Arch = domain.Arch(goarch)
	}
	return key
}

// Platform resolves environment-dependent paths.
type Platform struct{}

// New creates a Platform.
func New() *Platform {
	return &Platform{}
}

// ResolveBinary returns the binary override, checking flag, env, then the
// config file value. A relative override is made absolute against the working
// directory so the path that is checked is the path that is executed.
// An empty result means no override.
func (p *Platform) ResolveBinary(flagValue, configValue string) (string, error) {
	v := strings.TrimSpace(flagValue)
	if v == "" {
		v = strings.TrimSpace(os.Getenv("BIOMELINK_BIN"))
	}
	if v == "" {
		v = strings.TrimSpace(configValue)
	}
	if v == "" || strings.ContainsRune(v, 0) {
		return v, nil
	}
	abs, err := filepath.Abs(v)
	if err != nil {
		return "", fmt.Errorf("resolve binary override: %w", err)
	}
	return abs, nil
}

// ResolveTempDir returns the temp directory for the discovery process,
// checking flag, TMPDIR, the config file value, then os.TempDir.
func (p *Platform) ResolveTempDir(flagValue, configValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if v := os.Getenv("TMPDIR"); v != "" {
		return v
	}
	if configValue != "" {
		return configValue
	}
	return os.TempDir()
}

// ResolveRoot returns the absolute project root, defaulting to the working directory.
func (p *Platform) ResolveRoot(flagValue string) (string, error) {
	root := flagValue
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("resolve working directory: %w", err)
		}
		root = wd
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("resolve project root: %w", err)
	}
	return abs, nil
}
