package locator

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"biomelink/internal/adapter/platform"
	"biomelink/internal/domain"
)

var (
	linuxX64 = domain.PlatformKey{OS: domain.OSLinux, Arch: domain.ArchX64}
	winARM64 = domain.PlatformKey{OS: domain.OSWindows, Arch: domain.ArchARM64}
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"), 0755); err != nil {
		t.Fatal(err)
	}
}

func installWrapper(t *testing.T, root, name string) {
	t.Helper()
	writeFile(t, filepath.Join(root, "node_modules", ".bin", name))
}

func TestLocate_OverrideWins(t *testing.T) {
	root := t.TempDir()
	installWrapper(t, root, "biome")
	override := filepath.Join(t.TempDir(), "custom-biome")
	writeFile(t, override)

	for _, key := range []domain.PlatformKey{linuxX64, winARM64, {OS: "plan9", Arch: "386"}} {
		got, found, err := New(platform.Lookup).Locate(override, root, key)
		if err != nil {
			t.Fatalf("Locate(%s) error: %v", key, err)
		}
		if !found || got != override {
			t.Errorf("Locate(%s) = (%q, %v), want (%q, true)", key, got, found, override)
		}
	}
}

func TestLocate_OverrideIgnoresEmptyRoot(t *testing.T) {
	override := filepath.Join(t.TempDir(), "biome")
	writeFile(t, override)

	got, found, err := New(platform.Lookup).Locate(override, "", linuxX64)
	if err != nil || !found || got != override {
		t.Errorf("Locate() = (%q, %v, %v), want override", got, found, err)
	}
}

func TestLocate_MissingOverrideFallsBack(t *testing.T) {
	root := t.TempDir()
	installWrapper(t, root, "biome")

	got, found, err := New(platform.Lookup).Locate(filepath.Join(root, "nope"), root, linuxX64)
	if err != nil {
		t.Fatalf("Locate() error: %v", err)
	}
	want := filepath.Join(root, "node_modules", "@biomejs", "cli-linux-x64", "biome")
	if !found || got != want {
		t.Errorf("Locate() = (%q, %v), want (%q, true)", got, found, want)
	}
}

func TestLocate_OverrideDirectoryIgnored(t *testing.T) {
	root := t.TempDir()
	_, found, err := New(platform.Lookup).Locate(t.TempDir(), root, linuxX64)
	if err != nil {
		t.Fatalf("Locate() error: %v", err)
	}
	if found {
		t.Error("a directory override must not resolve")
	}
}

func TestLocate_PlatformSiblingIsDeterministic(t *testing.T) {
	root := t.TempDir()
	installWrapper(t, root, "biome")
	loc := New(platform.Lookup)

	first, _, _ := loc.Locate("", root, linuxX64)
	for i := 0; i < 3; i++ {
		again, found, err := loc.Locate("", root, linuxX64)
		if err != nil || !found || again != first {
			t.Fatalf("run %d: got (%q, %v, %v), want %q", i, again, found, err, first)
		}
	}
}

func TestLocate_SiblingNotRequiredToExist(t *testing.T) {
	root := t.TempDir()
	installWrapper(t, root, "biome")

	got, found, err := New(platform.Lookup).Locate("", root, linuxX64)
	if err != nil || !found {
		t.Fatalf("Locate() = (%q, %v, %v)", got, found, err)
	}
	if _, statErr := os.Stat(got); !os.IsNotExist(statErr) {
		t.Errorf("expected computed sibling %q not to exist, stat err = %v", got, statErr)
	}
}

func TestLocate_WindowsUsesExeAndCmdWrapper(t *testing.T) {
	root := t.TempDir()
	installWrapper(t, root, "biome.cmd")

	got, found, err := New(platform.Lookup).Locate("", root, winARM64)
	if err != nil {
		t.Fatalf("Locate() error: %v", err)
	}
	want := filepath.Join(root, "node_modules", "@biomejs", "cli-win32-arm64", "biome.exe")
	if !found || got != want {
		t.Errorf("Locate() = (%q, %v), want (%q, true)", got, found, want)
	}
}

func TestLocate_NothingInstalled(t *testing.T) {
	got, found, err := New(platform.Lookup).Locate("", t.TempDir(), linuxX64)
	if err != nil {
		t.Fatalf("Locate() error: %v", err)
	}
	if found || got != "" {
		t.Errorf("Locate() = (%q, %v), want absence", got, found)
	}
}

func TestLocate_UnsupportedPlatformDegradesToAbsence(t *testing.T) {
	root := t.TempDir()
	installWrapper(t, root, "biome")

	got, found, err := New(platform.Lookup).Locate("", root, domain.PlatformKey{OS: "freebsd", Arch: domain.ArchX64})
	if err != nil {
		t.Fatalf("Locate() error: %v", err)
	}
	if found || got != "" {
		t.Errorf("Locate() = (%q, %v), want absence", got, found)
	}
}

func TestLocate_MalformedInput(t *testing.T) {
	loc := New(platform.Lookup)
	tests := []struct {
		name           string
		override, root string
	}{
		{"empty root", "", ""},
		{"nul in root", "", "/tmp/a\x00b"},
		{"nul in override", "/tmp/a\x00b", "/tmp"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := loc.Locate(tt.override, tt.root, linuxX64)
			if !errors.Is(err, domain.ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestLocate_RelativeRootMadeAbsolute(t *testing.T) {
	root := t.TempDir()
	installWrapper(t, root, "biome")
	t.Chdir(root)

	got, found, err := New(platform.Lookup).Locate("", ".", linuxX64)
	if err != nil || !found {
		t.Fatalf("Locate() = (%q, %v, %v)", got, found, err)
	}
	if !filepath.IsAbs(got) {
		t.Errorf("expected absolute path, got %q", got)
	}
}
