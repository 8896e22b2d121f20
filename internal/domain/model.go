package domain

import (
	"io"
	"sync"
)

// OS identifies an operating system family in a PlatformKey.
type OS string

// Arch identifies a CPU architecture in a PlatformKey.
type Arch string

const (
	OSWindows OS = "windows"
	OSMacOS   OS = "macos"
	OSLinux   OS = "linux"

	ArchX64   Arch = "x64"
	ArchARM64 Arch = "arm64"
)

// PlatformKey names the platform a Biome binary is built for.
type PlatformKey struct {
	OS   OS
	Arch Arch
}

// String returns the key as "<os>-<arch>", e.g. "linux-x64".
func (k PlatformKey) String() string {
	return string(k.OS) + "-" + string(k.Arch)
}

// ExecutableName returns base with the platform's executable suffix.
func (k PlatformKey) ExecutableName(base string) string {
	if k.OS == OSWindows {
		return base + ".exe"
	}
	return base
}

// PlatformTarget describes the prebuilt Biome distribution for one PlatformKey.
type PlatformTarget struct {
	// Triplet is the Rust target triple the binary was built for.
	Triplet string
	// Package is the npm package that ships the binary, e.g. "@biomejs/cli-linux-x64".
	Package string
}

// Transport is the duplex byte stream handed to the protocol layer.
// Reader and Writer are the same underlying connection.
type Transport struct {
	conn      io.ReadWriteCloser
	closeOnce sync.Once
	closeErr  error
}

// NewTransport wraps an established, ready connection.
func NewTransport(conn io.ReadWriteCloser) *Transport {
	return &Transport{conn: conn}
}

// Reader returns the read side of the connection.
func (t *Transport) Reader() io.Reader { return t.conn }

// Writer returns the write side of the connection.
func (t *Transport) Writer() io.Writer { return t.conn }

// Close closes the underlying connection. Subsequent calls return the first result.
func (t *Transport) Close() error {
	t.closeOnce.Do(func() {
		t.closeErr = t.conn.Close()
	})
	return t.closeErr
}
