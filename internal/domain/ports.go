package domain

import (
	"context"
	"io"
)

// Locator resolves the Biome executable for a platform.
// A missing binary is reported as found == false, not as an error; errors are
// reserved for malformed input.
type Locator interface {
	Locate(override, root string, key PlatformKey) (path string, found bool, err error)
}

// Launcher spawns a binary in socket-discovery mode and returns the endpoint it
// prints. It does not wait for the process to exit.
type Launcher interface {
	Discover(ctx context.Context, command, tmpDir string) (endpoint string, err error)
}

// PendingConn is an open connection whose readiness has not been observed yet.
type PendingConn interface {
	io.ReadWriteCloser
	// Ready blocks until the connection reports readiness or failure, or ctx ends.
	Ready(ctx context.Context) error
}

// Dialer opens a local connection to a discovered endpoint.
type Dialer interface {
	Dial(ctx context.Context, endpoint string) (PendingConn, error)
}

// ConfigFinder looks for a Biome project configuration under a root directory.
type ConfigFinder interface {
	FindConfig(root string) (path string, found bool, err error)
}

// Logger provides structured logging.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}
