package app

import (
	"bytes"
	"context"
	"sync"

	"biomelink/internal/domain"
)

// mockLocator records calls and returns configured values.
type mockLocator struct {
	path  string
	found bool
	err   error

	called       bool
	lastOverride string
	lastRoot     string
	lastKey      domain.PlatformKey
}

func (m *mockLocator) Locate(override, root string, key domain.PlatformKey) (string, bool, error) {
	m.called = true
	m.lastOverride = override
	m.lastRoot = root
	m.lastKey = key
	return m.path, m.found, m.err
}

// mockLauncher records calls and returns configured values.
type mockLauncher struct {
	discoverFn  func(ctx context.Context, command, tmpDir string) (string, error)
	called      bool
	lastCommand string
	lastTmpDir  string
}

func (m *mockLauncher) Discover(ctx context.Context, command, tmpDir string) (string, error) {
	m.called = true
	m.lastCommand = command
	m.lastTmpDir = tmpDir
	return m.discoverFn(ctx, command, tmpDir)
}

// mockConn is an in-memory PendingConn.
type mockConn struct {
	bytes.Buffer
	readyErr error
	// block makes Ready wait for ctx instead of returning readyErr.
	block  bool
	closed bool
}

func (m *mockConn) Ready(ctx context.Context) error {
	if m.block {
		<-ctx.Done()
		return ctx.Err()
	}
	return m.readyErr
}

func (m *mockConn) Close() error {
	m.closed = true
	return nil
}

// mockDialer hands out a configured connection.
type mockDialer struct {
	conn         *mockConn
	err          error
	called       bool
	lastEndpoint string
}

func (m *mockDialer) Dial(_ context.Context, endpoint string) (domain.PendingConn, error) {
	m.called = true
	m.lastEndpoint = endpoint
	if m.err != nil {
		return nil, m.err
	}
	return m.conn, nil
}

// mockFinder returns a configured project configuration lookup.
type mockFinder struct {
	path   string
	found  bool
	err    error
	called bool
}

func (m *mockFinder) FindConfig(root string) (string, bool, error) {
	m.called = true
	return m.path, m.found, m.err
}

// mockLogger collects messages.
type mockLogger struct {
	mu       sync.Mutex
	messages []string
}

func (m *mockLogger) add(msg string) {
	m.mu.Lock()
	m.messages = append(m.messages, msg)
	m.mu.Unlock()
}

func (m *mockLogger) Debug(msg string, args ...any) { m.add("DEBUG: " + msg) }
func (m *mockLogger) Info(msg string, args ...any)  { m.add(msg) }
func (m *mockLogger) Warn(msg string, args ...any)  { m.add("WARN: " + msg) }
func (m *mockLogger) Error(msg string, args ...any) { m.add("ERROR: " + msg) }
