package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"biomelink/internal/domain"
)

// DiscoveryArg asks the Biome binary to print the path of its server socket.
const DiscoveryArg = "__print_socket"

const (
	defaultWaitDelay = 2 * time.Second
	stderrTailSize   = 2048
	readChunkSize    = 4096
)

// DiscoveryLauncher starts the Biome binary in socket-discovery mode.
type DiscoveryLauncher struct {
	logger    domain.Logger
	waitDelay time.Duration
}

// NewDiscoveryLauncher creates a launcher that reports through logger.
func NewDiscoveryLauncher(logger domain.Logger) *DiscoveryLauncher {
	return &DiscoveryLauncher{logger: logger, waitDelay: defaultWaitDelay}
}

type handshake struct {
	endpoint string
	err      error
}

// Discover runs "<command> __print_socket" with the temp directory forced to
// tmpDir and returns the first line the process writes to stdout.
//
// It does not wait for the process to exit. The rest of stdout is drained and
// discarded, and the process is reaped in the background once it exits. If ctx
// ends before an endpoint arrives the process is killed.
func (l *DiscoveryLauncher) Discover(ctx context.Context, command, tmpDir string) (string, error) {
	cmd := exec.Command(command, DiscoveryArg)
	cmd.Env = os.Environ()
	if tmpDir != "" {
		for _, name := range tempDirVars {
			cmd.Env = setEnv(cmd.Env, name, tmpDir)
		}
	}
	cmd.SysProcAttr = sysProcAttr()
	// Bounds Wait when a grandchild inherits stderr and keeps it open.
	cmd.WaitDelay = l.waitDelay
	stderr := &tailBuffer{max: stderrTailSize}
	cmd.Stderr = stderr

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return "", fmt.Errorf("%w: stdout pipe: %w", domain.ErrSpawnFailure, err)
	}
	if err := cmd.Start(); err != nil {
		return "", fmt.Errorf("%w: %s: %w", domain.ErrSpawnFailure, command, err)
	}

	pid := cmd.Process.Pid
	l.logger.Debug("discovery process started", "pid", pid, "command", command, "tmpdir", tmpDir)

	result := make(chan handshake, 1)
	go l.readEndpoint(cmd, command, stdout, stderr, result)

	select {
	case <-ctx.Done():
		l.kill(cmd)
		// Unblocks the reader if a grandchild still holds the write end.
		_ = stdout.Close()
		return "", fmt.Errorf("await endpoint from %s: %w", command, ctx.Err())
	case h := <-result:
		if h.err != nil {
			l.kill(cmd)
			return "", h.err
		}
		l.logger.Info("endpoint discovered", "pid", pid, "endpoint", h.endpoint)
		return h.endpoint, nil
	}
}

func (l *DiscoveryLauncher) kill(cmd *exec.Cmd) {
	if err := killProcess(cmd.Process); err != nil && !errors.Is(err, os.ErrProcessDone) {
		l.logger.Debug("kill discovery process", "pid", cmd.Process.Pid, "err", err)
	}
}

// readEndpoint delivers exactly one handshake: the first chunk of stdout, or
// the reason none arrived. Later chunks are drained and discarded so the
// server never blocks on a full pipe, then the process is reaped.
func (l *DiscoveryLauncher) readEndpoint(cmd *exec.Cmd, command string, stdout io.Reader, stderr *tailBuffer, result chan<- handshake) {
	buf := make([]byte, readChunkSize)
	for {
		n, err := stdout.Read(buf)
		if n > 0 {
			if endpoint := firstLine(buf[:n]); endpoint != "" {
				result <- handshake{endpoint: endpoint}
			} else {
				result <- handshake{err: fmt.Errorf("%w: %s %s printed a blank line", domain.ErrNoEndpointProduced, command, DiscoveryArg)}
			}
			_, _ = io.Copy(io.Discard, stdout)
			if waitErr := cmd.Wait(); waitErr != nil {
				l.logger.Debug("discovery process exited", "pid", cmd.Process.Pid, "err", waitErr)
			}
			return
		}
		if err != nil {
			break
		}
	}

	cause := cmd.Wait()
	var stderrNote string
	if tail := stderr.String(); tail != "" {
		stderrNote = " (stderr: " + tail + ")"
	}
	var err error
	if cause != nil {
		err = fmt.Errorf("%w: %s %s: %w%s", domain.ErrNoEndpointProduced, command, DiscoveryArg, cause, stderrNote)
	} else {
		err = fmt.Errorf("%w: %s %s exited without output%s", domain.ErrNoEndpointProduced, command, DiscoveryArg, stderrNote)
	}
	result <- handshake{err: err}
}

// firstLine decodes a stdout chunk and returns its first trimmed line.
func firstLine(chunk []byte) string {
	s := strings.ToValidUTF8(string(chunk), string(utf8.RuneError))
	s = strings.TrimSpace(s)
	if i := strings.IndexAny(s, "\r\n"); i >= 0 {
		s = strings.TrimSpace(s[:i])
	}
	return s
}

// setEnv replaces or appends name=value in env.
func setEnv(env []string, name, value string) []string {
	out := make([]string, 0, len(env)+1)
	for _, kv := range env {
		k, _, _ := strings.Cut(kv, "=")
		if k == name || (runtime.GOOS == "windows" && strings.EqualFold(k, name)) {
			continue
		}
		out = append(out, kv)
	}
	return append(out, name+"="+value)
}

// tailBuffer keeps the last max bytes written to it.
type tailBuffer struct {
	mu  sync.Mutex
	max int
	buf []byte
}

func (b *tailBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.buf = append(b.buf, p...)
	if over := len(b.buf) - b.max; over > 0 {
		b.buf = b.buf[over:]
	}
	return len(p), nil
}

func (b *tailBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return strings.TrimSpace(string(b.buf))
}
