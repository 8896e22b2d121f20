//go:build !windows

package socket

import (
	"context"
	"errors"
	"io"
	"net"
	"os"
	"path/filepath"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// shortSocketPath returns a socket path under a short temp dir; unix socket
// paths are limited to ~104 bytes on macOS.
func shortSocketPath(t *testing.T) string {
	t.Helper()
	dir, err := os.MkdirTemp("", "bl")
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.RemoveAll(dir) })
	return filepath.Join(dir, "biome.sock")
}

func echoServer(t *testing.T) string {
	t.Helper()
	path := shortSocketPath(t)
	ln, err := net.Listen("unix", path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = ln.Close() })

	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			go func(c net.Conn) {
				defer c.Close()
				_, _ = io.Copy(c, c)
			}(conn)
		}
	}()
	return path
}

func TestDial_ReadyAndDuplex(t *testing.T) {
	path := echoServer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	conn, err := NewDialer().Dial(ctx, path)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.Ready(ctx))

	_, err = conn.Write([]byte("ping"))
	require.NoError(t, err)
	buf := make([]byte, 4)
	_, err = io.ReadFull(conn, buf)
	require.NoError(t, err)
	assert.Equal(t, "ping", string(buf))
}

func TestDial_MissingEndpoint(t *testing.T) {
	_, err := NewDialer().Dial(context.Background(), shortSocketPath(t))
	require.Error(t, err)
	assert.True(t, errors.Is(err, syscall.ENOENT), "expected ENOENT, got %v", err)
}

func TestDial_ProbeErrorReportedByReady(t *testing.T) {
	path := echoServer(t)
	d := NewDialer()
	d.probe = func(io.ReadWriteCloser) error { return syscall.ECONNRESET }

	conn, err := d.Dial(context.Background(), path)
	require.NoError(t, err)
	defer conn.Close()

	assert.ErrorIs(t, conn.Ready(context.Background()), syscall.ECONNRESET)
}

func TestDial_ReadyPendingUntilContextEnds(t *testing.T) {
	path := echoServer(t)
	block := make(chan struct{})
	defer close(block)

	d := NewDialer()
	d.probe = func(io.ReadWriteCloser) error {
		<-block
		return nil
	}

	conn, err := d.Dial(context.Background(), path)
	require.NoError(t, err)
	defer conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, conn.Ready(ctx), context.DeadlineExceeded)
}

func TestConn_CloseBeforeReady(t *testing.T) {
	client, server := net.Pipe()
	defer server.Close()

	c := newConn(client)
	require.NoError(t, c.Close())
	assert.ErrorIs(t, c.Ready(context.Background()), net.ErrClosed)
}

func TestReadiness_FirstSignalWins(t *testing.T) {
	r := newReadiness()
	assert.True(t, r.settle(nil))
	assert.False(t, r.settle(errors.New("late error")))
	assert.NoError(t, r.wait(context.Background()))

	r = newReadiness()
	boom := errors.New("boom")
	assert.True(t, r.settle(boom))
	assert.False(t, r.settle(nil))
	assert.ErrorIs(t, r.wait(context.Background()), boom)
}

func TestReadiness_ConcurrentSettle(t *testing.T) {
	r := newReadiness()
	wins := make(chan bool, 10)
	for i := 0; i < 10; i++ {
		go func() { wins <- r.settle(nil) }()
	}
	won := 0
	for i := 0; i < 10; i++ {
		if <-wins {
			won++
		}
	}
	assert.Equal(t, 1, won)
}

func TestProbeReady_ConnectedSocket(t *testing.T) {
	path := echoServer(t)
	raw, err := net.Dial("unix", path)
	require.NoError(t, err)
	defer raw.Close()

	assert.NoError(t, probeReady(raw))
}
