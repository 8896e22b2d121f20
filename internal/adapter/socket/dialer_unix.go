//go:build !windows

package socket

import (
	"context"
	"fmt"
	"io"
	"net"
	"syscall"

	"golang.org/x/sys/unix"
)

func dialEndpoint(ctx context.Context, endpoint string) (io.ReadWriteCloser, error) {
	var d net.Dialer
	return d.DialContext(ctx, "unix", endpoint)
}

// probeReady reports the pending socket error, if any, on a connected socket.
// A peer that accepted and immediately failed surfaces here rather than on the
// first protocol write.
func probeReady(rwc io.ReadWriteCloser) error {
	sc, ok := rwc.(syscall.Conn)
	if !ok {
		return nil
	}
	raw, err := sc.SyscallConn()
	if err != nil {
		return fmt.Errorf("raw conn: %w", err)
	}
	var soErr int
	var optErr error
	if err := raw.Control(func(fd uintptr) {
		soErr, optErr = unix.GetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_ERROR)
	}); err != nil {
		return fmt.Errorf("raw conn control: %w", err)
	}
	if optErr != nil {
		return fmt.Errorf("getsockopt SO_ERROR: %w", optErr)
	}
	if soErr != 0 {
		return syscall.Errno(soErr)
	}
	return nil
}
