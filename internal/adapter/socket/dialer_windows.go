//go:build windows

package socket

import (
	"context"
	"fmt"
	"io"
	"os"

	"golang.org/x/sys/windows"
)

// dialEndpoint opens a named pipe client handle for overlapped I/O so reads and
// writes from different goroutines do not serialize on the handle.
// ERROR_PIPE_BUSY is returned to the caller like any other open error.
func dialEndpoint(ctx context.Context, endpoint string) (io.ReadWriteCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	name, err := windows.UTF16PtrFromString(endpoint)
	if err != nil {
		return nil, fmt.Errorf("pipe name: %w", err)
	}
	h, err := windows.CreateFile(name,
		windows.GENERIC_READ|windows.GENERIC_WRITE,
		0, nil,
		windows.OPEN_EXISTING,
		windows.FILE_FLAG_OVERLAPPED,
		0)
	if err != nil {
		return nil, &os.PathError{Op: "open", Path: endpoint, Err: err}
	}
	return os.NewFile(uintptr(h), endpoint), nil
}

// probeReady is a no-op: a named pipe client handle is connected once CreateFile succeeds.
func probeReady(io.ReadWriteCloser) error {
	return nil
}
