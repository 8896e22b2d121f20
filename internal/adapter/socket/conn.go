package socket

import (
	"context"
	"io"
	"net"
)

// Conn is a freshly dialed local connection that reports readiness once.
type Conn struct {
	io.ReadWriteCloser
	ready *readiness
}

func newConn(rwc io.ReadWriteCloser) *Conn {
	return &Conn{ReadWriteCloser: rwc, ready: newReadiness()}
}

// Ready blocks until the connection has reported readiness or an error.
func (c *Conn) Ready(ctx context.Context) error {
	return c.ready.wait(ctx)
}

// Close closes the connection. A connection closed before it reported
// readiness reports net.ErrClosed to waiters.
func (c *Conn) Close() error {
	c.ready.settle(net.ErrClosed)
	return c.ReadWriteCloser.Close()
}
