package socket

import (
	"context"
	"io"

	"biomelink/internal/domain"
)

// Dialer opens local connections to the Biome server: unix domain sockets on
// POSIX systems, named pipes on Windows.
type Dialer struct {
	dial  func(ctx context.Context, endpoint string) (io.ReadWriteCloser, error)
	probe func(io.ReadWriteCloser) error
}

// NewDialer creates a Dialer for the running platform.
func NewDialer() *Dialer {
	return &Dialer{dial: dialEndpoint, probe: probeReady}
}

// Dial connects to endpoint and starts the readiness probe. The returned
// connection must not be used before Ready returns nil.
func (d *Dialer) Dial(ctx context.Context, endpoint string) (domain.PendingConn, error) {
	rwc, err := d.dial(ctx, endpoint)
	if err != nil {
		return nil, err
	}
	c := newConn(rwc)
	go func() {
		c.ready.settle(d.probe(rwc))
	}()
	return c, nil
}
