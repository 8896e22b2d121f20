package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"biomelink/internal/domain"
)

// Bridge turns a discovered endpoint into a ready transport.
type Bridge struct {
	dialer domain.Dialer
	logger domain.Logger
}

// NewBridge creates a bridge that opens connections with dialer.
func NewBridge(dialer domain.Dialer, logger domain.Logger) *Bridge {
	return &Bridge{dialer: dialer, logger: logger}
}

// Open connects to endpoint and returns the transport once the connection has
// reported readiness. The connection is closed on every failure path; on
// success it belongs to the caller.
func (b *Bridge) Open(ctx context.Context, endpoint string) (*domain.Transport, error) {
	if strings.TrimSpace(endpoint) == "" {
		return nil, domain.ErrConnectionNotEstablished
	}

	conn, err := b.dialer.Dial(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrConnectFailure, endpoint, err)
	}

	if err := conn.Ready(ctx); err != nil {
		if closeErr := conn.Close(); closeErr != nil {
			b.logger.Debug("close unready connection", "endpoint", endpoint, "err", closeErr)
		}
		if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
			return nil, fmt.Errorf("await readiness of %s: %w", endpoint, err)
		}
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrConnectFailure, endpoint, err)
	}

	b.logger.Debug("connection ready", "endpoint", endpoint)
	return domain.NewTransport(conn), nil
}
