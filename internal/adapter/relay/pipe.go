// Package relay pipes a connected transport to a pair of byte streams.
package relay

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"

	"biomelink/internal/domain"
)

const copyBufferSize = 32 * 1024

type copyResult struct {
	direction string
	err       error
}

// Pipe copies in to the transport and the transport to out until one side
// finishes or ctx ends, then closes the transport. End of input and a closed
// connection are normal terminations and return nil.
func Pipe(ctx context.Context, t *domain.Transport, in io.Reader, out io.Writer, logger domain.Logger) error {
	done := make(chan copyResult, 2)

	go func() {
		_, err := io.CopyBuffer(t.Writer(), in, make([]byte, copyBufferSize))
		done <- copyResult{direction: "client->server", err: err}
	}()
	go func() {
		_, err := io.CopyBuffer(out, t.Reader(), make([]byte, copyBufferSize))
		done <- copyResult{direction: "server->client", err: err}
	}()

	var res copyResult
	select {
	case res = <-done:
	case <-ctx.Done():
		_ = t.Close()
		return ctx.Err()
	}

	if err := t.Close(); err != nil {
		logger.Debug("close transport", "err", err)
	}
	if isClosed(res.err) {
		logger.Info("relay finished", "direction", res.direction)
		return nil
	}
	return fmt.Errorf("relay %s: %w", res.direction, res.err)
}

func isClosed(err error) bool {
	return err == nil ||
		errors.Is(err, io.EOF) ||
		errors.Is(err, io.ErrClosedPipe) ||
		errors.Is(err, net.ErrClosed) ||
		errors.Is(err, os.ErrClosed)
}
