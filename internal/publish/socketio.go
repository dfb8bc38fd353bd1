package publish

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/specialistvlad/blueprintc/internal/ctxlog"
	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"
)

// DefaultConnectTimeout bounds the wait for the initial connection.
const DefaultConnectTimeout = 15 * time.Second

// SocketIOOptions configures a SocketIO publisher.
type SocketIOOptions struct {
	Namespace          string
	ConnectTimeout     time.Duration
	InsecureSkipVerify bool
}

// conn is the part of a socket client the publisher uses.
type conn interface {
	Emit(event string, args ...any) error
	Disconnect()
}

type socketConn struct {
	io *socket.Socket
}

func (c socketConn) Emit(event string, args ...any) error {
	return c.io.Emit(event, args...)
}

func (c socketConn) Disconnect() {
	c.io.Disconnect()
}

type dialFunc func(ctx context.Context, target *url.URL, opts SocketIOOptions, logger *slog.Logger) (conn, error)

// SocketIO publishes artifacts by emitting one CompiledEvent per artifact on
// a short-lived Socket.IO connection.
type SocketIO struct {
	target *url.URL
	opts   SocketIOOptions
	dial   dialFunc
}

var _ Publisher = (*SocketIO)(nil)

// NewSocketIO validates rawURL and returns a publisher for it. No
// connection is made until Publish.
func NewSocketIO(rawURL string, opts SocketIOOptions) (*SocketIO, error) {
	target, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse URL: %w", err)
	}
	switch target.Scheme {
	case "http", "https", "ws", "wss":
	default:
		return nil, fmt.Errorf("unsupported URL scheme %q in %s", target.Scheme, rawURL)
	}
	if target.Host == "" {
		return nil, fmt.Errorf("URL %s has no host", rawURL)
	}
	if opts.ConnectTimeout <= 0 {
		opts.ConnectTimeout = DefaultConnectTimeout
	}
	return &SocketIO{target: target, opts: opts, dial: dialSocketIO}, nil
}

// Publish connects, emits every artifact in order and disconnects.
func (s *SocketIO) Publish(ctx context.Context, artifacts []Artifact) error {
	logger := ctxlog.FromContext(ctx).With("publisher", "socketio", "url", s.target.String())
	if len(artifacts) == 0 {
		logger.Debug("Nothing to publish.")
		return nil
	}

	io, err := s.dial(ctx, s.target, s.opts, logger)
	if err != nil {
		return err
	}
	defer func() {
		logger.Debug("Disconnecting socket client")
		io.Disconnect()
	}()

	for _, a := range artifacts {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("publishing cancelled: %w", err)
		}
		logger.Info("Emitting compiled blueprint.", "event", CompiledEvent, "blueprint", a.Name, "bytes", len(a.Source))
		if err := io.Emit(CompiledEvent, payload(a)); err != nil {
			return fmt.Errorf("emitting %s for %s: %w", CompiledEvent, a.Name, err)
		}
	}
	return nil
}

// dialSocketIO opens a websocket-only connection and waits for the connect
// or connect_error event.
func dialSocketIO(ctx context.Context, target *url.URL, opts SocketIOOptions, logger *slog.Logger) (conn, error) {
	sopts := socket.DefaultOptions()
	sopts.SetPath(target.Path)
	if opts.InsecureSkipVerify {
		logger.Warn("Skipping TLS certificate verification")
		sopts.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}
	sopts.SetTransports(types.NewSet(transports.WebSocket))

	connectChan := make(chan error, 1)

	baseURL := fmt.Sprintf("%s://%s", target.Scheme, target.Host)
	manager := socket.NewManager(baseURL, sopts)
	io := manager.Socket(opts.Namespace, sopts)

	io.Once(types.EventName("connect"), func(...any) {
		logger.Info("Successfully connected", "sid", io.Id())
		connectChan <- nil
	})
	io.Once(types.EventName("connect_error"), func(errs ...any) {
		err := fmt.Errorf("connect_error")
		if len(errs) > 0 {
			if e, ok := errs[0].(error); ok {
				err = e
			}
		}
		logger.Debug("Connection attempt failed", "error", err)
		connectChan <- err
	})

	logger.Debug("Initiating connection...")
	io.Connect()

	select {
	case err := <-connectChan:
		if err != nil {
			io.Disconnect()
			return nil, fmt.Errorf("socket.io connection failed: %w", err)
		}
		return socketConn{io: io}, nil
	case <-ctx.Done():
		io.Disconnect()
		return nil, fmt.Errorf("context cancelled while waiting for socket.io connection")
	case <-time.After(opts.ConnectTimeout):
		io.Disconnect()
		return nil, fmt.Errorf("timed out after %s waiting for socket.io connection", opts.ConnectTimeout)
	}
}
