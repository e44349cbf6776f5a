// Package debugger connects to the debugger service of a host and inserts
// breakpoints through it.
package debugger

import (
	"context"
	"fmt"
	"io"
	"net"
	"os"
	"time"

	"github.com/getlawrence/brkset/internal/domain"
)

// Supported debugger kinds
const (
	KindDAP   = "dap"
	KindDelve = "delve"
	KindPrint = "print"
)

// DefaultDialTimeout bounds connecting to a debugger service
const DefaultDialTimeout = 10 * time.Second

// Client is a connected debugger session
type Client interface {
	domain.Debugger
	io.Closer
}

type options struct {
	dialTimeout time.Duration
	out         io.Writer
}

// Option configures Dial
type Option func(*options)

func WithDialTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.dialTimeout = d
		}
	}
}

// WithOutput sets where the print debugger writes breakpoints
func WithOutput(w io.Writer) Option {
	return func(o *options) {
		if w != nil {
			o.out = w
		}
	}
}

// Kinds lists the supported debugger kinds
func Kinds() []string {
	return []string{KindDAP, KindDelve, KindPrint}
}

// Dial opens a session with the debugger of the given kind listening on addr.
// The print debugger ignores addr.
func Dial(ctx context.Context, kind, addr string, opts ...Option) (Client, error) {
	o := options{dialTimeout: DefaultDialTimeout, out: os.Stdout}
	for _, opt := range opts {
		opt(&o)
	}

	switch kind {
	case KindPrint:
		return NewPrintDebugger(o.out), nil
	case KindDAP:
		conn, err := dial(ctx, addr, o.dialTimeout)
		if err != nil {
			return nil, err
		}
		c := NewDAPClient(conn, o.dialTimeout)
		if err := c.Initialize(ctx); err != nil {
			conn.Close()
			return nil, err
		}
		return c, nil
	case KindDelve:
		conn, err := dial(ctx, addr, o.dialTimeout)
		if err != nil {
			return nil, err
		}
		c, err := NewDelveClient(ctx, conn, o.dialTimeout)
		if err != nil {
			return nil, err
		}
		return c, nil
	default:
		return nil, fmt.Errorf("unsupported debugger type: %s", kind)
	}
}

func dial(ctx context.Context, addr string, timeout time.Duration) (net.Conn, error) {
	if addr == "" {
		return nil, fmt.Errorf("no debugger address configured")
	}
	timeoutCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var d net.Dialer
	conn, err := d.DialContext(timeoutCtx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to debugger at %s: %w", addr, err)
	}
	return conn, nil
}
