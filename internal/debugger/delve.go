package debugger

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"sync"
	"time"

	"github.com/getlawrence/brkset/internal/domain"
	"github.com/go-delve/delve/service/api"
	"github.com/go-delve/delve/service/rpc2"
)

// DelveClient inserts breakpoints through a Delve headless JSON-RPC server
type DelveClient struct {
	mu      sync.Mutex
	conn    net.Conn
	client  *rpc2.RPCClient
	timeout time.Duration
}

// NewDelveClient negotiates the API version over conn. timeout bounds the
// handshake and each later call; a peer that does not answer in time fails
// the session instead of blocking.
func NewDelveClient(ctx context.Context, conn net.Conn, timeout time.Duration) (*DelveClient, error) {
	if timeout <= 0 {
		timeout = DefaultDialTimeout
	}
	c := &DelveClient{conn: conn, timeout: timeout}

	err := c.bounded(ctx, func() error {
		// NewClientFromConn drops a failed SetApiVersion; listing breakpoints
		// confirms the session answers
		c.client = rpc2.NewClientFromConn(conn)
		_, err := c.client.ListBreakpoints(false)
		return err
	})
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("delve handshake with %s failed: %w", conn.RemoteAddr(), err)
	}
	return c, nil
}

// bounded runs call under a connection deadline taken from the client timeout
// or ctx, whichever is sooner. Canceling ctx unblocks the call.
func (c *DelveClient) bounded(ctx context.Context, call func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	deadline := time.Now().Add(c.timeout)
	if dl, ok := ctx.Deadline(); ok && dl.Before(deadline) {
		deadline = dl
	}
	if err := c.conn.SetDeadline(deadline); err != nil {
		return err
	}
	defer c.conn.SetDeadline(time.Time{})

	stop := context.AfterFunc(ctx, func() {
		c.conn.SetDeadline(time.Now())
	})
	defer stop()

	if err := call(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return err
	}
	return nil
}

func (c *DelveClient) InsertBreakpoint(ctx context.Context, bp domain.Breakpoint) error {
	req := &api.Breakpoint{
		Name: bp.Name,
		File: bp.File,
		Line: bp.Line,
		Cond: bp.Condition,
	}
	if bp.HitCount > 0 {
		req.HitCond = "== " + strconv.Itoa(bp.HitCount)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	err := c.bounded(ctx, func() error {
		_, err := c.client.CreateBreakpoint(req)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to create breakpoint at %s:%d: %w", bp.File, bp.Line, err)
	}
	return nil
}

// Close disconnects and leaves the target stopped
func (c *DelveClient) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.conn.SetDeadline(time.Now().Add(c.timeout))
	return c.client.Disconnect(false)
}
