package debugger

import (
	"bufio"
	"context"
	"fmt"
	"net"
	"strconv"
	"sync"
	"time"

	"github.com/getlawrence/brkset/internal/domain"
	"github.com/google/go-dap"
)

// DAPClient inserts breakpoints through a Debug Adapter Protocol server.
// setBreakpoints replaces every breakpoint of a source, so the client keeps
// the breakpoints it has set per file and resends them all on each insert.
type DAPClient struct {
	mu      sync.Mutex
	conn    net.Conn
	reader  *bufio.Reader
	seq     int
	timeout time.Duration
	sources map[string][]dap.SourceBreakpoint
}

// NewDAPClient wraps an established connection. timeout bounds each request.
func NewDAPClient(conn net.Conn, timeout time.Duration) *DAPClient {
	if timeout <= 0 {
		timeout = DefaultDialTimeout
	}
	return &DAPClient{
		conn:    conn,
		reader:  bufio.NewReader(conn),
		seq:     1,
		timeout: timeout,
		sources: make(map[string][]dap.SourceBreakpoint),
	}
}

// Initialize performs the initialize handshake
func (c *DAPClient) Initialize(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	req := &dap.InitializeRequest{
		Request: c.newRequest("initialize"),
		Arguments: dap.InitializeRequestArguments{
			ClientID:        "brkset",
			ClientName:      "brkset",
			AdapterID:       "brkset",
			LinesStartAt1:   true,
			ColumnsStartAt1: true,
			PathFormat:      "path",
		},
	}
	if _, err := c.roundTrip(ctx, req, req.Seq); err != nil {
		return fmt.Errorf("failed to initialize debug adapter: %w", err)
	}
	return nil
}

func (c *DAPClient) InsertBreakpoint(ctx context.Context, bp domain.Breakpoint) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	sbp := dap.SourceBreakpoint{
		Line:      bp.Line,
		Column:    bp.Column,
		Condition: bp.Condition,
	}
	if bp.HitCount > 0 {
		sbp.HitCondition = strconv.Itoa(bp.HitCount)
	}
	set := append(append([]dap.SourceBreakpoint{}, c.sources[bp.File]...), sbp)

	req := &dap.SetBreakpointsRequest{
		Request: c.newRequest("setBreakpoints"),
		Arguments: dap.SetBreakpointsArguments{
			Source:      dap.Source{Path: bp.File},
			Breakpoints: set,
		},
	}
	if _, err := c.roundTrip(ctx, req, req.Seq); err != nil {
		return fmt.Errorf("failed to set breakpoint at %s:%d: %w", bp.File, bp.Line, err)
	}
	c.sources[bp.File] = set
	return nil
}

// Close detaches without terminating the debuggee and closes the connection
func (c *DAPClient) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	req := &dap.DisconnectRequest{
		Request:   c.newRequest("disconnect"),
		Arguments: &dap.DisconnectArguments{TerminateDebuggee: false},
	}
	// the adapter may drop the connection before answering
	_, _ = c.roundTrip(context.Background(), req, req.Seq)
	return c.conn.Close()
}

func (c *DAPClient) newRequest(command string) dap.Request {
	r := dap.Request{
		ProtocolMessage: dap.ProtocolMessage{Seq: c.seq, Type: "request"},
		Command:         command,
	}
	c.seq++
	return r
}

// roundTrip sends req and waits for the response to it, skipping events
func (c *DAPClient) roundTrip(ctx context.Context, req dap.Message, seq int) (dap.ResponseMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	deadline := time.Now().Add(c.timeout)
	if dl, ok := ctx.Deadline(); ok && dl.Before(deadline) {
		deadline = dl
	}
	if err := c.conn.SetDeadline(deadline); err != nil {
		return nil, err
	}
	defer c.conn.SetDeadline(time.Time{})

	if err := dap.WriteProtocolMessage(c.conn, req); err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	for {
		msg, err := dap.ReadProtocolMessage(c.reader)
		if err != nil {
			return nil, fmt.Errorf("failed to read response: %w", err)
		}
		resp, ok := msg.(dap.ResponseMessage)
		if !ok || resp.GetResponse().RequestSeq != seq {
			continue
		}
		if r := resp.GetResponse(); !r.Success {
			return nil, responseError(resp)
		}
		return resp, nil
	}
}

func responseError(resp dap.ResponseMessage) error {
	if e, ok := resp.(*dap.ErrorResponse); ok && e.Body.Error != nil && e.Body.Error.Format != "" {
		return fmt.Errorf("%s: %s", e.Command, e.Body.Error.Format)
	}
	r := resp.GetResponse()
	if r.Message != "" {
		return fmt.Errorf("%s: %s", r.Command, r.Message)
	}
	return fmt.Errorf("%s failed", r.Command)
}
