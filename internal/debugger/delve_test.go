package debugger

import (
	"context"
	"errors"
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"sync"
	"testing"
	"time"

	"github.com/getlawrence/brkset/internal/domain"
	"github.com/go-delve/delve/service/api"
	"github.com/go-delve/delve/service/rpc2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RPCServer mimics the subset of the Delve headless API the client uses
type RPCServer struct {
	mu          sync.Mutex
	apiVersion  int
	breakpoints []api.Breakpoint
}

func (s *RPCServer) SetApiVersion(args api.SetAPIVersionIn, out *api.SetAPIVersionOut) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.apiVersion = args.APIVersion
	return nil
}

func (s *RPCServer) CreateBreakpoint(args rpc2.CreateBreakpointIn, out *rpc2.CreateBreakpointOut) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if args.Breakpoint.Line == 0 {
		return errors.New("could not find statement")
	}
	bp := args.Breakpoint
	bp.ID = len(s.breakpoints) + 1
	s.breakpoints = append(s.breakpoints, bp)
	out.Breakpoint = bp
	return nil
}

func (s *RPCServer) ListBreakpoints(args rpc2.ListBreakpointsIn, out *rpc2.ListBreakpointsOut) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.breakpoints {
		out.Breakpoints = append(out.Breakpoints, &s.breakpoints[i])
	}
	return nil
}

func newFakeDelve(t *testing.T) (*RPCServer, net.Conn) {
	t.Helper()
	srv := &RPCServer{}
	rpcServer := rpc.NewServer()
	require.NoError(t, rpcServer.Register(srv))

	client, server := net.Pipe()
	go rpcServer.ServeCodec(jsonrpc.NewServerCodec(server))
	return srv, client
}

func TestDelveClient_CreateBreakpoint(t *testing.T) {
	srv, conn := newFakeDelve(t)
	c, err := NewDelveClient(context.Background(), conn, time.Second)
	require.NoError(t, err)
	defer c.Close()

	bp := domain.NewBreakpoint(domain.Position{File: "/src/main.go", Line: 12})
	require.NoError(t, c.InsertBreakpoint(context.Background(), bp))

	srv.mu.Lock()
	defer srv.mu.Unlock()
	assert.Equal(t, 2, srv.apiVersion)
	require.Len(t, srv.breakpoints, 1)
	assert.Equal(t, "/src/main.go", srv.breakpoints[0].File)
	assert.Equal(t, 12, srv.breakpoints[0].Line)
	assert.Empty(t, srv.breakpoints[0].HitCond)
}

func TestDelveClient_ServerError(t *testing.T) {
	_, conn := newFakeDelve(t)
	c, err := NewDelveClient(context.Background(), conn, time.Second)
	require.NoError(t, err)
	defer c.Close()

	err = c.InsertBreakpoint(context.Background(), domain.Breakpoint{File: "/src/main.go"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "could not find statement")
}

// silentPeer accepts connections and never answers
func silentPeer(t *testing.T) string {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	var mu sync.Mutex
	var conns []net.Conn
	t.Cleanup(func() {
		l.Close()
		mu.Lock()
		defer mu.Unlock()
		for _, c := range conns {
			c.Close()
		}
	})
	go func() {
		for {
			conn, err := l.Accept()
			if err != nil {
				return
			}
			mu.Lock()
			conns = append(conns, conn)
			mu.Unlock()
		}
	}()
	return l.Addr().String()
}

func TestDial_DelveSilentPeerTimesOut(t *testing.T) {
	addr := silentPeer(t)

	start := time.Now()
	_, err := Dial(context.Background(), KindDelve, addr, WithDialTimeout(200*time.Millisecond))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "delve handshake")
	assert.Less(t, time.Since(start), 3*time.Second)
}

func TestDial_DelveHandshakeHonorsCancel(t *testing.T) {
	addr := silentPeer(t)
	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(100*time.Millisecond, cancel)

	start := time.Now()
	_, err := Dial(ctx, KindDelve, addr, WithDialTimeout(time.Minute))
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Less(t, time.Since(start), 3*time.Second)
}

func TestDelveClient_StalledCallTimesOut(t *testing.T) {
	srv, conn := newFakeDelve(t)
	c, err := NewDelveClient(context.Background(), conn, 200*time.Millisecond)
	require.NoError(t, err)
	defer c.Close()

	// hold the server lock so CreateBreakpoint never answers
	srv.mu.Lock()
	defer srv.mu.Unlock()

	start := time.Now()
	err = c.InsertBreakpoint(context.Background(), domain.NewBreakpoint(domain.Position{File: "/src/main.go", Line: 3}))
	require.Error(t, err)
	assert.Less(t, time.Since(start), 3*time.Second)
}
