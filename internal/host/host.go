// Package host locates the running host to attach to: the solution on disk
// and the debugger service that receives breakpoints.
package host

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/getlawrence/brkset/internal/debugger"
	"github.com/getlawrence/brkset/internal/logger"
	"github.com/getlawrence/brkset/internal/workspace"
)

// ErrHostUnavailable means no solution or no reachable debugger was found
var ErrHostUnavailable = errors.New("no running host instance is available")

// Options selects the host to attach to
type Options struct {
	// Solution root; empty means search upwards from the working directory
	Workspace string
	// Debugger kind, see debugger.Kinds
	Debugger string
	// Addresses tried in order
	Addrs       []string
	DialTimeout time.Duration
	// Destination of the print debugger
	Output    io.Writer
	Discovery workspace.Options
}

// Host is an attached session: the solution plus its debugger
type Host struct {
	*workspace.Solution
	client debugger.Client
}

// Close releases the debugger session
func (h *Host) Close() error {
	return h.client.Close()
}

// Locate attaches to the first reachable debugger and opens the solution.
// Best effort: the first address that accepts a session wins.
func Locate(ctx context.Context, opts Options, log logger.Logger) (*Host, error) {
	if log == nil {
		log = logger.Discard{}
	}

	root := opts.Workspace
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrHostUnavailable, err)
		}
		root = FindWorkspaceRoot(wd)
	}

	client, err := connect(ctx, opts, log)
	if err != nil {
		return nil, err
	}

	solution, err := workspace.Open(root, client, opts.Discovery)
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("%w: %v", ErrHostUnavailable, err)
	}
	log.Logf("Attached to solution %s", solution.Dir())
	return &Host{Solution: solution, client: client}, nil
}

func connect(ctx context.Context, opts Options, log logger.Logger) (debugger.Client, error) {
	dialOpts := []debugger.Option{debugger.WithDialTimeout(opts.DialTimeout), debugger.WithOutput(opts.Output)}

	if opts.Debugger == debugger.KindPrint {
		client, err := debugger.Dial(ctx, opts.Debugger, "", dialOpts...)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrHostUnavailable, err)
		}
		return client, nil
	}

	if len(opts.Addrs) == 0 {
		return nil, fmt.Errorf("%w: no %s debugger address configured", ErrHostUnavailable, opts.Debugger)
	}
	var lastErr error
	for _, addr := range opts.Addrs {
		client, err := debugger.Dial(ctx, opts.Debugger, addr, dialOpts...)
		if err != nil {
			log.Logf("Debugger at %s is not available: %v", addr, err)
			lastErr = err
			continue
		}
		log.Logf("Connected to %s debugger at %s", opts.Debugger, addr)
		return client, nil
	}
	return nil, fmt.Errorf("%w: %v", ErrHostUnavailable, lastErr)
}

// FindWorkspaceRoot walks up from start to the first directory holding a
// *.sln file. Without one, start itself is the root.
func FindWorkspaceRoot(start string) string {
	dir := start
	for {
		if matches, _ := filepath.Glob(filepath.Join(dir, "*.sln")); len(matches) > 0 {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return start
		}
		dir = parent
	}
}
