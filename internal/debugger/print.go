package debugger

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/getlawrence/brkset/internal/domain"
)

// PrintDebugger records each breakpoint as a file:line line on a writer
type PrintDebugger struct {
	mu sync.Mutex
	w  io.Writer
}

func NewPrintDebugger(w io.Writer) *PrintDebugger {
	return &PrintDebugger{w: w}
}

func (p *PrintDebugger) InsertBreakpoint(ctx context.Context, bp domain.Breakpoint) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, err := fmt.Fprintf(p.w, "%s:%d\n", bp.File, bp.Line); err != nil {
		return fmt.Errorf("failed to write breakpoint: %w", err)
	}
	return nil
}

func (p *PrintDebugger) Close() error { return nil }
