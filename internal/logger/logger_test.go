package logger

import (
	"bytes"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

// syncBuffer guards a buffer shared with the spinner goroutine
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestStdoutLogger(t *testing.T) {
	var buf bytes.Buffer
	l := NewStdoutLogger(&buf)

	l.Logf("Project found: %s", "Api")
	l.Logf("already terminated\n")
	l.Log("plain")
	s := l.StartSpinner("Setting breakpoints...")
	s.Update("ignored")
	s.Stop()

	assert.Equal(t, "Project found: Api\nalready terminated\nplain\nSetting breakpoints...\n", buf.String())
}

func TestUILogger_SpinnerLifecycle(t *testing.T) {
	out := &syncBuffer{}
	l := NewUILogger(out)

	s := l.StartSpinner("Walking Api")
	l.Logf("Host is busy. Retrying in %s...", "500ms")
	s.Update("Walking Core")
	s.Stop()
	l.Log("done")

	got := out.String()
	assert.Contains(t, got, "Host is busy. Retrying in 500ms...\n")
	assert.Contains(t, got, "✓ Walking Core\n")
	assert.True(t, strings.HasSuffix(got, "done\n"))
}

func TestUILogger_FailMark(t *testing.T) {
	out := &syncBuffer{}
	l := NewUILogger(out)

	l.StartSpinner("Walking Api").Fail()
	assert.Contains(t, out.String(), "✗ Walking Api\n")
}

func TestUILogger_NewSpinnerStopsPrevious(t *testing.T) {
	out := &syncBuffer{}
	l := NewUILogger(out)

	l.StartSpinner("first")
	l.StartSpinner("second").Stop()

	got := out.String()
	assert.Contains(t, got, "✓ first\n")
	assert.Contains(t, got, "✓ second\n")
}

func TestDiscard(t *testing.T) {
	var l Logger = Discard{}
	l.Logf("%d", 1)
	l.Log("x")
}

func TestLineWriter_GoesThroughSpinnerLogger(t *testing.T) {
	var buf syncBuffer
	l := NewUILogger(&buf)
	s := l.StartSpinner("Setting breakpoints...")

	w := NewLineWriter(l)
	_, err := w.Write([]byte("/src/A.cs:12\n/src/B.cs"))
	assert.NoError(t, err)
	_, err = w.Write([]byte(":7\n"))
	assert.NoError(t, err)
	s.Stop()

	out := buf.String()
	// each record clears the spinner line before it is printed
	assert.Contains(t, out, "\r\033[2K/src/A.cs:12\n")
	assert.Contains(t, out, "\r\033[2K/src/B.cs:7\n")
	assert.True(t, strings.HasSuffix(out, "✓ Setting breakpoints...\n"))
}
