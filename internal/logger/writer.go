package logger

import (
	"bytes"
	"io"
	"sync"
)

// lineWriter forwards each complete line written to it as one log message
type lineWriter struct {
	mu  sync.Mutex
	log Logger
	buf []byte
}

// NewLineWriter adapts log to an io.Writer so output produced elsewhere goes
// through the logger instead of racing its spinner on the terminal
func NewLineWriter(log Logger) io.Writer {
	return &lineWriter{log: log}
}

func (w *lineWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.buf = append(w.buf, p...)
	for {
		i := bytes.IndexByte(w.buf, '\n')
		if i < 0 {
			break
		}
		w.log.Log(string(w.buf[:i]))
		w.buf = w.buf[i+1:]
	}
	return len(p), nil
}
