package traversal

import (
	"time"

	"github.com/getlawrence/brkset/internal/domain"
	"github.com/google/uuid"
)

// Status is the result of processing one node
type Status string

const (
	StatusOK             Status = "ok"
	StatusSkipped        Status = "skipped"
	StatusRetryExhausted Status = "retry_exhausted"
)

// Scope names the kind of node an outcome refers to
type Scope string

const (
	ScopeSolution  Scope = "solution"
	ScopeProject   Scope = "project"
	ScopeItem      Scope = "item"
	ScopeNamespace Scope = "namespace"
	ScopeClass     Scope = "class"
	ScopeFunction  Scope = "function"
)

// Outcome is the per-node result. Only non-OK outcomes are kept in the report.
type Outcome struct {
	Scope  Scope  `json:"scope" yaml:"scope"`
	Path   string `json:"path" yaml:"path"`
	Status Status `json:"status" yaml:"status"`
	Reason string `json:"reason,omitempty" yaml:"reason,omitempty"`
}

func ok(scope Scope, path string) Outcome {
	return Outcome{Scope: scope, Path: path, Status: StatusOK}
}

func skipped(scope Scope, path string, err error) Outcome {
	return Outcome{Scope: scope, Path: path, Status: StatusSkipped, Reason: err.Error()}
}

// Report summarizes one run
type Report struct {
	RunID       string              `json:"run_id" yaml:"run_id"`
	StartedAt   time.Time           `json:"started_at" yaml:"started_at"`
	Duration    time.Duration       `json:"-" yaml:"-"`
	DurationMS  int64               `json:"duration_ms" yaml:"duration_ms"`
	Projects    []string            `json:"projects" yaml:"projects"`
	NotFound    []string            `json:"not_found,omitempty" yaml:"not_found,omitempty"`
	Functions   int                 `json:"functions" yaml:"functions"`
	Inserted    int                 `json:"inserted" yaml:"inserted"`
	Skipped     int                 `json:"skipped" yaml:"skipped"`
	Exhausted   int                 `json:"retry_exhausted" yaml:"retry_exhausted"`
	Retries     int                 `json:"busy_retries" yaml:"busy_retries"`
	Breakpoints []domain.Breakpoint `json:"breakpoints" yaml:"breakpoints"`
	Problems    []Outcome           `json:"problems,omitempty" yaml:"problems,omitempty"`
}

// NewReport starts an empty report with a fresh run ID
func NewReport() *Report {
	return &Report{
		RunID:       uuid.NewString(),
		StartedAt:   time.Now(),
		Projects:    []string{},
		Breakpoints: []domain.Breakpoint{},
	}
}

// Record aggregates one node outcome
func (r *Report) Record(o Outcome) {
	switch o.Status {
	case StatusSkipped:
		r.Skipped++
		r.Problems = append(r.Problems, o)
	case StatusRetryExhausted:
		r.Exhausted++
		r.Problems = append(r.Problems, o)
	}
}

// Failed reports whether any requested project was missing or any node was not fully processed
func (r *Report) Failed() bool {
	return len(r.NotFound) > 0 || r.Skipped > 0 || r.Exhausted > 0
}

func (r *Report) finish() {
	r.Duration = time.Since(r.StartedAt)
	r.DurationMS = r.Duration.Milliseconds()
}
