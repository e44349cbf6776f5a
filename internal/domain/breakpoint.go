package domain

// ConditionType selects when a breakpoint fires
type ConditionType string

const (
	// ConditionWhenTrue breaks whenever the location is reached. An empty
	// condition is always true, so this is unconditional.
	ConditionWhenTrue ConditionType = "when_true"
)

// Breakpoint is the insert request sent to the debugger service.
// The service owns the breakpoint once inserted; nothing is tracked locally.
type Breakpoint struct {
	Name          string        `json:"name,omitempty" yaml:"name,omitempty"`
	File          string        `json:"file" yaml:"file"`
	Line          int           `json:"line" yaml:"line"`
	Column        int           `json:"column" yaml:"column"`
	Condition     string        `json:"condition,omitempty" yaml:"condition,omitempty"`
	ConditionType ConditionType `json:"condition_type" yaml:"condition_type"`
	HitCount      int           `json:"hit_count" yaml:"hit_count"`
}

// NewBreakpoint builds the one request shape this tool issues: unnamed,
// column 1, no condition, no hit count.
func NewBreakpoint(pos Position) Breakpoint {
	return Breakpoint{
		File:          pos.File,
		Line:          pos.Line,
		Column:        1,
		ConditionType: ConditionWhenTrue,
	}
}
