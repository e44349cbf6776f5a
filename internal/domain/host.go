package domain

import (
	"context"
	"errors"
	"strings"
)

// ErrHostBusy is the transient condition signaled by a host that cannot service
// a call right now. Callers are expected to retry later.
var ErrHostBusy = errors.New("host is busy, retry later")

// Root is the handle to one live host session.
// It is acquired once per run and passed down explicitly.
type Root interface {
	// Projects returns the top-level projects in host order
	Projects(ctx context.Context) ([]Project, error)
	// Debugger returns the host's debugger service
	Debugger() Debugger
}

// Project is a named node of the solution
type Project interface {
	Name() string
	// Items returns the child items, nil when the project exposes none
	Items(ctx context.Context) ([]ProjectItem, error)
}

// ProjectItem is a node that may own a code model, child items and a nested project.
// Each of them is optional and independent of the others.
type ProjectItem interface {
	Name() string
	// CodeModel returns the top-level code elements, nil for items without a parsed model
	CodeModel(ctx context.Context) ([]CodeElement, error)
	// Items returns the child items, nil for leaf items
	Items(ctx context.Context) ([]ProjectItem, error)
	// SubProject returns the wrapped project, nil when the item is not a project container
	SubProject(ctx context.Context) (Project, error)
}

// CodeElement is one declaration of a code model
type CodeElement interface {
	Kind() ElementKind
	Name() string
	// Members lists the nested elements of a namespace or class
	Members(ctx context.Context) ([]CodeElement, error)
	// BodyStart is the position of the first line of a function body
	BodyStart(ctx context.Context) (Position, error)
}

// Debugger is the host service that owns breakpoints
type Debugger interface {
	InsertBreakpoint(ctx context.Context, bp Breakpoint) error
}

// ElementKind tags a code element
type ElementKind int

const (
	KindOther ElementKind = iota
	KindNamespace
	KindClass
	KindFunction
)

func (k ElementKind) String() string {
	switch k {
	case KindNamespace:
		return "namespace"
	case KindClass:
		return "class"
	case KindFunction:
		return "function"
	default:
		return "other"
	}
}

// Position is a 1-based source location
type Position struct {
	File string `json:"file" yaml:"file"`
	Line int    `json:"line" yaml:"line"`
}

// SameName reports whether two project names match exactly, ignoring case
func SameName(a, b string) bool {
	return strings.EqualFold(a, b)
}
