// Package domaintest provides in-memory implementations of the host interfaces for tests.
package domaintest

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/getlawrence/brkset/internal/domain"
)

// Root is an in-memory host session
type Root struct {
	ProjectList []*Project
	Err         error
	Dbg         *Debugger
}

// NewRoot creates a root with a recording debugger
func NewRoot(projects ...*Project) *Root {
	return &Root{ProjectList: projects, Dbg: NewDebugger()}
}

func (r *Root) Projects(ctx context.Context) ([]domain.Project, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	out := make([]domain.Project, 0, len(r.ProjectList))
	for _, p := range r.ProjectList {
		out = append(out, p)
	}
	return out, nil
}

func (r *Root) Debugger() domain.Debugger { return r.Dbg }

// Project is an in-memory project. A nil Children slice means the project exposes no items.
type Project struct {
	ProjectName string
	Children    []*Item
	ItemsErr    error
}

// Proj builds a project holding the given items
func Proj(name string, items ...*Item) *Project {
	if items == nil {
		items = []*Item{}
	}
	return &Project{ProjectName: name, Children: items}
}

func (p *Project) Name() string { return p.ProjectName }

func (p *Project) Items(ctx context.Context) ([]domain.ProjectItem, error) {
	if p.ItemsErr != nil {
		return nil, p.ItemsErr
	}
	return toItems(p.Children), nil
}

// Item is an in-memory project item
type Item struct {
	ItemName     string
	Elements     []*Element
	Children     []*Item
	Sub          *Project
	CodeModelErr error
	ItemsErr     error
	SubErr       error
}

// File builds an item with a code model
func File(name string, elems ...*Element) *Item {
	if elems == nil {
		elems = []*Element{}
	}
	return &Item{ItemName: name, Elements: elems}
}

// Folder builds a container item without a code model
func Folder(name string, children ...*Item) *Item {
	if children == nil {
		children = []*Item{}
	}
	return &Item{ItemName: name, Children: children}
}

// SubProjectItem builds an item wrapping a nested project
func SubProjectItem(p *Project) *Item {
	return &Item{ItemName: p.ProjectName, Sub: p}
}

func (i *Item) Name() string { return i.ItemName }

func (i *Item) CodeModel(ctx context.Context) ([]domain.CodeElement, error) {
	if i.CodeModelErr != nil {
		return nil, i.CodeModelErr
	}
	return toElements(i.Elements), nil
}

func (i *Item) Items(ctx context.Context) ([]domain.ProjectItem, error) {
	if i.ItemsErr != nil {
		return nil, i.ItemsErr
	}
	return toItems(i.Children), nil
}

func (i *Item) SubProject(ctx context.Context) (domain.Project, error) {
	if i.SubErr != nil {
		return nil, i.SubErr
	}
	if i.Sub == nil {
		return nil, nil
	}
	return i.Sub, nil
}

// Element is an in-memory code element.
// MembersErrs is consumed one entry per Members call; a nil entry (or running
// out of entries) lets the call succeed.
type Element struct {
	ElemKind    domain.ElementKind
	ElemName    string
	Children    []*Element
	Pos         domain.Position
	BodyErr     error
	MembersErrs []error

	mu          sync.Mutex
	memberCalls int
}

// NS builds a namespace element
func NS(name string, members ...*Element) *Element {
	return &Element{ElemKind: domain.KindNamespace, ElemName: name, Children: members}
}

// Class builds a class element
func Class(name string, members ...*Element) *Element {
	return &Element{ElemKind: domain.KindClass, ElemName: name, Children: members}
}

// Func builds a function element whose body starts at file:line
func Func(name, file string, line int) *Element {
	return &Element{ElemKind: domain.KindFunction, ElemName: name, Pos: domain.Position{File: file, Line: line}}
}

// Other builds an element of a kind the traversal ignores
func Other(name string, members ...*Element) *Element {
	return &Element{ElemKind: domain.KindOther, ElemName: name, Children: members}
}

func (e *Element) Kind() domain.ElementKind { return e.ElemKind }
func (e *Element) Name() string             { return e.ElemName }

func (e *Element) Members(ctx context.Context) ([]domain.CodeElement, error) {
	e.mu.Lock()
	call := e.memberCalls
	e.memberCalls++
	e.mu.Unlock()
	if call < len(e.MembersErrs) && e.MembersErrs[call] != nil {
		return nil, e.MembersErrs[call]
	}
	return toElements(e.Children), nil
}

// MemberCalls reports how many times Members was called
func (e *Element) MemberCalls() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.memberCalls
}

func (e *Element) BodyStart(ctx context.Context) (domain.Position, error) {
	if e.BodyErr != nil {
		return domain.Position{}, e.BodyErr
	}
	if e.ElemKind != domain.KindFunction {
		return domain.Position{}, fmt.Errorf("%s %q has no body", e.ElemKind, e.ElemName)
	}
	return e.Pos, nil
}

// Debugger records every insert request
type Debugger struct {
	mu          sync.Mutex
	Breakpoints []domain.Breakpoint
	// Errors maps "file:line" to the error returned for that insert
	Errors map[string]error
}

func NewDebugger() *Debugger {
	return &Debugger{Errors: make(map[string]error)}
}

func (d *Debugger) InsertBreakpoint(ctx context.Context, bp domain.Breakpoint) error {
	if err, ok := d.Errors[fmt.Sprintf("%s:%d", bp.File, bp.Line)]; ok {
		return err
	}
	d.mu.Lock()
	d.Breakpoints = append(d.Breakpoints, bp)
	d.mu.Unlock()
	return nil
}

// Sleeper records requested waits without blocking
type Sleeper struct {
	Waits []time.Duration
}

func (s *Sleeper) Sleep(ctx context.Context, d time.Duration) error {
	s.Waits = append(s.Waits, d)
	return ctx.Err()
}

// Logger captures log lines
type Logger struct {
	mu    sync.Mutex
	Lines []string
}

func (l *Logger) Logf(format string, args ...interface{}) {
	l.Log(fmt.Sprintf(format, args...))
}

func (l *Logger) Log(msg string) {
	l.mu.Lock()
	l.Lines = append(l.Lines, msg)
	l.mu.Unlock()
}

func toItems(items []*Item) []domain.ProjectItem {
	if items == nil {
		return nil
	}
	out := make([]domain.ProjectItem, 0, len(items))
	for _, it := range items {
		out = append(out, it)
	}
	return out
}

func toElements(elems []*Element) []domain.CodeElement {
	if elems == nil {
		return nil
	}
	out := make([]domain.CodeElement, 0, len(elems))
	for _, e := range elems {
		out = append(out, e)
	}
	return out
}
