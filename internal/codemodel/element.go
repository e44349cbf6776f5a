package codemodel

import (
	"context"
	"fmt"

	"github.com/getlawrence/brkset/internal/domain"
)

// Element is a declaration extracted from a parsed source file.
// Elements are detached from the syntax tree once built.
type Element struct {
	kind     domain.ElementKind
	name     string
	file     string
	bodyLine int
	members  []*Element
}

func (e *Element) Kind() domain.ElementKind { return e.kind }
func (e *Element) Name() string             { return e.name }

func (e *Element) Members(ctx context.Context) ([]domain.CodeElement, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return toCodeElements(e.members), nil
}

func (e *Element) BodyStart(ctx context.Context) (domain.Position, error) {
	if e.kind != domain.KindFunction || e.bodyLine == 0 {
		return domain.Position{}, fmt.Errorf("%w: %s %s", ErrNoBody, e.kind, e.name)
	}
	return domain.Position{File: e.file, Line: e.bodyLine}, nil
}

func toCodeElements(elems []*Element) []domain.CodeElement {
	out := make([]domain.CodeElement, 0, len(elems))
	for _, e := range elems {
		out = append(out, e)
	}
	return out
}
