package codemodel

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/getlawrence/brkset/internal/domain"
	sitter "github.com/smacker/go-tree-sitter"
)

// DefaultMaxFileSize is the largest source file the parser accepts (10MB)
const DefaultMaxFileSize = 10 * 1024 * 1024

var (
	// ErrUnsupportedLanguage is returned for files without a grammar
	ErrUnsupportedLanguage = errors.New("no code model for language")
	// ErrNoBody is returned by BodyStart for declarations without a body
	ErrNoBody = errors.New("function has no body")
	// ErrFileTooLarge is returned when content exceeds the maximum file size
	ErrFileTooLarge = errors.New("file exceeds maximum size limit")
	// ErrInvalidContent is returned for content that is not valid UTF-8
	ErrInvalidContent = errors.New("invalid source content")
)

// grammar turns a syntax tree into code elements
type grammar interface {
	language() *sitter.Language
	elements(root *sitter.Node, src []byte, file string) []*Element
}

var grammars = map[string]grammar{
	LanguageCSharp: csharpGrammar{},
	LanguageJava:   javaGrammar{},
}

// ParserOption configures a Parser
type ParserOption func(*Parser)

// WithMaxFileSize sets the maximum file size the parser will accept
func WithMaxFileSize(bytes int64) ParserOption {
	return func(p *Parser) {
		if bytes > 0 {
			p.maxFileSize = bytes
		}
	}
}

// Parser builds code models with tree-sitter. Each Parse call uses its own
// tree-sitter parser, so a Parser is safe for concurrent use.
type Parser struct {
	maxFileSize int64
}

func NewParser(opts ...ParserOption) *Parser {
	p := &Parser{maxFileSize: DefaultMaxFileSize}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse returns the top-level code elements of a source file. The language is
// detected from the path and content.
func (p *Parser) Parse(ctx context.Context, content []byte, filePath string) ([]domain.CodeElement, error) {
	return p.ParseLanguage(ctx, content, filePath, DetectLanguage(filePath, content))
}

// ParseLanguage is Parse with an explicit language name
func (p *Parser) ParseLanguage(ctx context.Context, content []byte, filePath, lang string) ([]domain.CodeElement, error) {
	elems, err := p.parse(ctx, content, filePath, lang)
	if err != nil {
		return nil, err
	}
	return toCodeElements(elems), nil
}

func (p *Parser) parse(ctx context.Context, content []byte, filePath, lang string) ([]*Element, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse canceled before start: %w", err)
	}
	g, ok := grammars[lang]
	if !ok {
		return nil, fmt.Errorf("%w: %q (%s)", ErrUnsupportedLanguage, lang, filePath)
	}
	if int64(len(content)) > p.maxFileSize {
		return nil, fmt.Errorf("%w: size %d exceeds limit %d", ErrFileTooLarge, len(content), p.maxFileSize)
	}
	if !utf8.Valid(content) {
		return nil, fmt.Errorf("%w: content is not valid UTF-8", ErrInvalidContent)
	}

	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(g.language())

	tree, err := parser.ParseCtx(ctx, nil, content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filePath, err)
	}
	defer tree.Close()

	return g.elements(tree.RootNode(), content, filePath), nil
}

// line converts a tree-sitter row to a 1-based line
func line(n *sitter.Node) int {
	return int(n.StartPoint().Row) + 1
}

func fieldText(n *sitter.Node, field string, src []byte) string {
	if c := n.ChildByFieldName(field); c != nil {
		return c.Content(src)
	}
	return ""
}

func firstNamedChildOfType(n *sitter.Node, types ...string) *sitter.Node {
	count := int(n.NamedChildCount())
	for i := 0; i < count; i++ {
		c := n.NamedChild(i)
		for _, t := range types {
			if c.Type() == t {
				return c
			}
		}
	}
	return nil
}

// blockBodyLine is the line of the first statement in a block, or of the block
// itself when it holds no statements.
func blockBodyLine(block *sitter.Node, comments ...string) int {
	count := int(block.NamedChildCount())
	for i := 0; i < count; i++ {
		c := block.NamedChild(i)
		if isOneOf(c.Type(), comments) {
			continue
		}
		return line(c)
	}
	return line(block)
}

func isOneOf(s string, set []string) bool {
	for _, v := range set {
		if s == v {
			return true
		}
	}
	return false
}
