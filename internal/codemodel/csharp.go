package codemodel

import (
	"strings"

	"github.com/getlawrence/brkset/internal/domain"
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/csharp"
)

var (
	csharpClasses   = []string{"class_declaration", "record_declaration"}
	csharpFunctions = []string{
		"method_declaration",
		"constructor_declaration",
		"destructor_declaration",
		"operator_declaration",
		"conversion_operator_declaration",
	}
	csharpBodies = []string{"block", "arrow_expression_clause"}
)

type csharpGrammar struct{}

func (csharpGrammar) language() *sitter.Language { return csharp.GetLanguage() }

func (g csharpGrammar) elements(root *sitter.Node, src []byte, file string) []*Element {
	return g.declarations(root, 0, src, file)
}

// declarations maps the named children of parent, starting at index from.
func (g csharpGrammar) declarations(parent *sitter.Node, from int, src []byte, file string) []*Element {
	var out []*Element
	count := int(parent.NamedChildCount())
	for i := from; i < count; i++ {
		n := parent.NamedChild(i)
		t := n.Type()
		switch {
		case t == "namespace_declaration":
			ns := &Element{kind: domain.KindNamespace, name: fieldText(n, "name", src), file: file}
			body := n.ChildByFieldName("body")
			if body == nil {
				body = firstNamedChildOfType(n, "declaration_list")
			}
			if body != nil {
				ns.members = g.declarations(body, 0, src, file)
			}
			out = append(out, ns)
		case t == "file_scoped_namespace_declaration":
			// Depending on the grammar version the members are either children of
			// the declaration or the siblings that follow it.
			ns := &Element{kind: domain.KindNamespace, name: fieldText(n, "name", src), file: file}
			ns.members = append(g.declarations(n, 0, src, file), g.declarations(parent, i+1, src, file)...)
			return append(out, ns)
		case isOneOf(t, csharpClasses):
			out = append(out, g.class(n, src, file))
		case isOneOf(t, csharpFunctions):
			out = append(out, g.function(n, src, file))
		case strings.HasSuffix(t, "_declaration"):
			out = append(out, &Element{kind: domain.KindOther, name: fieldText(n, "name", src), file: file})
		}
	}
	return out
}

func (g csharpGrammar) class(n *sitter.Node, src []byte, file string) *Element {
	cls := &Element{kind: domain.KindClass, name: fieldText(n, "name", src), file: file}
	body := n.ChildByFieldName("body")
	if body == nil {
		body = firstNamedChildOfType(n, "declaration_list")
	}
	if body != nil {
		cls.members = g.declarations(body, 0, src, file)
	}
	return cls
}

func (g csharpGrammar) function(n *sitter.Node, src []byte, file string) *Element {
	name := fieldText(n, "name", src)
	if name == "" {
		name = strings.TrimSuffix(n.Type(), "_declaration")
	}
	fn := &Element{kind: domain.KindFunction, name: name, file: file}

	body := n.ChildByFieldName("body")
	if body == nil || !isOneOf(body.Type(), csharpBodies) {
		body = firstNamedChildOfType(n, csharpBodies...)
	}
	if body == nil {
		return fn
	}
	switch body.Type() {
	case "block":
		fn.bodyLine = blockBodyLine(body, "comment")
	case "arrow_expression_clause":
		fn.bodyLine = line(body)
	}
	return fn
}
