package codemodel

import (
	"strings"

	"github.com/getlawrence/brkset/internal/domain"
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/java"
)

var (
	javaClasses   = []string{"class_declaration", "record_declaration"}
	javaFunctions = []string{"method_declaration", "constructor_declaration", "compact_constructor_declaration"}
	javaBodies    = []string{"block", "constructor_body"}
	javaComments  = []string{"line_comment", "block_comment", "comment"}
)

type javaGrammar struct{}

func (javaGrammar) language() *sitter.Language { return java.GetLanguage() }

// elements wraps the file's top-level types in a namespace named after the
// package. Files in the default package have no namespace.
func (g javaGrammar) elements(root *sitter.Node, src []byte, file string) []*Element {
	types := g.declarations(root, src, file)
	pkg := firstNamedChildOfType(root, "package_declaration")
	if pkg == nil {
		return types
	}
	name := ""
	if id := firstNamedChildOfType(pkg, "scoped_identifier", "identifier"); id != nil {
		name = id.Content(src)
	}
	return []*Element{{kind: domain.KindNamespace, name: name, file: file, members: types}}
}

func (g javaGrammar) declarations(parent *sitter.Node, src []byte, file string) []*Element {
	var out []*Element
	count := int(parent.NamedChildCount())
	for i := 0; i < count; i++ {
		n := parent.NamedChild(i)
		t := n.Type()
		switch {
		case t == "package_declaration" || t == "import_declaration":
		case isOneOf(t, javaClasses):
			out = append(out, g.class(n, src, file))
		case isOneOf(t, javaFunctions):
			out = append(out, g.function(n, src, file))
		case strings.HasSuffix(t, "_declaration"):
			out = append(out, &Element{kind: domain.KindOther, name: fieldText(n, "name", src), file: file})
		}
	}
	return out
}

func (g javaGrammar) class(n *sitter.Node, src []byte, file string) *Element {
	cls := &Element{kind: domain.KindClass, name: fieldText(n, "name", src), file: file}
	body := n.ChildByFieldName("body")
	if body == nil {
		body = firstNamedChildOfType(n, "class_body")
	}
	if body != nil {
		cls.members = g.declarations(body, src, file)
	}
	return cls
}

func (g javaGrammar) function(n *sitter.Node, src []byte, file string) *Element {
	fn := &Element{kind: domain.KindFunction, name: fieldText(n, "name", src), file: file}
	body := n.ChildByFieldName("body")
	if body == nil || !isOneOf(body.Type(), javaBodies) {
		body = firstNamedChildOfType(n, javaBodies...)
	}
	if body != nil {
		fn.bodyLine = blockBodyLine(body, javaComments...)
	}
	return fn
}
