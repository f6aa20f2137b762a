package parser

import (
	"fmt"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"ecmascript/engine-go/pkg/ast"
)

// parseContext carries immutable parser state (the source bytes) so helpers
// share the same view of the file without threading arguments everywhere.
type parseContext struct {
	source []byte
}

func newParseContext(source []byte) *parseContext {
	return &parseContext{source: source}
}

func (ctx *parseContext) text(node *sitter.Node) string {
	return sliceContent(node, ctx.source)
}

func sliceContent(node *sitter.Node, source []byte) string {
	if node == nil {
		return ""
	}
	start := int(node.StartByte())
	end := int(node.EndByte())
	if start < 0 || end < start || end > len(source) {
		return ""
	}
	return string(source[start:end])
}

func (ctx *parseContext) parseIdentifier(node *sitter.Node) (*ast.Identifier, error) {
	if node == nil {
		return nil, fmt.Errorf("parser: expected identifier")
	}
	switch node.Kind() {
	case "identifier", "property_identifier", "shorthand_property_identifier_pattern", "shorthand_property_identifier":
	default:
		return nil, fmt.Errorf("parser: expected identifier, got %s", node.Kind())
	}
	id := ast.ID(ctx.text(node))
	annotateSpan(id, node)
	return id, nil
}

func annotateSpan(n ast.Node, node *sitter.Node) {
	if n == nil || node == nil {
		return
	}
	start := node.StartPosition()
	end := node.EndPosition()
	ast.SetSpan(n, ast.Span{
		Start: ast.Position{Line: int(start.Row), Column: int(start.Column)},
		End:   ast.Position{Line: int(end.Row), Column: int(end.Column)},
	})
}

func isIgnorableNode(node *sitter.Node) bool {
	if node == nil {
		return true
	}
	switch node.Kind() {
	case "comment", "hash_bang_line":
		return true
	default:
		return false
	}
}

func namedChildren(node *sitter.Node) []*sitter.Node {
	if node == nil {
		return nil
	}
	out := make([]*sitter.Node, 0, node.NamedChildCount())
	for i := uint(0); i < node.NamedChildCount(); i++ {
		child := node.NamedChild(i)
		if child == nil || isIgnorableNode(child) {
			continue
		}
		out = append(out, child)
	}
	return out
}

// blockInnerText extracts the statement text between a block's braces,
// preserving internal newlines so toString keeps the original layout.
func blockInnerText(node *sitter.Node, source []byte) string {
	text := sliceContent(node, source)
	text = strings.TrimPrefix(text, "{")
	text = strings.TrimSuffix(text, "}")
	return strings.TrimSpace(text)
}
