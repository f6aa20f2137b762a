package parser

import (
	"fmt"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"ecmascript/engine-go/pkg/ast"
	"ecmascript/engine-go/pkg/parser/language"
)

// ProgramParser wraps a tree-sitter parser configured for JavaScript.
type ProgramParser struct {
	parser *sitter.Parser
}

// NewProgramParser constructs a parser with the JavaScript language loaded.
func NewProgramParser() (*ProgramParser, error) {
	lang := language.JavaScript()
	if lang == nil {
		return nil, fmt.Errorf("parser: javascript language not available")
	}

	p := sitter.NewParser()
	if err := p.SetLanguage(lang); err != nil {
		return nil, fmt.Errorf("parser: %w", err)
	}

	return &ProgramParser{parser: p}, nil
}

// Close releases parser resources.
func (p *ProgramParser) Close() {
	if p == nil || p.parser == nil {
		return
	}
	p.parser.Close()
}

// ParseProgram parses JavaScript source into the canonical AST program.
func (p *ProgramParser) ParseProgram(source []byte) (*ast.Program, error) {
	if p == nil || p.parser == nil {
		return nil, fmt.Errorf("parser: nil parser")
	}

	tree := p.parser.Parse(source, nil)
	defer tree.Close()

	root := tree.RootNode()
	if root == nil || root.Kind() != "program" {
		return nil, fmt.Errorf("parser: unexpected root node")
	}
	if root.HasError() {
		return nil, fmt.Errorf("parser: syntax errors present")
	}

	ctx := newParseContext(source)
	statements := make([]ast.Statement, 0, root.NamedChildCount())
	for _, child := range namedChildren(root) {
		stmt, err := ctx.parseStatement(child)
		if err != nil {
			return nil, err
		}
		if stmt != nil {
			statements = append(statements, stmt)
		}
	}

	program := ast.NewProgram(statements)
	annotateSpan(program, root)
	return program, nil
}

// ParseProgram parses a source string with a throwaway parser.
func ParseProgram(source string) (*ast.Program, error) {
	p, err := NewProgramParser()
	if err != nil {
		return nil, err
	}
	defer p.Close()
	return p.ParseProgram([]byte(source))
}
