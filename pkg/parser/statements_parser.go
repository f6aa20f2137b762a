package parser

import (
	"fmt"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"ecmascript/engine-go/pkg/ast"
)

func (ctx *parseContext) parseStatement(node *sitter.Node) (ast.Statement, error) {
	if node == nil || isIgnorableNode(node) {
		return nil, nil
	}
	switch node.Kind() {
	case "lexical_declaration", "variable_declaration":
		return ctx.parseVariableDeclaration(node)
	case "function_declaration":
		return ctx.parseFunctionDeclaration(node)
	case "return_statement":
		return ctx.parseReturnStatement(node)
	case "if_statement":
		return ctx.parseIfStatement(node)
	case "throw_statement":
		return ctx.parseThrowStatement(node)
	case "try_statement":
		return ctx.parseTryStatement(node)
	case "expression_statement":
		inner := firstNamed(node)
		if inner == nil {
			return nil, fmt.Errorf("parser: empty expression statement")
		}
		return ctx.parseExpression(inner)
	case "empty_statement":
		return nil, nil
	default:
		return nil, fmt.Errorf("parser: unsupported statement kind %s", node.Kind())
	}
}

func (ctx *parseContext) parseVariableDeclaration(node *sitter.Node) (ast.Statement, error) {
	declKind := "var"
	if node.Kind() == "lexical_declaration" {
		// The keyword is the first anonymous child.
		if kw := node.Child(0); kw != nil {
			declKind = ctx.text(kw)
		}
	}
	declarator := firstNamedOfKind(node, "variable_declarator")
	if declarator == nil {
		return nil, fmt.Errorf("parser: %s without declarator", node.Kind())
	}
	name, err := ctx.parseIdentifier(declarator.ChildByFieldName("name"))
	if err != nil {
		return nil, err
	}
	var init ast.Expression
	if valueNode := declarator.ChildByFieldName("value"); valueNode != nil {
		init, err = ctx.parseExpression(valueNode)
		if err != nil {
			return nil, err
		}
	}
	decl := ast.NewVariableDeclaration(declKind, name, init)
	annotateSpan(decl, node)
	return decl, nil
}

func (ctx *parseContext) parseFunctionDeclaration(node *sitter.Node) (ast.Statement, error) {
	name, err := ctx.parseIdentifier(node.ChildByFieldName("name"))
	if err != nil {
		return nil, err
	}
	params, err := ctx.parseFormalParameters(node.ChildByFieldName("parameters"))
	if err != nil {
		return nil, err
	}
	body, err := ctx.parseStatementBlock(node.ChildByFieldName("body"))
	if err != nil {
		return nil, err
	}
	decl := ast.NewFunctionDeclaration(name, params, body)
	annotateSpan(decl, node)
	return decl, nil
}

func (ctx *parseContext) parseReturnStatement(node *sitter.Node) (ast.Statement, error) {
	var argument ast.Expression
	if inner := firstNamed(node); inner != nil {
		expr, err := ctx.parseExpression(inner)
		if err != nil {
			return nil, err
		}
		argument = expr
	}
	ret := ast.NewReturnStatement(argument)
	annotateSpan(ret, node)
	return ret, nil
}

func (ctx *parseContext) parseIfStatement(node *sitter.Node) (ast.Statement, error) {
	condition := node.ChildByFieldName("condition")
	test, err := ctx.parseExpression(unwrapParenthesized(condition))
	if err != nil {
		return nil, err
	}
	consequent, err := ctx.parseBranch(node.ChildByFieldName("consequence"))
	if err != nil {
		return nil, err
	}
	var alternate *ast.StatementList
	if alt := node.ChildByFieldName("alternative"); alt != nil {
		// else_clause wraps the branch node.
		branch := firstNamed(alt)
		if branch == nil {
			branch = alt
		}
		alternate, err = ctx.parseBranch(branch)
		if err != nil {
			return nil, err
		}
	}
	stmt := ast.NewIfStatement(test, consequent, alternate)
	annotateSpan(stmt, node)
	return stmt, nil
}

func (ctx *parseContext) parseThrowStatement(node *sitter.Node) (ast.Statement, error) {
	inner := firstNamed(node)
	if inner == nil {
		return nil, fmt.Errorf("parser: throw without expression")
	}
	argument, err := ctx.parseExpression(inner)
	if err != nil {
		return nil, err
	}
	stmt := ast.NewThrowStatement(argument)
	annotateSpan(stmt, node)
	return stmt, nil
}

func (ctx *parseContext) parseTryStatement(node *sitter.Node) (ast.Statement, error) {
	block, err := ctx.parseStatementBlock(node.ChildByFieldName("body"))
	if err != nil {
		return nil, err
	}
	var param *ast.Identifier
	var handler *ast.StatementList
	if clause := node.ChildByFieldName("handler"); clause != nil {
		if p := clause.ChildByFieldName("parameter"); p != nil {
			param, err = ctx.parseIdentifier(p)
			if err != nil {
				return nil, err
			}
		}
		handler, err = ctx.parseStatementBlock(clause.ChildByFieldName("body"))
		if err != nil {
			return nil, err
		}
	}
	stmt := ast.NewTryStatement(block, param, handler)
	annotateSpan(stmt, node)
	return stmt, nil
}

// parseStatementBlock parses a `{ ... }` body and records its source text
// for function stringification.
func (ctx *parseContext) parseStatementBlock(node *sitter.Node) (*ast.StatementList, error) {
	if node == nil {
		return nil, fmt.Errorf("parser: missing statement block")
	}
	statements := make([]ast.Statement, 0, node.NamedChildCount())
	for _, child := range namedChildren(node) {
		stmt, err := ctx.parseStatement(child)
		if err != nil {
			return nil, err
		}
		if stmt != nil {
			statements = append(statements, stmt)
		}
	}
	list := ast.NewStatementList(statements)
	list.Source = blockInnerText(node, ctx.source)
	annotateSpan(list, node)
	return list, nil
}

// parseBranch accepts either a block or a single statement.
func (ctx *parseContext) parseBranch(node *sitter.Node) (*ast.StatementList, error) {
	if node == nil {
		return nil, fmt.Errorf("parser: missing branch")
	}
	if node.Kind() == "statement_block" {
		return ctx.parseStatementBlock(node)
	}
	stmt, err := ctx.parseStatement(node)
	if err != nil {
		return nil, err
	}
	list := ast.NewStatementList([]ast.Statement{stmt})
	list.Source = ctx.text(node)
	annotateSpan(list, node)
	return list, nil
}

func firstNamed(node *sitter.Node) *sitter.Node {
	if node == nil {
		return nil
	}
	for i := uint(0); i < node.NamedChildCount(); i++ {
		child := node.NamedChild(i)
		if child != nil && !isIgnorableNode(child) {
			return child
		}
	}
	return nil
}

func firstNamedOfKind(node *sitter.Node, kind string) *sitter.Node {
	if node == nil {
		return nil
	}
	for i := uint(0); i < node.NamedChildCount(); i++ {
		child := node.NamedChild(i)
		if child != nil && child.Kind() == kind {
			return child
		}
	}
	return nil
}

func unwrapParenthesized(node *sitter.Node) *sitter.Node {
	for node != nil && node.Kind() == "parenthesized_expression" {
		node = firstNamed(node)
	}
	return node
}
