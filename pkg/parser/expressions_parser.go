package parser

import (
	"fmt"
	"strconv"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"ecmascript/engine-go/pkg/ast"
)

func (ctx *parseContext) parseExpression(node *sitter.Node) (ast.Expression, error) {
	if node == nil {
		return nil, fmt.Errorf("parser: missing expression")
	}
	switch node.Kind() {
	case "number":
		return ctx.parseNumber(node)
	case "string":
		lit := ast.Str(unquoteString(ctx.text(node)))
		annotateSpan(lit, node)
		return lit, nil
	case "true":
		return ast.Bool(true), nil
	case "false":
		return ast.Bool(false), nil
	case "null":
		return ast.Null(), nil
	case "undefined":
		return ast.Undef(), nil
	case "identifier":
		return ctx.parseIdentifier(node)
	case "this":
		id := ast.ID("this")
		annotateSpan(id, node)
		return id, nil
	case "array":
		return ctx.parseArray(node)
	case "object":
		return ctx.parseObjectLiteral(node)
	case "unary_expression":
		operand, err := ctx.parseExpression(node.ChildByFieldName("argument"))
		if err != nil {
			return nil, err
		}
		expr := ast.Un(ctx.text(node.ChildByFieldName("operator")), operand)
		annotateSpan(expr, node)
		return expr, nil
	case "binary_expression":
		return ctx.parseBinary(node)
	case "assignment_expression":
		target, err := ctx.parseExpression(node.ChildByFieldName("left"))
		if err != nil {
			return nil, err
		}
		value, err := ctx.parseExpression(node.ChildByFieldName("right"))
		if err != nil {
			return nil, err
		}
		expr := ast.Assign(target, value)
		annotateSpan(expr, node)
		return expr, nil
	case "member_expression":
		object, err := ctx.parseExpression(node.ChildByFieldName("object"))
		if err != nil {
			return nil, err
		}
		property, err := ctx.parseIdentifier(node.ChildByFieldName("property"))
		if err != nil {
			return nil, err
		}
		expr := ast.NewMemberAccessExpression(object, property)
		annotateSpan(expr, node)
		return expr, nil
	case "call_expression":
		callee, err := ctx.parseExpression(node.ChildByFieldName("function"))
		if err != nil {
			return nil, err
		}
		args, err := ctx.parseArguments(node.ChildByFieldName("arguments"))
		if err != nil {
			return nil, err
		}
		expr := ast.NewCallExpression(callee, args)
		annotateSpan(expr, node)
		return expr, nil
	case "new_expression":
		callee, err := ctx.parseExpression(node.ChildByFieldName("constructor"))
		if err != nil {
			return nil, err
		}
		args, err := ctx.parseArguments(node.ChildByFieldName("arguments"))
		if err != nil {
			return nil, err
		}
		expr := ast.NewNewExpression(callee, args)
		annotateSpan(expr, node)
		return expr, nil
	case "function_expression", "function":
		return ctx.parseFunctionExpression(node, false)
	case "arrow_function":
		return ctx.parseFunctionExpression(node, true)
	case "parenthesized_expression":
		return ctx.parseExpression(firstNamed(node))
	default:
		return nil, fmt.Errorf("parser: unsupported expression kind %s", node.Kind())
	}
}

func (ctx *parseContext) parseNumber(node *sitter.Node) (ast.Expression, error) {
	text := ctx.text(node)
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return nil, fmt.Errorf("parser: invalid number literal %q", text)
	}
	lit := ast.Num(f)
	annotateSpan(lit, node)
	return lit, nil
}

func (ctx *parseContext) parseArray(node *sitter.Node) (ast.Expression, error) {
	elements := make([]ast.Expression, 0, node.NamedChildCount())
	for _, child := range namedChildren(node) {
		el, err := ctx.parseExpression(child)
		if err != nil {
			return nil, err
		}
		elements = append(elements, el)
	}
	arr := ast.Arr(elements...)
	annotateSpan(arr, node)
	return arr, nil
}

func (ctx *parseContext) parseObjectLiteral(node *sitter.Node) (ast.Expression, error) {
	properties := make([]*ast.ObjectLiteralProperty, 0, node.NamedChildCount())
	for _, child := range namedChildren(node) {
		switch child.Kind() {
		case "pair":
			key, err := ctx.parseIdentifier(child.ChildByFieldName("key"))
			if err != nil {
				return nil, err
			}
			value, err := ctx.parseExpression(child.ChildByFieldName("value"))
			if err != nil {
				return nil, err
			}
			properties = append(properties, ast.NewObjectLiteralProperty(key, value))
		case "shorthand_property_identifier":
			key, err := ctx.parseIdentifier(child)
			if err != nil {
				return nil, err
			}
			properties = append(properties, ast.NewObjectLiteralProperty(key, nil))
		default:
			return nil, fmt.Errorf("parser: unsupported object member %s", child.Kind())
		}
	}
	obj := ast.NewObjectLiteral(properties)
	annotateSpan(obj, node)
	return obj, nil
}

func (ctx *parseContext) parseBinary(node *sitter.Node) (ast.Expression, error) {
	left, err := ctx.parseExpression(node.ChildByFieldName("left"))
	if err != nil {
		return nil, err
	}
	right, err := ctx.parseExpression(node.ChildByFieldName("right"))
	if err != nil {
		return nil, err
	}
	operator := ctx.text(node.ChildByFieldName("operator"))
	expr := ast.Bin(operator, left, right)
	annotateSpan(expr, node)
	return expr, nil
}

func (ctx *parseContext) parseArguments(node *sitter.Node) ([]ast.Expression, error) {
	if node == nil {
		return nil, nil
	}
	args := make([]ast.Expression, 0, node.NamedChildCount())
	for _, child := range namedChildren(node) {
		arg, err := ctx.parseExpression(child)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
	return args, nil
}

func (ctx *parseContext) parseFunctionExpression(node *sitter.Node, arrow bool) (ast.Expression, error) {
	var id *ast.Identifier
	if nameNode := node.ChildByFieldName("name"); nameNode != nil {
		parsed, err := ctx.parseIdentifier(nameNode)
		if err != nil {
			return nil, err
		}
		id = parsed
	}

	var params []*ast.FormalParameter
	if single := node.ChildByFieldName("parameter"); single != nil && arrow {
		// `x => ...` form: a bare identifier parameter.
		name, err := ctx.parseIdentifier(single)
		if err != nil {
			return nil, err
		}
		params = []*ast.FormalParameter{ast.NewFormalParameter(ast.NewIdentifierPattern(name), nil, false)}
	} else {
		parsed, err := ctx.parseFormalParameters(node.ChildByFieldName("parameters"))
		if err != nil {
			return nil, err
		}
		params = parsed
	}

	bodyNode := node.ChildByFieldName("body")
	var body *ast.StatementList
	if bodyNode != nil && bodyNode.Kind() == "statement_block" {
		parsed, err := ctx.parseStatementBlock(bodyNode)
		if err != nil {
			return nil, err
		}
		body = parsed
	} else {
		// Expression-bodied arrow: implicit return.
		expr, err := ctx.parseExpression(bodyNode)
		if err != nil {
			return nil, err
		}
		body = ast.NewStatementList([]ast.Statement{ast.NewReturnStatement(expr)})
		body.Source = "return " + ctx.text(bodyNode) + ";"
	}

	fn := ast.NewFunctionExpression(id, params, body, arrow)
	annotateSpan(fn, node)
	return fn, nil
}

// unquoteString strips quotes and resolves the common escape sequences.
func unquoteString(text string) string {
	if len(text) < 2 {
		return text
	}
	inner := text[1 : len(text)-1]
	if !strings.ContainsRune(inner, '\\') {
		return inner
	}
	var b strings.Builder
	escaped := false
	for _, r := range inner {
		if !escaped {
			if r == '\\' {
				escaped = true
				continue
			}
			b.WriteRune(r)
			continue
		}
		escaped = false
		switch r {
		case 'n':
			b.WriteRune('\n')
		case 't':
			b.WriteRune('\t')
		case 'r':
			b.WriteRune('\r')
		case '0':
			b.WriteRune(0)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
