package parser

import (
	"fmt"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"ecmascript/engine-go/pkg/ast"
)

func (ctx *parseContext) parseFormalParameters(node *sitter.Node) ([]*ast.FormalParameter, error) {
	if node == nil {
		return nil, nil
	}
	params := make([]*ast.FormalParameter, 0, node.NamedChildCount())
	for _, child := range namedChildren(node) {
		param, err := ctx.parseFormalParameter(child)
		if err != nil {
			return nil, err
		}
		params = append(params, param)
	}
	return params, nil
}

func (ctx *parseContext) parseFormalParameter(node *sitter.Node) (*ast.FormalParameter, error) {
	switch node.Kind() {
	case "identifier":
		name, err := ctx.parseIdentifier(node)
		if err != nil {
			return nil, err
		}
		param := ast.NewFormalParameter(ast.NewIdentifierPattern(name), nil, false)
		annotateSpan(param, node)
		return param, nil
	case "assignment_pattern":
		target, err := ctx.parseBindingTarget(node.ChildByFieldName("left"))
		if err != nil {
			return nil, err
		}
		def, err := ctx.parseExpression(node.ChildByFieldName("right"))
		if err != nil {
			return nil, err
		}
		param := ast.NewFormalParameter(target, def, false)
		annotateSpan(param, node)
		return param, nil
	case "rest_pattern":
		inner := firstNamed(node)
		name, err := ctx.parseIdentifier(inner)
		if err != nil {
			return nil, err
		}
		param := ast.NewFormalParameter(ast.NewIdentifierPattern(name), nil, true)
		annotateSpan(param, node)
		return param, nil
	case "object_pattern":
		target, err := ctx.parseObjectPattern(node)
		if err != nil {
			return nil, err
		}
		param := ast.NewFormalParameter(target, nil, false)
		annotateSpan(param, node)
		return param, nil
	default:
		return nil, fmt.Errorf("parser: unsupported parameter kind %s", node.Kind())
	}
}

func (ctx *parseContext) parseBindingTarget(node *sitter.Node) (ast.BindingTarget, error) {
	if node == nil {
		return nil, fmt.Errorf("parser: missing binding target")
	}
	switch node.Kind() {
	case "identifier":
		name, err := ctx.parseIdentifier(node)
		if err != nil {
			return nil, err
		}
		return ast.NewIdentifierPattern(name), nil
	case "object_pattern":
		return ctx.parseObjectPattern(node)
	default:
		return nil, fmt.Errorf("parser: unsupported binding target kind %s", node.Kind())
	}
}

func (ctx *parseContext) parseObjectPattern(node *sitter.Node) (*ast.ObjectPattern, error) {
	properties := make([]*ast.ObjectPatternProperty, 0, node.NamedChildCount())
	for _, child := range namedChildren(node) {
		switch child.Kind() {
		case "shorthand_property_identifier_pattern":
			key, err := ctx.parseIdentifier(child)
			if err != nil {
				return nil, err
			}
			properties = append(properties, ast.NewObjectPatternProperty(key, nil))
		case "pair_pattern":
			key, err := ctx.parseIdentifier(child.ChildByFieldName("key"))
			if err != nil {
				return nil, err
			}
			binding, err := ctx.parseIdentifier(child.ChildByFieldName("value"))
			if err != nil {
				return nil, err
			}
			properties = append(properties, ast.NewObjectPatternProperty(key, binding))
		default:
			return nil, fmt.Errorf("parser: unsupported object pattern member %s", child.Kind())
		}
	}
	pattern := ast.NewObjectPattern(properties)
	annotateSpan(pattern, node)
	return pattern, nil
}
