package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// Text returns the body's source form: the parser-preserved slice when
// available, otherwise a canonical re-rendering of the statements.
func (l *StatementList) Text() string {
	if l == nil {
		return ""
	}
	if l.Source != "" {
		return l.Source
	}
	var sb strings.Builder
	for _, stmt := range l.Statements {
		sb.WriteString(renderStatement(stmt))
		sb.WriteString("\n")
	}
	return sb.String()
}

// ParamText renders a formal parameter the way Function.prototype.toString
// displays it: identifiers verbatim, destructuring patterns as {a,b}.
func ParamText(param *FormalParameter) string {
	if param == nil {
		return ""
	}
	var text string
	switch target := param.Target.(type) {
	case *IdentifierPattern:
		if target.ID != nil {
			text = target.ID.Name
		}
	case *ObjectPattern:
		text = "{" + strings.Join(target.Idents(), ",") + "}"
	}
	if param.Rest {
		return "..." + text
	}
	return text
}

func renderStatement(stmt Statement) string {
	switch s := stmt.(type) {
	case *VariableDeclaration:
		if s.Init != nil {
			return fmt.Sprintf("%s %s = %s;", s.DeclKind, s.Name.Name, renderExpression(s.Init))
		}
		return fmt.Sprintf("%s %s;", s.DeclKind, s.Name.Name)
	case *ReturnStatement:
		if s.Argument != nil {
			return "return " + renderExpression(s.Argument) + ";"
		}
		return "return;"
	case *ThrowStatement:
		return "throw " + renderExpression(s.Argument) + ";"
	case *IfStatement:
		out := fmt.Sprintf("if (%s) {\n%s}", renderExpression(s.Test), s.Consequent.Text())
		if s.Alternate != nil {
			out += fmt.Sprintf(" else {\n%s}", s.Alternate.Text())
		}
		return out
	case *TryStatement:
		out := fmt.Sprintf("try {\n%s}", s.Block.Text())
		if s.Handler != nil {
			param := ""
			if s.Param != nil {
				param = " (" + s.Param.Name + ")"
			}
			out += fmt.Sprintf(" catch%s {\n%s}", param, s.Handler.Text())
		}
		return out
	case *FunctionDeclaration:
		return renderFunctionSource(s.ID, s.Params, s.Body)
	case Expression:
		return renderExpression(s) + ";"
	default:
		return ""
	}
}

func renderExpression(expr Expression) string {
	switch e := expr.(type) {
	case *Identifier:
		return e.Name
	case *NumberLiteral:
		return strconv.FormatFloat(e.Value, 'g', -1, 64)
	case *StringLiteral:
		return strconv.Quote(e.Value)
	case *BooleanLiteral:
		return strconv.FormatBool(e.Value)
	case *NullLiteral:
		return "null"
	case *UndefinedLiteral:
		return "undefined"
	case *ObjectLiteral:
		parts := make([]string, 0, len(e.Properties))
		for _, prop := range e.Properties {
			if prop.Value == nil {
				parts = append(parts, prop.Key.Name)
				continue
			}
			parts = append(parts, prop.Key.Name+": "+renderExpression(prop.Value))
		}
		return "{ " + strings.Join(parts, ", ") + " }"
	case *ArrayLiteral:
		parts := make([]string, 0, len(e.Elements))
		for _, el := range e.Elements {
			parts = append(parts, renderExpression(el))
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case *UnaryExpression:
		return e.Operator + renderExpression(e.Operand)
	case *BinaryExpression:
		return renderExpression(e.Left) + " " + e.Operator + " " + renderExpression(e.Right)
	case *AssignmentExpression:
		return renderExpression(e.Target) + " = " + renderExpression(e.Value)
	case *MemberAccessExpression:
		return renderExpression(e.Object) + "." + e.Member.Name
	case *CallExpression:
		return renderExpression(e.Callee) + renderArguments(e.Arguments)
	case *NewExpression:
		return "new " + renderExpression(e.Callee) + renderArguments(e.Arguments)
	case *FunctionExpression:
		if e.Arrow {
			return renderParamList(e.Params) + " => {\n" + e.Body.Text() + "}"
		}
		name := ""
		if e.ID != nil {
			name = " " + e.ID.Name
		}
		return "function" + name + renderParamList(e.Params) + " {\n" + e.Body.Text() + "}"
	default:
		return ""
	}
}

func renderArguments(args []Expression) string {
	parts := make([]string, 0, len(args))
	for _, arg := range args {
		parts = append(parts, renderExpression(arg))
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func renderParamList(params []*FormalParameter) string {
	parts := make([]string, 0, len(params))
	for _, param := range params {
		parts = append(parts, ParamText(param))
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func renderFunctionSource(id *Identifier, params []*FormalParameter, body *StatementList) string {
	name := ""
	if id != nil {
		name = " " + id.Name
	}
	return "function" + name + renderParamList(params) + " {\n" + body.Text() + "}"
}
