package parser

import (
	"testing"

	"ecmascript/engine-go/pkg/ast"
)

func parse(t *testing.T, source string) *ast.Program {
	t.Helper()
	program, err := ParseProgram(source)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	return program
}

func TestParseFunctionDeclaration(t *testing.T) {
	program := parse(t, "function add(a, b) { return a + b; }")
	if len(program.Body) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(program.Body))
	}
	decl, ok := program.Body[0].(*ast.FunctionDeclaration)
	if !ok {
		t.Fatalf("expected function declaration, got %T", program.Body[0])
	}
	if decl.ID.Name != "add" {
		t.Fatalf("expected name add, got %s", decl.ID.Name)
	}
	if len(decl.Params) != 2 {
		t.Fatalf("expected 2 params, got %d", len(decl.Params))
	}
	if decl.Body.Source != "return a + b;" {
		t.Fatalf("expected body source preserved, got %q", decl.Body.Source)
	}
	ret, ok := decl.Body.Statements[0].(*ast.ReturnStatement)
	if !ok {
		t.Fatal("expected return statement")
	}
	bin, ok := ret.Argument.(*ast.BinaryExpression)
	if !ok || bin.Operator != "+" {
		t.Fatal("expected a + b")
	}
}

func TestParseParameterShapes(t *testing.T) {
	program := parse(t, "function f(a, b = 1, {x, y}, ...rest) {}")
	decl := program.Body[0].(*ast.FunctionDeclaration)
	if len(decl.Params) != 4 {
		t.Fatalf("expected 4 params, got %d", len(decl.Params))
	}
	if decl.Params[1].Default == nil {
		t.Fatal("expected default on second parameter")
	}
	obj, ok := decl.Params[2].Target.(*ast.ObjectPattern)
	if !ok || len(obj.Properties) != 2 {
		t.Fatal("expected two-property object pattern")
	}
	if !decl.Params[3].Rest {
		t.Fatal("expected rest parameter")
	}
	if ast.ExpectedArgumentCount(decl.Params) != 1 {
		t.Fatalf("length should stop at the first default, got %d", ast.ExpectedArgumentCount(decl.Params))
	}
}

func TestParseArrowFunctions(t *testing.T) {
	program := parse(t, "const f = x => x * 2;")
	decl := program.Body[0].(*ast.VariableDeclaration)
	fn, ok := decl.Init.(*ast.FunctionExpression)
	if !ok || !fn.Arrow {
		t.Fatal("expected arrow function")
	}
	if len(fn.Params) != 1 {
		t.Fatalf("expected single parameter, got %d", len(fn.Params))
	}
	if _, ok := fn.Body.Statements[0].(*ast.ReturnStatement); !ok {
		t.Fatal("expression body should lower to an implicit return")
	}

	program = parse(t, "const g = (a, b) => { return a; };")
	fn = program.Body[0].(*ast.VariableDeclaration).Init.(*ast.FunctionExpression)
	if len(fn.Params) != 2 {
		t.Fatalf("expected 2 parameters, got %d", len(fn.Params))
	}
}

func TestParseCallsAndMembers(t *testing.T) {
	program := parse(t, "f.call(obj, 1);")
	call, ok := program.Body[0].(*ast.CallExpression)
	if !ok {
		t.Fatalf("expected call expression, got %T", program.Body[0])
	}
	member, ok := call.Callee.(*ast.MemberAccessExpression)
	if !ok || member.Member.Name != "call" {
		t.Fatal("expected member callee f.call")
	}
	if len(call.Arguments) != 2 {
		t.Fatalf("expected 2 arguments, got %d", len(call.Arguments))
	}
}

func TestParseNewExpression(t *testing.T) {
	program := parse(t, "new Point(1, 2);")
	expr, ok := program.Body[0].(*ast.NewExpression)
	if !ok {
		t.Fatalf("expected new expression, got %T", program.Body[0])
	}
	if expr.Callee.(*ast.Identifier).Name != "Point" {
		t.Fatal("expected Point constructor")
	}
	if len(expr.Arguments) != 2 {
		t.Fatal("expected 2 arguments")
	}
}

func TestParseControlFlow(t *testing.T) {
	program := parse(t, `
try {
  throw "x";
} catch (e) {
  let y = e;
}
if (true) { 1; } else { 2; }
`)
	if len(program.Body) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(program.Body))
	}
	try, ok := program.Body[0].(*ast.TryStatement)
	if !ok || try.Param == nil || try.Param.Name != "e" {
		t.Fatal("expected try with catch parameter e")
	}
	cond, ok := program.Body[1].(*ast.IfStatement)
	if !ok || cond.Alternate == nil {
		t.Fatal("expected if with else branch")
	}
}

func TestParseInstanceof(t *testing.T) {
	program := parse(t, "a instanceof B;")
	bin, ok := program.Body[0].(*ast.BinaryExpression)
	if !ok || bin.Operator != "instanceof" {
		t.Fatalf("expected instanceof expression, got %T", program.Body[0])
	}
}

func TestParseStringEscapes(t *testing.T) {
	program := parse(t, `let s = "a\nb";`)
	lit := program.Body[0].(*ast.VariableDeclaration).Init.(*ast.StringLiteral)
	if lit.Value != "a\nb" {
		t.Fatalf("expected unescaped newline, got %q", lit.Value)
	}
}

func TestParseSyntaxErrorReported(t *testing.T) {
	if _, err := ParseProgram("function ("); err == nil {
		t.Fatal("expected syntax error")
	}
}

func TestParserSpans(t *testing.T) {
	program := parse(t, "let x = 1;")
	decl := program.Body[0].(*ast.VariableDeclaration)
	span := decl.Span()
	if span.Start.Line != 0 || span.Start.Column != 0 || span.End.Column != 10 {
		t.Fatalf("expected span covering the declaration, got %+v", span)
	}
}
