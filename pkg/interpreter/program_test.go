package interpreter

import (
	"testing"

	"ecmascript/engine-go/pkg/ast"
	"ecmascript/engine-go/pkg/runtime"
)

func evalProgram(t *testing.T, program *ast.Program) runtime.Value {
	t.Helper()
	v, err := New().EvaluateProgram(program)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return v
}

func TestProgramFunctionDeclarationAndCall(t *testing.T) {
	program := ast.Prog(
		ast.FnDecl("twice", []*ast.FormalParameter{ast.Param("n")},
			ast.Stmts(ast.Ret(ast.Bin("*", ast.ID("n"), ast.Num(2))))),
		ast.Call(ast.ID("twice"), ast.Num(4)),
	)
	if asNumber(t, evalProgram(t, program)) != 8 {
		t.Fatal("expected twice(4) to be 8")
	}
}

func TestClosureCapturesDefiningScope(t *testing.T) {
	program := ast.Prog(
		ast.FnDecl("makeAdder", []*ast.FormalParameter{ast.Param("x")},
			ast.Stmts(ast.Ret(ast.Arrow([]*ast.FormalParameter{ast.Param("y")},
				ast.Stmts(ast.Ret(ast.Bin("+", ast.ID("x"), ast.ID("y")))))))),
		ast.Call(ast.Call(ast.ID("makeAdder"), ast.Num(1)), ast.Num(2)),
	)
	if asNumber(t, evalProgram(t, program)) != 3 {
		t.Fatal("expected makeAdder(1)(2) to be 3")
	}
}

func TestTryCatchAbsorbsTypeError(t *testing.T) {
	program := ast.Prog(
		ast.Let("n", ast.Num(4)),
		ast.Try(
			ast.Stmts(ast.Call(ast.ID("n"))),
			"e",
			ast.Stmts(ast.Member(ast.ID("e"), "name")),
		),
	)
	result := evalProgram(t, program)
	if result.(runtime.StringValue).Val != "TypeError" {
		t.Fatalf("expected TypeError in handler, got %s", runtime.Display(result))
	}
}

func TestUncaughtThrowSurfaces(t *testing.T) {
	program := ast.Prog(ast.Throw(ast.Str("boom")))
	_, err := New().EvaluateProgram(program)
	if err == nil {
		t.Fatal("expected uncaught throw to surface")
	}
	thrown := ThrownValue(err)
	if thrown.(runtime.StringValue).Val != "boom" {
		t.Fatalf("expected thrown string, got %s", runtime.Display(thrown))
	}
}

func TestInstanceofOperator(t *testing.T) {
	program := ast.Prog(
		ast.FnDecl("Thing", nil, ast.Stmts()),
		ast.Let("t", ast.New(ast.ID("Thing"))),
		ast.Bin("instanceof", ast.ID("t"), ast.ID("Thing")),
	)
	if !evalProgram(t, program).(runtime.BoolValue).Val {
		t.Fatal("constructed value should be an instance")
	}

	program = ast.Prog(
		ast.FnDecl("Thing", nil, ast.Stmts()),
		ast.Bin("instanceof", ast.Num(1), ast.ID("Thing")),
	)
	if evalProgram(t, program).(runtime.BoolValue).Val {
		t.Fatal("primitives are never instances")
	}
}

func TestInstanceofNonObjectRightSideThrows(t *testing.T) {
	program := ast.Prog(ast.Bin("instanceof", ast.Num(1), ast.Num(2)))
	_, err := New().EvaluateProgram(program)
	assertTypeError(t, err)
}

func TestNamedEvaluationOfAnonymousFunction(t *testing.T) {
	program := ast.Prog(
		ast.Let("f", ast.FnExpr("", nil, ast.Stmts())),
		ast.Member(ast.ID("f"), "name"),
	)
	result := evalProgram(t, program)
	if result.(runtime.StringValue).Val != "f" {
		t.Fatalf("expected binding name, got %s", runtime.Display(result))
	}

	// An explicit name wins over the binding.
	program = ast.Prog(
		ast.Let("g", ast.FnExpr("named", nil, ast.Stmts())),
		ast.Member(ast.ID("g"), "name"),
	)
	result = evalProgram(t, program)
	if result.(runtime.StringValue).Val != "named" {
		t.Fatalf("expected explicit name, got %s", runtime.Display(result))
	}
}

func TestConstAssignmentThrows(t *testing.T) {
	program := ast.Prog(
		ast.Const("k", ast.Num(1)),
		ast.Assign(ast.ID("k"), ast.Num(2)),
	)
	_, err := New().EvaluateProgram(program)
	if err == nil {
		t.Fatal("expected const reassignment to throw")
	}
}

func TestUnresolvedIdentifierThrowsReferenceError(t *testing.T) {
	program := ast.Prog(ast.ID("nope"))
	_, err := New().EvaluateProgram(program)
	if err == nil {
		t.Fatal("expected a ReferenceError")
	}
	thrown, ok := ThrownValue(err).(*runtime.ErrorValue)
	if !ok || thrown.Name != "ReferenceError" {
		t.Fatalf("expected ReferenceError, got %v", err)
	}
}

func TestDynamicFunctionConstructor(t *testing.T) {
	program := ast.Prog(
		ast.Let("add", ast.New(ast.ID("Function"), ast.Str("a"), ast.Str("b"), ast.Str("return a + b;"))),
		ast.Call(ast.ID("add"), ast.Num(2), ast.Num(5)),
	)
	if asNumber(t, evalProgram(t, program)) != 7 {
		t.Fatal("dynamically constructed function should evaluate its body")
	}

	program = ast.Prog(
		ast.Let("f", ast.New(ast.ID("Function"), ast.Str("return 1;"))),
		ast.Member(ast.ID("f"), "name"),
	)
	result := evalProgram(t, program)
	if result.(runtime.StringValue).Val != "anonymous" {
		t.Fatalf("expected anonymous, got %s", runtime.Display(result))
	}
}
