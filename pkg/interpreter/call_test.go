package interpreter

import (
	"testing"

	"ecmascript/engine-go/pkg/ast"
	"ecmascript/engine-go/pkg/runtime"
)

func mustCall(t *testing.T, i *Interpreter, callee runtime.Value, this runtime.Value, args ...runtime.Value) runtime.Value {
	t.Helper()
	v, err := i.Call(callee, this, args)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return v
}

func asNumber(t *testing.T, v runtime.Value) float64 {
	t.Helper()
	n, ok := v.(runtime.NumberValue)
	if !ok {
		t.Fatalf("expected number, got %s", runtime.Display(v))
	}
	return n.Val
}

func makeAdd(i *Interpreter) *runtime.FunctionValue {
	return i.MakeOrdinary("add", &runtime.OrdinaryFunction{
		Ctor:     true,
		ThisMode: runtime.ThisGlobal,
		Params:   []*ast.FormalParameter{ast.Param("a"), ast.Param("b")},
		Body:     ast.Stmts(ast.Ret(ast.Bin("+", ast.ID("a"), ast.ID("b")))),
		Env:      i.GlobalEnvironment(),
	})
}

func TestCallOrdinaryFunction(t *testing.T) {
	i := New()
	add := makeAdd(i)

	result := mustCall(t, i, add, runtime.Undefined, runtime.NumberValue{Val: 2}, runtime.NumberValue{Val: 3})
	if asNumber(t, result) != 5 {
		t.Fatalf("expected 5, got %s", runtime.Display(result))
	}
}

func TestCallMissingArgumentsReadUndefined(t *testing.T) {
	i := New()
	fn := i.MakeOrdinary("probe", &runtime.OrdinaryFunction{
		ThisMode: runtime.ThisGlobal,
		Params:   []*ast.FormalParameter{ast.Param("x")},
		Body:     ast.Stmts(ast.Ret(ast.Un("typeof", ast.ID("x")))),
		Env:      i.GlobalEnvironment(),
	})

	result := mustCall(t, i, fn, runtime.Undefined)
	if result.(runtime.StringValue).Val != "undefined" {
		t.Fatalf("expected undefined parameter, got %s", runtime.Display(result))
	}
}

func TestCallDefaultAndRestParameters(t *testing.T) {
	i := New()
	fn := i.MakeOrdinary("tally", &runtime.OrdinaryFunction{
		ThisMode: runtime.ThisGlobal,
		Params: []*ast.FormalParameter{
			ast.DefaultParam("base", ast.Num(10)),
			ast.RestParam("rest"),
		},
		Body: ast.Stmts(ast.Ret(ast.Bin("+", ast.ID("base"), ast.Member(ast.ID("rest"), "length")))),
		Env:  i.GlobalEnvironment(),
	})

	if got := asNumber(t, mustCall(t, i, fn, runtime.Undefined)); got != 10 {
		t.Fatalf("default should fill a missing argument, got %v", got)
	}
	got := asNumber(t, mustCall(t, i, fn, runtime.Undefined,
		runtime.NumberValue{Val: 1}, runtime.Undefined, runtime.Undefined))
	if got != 3 {
		t.Fatalf("rest should collect trailing arguments, got %v", got)
	}
}

func TestCallArgumentsArray(t *testing.T) {
	i := New()
	fn := i.MakeOrdinary("arity", &runtime.OrdinaryFunction{
		ThisMode: runtime.ThisGlobal,
		Body:     ast.Stmts(ast.Ret(ast.Member(ast.ID("arguments"), "length"))),
		Env:      i.GlobalEnvironment(),
	})

	got := asNumber(t, mustCall(t, i, fn, runtime.Undefined,
		runtime.NumberValue{Val: 1}, runtime.NumberValue{Val: 2}))
	if got != 2 {
		t.Fatalf("expected arguments.length 2, got %v", got)
	}
}

func TestGlobalThisModeSubstitutesGlobalObject(t *testing.T) {
	i := New()
	fn := i.MakeOrdinary("self", &runtime.OrdinaryFunction{
		ThisMode: runtime.ThisGlobal,
		Body:     ast.Stmts(ast.Ret(ast.ID("this"))),
		Env:      i.GlobalEnvironment(),
	})

	if mustCall(t, i, fn, runtime.Undefined) != runtime.Value(i.GlobalObject()) {
		t.Fatal("undefined receiver should become the global object")
	}
	if mustCall(t, i, fn, runtime.Null) != runtime.Value(i.GlobalObject()) {
		t.Fatal("null receiver should become the global object")
	}
	obj := runtime.NewObject(nil)
	if mustCall(t, i, fn, obj) != runtime.Value(obj) {
		t.Fatal("explicit receiver should pass through")
	}
}

func TestStrictThisModePassesReceiverVerbatim(t *testing.T) {
	i := New()
	fn := i.MakeOrdinary("self", &runtime.OrdinaryFunction{
		ThisMode: runtime.ThisStrict,
		Body:     ast.Stmts(ast.Ret(ast.Un("typeof", ast.ID("this")))),
		Env:      i.GlobalEnvironment(),
	})

	result := mustCall(t, i, fn, runtime.Undefined)
	if result.(runtime.StringValue).Val != "undefined" {
		t.Fatal("strict mode should keep an undefined receiver")
	}
}

func TestArrowResolvesThisLexically(t *testing.T) {
	i := New()
	// outer runs with a receiver and returns an arrow reading `this`.
	outer := i.MakeOrdinary("outer", &runtime.OrdinaryFunction{
		ThisMode: runtime.ThisGlobal,
		Body:     ast.Stmts(ast.Ret(ast.Arrow(nil, ast.Stmts(ast.Ret(ast.ID("this")))))),
		Env:      i.GlobalEnvironment(),
	})

	receiver := runtime.NewObject(nil)
	arrow := mustCall(t, i, outer, receiver)
	// The arrow ignores its own receiver and sees the outer one.
	if mustCall(t, i, arrow, runtime.NewObject(nil)) != runtime.Value(receiver) {
		t.Fatal("arrow should read this from the defining scope")
	}
}

func TestFallThroughReturnsUndefined(t *testing.T) {
	i := New()
	fn := i.MakeOrdinary("noop", &runtime.OrdinaryFunction{
		ThisMode: runtime.ThisGlobal,
		Body:     ast.Stmts(ast.Let("x", ast.Num(1))),
		Env:      i.GlobalEnvironment(),
	})

	if mustCall(t, i, fn, runtime.Undefined) != runtime.Value(runtime.Undefined) {
		t.Fatal("body without return should yield undefined")
	}
}

func TestCallNonCallableThrowsTypeError(t *testing.T) {
	i := New()
	_, err := i.Call(runtime.NumberValue{Val: 4}, runtime.Undefined, nil)
	assertTypeError(t, err)
}

func TestConstructFreshReceiver(t *testing.T) {
	i := New()
	point := i.MakeOrdinary("Point", &runtime.OrdinaryFunction{
		Ctor:     true,
		ThisMode: runtime.ThisGlobal,
		Params:   []*ast.FormalParameter{ast.Param("x")},
		Body:     ast.Stmts(ast.Assign(ast.Member(ast.ID("this"), "x"), ast.ID("x"))),
		Env:      i.GlobalEnvironment(),
	})

	result, err := i.Construct(point, []runtime.Value{runtime.NumberValue{Val: 9}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	obj, ok := runtime.AsObject(result)
	if !ok {
		t.Fatalf("expected object, got %s", runtime.Display(result))
	}
	if asNumber(t, obj.Get(runtime.StringKey("x"))) != 9 {
		t.Fatal("constructor should initialize the fresh receiver")
	}

	proto, _ := point.Get(runtime.StringKey("prototype")).(*runtime.Object)
	if obj.Prototype() != proto {
		t.Fatal("receiver should link to the constructor's prototype")
	}
}

func TestConstructObjectReturnWins(t *testing.T) {
	i := New()
	override := runtime.NewObject(nil)
	ctor := i.MakeNative("Override", 0, true, func(runtime.Value, []runtime.Value, *runtime.CallContext) (runtime.Value, error) {
		return override, nil
	})

	result, err := i.Construct(ctor, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != runtime.Value(override) {
		t.Fatal("explicit object return should replace the receiver")
	}
}

func TestConstructNonConstructorThrows(t *testing.T) {
	i := New()
	arrow := i.MakeOrdinary("", &runtime.OrdinaryFunction{
		ThisMode: runtime.ThisLexical,
		Body:     ast.Stmts(),
		Env:      i.GlobalEnvironment(),
	})
	_, err := i.Construct(arrow, nil)
	assertTypeError(t, err)

	plain := i.MakeNative("plain", 0, false, func(runtime.Value, []runtime.Value, *runtime.CallContext) (runtime.Value, error) {
		return runtime.Undefined, nil
	})
	_, err = i.Construct(plain, nil)
	assertTypeError(t, err)
}

func TestNativeClosureSharesCaptures(t *testing.T) {
	i := New()
	captures := runtime.NewCaptures(&struct{ calls int }{})
	counter := i.MakeClosure("counter", 0, captures, func(_ runtime.Value, _ []runtime.Value, c runtime.Captures, _ *runtime.CallContext) (runtime.Value, error) {
		ref := c.BorrowMut()
		defer ref.Release()
		state := ref.Get().(*struct{ calls int })
		state.calls++
		return runtime.NumberValue{Val: float64(state.calls)}, nil
	})

	mustCall(t, i, counter, runtime.Undefined)
	got := asNumber(t, mustCall(t, i, counter, runtime.Undefined))
	if got != 2 {
		t.Fatalf("closure should accumulate in its capture cell, got %v", got)
	}
}

func TestCompiledFunctionCall(t *testing.T) {
	i := New()
	code := i.CompileFunction("double",
		[]*ast.FormalParameter{ast.Param("n")},
		ast.Stmts(ast.Ret(ast.Bin("*", ast.ID("n"), ast.Num(2)))),
		runtime.ThisGlobal, true)
	fn := i.MakeCompiled(code, i.GlobalEnvironment())

	if got := asNumber(t, mustCall(t, i, fn, runtime.Undefined, runtime.NumberValue{Val: 21})); got != 42 {
		t.Fatalf("expected 42, got %v", got)
	}
	if asNumber(t, fn.Get(runtime.StringKey("length"))) != 1 {
		t.Fatal("compiled function length should come from its parameters")
	}
	if !fn.IsConstructor() {
		t.Fatal("compiled block ctor flag should carry through")
	}
}

func assertTypeError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected a TypeError")
	}
	thrown, ok := ThrownValue(err).(*runtime.ErrorValue)
	if !ok || thrown.Name != "TypeError" {
		t.Fatalf("expected TypeError, got %v", err)
	}
}
