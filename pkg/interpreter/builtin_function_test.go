package interpreter

import (
	"math"
	"testing"

	"ecmascript/engine-go/pkg/ast"
	"ecmascript/engine-go/pkg/runtime"
)

// method resolves a Function.prototype method through the function object's
// prototype chain, the way a property access would.
func method(t *testing.T, fn runtime.Value, name string) runtime.Value {
	t.Helper()
	obj, ok := runtime.AsObject(fn)
	if !ok {
		t.Fatalf("%s is not an object", runtime.Display(fn))
	}
	m := obj.Get(runtime.StringKey(name))
	if _, ok := runtime.AsCallable(m); !ok {
		t.Fatalf("%s is not callable", name)
	}
	return m
}

func identityFn(i *Interpreter) *runtime.FunctionValue {
	return i.MakeNative("identity", 1, false, func(this runtime.Value, args []runtime.Value, _ *runtime.CallContext) (runtime.Value, error) {
		return this, nil
	})
}

func argCountFn(i *Interpreter) *runtime.FunctionValue {
	return i.MakeNative("count", 0, false, func(_ runtime.Value, args []runtime.Value, _ *runtime.CallContext) (runtime.Value, error) {
		return runtime.NumberValue{Val: float64(len(args))}, nil
	})
}

func TestFunctionCallForwardsReceiverAndArgs(t *testing.T) {
	i := New()
	fn := identityFn(i)
	receiver := runtime.NewObject(nil)

	result := mustCall(t, i, method(t, fn, "call"), fn, receiver, runtime.NumberValue{Val: 1})
	if result != runtime.Value(receiver) {
		t.Fatal("call should forward its first argument as the receiver")
	}

	count := argCountFn(i)
	got := asNumber(t, mustCall(t, i, method(t, count, "call"), count,
		runtime.Undefined, runtime.NumberValue{Val: 1}, runtime.NumberValue{Val: 2}))
	if got != 2 {
		t.Fatalf("call should pass the remaining arguments, got %v", got)
	}
}

func TestFunctionMethodsOnNonCallableThrow(t *testing.T) {
	i := New()
	fn := identityFn(i)
	for _, name := range []string{"call", "apply", "bind"} {
		_, err := i.Call(method(t, fn, name), runtime.NumberValue{Val: 3}, nil)
		assertTypeError(t, err)
	}
}

// recorderFn captures the receiver and arguments of its latest invocation.
func recorderFn(i *Interpreter, lastThis *runtime.Value, lastArgs *[]runtime.Value) *runtime.FunctionValue {
	return i.MakeNative("recorder", 0, true, func(this runtime.Value, args []runtime.Value, _ *runtime.CallContext) (runtime.Value, error) {
		*lastThis = this
		*lastArgs = append([]runtime.Value{}, args...)
		return runtime.Undefined, nil
	})
}

func TestBoundCallArgumentOrder(t *testing.T) {
	i := New()
	var lastThis runtime.Value
	var lastArgs []runtime.Value
	target := recorderFn(i, &lastThis, &lastArgs)

	receiver := runtime.NewObject(nil)
	a, b := runtime.StringValue{Val: "a"}, runtime.StringValue{Val: "b"}
	c, d := runtime.StringValue{Val: "c"}, runtime.StringValue{Val: "d"}

	bound := mustCall(t, i, method(t, target, "bind"), target, receiver, a, b)
	mustCall(t, i, bound, runtime.Undefined, c, d)

	if lastThis != runtime.Value(receiver) {
		t.Fatal("target should see the bound receiver")
	}
	want := []runtime.Value{a, b, c, d}
	if len(lastArgs) != len(want) {
		t.Fatalf("expected %d arguments, got %d", len(want), len(lastArgs))
	}
	for idx := range want {
		if lastArgs[idx] != want[idx] {
			t.Fatalf("argument %d: got %s, want %s", idx, runtime.Display(lastArgs[idx]), runtime.Display(want[idx]))
		}
	}
}

func TestFunctionApplyNullishArgArray(t *testing.T) {
	i := New()
	count := argCountFn(i)
	apply := method(t, count, "apply")

	for _, argArray := range []runtime.Value{runtime.Undefined, runtime.Null} {
		got := asNumber(t, mustCall(t, i, apply, count, runtime.Undefined, argArray))
		if got != 0 {
			t.Fatalf("nullish argument array should mean zero arguments, got %v", got)
		}
	}
	got := asNumber(t, mustCall(t, i, apply, count, runtime.Undefined))
	if got != 0 {
		t.Fatalf("missing argument array should mean zero arguments, got %v", got)
	}

	// The receiver still passes through alongside a nullish argument array.
	fn := identityFn(i)
	receiver := runtime.NewObject(nil)
	result := mustCall(t, i, method(t, fn, "apply"), fn, receiver, runtime.Null)
	if result != runtime.Value(receiver) {
		t.Fatal("apply should forward the receiver")
	}
}

func TestFunctionApplySpreadsArrayLike(t *testing.T) {
	i := New()
	count := argCountFn(i)
	apply := method(t, count, "apply")

	arr := runtime.NewArray([]runtime.Value{runtime.NumberValue{Val: 1}, runtime.NumberValue{Val: 2}, runtime.NumberValue{Val: 3}})
	if got := asNumber(t, mustCall(t, i, apply, count, runtime.Undefined, arr)); got != 3 {
		t.Fatalf("expected 3 spread arguments, got %v", got)
	}

	// A plain object with a length counts as array-like.
	arrayLike := runtime.NewObject(nil)
	_ = arrayLike.Set(runtime.StringKey("length"), runtime.NumberValue{Val: 2})
	_ = arrayLike.Set(runtime.IndexKey(0), runtime.StringValue{Val: "a"})
	_ = arrayLike.Set(runtime.IndexKey(1), runtime.StringValue{Val: "b"})
	if got := asNumber(t, mustCall(t, i, apply, count, runtime.Undefined, arrayLike)); got != 2 {
		t.Fatalf("expected 2 array-like arguments, got %v", got)
	}
}

func TestFunctionApplyRejectsNonArrayLike(t *testing.T) {
	i := New()
	count := argCountFn(i)
	_, err := i.Call(method(t, count, "apply"), count, []runtime.Value{runtime.Undefined, runtime.NumberValue{Val: 5}})
	assertTypeError(t, err)
}

func TestFunctionBindFixesReceiverAndPrependsArgs(t *testing.T) {
	i := New()
	fn := identityFn(i)
	receiver := runtime.NewObject(nil)

	bound := mustCall(t, i, method(t, fn, "bind"), fn, receiver)
	if mustCall(t, i, bound, runtime.Undefined) != runtime.Value(receiver) {
		t.Fatal("bound receiver should be used on every call")
	}
	// A call-time receiver cannot displace the bound one.
	other := runtime.NewObject(nil)
	if mustCall(t, i, method(t, bound, "call"), bound, other) != runtime.Value(receiver) {
		t.Fatal("bound receiver should win over call")
	}

	count := argCountFn(i)
	boundCount := mustCall(t, i, method(t, count, "bind"), count,
		runtime.Undefined, runtime.NumberValue{Val: 1}, runtime.NumberValue{Val: 2})
	got := asNumber(t, mustCall(t, i, boundCount, runtime.Undefined, runtime.NumberValue{Val: 3}))
	if got != 3 {
		t.Fatalf("bound arguments should precede call arguments, got %v", got)
	}
}

func TestFunctionBindDerivedLength(t *testing.T) {
	i := New()
	bindOf := func(fn *runtime.FunctionValue, args ...runtime.Value) runtime.Value {
		return mustCall(t, i, method(t, fn, "bind"), fn, append([]runtime.Value{runtime.Undefined}, args...)...)
	}
	lengthOf := func(v runtime.Value) float64 {
		obj, _ := runtime.AsObject(v)
		return asNumber(t, obj.Get(runtime.StringKey("length")))
	}

	three := i.MakeNative("f", 3, false, func(runtime.Value, []runtime.Value, *runtime.CallContext) (runtime.Value, error) {
		return runtime.Undefined, nil
	})
	if got := lengthOf(bindOf(three, runtime.NumberValue{Val: 1})); got != 2 {
		t.Fatalf("expected length 2, got %v", got)
	}
	if got := lengthOf(bindOf(three, runtime.NumberValue{Val: 1}, runtime.NumberValue{Val: 2}, runtime.NumberValue{Val: 3}, runtime.NumberValue{Val: 4})); got != 0 {
		t.Fatalf("over-binding should floor at zero, got %v", got)
	}

	// Without an own numeric length the wrapper's length is zero.
	bare := runtime.NewFunctionValue(runtime.NativeFunction{Fn: func(runtime.Value, []runtime.Value, *runtime.CallContext) (runtime.Value, error) {
		return runtime.Undefined, nil
	}}, i.FunctionPrototype())
	if got := lengthOf(bindOf(bare)); got != 0 {
		t.Fatalf("missing length should derive zero, got %v", got)
	}

	text := runtime.NewFunctionValue(runtime.NativeFunction{Fn: func(runtime.Value, []runtime.Value, *runtime.CallContext) (runtime.Value, error) {
		return runtime.Undefined, nil
	}}, i.FunctionPrototype())
	_ = text.DefineOwnProperty(runtime.StringKey("length"), runtime.MethodProperty(runtime.StringValue{Val: "nope"}))
	if got := lengthOf(bindOf(text)); got != 0 {
		t.Fatalf("non-numeric length should derive zero, got %v", got)
	}

	infinite := runtime.NewFunctionValue(runtime.NativeFunction{Fn: func(runtime.Value, []runtime.Value, *runtime.CallContext) (runtime.Value, error) {
		return runtime.Undefined, nil
	}}, i.FunctionPrototype())
	_ = infinite.DefineOwnProperty(runtime.StringKey("length"), runtime.MethodProperty(runtime.NumberValue{Val: math.Inf(1)}))
	if got := lengthOf(bindOf(infinite, runtime.NumberValue{Val: 1})); !math.IsInf(got, 1) {
		t.Fatalf("infinite length should survive binding, got %v", got)
	}

	negative := runtime.NewFunctionValue(runtime.NativeFunction{Fn: func(runtime.Value, []runtime.Value, *runtime.CallContext) (runtime.Value, error) {
		return runtime.Undefined, nil
	}}, i.FunctionPrototype())
	_ = negative.DefineOwnProperty(runtime.StringKey("length"), runtime.MethodProperty(runtime.NumberValue{Val: math.Inf(-1)}))
	if got := lengthOf(bindOf(negative)); got != 0 {
		t.Fatalf("negative infinity should clamp to zero, got %v", got)
	}
}

func TestFunctionBindName(t *testing.T) {
	i := New()
	fn := identityFn(i)
	nameOf := func(v runtime.Value) string {
		obj, _ := runtime.AsObject(v)
		return obj.Get(runtime.StringKey("name")).(runtime.StringValue).Val
	}

	bound := mustCall(t, i, method(t, fn, "bind"), fn, runtime.Undefined)
	if got := nameOf(bound); got != "bound identity" {
		t.Fatalf("expected %q, got %q", "bound identity", got)
	}

	double := mustCall(t, i, method(t, bound, "bind"), bound, runtime.Undefined)
	if got := nameOf(double); got != "bound bound identity" {
		t.Fatalf("expected %q, got %q", "bound bound identity", got)
	}

	// A non-string name on the target reads as the empty string.
	fn2 := identityFn(i)
	_ = fn2.DefineOwnProperty(runtime.StringKey("name"), runtime.MethodProperty(runtime.NumberValue{Val: 1}))
	bound2 := mustCall(t, i, method(t, fn2, "bind"), fn2, runtime.Undefined)
	if got := nameOf(bound2); got != "bound " {
		t.Fatalf("expected %q, got %q", "bound ", got)
	}
}

func TestFunctionBindConstructIgnoresBoundReceiver(t *testing.T) {
	i := New()
	ctor := i.MakeNative("Tag", 1, true, func(this runtime.Value, args []runtime.Value, _ *runtime.CallContext) (runtime.Value, error) {
		if obj, ok := runtime.AsObject(this); ok && len(args) > 0 {
			_ = obj.Set(runtime.StringKey("tag"), args[0])
		}
		return runtime.Undefined, nil
	})
	_ = ctor.DefineOwnProperty(runtime.StringKey("prototype"), runtime.MethodProperty(runtime.NewObject(nil)))

	boundReceiver := runtime.NewObject(nil)
	bound := mustCall(t, i, method(t, ctor, "bind"), ctor, boundReceiver, runtime.StringValue{Val: "fixed"})

	result, err := i.Construct(bound, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	obj, _ := runtime.AsObject(result)
	if obj == boundReceiver {
		t.Fatal("construction must not reuse the bound receiver")
	}
	if obj.Get(runtime.StringKey("tag")).(runtime.StringValue).Val != "fixed" {
		t.Fatal("bound prefix arguments should reach construction")
	}
}

func TestSetFunctionName(t *testing.T) {
	i := New()
	fn := identityFn(i)

	SetFunctionName(&fn.Object, runtime.StringKey("renamed"), "")
	if fn.DisplayName() != "renamed" {
		t.Fatalf("expected renamed, got %q", fn.DisplayName())
	}

	SetFunctionName(&fn.Object, runtime.SymbolKey(runtime.NewSymbol("iterator")), "")
	if fn.DisplayName() != "[iterator]" {
		t.Fatalf("described symbol should render bracketed, got %q", fn.DisplayName())
	}

	SetFunctionName(&fn.Object, runtime.SymbolKey(runtime.NewSymbolNoDescription()), "")
	if fn.DisplayName() != "" {
		t.Fatalf("undescribed symbol should render empty, got %q", fn.DisplayName())
	}

	SetFunctionName(&fn.Object, runtime.StringKey("prop"), "get")
	if fn.DisplayName() != "get prop" {
		t.Fatalf("prefix should join with a space, got %q", fn.DisplayName())
	}
}

func TestBuiltinAttributes(t *testing.T) {
	i := New()
	parent := runtime.NewObject(nil)
	fn := i.RegisterBuiltin(parent, "helper", 2, func(runtime.Value, []runtime.Value, *runtime.CallContext) (runtime.Value, error) {
		return runtime.Undefined, nil
	})

	name, _ := fn.GetOwn(runtime.StringKey("name"))
	if name.Writable || name.Enumerable || !name.Configurable {
		t.Fatal("name should be non-writable, non-enumerable, configurable")
	}
	length, _ := fn.GetOwn(runtime.StringKey("length"))
	if length.Writable || length.Enumerable || !length.Configurable {
		t.Fatal("length should be non-writable, non-enumerable, configurable")
	}
	if asNumber(t, length.Value) != 2 {
		t.Fatal("length should reflect the declared arity")
	}

	slot, ok := parent.GetOwn(runtime.StringKey("helper"))
	if !ok || !slot.Writable || slot.Enumerable || !slot.Configurable {
		t.Fatal("parent slot should be writable, non-enumerable, configurable")
	}
}

func TestFunctionHasInstance(t *testing.T) {
	i := New()
	ctor := i.MakeOrdinary("Thing", &runtime.OrdinaryFunction{
		Ctor:     true,
		ThisMode: runtime.ThisGlobal,
		Body:     ast.Stmts(),
		Env:      i.GlobalEnvironment(),
	})

	instance, err := i.Construct(ctor, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	obj, _ := runtime.AsObject(ctor)
	m := obj.Get(runtime.SymbolKey(runtime.SymbolHasInstance))
	result := mustCall(t, i, m, ctor, instance)
	if !result.(runtime.BoolValue).Val {
		t.Fatal("constructed instance should match")
	}
	result = mustCall(t, i, m, ctor, runtime.NewObject(nil))
	if result.(runtime.BoolValue).Val {
		t.Fatal("unrelated object should not match")
	}
}
