package interpreter

import (
	"math"

	"ecmascript/engine-go/pkg/ast"
	"ecmascript/engine-go/pkg/runtime"
)

// MakeNative wraps a Go entry point as a function object with name and
// length installed, prototype-linked to %Function.prototype%.
func (i *Interpreter) MakeNative(name string, length int, ctor bool, fn runtime.NativeFunc) *runtime.FunctionValue {
	fv := runtime.NewFunctionValue(runtime.NativeFunction{Fn: fn, Ctor: ctor}, i.funcProto)
	i.installNameAndLength(fv, name, float64(length))
	return fv
}

// MakeClosure wraps a Go entry point plus a capture cell as a function
// object. The cell is shared, never copied, across clones of the closure.
func (i *Interpreter) MakeClosure(name string, length int, captures runtime.Captures, fn runtime.ClosureFunc) *runtime.FunctionValue {
	fv := runtime.NewFunctionValue(runtime.NativeClosure{Fn: fn, Captures: captures}, i.funcProto)
	i.installNameAndLength(fv, name, float64(length))
	return fv
}

// MakeOrdinary wraps an interpreted function definition as a function object
// with a fresh prototype property for construction.
func (i *Interpreter) MakeOrdinary(name string, fn *runtime.OrdinaryFunction) *runtime.FunctionValue {
	fv := runtime.NewFunctionValue(fn, i.funcProto)
	i.installNameAndLength(fv, name, float64(ast.ExpectedArgumentCount(fn.Params)))
	if fn.Constructor() {
		proto := runtime.NewObject(i.objectProto)
		_ = proto.DefineOwnProperty(runtime.StringKey("constructor"), runtime.PropertyDescriptor{
			Value: fv, Writable: true, Enumerable: false, Configurable: true,
		})
		_ = fv.DefineOwnProperty(runtime.StringKey("prototype"), runtime.PropertyDescriptor{
			Value: proto, Writable: true, Enumerable: false, Configurable: false,
		})
	}
	return fv
}

// MakeCompiled wraps a lowered code block plus its captured environment.
func (i *Interpreter) MakeCompiled(code *runtime.CodeBlock, env *runtime.Environment) *runtime.FunctionValue {
	fv := runtime.NewFunctionValue(&runtime.CompiledFunction{Code: code, Env: env}, i.funcProto)
	length := 0
	if code != nil {
		length = ast.ExpectedArgumentCount(code.Params)
	}
	i.installNameAndLength(fv, code.Name, float64(length))
	return fv
}

// RegisterBuiltin creates a native function and installs it on parent under
// its own name: the function's name and length are locked down, the parent
// slot stays writable.
func (i *Interpreter) RegisterBuiltin(parent *runtime.Object, name string, length int, fn runtime.NativeFunc) *runtime.FunctionValue {
	fv := i.MakeNative(name, length, false, fn)
	_ = parent.DefineOwnProperty(runtime.StringKey(name), runtime.PropertyDescriptor{
		Value: fv, Writable: true, Enumerable: false, Configurable: true,
	})
	return fv
}

func (i *Interpreter) installNameAndLength(fv *runtime.FunctionValue, name string, length float64) {
	_ = fv.DefineOwnProperty(runtime.StringKey("name"), runtime.MethodProperty(runtime.StringValue{Val: name}))
	_ = fv.DefineOwnProperty(runtime.StringKey("length"), runtime.MethodProperty(runtime.NumberValue{Val: length}))
}

// SetFunctionName installs the derived `name` property: symbol keys render
// as their bracketed description, prefixes join with a single space.
func SetFunctionName(fn *runtime.Object, key runtime.PropertyKey, prefix string) {
	name := ""
	if sym, ok := key.IsSymbol(); ok {
		if sym != nil && sym.Description != nil {
			name = "[" + *sym.Description + "]"
		}
	} else {
		name = key.String()
	}
	if prefix != "" {
		name = prefix + " " + name
	}
	_ = fn.DefineOwnProperty(runtime.StringKey("name"), runtime.MethodProperty(runtime.StringValue{Val: name}))
}

//-----------------------------------------------------------------------------
// Function.prototype methods
//-----------------------------------------------------------------------------

// fnCall implements Function.prototype.call: first argument is the receiver,
// the rest pass through.
func fnCall(this runtime.Value, args []runtime.Value, ctx *runtime.CallContext) (runtime.Value, error) {
	if _, ok := runtime.AsCallable(this); !ok {
		return nil, ctx.Caller.TypeError("Function.prototype.call called on non-callable %s", runtime.Display(this))
	}
	var receiver runtime.Value = runtime.Undefined
	var rest []runtime.Value
	if len(args) > 0 {
		receiver = args[0]
		rest = args[1:]
	}
	return ctx.Caller.Call(this, receiver, rest)
}

// fnApply implements Function.prototype.apply: a null or undefined argument
// array means call with no arguments, anything else is flattened array-like.
func fnApply(this runtime.Value, args []runtime.Value, ctx *runtime.CallContext) (runtime.Value, error) {
	if _, ok := runtime.AsCallable(this); !ok {
		return nil, ctx.Caller.TypeError("Function.prototype.apply called on non-callable %s", runtime.Display(this))
	}
	var receiver runtime.Value = runtime.Undefined
	if len(args) > 0 {
		receiver = args[0]
	}
	var argArray runtime.Value = runtime.Undefined
	if len(args) > 1 {
		argArray = args[1]
	}
	if runtime.IsNullOrUndefined(argArray) {
		return ctx.Caller.Call(this, receiver, nil)
	}
	list, err := runtime.CreateListFromArrayLike(argArray)
	if err != nil {
		return nil, ctx.Caller.TypeError("%s", err.Error())
	}
	return ctx.Caller.Call(this, receiver, list)
}

// fnBind implements Function.prototype.bind: a bound wrapper over the target
// with the receiver and argument prefix baked in, a derived length, and a
// "bound "-prefixed name.
func fnBind(this runtime.Value, args []runtime.Value, ctx *runtime.CallContext) (runtime.Value, error) {
	target, ok := runtime.AsCallable(this)
	if !ok {
		return nil, ctx.Caller.TypeError("Function.prototype.bind called on non-callable %s", runtime.Display(this))
	}
	var receiver runtime.Value = runtime.Undefined
	var prefix []runtime.Value
	if len(args) > 0 {
		receiver = args[0]
		prefix = append([]runtime.Value{}, args[1:]...)
	}
	bound := runtime.NewBoundFunction(target, receiver, prefix)

	targetObj, _ := runtime.AsObject(target)
	length := 0.0
	if targetObj.HasOwnProperty(runtime.StringKey("length")) {
		if n, ok := targetObj.Get(runtime.StringKey("length")).(runtime.NumberValue); ok {
			length = boundLength(n.Val, len(prefix))
		}
	}
	_ = bound.DefineOwnProperty(runtime.StringKey("length"), runtime.MethodProperty(runtime.NumberValue{Val: length}))

	targetName := ""
	if s, ok := targetObj.Get(runtime.StringKey("name")).(runtime.StringValue); ok {
		targetName = s.Val
	}
	SetFunctionName(&bound.Object, runtime.StringKey(targetName), "bound")
	return bound, nil
}

// boundLength derives the wrapper's length from the target's via
// ToIntegerOrInfinity: positive infinity survives, negative infinity clamps
// to zero, finite values lose the prefix count and floor at zero.
func boundLength(targetLen float64, bound int) float64 {
	n := integerOrInfinity(targetLen)
	switch {
	case math.IsInf(n, 1):
		return math.Inf(1)
	case math.IsInf(n, -1):
		return 0
	default:
		derived := n - float64(bound)
		if derived < 0 {
			return 0
		}
		return derived
	}
}

// integerOrInfinity truncates toward zero; NaN becomes zero and infinities
// pass through.
func integerOrInfinity(f float64) float64 {
	if math.IsNaN(f) {
		return 0
	}
	if math.IsInf(f, 0) {
		return f
	}
	return math.Trunc(f)
}

// fnToString implements Function.prototype.toString over every variant.
func fnToString(this runtime.Value, _ []runtime.Value, ctx *runtime.CallContext) (runtime.Value, error) {
	callable, ok := runtime.AsCallable(this)
	if !ok {
		return nil, ctx.Caller.TypeError("Function.prototype.toString called on non-callable %s", runtime.Display(this))
	}
	return runtime.StringValue{Val: renderFunctionSource(callable)}, nil
}

// fnHasInstance implements Function.prototype[Symbol.hasInstance].
func fnHasInstance(this runtime.Value, args []runtime.Value, ctx *runtime.CallContext) (runtime.Value, error) {
	var operand runtime.Value = runtime.Undefined
	if len(args) > 0 {
		operand = args[0]
	}
	result, err := runtime.OrdinaryHasInstance(this, operand)
	if err != nil {
		return nil, ctx.Caller.TypeError("%s", err.Error())
	}
	return runtime.BoolValue{Val: result}, nil
}
