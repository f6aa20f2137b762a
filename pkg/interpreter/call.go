package interpreter

import (
	"ecmascript/engine-go/pkg/ast"
	"ecmascript/engine-go/pkg/runtime"
)

// Call dispatches an invocation against any callable value. Non-callables
// raise TypeError. Part of runtime.Caller, so natives re-enter here.
func (i *Interpreter) Call(callee runtime.Value, this runtime.Value, args []runtime.Value) (runtime.Value, error) {
	switch fn := callee.(type) {
	case *runtime.FunctionValue:
		return i.callFunctionValue(fn, this, args)
	case *runtime.BoundFunctionValue:
		merged := mergeBoundArgs(fn.Args, args)
		return i.Call(fn.Target, fn.This, merged)
	default:
		return nil, typeError("%s is not a function", runtime.Display(callee))
	}
}

func (i *Interpreter) callFunctionValue(fn *runtime.FunctionValue, this runtime.Value, args []runtime.Value) (runtime.Value, error) {
	switch variant := fn.Function.(type) {
	case runtime.NativeFunction:
		return variant.Fn(this, args, i.context(nil))
	case runtime.NativeClosure:
		return variant.Fn(this, args, variant.Captures, i.context(nil))
	case *runtime.OrdinaryFunction:
		return i.callOrdinary(variant, this, args)
	case *runtime.CompiledFunction:
		if variant.Code == nil || variant.Code.Exec == nil {
			return nil, typeError("function %s has no executable body", fn.DisplayName())
		}
		return variant.Code.Exec(this, args, variant.Env, i.context(variant.Env))
	default:
		return nil, typeError("%s is not a function", runtime.Display(fn))
	}
}

// Construct implements `new target(...)`: a fresh object wired to the
// function's prototype property becomes the receiver, and an object return
// value wins over it. Part of runtime.Caller.
func (i *Interpreter) Construct(target runtime.Value, args []runtime.Value) (runtime.Value, error) {
	callable, ok := runtime.AsCallable(target)
	if !ok {
		return nil, typeError("%s is not a constructor", runtime.Display(target))
	}
	if !callable.IsConstructor() {
		return nil, typeError("%s is not a constructor", runtime.Display(target))
	}
	if bound, ok := callable.(*runtime.BoundFunctionValue); ok {
		// Construction ignores the bound receiver and keeps only the
		// prefix arguments.
		return i.Construct(bound.Target, mergeBoundArgs(bound.Args, args))
	}

	obj, _ := runtime.AsObject(target)
	var proto *runtime.Object
	if p, ok := obj.Get(runtime.StringKey("prototype")).(*runtime.Object); ok {
		proto = p
	} else {
		proto = i.objectProto
	}
	receiver := runtime.NewObject(proto)

	result, err := i.Call(target, receiver, args)
	if err != nil {
		return nil, err
	}
	if ret, ok := runtime.AsObject(result); ok && ret != nil {
		return result, nil
	}
	return receiver, nil
}

// callOrdinary runs an interpreted function body: fresh activation scope,
// receiver per this mode, parameters bound, return signal absorbed.
func (i *Interpreter) callOrdinary(fn *runtime.OrdinaryFunction, this runtime.Value, args []runtime.Value) (runtime.Value, error) {
	defining := fn.Env
	if defining == nil {
		defining = i.global
	}
	env := defining.Extend()

	switch fn.ThisMode {
	case runtime.ThisLexical:
		// Arrows resolve `this` lexically through the defining scope.
	case runtime.ThisStrict:
		env.DefineConst("this", orUndefined(this))
	default:
		if runtime.IsNullOrUndefined(this) {
			env.DefineConst("this", i.globalObject)
		} else {
			env.DefineConst("this", this)
		}
	}

	if err := i.bindParameters(fn.Params, args, env); err != nil {
		return nil, err
	}
	if fn.ThisMode != runtime.ThisLexical {
		env.DefineConst("arguments", runtime.NewArray(append([]runtime.Value{}, args...)))
	}

	if fn.Body == nil {
		return runtime.Undefined, nil
	}
	for _, stmt := range fn.Body.Statements {
		if _, err := i.evalStatement(stmt, env); err != nil {
			if ret, ok := err.(returnSignal); ok {
				return orUndefined(ret.value), nil
			}
			return nil, err
		}
	}
	return runtime.Undefined, nil
}

// bindParameters binds formals to arguments: missing slots read undefined,
// defaults evaluate in the activation scope, a rest formal collects the tail.
func (i *Interpreter) bindParameters(params []*ast.FormalParameter, args []runtime.Value, env *runtime.Environment) error {
	for idx, param := range params {
		if param.Rest {
			rest := []runtime.Value{}
			if idx < len(args) {
				rest = append(rest, args[idx:]...)
			}
			return i.bindTarget(param.Target, runtime.NewArray(rest), env)
		}
		var arg runtime.Value = runtime.Undefined
		if idx < len(args) && args[idx] != nil {
			arg = args[idx]
		}
		if _, missing := arg.(runtime.UndefinedValue); missing && param.Default != nil {
			def, err := i.evalExpression(param.Default, env)
			if err != nil {
				return err
			}
			arg = def
		}
		if err := i.bindTarget(param.Target, arg, env); err != nil {
			return err
		}
	}
	return nil
}

func (i *Interpreter) bindTarget(target ast.BindingTarget, value runtime.Value, env *runtime.Environment) error {
	switch t := target.(type) {
	case *ast.IdentifierPattern:
		env.Define(t.ID.Name, value)
		return nil
	case *ast.ObjectPattern:
		obj, ok := runtime.AsObject(value)
		if !ok && !runtime.IsNullOrUndefined(value) {
			// Primitive destructuring only needs property reads, which
			// this subset models as absent.
			obj = runtime.NewObject(nil)
			ok = true
		}
		if !ok {
			return typeError("cannot destructure %s", runtime.Display(value))
		}
		for _, prop := range t.Properties {
			env.Define(prop.BoundName().Name, obj.Get(runtime.StringKey(prop.Key.Name)))
		}
		return nil
	default:
		return typeError("unsupported binding target")
	}
}

// mergeBoundArgs prepends the bound prefix to call-time arguments.
func mergeBoundArgs(prefix, args []runtime.Value) []runtime.Value {
	if len(prefix) == 0 {
		return args
	}
	merged := make([]runtime.Value, 0, len(prefix)+len(args))
	merged = append(merged, prefix...)
	merged = append(merged, args...)
	return merged
}

func orUndefined(v runtime.Value) runtime.Value {
	if v == nil {
		return runtime.Undefined
	}
	return v
}
