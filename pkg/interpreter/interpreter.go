package interpreter

import (
	"ecmascript/engine-go/pkg/ast"
	"ecmascript/engine-go/pkg/runtime"
)

// Interpreter evaluates parsed programs against a global environment. It is
// also the runtime.Caller native code re-enters for nested dispatch.
type Interpreter struct {
	global       *runtime.Environment
	globalObject *runtime.Object
	funcProto    *runtime.Object
	objectProto  *runtime.Object
}

func New() *Interpreter {
	interp := &Interpreter{
		global: runtime.NewEnvironment(nil),
	}
	interp.setupGlobals()
	return interp
}

// GlobalEnvironment exposes the root scope, mainly for hosts and tests.
func (i *Interpreter) GlobalEnvironment() *runtime.Environment {
	return i.global
}

// GlobalObject exposes globalThis.
func (i *Interpreter) GlobalObject() *runtime.Object {
	return i.globalObject
}

// FunctionPrototype exposes the shared %Function.prototype%.
func (i *Interpreter) FunctionPrototype() *runtime.Object {
	return i.funcProto
}

func (i *Interpreter) context(env *runtime.Environment) *runtime.CallContext {
	if env == nil {
		env = i.global
	}
	return &runtime.CallContext{Env: env, Caller: i, Global: i.globalObject}
}

// EvaluateProgram runs a program top to bottom and returns the value of the
// final statement. Uncaught throws surface as errors.
func (i *Interpreter) EvaluateProgram(program *ast.Program) (runtime.Value, error) {
	if program == nil {
		return runtime.Undefined, nil
	}
	var last runtime.Value = runtime.Undefined
	for _, stmt := range program.Body {
		v, err := i.evalStatement(stmt, i.global)
		if err != nil {
			return nil, err
		}
		last = v
	}
	return last, nil
}

// EvaluateStatements runs a statement list in a child of the global scope.
func (i *Interpreter) EvaluateStatements(list *ast.StatementList) (runtime.Value, error) {
	if list == nil {
		return runtime.Undefined, nil
	}
	env := i.global.Extend()
	var last runtime.Value = runtime.Undefined
	for _, stmt := range list.Statements {
		v, err := i.evalStatement(stmt, env)
		if err != nil {
			return nil, err
		}
		last = v
	}
	return last, nil
}

// TypeError builds a propagating TypeError throw. Part of runtime.Caller.
func (i *Interpreter) TypeError(format string, a ...any) error {
	return typeError(format, a...)
}
