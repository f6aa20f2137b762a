package interpreter

import (
	"ecmascript/engine-go/pkg/ast"
	"ecmascript/engine-go/pkg/runtime"
)

// thunk is a pre-lowered evaluation step.
type thunk func(env *runtime.Environment) (runtime.Value, error)

// CompileFunction lowers a function definition into a code block: the body
// is dispatched once at compile time into a chain of thunks, so repeated
// calls skip the per-node type switch.
func (i *Interpreter) CompileFunction(name string, params []*ast.FormalParameter, body *ast.StatementList, thisMode runtime.ThisMode, ctor bool) *runtime.CodeBlock {
	steps := make([]thunk, 0, bodyLen(body))
	if body != nil {
		for _, stmt := range body.Statements {
			steps = append(steps, i.compileStatement(stmt))
		}
	}

	exec := func(this runtime.Value, args []runtime.Value, defining *runtime.Environment, ctx *runtime.CallContext) (runtime.Value, error) {
		if defining == nil {
			defining = i.global
		}
		env := defining.Extend()
		switch thisMode {
		case runtime.ThisLexical:
		case runtime.ThisStrict:
			env.DefineConst("this", orUndefined(this))
		default:
			if runtime.IsNullOrUndefined(this) {
				env.DefineConst("this", i.globalObject)
			} else {
				env.DefineConst("this", this)
			}
		}
		if err := i.bindParameters(params, args, env); err != nil {
			return nil, err
		}
		if thisMode != runtime.ThisLexical {
			env.DefineConst("arguments", runtime.NewArray(append([]runtime.Value{}, args...)))
		}
		for _, step := range steps {
			if _, err := step(env); err != nil {
				if ret, ok := err.(returnSignal); ok {
					return orUndefined(ret.value), nil
				}
				return nil, err
			}
		}
		return runtime.Undefined, nil
	}

	return &runtime.CodeBlock{Name: name, Ctor: ctor, Params: params, Exec: exec}
}

func (i *Interpreter) compileStatement(stmt ast.Statement) thunk {
	switch s := stmt.(type) {
	case *ast.ReturnStatement:
		if s.Argument == nil {
			return func(env *runtime.Environment) (runtime.Value, error) {
				return nil, returnSignal{value: runtime.Undefined}
			}
		}
		arg := i.compileExpression(s.Argument)
		return func(env *runtime.Environment) (runtime.Value, error) {
			v, err := arg(env)
			if err != nil {
				return nil, err
			}
			return nil, returnSignal{value: v}
		}
	case *ast.VariableDeclaration:
		name := s.Name.Name
		isConst := s.DeclKind == "const"
		var init thunk
		if s.Init != nil {
			init = i.compileExpression(s.Init)
		}
		return func(env *runtime.Environment) (runtime.Value, error) {
			var value runtime.Value = runtime.Undefined
			if init != nil {
				v, err := init(env)
				if err != nil {
					return nil, err
				}
				value = v
			}
			if isConst {
				env.DefineConst(name, value)
			} else {
				env.Define(name, value)
			}
			return runtime.Undefined, nil
		}
	case *ast.IfStatement:
		test := i.compileExpression(s.Test)
		consequent := i.compileBlock(s.Consequent)
		var alternate thunk
		if s.Alternate != nil {
			alternate = i.compileBlock(s.Alternate)
		}
		return func(env *runtime.Environment) (runtime.Value, error) {
			t, err := test(env)
			if err != nil {
				return nil, err
			}
			if runtime.Truthy(t) {
				return consequent(env)
			}
			if alternate != nil {
				return alternate(env)
			}
			return runtime.Undefined, nil
		}
	case ast.Expression:
		return i.compileExpression(s)
	default:
		// Control shapes without a dedicated lowering reuse the walker.
		return func(env *runtime.Environment) (runtime.Value, error) {
			return i.evalStatement(stmt, env)
		}
	}
}

func (i *Interpreter) compileBlock(block *ast.StatementList) thunk {
	steps := make([]thunk, 0, bodyLen(block))
	if block != nil {
		for _, stmt := range block.Statements {
			steps = append(steps, i.compileStatement(stmt))
		}
	}
	return func(env *runtime.Environment) (runtime.Value, error) {
		child := env.Extend()
		var last runtime.Value = runtime.Undefined
		for _, step := range steps {
			v, err := step(child)
			if err != nil {
				return nil, err
			}
			last = v
		}
		return last, nil
	}
}

func (i *Interpreter) compileExpression(expr ast.Expression) thunk {
	switch e := expr.(type) {
	case *ast.NumberLiteral:
		v := runtime.NumberValue{Val: e.Value}
		return func(*runtime.Environment) (runtime.Value, error) { return v, nil }
	case *ast.StringLiteral:
		v := runtime.StringValue{Val: e.Value}
		return func(*runtime.Environment) (runtime.Value, error) { return v, nil }
	case *ast.BooleanLiteral:
		v := runtime.BoolValue{Val: e.Value}
		return func(*runtime.Environment) (runtime.Value, error) { return v, nil }
	case *ast.Identifier:
		name := e.Name
		return func(env *runtime.Environment) (runtime.Value, error) {
			v, err := env.Get(name)
			if err != nil {
				return nil, referenceError("%s", err.Error())
			}
			return v, nil
		}
	case *ast.BinaryExpression:
		// Lowered operands feed the shared operator logic.
		left := i.compileExpression(e.Left)
		right := i.compileExpression(e.Right)
		op := e.Operator
		if op == "&&" || op == "||" {
			break
		}
		return func(env *runtime.Environment) (runtime.Value, error) {
			lv, err := left(env)
			if err != nil {
				return nil, err
			}
			rv, err := right(env)
			if err != nil {
				return nil, err
			}
			return i.applyBinary(op, lv, rv)
		}
	}
	return func(env *runtime.Environment) (runtime.Value, error) {
		return i.evalExpression(expr, env)
	}
}

func bodyLen(block *ast.StatementList) int {
	if block == nil {
		return 0
	}
	return len(block.Statements)
}
