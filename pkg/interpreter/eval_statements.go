package interpreter

import (
	"ecmascript/engine-go/pkg/ast"
	"ecmascript/engine-go/pkg/runtime"
)

func (i *Interpreter) evalStatement(stmt ast.Statement, env *runtime.Environment) (runtime.Value, error) {
	switch s := stmt.(type) {
	case *ast.VariableDeclaration:
		return i.evalVariableDeclaration(s, env)
	case *ast.FunctionDeclaration:
		return i.evalFunctionDeclaration(s, env)
	case *ast.ReturnStatement:
		var value runtime.Value = runtime.Undefined
		if s.Argument != nil {
			v, err := i.evalExpression(s.Argument, env)
			if err != nil {
				return nil, err
			}
			value = v
		}
		return nil, returnSignal{value: value}
	case *ast.IfStatement:
		return i.evalIfStatement(s, env)
	case *ast.ThrowStatement:
		v, err := i.evalExpression(s.Argument, env)
		if err != nil {
			return nil, err
		}
		return nil, throwSignal{value: v}
	case *ast.TryStatement:
		return i.evalTryStatement(s, env)
	case ast.Expression:
		return i.evalExpression(s, env)
	default:
		return nil, typeError("unsupported statement %s", stmt.NodeType())
	}
}

func (i *Interpreter) evalVariableDeclaration(decl *ast.VariableDeclaration, env *runtime.Environment) (runtime.Value, error) {
	var value runtime.Value = runtime.Undefined
	if decl.Init != nil {
		v, err := i.evalExpression(decl.Init, env)
		if err != nil {
			return nil, err
		}
		value = v
		i.nameAnonymousFunction(value, decl.Name.Name)
	}
	if decl.DeclKind == "const" {
		env.DefineConst(decl.Name.Name, value)
	} else {
		env.Define(decl.Name.Name, value)
	}
	return runtime.Undefined, nil
}

func (i *Interpreter) evalFunctionDeclaration(decl *ast.FunctionDeclaration, env *runtime.Environment) (runtime.Value, error) {
	fn := &runtime.OrdinaryFunction{
		Ctor:     true,
		ThisMode: runtime.ThisGlobal,
		Body:     decl.Body,
		Params:   decl.Params,
		Env:      env,
	}
	fv := i.MakeOrdinary(decl.ID.Name, fn)
	env.Define(decl.ID.Name, fv)
	return runtime.Undefined, nil
}

func (i *Interpreter) evalIfStatement(stmt *ast.IfStatement, env *runtime.Environment) (runtime.Value, error) {
	test, err := i.evalExpression(stmt.Test, env)
	if err != nil {
		return nil, err
	}
	if runtime.Truthy(test) {
		return i.evalBlock(stmt.Consequent, env)
	}
	if stmt.Alternate != nil {
		return i.evalBlock(stmt.Alternate, env)
	}
	return runtime.Undefined, nil
}

func (i *Interpreter) evalTryStatement(stmt *ast.TryStatement, env *runtime.Environment) (runtime.Value, error) {
	result, err := i.evalBlock(stmt.Block, env)
	if err == nil {
		return result, nil
	}
	sig, ok := err.(throwSignal)
	if !ok {
		return nil, err
	}
	if stmt.Handler == nil {
		return nil, err
	}
	handlerEnv := env.Extend()
	if stmt.Param != nil {
		handlerEnv.Define(stmt.Param.Name, sig.value)
	}
	var last runtime.Value = runtime.Undefined
	for _, s := range stmt.Handler.Statements {
		v, err := i.evalStatement(s, handlerEnv)
		if err != nil {
			return nil, err
		}
		last = v
	}
	return last, nil
}

func (i *Interpreter) evalBlock(block *ast.StatementList, env *runtime.Environment) (runtime.Value, error) {
	if block == nil {
		return runtime.Undefined, nil
	}
	child := env.Extend()
	var last runtime.Value = runtime.Undefined
	for _, stmt := range block.Statements {
		v, err := i.evalStatement(stmt, child)
		if err != nil {
			return nil, err
		}
		last = v
	}
	return last, nil
}

// nameAnonymousFunction gives `let f = function() {}` and arrow bindings
// their variable name, matching NamedEvaluation.
func (i *Interpreter) nameAnonymousFunction(v runtime.Value, name string) {
	fv, ok := v.(*runtime.FunctionValue)
	if !ok {
		return
	}
	current, _ := fv.Get(runtime.StringKey("name")).(runtime.StringValue)
	if current.Val == "" {
		SetFunctionName(&fv.Object, runtime.StringKey(name), "")
	}
}
