package interpreter

import (
	"math"

	"ecmascript/engine-go/pkg/ast"
	"ecmascript/engine-go/pkg/runtime"
)

func (i *Interpreter) evalExpression(expr ast.Expression, env *runtime.Environment) (runtime.Value, error) {
	switch e := expr.(type) {
	case *ast.NumberLiteral:
		return runtime.NumberValue{Val: e.Value}, nil
	case *ast.StringLiteral:
		return runtime.StringValue{Val: e.Value}, nil
	case *ast.BooleanLiteral:
		return runtime.BoolValue{Val: e.Value}, nil
	case *ast.NullLiteral:
		return runtime.Null, nil
	case *ast.UndefinedLiteral:
		return runtime.Undefined, nil
	case *ast.Identifier:
		v, err := env.Get(e.Name)
		if err != nil {
			return nil, referenceError("%s", err.Error())
		}
		return v, nil
	case *ast.ArrayLiteral:
		elements := make([]runtime.Value, 0, len(e.Elements))
		for _, el := range e.Elements {
			v, err := i.evalExpression(el, env)
			if err != nil {
				return nil, err
			}
			elements = append(elements, v)
		}
		return runtime.NewArray(elements), nil
	case *ast.ObjectLiteral:
		obj := runtime.NewObject(i.objectProto)
		for _, prop := range e.Properties {
			value := runtime.Value(runtime.Undefined)
			if prop.Value != nil {
				v, err := i.evalExpression(prop.Value, env)
				if err != nil {
					return nil, err
				}
				value = v
			} else {
				v, err := env.Get(prop.Key.Name)
				if err != nil {
					return nil, referenceError("%s", err.Error())
				}
				value = v
			}
			if err := obj.Set(runtime.StringKey(prop.Key.Name), value); err != nil {
				return nil, typeError("%s", err.Error())
			}
		}
		return obj, nil
	case *ast.UnaryExpression:
		return i.evalUnary(e, env)
	case *ast.BinaryExpression:
		return i.evalBinary(e, env)
	case *ast.AssignmentExpression:
		return i.evalAssignment(e, env)
	case *ast.MemberAccessExpression:
		object, err := i.evalExpression(e.Object, env)
		if err != nil {
			return nil, err
		}
		return i.getMember(object, e.Member.Name)
	case *ast.CallExpression:
		return i.evalCall(e, env)
	case *ast.NewExpression:
		return i.evalNew(e, env)
	case *ast.FunctionExpression:
		return i.evalFunctionExpression(e, env), nil
	default:
		return nil, typeError("unsupported expression %s", expr.NodeType())
	}
}

func (i *Interpreter) evalFunctionExpression(expr *ast.FunctionExpression, env *runtime.Environment) *runtime.FunctionValue {
	mode := runtime.ThisGlobal
	ctor := true
	if expr.Arrow {
		mode = runtime.ThisLexical
		ctor = false
	}
	fn := &runtime.OrdinaryFunction{
		Ctor:     ctor,
		ThisMode: mode,
		Body:     expr.Body,
		Params:   expr.Params,
		Env:      env,
	}
	name := ""
	if expr.ID != nil {
		name = expr.ID.Name
	}
	return i.MakeOrdinary(name, fn)
}

func (i *Interpreter) evalCall(expr *ast.CallExpression, env *runtime.Environment) (runtime.Value, error) {
	var callee runtime.Value
	var receiver runtime.Value = runtime.Undefined

	if member, ok := expr.Callee.(*ast.MemberAccessExpression); ok {
		object, err := i.evalExpression(member.Object, env)
		if err != nil {
			return nil, err
		}
		method, err := i.getMember(object, member.Member.Name)
		if err != nil {
			return nil, err
		}
		callee = method
		receiver = object
	} else {
		v, err := i.evalExpression(expr.Callee, env)
		if err != nil {
			return nil, err
		}
		callee = v
	}

	args, err := i.evalArguments(expr.Arguments, env)
	if err != nil {
		return nil, err
	}
	return i.Call(callee, receiver, args)
}

func (i *Interpreter) evalNew(expr *ast.NewExpression, env *runtime.Environment) (runtime.Value, error) {
	callee, err := i.evalExpression(expr.Callee, env)
	if err != nil {
		return nil, err
	}
	args, err := i.evalArguments(expr.Arguments, env)
	if err != nil {
		return nil, err
	}
	return i.Construct(callee, args)
}

func (i *Interpreter) evalArguments(exprs []ast.Expression, env *runtime.Environment) ([]runtime.Value, error) {
	args := make([]runtime.Value, 0, len(exprs))
	for _, expr := range exprs {
		v, err := i.evalExpression(expr, env)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
	}
	return args, nil
}

func (i *Interpreter) evalAssignment(expr *ast.AssignmentExpression, env *runtime.Environment) (runtime.Value, error) {
	value, err := i.evalExpression(expr.Value, env)
	if err != nil {
		return nil, err
	}
	switch target := expr.Target.(type) {
	case *ast.Identifier:
		if err := env.Assign(target.Name, value); err != nil {
			return nil, referenceError("%s", err.Error())
		}
		return value, nil
	case *ast.MemberAccessExpression:
		object, err := i.evalExpression(target.Object, env)
		if err != nil {
			return nil, err
		}
		obj, ok := runtime.AsObject(object)
		if !ok {
			return nil, typeError("cannot set property '%s' of %s", target.Member.Name, runtime.Display(object))
		}
		if err := obj.Set(runtime.StringKey(target.Member.Name), value); err != nil {
			return nil, typeError("%s", err.Error())
		}
		return value, nil
	default:
		return nil, typeError("invalid assignment target")
	}
}

func (i *Interpreter) getMember(object runtime.Value, name string) (runtime.Value, error) {
	if runtime.IsNullOrUndefined(object) {
		return nil, typeError("cannot read property '%s' of %s", name, runtime.Display(object))
	}
	switch val := object.(type) {
	case *runtime.ArrayValue:
		if name == "length" {
			return val.Length(), nil
		}
		return runtime.Undefined, nil
	case runtime.StringValue:
		if name == "length" {
			return runtime.NumberValue{Val: float64(len(val.Val))}, nil
		}
		return runtime.Undefined, nil
	case *runtime.ErrorValue:
		switch name {
		case "name":
			return runtime.StringValue{Val: val.Name}, nil
		case "message":
			return runtime.StringValue{Val: val.Message}, nil
		}
		return runtime.Undefined, nil
	default:
		if obj, ok := runtime.AsObject(object); ok {
			return obj.Get(runtime.StringKey(name)), nil
		}
		return runtime.Undefined, nil
	}
}

func (i *Interpreter) evalUnary(expr *ast.UnaryExpression, env *runtime.Environment) (runtime.Value, error) {
	if expr.Operator == "typeof" {
		// typeof tolerates unresolvable names.
		if id, ok := expr.Operand.(*ast.Identifier); ok && !env.Has(id.Name) {
			return runtime.StringValue{Val: "undefined"}, nil
		}
	}
	operand, err := i.evalExpression(expr.Operand, env)
	if err != nil {
		return nil, err
	}
	switch expr.Operator {
	case "-":
		return runtime.NumberValue{Val: -runtime.ToNumber(operand)}, nil
	case "+":
		return runtime.NumberValue{Val: runtime.ToNumber(operand)}, nil
	case "!":
		return runtime.BoolValue{Val: !runtime.Truthy(operand)}, nil
	case "typeof":
		return runtime.StringValue{Val: typeofString(operand)}, nil
	default:
		return nil, typeError("unsupported unary operator '%s'", expr.Operator)
	}
}

func typeofString(v runtime.Value) string {
	switch v.(type) {
	case nil, runtime.UndefinedValue:
		return "undefined"
	case runtime.NullValue:
		return "object"
	case runtime.BoolValue:
		return "boolean"
	case runtime.NumberValue:
		return "number"
	case runtime.StringValue:
		return "string"
	case *runtime.SymbolValue:
		return "symbol"
	case *runtime.FunctionValue, *runtime.BoundFunctionValue:
		return "function"
	default:
		return "object"
	}
}

func (i *Interpreter) evalBinary(expr *ast.BinaryExpression, env *runtime.Environment) (runtime.Value, error) {
	if expr.Operator == "&&" || expr.Operator == "||" {
		left, err := i.evalExpression(expr.Left, env)
		if err != nil {
			return nil, err
		}
		if expr.Operator == "&&" {
			if !runtime.Truthy(left) {
				return left, nil
			}
		} else if runtime.Truthy(left) {
			return left, nil
		}
		return i.evalExpression(expr.Right, env)
	}

	left, err := i.evalExpression(expr.Left, env)
	if err != nil {
		return nil, err
	}
	right, err := i.evalExpression(expr.Right, env)
	if err != nil {
		return nil, err
	}
	return i.applyBinary(expr.Operator, left, right)
}

func (i *Interpreter) applyBinary(operator string, left, right runtime.Value) (runtime.Value, error) {
	switch operator {
	case "+":
		if ls, ok := left.(runtime.StringValue); ok {
			return runtime.StringValue{Val: ls.Val + runtime.ToStringValue(right)}, nil
		}
		if rs, ok := right.(runtime.StringValue); ok {
			return runtime.StringValue{Val: runtime.ToStringValue(left) + rs.Val}, nil
		}
		return runtime.NumberValue{Val: runtime.ToNumber(left) + runtime.ToNumber(right)}, nil
	case "-":
		return runtime.NumberValue{Val: runtime.ToNumber(left) - runtime.ToNumber(right)}, nil
	case "*":
		return runtime.NumberValue{Val: runtime.ToNumber(left) * runtime.ToNumber(right)}, nil
	case "/":
		return runtime.NumberValue{Val: runtime.ToNumber(left) / runtime.ToNumber(right)}, nil
	case "%":
		return runtime.NumberValue{Val: math.Mod(runtime.ToNumber(left), runtime.ToNumber(right))}, nil
	case "===":
		return runtime.BoolValue{Val: runtime.StrictEquals(left, right)}, nil
	case "!==":
		return runtime.BoolValue{Val: !runtime.StrictEquals(left, right)}, nil
	case "==":
		return runtime.BoolValue{Val: looseEquals(left, right)}, nil
	case "!=":
		return runtime.BoolValue{Val: !looseEquals(left, right)}, nil
	case "<":
		return runtime.BoolValue{Val: runtime.ToNumber(left) < runtime.ToNumber(right)}, nil
	case "<=":
		return runtime.BoolValue{Val: runtime.ToNumber(left) <= runtime.ToNumber(right)}, nil
	case ">":
		return runtime.BoolValue{Val: runtime.ToNumber(left) > runtime.ToNumber(right)}, nil
	case ">=":
		return runtime.BoolValue{Val: runtime.ToNumber(left) >= runtime.ToNumber(right)}, nil
	case "instanceof":
		return i.evalInstanceof(left, right)
	default:
		return nil, typeError("unsupported binary operator '%s'", operator)
	}
}

// evalInstanceof prefers a Symbol.hasInstance method on the constructor,
// falling back to the ordinary prototype-chain walk.
func (i *Interpreter) evalInstanceof(left, right runtime.Value) (runtime.Value, error) {
	obj, ok := runtime.AsObject(right)
	if !ok {
		return nil, typeError("right-hand side of 'instanceof' is not an object")
	}
	method := obj.Get(runtime.SymbolKey(runtime.SymbolHasInstance))
	if _, ok := runtime.AsCallable(method); ok {
		result, err := i.Call(method, right, []runtime.Value{left})
		if err != nil {
			return nil, err
		}
		return runtime.BoolValue{Val: runtime.Truthy(result)}, nil
	}
	if _, ok := runtime.AsCallable(right); !ok {
		return nil, typeError("right-hand side of 'instanceof' is not callable")
	}
	result, err := runtime.OrdinaryHasInstance(right, left)
	if err != nil {
		return nil, typeError("%s", err.Error())
	}
	return runtime.BoolValue{Val: result}, nil
}

func looseEquals(a, b runtime.Value) bool {
	if runtime.IsNullOrUndefined(a) && runtime.IsNullOrUndefined(b) {
		return true
	}
	if runtime.StrictEquals(a, b) {
		return true
	}
	_, aStr := a.(runtime.StringValue)
	_, bStr := b.(runtime.StringValue)
	_, aNum := a.(runtime.NumberValue)
	_, bNum := b.(runtime.NumberValue)
	_, aBool := a.(runtime.BoolValue)
	_, bBool := b.(runtime.BoolValue)
	if (aStr || aNum || aBool) && (bStr || bNum || bBool) {
		return runtime.ToNumber(a) == runtime.ToNumber(b)
	}
	return false
}
