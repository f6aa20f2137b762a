package interpreter

import (
	"strings"

	"ecmascript/engine-go/pkg/ast"
	"ecmascript/engine-go/pkg/parser"
	"ecmascript/engine-go/pkg/runtime"
)

// fnFunctionConstructor implements the Function constructor: the leading
// arguments are parameter lists, the final argument is the body, and the
// composed source is parsed as a fresh global-scoped function.
func (i *Interpreter) fnFunctionConstructor(_ runtime.Value, args []runtime.Value, _ *runtime.CallContext) (runtime.Value, error) {
	body := ""
	params := []string{}
	if len(args) > 0 {
		body = runtime.ToStringValue(args[len(args)-1])
		for _, arg := range args[:len(args)-1] {
			params = append(params, runtime.ToStringValue(arg))
		}
	}

	source := "function anonymous(" + strings.Join(params, ", ") + "\n) {\n" + body + "\n}"
	program, err := parser.ParseProgram(source)
	if err != nil {
		return nil, throwSignal{value: &runtime.ErrorValue{Name: "SyntaxError", Message: err.Error()}}
	}
	if len(program.Body) != 1 {
		return nil, throwSignal{value: &runtime.ErrorValue{Name: "SyntaxError", Message: "invalid function body"}}
	}
	decl, ok := program.Body[0].(*ast.FunctionDeclaration)
	if !ok {
		return nil, throwSignal{value: &runtime.ErrorValue{Name: "SyntaxError", Message: "invalid function body"}}
	}

	fn := &runtime.OrdinaryFunction{
		Ctor:     true,
		ThisMode: runtime.ThisGlobal,
		Body:     decl.Body,
		Params:   decl.Params,
		Env:      i.global,
	}
	return i.MakeOrdinary("anonymous", fn), nil
}
