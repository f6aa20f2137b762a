package interpreter

import (
	"strings"

	"ecmascript/engine-go/pkg/ast"
	"ecmascript/engine-go/pkg/runtime"
)

// renderFunctionSource produces the Function.prototype.toString text.
// Variants without retrievable source render the native-code placeholder.
func renderFunctionSource(callable runtime.Callable) string {
	switch fn := callable.(type) {
	case *runtime.BoundFunctionValue:
		return nativeSource(fn.DisplayName())
	case *runtime.FunctionValue:
		if ord, ok := fn.Function.(*runtime.OrdinaryFunction); ok {
			return ordinarySource(fn.DisplayName(), ord)
		}
		return nativeSource(fn.DisplayName())
	default:
		return nativeSource("")
	}
}

func nativeSource(name string) string {
	var b strings.Builder
	b.WriteString("function ")
	b.WriteString(name)
	b.WriteString("() {\n  [native code]\n}")
	return b.String()
}

func ordinarySource(name string, fn *runtime.OrdinaryFunction) string {
	var b strings.Builder
	b.WriteString("function ")
	b.WriteString(name)
	b.WriteString("(")
	for idx, param := range fn.Params {
		if idx > 0 {
			b.WriteString(", ")
		}
		b.WriteString(ast.ParamText(param))
	}
	b.WriteString(") ")

	body := ""
	if fn.Body != nil {
		body = fn.Body.Text()
	}
	if body == "" {
		b.WriteString("{}")
		return b.String()
	}
	if strings.Count(body, "\n") > 0 {
		b.WriteString("{\n")
		b.WriteString(body)
		if !strings.HasSuffix(body, "\n") {
			b.WriteString("\n")
		}
		b.WriteString("}")
	} else {
		b.WriteString("{ ")
		b.WriteString(body)
		b.WriteString(" }")
	}
	return b.String()
}
