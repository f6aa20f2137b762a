package interpreter

import (
	"fmt"
	"math"

	"ecmascript/engine-go/pkg/runtime"
)

// setupGlobals builds the intrinsic objects and the global scope: object and
// function prototypes, the Function constructor, globalThis, console.
func (i *Interpreter) setupGlobals() {
	i.objectProto = runtime.NewObject(nil)
	i.funcProto = runtime.NewObject(i.objectProto)
	i.globalObject = runtime.NewObject(i.objectProto)

	i.RegisterBuiltin(i.funcProto, "call", 1, fnCall)
	i.RegisterBuiltin(i.funcProto, "apply", 2, fnApply)
	i.RegisterBuiltin(i.funcProto, "bind", 1, fnBind)
	i.RegisterBuiltin(i.funcProto, "toString", 0, fnToString)

	hasInstance := i.MakeNative("[Symbol.hasInstance]", 1, false, fnHasInstance)
	_ = i.funcProto.DefineOwnProperty(runtime.SymbolKey(runtime.SymbolHasInstance), runtime.PropertyDescriptor{
		Value: hasInstance, Writable: false, Enumerable: false, Configurable: false,
	})

	functionCtor := i.MakeNative("Function", 1, true, i.fnFunctionConstructor)
	_ = functionCtor.DefineOwnProperty(runtime.StringKey("prototype"), runtime.PropertyDescriptor{
		Value: i.funcProto, Writable: false, Enumerable: false, Configurable: false,
	})
	_ = i.funcProto.DefineOwnProperty(runtime.StringKey("constructor"), runtime.PropertyDescriptor{
		Value: functionCtor, Writable: true, Enumerable: false, Configurable: true,
	})

	symbolNS := runtime.NewObject(i.objectProto)
	_ = symbolNS.DefineOwnProperty(runtime.StringKey("hasInstance"), runtime.PropertyDescriptor{
		Value: runtime.SymbolHasInstance, Writable: false, Enumerable: false, Configurable: false,
	})

	console := runtime.NewObject(i.objectProto)
	i.RegisterBuiltin(console, "log", 0, consoleLog)

	i.defineGlobal("Function", functionCtor)
	i.defineGlobal("Symbol", symbolNS)
	i.defineGlobal("console", console)
	i.defineGlobal("globalThis", i.globalObject)
	i.defineGlobal("undefined", runtime.Undefined)
	i.defineGlobal("NaN", runtime.NumberValue{Val: math.NaN()})
	i.defineGlobal("Infinity", runtime.NumberValue{Val: math.Inf(1)})
}

func (i *Interpreter) defineGlobal(name string, v runtime.Value) {
	i.global.Define(name, v)
	_ = i.globalObject.Set(runtime.StringKey(name), v)
}

func consoleLog(_ runtime.Value, args []runtime.Value, _ *runtime.CallContext) (runtime.Value, error) {
	parts := make([]any, 0, len(args))
	for _, arg := range args {
		parts = append(parts, runtime.Display(arg))
	}
	fmt.Println(parts...)
	return runtime.Undefined, nil
}
