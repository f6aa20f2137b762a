package runtime

import (
	"ecmascript/engine-go/pkg/ast"
)

// ThisMode controls how an interpreted function binds its receiver.
type ThisMode int

const (
	// ThisLexical functions (arrows) ignore the supplied receiver entirely.
	ThisLexical ThisMode = iota
	// ThisStrict functions take the receiver exactly as supplied.
	ThisStrict
	// ThisGlobal functions substitute the global object for a null or
	// undefined receiver.
	ThisGlobal
)

func (m ThisMode) String() string {
	switch m {
	case ThisLexical:
		return "lexical"
	case ThisStrict:
		return "strict"
	default:
		return "global"
	}
}

// Caller is the slice of the execution engine native code may re-enter.
type Caller interface {
	Call(callee Value, this Value, args []Value) (Value, error)
	Construct(target Value, args []Value) (Value, error)
	TypeError(format string, a ...any) error
}

// CallContext is handed to every native entry point.
type CallContext struct {
	Env    *Environment
	Caller Caller
	Global *Object
}

// NativeFunc is the entry-point signature for built-in routines.
type NativeFunc func(this Value, args []Value, ctx *CallContext) (Value, error)

// ClosureFunc is the entry-point signature for native closures. The func
// itself stays a plain, copyable value; private state travels in the cell.
type ClosureFunc func(this Value, args []Value, captures Captures, ctx *CallContext) (Value, error)

// Function is the closed sum of callable shapes. Exactly one variant is
// active per function object; the constructor flag is variant-local.
type Function interface {
	Constructor() bool
	functionVariant()
}

type NativeFunction struct {
	Fn   NativeFunc
	Ctor bool
}

func (f NativeFunction) Constructor() bool { return f.Ctor }
func (NativeFunction) functionVariant()    {}

type NativeClosure struct {
	Fn       ClosureFunc
	Ctor     bool
	Captures Captures
}

func (f NativeClosure) Constructor() bool { return f.Ctor }
func (NativeClosure) functionVariant()    {}

// OrdinaryFunction is an interpreted function: a shared body, formal
// parameters, and the defining environment it closes over. Body and Env are
// shared with every other closure created from the same definition site.
type OrdinaryFunction struct {
	Ctor     bool
	ThisMode ThisMode
	Body     *ast.StatementList
	Params   []*ast.FormalParameter
	Env      *Environment
}

func (f *OrdinaryFunction) Constructor() bool { return f != nil && f.Ctor }
func (*OrdinaryFunction) functionVariant()    {}

// CodeBlock is a pre-lowered function body with its own executor.
type CodeBlock struct {
	Name   string
	Ctor   bool
	Params []*ast.FormalParameter
	Exec   func(this Value, args []Value, env *Environment, ctx *CallContext) (Value, error)
}

// CompiledFunction pairs a shared code block with a captured environment;
// constructor capability is delegated to the block.
type CompiledFunction struct {
	Code *CodeBlock
	Env  *Environment
}

func (f *CompiledFunction) Constructor() bool { return f != nil && f.Code != nil && f.Code.Ctor }
func (*CompiledFunction) functionVariant()    {}

// FunctionValue is the heap function object: a property table (name, length,
// prototype, the builtin methods) plus exactly one callable variant.
type FunctionValue struct {
	Object
	Function Function
}

func (f *FunctionValue) Kind() Kind { return KindFunction }

// NewFunctionValue wraps a variant in a fresh function object.
func NewFunctionValue(fn Function, proto *Object) *FunctionValue {
	fv := &FunctionValue{Function: fn}
	fv.Object = *NewObject(proto)
	return fv
}

// IsConstructor reports whether `new` may target this function.
func (f *FunctionValue) IsConstructor() bool {
	return f != nil && f.Function != nil && f.Function.Constructor()
}

func (*FunctionValue) callable() {}

// DisplayName resolves the installed `name` property for diagnostics.
func (f *FunctionValue) DisplayName() string {
	if f == nil {
		return ""
	}
	if s, ok := f.Get(StringKey("name")).(StringValue); ok {
		return s.Val
	}
	return ""
}

// BoundFunctionValue forwards invocation to a target callable with a fixed
// receiver and prefix arguments. It shares the target, never copies it.
type BoundFunctionValue struct {
	Object
	Target Callable
	This   Value
	Args   []Value
}

func (b *BoundFunctionValue) Kind() Kind { return KindBoundFunction }

// NewBoundFunction implements BoundFunctionCreate: the wrapper inherits the
// target's prototype link and construct capability.
func NewBoundFunction(target Callable, this Value, args []Value) *BoundFunctionValue {
	bound := &BoundFunctionValue{Target: target, This: this, Args: args}
	var proto *Object
	if obj, ok := AsObject(target); ok {
		proto = obj.Prototype()
	}
	bound.Object = *NewObject(proto)
	return bound
}

func (b *BoundFunctionValue) IsConstructor() bool {
	return b != nil && b.Target != nil && b.Target.IsConstructor()
}

func (*BoundFunctionValue) callable() {}

func (b *BoundFunctionValue) DisplayName() string {
	if b == nil {
		return ""
	}
	if s, ok := b.Get(StringKey("name")).(StringValue); ok {
		return s.Val
	}
	return ""
}

// Callable is the callable capability: function objects and bound wrappers.
type Callable interface {
	Value
	IsConstructor() bool
	callable()
}

// AsCallable resolves a value's callable capability. Operations that need it
// check here before dispatch; failure is the TypeError path.
func AsCallable(v Value) (Callable, bool) {
	switch val := v.(type) {
	case *FunctionValue:
		return val, val != nil && val.Function != nil
	case *BoundFunctionValue:
		return val, val != nil && val.Target != nil
	default:
		return nil, false
	}
}
