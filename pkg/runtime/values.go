package runtime

import (
	"fmt"
	"math"
	"strconv"
)

// Kind identifies the runtime value category.
type Kind int

const (
	KindUndefined Kind = iota
	KindNull
	KindBool
	KindNumber
	KindString
	KindSymbol
	KindObject
	KindArray
	KindFunction
	KindBoundFunction
	KindError
)

func (k Kind) String() string {
	switch k {
	case KindUndefined:
		return "undefined"
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindSymbol:
		return "symbol"
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	case KindFunction:
		return "function"
	case KindBoundFunction:
		return "bound_function"
	case KindError:
		return "error"
	default:
		return fmt.Sprintf("unknown_kind_%d", int(k))
	}
}

// Value is the shared behaviour for all runtime values.
type Value interface {
	Kind() Kind
}

//-----------------------------------------------------------------------------
// Primitives
//-----------------------------------------------------------------------------

type UndefinedValue struct{}

func (UndefinedValue) Kind() Kind { return KindUndefined }

type NullValue struct{}

func (NullValue) Kind() Kind { return KindNull }

type BoolValue struct {
	Val bool
}

func (v BoolValue) Kind() Kind { return KindBool }

type NumberValue struct {
	Val float64
}

func (v NumberValue) Kind() Kind { return KindNumber }

type StringValue struct {
	Val string
}

func (v StringValue) Kind() Kind { return KindString }

// ErrorValue is a thrown JS error: a name such as TypeError plus a message.
type ErrorValue struct {
	Name    string
	Message string
}

func (v *ErrorValue) Kind() Kind { return KindError }

func (v *ErrorValue) String() string {
	if v == nil {
		return "Error"
	}
	if v.Message == "" {
		return v.Name
	}
	return v.Name + ": " + v.Message
}

//-----------------------------------------------------------------------------
// Helpers
//-----------------------------------------------------------------------------

// Undefined is the shared undefined singleton.
var Undefined = UndefinedValue{}

// Null is the shared null singleton.
var Null = NullValue{}

// IsNullOrUndefined reports whether the value is null, undefined, or absent.
func IsNullOrUndefined(v Value) bool {
	if v == nil {
		return true
	}
	switch v.(type) {
	case UndefinedValue, NullValue:
		return true
	default:
		return false
	}
}

// Truthy applies the ECMAScript ToBoolean conversion.
func Truthy(v Value) bool {
	switch val := v.(type) {
	case nil, UndefinedValue, NullValue:
		return false
	case BoolValue:
		return val.Val
	case NumberValue:
		return val.Val != 0 && !math.IsNaN(val.Val)
	case StringValue:
		return val.Val != ""
	default:
		return true
	}
}

// Display renders a value for diagnostics and REPL output.
func Display(v Value) string {
	switch val := v.(type) {
	case nil:
		return "undefined"
	case UndefinedValue:
		return "undefined"
	case NullValue:
		return "null"
	case BoolValue:
		return strconv.FormatBool(val.Val)
	case NumberValue:
		return FormatNumber(val.Val)
	case StringValue:
		return val.Val
	case *SymbolValue:
		return val.String()
	case *ErrorValue:
		return val.String()
	case *ArrayValue:
		out := "["
		for idx, el := range val.Elements {
			if idx > 0 {
				out += ", "
			}
			out += Display(el)
		}
		return out + "]"
	case *FunctionValue:
		return "function " + val.DisplayName() + "() { ... }"
	case *BoundFunctionValue:
		return "function " + val.DisplayName() + "() { ... }"
	case *Object:
		return "[object Object]"
	default:
		return val.Kind().String()
	}
}

// FormatNumber renders a float the way JS number-to-string does for the
// common cases (integers without a trailing .0, Infinity spelled out).
func FormatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == math.Trunc(f) && math.Abs(f) < 1e21:
		return strconv.FormatFloat(f, 'f', -1, 64)
	default:
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
}

// ToNumber applies the ECMAScript ToNumber conversion for primitives;
// objects convert to NaN (no valueOf chain in this subset).
func ToNumber(v Value) float64 {
	switch val := v.(type) {
	case nil, UndefinedValue:
		return math.NaN()
	case NullValue:
		return 0
	case BoolValue:
		if val.Val {
			return 1
		}
		return 0
	case NumberValue:
		return val.Val
	case StringValue:
		if val.Val == "" {
			return 0
		}
		f, err := strconv.ParseFloat(val.Val, 64)
		if err != nil {
			return math.NaN()
		}
		return f
	default:
		return math.NaN()
	}
}

// ToStringValue applies the ECMAScript ToString conversion for the supported
// value set.
func ToStringValue(v Value) string {
	return Display(v)
}

// StrictEquals implements the === comparison for the supported value set.
// Heap values compare by identity.
func StrictEquals(a, b Value) bool {
	switch av := a.(type) {
	case nil, UndefinedValue:
		_, ok := b.(UndefinedValue)
		return ok || b == nil
	case NullValue:
		_, ok := b.(NullValue)
		return ok
	case BoolValue:
		bv, ok := b.(BoolValue)
		return ok && av.Val == bv.Val
	case NumberValue:
		bv, ok := b.(NumberValue)
		return ok && av.Val == bv.Val
	case StringValue:
		bv, ok := b.(StringValue)
		return ok && av.Val == bv.Val
	default:
		return a == b
	}
}
