package interpreter

import (
	"fmt"

	"ecmascript/engine-go/pkg/runtime"
)

// throwSignal carries a thrown JS value up the Go call stack until a catch
// clause or the host boundary absorbs it.
type throwSignal struct {
	value runtime.Value
}

func (s throwSignal) Error() string {
	return fmt.Sprintf("Uncaught %s", runtime.Display(s.value))
}

// returnSignal unwinds a function body when a return statement executes.
type returnSignal struct {
	value runtime.Value
}

func (s returnSignal) Error() string { return "return outside function" }

// Throw wraps a JS value as a propagating error.
func Throw(v runtime.Value) error {
	return throwSignal{value: v}
}

// ThrownValue extracts the JS value from a propagating throw, converting
// plain Go errors into error values so hosts see uniform throwables.
func ThrownValue(err error) runtime.Value {
	if err == nil {
		return runtime.Undefined
	}
	if sig, ok := err.(throwSignal); ok {
		return sig.value
	}
	return &runtime.ErrorValue{Name: "Error", Message: err.Error()}
}

// IsThrow reports whether the error is a propagating JS throw.
func IsThrow(err error) bool {
	_, ok := err.(throwSignal)
	return ok
}

func typeError(format string, a ...any) error {
	return throwSignal{value: &runtime.ErrorValue{
		Name:    "TypeError",
		Message: fmt.Sprintf(format, a...),
	}}
}

func referenceError(format string, a ...any) error {
	return throwSignal{value: &runtime.ErrorValue{
		Name:    "ReferenceError",
		Message: fmt.Sprintf(format, a...),
	}}
}
