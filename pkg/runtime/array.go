package runtime

import "fmt"

// ArrayValue is a dense JS array.
type ArrayValue struct {
	Elements []Value
}

func (v *ArrayValue) Kind() Kind { return KindArray }

func NewArray(elements []Value) *ArrayValue {
	if elements == nil {
		elements = []Value{}
	}
	return &ArrayValue{Elements: elements}
}

// Length returns the element count as a JS number.
func (v *ArrayValue) Length() NumberValue {
	return NumberValue{Val: float64(len(v.Elements))}
}

// CreateListFromArrayLike flattens an array-like value into an argument
// slice. Null and undefined yield the empty list; anything else without a
// usable length is a type error surfaced through the returned error.
func CreateListFromArrayLike(v Value) ([]Value, error) {
	if IsNullOrUndefined(v) {
		return []Value{}, nil
	}
	if arr, ok := v.(*ArrayValue); ok {
		out := make([]Value, len(arr.Elements))
		copy(out, arr.Elements)
		return out, nil
	}
	obj, ok := AsObject(v)
	if !ok {
		return nil, fmt.Errorf("CreateListFromArrayLike called on non-object %s", Display(v))
	}
	length := ToLength(obj.Get(StringKey("length")))
	out := make([]Value, 0, length)
	for i := int64(0); i < length; i++ {
		out = append(out, obj.Get(IndexKey(uint32(i))))
	}
	return out, nil
}

// ToLength clamps a value to a usable array length.
func ToLength(v Value) int64 {
	n := ToNumber(v)
	if n != n || n <= 0 {
		return 0
	}
	const maxLength = 1<<32 - 1
	if n > maxLength {
		return maxLength
	}
	return int64(n)
}
