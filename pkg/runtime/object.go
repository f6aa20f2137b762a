package runtime

import (
	"fmt"
	"strconv"
)

// PropertyKey is a string, array-index, or symbol key. The zero value is the
// empty string key.
type PropertyKey struct {
	kind keyKind
	str  string
	idx  uint32
	sym  *SymbolValue
}

type keyKind int

const (
	keyString keyKind = iota
	keyIndex
	keySymbol
)

func StringKey(s string) PropertyKey {
	return PropertyKey{kind: keyString, str: s}
}

func IndexKey(i uint32) PropertyKey {
	return PropertyKey{kind: keyIndex, idx: i}
}

func SymbolKey(sym *SymbolValue) PropertyKey {
	return PropertyKey{kind: keySymbol, sym: sym}
}

// IsSymbol reports whether the key is symbol-kinded, returning the symbol.
func (k PropertyKey) IsSymbol() (*SymbolValue, bool) {
	return k.sym, k.kind == keySymbol
}

func (k PropertyKey) String() string {
	switch k.kind {
	case keyIndex:
		return strconv.FormatUint(uint64(k.idx), 10)
	case keySymbol:
		return k.sym.String()
	default:
		return k.str
	}
}

// PropertyDescriptor carries a data property's value and attributes.
// Accessor properties are outside the supported subset.
type PropertyDescriptor struct {
	Value        Value
	Writable     bool
	Enumerable   bool
	Configurable bool
}

// DataProperty is the default descriptor for plain assignment:
// writable, enumerable, configurable.
func DataProperty(v Value) PropertyDescriptor {
	return PropertyDescriptor{Value: v, Writable: true, Enumerable: true, Configurable: true}
}

// MethodProperty is the descriptor builtins install with:
// non-writable, non-enumerable, configurable.
func MethodProperty(v Value) PropertyDescriptor {
	return PropertyDescriptor{Value: v, Writable: false, Enumerable: false, Configurable: true}
}

// Object is an ordinary object: an own-property table plus a prototype link.
type Object struct {
	properties map[PropertyKey]PropertyDescriptor
	proto      *Object
}

func (o *Object) Kind() Kind { return KindObject }

// NewObject creates an empty object with the given prototype (nil allowed).
func NewObject(proto *Object) *Object {
	return &Object{
		properties: make(map[PropertyKey]PropertyDescriptor),
		proto:      proto,
	}
}

func (o *Object) Prototype() *Object { return o.proto }

func (o *Object) SetPrototype(proto *Object) { o.proto = proto }

// GetOwn returns the own property descriptor for the key.
func (o *Object) GetOwn(key PropertyKey) (PropertyDescriptor, bool) {
	if o == nil || o.properties == nil {
		return PropertyDescriptor{}, false
	}
	desc, ok := o.properties[key]
	return desc, ok
}

// HasOwnProperty reports whether the key names an own property.
func (o *Object) HasOwnProperty(key PropertyKey) bool {
	_, ok := o.GetOwn(key)
	return ok
}

// Get resolves the key through the prototype chain; absent properties yield
// undefined per JS semantics.
func (o *Object) Get(key PropertyKey) Value {
	for obj := o; obj != nil; obj = obj.proto {
		if desc, ok := obj.GetOwn(key); ok {
			if desc.Value == nil {
				return Undefined
			}
			return desc.Value
		}
	}
	return Undefined
}

// Set performs ordinary assignment: updates a writable own property or
// creates a new own data property. Non-writable properties reject.
func (o *Object) Set(key PropertyKey, v Value) error {
	if o == nil {
		return fmt.Errorf("cannot set property %s on nil object", key)
	}
	if desc, ok := o.properties[key]; ok {
		if !desc.Writable {
			return fmt.Errorf("cannot assign to read-only property '%s'", key)
		}
		desc.Value = v
		o.properties[key] = desc
		return nil
	}
	if o.properties == nil {
		o.properties = make(map[PropertyKey]PropertyDescriptor)
	}
	o.properties[key] = DataProperty(v)
	return nil
}

// DefineOwnProperty installs or replaces an own property. Replacing a
// non-configurable property rejects.
func (o *Object) DefineOwnProperty(key PropertyKey, desc PropertyDescriptor) error {
	if o == nil {
		return fmt.Errorf("cannot define property %s on nil object", key)
	}
	if existing, ok := o.properties[key]; ok && !existing.Configurable {
		return fmt.Errorf("cannot redefine non-configurable property '%s'", key)
	}
	if o.properties == nil {
		o.properties = make(map[PropertyKey]PropertyDescriptor)
	}
	o.properties[key] = desc
	return nil
}

// Delete removes a configurable own property; reports whether the key is
// absent afterwards.
func (o *Object) Delete(key PropertyKey) bool {
	desc, ok := o.GetOwn(key)
	if !ok {
		return true
	}
	if !desc.Configurable {
		return false
	}
	delete(o.properties, key)
	return true
}

// AsObject exposes a value's object facet: plain objects directly, function
// and bound-function values through their embedded property tables.
func AsObject(v Value) (*Object, bool) {
	switch val := v.(type) {
	case *Object:
		return val, val != nil
	case *FunctionValue:
		if val == nil {
			return nil, false
		}
		return &val.Object, true
	case *BoundFunctionValue:
		if val == nil {
			return nil, false
		}
		return &val.Object, true
	default:
		return nil, false
	}
}

// OrdinaryHasInstance implements the default instanceof semantics: bound
// functions defer to their target; otherwise the value's prototype chain is
// walked looking for the callable's `prototype` object.
func OrdinaryHasInstance(callable Value, v Value) (bool, error) {
	c, ok := AsCallable(callable)
	if !ok {
		return false, fmt.Errorf("%s is not callable", Display(callable))
	}
	if bound, ok := c.(*BoundFunctionValue); ok {
		return OrdinaryHasInstance(bound.Target, v)
	}
	obj, ok := AsObject(v)
	if !ok {
		return false, nil
	}
	fnObj, _ := AsObject(callable)
	protoVal := fnObj.Get(StringKey("prototype"))
	proto, ok := protoVal.(*Object)
	if !ok {
		return false, fmt.Errorf("function prototype is not an object")
	}
	for p := obj.Prototype(); p != nil; p = p.Prototype() {
		if p == proto {
			return true, nil
		}
	}
	return false, nil
}
