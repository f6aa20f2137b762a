package ast

// Binding targets for formal parameters: a plain identifier or an object
// destructuring pattern. Array patterns and nested patterns are not part of
// the supported subset.

type BindingTarget interface {
	Node
	bindingTargetNode()
}

type bindingTargetMarker struct{}

func (bindingTargetMarker) bindingTargetNode() {}

type IdentifierPattern struct {
	nodeImpl
	bindingTargetMarker

	ID *Identifier `json:"id"`
}

func NewIdentifierPattern(id *Identifier) *IdentifierPattern {
	return &IdentifierPattern{nodeImpl: newNodeImpl(NodeIdentifierPattern), ID: id}
}

type ObjectPatternProperty struct {
	nodeImpl

	Key     *Identifier `json:"key"`
	Binding *Identifier `json:"binding,omitempty"` // nil for shorthand `{a}`
}

func NewObjectPatternProperty(key, binding *Identifier) *ObjectPatternProperty {
	return &ObjectPatternProperty{nodeImpl: newNodeImpl(NodeObjectPatternProperty), Key: key, Binding: binding}
}

// BoundName is the identifier the property binds in the function scope.
func (p *ObjectPatternProperty) BoundName() *Identifier {
	if p.Binding != nil {
		return p.Binding
	}
	return p.Key
}

type ObjectPattern struct {
	nodeImpl
	bindingTargetMarker

	Properties []*ObjectPatternProperty `json:"properties"`
}

func NewObjectPattern(properties []*ObjectPatternProperty) *ObjectPattern {
	return &ObjectPattern{nodeImpl: newNodeImpl(NodeObjectPattern), Properties: properties}
}

// Idents lists the bound identifier names in declaration order.
func (p *ObjectPattern) Idents() []string {
	names := make([]string, 0, len(p.Properties))
	for _, prop := range p.Properties {
		if prop == nil {
			continue
		}
		names = append(names, prop.BoundName().Name)
	}
	return names
}

// FormalParameter is one declared parameter: a binding target, an optional
// default-value initializer, and a rest flag for the trailing `...xs` form.
type FormalParameter struct {
	nodeImpl

	Target  BindingTarget `json:"target"`
	Default Expression    `json:"default,omitempty"`
	Rest    bool          `json:"rest"`
}

func NewFormalParameter(target BindingTarget, def Expression, rest bool) *FormalParameter {
	return &FormalParameter{nodeImpl: newNodeImpl(NodeFormalParameter), Target: target, Default: def, Rest: rest}
}

// ExpectedArgumentCount is the ECMAScript function `length`: formal
// parameters before the first default or rest parameter.
func ExpectedArgumentCount(params []*FormalParameter) int {
	count := 0
	for _, param := range params {
		if param == nil || param.Rest || param.Default != nil {
			break
		}
		count++
	}
	return count
}
