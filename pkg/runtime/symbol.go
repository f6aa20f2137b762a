package runtime

// SymbolValue is a unique property key. Description is nil for a symbol
// created without one; that distinction matters to SetFunctionName.
type SymbolValue struct {
	Description *string
}

func (v *SymbolValue) Kind() Kind { return KindSymbol }

// NewSymbol creates a fresh symbol with the given description.
func NewSymbol(description string) *SymbolValue {
	return &SymbolValue{Description: &description}
}

// NewSymbolNoDescription creates a fresh symbol without a description.
func NewSymbolNoDescription() *SymbolValue {
	return &SymbolValue{}
}

func (v *SymbolValue) String() string {
	if v == nil || v.Description == nil {
		return "Symbol()"
	}
	return "Symbol(" + *v.Description + ")"
}

// Well-known symbols shared by the whole runtime.
var SymbolHasInstance = NewSymbol("Symbol.hasInstance")
