package symbols

import (
	"strings"

	"jlower/internal/types"
)

// MethodFlags encode misc attributes for quick checks.
type MethodFlags uint16

const (
	MethodPublic MethodFlags = 1 << iota
	MethodStatic
	MethodConstructor
	// MethodVarargs marks a callable whose last parameter is variable-arity.
	MethodVarargs
	// MethodVarargsTarget marks a varargs method that an earlier pass already
	// mapped onto a fixed-arity runtime target taking the trailing arguments
	// directly.
	MethodVarargsTarget
	// MethodSynthetic marks callables generated by lowering passes.
	MethodSynthetic
)

// Strings returns a slice of textual flag labels.
func (f MethodFlags) Strings() []string {
	if f == 0 {
		return nil
	}
	labels := make([]string, 0, 4)
	if f&MethodPublic != 0 {
		labels = append(labels, "public")
	}
	if f&MethodStatic != 0 {
		labels = append(labels, "static")
	}
	if f&MethodConstructor != 0 {
		labels = append(labels, "constructor")
	}
	if f&MethodVarargs != 0 {
		labels = append(labels, "varargs")
	}
	if f&MethodVarargsTarget != 0 {
		labels = append(labels, "varargs-target")
	}
	if f&MethodSynthetic != 0 {
		labels = append(labels, "synthetic")
	}
	return labels
}

// Param is a single declared parameter.
type Param struct {
	Name string
	Type types.TypeID
}

// Method describes a resolved callable: a source method or constructor, or a
// runtime entry point synthesized by a lowering pass.
type Method struct {
	Name   string
	Owner  types.TypeID
	Params []Param
	Result types.TypeID
	Flags  MethodFlags
	// Decl points at the generic declaration when this method is a
	// parameterized instance; nil for declarations themselves.
	Decl *Method
	// Selector is the target-runtime message name, e.g. "arrayWithInts:count:".
	Selector string
}

// Declaration returns the declaration this method was instantiated from.
func (m *Method) Declaration() *Method {
	if m == nil {
		return nil
	}
	seen := 0
	for m.Decl != nil && m.Decl != m && seen < 8 {
		m = m.Decl
		seen++
	}
	return m
}

func (m *Method) Has(f MethodFlags) bool {
	return m != nil && m.Flags&f == f
}

// IsVarargs reports whether the last parameter is variable-arity.
func (m *Method) IsVarargs() bool {
	return m.Has(MethodVarargs)
}

// FixedArity is the number of declared parameters, the variadic slot included.
func (m *Method) FixedArity() int {
	if m == nil {
		return 0
	}
	return len(m.Params)
}

// LastParam returns the final declared parameter.
func (m *Method) LastParam() (Param, bool) {
	if m == nil || len(m.Params) == 0 {
		return Param{}, false
	}
	return m.Params[len(m.Params)-1], true
}

// String renders a short signature for dumps, e.g. "format(java.lang.String, java.lang.Object[]...)".
func (m *Method) String(in *types.Interner) string {
	if m == nil {
		return "<nil>"
	}
	if m.Selector != "" {
		return in.String(m.Owner) + " " + m.Selector
	}
	var sb strings.Builder
	sb.WriteString(m.Name)
	sb.WriteByte('(')
	for i, p := range m.Params {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(in.String(p.Type))
		if i == len(m.Params)-1 && m.IsVarargs() {
			sb.WriteString("...")
		}
	}
	sb.WriteByte(')')
	return sb.String()
}
