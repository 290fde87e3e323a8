package symbols

// Oracle answers the call-site questions the varargs lowering needs. Earlier
// passes own the answers; lowering only consults them.
type Oracle interface {
	IsVarargs(m *Method) bool
	// HasVarargsTarget reports whether m was already mapped to a fixed-arity
	// target that consumes the trailing arguments itself.
	HasVarargsTarget(m *Method) bool
}

// DeclOracle answers from the flags on the method's declaration.
type DeclOracle struct{}

func (DeclOracle) IsVarargs(m *Method) bool {
	return m.Declaration().IsVarargs()
}

func (DeclOracle) HasVarargsTarget(m *Method) bool {
	return m.Declaration().Has(MethodVarargsTarget)
}
