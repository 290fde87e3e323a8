package arrays

import (
	"strings"

	"jlower/internal/symbols"
	"jlower/internal/types"
)

// Signature is a synthesized wrapper constructor. Method is what call nodes
// reference; cTypes holds the runtime's C type for each parameter.
type Signature struct {
	Shape  Shape
	Kind   Kind
	Method *symbols.Method
	cTypes []string
	result string
}

// Declare renders the runtime declaration, e.g.
// "+ (IOSIntArray *)arrayWithInts:(int *)ints count:(int)count".
func (s *Signature) Declare() string {
	var sb strings.Builder
	sb.WriteString("+ (")
	sb.WriteString(s.result)
	sb.WriteString(" *)")
	parts := strings.Split(strings.TrimSuffix(s.Method.Selector, ":"), ":")
	for i, part := range parts {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(part)
		sb.WriteString(":(")
		sb.WriteString(s.cTypes[i])
		sb.WriteString(")")
		sb.WriteString(s.Method.Params[i].Name)
	}
	return sb.String()
}

// Class returns the wrapper class the signature is declared on.
func (s *Signature) Class(in *types.Interner) string {
	return in.String(s.Method.Owner)
}

type sigParam struct {
	label string // selector keyword
	name  string
	typ   types.TypeID
	cType string
}

// newSignature synthesizes the constructor for (shape, kind). Parameter layout:
//
//	initializer       (elements, count:int[, type])
//	single-dimension  (length:int[, type])
//	multi-dimension   (dimensionCount:int, lengths:int-array[, type])
func newSignature(in *types.Interner, rt Runtime, shape Shape, kind Kind) *Signature {
	wrapperName := rt.Wrapper(kind)
	wrapper := in.Runtime(wrapperName)
	intType := in.Builtins().Int
	result, resultName := wrapper, wrapperName

	var params []sigParam
	switch shape {
	case ShapeInit:
		params = []sigParam{
			{label: "arrayWith" + kind.plural(), name: kind.bufferParam(), typ: wrapper, cType: kind.cType() + " *"},
			{label: "count", name: "count", typ: intType, cType: "int"},
		}
	case ShapeLength:
		params = []sigParam{
			{label: "arrayWithLength", name: "length", typ: intType, cType: "int"},
		}
	case ShapeDimensions:
		lengthsName := rt.Wrapper(KindInt)
		params = []sigParam{
			{label: "arrayWithDimensions", name: "dimensionCount", typ: intType, cType: "int"},
			{label: "lengths", name: "dimensionLengths", typ: in.Runtime(lengthsName), cType: "int *"},
		}
		// Nested arrays are always object arrays of (eventually) kind arrays.
		resultName = rt.Wrapper(KindObject)
		result = in.Runtime(resultName)
	}
	if kind.IsReference() {
		classType := rt.ClassType()
		params = append(params, sigParam{label: "type", name: "type", typ: in.Runtime(classType), cType: classType + " *"})
	}

	m := &symbols.Method{
		Name:   params[0].label,
		Owner:  wrapper,
		Result: result,
		Flags:  symbols.MethodPublic | symbols.MethodStatic | symbols.MethodSynthetic,
		Params: make([]symbols.Param, len(params)),
	}
	cTypes := make([]string, len(params))
	var sel strings.Builder
	for i, p := range params {
		m.Params[i] = symbols.Param{Name: p.name, Type: p.typ}
		cTypes[i] = p.cType
		sel.WriteString(p.label)
		sel.WriteByte(':')
	}
	m.Selector = sel.String()
	return &Signature{Shape: shape, Kind: kind, Method: m, cTypes: cTypes, result: resultName}
}
