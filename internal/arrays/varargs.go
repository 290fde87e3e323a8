package arrays

import (
	"fmt"

	"jlower/internal/ir"
	"jlower/internal/source"
	"jlower/internal/symbols"
	"jlower/internal/types"
)

// Expander packs the trailing arguments of variable-arity calls into one
// array value so the call matches the callee's fixed runtime arity.
type Expander struct {
	in      *types.Interner
	oracle  symbols.Oracle
	builder *Builder
}

// NewExpander creates an Expander building arrays with builder.
func NewExpander(in *types.Interner, oracle symbols.Oracle, builder *Builder) *Expander {
	if oracle == nil {
		oracle = symbols.DeclOracle{}
	}
	return &Expander{in: in, oracle: oracle, builder: builder}
}

// Expand returns the argument list to install for a call of m. When nothing
// needs packing it returns args unchanged; otherwise it returns a new slice of
// exactly len(params) entries whose last element is the packed array.
//
// A lone trailing argument whose array depth already equals the variadic
// parameter's depth is an array being passed through and is left alone, as is
// a lone null.
func (x *Expander) Expand(m *symbols.Method, args []*ir.Expr, span source.Span) ([]*ir.Expr, error) {
	if m == nil || !x.oracle.IsVarargs(m) || x.oracle.HasVarargsTarget(m) {
		return args, nil
	}
	decl := m.Declaration()
	last, ok := decl.LastParam()
	if !ok {
		return nil, invariant("varargs", span, fmt.Errorf("%w: %s has no parameters", ErrVarargsShape, decl.Name))
	}
	if !x.in.IsArray(last.Type) {
		return nil, invariant("varargs", span, fmt.Errorf("%w: variadic parameter of %s is %s",
			ErrVarargsShape, decl.Name, x.in.String(last.Type)))
	}
	fixed := len(decl.Params) - 1
	if len(args) < fixed {
		return nil, invariant("varargs", span, fmt.Errorf("%w: %s needs %d leading arguments, got %d",
			ErrVarargsShape, decl.Name, fixed, len(args)))
	}
	trailing := args[fixed:]
	if len(trailing) == 1 && x.passesThrough(trailing[0], last.Type) {
		return args, nil
	}

	var packed *ir.Expr
	var err error
	if len(trailing) == 0 {
		packed, err = x.builder.BuildLength(last.Type, ir.IntLit(x.in, 0, span), span)
	} else {
		packed, err = x.builder.BuildInit(last.Type, trailing, coverSpan(trailing, span))
	}
	if err != nil {
		return nil, err
	}
	out := make([]*ir.Expr, 0, fixed+1)
	out = append(out, args[:fixed]...)
	return append(out, packed), nil
}

func (x *Expander) passesThrough(arg *ir.Expr, param types.TypeID) bool {
	if arg == nil {
		return false
	}
	if tt, ok := x.in.Lookup(arg.Type); ok && tt.Kind == types.KindNull {
		return true
	}
	return x.in.Dimensions(arg.Type) == x.in.Dimensions(param)
}

func coverSpan(list []*ir.Expr, fallback source.Span) source.Span {
	var sp source.Span
	seeded := false
	for _, e := range list {
		switch {
		case e == nil:
		case !seeded:
			sp, seeded = e.Span, true
		default:
			sp = sp.Cover(e.Span)
		}
	}
	if !seeded || sp.Empty() {
		return fallback
	}
	return sp
}
