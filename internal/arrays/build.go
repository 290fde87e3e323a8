package arrays

import (
	"fmt"

	"jlower/internal/ir"
	"jlower/internal/source"
	"jlower/internal/types"
)

// Builder turns array construction requests into wrapper constructor calls.
// Every expression it places into a new call is a deep copy; the originals
// stay valid wherever else they are referenced.
type Builder struct {
	in    *types.Interner
	rt    Runtime
	cache *SignatureCache
}

// NewBuilder creates a Builder drawing signatures from cache.
func NewBuilder(in *types.Interner, rt Runtime, cache *SignatureCache) *Builder {
	return &Builder{in: in, rt: rt, cache: cache}
}

// Build lowers an ExprArrayCreation node.
func (b *Builder) Build(e *ir.Expr) (*ir.Expr, error) {
	data, ok := e.Data.(ir.ArrayCreationData)
	if e.Kind != ir.ExprArrayCreation || !ok {
		return nil, invariant("array creation", e.Span, fmt.Errorf("unexpected %s node", e.Kind))
	}
	if data.Init != nil {
		init, ok := data.Init.Data.(ir.ArrayInitData)
		if !ok {
			return nil, invariant("initializer", data.Init.Span, fmt.Errorf("initializer is a %s node", data.Init.Kind))
		}
		return b.BuildInit(e.Type, init.Elements, e.Span)
	}
	switch len(data.Dims) {
	case 0:
		return nil, invariant("array creation", e.Span, fmt.Errorf("%w: no sizes and no initializer", ErrTooFewDimensions))
	case 1:
		return b.BuildLength(e.Type, data.Dims[0], e.Span)
	default:
		return b.BuildDimensions(e.Type, data.Dims, e.Span)
	}
}

// BuildInit lowers {elems...} of arrayType to
// Wrapper arrayWith<Kind>s:count:[type:](buffer, len(elems)[, Component.class]).
func (b *Builder) BuildInit(arrayType types.TypeID, elems []*ir.Expr, span source.Span) (*ir.Expr, error) {
	component, kind, err := b.component(arrayType, 1)
	if err != nil {
		return nil, invariant("initializer", span, err)
	}
	sig, err := b.cache.Get(ShapeInit, kind)
	if err != nil {
		return nil, invariant("initializer", span, err)
	}
	count, err := ir.CountLit(b.in, len(elems), span)
	if err != nil {
		return nil, invariant("initializer", span, err)
	}
	buffer := ir.NativeArray(arrayType, ir.CloneExprs(elems), span)
	args := []*ir.Expr{buffer, count}
	if kind.IsReference() {
		args = append(args, b.typeLit(component, span))
	}
	return ir.StaticCall(sig.Method, arrayType, args, span), nil
}

// BuildLength lowers new T[length] to Wrapper arrayWithLength:[type:].
func (b *Builder) BuildLength(arrayType types.TypeID, length *ir.Expr, span source.Span) (*ir.Expr, error) {
	if length == nil {
		return nil, invariant("single-dimension", span, fmt.Errorf("%w: missing length", ErrTooFewDimensions))
	}
	component, kind, err := b.component(arrayType, 1)
	if err != nil {
		return nil, invariant("single-dimension", span, err)
	}
	sig, err := b.cache.Get(ShapeLength, kind)
	if err != nil {
		return nil, invariant("single-dimension", span, err)
	}
	args := []*ir.Expr{ir.CloneExpr(length)}
	if kind.IsReference() {
		args = append(args, b.typeLit(component, span))
	}
	return ir.StaticCall(sig.Method, arrayType, args, span), nil
}

// BuildDimensions lowers new T[d1][d2]...[dn] (n > 1). The kind comes from
// the type left after stripping n levels, so new int[2][3] uses the int
// wrapper while new int[2][3][] uses the object wrapper with int[] as its
// element class.
func (b *Builder) BuildDimensions(arrayType types.TypeID, dims []*ir.Expr, span source.Span) (*ir.Expr, error) {
	if len(dims) < 2 {
		return nil, invariant("multi-dimension", span, fmt.Errorf("%w: got %d sizes", ErrTooFewDimensions, len(dims)))
	}
	base, kind, err := b.component(arrayType, len(dims))
	if err != nil {
		return nil, invariant("multi-dimension", span, err)
	}
	sig, err := b.cache.Get(ShapeDimensions, kind)
	if err != nil {
		return nil, invariant("multi-dimension", span, err)
	}
	count, err := ir.CountLit(b.in, len(dims), span)
	if err != nil {
		return nil, invariant("multi-dimension", span, err)
	}
	lengths := ir.NativeArray(b.in.ArrayOf(b.in.Builtins().Int, 1), ir.CloneExprs(dims), span)
	args := []*ir.Expr{count, lengths}
	if kind.IsReference() {
		args = append(args, b.typeLit(base, span))
	}
	return ir.StaticCall(sig.Method, arrayType, args, span), nil
}

// component strips levels array dimensions from arrayType and classifies
// what remains.
func (b *Builder) component(arrayType types.TypeID, levels int) (types.TypeID, Kind, error) {
	if !b.in.IsArray(arrayType) {
		return types.NoTypeID, 0, fmt.Errorf("%w: %s", ErrNotArray, b.in.String(arrayType))
	}
	base, ok := b.in.StripDimensions(arrayType, levels)
	if !ok {
		return types.NoTypeID, 0, fmt.Errorf("%w: %s has fewer than %d dimensions",
			ErrTooFewDimensions, b.in.String(arrayType), levels)
	}
	kind, err := Classify(b.in, base)
	if err != nil {
		return types.NoTypeID, 0, err
	}
	return base, kind, nil
}

func (b *Builder) typeLit(target types.TypeID, span source.Span) *ir.Expr {
	return ir.TypeLit(target, b.in.Runtime(b.rt.ClassType()), span)
}
