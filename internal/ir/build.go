package ir

import (
	"fmt"
	"strconv"

	"fortio.org/safecast"

	"jlower/internal/source"
	"jlower/internal/symbols"
	"jlower/internal/types"
)

// IntLit builds an int literal.
func IntLit(in *types.Interner, v int, span source.Span) *Expr {
	return &Expr{
		Kind: ExprLiteral,
		Type: in.Builtins().Int,
		Span: span,
		Data: LiteralData{Kind: LiteralInt, Text: strconv.Itoa(v), IntValue: int64(v)},
	}
}

// CountLit builds an int literal holding a length or count. Java ints are 32
// bits, so counts that do not fit are rejected.
func CountLit(in *types.Interner, n int, span source.Span) (*Expr, error) {
	v, err := safecast.Conv[int32](n)
	if err != nil {
		return nil, fmt.Errorf("count %d: %w", n, err)
	}
	return IntLit(in, int(v), span), nil
}

// NullLit builds the null literal.
func NullLit(in *types.Interner, span source.Span) *Expr {
	return &Expr{
		Kind: ExprLiteral,
		Type: in.Builtins().Null,
		Span: span,
		Data: LiteralData{Kind: LiteralNull, Text: "null"},
	}
}

// TypeLit builds a class-descriptor literal for target. descType is the type
// of the literal itself (the runtime class-descriptor type).
func TypeLit(target, descType types.TypeID, span source.Span) *Expr {
	return &Expr{
		Kind: ExprTypeLit,
		Type: descType,
		Span: span,
		Data: TypeLitData{Target: target},
	}
}

// NativeArray builds a raw element buffer holding elems as-is.
func NativeArray(arrayType types.TypeID, elems []*Expr, span source.Span) *Expr {
	return &Expr{
		Kind: ExprArrayInit,
		Type: arrayType,
		Span: span,
		Data: ArrayInitData{Elements: elems, Native: true},
	}
}

// StaticCall builds a receiverless call of m.
func StaticCall(m *symbols.Method, typ types.TypeID, args []*Expr, span source.Span) *Expr {
	return &Expr{
		Kind: ExprCall,
		Type: typ,
		Span: span,
		Data: CallData{Method: m, Args: args},
	}
}
