package ir

import (
	"jlower/internal/source"
	"jlower/internal/symbols"
	"jlower/internal/types"
)

// ExprKind enumerates expression kinds.
type ExprKind uint8

const (
	// ExprLiteral represents literals (numbers, chars, strings, booleans, null).
	ExprLiteral ExprKind = iota
	// ExprTypeLit represents a runtime class-descriptor literal (Foo.class).
	ExprTypeLit
	// ExprVarRef represents a local, parameter or field name.
	ExprVarRef
	// ExprFieldAccess represents expr.field.
	ExprFieldAccess
	// ExprBinaryOp represents binary operators.
	ExprBinaryOp
	// ExprCast represents (T) expr.
	ExprCast
	// ExprIndex represents expr[index].
	ExprIndex
	// ExprConditional represents cond ? a : b.
	ExprConditional
	// ExprArrayCreation represents new T[n]..., new T[]{...}.
	ExprArrayCreation
	// ExprArrayInit represents a brace initializer {a, b, c}.
	ExprArrayInit
	// ExprCall represents method invocation, including calls to runtime
	// entry points produced by lowering.
	ExprCall
	// ExprNew represents class instance creation.
	ExprNew
	// ExprSuperCall represents super.m(...).
	ExprSuperCall
)

// String returns a human-readable name for the expression kind.
func (k ExprKind) String() string {
	switch k {
	case ExprLiteral:
		return "Literal"
	case ExprTypeLit:
		return "TypeLit"
	case ExprVarRef:
		return "VarRef"
	case ExprFieldAccess:
		return "FieldAccess"
	case ExprBinaryOp:
		return "BinaryOp"
	case ExprCast:
		return "Cast"
	case ExprIndex:
		return "Index"
	case ExprConditional:
		return "Conditional"
	case ExprArrayCreation:
		return "ArrayCreation"
	case ExprArrayInit:
		return "ArrayInit"
	case ExprCall:
		return "Call"
	case ExprNew:
		return "New"
	case ExprSuperCall:
		return "SuperCall"
	default:
		return "Unknown"
	}
}

// Expr is a typed expression node.
type Expr struct {
	Kind ExprKind
	Type types.TypeID // resolved static type
	Span source.Span
	Data ExprData // kind-specific payload
}

// ExprData is the interface for expression-specific data.
type ExprData interface {
	exprData()
}

// LiteralKind enumerates literal value kinds.
type LiteralKind uint8

const (
	LiteralInt LiteralKind = iota
	LiteralLong
	LiteralFloat
	LiteralDouble
	LiteralBool
	LiteralChar
	LiteralString
	LiteralNull
)

// LiteralData holds data for ExprLiteral.
type LiteralData struct {
	Kind        LiteralKind
	Text        string // raw text for numeric literals
	IntValue    int64
	FloatValue  float64
	BoolValue   bool
	StringValue string
}

func (LiteralData) exprData() {}

// TypeLitData holds data for ExprTypeLit.
type TypeLitData struct {
	Target types.TypeID // the described type
}

func (TypeLitData) exprData() {}

// VarRefData holds data for ExprVarRef.
type VarRefData struct {
	Name string
}

func (VarRefData) exprData() {}

// FieldAccessData holds data for ExprFieldAccess.
type FieldAccessData struct {
	Object *Expr
	Name   string
}

func (FieldAccessData) exprData() {}

// BinaryOpData holds data for ExprBinaryOp.
type BinaryOpData struct {
	Op    string
	Left  *Expr
	Right *Expr
}

func (BinaryOpData) exprData() {}

// CastData holds data for ExprCast.
type CastData struct {
	Value *Expr
}

func (CastData) exprData() {}

// IndexData holds data for ExprIndex.
type IndexData struct {
	Object *Expr
	Index  *Expr
}

func (IndexData) exprData() {}

// ConditionalData holds data for ExprConditional.
type ConditionalData struct {
	Cond *Expr
	Then *Expr
	Else *Expr
}

func (ConditionalData) exprData() {}

// ArrayCreationData holds data for ExprArrayCreation. Exactly one of Dims and
// Init is populated; the node's Type is the declared array type.
type ArrayCreationData struct {
	Dims []*Expr
	Init *Expr // ExprArrayInit
}

func (ArrayCreationData) exprData() {}

// ArrayInitData holds data for ExprArrayInit.
type ArrayInitData struct {
	Elements []*Expr
	// Native marks a raw element buffer emitted by lowering. It is printed as a
	// C array literal and is never lowered again.
	Native bool
}

func (ArrayInitData) exprData() {}

// CallData holds data for ExprCall, ExprNew and ExprSuperCall.
type CallData struct {
	Receiver *Expr // nil for static, unqualified and runtime calls
	Method   *symbols.Method
	Args     []*Expr
}

func (CallData) exprData() {}
