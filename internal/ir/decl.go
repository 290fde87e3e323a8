package ir

import (
	"jlower/internal/source"
	"jlower/internal/symbols"
	"jlower/internal/types"
)

// Unit is one compilation unit: the input and output of every pass.
type Unit struct {
	Name  string
	Path  string
	Types []*TypeDecl
	// Interner owns every TypeID referenced by the unit.
	Interner *types.Interner
}

// TypeDeclKind enumerates type declaration kinds.
type TypeDeclKind uint8

const (
	TypeDeclClass TypeDeclKind = iota
	TypeDeclInterface
	TypeDeclEnum
)

// String returns a human-readable name for the type declaration kind.
func (k TypeDeclKind) String() string {
	switch k {
	case TypeDeclClass:
		return "class"
	case TypeDeclInterface:
		return "interface"
	case TypeDeclEnum:
		return "enum"
	default:
		return "unknown"
	}
}

// TypeDecl is a class, interface or enum declaration.
type TypeDecl struct {
	Name          string
	Kind          TypeDeclKind
	Type          types.TypeID
	Span          source.Span
	Fields        []Field
	EnumConstants []EnumConstant
	Funcs         []*Func
}

// Field is a field declaration with an optional initializer.
type Field struct {
	Name string
	Type types.TypeID
	Init *Expr
	Span source.Span
}

// EnumConstant is an enum constant with its constructor arguments.
type EnumConstant struct {
	Name   string
	Method *symbols.Method // constructor invoked for this constant
	Args   []*Expr
	Span   source.Span
}

// Func is a method or constructor body.
type Func struct {
	Method *symbols.Method
	Params []symbols.Param
	Body   *Block // nil for abstract and native methods
	Span   source.Span
}

// Name returns the method name.
func (f *Func) Name() string {
	if f == nil || f.Method == nil {
		return ""
	}
	return f.Method.Name
}
