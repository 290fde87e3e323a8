package types

import "fmt"

// TypeID uniquely identifies a type inside the interner.
type TypeID uint32

// NoTypeID marks the absence of a type.
const NoTypeID TypeID = 0

// Kind enumerates the kinds of source-language types.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindVoid
	// KindNull is the type of the null literal; it converts to every reference type.
	KindNull
	KindBoolean
	KindByte
	KindChar
	KindShort
	KindInt
	KindLong
	KindFloat
	KindDouble
	// KindClass covers every declared reference type (classes, interfaces, enums).
	KindClass
	KindArray
	// KindRuntime names a type provided by the target runtime (array wrappers,
	// the class descriptor type). It never appears in source programs.
	KindRuntime
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindVoid:
		return "void"
	case KindNull:
		return "null"
	case KindBoolean:
		return "boolean"
	case KindByte:
		return "byte"
	case KindChar:
		return "char"
	case KindShort:
		return "short"
	case KindInt:
		return "int"
	case KindLong:
		return "long"
	case KindFloat:
		return "float"
	case KindDouble:
		return "double"
	case KindClass:
		return "class"
	case KindArray:
		return "array"
	case KindRuntime:
		return "runtime"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// IsPrimitive reports whether values of this kind are stored unboxed.
func (k Kind) IsPrimitive() bool {
	switch k {
	case KindBoolean, KindByte, KindChar, KindShort, KindInt, KindLong, KindFloat, KindDouble:
		return true
	default:
		return false
	}
}

// Type is a compact descriptor for any supported type.
type Type struct {
	Kind Kind
	Elem TypeID // component type for arrays
	Name string // qualified name for class and runtime types
}

// Descriptor helpers ---------------------------------------------------------

// MakeArray describes a one-level array of elem. Deeper arrays nest: int[][]
// is MakeArray(id(int[])).
func MakeArray(elem TypeID) Type {
	return Type{Kind: KindArray, Elem: elem}
}

// MakeClass describes a declared reference type.
func MakeClass(name string) Type {
	return Type{Kind: KindClass, Name: name}
}

// MakeRuntime describes a type supplied by the target runtime.
func MakeRuntime(name string) Type {
	return Type{Kind: KindRuntime, Name: name}
}
