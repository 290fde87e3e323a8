package arrays

import (
	"fmt"

	"jlower/internal/types"
)

// Kind classifies an array by its element type: one kind per primitive plus
// one shared by every reference type.
type Kind uint8

const (
	KindBoolean Kind = iota
	KindByte
	KindChar
	KindShort
	KindInt
	KindLong
	KindFloat
	KindDouble
	KindObject

	kindCount = int(KindObject) + 1
)

// Kinds lists every array kind in declaration order.
var Kinds = [kindCount]Kind{
	KindBoolean, KindByte, KindChar, KindShort, KindInt, KindLong, KindFloat, KindDouble, KindObject,
}

func (k Kind) String() string {
	switch k {
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
	case KindObject:
		return "object"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// IsReference reports whether elements are object references. Reference
// arrays carry their element class at runtime.
func (k Kind) IsReference() bool {
	return k == KindObject
}

// Classify maps an element or component type onto its array kind.
func Classify(in *types.Interner, elem types.TypeID) (Kind, error) {
	tt, ok := in.Lookup(elem)
	if !ok {
		return 0, fmt.Errorf("%w: type id %d", ErrUnknownKind, elem)
	}
	switch tt.Kind {
	case types.KindBoolean:
		return KindBoolean, nil
	case types.KindByte:
		return KindByte, nil
	case types.KindChar:
		return KindChar, nil
	case types.KindShort:
		return KindShort, nil
	case types.KindInt:
		return KindInt, nil
	case types.KindLong:
		return KindLong, nil
	case types.KindFloat:
		return KindFloat, nil
	case types.KindDouble:
		return KindDouble, nil
	case types.KindClass, types.KindArray, types.KindNull, types.KindRuntime:
		return KindObject, nil
	case types.KindInvalid, types.KindVoid:
		return 0, fmt.Errorf("%w: %s", ErrUnknownKind, tt.Kind)
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnknownKind, tt.Kind)
	}
}

// stem is the wrapper class name between prefix and "Array".
func (k Kind) stem() string {
	switch k {
	case KindBoolean:
		return "Boolean"
	case KindByte:
		return "Byte"
	case KindChar:
		return "Char"
	case KindShort:
		return "Short"
	case KindInt:
		return "Int"
	case KindLong:
		return "Long"
	case KindFloat:
		return "Float"
	case KindDouble:
		return "Double"
	default:
		return "Object"
	}
}

// plural names the element buffer in initializer selectors
// (arrayWithInts:, arrayWithCharacters:).
func (k Kind) plural() string {
	switch k {
	case KindBoolean:
		return "Booleans"
	case KindByte:
		return "Bytes"
	case KindChar:
		return "Characters"
	case KindShort:
		return "Shorts"
	case KindInt:
		return "Ints"
	case KindLong:
		return "Longs"
	case KindFloat:
		return "Floats"
	case KindDouble:
		return "Doubles"
	default:
		return "Objects"
	}
}

// bufferParam is the parameter name of the element buffer.
func (k Kind) bufferParam() string {
	switch k {
	case KindBoolean:
		return "booleans"
	case KindByte:
		return "bytes"
	case KindChar:
		return "chars"
	case KindShort:
		return "shorts"
	case KindInt:
		return "ints"
	case KindLong:
		return "longs"
	case KindFloat:
		return "floats"
	case KindDouble:
		return "doubles"
	default:
		return "objects"
	}
}

// cType is the runtime's C element type.
func (k Kind) cType() string {
	switch k {
	case KindBoolean:
		return "BOOL"
	case KindByte:
		return "char"
	case KindChar:
		return "unichar"
	case KindShort:
		return "short"
	case KindInt:
		return "int"
	case KindLong:
		return "long long"
	case KindFloat:
		return "float"
	case KindDouble:
		return "double"
	default:
		return "id"
	}
}

// Runtime names the target runtime's array classes.
type Runtime struct {
	Prefix string
}

// DefaultRuntime uses the "IOS" class prefix.
var DefaultRuntime = Runtime{Prefix: "IOS"}

// Wrapper returns the wrapper class name for k, e.g. "IOSIntArray".
func (r Runtime) Wrapper(k Kind) string {
	return r.Prefix + k.stem() + "Array"
}

// ClassType returns the runtime class-descriptor type name, e.g. "IOSClass".
func (r Runtime) ClassType() string {
	return r.Prefix + "Class"
}
