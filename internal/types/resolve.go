package types

import "strings"

// IsArray reports whether id names an array type.
func (in *Interner) IsArray(id TypeID) bool {
	tt, ok := in.Lookup(id)
	return ok && tt.Kind == KindArray
}

// IsPrimitive reports whether id names one of the eight primitive types.
func (in *Interner) IsPrimitive(id TypeID) bool {
	tt, ok := in.Lookup(id)
	return ok && tt.Kind.IsPrimitive()
}

// Dimensions counts array levels: int[][] has 2, int has 0.
func (in *Interner) Dimensions(id TypeID) int {
	dims := 0
	for {
		tt, ok := in.Lookup(id)
		if !ok || tt.Kind != KindArray {
			return dims
		}
		dims++
		id = tt.Elem
	}
}

// Component returns the type one array level down.
func (in *Interner) Component(id TypeID) (TypeID, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindArray {
		return NoTypeID, false
	}
	return tt.Elem, true
}

// StripDimensions removes n array levels from id. It fails when id has fewer
// than n levels.
func (in *Interner) StripDimensions(id TypeID, n int) (TypeID, bool) {
	for range n {
		elem, ok := in.Component(id)
		if !ok {
			return NoTypeID, false
		}
		id = elem
	}
	return id, true
}

// String renders id in source syntax, e.g. "java.lang.String[][]".
func (in *Interner) String(id TypeID) string {
	tt, ok := in.Lookup(id)
	if !ok {
		return "<invalid>"
	}
	switch tt.Kind {
	case KindArray:
		dims := in.Dimensions(id)
		base, _ := in.StripDimensions(id, dims)
		return in.String(base) + strings.Repeat("[]", dims)
	case KindClass, KindRuntime:
		return tt.Name
	default:
		return tt.Kind.String()
	}
}
