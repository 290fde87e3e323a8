package types

import "testing"

func TestInternerBuiltins(t *testing.T) {
	in := NewInterner()
	b := in.Builtins()
	if b.Int == NoTypeID || b.Boolean == NoTypeID || b.Object == NoTypeID {
		t.Fatalf("builtins not initialized")
	}
	tt, _ := in.Lookup(b.Char)
	if tt.Kind != KindChar {
		t.Fatalf("expected char kind, got %v", tt.Kind)
	}
	if !in.IsPrimitive(b.Double) || in.IsPrimitive(b.String) {
		t.Fatalf("primitive classification is wrong")
	}
}

func TestInternerDeduplicatesDescriptors(t *testing.T) {
	in := NewInterner()
	arr1 := in.ArrayOf(in.Builtins().String, 2)
	arr2 := in.Intern(MakeArray(in.ArrayOf(in.Builtins().String, 1)))
	if arr1 != arr2 {
		t.Fatalf("array types should be deduplicated")
	}
	if in.Class("java.lang.String") != in.Builtins().String {
		t.Fatalf("class lookup should return the builtin")
	}
}

func TestClassNamesAreNormalized(t *testing.T) {
	in := NewInterner()
	// "é" precomposed vs. "e" + combining acute accent.
	a := in.Class("caf\u00e9.Menu")
	b := in.Class("cafe\u0301.Menu")
	if a != b {
		t.Fatalf("NFC-equivalent names interned twice: %d vs %d", a, b)
	}
}

func TestDimensionsAndStrip(t *testing.T) {
	in := NewInterner()
	i3 := in.ArrayOf(in.Builtins().Int, 3)
	if got := in.Dimensions(i3); got != 3 {
		t.Fatalf("Dimensions = %d, want 3", got)
	}
	base, ok := in.StripDimensions(i3, 2)
	if !ok || base != in.ArrayOf(in.Builtins().Int, 1) {
		t.Fatalf("StripDimensions(2) = %d, %v", base, ok)
	}
	if _, ok := in.StripDimensions(i3, 4); ok {
		t.Fatalf("stripping past the base type must fail")
	}
	if got := in.String(i3); got != "int[][][]" {
		t.Fatalf("String = %q", got)
	}
	if in.IsArray(in.Builtins().Int) {
		t.Fatalf("int is not an array")
	}
}

func TestRestoreKeepsIDs(t *testing.T) {
	in := NewInterner()
	arr := in.ArrayOf(in.Class("app.Point"), 2)
	out, err := Restore(in.Table())
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if out.Len() != in.Len() {
		t.Fatalf("restored table has %d entries, want %d", out.Len(), in.Len())
	}
	if out.String(arr) != "app.Point[][]" {
		t.Fatalf("restored type renders as %q", out.String(arr))
	}
	if out.Builtins() != in.Builtins() {
		t.Fatalf("builtins moved during restore")
	}
	if _, err := Restore(nil); err == nil {
		t.Fatalf("empty table must be rejected")
	}
}
