package arrays

import (
	"testing"

	"jlower/internal/symbols"
	"jlower/internal/types"
)

func TestSignatureCacheReturnsSameSignature(t *testing.T) {
	in := types.NewInterner()
	cache := NewSignatureCache(in, DefaultRuntime)
	var created []*Signature
	cache.OnCreate(func(sig *Signature) { created = append(created, sig) })

	a, err := cache.Get(ShapeLength, KindInt)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	b, _ := cache.Get(ShapeLength, KindInt)
	if a != b {
		t.Fatalf("repeat lookups returned distinct signatures")
	}
	c, _ := cache.Get(ShapeLength, KindLong)
	d, _ := cache.Get(ShapeInit, KindInt)
	if a == c || a == d {
		t.Fatalf("distinct (shape, kind) pairs must not share a signature")
	}
	if cache.Len() != 3 || len(created) != 3 {
		t.Fatalf("expected 3 signatures, have %d (observed %d)", cache.Len(), len(created))
	}
	if got, ok := cache.Lookup(ShapeDimensions, KindInt); ok || got != nil {
		t.Fatalf("Lookup must not synthesize")
	}
	sigs := cache.Signatures()
	if sigs[0] != d || sigs[1] != a || sigs[2] != c {
		t.Fatalf("Signatures not in shape/kind order")
	}
	if cache.Created()[0] != a {
		t.Fatalf("Created not in creation order")
	}
}

func TestSignatureDeclarations(t *testing.T) {
	in := types.NewInterner()
	cache := NewSignatureCache(in, DefaultRuntime)
	cases := []struct {
		shape Shape
		kind  Kind
		want  string
	}{
		{ShapeInit, KindInt, "+ (IOSIntArray *)arrayWithInts:(int *)ints count:(int)count"},
		{ShapeInit, KindChar, "+ (IOSCharArray *)arrayWithCharacters:(unichar *)chars count:(int)count"},
		{ShapeInit, KindObject, "+ (IOSObjectArray *)arrayWithObjects:(id *)objects count:(int)count type:(IOSClass *)type"},
		{ShapeLength, KindDouble, "+ (IOSDoubleArray *)arrayWithLength:(int)length"},
		{ShapeLength, KindObject, "+ (IOSObjectArray *)arrayWithLength:(int)length type:(IOSClass *)type"},
		{ShapeDimensions, KindLong, "+ (IOSObjectArray *)arrayWithDimensions:(int)dimensionCount lengths:(int *)dimensionLengths"},
		{ShapeDimensions, KindObject, "+ (IOSObjectArray *)arrayWithDimensions:(int)dimensionCount lengths:(int *)dimensionLengths type:(IOSClass *)type"},
	}
	for _, tc := range cases {
		sig, err := cache.Get(tc.shape, tc.kind)
		if err != nil {
			t.Fatalf("Get(%s, %s): %v", tc.shape, tc.kind, err)
		}
		if got := sig.Declare(); got != tc.want {
			t.Errorf("Declare(%s, %s)\n got %s\nwant %s", tc.shape, tc.kind, got, tc.want)
		}
	}
}

func TestSignatureMethodShape(t *testing.T) {
	in := types.NewInterner()
	cache := NewSignatureCache(in, DefaultRuntime)
	sig, _ := cache.Get(ShapeDimensions, KindInt)
	m := sig.Method
	if !m.Has(symbols.MethodStatic | symbols.MethodSynthetic) {
		t.Fatalf("signature flags = %v", m.Flags.Strings())
	}
	if got := sig.Class(in); got != "IOSIntArray" {
		t.Fatalf("Class = %q", got)
	}
	if m.Result != in.Runtime("IOSObjectArray") {
		t.Fatalf("multi-dimension constructors return the object wrapper, got %s", in.String(m.Result))
	}
	if m.Params[1].Type != in.Runtime("IOSIntArray") {
		t.Fatalf("lengths parameter = %s", in.String(m.Params[1].Type))
	}
	if m.Selector != "arrayWithDimensions:lengths:" || m.Name != "arrayWithDimensions" {
		t.Fatalf("selector = %q, name = %q", m.Selector, m.Name)
	}
}

func TestSignatureCacheRejectsOutOfRange(t *testing.T) {
	cache := NewSignatureCache(types.NewInterner(), DefaultRuntime)
	if _, err := cache.Get(Shape(9), KindInt); err == nil {
		t.Fatalf("expected error for unknown shape")
	}
	if _, err := cache.Get(ShapeInit, Kind(42)); err == nil {
		t.Fatalf("expected error for unknown kind")
	}
}
