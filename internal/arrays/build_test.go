package arrays

import (
	"errors"
	"testing"

	"jlower/internal/ir"
	"jlower/internal/types"
)

func TestBuildInitArgumentCount(t *testing.T) {
	in := types.NewInterner()
	b := in.Builtins()
	builder, _ := newBuilder(in)
	for _, elem := range []types.TypeID{b.Boolean, b.Byte, b.Char, b.Short, b.Int, b.Long, b.Float, b.Double, b.String} {
		arr := in.ArrayOf(elem, 1)
		elems := []*ir.Expr{varRef("x", elem), varRef("y", elem), varRef("z", elem)}
		call, err := builder.BuildInit(arr, elems, sp(0, 2))
		if err != nil {
			t.Fatalf("BuildInit(%s): %v", in.String(arr), err)
		}
		want := 2
		if !in.IsPrimitive(elem) {
			want = 3
		}
		args := argsOf(t, call)
		if got := len(args); got != want {
			t.Fatalf("BuildInit(%s) has %d args, want %d", in.String(arr), got, want)
		}
		if call.Type != arr {
			t.Errorf("call type = %s, want %s", in.String(call.Type), in.String(arr))
		}

		buffer, ok := args[0].Data.(ir.ArrayInitData)
		if !ok || !buffer.Native || args[0].Type != arr {
			t.Fatalf("BuildInit(%s) buffer = %s", in.String(arr), ir.SprintExpr(in, args[0]))
		}
		if len(buffer.Elements) != 3 {
			t.Fatalf("BuildInit(%s) buffer has %d elements, want 3", in.String(arr), len(buffer.Elements))
		}
		for i, el := range buffer.Elements {
			if el == elems[i] || el.Data.(ir.VarRefData).Name != elems[i].Data.(ir.VarRefData).Name {
				t.Errorf("BuildInit(%s) element %d is not a copy of the input", in.String(arr), i)
			}
		}

		count, ok := args[1].Data.(ir.LiteralData)
		if !ok || count.Kind != ir.LiteralInt || count.IntValue != 3 || args[1].Type != b.Int {
			t.Errorf("BuildInit(%s) count = %s, want int literal 3", in.String(arr), ir.SprintExpr(in, args[1]))
		}
	}
}

func TestBuildInitPrimitive(t *testing.T) {
	in := types.NewInterner()
	builder, _ := newBuilder(in)
	arr := in.ArrayOf(in.Builtins().Int, 1)
	elems := []*ir.Expr{intLit(in, 1), intLit(in, 2), intLit(in, 3)}
	call, err := builder.BuildInit(arr, elems, sp(0, 9))
	if err != nil {
		t.Fatalf("BuildInit: %v", err)
	}
	want := "(call IOSIntArray arrayWithInts:count: (native int[] 1 2 3) 3)"
	if got := ir.SprintExpr(in, call); got != want {
		t.Fatalf("got  %s\nwant %s", got, want)
	}
	buffer := argsOf(t, call)[0]
	for i, el := range buffer.Data.(ir.ArrayInitData).Elements {
		if el == elems[i] {
			t.Fatalf("element %d was not copied", i)
		}
	}
}

func TestBuildInitReference(t *testing.T) {
	in := types.NewInterner()
	builder, _ := newBuilder(in)
	str := in.Builtins().String
	arr := in.ArrayOf(str, 1)
	call, err := builder.BuildInit(arr, []*ir.Expr{varRef("a", str), varRef("b", str)}, sp(0, 6))
	if err != nil {
		t.Fatalf("BuildInit: %v", err)
	}
	want := "(call IOSObjectArray arrayWithObjects:count:type: (native java.lang.String[] a b) 2 (class java.lang.String))"
	if got := ir.SprintExpr(in, call); got != want {
		t.Fatalf("got  %s\nwant %s", got, want)
	}
}

func TestBuildSingleDimension(t *testing.T) {
	in := types.NewInterner()
	b := in.Builtins()
	builder, cache := newBuilder(in)
	cases := []struct {
		name string
		expr *ir.Expr
		want string
	}{
		{"primitive", newSized(in.ArrayOf(b.Float, 1), intLit(in, 4)),
			"(call IOSFloatArray arrayWithLength: 4)"},
		{"reference", newSized(in.ArrayOf(b.String, 1), intLit(in, 2)),
			"(call IOSObjectArray arrayWithLength:type: 2 (class java.lang.String))"},
		{"partial", newSized(in.ArrayOf(b.Int, 2), intLit(in, 2)),
			"(call IOSObjectArray arrayWithLength:type: 2 (class int[]))"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			call, err := builder.Build(tc.expr)
			if err != nil {
				t.Fatalf("Build: %v", err)
			}
			if got := ir.SprintExpr(in, call); got != tc.want {
				t.Fatalf("got  %s\nwant %s", got, tc.want)
			}
		})
	}
	first, _ := builder.Build(newSized(in.ArrayOf(b.Float, 1), intLit(in, 1)))
	second, _ := builder.Build(newSized(in.ArrayOf(b.Float, 1), varRef("n", b.Int)))
	if methodOf(t, first) != methodOf(t, second) {
		t.Fatalf("constructions of one kind must share a signature")
	}
	if sig, ok := cache.Lookup(ShapeLength, KindFloat); !ok || sig.Method != methodOf(t, first) {
		t.Fatalf("call does not reference the cached signature")
	}
}

func TestBuildMultiDimension(t *testing.T) {
	in := types.NewInterner()
	b := in.Builtins()
	builder, _ := newBuilder(in)

	call, err := builder.Build(newSized(in.ArrayOf(b.Int, 2), intLit(in, 3), intLit(in, 4)))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	want := "(call IOSIntArray arrayWithDimensions:lengths: 2 (native int[] 3 4))"
	if got := ir.SprintExpr(in, call); got != want {
		t.Fatalf("got  %s\nwant %s", got, want)
	}
	lengths := argsOf(t, call)[1]
	if lengths.Type != in.ArrayOf(b.Int, 1) {
		t.Fatalf("lengths buffer typed %s", in.String(lengths.Type))
	}

	call, err = builder.Build(newSized(in.ArrayOf(b.Int, 3), intLit(in, 3), intLit(in, 4)))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	want = "(call IOSObjectArray arrayWithDimensions:lengths:type: 2 (native int[] 3 4) (class int[]))"
	if got := ir.SprintExpr(in, call); got != want {
		t.Fatalf("got  %s\nwant %s", got, want)
	}
}

func TestBuildErrors(t *testing.T) {
	in := types.NewInterner()
	b := in.Builtins()
	builder, _ := newBuilder(in)

	_, err := builder.BuildInit(b.Int, nil, sp(0, 1))
	if !errors.Is(err, ErrNotArray) {
		t.Fatalf("BuildInit(int) error = %v, want ErrNotArray", err)
	}
	var ie *InvariantError
	if !errors.As(err, &ie) || ie.Op != "initializer" {
		t.Fatalf("error not wrapped as InvariantError: %v", err)
	}

	_, err = builder.BuildDimensions(in.ArrayOf(b.Int, 1), []*ir.Expr{intLit(in, 1), intLit(in, 2)}, sp(0, 1))
	if !errors.Is(err, ErrTooFewDimensions) {
		t.Fatalf("BuildDimensions error = %v, want ErrTooFewDimensions", err)
	}

	_, err = builder.Build(newSized(in.ArrayOf(b.Int, 1)))
	if !errors.Is(err, ErrTooFewDimensions) {
		t.Fatalf("Build with no sizes error = %v", err)
	}

	_, err = builder.Build(intLit(in, 1))
	if err == nil {
		t.Fatalf("Build accepted a literal")
	}
}
