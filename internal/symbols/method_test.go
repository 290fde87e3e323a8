package symbols

import (
	"slices"
	"testing"

	"jlower/internal/types"
)

func TestDeclOracleConsultsDeclaration(t *testing.T) {
	in := types.NewInterner()
	objs := in.ArrayOf(in.Builtins().Object, 1)
	decl := &Method{
		Name:   "asList",
		Params: []Param{{Name: "items", Type: objs}},
		Flags:  MethodPublic | MethodStatic | MethodVarargs,
	}
	inst := &Method{
		Name:   "asList",
		Params: []Param{{Name: "items", Type: in.ArrayOf(in.Builtins().String, 1)}},
		Decl:   decl,
	}

	var o Oracle = DeclOracle{}
	if !o.IsVarargs(inst) {
		t.Fatalf("instance should inherit varargs from its declaration")
	}
	if o.HasVarargsTarget(inst) {
		t.Fatalf("no varargs target was recorded")
	}
	decl.Flags |= MethodVarargsTarget
	if !o.HasVarargsTarget(inst) {
		t.Fatalf("varargs target flag not observed through declaration")
	}
	if got := inst.Declaration(); got != decl {
		t.Fatalf("Declaration() = %p, want %p", got, decl)
	}
}

func TestMethodString(t *testing.T) {
	in := types.NewInterner()
	m := &Method{
		Name: "format",
		Params: []Param{
			{Name: "fmt", Type: in.Builtins().String},
			{Name: "args", Type: in.ArrayOf(in.Builtins().Object, 1)},
		},
		Flags: MethodVarargs,
	}
	if got, want := m.String(in), "format(java.lang.String, java.lang.Object[]...)"; got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
	if got := m.Flags.Strings(); !slices.Equal(got, []string{"varargs"}) {
		t.Fatalf("Flags.Strings() = %v", got)
	}
}

func TestTableAssignsStableIDs(t *testing.T) {
	tab := NewTable()
	a := &Method{Name: "a"}
	b := &Method{Name: "b"}
	idA := tab.Add(a)
	idB := tab.Add(b)
	if !idA.IsValid() || idA == idB {
		t.Fatalf("unexpected ids %d %d", idA, idB)
	}
	if again := tab.Add(a); again != idA {
		t.Fatalf("re-adding returned %d, want %d", again, idA)
	}
	if tab.Get(idB) != b || tab.Len() != 2 {
		t.Fatalf("table lookup mismatch")
	}
	if tab.Get(NoMethodID) != nil {
		t.Fatalf("sentinel must resolve to nil")
	}
}
