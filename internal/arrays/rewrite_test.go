package arrays

import (
	"context"
	"errors"
	"strings"
	"testing"

	"jlower/internal/ir"
	"jlower/internal/symbols"
	"jlower/internal/trace"
	"jlower/internal/types"
)

func letValue(t *testing.T, u *ir.Unit, i int) *ir.Expr {
	t.Helper()
	st := u.Types[0].Funcs[0].Body.Stmts[i]
	data, ok := st.Data.(ir.LetData)
	if !ok {
		t.Fatalf("stmt %d is %s, not let", i, st.Kind)
	}
	return data.Value
}

func TestPassLowersConstructions(t *testing.T) {
	in := types.NewInterner()
	b := in.Builtins()
	intArr := in.ArrayOf(b.Int, 1)
	u := unitOf(in,
		letStmt("a", braceInit(intArr, intLit(in, 1), intLit(in, 2), intLit(in, 3))),
		letStmt("b", newSized(in.ArrayOf(b.String, 1), intLit(in, 2))),
		letStmt("c", newSized(in.ArrayOf(b.Int, 2), intLit(in, 2), intLit(in, 3))),
		letStmt("d", newInit(intArr, intLit(in, 4))),
		letStmt("e", newSized(in.ArrayOf(b.String, 1), varRef("n", b.Int))),
	)
	pass := NewPass(in, Options{})
	if err := pass.Run(context.Background(), u); err != nil {
		t.Fatalf("Run: %v", err)
	}
	want := []string{
		"(call IOSIntArray arrayWithInts:count: (native int[] 1 2 3) 3)",
		"(call IOSObjectArray arrayWithLength:type: 2 (class java.lang.String))",
		"(call IOSIntArray arrayWithDimensions:lengths: 2 (native int[] 2 3))",
		"(call IOSIntArray arrayWithInts:count: (native int[] 4) 1)",
		"(call IOSObjectArray arrayWithLength:type: n (class java.lang.String))",
	}
	for i, w := range want {
		if got := ir.SprintExpr(in, letValue(t, u, i)); got != w {
			t.Errorf("let %d:\n got %s\nwant %s", i, got, w)
		}
	}
	if methodOf(t, letValue(t, u, 0)) != methodOf(t, letValue(t, u, 3)) {
		t.Errorf("both int initializers must use one signature")
	}
	if methodOf(t, letValue(t, u, 1)) != methodOf(t, letValue(t, u, 4)) {
		t.Errorf("both String[] allocations must use one signature")
	}
	if n := len(pass.Signatures()); n != 3 {
		t.Errorf("expected 3 signatures, got %d", n)
	}
	st := pass.Stats()
	if st.Initializers != 2 || st.Lengths != 2 || st.Dimensions != 1 || st.Varargs != 0 {
		t.Errorf("stats = %+v", st)
	}
}

func TestPassRewritesChildrenFirst(t *testing.T) {
	in := types.NewInterner()
	b := in.Builtins()
	intArr := in.ArrayOf(b.Int, 1)
	grid := in.ArrayOf(b.Int, 2)
	// new int[][]{ new int[]{1}, {2} }
	u := unitOf(in, letStmt("g", newInit(grid, newInit(intArr, intLit(in, 1)), braceInit(intArr, intLit(in, 2)))))

	if err := NewPass(in, Options{}).Run(context.Background(), u); err != nil {
		t.Fatalf("Run: %v", err)
	}
	want := "(call IOSObjectArray arrayWithObjects:count:type: (native int[][] " +
		"(call IOSIntArray arrayWithInts:count: (native int[] 1) 1) " +
		"(call IOSIntArray arrayWithInts:count: (native int[] 2) 1)) 2 (class int[]))"
	if got := ir.SprintExpr(in, letValue(t, u, 0)); got != want {
		t.Fatalf("got  %s\nwant %s", got, want)
	}
}

func TestPassExpandsCallSites(t *testing.T) {
	in := types.NewInterner()
	b := in.Builtins()
	intArr := in.ArrayOf(b.Int, 1)
	f := varargsMethod(in, "f", intArr)
	ctor := varargsMethod(in, "<init>", in.ArrayOf(b.String, 1))
	ctor.Flags |= symbols.MethodConstructor

	u := unitOf(in,
		exprStmt(call(f, intLit(in, 1), intLit(in, 2), intLit(in, 3))),
		exprStmt(call(f)),
		exprStmt(call(f, newInit(intArr, intLit(in, 5), intLit(in, 6)))),
		ir.Stmt{Kind: ir.StmtThisCall, Data: ir.CtorCallData{Method: ctor, Args: []*ir.Expr{varRef("s", b.String)}}},
	)
	td := u.Types[0]
	td.Kind = ir.TypeDeclEnum
	td.EnumConstants = []ir.EnumConstant{{Name: "A", Method: ctor}}
	td.Fields = []ir.Field{{Name: "x", Type: b.Void, Init: call(f, intLit(in, 9))}}

	pass := NewPass(in, Options{})
	if err := pass.Run(context.Background(), u); err != nil {
		t.Fatalf("Run: %v", err)
	}
	stmts := td.Funcs[0].Body.Stmts
	exprOf := func(i int) *ir.Expr { return stmts[i].Data.(ir.ExprStmtData).Expr }

	want := []string{
		"(call f (call IOSIntArray arrayWithInts:count: (native int[] 1 2 3) 3))",
		"(call f (call IOSIntArray arrayWithLength: 0))",
		"(call f (call IOSIntArray arrayWithInts:count: (native int[] 5 6) 2))",
	}
	for i, w := range want {
		if got := ir.SprintExpr(in, exprOf(i)); got != w {
			t.Errorf("stmt %d:\n got %s\nwant %s", i, got, w)
		}
	}
	ctorArgs := stmts[3].Data.(ir.CtorCallData).Args
	if len(ctorArgs) != 1 || ctorArgs[0].Kind != ir.ExprCall {
		t.Errorf("this(...) arguments not packed")
	}
	if args := td.EnumConstants[0].Args; len(args) != 1 {
		t.Errorf("enum constant args = %d, want 1 packed array", len(args))
	} else if got := ir.SprintExpr(in, args[0]); got != "(call IOSObjectArray arrayWithLength:type: 0 (class java.lang.String))" {
		t.Errorf("enum constant arg = %s", got)
	}
	if got := ir.SprintExpr(in, td.Fields[0].Init); got != "(call f (call IOSIntArray arrayWithInts:count: (native int[] 9) 1))" {
		t.Errorf("field init = %s", got)
	}
	// f(1,2,3), f(), this(s), A(), x = f(9); f(new int[]{..}) passes its array through.
	if st := pass.Stats(); st.Varargs != 5 {
		t.Errorf("varargs stat = %d, want 5", st.Varargs)
	}
}

func TestPassLeavesNativeBuffersAlone(t *testing.T) {
	in := types.NewInterner()
	intArr := in.ArrayOf(in.Builtins().Int, 1)
	buf := ir.NativeArray(intArr, []*ir.Expr{intLit(in, 1)}, sp(0, 1))
	u := unitOf(in, letStmt("raw", buf))
	pass := NewPass(in, Options{})
	if err := pass.Run(context.Background(), u); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if letValue(t, u, 0) != buf || pass.Cache().Len() != 0 {
		t.Fatalf("native buffer was lowered")
	}
}

func TestPassReportsInvariantViolations(t *testing.T) {
	in := types.NewInterner()
	b := in.Builtins()
	ring := trace.NewRingTracer(32, trace.LevelError)
	u := unitOf(in, letStmt("bad", newSized(b.Int, intLit(in, 1))))

	err := NewPass(in, Options{Tracer: ring}).Run(context.Background(), u)
	if !errors.Is(err, ErrNotArray) {
		t.Fatalf("Run error = %v, want ErrNotArray", err)
	}
	if !strings.HasPrefix(err.Error(), "Main.Main: run: ") {
		t.Fatalf("error lacks location prefix: %v", err)
	}
	events := ring.Snapshot()
	if len(events) != 1 || events[0].Kind != trace.KindError {
		t.Fatalf("expected one error event, got %+v", events)
	}
}

func TestPassTracesSignatures(t *testing.T) {
	in := types.NewInterner()
	ring := trace.NewRingTracer(32, trace.LevelDebug)
	ctx := trace.WithTracer(context.Background(), ring)
	intArr := in.ArrayOf(in.Builtins().Int, 1)
	u := unitOf(in,
		letStmt("a", newSized(intArr, intLit(in, 1))),
		letStmt("b", newSized(intArr, intLit(in, 2))),
	)
	if err := NewPass(in, Options{}).Run(ctx, u); err != nil {
		t.Fatalf("Run: %v", err)
	}
	var points []string
	for _, ev := range ring.Snapshot() {
		if ev.Kind == trace.KindPoint {
			points = append(points, ev.Detail)
		}
	}
	if len(points) != 1 || points[0] != "+ (IOSIntArray *)arrayWithLength:(int)length" {
		t.Fatalf("signature events = %v", points)
	}
}

func TestPassStopsOnCancel(t *testing.T) {
	in := types.NewInterner()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := NewPass(in, Options{}).Run(ctx, unitOf(in))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Run error = %v, want context.Canceled", err)
	}
}

func TestPassRejectsForeignInterner(t *testing.T) {
	u := unitOf(types.NewInterner())
	if err := NewPass(types.NewInterner(), Options{}).Run(context.Background(), u); err == nil {
		t.Fatalf("expected interner mismatch error")
	}
}
