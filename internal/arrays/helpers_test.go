package arrays

import (
	"testing"

	"jlower/internal/ir"
	"jlower/internal/source"
	"jlower/internal/symbols"
	"jlower/internal/types"
)

func sp(start, end uint32) source.Span {
	return source.Span{File: 1, Start: start, End: end}
}

func intLit(in *types.Interner, v int) *ir.Expr {
	return ir.IntLit(in, v, sp(uint32(v), uint32(v)+1))
}

func varRef(name string, typ types.TypeID) *ir.Expr {
	return &ir.Expr{Kind: ir.ExprVarRef, Type: typ, Data: ir.VarRefData{Name: name}}
}

func braceInit(arrayType types.TypeID, elems ...*ir.Expr) *ir.Expr {
	return &ir.Expr{Kind: ir.ExprArrayInit, Type: arrayType, Data: ir.ArrayInitData{Elements: elems}}
}

func newSized(arrayType types.TypeID, dims ...*ir.Expr) *ir.Expr {
	return &ir.Expr{Kind: ir.ExprArrayCreation, Type: arrayType, Data: ir.ArrayCreationData{Dims: dims}}
}

func newInit(arrayType types.TypeID, elems ...*ir.Expr) *ir.Expr {
	return &ir.Expr{
		Kind: ir.ExprArrayCreation,
		Type: arrayType,
		Data: ir.ArrayCreationData{Init: braceInit(arrayType, elems...)},
	}
}

func call(m *symbols.Method, args ...*ir.Expr) *ir.Expr {
	return &ir.Expr{Kind: ir.ExprCall, Type: m.Result, Data: ir.CallData{Method: m, Args: args}}
}

// varargsMethod declares a static method whose last parameter is variadic.
func varargsMethod(in *types.Interner, name string, params ...types.TypeID) *symbols.Method {
	m := &symbols.Method{
		Name:   name,
		Owner:  in.Class("test.Util"),
		Result: in.Builtins().Void,
		Flags:  symbols.MethodStatic | symbols.MethodVarargs,
	}
	for i, p := range params {
		m.Params = append(m.Params, symbols.Param{Name: string(rune('a' + i)), Type: p})
	}
	return m
}

func argsOf(t *testing.T, e *ir.Expr) []*ir.Expr {
	t.Helper()
	data, ok := e.Data.(ir.CallData)
	if !ok {
		t.Fatalf("expected call, got %s", e.Kind)
	}
	return data.Args
}

func methodOf(t *testing.T, e *ir.Expr) *symbols.Method {
	t.Helper()
	data, ok := e.Data.(ir.CallData)
	if !ok {
		t.Fatalf("expected call, got %s", e.Kind)
	}
	return data.Method
}

func newBuilder(in *types.Interner) (*Builder, *SignatureCache) {
	cache := NewSignatureCache(in, DefaultRuntime)
	return NewBuilder(in, DefaultRuntime, cache), cache
}

// unitOf wraps stmts in a single static method of one class.
func unitOf(in *types.Interner, stmts ...ir.Stmt) *ir.Unit {
	owner := in.Class("test.Main")
	fn := &ir.Func{
		Method: &symbols.Method{Name: "run", Owner: owner, Result: in.Builtins().Void, Flags: symbols.MethodStatic},
		Body:   &ir.Block{Stmts: stmts},
	}
	return &ir.Unit{
		Name:     "Main",
		Interner: in,
		Types:    []*ir.TypeDecl{{Name: "Main", Kind: ir.TypeDeclClass, Type: owner, Funcs: []*ir.Func{fn}}},
	}
}

func letStmt(name string, value *ir.Expr) ir.Stmt {
	return ir.Stmt{Kind: ir.StmtLet, Data: ir.LetData{Name: name, Type: value.Type, Value: value}}
}

func exprStmt(e *ir.Expr) ir.Stmt {
	return ir.Stmt{Kind: ir.StmtExpr, Data: ir.ExprStmtData{Expr: e}}
}
