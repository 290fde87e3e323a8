package arrays

import (
	"context"
	"errors"
	"fmt"

	"jlower/internal/ir"
	"jlower/internal/source"
	"jlower/internal/symbols"
	"jlower/internal/trace"
	"jlower/internal/types"
)

// Options configures a Pass.
type Options struct {
	Runtime Runtime        // zero value means DefaultRuntime
	Oracle  symbols.Oracle // nil means symbols.DeclOracle
	Tracer  trace.Tracer   // nil means the tracer carried by the Run context
}

// Stats counts the rewrites a Pass performed.
type Stats struct {
	Initializers int // {..} and new T[]{..}
	Lengths      int // new T[n]
	Dimensions   int // new T[n][m]...
	Varargs      int // call sites whose trailing arguments were packed
}

// Pass lowers every array construction and variable-arity call in a unit.
// A Pass owns a SignatureCache and so belongs to the unit whose interner it
// was created with.
type Pass struct {
	in       *types.Interner
	rt       Runtime
	cache    *SignatureCache
	builder  *Builder
	expander *Expander
	tracer   trace.Tracer
	span     uint64
	stats    Stats
}

// NewPass creates a pass over units interned in in.
func NewPass(in *types.Interner, opts Options) *Pass {
	rt := opts.Runtime
	if rt.Prefix == "" {
		rt = DefaultRuntime
	}
	cache := NewSignatureCache(in, rt)
	builder := NewBuilder(in, rt, cache)
	p := &Pass{
		in:       in,
		rt:       rt,
		cache:    cache,
		builder:  builder,
		expander: NewExpander(in, opts.Oracle, builder),
		tracer:   opts.Tracer,
	}
	cache.OnCreate(p.signatureCreated)
	return p
}

// Signatures lists every synthesized constructor, ordered by shape then kind.
func (p *Pass) Signatures() []*Signature {
	return p.cache.Signatures()
}

// Cache exposes the pass's signature cache.
func (p *Pass) Cache() *SignatureCache {
	return p.cache
}

// Stats reports rewrite counts accumulated across Run calls.
func (p *Pass) Stats() Stats {
	return p.stats
}

// Run rewrites u in place. Children are rewritten before their parents, so an
// enclosing rewrite only ever copies already-lowered subtrees. The first
// invariant violation aborts the walk and is returned.
func (p *Pass) Run(ctx context.Context, u *ir.Unit) (err error) {
	if u == nil {
		return nil
	}
	if u.Interner != nil && u.Interner != p.in {
		return fmt.Errorf("arrays: unit %s uses a different type interner", u.Name)
	}
	if p.tracer == nil {
		p.tracer = trace.FromContext(ctx)
	}
	span := trace.Begin(p.tracer, trace.ScopePass, "arrays", trace.CurrentSpan(ctx)).
		WithExtra("unit", u.Name)
	p.span = span.ID()
	defer func() {
		if err != nil {
			trace.Fail(p.tracer, "arrays", err, p.span)
		}
		span.WithExtra("signatures", fmt.Sprint(p.cache.Len()))
		span.End("")
	}()

	for _, td := range u.Types {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := p.rewriteTypeDecl(td); err != nil {
			return fmt.Errorf("%s.%s: %w", u.Name, td.Name, err)
		}
	}
	return nil
}

func (p *Pass) signatureCreated(sig *Signature) {
	trace.Point(p.tracer, trace.ScopeNode, "signature", sig.Declare(), p.span)
}

func (p *Pass) rewriteTypeDecl(td *ir.TypeDecl) error {
	if td == nil {
		return nil
	}
	for i := range td.Fields {
		init, err := p.rewriteExpr(td.Fields[i].Init)
		if err != nil {
			return err
		}
		td.Fields[i].Init = init
	}
	for i := range td.EnumConstants {
		ec := &td.EnumConstants[i]
		args, err := p.rewriteArgs(ec.Method, ec.Args, ec.Span)
		if err != nil {
			return err
		}
		ec.Args = args
	}
	for _, fn := range td.Funcs {
		if fn == nil {
			continue
		}
		if err := p.rewriteBlock(fn.Body); err != nil {
			return fmt.Errorf("%s: %w", fn.Name(), err)
		}
	}
	return nil
}

func (p *Pass) rewriteBlock(b *ir.Block) error {
	if b == nil {
		return nil
	}
	for i := range b.Stmts {
		if err := p.rewriteStmt(&b.Stmts[i]); err != nil {
			return err
		}
	}
	return nil
}

func (p *Pass) rewriteStmt(st *ir.Stmt) error {
	var err error
	switch data := st.Data.(type) {
	case ir.LetData:
		if data.Value, err = p.rewriteExpr(data.Value); err != nil {
			return err
		}
		st.Data = data
	case ir.ExprStmtData:
		if data.Expr, err = p.rewriteExpr(data.Expr); err != nil {
			return err
		}
		st.Data = data
	case ir.AssignData:
		if data.Target, err = p.rewriteExpr(data.Target); err != nil {
			return err
		}
		if data.Value, err = p.rewriteExpr(data.Value); err != nil {
			return err
		}
		st.Data = data
	case ir.ReturnData:
		if data.Value, err = p.rewriteExpr(data.Value); err != nil {
			return err
		}
		st.Data = data
	case ir.IfStmtData:
		if data.Cond, err = p.rewriteExpr(data.Cond); err != nil {
			return err
		}
		if err := p.rewriteBlock(data.Then); err != nil {
			return err
		}
		if err := p.rewriteBlock(data.Else); err != nil {
			return err
		}
		st.Data = data
	case ir.WhileData:
		if data.Cond, err = p.rewriteExpr(data.Cond); err != nil {
			return err
		}
		if err := p.rewriteBlock(data.Body); err != nil {
			return err
		}
		st.Data = data
	case ir.BlockStmtData:
		if err := p.rewriteBlock(data.Block); err != nil {
			return err
		}
	case ir.CtorCallData:
		if data.Outer, err = p.rewriteExpr(data.Outer); err != nil {
			return err
		}
		if data.Args, err = p.rewriteArgs(data.Method, data.Args, st.Span); err != nil {
			return err
		}
		st.Data = data
	}
	return nil
}

// rewriteExpr returns the lowered form of e. Unchanged nodes are returned as
// themselves with their children updated.
func (p *Pass) rewriteExpr(e *ir.Expr) (*ir.Expr, error) {
	if e == nil {
		return nil, nil
	}
	var err error
	switch data := e.Data.(type) {
	case ir.FieldAccessData:
		if data.Object, err = p.rewriteExpr(data.Object); err != nil {
			return nil, err
		}
		e.Data = data
	case ir.BinaryOpData:
		if data.Left, err = p.rewriteExpr(data.Left); err != nil {
			return nil, err
		}
		if data.Right, err = p.rewriteExpr(data.Right); err != nil {
			return nil, err
		}
		e.Data = data
	case ir.CastData:
		if data.Value, err = p.rewriteExpr(data.Value); err != nil {
			return nil, err
		}
		e.Data = data
	case ir.IndexData:
		if data.Object, err = p.rewriteExpr(data.Object); err != nil {
			return nil, err
		}
		if data.Index, err = p.rewriteExpr(data.Index); err != nil {
			return nil, err
		}
		e.Data = data
	case ir.ConditionalData:
		if data.Cond, err = p.rewriteExpr(data.Cond); err != nil {
			return nil, err
		}
		if data.Then, err = p.rewriteExpr(data.Then); err != nil {
			return nil, err
		}
		if data.Else, err = p.rewriteExpr(data.Else); err != nil {
			return nil, err
		}
		e.Data = data
	case ir.ArrayCreationData:
		return p.lowerCreation(e, data)
	case ir.ArrayInitData:
		if data.Native {
			return e, nil
		}
		if data.Elements, err = p.rewriteExprs(data.Elements); err != nil {
			return nil, err
		}
		e.Data = data
		p.stats.Initializers++
		return p.builder.BuildInit(e.Type, data.Elements, e.Span)
	case ir.CallData:
		if data.Receiver, err = p.rewriteExpr(data.Receiver); err != nil {
			return nil, err
		}
		if data.Args, err = p.rewriteArgs(data.Method, data.Args, e.Span); err != nil {
			return nil, err
		}
		e.Data = data
	}
	return e, nil
}

func (p *Pass) lowerCreation(e *ir.Expr, data ir.ArrayCreationData) (*ir.Expr, error) {
	var err error
	if data.Dims, err = p.rewriteExprs(data.Dims); err != nil {
		return nil, err
	}
	if data.Init != nil {
		// The initializer node itself belongs to the creation; only its
		// elements are lowered here.
		init, ok := data.Init.Data.(ir.ArrayInitData)
		if !ok {
			return nil, invariant("initializer", data.Init.Span,
				errors.New("array creation initializer is not a brace initializer"))
		}
		if init.Elements, err = p.rewriteExprs(init.Elements); err != nil {
			return nil, err
		}
		data.Init.Data = init
	}
	e.Data = data
	switch {
	case data.Init != nil:
		p.stats.Initializers++
	case len(data.Dims) == 1:
		p.stats.Lengths++
	default:
		p.stats.Dimensions++
	}
	return p.builder.Build(e)
}

func (p *Pass) rewriteExprs(list []*ir.Expr) ([]*ir.Expr, error) {
	for i, e := range list {
		out, err := p.rewriteExpr(e)
		if err != nil {
			return nil, err
		}
		list[i] = out
	}
	return list, nil
}

// rewriteArgs lowers the arguments of a call-shaped site, then packs its
// variable-arity tail.
func (p *Pass) rewriteArgs(m *symbols.Method, args []*ir.Expr, span source.Span) ([]*ir.Expr, error) {
	args, err := p.rewriteExprs(args)
	if err != nil {
		return nil, err
	}
	out, err := p.expander.Expand(m, args, span)
	if err != nil {
		return nil, err
	}
	if len(out) != len(args) || (len(out) > 0 && out[len(out)-1] != args[len(args)-1]) {
		p.stats.Varargs++
	}
	return out, nil
}
