package ir

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"fortio.org/safecast"
	"github.com/Masterminds/semver/v3"
	"github.com/vmihailenco/msgpack/v5"

	"jlower/internal/source"
	"jlower/internal/symbols"
	"jlower/internal/types"
)

// FormatVersion is written into every encoded unit.
const FormatVersion = "1.1.0"

// formatRange lists the unit formats this reader understands.
const formatRange = ">= 1.0.0, < 2.0.0"

// ErrMalformedUnit reports an encoded unit that does not describe a valid tree.
var ErrMalformedUnit = errors.New("malformed unit")

var formatConstraint = func() *semver.Constraints {
	c, err := semver.NewConstraint(formatRange)
	if err != nil {
		panic(err)
	}
	return c
}()

const noRef int32 = -1

type unitFile struct {
	Format  string          `msgpack:"format"`
	Name    string          `msgpack:"name"`
	Path    string          `msgpack:"path,omitempty"`
	Types   []types.Type    `msgpack:"types"`
	Methods []wireMethod    `msgpack:"methods"`
	Decls   []*wireTypeDecl `msgpack:"decls"`
}

type wireMethod struct {
	Name     string          `msgpack:"n"`
	Owner    types.TypeID    `msgpack:"o,omitempty"`
	Params   []symbols.Param `msgpack:"p,omitempty"`
	Result   types.TypeID    `msgpack:"r,omitempty"`
	Flags    uint16          `msgpack:"f,omitempty"`
	Decl     int32           `msgpack:"d"`
	Selector string          `msgpack:"s,omitempty"`
}

type wireTypeDecl struct {
	Name   string          `msgpack:"n"`
	Kind   uint8           `msgpack:"k"`
	Type   types.TypeID    `msgpack:"t"`
	Span   source.Span     `msgpack:"sp"`
	Fields []wireField     `msgpack:"fields,omitempty"`
	Consts []wireEnumConst `msgpack:"consts,omitempty"`
	Funcs  []wireFunc      `msgpack:"funcs,omitempty"`
}

type wireField struct {
	Name string       `msgpack:"n"`
	Type types.TypeID `msgpack:"t"`
	Init *wireExpr    `msgpack:"i,omitempty"`
	Span source.Span  `msgpack:"sp"`
}

type wireEnumConst struct {
	Name   string      `msgpack:"n"`
	Method int32       `msgpack:"m"`
	Args   []*wireExpr `msgpack:"a,omitempty"`
	Span   source.Span `msgpack:"sp"`
}

type wireFunc struct {
	Method int32           `msgpack:"m"`
	Params []symbols.Param `msgpack:"p,omitempty"`
	Body   *wireBlock      `msgpack:"b,omitempty"`
	Span   source.Span     `msgpack:"sp"`
}

type wireBlock struct {
	Stmts []wireStmt  `msgpack:"s,omitempty"`
	Span  source.Span `msgpack:"sp"`
}

// wireStmt stores children positionally; the layout per kind mirrors the
// field order of the matching StmtData.
type wireStmt struct {
	Kind   uint8        `msgpack:"k"`
	Span   source.Span  `msgpack:"sp"`
	Name   string       `msgpack:"n,omitempty"`
	Type   types.TypeID `msgpack:"t,omitempty"`
	Method int32        `msgpack:"m"`
	Exprs  []*wireExpr  `msgpack:"e,omitempty"`
	Blocks []*wireBlock `msgpack:"b,omitempty"`
}

// wireExpr stores children positionally; for array creations the first Count
// children are dimensions and the optional last one is the initializer.
type wireExpr struct {
	Kind   uint8        `msgpack:"k"`
	Type   types.TypeID `msgpack:"t"`
	Span   source.Span  `msgpack:"sp"`
	Lit    *LiteralData `msgpack:"l,omitempty"`
	Name   string       `msgpack:"n,omitempty"`
	Target types.TypeID `msgpack:"tt,omitempty"`
	Native bool         `msgpack:"nat,omitempty"`
	Method int32        `msgpack:"m"`
	Count  int          `msgpack:"c,omitempty"`
	Kids   []*wireExpr  `msgpack:"x,omitempty"`
}

// EncodeUnit writes u in the msgpack unit format.
func EncodeUnit(w io.Writer, u *Unit) error {
	if u == nil || u.Interner == nil {
		return errors.New("encode unit: missing unit or interner")
	}
	enc := &unitEncoder{index: make(map[*symbols.Method]int32, 16)}
	file := unitFile{
		Format: FormatVersion,
		Name:   u.Name,
		Path:   u.Path,
		Types:  u.Interner.Table(),
		Decls:  make([]*wireTypeDecl, 0, len(u.Types)),
	}
	for _, td := range u.Types {
		wd, err := enc.typeDecl(td)
		if err != nil {
			return fmt.Errorf("encode unit %s: %w", u.Name, err)
		}
		file.Decls = append(file.Decls, wd)
	}
	file.Methods = enc.methods
	return msgpack.NewEncoder(w).Encode(&file)
}

// MarshalUnit encodes u into a byte slice.
func MarshalUnit(u *Unit) ([]byte, error) {
	var buf bytes.Buffer
	if err := EncodeUnit(&buf, u); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecodeUnit reads a unit written by EncodeUnit. Units whose format falls
// outside the supported range are rejected before any tree is built.
func DecodeUnit(r io.Reader) (*Unit, error) {
	var file unitFile
	if err := msgpack.NewDecoder(r).Decode(&file); err != nil {
		return nil, fmt.Errorf("decode unit: %w", err)
	}
	v, err := semver.NewVersion(file.Format)
	if err != nil {
		return nil, fmt.Errorf("decode unit: bad format version %q: %w", file.Format, err)
	}
	if !formatConstraint.Check(v) {
		return nil, fmt.Errorf("decode unit: format %s not in supported range %s", v, formatRange)
	}
	in, err := types.Restore(file.Types)
	if err != nil {
		return nil, fmt.Errorf("decode unit: %w: %w", ErrMalformedUnit, err)
	}
	dec := &unitDecoder{in: in}
	if err := dec.loadMethods(file.Methods); err != nil {
		return nil, fmt.Errorf("decode unit %s: %w", file.Name, err)
	}
	u := &Unit{Name: file.Name, Path: file.Path, Interner: in}
	for _, wd := range file.Decls {
		td, err := dec.typeDecl(wd)
		if err != nil {
			return nil, fmt.Errorf("decode unit %s: %w", file.Name, err)
		}
		u.Types = append(u.Types, td)
	}
	return u, nil
}

// UnmarshalUnit decodes a unit from data.
func UnmarshalUnit(data []byte) (*Unit, error) {
	return DecodeUnit(bytes.NewReader(data))
}

type unitEncoder struct {
	methods []wireMethod
	index   map[*symbols.Method]int32
}

func (e *unitEncoder) method(m *symbols.Method) (int32, error) {
	if m == nil {
		return noRef, nil
	}
	if idx, ok := e.index[m]; ok {
		return idx, nil
	}
	idx, err := safecast.Conv[int32](len(e.methods))
	if err != nil {
		return noRef, fmt.Errorf("method table overflow: %w", err)
	}
	e.index[m] = idx
	e.methods = append(e.methods, wireMethod{
		Name:     m.Name,
		Owner:    m.Owner,
		Params:   m.Params,
		Result:   m.Result,
		Flags:    uint16(m.Flags),
		Decl:     noRef,
		Selector: m.Selector,
	})
	if m.Decl != nil {
		decl, err := e.method(m.Decl)
		if err != nil {
			return noRef, err
		}
		e.methods[idx].Decl = decl
	}
	return idx, nil
}

func (e *unitEncoder) typeDecl(td *TypeDecl) (*wireTypeDecl, error) {
	out := &wireTypeDecl{Name: td.Name, Kind: uint8(td.Kind), Type: td.Type, Span: td.Span}
	for _, f := range td.Fields {
		init, err := e.expr(f.Init)
		if err != nil {
			return nil, err
		}
		out.Fields = append(out.Fields, wireField{Name: f.Name, Type: f.Type, Init: init, Span: f.Span})
	}
	for _, ec := range td.EnumConstants {
		m, err := e.method(ec.Method)
		if err != nil {
			return nil, err
		}
		args, err := e.exprs(ec.Args)
		if err != nil {
			return nil, err
		}
		out.Consts = append(out.Consts, wireEnumConst{Name: ec.Name, Method: m, Args: args, Span: ec.Span})
	}
	for _, fn := range td.Funcs {
		m, err := e.method(fn.Method)
		if err != nil {
			return nil, err
		}
		body, err := e.block(fn.Body)
		if err != nil {
			return nil, err
		}
		out.Funcs = append(out.Funcs, wireFunc{Method: m, Params: fn.Params, Body: body, Span: fn.Span})
	}
	return out, nil
}

func (e *unitEncoder) block(b *Block) (*wireBlock, error) {
	if b == nil {
		return nil, nil
	}
	out := &wireBlock{Span: b.Span, Stmts: make([]wireStmt, 0, len(b.Stmts))}
	for i := range b.Stmts {
		ws, err := e.stmt(&b.Stmts[i])
		if err != nil {
			return nil, err
		}
		out.Stmts = append(out.Stmts, ws)
	}
	return out, nil
}

func (e *unitEncoder) stmt(st *Stmt) (wireStmt, error) {
	out := wireStmt{Kind: uint8(st.Kind), Span: st.Span, Method: noRef}
	var (
		exprs  []*Expr
		blocks []*Block
	)
	switch data := st.Data.(type) {
	case LetData:
		out.Name, out.Type = data.Name, data.Type
		exprs = []*Expr{data.Value}
	case ExprStmtData:
		exprs = []*Expr{data.Expr}
	case AssignData:
		exprs = []*Expr{data.Target, data.Value}
	case ReturnData:
		exprs = []*Expr{data.Value}
	case IfStmtData:
		exprs = []*Expr{data.Cond}
		blocks = []*Block{data.Then, data.Else}
	case WhileData:
		exprs = []*Expr{data.Cond}
		blocks = []*Block{data.Body}
	case BlockStmtData:
		blocks = []*Block{data.Block}
	case CtorCallData:
		m, err := e.method(data.Method)
		if err != nil {
			return out, err
		}
		out.Method = m
		exprs = append([]*Expr{data.Outer}, data.Args...)
	default:
		return out, fmt.Errorf("%w: statement %s has payload %T", ErrMalformedUnit, st.Kind, st.Data)
	}
	var err error
	if out.Exprs, err = e.exprs(exprs); err != nil {
		return out, err
	}
	for _, b := range blocks {
		wb, err := e.block(b)
		if err != nil {
			return out, err
		}
		out.Blocks = append(out.Blocks, wb)
	}
	return out, nil
}

func (e *unitEncoder) exprs(list []*Expr) ([]*wireExpr, error) {
	if len(list) == 0 {
		return nil, nil
	}
	out := make([]*wireExpr, len(list))
	for i, x := range list {
		we, err := e.expr(x)
		if err != nil {
			return nil, err
		}
		out[i] = we
	}
	return out, nil
}

func (e *unitEncoder) expr(x *Expr) (*wireExpr, error) {
	if x == nil {
		return nil, nil
	}
	out := &wireExpr{Kind: uint8(x.Kind), Type: x.Type, Span: x.Span, Method: noRef}
	var kids []*Expr
	switch data := x.Data.(type) {
	case LiteralData:
		lit := data
		out.Lit = &lit
	case TypeLitData:
		out.Target = data.Target
	case VarRefData:
		out.Name = data.Name
	case FieldAccessData:
		out.Name = data.Name
		kids = []*Expr{data.Object}
	case BinaryOpData:
		out.Name = data.Op
		kids = []*Expr{data.Left, data.Right}
	case CastData:
		kids = []*Expr{data.Value}
	case IndexData:
		kids = []*Expr{data.Object, data.Index}
	case ConditionalData:
		kids = []*Expr{data.Cond, data.Then, data.Else}
	case ArrayCreationData:
		out.Count = len(data.Dims)
		kids = append(kids, data.Dims...)
		if data.Init != nil {
			kids = append(kids, data.Init)
		}
	case ArrayInitData:
		out.Native = data.Native
		kids = data.Elements
	case CallData:
		m, err := e.method(data.Method)
		if err != nil {
			return nil, err
		}
		out.Method = m
		kids = append([]*Expr{data.Receiver}, data.Args...)
	default:
		return nil, fmt.Errorf("%w: expression %s has payload %T", ErrMalformedUnit, x.Kind, x.Data)
	}
	var err error
	if out.Kids, err = e.exprs(kids); err != nil {
		return nil, err
	}
	return out, nil
}

type unitDecoder struct {
	in      *types.Interner
	methods []*symbols.Method
}

func (d *unitDecoder) checkType(id types.TypeID) error {
	if id == types.NoTypeID {
		return nil
	}
	if _, ok := d.in.Lookup(id); !ok {
		return fmt.Errorf("%w: unknown type id %d", ErrMalformedUnit, id)
	}
	return nil
}

func (d *unitDecoder) loadMethods(wms []wireMethod) error {
	d.methods = make([]*symbols.Method, len(wms))
	for i := range wms {
		d.methods[i] = &symbols.Method{}
	}
	for i, wm := range wms {
		m := d.methods[i]
		m.Name = wm.Name
		m.Owner = wm.Owner
		m.Params = wm.Params
		m.Result = wm.Result
		m.Flags = symbols.MethodFlags(wm.Flags)
		m.Selector = wm.Selector
		if err := d.checkType(m.Owner); err != nil {
			return err
		}
		if err := d.checkType(m.Result); err != nil {
			return err
		}
		for _, p := range m.Params {
			if err := d.checkType(p.Type); err != nil {
				return err
			}
		}
		decl, err := d.method(wm.Decl)
		if err != nil {
			return err
		}
		m.Decl = decl
	}
	return nil
}

func (d *unitDecoder) method(idx int32) (*symbols.Method, error) {
	if idx == noRef {
		return nil, nil
	}
	if idx < 0 || int(idx) >= len(d.methods) {
		return nil, fmt.Errorf("%w: method index %d out of range", ErrMalformedUnit, idx)
	}
	return d.methods[idx], nil
}

func (d *unitDecoder) typeDecl(wd *wireTypeDecl) (*TypeDecl, error) {
	if wd == nil {
		return nil, fmt.Errorf("%w: nil type declaration", ErrMalformedUnit)
	}
	if err := d.checkType(wd.Type); err != nil {
		return nil, err
	}
	td := &TypeDecl{Name: wd.Name, Kind: TypeDeclKind(wd.Kind), Type: wd.Type, Span: wd.Span}
	for _, wf := range wd.Fields {
		init, err := d.expr(wf.Init)
		if err != nil {
			return nil, err
		}
		td.Fields = append(td.Fields, Field{Name: wf.Name, Type: wf.Type, Init: init, Span: wf.Span})
	}
	for _, wc := range wd.Consts {
		m, err := d.method(wc.Method)
		if err != nil {
			return nil, err
		}
		args, err := d.exprs(wc.Args)
		if err != nil {
			return nil, err
		}
		td.EnumConstants = append(td.EnumConstants, EnumConstant{Name: wc.Name, Method: m, Args: args, Span: wc.Span})
	}
	for _, wf := range wd.Funcs {
		m, err := d.method(wf.Method)
		if err != nil {
			return nil, err
		}
		body, err := d.block(wf.Body)
		if err != nil {
			return nil, err
		}
		td.Funcs = append(td.Funcs, &Func{Method: m, Params: wf.Params, Body: body, Span: wf.Span})
	}
	return td, nil
}

func (d *unitDecoder) block(wb *wireBlock) (*Block, error) {
	if wb == nil {
		return nil, nil
	}
	b := &Block{Span: wb.Span, Stmts: make([]Stmt, 0, len(wb.Stmts))}
	for i := range wb.Stmts {
		st, err := d.stmt(&wb.Stmts[i])
		if err != nil {
			return nil, err
		}
		b.Stmts = append(b.Stmts, st)
	}
	return b, nil
}

func (d *unitDecoder) stmt(ws *wireStmt) (Stmt, error) {
	st := Stmt{Kind: StmtKind(ws.Kind), Span: ws.Span}
	exprs, err := d.exprs(ws.Exprs)
	if err != nil {
		return st, err
	}
	blocks := make([]*Block, len(ws.Blocks))
	for i, wb := range ws.Blocks {
		if blocks[i], err = d.block(wb); err != nil {
			return st, err
		}
	}
	arity := func(ne, nb int) error {
		if len(exprs) != ne || len(blocks) != nb {
			return fmt.Errorf("%w: statement %s has %d exprs and %d blocks", ErrMalformedUnit, st.Kind, len(exprs), len(blocks))
		}
		return nil
	}
	switch st.Kind {
	case StmtLet:
		err = arity(1, 0)
		if err == nil {
			err = d.checkType(ws.Type)
		}
		if err == nil {
			st.Data = LetData{Name: ws.Name, Type: ws.Type, Value: exprs[0]}
		}
	case StmtExpr:
		if err = arity(1, 0); err == nil {
			st.Data = ExprStmtData{Expr: exprs[0]}
		}
	case StmtAssign:
		if err = arity(2, 0); err == nil {
			st.Data = AssignData{Target: exprs[0], Value: exprs[1]}
		}
	case StmtReturn:
		if err = arity(1, 0); err == nil {
			st.Data = ReturnData{Value: exprs[0]}
		}
	case StmtIf:
		if err = arity(1, 2); err == nil {
			st.Data = IfStmtData{Cond: exprs[0], Then: blocks[0], Else: blocks[1]}
		}
	case StmtWhile:
		if err = arity(1, 1); err == nil {
			st.Data = WhileData{Cond: exprs[0], Body: blocks[0]}
		}
	case StmtBlock:
		if err = arity(0, 1); err == nil {
			st.Data = BlockStmtData{Block: blocks[0]}
		}
	case StmtThisCall, StmtSuperCall:
		if len(exprs) == 0 {
			return st, fmt.Errorf("%w: constructor call without outer slot", ErrMalformedUnit)
		}
		m, merr := d.method(ws.Method)
		if merr != nil {
			return st, merr
		}
		st.Data = CtorCallData{Outer: exprs[0], Method: m, Args: trimNil(exprs[1:])}
	default:
		err = fmt.Errorf("%w: unknown statement kind %d", ErrMalformedUnit, ws.Kind)
	}
	return st, err
}

func (d *unitDecoder) exprs(list []*wireExpr) ([]*Expr, error) {
	if len(list) == 0 {
		return nil, nil
	}
	out := make([]*Expr, len(list))
	for i, we := range list {
		x, err := d.expr(we)
		if err != nil {
			return nil, err
		}
		out[i] = x
	}
	return out, nil
}

func (d *unitDecoder) expr(we *wireExpr) (*Expr, error) {
	if we == nil {
		return nil, nil
	}
	if err := d.checkType(we.Type); err != nil {
		return nil, err
	}
	kids, err := d.exprs(we.Kids)
	if err != nil {
		return nil, err
	}
	x := &Expr{Kind: ExprKind(we.Kind), Type: we.Type, Span: we.Span}
	need := func(n int) error {
		if len(kids) != n {
			return fmt.Errorf("%w: %s expects %d children, got %d", ErrMalformedUnit, x.Kind, n, len(kids))
		}
		return nil
	}
	switch x.Kind {
	case ExprLiteral:
		if we.Lit == nil {
			return nil, fmt.Errorf("%w: literal without value", ErrMalformedUnit)
		}
		x.Data = *we.Lit
	case ExprTypeLit:
		if err := d.checkType(we.Target); err != nil {
			return nil, err
		}
		x.Data = TypeLitData{Target: we.Target}
	case ExprVarRef:
		x.Data = VarRefData{Name: we.Name}
	case ExprFieldAccess:
		err = need(1)
		if err == nil {
			x.Data = FieldAccessData{Object: kids[0], Name: we.Name}
		}
	case ExprBinaryOp:
		if err = need(2); err == nil {
			x.Data = BinaryOpData{Op: we.Name, Left: kids[0], Right: kids[1]}
		}
	case ExprCast:
		if err = need(1); err == nil {
			x.Data = CastData{Value: kids[0]}
		}
	case ExprIndex:
		if err = need(2); err == nil {
			x.Data = IndexData{Object: kids[0], Index: kids[1]}
		}
	case ExprConditional:
		if err = need(3); err == nil {
			x.Data = ConditionalData{Cond: kids[0], Then: kids[1], Else: kids[2]}
		}
	case ExprArrayCreation:
		if we.Count < 0 || we.Count > len(kids) || len(kids)-we.Count > 1 {
			return nil, fmt.Errorf("%w: array creation with %d dims and %d children", ErrMalformedUnit, we.Count, len(kids))
		}
		data := ArrayCreationData{Dims: kids[:we.Count:we.Count]}
		if len(kids) > we.Count {
			data.Init = kids[we.Count]
		}
		if len(data.Dims) == 0 {
			data.Dims = nil
		}
		x.Data = data
	case ExprArrayInit:
		x.Data = ArrayInitData{Elements: kids, Native: we.Native}
	case ExprCall, ExprNew, ExprSuperCall:
		if len(kids) == 0 {
			return nil, fmt.Errorf("%w: call without receiver slot", ErrMalformedUnit)
		}
		m, merr := d.method(we.Method)
		if merr != nil {
			return nil, merr
		}
		x.Data = CallData{Receiver: kids[0], Method: m, Args: trimNil(kids[1:])}
	default:
		return nil, fmt.Errorf("%w: unknown expression kind %d", ErrMalformedUnit, we.Kind)
	}
	if err != nil {
		return nil, err
	}
	return x, nil
}

// trimNil normalises an empty argument list to nil.
func trimNil(list []*Expr) []*Expr {
	if len(list) == 0 {
		return nil
	}
	return list
}
