//nolint:errcheck // Type assertions are checked by construction
package ir

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"jlower/internal/types"
)

// Printer dumps a unit in an indented S-expression form.
type Printer struct {
	w      io.Writer
	in     *types.Interner
	indent int
	err    error
}

// NewPrinter creates a printer resolving type names through in.
func NewPrinter(w io.Writer, in *types.Interner) *Printer {
	return &Printer{w: w, in: in}
}

// Fprint writes u to w.
func Fprint(w io.Writer, u *Unit) error {
	return NewPrinter(w, u.Interner).PrintUnit(u)
}

// SprintExpr renders one expression on a single line.
func SprintExpr(in *types.Interner, e *Expr) string {
	var sb strings.Builder
	p := NewPrinter(&sb, in)
	p.printExpr(e)
	return sb.String()
}

// PrintUnit prints a complete unit.
func (p *Printer) PrintUnit(u *Unit) error {
	p.printf("unit %s\n", u.Name)
	for _, td := range u.Types {
		p.printType(td)
	}
	return p.err
}

func (p *Printer) printType(td *TypeDecl) {
	p.printf("%s %s\n", td.Kind, p.typeStr(td.Type))
	p.indent++
	for _, ec := range td.EnumConstants {
		p.line()
		p.printf("constant %s", ec.Name)
		p.printArgs(ec.Args)
		p.printf("\n")
	}
	for _, f := range td.Fields {
		p.line()
		p.printf("field %s: %s", f.Name, p.typeStr(f.Type))
		if f.Init != nil {
			p.printf(" = ")
			p.printExpr(f.Init)
		}
		p.printf("\n")
	}
	for _, fn := range td.Funcs {
		p.line()
		p.printf("func %s(", fn.Name())
		for i, prm := range fn.Params {
			if i > 0 {
				p.printf(", ")
			}
			p.printf("%s: %s", prm.Name, p.typeStr(prm.Type))
		}
		p.printf(")\n")
		if fn.Body != nil {
			p.printBlock(fn.Body)
		}
	}
	p.indent--
}

func (p *Printer) printBlock(b *Block) {
	p.indent++
	for i := range b.Stmts {
		p.printStmt(&b.Stmts[i])
	}
	p.indent--
}

func (p *Printer) printStmt(st *Stmt) {
	p.line()
	switch st.Kind {
	case StmtLet:
		data := st.Data.(LetData)
		p.printf("let %s: %s", data.Name, p.typeStr(data.Type))
		if data.Value != nil {
			p.printf(" = ")
			p.printExpr(data.Value)
		}
	case StmtExpr:
		p.printExpr(st.Data.(ExprStmtData).Expr)
	case StmtAssign:
		data := st.Data.(AssignData)
		p.printExpr(data.Target)
		p.printf(" = ")
		p.printExpr(data.Value)
	case StmtReturn:
		p.printf("return")
		if v := st.Data.(ReturnData).Value; v != nil {
			p.printf(" ")
			p.printExpr(v)
		}
	case StmtIf:
		data := st.Data.(IfStmtData)
		p.printf("if ")
		p.printExpr(data.Cond)
		p.printf("\n")
		p.printBlock(data.Then)
		if data.Else != nil {
			p.line()
			p.printf("else\n")
			p.printBlock(data.Else)
		}
		return
	case StmtWhile:
		data := st.Data.(WhileData)
		p.printf("while ")
		p.printExpr(data.Cond)
		p.printf("\n")
		p.printBlock(data.Body)
		return
	case StmtBlock:
		p.printf("block\n")
		p.printBlock(st.Data.(BlockStmtData).Block)
		return
	case StmtThisCall, StmtSuperCall:
		data := st.Data.(CtorCallData)
		if data.Outer != nil {
			p.printExpr(data.Outer)
			p.printf(".")
		}
		if st.Kind == StmtThisCall {
			p.printf("this")
		} else {
			p.printf("super")
		}
		p.printArgs(data.Args)
	default:
		p.printf("<%s>", st.Kind)
	}
	p.printf("\n")
}

func (p *Printer) printExpr(e *Expr) {
	if e == nil {
		p.printf("<nil>")
		return
	}
	switch e.Kind {
	case ExprLiteral:
		data := e.Data.(LiteralData)
		switch data.Kind {
		case LiteralString:
			p.printf("%s", strconv.Quote(data.StringValue))
		case LiteralBool:
			p.printf("%t", data.BoolValue)
		case LiteralNull:
			p.printf("null")
		default:
			p.printf("%s", data.Text)
		}
	case ExprTypeLit:
		p.printf("(class %s)", p.typeStr(e.Data.(TypeLitData).Target))
	case ExprVarRef:
		p.printf("%s", e.Data.(VarRefData).Name)
	case ExprFieldAccess:
		data := e.Data.(FieldAccessData)
		p.printf("(. ")
		p.printExpr(data.Object)
		p.printf(" %s)", data.Name)
	case ExprBinaryOp:
		data := e.Data.(BinaryOpData)
		p.printf("(%s ", data.Op)
		p.printExpr(data.Left)
		p.printf(" ")
		p.printExpr(data.Right)
		p.printf(")")
	case ExprCast:
		p.printf("(cast %s ", p.typeStr(e.Type))
		p.printExpr(e.Data.(CastData).Value)
		p.printf(")")
	case ExprIndex:
		data := e.Data.(IndexData)
		p.printf("(index ")
		p.printExpr(data.Object)
		p.printf(" ")
		p.printExpr(data.Index)
		p.printf(")")
	case ExprConditional:
		data := e.Data.(ConditionalData)
		p.printf("(? ")
		p.printExpr(data.Cond)
		p.printf(" ")
		p.printExpr(data.Then)
		p.printf(" ")
		p.printExpr(data.Else)
		p.printf(")")
	case ExprArrayCreation:
		data := e.Data.(ArrayCreationData)
		p.printf("(new-array %s", p.typeStr(e.Type))
		for _, d := range data.Dims {
			p.printf(" [")
			p.printExpr(d)
			p.printf("]")
		}
		if data.Init != nil {
			p.printf(" ")
			p.printExpr(data.Init)
		}
		p.printf(")")
	case ExprArrayInit:
		data := e.Data.(ArrayInitData)
		if data.Native {
			p.printf("(native %s", p.typeStr(e.Type))
			for _, el := range data.Elements {
				p.printf(" ")
				p.printExpr(el)
			}
			p.printf(")")
			return
		}
		p.printf("{")
		for i, el := range data.Elements {
			if i > 0 {
				p.printf(" ")
			}
			p.printExpr(el)
		}
		p.printf("}")
	case ExprCall, ExprNew, ExprSuperCall:
		p.printCall(e)
	default:
		p.printf("<%s>", e.Kind)
	}
}

func (p *Printer) printCall(e *Expr) {
	data := e.Data.(CallData)
	switch e.Kind {
	case ExprNew:
		p.printf("(new %s", p.typeStr(e.Type))
	case ExprSuperCall:
		name := "<unresolved>"
		if data.Method != nil {
			name = data.Method.Name
		}
		p.printf("(super.%s", name)
	default:
		p.printf("(call ")
		if data.Receiver != nil {
			p.printExpr(data.Receiver)
			p.printf(" ")
		}
		if data.Method != nil && data.Method.Selector != "" {
			p.printf("%s %s", p.typeStr(data.Method.Owner), data.Method.Selector)
		} else if data.Method != nil {
			p.printf("%s", data.Method.Name)
		}
	}
	for _, a := range data.Args {
		p.printf(" ")
		p.printExpr(a)
	}
	p.printf(")")
}

func (p *Printer) printArgs(args []*Expr) {
	p.printf("(")
	for i, a := range args {
		if i > 0 {
			p.printf(", ")
		}
		p.printExpr(a)
	}
	p.printf(")")
}

func (p *Printer) typeStr(id types.TypeID) string {
	if p.in == nil {
		return fmt.Sprintf("type#%d", id)
	}
	return p.in.String(id)
}

func (p *Printer) line() {
	p.printf("%s", strings.Repeat("  ", p.indent))
}

func (p *Printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}
