package ir

import (
	"jlower/internal/source"
	"jlower/internal/symbols"
	"jlower/internal/types"
)

// StmtKind enumerates statement kinds.
type StmtKind uint8

const (
	// StmtLet represents a local variable declaration.
	StmtLet StmtKind = iota
	// StmtExpr represents an expression statement.
	StmtExpr
	// StmtAssign represents assignment (lhs = rhs).
	StmtAssign
	// StmtReturn represents return statement.
	StmtReturn
	// StmtIf represents if/else statement.
	StmtIf
	// StmtWhile represents while loop.
	StmtWhile
	// StmtBlock represents a nested block.
	StmtBlock
	// StmtThisCall represents this(...) constructor delegation.
	StmtThisCall
	// StmtSuperCall represents super(...) constructor delegation.
	StmtSuperCall
)

// String returns a human-readable name for the statement kind.
func (k StmtKind) String() string {
	switch k {
	case StmtLet:
		return "Let"
	case StmtExpr:
		return "Expr"
	case StmtAssign:
		return "Assign"
	case StmtReturn:
		return "Return"
	case StmtIf:
		return "If"
	case StmtWhile:
		return "While"
	case StmtBlock:
		return "Block"
	case StmtThisCall:
		return "ThisCall"
	case StmtSuperCall:
		return "SuperCall"
	default:
		return "Unknown"
	}
}

// Stmt represents a statement.
type Stmt struct {
	Kind StmtKind
	Span source.Span
	Data StmtData // kind-specific payload
}

// StmtData is the interface for statement-specific data.
type StmtData interface {
	stmtData()
}

// LetData holds data for StmtLet.
type LetData struct {
	Name  string
	Type  types.TypeID
	Value *Expr // nil without initializer
}

func (LetData) stmtData() {}

// ExprStmtData holds data for StmtExpr.
type ExprStmtData struct {
	Expr *Expr
}

func (ExprStmtData) stmtData() {}

// AssignData holds data for StmtAssign.
type AssignData struct {
	Target *Expr
	Value  *Expr
}

func (AssignData) stmtData() {}

// ReturnData holds data for StmtReturn.
type ReturnData struct {
	Value *Expr // nil for bare return
}

func (ReturnData) stmtData() {}

// IfStmtData holds data for StmtIf.
type IfStmtData struct {
	Cond *Expr
	Then *Block
	Else *Block
}

func (IfStmtData) stmtData() {}

// WhileData holds data for StmtWhile.
type WhileData struct {
	Cond *Expr
	Body *Block
}

func (WhileData) stmtData() {}

// BlockStmtData holds data for StmtBlock.
type BlockStmtData struct {
	Block *Block
}

func (BlockStmtData) stmtData() {}

// CtorCallData holds data for StmtThisCall and StmtSuperCall.
type CtorCallData struct {
	Outer  *Expr // qualifying outer instance for inner-class super calls
	Method *symbols.Method
	Args   []*Expr
}

func (CtorCallData) stmtData() {}

// Block is a sequence of statements.
type Block struct {
	Stmts []Stmt
	Span  source.Span
}
