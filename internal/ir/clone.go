package ir

import "slices"

// CloneExpr deep-copies an expression subtree. Every node in the result is a
// fresh instance; resolved methods and type IDs are shared.
func CloneExpr(e *Expr) *Expr {
	if e == nil {
		return nil
	}
	out := *e
	switch e.Kind {
	case ExprLiteral, ExprTypeLit, ExprVarRef:
		// value payloads
	case ExprFieldAccess:
		data, ok := e.Data.(FieldAccessData)
		if !ok {
			break
		}
		data.Object = CloneExpr(data.Object)
		out.Data = data
	case ExprBinaryOp:
		data, ok := e.Data.(BinaryOpData)
		if !ok {
			break
		}
		data.Left = CloneExpr(data.Left)
		data.Right = CloneExpr(data.Right)
		out.Data = data
	case ExprCast:
		data, ok := e.Data.(CastData)
		if !ok {
			break
		}
		data.Value = CloneExpr(data.Value)
		out.Data = data
	case ExprIndex:
		data, ok := e.Data.(IndexData)
		if !ok {
			break
		}
		data.Object = CloneExpr(data.Object)
		data.Index = CloneExpr(data.Index)
		out.Data = data
	case ExprConditional:
		data, ok := e.Data.(ConditionalData)
		if !ok {
			break
		}
		data.Cond = CloneExpr(data.Cond)
		data.Then = CloneExpr(data.Then)
		data.Else = CloneExpr(data.Else)
		out.Data = data
	case ExprArrayCreation:
		data, ok := e.Data.(ArrayCreationData)
		if !ok {
			break
		}
		data.Dims = CloneExprs(data.Dims)
		data.Init = CloneExpr(data.Init)
		out.Data = data
	case ExprArrayInit:
		data, ok := e.Data.(ArrayInitData)
		if !ok {
			break
		}
		data.Elements = CloneExprs(data.Elements)
		out.Data = data
	case ExprCall, ExprNew, ExprSuperCall:
		data, ok := e.Data.(CallData)
		if !ok {
			break
		}
		data.Receiver = CloneExpr(data.Receiver)
		data.Args = CloneExprs(data.Args)
		out.Data = data
	default:
	}
	return &out
}

// CloneExprs deep-copies every expression in list into a new slice.
func CloneExprs(list []*Expr) []*Expr {
	if len(list) == 0 {
		return nil
	}
	out := slices.Clone(list)
	for i := range out {
		out[i] = CloneExpr(out[i])
	}
	return out
}
