package generate

import (
	"fmt"

	mir "github.com/frittesauce/Eclipse/ir"

	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
)

// genOp generates a single operation into the current block.
func (g *Generator) genOp(op mir.Op) {
	switch v := op.(type) {
	case *mir.Label:
		next := g.fn.NewBlock(v.Name)
		if g.block.Term == nil {
			g.block.NewBr(next)
		}

		g.block = next
	case *mir.Alloca:
		g.locals[v.Dest] = g.block.NewAlloca(g.convType(v.Type))
	case *mir.Store:
		g.block.NewStore(g.genValue(v.Value, g.convType(v.Type)), g.lookupLocal(v.Dest))
	case *mir.Load:
		elemType := g.convType(v.Type)
		g.locals[v.Dest] = g.block.NewLoad(elemType, g.genValue(v.Src, types.NewPointer(elemType)))
	case *mir.Call:
		g.genCall(v)
	case *mir.ElementPtr:
		g.locals[v.Dest] = g.genElementPtr(v)
	case *mir.BinaryOp:
		g.locals[v.Dest] = g.genBinaryOp(v)
	case *mir.Compare:
		typ := g.convType(v.Type)
		lhs, rhs := g.genValue(v.Lhs, typ), g.genValue(v.Rhs, typ)

		if v.Pred.IsFloat() {
			g.locals[v.Dest] = g.block.NewFCmp(floatPredicates[v.Pred], lhs, rhs)
		} else {
			g.locals[v.Dest] = g.block.NewICmp(intPredicates[v.Pred], lhs, rhs)
		}
	case *mir.Return:
		if v.Value == nil {
			g.block.NewRet(nil)
		} else {
			g.block.NewRet(g.genValue(v.Value, g.convType(v.Type)))
		}
	default:
		panic(fmt.Sprintf("operation `%s` cannot be generated", op.Repr()))
	}
}

// genCall generates a function call.  The result is only bound if the call
// has a destination.
func (g *Generator) genCall(call *mir.Call) {
	callee := g.lookupFunc(call.Func)

	var args []value.Value
	if call.Args != nil {
		for _, arg := range call.Args.Args {
			args = append(args, g.genValue(arg.Value, g.convType(arg.Type)))
		}
	}

	result := g.block.NewCall(callee, args...)
	if call.Dest != "" {
		g.locals[call.Dest] = result
	}
}

// genElementPtr generates the address `base + offset` where offset is in
// bytes.  The base is viewed as a byte pointer so that the offset can be
// applied directly.
func (g *Generator) genElementPtr(ep *mir.ElementPtr) value.Value {
	base := g.genValue(ep.Base, types.I8Ptr)
	bytePtr := g.block.NewBitCast(base, types.I8Ptr)

	offset := g.genValue(ep.Offset, types.I64)
	addr := g.block.NewGetElementPtr(types.I8, bytePtr, offset)

	return g.block.NewBitCast(addr, types.NewPointer(g.convType(ep.ElemType)))
}

// genBinaryOp generates an arithmetic or bitwise operation.
func (g *Generator) genBinaryOp(bop *mir.BinaryOp) value.Value {
	typ := g.convType(bop.Type)
	lhs, rhs := g.genValue(bop.Lhs, typ), g.genValue(bop.Rhs, typ)

	switch bop.Op {
	case mir.OpAdd:
		return g.block.NewAdd(lhs, rhs)
	case mir.OpSub:
		return g.block.NewSub(lhs, rhs)
	case mir.OpMul:
		return g.block.NewMul(lhs, rhs)
	case mir.OpSDiv:
		return g.block.NewSDiv(lhs, rhs)
	case mir.OpUDiv:
		return g.block.NewUDiv(lhs, rhs)
	case mir.OpSRem:
		return g.block.NewSRem(lhs, rhs)
	case mir.OpURem:
		return g.block.NewURem(lhs, rhs)
	case mir.OpFAdd:
		return g.block.NewFAdd(lhs, rhs)
	case mir.OpFSub:
		return g.block.NewFSub(lhs, rhs)
	case mir.OpFMul:
		return g.block.NewFMul(lhs, rhs)
	case mir.OpFDiv:
		return g.block.NewFDiv(lhs, rhs)
	case mir.OpFRem:
		return g.block.NewFRem(lhs, rhs)
	case mir.OpXor:
		return g.block.NewXor(lhs, rhs)
	}

	panic(fmt.Sprintf("operator `%s` cannot be generated", bop.Op))
}

var intPredicates = map[mir.Predicate]enum.IPred{
	mir.ICmpEQ:  enum.IPredEQ,
	mir.ICmpNE:  enum.IPredNE,
	mir.ICmpSGT: enum.IPredSGT,
	mir.ICmpSGE: enum.IPredSGE,
	mir.ICmpSLT: enum.IPredSLT,
	mir.ICmpSLE: enum.IPredSLE,
	mir.ICmpUGT: enum.IPredUGT,
	mir.ICmpUGE: enum.IPredUGE,
	mir.ICmpULT: enum.IPredULT,
	mir.ICmpULE: enum.IPredULE,
}

var floatPredicates = map[mir.Predicate]enum.FPred{
	mir.FCmpOEQ: enum.FPredOEQ,
	mir.FCmpONE: enum.FPredONE,
	mir.FCmpOGT: enum.FPredOGT,
	mir.FCmpOGE: enum.FPredOGE,
	mir.FCmpOLT: enum.FPredOLT,
	mir.FCmpOLE: enum.FPredOLE,
}
