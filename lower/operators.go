package lower

import (
	"github.com/frittesauce/Eclipse/ast"
	"github.com/frittesauce/Eclipse/ir"
	"github.com/frittesauce/Eclipse/types"
)

// operatorApplies returns whether a binary operator can be applied to operands
// of the given type.
func operatorApplies(op int, typ types.DataType) bool {
	switch op {
	case ast.OpEq, ast.OpNe:
		if _, ok := types.Simplify(typ).(*types.PointerType); ok {
			return true
		}

		return types.IsNumeric(typ) || types.IsBool(typ) || types.IsEnum(typ)
	default:
		return types.IsNumeric(typ)
	}
}

// Operator variants: {signed, unsigned, float}
var arithOperators = map[int][3]ir.Operator{
	ast.OpAdd: {ir.OpAdd, ir.OpAdd, ir.OpFAdd},
	ast.OpSub: {ir.OpSub, ir.OpSub, ir.OpFSub},
	ast.OpMul: {ir.OpMul, ir.OpMul, ir.OpFMul},
	ast.OpDiv: {ir.OpSDiv, ir.OpUDiv, ir.OpFDiv},
	ast.OpMod: {ir.OpSRem, ir.OpURem, ir.OpFRem},
}

var cmpPredicates = map[int][3]ir.Predicate{
	ast.OpEq: {ir.ICmpEQ, ir.ICmpEQ, ir.FCmpOEQ},
	ast.OpNe: {ir.ICmpNE, ir.ICmpNE, ir.FCmpONE},
	ast.OpGt: {ir.ICmpSGT, ir.ICmpUGT, ir.FCmpOGT},
	ast.OpGe: {ir.ICmpSGE, ir.ICmpUGE, ir.FCmpOGE},
	ast.OpLt: {ir.ICmpSLT, ir.ICmpULT, ir.FCmpOLT},
	ast.OpLe: {ir.ICmpSLE, ir.ICmpULE, ir.FCmpOLE},
}

// variantIndex selects the operator variant for an operand type.  Booleans,
// enums and pointers compare as unsigned integers.
func variantIndex(typ types.DataType) int {
	if types.IsFloating(typ) {
		return 2
	}

	if pt, ok := types.Simplify(typ).(types.PrimType); ok && pt.IsSigned() {
		return 0
	}

	return 1
}

func selectOperator(op int, typ types.DataType) ir.Operator {
	return arithOperators[op][variantIndex(typ)]
}

func selectPredicate(op int, typ types.DataType) ir.Predicate {
	return cmpPredicates[op][variantIndex(typ)]
}
