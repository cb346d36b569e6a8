package lower

import (
	"github.com/frittesauce/Eclipse/ast"
	"github.com/frittesauce/Eclipse/types"
)

// stringType is the type of string literals.
var stringType = &types.PointerType{ElemType: types.PrimKindU8}

// inferType determines the type an expression will have when lowered against
// an expected type without emitting anything.  The expected type is returned
// for expressions whose type cannot be determined.
func (l *Lowerer) inferType(expected types.DataType, expr ast.Expr) types.DataType {
	switch v := expr.(type) {
	case *ast.Literal:
		return literalType(expected, v)
	case *ast.Identifier:
		if vr, ok := l.vars.Lookup(v.Name); ok {
			return vr.Type
		}
	case *ast.Call:
		if sig, ok := l.table.Resolve(l.unit.Path, v.Path); ok {
			return sig.ReturnType
		}
	case *ast.ArrayLit:
		var elemExpected types.DataType
		if at, ok := types.Simplify(expected).(*types.ArrayType); ok {
			if len(v.Elems) == 0 {
				return at
			}

			elemExpected = at.ElemType
		}

		if len(v.Elems) == 0 {
			return expected
		}

		return &types.ArrayType{ElemType: l.inferType(elemExpected, v.Elems[0]), Len: len(v.Elems)}
	case *ast.TupleLit:
		if len(v.Elems) == 1 {
			return l.inferType(expected, v.Elems[0])
		}

		tt, _ := types.Simplify(expected).(*types.TupleType)
		if tt != nil && len(tt.ElemTypes) != len(v.Elems) {
			tt = nil
		}

		elemTypes := make([]types.DataType, len(v.Elems))
		for i, elem := range v.Elems {
			var elemExpected types.DataType
			if tt != nil {
				elemExpected = tt.ElemTypes[i]
			}

			elemTypes[i] = l.inferType(elemExpected, elem)
		}

		return &types.TupleType{ElemTypes: elemTypes}
	case *ast.Index:
		if at, ok := types.Simplify(l.inferType(nil, v.Base)).(*types.ArrayType); ok {
			return at.ElemType
		}
	case *ast.BinaryOp:
		if ast.IsComparison(v.Op) {
			return types.PrimKindBool
		}

		return l.operandType(expected, v.Lhs, v.Rhs)
	case *ast.UnaryOp:
		if v.Op == ast.OpNot {
			return types.PrimKindBool
		}

		return l.inferType(expected, v.Operand)
	case *ast.EnumValue:
		if _, ok := l.table.Enums[v.Enum]; ok {
			return &types.EnumType{Name: v.Enum}
		}
	}

	return expected
}

// operandType determines the common type of the operands of a binary
// operator.  The left operand decides unless it is a numeric literal and the
// right operand is not.
func (l *Lowerer) operandType(expected types.DataType, lhs, rhs ast.Expr) types.DataType {
	if !types.IsNumeric(expected) {
		expected = nil
	}

	if isUntypedLit(lhs) && !isUntypedLit(rhs) {
		if rt := l.inferType(expected, rhs); rt != nil {
			return rt
		}
	}

	return l.inferType(expected, lhs)
}

// literalType returns the type of a literal given the type expected of it.
// Numeric literals adopt the expected type when it is compatible and default
// to `i32` and `f64` otherwise.
func literalType(expected types.DataType, lit *ast.Literal) types.DataType {
	switch lit.Kind {
	case ast.LitInt:
		if types.IsNumeric(expected) {
			return types.Simplify(expected)
		}

		return types.PrimKindI32
	case ast.LitFloat:
		if types.IsFloating(expected) {
			return types.Simplify(expected)
		}

		return types.PrimKindF64
	case ast.LitBool:
		return types.PrimKindBool
	default:
		return stringType
	}
}
