package lower

import (
	"strconv"

	"github.com/frittesauce/Eclipse/ast"
	"github.com/frittesauce/Eclipse/ir"
	"github.com/frittesauce/Eclipse/report"
	"github.com/frittesauce/Eclipse/types"
)

// lowerExpr lowers an expression against an expected type.  It returns the
// resulting value and its source type; the IR type of the value is the
// converted source type.  Values of composite type are always addresses.
// Expressions that fail to lower yield a null value of the expected type.
func (l *Lowerer) lowerExpr(expected types.DataType, expr ast.Expr) (ir.Value, types.DataType) {
	switch v := expr.(type) {
	case *ast.Literal:
		return l.lowerLiteral(expected, v)
	case *ast.Identifier:
		return l.lowerIdentifier(expected, v)
	case *ast.Call:
		return l.lowerCall(expected, v, nil)
	case *ast.ArrayLit, *ast.TupleLit:
		return l.lowerCompositeLit(expected, expr)
	case *ast.Index:
		return l.lowerIndex(expected, v)
	case *ast.BinaryOp:
		return l.lowerBinaryOp(expected, v)
	case *ast.UnaryOp:
		return l.lowerUnaryOp(expected, v)
	case *ast.EnumValue:
		return l.lowerEnumValue(expected, v)
	}

	l.unsupported(expr.Span(), "expression cannot be lowered")
	return nil, nil
}

// lowerLiteral lowers a literal value.  No operations are emitted except for
// string literals which are added to the program's static data.
func (l *Lowerer) lowerLiteral(expected types.DataType, lit *ast.Literal) (ir.Value, types.DataType) {
	typ := literalType(expected, lit)

	switch lit.Kind {
	case ast.LitInt:
		if types.IsFloating(typ) {
			return &ir.FloatLit{Text: lit.Value + ".0"}, typ
		}

		return &ir.IntLit{Text: lit.Value}, typ
	case ast.LitFloat:
		return &ir.FloatLit{Text: lit.Value}, typ
	case ast.LitBool:
		return &ir.BoolLit{Value: lit.Value == "true"}, typ
	default:
		key := l.names.Next()
		l.prog.Strings = append(l.prog.Strings, ir.StaticString{Key: key, Value: lit.Value})
		return &ir.Global{Name: key}, typ
	}
}

// lowerCompositeLit lowers an array or tuple literal used as a value.  The
// literal is stored into a new temporary slot whose address is the value.
func (l *Lowerer) lowerCompositeLit(expected types.DataType, expr ast.Expr) (ir.Value, types.DataType) {
	if tl, ok := expr.(*ast.TupleLit); ok {
		switch len(tl.Elems) {
		case 0:
			return &ir.Null{}, types.PrimKindUnit
		case 1:
			return l.lowerExpr(expected, tl.Elems[0])
		}
	}

	typ := l.inferType(expected, expr)
	if !types.IsComposite(typ) {
		l.error(report.TypeMismatch, expr.Span(), "cannot determine the type of an empty array literal")
		return &ir.Null{}, expected
	}

	slot := l.names.Next()
	l.emit(&ir.Alloca{Dest: slot, Type: l.convType(typ)})
	l.storeComposite(ir.NewRegister(slot), 0, typ, expr)
	return ir.NewRegister(slot), typ
}

// lowerIdentifier lowers a variable read.
func (l *Lowerer) lowerIdentifier(expected types.DataType, id *ast.Identifier) (ir.Value, types.DataType) {
	v, ok := l.vars.Lookup(id.Name)
	if !ok {
		l.error(report.UndeclaredVariable, id.Span(), "undeclared variable `%s`", id.Name)
		return &ir.Null{}, expected
	}

	v.Read = true

	// register-resident values and the addresses of composites are used as is
	if v.Register || types.IsComposite(v.Type) {
		return ir.NewRegister(v.Key), v.Type
	}

	dest := l.names.Next()
	l.emit(&ir.Load{Dest: dest, Type: l.convType(v.Type), Src: ir.NewRegister(v.Key)})
	return ir.NewRegister(dest), v.Type
}

// lowerEnumValue lowers an enum variant to its index.
func (l *Lowerer) lowerEnumValue(expected types.DataType, ev *ast.EnumValue) (ir.Value, types.DataType) {
	ed, ok := l.table.Enums[ev.Enum]
	if !ok {
		l.error(report.TypeMismatch, ev.Span(), "undefined enum `%s`", ev.Enum)
		return &ir.Null{}, expected
	}

	n, ok := ed.VariantIndex(ev.Variant)
	if !ok {
		l.error(report.TypeMismatch, ev.Span(), "enum `%s` has no variant `%s`", ev.Enum, ev.Variant)
		return &ir.Null{}, expected
	}

	return ir.NewIntLit(uint(n)), &types.EnumType{Name: ev.Enum}
}

// lowerCall lowers a function call.  If the function returns a composite
// value, the value is written to `out` or to a new temporary slot if `out` is
// nil; the address written to is the value of the call.
func (l *Lowerer) lowerCall(expected types.DataType, call *ast.Call, out *ir.Register) (ir.Value, types.DataType) {
	sig, ok := l.table.Resolve(l.unit.Path, call.Path)
	if !ok {
		l.error(report.UnresolvedFunction, call.Span(), "undefined function `%s`", call.PathRepr())
		return &ir.Null{}, expected
	}

	if len(call.Args) != len(sig.Params) {
		l.error(
			report.ArgumentCountMismatch,
			call.Span(),
			"function `%s` expects %d arguments but received %d",
			call.PathRepr(),
			len(sig.Params),
			len(call.Args),
		)

		return &ir.Null{}, sig.ReturnType
	}

	args := &ir.Arguments{}
	if types.IsComposite(sig.ReturnType) {
		retType := l.convType(sig.ReturnType)

		if out == nil {
			out = ir.NewRegister(l.names.Next())
			l.emit(&ir.Alloca{Dest: out.Name, Type: retType})
		}

		args.Args = append(args.Args, ir.Arg{Type: &ir.PointerType{ElemType: retType}, Value: out})
	}

	for i, arg := range call.Args {
		argVal, argType := l.lowerExpr(sig.Params[i], arg)
		l.checkType(sig.Params[i], argType, arg.Span())

		args.Args = append(args.Args, ir.Arg{Type: l.convParamType(sig.Params[i]), Value: argVal})
	}

	switch {
	case types.IsComposite(sig.ReturnType):
		l.emit(&ir.Call{Func: sig.Key, ReturnType: ir.Void, Args: args})
		return out, sig.ReturnType
	case types.IsVoid(sig.ReturnType):
		l.emit(&ir.Call{Func: sig.Key, ReturnType: ir.Void, Args: args})
		return &ir.Null{}, sig.ReturnType
	default:
		dest := l.names.Next()
		l.emit(&ir.Call{Dest: dest, Func: sig.Key, ReturnType: l.convType(sig.ReturnType), Args: args})
		return ir.NewRegister(dest), sig.ReturnType
	}
}

// lowerIndex lowers an index expression: the element address is computed
// from the base address and the index and then loaded from.  Elements of
// composite type are not loaded: their address is their value.
func (l *Lowerer) lowerIndex(expected types.DataType, index *ast.Index) (ir.Value, types.DataType) {
	addr, elemType := l.lowerIndexAddr(expected, index)
	if _, ok := addr.(*ir.Null); ok || elemType == nil || types.IsComposite(elemType) {
		return addr, elemType
	}

	dest := l.names.Next()
	l.emit(&ir.Load{Dest: dest, Type: l.convType(elemType), Src: addr})
	return ir.NewRegister(dest), elemType
}

// lowerIndexAddr computes the address of the element an index expression
// refers to: base + index * element size.
func (l *Lowerer) lowerIndexAddr(expected types.DataType, index *ast.Index) (ir.Value, types.DataType) {
	baseVal, baseType := l.lowerExpr(nil, index.Base)
	if baseType == nil {
		return &ir.Null{}, expected
	}

	at, ok := types.Simplify(baseType).(*types.ArrayType)
	if !ok {
		l.error(report.TypeMismatch, index.Base.Span(), "cannot index a value of type `%s`", baseType.Repr())
		return &ir.Null{}, expected
	}

	elemType := l.convType(at.ElemType)
	elemSize := elemType.Size()

	var offset ir.Value
	if lit, ok := index.Index.(*ast.Literal); ok && lit.Kind == ast.LitInt {
		n, err := strconv.ParseUint(lit.Value, 0, 64)
		if err != nil || n >= uint64(at.Len) {
			l.error(report.TypeMismatch, lit.Span(), "index %s is out of bounds for an array of length %d", lit.Value, at.Len)
			return &ir.Null{}, at.ElemType
		}

		offset = ir.NewIntLit(uint(n) * elemSize)
	} else {
		indexVal, indexType := l.lowerExpr(types.PrimKindI64, index.Index)
		if !types.IsIntegral(indexType) {
			l.error(report.TypeMismatch, index.Index.Span(), "array index must be an integer not `%s`", types.Repr(indexType))
			return &ir.Null{}, at.ElemType
		}

		scaled := l.names.Next()
		l.emit(&ir.BinaryOp{
			Op:   ir.OpMul,
			Type: l.convType(indexType),
			Lhs:  indexVal,
			Rhs:  ir.NewIntLit(elemSize),
			Dest: scaled,
		})

		offset = ir.NewRegister(scaled)
	}

	dest := l.names.Next()
	l.emit(&ir.ElementPtr{Dest: dest, ElemType: elemType, Base: baseVal, Offset: offset})
	return ir.NewRegister(dest), at.ElemType
}

// -----------------------------------------------------------------------------

// lowerBinaryOp lowers an arithmetic or comparison operation.  Both operands
// are lowered against their common type; the operator variant is selected by
// the signedness and floatness of that type.
func (l *Lowerer) lowerBinaryOp(expected types.DataType, bop *ast.BinaryOp) (ir.Value, types.DataType) {
	isCmp := ast.IsComparison(bop.Op)

	var resultType types.DataType
	if isCmp {
		resultType = types.PrimKindBool
		expected = nil
	}

	opType := l.operandType(expected, bop.Lhs, bop.Rhs)
	lhs, lt := l.lowerExpr(opType, bop.Lhs)
	rhs, rt := l.lowerExpr(opType, bop.Rhs)

	if !isCmp {
		resultType = lt
	}

	if lt == nil || rt == nil {
		return &ir.Null{}, resultType
	}

	if !types.Equals(lt, rt) {
		l.error(
			report.TypeMismatch,
			bop.Span(),
			"operator `%s` cannot be applied to operands of type `%s` and `%s`",
			ast.OpName(bop.Op),
			lt.Repr(),
			rt.Repr(),
		)

		return &ir.Null{}, resultType
	}

	if !operatorApplies(bop.Op, lt) {
		l.error(report.TypeMismatch, bop.Span(), "operator `%s` cannot be applied to type `%s`", ast.OpName(bop.Op), lt.Repr())
		return &ir.Null{}, resultType
	}

	dest := l.names.Next()
	if isCmp {
		l.emit(&ir.Compare{Pred: selectPredicate(bop.Op, lt), Type: l.convType(lt), Lhs: lhs, Rhs: rhs, Dest: dest})
	} else {
		l.emit(&ir.BinaryOp{Op: selectOperator(bop.Op, lt), Type: l.convType(lt), Lhs: lhs, Rhs: rhs, Dest: dest})
	}

	return ir.NewRegister(dest), resultType
}

// lowerUnaryOp lowers a negation or logical not.  Negation is `0 - x` and
// logical not is `x xor true`; literal operands are folded.
func (l *Lowerer) lowerUnaryOp(expected types.DataType, uop *ast.UnaryOp) (ir.Value, types.DataType) {
	if uop.Op == ast.OpNot {
		val, typ := l.lowerExpr(types.PrimKindBool, uop.Operand)
		if !l.checkType(types.PrimKindBool, typ, uop.Operand.Span()) {
			return &ir.Null{}, types.PrimKindBool
		}

		if bl, ok := val.(*ir.BoolLit); ok {
			return &ir.BoolLit{Value: !bl.Value}, types.PrimKindBool
		}

		dest := l.names.Next()
		l.emit(&ir.BinaryOp{Op: ir.OpXor, Type: ir.Bool, Lhs: val, Rhs: &ir.BoolLit{Value: true}, Dest: dest})
		return ir.NewRegister(dest), types.PrimKindBool
	}

	val, typ := l.lowerExpr(expected, uop.Operand)
	if typ == nil {
		return &ir.Null{}, expected
	}

	if !types.IsNumeric(typ) {
		l.error(report.TypeMismatch, uop.Span(), "operator `-` cannot be applied to type `%s`", typ.Repr())
		return &ir.Null{}, typ
	}

	switch v := val.(type) {
	case *ir.IntLit:
		return &ir.IntLit{Text: negateText(v.Text)}, typ
	case *ir.FloatLit:
		return &ir.FloatLit{Text: negateText(v.Text)}, typ
	}

	var zero ir.Value = &ir.IntLit{Text: "0"}
	op := ir.OpSub
	if types.IsFloating(typ) {
		zero = &ir.FloatLit{Text: "0.0"}
		op = ir.OpFSub
	}

	dest := l.names.Next()
	l.emit(&ir.BinaryOp{Op: op, Type: l.convType(typ), Lhs: zero, Rhs: val, Dest: dest})
	return ir.NewRegister(dest), typ
}

func negateText(text string) string {
	if len(text) > 0 && text[0] == '-' {
		return text[1:]
	}

	return "-" + text
}
