package lower

import (
	"github.com/frittesauce/Eclipse/ast"
	"github.com/frittesauce/Eclipse/ir"
	"github.com/frittesauce/Eclipse/report"
	"github.com/frittesauce/Eclipse/types"
)

// storeComposite lowers an expression of composite type as a store into the
// memory at base + offset.  Array and tuple literals are stored element by
// element; nested literals reuse the same base with an accumulated offset.
func (l *Lowerer) storeComposite(base *ir.Register, offset uint, typ types.DataType, expr ast.Expr) {
	switch v := expr.(type) {
	case *ast.ArrayLit:
		at, ok := types.Simplify(typ).(*types.ArrayType)
		if !ok {
			l.error(report.TypeMismatch, v.Span(), "an array literal cannot be stored as `%s`", typ.Repr())
			return
		}

		if len(v.Elems) != at.Len {
			l.error(report.TypeMismatch, v.Span(), "expected %d array elements but got %d", at.Len, len(v.Elems))
			return
		}

		elemSize := l.convType(at.ElemType).Size()
		for i, elem := range v.Elems {
			l.storeElement(base, offset+uint(i)*elemSize, at.ElemType, elem)
		}
	case *ast.TupleLit:
		if len(v.Elems) == 1 {
			l.storeComposite(base, offset, typ, v.Elems[0])
			return
		}

		tt, ok := types.Simplify(typ).(*types.TupleType)
		if !ok || len(tt.ElemTypes) != len(v.Elems) {
			l.error(report.TypeMismatch, v.Span(), "a tuple of %d elements cannot be stored as `%s`", len(v.Elems), typ.Repr())
			return
		}

		offsets := l.convType(tt).(*ir.TupleType).Offsets()
		for i, elem := range v.Elems {
			l.storeElement(base, offset+offsets[i], tt.ElemTypes[i], elem)
		}
	case *ast.Call:
		dest := base
		if offset > 0 {
			dest = ir.NewRegister(l.elemPtr(base, offset, l.convType(typ)))
		}

		_, retType := l.lowerCall(typ, v, dest)
		l.checkType(typ, retType, v.Span())
	default:
		src, srcType := l.lowerExpr(typ, expr)
		if !l.checkType(typ, srcType, expr.Span()) {
			return
		}

		if _, ok := src.(*ir.Null); !ok {
			l.copyComposite(base, offset, src, typ)
		}
	}
}

// storeElement stores an expression into the element of a composite at
// base + offset.
func (l *Lowerer) storeElement(base *ir.Register, offset uint, typ types.DataType, expr ast.Expr) {
	if types.IsComposite(typ) {
		l.storeComposite(base, offset, typ, expr)
		return
	}

	val, valType := l.lowerExpr(typ, expr)
	l.checkType(typ, valType, expr.Span())

	elemType := l.convType(typ)
	addr := l.elemPtr(base, offset, elemType)
	l.emit(&ir.Store{Type: elemType, Value: val, Dest: addr})
}

// copyComposite copies a composite value from the address src into the memory
// at base + offset one scalar at a time.
func (l *Lowerer) copyComposite(base *ir.Register, offset uint, src ir.Value, typ types.DataType) {
	forEachScalar(l.convType(typ), 0, func(leafOffset uint, leafType ir.Type) {
		srcAddr := l.elemPtr(src, leafOffset, leafType)

		tmp := l.names.Next()
		l.emit(&ir.Load{Dest: tmp, Type: leafType, Src: ir.NewRegister(srcAddr)})

		destAddr := l.elemPtr(base, offset+leafOffset, leafType)
		l.emit(&ir.Store{Type: leafType, Value: ir.NewRegister(tmp), Dest: destAddr})
	})
}

// elemPtr emits the computation of the address base + offset and returns the
// register holding it.
func (l *Lowerer) elemPtr(base ir.Value, offset uint, elemType ir.Type) string {
	dest := l.names.Next()
	l.emit(&ir.ElementPtr{Dest: dest, ElemType: elemType, Base: base, Offset: ir.NewIntLit(offset)})
	return dest
}

// forEachScalar calls visit with the offset and type of every scalar inside an
// IR type in memory order.
func forEachScalar(typ ir.Type, offset uint, visit func(uint, ir.Type)) {
	switch v := typ.(type) {
	case *ir.ArrayType:
		for i := uint(0); i < v.Len; i++ {
			forEachScalar(v.ElemType, offset+i*v.ElemType.Size(), visit)
		}
	case *ir.TupleType:
		for i, fieldOffset := range v.Offsets() {
			forEachScalar(v.ElemTypes[i], offset+fieldOffset, visit)
		}
	case *ir.StructType:
		for i, fieldOffset := range v.Offsets() {
			forEachScalar(v.Fields[i], offset+fieldOffset, visit)
		}
	case *ir.VoidType:
	default:
		visit(offset, typ)
	}
}
