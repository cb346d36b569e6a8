package lower

import (
	"github.com/frittesauce/Eclipse/ir"
	"github.com/frittesauce/Eclipse/report"
	"github.com/frittesauce/Eclipse/types"
)

// convType converts a source type into its IR type.  Every level of reference
// or pointer indirection becomes one IR pointer.  Tuples of no elements become
// void and tuples of one element become that element's type.
func (l *Lowerer) convType(dt types.DataType) ir.Type {
	switch v := dt.(type) {
	case nil:
		return ir.Void
	case types.PrimType:
		return convPrimType(v)
	case *types.ArrayType:
		return &ir.ArrayType{ElemType: l.convType(v.ElemType), Len: uint(v.Len)}
	case *types.TupleType:
		switch len(v.ElemTypes) {
		case 0:
			return ir.Void
		case 1:
			return l.convType(v.ElemTypes[0])
		}

		elemTypes := make([]ir.Type, len(v.ElemTypes))
		for i, elem := range v.ElemTypes {
			elemTypes[i] = l.convType(elem)
		}

		return &ir.TupleType{ElemTypes: elemTypes}
	case *types.PointerType:
		elemType := l.convType(v.ElemType)

		// there is no pointer to void
		if _, ok := elemType.(*ir.VoidType); ok {
			elemType = ir.U8
		}

		return &ir.PointerType{ElemType: elemType}
	case *types.StructType:
		return l.structType(v.Name, nil)
	case *types.EnumType:
		return l.enumType(v.Name, nil)
	}

	l.unsupported(nil, "type `%s` cannot be lowered", dt.Repr())
	return nil
}

// convPrimType converts a primitive type into an IR type.
func convPrimType(pt types.PrimType) ir.Type {
	switch {
	case pt.IsInteger():
		return &ir.IntType{Bits: uint(pt.BitSize()), Signed: pt.IsSigned()}
	case pt == types.PrimKindF32:
		return ir.Float
	case pt == types.PrimKindF64:
		return ir.Double
	case pt == types.PrimKindBool:
		return ir.Bool
	default:
		// unit and never
		return ir.Void
	}
}

// convParamType converts the type of a parameter.  Composite values are passed
// by address.
func (l *Lowerer) convParamType(dt types.DataType) ir.Type {
	if types.IsComposite(dt) {
		return &ir.PointerType{ElemType: l.convType(dt)}
	}

	return l.convType(dt)
}

// structType returns the IR type of the struct with the given name.
func (l *Lowerer) structType(name string, span *report.TextSpan) *ir.StructType {
	if st, ok := l.structTypes[name]; ok {
		return st
	}

	sd, ok := l.table.Structs[name]
	if !ok {
		l.unsupported(span, "unknown struct type `%s`", name)
	}

	// cache before converting fields so that recursive references terminate
	st := &ir.StructType{Name: name}
	l.structTypes[name] = st

	for _, field := range sd.Fields {
		st.Fields = append(st.Fields, l.convType(field.Type))
	}

	return st
}

// enumType returns the IR type of the enum with the given name: the smallest
// unsigned integer that can hold the index of every variant.
func (l *Lowerer) enumType(name string, span *report.TextSpan) *ir.IntType {
	ed, ok := l.table.Enums[name]
	if !ok {
		l.unsupported(span, "unknown enum type `%s`", name)
	}

	switch n := len(ed.Variants); {
	case n <= 1<<8:
		return &ir.IntType{Bits: 8}
	case n <= 1<<16:
		return &ir.IntType{Bits: 16}
	default:
		return &ir.IntType{Bits: 32}
	}
}
