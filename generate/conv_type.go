package generate

import (
	"fmt"

	mir "github.com/frittesauce/Eclipse/ir"

	"github.com/llir/llvm/ir/types"
)

// convType converts an IR type into an LLVM type.  LLVM integers carry no
// signedness: unsigned and signed integers of the same size are identical.
func (g *Generator) convType(typ mir.Type) types.Type {
	switch v := typ.(type) {
	case *mir.IntType:
		return convIntType(v.Bits)
	case *mir.FloatType:
		if v.Double {
			return types.Double
		}

		return types.Float
	case *mir.PointerType:
		return types.NewPointer(g.convType(v.ElemType))
	case *mir.ArrayType:
		return types.NewArray(uint64(v.Len), g.convType(v.ElemType))
	case *mir.TupleType:
		fields := make([]types.Type, len(v.ElemTypes))
		for i, elem := range v.ElemTypes {
			fields[i] = g.convType(elem)
		}

		return types.NewStruct(fields...)
	case *mir.StructType:
		if st, ok := g.structs[v.Name]; ok {
			return st
		}

		panic(fmt.Sprintf("undefined struct type `%s`", v.Name))
	case *mir.VoidType:
		return types.Void
	}

	panic(fmt.Sprintf("type `%s` cannot be generated", typ.Repr()))
}

func convIntType(bits uint) *types.IntType {
	switch bits {
	case 1:
		return types.I1
	case 8:
		return types.I8
	case 16:
		return types.I16
	case 32:
		return types.I32
	case 64:
		return types.I64
	default:
		return types.NewInt(uint64(bits))
	}
}
