package generate

import (
	"fmt"
	"strconv"

	mir "github.com/frittesauce/Eclipse/ir"

	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
)

// genValue generates an operand of the given LLVM type.
func (g *Generator) genValue(val mir.Value, typ types.Type) value.Value {
	switch v := val.(type) {
	case *mir.BoolLit:
		return constant.NewBool(v.Value)
	case *mir.IntLit:
		return genIntLit(v.Text, typ)
	case *mir.FloatLit:
		// strconv should always succeed: the text was produced by the parser
		x, _ := strconv.ParseFloat(v.Text, 64)
		return constant.NewFloat(floatType(typ), x)
	case *mir.Register:
		return g.lookupLocal(v.Name)
	case *mir.Global:
		// static strings are used through a byte pointer
		if global, ok := g.strings[v.Name]; ok {
			return g.block.NewBitCast(global, types.I8Ptr)
		}

		return g.lookupFunc(v.Name)
	case *mir.Null:
		return genNull(typ)
	}

	panic(fmt.Sprintf("value `%s` cannot be generated", val.Repr()))
}

// genIntLit generates an integer constant.  Integer literals may be written in
// any base Go accepts and unsigned values may exceed the signed range.
func genIntLit(text string, typ types.Type) value.Value {
	intType, ok := typ.(*types.IntType)
	if !ok {
		// integer literals used as offsets into memory
		intType = types.I64
	}

	if x, err := strconv.ParseInt(text, 0, 64); err == nil {
		return constant.NewInt(intType, x)
	}

	x, _ := strconv.ParseUint(text, 0, 64)
	return constant.NewInt(intType, int64(x))
}

// genNull generates the zero value of a type.
func genNull(typ types.Type) value.Value {
	switch v := typ.(type) {
	case *types.IntType:
		return constant.NewInt(v, 0)
	case *types.FloatType:
		return constant.NewFloat(v, 0)
	case *types.PointerType:
		return constant.NewNull(v)
	default:
		return constant.NewZeroInitializer(typ)
	}
}

func floatType(typ types.Type) *types.FloatType {
	if ft, ok := typ.(*types.FloatType); ok {
		return ft
	}

	return types.Double
}
