package depm

import "github.com/frittesauce/Eclipse/types"

// Builtins returns the signatures of the functions provided by the runtime.
// Builtins are visible in the root unit and keep their names as keys.
func Builtins() []*FuncSig {
	return []*FuncSig{
		{
			Name:       "print",
			Key:        "print",
			Params:     []types.DataType{types.PrimKindI32},
			ReturnType: types.PrimKindUnit,
			Public:     true,
			Builtin:    true,
		},
		{
			Name:       "sleep",
			Key:        "sleep",
			Params:     []types.DataType{types.PrimKindI32},
			ReturnType: types.PrimKindI32,
			Public:     true,
			Builtin:    true,
		},
		{
			Name:       "usleep",
			Key:        "usleep",
			Params:     []types.DataType{types.PrimKindI32},
			ReturnType: types.PrimKindI32,
			Public:     true,
			Builtin:    true,
		},
	}
}
