package types

// PrimFromName returns the primitive type for a type name as it appears in
// source text.
func PrimFromName(name string) (PrimType, bool) {
	for i, pname := range primNames {
		if pname == name {
			return PrimType(i), true
		}
	}

	return 0, false
}

// NewPointers wraps a data type in `levels` raw pointer types.
func NewPointers(dt DataType, levels int) DataType {
	for i := 0; i < levels; i++ {
		dt = &PointerType{ElemType: dt}
	}

	return dt
}
