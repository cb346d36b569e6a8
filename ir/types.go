package ir

import (
	"fmt"
	"strings"
)

// Type represents a type that can be used in IR.  The IR type system is a
// simplified, "machine-like" version of the source type system.
type Type interface {
	// Repr returns the string representation of the IR type.
	Repr() string

	// Size returns the size of the type in bytes.
	Size() uint

	// Align returns the alignment of the type in bytes.
	Align() uint
}

// Equals returns whether two IR types are identical.
func Equals(a, b Type) bool {
	return a.Repr() == b.Repr()
}

// IsScalar returns whether a value of the type fits in a register.
func IsScalar(typ Type) bool {
	switch typ.(type) {
	case *IntType, *FloatType, *PointerType:
		return true
	default:
		return false
	}
}

// -----------------------------------------------------------------------------

// IntType is a signed or unsigned integer of a fixed bit width.  Booleans are
// one bit integers.
type IntType struct {
	Bits   uint
	Signed bool
}

// Common integer types.
var (
	Bool = &IntType{Bits: 1}
	I32  = &IntType{Bits: 32, Signed: true}
	I64  = &IntType{Bits: 64, Signed: true}
	U8   = &IntType{Bits: 8}
	U64  = &IntType{Bits: 64}
)

func (it *IntType) Repr() string {
	if it.Signed || it.Bits == 1 {
		return fmt.Sprintf("i%d", it.Bits)
	}

	return fmt.Sprintf("u%d", it.Bits)
}

func (it *IntType) Size() uint {
	return (it.Bits + 7) / 8
}

func (it *IntType) Align() uint {
	return it.Size()
}

// FloatType is a 32 bit (float) or 64 bit (double) floating point number.
type FloatType struct {
	Double bool
}

// Common floating point types.
var (
	Float  = &FloatType{}
	Double = &FloatType{Double: true}
)

func (ft *FloatType) Repr() string {
	if ft.Double {
		return "double"
	}

	return "float"
}

func (ft *FloatType) Size() uint {
	if ft.Double {
		return 8
	}

	return 4
}

func (ft *FloatType) Align() uint {
	return ft.Size()
}

// -----------------------------------------------------------------------------

// PointerType is a pointer to a piece of memory of some type.
type PointerType struct {
	ElemType Type
}

func (pt *PointerType) Repr() string {
	return pt.ElemType.Repr() + "*"
}

func (pt *PointerType) Size() uint {
	// only 64 bit targets are supported => ptr size = 8
	return 8
}

func (pt *PointerType) Align() uint {
	return pt.Size()
}

// -----------------------------------------------------------------------------

// ArrayType represents a fixed-length contiguous block of elements.
type ArrayType struct {
	ElemType Type
	Len      uint
}

func (at *ArrayType) Repr() string {
	return fmt.Sprintf("[%d x %s]", at.Len, at.ElemType.Repr())
}

func (at *ArrayType) Size() uint {
	return at.ElemType.Size() * at.Len
}

func (at *ArrayType) Align() uint {
	return at.ElemType.Align()
}

// -----------------------------------------------------------------------------

// TupleType is an anonymous aggregate of two or more fields.
type TupleType struct {
	ElemTypes []Type
}

func (tt *TupleType) Repr() string {
	return "{" + joinTypes(tt.ElemTypes) + "}"
}

func (tt *TupleType) Size() uint {
	_, size, _ := layout(tt.ElemTypes)
	return size
}

func (tt *TupleType) Align() uint {
	_, _, align := layout(tt.ElemTypes)
	return align
}

// Offsets returns the byte offset of each field of the tuple.
func (tt *TupleType) Offsets() []uint {
	offsets, _, _ := layout(tt.ElemTypes)
	return offsets
}

// StructType is a named struct.  Its fields are laid out the same way as the
// fields of a tuple.
type StructType struct {
	Name   string
	Fields []Type
}

func (st *StructType) Repr() string {
	return "%" + st.Name
}

func (st *StructType) Size() uint {
	_, size, _ := layout(st.Fields)
	return size
}

func (st *StructType) Align() uint {
	_, _, align := layout(st.Fields)
	return align
}

// Offsets returns the byte offset of each field of the struct.
func (st *StructType) Offsets() []uint {
	offsets, _, _ := layout(st.Fields)
	return offsets
}

// layout computes the field offsets, size, and alignment of contiguous fields.
// Each field is placed at the next offset that is a multiple of its alignment,
// and the size is padded to a multiple of the largest field alignment.
func layout(fields []Type) (offsets []uint, size, align uint) {
	align = 1
	for _, field := range fields {
		if rem := size % field.Align(); rem != 0 {
			size += field.Align() - rem
		}

		offsets = append(offsets, size)
		size += field.Size()

		if field.Align() > align {
			align = field.Align()
		}
	}

	if rem := size % align; rem != 0 {
		size += align - rem
	}

	return
}

// -----------------------------------------------------------------------------

// VoidType is the type of functions which return nothing.
type VoidType struct{}

// Void is the void type.
var Void = &VoidType{}

func (*VoidType) Repr() string { return "void" }
func (*VoidType) Size() uint   { return 0 }
func (*VoidType) Align() uint  { return 1 }

// -----------------------------------------------------------------------------

func joinTypes(typs []Type) string {
	reprs := make([]string, len(typs))
	for i, typ := range typs {
		reprs[i] = typ.Repr()
	}

	return strings.Join(reprs, ", ")
}
