package ast

import "github.com/frittesauce/Eclipse/types"

// Def is a top-level definition.
type Def interface {
	ASTNode

	// DefName returns the name the definition defines.
	DefName() string

	defNode()
}

// FuncDef represents a function definition.
type FuncDef struct {
	ASTBase

	Public     bool
	Name       string
	Params     []*FuncParam
	ReturnType types.DataType
	Body       []Stmt
}

// FuncParam is a single function parameter.
type FuncParam struct {
	ASTBase

	Name string
	Type types.DataType
}

func (fd *FuncDef) DefName() string { return fd.Name }

// StructDef represents a struct definition.
type StructDef struct {
	ASTBase

	Public bool
	Name   string
	Fields []*StructField
}

// StructField is a single field of a struct.
type StructField struct {
	Name string
	Type types.DataType
}

func (sd *StructDef) DefName() string { return sd.Name }

// EnumDef represents an enum definition.  Each variant is identified by its
// position in Variants.
type EnumDef struct {
	ASTBase

	Public   bool
	Name     string
	Variants []string
}

func (ed *EnumDef) DefName() string { return ed.Name }

// VariantIndex returns the position of a variant in the enum.
func (ed *EnumDef) VariantIndex(name string) (int, bool) {
	for i, variant := range ed.Variants {
		if variant == name {
			return i, true
		}
	}

	return 0, false
}

func (*FuncDef) defNode()   {}
func (*StructDef) defNode() {}
func (*EnumDef) defNode()   {}
