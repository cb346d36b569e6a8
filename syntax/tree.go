package syntax

import (
	"encoding/gob"
	"fmt"
	"os"

	"github.com/frittesauce/Eclipse/ast"
	"github.com/frittesauce/Eclipse/types"
)

// Every concrete type that can appear behind an interface in a syntax tree
// must be registered with gob.
func init() {
	gob.Register(&ast.FuncDef{})
	gob.Register(&ast.StructDef{})
	gob.Register(&ast.EnumDef{})

	gob.Register(&ast.VarDecl{})
	gob.Register(&ast.Assignment{})
	gob.Register(&ast.CallStmt{})
	gob.Register(&ast.ReturnStmt{})
	gob.Register(&ast.Block{})
	gob.Register(&ast.IfStmt{})
	gob.Register(&ast.LoopStmt{})
	gob.Register(&ast.KeywordStmt{})

	gob.Register(&ast.Literal{})
	gob.Register(&ast.Identifier{})
	gob.Register(&ast.Call{})
	gob.Register(&ast.ArrayLit{})
	gob.Register(&ast.TupleLit{})
	gob.Register(&ast.Index{})
	gob.Register(&ast.BinaryOp{})
	gob.Register(&ast.UnaryOp{})
	gob.Register(&ast.EnumValue{})

	gob.Register(types.PrimType(0))
	gob.Register(&types.ArrayType{})
	gob.Register(&types.TupleType{})
	gob.Register(&types.PointerType{})
	gob.Register(&types.StructType{})
	gob.Register(&types.EnumType{})
}

// LoadTree reads the syntax tree of a single unit from a tree file.
func LoadTree(path string) (*ast.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	file := &ast.File{}
	if err := gob.NewDecoder(f).Decode(file); err != nil {
		return nil, fmt.Errorf("malformed tree file `%s`: %w", path, err)
	}

	return file, nil
}

// WriteTree writes the syntax tree of a single unit to a tree file.
func WriteTree(path string, file *ast.File) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := gob.NewEncoder(f).Encode(file); err != nil {
		return fmt.Errorf("failed to encode tree file `%s`: %w", path, err)
	}

	return nil
}
