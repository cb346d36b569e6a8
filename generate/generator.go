package generate

import (
	"fmt"

	mir "github.com/frittesauce/Eclipse/ir"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
)

// Generator is responsible for converting a lowered program into an LLVM
// module.  Generation is assumed to always succeed: the lowered program has
// already been checked so any inconsistency found here is fatal.
type Generator struct {
	// prog is the lowered program being converted.
	prog *mir.Program

	// mod is the LLVM module being generated.
	mod *ir.Module

	// funcs maps function keys to their LLVM functions.
	funcs map[string]*ir.Func

	// strings maps the keys of static strings to their globals.
	strings map[string]*ir.Global

	// structs maps struct names to their LLVM type definitions.
	structs map[string]*types.StructType

	// printf is the C `printf` function, declared on first use.
	printf *ir.Func

	// fn is the function being generated and block is its current block.
	fn    *ir.Func
	block *ir.Block

	// locals maps the registers and memory slots of the function being
	// generated to their LLVM values.
	locals map[string]value.Value
}

// NewGenerator creates a new generator for the given program.
func NewGenerator(prog *mir.Program) *Generator {
	return &Generator{
		prog:    prog,
		mod:     ir.NewModule(),
		funcs:   make(map[string]*ir.Func),
		strings: make(map[string]*ir.Global),
		structs: make(map[string]*types.StructType),
	}
}

// Generate converts the program into an LLVM module.  Everything is declared
// before any function body is generated so that definitions may appear in any
// order.
func (g *Generator) Generate() *ir.Module {
	// struct fields are filled in after every struct is named so that structs
	// can refer to each other
	for _, st := range g.prog.Structs {
		llStruct := types.NewStruct()
		g.mod.NewTypeDef(st.Name, llStruct)
		g.structs[st.Name] = llStruct
	}

	for _, st := range g.prog.Structs {
		llStruct := g.structs[st.Name]
		for _, field := range st.Fields {
			llStruct.Fields = append(llStruct.Fields, g.convType(field))
		}
	}

	for _, str := range g.prog.Strings {
		g.strings[str.Key] = g.genStaticString("str."+str.Key, str.Value)
	}

	for _, decl := range g.prog.Decls {
		g.genDecl(decl)
	}

	for _, fn := range g.prog.Functions {
		g.declareFunc(fn)
	}

	for _, fn := range g.prog.Functions {
		g.genFuncBody(fn)
	}

	return g.mod
}

// -----------------------------------------------------------------------------

// declareFunc creates the LLVM function for a lowered function.  Functions
// which are not public are internal to the module.
func (g *Generator) declareFunc(fn *mir.Function) {
	params := make([]*ir.Param, len(fn.Params))
	for i, param := range fn.Params {
		params[i] = ir.NewParam("", g.convType(param.Type))
	}

	llFunc := g.mod.NewFunc(fn.Name, g.convType(fn.ReturnType), params...)
	if !fn.Public {
		llFunc.Linkage = enum.LinkageInternal
	}

	g.funcs[fn.Name] = llFunc
}

// genFuncBody generates the operations of a function into a single entry
// block.
func (g *Generator) genFuncBody(fn *mir.Function) {
	g.fn = g.funcs[fn.Name]
	g.block = g.fn.NewBlock("entry")
	g.locals = make(map[string]value.Value)

	for i, param := range fn.Params {
		g.locals[param.Key] = g.fn.Params[i]
	}

	for _, op := range fn.Ops {
		// nothing may follow a terminator in the same block
		if g.block.Term != nil {
			if _, ok := op.(*mir.Label); !ok {
				continue
			}
		}

		g.genOp(op)
	}

	if g.block.Term == nil {
		g.block.NewUnreachable()
	}

	g.fn, g.block, g.locals = nil, nil, nil
}

// lookupLocal returns the value of a register or memory slot.
func (g *Generator) lookupLocal(key string) value.Value {
	if val, ok := g.locals[key]; ok {
		return val
	}

	panic(fmt.Sprintf("undefined register `%%%s` in function `%s`", key, g.fn.Name()))
}

// lookupFunc returns the function with the given key.
func (g *Generator) lookupFunc(key string) *ir.Func {
	if fn, ok := g.funcs[key]; ok {
		return fn
	}

	panic(fmt.Sprintf("undefined function `@%s`", key))
}
