package generate

import (
	mir "github.com/frittesauce/Eclipse/ir"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
)

// runtimeHelpers are the builtins which are defined in the module itself
// rather than linked in from the C library.
var runtimeHelpers = map[string]func(g *Generator, fn *ir.Func){
	"print": (*Generator).genPrintHelper,
}

// genDecl generates a builtin function.  Builtins are either helpers defined
// in the module or external declarations resolved at link time.
func (g *Generator) genDecl(decl *mir.FuncDecl) {
	params := make([]*ir.Param, len(decl.Params))
	for i, param := range decl.Params {
		params[i] = ir.NewParam("", g.convType(param))
	}

	llFunc := g.mod.NewFunc(decl.Name, g.convType(decl.ReturnType), params...)
	g.funcs[decl.Name] = llFunc

	if genHelper, ok := runtimeHelpers[decl.Name]; ok {
		llFunc.Linkage = enum.LinkageInternal
		genHelper(g, llFunc)
	}
}

// genPrintHelper defines `print` which writes an integer followed by a newline
// to standard out using `printf`.
func (g *Generator) genPrintHelper(fn *ir.Func) {
	format := g.genStaticString("print.fmt", "%d\n")

	block := fn.NewBlock("entry")
	formatPtr := block.NewBitCast(format, types.I8Ptr)
	block.NewCall(g.getPrintf(), formatPtr, fn.Params[0])
	block.NewRet(nil)
}

// getPrintf returns the C `printf` function.
func (g *Generator) getPrintf() *ir.Func {
	if g.printf == nil {
		g.printf = g.mod.NewFunc("printf", types.I32, ir.NewParam("", types.I8Ptr))
		g.printf.Sig.Variadic = true
	}

	return g.printf
}

// genStaticString generates a private, null terminated string constant.
func (g *Generator) genStaticString(name, value string) *ir.Global {
	global := g.mod.NewGlobalDef(name, constant.NewCharArrayFromString(value+"\x00"))
	global.Linkage = enum.LinkagePrivate
	global.Immutable = true
	return global
}
