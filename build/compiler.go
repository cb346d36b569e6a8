package build

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/frittesauce/Eclipse/depm"
	"github.com/frittesauce/Eclipse/generate"
	"github.com/frittesauce/Eclipse/ir"
	"github.com/frittesauce/Eclipse/lower"
	"github.com/frittesauce/Eclipse/mods"
	"github.com/frittesauce/Eclipse/report"
	"github.com/frittesauce/Eclipse/syntax"
)

// Options are the command-line options which affect compilation.
type Options struct {
	// WarnUnused enables unused variable warnings.
	WarnUnused bool

	// EmitIR prints the lowered program before it is generated.
	EmitIR bool
}

// Compiler is the data structure responsible for maintaining all high-level
// state of the Eclipse compiler.
type Compiler struct {
	rep *report.Reporter

	// rootMod is the root module of the project being built
	rootMod *mods.EclipseModule

	// buildProfile is the profile that is being used to build the project
	buildProfile *mods.BuildProfile

	opts Options

	// prog is the loaded import tree of the program.
	prog *depm.Program

	// irProg is the lowered program.  It is only set if analysis succeeded.
	irProg *ir.Program
}

// NewCompiler creates a new compiler for a given root module and build profile
func NewCompiler(rep *report.Reporter, rootMod *mods.EclipseModule, buildProfile *mods.BuildProfile, opts Options) *Compiler {
	return &Compiler{
		rep:          rep,
		rootMod:      rootMod,
		buildProfile: buildProfile,
		opts:         opts,
	}
}

// Compile runs the full compilation algorithm on the root module and build
// profile.  It handles all compilation errors appropriately and returns
// whether compilation succeeded.
func (c *Compiler) Compile() bool {
	ok := c.Analyze() && c.generate() && c.link()
	c.rep.DisplayCompilationFinished()
	return ok
}

// Analyze runs just the analysis portion of the compilation algorithm: the
// program is loaded and lowered but nothing is written.  This is exported for
// usage in the CLI (`eclipse check`).  It returns a boolean indicating whether
// or not analysis was successful.
func (c *Compiler) Analyze() bool {
	target := c.buildProfile.TargetTriple
	if target == "" {
		target = "host"
	}
	c.rep.DisplayCompileHeader(target)

	c.rep.BeginPhase("Loading")
	prog, err := syntax.LoadProgram(c.rootMod.ModuleRoot, c.rootMod.Entry, c.rootMod.Name)
	if err != nil {
		c.rep.EndPhase(false)
		report.PrintErrorMessage("Load", err)
		return false
	}
	c.prog = prog
	c.rep.EndPhase(true)

	c.rep.BeginPhase("Analyzing")
	irProg, err := lower.LowerProgram(c.rep, c.prog, lower.Options{WarnUnused: c.opts.WarnUnused})
	success := err == nil && !c.rep.AnyErrors()
	c.rep.EndPhase(success)
	c.rep.Flush()

	if success {
		c.irProg = irProg
	}

	return success
}

// generate converts the lowered program into LLVM IR and writes it to the
// output path with the extension `.ll`.
func (c *Compiler) generate() (ok bool) {
	if c.opts.EmitIR {
		fmt.Print(c.irProg.Repr())
	}

	c.rep.BeginPhase("Generating")

	// generation never fails on a program which was lowered without errors: a
	// failure here is a bug in the compiler
	defer func() {
		if x := recover(); x != nil {
			c.rep.EndPhase(false)
			report.PrintErrorMessage("Internal", fmt.Errorf("internal compiler error: %v", x))
			ok = false
		}
	}()

	mod := generate.NewGenerator(c.irProg).Generate()

	if err := os.MkdirAll(filepath.Dir(c.buildProfile.OutputPath), 0755); err != nil {
		c.rep.EndPhase(false)
		report.PrintErrorMessage("Output", err)
		return false
	}

	if err := generate.WriteModule(mod, c.llPath()); err != nil {
		c.rep.EndPhase(false)
		report.PrintErrorMessage("Output", err)
		return false
	}

	c.rep.EndPhase(true)
	return true
}

// llPath returns the path the LLVM IR output is written to.
func (c *Compiler) llPath() string {
	return c.buildProfile.OutputPath + ".ll"
}
