package lower

import (
	"sort"

	"github.com/frittesauce/Eclipse/ast"
	"github.com/frittesauce/Eclipse/common"
	"github.com/frittesauce/Eclipse/depm"
	"github.com/frittesauce/Eclipse/ir"
	"github.com/frittesauce/Eclipse/report"
	"github.com/frittesauce/Eclipse/types"
)

// Options configures optional lowering behavior.
type Options struct {
	// WarnUnused enables warnings for unused and never-mutated variables.
	WarnUnused bool
}

// Lowerer converts every function body of a program into IR.
type Lowerer struct {
	rep   *report.Reporter
	names *common.NameCounter
	table *depm.FuncTable
	opts  Options

	prog *ir.Program

	// structTypes caches the IR types of struct definitions by name.
	structTypes map[string]*ir.StructType

	// unit is the unit whose functions are being lowered.
	unit *depm.UnitTable

	// fn is the function being lowered and sig is its signature.
	fn  *ir.Function
	sig *depm.FuncSig

	// vars is the scope stack of the function being lowered.
	vars *depm.VariableTable

	// outSlot is the key of the output parameter of a function returning a
	// composite value.  It is empty for all other functions.
	outSlot string

	// terminated is set once a return has been lowered in the current
	// function; warnedUnreachable prevents repeat unreachable code warnings.
	terminated, warnedUnreachable bool
}

// NewLowerer creates a new lowerer.  The function table must be fully built
// and all names must be drawn from the same counter the table was built with.
func NewLowerer(rep *report.Reporter, names *common.NameCounter, table *depm.FuncTable, opts Options) *Lowerer {
	return &Lowerer{
		rep:         rep,
		names:       names,
		table:       table,
		opts:        opts,
		structTypes: make(map[string]*ir.StructType),
	}
}

// LowerProgram builds the function table for a program and lowers it.  See
// `Lowerer.Lower` for the meaning of the return values.
func LowerProgram(rep *report.Reporter, prog *depm.Program, opts Options) (*ir.Program, error) {
	names := common.NewNameCounter()
	table := depm.NewFuncTable(rep, names, prog)
	return NewLowerer(rep, names, table, opts).Lower()
}

// Lower lowers every function in the program.  Units are lowered in the same
// order the function table registered them: imports before the unit's own
// functions.  An error is returned only if lowering could not complete; the
// returned program should still not be emitted if any errors were reported.
func (l *Lowerer) Lower() (prog *ir.Program, err error) {
	defer func() {
		if x := recover(); x != nil {
			if lce, ok := x.(*report.LocalCompileError); ok {
				l.rep.ReportCompileError(l.srcPath(), report.LoweringUnsupported, lce.Span, lce.Message)

				prog = nil
				err = lce
				return
			}

			panic(x)
		}
	}()

	l.prog = &ir.Program{}

	for _, builtin := range depm.Builtins() {
		decl := &ir.FuncDecl{Name: builtin.Key, ReturnType: l.convType(builtin.ReturnType)}
		for _, param := range builtin.Params {
			decl.Params = append(decl.Params, l.convParamType(param))
		}

		l.prog.Decls = append(l.prog.Decls, decl)
	}

	structNames := make([]string, 0, len(l.table.Structs))
	for name := range l.table.Structs {
		structNames = append(structNames, name)
	}
	sort.Strings(structNames)

	for _, name := range structNames {
		l.prog.Structs = append(l.prog.Structs, l.structType(name, nil))
	}

	for _, ut := range l.table.Units() {
		l.unit = ut

		for _, sig := range ut.Functions() {
			l.prog.Functions = append(l.prog.Functions, l.lowerFunc(sig))
		}
	}

	l.unit = nil
	return l.prog, nil
}

// -----------------------------------------------------------------------------

// emit appends an operation to the current function.
func (l *Lowerer) emit(op ir.Op) {
	l.fn.Emit(op)
}

// srcPath returns the display path of the unit being lowered.
func (l *Lowerer) srcPath() string {
	if l.unit == nil {
		return ""
	}

	return l.unit.Unit.SrcPath()
}

// error reports a compile error in the current unit.
func (l *Lowerer) error(kind report.Kind, span *report.TextSpan, msg string, args ...interface{}) *report.Diagnostic {
	return l.rep.ReportCompileError(l.srcPath(), kind, span, msg, args...)
}

// warn reports a compile warning in the current unit.
func (l *Lowerer) warn(kind report.Kind, span *report.TextSpan, msg string, args ...interface{}) *report.Diagnostic {
	return l.rep.ReportCompileWarning(l.srcPath(), kind, span, msg, args...)
}

// unsupported aborts lowering with a construct that cannot be lowered.
func (l *Lowerer) unsupported(span *report.TextSpan, msg string, args ...interface{}) {
	panic(report.Raise(span, msg, args...))
}

// declare declares a local variable in the current scope, reporting any
// duplicate definition.
func (l *Lowerer) declare(name string, mutable bool, typ types.DataType, span *report.TextSpan) (*depm.Variable, bool) {
	v, ok := l.vars.Declare(name, mutable, typ, span)
	if !ok {
		l.reportDuplicate(v, span)
	}

	return v, ok
}

func (l *Lowerer) reportDuplicate(prev *depm.Variable, span *report.TextSpan) {
	l.error(report.DuplicateDefinition, span, "variable `%s` is already declared in this scope", prev.Name).
		WithSecondary(prev.Span, "previously declared here")
}

// popScope pops the current scope and reports unused variables if enabled.
func (l *Lowerer) popScope() {
	removed := l.vars.PopScope()
	if !l.opts.WarnUnused {
		return
	}

	for _, v := range removed {
		if !v.Read && !v.Mutated {
			l.warn(report.UnusedVariable, v.Span, "variable `%s` is never used", v.Name)
		} else if v.Mutable && !v.Mutated {
			l.warn(report.UnusedVariable, v.Span, "variable `%s` is declared mutable but never mutated", v.Name).
				WithNote("help: remove `mut`")
		}
	}
}

// checkType reports a type mismatch between an expected type and the type of
// a lowered value.  Unknown types are never reported.
func (l *Lowerer) checkType(expected, got types.DataType, span *report.TextSpan) bool {
	if expected == nil || got == nil || types.Equals(expected, got) {
		return true
	}

	l.error(report.TypeMismatch, span, "expected a value of type `%s` but got `%s`", expected.Repr(), got.Repr())
	return false
}

// isUntypedLit returns whether an expression is a numeric literal: the type of
// such literals is decided by the context they appear in.
func isUntypedLit(expr ast.Expr) bool {
	switch v := expr.(type) {
	case *ast.Literal:
		return v.Kind == ast.LitInt || v.Kind == ast.LitFloat
	case *ast.UnaryOp:
		return v.Op == ast.OpNeg && isUntypedLit(v.Operand)
	default:
		return false
	}
}
