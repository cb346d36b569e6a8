package depm

import (
	"strings"

	"github.com/frittesauce/Eclipse/ast"
	"github.com/frittesauce/Eclipse/common"
	"github.com/frittesauce/Eclipse/report"
	"github.com/frittesauce/Eclipse/types"
)

// FuncSig is the signature of a function registered in the function table.
type FuncSig struct {
	Name string

	// Key is the unique low-level name of the function.
	Key string

	Params     []types.DataType
	ReturnType types.DataType
	Public     bool

	// Builtin indicates that the function is provided by the runtime.
	Builtin bool

	// Def is the definition of the function.  It is nil for builtins.
	Def *ast.FuncDef
}

// UnitTable is the table of functions defined in a single unit.
type UnitTable struct {
	Unit *Unit

	// Path is the list of import names leading from the root unit to this unit.
	// The root unit's path is empty.
	Path []string

	Funcs   map[string]*FuncSig
	Imports map[string]*UnitTable

	// funcOrder lists the user-defined functions in source order.
	funcOrder []*FuncSig
}

// Functions returns the user-defined functions of the unit in source order.
func (ut *UnitTable) Functions() []*FuncSig {
	return ut.funcOrder
}

// FuncTable is the program-wide table of function signatures.  It is built
// once before lowering and is never modified afterward.
type FuncTable struct {
	Root *UnitTable

	// Structs and Enums contain every type definition in the program by name.
	// Both share one namespace.
	Structs map[string]*ast.StructDef
	Enums   map[string]*ast.EnumDef

	// order lists every unit table in processing order.
	order []*UnitTable

	rep   *report.Reporter
	names *common.NameCounter

	// visiting is the set of units on the current import chain.
	visiting map[*Unit]bool
}

// NewFuncTable builds the function table for a program.  Units are processed
// depth-first: a unit's imports (in ascending name order) are processed before
// the unit's own definitions.
func NewFuncTable(rep *report.Reporter, names *common.NameCounter, prog *Program) *FuncTable {
	ft := &FuncTable{
		Structs:  make(map[string]*ast.StructDef),
		Enums:    make(map[string]*ast.EnumDef),
		rep:      rep,
		names:    names,
		visiting: make(map[*Unit]bool),
	}

	ft.Root = ft.addUnit(prog.Root, nil)
	return ft
}

// Units returns all unit tables in processing order.
func (ft *FuncTable) Units() []*UnitTable {
	return ft.order
}

// addUnit creates the unit table for a unit at the given path.
func (ft *FuncTable) addUnit(u *Unit, path []string) *UnitTable {
	ut := &UnitTable{
		Unit:    u,
		Path:    path,
		Funcs:   make(map[string]*FuncSig),
		Imports: make(map[string]*UnitTable),
	}

	ft.visiting[u] = true

	for _, name := range u.ImportNames() {
		imported := u.Imports[name]

		if ft.visiting[imported] {
			ft.rep.ReportCompileError(
				u.SrcPath(),
				report.CyclicImport,
				ft.importSpan(u, name),
				"import of `%s` creates an import cycle",
				name,
			)

			continue
		}

		importPath := make([]string, len(path)+1)
		copy(importPath, path)
		importPath[len(path)] = name

		ut.Imports[name] = ft.addUnit(imported, importPath)
	}

	delete(ft.visiting, u)

	if len(path) == 0 {
		for _, builtin := range Builtins() {
			ut.Funcs[builtin.Name] = builtin
		}
	}

	for _, def := range u.File.Defs {
		switch v := def.(type) {
		case *ast.FuncDef:
			ft.addFunc(ut, v)
		case *ast.StructDef:
			if ft.checkTypeName(ut, v) {
				ft.Structs[v.Name] = v
			}
		case *ast.EnumDef:
			if ft.checkTypeName(ut, v) {
				ft.Enums[v.Name] = v
			}
		}
	}

	ft.order = append(ft.order, ut)
	return ut
}

// addFunc registers a function definition in a unit table.
func (ft *FuncTable) addFunc(ut *UnitTable, fd *ast.FuncDef) {
	if prev, ok := ut.Funcs[fd.Name]; ok {
		d := ft.rep.ReportCompileError(
			ut.Unit.SrcPath(),
			report.DuplicateDefinition,
			fd.Span(),
			"function `%s` is defined multiple times",
			fd.Name,
		)

		if prev.Def != nil {
			d.WithSecondary(prev.Def.Span(), "previously defined here")
		}

		return
	}

	sig := &FuncSig{
		Name:       fd.Name,
		Params:     make([]types.DataType, len(fd.Params)),
		ReturnType: fd.ReturnType,
		Public:     fd.Public,
		Def:        fd,
	}

	if sig.ReturnType == nil {
		sig.ReturnType = types.PrimKindUnit
	}

	for i, param := range fd.Params {
		sig.Params[i] = param.Type
	}

	if len(ut.Path) == 0 && fd.Name == common.EntryFuncName {
		sig.Key = common.EntryFuncName
	} else {
		segments := append(append([]string{}, ut.Path...), fd.Name, ft.names.Next())
		sig.Key = strings.Join(segments, ".")
	}

	ut.Funcs[fd.Name] = sig
	ut.funcOrder = append(ut.funcOrder, sig)
}

// checkTypeName reports a type definition whose name is already taken by
// another struct or enum.  Type names share one namespace across the whole
// program.
func (ft *FuncTable) checkTypeName(ut *UnitTable, def ast.Def) bool {
	var prev ast.Def
	if sd, ok := ft.Structs[def.DefName()]; ok {
		prev = sd
	} else if ed, ok := ft.Enums[def.DefName()]; ok {
		prev = ed
	} else {
		return true
	}

	ft.rep.ReportCompileError(
		ut.Unit.SrcPath(),
		report.DuplicateDefinition,
		def.Span(),
		"type `%s` is defined multiple times",
		def.DefName(),
	).WithSecondary(prev.Span(), "previously defined here")

	return false
}

func (ft *FuncTable) importSpan(u *Unit, name string) *report.TextSpan {
	for _, imp := range u.File.Imports {
		if imp.Name == name {
			return imp.Span()
		}
	}

	return nil
}

// -----------------------------------------------------------------------------

// Resolve resolves a qualified function path relative to the path of the unit
// currently being lowered.  The leading segments of the query are module
// segments: `root` clears the accumulated path, `super` drops its last
// component, and any other segment is appended.  The final segment is the
// function name.
func (ft *FuncTable) Resolve(current []string, query []string) (*FuncSig, bool) {
	if len(query) == 0 {
		return nil, false
	}

	path := make([]string, len(current))
	copy(path, current)

	for _, segment := range query[:len(query)-1] {
		switch segment {
		case ast.RootSegment:
			path = path[:0]
		case ast.SuperSegment:
			if len(path) == 0 {
				return nil, false
			}

			path = path[:len(path)-1]
		default:
			path = append(path, segment)
		}
	}

	ut, ok := ft.Lookup(path)
	if !ok {
		return nil, false
	}

	sig, ok := ut.Funcs[query[len(query)-1]]
	return sig, ok
}

// Lookup walks the table from the root unit along a path of import names.
func (ft *FuncTable) Lookup(path []string) (*UnitTable, bool) {
	ut := ft.Root
	for _, segment := range path {
		next, ok := ut.Imports[segment]
		if !ok {
			return nil, false
		}

		ut = next
	}

	return ut, true
}
