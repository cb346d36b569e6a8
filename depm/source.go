package depm

import (
	"sort"

	"github.com/frittesauce/Eclipse/ast"
)

// Unit is a single compilation unit: one parsed file and the units it imports.
// Units form a tree rooted at the program's root unit.
type Unit struct {
	// Name is the name the unit is imported by.
	Name string

	// File is the syntax tree of the unit.
	File *ast.File

	// Imports maps import names to the imported units.
	Imports map[string]*Unit
}

// NewUnit creates a new unit with no imports for the given file.
func NewUnit(file *ast.File) *Unit {
	return &Unit{
		Name:    file.Name,
		File:    file,
		Imports: make(map[string]*Unit),
	}
}

// AddImport adds an imported unit under its name.
func (u *Unit) AddImport(imported *Unit) {
	u.Imports[imported.Name] = imported
}

// ImportNames returns the names of the unit's imports in ascending order: the
// order in which imports are always processed.
func (u *Unit) ImportNames() []string {
	names := make([]string, 0, len(u.Imports))
	for name := range u.Imports {
		names = append(names, name)
	}

	sort.Strings(names)
	return names
}

// SrcPath returns the path used to display diagnostics for this unit.
func (u *Unit) SrcPath() string {
	if u.File.SrcPath != "" {
		return u.File.SrcPath
	}

	return u.Name
}

// Program is the full import tree of a program.
type Program struct {
	Root *Unit
}
