package syntax

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/frittesauce/Eclipse/ast"
	"github.com/frittesauce/Eclipse/common"
	"github.com/frittesauce/Eclipse/depm"
)

// TreePath returns the path to the tree file of the unit `name` in `dir`.
func TreePath(dir, name string) string {
	return filepath.Join(dir, name+common.TreeFileExtension)
}

// LoadProgram loads the import tree of a program.  The root unit is read from
// the entry path (relative to the module root, without extension) and is
// named after the module.  The imports of a unit `<dir>/<name>` are read from
// the directory `<dir>/<name>`.
func LoadProgram(moduleRoot, entry, moduleName string) (*depm.Program, error) {
	entryPath := filepath.Join(moduleRoot, filepath.FromSlash(entry))

	root, err := loadUnit(filepath.Dir(entryPath), filepath.Base(entryPath))
	if err != nil {
		return nil, err
	}

	root.Name = moduleName
	root.File.Name = moduleName
	return &depm.Program{Root: root}, nil
}

// loadUnit loads a unit and all the units it imports.
func loadUnit(dir, name string) (*depm.Unit, error) {
	path := TreePath(dir, name)

	file, err := LoadTree(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("no tree file for unit `%s` at `%s`", name, path)
		}

		return nil, err
	}

	file.Name = name
	if file.SrcPath == "" {
		file.SrcPath = filepath.Join(dir, name+common.SrcFileExtension)
	}

	unit := depm.NewUnit(file)

	importDir := filepath.Join(dir, name)
	for _, imp := range file.Imports {
		if _, ok := unit.Imports[imp.Name]; ok {
			continue
		}

		imported, err := loadUnit(importDir, imp.Name)
		if err != nil {
			return nil, importError(file, imp, err)
		}

		unit.AddImport(imported)
	}

	return unit, nil
}

// importError attaches the location of an import statement to the error
// which occurred loading the imported unit.
func importError(file *ast.File, imp *ast.Import, err error) error {
	return fmt.Errorf("%s:%s: failed to import `%s`: %w", file.SrcPath, imp.Span(), imp.Name, err)
}
