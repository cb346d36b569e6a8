package mods

import (
	"os"
	"path/filepath"

	"github.com/frittesauce/Eclipse/common"

	"github.com/pelletier/go-toml"
)

// FindModuleRoot searches the given path and each of its parent directories
// for a module and returns the first module root found.
func FindModuleRoot(path string) (string, bool) {
	abspath, err := filepath.Abs(path)
	if err != nil {
		return "", false
	}

	for {
		if checkPath(abspath) {
			return abspath, true
		}

		parent := filepath.Dir(abspath)
		if parent == abspath {
			return "", false
		}

		abspath = parent
	}
}

// checkPath checks to see if a potential module path is valid -- accepts the
// path to the module root not the path to the module file
func checkPath(abspath string) bool {
	// convert the abs path into a path to the module file
	mfPath := filepath.Join(abspath, common.ModuleFileName)

	// check to see if we can open the module file
	finfo, err := os.Stat(mfPath)
	if err != nil || finfo.IsDir() {
		return false
	}

	// only the name is checked here so we don't do the full unmarshal.  An
	// invalid module is not an error since the user didn't explicitly specify
	// that this path was a module.
	tree, err := toml.LoadFile(mfPath)
	if err != nil {
		return false
	}

	_, ok := tree.Get("module.name").(string)
	return ok
}
