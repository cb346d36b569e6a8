package mods

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/frittesauce/Eclipse/common"

	"github.com/pelletier/go-toml"
)

// InitModule creates a new module with the given name at the given path.  The
// module is given a default debug profile and a release profile.
func InitModule(name, path string) error {
	// convert the module directory to the path to module file
	modFilePath := filepath.Join(path, common.ModuleFileName)

	// check to see if a module already exists
	_, err := os.Stat(modFilePath)
	if err == nil {
		return errors.New("module file already exists")
	}

	if !os.IsNotExist(err) {
		return fmt.Errorf("module file error: %s", err.Error())
	}

	// validate module name
	if !IsValidIdentifier(name) {
		return errors.New("module name must be a valid identifier")
	}

	mod := &tomlModule{
		Name:          name,
		Version:       common.EclipseVersion,
		Entry:         common.DefaultEntryUnit,
		BuildProfiles: []*tomlProfile{newInitProfile(name, true), newInitProfile(name, false)},
	}

	// encode and save module to file
	f, err := os.Create(modFilePath)
	if err != nil {
		return fmt.Errorf("error creating module file: %s", err.Error())
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(&tomlModuleFile{Module: mod}); err != nil {
		return fmt.Errorf("error encoding TOML %s", err.Error())
	}

	return nil
}

// newInitProfile creates a new initial profile for a module
func newInitProfile(modName string, debug bool) *tomlProfile {
	prof := &tomlProfile{
		Format:      "bin",
		Debug:       debug,
		DefaultProf: debug, // debug profile is the default
	}

	if debug {
		prof.Name = "debug"
		prof.OutputPath = filepath.Join("bin", modName+"_debug")
	} else {
		prof.Name = "release"
		prof.OutputPath = filepath.Join("bin", modName)
	}

	if strings.Contains(runtime.GOOS, "windows") {
		prof.OutputPath += ".exe"
	}

	return prof
}
