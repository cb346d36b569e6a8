package mods

import (
	"errors"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/frittesauce/Eclipse/common"
	"github.com/frittesauce/Eclipse/report"

	"github.com/pelletier/go-toml"
)

// tomlModuleFile represents the module file as it is encoded in TOML
type tomlModuleFile struct {
	Module *tomlModule `toml:"module"`
}

// tomlModule represents an Eclipse module as it is encoded in TOML
type tomlModule struct {
	Name          string         `toml:"name"`
	Version       string         `toml:"eclipse-version"`
	Entry         string         `toml:"entry,omitempty"`
	BuildProfiles []*tomlProfile `toml:"profiles"`
}

// tomlProfile represents a profile as it encoded in TOML
type tomlProfile struct {
	Name         string `toml:"name"`
	OutputPath   string `toml:"output"`
	Format       string `toml:"format"`
	Debug        bool   `toml:"debug"`
	DefaultProf  bool   `toml:"default"` // in absence of a selected profile, choose this profile
	TargetTriple string `toml:"target-triple,omitempty"`
}

// LoadModule loads and validates a module as well as determining the build
// profile to use.  `path` is the path to the module directory.
// `selectedProfile` is empty if no profile was selected in which case the
// module's default profile is used.
func LoadModule(path, selectedProfile string) (*EclipseModule, *BuildProfile, error) {
	// open file
	f, err := os.Open(filepath.Join(path, common.ModuleFileName))
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	// unmarshal the contents
	buff, err := ioutil.ReadAll(f)
	if err != nil {
		return nil, nil, err
	}
	tmf := &tomlModuleFile{}
	if err := toml.Unmarshal(buff, tmf); err != nil {
		return nil, nil, err
	}

	if tmf.Module == nil {
		return nil, nil, fmt.Errorf("module file at %s is missing a `[module]` table", path)
	}

	eclMod := &EclipseModule{
		// module root is the directory enclosing the module file
		ModuleRoot: path,
	}

	if err := validateModule(eclMod, tmf.Module); err != nil {
		return nil, nil, err
	}

	profile, err := selectProfile(tmf.Module, selectedProfile)
	if err != nil {
		return nil, nil, err
	}

	// output paths are relative to the module root
	if !filepath.IsAbs(profile.OutputPath) {
		profile.OutputPath = filepath.Join(path, profile.OutputPath)
	}

	eclMod.Name = tmf.Module.Name
	eclMod.Version = tmf.Module.Version
	eclMod.Entry = tmf.Module.Entry
	if eclMod.Entry == "" {
		eclMod.Entry = common.DefaultEntryUnit
	}

	return eclMod, profile, nil
}

// validateModule checks that the top level module contents are valid
func validateModule(emod *EclipseModule, mod *tomlModule) error {
	if mod.Name == "" {
		return fmt.Errorf("missing module name for module at %s", emod.ModuleRoot)
	}

	if !IsValidIdentifier(mod.Name) {
		return errors.New("module name must be a valid identifier")
	}

	if filepath.IsAbs(mod.Entry) {
		return fmt.Errorf("entry of module `%s` must be relative to the module root", mod.Name)
	}

	if mod.Version != common.EclipseVersion {
		report.PrintWarningMessage(
			"module",
			fmt.Sprintf("version of module `%s` (v%s) does not match current eclipse version (v%s)", mod.Name, mod.Version, common.EclipseVersion),
		)
	}

	return nil
}

// selectProfile selects the named profile or the default profile if no
// profile is named.  If the module has exactly one profile, it is the default.
func selectProfile(mod *tomlModule, selectedProfile string) (*BuildProfile, error) {
	if len(mod.BuildProfiles) == 0 {
		return nil, fmt.Errorf("module `%s` must provide at least one build profile", mod.Name)
	}

	if selectedProfile != "" {
		for _, prof := range mod.BuildProfiles {
			if prof.Name == selectedProfile {
				convProf, err := convertProfile(prof)
				if err != nil {
					return nil, fmt.Errorf("%s in module `%s`", err.Error(), mod.Name)
				}

				return convProf, nil
			}
		}

		return nil, fmt.Errorf("module `%s` has no profile `%s`", mod.Name, selectedProfile)
	}

	if len(mod.BuildProfiles) == 1 {
		return convertProfile(mod.BuildProfiles[0])
	}

	for _, prof := range mod.BuildProfiles {
		if prof.DefaultProf {
			return convertProfile(prof)
		}
	}

	return nil, fmt.Errorf("module `%s` does not specify a default profile; `--profile` argument is required", mod.Name)
}

// formatNames maps TOML format name strings to enumerated format values
var formatNames = map[string]int{
	"bin":  FormatBin,
	"llvm": FormatLLVM,
}

// convertProfile converts a TOML build profile into a `*BuildProfile`
func convertProfile(tprof *tomlProfile) (*BuildProfile, error) {
	if tprof.Name == "" {
		return nil, errors.New("profile must specify a name")
	}

	if tprof.OutputPath == "" {
		return nil, errors.New("profile must specify an output path")
	}

	if tprof.Format == "" {
		return nil, errors.New("profile must specify an output format")
	}

	newProfile := &BuildProfile{
		Name:         tprof.Name,
		OutputPath:   tprof.OutputPath,
		Debug:        tprof.Debug,
		TargetTriple: tprof.TargetTriple,
	}

	if formatVal, ok := formatNames[tprof.Format]; ok {
		newProfile.OutputFormat = formatVal
	} else {
		return nil, fmt.Errorf("%s is not a valid output format", tprof.Format)
	}

	return newProfile, nil
}
