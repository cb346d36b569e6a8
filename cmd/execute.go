package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/frittesauce/Eclipse/build"
	"github.com/frittesauce/Eclipse/common"
	"github.com/frittesauce/Eclipse/mods"
	"github.com/frittesauce/Eclipse/report"

	"github.com/ComedicChimera/olive"
)

// Execute runs the main `eclipse` application and returns its exit code.
func Execute() int {
	// set up the argument parser and all its extended commands and arguments
	cli := olive.NewCLI("eclipse", "eclipse is a tool for building Eclipse programs", true)
	logLvlArg := cli.AddSelectorArg("loglevel", "ll", "the compiler log level", false, []string{"silent", "error", "warn", "verbose"})
	logLvlArg.SetDefaultValue("verbose")

	buildCmd := cli.AddSubcommand("build", "compile a module", true)
	buildCmd.AddPrimaryArg("module-path", "the path to the module to build", true)
	buildCmd.AddStringArg("profile", "p", "the name of the profile to build", false)
	buildCmd.AddFlag("warn-unused", "wu", "warn about unused variables")
	buildCmd.AddFlag("emit-ir", "ir", "print the lowered program before generating it")

	checkCmd := cli.AddSubcommand("check", "check a module for errors without building it", true)
	checkCmd.AddPrimaryArg("module-path", "the path to the module to check", true)
	checkCmd.AddFlag("warn-unused", "wu", "warn about unused variables")

	modCmd := cli.AddSubcommand("mod", "manage modules", true)
	modInitCmd := modCmd.AddSubcommand("init", "initialize a module in the working directory", true)
	modInitCmd.AddPrimaryArg("module-name", "the name of the new module", true)

	cli.AddSubcommand("version", "print the Eclipse version", false)

	// run the argument parser
	result, err := olive.ParseArgs(cli, os.Args)
	if err != nil {
		report.PrintErrorMessage("CLI Usage Error", err)
		return 1
	}

	logLevel := report.LogLevelFromName(result.Arguments["loglevel"].(string))

	// process the inputed command line
	var ok bool
	subcmdName, subResult, _ := result.Subcommand()
	switch subcmdName {
	case "build":
		ok = execBuildCommand(subResult, logLevel, false)
	case "check":
		ok = execBuildCommand(subResult, logLevel, true)
	case "mod":
		ok = execModCommand(subResult)
	case "version":
		report.PrintInfoMessage("Eclipse Version", common.EclipseVersion)
		ok = true
	}

	if ok {
		return 0
	}

	return 1
}

// execBuildCommand executes the build and check subcommands and handles all
// errors.  It returns whether the command succeeded.
func execBuildCommand(result *olive.ArgParseResult, logLevel int, checkOnly bool) bool {
	// extract CLI data
	moduleRelPath, _ := result.PrimaryArg()

	modulePath, err := filepath.Abs(moduleRelPath)
	if err != nil {
		report.PrintErrorMessage("Path Error", err)
		return false
	}

	moduleRoot, ok := mods.FindModuleRoot(modulePath)
	if !ok {
		report.PrintErrorMessage("Module Load Error", fmt.Errorf("no module found at or above %s", modulePath))
		return false
	}

	selectedProfile := ""
	if profArgVal, ok := result.Arguments["profile"]; ok {
		selectedProfile = profArgVal.(string)
	}

	// attempt to load the module
	mod, buildProfile, err := mods.LoadModule(moduleRoot, selectedProfile)
	if err != nil {
		report.PrintErrorMessage("Module Load Error", err)
		return false
	}

	opts := build.Options{
		WarnUnused: result.HasFlag("warn-unused"),
		EmitIR:     result.HasFlag("emit-ir"),
	}

	rep := report.NewReporter(logLevel)
	c := build.NewCompiler(rep, mod, buildProfile, opts)

	if checkOnly {
		ok = c.Analyze()
		rep.DisplayCompilationFinished()
		return ok
	}

	return c.Compile()
}

// execModCommand executes the `mod` subcommand and its subcommands.  It handles
// all errors related to this command
func execModCommand(result *olive.ArgParseResult) bool {
	subcmdName, subResult, _ := result.Subcommand()

	workDir, err := os.Getwd()
	if err != nil {
		report.PrintErrorMessage("Path Error", err)
		return false
	}

	switch subcmdName {
	case "init":
		modName, _ := subResult.PrimaryArg()
		if err := mods.InitModule(modName, workDir); err != nil {
			report.PrintErrorMessage("Module Init Error", err)
			return false
		}

		report.PrintInfoMessage("Module", fmt.Sprintf("initialized module `%s` in %s", modName, workDir))
		return true
	}

	report.PrintErrorMessage("CLI Usage Error", errors.New("expected a `mod` subcommand"))
	return false
}
