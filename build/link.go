package build

import (
	"fmt"
	"os/exec"

	"github.com/frittesauce/Eclipse/mods"
	"github.com/frittesauce/Eclipse/report"
)

// link compiles the generated LLVM IR into an executable if the profile asks
// for one.  Profiles which output LLVM IR are done once it is generated.
func (c *Compiler) link() bool {
	if c.buildProfile.OutputFormat != mods.FormatBin {
		return true
	}

	c.rep.BeginPhase("Linking")

	clang, err := findClang()
	if err != nil {
		c.rep.EndPhase(false)
		report.PrintErrorMessage("Link", err)
		return false
	}

	cmd := exec.Command(clang, c.linkArgs()...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		c.rep.EndPhase(false)

		if _, ok := err.(*exec.ExitError); ok {
			// we were able to find the linker, but there were link errors:
			// just output those to the user
			report.PrintErrorMessage("Link", fmt.Errorf("link error:\n%s", string(out)))
		} else {
			// probably couldn't find the linker
			report.PrintErrorMessage("Link", fmt.Errorf("failed to run %s: %s", clang, err))
		}

		return false
	}

	c.rep.EndPhase(true)
	return true
}

// linkArgs returns the arguments passed to the link command.
func (c *Compiler) linkArgs() []string {
	args := []string{c.llPath(), "-o", c.buildProfile.OutputPath}

	if c.buildProfile.Debug {
		args = append(args, "-O0")
	} else {
		args = append(args, "-O2")
	}

	if c.buildProfile.TargetTriple != "" {
		args = append(args, "--target="+c.buildProfile.TargetTriple)
	}

	// LLVM warns about the module having no target triple
	args = append(args, "-Wno-override-module")

	return args
}
