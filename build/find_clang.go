// +build !windows

package build

import "os/exec"

// findClang finds the `clang` executable used to compile and link LLVM IR.
// It must be in the PATH.
func findClang() (string, error) {
	return exec.LookPath("clang")
}
