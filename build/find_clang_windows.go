// +build windows

package build

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"

	"golang.org/x/sys/windows/registry"
)

// findClang finds the `clang` executable used to compile and link LLVM IR.
// If it is not in the PATH, the LLVM installation is looked up in the
// registry.
func findClang() (string, error) {
	if path, err := exec.LookPath("clang"); err == nil {
		return path, nil
	}

	k, err := registry.OpenKey(registry.LOCAL_MACHINE, `SOFTWARE\LLVM\LLVM`, registry.QUERY_VALUE)
	if err != nil {
		return "", errors.New("unable to find clang: it is not in the PATH and LLVM is not installed")
	}
	defer k.Close()

	// the default value of the key is the installation directory
	installDir, _, err := k.GetStringValue("")
	if err != nil {
		return "", errors.New("unable to find clang: LLVM installation directory is missing from the registry")
	}

	path := filepath.Join(installDir, "bin", "clang.exe")
	if _, err := os.Stat(path); err != nil {
		return "", errors.New("unable to find clang in the LLVM installation directory")
	}

	return path, nil
}
