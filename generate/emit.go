package generate

import (
	"fmt"
	"os"

	"github.com/llir/llvm/ir"
)

// WriteModule writes the LLVM source text of a module to a file.
func WriteModule(mod *ir.Module, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %s", err)
	}
	defer file.Close()

	if _, err := mod.WriteTo(file); err != nil {
		return fmt.Errorf("failed to write LLVM IR: %s", err)
	}

	return nil
}
