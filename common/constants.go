package common

const (
	SrcFileExtension  = ".ecl"
	TreeFileExtension = ".ecl.ast"
	ModuleFileName    = "eclipse-mod.toml"
	EclipseVersion    = "0.1.0"
)

// EntryFuncName is the name of the program's entry point.  The entry function
// of the root unit keeps this name as its key regardless of generator state.
const EntryFuncName = "main"

// DefaultEntryUnit is the entry unit path used when a module file omits one.
const DefaultEntryUnit = "src/main"
