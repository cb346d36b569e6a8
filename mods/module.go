package mods

// EclipseModule represents a module: the module configuration loaded from its
// module file.
type EclipseModule struct {
	// Name is the name of the module.  The root unit is named after it.
	Name string

	// ModuleRoot is the path to the root directory of the module.
	ModuleRoot string

	// Entry is the path to the root unit relative to the module root and
	// without any file extension (eg. `src/main`).
	Entry string

	// Version is the compiler version the module was created for.
	Version string
}

// BuildProfile represents the profile the compiler will use to build.  It is
// returned from `LoadModule`.
type BuildProfile struct {
	// Name is the name of the profile.
	Name string

	// OutputPath is the path to the final output file.  LLVM IR is always
	// written to `OutputPath + ".ll"`.
	OutputPath string

	// OutputFormat is the type of output the compiler should produce.  This
	// should be one of the enumerated formats (prefixed `Format`).
	OutputFormat int

	// Debug indicates whether the output is built for debugging or for
	// release.  Release builds are optimized when linked.
	Debug bool

	// TargetTriple is the LLVM target triple to build for.  It is empty if
	// the host should be targeted.
	TargetTriple string
}

// Available Output Formats
const (
	FormatBin  = iota // Executable
	FormatLLVM        // LLVM
)

// IsValidIdentifier returns whether or not a given string would be a valid
// identifier (module name, unit name, etc.)
func IsValidIdentifier(idstr string) bool {
	if idstr == "" {
		return false
	}

	if idstr[0] == '_' || ('a' <= idstr[0] && idstr[0] <= 'z') || ('A' <= idstr[0] && idstr[0] <= 'Z') {
		for _, c := range idstr[1:] {
			if c == '_' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9') {
				continue
			}

			return false
		}

		return true
	}

	return false
}
