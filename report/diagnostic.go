package report

import (
	"fmt"
	"strings"
)

// Kind enumerates the different kinds of diagnostics the analyzer reports.
type Kind int

const (
	DuplicateDefinition Kind = iota
	UnresolvedFunction
	ArgumentCountMismatch
	UndeclaredVariable
	ImmutableAssignment
	MissingReturn
	TypeAnnotationRequired
	TypeMismatch
	CyclicImport
	LoweringUnsupported

	// warning kinds
	UnusedVariable
	UnreachableCode
)

var kindNames = map[Kind]string{
	DuplicateDefinition:    "Definition",
	UnresolvedFunction:     "Name",
	ArgumentCountMismatch:  "Argument",
	UndeclaredVariable:     "Name",
	ImmutableAssignment:    "Mutability",
	MissingReturn:          "Return",
	TypeAnnotationRequired: "Type",
	TypeMismatch:           "Type",
	CyclicImport:           "Import",
	LoweringUnsupported:    "Unsupported",
	UnusedVariable:         "Usage",
	UnreachableCode:        "Usage",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}

	return "Unknown"
}

// SecondarySpan is an additional location attached to a diagnostic.
type SecondarySpan struct {
	Span    *TextSpan
	Message string
}

// Diagnostic is a single problem reported during analysis.  Every diagnostic
// carries a source location and message; it may also carry a note and any
// number of secondary locations.
type Diagnostic struct {
	Kind    Kind
	IsError bool

	// File is the path to the file the diagnostic occurs in.
	File string

	Message string
	Span    *TextSpan

	Note      string
	Secondary []SecondarySpan
}

// WithNote attaches a supplementary note to the diagnostic.
func (d *Diagnostic) WithNote(note string, args ...interface{}) *Diagnostic {
	d.Note = fmt.Sprintf(note, args...)
	return d
}

// WithSecondary attaches an additional location to the diagnostic.
func (d *Diagnostic) WithSecondary(span *TextSpan, msg string) *Diagnostic {
	d.Secondary = append(d.Secondary, SecondarySpan{Span: span, Message: msg})
	return d
}

func (d *Diagnostic) Error() string {
	sb := strings.Builder{}
	sb.WriteString(d.File)
	sb.WriteRune(':')
	sb.WriteString(d.Span.String())
	sb.WriteString(": ")
	sb.WriteString(d.Message)

	if d.Note != "" {
		sb.WriteString(" (")
		sb.WriteString(d.Note)
		sb.WriteRune(')')
	}

	return sb.String()
}

// -----------------------------------------------------------------------------

// LocalCompileError is a compilation error raised in a context where the file
// is known by whoever recovers it.
type LocalCompileError struct {
	Message string
	Span    *TextSpan
}

func (lce *LocalCompileError) Error() string {
	return lce.Message
}

// Raise creates a new local compile error.
func Raise(span *TextSpan, msg string, args ...interface{}) *LocalCompileError {
	return &LocalCompileError{Message: fmt.Sprintf(msg, args...), Span: span}
}
