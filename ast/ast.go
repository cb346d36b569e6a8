package ast

import (
	"github.com/frittesauce/Eclipse/report"
)

// ASTNode is the interface for all AST nodes.
type ASTNode interface {
	// Span returns the text span of the node.
	Span() *report.TextSpan
}

// ASTBase is a utility base struct for all AST nodes.
type ASTBase struct {
	// Pos is the span over which the AST node occurs.
	Pos *report.TextSpan
}

// NewASTBaseOn creates a new AST base with the given span.
func NewASTBaseOn(span *report.TextSpan) ASTBase {
	return ASTBase{Pos: span}
}

// NewASTBaseOver creates a new AST base spanning over two spans.
func NewASTBaseOver(start, end *report.TextSpan) ASTBase {
	return ASTBase{Pos: report.NewSpanOver(start, end)}
}

func (ab ASTBase) Span() *report.TextSpan {
	return ab.Pos
}

// -----------------------------------------------------------------------------

// File is the syntax tree of a single source file as produced by the parser.
type File struct {
	// Name is the name the file is imported by.  The root file's name is the
	// name of its module.
	Name string

	// SrcPath is the path to the source text the tree was parsed from.  It is
	// only used to display diagnostics.
	SrcPath string

	// Imports lists the units imported by this file.
	Imports []*Import

	// Defs lists the top-level definitions in source order.
	Defs []Def
}

// Import is an `import name` statement.
type Import struct {
	ASTBase

	Name string
}
