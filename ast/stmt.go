package ast

import "github.com/frittesauce/Eclipse/types"

// Stmt is a statement inside a function body.
type Stmt interface {
	ASTNode
	stmtNode()
}

// VarDecl represents a variable declaration: `let [mut] name [: type] [= init]`.
type VarDecl struct {
	ASTBase

	Name    string
	Mutable bool

	// Type is nil if the declaration has no type label.
	Type types.DataType

	// Init is nil if the declaration has no initializer.
	Init Expr
}

// Assignment represents an assignment to a variable: `name = value`.
type Assignment struct {
	ASTBase

	Name  string
	Value Expr
}

// CallStmt represents a function call whose result is discarded.
type CallStmt struct {
	ASTBase

	Call *Call
}

// ReturnStmt represents a return statement.  Value is nil if nothing is
// returned.
type ReturnStmt struct {
	ASTBase

	Value Expr
}

// Block represents a nested block of statements with its own scope.
type Block struct {
	ASTBase

	Stmts []Stmt
}

// IfStmt represents an if statement with an optional else block.
type IfStmt struct {
	ASTBase

	Cond Expr
	Then []Stmt
	Else []Stmt
}

// LoopStmt represents an unconditional loop.
type LoopStmt struct {
	ASTBase

	Body []Stmt
}

// Enumeration of keyword statement kinds.
const (
	KeywordBreak = iota
	KeywordContinue
)

// KeywordStmt represents a single keyword control flow statement (eg. `break`).
type KeywordStmt struct {
	ASTBase

	Kind int
}

func (*VarDecl) stmtNode()     {}
func (*Assignment) stmtNode()  {}
func (*CallStmt) stmtNode()    {}
func (*ReturnStmt) stmtNode()  {}
func (*Block) stmtNode()       {}
func (*IfStmt) stmtNode()      {}
func (*LoopStmt) stmtNode()    {}
func (*KeywordStmt) stmtNode() {}
