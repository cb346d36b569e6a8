package ast

import "strings"

// Expr is an expression.
type Expr interface {
	ASTNode
	exprNode()
}

// Enumeration of literal kinds.
const (
	LitInt = iota
	LitFloat
	LitBool
	LitString
)

// Literal represents a literal value.  Numeric literals keep their source
// text.
type Literal struct {
	ASTBase

	Kind  int
	Value string
}

// Identifier represents a variable read.
type Identifier struct {
	ASTBase

	Name string
}

// Path segments with special meaning in qualified paths.
const (
	RootSegment  = "root"
	SuperSegment = "super"
)

// Call represents a function call.  Path is the qualified path to the
// function: zero or more module segments followed by the function name.
type Call struct {
	ASTBase

	Path []string
	Args []Expr
}

// FuncName returns the name of the called function.
func (c *Call) FuncName() string {
	return c.Path[len(c.Path)-1]
}

// PathRepr returns the path as it is written in source.
func (c *Call) PathRepr() string {
	return strings.Join(c.Path, "::")
}

// ArrayLit represents an array literal: `[a, b, c]`.
type ArrayLit struct {
	ASTBase

	Elems []Expr
}

// TupleLit represents a tuple literal: `(a, b)`.
type TupleLit struct {
	ASTBase

	Elems []Expr
}

// Index represents an index expression: `base[index]`.
type Index struct {
	ASTBase

	Base  Expr
	Index Expr
}

// Enumeration of operator kinds.
const (
	OpAdd = iota
	OpSub
	OpMul
	OpDiv
	OpMod

	OpEq
	OpNe
	OpGt
	OpGe
	OpLt
	OpLe

	OpNeg
	OpNot
)

var opNames = map[int]string{
	OpAdd: "+",
	OpSub: "-",
	OpMul: "*",
	OpDiv: "/",
	OpMod: "%",
	OpEq:  "==",
	OpNe:  "!=",
	OpGt:  ">",
	OpGe:  ">=",
	OpLt:  "<",
	OpLe:  "<=",
	OpNeg: "-",
	OpNot: "!",
}

// OpName returns the source token of an operator.
func OpName(op int) string {
	return opNames[op]
}

// IsComparison returns whether an operator is a comparison operator.
func IsComparison(op int) bool {
	return OpEq <= op && op <= OpLe
}

// BinaryOp represents a binary arithmetic or comparison operation.
type BinaryOp struct {
	ASTBase

	Op       int
	Lhs, Rhs Expr
}

// UnaryOp represents a unary operation.
type UnaryOp struct {
	ASTBase

	Op      int
	Operand Expr
}

// EnumValue represents a variant of an enum: `Color::Red`.
type EnumValue struct {
	ASTBase

	Enum    string
	Variant string
}

func (*Literal) exprNode()    {}
func (*Identifier) exprNode() {}
func (*Call) exprNode()       {}
func (*ArrayLit) exprNode()   {}
func (*TupleLit) exprNode()   {}
func (*Index) exprNode()      {}
func (*BinaryOp) exprNode()   {}
func (*UnaryOp) exprNode()    {}
func (*EnumValue) exprNode()  {}
