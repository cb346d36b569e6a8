package ir

import (
	"strconv"
	"strings"
)

// Value represents an operand that can be used in an operation.
type Value interface {
	Repr() string
	valueNode()
}

// BoolLit is a boolean literal.
type BoolLit struct {
	Value bool
}

func (bl *BoolLit) Repr() string {
	return strconv.FormatBool(bl.Value)
}

// IntLit is an integer literal.  Its text is kept as written so that no width
// or overflow decision is made before emission.
type IntLit struct {
	Text string
}

func (il *IntLit) Repr() string {
	return il.Text
}

// FloatLit is a floating point literal.
type FloatLit struct {
	Text string
}

func (fl *FloatLit) Repr() string {
	return fl.Text
}

// Register is a reference to a named local value: a virtual register, a
// memory slot address, or a parameter.
type Register struct {
	Name string
}

func (r *Register) Repr() string {
	return "%" + r.Name
}

// Global is a reference to a named piece of static data.
type Global struct {
	Name string
}

func (g *Global) Repr() string {
	return "@" + g.Name
}

// Arg is a single typed call argument.
type Arg struct {
	Type  Type
	Value Value
}

// Arguments is an ordered list of call arguments.
type Arguments struct {
	Args []Arg
}

func (a *Arguments) Repr() string {
	argReprs := make([]string, len(a.Args))
	for i, arg := range a.Args {
		argReprs[i] = arg.Type.Repr() + " " + arg.Value.Repr()
	}

	return "(" + strings.Join(argReprs, ", ") + ")"
}

// Null is a placeholder value which stands in for the value of an expression
// that could not be lowered.
type Null struct{}

func (*Null) Repr() string {
	return "null"
}

func (*BoolLit) valueNode()   {}
func (*IntLit) valueNode()    {}
func (*FloatLit) valueNode()  {}
func (*Register) valueNode()  {}
func (*Global) valueNode()    {}
func (*Arguments) valueNode() {}
func (*Null) valueNode()      {}

// NewRegister returns a reference to the register with the given name.
func NewRegister(name string) *Register {
	return &Register{Name: name}
}

// NewIntLit returns an integer literal of the given value.
func NewIntLit(n uint) *IntLit {
	return &IntLit{Text: strconv.FormatUint(uint64(n), 10)}
}
