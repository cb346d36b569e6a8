package ir

import "fmt"

// Op is a single IR operation.
type Op interface {
	Repr() string
	opNode()
}

// Label marks the start of a new block of operations.
type Label struct {
	Name string
}

func (l *Label) Repr() string {
	return l.Name + ":"
}

// Alloca allocates a stack slot for a value of Type.  Dest receives the
// address of the slot.
type Alloca struct {
	Dest string
	Type Type
}

func (a *Alloca) Repr() string {
	return fmt.Sprintf("%%%s = alloca %s", a.Dest, a.Type.Repr())
}

// Store writes Value to the address held in Dest.
type Store struct {
	Type  Type
	Value Value
	Dest  string
}

func (s *Store) Repr() string {
	return fmt.Sprintf("store %s %s, %s* %%%s", s.Type.Repr(), s.Value.Repr(), s.Type.Repr(), s.Dest)
}

// Load reads a value of Type from the address Src into Dest.
type Load struct {
	Dest string
	Type Type
	Src  Value
}

func (l *Load) Repr() string {
	return fmt.Sprintf("%%%s = load %s, %s* %s", l.Dest, l.Type.Repr(), l.Type.Repr(), l.Src.Repr())
}

// Call calls the function with the key Func.  If Dest is not empty, the result
// of the call is stored in the register Dest.
type Call struct {
	Dest       string
	Func       string
	ReturnType Type
	Args       *Arguments
}

func (c *Call) Repr() string {
	if c.Dest == "" {
		return fmt.Sprintf("call %s @%s%s", c.ReturnType.Repr(), c.Func, c.Args.Repr())
	}

	return fmt.Sprintf("%%%s = call %s @%s%s", c.Dest, c.ReturnType.Repr(), c.Func, c.Args.Repr())
}

// ElementPtr computes the address Base + Offset where Offset is a byte offset.
// ElemType is the type of the value at the resulting address.
type ElementPtr struct {
	Dest     string
	ElemType Type
	Base     Value
	Offset   Value
}

func (ep *ElementPtr) Repr() string {
	return fmt.Sprintf("%%%s = elemptr %s, %s + %s", ep.Dest, ep.ElemType.Repr(), ep.Base.Repr(), ep.Offset.Repr())
}

// BinaryOp applies an arithmetic operator to two operands of Type.
type BinaryOp struct {
	Op       Operator
	Type     Type
	Lhs, Rhs Value
	Dest     string
}

func (bo *BinaryOp) Repr() string {
	return fmt.Sprintf("%%%s = %s %s %s, %s", bo.Dest, bo.Op, bo.Type.Repr(), bo.Lhs.Repr(), bo.Rhs.Repr())
}

// Compare compares two operands of Type producing an `i1`.
type Compare struct {
	Pred     Predicate
	Type     Type
	Lhs, Rhs Value
	Dest     string
}

func (c *Compare) Repr() string {
	return fmt.Sprintf("%%%s = %s %s %s, %s", c.Dest, c.Pred, c.Type.Repr(), c.Lhs.Repr(), c.Rhs.Repr())
}

// Return returns from the current function.  Value is nil for a void return.
type Return struct {
	Type  Type
	Value Value
}

func (r *Return) Repr() string {
	if r.Value == nil {
		return "ret void"
	}

	return fmt.Sprintf("ret %s %s", r.Type.Repr(), r.Value.Repr())
}

func (*Label) opNode()      {}
func (*Alloca) opNode()     {}
func (*Store) opNode()      {}
func (*Load) opNode()       {}
func (*Call) opNode()       {}
func (*ElementPtr) opNode() {}
func (*BinaryOp) opNode()   {}
func (*Compare) opNode()    {}
func (*Return) opNode()     {}
