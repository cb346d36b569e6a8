package depm

import (
	"github.com/frittesauce/Eclipse/common"
	"github.com/frittesauce/Eclipse/report"
	"github.com/frittesauce/Eclipse/types"
)

// Variable is a local variable or parameter binding.
type Variable struct {
	Name string

	// Key is the unique low-level name of the variable.
	Key string

	Type    types.DataType
	Mutable bool
	Span    *report.TextSpan

	// Register indicates that Key names the variable's value itself rather than
	// the memory slot holding it.  Scalar parameters are register-resident.
	Register bool

	// Mutated and Read track how the variable is used.
	Mutated, Read bool
}

// VariableTable is the stack of lexical scopes used while lowering a
// function.  Each frame records the names it introduced in declaration order;
// every name maps to a stack of bindings, the innermost last.
type VariableTable struct {
	names    *common.NameCounter
	frames   [][]string
	bindings map[string][]*Variable
}

// NewVariableTable creates an empty variable table which draws keys from the
// given name counter.
func NewVariableTable(names *common.NameCounter) *VariableTable {
	return &VariableTable{
		names:    names,
		bindings: make(map[string][]*Variable),
	}
}

// CreateScope pushes a new empty frame.
func (vt *VariableTable) CreateScope() {
	vt.frames = append(vt.frames, nil)
}

// Depth returns the number of frames on the stack.
func (vt *VariableTable) Depth() int {
	return len(vt.frames)
}

// Declare binds a new variable in the current frame and issues it a fresh key.
// If the name is already bound in the current frame, the existing binding is
// returned along with false.  Shadowing bindings of enclosing frames is
// allowed.
func (vt *VariableTable) Declare(name string, mutable bool, typ types.DataType, span *report.TextSpan) (*Variable, bool) {
	if prev, ok := vt.LookupInScope(name); ok {
		return prev, false
	}

	top := len(vt.frames) - 1
	v := &Variable{
		Name:    name,
		Key:     vt.names.Next(),
		Type:    typ,
		Mutable: mutable,
		Span:    span,
	}

	vt.frames[top] = append(vt.frames[top], name)
	vt.bindings[name] = append(vt.bindings[name], v)
	return v, true
}

// LookupInScope looks up a variable declared in the current scope frame only.
func (vt *VariableTable) LookupInScope(name string) (*Variable, bool) {
	for _, fname := range vt.frames[len(vt.frames)-1] {
		if fname == name {
			stack := vt.bindings[name]
			return stack[len(stack)-1], true
		}
	}

	return nil, false
}

// Lookup finds the innermost binding of a name.
func (vt *VariableTable) Lookup(name string) (*Variable, bool) {
	if stack, ok := vt.bindings[name]; ok && len(stack) > 0 {
		return stack[len(stack)-1], true
	}

	return nil, false
}

// RebindKey replaces the key of the innermost binding of a name.  It returns
// false if the name is not bound.
func (vt *VariableTable) RebindKey(name, key string) bool {
	if v, ok := vt.Lookup(name); ok {
		v.Key = key
		return true
	}

	return false
}

// PopScope removes the current frame and returns the bindings it introduced
// in declaration order.
func (vt *VariableTable) PopScope() []*Variable {
	top := len(vt.frames) - 1
	frame := vt.frames[top]
	vt.frames = vt.frames[:top]

	removed := make([]*Variable, len(frame))
	for i, name := range frame {
		stack := vt.bindings[name]
		removed[i] = stack[len(stack)-1]

		if len(stack) == 1 {
			delete(vt.bindings, name)
		} else {
			vt.bindings[name] = stack[:len(stack)-1]
		}
	}

	return removed
}
