package ir

import (
	"fmt"
	"strconv"
	"strings"
)

// Param is a single function parameter.
type Param struct {
	Key  string
	Type Type
}

// Function is a lowered function definition.
type Function struct {
	// Name is the function's low-level key.
	Name string

	Params     []Param
	ReturnType Type

	// Public indicates whether the function is visible outside of its unit.
	Public bool

	Ops []Op
}

// Emit appends an operation to the function body.
func (f *Function) Emit(op Op) {
	f.Ops = append(f.Ops, op)
}

// LastOp returns the last operation of the function or nil if it has none.
func (f *Function) LastOp() Op {
	if len(f.Ops) == 0 {
		return nil
	}

	return f.Ops[len(f.Ops)-1]
}

func (f *Function) Repr() string {
	sb := strings.Builder{}
	sb.WriteString("define ")
	sb.WriteString(f.ReturnType.Repr())
	sb.WriteString(" @")
	sb.WriteString(f.Name)
	sb.WriteRune('(')

	for i, param := range f.Params {
		if i > 0 {
			sb.WriteString(", ")
		}

		sb.WriteString(param.Type.Repr())
		sb.WriteString(" %")
		sb.WriteString(param.Key)
	}

	sb.WriteString(") {\n")

	for _, op := range f.Ops {
		if _, ok := op.(*Label); !ok {
			sb.WriteString("  ")
		}

		sb.WriteString(op.Repr())
		sb.WriteRune('\n')
	}

	sb.WriteString("}\n")
	return sb.String()
}

// FuncDecl is a function provided outside of the program: a builtin.
type FuncDecl struct {
	Name       string
	Params     []Type
	ReturnType Type
}

func (fd *FuncDecl) Repr() string {
	return fmt.Sprintf("declare %s @%s(%s)\n", fd.ReturnType.Repr(), fd.Name, joinTypes(fd.Params))
}

// StaticString is a string literal stored as static data.
type StaticString struct {
	Key   string
	Value string
}

// Program is a fully lowered program.
type Program struct {
	Functions []*Function
	Decls     []*FuncDecl
	Structs   []*StructType
	Strings   []StaticString
}

// Function returns the function with the given key.
func (p *Program) Function(key string) (*Function, bool) {
	for _, fn := range p.Functions {
		if fn.Name == key {
			return fn, true
		}
	}

	return nil, false
}

func (p *Program) Repr() string {
	sb := strings.Builder{}

	for _, st := range p.Structs {
		sb.WriteString(fmt.Sprintf("%s = type {%s}\n", st.Repr(), joinTypes(st.Fields)))
	}

	for _, str := range p.Strings {
		sb.WriteString(fmt.Sprintf("@%s = constant %s\n", str.Key, strconv.Quote(str.Value)))
	}

	for _, decl := range p.Decls {
		sb.WriteString(decl.Repr())
	}

	for _, fn := range p.Functions {
		sb.WriteRune('\n')
		sb.WriteString(fn.Repr())
	}

	return sb.String()
}
