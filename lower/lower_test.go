package lower

import (
	"strings"
	"testing"

	"github.com/frittesauce/Eclipse/ast"
	"github.com/frittesauce/Eclipse/common"
	"github.com/frittesauce/Eclipse/depm"
	"github.com/frittesauce/Eclipse/ir"
	"github.com/frittesauce/Eclipse/report"
	"github.com/frittesauce/Eclipse/types"
)

func intLit(value string) *ast.Literal {
	return &ast.Literal{Kind: ast.LitInt, Value: value}
}

func ident(name string) *ast.Identifier {
	return &ast.Identifier{Name: name}
}

func call(path string, args ...ast.Expr) *ast.Call {
	return &ast.Call{Path: strings.Split(path, "::"), Args: args}
}

func param(name string, typ types.DataType) *ast.FuncParam {
	return &ast.FuncParam{Name: name, Type: typ}
}

func unit(name string, defs ...ast.Def) *depm.Unit {
	return depm.NewUnit(&ast.File{Name: name, Defs: defs})
}

// lowerUnit lowers a program rooted at the given unit.
func lowerUnit(root *depm.Unit, opts Options) (*ir.Program, *report.Reporter, error) {
	rep := report.NewReporter(report.LogLevelSilent)
	prog, err := LowerProgram(rep, &depm.Program{Root: root}, opts)
	return prog, rep, err
}

// lowerFuncs lowers a single root unit containing the given functions.
func lowerFuncs(t *testing.T, opts Options, defs ...ast.Def) (*ir.Program, *report.Reporter) {
	t.Helper()

	prog, rep, err := lowerUnit(unit("test", defs...), opts)
	if err != nil {
		t.Fatalf("lowering failed: %s", err)
	}

	return prog, rep
}

// findFunc finds a lowered function by its source name.  Keys end with the
// function's name followed by a counter except for the entry function.
func findFunc(t *testing.T, prog *ir.Program, name string) *ir.Function {
	t.Helper()

	for _, fn := range prog.Functions {
		segs := strings.Split(fn.Name, ".")
		if len(segs) == 1 && segs[0] == name || len(segs) > 1 && segs[len(segs)-2] == name {
			return fn
		}
	}

	t.Fatalf("no function named `%s` was lowered", name)
	return nil
}

func countOps(fn *ir.Function, match func(ir.Op) bool) int {
	n := 0
	for _, op := range fn.Ops {
		if match(op) {
			n++
		}
	}

	return n
}

func isStore(op ir.Op) bool {
	_, ok := op.(*ir.Store)
	return ok
}

func isAlloca(op ir.Op) bool {
	_, ok := op.(*ir.Alloca)
	return ok
}

func isElementPtr(op ir.Op) bool {
	_, ok := op.(*ir.ElementPtr)
	return ok
}

// -----------------------------------------------------------------------------

func TestConvType(t *testing.T) {
	l := NewLowerer(report.NewReporter(report.LogLevelSilent), common.NewNameCounter(), &depm.FuncTable{}, Options{})

	tests := []struct {
		name string
		typ  types.DataType
		want string
	}{
		{"signed int", types.PrimKindI64, "i64"},
		{"unsigned int", types.PrimKindU16, "u16"},
		{"bool", types.PrimKindBool, "i1"},
		{"f32", types.PrimKindF32, "float"},
		{"f64", types.PrimKindF64, "double"},
		{"unit", types.PrimKindUnit, "void"},
		{"never", types.PrimKindNever, "void"},
		{"empty tuple", &types.TupleType{}, "void"},
		{"single tuple", &types.TupleType{ElemTypes: []types.DataType{types.PrimKindI64}}, "i64"},
		{"pair", &types.TupleType{ElemTypes: []types.DataType{types.PrimKindI32, types.PrimKindBool}}, "{i32, i1}"},
		{"array", &types.ArrayType{ElemType: types.PrimKindI32, Len: 3}, "[3 x i32]"},
		{"double pointer", types.NewPointers(types.PrimKindI32, 2), "i32**"},
		{"reference", &types.PointerType{ElemType: types.PrimKindF64, Ref: true}, "double*"},
		{"pointer to unit", &types.PointerType{ElemType: types.PrimKindUnit}, "u8*"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := l.convType(tt.typ).Repr(); got != tt.want {
				t.Errorf("convType(%s) = %s, want %s", tt.typ.Repr(), got, tt.want)
			}
		})
	}
}

func TestLowerAdd(t *testing.T) {
	prog, rep := lowerFuncs(t, Options{}, &ast.FuncDef{
		Name:       "add",
		Params:     []*ast.FuncParam{param("a", types.PrimKindI32), param("b", types.PrimKindI32)},
		ReturnType: types.PrimKindI32,
		Body: []ast.Stmt{
			&ast.ReturnStmt{Value: &ast.BinaryOp{Op: ast.OpAdd, Lhs: ident("a"), Rhs: ident("b")}},
		},
	})

	if rep.AnyErrors() {
		t.Fatalf("unexpected errors: %v", rep.Diagnostics())
	}

	fn := findFunc(t, prog, "add")
	if len(fn.Ops) != 2 {
		t.Fatalf("got %d operations, want 2:\n%s", len(fn.Ops), fn.Repr())
	}

	add, ok := fn.Ops[0].(*ir.BinaryOp)
	if !ok || add.Op != ir.OpAdd || add.Type.Repr() != "i32" {
		t.Fatalf("first operation is %s, want an i32 add", fn.Ops[0].Repr())
	}

	if add.Lhs.Repr() != "%"+fn.Params[0].Key || add.Rhs.Repr() != "%"+fn.Params[1].Key {
		t.Errorf("add does not operate on the parameter registers: %s", add.Repr())
	}

	ret, ok := fn.Ops[1].(*ir.Return)
	if !ok || ret.Value == nil || ret.Value.Repr() != "%"+add.Dest {
		t.Errorf("second operation is %s, want a return of the sum", fn.Ops[1].Repr())
	}
}

func TestImmutableAssignment(t *testing.T) {
	prog, rep := lowerFuncs(t, Options{}, &ast.FuncDef{
		Name: "main",
		Body: []ast.Stmt{
			&ast.VarDecl{Name: "x", Init: intLit("1")},
			&ast.Assignment{Name: "x", Value: intLit("2")},
		},
	})

	diags := rep.OfKind(report.ImmutableAssignment)
	if len(diags) != 1 {
		t.Fatalf("got %d ImmutableAssignment diagnostics, want 1", len(diags))
	}

	if len(diags[0].Secondary) != 1 || diags[0].Note != "help: mut x" {
		t.Errorf("diagnostic is missing its decorations: %+v", diags[0])
	}

	if n := countOps(findFunc(t, prog, "main"), isStore); n != 1 {
		t.Errorf("got %d stores, want only the initializing store", n)
	}
}

func TestMutableAssignment(t *testing.T) {
	prog, rep := lowerFuncs(t, Options{}, &ast.FuncDef{
		Name: "main",
		Body: []ast.Stmt{
			&ast.VarDecl{Name: "x", Mutable: true, Type: types.PrimKindI64, Init: intLit("1")},
			&ast.Assignment{Name: "x", Value: intLit("2")},
		},
	})

	if rep.AnyErrors() {
		t.Fatalf("unexpected errors: %v", rep.Diagnostics())
	}

	fn := findFunc(t, prog, "main")
	if n := countOps(fn, isStore); n != 2 {
		t.Errorf("got %d stores, want 2:\n%s", n, fn.Repr())
	}
}

func TestDuplicateAndShadowing(t *testing.T) {
	tests := []struct {
		name string
		body []ast.Stmt
		want int
	}{
		{
			"same scope",
			[]ast.Stmt{
				&ast.VarDecl{Name: "x", Init: intLit("1")},
				&ast.VarDecl{Name: "x", Init: intLit("2")},
			},
			1,
		},
		{
			"nested scope",
			[]ast.Stmt{
				&ast.VarDecl{Name: "x", Init: intLit("1")},
				&ast.Block{Stmts: []ast.Stmt{&ast.VarDecl{Name: "x", Init: intLit("2")}}},
			},
			0,
		},
		{
			"shadowing a parameter",
			[]ast.Stmt{&ast.VarDecl{Name: "p", Init: intLit("2")}},
			0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, rep := lowerFuncs(t, Options{}, &ast.FuncDef{
				Name:   "f",
				Params: []*ast.FuncParam{param("p", types.PrimKindI32)},
				Body:   tt.body,
			})

			if n := len(rep.OfKind(report.DuplicateDefinition)); n != tt.want {
				t.Errorf("got %d DuplicateDefinition diagnostics, want %d", n, tt.want)
			}
		})
	}
}

func TestArrayLiteralStore(t *testing.T) {
	prog, rep := lowerFuncs(t, Options{}, &ast.FuncDef{
		Name: "main",
		Body: []ast.Stmt{
			&ast.VarDecl{Name: "a", Init: &ast.ArrayLit{Elems: []ast.Expr{intLit("1"), intLit("2"), intLit("3")}}},
		},
	})

	if rep.AnyErrors() {
		t.Fatalf("unexpected errors: %v", rep.Diagnostics())
	}

	fn := findFunc(t, prog, "main")
	if n := countOps(fn, isAlloca); n != 1 {
		t.Errorf("got %d allocas, want 1", n)
	}

	var offsets []string
	for _, op := range fn.Ops {
		if ep, ok := op.(*ir.ElementPtr); ok {
			offsets = append(offsets, ep.Offset.Repr())
		}
	}

	if strings.Join(offsets, " ") != "0 4 8" {
		t.Errorf("element offsets = %v, want [0 4 8]", offsets)
	}

	if n := countOps(fn, isStore); n != 3 {
		t.Errorf("got %d stores, want 3", n)
	}
}

func TestArrayLengthMismatch(t *testing.T) {
	_, rep := lowerFuncs(t, Options{}, &ast.FuncDef{
		Name: "main",
		Body: []ast.Stmt{
			&ast.VarDecl{
				Name: "a",
				Type: &types.ArrayType{ElemType: types.PrimKindI32, Len: 2},
				Init: &ast.ArrayLit{Elems: []ast.Expr{intLit("1"), intLit("2"), intLit("3")}},
			},
		},
	})

	if n := len(rep.OfKind(report.TypeMismatch)); n != 1 {
		t.Errorf("got %d TypeMismatch diagnostics, want 1", n)
	}
}

func TestIndexLiteral(t *testing.T) {
	arr := &types.ArrayType{ElemType: types.PrimKindI64, Len: 4}

	prog, rep := lowerFuncs(t, Options{}, &ast.FuncDef{
		Name:       "third",
		Params:     []*ast.FuncParam{param("a", arr)},
		ReturnType: types.PrimKindI64,
		Body: []ast.Stmt{
			&ast.ReturnStmt{Value: &ast.Index{Base: ident("a"), Index: intLit("2")}},
		},
	})

	if rep.AnyErrors() {
		t.Fatalf("unexpected errors: %v", rep.Diagnostics())
	}

	fn := findFunc(t, prog, "third")
	if fn.Params[0].Type.Repr() != "[4 x i64]*" {
		t.Errorf("array parameter type = %s, want [4 x i64]*", fn.Params[0].Type.Repr())
	}

	ep, ok := fn.Ops[0].(*ir.ElementPtr)
	if !ok || ep.Offset.Repr() != "16" {
		t.Errorf("first operation is %s, want an element pointer at offset 16", fn.Ops[0].Repr())
	}
}

func TestIndexOutOfBounds(t *testing.T) {
	_, rep := lowerFuncs(t, Options{}, &ast.FuncDef{
		Name:       "f",
		Params:     []*ast.FuncParam{param("a", &types.ArrayType{ElemType: types.PrimKindI32, Len: 2})},
		ReturnType: types.PrimKindI32,
		Body: []ast.Stmt{
			&ast.ReturnStmt{Value: &ast.Index{Base: ident("a"), Index: intLit("2")}},
		},
	})

	if n := len(rep.OfKind(report.TypeMismatch)); n != 1 {
		t.Errorf("got %d TypeMismatch diagnostics, want 1", n)
	}
}

func TestVoidFunctionReturn(t *testing.T) {
	prog, rep := lowerFuncs(t, Options{}, &ast.FuncDef{
		Name: "main",
		Body: []ast.Stmt{&ast.CallStmt{Call: call("print", intLit("1"))}},
	})

	if n := len(rep.Diagnostics()); n != 0 {
		t.Fatalf("got %d diagnostics, want 0", n)
	}

	fn := findFunc(t, prog, "main")
	if fn.Name != "main" || !fn.Public {
		t.Errorf("entry function lowered as %s (public: %v)", fn.Name, fn.Public)
	}

	ret, ok := fn.LastOp().(*ir.Return)
	if !ok || ret.Value != nil {
		t.Errorf("last operation is %s, want ret void", fn.LastOp().Repr())
	}
}

func TestMissingReturn(t *testing.T) {
	prog, rep := lowerFuncs(t, Options{}, &ast.FuncDef{
		Name:       "f",
		ReturnType: types.PrimKindI32,
		Body:       []ast.Stmt{&ast.CallStmt{Call: call("print", intLit("1"))}},
	})

	if n := len(rep.OfKind(report.MissingReturn)); n != 1 {
		t.Errorf("got %d MissingReturn diagnostics, want 1", n)
	}

	if _, ok := findFunc(t, prog, "f").LastOp().(*ir.Return); !ok {
		t.Error("function does not end in a return")
	}
}

func TestUnreachableCode(t *testing.T) {
	prog, rep := lowerFuncs(t, Options{}, &ast.FuncDef{
		Name: "main",
		Body: []ast.Stmt{
			&ast.ReturnStmt{},
			&ast.CallStmt{Call: call("print", intLit("1"))},
			&ast.CallStmt{Call: call("print", intLit("2"))},
		},
	})

	if n := len(rep.OfKind(report.UnreachableCode)); n != 1 {
		t.Errorf("got %d UnreachableCode warnings, want 1", n)
	}

	if rep.AnyErrors() {
		t.Errorf("unreachable code reported as an error")
	}

	if ops := findFunc(t, prog, "main").Ops; len(ops) != 1 {
		t.Errorf("got %d operations, want only the return", len(ops))
	}
}

func TestSuperSuperCall(t *testing.T) {
	a := unit("a", &ast.FuncDef{Name: "f", ReturnType: types.PrimKindI32, Body: []ast.Stmt{
		&ast.ReturnStmt{Value: intLit("0")},
	}})
	b := unit("b")
	c := unit("c", &ast.FuncDef{Name: "g", ReturnType: types.PrimKindI32, Body: []ast.Stmt{
		&ast.ReturnStmt{Value: call("super::super::f")},
	}})

	a.AddImport(b)
	b.AddImport(c)

	prog, rep, err := lowerUnit(a, Options{})
	if err != nil || rep.AnyErrors() {
		t.Fatalf("lowering failed: %v %v", err, rep.Diagnostics())
	}

	f := findFunc(t, prog, "f")
	g := findFunc(t, prog, "g")

	callOp, ok := g.Ops[0].(*ir.Call)
	if !ok || callOp.Func != f.Name {
		t.Errorf("first operation of g is %s, want a call to @%s", g.Ops[0].Repr(), f.Name)
	}
}

func TestCallErrors(t *testing.T) {
	_, rep, err := lowerUnit(unit("test", &ast.FuncDef{
		Name: "main",
		Body: []ast.Stmt{
			&ast.CallStmt{Call: call("nope")},
			&ast.CallStmt{Call: call("print", intLit("1"), intLit("2"))},
			&ast.VarDecl{Name: "x", Type: types.PrimKindI32, Init: call("missing::g")},
		},
	}), Options{})

	if err != nil {
		t.Fatalf("lowering aborted: %s", err)
	}

	if n := len(rep.OfKind(report.UnresolvedFunction)); n != 2 {
		t.Errorf("got %d UnresolvedFunction diagnostics, want 2", n)
	}

	if n := len(rep.OfKind(report.ArgumentCountMismatch)); n != 1 {
		t.Errorf("got %d ArgumentCountMismatch diagnostics, want 1", n)
	}
}

func TestUnsupportedControlFlow(t *testing.T) {
	tests := []struct {
		name string
		stmt ast.Stmt
	}{
		{"if", &ast.IfStmt{Cond: &ast.Literal{Kind: ast.LitBool, Value: "true"}}},
		{"loop", &ast.LoopStmt{}},
		{"break", &ast.KeywordStmt{Kind: ast.KeywordBreak}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prog, rep, err := lowerUnit(unit("test", &ast.FuncDef{Name: "main", Body: []ast.Stmt{tt.stmt}}), Options{})

			if err == nil || prog != nil {
				t.Fatal("lowering did not fail")
			}

			if n := len(rep.OfKind(report.LoweringUnsupported)); n != 1 {
				t.Errorf("got %d LoweringUnsupported diagnostics, want 1", n)
			}
		})
	}
}

func TestOperatorSelection(t *testing.T) {
	tests := []struct {
		name string
		op   int
		typ  types.DataType
		want string
	}{
		{"signed div", ast.OpDiv, types.PrimKindI32, "sdiv"},
		{"unsigned div", ast.OpDiv, types.PrimKindU32, "udiv"},
		{"float div", ast.OpDiv, types.PrimKindF64, "fdiv"},
		{"unsigned rem", ast.OpMod, types.PrimKindU8, "urem"},
		{"float add", ast.OpAdd, types.PrimKindF32, "fadd"},
		{"signed less", ast.OpLt, types.PrimKindI64, "icmp slt"},
		{"unsigned less", ast.OpLt, types.PrimKindU64, "icmp ult"},
		{"float equal", ast.OpEq, types.PrimKindF64, "fcmp oeq"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			retType := tt.typ
			if ast.IsComparison(tt.op) {
				retType = types.PrimKindBool
			}

			prog, rep := lowerFuncs(t, Options{}, &ast.FuncDef{
				Name:       "f",
				Params:     []*ast.FuncParam{param("a", tt.typ), param("b", tt.typ)},
				ReturnType: retType,
				Body: []ast.Stmt{
					&ast.ReturnStmt{Value: &ast.BinaryOp{Op: tt.op, Lhs: ident("a"), Rhs: ident("b")}},
				},
			})

			if rep.AnyErrors() {
				t.Fatalf("unexpected errors: %v", rep.Diagnostics())
			}

			var got string
			switch v := findFunc(t, prog, "f").Ops[0].(type) {
			case *ir.BinaryOp:
				got = v.Op.String()
			case *ir.Compare:
				got = v.Pred.String()
			}

			if got != tt.want {
				t.Errorf("selected %q, want %q", got, tt.want)
			}
		})
	}
}

func TestOperandTypeMismatch(t *testing.T) {
	_, rep := lowerFuncs(t, Options{}, &ast.FuncDef{
		Name:       "f",
		Params:     []*ast.FuncParam{param("a", types.PrimKindI32), param("b", types.PrimKindI64)},
		ReturnType: types.PrimKindI32,
		Body: []ast.Stmt{
			&ast.ReturnStmt{Value: &ast.BinaryOp{Op: ast.OpAdd, Lhs: ident("a"), Rhs: ident("b")}},
		},
	})

	if n := len(rep.OfKind(report.TypeMismatch)); n != 1 {
		t.Errorf("got %d TypeMismatch diagnostics, want 1", n)
	}
}

func TestLiteralAdoptsFloatType(t *testing.T) {
	prog, rep := lowerFuncs(t, Options{}, &ast.FuncDef{
		Name: "main",
		Body: []ast.Stmt{
			&ast.VarDecl{Name: "x", Type: types.PrimKindF64, Init: intLit("1")},
		},
	})

	if rep.AnyErrors() {
		t.Fatalf("unexpected errors: %v", rep.Diagnostics())
	}

	for _, op := range findFunc(t, prog, "main").Ops {
		if store, ok := op.(*ir.Store); ok {
			if store.Value.Repr() != "1.0" || store.Type.Repr() != "double" {
				t.Errorf("stored %s, want double 1.0", store.Repr())
			}
		}
	}
}

func TestCompositeReturn(t *testing.T) {
	pair := &types.TupleType{ElemTypes: []types.DataType{types.PrimKindI32, types.PrimKindI64}}

	prog, rep := lowerFuncs(t, Options{}, &ast.FuncDef{
		Name:       "pair",
		ReturnType: pair,
		Body: []ast.Stmt{
			&ast.ReturnStmt{Value: &ast.TupleLit{Elems: []ast.Expr{intLit("1"), intLit("2")}}},
		},
	}, &ast.FuncDef{
		Name: "main",
		Body: []ast.Stmt{
			&ast.VarDecl{Name: "p", Init: call("pair")},
		},
	})

	if rep.AnyErrors() {
		t.Fatalf("unexpected errors: %v", rep.Diagnostics())
	}

	fn := findFunc(t, prog, "pair")
	if fn.ReturnType.Repr() != "void" || len(fn.Params) != 1 || fn.Params[0].Type.Repr() != "{i32, i64}*" {
		t.Fatalf("composite return lowered as:\n%s", fn.Repr())
	}

	offsets := []string{}
	for _, op := range fn.Ops {
		if ep, ok := op.(*ir.ElementPtr); ok {
			offsets = append(offsets, ep.Offset.Repr())
		}
	}

	if strings.Join(offsets, " ") != "0 8" {
		t.Errorf("tuple element offsets = %v, want [0 8]", offsets)
	}

	mainFn := findFunc(t, prog, "main")
	if n := countOps(mainFn, isElementPtr); n != 0 {
		t.Errorf("call result was copied instead of written in place:\n%s", mainFn.Repr())
	}
}

func TestWarnUnused(t *testing.T) {
	body := []ast.Stmt{
		&ast.VarDecl{Name: "x", Mutable: true, Init: intLit("1")},
		&ast.VarDecl{Name: "y", Mutable: true, Init: intLit("2")},
		&ast.CallStmt{Call: call("print", ident("y"))},
	}

	tests := []struct {
		name string
		opts Options
		want int
	}{
		{"disabled", Options{}, 0},
		{"enabled", Options{WarnUnused: true}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, rep := lowerFuncs(t, tt.opts, &ast.FuncDef{Name: "main", Body: body})

			if n := len(rep.OfKind(report.UnusedVariable)); n != tt.want {
				t.Errorf("got %d UnusedVariable warnings, want %d", n, tt.want)
			}

			if rep.AnyErrors() {
				t.Errorf("unused variables reported as errors")
			}
		})
	}
}

func TestStringLiteral(t *testing.T) {
	prog, rep := lowerFuncs(t, Options{}, &ast.FuncDef{
		Name: "main",
		Body: []ast.Stmt{
			&ast.VarDecl{Name: "s", Init: &ast.Literal{Kind: ast.LitString, Value: "hi"}},
		},
	})

	if rep.AnyErrors() {
		t.Fatalf("unexpected errors: %v", rep.Diagnostics())
	}

	if len(prog.Strings) != 1 || prog.Strings[0].Value != "hi" {
		t.Fatalf("static strings = %v, want [hi]", prog.Strings)
	}

	if !strings.Contains(findFunc(t, prog, "main").Repr(), "@"+prog.Strings[0].Key) {
		t.Error("string literal is not referenced by its global")
	}
}

func TestNestedArrayLiteralStore(t *testing.T) {
	row := func(a, b string) ast.Expr {
		return &ast.ArrayLit{Elems: []ast.Expr{intLit(a), intLit(b)}}
	}

	prog, rep := lowerFuncs(t, Options{}, &ast.FuncDef{
		Name: "main",
		Body: []ast.Stmt{
			&ast.VarDecl{Name: "m", Init: &ast.ArrayLit{Elems: []ast.Expr{row("1", "2"), row("3", "4")}}},
		},
	})

	if rep.AnyErrors() {
		t.Fatalf("unexpected errors: %v", rep.Diagnostics())
	}

	fn := findFunc(t, prog, "main")
	if n := countOps(fn, isAlloca); n != 1 {
		t.Errorf("got %d allocas, want 1", n)
	}

	slot := "%" + fn.Ops[0].(*ir.Alloca).Dest

	var offsets []string
	for _, op := range fn.Ops {
		if ep, ok := op.(*ir.ElementPtr); ok {
			if ep.Base.Repr() != slot {
				t.Errorf("element pointer %s is not based on the outer array %s", ep.Repr(), slot)
			}

			offsets = append(offsets, ep.Offset.Repr())
		}
	}

	if strings.Join(offsets, " ") != "0 4 8 12" {
		t.Errorf("element offsets = %v, want [0 4 8 12]", offsets)
	}

	if n := countOps(fn, isStore); n != 4 {
		t.Errorf("got %d stores, want 4", n)
	}
}

func TestIndexRuntime(t *testing.T) {
	matrix := &types.ArrayType{ElemType: &types.ArrayType{ElemType: types.PrimKindI32, Len: 2}, Len: 3}

	prog, rep := lowerFuncs(t, Options{}, &ast.FuncDef{
		Name:       "pick",
		Params:     []*ast.FuncParam{param("m", matrix), param("i", types.PrimKindI32)},
		ReturnType: types.PrimKindI32,
		Body: []ast.Stmt{
			&ast.ReturnStmt{Value: &ast.Index{
				Base:  &ast.Index{Base: ident("m"), Index: ident("i")},
				Index: intLit("1"),
			}},
		},
	})

	if rep.AnyErrors() {
		t.Fatalf("unexpected errors: %v", rep.Diagnostics())
	}

	fn := findFunc(t, prog, "pick")
	if len(fn.Ops) != 5 {
		t.Fatalf("got %d operations, want 5:\n%s", len(fn.Ops), fn.Repr())
	}

	mul, ok := fn.Ops[0].(*ir.BinaryOp)
	if !ok || mul.Op != ir.OpMul || mul.Type.Repr() != "i32" ||
		mul.Lhs.Repr() != "%"+fn.Params[1].Key || mul.Rhs.Repr() != "8" {
		t.Fatalf("first operation is %s, want mul i32 %%%s, 8", fn.Ops[0].Repr(), fn.Params[1].Key)
	}

	row, ok := fn.Ops[1].(*ir.ElementPtr)
	if !ok || row.ElemType.Repr() != "[2 x i32]" || row.Base.Repr() != "%"+fn.Params[0].Key || row.Offset.Repr() != "%"+mul.Dest {
		t.Fatalf("second operation is %s, want the address of row i", fn.Ops[1].Repr())
	}

	elem, ok := fn.Ops[2].(*ir.ElementPtr)
	if !ok || elem.ElemType.Repr() != "i32" || elem.Base.Repr() != "%"+row.Dest || elem.Offset.Repr() != "4" {
		t.Fatalf("third operation is %s, want the address of element 1 of row i", fn.Ops[2].Repr())
	}

	load, ok := fn.Ops[3].(*ir.Load)
	if !ok || load.Src.Repr() != "%"+elem.Dest {
		t.Errorf("fourth operation is %s, want a load of the element", fn.Ops[3].Repr())
	}
}

func TestIndexLiteralBases(t *testing.T) {
	prog, rep := lowerFuncs(t, Options{}, &ast.FuncDef{
		Name:       "second",
		Params:     []*ast.FuncParam{param("a", &types.ArrayType{ElemType: types.PrimKindI32, Len: 2})},
		ReturnType: types.PrimKindI32,
		Body: []ast.Stmt{
			&ast.ReturnStmt{Value: &ast.Index{Base: ident("a"), Index: intLit("0x1")}},
		},
	})

	if rep.AnyErrors() {
		t.Fatalf("unexpected errors: %v", rep.Diagnostics())
	}

	fn := findFunc(t, prog, "second")
	ep, ok := fn.Ops[0].(*ir.ElementPtr)
	if !ok || ep.Offset.Repr() != "4" {
		t.Errorf("first operation is %s, want an element pointer at offset 4", fn.Ops[0].Repr())
	}
}

// slotAccesses returns the indices of the loads from and stores to elements
// of the composite held in slot.
func slotAccesses(fn *ir.Function, slot string) (reads, writes []int) {
	elemPtrs := make(map[string]bool)
	for i, op := range fn.Ops {
		switch v := op.(type) {
		case *ir.ElementPtr:
			if v.Base.Repr() == "%"+slot {
				elemPtrs["%"+v.Dest] = true
			}
		case *ir.Load:
			if elemPtrs[v.Src.Repr()] {
				reads = append(reads, i)
			}
		case *ir.Store:
			if elemPtrs["%"+v.Dest] {
				writes = append(writes, i)
			}
		}
	}

	return
}

func TestCompositeAssignmentReadsItself(t *testing.T) {
	pair := &types.ArrayType{ElemType: types.PrimKindI32, Len: 2}

	prog, rep := lowerFuncs(t, Options{}, &ast.FuncDef{
		Name: "main",
		Body: []ast.Stmt{
			&ast.VarDecl{
				Name:    "a",
				Mutable: true,
				Type:    pair,
				Init:    &ast.ArrayLit{Elems: []ast.Expr{intLit("1"), intLit("2")}},
			},
			&ast.Assignment{Name: "a", Value: &ast.ArrayLit{Elems: []ast.Expr{
				&ast.Index{Base: ident("a"), Index: intLit("1")},
				&ast.Index{Base: ident("a"), Index: intLit("0")},
			}}},
		},
	})

	if rep.AnyErrors() {
		t.Fatalf("unexpected errors: %v", rep.Diagnostics())
	}

	fn := findFunc(t, prog, "main")
	if n := countOps(fn, isAlloca); n != 2 {
		t.Errorf("got %d allocas, want 2:\n%s", n, fn.Repr())
	}

	reads, writes := slotAccesses(fn, fn.Ops[0].(*ir.Alloca).Dest)
	if len(reads) != 2 || len(writes) != 4 {
		t.Fatalf("got %d reads and %d writes of `a`, want 2 and 4:\n%s", len(reads), len(writes), fn.Repr())
	}

	// the first two writes initialize `a`
	if firstOverwrite := writes[2]; reads[1] > firstOverwrite {
		t.Errorf("`a` is overwritten before it is read:\n%s", fn.Repr())
	}
}

func TestCompositeAssignmentCallsWithItself(t *testing.T) {
	pair := &types.ArrayType{ElemType: types.PrimKindI32, Len: 2}

	prog, rep := lowerFuncs(t, Options{},
		&ast.FuncDef{
			Name:       "same",
			Params:     []*ast.FuncParam{param("p", pair)},
			ReturnType: pair,
			Body:       []ast.Stmt{&ast.ReturnStmt{Value: ident("p")}},
		},
		&ast.FuncDef{
			Name: "main",
			Body: []ast.Stmt{
				&ast.VarDecl{
					Name:    "a",
					Mutable: true,
					Type:    pair,
					Init:    &ast.ArrayLit{Elems: []ast.Expr{intLit("1"), intLit("2")}},
				},
				&ast.Assignment{Name: "a", Value: call("same", ident("a"))},
			},
		},
	)

	if rep.AnyErrors() {
		t.Fatalf("unexpected errors: %v", rep.Diagnostics())
	}

	fn := findFunc(t, prog, "main")
	slot := "%" + fn.Ops[0].(*ir.Alloca).Dest

	for _, op := range fn.Ops {
		if c, ok := op.(*ir.Call); ok {
			out, arg := c.Args.Args[0].Value.Repr(), c.Args.Args[1].Value.Repr()
			if arg != slot {
				t.Errorf("call argument is %s, want %s", arg, slot)
			}

			if out == slot {
				t.Errorf("call writes its result into its own argument: %s", c.Repr())
			}
		}
	}
}

func TestCompositeAssignmentInPlace(t *testing.T) {
	prog, rep := lowerFuncs(t, Options{}, &ast.FuncDef{
		Name: "main",
		Body: []ast.Stmt{
			&ast.VarDecl{
				Name:    "a",
				Mutable: true,
				Init:    &ast.ArrayLit{Elems: []ast.Expr{intLit("1"), intLit("2")}},
			},
			&ast.Assignment{Name: "a", Value: &ast.ArrayLit{Elems: []ast.Expr{intLit("3"), intLit("4")}}},
		},
	})

	if rep.AnyErrors() {
		t.Fatalf("unexpected errors: %v", rep.Diagnostics())
	}

	fn := findFunc(t, prog, "main")
	if n := countOps(fn, isAlloca); n != 1 {
		t.Errorf("got %d allocas, want 1", n)
	}

	if n := countOps(fn, isStore); n != 4 {
		t.Errorf("got %d stores, want 4", n)
	}
}

func TestDuplicateCompositeDeclaration(t *testing.T) {
	prog, rep := lowerFuncs(t, Options{}, &ast.FuncDef{
		Name: "main",
		Body: []ast.Stmt{
			&ast.VarDecl{Name: "a", Init: &ast.ArrayLit{Elems: []ast.Expr{intLit("1")}}},
			&ast.VarDecl{Name: "a", Init: &ast.ArrayLit{Elems: []ast.Expr{intLit("7")}}},
		},
	})

	if n := len(rep.OfKind(report.DuplicateDefinition)); n != 1 {
		t.Errorf("got %d DuplicateDefinition diagnostics, want 1", n)
	}

	fn := findFunc(t, prog, "main")
	if n := countOps(fn, isAlloca); n != 1 {
		t.Errorf("got %d allocas, want 1:\n%s", n, fn.Repr())
	}

	if n := countOps(fn, isStore); n != 1 {
		t.Errorf("got %d stores, want 1:\n%s", n, fn.Repr())
	}
}

func TestEnumValues(t *testing.T) {
	color := &types.EnumType{Name: "Color"}

	prog, rep := lowerFuncs(t, Options{},
		&ast.EnumDef{Name: "Color", Variants: []string{"Red", "Green", "Blue"}},
		&ast.FuncDef{
			Name:       "isBlue",
			Params:     []*ast.FuncParam{param("c", color)},
			ReturnType: types.PrimKindBool,
			Body: []ast.Stmt{
				&ast.ReturnStmt{Value: &ast.BinaryOp{
					Op:  ast.OpEq,
					Lhs: ident("c"),
					Rhs: &ast.EnumValue{Enum: "Color", Variant: "Blue"},
				}},
			},
		},
		&ast.FuncDef{
			Name: "main",
			Body: []ast.Stmt{
				&ast.VarDecl{Name: "c", Init: &ast.EnumValue{Enum: "Color", Variant: "Purple"}},
			},
		},
	)

	if n := len(rep.OfKind(report.TypeMismatch)); n != 1 {
		t.Errorf("got %d TypeMismatch diagnostics, want 1 for the unknown variant", n)
	}

	fn := findFunc(t, prog, "isBlue")
	if fn.Params[0].Type.Repr() != "u8" {
		t.Errorf("enum parameter type = %s, want u8", fn.Params[0].Type.Repr())
	}

	cmp, ok := fn.Ops[0].(*ir.Compare)
	if !ok || cmp.Pred != ir.ICmpEQ || cmp.Type.Repr() != "u8" || cmp.Rhs.Repr() != "2" {
		t.Errorf("first operation is %s, want icmp eq u8 against 2", fn.Ops[0].Repr())
	}
}
