package lower

import (
	"github.com/frittesauce/Eclipse/ast"
	"github.com/frittesauce/Eclipse/ir"
	"github.com/frittesauce/Eclipse/report"
	"github.com/frittesauce/Eclipse/types"
)

// lowerBlock lowers a list of statements in the current scope.  Statements
// following a return are not lowered.
func (l *Lowerer) lowerBlock(stmts []ast.Stmt) {
	for _, stmt := range stmts {
		if l.terminated {
			if !l.warnedUnreachable {
				l.warn(report.UnreachableCode, stmt.Span(), "unreachable code")
				l.warnedUnreachable = true
			}

			return
		}

		l.lowerStmt(stmt)
	}
}

// lowerStmt lowers a single statement.
func (l *Lowerer) lowerStmt(stmt ast.Stmt) {
	switch v := stmt.(type) {
	case *ast.VarDecl:
		l.lowerVarDecl(v)
	case *ast.Assignment:
		l.lowerAssignment(v)
	case *ast.CallStmt:
		l.lowerCall(nil, v.Call, nil)
	case *ast.ReturnStmt:
		l.lowerReturn(v)
	case *ast.Block:
		l.vars.CreateScope()
		l.lowerBlock(v.Stmts)
		l.popScope()
	case *ast.IfStmt:
		l.unsupported(v.Span(), "if statements cannot be lowered yet")
	case *ast.LoopStmt:
		l.unsupported(v.Span(), "loops cannot be lowered yet")
	case *ast.KeywordStmt:
		l.unsupported(v.Span(), "break and continue cannot be lowered yet")
	default:
		l.unsupported(stmt.Span(), "statement cannot be lowered")
	}
}

// lowerVarDecl lowers a variable declaration.
func (l *Lowerer) lowerVarDecl(vd *ast.VarDecl) {
	if vd.Init == nil {
		if vd.Type == nil {
			l.error(report.TypeAnnotationRequired, vd.Span(), "variable `%s` requires a type label or an initializer", vd.Name)
			return
		}

		if v, ok := l.declare(vd.Name, vd.Mutable, vd.Type, vd.Span()); ok {
			l.emit(&ir.Alloca{Dest: v.Key, Type: l.convType(vd.Type)})
		}

		return
	}

	typ := vd.Type
	if typ == nil {
		typ = l.inferType(nil, vd.Init)
	}

	if types.IsComposite(typ) {
		if prev, ok := l.vars.LookupInScope(vd.Name); ok {
			l.reportDuplicate(prev, vd.Span())
			return
		}

		// the initializer is stored before the variable is declared so that it
		// cannot refer to the variable being declared
		slot := l.names.Next()
		l.emit(&ir.Alloca{Dest: slot, Type: l.convType(typ)})
		l.storeComposite(ir.NewRegister(slot), 0, typ, vd.Init)

		if _, ok := l.declare(vd.Name, vd.Mutable, typ, vd.Span()); ok {
			l.vars.RebindKey(vd.Name, slot)
		}

		return
	}

	val, valType := l.lowerExpr(typ, vd.Init)
	if vd.Type != nil {
		l.checkType(vd.Type, valType, vd.Init.Span())
	} else if valType != nil {
		typ = valType
	}

	if typ == nil {
		// the initializer failed to lower and nothing is known about its type
		return
	}

	if types.IsVoid(typ) {
		l.error(report.TypeMismatch, vd.Init.Span(), "variable `%s` cannot hold a value of type `%s`", vd.Name, typ.Repr())
		return
	}

	v, ok := l.declare(vd.Name, vd.Mutable, typ, vd.Span())
	if !ok {
		return
	}

	irType := l.convType(typ)
	l.emit(&ir.Alloca{Dest: v.Key, Type: irType})
	l.emit(&ir.Store{Type: irType, Value: val, Dest: v.Key})
}

// lowerAssignment lowers an assignment to a variable.
func (l *Lowerer) lowerAssignment(asn *ast.Assignment) {
	v, ok := l.vars.Lookup(asn.Name)
	if !ok {
		l.error(report.UndeclaredVariable, asn.Span(), "undeclared variable `%s`", asn.Name)
		return
	}

	if !v.Mutable {
		l.error(report.ImmutableAssignment, asn.Span(), "cannot assign to immutable variable `%s`", asn.Name).
			WithSecondary(v.Span, "declared here").
			WithNote("help: mut %s", asn.Name)
		return
	}

	v.Mutated = true

	if types.IsComposite(v.Type) {
		if !mentions(asn.Value, asn.Name) {
			l.storeComposite(ir.NewRegister(v.Key), 0, v.Type, asn.Value)
			return
		}

		// the value reads the variable it is assigned to so it is built in a
		// temporary slot before it overwrites the variable
		tmp := ir.NewRegister(l.names.Next())
		l.emit(&ir.Alloca{Dest: tmp.Name, Type: l.convType(v.Type)})
		l.storeComposite(tmp, 0, v.Type, asn.Value)
		l.copyComposite(ir.NewRegister(v.Key), 0, tmp, v.Type)
		return
	}

	val, valType := l.lowerExpr(v.Type, asn.Value)
	l.checkType(v.Type, valType, asn.Value.Span())

	l.emit(&ir.Store{Type: l.convType(v.Type), Value: val, Dest: v.Key})
}

// lowerReturn lowers a return statement.  Scalar values are returned in a
// register; composite values are stored into the function's output slot
// followed by a void return.
func (l *Lowerer) lowerReturn(rs *ast.ReturnStmt) {
	defer func() {
		l.terminated = true
	}()

	retType := l.sig.ReturnType

	if rs.Value == nil {
		if !types.IsVoid(retType) {
			l.error(report.TypeMismatch, rs.Span(), "function `%s` must return a value of type `%s`", l.sig.Name, retType.Repr())
		}

		l.emit(&ir.Return{Type: ir.Void})
		return
	}

	if types.IsVoid(retType) {
		l.error(report.TypeMismatch, rs.Value.Span(), "function `%s` does not return a value", l.sig.Name)
		l.emit(&ir.Return{Type: ir.Void})
		return
	}

	if types.IsComposite(retType) {
		l.storeComposite(ir.NewRegister(l.outSlot), 0, retType, rs.Value)
		l.emit(&ir.Return{Type: ir.Void})
		return
	}

	val, valType := l.lowerExpr(retType, rs.Value)
	l.checkType(retType, valType, rs.Value.Span())

	l.emit(&ir.Return{Type: l.convType(retType), Value: val})
}

// mentions returns whether an expression reads the variable with the given
// name.
func mentions(expr ast.Expr, name string) bool {
	switch v := expr.(type) {
	case *ast.Identifier:
		return v.Name == name
	case *ast.Call:
		return anyMentions(v.Args, name)
	case *ast.ArrayLit:
		return anyMentions(v.Elems, name)
	case *ast.TupleLit:
		return anyMentions(v.Elems, name)
	case *ast.Index:
		return mentions(v.Base, name) || mentions(v.Index, name)
	case *ast.BinaryOp:
		return mentions(v.Lhs, name) || mentions(v.Rhs, name)
	case *ast.UnaryOp:
		return mentions(v.Operand, name)
	default:
		return false
	}
}

func anyMentions(exprs []ast.Expr, name string) bool {
	for _, expr := range exprs {
		if mentions(expr, name) {
			return true
		}
	}

	return false
}
