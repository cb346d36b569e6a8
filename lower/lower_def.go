package lower

import (
	"github.com/frittesauce/Eclipse/ast"
	"github.com/frittesauce/Eclipse/common"
	"github.com/frittesauce/Eclipse/depm"
	"github.com/frittesauce/Eclipse/ir"
	"github.com/frittesauce/Eclipse/report"
	"github.com/frittesauce/Eclipse/types"
)

// lowerFunc lowers a function definition.  Parameters are declared in a frame
// of their own and scalar parameters stay in registers.  The body is lowered
// in a nested frame.
func (l *Lowerer) lowerFunc(sig *depm.FuncSig) *ir.Function {
	fd := sig.Def

	l.sig = sig
	l.fn = &ir.Function{
		Name:   sig.Key,
		Public: sig.Public || sig.Key == common.EntryFuncName,
	}
	l.vars = depm.NewVariableTable(l.names)
	l.outSlot = ""
	l.terminated = false
	l.warnedUnreachable = false

	if types.IsComposite(sig.ReturnType) {
		l.outSlot = l.names.Next()
		l.fn.Params = append(l.fn.Params, ir.Param{
			Key:  l.outSlot,
			Type: &ir.PointerType{ElemType: l.convType(sig.ReturnType)},
		})

		l.fn.ReturnType = ir.Void
	} else {
		l.fn.ReturnType = l.convType(sig.ReturnType)
	}

	l.vars.CreateScope()
	for _, param := range fd.Params {
		var key string
		if v, ok := l.declare(param.Name, false, param.Type, param.Span()); ok {
			key = v.Key
			v.Register = !types.IsComposite(param.Type)
		} else {
			key = l.names.Next()
		}

		l.fn.Params = append(l.fn.Params, ir.Param{Key: key, Type: l.convParamType(param.Type)})
	}

	l.vars.CreateScope()
	l.lowerBlock(fd.Body)
	l.popScope()
	l.vars.PopScope()

	if !types.IsVoid(sig.ReturnType) && !endsInReturn(fd.Body) {
		l.error(report.MissingReturn, fd.Span(), "function `%s` must end by returning a value of type `%s`", fd.Name, sig.ReturnType.Repr())
	}

	if _, ok := l.fn.LastOp().(*ir.Return); !ok {
		if _, ok := l.fn.ReturnType.(*ir.VoidType); ok {
			l.emit(&ir.Return{Type: ir.Void})
		} else {
			l.emit(&ir.Return{Type: l.fn.ReturnType, Value: &ir.Null{}})
		}
	}

	fn := l.fn
	l.fn, l.sig, l.vars = nil, nil, nil
	return fn
}

// endsInReturn returns whether the last statement of a body is a return.
func endsInReturn(body []ast.Stmt) bool {
	if len(body) == 0 {
		return false
	}

	_, ok := body[len(body)-1].(*ast.ReturnStmt)
	return ok
}
