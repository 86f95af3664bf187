package interp

import (
	"sap/errs"
	"sap/value"
)

// FuncDecl is a resolved function declaration: its parameter Decls
// (so Call can Bind arguments directly without re-declaring them) and
// its body statement list. Closures, §4.C.2, pair a FuncDecl with the
// Frame it captured at definition time.
type FuncDecl struct {
	Name   string
	Params []*Decl
	Result *value.Type
	Body   []Stmt
}

// evalCall implements a function call: the callee evaluates to a
// Closure value; arguments are evaluated left to right in the calling
// frame, then bound into a fresh call frame whose parent is the
// closure's captured frame (not the caller's). Frame.Cell never
// crosses a call boundary, so the callee's body resolves only its
// parameters and its own locals, neither the caller's nor the
// captured frame's.
func evalCall(expr *Expr, ctx *EvalContext) (value.Value, error) {
	callee, err := evalDeref(expr.Callee, ctx)
	if err != nil {
		return value.Value{}, err
	}
	closure, ok := callee.Data.(*value.Closure)
	if !ok {
		return value.Value{}, errs.New(errs.Type, errs.Location{}, "call target is not a function")
	}
	decl, ok := closure.Decl.(*FuncDecl)
	if !ok {
		return value.Value{}, errs.New(errs.Internal, errs.Location{}, "interp: closure carries no FuncDecl")
	}
	captured, _ := closure.Capture.(*Frame)

	if len(expr.Args) != len(decl.Params) {
		return value.Value{}, errs.New(errs.Type, errs.Location{},
			"%s expects %d arguments, got %d", decl.Name, len(decl.Params), len(expr.Args))
	}
	args := make([]value.Value, len(expr.Args))
	for i, a := range expr.Args {
		v, err := evalDeref(a, ctx)
		if err != nil {
			return value.Value{}, err
		}
		args[i] = v
	}

	call := NewCallFrame(captured)
	for i, p := range decl.Params {
		call.Bind(p, args[i])
	}
	res, err := Exec(decl.Body, &EvalContext{Frame: call, Style: ctx.Style, RootStyle: ctx.RootStyle, Styles: ctx.Styles})
	if err != nil {
		return value.Value{}, err
	}
	if res.Kind == ReturnSignal {
		return res.Value, nil
	}
	return value.Value{}, nil
}

func evalStructLit(expr *Expr, ctx *EvalContext) (value.Value, error) {
	fields := make([]value.Value, len(expr.Elems))
	for i, e := range expr.Elems {
		v, err := evalDeref(e, ctx)
		if err != nil {
			return value.Value{}, err
		}
		fields[i] = v
	}
	return value.RVal(expr.ResolvedType, &value.Struct{Fields: fields}), nil
}
