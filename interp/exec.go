package interp

import (
	"sap/errs"
	"sap/value"
)

// Exec runs a statement list in order, stopping early and propagating
// whatever non-Normal EvalResult a nested statement produces, §4.C.2
// ("loops propagate Return upward and consume Break/Continue").
func Exec(stmts []Stmt, ctx *EvalContext) (EvalResult, error) {
	for _, stmt := range stmts {
		res, err := execOne(&stmt, ctx)
		if err != nil {
			return EvalResult{}, err
		}
		if res.Kind != Normal {
			return res, nil
		}
	}
	return EvalResult{Kind: Normal}, nil
}

func execOne(stmt *Stmt, ctx *EvalContext) (EvalResult, error) {
	switch stmt.Kind {
	case ExprStmt:
		return execExprStmt(stmt, ctx)
	case VarDecl:
		return execVarDecl(stmt, ctx)
	case Return:
		return execReturn(stmt, ctx)
	case If:
		return execIf(stmt, ctx)
	case While:
		return execWhile(stmt, ctx)
	case Break:
		return EvalResult{Kind: LoopBreak}, nil
	case Continue:
		return EvalResult{Kind: LoopContinue}, nil
	case BlockStmt:
		return Exec(stmt.Stmts, &EvalContext{
			Frame: NewBlockFrame(ctx.Frame), Style: ctx.Style, RootStyle: ctx.RootStyle, Styles: ctx.Styles,
		})
	default:
		return EvalResult{}, errs.New(errs.Internal, errs.Location{}, "interp: unhandled statement kind %d", stmt.Kind)
	}
}

// execExprStmt handles a bare expression statement, including the
// two control-flow expression kinds (IfLetOptional, IfLetUnion) that
// carry their own statement bodies rather than producing a value.
func execExprStmt(stmt *Stmt, ctx *EvalContext) (EvalResult, error) {
	switch stmt.Expr.Kind {
	case IfLetOptional:
		return execIfLetOptional(stmt.Expr, ctx)
	case IfLetUnion:
		return execIfLetUnion(stmt.Expr, ctx)
	default:
		_, err := Eval(stmt.Expr, ctx)
		if err != nil {
			return EvalResult{}, err
		}
		return EvalResult{Kind: Normal}, nil
	}
}

func execVarDecl(stmt *Stmt, ctx *EvalContext) (EvalResult, error) {
	init, err := evalDeref(stmt.Init, ctx)
	if err != nil {
		return EvalResult{}, err
	}
	t := stmt.DeclType
	if t == nil {
		t = init.Type
	}
	d := &Decl{Name: stmt.DeclName, Type: t}
	ctx.Frame.Bind(d, init)
	// The typechecker rewrites subsequent Ident references to this name
	// to carry d directly (see Expr.Decl); Exec itself does not touch
	// Scope, only Frame storage.
	return EvalResult{Kind: Normal}, nil
}

func execReturn(stmt *Stmt, ctx *EvalContext) (EvalResult, error) {
	if stmt.Value == nil {
		return EvalResult{Kind: ReturnSignal}, nil
	}
	v, err := Eval(stmt.Value, ctx)
	if err != nil {
		return EvalResult{}, err
	}
	out, err := ExecReturn(v, ctx.Frame)
	if err != nil {
		return EvalResult{}, err
	}
	return EvalResult{Kind: ReturnSignal, Value: out}, nil
}

func execIf(stmt *Stmt, ctx *EvalContext) (EvalResult, error) {
	cond, err := evalDeref(stmt.Cond, ctx)
	if err != nil {
		return EvalResult{}, err
	}
	branch := stmt.Else2
	if cond.AsBool() {
		branch = stmt.Body
	}
	return Exec(branch, &EvalContext{
		Frame: NewBlockFrame(ctx.Frame), Style: ctx.Style, RootStyle: ctx.RootStyle, Styles: ctx.Styles,
	})
}

func execWhile(stmt *Stmt, ctx *EvalContext) (EvalResult, error) {
	for {
		cond, err := evalDeref(stmt.Cond, ctx)
		if err != nil {
			return EvalResult{}, err
		}
		if !cond.AsBool() {
			return EvalResult{Kind: Normal}, nil
		}
		res, err := Exec(stmt.Body, &EvalContext{
			Frame: NewBlockFrame(ctx.Frame), Style: ctx.Style, RootStyle: ctx.RootStyle, Styles: ctx.Styles,
		})
		if err != nil {
			return EvalResult{}, err
		}
		switch res.Kind {
		case LoopBreak:
			return EvalResult{Kind: Normal}, nil
		case ReturnSignal:
			return res, nil
		}
		// Normal and LoopContinue both fall through to the next iteration.
	}
}

// execIfLetOptional implements `if let name = subject { ... } else { ... }`
// over an Optional value, §4.C.2: a non-empty subject binds the
// unwrapped value as a new local in the true branch's block frame.
func execIfLetOptional(expr *Expr, ctx *EvalContext) (EvalResult, error) {
	subject, err := evalDeref(expr.Subject, ctx)
	if err != nil {
		return EvalResult{}, err
	}
	ptr, ok := subject.Data.(*value.Pointer)
	if !ok || ptr.Cell == nil {
		return Exec(expr.Else, &EvalContext{
			Frame: NewBlockFrame(ctx.Frame), Style: ctx.Style, RootStyle: ctx.RootStyle, Styles: ctx.Styles,
		})
	}
	block := NewBlockFrame(ctx.Frame)
	d := &Decl{Name: expr.Bind, Type: subject.Type.Elem}
	block.Bind(d, ptr.Cell.V)
	return Exec(expr.Then, &EvalContext{Frame: block, Style: ctx.Style, RootStyle: ctx.RootStyle, Styles: ctx.Styles})
}

// execIfLetUnion implements `if let Variant(name) = subject { ... }`,
// §4.C.2: matches subject's active case by name; on match, binds the
// variant's fields — by value, or by mutable reference when BindByRef
// asks for it via a pointer into the union's own storage.
func execIfLetUnion(expr *Expr, ctx *EvalContext) (EvalResult, error) {
	subject, err := Eval(expr.Subject, ctx)
	if err != nil {
		return EvalResult{}, err
	}
	deref, err := subject.Deref()
	if err != nil {
		return EvalResult{}, err
	}
	u := deref.AsUnion()
	caseType := deref.Type.Fields[u.Case]
	if caseType.Name != expr.Variant {
		return Exec(expr.Else, &EvalContext{
			Frame: NewBlockFrame(ctx.Frame), Style: ctx.Style, RootStyle: ctx.RootStyle, Styles: ctx.Styles,
		})
	}
	block := NewBlockFrame(ctx.Frame)
	d := &Decl{Name: expr.Bind, Type: u.Value.Type}
	bound := u.Value
	if expr.BindByRef && subject.IsLValue() {
		bound = value.LVal(u.Value.Type, &value.Cell{V: u.Value})
	}
	block.Bind(d, bound)
	return Exec(expr.Then, &EvalContext{Frame: block, Style: ctx.Style, RootStyle: ctx.RootStyle, Styles: ctx.Styles})
}
