package interp

import (
	"sap/errs"
	"sap/value"
)

// Checker walks the AST once, resolving every Ident to its Decl and
// stamping every expression's ResolvedType, producing the typed tree
// Eval and Exec assume they are handed, §4.C.1. It carries the
// Factory so compound types built along the way (an array literal's
// element type, say) come out of the same interning table the rest of
// the program uses.
type Checker struct {
	Types *value.Factory
}

// NewChecker returns a Checker backed by a fresh Factory.
func NewChecker() *Checker {
	return &Checker{Types: value.NewFactory()}
}

// CheckExpr resolves expr's type (and, for Ident, its Decl) against
// scope, recursing into every subexpression first so composite nodes
// can consult their operands' resolved types.
func (c *Checker) CheckExpr(expr *Expr, scope *Scope) error {
	switch expr.Kind {
	case Literal:
		return c.checkLiteral(expr)
	case Ident:
		return c.checkIdent(expr, scope)
	case Binary:
		return c.checkBinary(expr, scope)
	case Unary:
		if err := c.CheckExpr(expr.Operand, scope); err != nil {
			return err
		}
		expr.ResolvedType = expr.Operand.ResolvedType
		return nil
	case Assign:
		if err := c.CheckExpr(expr.Lhs, scope); err != nil {
			return err
		}
		if err := c.CheckExpr(expr.Rhs, scope); err != nil {
			return err
		}
		expr.ResolvedType = expr.Lhs.ResolvedType
		return nil
	case Move:
		if err := c.CheckExpr(expr.Operand2, scope); err != nil {
			return err
		}
		expr.ResolvedType = expr.Operand2.ResolvedType
		return nil
	case NullCoalesce:
		return c.checkNullCoalesce(expr, scope)
	case Field:
		return c.checkField(expr, scope)
	case Index:
		return c.checkIndex(expr, scope)
	case ArrayLit:
		return c.checkArrayLit(expr, scope)
	case StructLit:
		return c.checkStructLit(expr, scope)
	case ExplicitCast:
		if err := c.CheckExpr(expr.Source, scope); err != nil {
			return err
		}
		// expr.Target is set by the parser/front end from the cast's
		// written-out type name; this checker only validates the
		// source operand, not the target spelling.
		return nil
	case Call:
		return c.checkCall(expr, scope)
	case IfLetOptional, IfLetUnion:
		return c.checkIfLet(expr, scope)
	default:
		return errs.New(errs.Internal, expr.Loc.toErrs(), "interp: Checker: unhandled expr kind %d", expr.Kind)
	}
}

func (c *Checker) checkLiteral(expr *Expr) error {
	switch expr.LitValue.(type) {
	case bool:
		expr.ResolvedType = c.Types.Primitive(value.Bool)
	case rune:
		expr.ResolvedType = c.Types.Primitive(value.Char)
	case int64:
		expr.ResolvedType = c.Types.Primitive(value.Int)
	case float64:
		expr.ResolvedType = c.Types.Primitive(value.Float)
	case string:
		// Strings are arrays of Char, §4.B; a literal's array element
		// type is Char and Variadic is irrelevant to a concrete value.
		expr.ResolvedType = c.Types.Array(c.Types.Primitive(value.Char), false)
	default:
		return errs.New(errs.Internal, expr.Loc.toErrs(), "interp: literal has unsupported payload type %T", expr.LitValue)
	}
	return nil
}

func (c *Checker) checkIdent(expr *Expr, scope *Scope) error {
	d, ok := scope.Lookup(expr.Name)
	if !ok {
		return errs.New(errs.Type, expr.Loc.toErrs(), "undeclared identifier %q", expr.Name)
	}
	expr.Decl = d
	expr.ResolvedType = d.Type
	return nil
}

func (c *Checker) checkBinary(expr *Expr, scope *Scope) error {
	for _, o := range expr.Operands {
		if err := c.CheckExpr(o, scope); err != nil {
			return err
		}
	}
	switch expr.Ops[0] {
	case Lt, Le, Gt, Ge, Eq, Ne, And, Or:
		expr.ResolvedType = c.Types.Primitive(value.Bool)
	default:
		expr.ResolvedType = expr.Operands[0].ResolvedType
	}
	return nil
}

func (c *Checker) checkNullCoalesce(expr *Expr, scope *Scope) error {
	if err := c.CheckExpr(expr.Left, scope); err != nil {
		return err
	}
	if err := c.CheckExpr(expr.Right, scope); err != nil {
		return err
	}
	if expr.Flatmap {
		expr.ResolvedType = expr.Left.ResolvedType
		return nil
	}
	if expr.Left.ResolvedType.Kind != value.Optional {
		return errs.New(errs.Type, expr.Loc.toErrs(), "?? requires an optional left operand, got %s", expr.Left.ResolvedType)
	}
	expr.ResolvedType = expr.Left.ResolvedType.Elem
	return nil
}

func (c *Checker) checkField(expr *Expr, scope *Scope) error {
	if err := c.CheckExpr(expr.Base, scope); err != nil {
		return err
	}
	for _, f := range expr.Base.ResolvedType.Fields {
		if f.Name == expr.Field {
			expr.ResolvedType = f.Type
			return nil
		}
	}
	return errs.New(errs.Type, expr.Loc.toErrs(), "%s has no field %q", expr.Base.ResolvedType, expr.Field)
}

func (c *Checker) checkIndex(expr *Expr, scope *Scope) error {
	if err := c.CheckExpr(expr.Array, scope); err != nil {
		return err
	}
	if err := c.CheckExpr(expr.Idx, scope); err != nil {
		return err
	}
	if expr.Array.ResolvedType.Kind != value.Array {
		return errs.New(errs.Type, expr.Loc.toErrs(), "cannot index non-array type %s", expr.Array.ResolvedType)
	}
	expr.ResolvedType = expr.Array.ResolvedType.Elem
	return nil
}

func (c *Checker) checkArrayLit(expr *Expr, scope *Scope) error {
	var elem *value.Type
	for _, e := range expr.Elems {
		if err := c.CheckExpr(e, scope); err != nil {
			return err
		}
		if elem == nil {
			elem = e.ResolvedType
		} else if elem != e.ResolvedType {
			return errs.New(errs.Type, expr.Loc.toErrs(), "array literal elements must share a type, got %s and %s", elem, e.ResolvedType)
		}
	}
	if elem == nil {
		return errs.New(errs.Type, expr.Loc.toErrs(), "cannot infer element type of empty array literal")
	}
	expr.ResolvedType = c.Types.Array(elem, false)
	return nil
}

func (c *Checker) checkStructLit(expr *Expr, scope *Scope) error {
	t, ok := c.Types.Lookup(expr.Struct)
	if !ok {
		return errs.New(errs.Type, expr.Loc.toErrs(), "undeclared struct type %q", expr.Struct)
	}
	if len(expr.Elems) != len(t.Fields) {
		return errs.New(errs.Type, expr.Loc.toErrs(), "%s has %d fields, got %d initializers", expr.Struct, len(t.Fields), len(expr.Elems))
	}
	for i, e := range expr.Elems {
		if err := c.CheckExpr(e, scope); err != nil {
			return err
		}
		if e.ResolvedType != t.Fields[i].Type {
			return errs.New(errs.Type, expr.Loc.toErrs(), "field %q of %s: expected %s, got %s",
				t.Fields[i].Name, expr.Struct, t.Fields[i].Type, e.ResolvedType)
		}
	}
	expr.ResolvedType = t
	return nil
}

func (c *Checker) checkCall(expr *Expr, scope *Scope) error {
	if err := c.CheckExpr(expr.Callee, scope); err != nil {
		return err
	}
	if expr.Callee.ResolvedType.Kind != value.Function {
		return errs.New(errs.Type, expr.Loc.toErrs(), "cannot call non-function type %s", expr.Callee.ResolvedType)
	}
	if len(expr.Args) != len(expr.Callee.ResolvedType.Params) {
		return errs.New(errs.Type, expr.Loc.toErrs(), "expected %d arguments, got %d",
			len(expr.Callee.ResolvedType.Params), len(expr.Args))
	}
	for i, a := range expr.Args {
		if err := c.CheckExpr(a, scope); err != nil {
			return err
		}
		want := expr.Callee.ResolvedType.Params[i]
		if a.ResolvedType != want && want.Kind != value.Any {
			return errs.New(errs.Type, expr.Loc.toErrs(), "argument %d: expected %s, got %s", i, want, a.ResolvedType)
		}
	}
	expr.ResolvedType = expr.Callee.ResolvedType.Result
	return nil
}

// checkIfLet resolves the subject and, for the optional form, pushes
// a child scope binding the unwrapped name before checking Then;
// for the union form the bound name gets the type of the case named
// by Variant, looked up statically among the subject's fields; whether
// that case is the active one is only known at Eval time.
func (c *Checker) checkIfLet(expr *Expr, scope *Scope) error {
	if err := c.CheckExpr(expr.Subject, scope); err != nil {
		return err
	}
	inner := scope.Child()
	if expr.Kind == IfLetOptional {
		if expr.Subject.ResolvedType.Kind != value.Optional {
			return errs.New(errs.Type, expr.Loc.toErrs(), "if-let requires an optional subject, got %s", expr.Subject.ResolvedType)
		}
		inner.Declare(expr.Bind, expr.Subject.ResolvedType.Elem)
	} else {
		var caseType *value.Type
		for _, f := range expr.Subject.ResolvedType.Fields {
			if f.Name == expr.Variant {
				caseType = f.Type
			}
		}
		if caseType == nil {
			return errs.New(errs.Type, expr.Loc.toErrs(), "%s has no variant %q", expr.Subject.ResolvedType, expr.Variant)
		}
		inner.Declare(expr.Bind, caseType)
	}
	if err := c.CheckStmts(expr.Then, inner); err != nil {
		return err
	}
	return c.CheckStmts(expr.Else, scope.Child())
}

// CheckStmts typechecks a statement list in scope as given; callers
// that need a fresh scope pass a child.
func (c *Checker) CheckStmts(stmts []Stmt, scope *Scope) error {
	for i := range stmts {
		if err := c.checkStmt(&stmts[i], scope); err != nil {
			return err
		}
	}
	return nil
}

func (c *Checker) checkStmt(stmt *Stmt, scope *Scope) error {
	switch stmt.Kind {
	case ExprStmt:
		return c.CheckExpr(stmt.Expr, scope)
	case VarDecl:
		if err := c.CheckExpr(stmt.Init, scope); err != nil {
			return err
		}
		t := stmt.DeclType
		if t == nil {
			t = stmt.Init.ResolvedType
		}
		scope.Declare(stmt.DeclName, t)
		return nil
	case Return:
		if stmt.Value == nil {
			return nil
		}
		return c.CheckExpr(stmt.Value, scope)
	case If:
		if err := c.CheckExpr(stmt.Cond, scope); err != nil {
			return err
		}
		if err := c.CheckStmts(stmt.Body, scope.Child()); err != nil {
			return err
		}
		return c.CheckStmts(stmt.Else2, scope.Child())
	case While:
		if err := c.CheckExpr(stmt.Cond, scope); err != nil {
			return err
		}
		return c.CheckStmts(stmt.Body, scope.Child())
	case Break, Continue:
		return nil
	case BlockStmt:
		return c.CheckStmts(stmt.Stmts, scope.Child())
	default:
		return errs.New(errs.Internal, stmt.Loc.toErrs(), "interp: Checker: unhandled statement kind %d", stmt.Kind)
	}
}

func (l Location) toErrs() errs.Location {
	return errs.Location{Line: l.Line, Col: l.Col}
}
