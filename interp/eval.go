package interp

import (
	"sap/errs"
	"sap/style"
	"sap/value"
)

// SignalKind is EvalResult's tagged discriminant, §4.C.2.
type SignalKind int

const (
	Normal SignalKind = iota
	ReturnSignal
	LoopBreak
	LoopContinue
)

// EvalResult is the control-flow signal a statement produces: Normal
// falls through, ReturnSignal and LoopBreak/LoopContinue propagate up
// through enclosing blocks and loops per §4.C.2's rule ("Loops
// propagate Return upward and consume Break/Continue").
type EvalResult struct {
	Kind  SignalKind
	Value value.Value // set for ReturnSignal with a value; zero for a bare return
}

// EvalContext threads the pieces Eval needs beyond the current Frame:
// the style in effect at this point in the tree (for Length
// arithmetic, §4.C.2) and the document's root style (for `rem`).
type EvalContext struct {
	Frame     *Frame
	Style     *style.Style
	RootStyle *style.Style
	Styles    *style.Cache
}

// Eval evaluates expr in ctx, returning its value. Only expressions
// that can themselves carry a control-flow signal (Call, in
// principle) would need to return one too; this evaluator represents
// that signal at the statement level only (see Exec), keeping Eval's
// signature a plain (Value, error).
func Eval(expr *Expr, ctx *EvalContext) (value.Value, error) {
	switch expr.Kind {
	case Literal:
		return evalLiteral(expr)
	case Ident:
		return evalIdent(expr, ctx)
	case Binary:
		return evalBinary(expr, ctx)
	case Unary:
		return evalUnary(expr, ctx)
	case Assign:
		return evalAssign(expr, ctx)
	case Move:
		return evalMove(expr, ctx)
	case NullCoalesce:
		return evalNullCoalesce(expr, ctx)
	case Field:
		return evalField(expr, ctx)
	case Index:
		return evalIndex(expr, ctx)
	case ArrayLit:
		return evalArrayLit(expr, ctx)
	case StructLit:
		return evalStructLit(expr, ctx)
	case ExplicitCast:
		return evalExplicitCast(expr, ctx)
	case Call:
		return evalCall(expr, ctx)
	default:
		return value.Value{}, errs.New(errs.Internal, errs.Location{}, "interp: Eval: unhandled expr kind %d", expr.Kind)
	}
}

func evalLiteral(expr *Expr) (value.Value, error) {
	if expr.ResolvedType == nil {
		return value.Value{}, errs.New(errs.Internal, errs.Location{}, "interp: literal has no resolved type")
	}
	switch expr.LitValue.(type) {
	case bool, rune, int64, float64, string:
		return value.RVal(expr.ResolvedType, expr.LitValue), nil
	default:
		return value.Value{}, errs.New(errs.Internal, errs.Location{}, "interp: literal has unsupported payload type %T", expr.LitValue)
	}
}

func evalIdent(expr *Expr, ctx *EvalContext) (value.Value, error) {
	if expr.Decl == nil {
		return value.Value{}, errs.New(errs.Internal, errs.Location{}, "interp: unresolved identifier %q", expr.Name)
	}
	cell, ok := ctx.Frame.Cell(expr.Decl)
	if !ok {
		return value.Value{}, errs.New(errs.Internal, errs.Location{}, "interp: %q has no storage in this frame", expr.Name)
	}
	return value.LVal(expr.Decl.Type, cell), nil
}

func evalBinary(expr *Expr, ctx *EvalContext) (value.Value, error) {
	if len(expr.Ops) > 1 {
		return evalComparisonChain(expr, ctx)
	}
	op := expr.Ops[0]
	if op == And || op == Or {
		return evalLogical(op, expr.Operands[0], expr.Operands[1], ctx)
	}

	l, err := evalDeref(expr.Operands[0], ctx)
	if err != nil {
		return value.Value{}, err
	}
	r, err := evalDeref(expr.Operands[1], ctx)
	if err != nil {
		return value.Value{}, err
	}
	switch op {
	case Add, Sub, Mul, Div:
		return Arithmetic(op, l, r, ctx)
	default:
		ok, err := compare(op, l, r)
		if err != nil {
			return value.Value{}, err
		}
		return value.RVal(ctx.boolType(), ok), nil
	}
}

// evalComparisonChain evaluates a < b <= c style chain, §4.C.2:
// operands are evaluated left to right, at most once each, and the
// chain short-circuits to false as soon as one link fails.
func evalComparisonChain(expr *Expr, ctx *EvalContext) (value.Value, error) {
	prev, err := evalDeref(expr.Operands[0], ctx)
	if err != nil {
		return value.Value{}, err
	}
	for i, op := range expr.Ops {
		next, err := evalDeref(expr.Operands[i+1], ctx)
		if err != nil {
			return value.Value{}, err
		}
		ok, err := compare(op, prev, next)
		if err != nil {
			return value.Value{}, err
		}
		if !ok {
			return value.RVal(ctx.boolType(), false), nil
		}
		prev = next
	}
	return value.RVal(ctx.boolType(), true), nil
}

// evalLogical implements && / ||: both operands must be bool, and the
// right side is only evaluated if the left side didn't already decide
// the result.
func evalLogical(op BinaryOp, leftExpr, rightExpr *Expr, ctx *EvalContext) (value.Value, error) {
	l, err := evalDeref(leftExpr, ctx)
	if err != nil {
		return value.Value{}, err
	}
	if l.Type.Kind != value.Bool {
		return value.Value{}, errs.New(errs.Type, errs.Location{}, "operand of %s must be bool", binaryOpName(op))
	}
	if op == And && !l.AsBool() {
		return value.RVal(ctx.boolType(), false), nil
	}
	if op == Or && l.AsBool() {
		return value.RVal(ctx.boolType(), true), nil
	}
	r, err := evalDeref(rightExpr, ctx)
	if err != nil {
		return value.Value{}, err
	}
	if r.Type.Kind != value.Bool {
		return value.Value{}, errs.New(errs.Type, errs.Location{}, "operand of %s must be bool", binaryOpName(op))
	}
	return value.RVal(ctx.boolType(), r.AsBool()), nil
}

func compare(op BinaryOp, l, r value.Value) (bool, error) {
	switch {
	case l.Type.Kind == value.Int && r.Type.Kind == value.Int:
		return compareOrdered(op, l.AsInt(), r.AsInt())
	case l.Type.Kind == value.Float && r.Type.Kind == value.Float:
		return compareOrdered(op, l.AsFloat(), r.AsFloat())
	case l.Type.Kind == value.Char && r.Type.Kind == value.Char:
		return compareOrdered(op, l.AsChar(), r.AsChar())
	case l.Type.Kind == value.Bool && r.Type.Kind == value.Bool && (op == Eq || op == Ne):
		return (op == Eq) == (l.AsBool() == r.AsBool()), nil
	}
	return false, errs.New(errs.Type, errs.Location{}, "cannot compare %s and %s", l.Type, r.Type)
}

type ordered interface{ ~int64 | ~float64 | ~int32 }

func compareOrdered[T ordered](op BinaryOp, a, b T) (bool, error) {
	switch op {
	case Lt:
		return a < b, nil
	case Le:
		return a <= b, nil
	case Gt:
		return a > b, nil
	case Ge:
		return a >= b, nil
	case Eq:
		return a == b, nil
	case Ne:
		return a != b, nil
	default:
		return false, errs.New(errs.Internal, errs.Location{}, "interp: not a comparison operator")
	}
}

func evalUnary(expr *Expr, ctx *EvalContext) (value.Value, error) {
	v, err := evalDeref(expr.Operand, ctx)
	if err != nil {
		return value.Value{}, err
	}
	switch expr.UnaryOp {
	case Sub:
		if v.Type.Kind == value.Int {
			return value.RVal(v.Type, -v.AsInt()), nil
		}
		if v.Type.Kind == value.Float {
			return value.RVal(v.Type, -v.AsFloat()), nil
		}
	}
	return value.Value{}, errs.New(errs.Type, errs.Location{}, "unary - not defined for %s", v.Type)
}

// evalAssign implements `=` and the compound forms: lhs must resolve
// to an lvalue; compound forms evaluate lhs once and combine with rhs
// via Arithmetic before writing back, §4.C.2.
func evalAssign(expr *Expr, ctx *EvalContext) (value.Value, error) {
	lhs, err := Eval(expr.Lhs, ctx)
	if err != nil {
		return value.Value{}, err
	}
	if !lhs.IsLValue() {
		return value.Value{}, errs.New(errs.Type, errs.Location{}, "assignment target must be an lvalue")
	}
	rhs, err := evalDeref(expr.Rhs, ctx)
	if err != nil {
		return value.Value{}, err
	}

	newVal := rhs
	if expr.AssignOp != AssignPlain {
		cur, err := lhs.Deref()
		if err != nil {
			return value.Value{}, err
		}
		op := map[AssignOp]BinaryOp{AssignAdd: Add, AssignSub: Sub, AssignMul: Mul, AssignDiv: Div}[expr.AssignOp]
		newVal, err = Arithmetic(op, cur, rhs, ctx)
		if err != nil {
			return value.Value{}, err
		}
	}
	lhs.Cell.V = newVal
	return lhs, nil
}

// evalMove implements `move lhs`, §4.C.2: lhs must be an lvalue; its
// cell is marked moved-from and the value transferred out as an
// rvalue.
func evalMove(expr *Expr, ctx *EvalContext) (value.Value, error) {
	lhs, err := Eval(expr.Operand2, ctx)
	if err != nil {
		return value.Value{}, err
	}
	if !lhs.IsLValue() {
		return value.Value{}, errs.New(errs.Type, errs.Location{}, "move target must be an lvalue")
	}
	return lhs.Move(), nil
}

// evalNullCoalesce implements `??` and its `???` flatmap variant,
// §4.C.2: on a non-empty left, returns its value (cast to the result
// type for `??`, or as-is for `???`, where right already shares
// left's optional/pointer shape); on empty left, evaluates and
// returns right.
func evalNullCoalesce(expr *Expr, ctx *EvalContext) (value.Value, error) {
	l, err := evalDeref(expr.Left, ctx)
	if err != nil {
		return value.Value{}, err
	}
	ptr, ok := l.Data.(*value.Pointer)
	if !ok || ptr.Cell == nil {
		return evalDeref(expr.Right, ctx)
	}
	if expr.Flatmap {
		return l, nil
	}
	return ptr.Cell.V, nil
}

func evalField(expr *Expr, ctx *EvalContext) (value.Value, error) {
	base, err := evalDeref(expr.Base, ctx)
	if err != nil {
		return value.Value{}, err
	}
	st := base.AsStruct()
	idx, ok := fieldIndex(base.Type, expr.Field)
	if !ok {
		return value.Value{}, errs.New(errs.Type, errs.Location{}, "%s has no field %q", base.Type, expr.Field)
	}
	return st.Fields[idx], nil
}

func fieldIndex(t *value.Type, name string) (int, bool) {
	for i, f := range t.Fields {
		if f.Name == name {
			return i, true
		}
	}
	return 0, false
}

func evalIndex(expr *Expr, ctx *EvalContext) (value.Value, error) {
	arr, err := evalDeref(expr.Array, ctx)
	if err != nil {
		return value.Value{}, err
	}
	idx, err := evalDeref(expr.Idx, ctx)
	if err != nil {
		return value.Value{}, err
	}
	i := idx.AsInt()
	elems := arr.AsArray().Elems
	if i < 0 || i >= int64(len(elems)) {
		return value.Value{}, errs.New(errs.Eval, errs.Location{}, "array index %d out of range [0, %d)", i, len(elems))
	}
	return elems[i], nil
}

func evalArrayLit(expr *Expr, ctx *EvalContext) (value.Value, error) {
	elems := make([]value.Value, len(expr.Elems))
	for i, e := range expr.Elems {
		v, err := evalDeref(e, ctx)
		if err != nil {
			return value.Value{}, err
		}
		elems[i] = v
	}
	return value.RVal(expr.ResolvedType, &value.Array{Elems: elems}), nil
}

func evalExplicitCast(expr *Expr, ctx *EvalContext) (value.Value, error) {
	v, err := evalDeref(expr.Source, ctx)
	if err != nil {
		return value.Value{}, err
	}
	return value.CastExplicit(v, expr.Target), nil
}

// evalDeref evaluates expr and immediately resolves an lvalue result
// down to the rvalue currently stored in its cell — the common case
// for every operand position that is not itself an assignment target.
func evalDeref(expr *Expr, ctx *EvalContext) (value.Value, error) {
	v, err := Eval(expr, ctx)
	if err != nil {
		return value.Value{}, err
	}
	return v.Deref()
}

// ExecReturn implements §4.C.2's Return rule: if the returned value is
// an lvalue rooted in the current call frame, it is moved out;
// otherwise it is dereferenced (copied).
func ExecReturn(v value.Value, frame *Frame) (value.Value, error) {
	if !v.IsLValue() {
		return v, nil
	}
	if frame.RootedInCall(v.Cell) {
		return v.Move(), nil
	}
	return v.Deref()
}

func (ctx *EvalContext) boolType() *value.Type {
	// The bool type is a primitive and therefore identical across
	// every Factory that ever interned it in this process; Eval only
	// ever needs *a* bool type to stamp comparison results with, not
	// necessarily Factory-looked-up, since callers only check Kind.
	return &value.Type{Kind: value.Bool}
}
