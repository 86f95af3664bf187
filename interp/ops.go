package interp

import (
	"sap/errs"
	"sap/style"
	"sap/value"
)

// ptPerMM etc. are the physical/typographic unit ratios style.Length
// needs resolved to points, the layout engine's working unit.
const (
	ptPerMM = 72.0 / 25.4
	ptPerIn = 72.0
	ptPerPc = 12.0
)

// ResolveLength converts l to points using cur's font size for the
// font-relative units (Em, Ex, RootEm), per §4.C.2: "Length + Length
// requires resolving units against the current style." Ex is taken as
// half an Em, the conventional approximation absent real font metrics
// at this layer; RootEm resolves against root's font size rather than
// cur's, matching CSS's rem semantics, the nearest well-known analogue
// for this unit name.
func ResolveLength(l style.Length, cur, root *style.Style) float64 {
	switch l.Unit {
	case style.Point:
		return l.Value
	case style.Millimetre:
		return l.Value * ptPerMM
	case style.Centimetre:
		return l.Value * ptPerMM * 10
	case style.Inch:
		return l.Value * ptPerIn
	case style.Pica:
		return l.Value * ptPerPc
	case style.Em:
		return l.Value * cur.FontSize.Value * unitScale(cur.FontSize.Unit)
	case style.Ex:
		return l.Value * 0.5 * cur.FontSize.Value * unitScale(cur.FontSize.Unit)
	case style.RootEm:
		return l.Value * root.FontSize.Value * unitScale(root.FontSize.Unit)
	default:
		errs.Abort("interp: unknown length unit %d", l.Unit)
		return 0
	}
}

// unitScale gives the points-per-unit factor for a FontSize's own
// unit, without recursing: a FontSize is never legally written in
// Em/Ex/RootEm relative to itself, so those kinds are treated as
// already-absolute points.
func unitScale(u style.Unit) float64 {
	switch u {
	case style.Millimetre:
		return ptPerMM
	case style.Centimetre:
		return ptPerMM * 10
	case style.Inch:
		return ptPerIn
	case style.Pica:
		return ptPerPc
	default:
		return 1
	}
}

// Arithmetic evaluates Add/Sub/Mul/Div between two already-evaluated
// rvalues, §4.C.2: same-type int/float arithmetic; array×int repeats
// the array; array+array concatenates (element types must match);
// Length+Length resolves both operands against ctx's current style.
func Arithmetic(op BinaryOp, l, r value.Value, ctx *EvalContext) (value.Value, error) {
	switch {
	case l.Type.Kind == value.Int && r.Type.Kind == value.Int:
		return intArith(op, l, r)
	case l.Type.Kind == value.Float && r.Type.Kind == value.Float:
		return floatArith(op, l, r)
	case l.Type.Kind == value.Array && r.Type.Kind == value.Int && op == Mul:
		return repeatArray(l, r)
	case l.Type.Kind == value.Array && r.Type.Kind == value.Array && op == Add:
		return concatArray(l, r)
	case isLength(l) && isLength(r) && op == Add:
		return addLength(l, r, ctx)
	}
	return value.Value{}, errs.New(errs.Type, errs.Location{},
		"no %s operator for %s and %s", binaryOpName(op), l.Type, r.Type)
}

func intArith(op BinaryOp, l, r value.Value) (value.Value, error) {
	a, b := l.AsInt(), r.AsInt()
	switch op {
	case Add:
		return value.RVal(l.Type, a+b), nil
	case Sub:
		return value.RVal(l.Type, a-b), nil
	case Mul:
		return value.RVal(l.Type, a*b), nil
	case Div:
		if b == 0 {
			return value.Value{}, errs.New(errs.Eval, errs.Location{}, "integer division by zero")
		}
		return value.RVal(l.Type, a/b), nil
	}
	return value.Value{}, errs.New(errs.Type, errs.Location{}, "unsupported int operator %s", binaryOpName(op))
}

func floatArith(op BinaryOp, l, r value.Value) (value.Value, error) {
	a, b := l.AsFloat(), r.AsFloat()
	switch op {
	case Add:
		return value.RVal(l.Type, a+b), nil
	case Sub:
		return value.RVal(l.Type, a-b), nil
	case Mul:
		return value.RVal(l.Type, a*b), nil
	case Div:
		return value.RVal(l.Type, a/b), nil
	}
	return value.Value{}, errs.New(errs.Type, errs.Location{}, "unsupported float operator %s", binaryOpName(op))
}

func repeatArray(l, r value.Value) (value.Value, error) {
	n := r.AsInt()
	src := l.AsArray()
	out := make([]value.Value, 0, int64(len(src.Elems))*n)
	for i := int64(0); i < n; i++ {
		out = append(out, src.Elems...)
	}
	return value.RVal(l.Type, &value.Array{Elems: out}), nil
}

func concatArray(l, r value.Value) (value.Value, error) {
	if l.Type != r.Type {
		return value.Value{}, errs.New(errs.Type, errs.Location{},
			"array concatenation requires matching element types, got %s and %s", l.Type, r.Type)
	}
	a, b := l.AsArray(), r.AsArray()
	out := make([]value.Value, 0, len(a.Elems)+len(b.Elems))
	out = append(out, a.Elems...)
	out = append(out, b.Elems...)
	return value.RVal(l.Type, &value.Array{Elems: out}), nil
}

// isLength reports whether v's Data is a style.Length — lengths are
// carried as a struct-kind value whose Go payload is style.Length
// itself rather than a *value.Struct, since the interpreter treats
// Length as an opaque builtin rather than a user-visible struct type.
func isLength(v value.Value) bool {
	_, ok := v.Data.(style.Length)
	return ok
}

func addLength(l, r value.Value, ctx *EvalContext) (value.Value, error) {
	a := ResolveLength(l.Data.(style.Length), ctx.Style, ctx.RootStyle)
	b := ResolveLength(r.Data.(style.Length), ctx.Style, ctx.RootStyle)
	return value.RVal(l.Type, style.Length{Value: a + b, Unit: style.Point}), nil
}

func binaryOpName(op BinaryOp) string {
	switch op {
	case Add:
		return "+"
	case Sub:
		return "-"
	case Mul:
		return "*"
	case Div:
		return "/"
	case Lt:
		return "<"
	case Le:
		return "<="
	case Gt:
		return ">"
	case Ge:
		return ">="
	case Eq:
		return "=="
	case Ne:
		return "!="
	case And:
		return "&&"
	case Or:
		return "||"
	default:
		return "?"
	}
}
