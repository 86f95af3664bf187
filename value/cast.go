package value

import "sap/errs"

// Cast implements cast_value(value, target), §4.B: identity if the
// source and target types are the same interned Type, widening into
// `any`, structural wrapping into an Optional, and otherwise failure.
// Lossy conversions (float→int, char→int, int→char) are never
// performed here — they exist only as explicit cast nodes the
// typechecker emits, each evaluated by its own opcode, never by
// falling through this general rule.
func Cast(v Value, target *Type) (Value, error) {
	if v.Type == target {
		return v, nil
	}
	if target.Kind == Any {
		return RVal(target, v), nil
	}
	if target.Kind == Optional {
		if v.Type == target.Elem {
			return RVal(target, &Pointer{Cell: &Cell{V: v}}), nil
		}
		if v.Type.Kind == Optional && v.Type.Elem == target.Elem {
			return v, nil
		}
	}
	return Value{}, errs.New(errs.Type, errs.Location{},
		"cannot cast %s to %s", v.Type, target)
}

// CastExplicit performs one of the three lossy conversions the
// typechecker may only emit as an explicit cast node. The pair of
// v's kind and target's kind picks the conversion; it panics on any
// other pair, since the typechecker is
// responsible for only ever emitting a cast node it resolved to one of
// these three.
func CastExplicit(v Value, target *Type) Value {
	switch {
	case v.Type.Kind == Float && target.Kind == Int:
		return RVal(target, int64(v.AsFloat()))
	case v.Type.Kind == Int && target.Kind == Char:
		return RVal(target, rune(v.AsInt()))
	case v.Type.Kind == Char && target.Kind == Int:
		return RVal(target, int64(v.AsChar()))
	default:
		errs.Abort("value: CastExplicit called with unsupported pair %s -> %s", v.Type, target)
		return Value{}
	}
}
