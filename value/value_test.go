package value

import "testing"

func TestDerefRValueIsIdentity(t *testing.T) {
	f := NewFactory()
	v := RVal(f.Primitive(Int), int64(7))
	got, err := v.Deref()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.AsInt() != 7 {
		t.Fatalf("got %d, want 7", got.AsInt())
	}
}

func TestLValueDerefAndMove(t *testing.T) {
	f := NewFactory()
	intT := f.Primitive(Int)
	cell := &Cell{V: RVal(intT, int64(42))}
	lv := LVal(intT, cell)

	got, err := lv.Deref()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.AsInt() != 42 {
		t.Fatalf("got %d, want 42", got.AsInt())
	}

	moved := lv.Move()
	if moved.AsInt() != 42 {
		t.Fatalf("Move returned %d, want 42", moved.AsInt())
	}
	if !cell.Moved {
		t.Fatal("cell not marked moved after Move")
	}
	if _, err := lv.Deref(); err == nil {
		t.Fatal("Deref on a moved-from cell should error")
	}
}

func TestCastIdentity(t *testing.T) {
	f := NewFactory()
	intT := f.Primitive(Int)
	v := RVal(intT, int64(1))
	got, err := Cast(v, intT)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Type != intT {
		t.Fatal("identity cast changed the type")
	}
}

func TestCastWideningToAny(t *testing.T) {
	f := NewFactory()
	boolT := f.Primitive(Bool)
	v := RVal(boolT, true)
	got, err := Cast(v, f.Primitive(Any))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Type.Kind != Any {
		t.Fatalf("got kind %s, want any", got.Type.Kind)
	}
}

func TestCastOptionalWrapping(t *testing.T) {
	f := NewFactory()
	intT := f.Primitive(Int)
	optT := f.Optional(intT)

	v := RVal(intT, int64(5))
	got, err := Cast(v, optT)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Type != optT {
		t.Fatalf("got type %s, want %s", got.Type, optT)
	}
}

func TestCastFails(t *testing.T) {
	f := NewFactory()
	_, err := Cast(RVal(f.Primitive(Int), int64(1)), f.Primitive(Bool))
	if err == nil {
		t.Fatal("expected cast from int to bool to fail")
	}
}

func TestCastExplicitLossyConversions(t *testing.T) {
	f := NewFactory()
	intT, floatT, charT := f.Primitive(Int), f.Primitive(Float), f.Primitive(Char)

	gotInt := CastExplicit(RVal(floatT, 3.9), intT)
	if gotInt.AsInt() != 3 {
		t.Fatalf("float->int: got %d, want 3", gotInt.AsInt())
	}

	gotChar := CastExplicit(RVal(intT, int64(65)), charT)
	if gotChar.AsChar() != 'A' {
		t.Fatalf("int->char: got %q, want 'A'", gotChar.AsChar())
	}

	gotBack := CastExplicit(RVal(charT, 'A'), intT)
	if gotBack.AsInt() != 65 {
		t.Fatalf("char->int: got %d, want 65", gotBack.AsInt())
	}
}
