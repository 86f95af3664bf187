package value

import "testing"

func TestFactoryPrimitivesInterned(t *testing.T) {
	f := NewFactory()
	if f.Primitive(Int) != f.Primitive(Int) {
		t.Fatal("Primitive(Int) returned different pointers across calls")
	}
	if f.Primitive(Int) == f.Primitive(Float) {
		t.Fatal("Primitive(Int) and Primitive(Float) share a pointer")
	}
}

func TestFactoryArrayInterning(t *testing.T) {
	f := NewFactory()
	intT := f.Primitive(Int)

	a1 := f.Array(intT, false)
	a2 := f.Array(intT, false)
	if a1 != a2 {
		t.Fatal("array(int) built twice is not pointer-identical")
	}

	variadic := f.Array(intT, true)
	if a1 == variadic {
		t.Fatal("array(int) and array(int, variadic) share a pointer")
	}

	floatArr := f.Array(f.Primitive(Float), false)
	if a1 == floatArr {
		t.Fatal("array(int) and array(float) share a pointer")
	}
}

func TestFactoryOptionalAndPointer(t *testing.T) {
	f := NewFactory()
	boolT := f.Primitive(Bool)

	if f.Optional(boolT) != f.Optional(boolT) {
		t.Fatal("optional(bool) not interned")
	}
	if f.Pointer(boolT, true) != f.Pointer(boolT, true) {
		t.Fatal("pointer(bool, mut) not interned")
	}
	if f.Pointer(boolT, true) == f.Pointer(boolT, false) {
		t.Fatal("mutable and immutable pointers share a pointer")
	}
}

func TestFactoryFunctionElementwise(t *testing.T) {
	f := NewFactory()
	intT, floatT := f.Primitive(Int), f.Primitive(Float)

	fn1 := f.Function([]*Type{intT, floatT}, boolOrPanic(f))
	fn2 := f.Function([]*Type{intT, floatT}, boolOrPanic(f))
	if fn1 != fn2 {
		t.Fatal("identical function signature built twice is not pointer-identical")
	}

	fn3 := f.Function([]*Type{floatT, intT}, boolOrPanic(f))
	if fn1 == fn3 {
		t.Fatal("function(int,float;bool) and function(float,int;bool) share a pointer")
	}
}

func boolOrPanic(f *Factory) *Type { return f.Primitive(Bool) }

func TestFactoryNamedTypesByQualifiedName(t *testing.T) {
	f := NewFactory()
	s1 := f.Struct("doc.Point", []Field{{Name: "x", Type: f.Primitive(Int)}})
	s2 := f.Struct("doc.Point", []Field{{Name: "y", Type: f.Primitive(Float)}})
	if s1 != s2 {
		t.Fatal("struct interned by name returned a different pointer on re-declaration")
	}
	// The second call's field list is ignored; the type keeps its first
	// fields until SetFields is called explicitly.
	if len(s1.Fields) != 1 || s1.Fields[0].Name != "x" {
		t.Fatalf("unexpected fields after re-declaration: %+v", s1.Fields)
	}
}

func TestFactorySetFieldsForForwardDeclaration(t *testing.T) {
	f := NewFactory()
	list := f.Struct("doc.List", nil)
	ptr := f.Pointer(list, true)
	f.SetFields(list, []Field{{Name: "next", Type: ptr}})
	if list.Fields[0].Type != ptr {
		t.Fatal("SetFields did not attach the recursive field")
	}
}
