// Package value implements the closed type variant and the runtime
// Value representation that sits underneath the interpreter and the
// document tree: every expression in a script carries one of these
// types, and every slot a script can read or write holds one of these
// values.
package value

import (
	"fmt"
	"strings"
	"sync"
)

// Kind tags which alternative of the closed type variant a Type holds.
type Kind int

const (
	Void Kind = iota
	Any
	Bool
	Char
	Int
	Float
	Null
	TreeInline
	TreeBlock

	Array
	Optional
	Pointer
	Function
	Struct
	Union
	Enum
)

func (k Kind) String() string {
	switch k {
	case Void:
		return "void"
	case Any:
		return "any"
	case Bool:
		return "bool"
	case Char:
		return "char"
	case Int:
		return "int"
	case Float:
		return "float"
	case Null:
		return "null"
	case TreeInline:
		return "tree-inline"
	case TreeBlock:
		return "tree-block"
	case Array:
		return "array"
	case Optional:
		return "optional"
	case Pointer:
		return "pointer"
	case Function:
		return "function"
	case Struct:
		return "struct"
	case Union:
		return "union"
	case Enum:
		return "enum"
	default:
		return "unknown"
	}
}

// Field is one named, typed member of a Struct or one case payload of a
// Union.
type Field struct {
	Name string
	Type *Type
}

// Type is a single node of the closed type variant, §3.2. Types are
// interned: two Types describe the same type if and only if they are
// the same pointer. Construct every Type through a Factory — never
// with a struct literal — or identity comparisons silently break.
type Type struct {
	Kind Kind

	// Array, Optional, Pointer
	Elem     *Type
	Variadic bool // Array only
	Mutable  bool // Pointer only

	// Function
	Params []*Type
	Result *Type

	// Struct, Union, Enum
	Name       string
	Fields     []Field // Struct, Union (per-case payload struct)
	Underlying *Type   // Enum only
}

// String renders a Type the way diagnostics quote it.
func (t *Type) String() string {
	switch t.Kind {
	case Array:
		if t.Variadic {
			return fmt.Sprintf("array(%s, variadic)", t.Elem)
		}
		return fmt.Sprintf("array(%s)", t.Elem)
	case Optional:
		return fmt.Sprintf("optional(%s)", t.Elem)
	case Pointer:
		if t.Mutable {
			return fmt.Sprintf("pointer(%s, mut)", t.Elem)
		}
		return fmt.Sprintf("pointer(%s)", t.Elem)
	case Function:
		parts := make([]string, len(t.Params))
		for i, p := range t.Params {
			parts[i] = p.String()
		}
		return fmt.Sprintf("function(%s; %s)", strings.Join(parts, ", "), t.Result)
	case Struct, Union, Enum:
		return t.Name
	default:
		return t.Kind.String()
	}
}

// Factory interns every Type it constructs. A Factory is safe for
// concurrent use; the interpreter shares a single Factory across all
// scripts compiled in one process so that types compared across script
// boundaries (e.g. a struct returned from one document included into
// another) remain pointer-identical.
type Factory struct {
	mu sync.Mutex

	primitives map[Kind]*Type
	arrays     map[arrayKey]*Type
	optionals  map[*Type]*Type
	pointers   map[pointerKey]*Type
	functions  map[string]*Type
	named      map[string]*Type // struct/union/enum, keyed by qualified name
}

type arrayKey struct {
	elem     *Type
	variadic bool
}

type pointerKey struct {
	elem    *Type
	mutable bool
}

// NewFactory returns a Factory with the nine primitive types already
// interned.
func NewFactory() *Factory {
	f := &Factory{
		primitives: make(map[Kind]*Type),
		arrays:     make(map[arrayKey]*Type),
		optionals:  make(map[*Type]*Type),
		pointers:   make(map[pointerKey]*Type),
		functions:  make(map[string]*Type),
		named:      make(map[string]*Type),
	}
	for _, k := range []Kind{Void, Any, Bool, Char, Int, Float, Null, TreeInline, TreeBlock} {
		f.primitives[k] = &Type{Kind: k}
	}
	return f
}

// Primitive returns the interned Type for one of the nine primitive
// kinds. It panics if k is not a primitive kind.
func (f *Factory) Primitive(k Kind) *Type {
	t, ok := f.primitives[k]
	if !ok {
		panic(fmt.Sprintf("value: %s is not a primitive kind", k))
	}
	return t
}

// Array interns array(elem, variadic).
func (f *Factory) Array(elem *Type, variadic bool) *Type {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := arrayKey{elem, variadic}
	if t, ok := f.arrays[key]; ok {
		return t
	}
	t := &Type{Kind: Array, Elem: elem, Variadic: variadic}
	f.arrays[key] = t
	return t
}

// Optional interns optional(elem).
func (f *Factory) Optional(elem *Type) *Type {
	f.mu.Lock()
	defer f.mu.Unlock()
	if t, ok := f.optionals[elem]; ok {
		return t
	}
	t := &Type{Kind: Optional, Elem: elem}
	f.optionals[elem] = t
	return t
}

// Pointer interns pointer(elem, mutable).
func (f *Factory) Pointer(elem *Type, mutable bool) *Type {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := pointerKey{elem, mutable}
	if t, ok := f.pointers[key]; ok {
		return t
	}
	t := &Type{Kind: Pointer, Elem: elem, Mutable: mutable}
	f.pointers[key] = t
	return t
}

// Function interns function(params; result). Two function types are
// the same type iff their parameter lists and result are element-wise
// identical, per spec §4.B.
func (f *Factory) Function(params []*Type, result *Type) *Type {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := functionKey(params, result)
	if t, ok := f.functions[key]; ok {
		return t
	}
	t := &Type{Kind: Function, Params: append([]*Type(nil), params...), Result: result}
	f.functions[key] = t
	return t
}

func functionKey(params []*Type, result *Type) string {
	var b strings.Builder
	for _, p := range params {
		fmt.Fprintf(&b, "%p,", p)
	}
	fmt.Fprintf(&b, ";%p", result)
	return b.String()
}

// Struct interns a named struct type, registering it under its
// qualified name. A second call with the same name returns the type
// from the first call unchanged — the fields argument is only
// consulted the first time, matching forward-declared recursive
// structs (a field whose type is the struct itself).
func (f *Factory) Struct(name string, fields []Field) *Type {
	return f.named2(Struct, name, fields, nil)
}

// Union interns a named union type; each Field is one case, its Type
// the struct value carried by that case.
func (f *Factory) Union(name string, cases []Field) *Type {
	return f.named2(Union, name, cases, nil)
}

// Enum interns a named enum type over the given underlying integer or
// char type.
func (f *Factory) Enum(name string, underlying *Type) *Type {
	return f.named2(Enum, name, nil, underlying)
}

func (f *Factory) named2(kind Kind, name string, fields []Field, underlying *Type) *Type {
	f.mu.Lock()
	defer f.mu.Unlock()
	if t, ok := f.named[name]; ok {
		return t
	}
	t := &Type{Kind: kind, Name: name, Fields: fields, Underlying: underlying}
	f.named[name] = t
	return t
}

// Lookup returns the already-interned named type registered under
// name, if any. The Checker uses this to resolve a struct literal's
// written type name back to its Type without re-declaring it.
func (f *Factory) Lookup(name string) (*Type, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.named[name]
	return t, ok
}

// SetFields finishes a forward-declared Struct/Union by attaching its
// field list after the fact, letting a struct hold a field of its own
// pointer type.
func (f *Factory) SetFields(t *Type, fields []Field) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t.Fields = fields
}
