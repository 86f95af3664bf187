package interp

import "sap/value"

// Decl is what an identifier resolves to during typechecking: every
// Expr of Kind Ident carries a pointer to one of these once resolved,
// per §4.C.1 ("every identifier carries a pointer to its
// declaration"). The same pointer is the key the evaluator uses to
// find a Decl's storage in a Frame.
type Decl struct {
	Name string
	Type *value.Type
}

// Scope is the compile-time lexical scope tree the typechecker builds
// and resolves identifiers against. Nested scopes (blocks, call
// bodies) each get a child Scope pointing at their lexical parent.
type Scope struct {
	parent *Scope
	decls  map[string]*Decl
}

// NewScope returns a root scope with no parent.
func NewScope() *Scope {
	return &Scope{decls: make(map[string]*Decl)}
}

// Child returns a new scope nested inside s.
func (s *Scope) Child() *Scope {
	return &Scope{parent: s, decls: make(map[string]*Decl)}
}

// Declare introduces name into s, shadowing any outer declaration of
// the same name. It returns the new Decl the typechecker should attach
// to every reference it resolves.
func (s *Scope) Declare(name string, t *value.Type) *Decl {
	d := &Decl{Name: name, Type: t}
	s.decls[name] = d
	return d
}

// Lookup searches s and its lexical ancestors for name.
func (s *Scope) Lookup(name string) (*Decl, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if d, ok := cur.decls[name]; ok {
			return d, true
		}
	}
	return nil, false
}

// Frame is the runtime counterpart of Scope: a stack of frames, each
// mapping Decls to storage Cells, §4.C.2. A call frame starts a fresh
// storage scope (callID); an ordinary block frame shares its parent's
// callID so it may still read and write the enclosing call's lvalues,
// matching "call frames create a new scope; ordinary blocks push a
// child frame that may access the parent's lvalues."
type Frame struct {
	parent *Frame
	vals   map[*Decl]*value.Cell
	callID int
}

var nextCallID = 0

// NewCallFrame starts a new call, rooted wherever parent is nil (the
// top-level script) or nested under parent for a non-closure nested
// call. Its callID is unique, so Return can tell "this lvalue is
// rooted in the call I am returning from" from "this lvalue belongs to
// an enclosing call and must be copied instead of moved."
func NewCallFrame(parent *Frame) *Frame {
	nextCallID++
	return &Frame{parent: parent, vals: make(map[*Decl]*value.Cell), callID: nextCallID}
}

// NewBlockFrame pushes an ordinary block scope under parent, sharing
// its callID.
func NewBlockFrame(parent *Frame) *Frame {
	return &Frame{parent: parent, vals: make(map[*Decl]*value.Cell), callID: parent.callID}
}

// Bind introduces d into f's own storage, never searching parents —
// used for parameter binding and `let` declarations. The cell's Owner
// is tagged with f's callID so Return can later tell whether it is
// rooted in the call being returned from.
func (f *Frame) Bind(d *Decl, v value.Value) *value.Cell {
	cell := &value.Cell{V: v, Owner: f.callID}
	f.vals[d] = cell
	return cell
}

// Cell finds the storage for d, searching f and its block-frame
// ancestors within the same call (it never crosses a callID
// boundary — a nested call reaches neither its caller's locals nor
// those of the frame its closure captured).
func (f *Frame) Cell(d *Decl) (*value.Cell, bool) {
	for cur := f; cur != nil && cur.callID == f.callID; cur = cur.parent {
		if c, ok := cur.vals[d]; ok {
			return c, true
		}
	}
	return nil, false
}

// RootedInCall reports whether cell was allocated within f's call —
// the test Return uses to decide move vs. copy, per the design note's
// "frame generation counter" (callID serves the same purpose here).
func (f *Frame) RootedInCall(cell *value.Cell) bool {
	owner, ok := cell.Owner.(int)
	return ok && owner == f.callID
}
