// Package tree holds the document tree, §3.3: two parallel object
// hierarchies (InlineObject, BlockObject) a script builds up and the
// layout engine walks.
//
// The source this is adapted from used intrusive reference counting so
// a script-visible handle and a tree-owned child pointer could alias
// the same object. Per §9's design note, this is re-architected as a
// structural-sharing arena: every object lives in one of an Arena's two
// slices, and every reference — parent-to-child, or a script handle
// held across the typecheck/layout boundary — is a small integer index
// into that slice rather than a pointer. Indices stay valid for the
// Arena's whole lifetime; nothing here ever removes an entry.
package tree

// InlineRef indexes an InlineObject within an Arena. The zero value
// refers to the first InlineObject added; use NoInline for "absent".
type InlineRef int

// BlockRef indexes a BlockObject within an Arena.
type BlockRef int

// NoInline and NoBlock mark an absent reference, the way a nil pointer
// would in a pointer-based tree.
const (
	NoInline InlineRef = -1
	NoBlock  BlockRef  = -1
)

// Arena owns every InlineObject and BlockObject in one document. A
// document has exactly one Arena; every InlineRef/BlockRef handed out
// by it is only meaningful together with that same Arena.
type Arena struct {
	inline []InlineObject
	block  []BlockObject
}

// NewArena returns an empty Arena.
func NewArena() *Arena {
	return &Arena{}
}

// NewInline appends obj and returns a reference to it.
func (a *Arena) NewInline(obj InlineObject) InlineRef {
	a.inline = append(a.inline, obj)
	return InlineRef(len(a.inline) - 1)
}

// Inline returns a pointer to the object ref refers to, live for
// in-place mutation (e.g. InlineSpan.WidthOverride set during layout).
func (a *Arena) Inline(ref InlineRef) *InlineObject {
	return &a.inline[ref]
}

// NewBlock appends obj and returns a reference to it.
func (a *Arena) NewBlock(obj BlockObject) BlockRef {
	a.block = append(a.block, obj)
	return BlockRef(len(a.block) - 1)
}

// Block returns a pointer to the object ref refers to.
func (a *Arena) Block(ref BlockRef) *BlockObject {
	return &a.block[ref]
}

// NumInline and NumBlock report how many objects of each kind the
// arena holds, mostly useful for tests and diagnostics.
func (a *Arena) NumInline() int { return len(a.inline) }
func (a *Arena) NumBlock() int  { return len(a.block) }
