// Package script holds the value types user scripts construct and
// builtins consume or return, §6's "Scripting surface" list. It sits
// above both tree and style in the dependency order — two of the
// listed types, PathSegment and Length/Colour, are needed lower down
// (tree's Path block, style's font size/text colour) and live there
// instead, re-exported here as aliases rather than redefined, per the
// Open Question decisions recorded in tree/block.go's and
// style/style.go's ledger entries.
package script

import (
	"sap/style"
	"sap/tree"
)

// Length and Colour are script-visible names for the types style
// already defines; scripts never construct a style.Style directly
// (that is built by the interpreter from a document's accumulated
// style-block declarations), but they do construct Length and Colour
// values to assign into one.
type Length = style.Length
type Colour = style.Colour

// PathSegment is the script-visible name for tree's identical type;
// see tree/block.go's ledger entry for why it is defined there.
type PathSegment = tree.PathSegment

// Re-exported PathSegment variant tags, so script code never needs to
// import tree directly. tree.Rectangle is re-exported as
// RectangleSegment, since Rectangle names the box type below.
const (
	Move             = tree.Move
	Line             = tree.Line
	CubicBezier      = tree.CubicBezier
	CubicBezierIC1   = tree.CubicBezierIC1
	CubicBezierIC2   = tree.CubicBezierIC2
	RectangleSegment = tree.Rectangle
	Close            = tree.Close
)

// Position is a 2D point in a script's coordinate space, §6. Distinct
// from layout.Position (which additionally tracks whether it has been
// resolved against a page): this one is the value a script literally
// writes down, always in some Length unit-pair the interpreter
// resolves at the point of use.
type Position struct {
	X, Y Length
}

// Size2d is a 2D extent, §6 — e.g. an explicit width/height override
// on an image or a span.
type Size2d struct {
	Width, Height Length
}

// OutlineItem is one node of the PDF outline (bookmark) tree a script
// builds up via the start_document/outline builtins, §4/§6: a title,
// a destination (the block it should jump to), and nested children.
// Dest is kept as tree.BlockRef rather than a page/position pair — the
// PDF writer's sap/output package resolves it to an actual destination
// once layout has run and every block has a page position.
type OutlineItem struct {
	Title    string
	Dest     tree.BlockRef
	Children []OutlineItem
}

// LinkAnnotation is a clickable rectangle over laid-out content, §6:
// its target is either an internal destination (another block) or an
// external URI, never both.
type LinkAnnotation struct {
	Rect Rectangle

	// Exactly one of these is set.
	InternalDest tree.BlockRef
	ExternalURI  string
}

// Rectangle is an axis-aligned box in script coordinates, used by
// LinkAnnotation and by script-level layout queries.
type Rectangle struct {
	Origin Position
	Size   Size2d
}

// NewOutlineItem builds a leaf outline entry; append to Children to
// nest further ones.
func NewOutlineItem(title string, dest tree.BlockRef) OutlineItem {
	return OutlineItem{Title: title, Dest: dest}
}

// NewInternalLink builds a LinkAnnotation targeting another block in
// the same document.
func NewInternalLink(rect Rectangle, dest tree.BlockRef) LinkAnnotation {
	return LinkAnnotation{Rect: rect, InternalDest: dest}
}

// NewExternalLink builds a LinkAnnotation targeting an external URI.
func NewExternalLink(rect Rectangle, uri string) LinkAnnotation {
	return LinkAnnotation{Rect: rect, ExternalURI: uri}
}
