package layout

import "sap/style"

// LayoutSize is a laid-out element's extent, §"LayoutObject" in the
// glossary: a width plus the ascent/descent split a vertical stack
// needs to reserve space correctly (the same ascent/depth split the
// teacher's BoxExtent uses).
type LayoutSize struct {
	Width   float64
	Ascent  float64
	Descent float64
}

// Height is the element's total vertical extent.
func (s LayoutSize) Height() float64 { return s.Ascent + s.Descent }

// PagePosition is LayoutObject's "exactly one of an absolute page
// position or a page-relative cursor position", §3.4/§4.D.3. Only one
// of the two branches is meaningful, selected by Absolute.
type PagePosition struct {
	Absolute bool

	// Absolute branch.
	Page int
	At   Position

	// Cursor-relative branch.
	Cursor Cursor
}

// PageNumber returns the page this position falls on, regardless of
// which branch is populated.
func (p PagePosition) PageNumber() int {
	if p.Absolute {
		return p.Page
	}
	return p.Cursor.PageNumber
}

// LayoutObject is a document element after layout has placed it,
// §"LayoutObject": it owns a Style and a LayoutSize, and is given a
// position exactly once, by ComputePosition. Reading Pos before that
// call is a programming error; the zero value's Placed is false
// precisely to catch it.
type LayoutObject struct {
	Style *style.Style
	Size  LayoutSize
	Pos   PagePosition

	Placed bool
}

// ComputePosition assigns pos to the object. It panics if called a
// second time — §"LayoutObject"'s "mutated once ... then read-only"
// invariant.
func (o *LayoutObject) ComputePosition(pos PagePosition) {
	if o.Placed {
		panic("layout: LayoutObject.ComputePosition called twice")
	}
	o.Pos = pos
	o.Placed = true
}

// Splittable is implemented by children §4.D.5 allows to retry across
// a page break: a paragraph (always splittable, since line-breaking
// can resume on any atom boundary) or a raw block that defines its own
// split points. Remaining is the part of the child that did not fit in
// the space PlaceChild was given; it is re-offered to the
// container on the next page.
type Splittable interface {
	// Split attempts to fit as much of the child as possible into
	// availableHeight, returning the fitted part's LayoutObject and
	// whatever remains (nil if everything fit).
	Split(availableHeight float64) (fitted *LayoutObject, remaining Splittable)
}

// PlacementResult is what PlaceChild reports back to the
// container about one child, driving §4.D.5's failure/retry rule.
type PlacementResult struct {
	Object    *LayoutObject
	Cursor    Cursor // cursor immediately after this child
	Fit       bool   // false: did not fit in the space offered
	Remaining Splittable
}

// PlaceChild runs §4.D.5: try to place child at cur within a page
// whose usable height below cur is availableHeight. If it fits,
// Fit is true and Remaining is nil. If it doesn't fit and child
// implements Splittable, the fitting part is placed and the rest is
// returned as Remaining for the caller to retry on a fresh page. A
// non-splittable child that doesn't fit is still placed — with Fit
// false, so the caller can log the §4.D.5 diagnostic — rather than
// dropped.
func PlaceChild(cur Cursor, availableHeight float64, size LayoutSize, split Splittable) PlacementResult {
	if size.Height() <= availableHeight {
		obj := &LayoutObject{Size: size}
		obj.ComputePosition(PagePosition{Cursor: cur})
		return PlacementResult{Object: obj, Cursor: cur.NewLine(size.Height()), Fit: true}
	}
	if split != nil {
		fitted, rest := split.Split(availableHeight)
		next := cur
		if fitted != nil {
			fitted.ComputePosition(PagePosition{Cursor: cur})
			next = cur.NewLine(fitted.Size.Height())
		}
		return PlacementResult{Object: fitted, Cursor: next, Fit: rest == nil, Remaining: rest}
	}
	obj := &LayoutObject{Size: size}
	obj.ComputePosition(PagePosition{Cursor: cur})
	return PlacementResult{Object: obj, Cursor: cur.NewLine(size.Height()), Fit: false}
}
