package layout

import (
	"sap/style"
	"sap/tree"
)

// Direction is Container's layout axis, §4.D.4; shared with
// tree.Direction rather than redeclared, since a Container's axis is
// decided once when the document tree is authored and never changes
// by the time layout walks it.
type Direction = tree.Direction

const (
	None       = tree.DirectionNone
	Horizontal = tree.DirectionHorizontal
	Vertical   = tree.DirectionVertical
)

// Item is one child offered to a Container: its size, and whether it
// is a phantom (a zero-width separator or similar) that must not
// contribute to spacing accumulation, §4.D.4's closing rule.
type Item struct {
	Size    LayoutSize
	Phantom bool
}

// Row is the result of laying out one Horizontal container: the
// placed items' individual x-offsets from the row's own left edge,
// and the row's own size (ascent = tallest non-phantom child's ascent,
// per §4.D.4's "baseline is the maximum ascent of any child needing
// space reservation").
type Row struct {
	Offsets []float64
	Size    LayoutSize
}

// LayoutHorizontal places items left-to-right on one row, §4.D.4's
// None/Horizontal direction. availableWidth is the row's total width;
// align redistributes whatever slack remains between the content's
// natural width and availableWidth, the same left/right/centre/
// justified split style.Alignment already names for paragraphs.
//
// This mirrors boxes/hbox.go's Draw: compute the natural total, then
// if it is strictly less than availableWidth, distribute the slack —
// here as alignment-driven offsets rather than per-child glue stretch,
// since Container's children are already-sized LayoutObjects, not TeX
// glue.
func LayoutHorizontal(items []Item, availableWidth float64, align style.Alignment) Row {
	natural := 0.0
	var ascent, descent float64
	for _, it := range items {
		natural += it.Size.Width
		if it.Phantom {
			continue
		}
		if it.Size.Ascent > ascent {
			ascent = it.Size.Ascent
		}
		if it.Size.Descent > descent {
			descent = it.Size.Descent
		}
	}

	slack := availableWidth - natural
	if slack < 0 {
		slack = 0
	}

	offsets := make([]float64, len(items))
	x := 0.0
	switch align {
	case style.Right:
		x = slack
	case style.Centre:
		x = slack / 2
	case style.Justified:
		x = 0
	default: // style.Left
		x = 0
	}

	if align == style.Justified && len(items) > 1 {
		gapCount := 0
		for _, it := range items {
			if !it.Phantom {
				gapCount++
			}
		}
		gapCount--
		if gapCount < 1 {
			gapCount = 1
		}
		perGap := slack / float64(gapCount)
		for i, it := range items {
			offsets[i] = x
			x += it.Size.Width
			if !it.Phantom {
				x += perGap
			}
		}
	} else {
		for i, it := range items {
			offsets[i] = x
			x += it.Size.Width
		}
	}

	return Row{Offsets: offsets, Size: LayoutSize{Width: availableWidth, Ascent: ascent, Descent: descent}}
}

// VerticalSlot is one child's placement within a Vertical container:
// the cursor it was placed at (after any paragraph_spacing gap and
// ensure_vertical_space reservation) and the cursor to continue from
// after it.
type VerticalSlot struct {
	At    Cursor
	After Cursor
}

// LayoutVertical stacks items top-to-bottom starting at cur, separated
// by paragraphSpacing, §4.D.4's Vertical direction. For every
// non-phantom item after the first, a paragraphSpacing gap is first
// inserted via NewLine; a gap that would itself carry the cursor onto
// a new page is dropped: §8 scenario 5, "paragraph_spacing not applied
// across the page break". Then the item gets
// EnsureVerticalSpace(item.Descent) — so a page break lands above a
// child rather than splitting it mid-line when only its own descent
// would otherwise overflow.
//
// Grounded on boxes/vbox.go's vBoxInternal: the same "insert a gap
// before this child unless it is first, or whitespace-only" shape,
// adapted from a fixed baseline-skip kern to reservation-driven page
// flow.
func LayoutVertical(items []Item, cur Cursor, paragraphSpacing float64) []VerticalSlot {
	slots := make([]VerticalSlot, len(items))
	first := true
	for i, it := range items {
		if it.Phantom {
			slots[i] = VerticalSlot{At: cur, After: cur}
			continue
		}

		if !first {
			beforeGap := cur
			cur = cur.NewLine(paragraphSpacing)
			if cur.PageNumber != beforeGap.PageNumber {
				cur = beforeGap
			}
		}
		first = false

		cur = cur.EnsureVerticalSpace(it.Size.Descent)
		at := cur
		cur = cur.NewLine(it.Size.Height())
		slots[i] = VerticalSlot{At: at, After: cur}
	}
	return slots
}

// LayoutContainer dispatches on a tree.Container's Direction, §4.D.4:
// None and Horizontal both lay children out on a single row (None is
// the degenerate one-child/no-flow case, a row of one); Vertical
// stacks them. Returns the row (Horizontal/None only) and the
// vertical slots (Vertical only); the caller inspects whichever
// applies.
func LayoutContainer(dir Direction, items []Item, cur Cursor, availableWidth, paragraphSpacing float64, align style.Alignment) (Row, []VerticalSlot) {
	switch dir {
	case Vertical:
		return Row{}, LayoutVertical(items, cur, paragraphSpacing)
	default: // None, Horizontal
		return LayoutHorizontal(items, availableWidth, align), nil
	}
}
