package layout

// Position is a page-relative or page-absolute 2D point, §4.D.3's
// "Positions are Left(relative) | Right(absolute)". Only at render
// time is a Relative position resolved against the page's own layout
// to an Absolute one.
type Position struct {
	IsAbsolute bool
	X, Y       float64
}

// PageGeometry is the fixed per-page layout a Cursor moves within:
// page height and the margins bounding the usable content area.
type PageGeometry struct {
	Width, Height               float64
	TopMargin, BottomMargin      float64
	LeftMargin, RightMargin      float64
}

func (g PageGeometry) contentBottom() float64 { return g.Height - g.BottomMargin }

// Cursor is the opaque page-flow handle of §4.D.3: a page number and a
// position on that page. It is immutable — every movement method
// returns a new Cursor rather than mutating the receiver, so callers
// can freely hold onto an earlier cursor (e.g. a paragraph's start
// position) while continuing to advance a working one.
type Cursor struct {
	geom       PageGeometry
	PageNumber int
	X, Y       float64
}

// NewCursor returns a Cursor at the top-left content margin of page 1.
func NewCursor(geom PageGeometry) Cursor {
	return Cursor{geom: geom, PageNumber: 1, X: geom.LeftMargin, Y: geom.TopMargin}
}

// NewLine moves down by lineHeight; if that would cross the bottom
// margin, it starts a new page instead, placing the cursor at
// top_margin + lineHeight on the new page, §4.D.3.
func (c Cursor) NewLine(lineHeight float64) Cursor {
	if c.Y+lineHeight > c.geom.contentBottom() {
		return Cursor{geom: c.geom, PageNumber: c.PageNumber + 1, X: c.geom.LeftMargin, Y: c.geom.TopMargin + lineHeight}
	}
	return Cursor{geom: c.geom, PageNumber: c.PageNumber, X: c.X, Y: c.Y + lineHeight}
}

// EnsureVerticalSpace moves the cursor to the top-left margin of the
// next page if fewer than h points remain on the current page;
// otherwise the cursor is unchanged, §4.D.3.
func (c Cursor) EnsureVerticalSpace(h float64) Cursor {
	if c.geom.contentBottom()-c.Y >= h {
		return c
	}
	return Cursor{geom: c.geom, PageNumber: c.PageNumber + 1, X: c.geom.LeftMargin, Y: c.geom.TopMargin}
}

// MoveRight advances the cursor horizontally by delta, unbounded —
// callers are responsible for respecting WidthAtCursor, §4.D.3.
func (c Cursor) MoveRight(delta float64) Cursor {
	return Cursor{geom: c.geom, PageNumber: c.PageNumber, X: c.X + delta, Y: c.Y}
}

// CarriageReturn resets X to the left margin, §4.D.3.
func (c Cursor) CarriageReturn() Cursor {
	return Cursor{geom: c.geom, PageNumber: c.PageNumber, X: c.geom.LeftMargin, Y: c.Y}
}

// MoveToPosition places the cursor explicitly, §4.D.3: X and Y are
// taken from pos on the cursor's current page. PageNumber is kept
// as it is and pos.IsAbsolute is not consulted.
func (c Cursor) MoveToPosition(pos Position) Cursor {
	return Cursor{geom: c.geom, PageNumber: c.PageNumber, X: pos.X, Y: pos.Y}
}

// WidthAtCursor returns the remaining horizontal space on the current
// line before the right margin.
func (c Cursor) WidthAtCursor() float64 {
	return c.geom.Width - c.geom.RightMargin - c.X
}

// Resolve turns a page-relative Position into an absolute one — the
// one place §4.D.3's Left/Right position distinction is collapsed,
// deferred to render time as the invariant requires. X and Y are
// copied unchanged; the cursor's page geometry is not applied.
func (c Cursor) Resolve(pos Position) Position {
	if pos.IsAbsolute {
		return pos
	}
	return Position{IsAbsolute: true, X: pos.X, Y: pos.Y}
}
