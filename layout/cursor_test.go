package layout

import "testing"

func testGeom() PageGeometry {
	return PageGeometry{Width: 600, Height: 800, TopMargin: 72, BottomMargin: 72, LeftMargin: 72, RightMargin: 72}
}

func TestNewCursorStartsAtTopLeftMargin(t *testing.T) {
	c := NewCursor(testGeom())
	if c.PageNumber != 1 || c.X != 72 || c.Y != 72 {
		t.Fatalf("expected page 1 at (72, 72), got page %d at (%g, %g)", c.PageNumber, c.X, c.Y)
	}
}

func TestNewLineAdvancesWithinPage(t *testing.T) {
	c := NewCursor(testGeom())
	c2 := c.NewLine(12)
	if c2.PageNumber != 1 || c2.Y != 84 {
		t.Fatalf("expected same page, y=84, got page %d y=%g", c2.PageNumber, c2.Y)
	}
}

func TestNewLineStartsNewPageWhenCrossingBottomMargin(t *testing.T) {
	geom := testGeom()
	c := Cursor{geom: geom, PageNumber: 1, X: geom.LeftMargin, Y: geom.Height - geom.BottomMargin - 1}
	c2 := c.NewLine(12)
	if c2.PageNumber != 2 {
		t.Fatalf("expected a new page, got page %d", c2.PageNumber)
	}
	if c2.Y != geom.TopMargin+12 {
		t.Fatalf("expected y = top_margin + line_height on the new page, got %g", c2.Y)
	}
	if c2.X != geom.LeftMargin {
		t.Fatalf("expected x reset to the left margin on the new page, got %g", c2.X)
	}
}

func TestEnsureVerticalSpaceNoopWhenRoomRemains(t *testing.T) {
	c := NewCursor(testGeom())
	c2 := c.EnsureVerticalSpace(5)
	if c2 != c {
		t.Fatalf("expected no change when space remains, got %+v", c2)
	}
}

func TestEnsureVerticalSpaceAdvancesWhenInsufficient(t *testing.T) {
	geom := testGeom()
	c := Cursor{geom: geom, PageNumber: 1, X: geom.LeftMargin, Y: geom.Height - geom.BottomMargin - 1}
	c2 := c.EnsureVerticalSpace(5)
	if c2.PageNumber != 2 || c2.Y != geom.TopMargin {
		t.Fatalf("expected a page break to the top margin, got page %d y=%g", c2.PageNumber, c2.Y)
	}
}

func TestMoveRightAndCarriageReturn(t *testing.T) {
	c := NewCursor(testGeom())
	c2 := c.MoveRight(50)
	if c2.X != c.X+50 {
		t.Fatalf("expected x advanced by 50, got %g", c2.X)
	}
	c3 := c2.CarriageReturn()
	if c3.X != testGeom().LeftMargin {
		t.Fatalf("expected x reset to the left margin, got %g", c3.X)
	}
	if c3.Y != c2.Y {
		t.Fatalf("expected carriage return to leave y unchanged")
	}
}

func TestWidthAtCursorShrinksAsXAdvances(t *testing.T) {
	geom := testGeom()
	c := NewCursor(geom)
	full := c.WidthAtCursor()
	c2 := c.MoveRight(100)
	if c2.WidthAtCursor() != full-100 {
		t.Fatalf("expected remaining width to shrink by 100, got %g vs %g", c2.WidthAtCursor(), full)
	}
}

func TestResolveLeavesAbsolutePositionsUnchanged(t *testing.T) {
	c := NewCursor(testGeom())
	abs := Position{IsAbsolute: true, X: 10, Y: 20}
	if got := c.Resolve(abs); got != abs {
		t.Fatalf("expected an already-absolute position to pass through unchanged, got %+v", got)
	}
}

func TestResolveConvertsRelativePosition(t *testing.T) {
	c := NewCursor(testGeom())
	rel := Position{X: 5, Y: 6}
	got := c.Resolve(rel)
	if !got.IsAbsolute {
		t.Fatal("expected a resolved position to be marked absolute")
	}
}
