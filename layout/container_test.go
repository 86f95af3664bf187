package layout

import (
	"testing"

	"sap/style"
)

func TestLayoutHorizontalLeftAlignLeavesSlackAtEnd(t *testing.T) {
	items := []Item{{Size: LayoutSize{Width: 10, Ascent: 5, Descent: 2}}, {Size: LayoutSize{Width: 20, Ascent: 8, Descent: 1}}}
	row := LayoutHorizontal(items, 100, style.Left)
	if row.Offsets[0] != 0 || row.Offsets[1] != 10 {
		t.Fatalf("expected natural left-packed offsets [0 10], got %v", row.Offsets)
	}
	if row.Size.Ascent != 8 {
		t.Fatalf("expected row ascent to be the tallest child's (8), got %g", row.Size.Ascent)
	}
}

func TestLayoutHorizontalCentreSplitsSlackEvenly(t *testing.T) {
	items := []Item{{Size: LayoutSize{Width: 10}}, {Size: LayoutSize{Width: 10}}}
	row := LayoutHorizontal(items, 100, style.Centre)
	if row.Offsets[0] != 40 {
		t.Fatalf("expected the row to be centred (offset 40), got %v", row.Offsets)
	}
}

func TestLayoutHorizontalJustifiedDistributesBetweenItems(t *testing.T) {
	items := []Item{{Size: LayoutSize{Width: 10}}, {Size: LayoutSize{Width: 10}}, {Size: LayoutSize{Width: 10}}}
	row := LayoutHorizontal(items, 60, style.Justified)
	// natural width 30, slack 30, 2 gaps -> 15 each
	if row.Offsets[0] != 0 || row.Offsets[1] != 25 || row.Offsets[2] != 50 {
		t.Fatalf("expected justified offsets [0 25 50], got %v", row.Offsets)
	}
}

func TestLayoutHorizontalPhantomIgnoredForAscent(t *testing.T) {
	items := []Item{{Size: LayoutSize{Width: 0, Ascent: 999}, Phantom: true}, {Size: LayoutSize{Width: 10, Ascent: 5}}}
	row := LayoutHorizontal(items, 20, style.Left)
	if row.Size.Ascent != 5 {
		t.Fatalf("expected the phantom's ascent to be excluded, got %g", row.Size.Ascent)
	}
}

func TestLayoutVerticalInsertsParagraphSpacingBetweenChildren(t *testing.T) {
	cur := NewCursor(PageGeometry{Width: 600, Height: 800, TopMargin: 50, BottomMargin: 50, LeftMargin: 50, RightMargin: 50})
	items := []Item{
		{Size: LayoutSize{Ascent: 10, Descent: 2}},
		{Size: LayoutSize{Ascent: 10, Descent: 2}},
	}
	slots := LayoutVertical(items, cur, 8)
	if slots[0].At.PageNumber != 1 {
		t.Fatalf("expected the first child on page 1")
	}
	gap := slots[1].At.Y - slots[0].After.Y
	if gap != 8 {
		t.Fatalf("expected an 8pt paragraph_spacing gap between children, got %g", gap)
	}
}

func TestLayoutVerticalDropsSpacingAcrossPageBreak(t *testing.T) {
	// EnsureVerticalSpace only reserves for a child's descent (§4.D.4);
	// whether a child's full height fits is the separate concern of
	// PlaceChild/Splittable (§4.D.5). Pick a descent big enough that the
	// reservation itself is what crosses the page boundary, so the
	// paragraph_spacing-dropped-across-a-break rule is exercised cleanly.
	geom := PageGeometry{Width: 600, Height: 100, TopMargin: 10, BottomMargin: 10, LeftMargin: 10, RightMargin: 10}
	cur := NewCursor(geom)
	cur.Y = 85 // 5pt left before the bottom margin at 90
	items := []Item{
		{Size: LayoutSize{Ascent: 2, Descent: 1}},  // fits, 3pt tall
		{Size: LayoutSize{Ascent: 2, Descent: 20}}, // descent reservation alone overflows
	}
	slots := LayoutVertical(items, cur, 20)
	if slots[1].At.PageNumber != 2 {
		t.Fatalf("expected the second child pushed to page 2, got page %d", slots[1].At.PageNumber)
	}
	if slots[1].At.Y != geom.TopMargin {
		t.Fatalf("expected the second child to land at the top margin with no spacing applied, got y=%g", slots[1].At.Y)
	}
}

func TestPlaceChildFitsWithinAvailableHeight(t *testing.T) {
	cur := NewCursor(PageGeometry{Width: 600, Height: 800, TopMargin: 50, BottomMargin: 50, LeftMargin: 50, RightMargin: 50})
	res := PlaceChild(cur, 100, LayoutSize{Ascent: 10, Descent: 5}, nil)
	if !res.Fit {
		t.Fatal("expected the child to fit")
	}
	if res.Remaining != nil {
		t.Fatal("expected no remaining child when it fits")
	}
	if !res.Object.Placed {
		t.Fatal("expected ComputePosition to have been called")
	}
}

type stubSplit struct {
	fittedHeight float64
	hasRemaining bool
}

func (s stubSplit) Split(availableHeight float64) (*LayoutObject, Splittable) {
	fitted := &LayoutObject{Size: LayoutSize{Ascent: s.fittedHeight}}
	if s.hasRemaining {
		return fitted, stubSplit{fittedHeight: 5}
	}
	return fitted, nil
}

func TestPlaceChildSplitsOversizedSplittableChild(t *testing.T) {
	cur := NewCursor(PageGeometry{Width: 600, Height: 800, TopMargin: 50, BottomMargin: 50, LeftMargin: 50, RightMargin: 50})
	res := PlaceChild(cur, 10, LayoutSize{Ascent: 500}, stubSplit{fittedHeight: 8, hasRemaining: true})
	if res.Fit {
		t.Fatal("expected Fit to be false when a remaining part is returned")
	}
	if res.Remaining == nil {
		t.Fatal("expected a Remaining Splittable to retry on the next page")
	}
}

func TestLayoutContainerDispatchesOnDirection(t *testing.T) {
	cur := NewCursor(PageGeometry{Width: 600, Height: 800, TopMargin: 50, BottomMargin: 50, LeftMargin: 50, RightMargin: 50})
	items := []Item{{Size: LayoutSize{Width: 10, Ascent: 4}}, {Size: LayoutSize{Width: 10, Ascent: 6}}}

	row, slots := LayoutContainer(Horizontal, items, cur, 100, 0, style.Left)
	if slots != nil {
		t.Fatal("expected no vertical slots for a Horizontal container")
	}
	if row.Size.Ascent != 6 {
		t.Fatalf("expected the row path to run, got ascent %g", row.Size.Ascent)
	}

	row2, slots2 := LayoutContainer(Vertical, items, cur, 100, 8, style.Left)
	if slots2 == nil || len(slots2) != 2 {
		t.Fatalf("expected 2 vertical slots for a Vertical container, got %v", slots2)
	}
	if row2.Size.Width != 0 {
		t.Fatalf("expected the zero Row for the Vertical path, got %+v", row2)
	}
}

func TestComputePositionTwicePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic on a second ComputePosition call")
		}
	}()
	obj := &LayoutObject{}
	obj.ComputePosition(PagePosition{Page: 1, Absolute: true})
	obj.ComputePosition(PagePosition{Page: 2, Absolute: true})
}
