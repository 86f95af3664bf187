package script

import (
	"testing"

	"sap/tree"
)

func TestLengthAndColourAreStyleAliases(t *testing.T) {
	var l Length = Length{Value: 12, Unit: 0}
	var c Colour = Colour{Space: 0, R: 1}
	_ = l
	_ = c
}

func TestPathSegmentAliasRoundTrips(t *testing.T) {
	seg := PathSegment{Kind: Line, To: tree.Point{X: 1, Y: 2}}
	var asTree tree.PathSegment = seg
	if asTree.To.X != 1 {
		t.Fatal("expected PathSegment to alias tree.PathSegment directly")
	}
}

func TestNewInternalLinkSetsDestNotURI(t *testing.T) {
	link := NewInternalLink(Rectangle{}, tree.BlockRef(3))
	if link.InternalDest != 3 || link.ExternalURI != "" {
		t.Fatalf("expected an internal dest and no URI, got %+v", link)
	}
}

func TestNewExternalLinkSetsURINotDest(t *testing.T) {
	link := NewExternalLink(Rectangle{}, "https://example.com")
	if link.ExternalURI != "https://example.com" || link.InternalDest != 0 {
		t.Fatalf("expected an external URI and zero dest, got %+v", link)
	}
}

func TestOutlineItemNesting(t *testing.T) {
	root := NewOutlineItem("Chapter 1", tree.BlockRef(0))
	root.Children = append(root.Children, NewOutlineItem("Section 1.1", tree.BlockRef(1)))
	if len(root.Children) != 1 || root.Children[0].Title != "Section 1.1" {
		t.Fatal("expected a nested outline child")
	}
}
