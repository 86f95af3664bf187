package output

import (
	"testing"

	"sap/script"
	"sap/tree"

	"seehuhn.de/go/pdf"
)

func TestReflectMirrorsAroundCentre(t *testing.T) {
	centre := tree.Point{X: 10, Y: 10}
	p := tree.Point{X: 12, Y: 8}
	got := reflect(centre, p)
	want := tree.Point{X: 8, Y: 12}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestToOutlineTreeNestsChildren(t *testing.T) {
	item := script.OutlineItem{
		Title: "Chapter 1",
		Children: []script.OutlineItem{
			{Title: "Section 1.1"},
			{Title: "Section 1.2"},
		},
	}
	node := toOutlineTree(item, nil)
	if node.Title != "Chapter 1" {
		t.Fatalf("expected root title preserved, got %q", node.Title)
	}
	if len(node.Children) != 2 || node.Children[1].Title != "Section 1.2" {
		t.Fatalf("expected 2 children in order, got %+v", node.Children)
	}
	if node.Action != nil {
		t.Fatalf("expected no Action when resolveDest is nil, got %v", node.Action)
	}
}

func TestToOutlineTreeResolvesDest(t *testing.T) {
	item := script.OutlineItem{Title: "Intro", Dest: tree.BlockRef(7)}
	var resolvedWith tree.BlockRef = -1
	resolveDest := func(ref tree.BlockRef) pdf.Object {
		resolvedWith = ref
		return nil
	}
	node := toOutlineTree(item, resolveDest)
	if node.Action == nil {
		t.Fatal("expected an Action to be set when resolveDest is provided")
	}
	if resolvedWith != 7 {
		t.Fatalf("expected resolveDest called with BlockRef(7), got %v", resolvedWith)
	}
}
