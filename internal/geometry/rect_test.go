package geometry

import "testing"

func TestUnion_DisjointRects(t *testing.T) {
	a := Rect{X: 0, Y: 0, Width: 100, Height: 100}
	b := Rect{X: 200, Y: 0, Width: 100, Height: 100}

	got := a.Union(b)
	want := Rect{X: 0, Y: 0, Width: 300, Height: 100}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestUnion_EmptyRectIsIdentity(t *testing.T) {
	a := Rect{X: 10, Y: 20, Width: 30, Height: 40}

	if got := a.Union(Rect{}); got != a {
		t.Fatalf("union with empty changed rect: %+v", got)
	}
	if got := (Rect{}).Union(a); got != a {
		t.Fatalf("union onto empty lost rect: %+v", got)
	}
}

func TestUnion_NegativeDimensionsAreEmpty(t *testing.T) {
	a := Rect{X: 0, Y: 0, Width: 100, Height: 100}
	b := Rect{X: 500, Y: 500, Width: -10, Height: 20}

	if got := a.Union(b); got != a {
		t.Fatalf("negative-size rect affected union: %+v", got)
	}
}

func TestIntersect_Overlapping(t *testing.T) {
	a := Rect{X: 0, Y: 0, Width: 100, Height: 100}
	b := Rect{X: 50, Y: 50, Width: 100, Height: 100}

	got := a.Intersect(b)
	want := Rect{X: 50, Y: 50, Width: 50, Height: 50}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestIntersect_DisjointReturnsZero(t *testing.T) {
	a := Rect{X: 0, Y: 0, Width: 10, Height: 10}
	b := Rect{X: 20, Y: 20, Width: 10, Height: 10}

	if got := a.Intersect(b); got != (Rect{}) {
		t.Fatalf("expected zero rect, got %+v", got)
	}
}

func TestContains_EdgeConventions(t *testing.T) {
	r := Rect{X: 0, Y: 0, Width: 10, Height: 10}

	if !r.Contains(Point{X: 0, Y: 0}) {
		t.Fatalf("top-left corner should be inside")
	}
	if r.Contains(Point{X: 10, Y: 5}) {
		t.Fatalf("right edge should be outside")
	}
	if r.Contains(Point{X: 5, Y: 10}) {
		t.Fatalf("bottom edge should be outside")
	}
}

func TestBoundingBox(t *testing.T) {
	points := []Point{{X: 3, Y: 7}, {X: -1, Y: 2}, {X: 5, Y: 4}}

	got := BoundingBox(points)
	want := Rect{X: -1, Y: 2, Width: 6, Height: 5}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}

	if got := BoundingBox(nil); got != (Rect{}) {
		t.Fatalf("expected zero rect for no points, got %+v", got)
	}
}
