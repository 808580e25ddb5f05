package transform

import (
	"math"
	"testing"

	"github.com/sheen-dev/sheen/internal/geometry"
)

func TestMapClippedRect_Identity(t *testing.T) {
	r := geometry.Rect{X: 0, Y: 0, Width: 100, Height: 100}

	got := Identity().MapClippedRect(r)
	if got != r {
		t.Fatalf("identity changed rect: %+v", got)
	}
}

func TestMapClippedRect_Translate(t *testing.T) {
	r := geometry.Rect{X: 0, Y: 0, Width: 100, Height: 100}

	got := Translate(10, 20).MapClippedRect(r)
	want := geometry.Rect{X: 10, Y: 20, Width: 100, Height: 100}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestMapClippedRect_Scale(t *testing.T) {
	r := geometry.Rect{X: 10, Y: 10, Width: 20, Height: 30}

	got := Scale(2, 3).MapClippedRect(r)
	want := geometry.Rect{X: 20, Y: 30, Width: 40, Height: 90}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestMapClippedRect_RotationBoundingBox(t *testing.T) {
	// A unit square rotated 45 degrees about the origin spans
	// [-sqrt(2)/2, sqrt(2)/2] in x and [0, sqrt(2)] in y.
	r := geometry.Rect{X: 0, Y: 0, Width: 1, Height: 1}

	got := Rotate(math.Pi / 4).MapClippedRect(r)

	half := math.Sqrt2 / 2
	const tol = 1e-12
	if math.Abs(got.X+half) > tol || math.Abs(got.Width-math.Sqrt2) > tol {
		t.Fatalf("unexpected x extent: %+v", got)
	}
	if math.Abs(got.Y) > tol || math.Abs(got.Height-math.Sqrt2) > tol {
		t.Fatalf("unexpected y extent: %+v", got)
	}
}

func TestMapClippedRect_MatchesMappedCornersForAffine(t *testing.T) {
	r := geometry.Rect{X: -5, Y: 3, Width: 40, Height: 17}
	m := Translate(12, -7).Mul(Rotate(0.3)).Mul(Scale(1.5, 0.5))

	var mapped []geometry.Point
	for _, c := range r.Corners() {
		p, ok := m.MapPoint(c)
		if !ok {
			t.Fatalf("affine transform clipped corner %+v", c)
		}
		mapped = append(mapped, p)
	}

	got := m.MapClippedRect(r)
	want := geometry.BoundingBox(mapped)
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestMapClippedRect_DegenerateTransformIsEmpty(t *testing.T) {
	r := geometry.Rect{X: 0, Y: 0, Width: 100, Height: 100}

	got := Transform{}.MapClippedRect(r)
	if !got.IsEmpty() {
		t.Fatalf("expected empty rect from zero transform, got %+v", got)
	}
}

func TestMapClippedRect_FullyBehindEyeIsEmpty(t *testing.T) {
	// w = 1 - y/50: everything at y > 50 is behind the eye.
	m := Perspective(0, -0.02)
	r := geometry.Rect{X: 0, Y: 100, Width: 10, Height: 10}

	got := m.MapClippedRect(r)
	if !got.IsEmpty() {
		t.Fatalf("expected empty rect, got %+v", got)
	}
}

func TestMapClippedRect_StraddlingEyeClipsInsteadOfInverting(t *testing.T) {
	// w = 1 - y/50: the rect spans y in [0, 100], crossing w=0 at y=50.
	m := Perspective(0, -0.02)
	r := geometry.Rect{X: 0, Y: 0, Width: 100, Height: 100}

	got := m.MapClippedRect(r)
	if got.IsEmpty() {
		t.Fatalf("visible portion should not be empty")
	}
	for _, v := range []float64{got.X, got.Y, got.Width, got.Height} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("clipped mapping produced non-finite rect: %+v", got)
		}
	}
	// The unclipped top edge (y=0, w=1) maps to itself and must be
	// contained in the result.
	if got.X > 0 || got.Right() < 100 || got.Y > 0 {
		t.Fatalf("result does not cover the visible top edge: %+v", got)
	}
}

func TestMapPoint_BehindEyeReportsClipped(t *testing.T) {
	m := Perspective(0, -0.02)

	if _, ok := m.MapPoint(geometry.Point{X: 0, Y: 100}); ok {
		t.Fatalf("expected clipped result for point behind the eye")
	}
	if _, ok := m.MapPoint(geometry.Point{X: 0, Y: 10}); !ok {
		t.Fatalf("expected visible point to map")
	}
}

func TestMul_ComposesRightToLeft(t *testing.T) {
	// Scale then translate: p -> 2p + (10, 0).
	m := Translate(10, 0).Mul(Scale(2, 2))

	got, ok := m.MapPoint(geometry.Point{X: 3, Y: 4})
	if !ok {
		t.Fatalf("unexpected clip")
	}
	want := geometry.Point{X: 16, Y: 8}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}
