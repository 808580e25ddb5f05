package compositor

import (
	"testing"

	"github.com/sheen-dev/sheen/internal/geometry"
	"github.com/sheen-dev/sheen/internal/transform"
)

func newTestSurface(t *testing.T) (*LayerTree, *Layer, *RenderSurface) {
	t.Helper()
	tree := NewLayerTree()
	id := tree.CreateLayer("content")
	layer, ok := tree.Layer(id)
	if !ok {
		t.Fatalf("created layer not found")
	}
	return tree, layer, layer.Surface()
}

func TestDrawableContentRect_IdentityTransform(t *testing.T) {
	_, _, s := newTestSurface(t)
	s.SetContentRect(geometry.Rect{X: 0, Y: 0, Width: 100, Height: 100})
	s.SetDrawTransform(transform.Identity())

	got := s.DrawableContentRect()
	want := geometry.Rect{X: 0, Y: 0, Width: 100, Height: 100}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestDrawableContentRect_Translation(t *testing.T) {
	_, _, s := newTestSurface(t)
	s.SetContentRect(geometry.Rect{X: 0, Y: 0, Width: 100, Height: 100})
	s.SetDrawTransform(transform.Translate(10, 20))

	got := s.DrawableContentRect()
	want := geometry.Rect{X: 10, Y: 20, Width: 100, Height: 100}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestDrawableContentRect_ReplicaUnion(t *testing.T) {
	_, layer, s := newTestSurface(t)
	s.SetContentRect(geometry.Rect{X: 0, Y: 0, Width: 100, Height: 100})
	s.SetDrawTransform(transform.Identity())
	s.SetReplicaDrawTransform(transform.Translate(200, 0))
	layer.SetReplica(true)

	got := s.DrawableContentRect()
	want := geometry.Rect{X: 0, Y: 0, Width: 300, Height: 100}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestDrawableContentRect_ReplicaTransformIgnoredWithoutReplica(t *testing.T) {
	_, _, s := newTestSurface(t)
	s.SetContentRect(geometry.Rect{X: 0, Y: 0, Width: 100, Height: 100})
	s.SetDrawTransform(transform.Identity())
	s.SetReplicaDrawTransform(transform.Translate(200, 0))

	got := s.DrawableContentRect()
	want := geometry.Rect{X: 0, Y: 0, Width: 100, Height: 100}
	if got != want {
		t.Fatalf("replica transform leaked into result: %+v", got)
	}
}

func TestDrawableContentRect_Idempotent(t *testing.T) {
	_, layer, s := newTestSurface(t)
	s.SetContentRect(geometry.Rect{X: -3, Y: 4, Width: 55, Height: 21})
	s.SetDrawTransform(transform.Rotate(0.7).Mul(transform.Scale(1.3, 2.1)))
	s.SetReplicaDrawTransform(transform.Translate(40, -9))
	layer.SetReplica(true)

	first := s.DrawableContentRect()
	second := s.DrawableContentRect()
	if first != second {
		t.Fatalf("repeated query differed: %+v vs %+v", first, second)
	}
}

func TestDrawableContentRect_MonotonicUnderContentGrowth(t *testing.T) {
	_, _, s := newTestSurface(t)
	s.SetDrawTransform(transform.Rotate(0.4).Mul(transform.Translate(5, 5)))

	small := geometry.Rect{X: 10, Y: 10, Width: 20, Height: 20}
	large := geometry.Rect{X: 5, Y: 5, Width: 40, Height: 40}

	s.SetContentRect(small)
	before := s.DrawableContentRect()

	s.SetContentRect(large)
	after := s.DrawableContentRect()

	if after.Union(before) != after {
		t.Fatalf("growing the content rect shrank the drawable rect: %+v -> %+v", before, after)
	}
}

func TestDrawableContentRect_ReflectsLatestTransforms(t *testing.T) {
	_, _, s := newTestSurface(t)
	s.SetContentRect(geometry.Rect{X: 0, Y: 0, Width: 10, Height: 10})
	s.SetDrawTransform(transform.Identity())

	if got := s.DrawableContentRect(); got.X != 0 {
		t.Fatalf("unexpected initial rect: %+v", got)
	}

	s.SetDrawTransform(transform.Translate(100, 0))
	got := s.DrawableContentRect()
	want := geometry.Rect{X: 100, Y: 0, Width: 10, Height: 10}
	if got != want {
		t.Fatalf("stale transform used: %+v", got)
	}
}

func TestDrawableContentRect_NoTransformSetIsEmpty(t *testing.T) {
	_, _, s := newTestSurface(t)
	s.SetContentRect(geometry.Rect{X: 0, Y: 0, Width: 100, Height: 100})

	if got := s.DrawableContentRect(); !got.IsEmpty() {
		t.Fatalf("zero transform should map to an empty rect, got %+v", got)
	}
}

func TestDrawableContentRect_PerspectiveClips(t *testing.T) {
	_, _, s := newTestSurface(t)
	s.SetContentRect(geometry.Rect{X: 0, Y: 100, Width: 10, Height: 10})
	// Everything at y > 50 lands behind the eye.
	s.SetDrawTransform(transform.Perspective(0, -0.02))

	if got := s.DrawableContentRect(); !got.IsEmpty() {
		t.Fatalf("expected clipped-away content to be empty, got %+v", got)
	}
}

func TestSurfaceDefaults(t *testing.T) {
	_, _, s := newTestSurface(t)

	if s.DrawOpacity() != 1 {
		t.Fatalf("expected default opacity 1, got %v", s.DrawOpacity())
	}
	if s.DrawOpacityIsAnimating() || s.TargetSurfaceTransformsAreAnimating() || s.ScreenSpaceTransformsAreAnimating() {
		t.Fatalf("animation flags should default to false")
	}
	if s.NearestAncestorThatMovesPixels() != 0 {
		t.Fatalf("expected no pixel-moving ancestor by default")
	}
}

func TestRemoveLayer_TearsDownSurface(t *testing.T) {
	tree, layer, s := newTestSurface(t)
	s.SetContentRect(geometry.Rect{X: 0, Y: 0, Width: 10, Height: 10})
	s.SetDrawTransform(transform.Identity())
	s.SetReplicaDrawTransform(transform.Translate(50, 0))
	layer.SetReplica(true)

	tree.RemoveLayer(layer.ID())

	if _, ok := tree.Layer(layer.ID()); ok {
		t.Fatalf("layer still present after removal")
	}
	// A stale surface handle degrades to replica-free queries rather
	// than reaching through a dead layer.
	got := s.DrawableContentRect()
	want := geometry.Rect{X: 0, Y: 0, Width: 10, Height: 10}
	if got != want {
		t.Fatalf("expected %+v from stale surface, got %+v", want, got)
	}
}

func TestLayerTree_WalkInCreationOrder(t *testing.T) {
	tree := NewLayerTree()
	a := tree.CreateLayer("a")
	b := tree.CreateLayer("b")
	c := tree.CreateLayer("c")
	tree.RemoveLayer(b)

	var seen []LayerID
	tree.Walk(func(l *Layer) { seen = append(seen, l.ID()) })

	if len(seen) != 2 || seen[0] != a || seen[1] != c {
		t.Fatalf("unexpected walk order: %v", seen)
	}
	if tree.Len() != 2 {
		t.Fatalf("expected 2 layers, got %d", tree.Len())
	}
}
