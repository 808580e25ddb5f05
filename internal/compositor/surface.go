package compositor

import (
	"github.com/sheen-dev/sheen/internal/geometry"
	"github.com/sheen-dev/sheen/internal/transform"
)

// RenderSurface is an intermediate compositing target for one layer.
// It tracks the transforms that map the surface's local content rect
// into its render target's space and computes the drawable content
// rect on demand.
//
// Transforms and the content rect are supplied by the layer tree's
// layout pass before each query; the surface stores them as given and
// never recomputes or validates them. A surface whose transforms were
// never set maps everything through the zero transform and reports an
// empty drawable rect.
type RenderSurface struct {
	owningLayer LayerID
	tree        *LayerTree

	contentRect          geometry.Rect
	drawTransform        transform.Transform
	replicaDrawTransform transform.Transform

	drawOpacity                         float64
	drawOpacityIsAnimating              bool
	targetSurfaceTransformsAreAnimating bool
	screenSpaceTransformsAreAnimating   bool

	// Closest ancestor surface whose transform moves pixels (blur and
	// similar filters). Stored for downstream damage computation; 0
	// means none.
	nearestAncestorThatMovesPixels LayerID
}

// OwningLayer returns the handle of the layer this surface belongs to.
func (s *RenderSurface) OwningLayer() LayerID {
	return s.owningLayer
}

// ContentRect returns the rect in the surface's local content space.
func (s *RenderSurface) ContentRect() geometry.Rect {
	return s.contentRect
}

// SetContentRect sets the local content bounds. Negative dimensions
// are tolerated and behave as an empty content area.
func (s *RenderSurface) SetContentRect(r geometry.Rect) {
	s.contentRect = r
}

// DrawTransform returns the transform mapping the content rect into
// the render target's space.
func (s *RenderSurface) DrawTransform() transform.Transform {
	return s.drawTransform
}

// SetDrawTransform stores the draw transform for the current frame.
func (s *RenderSurface) SetDrawTransform(m transform.Transform) {
	s.drawTransform = m
}

// ReplicaDrawTransform returns the transform used for the layer's
// replica. It is only meaningful while the owning layer has a replica.
func (s *RenderSurface) ReplicaDrawTransform() transform.Transform {
	return s.replicaDrawTransform
}

// SetReplicaDrawTransform stores the replica draw transform for the
// current frame.
func (s *RenderSurface) SetReplicaDrawTransform(m transform.Transform) {
	s.replicaDrawTransform = m
}

// DrawOpacity returns the surface's accumulated opacity in [0, 1].
func (s *RenderSurface) DrawOpacity() float64 {
	return s.drawOpacity
}

// SetDrawOpacity sets the surface's accumulated opacity.
func (s *RenderSurface) SetDrawOpacity(opacity float64) {
	s.drawOpacity = opacity
}

// DrawOpacityIsAnimating reports whether the opacity is mid-animation
// and must not be cached across frames.
func (s *RenderSurface) DrawOpacityIsAnimating() bool {
	return s.drawOpacityIsAnimating
}

// SetDrawOpacityIsAnimating flags the opacity as animating.
func (s *RenderSurface) SetDrawOpacityIsAnimating(animating bool) {
	s.drawOpacityIsAnimating = animating
}

// TargetSurfaceTransformsAreAnimating reports whether the draw
// transform is mid-animation.
func (s *RenderSurface) TargetSurfaceTransformsAreAnimating() bool {
	return s.targetSurfaceTransformsAreAnimating
}

// SetTargetSurfaceTransformsAreAnimating flags the draw transform as
// animating.
func (s *RenderSurface) SetTargetSurfaceTransformsAreAnimating(animating bool) {
	s.targetSurfaceTransformsAreAnimating = animating
}

// ScreenSpaceTransformsAreAnimating reports whether the surface's
// screen-space transform is mid-animation.
func (s *RenderSurface) ScreenSpaceTransformsAreAnimating() bool {
	return s.screenSpaceTransformsAreAnimating
}

// SetScreenSpaceTransformsAreAnimating flags the screen-space
// transform as animating.
func (s *RenderSurface) SetScreenSpaceTransformsAreAnimating(animating bool) {
	s.screenSpaceTransformsAreAnimating = animating
}

// NearestAncestorThatMovesPixels returns the closest ancestor surface
// with a pixel-moving effect, or 0 when there is none.
func (s *RenderSurface) NearestAncestorThatMovesPixels() LayerID {
	return s.nearestAncestorThatMovesPixels
}

// SetNearestAncestorThatMovesPixels stores the pixel-moving ancestor
// reference.
func (s *RenderSurface) SetNearestAncestorThatMovesPixels(id LayerID) {
	s.nearestAncestorThatMovesPixels = id
}

// DrawableContentRect returns the smallest axis-aligned rect in the
// render target's space containing the transformed content rect and,
// when the owning layer has a replica, the replica-transformed content
// rect. The computation is a pure query over the stored state: it
// allocates nothing beyond the mapped rects, has no side effects, and
// repeated calls with no intervening mutation return identical
// results. A layer that has been removed from the tree contributes no
// replica.
func (s *RenderSurface) DrawableContentRect() geometry.Rect {
	drawable := s.drawTransform.MapClippedRect(s.contentRect)
	if layer, ok := s.tree.Layer(s.owningLayer); ok && layer.HasReplica() {
		drawable = drawable.Union(s.replicaDrawTransform.MapClippedRect(s.contentRect))
	}
	return drawable
}
