package transform

import (
	"math"

	"github.com/sheen-dev/sheen/internal/geometry"
)

// Transform is a 2D projective transformation, stored as a 3x3 matrix
// in row-major order over homogeneous coordinates:
//
//	| M00 M01 M02 |   x' = M00*x + M01*y + M02
//	| M10 M11 M12 |   y' = M10*x + M11*y + M12
//	| M20 M21 M22 |   w' = M20*x + M21*y + M22
//
// Mapped points divide by w'. Affine transforms keep the bottom row at
// (0, 0, 1); a perspective transform bends it, and points mapped to
// w' <= 0 cross the plane at infinity and must be clipped rather than
// projected.
type Transform struct {
	M00, M01, M02 float64
	M10, M11, M12 float64
	M20, M21, M22 float64
}

// wClipEpsilon bounds how close to the w=0 plane a clipped vertex may
// land before projection. Matches the compositor convention of
// clipping slightly in front of the eye rather than exactly at it.
const wClipEpsilon = 1e-9

// Identity returns the identity transform.
func Identity() Transform {
	return Transform{
		M00: 1, M11: 1, M22: 1,
	}
}

// Translate returns a transform that offsets points by (tx, ty).
func Translate(tx, ty float64) Transform {
	return Transform{
		M00: 1, M02: tx,
		M11: 1, M12: ty,
		M22: 1,
	}
}

// Scale returns a transform that scales points by (sx, sy) about the
// origin.
func Scale(sx, sy float64) Transform {
	return Transform{
		M00: sx,
		M11: sy,
		M22: 1,
	}
}

// Rotate returns a transform that rotates points by angle radians
// about the origin.
func Rotate(angle float64) Transform {
	sin, cos := math.Sincos(angle)
	return Transform{
		M00: cos, M01: -sin,
		M10: sin, M11: cos,
		M22: 1,
	}
}

// Perspective returns a projective transform with bottom row
// (px, py, 1): w' = px*x + py*y + 1. Points on the far side of the
// line px*x + py*y = -1 map behind the eye and are clipped when
// rectangles are mapped.
func Perspective(px, py float64) Transform {
	return Transform{
		M00: 1,
		M11: 1,
		M20: px, M21: py, M22: 1,
	}
}

// Mul composes two transforms: m.Mul(n) maps a point p to m(n(p)).
func (m Transform) Mul(n Transform) Transform {
	return Transform{
		M00: m.M00*n.M00 + m.M01*n.M10 + m.M02*n.M20,
		M01: m.M00*n.M01 + m.M01*n.M11 + m.M02*n.M21,
		M02: m.M00*n.M02 + m.M01*n.M12 + m.M02*n.M22,

		M10: m.M10*n.M00 + m.M11*n.M10 + m.M12*n.M20,
		M11: m.M10*n.M01 + m.M11*n.M11 + m.M12*n.M21,
		M12: m.M10*n.M02 + m.M11*n.M12 + m.M12*n.M22,

		M20: m.M20*n.M00 + m.M21*n.M10 + m.M22*n.M20,
		M21: m.M20*n.M01 + m.M21*n.M11 + m.M22*n.M21,
		M22: m.M20*n.M02 + m.M21*n.M12 + m.M22*n.M22,
	}
}

// IsIdentity reports whether m is exactly the identity transform.
func (m Transform) IsIdentity() bool {
	return m == Identity()
}

// IsAffine reports whether the bottom row is (0, 0, 1), i.e. the
// transform never moves points to or across infinity.
func (m Transform) IsAffine() bool {
	return m.M20 == 0 && m.M21 == 0 && m.M22 == 1
}

// homogeneous is a point before the perspective divide.
type homogeneous struct {
	x, y, w float64
}

func (m Transform) apply(p geometry.Point) homogeneous {
	return homogeneous{
		x: m.M00*p.X + m.M01*p.Y + m.M02,
		y: m.M10*p.X + m.M11*p.Y + m.M12,
		w: m.M20*p.X + m.M21*p.Y + m.M22,
	}
}

func (h homogeneous) project() geometry.Point {
	return geometry.Point{X: h.x / h.w, Y: h.y / h.w}
}

// MapPoint maps p through the transform. The second result is false
// when p lands at or behind the w=0 plane; the returned point is then
// meaningless and callers needing a rectangle should use
// MapClippedRect instead.
func (m Transform) MapPoint(p geometry.Point) (geometry.Point, bool) {
	h := m.apply(p)
	if h.w <= 0 {
		return geometry.Point{}, false
	}
	return h.project(), true
}

// MapClippedRect maps r through the transform and returns the
// axis-aligned bounding box of the result. For affine transforms this
// is the bounding box of the four mapped corners. When the transform
// is projective, corners with w <= 0 are clipped against the w=0
// plane first, so a rect straddling the plane at infinity yields the
// bounding box of its visible portion instead of an inverted or
// unbounded rect. A rect entirely behind the plane, or a degenerate
// all-zero transform, yields the empty rect.
func (m Transform) MapClippedRect(r geometry.Rect) geometry.Rect {
	corners := r.Corners()

	var quad [4]homogeneous
	allVisible := true
	for i, c := range corners {
		quad[i] = m.apply(c)
		if quad[i].w <= 0 {
			allVisible = false
		}
	}

	if allVisible {
		var projected [4]geometry.Point
		for i, h := range quad {
			projected[i] = h.project()
		}
		return geometry.BoundingBox(projected[:])
	}

	return clipAndBound(quad)
}

// clipAndBound clips the quad against the w = wClipEpsilon plane and
// returns the bounding box of the surviving projected vertices. Each
// edge contributes its inside endpoint and, if it crosses the plane,
// the interpolated crossing point; a quad entirely behind the plane
// contributes nothing.
func clipAndBound(quad [4]homogeneous) geometry.Rect {
	// At most 8 vertices survive clipping a quad against one plane.
	points := make([]geometry.Point, 0, 8)

	for i := range quad {
		a := quad[i]
		b := quad[(i+1)%len(quad)]

		if a.w >= wClipEpsilon {
			points = append(points, a.project())
		}

		crosses := (a.w >= wClipEpsilon) != (b.w >= wClipEpsilon)
		if crosses {
			t := (wClipEpsilon - a.w) / (b.w - a.w)
			clipped := homogeneous{
				x: a.x + t*(b.x-a.x),
				y: a.y + t*(b.y-a.y),
				w: wClipEpsilon,
			}
			points = append(points, clipped.project())
		}
	}

	return geometry.BoundingBox(points)
}
