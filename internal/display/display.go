package display

// WindowID is a platform-neutral window identifier. Zero means "no
// window" and resolves to the default display.
type WindowID uint32

// Point is a location in screen coordinates.
type Point struct {
	X int
	Y int
}

// Rect describes a rectangular region in screen coordinates.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// IsEmpty reports whether the rect covers no area.
func (r Rect) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Contains reports whether p lies inside the rect.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.Width && p.Y >= r.Y && p.Y < r.Y+r.Height
}

// Intersect returns the overlap of r and other, or the zero rect when
// they do not overlap.
func (r Rect) Intersect(other Rect) Rect {
	x1 := max(r.X, other.X)
	y1 := max(r.Y, other.Y)
	x2 := min(r.X+r.Width, other.X+other.Width)
	y2 := min(r.Y+r.Height, other.Y+other.Height)

	if x2 <= x1 || y2 <= y1 {
		return Rect{}
	}
	return Rect{X: x1, Y: y1, Width: x2 - x1, Height: y2 - y1}
}

// CenterDistanceSq returns the squared distance from p to the rect's
// center. Used for nearest-display resolution when a point is outside
// every display's bounds.
func (r Rect) CenterDistanceSq(p Point) int {
	cx := r.X + r.Width/2
	cy := r.Y + r.Height/2
	dx := p.X - cx
	dy := p.Y - cy
	return dx*dx + dy*dy
}

// Display describes a physical display. The ID is the backend's
// enumeration index; it is stable for the lifetime of a configuration
// but not across display reconfiguration. WorkArea equals Bounds
// unless the backend resolved a tighter usable area, which only
// happens for the primary display.
type Display struct {
	ID       int
	Name     string
	Bounds   Rect
	WorkArea Rect
}

// Resolver answers display geometry queries against live platform
// state. Every call re-queries the platform; nothing is cached, so
// results always reflect the current configuration at the cost of a
// possible display-server round-trip per call.
type Resolver interface {
	// DisplayCount returns the number of usable displays. Backends
	// that cannot distinguish mirrored outputs report the platform's
	// raw count.
	DisplayCount() (int, error)

	// AllDisplays returns one entry per display in platform
	// enumeration order, which need not match physical left-to-right
	// order.
	AllDisplays() ([]Display, error)

	// DisplayNearestWindow resolves the display containing the given
	// window. A zero or unresolvable window falls back to the default
	// display.
	DisplayNearestWindow(win WindowID) (Display, error)

	// DisplayNearestPoint resolves the display containing p, falling
	// back to the nearest display by center distance. It never fails
	// while at least one display exists.
	DisplayNearestPoint(p Point) (Display, error)

	// DisplayMatching resolves the display for a candidate rect. It
	// returns the primary display regardless of overlap; true
	// max-overlap matching is a possible enhancement, not promised
	// behavior.
	DisplayMatching(r Rect) (Display, error)

	// PrimaryDisplay returns the platform's designated primary
	// display.
	PrimaryDisplay() (Display, error)
}

// NearestByPoint picks the display containing p, or failing
// containment the one whose center is closest. It is the shared
// resolution rule for every backend.
func NearestByPoint(displays []Display, p Point) (Display, bool) {
	if len(displays) == 0 {
		return Display{}, false
	}

	for _, d := range displays {
		if d.Bounds.Contains(p) {
			return d, true
		}
	}

	nearest := displays[0]
	best := nearest.Bounds.CenterDistanceSq(p)
	for _, d := range displays[1:] {
		if dist := d.Bounds.CenterDistanceSq(p); dist < best {
			nearest = d
			best = dist
		}
	}
	return nearest, true
}
