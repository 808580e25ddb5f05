package display

import "fmt"

// StaticResolver serves a fixed display list. It backs headless use
// (configured displays) and tests; the resolution rules match the
// live backends.
type StaticResolver struct {
	displays []Display
	primary  int
}

// NewStaticResolver builds a resolver over the given displays. The
// primary index selects the primary display; out-of-range values fall
// back to 0.
func NewStaticResolver(displays []Display, primary int) (*StaticResolver, error) {
	if len(displays) == 0 {
		return nil, fmt.Errorf("static resolver requires at least one display")
	}
	if primary < 0 || primary >= len(displays) {
		primary = 0
	}

	// Copy so later mutation of the caller's slice cannot change
	// query results.
	owned := make([]Display, len(displays))
	copy(owned, displays)
	for i := range owned {
		owned[i].ID = i
		if owned[i].WorkArea.IsEmpty() {
			owned[i].WorkArea = owned[i].Bounds
		}
	}

	return &StaticResolver{displays: owned, primary: primary}, nil
}

// DisplayCount returns the number of configured displays.
func (r *StaticResolver) DisplayCount() (int, error) {
	return len(r.displays), nil
}

// AllDisplays returns the configured displays in order.
func (r *StaticResolver) AllDisplays() ([]Display, error) {
	out := make([]Display, len(r.displays))
	copy(out, r.displays)
	return out, nil
}

// DisplayNearestWindow has no window system to consult; it returns
// the default display (index 0), the documented fallback for an
// unresolvable window.
func (r *StaticResolver) DisplayNearestWindow(win WindowID) (Display, error) {
	return r.displays[0], nil
}

// DisplayNearestPoint resolves by containment, then center distance.
func (r *StaticResolver) DisplayNearestPoint(p Point) (Display, error) {
	d, ok := NearestByPoint(r.displays, p)
	if !ok {
		return Display{}, fmt.Errorf("no displays configured")
	}
	return d, nil
}

// DisplayMatching returns the primary display (documented
// approximation, see Resolver).
func (r *StaticResolver) DisplayMatching(rect Rect) (Display, error) {
	return r.PrimaryDisplay()
}

// PrimaryDisplay returns the configured primary display.
func (r *StaticResolver) PrimaryDisplay() (Display, error) {
	return r.displays[r.primary], nil
}
