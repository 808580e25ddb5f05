package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"

	"github.com/sheen-dev/sheen/internal/display"
)

// Resolver answers display queries against a live X11 server. Each
// call re-enumerates monitors; nothing is cached between calls, so
// results track RandR reconfiguration without an observer.
type Resolver struct {
	conn *Connection
}

// NewResolver wraps an established connection.
func NewResolver(conn *Connection) *Resolver {
	return &Resolver{conn: conn}
}

// snapshot enumerates displays and resolves the primary work area.
func (r *Resolver) snapshot() ([]display.Display, int, error) {
	displays, err := r.conn.enumerateDisplays()
	if err != nil {
		return nil, 0, err
	}
	if len(displays) == 0 {
		return nil, 0, fmt.Errorf("no active displays")
	}

	primary := r.conn.primaryIndex(displays)
	r.conn.applyPrimaryWorkArea(displays, primary)
	return displays, primary, nil
}

// DisplayCount returns the number of active monitors. Mirrored
// outputs sharing a CRTC are counted once; mirrored CRTCs with equal
// geometry are reported as the server exposes them.
func (r *Resolver) DisplayCount() (int, error) {
	displays, _, err := r.snapshot()
	if err != nil {
		return 0, err
	}
	return len(displays), nil
}

// AllDisplays returns all active monitors in RandR enumeration order.
func (r *Resolver) AllDisplays() ([]display.Display, error) {
	displays, _, err := r.snapshot()
	if err != nil {
		return nil, err
	}
	return displays, nil
}

// DisplayNearestWindow resolves the display containing the window's
// center. A zero window, or a window whose geometry cannot be read,
// falls back to the default display (index 0).
func (r *Resolver) DisplayNearestWindow(win display.WindowID) (display.Display, error) {
	displays, _, err := r.snapshot()
	if err != nil {
		return display.Display{}, err
	}

	if win != 0 {
		if center, err := r.conn.windowCenter(xproto.Window(win)); err == nil {
			if d, ok := display.NearestByPoint(displays, center); ok {
				return d, nil
			}
		}
	}
	return displays[0], nil
}

// DisplayNearestPoint resolves the display containing p, falling back
// to the nearest display by center distance.
func (r *Resolver) DisplayNearestPoint(p display.Point) (display.Display, error) {
	displays, _, err := r.snapshot()
	if err != nil {
		return display.Display{}, err
	}

	d, _ := display.NearestByPoint(displays, p)
	return d, nil
}

// DisplayMatching returns the primary display regardless of the
// candidate rect. Max-overlap matching is a possible enhancement;
// callers must not assume the rect influences the result.
func (r *Resolver) DisplayMatching(rect display.Rect) (display.Display, error) {
	return r.PrimaryDisplay()
}

// PrimaryDisplay returns the RandR primary monitor, with its work
// area narrowed by _NET_WORKAREA when the property is available.
func (r *Resolver) PrimaryDisplay() (display.Display, error) {
	displays, primary, err := r.snapshot()
	if err != nil {
		return display.Display{}, err
	}
	return displays[primary], nil
}

// DisplayUnderPointer resolves the display containing the mouse
// pointer. Convenience for the inspector; falls back to the default
// display when the pointer cannot be queried.
func (r *Resolver) DisplayUnderPointer() (display.Display, error) {
	displays, _, err := r.snapshot()
	if err != nil {
		return display.Display{}, err
	}

	if p, err := r.conn.pointerPosition(); err == nil {
		if d, ok := display.NearestByPoint(displays, p); ok {
			return d, nil
		}
	}
	return displays[0], nil
}
